package output

import "context"

// NarratorPort speaks narration steps to the viewer. Narration is
// best-effort: the executor swallows failures, so implementations should
// return errors rather than retry internally.
type NarratorPort interface {
	Narrate(ctx context.Context, content string) error
}
