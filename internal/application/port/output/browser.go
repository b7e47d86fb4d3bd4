package output

import (
	"context"

	"demo-agent/internal/domain/entity"
)

// BrowserPort is the capability surface the core needs from the rendering
// browser. Element-lookup timeouts are owned by the implementation; the
// core maps them onto the entity error taxonomy.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error

	// ElementGeometry returns the bounding box of the first element
	// matching selector, in page coordinate space.
	// Fails with entity.ErrElementNotFound or entity.ErrGeometryUnavailable.
	ElementGeometry(ctx context.Context, selector string) (entity.ElementGeometry, error)

	// WindowFrame reports the window's current position, scroll offsets
	// and inner/outer dimensions.
	WindowFrame(ctx context.Context) (entity.WindowFrame, error)

	// DOMClick issues a click through the DOM instead of the OS pointer.
	// Used as the fallback click strategy.
	DOMClick(ctx context.Context, selector string) error

	// PageHTML returns the page markup, cleaned for use as planner context.
	PageHTML(ctx context.Context) (string, error)

	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	// Bring raises the window so the synthetic pointer lands on it.
	Bring(ctx context.Context) error

	CurrentURL() string
	Close()
}
