package entity

// Step types and actions as produced by the planning collaborator.
const (
	StepNarration   = "narration"
	StepInteraction = "element_interaction"

	ActionClick = "click"
	ActionType  = "type"

	TimingImmediate        = "immediate"
	TimingPause            = "pause"
	TimingAfterInteraction = "after_interaction"
)

// Step is one entry of a demonstration plan: either narration spoken to
// the viewer or a pointer/keyboard interaction with a page element.
type Step struct {
	Type        string  `json:"type"`
	Action      string  `json:"action,omitempty"`
	Selector    string  `json:"element_selector,omitempty"`
	Value       string  `json:"value,omitempty"`
	Content     string  `json:"content,omitempty"`
	Description string  `json:"description,omitempty"`
	Timing      string  `json:"timing,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // seconds, for timing "pause"
}

// Plan is an ordered sequence of steps. It is produced externally and
// immutable once handed to the executor.
type Plan []Step

type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// StepResult records the outcome of a single executed step.
type StepResult struct {
	Index  int
	Type   string
	Action string
	Status StepStatus
	Reason string
}

// ExecutionResult aggregates per-step outcomes. AllSucceeded is the
// logical AND over element interaction steps only; narration is
// best-effort and never fails a plan.
type ExecutionResult struct {
	Steps        []StepResult
	AllSucceeded bool
}
