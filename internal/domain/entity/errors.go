package entity

import "errors"

// Step-scoped failure kinds. Adapters and use cases wrap these with %w so
// callers can classify outcomes with errors.Is.
var (
	// ErrElementNotFound — the selector matched no element.
	ErrElementNotFound = errors.New("element not found")

	// ErrGeometryUnavailable — the element matched but has no usable
	// bounding box (zero area or box not reported).
	ErrGeometryUnavailable = errors.New("element geometry unavailable")

	// ErrWindowFrameUnavailable — no window frame could be obtained and
	// no prior frame exists to fall back on.
	ErrWindowFrameUnavailable = errors.New("window frame unavailable")

	// ErrInputInjectionFailed — a native pointer or keyboard action
	// failed at the OS level.
	ErrInputInjectionFailed = errors.New("input injection failed")

	// ErrPlanValidation — a step is structurally malformed (unknown
	// type/action or a missing required field).
	ErrPlanValidation = errors.New("plan validation failed")
)
