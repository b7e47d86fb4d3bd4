package planrunner

import (
	"context"
	"fmt"
	"time"

	"demo-agent/internal/application/port/input"
	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
	"demo-agent/internal/usecase/geometry"
	"demo-agent/internal/usecase/inputdriver"
)

var _ input.PlanExecutor = (*Executor)(nil)

// afterInteractionDelay is the fixed short pause applied by the
// "after_interaction" timing policy.
const afterInteractionDelay = 500 * time.Millisecond

// defaultPauseSeconds is used when a "pause" step omits its duration.
const defaultPauseSeconds = 1.0

// Executor runs demonstration plans step by step. A failed interaction
// never aborts the plan: remaining steps still execute and every outcome
// lands in the ExecutionResult. Execution is strictly sequential; the
// synthetic pointer is a singleton resource and steps include their own
// sleeps.
type Executor struct {
	driver   *inputdriver.Driver
	resolver *geometry.Resolver
	browser  output.BrowserPort
	narrator output.NarratorPort
	logger   output.LoggerPort
	sleep    func(time.Duration)
}

func New(driver *inputdriver.Driver, resolver *geometry.Resolver, browser output.BrowserPort, narrator output.NarratorPort, logger output.LoggerPort) *Executor {
	return &Executor{
		driver:   driver,
		resolver: resolver,
		browser:  browser,
		narrator: narrator,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Execute runs plan to completion. It returns an error only when the plan
// shape is malformed, before any step has run; per-step failures are
// reported inside the result.
func (e *Executor) Execute(ctx context.Context, plan entity.Plan) (*entity.ExecutionResult, error) {
	for i, step := range plan {
		if step.Type == "" {
			return nil, fmt.Errorf("%w: step %d has no type discriminator", entity.ErrPlanValidation, i)
		}
	}

	// One forced refresh per plan: enough to pick up window movement and
	// scrolling since the plan was generated, without paying the cost on
	// every step.
	e.prepare(ctx)

	result := &entity.ExecutionResult{
		Steps:        make([]entity.StepResult, 0, len(plan)),
		AllSucceeded: true,
	}

	for i, step := range plan {
		e.logger.Info("Executing step", "index", i+1, "total", len(plan), "type", step.Type)

		sr := e.executeStep(ctx, i, step)
		result.Steps = append(result.Steps, sr)

		// Narration is best-effort; only interaction failures count
		// against the plan.
		if sr.Status == entity.StepFailed && step.Type != entity.StepNarration {
			result.AllSucceeded = false
		}

		e.applyTiming(step)
	}

	e.logger.Info("Plan execution completed", "steps", len(result.Steps), "allSucceeded", result.AllSucceeded)
	return result, nil
}

// prepare raises the window and refreshes the frame cache. Failures are
// logged, not fatal: each interaction step resolves with a forced refresh
// anyway and reports its own failure.
func (e *Executor) prepare(ctx context.Context) {
	if err := e.browser.Bring(ctx); err != nil {
		e.logger.Warn("Could not bring browser window to front", "error", err)
	}
	if err := e.resolver.RefreshFrame(ctx); err != nil {
		e.logger.Warn("Pre-plan frame refresh failed", "error", err)
	}
}

func (e *Executor) executeStep(ctx context.Context, index int, step entity.Step) entity.StepResult {
	sr := entity.StepResult{
		Index:  index,
		Type:   step.Type,
		Action: step.Action,
		Status: entity.StepSucceeded,
	}

	var err error
	switch step.Type {
	case entity.StepNarration:
		if narrErr := e.narrator.Narrate(ctx, step.Content); narrErr != nil {
			e.logger.Warn("Narration failed", "index", index, "error", narrErr)
			sr.Status = entity.StepFailed
			sr.Reason = narrErr.Error()
		}
		return sr

	case entity.StepInteraction:
		err = e.executeInteraction(ctx, step)

	default:
		err = fmt.Errorf("%w: unknown step type %q", entity.ErrPlanValidation, step.Type)
	}

	if err != nil {
		e.logger.Error("Step failed", "index", index, "type", step.Type, "action", step.Action, "error", err)
		sr.Status = entity.StepFailed
		sr.Reason = err.Error()
	}
	return sr
}

func (e *Executor) executeInteraction(ctx context.Context, step entity.Step) error {
	switch step.Action {
	case entity.ActionClick:
		if step.Selector == "" {
			return fmt.Errorf("%w: click step missing element_selector", entity.ErrPlanValidation)
		}
		return e.driver.Click(ctx, step.Selector)

	case entity.ActionType:
		if step.Value == "" {
			return fmt.Errorf("%w: type step missing value", entity.ErrPlanValidation)
		}
		return e.driver.TypeText(ctx, step.Value)

	default:
		return fmt.Errorf("%w: unknown action %q", entity.ErrPlanValidation, step.Action)
	}
}

func (e *Executor) applyTiming(step entity.Step) {
	switch step.Timing {
	case entity.TimingPause:
		seconds := step.Duration
		if seconds <= 0 {
			seconds = defaultPauseSeconds
		}
		e.sleep(time.Duration(seconds * float64(time.Second)))
	case entity.TimingAfterInteraction:
		e.sleep(afterInteractionDelay)
	}
	// "immediate" adds nothing beyond the driver's own post-action delay.
}
