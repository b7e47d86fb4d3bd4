package input

import (
	"context"

	"demo-agent/internal/domain/entity"
)

// PlanExecutor runs a plan to completion. It returns an error only when
// the plan shape itself is malformed; step failures are reported inside
// the ExecutionResult.
type PlanExecutor interface {
	Execute(ctx context.Context, plan entity.Plan) (*entity.ExecutionResult, error)
}

// DemoRunner orchestrates a full demonstration: fetch page context, ask
// the planner for a plan, execute it.
type DemoRunner interface {
	Run(ctx context.Context, instruction string) (*entity.ExecutionResult, error)
}
