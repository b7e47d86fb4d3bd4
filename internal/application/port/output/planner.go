package output

import (
	"context"

	"demo-agent/internal/domain/entity"
)

// PlannerPort produces a demonstration plan for an instruction. The page
// HTML gives the planner the selectors it may use. The core validates only
// the plan's structural shape, never its semantic intent.
type PlannerPort interface {
	BuildPlan(ctx context.Context, instruction, pageHTML string) (entity.Plan, error)
}
