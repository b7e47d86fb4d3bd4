package rundemo

import (
	"context"
	"fmt"

	"demo-agent/internal/application/port/input"
	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
)

var _ input.DemoRunner = (*UseCase)(nil)

// UseCase runs one full demonstration: it hands the current page markup
// to the planner, receives a plan and executes it.
type UseCase struct {
	browser  output.BrowserPort
	planner  output.PlannerPort
	executor input.PlanExecutor
	logger   output.LoggerPort
}

func New(browser output.BrowserPort, planner output.PlannerPort, executor input.PlanExecutor, logger output.LoggerPort) *UseCase {
	return &UseCase{
		browser:  browser,
		planner:  planner,
		executor: executor,
		logger:   logger,
	}
}

func (uc *UseCase) Run(ctx context.Context, instruction string) (*entity.ExecutionResult, error) {
	if instruction == "" {
		return nil, fmt.Errorf("instruction is empty")
	}

	html, err := uc.browser.PageHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("get page html: %w", err)
	}

	uc.logger.Info("Requesting demonstration plan", "instruction", instruction, "htmlLen", len(html))

	plan, err := uc.planner.BuildPlan(ctx, instruction, html)
	if err != nil {
		return nil, fmt.Errorf("build plan: %w", err)
	}
	if len(plan) == 0 {
		uc.logger.Warn("Planner returned an empty plan", "instruction", instruction)
	}

	uc.logger.Info("Plan received", "steps", len(plan))

	result, err := uc.executor.Execute(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("execute plan: %w", err)
	}
	return result, nil
}
