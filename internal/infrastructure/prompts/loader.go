package prompts

import (
	_ "embed"
)

//go:embed planner_system.txt
var PlannerSystemPrompt string
