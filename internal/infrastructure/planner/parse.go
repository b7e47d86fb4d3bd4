package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"demo-agent/internal/domain/entity"
)

// ParsePlan extracts a JSON step array from an LLM response that may wrap
// it in prose or a markdown fence.
func ParsePlan(response string) (entity.Plan, error) {
	var plan entity.Plan
	if err := json.Unmarshal([]byte(response), &plan); err == nil {
		return plan, nil
	}

	start := strings.Index(response, "[")
	if start == -1 {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	depth := 0
	end := -1
scan:
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				end = i + 1
				break scan
			}
		}
	}
	if end == -1 {
		return nil, fmt.Errorf("no matching closing bracket found")
	}

	if err := json.Unmarshal([]byte(response[start:end]), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse extracted JSON: %w", err)
	}
	return plan, nil
}
