// Package planner generates demonstration plans from page HTML and a
// natural language instruction via an LLM provider.
package planner

import (
	"fmt"

	"demo-agent/internal/application/port/output"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string // openai only, empty means the stock endpoint
	Logger   output.LoggerPort
}

// NewPlanner builds a PlannerPort for the configured provider.
func NewPlanner(cfg Config) (output.PlannerPort, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "gpt":
		return NewOpenAIPlanner(cfg)
	case ProviderAnthropic, "claude":
		return NewClaudePlanner(cfg)
	default:
		return nil, fmt.Errorf("unknown planner provider: %s (supported: openai, anthropic)", cfg.Provider)
	}
}

func buildUserPrompt(instruction, pageHTML string) string {
	return fmt.Sprintf("Current page HTML:\n%s\n\nInstruction: %s", pageHTML, instruction)
}
