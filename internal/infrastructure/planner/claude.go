package planner

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
	"demo-agent/internal/infrastructure/prompts"
)

var _ output.PlannerPort = (*ClaudePlanner)(nil)

type ClaudePlanner struct {
	client *anthropic.Client
	model  string
	logger output.LoggerPort
}

func NewClaudePlanner(cfg Config) (*ClaudePlanner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic planner: API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &ClaudePlanner{
		client: &client,
		model:  model,
		logger: cfg.Logger,
	}, nil
}

func (p *ClaudePlanner) BuildPlan(ctx context.Context, instruction, pageHTML string) (entity.Plan, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: prompts.PlannerSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(instruction, pageHTML))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("empty response from anthropic")
	}

	if p.logger != nil {
		p.logger.Debug("planner response", "provider", "anthropic", "length", len(responseText))
	}

	plan, err := ParsePlan(responseText)
	if err != nil {
		return nil, fmt.Errorf("parse planner response: %w", err)
	}
	return plan, nil
}
