package planner

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
	"demo-agent/internal/infrastructure/prompts"
)

var _ output.PlannerPort = (*OpenAIPlanner)(nil)

type OpenAIPlanner struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

func NewOpenAIPlanner(cfg Config) (*OpenAIPlanner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai planner: API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIPlanner{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: cfg.Logger,
	}, nil
}

func (p *OpenAIPlanner) BuildPlan(ctx context.Context, instruction, pageHTML string) (entity.Plan, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompts.PlannerSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildUserPrompt(instruction, pageHTML),
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if p.logger != nil {
		p.logger.Debug("planner response", "provider", "openai", "length", len(content))
	}

	plan, err := ParsePlan(content)
	if err != nil {
		return nil, fmt.Errorf("parse planner response: %w", err)
	}
	return plan, nil
}
