package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/progress"
)

// Purpose labels recorded on LLM request events.
const (
	PurposeProblemGen = "problem-gen"
	PurposeExplain    = "explain"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces a single problem for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*progress.Problem, error) {
	ctx = llm.WithPurpose(ctx, PurposeProblemGen)
	if input.SessionID != "" {
		ctx = llm.WithSession(ctx, input.SessionID)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var p progress.Problem
	if err := json.Unmarshal(resp.Content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	p.Question = strings.TrimSpace(p.Question)
	if strings.TrimSpace(p.Topic) == "" {
		p.Topic = progress.LevelTopic(input.Level)
	}

	if verr := runValidators(g.config.Validators, &p, input); verr != nil {
		return nil, verr
	}

	return &p, nil
}

// Explain returns one sentence of feedback for the answered problem.
func (g *LLMGenerator) Explain(ctx context.Context, input ExplainInput) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeExplain)
	if input.SessionID != "" {
		ctx = llm.WithSession(ctx, input.SessionID)
	}

	req := llm.Request{
		System: explainSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplainMessage(input)},
		},
		MaxTokens:   g.config.ExplainMaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM explanation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty explanation")}
	}
	return text, nil
}
