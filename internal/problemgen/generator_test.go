package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/progress"
)

func validProblemJSON() json.RawMessage {
	return json.RawMessage(`{
		"question": "What is 345 + 278?",
		"options": ["613", "623", "633", "523"],
		"correctOptionIndex": 1,
		"topic": "Basic Arithmetic (Addition/Subtraction)",
		"difficultyRating": 2
	}`)
}

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validProblemJSON()})
	gen := New(mock, DefaultConfig())

	p, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Question != "What is 345 + 278?" {
		t.Errorf("unexpected question: %q", p.Question)
	}
	if len(p.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(p.Options))
	}
	if p.CorrectOption() != "623" {
		t.Errorf("expected correct option 623, got %q", p.CorrectOption())
	}
	if p.DifficultyRating != 2 {
		t.Errorf("expected difficulty 2, got %d", p.DifficultyRating)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validProblemJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Level:          4,
		PriorQuestions: []string{"What is 1/2 + 1/4?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ProblemSchema {
		t.Error("expected ProblemSchema on request")
	}
	if req.System != systemPrompt {
		t.Error("expected problem system prompt")
	}
	if req.MaxTokens != 512 {
		t.Errorf("expected MaxTokens 512, got %d", req.MaxTokens)
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Topic: Fractions & Decimals") {
		t.Errorf("missing level topic in %q", msg)
	}
	if !strings.Contains(msg, "1. What is 1/2 + 1/4?") {
		t.Errorf("missing prior question in %q", msg)
	}
}

func TestGenerate_FillsMissingTopic(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "Solve for x: 2x + 3 = 11",
		"options": ["3", "4", "5", "7"],
		"correctOptionIndex": 1,
		"topic": "",
		"difficultyRating": 4
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	p, err := gen.Generate(context.Background(), GenerateInput{Level: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Topic != "Basic Algebra" {
		t.Errorf("expected level topic, got %q", p.Topic)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("expected *llm.ErrProviderUnavailable in chain, got %T", err)
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse LLM response") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_ValidationFailure(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "What is 10 + 5?",
		"options": ["15", "16", "14"],
		"correctOptionIndex": 0,
		"topic": "Basic Arithmetic (Addition/Subtraction)",
		"difficultyRating": 1
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if valErr.Validator != "structural" {
		t.Errorf("expected structural validator, got %q", valErr.Validator)
	}
}

func TestGenerate_WrongAnswerRejected(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "What is 23 * 45?",
		"options": ["1035", "1025", "935", "1135"],
		"correctOptionIndex": 1,
		"topic": "Multiplication Basics",
		"difficultyRating": 3
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Level: 2})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if valErr.Validator != "math-check" {
		t.Errorf("expected math-check validator, got %q", valErr.Validator)
	}
}

func TestGenerate_RepeatRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validProblemJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Level:          1,
		PriorQuestions: []string{"what is 345 + 278?"},
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if valErr.Validator != "dedup" {
		t.Errorf("expected dedup validator, got %q", valErr.Validator)
	}
}

// maxDifficultyValidator rejects problems rated above a threshold.
type maxDifficultyValidator struct {
	max int
}

func (v *maxDifficultyValidator) Name() string { return "max-difficulty" }

func (v *maxDifficultyValidator) Validate(p *progress.Problem, _ GenerateInput) *ValidationError {
	if p.DifficultyRating > v.max {
		return &ValidationError{Validator: v.Name(), Message: "too hard"}
	}
	return nil
}

func TestGenerate_CustomValidator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validProblemJSON()})
	cfg := DefaultConfig()
	cfg.Validators = append(cfg.Validators, &maxDifficultyValidator{max: 1})
	gen := New(mock, cfg)

	_, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if valErr.Validator != "max-difficulty" {
		t.Errorf("expected max-difficulty validator, got %q", valErr.Validator)
	}
}

func TestGenerate_NoValidators(t *testing.T) {
	raw := json.RawMessage(`{"question": "?", "options": [], "correctOptionIndex": 9, "topic": "x", "difficultyRating": 0}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	cfg := DefaultConfig()
	cfg.Validators = nil
	gen := New(mock, cfg)

	p, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CorrectOptionIndex != 9 {
		t.Errorf("expected raw index to pass through, got %d", p.CorrectOptionIndex)
	}
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("  Great job! Did you know 623 is a prime number?\n"),
	})
	gen := New(mock, DefaultConfig())

	problem := progress.Problem{
		Question:           "What is 345 + 278?",
		Options:            []string{"613", "623", "633", "523"},
		CorrectOptionIndex: 1,
	}
	text, err := gen.Explain(context.Background(), ExplainInput{
		Problem:      problem,
		ChosenOption: "623",
		Correct:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Great job! Did you know 623 is a prime number?" {
		t.Errorf("unexpected text: %q", text)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("explain request should not carry a schema")
	}
	if req.MaxTokens != 128 {
		t.Errorf("expected MaxTokens 128, got %d", req.MaxTokens)
	}
	if !strings.Contains(req.Messages[0].Content, "Player answered: 623") {
		t.Errorf("missing chosen option in %q", req.Messages[0].Content)
	}
}

func TestExplain_EmptyResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("   ")})
	gen := New(mock, DefaultConfig())

	_, err := gen.Explain(context.Background(), ExplainInput{Problem: Fallback(1)})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *llm.ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestExplain_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	_, err := gen.Explain(context.Background(), ExplainInput{Problem: Fallback(1)})
	if err == nil {
		t.Fatal("expected error from empty mock")
	}
	if !strings.Contains(err.Error(), "LLM explanation failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLLMGenerator_ImplementsGenerator(t *testing.T) {
	var _ Generator = (*LLMGenerator)(nil)
}
