package llm

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("mock provider must not be wrapped, got %T", p)
	}

	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "sk-test"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Fatalf("expected timeout wrapper outermost, got %T", p)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = ""
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}

	cfg.Provider = "llama"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

type deadlineProvider struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	d.deadline, d.ok = ctx.Deadline()
	return &Response{StopReason: StopEnd}, nil
}

func (d *deadlineProvider) ModelID() string { return "deadline" }

func TestWithTimeout(t *testing.T) {
	inner := &deadlineProvider{}
	p := WithTimeout(inner, time.Minute)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inner.ok || time.Until(inner.deadline) > time.Minute {
		t.Fatalf("deadline = %v (set %v)", inner.deadline, inner.ok)
	}
	if p.ModelID() != "deadline" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	if WithTimeout(inner, 0) != Provider(inner) {
		t.Fatal("zero timeout must return the provider unchanged")
	}
}
