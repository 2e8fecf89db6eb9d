package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "explain")
	if p := PurposeFrom(ctx); p != "explain" {
		t.Fatalf("expected 'explain', got %q", p)
	}

	if s := SessionFrom(ctx); s != "" {
		t.Fatalf("expected no session, got %q", s)
	}
	ctx = WithSession(ctx, "run-42")
	if s := SessionFrom(ctx); s != "run-42" || PurposeFrom(ctx) != "explain" {
		t.Fatalf("session = %q, purpose = %q", s, PurposeFrom(ctx))
	}
}

func TestResponse_Text(t *testing.T) {
	r := &Response{Content: json.RawMessage("  Great job, 6 times 7 is 42.\n")}
	if got := r.Text(); got != "Great job, 6 times 7 is 42." {
		t.Fatalf("Text() = %q", got)
	}
}
