package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")

	h := http.Header{}
	h.Set("Retry-After", "12")
	var rl *ErrRateLimit
	if err := classifyStatus(http.StatusTooManyRequests, h, cause); !errors.As(err, &rl) {
		t.Fatalf("429: got %T", err)
	}
	if rl.RetryAfter != 12*time.Second {
		t.Fatalf("RetryAfter = %s", rl.RetryAfter)
	}
	if !errors.Is(rl, cause) {
		t.Fatal("rate limit must wrap the cause")
	}

	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		var un *ErrProviderUnavailable
		if err := classifyStatus(status, nil, cause); !errors.As(err, &un) {
			t.Errorf("%d: got %T", status, err)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":                              0,
		"3":                             3 * time.Second,
		"0":                             0,
		"-1":                            0,
		"Wed, 21 Oct 2026 07:28:00 GMT": 0,
	}
	for v, want := range tests {
		h := http.Header{}
		if v != "" {
			h.Set("Retry-After", v)
		}
		if got := retryAfter(h); got != want {
			t.Errorf("retryAfter(%q) = %s, want %s", v, got, want)
		}
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&ErrProviderUnavailable{}, true},
		{&ErrRateLimit{}, true},
		{&ErrInvalidResponse{Err: errors.New("x")}, true},
		{&ErrMaxTokensExceeded{}, false},
		{fmt.Errorf("wrapped: %w", &ErrMaxTokensExceeded{}), false},
		{context.Canceled, false},
		{&ErrProviderUnavailable{Err: context.DeadlineExceeded}, false},
	}
	for _, tt := range tests {
		if got := retryable(tt.err); got != tt.want {
			t.Errorf("retryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (&ErrProviderUnavailable{}).Error(); got != "LLM provider unavailable" {
		t.Errorf("unavailable = %q", got)
	}
	rl := &ErrRateLimit{RetryAfter: 2 * time.Second, Err: errors.New("429")}
	if got := rl.Error(); got != "LLM rate limited, retry after 2s: 429" {
		t.Errorf("rate limit = %q", got)
	}
}
