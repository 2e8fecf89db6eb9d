package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var (
	problemJSON = json.RawMessage(`{"question":"What is 6 x 7?","options":["36","42","48","54"],"correctOptionIndex":1}`)
	unavailable = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
	garbled     = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"question":`), Err: errors.New("unexpected EOF")}}
)

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{{Content: problemJSON}}, false, 1},
		{"transient then ok", []MockResponse{unavailable, {Content: problemJSON}}, false, 2},
		{"rate limit then ok", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
			{Content: problemJSON},
		}, false, 2},
		{"gives up after max attempts", []MockResponse{unavailable, unavailable, unavailable, {Content: problemJSON}}, true, 3},
		{"truncation not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"question":"Wh`)}}}, true, 1},
		{"invalid response retried once", []MockResponse{garbled, garbled, {Content: problemJSON}}, true, 2},
		{"invalid then ok", []MockResponse{garbled, {Content: problemJSON}}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != string(problemJSON) {
					t.Fatalf("content = %s", resp.Content)
				}
			}
			if got := mock.CallCount(); got != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetry_TruncationKeepsErrorType(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})

	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	mock := NewMockProvider(unavailable, unavailable, MockResponse{Content: problemJSON})
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsTriesOnce(t *testing.T) {
	mock := NewMockProvider(unavailable, MockResponse{Content: problemJSON})

	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_DelayBounds(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	for n, base := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond} {
		d := r.delay(n, errors.New("x"))
		lo, hi := base*8/10, base*12/10
		if d < lo || d > hi {
			t.Errorf("delay(%d) = %s, want within [%s, %s]", n, d, lo, hi)
		}
	}

	rl := &ErrRateLimit{RetryAfter: 7 * time.Second}
	if d := r.delay(0, rl); d != 7*time.Second {
		t.Errorf("rate limit delay = %s, want 7s", d)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if got := WithRetry(NewMockProvider(), fastRetry()).ModelID(); got != MockModel {
		t.Fatalf("ModelID = %q", got)
	}
}
