package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mathquest/internal/store"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (w *recordingWriter) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, data)
	return w.err
}

func TestLogging_RecordsSuccessfulRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"question":"2+2?"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
	})
	w := &recordingWriter{}
	p := WithLogging(mock, w, zap.NewNop())

	ctx := WithPurpose(context.Background(), "problem-gen")
	_, err := p.Generate(ctx, Request{
		System:   "You are a quiz master.",
		Messages: []Message{{Role: RoleUser, Content: "Level 1 please"}},
	})
	require.NoError(t, err)

	require.Len(t, w.events, 1)
	ev := w.events[0]
	assert.Equal(t, "problem-gen", ev.Purpose)
	assert.Equal(t, "mock", ev.Model)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 7, ev.OutputTokens)
	assert.Contains(t, ev.RequestBody, "[system]\nYou are a quiz master.")
	assert.Contains(t, ev.RequestBody, "[user]\nLevel 1 please")
	assert.Equal(t, `{"question":"2+2?"}`, ev.ResponseBody)
	assert.Empty(t, ev.ErrorMessage)
}

func TestLogging_RecordsFailureAndWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("boom")}})
	w := &recordingWriter{}
	p := WithLogging(mock, w, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, w.events, 1)
	assert.False(t, w.events[0].Success)
	assert.Equal(t, "unknown", w.events[0].Purpose)
	assert.True(t, strings.Contains(w.events[0].ErrorMessage, "boom"))
	assert.Equal(t, 1, logs.FilterMessage("llm request failed").Len())
}

func TestLogging_WriterFailureDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	w := &recordingWriter{err: errors.New("disk full")}
	p := WithLogging(mock, w, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to log LLM request event").Len())
}

func TestLogging_NilWriter(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	p := WithLogging(mock, nil, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(resp.Content))
	assert.Equal(t, "mock", p.ModelID())
}

func TestSerializeRequest_IncludesSchema(t *testing.T) {
	out := serializeRequest(Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema: &Schema{
			Name:       "quiz-problem",
			Definition: map[string]any{"type": "object"},
		},
	})
	assert.Contains(t, out, "[schema: quiz-problem]")
	assert.Contains(t, out, `{"type":"object"}`)
}
