package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockModel is the model ID reported by MockProvider.
const MockModel = "mock"

var errMockExhausted = errors.New("mock: no responses queued")

// MockResponse is one canned reply. A non-nil Err is returned instead of
// a response.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string // StopEnd when empty
	Err        error
}

// MockText is a canned plain-text reply, as returned for schema-less
// requests.
func MockText(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

// MockJSON is a canned reply holding v encoded as JSON. It panics if v
// cannot be encoded.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		panic("llm: MockJSON: " + err.Error())
	}
	return MockResponse{Content: b}
}

// MockProvider replays canned responses in order and records every
// request. Once the queue is empty it fails with ErrProviderUnavailable.
// It backs the "mock" provider setting and tests.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider returns a MockProvider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{Err: errMockExhausted}
	}

	next := m.queue[0]
	m.queue = m.queue[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = StopEnd
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      MockModel,
		StopReason: stop,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return MockModel
}

// AddResponse queues another canned response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.queue = append(m.queue, resp)
	m.mu.Unlock()
}

// CallCount returns the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns the number of queued responses not yet served.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
