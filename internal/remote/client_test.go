package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/progress"
)

type recordedRequest struct {
	Method string
	Path   string
	APIKey string
	Body   map[string]any
}

// fakeStore is an httptest handler that records requests and replies with
// canned responses per method.
type fakeStore struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]func(w http.ResponseWriter)
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, APIKey: r.Header.Get("api_key")}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	respond, ok := f.responses[r.Method]
	if !ok {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	respond(w)
}

func jsonReply(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestClient(t *testing.T, fake *fakeStore) *Client {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return New(Config{URL: server.URL + "/entities/GameProgress/", APIKey: "secret"}, server.Client(), nil)
}

func TestFetch_ReturnsFirstRecord(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodGet: jsonReply(http.StatusOK, `[
			{"_id": "abc", "level": 3, "total_score": 120, "problems_solved": 14, "correct_answers": 11, "badges": ["novice_counter"], "streak": 2, "best_streak": 5},
			{"_id": "def", "level": 1}
		]`),
	}}
	c := newTestClient(t, fake)

	p, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 120, p.TotalScore)
	assert.Equal(t, []progress.BadgeID{progress.BadgeNoviceCounter}, p.Badges)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "/entities/GameProgress", fake.requests[0].Path)
	assert.Equal(t, "secret", fake.requests[0].APIKey)
}

func TestFetch_EmptyListCreates(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodGet:  jsonReply(http.StatusOK, `[]`),
		http.MethodPost: jsonReply(http.StatusCreated, `{"_id": "new1", "level": 1, "total_score": 0, "problems_solved": 0, "correct_answers": 0, "badges": [], "streak": 0, "best_streak": 0}`),
	}}
	c := newTestClient(t, fake)

	p, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new1", p.ID)
	assert.Equal(t, 1, p.Level)
	assert.NotNil(t, p.Badges)

	require.Len(t, fake.requests, 2)
	post := fake.requests[1]
	assert.Equal(t, http.MethodPost, post.Method)
	assert.NotContains(t, post.Body, "_id")
	assert.Equal(t, float64(1), post.Body["level"])
	assert.Equal(t, []any{}, post.Body["badges"])
}

func TestFetch_StatusError(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodGet: jsonReply(http.StatusUnauthorized, `{"error": "bad key"}`),
	}}
	c := newTestClient(t, fake)

	_, err := c.Fetch(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "fetch", statusErr.Op)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad key")
	assert.False(t, statusErr.Temporary())
}

func TestFetch_MalformedBody(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodGet: jsonReply(http.StatusOK, `{"not": "a list"}`),
	}}
	c := newTestClient(t, fake)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestUpdate_StripsIDFromBody(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodPut: jsonReply(http.StatusOK, `{"_id": "abc", "level": 2, "total_score": 80, "problems_solved": 5, "correct_answers": 5, "badges": ["novice_counter", "streak_master", "level_up"], "streak": 5, "best_streak": 5}`),
	}}
	c := newTestClient(t, fake)

	in := progress.Progress{
		ID: "abc", Level: 2, TotalScore: 80, ProblemsSolved: 5, CorrectAnswers: 5,
		Badges: []progress.BadgeID{progress.BadgeNoviceCounter, progress.BadgeStreakMaster, progress.BadgeLevelUp},
		Streak: 5, BestStreak: 5,
	}
	out, err := c.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, *out)

	require.Len(t, fake.requests, 1)
	put := fake.requests[0]
	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, "/entities/GameProgress/abc", put.Path)
	assert.NotContains(t, put.Body, "_id")
	assert.Equal(t, float64(80), put.Body["total_score"])
	assert.Equal(t, "abc", in.ID, "caller's record must not be modified")
}

func TestUpdate_EmptyResponseBody(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodPut: jsonReply(http.StatusOK, ``),
	}}
	c := newTestClient(t, fake)

	in := progress.Progress{ID: "abc", Level: 4, TotalScore: 300, Badges: []progress.BadgeID{}}
	out, err := c.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestUpdate_WithoutIDCreates(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodPost: jsonReply(http.StatusOK, `{"_id": "fresh", "level": 1, "badges": []}`),
	}}
	c := newTestClient(t, fake)

	out, err := c.Update(context.Background(), progress.Progress{Level: 5, TotalScore: 999})
	require.NoError(t, err)
	assert.Equal(t, "fresh", out.ID)
	assert.Equal(t, 1, out.Level)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, http.MethodPost, fake.requests[0].Method)
}

func TestUpdate_ServerError(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodPut: jsonReply(http.StatusBadGateway, `upstream down`),
	}}
	c := newTestClient(t, fake)

	_, err := c.Update(context.Background(), progress.Progress{ID: "abc", Level: 1})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "update", statusErr.Op)
	assert.True(t, statusErr.Temporary())
	assert.Equal(t, "update progress: HTTP 502 Bad Gateway: upstream down", err.Error())
}

func TestCreate_NullBadgesNormalized(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodPost: jsonReply(http.StatusCreated, `{"_id": "x", "level": 0, "badges": null}`),
	}}
	c := newTestClient(t, fake)

	p, err := c.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Level)
	assert.NotNil(t, p.Badges)
	assert.Empty(t, p.Badges)
}

func TestCanceledContext(t *testing.T) {
	fake := &fakeStore{responses: map[string]func(http.ResponseWriter){
		http.MethodGet: jsonReply(http.StatusOK, `[]`),
	}}
	c := newTestClient(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("  abc  ", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
