package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestNewOpenRouterProvider_ModelPassThrough(t *testing.T) {
	for _, model := range []string{"google/gemini-2.5-flash", "anthropic/claude-haiku-4.5", "gpt-4o-mini"} {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != model {
			t.Errorf("ModelID = %q, want %q", p.ModelID(), model)
		}
	}
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var gotTitle, gotReferer, gotAuth, gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("X-Title")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("Correct! 8 x 3 is 24."))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.5-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Explain."}},
		MaxTokens: 64,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Correct! 8 x 3 is 24." {
		t.Fatalf("text = %q", resp.Text())
	}
	if gotTitle != openRouterTitle || gotReferer != openRouterReferer {
		t.Fatalf("attribution headers = %q, %q", gotTitle, gotReferer)
	}
	if gotAuth != "Bearer sk-or-test" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotModel != "google/gemini-2.5-flash" {
		t.Fatalf("model = %q", gotModel)
	}
}
