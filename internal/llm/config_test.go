package llm

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr string
	}{
		{Config{Provider: ProviderAnthropic}, "MATHQUEST_ANTHROPIC_API_KEY"},
		{Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, ""},
		{Config{Provider: ProviderOpenAI}, "MATHQUEST_OPENAI_API_KEY"},
		{Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk-test"}}, ""},
		{Config{Provider: ProviderGemini}, "MATHQUEST_GEMINI_API_KEY"},
		{Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, ""},
		{Config{Provider: ProviderMock}, ""},
		{Config{Provider: "unknown"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		switch {
		case tt.wantErr == "" && err != nil:
			t.Errorf("%s: unexpected error %v", tt.cfg.Provider, err)
		case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
			t.Errorf("%s: error = %v, want one mentioning %s", tt.cfg.Provider, err, tt.wantErr)
		}
		if got, want := tt.cfg.HasAPIKey(), tt.wantErr == ""; got != want {
			t.Errorf("%s: HasAPIKey() = %v, want %v", tt.cfg.Provider, got, want)
		}
	}
}

func TestDefaultConfig_UsesGemini(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderGemini {
		t.Fatalf("expected gemini default provider, got %q", cfg.Provider)
	}
	if got := resolveModel(cfg.Gemini.Model, geminiModels); got != "gemini-2.5-flash" {
		t.Fatalf("expected gemini-2.5-flash, got %q", got)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Timeout != 30*time.Second {
		t.Fatalf("retry = %+v, timeout = %s", cfg.Retry, cfg.Timeout)
	}
}

func TestApplyEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("MATHQUEST_LLM_PROVIDER", "openrouter")
	t.Setenv("MATHQUEST_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("MATHQUEST_OPENROUTER_MODEL", "meta-llama/llama-3-8b")
	t.Setenv("MATHQUEST_OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("MATHQUEST_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "sk-or" || cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Fatalf("openrouter config not applied: %+v", cfg.OpenRouter)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:11434/v1" {
		t.Fatalf("base url = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if !cfg.HasAPIKey() {
		t.Fatal("expected HasAPIKey to be true")
	}
}

func TestApplyEnv_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("MATHQUEST_LLM_TIMEOUT", "soon")
	if cfg := ConfigFromEnv(); cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
}

func TestDiscover_PriorityOrder(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider discovered")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-oai" {
		t.Fatalf("expected openai to win over anthropic, got %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "" {
		t.Fatal("only the winning provider's key is copied")
	}
}
