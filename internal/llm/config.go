package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM backend. It is read from the
// [llm] table of config.toml and MATHQUEST_* environment variables.
type Config struct {
	Provider string `toml:"provider"`

	Anthropic  AnthropicConfig  `toml:"anthropic"`
	OpenAI     OpenAIConfig     `toml:"openai"`
	Gemini     GeminiConfig     `toml:"gemini"`
	OpenRouter OpenRouterConfig `toml:"openrouter"`
	Retry      RetryConfig      `toml:"retry"`

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration `toml:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// OpenAIConfig also serves OpenAI-compatible servers through BaseURL.
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// OpenRouterConfig takes vendor-prefixed model IDs such as
// "google/gemini-2.5-flash".
type OpenRouterConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

// RetryConfig shapes the exponential backoff of RetryProvider.
type RetryConfig struct {
	MaxAttempts int           `toml:"max_attempts"`
	InitialWait time.Duration `toml:"initial_wait"`
	MaxWait     time.Duration `toml:"max_wait"`
	Multiplier  float64       `toml:"multiplier"`
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// credential ties a provider to its key field and the env vars that set it.
type credential struct {
	provider string
	envKey   string // MATHQUEST_* override
	stdKey   string // vendor's conventional variable, used for discovery
	envModel string
	key      func(*Config) *string
	model    func(*Config) *string
}

// credentials is ordered by discovery priority.
var credentials = []credential{
	{
		provider: ProviderGemini,
		envKey:   "MATHQUEST_GEMINI_API_KEY", stdKey: "GEMINI_API_KEY", envModel: "MATHQUEST_GEMINI_MODEL",
		key:   func(c *Config) *string { return &c.Gemini.APIKey },
		model: func(c *Config) *string { return &c.Gemini.Model },
	},
	{
		provider: ProviderOpenAI,
		envKey:   "MATHQUEST_OPENAI_API_KEY", stdKey: "OPENAI_API_KEY", envModel: "MATHQUEST_OPENAI_MODEL",
		key:   func(c *Config) *string { return &c.OpenAI.APIKey },
		model: func(c *Config) *string { return &c.OpenAI.Model },
	},
	{
		provider: ProviderAnthropic,
		envKey:   "MATHQUEST_ANTHROPIC_API_KEY", stdKey: "ANTHROPIC_API_KEY", envModel: "MATHQUEST_ANTHROPIC_MODEL",
		key:   func(c *Config) *string { return &c.Anthropic.APIKey },
		model: func(c *Config) *string { return &c.Anthropic.Model },
	},
	{
		provider: ProviderOpenRouter,
		envKey:   "MATHQUEST_OPENROUTER_API_KEY", stdKey: "OPENROUTER_API_KEY", envModel: "MATHQUEST_OPENROUTER_MODEL",
		key:   func(c *Config) *string { return &c.OpenRouter.APIKey },
		model: func(c *Config) *string { return &c.OpenRouter.Model },
	},
}

func credentialFor(provider string) (credential, bool) {
	for _, cr := range credentials {
		if cr.provider == provider {
			return cr, true
		}
	}
	return credential{}, false
}

// ConfigFromEnv is DefaultConfig with ApplyEnv applied.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overrides cfg with the MATHQUEST_* LLM variables that are set.
// An unparsable MATHQUEST_LLM_TIMEOUT is ignored.
func ApplyEnv(cfg *Config) {
	setFromEnv(&cfg.Provider, "MATHQUEST_LLM_PROVIDER")
	for _, cr := range credentials {
		setFromEnv(cr.key(cfg), cr.envKey)
		setFromEnv(cr.model(cfg), cr.envModel)
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "MATHQUEST_OPENAI_BASE_URL")

	if d, err := time.ParseDuration(os.Getenv("MATHQUEST_LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// HasAPIKey reports whether the selected provider can be used as is.
func (c Config) HasAPIKey() bool {
	if c.Provider == ProviderMock {
		return true
	}
	cr, ok := credentialFor(c.Provider)
	return ok && *cr.key(&c) != ""
}

// DiscoverConfig returns DefaultConfig with the first provider that has a
// conventional API key variable set, or false when none has.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	if !Discover(&cfg) {
		return Config{}, false
	}
	return cfg, true
}

// Discover selects the first provider whose vendor API key variable is set
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// and copies the key into cfg.
func Discover(cfg *Config) bool {
	for _, cr := range credentials {
		if k := os.Getenv(cr.stdKey); k != "" {
			cfg.Provider = cr.provider
			*cr.key(cfg) = k
			return true
		}
	}
	return false
}

// Validate rejects unknown providers and missing keys.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	cr, ok := credentialFor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *cr.key(&c) == "" {
		return fmt.Errorf("%s is required for the %s provider", cr.envKey, cr.provider)
	}
	return nil
}
