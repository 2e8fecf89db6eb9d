// Package config resolves MathQuest settings from built-in defaults, a TOML
// file, a .env file, environment variables, and command-line overrides, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/remote"
)

// Progress store engines.
const (
	EngineAuto   = "auto"
	EngineRemote = "remote"
	EngineSQLite = "sqlite"
)

// Config is the fully resolved application configuration.
type Config struct {
	// DB is the SQLite database path. It holds the event log and, with the
	// sqlite engine, the progress record.
	DB string `toml:"db"`

	Store  StoreConfig   `toml:"store"`
	Remote remote.Config `toml:"remote"`
	Log    LogConfig     `toml:"log"`
	LLM    llm.Config    `toml:"llm"`
}

// StoreConfig selects where the progress record lives.
type StoreConfig struct {
	// Engine is "auto", "remote" or "sqlite". "auto" picks remote when a URL
	// and API key are configured.
	Engine string `toml:"engine"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`
}

// Options adjusts how Load resolves configuration.
type Options struct {
	// ConfigPath is an explicit TOML file. When set, the file must exist.
	ConfigPath string

	// EnvFile is the dotenv file to load. Default: ".env".
	EnvFile string

	// Flag overrides, applied last. Empty values are ignored.
	Engine string
	DB     string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		DB:    DefaultDBPath(),
		Store: StoreConfig{Engine: EngineAuto},
		Remote: remote.Config{
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load resolves the configuration layers and validates the result.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := LoadFile(path, &cfg, opts.ConfigPath != ""); err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	ApplyEnv(&cfg)

	if opts.Engine != "" {
		cfg.Store.Engine = opts.Engine
	}
	if opts.DB != "" {
		cfg.DB = opts.DB
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over cfg. A missing file is not an
// error unless required is set.
func LoadFile(path string, cfg *Config, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

// ApplyEnv overrides cfg with any MATHQUEST_* variables that are set. When
// the selected LLM provider has no key, the standard provider key variables
// are probed.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.DB, "MATHQUEST_DB")
	set(&cfg.Store.Engine, "MATHQUEST_STORE")
	set(&cfg.Remote.URL, "MATHQUEST_REMOTE_URL")
	set(&cfg.Remote.APIKey, "MATHQUEST_REMOTE_API_KEY")
	set(&cfg.Log.Level, "MATHQUEST_LOG_LEVEL")
	set(&cfg.Log.File, "MATHQUEST_LOG_FILE")

	if v := os.Getenv("MATHQUEST_REMOTE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Remote.Timeout = d
		}
	}

	llm.ApplyEnv(&cfg.LLM)
	if !cfg.LLM.HasAPIKey() {
		llm.Discover(&cfg.LLM)
	}
}

// ResolvedEngine returns the concrete engine, resolving "auto".
func (c Config) ResolvedEngine() string {
	if c.Store.Engine != EngineAuto {
		return c.Store.Engine
	}
	if c.Remote.URL != "" && c.Remote.APIKey != "" {
		return EngineRemote
	}
	return EngineSQLite
}

// Validate checks engine names, remote settings, and the log level. A missing
// LLM key is not an error: the game falls back to built-in problems.
func (c Config) Validate() error {
	switch c.Store.Engine {
	case EngineAuto, EngineSQLite:
	case EngineRemote:
		if c.Remote.URL == "" {
			return fmt.Errorf("MATHQUEST_REMOTE_URL is required for the remote store")
		}
		if c.Remote.APIKey == "" {
			return fmt.Errorf("MATHQUEST_REMOTE_API_KEY is required for the remote store")
		}
	default:
		return fmt.Errorf("unknown store engine: %q", c.Store.Engine)
	}

	if c.DB == "" {
		return fmt.Errorf("database path is empty")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote timeout must not be negative")
	}
	return nil
}
