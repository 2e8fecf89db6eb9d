package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathquest/internal/config"
	"github.com/abhisek/mathquest/internal/logging"
	"github.com/abhisek/mathquest/internal/remote"
	"github.com/abhisek/mathquest/internal/store"
)

// env holds the resources shared by every command.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
}

// loadConfig resolves the configuration from the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	opts := config.Options{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.EnvFile, _ = flags.GetString("env-file")
	opts.DB, _ = flags.GetString("db")
	opts.Engine, _ = flags.GetString("store")

	cfg, err := config.Load(opts)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openEnv loads the configuration, starts the logger and opens the local
// database. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewOrNop(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
	}

	if err := store.EnsureDir(cfg.DB); err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(cfg.DB)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("db", cfg.DB),
		zap.String("engine", cfg.ResolvedEngine()),
		zap.String("llm_provider", cfg.LLM.Provider),
	)
	return &env{cfg: cfg, logger: logger, store: st}, nil
}

// progressRepo returns the configured progress store engine.
func (e *env) progressRepo() store.ProgressRepo {
	if e.cfg.ResolvedEngine() == config.EngineRemote {
		return remote.New(e.cfg.Remote, nil, e.logger)
	}
	return e.store.ProgressRepo()
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = e.logger.Sync()
}
