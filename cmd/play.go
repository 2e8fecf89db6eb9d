package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathquest/internal/game"
	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a mission (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd)
	},
}

// runGame builds the game dependencies and launches the TUI.
func runGame(cmd *cobra.Command) error {
	rt, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	events := rt.store.EventRepo()

	// The game runs without a provider, serving practice problems only.
	var gen problemgen.Generator
	if rt.cfg.LLM.HasAPIKey() {
		provider, err := llm.NewProvider(cmd.Context(), rt.cfg.LLM, events, rt.logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
			rt.logger.Warn("LLM provider unavailable", zap.Error(err))
		} else {
			gen = problemgen.New(provider, problemgen.DefaultConfig())
		}
	}

	rt.logger.Info("starting game",
		zap.String("engine", rt.cfg.ResolvedEngine()),
		zap.Bool("ai", gen != nil),
	)

	ctrl := game.New(rt.progressRepo(), gen,
		game.WithAnswerLogger(events),
		game.WithLogger(rt.logger),
	)
	final, runErr := tui.Run(ctrl)

	ctx, cancel := context.WithTimeout(context.Background(), game.DefaultTimeout)
	defer cancel()
	if err := ctrl.Flush(ctx, final); err != nil {
		fmt.Fprintln(os.Stderr, "Your latest progress could not be saved:", err)
		rt.logger.Error("final save failed", zap.Error(err))
		if runErr == nil {
			return err
		}
	}
	return runErr
}
