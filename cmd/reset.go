package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathquest/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset player progress to level 1",
	Long:  "Overwrite the stored progress with a fresh record. The record keeps its ID.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("refusing to reset without --yes")
		}

		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		repo := rt.progressRepo()
		current, err := repo.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch progress: %w", err)
		}

		fresh := progress.Initial()
		fresh.ID = current.ID
		if _, err := repo.Update(ctx, fresh); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}

		rt.logger.Info("progress reset", zap.String("id", current.ID), zap.Int("previous_level", current.Level))
		fmt.Printf("Progress reset (was level %d, %d XP).\n", current.Level, current.TotalScore)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
