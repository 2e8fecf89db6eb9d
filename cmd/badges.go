package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/progress"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges and which ones are unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.progressRepo().Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch progress: %w", err)
		}

		for _, b := range progress.Catalog() {
			box := " "
			if p.HasBadge(b.ID) {
				box = "✓"
			}
			fmt.Printf("[%s] %s  %-16s %s\n", box, b.Icon, b.Name, b.Description)
		}
		return nil
	},
}
