package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Space math quiz adventure",
	Long: "MathQuest: a terminal math quiz with AI-generated problems.\n\n" +
		"Answer multiple-choice questions to earn XP, climb ten levels and unlock badges.\n" +
		"Progress is kept in a remote document store or a local SQLite database.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathquest/config.toml)")
	rootCmd.PersistentFlags().String("env-file", "", "Path to .env file (default ./.env)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHQUEST_DB env var)")
	rootCmd.PersistentFlags().String("store", "", "Progress store engine: auto, remote or sqlite (overrides MATHQUEST_STORE)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
