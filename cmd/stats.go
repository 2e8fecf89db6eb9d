package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/progress"
	"github.com/abhisek/mathquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player progress and recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		p, err := rt.progressRepo().Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch progress: %w", err)
		}
		if err := progress.Check(*p); err != nil {
			fmt.Printf("Warning: stored progress is inconsistent: %v\n\n", err)
		}

		fmt.Printf("Store:            %s\n", rt.cfg.ResolvedEngine())
		if p.ID != "" {
			fmt.Printf("Record:           %s\n", p.ID)
		}
		fmt.Printf("Level:            %d (%s)\n", p.Level, progress.LevelTopic(p.Level))
		fmt.Printf("Total XP:         %d\n", p.TotalScore)
		fmt.Printf("Problems solved:  %d\n", p.ProblemsSolved)
		fmt.Printf("Correct answers:  %d\n", p.CorrectAnswers)
		fmt.Printf("Accuracy:         %.0f%%\n", p.Accuracy()*100)
		fmt.Printf("Streak:           %d (best %d)\n", p.Streak, p.BestStreak)
		fmt.Printf("Badges:           %d/%d\n", len(p.Badges), len(progress.Catalog()))

		if limit <= 0 {
			return nil
		}

		answers, err := rt.store.EventRepo().QueryAnswerEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(answers) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Recent Answers")
		fmt.Println(strings.Repeat("─", 72))
		for _, a := range answers {
			fmt.Printf("%s  %s  L%-2d  %+4d  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				mark(a.Correct),
				a.Level,
				a.PointsEarned,
				truncate(a.Question, 44),
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent answers to show (0 to hide)")
}
