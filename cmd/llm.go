package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded problem-generation and feedback requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")
		since, _ := cmd.Flags().GetDuration("since")

		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := store.QueryOpts{}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		// Filters are applied here, so the limit is too.
		events, err := rt.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query LLM events: %w", err)
		}

		var shown []store.LLMRequestEvent
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if failed && e.Success {
				continue
			}
			shown = append(shown, e)
			if limit > 0 && len(shown) == limit {
				break
			}
		}
		if len(shown) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		t := newTable(4, "ID", "TIME", "PURPOSE", "MODEL", "IN", "OUT", "MS", "OK")
		for _, e := range shown {
			t.Row(strconv.Itoa(e.ID), e.Timestamp.Local().Format(timeLayout), e.Purpose,
				truncate(e.Model, 28), strconv.Itoa(e.InputTokens), strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10), mark(e.Success))
		}
		_, err = lipgloss.Println(t)
		return err
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		e, err := rt.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get LLM event %d: %w", id, err)
		}
		if e == nil {
			return fmt.Errorf("LLM event %d not found", id)
		}

		field := func(label, format string, args ...any) {
			fmt.Printf("%-10s %s\n", label+":", fmt.Sprintf(format, args...))
		}
		field("ID", "%d", e.ID)
		field("Time", "%s", e.Timestamp.Local().Format(timeLayout))
		field("Provider", "%s", e.Provider)
		field("Model", "%s", e.Model)
		field("Purpose", "%s", e.Purpose)
		field("Tokens", "%d in, %d out", e.InputTokens, e.OutputTokens)
		if c := llm.LookupCost(e.Model); c != nil {
			field("Cost", "%s", formatCost(c.Cost(e.InputTokens, e.OutputTokens)))
		}
		field("Latency", "%dms", e.LatencyMs)
		field("Result", "%s", mark(e.Success))
		if e.ErrorMessage != "" {
			field("Error", "%s", e.ErrorMessage)
		}

		section(os.Stdout, "REQUEST", e.RequestBody)
		section(os.Stdout, "RESPONSE", prettyJSON(e.ResponseBody))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		repo := rt.store.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded.")
			return nil
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query usage by model: %w", err)
		}

		purposes := newTable(1, "PURPOSE", "CALLS", "INPUT", "OUTPUT", "AVG MS")
		var calls, in, out int
		for _, u := range byPurpose {
			purposes.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		purposes.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), "")

		models := newTable(1, "MODEL", "CALLS", "INPUT", "OUTPUT", "COST")
		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if c := llm.LookupCost(u.Model); c != nil {
				usd := c.Cost(u.InputTokens, u.OutputTokens)
				total += usd
				cost = formatCost(usd)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			models.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), cost)
		}
		label := "total"
		if len(unpriced) > 0 {
			label = "total (partial)"
		}
		models.Row(label, "", "", "", formatCost(total))

		if _, err := lipgloss.Println(purposes.String() + "\n"); err != nil {
			return err
		}
		if _, err := lipgloss.Println(models); err != nil {
			return err
		}

		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// newTable is a borderless table with a faint header rule. Columns from
// index rightFrom on hold numbers and are right-aligned.
func newTable(rightFrom int, headers ...string) *table.Table {
	head := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
		BorderColumn(false).
		BorderStyle(lipgloss.NewStyle().Faint(true)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = head
			}
			if col >= rightFrom {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

func section(w io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

// prettyJSON indents s when it is JSON and returns it unchanged otherwise.
func prettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show (0 for all)")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (problem-gen, explain)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
