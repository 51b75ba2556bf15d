package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/counsel"
	"github.com/abhisek/disha/internal/llm"
	"github.com/abhisek/disha/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect counsellor model requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests with estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %-9s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		var total float64
		var unpriced bool
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			cost := "?"
			if c, known := llm.LookupCost(e.Model); known {
				usd := c.Cost(e.InputTokens, e.OutputTokens)
				total += usd
				cost = llm.FormatCost(usd)
			} else {
				unpriced = true
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %-9s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Purpose, 14),
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				cost,
				ok,
			)
			if !e.Success && e.ErrorMessage != "" {
				fmt.Fprintf(out, "       %s\n", truncate(e.ErrorMessage, 100))
			}
		}

		fmt.Fprintln(out, strings.Repeat("─", 110))
		label := "Estimated total"
		if unpriced {
			label += " (partial)"
		}
		fmt.Fprintf(out, "%s: %s\n", label, llm.FormatCost(total))
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. "+counsel.Purpose+")")

	llmCmd.AddCommand(llmListCmd)
}
