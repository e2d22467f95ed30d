package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cinematch/internal/store"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect recorded catalog requests",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent catalog requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		label, _ := cmd.Flags().GetString("label")

		e, err := loadEnv(cmd, logConsole)
		if err != nil {
			return err
		}
		defer e.Close()
		s, err := e.requireStore()
		if err != nil {
			return err
		}

		events, err := s.EventRepo().QueryCatalogEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No catalog requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-5s  %-5s  %-7s  %-18s  %s\n",
			"ID", "Timestamp", "Label", "Req", "Got", "Ms", "Outcome", "Error")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, ev := range events {
			if label != "" && ev.Label != label {
				continue
			}
			outcome := ev.Outcome
			if ev.StatusCode != 0 {
				outcome = fmt.Sprintf("%s (%d)", outcome, ev.StatusCode)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-5d  %-5d  %-7d  %-18s  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Label,
				ev.Requested,
				ev.Returned,
				ev.LatencyMs,
				outcome,
				truncate(ev.ErrorMessage, 40),
			)
		}
		return nil
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog request counts per genre label",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, logConsole)
		if err != nil {
			return err
		}
		defer e.Close()
		s, err := e.requireStore()
		if err != nil {
			return err
		}

		usage, err := s.EventRepo().CatalogUsageByLabel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No catalog requests recorded.")
			return nil
		}

		fmt.Fprintln(out, "Requests by Label")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		fmt.Fprintf(out, "%-12s  %6s  %8s  %6s  %8s\n", "Label", "Calls", "Failures", "Empty", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 56))

		var calls, failures, empty int
		for _, u := range usage {
			fmt.Fprintf(out, "%-12s  %6d  %8d  %6d  %8d\n", u.Label, u.Calls, u.Failures, u.Empty, u.AvgLatencyMs)
			calls += u.Calls
			failures += u.Failures
			empty += u.Empty
		}
		fmt.Fprintln(out, strings.Repeat("─", 56))
		fmt.Fprintf(out, "%-12s  %6d  %8d  %6d\n", "TOTAL", calls, failures, empty)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	catalogListCmd.Flags().StringP("label", "l", "", "Filter by genre label (e.g. comedy, sci-fi)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
}
