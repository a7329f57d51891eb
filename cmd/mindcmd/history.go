package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/mindcmd/internal/history"
)

func (c *cli) historyCmd() *cobra.Command {
	var (
		limit int
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently dispatched commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.History.Enabled {
				return fmt.Errorf("history is disabled in the configuration")
			}
			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			store := a.History()
			out := cmd.OutOrStdout()

			if stats {
				rows, err := store.ByCommand(cmd.Context(), limit)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-16s %6s %8s  %s", "COMMAND", "RUNS", "FAILURES", "LAST RUN")))
				for _, r := range rows {
					fmt.Fprintf(out, "%-16s %6d %8d  %s\n", r.Command, r.Runs, r.Failures, r.LastRun.Format(time.DateTime))
				}
				return nil
			}

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for i := len(entries) - 1; i >= 0; i-- {
				line, err := entryLine(entries[i], c.jsonOut)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show per-command totals")
	cmd.Flags().BoolVar(&c.jsonOut, "json", false, "Print entries as JSON lines")
	return cmd
}

func entryLine(e history.Entry, jsonOut bool) (string, error) {
	if jsonOut {
		doc := "{}"
		var err error
		for _, kv := range []struct {
			path  string
			value any
		}{
			{"id", e.ID},
			{"time", e.Time.UTC().Format(time.RFC3339)},
			{"command", e.Command},
			{"raw", e.Raw},
			{"source", e.Source},
			{"count", e.Count},
			{"success", e.Success},
			{"error", e.Error},
		} {
			if doc, err = sjson.Set(doc, kv.path, kv.value); err != nil {
				return "", err
			}
		}
		return doc, nil
	}

	status := "ok"
	if !e.Success {
		status = failStyle.Render("failed: " + e.Error)
	}
	return fmt.Sprintf("%s  %-6s %-20q %s", e.Time.Format(time.DateTime), e.Source, e.Raw, status), nil
}
