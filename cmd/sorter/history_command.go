package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sorter/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded organizing runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "History is disabled; set enabled = true under [history] in the config file.")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if id := strings.TrimSpace(runID); id != "" {
				moves, err := store.Moves(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(moves) == 0 {
					fmt.Fprintf(out, "No moves recorded for run %s\n", id)
					return nil
				}
				rows := make([][]string, 0, len(moves))
				for _, move := range moves {
					rows = append(rows, []string{move.From, move.To, move.Category})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					Title:   "Run " + id,
					Headers: []string{"From", "To", "Category"},
					Rows:    rows,
				}))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.RunID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Root,
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Archives),
					strconv.Itoa(run.Pruned),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				Headers: []string{"Run", "Started", "Root", "Moved", "Archives", "Pruned", "Took"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the moves recorded for one run")
	return cmd
}
