package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sorter/internal/config"
	"sorter/internal/failure"
	"sorter/internal/history"
	"sorter/internal/logging"
	"sorter/internal/organizer"
	"sorter/internal/prune"
	"sorter/internal/runlock"
)

func runOrganize(cmd *cobra.Command, ctx *commandContext, args []string) error {
	out := cmd.OutOrStdout()

	target, err := resolveTarget(args)
	if err != nil {
		if failure.Recoverable(err) {
			fmt.Fprintln(out, err.Error())
			return nil
		}
		return err
	}
	if err := listEntries(out, target); err != nil {
		return err
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	root, err := filepath.Abs(target)
	if err != nil {
		return failure.Wrap(failure.ErrFilesystem, "cli", "resolve path", target, err)
	}
	runCtx := logging.WithRunID(cmd.Context(), uuid.NewString())

	lock, err := runlock.Acquire(cfg.LockDir(), root)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logging.WarnWithContext(logger, "failed to release run lock", "lock_release_failed",
				logging.String("lock", lock.Path()),
				logging.Error(err),
			)
		}
	}()

	report, err := organizer.NewOrganizer(cfg, logger).Run(runCtx, root)
	if err != nil {
		return err
	}
	pruned, err := prune.Empty(runCtx, root, logger)
	printPruneDecisions(out, pruned)
	if err != nil {
		return err
	}
	printSummary(out, report, pruned)

	recordHistory(runCtx, cfg, logger, report, pruned)
	return nil
}

// resolveTarget checks the command line argument. Input problems come back as
// recoverable notices the caller prints instead of failing.
func resolveTarget(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", failure.Notice(failure.ErrUsage, "Please provide a path.")
	}
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			abs, absErr := filepath.Abs(target)
			if absErr != nil {
				abs = target
			}
			return "", failure.Notice(failure.ErrPathNotFound, abs+" does not exist")
		}
		return "", failure.Wrap(failure.ErrFilesystem, "cli", "stat target", target, err)
	}
	if !info.IsDir() {
		return "", failure.Notice(failure.ErrUsage, target+" is a file")
	}
	return target, nil
}

func listEntries(out io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return failure.Wrap(failure.ErrFilesystem, "cli", "list directory", dir, err)
	}
	for _, entry := range entries {
		fmt.Fprintln(out, filepath.Join(dir, entry.Name()))
	}
	return nil
}

func printPruneDecisions(out io.Writer, result prune.Result) {
	removed := color.New(color.FgGreen)
	kept := color.New(color.FgYellow)
	if !isTerminal(out) {
		removed.DisableColor()
		kept.DisableColor()
	}
	for _, decision := range result.Decisions {
		if decision.Removed {
			removed.Fprintf(out, "Removed empty directory %s\n", decision.Path)
			continue
		}
		kept.Fprintf(out, "Kept non-empty directory %s\n", decision.Path)
	}
}

func printSummary(out io.Writer, report organizer.Report, pruned prune.Result) {
	counts := report.CategoryCounts()
	if len(counts) > 0 {
		rows := make([][]string, 0, len(counts))
		for _, count := range counts {
			rows = append(rows, []string{string(count.Category), strconv.Itoa(count.Files)})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			Headers: []string{"Category", "Files"},
			Rows:    rows,
			Footer:  []string{"Total", strconv.Itoa(len(report.Moves))},
			Aligns:  []columnAlignment{alignLeft, alignRight},
		}))
	}
	fmt.Fprintf(out, "Moved %d file(s), renamed %d, expanded %d archive(s), removed %d empty director%s in %s\n",
		len(report.Moves),
		report.Renamed,
		len(report.Archives),
		len(pruned.Removed),
		pluralY(len(pruned.Removed)),
		report.Duration().Round(time.Millisecond),
	)
}

func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, report organizer.Report, pruned prune.Result) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.WarnWithContext(logger, "history journal unavailable", "history_open_failed",
			logging.String("path", cfg.History.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path or delete the journal"),
		)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, report, pruned); err != nil {
		logging.WarnWithContext(logger, "failed to record run", "history_record_failed",
			logging.String("path", cfg.History.Path),
			logging.Error(err),
		)
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
