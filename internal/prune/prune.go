package prune

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sorter/internal/failure"
	"sorter/internal/logging"
)

const component = "prune"

// Decision records what happened to one directory.
type Decision struct {
	Path    string
	Removed bool
}

// Result contains the outcome of an empty-directory sweep.
type Result struct {
	Removed   []string
	Kept      []string
	Decisions []Decision
}

// Empty walks root and removes every directory that has no entries by the
// time it is visited. Removal failures abort the sweep.
func Empty(ctx context.Context, root string, logger *slog.Logger) (Result, error) {
	result := Result{}

	root = strings.TrimSpace(root)
	if root == "" {
		return result, nil
	}
	root = filepath.Clean(root)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, component))

	dirs, err := collectDirs(root)
	if err != nil {
		return result, err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]
		entries, err := os.ReadDir(dir)
		if err != nil {
			return result, failure.Wrap(failure.ErrFilesystem, component, "read dir", dir, err)
		}
		if len(entries) > 0 {
			result.Kept = append(result.Kept, dir)
			result.Decisions = append(result.Decisions, Decision{Path: dir})
			logger.Debug("directory not empty", logging.String("path", dir), logging.Int("entries", len(entries)))
			continue
		}
		if err := os.Remove(dir); err != nil {
			logger.Error("failed to remove empty directory",
				logging.String("path", dir),
				logging.Error(err),
				logging.String(logging.FieldEventType, "prune_failed"),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
			)
			return result, failure.Wrap(failure.ErrFilesystem, component, "remove dir", dir, err)
		}
		result.Removed = append(result.Removed, dir)
		result.Decisions = append(result.Decisions, Decision{Path: dir, Removed: true})
		logger.Info("removed empty directory",
			logging.String("path", dir),
			logging.String(logging.FieldEventType, "dir_pruned"),
		)
	}
	return result, nil
}

// collectDirs lists every directory beneath root in pre-order, excluding
// root. Symlinked directories are not followed.
func collectDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, failure.Wrap(failure.ErrFilesystem, component, "walk", root, err)
	}
	return dirs, nil
}
