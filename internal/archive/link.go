package archive

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sorter/internal/failure"
	"sorter/internal/logging"
)

var errAbsoluteLink = errors.New("absolute link target")

// extractSymlink creates target pointing at linkname. Links that are
// absolute or resolve outside dir are skipped with a warning and report
// false; filesystem failures are returned.
func extractSymlink(dir, target, linkname, entry string, logger *slog.Logger) (bool, error) {
	if reason := linkEscapes(dir, target, linkname); reason != nil {
		logging.WarnWithContext(logger, "archive symlink skipped", "archive_entry_skipped",
			logging.String("entry", entry),
			logging.String("link", linkname),
			logging.Error(reason),
			logging.String(logging.FieldErrorHint, "links must stay inside the extraction directory"),
		)
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, failure.Wrap(failure.ErrFilesystem, component, "create entry parent", filepath.Dir(target), err)
	}
	if err := clearTarget(target); err != nil {
		return false, failure.Wrap(failure.ErrFilesystem, component, "replace entry", target, err)
	}
	if err := os.Symlink(linkname, target); err != nil {
		return false, failure.Wrap(failure.ErrFilesystem, component, "create symlink", target, err)
	}
	return true, nil
}

func linkEscapes(dir, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return errAbsoluteLink
	}
	resolved := filepath.Join(filepath.Dir(target), linkname)
	_, err := safeJoin(dir, relPath(dir, resolved))
	return err
}

// clearTarget removes whatever occupies path so a link can take its place.
func clearTarget(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func relPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
