package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sorter/internal/category"
	"sorter/internal/failure"
	"sorter/internal/fileutil"
	"sorter/internal/logging"
	"sorter/internal/textutil"
)

const component = "archive"

// Record describes one expanded archive.
type Record struct {
	Source  string
	Dir     string
	Format  string
	Entries []string
}

// Expander unpacks archives into the archives area of a single root.
type Expander struct {
	root   string
	locale string
	logger *slog.Logger
}

// NewExpander returns an expander writing beneath root/archives.
func NewExpander(root, locale string, logger *slog.Logger) *Expander {
	return &Expander{
		root:   filepath.Clean(root),
		locale: locale,
		logger: logging.NewComponentLogger(logger, component),
	}
}

// ArchivesRoot returns the directory holding per-archive extraction folders.
func (e *Expander) ArchivesRoot() string {
	return filepath.Join(e.root, category.ArchivesDir)
}

// Expand unpacks the archive at path and deletes it afterwards.
func (e *Expander) Expand(ctx context.Context, path string) (Record, error) {
	logger := logging.WithContext(ctx, e.logger)

	base := filepath.Base(path)
	dotExt := filepath.Ext(base)
	ext := strings.TrimPrefix(dotExt, ".")
	stem := strings.TrimSuffix(base, dotExt)
	if !category.IsArchive(ext) {
		return Record{}, failure.Wrap(failure.ErrArchiveRead, component, "detect format", fmt.Sprintf("%s is not a zip, gz or tar archive", path), nil)
	}

	dir, err := e.extractionDir(stem)
	if err != nil {
		return Record{}, err
	}

	record := Record{Source: path, Dir: dir, Format: ext}
	switch ext {
	case "zip":
		record.Entries, err = extractZip(path, dir, logger)
	case "tar":
		record.Entries, err = extractTarFile(path, dir, logger)
	case "gz":
		if isTarStem(stem) {
			record.Format = "tar.gz"
		}
		record.Entries, err = extractGzip(path, dir, stem, logger)
	}
	if err != nil {
		return Record{}, err
	}

	if err := os.Remove(path); err != nil {
		return Record{}, failure.Wrap(failure.ErrFilesystem, component, "remove source", path, err)
	}

	logger.Info("archive expanded",
		logging.String("source", path),
		logging.String("dir", dir),
		logging.String("format", record.Format),
		logging.Int("entries", len(record.Entries)),
		logging.String(logging.FieldEventType, "archive_expanded"),
	)
	return record, nil
}

func (e *Expander) extractionDir(stem string) (string, error) {
	archivesRoot := e.ArchivesRoot()
	if _, err := fileutil.EnsureDir(archivesRoot); err != nil {
		return "", failure.Wrap(failure.ErrFilesystem, component, "create archives dir", archivesRoot, err)
	}

	name := textutil.NormalizeStem(stem, e.locale)
	if name == "" || name == "." || name == ".." {
		name = "_" + name
	}
	dir := filepath.Join(archivesRoot, name)
	if _, err := fileutil.EnsureDir(dir); err != nil {
		return "", failure.Wrap(failure.ErrFilesystem, component, "create extraction dir", dir, err)
	}
	return dir, nil
}

func isTarStem(stem string) bool {
	return strings.EqualFold(filepath.Ext(stem), ".tar")
}

// safeJoin resolves an archive entry name beneath dir, refusing names that
// would escape it.
func safeJoin(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	target := filepath.Join(dir, cleaned)
	if target == dir {
		return target, nil
	}
	if !strings.HasPrefix(target, dir+string(os.PathSeparator)) {
		return "", failure.Wrap(failure.ErrArchiveRead, component, "validate entry", fmt.Sprintf("entry %q escapes %s", name, dir), nil)
	}
	return target, nil
}

func fileMode(mode os.FileMode) os.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return 0o644
	}
	return perm
}

func relEntry(dir, target string) string {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
