package archive

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sorter/internal/failure"
	"sorter/internal/fileutil"
)

// maxLinkTarget bounds how much of a zip symlink entry is read as its target.
const maxLinkTarget = 4096

func extractZip(path, dir string, logger *slog.Logger) ([]string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrArchiveRead, component, "open zip", path, err)
	}
	defer reader.Close()

	entries := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		target, ok, err := extractZipEntry(file, dir, logger)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, relEntry(dir, target))
		}
	}
	return entries, nil
}

// extractZipEntry writes one entry under dir. Symlink entries store their
// target as the entry body and follow the same containment rule as tar links.
func extractZipEntry(file *zip.File, dir string, logger *slog.Logger) (string, bool, error) {
	target, err := safeJoin(dir, file.Name)
	if err != nil {
		return "", false, err
	}

	info := file.FileInfo()
	if info.IsDir() || strings.HasSuffix(file.Name, "/") {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", false, failure.Wrap(failure.ErrFilesystem, component, "create entry dir", target, err)
		}
		return target, true, nil
	}

	rc, err := file.Open()
	if err != nil {
		return "", false, failure.Wrap(failure.ErrArchiveRead, component, "open zip entry", file.Name, err)
	}
	defer rc.Close()

	if info.Mode()&os.ModeSymlink != 0 {
		linkname, err := io.ReadAll(io.LimitReader(rc, maxLinkTarget))
		if err != nil {
			return "", false, failure.Wrap(failure.ErrArchiveRead, component, "read zip link", file.Name, err)
		}
		linked, err := extractSymlink(dir, target, string(linkname), file.Name, logger)
		return target, linked, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", false, failure.Wrap(failure.ErrFilesystem, component, "create entry parent", filepath.Dir(target), err)
	}
	if _, err := fileutil.WriteStream(target, rc, fileMode(info.Mode())); err != nil {
		return "", false, failure.Wrap(failure.ErrArchiveRead, component, "extract zip entry", file.Name, err)
	}
	return target, true, nil
}
