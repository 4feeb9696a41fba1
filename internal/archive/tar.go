package archive

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"sorter/internal/failure"
	"sorter/internal/fileutil"
	"sorter/internal/logging"
)

var gzipMagic = []byte{0x1f, 0x8b}

// extractTarFile expands a tar archive, decompressing it first when the
// payload is gzip-compressed despite the plain .tar name.
func extractTarFile(path, dir string, logger *slog.Logger) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrArchiveRead, component, "open tar", path, err)
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	var stream io.Reader = buffered
	if magic, err := buffered.Peek(len(gzipMagic)); err == nil && string(magic) == string(gzipMagic) {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, failure.Wrap(failure.ErrArchiveRead, component, "open compressed tar", path, err)
		}
		defer gz.Close()
		stream = gz
	}
	return extractTar(stream, path, dir, logger)
}

func extractGzip(path, dir, stem string, logger *slog.Logger) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrArchiveRead, component, "open gzip", path, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, failure.Wrap(failure.ErrArchiveRead, component, "open gzip", path, err)
	}
	defer gz.Close()

	if isTarStem(stem) {
		return extractTar(gz, path, dir, logger)
	}

	target, err := safeJoin(dir, stem)
	if err != nil {
		return nil, err
	}
	if _, err := fileutil.WriteStream(target, gz, 0o644); err != nil {
		return nil, failure.Wrap(failure.ErrArchiveRead, component, "decompress gzip", path, err)
	}
	return []string{relEntry(dir, target)}, nil
}

func extractTar(r io.Reader, source, dir string, logger *slog.Logger) ([]string, error) {
	tr := tar.NewReader(r)
	var entries []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, failure.Wrap(failure.ErrArchiveRead, component, "read tar header", source, err)
		}

		target, err := safeJoin(dir, hdr.Name)
		if err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, failure.Wrap(failure.ErrFilesystem, component, "create entry dir", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return nil, failure.Wrap(failure.ErrFilesystem, component, "create entry parent", filepath.Dir(target), err)
			}
			if _, err := fileutil.WriteStream(target, tr, fileMode(hdr.FileInfo().Mode())); err != nil {
				return nil, failure.Wrap(failure.ErrArchiveRead, component, "extract tar entry", hdr.Name, err)
			}
		case tar.TypeSymlink:
			linked, err := extractSymlink(dir, target, hdr.Linkname, hdr.Name, logger)
			if err != nil {
				return nil, err
			}
			if !linked {
				continue
			}
		case tar.TypeLink:
			linkTarget, err := safeJoin(dir, hdr.Linkname)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return nil, failure.Wrap(failure.ErrFilesystem, component, "create entry parent", filepath.Dir(target), err)
			}
			if err := clearTarget(target); err != nil {
				return nil, failure.Wrap(failure.ErrFilesystem, component, "replace entry", target, err)
			}
			if err := os.Link(linkTarget, target); err != nil {
				return nil, failure.Wrap(failure.ErrFilesystem, component, "create hard link", target, err)
			}
		default:
			logger.Debug("tar entry type not extracted",
				logging.String("entry", hdr.Name),
				logging.Int("type", int(hdr.Typeflag)),
			)
			continue
		}
		entries = append(entries, relEntry(dir, target))
	}
}
