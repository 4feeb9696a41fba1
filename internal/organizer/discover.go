package organizer

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"sorter/internal/failure"
)

// FileEntry is one discovered file and the parts of its name the pass uses.
type FileEntry struct {
	Path string
	Dir  string
	Stem string
	// Ext has no leading dot and keeps the case it was discovered with.
	Ext string
}

// NewFileEntry splits path into its directory, stem and extension.
func NewFileEntry(path string) FileEntry {
	base := filepath.Base(path)
	dotExt := filepath.Ext(base)
	return FileEntry{
		Path: path,
		Dir:  filepath.Dir(path),
		Stem: strings.TrimSuffix(base, dotExt),
		Ext:  strings.TrimPrefix(dotExt, "."),
	}
}

// Name returns the entry's base name.
func (f FileEntry) Name() string {
	return filepath.Base(f.Path)
}

// Discover lists every regular file under root whose extension is in
// extensions, sorted by path. Matching is case-sensitive. Hidden files and
// hidden directories are skipped, as are symlinks.
func Discover(root string, extensions []string) ([]FileEntry, error) {
	allowed := allowSet(extensions)
	root = filepath.Clean(root)

	var entries []FileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		entry := NewFileEntry(path)
		if entry.Stem == "" {
			return nil
		}
		if _, ok := allowed[entry.Ext]; ok {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, failure.Wrap(failure.ErrFilesystem, component, "discover", root, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func allowSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return set
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
