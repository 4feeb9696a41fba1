package category

import (
	"sort"
	"strings"
)

// Category is the name of a destination folder directly under the organized root.
type Category string

const (
	Videos    Category = "Videos"
	Music     Category = "Music"
	Documents Category = "Documents"
	Images    Category = "Images"
	Archives  Category = "Archives"
	Others    Category = "Others"
)

// ArchivesDir is the lowercase root that holds per-archive extraction folders.
const ArchivesDir = "archives"

// Table maps a lowercase extension (no leading dot) to its category.
type Table map[string]Category

// The allow-list below scans for "scg" while this table knows "svg"; both are
// kept as written, so svg files are never discovered and scg files land in
// Others.
var table = Table{
	"mp4": Videos, "avi": Videos, "mov": Videos, "mkv": Videos,
	"mp3": Music, "ogg": Music, "wav": Music, "amr": Music,
	"docx": Documents, "txt": Documents, "doc": Documents, "pdf": Documents, "xlsx": Documents, "pptx": Documents,
	"png": Images, "jpeg": Images, "jpg": Images, "svg": Images,
	"zip": Archives, "gz": Archives, "tar": Archives,
}

// DefaultExtensions is the allow-list of extensions the organizer acts on.
var DefaultExtensions = []string{
	"mp4", "avi", "mov", "mkv",
	"mp3", "ogg", "wav", "amr",
	"docx", "txt", "pdf", "doc", "xlsx", "pptx",
	"png", "jpeg", "jpg", "scg",
	"zip", "gz", "tar",
}

// Lookup returns the category for ext. ok is false when ext is not in the table.
func Lookup(ext string) (Category, bool) {
	c, ok := table[ext]
	return c, ok
}

// Resolve returns the category for ext, falling back to Others.
func Resolve(ext string) Category {
	if c, ok := Lookup(ext); ok {
		return c
	}
	return Others
}

// IsArchive reports whether ext names a format the archive expander handles.
func IsArchive(ext string) bool {
	switch ext {
	case "zip", "gz", "tar":
		return true
	default:
		return false
	}
}

// Entry is one row of the extension table.
type Entry struct {
	Extension string
	Category  Category
}

// Entries returns the table sorted by category then extension.
func Entries() []Entry {
	out := make([]Entry, 0, len(table))
	for ext, c := range table {
		out = append(out, Entry{Extension: ext, Category: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Extension < out[j].Extension
	})
	return out
}

// NormalizeExtension trims whitespace and a leading dot from a configured
// extension. Case is preserved because discovery matches literally.
func NormalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.TrimSpace(ext), ".")
}
