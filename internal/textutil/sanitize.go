package textutil

import (
	"strings"

	"sorter/internal/translit"
)

// NormalizeStem transliterates stem for locale and sanitizes the result.
func NormalizeStem(stem, locale string) string {
	return SanitizeStem(translit.Transliterate(stem, locale))
}

// SanitizeStem replaces each run of characters other than ASCII letters,
// digits, dots and hyphens with one underscore.
func SanitizeStem(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	inRun := false
	for _, r := range value {
		if isSafe(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('_')
			inRun = true
		}
	}
	return b.String()
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-':
		return true
	default:
		return false
	}
}
