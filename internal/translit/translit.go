package translit

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "uk"

// Locales lists the locales with a transliteration table, sorted.
func Locales() []string {
	out := make([]string, 0, len(tables))
	for locale := range tables {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether locale has a transliteration table.
func Supported(locale string) bool {
	_, ok := tables[normalizeLocale(locale)]
	return ok
}

// Transliterate rewrites text from the locale's script into Latin letters.
// Unknown locales only get diacritic folding.
func Transliterate(text, locale string) string {
	if text == "" {
		return ""
	}
	table := tables[normalizeLocale(locale)]

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if latin, ok := table[unicode.ToLower(r)]; ok {
			if unicode.IsUpper(r) {
				latin = capitalize(latin)
			}
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return foldMarks(b.String())
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return DefaultLocale
	}
	// Accept region-qualified tags such as uk-UA or uk_UA.
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	return locale
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// foldMarks strips combining marks after canonical decomposition (é -> e).
func foldMarks(value string) string {
	for _, r := range value {
		if r >= utf8.RuneSelf {
			t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
			folded, _, err := transform.String(t, value)
			if err != nil {
				return value
			}
			return folded
		}
	}
	return value
}
