// Package category maps file extensions to the category folders files are
// sorted into.
//
// The table is fixed at build time and never mutated, so lookups are safe
// from any goroutine. Lookup reports misses explicitly; Resolve applies the
// Others fallback for callers that always need a folder.
package category
