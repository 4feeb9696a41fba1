// Package archive expands zip, tar and gzip files found while organizing.
//
// Every archive gets its own extraction directory under <root>/archives,
// named after the normalized archive stem. The directory is created on first
// use and reused by later archives that normalize to the same name. Once the
// contents are on disk the source archive is deleted. Corrupt archive data
// aborts with failure.ErrArchiveRead; entries that would land outside the
// extraction directory are refused.
package archive
