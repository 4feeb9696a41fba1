// Package fileutil wraps the filesystem primitives the organizer relies on:
// renames that report cross-device failures distinctly, lazy directory
// creation, and streaming writes used by archive extraction.
package fileutil
