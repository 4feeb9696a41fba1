// Package logging assembles structured slog loggers and formatting helpers used
// across sorter components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so every line emitted during a
// pass carries the run identifier. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Diagnostics go through these loggers; the user-facing report printed by the
// CLI does not.
package logging
