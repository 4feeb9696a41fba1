// Package history persists completed organizing runs in SQLite.
//
// Each run row carries its counters and timing; moves, archive expansions and
// prune decisions hang off it in child tables. The journal is optional and is
// only opened when history is enabled in the configuration.
package history
