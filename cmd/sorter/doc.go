// Package main hosts the sorter CLI entrypoint and command graph.
//
// The root command organizes one directory: it validates the target, takes
// the per-root run lock, runs the organizing pass and the empty-directory
// sweep, then reports what moved. Subcommands cover the category table,
// configuration scaffolding and the optional run history.
package main
