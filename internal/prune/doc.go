// Package prune removes directories left empty after an organizing pass.
//
// Directories are visited deepest-first so that a parent emptied by the
// removal of its children is pruned in the same call. The root passed to
// Empty is never removed.
package prune
