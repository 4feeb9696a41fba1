// Package organizer runs the organizing pass over one root directory.
//
// A pass first enumerates every allow-listed file beneath the root, then
// processes the sorted list: archives are handed to the archive expander,
// everything else is renamed to its normalized form and moved into the folder
// its extension maps to. Category folders are created lazily, once per pass.
// Name collisions overwrite the existing file.
package organizer
