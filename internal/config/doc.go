// Package config loads, normalizes, and validates sorter configuration.
//
// Configuration is read from TOML. An explicit --config path wins, followed
// by ~/.config/sorter/config.toml and ./sorter.toml. Missing files are not an
// error: defaults cover every field, so the CLI runs with zero setup. Paths
// support ~ expansion and are made absolute during normalization.
package config
