// Package config loads and validates beacon's TOML configuration.
//
// Load starts from Default(), overlays the file when one exists, expands
// home-relative paths, and validates the result. Derived paths (socket,
// database, lock file) hang off DataDir so a single directory override moves
// the whole daemon state.
package config
