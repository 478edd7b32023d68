// Package config loads, normalizes, and validates sift's TOML configuration.
//
// Load resolves the config file (explicit path, then
// ~/.config/sift/config.toml, then ./sift.toml), applies defaults for
// anything unset, expands ~ and environment variables in paths, and rejects
// unusable values. A sample config documenting every key is embedded and
// written out by WriteSample.
package config
