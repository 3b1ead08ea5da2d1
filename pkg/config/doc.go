// Package config handles configuration management for dotty.
// It loads layered configuration from embedded defaults, the user's TOML
// file, DOTTY_* environment variables and command-line overrides.
package config
