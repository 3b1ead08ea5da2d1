package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Restore modes
const (
	ModeSymlinks = "symlinks"
	ModeFiles    = "files"
)

// Config is the effective dotty configuration
type Config struct {
	Repository string         `koanf:"repository" toml:"repository"`
	Root       string         `koanf:"root" toml:"root"`
	Ignore     []string       `koanf:"ignore" toml:"ignore"`
	Manifest   ManifestConfig `koanf:"manifest" toml:"manifest"`
	Restore    RestoreConfig  `koanf:"restore" toml:"restore"`
	Scratch    ScratchConfig  `koanf:"scratch" toml:"scratch"`
	Git        GitConfig      `koanf:"git" toml:"git"`
}

// ManifestConfig names the manifest file inside the store
type ManifestConfig struct {
	File string `koanf:"file" toml:"file"`
}

// RestoreConfig holds restore defaults
type RestoreConfig struct {
	Mode      string `koanf:"mode" toml:"mode"`
	Overwrite bool   `koanf:"overwrite" toml:"overwrite"`
}

// AsSymlinks reports whether restores create symlinks rather than copies
func (r RestoreConfig) AsSymlinks() bool {
	return r.Mode != ModeFiles
}

// ScratchConfig controls where displaced content goes
type ScratchConfig struct {
	Prefix string `koanf:"prefix" toml:"prefix"`
	Dir    string `koanf:"dir" toml:"dir"`
}

// GitConfig selects the git executable
type GitConfig struct {
	Binary string `koanf:"binary" toml:"binary"`
}

// GetDefaultsContent returns the embedded defaults file
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
