// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs), environment
// PURPOSE: Test configuration layering, validation and generation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotty/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config at an empty directory and clears DOTTY_*
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			name := strings.SplitN(kv, "=", 2)[0]
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	return dir
}

func writeUserConfig(t *testing.T, xdgDir, content string) {
	t.Helper()
	path := filepath.Join(xdgDir, "dotty", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "~/.dotty", cfg.Repository)
	assert.Equal(t, "", cfg.Root)
	assert.Equal(t, []string{".git", ".gitmodules"}, cfg.Ignore)
	assert.Equal(t, "dotty.yaml", cfg.Manifest.File)
	assert.Equal(t, ModeSymlinks, cfg.Restore.Mode)
	assert.True(t, cfg.Restore.AsSymlinks())
	assert.False(t, cfg.Restore.Overwrite)
	assert.Equal(t, "dotty-", cfg.Scratch.Prefix)
	assert.Equal(t, "", cfg.Scratch.Dir)
	assert.Equal(t, "git", cfg.Git.Binary)
}

func TestLoad_UserFile(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, `
repository = "/srv/dots"

[restore]
mode = "files"
`)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/srv/dots", cfg.Repository)
	assert.Equal(t, ModeFiles, cfg.Restore.Mode)
	assert.False(t, cfg.Restore.AsSymlinks())
	assert.Equal(t, "dotty-", cfg.Scratch.Prefix, "untouched keys keep defaults")
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "alt.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scratch]\nprefix = \"alt-\"\n"), 0644))

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "alt-", cfg.Scratch.Prefix)

	_, err = Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, "[restore]\nmode = \"files\"\n")
	t.Setenv("DOTTY_RESTORE_MODE", "symlinks")
	t.Setenv("DOTTY_RESTORE_OVERWRITE", "true")
	t.Setenv("DOTTY_IGNORE", ".git,.DS_Store")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, ModeSymlinks, cfg.Restore.Mode)
	assert.True(t, cfg.Restore.Overwrite)
	assert.Equal(t, []string{".git", ".DS_Store"}, cfg.Ignore)
}

func TestLoad_OverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("DOTTY_REPOSITORY", "/from/env")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"repository":        "/from/flag",
		"restore.overwrite": true,
	}})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Repository)
	assert.True(t, cfg.Restore.Overwrite)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_mode", "[restore]\nmode = \"hardlinks\"\n"},
		{"manifest_with_dir", "[manifest]\nfile = \"sub/dotty.yaml\"\n"},
		{"empty_manifest", "[manifest]\nfile = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeUserConfig(t, dir, tt.content)
			_, err := Load(LoadOptions{})
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestLoad_ModeIsNormalized(t *testing.T) {
	isolate(t)
	t.Setenv("DOTTY_RESTORE_MODE", " Files ")
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, ModeFiles, cfg.Restore.Mode)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	writeUserConfig(t, dir, "repository = [unclosed")
	_, err := Load(LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestGenerate_RoundTrips(t *testing.T) {
	isolate(t)
	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{"root": "/home/u"}})
	require.NoError(t, err)

	data, err := Generate(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/home/u")
	assert.Contains(t, string(data), "[restore]")

	var back Config
	require.NoError(t, gotoml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()
	assert.Contains(t, content, "# repository = \"~/.dotty\"")
	assert.Contains(t, content, "\n[restore]\n")
	assert.Contains(t, content, "# mode = \"symlinks\"")
	assert.NotContains(t, content, "\nmode =")
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\n[git]\nbinary = \"git\"\nlist = [\"a\"]"
	want := "# header\n\n[git]\n# binary = \"git\"\n# list = [\"a\"]"
	assert.Equal(t, want, commentOutConfigValues(in))
}
