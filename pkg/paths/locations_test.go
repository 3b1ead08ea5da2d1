package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocations_Defaults(t *testing.T) {
	home := realTempDir(t)
	t.Setenv("HOME", home)
	t.Setenv(paths.EnvRepository, "")
	t.Setenv(paths.EnvRoot, "")

	loc, err := paths.ResolveLocations("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".dotty"), loc.Repository)
	assert.Equal(t, home, loc.Root)
}

func TestResolveLocations_Environment(t *testing.T) {
	dir := realTempDir(t)
	t.Setenv(paths.EnvRepository, filepath.Join(dir, "store"))
	t.Setenv(paths.EnvRoot, filepath.Join(dir, "home"))

	loc, err := paths.ResolveLocations("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "store"), loc.Repository)
	assert.Equal(t, filepath.Join(dir, "home"), loc.Root)
}

func TestResolveLocations_ExplicitWinsOverEnvironment(t *testing.T) {
	dir := realTempDir(t)
	t.Setenv(paths.EnvRepository, filepath.Join(dir, "env-store"))

	loc, err := paths.ResolveLocations(filepath.Join(dir, "flag-store"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flag-store"), loc.Repository)
	assert.Equal(t, dir, loc.Root)
}

func TestLocations_Mapping(t *testing.T) {
	loc := paths.Locations{Repository: "/home/u/.dotty", Root: "/home/u"}

	assert.Equal(t, "/home/u/.dotty/.config/git/config", loc.StorePath(".config/git/config"))
	assert.Equal(t, "/home/u/.config/git/config", loc.OriginalPath(".config/git/config"))
}

func TestLocations_CheckManaged(t *testing.T) {
	loc := paths.Locations{Repository: "/home/u/.dotty", Root: "/home/u"}

	tests := []struct {
		name     string
		relative string
		wantCode errors.ErrorCode
	}{
		{name: "plain_file", relative: ".bashrc"},
		{name: "nested", relative: filepath.Join(".config", "nvim", "init.lua")},
		{name: "dot_dot_inside_root", relative: filepath.Join(".config", "..", ".vimrc")},
		{name: "empty", relative: "", wantCode: errors.ErrEmptyRelative},
		{name: "root_itself", relative: ".", wantCode: errors.ErrEmptyRelative},
		{name: "escapes_root", relative: filepath.Join("..", "outside"), wantCode: errors.ErrNotUnderRoot},
		{name: "escapes_after_descending", relative: filepath.Join("a", "..", "..", "etc", "passwd"), wantCode: errors.ErrNotUnderRoot},
		{name: "absolute", relative: "/etc/passwd", wantCode: errors.ErrNotUnderRoot},
		{name: "store_itself", relative: ".dotty", wantCode: errors.ErrInvalidInput},
		{name: "inside_store", relative: filepath.Join(".dotty", "dotty.yaml"), wantCode: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loc.CheckManaged(tt.relative)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)

			details := errors.GetErrorDetails(err)
			assert.Equal(t, loc.OriginalPath(tt.relative), details["original"])
			assert.Equal(t, loc.StorePath(tt.relative), details["store"])
		})
	}
}
