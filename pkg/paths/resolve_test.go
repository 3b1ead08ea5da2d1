// pkg/paths/resolve_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test canonicalization, relative paths and common base computation

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestCanonicalize_ExistingPath(t *testing.T) {
	dir := realTempDir(t)
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	got, err := paths.Canonicalize(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestCanonicalize_ResolvesSymlinks(t *testing.T) {
	dir := realTempDir(t)
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(realDir, 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(realDir, link))

	got, err := paths.Canonicalize(filepath.Join(link, "child"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "child"), got)
}

func TestCanonicalize_MissingTrailingComponents(t *testing.T) {
	dir := realTempDir(t)
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(dir, link))

	got, err := paths.Canonicalize(filepath.Join(link, "not", "there", "yet.conf"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "not", "there", "yet.conf"), got)
}

func TestCanonicalize_CleansDotDot(t *testing.T) {
	dir := realTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))

	got, err := paths.Canonicalize(filepath.Join(dir, "a", "..", "b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b"), got)
}

func TestCanonicalize_ExpandsHome(t *testing.T) {
	home := realTempDir(t)
	t.Setenv("HOME", home)

	got, err := paths.Canonicalize("~/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".vimrc"), got)

	got, err = paths.Canonicalize("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/tester"},
		{"~/.config/git", "/home/tester/.config/git"},
		{"/etc/hosts", "/etc/hosts"},
		{"~other/file", "~other/file"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := paths.ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeFromRoot(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		path     string
		want     string
		wantCode errors.ErrorCode
	}{
		{name: "direct_child", root: "/r", path: "/r/.bashrc", want: ".bashrc"},
		{name: "nested_child", root: "/r", path: "/r/.config/nvim/init.lua", want: ".config/nvim/init.lua"},
		{name: "trailing_slash_root", root: "/r/", path: "/r/a", want: "a"},
		{name: "filesystem_root", root: "/", path: "/etc/hosts", want: "etc/hosts"},
		{name: "equal_to_root", root: "/r", path: "/r", wantCode: errors.ErrEmptyRelative},
		{name: "outside_root", root: "/r", path: "/other", wantCode: errors.ErrNotUnderRoot},
		{name: "sibling_sharing_prefix", root: "/r", path: "/rr/file", wantCode: errors.ErrNotUnderRoot},
		{name: "parent_of_root", root: "/r/sub", path: "/r", wantCode: errors.ErrNotUnderRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.RelativeFromRoot(tt.root, tt.path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommonBasePath(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{name: "empty", paths: nil, want: ""},
		{name: "single", paths: []string{"/a/b/c"}, want: "/a/b/c"},
		{name: "mixed_depths", paths: []string{"/a/b/c", "/a/b/d", "/a/x"}, want: "/a"},
		{name: "only_root_shared", paths: []string{"/a", "/b"}, want: "/"},
		{name: "relative_shared", paths: []string{".config/nvim/init.lua", ".config/git/config"}, want: ".config"},
		{name: "relative_disjoint", paths: []string{".bashrc", ".zshrc"}, want: ""},
		{name: "disjoint_then_match", paths: []string{"a/b", "c", "a/b"}, want: ""},
		{name: "component_not_string_prefix", paths: []string{"/ab/c", "/a/c"}, want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.CommonBasePath(tt.paths))
		})
	}
}
