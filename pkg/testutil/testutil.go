package testutil

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotty/pkg/gitx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// FileTree describes a directory: string values are file contents, FileTree
// values are subdirectories.
type FileTree map[string]interface{}

// CanonicalTempDir returns t.TempDir with symlinks resolved, so paths
// compare equal to what the engine computes.
func CanonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// CreateSymlink creates link pointing at target, creating link's parent
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link))
}

// CreateFileTree materializes tree under root
func CreateFileTree(t *testing.T, root string, tree FileTree) {
	t.Helper()
	for name, content := range tree {
		path := filepath.Join(root, name)
		switch v := content.(type) {
		case string:
			WriteFile(t, path, v)
		case FileTree:
			require.NoError(t, os.MkdirAll(path, 0755))
			CreateFileTree(t, path, v)
		default:
			t.Fatalf("invalid file tree content for %s: %T", name, content)
		}
	}
}

// Snapshot maps every path under root, relative to it, to a description of
// what is there: "dir", "file:<content>" or "link:<target>". Comparing two
// snapshots shows whether anything under root changed.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[rel] = "link:" + target
		case d.IsDir():
			out[rel] = "dir"
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out[rel] = "file:" + string(data)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

// RequireGit skips the test when git is not installed. Otherwise it isolates
// git from the user's configuration, sets a commit identity and returns a
// backend for the git on PATH.
func RequireGit(t *testing.T) *gitx.Git {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "dotty")
	t.Setenv("GIT_AUTHOR_EMAIL", "dotty@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "dotty")
	t.Setenv("GIT_COMMITTER_EMAIL", "dotty@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(t.TempDir(), "gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	return gitx.New("", zerolog.Nop())
}

// GitOut runs git in dir and returns its combined output, failing the test
// on error.
func GitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := exec.Command("git", append([]string{"-C", dir}, args...)...).CombinedOutput()
	require.NoError(t, err, string(out))
	return string(out)
}
