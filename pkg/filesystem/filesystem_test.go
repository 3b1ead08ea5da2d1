package filesystem_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotty/pkg/filesystem"
	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func implementations() map[string]types.FS {
	return map[string]types.FS{
		"os":         filesystem.NewOS(),
		"afero_osfs": filesystem.NewAferoFS(afero.NewOsFs()),
	}
}

func TestFS_BasicOperations(t *testing.T) {
	for name, fs := range implementations() {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			testFile := filepath.Join(tmpDir, "test.txt")
			testContent := []byte("hello world")

			require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

			info, err := fs.Stat(testFile)
			require.NoError(t, err)
			assert.Equal(t, "test.txt", info.Name())
			assert.Equal(t, int64(len(testContent)), info.Size())

			content, err := fs.ReadFile(testFile)
			require.NoError(t, err)
			assert.Equal(t, testContent, content)

			require.NoError(t, fs.MkdirAll(filepath.Join(tmpDir, "sub", "dir"), 0755))

			entries, err := fs.ReadDir(tmpDir)
			require.NoError(t, err)
			assert.Len(t, entries, 2)

			moved := filepath.Join(tmpDir, "sub", "moved.txt")
			require.NoError(t, fs.Rename(testFile, moved))
			_, err = fs.Stat(testFile)
			assert.True(t, os.IsNotExist(err))

			require.NoError(t, fs.Remove(moved))
			_, err = fs.Stat(moved)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestFS_Symlinks(t *testing.T) {
	for name, fs := range implementations() {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			target := filepath.Join(tmpDir, "target")
			link := filepath.Join(tmpDir, "link")
			require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))

			require.NoError(t, fs.Symlink(target, link))

			info, err := fs.Lstat(link)
			require.NoError(t, err)
			assert.NotZero(t, info.Mode()&os.ModeSymlink, "Lstat should not follow the link")

			got, err := fs.Readlink(link)
			require.NoError(t, err)
			assert.Equal(t, target, got)
		})
	}
}

func TestFS_OpenAndOpenFile(t *testing.T) {
	for name, fs := range implementations() {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "f")

			w, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			require.NoError(t, err)
			_, err = w.Write([]byte("payload"))
			require.NoError(t, err)
			require.NoError(t, w.Sync())
			require.NoError(t, w.Close())

			r, err := fs.Open(path)
			require.NoError(t, err)
			defer func() { _ = r.Close() }()
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "payload", string(data))
		})
	}
}

func TestAferoFS_MemMapHasNoSymlinks(t *testing.T) {
	fs := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.WriteFile("/a", []byte("x"), 0644))

	err := fs.Symlink("/a", "/b")
	assert.Error(t, err)

	_, err = fs.Readlink("/a")
	assert.Error(t, err)

	// Lstat falls back to Stat
	info, err := fs.Lstat("/a")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
