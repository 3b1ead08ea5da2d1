// pkg/scratch/scratch_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs)
// PURPOSE: Test scratch directory naming, entry mapping and scoped release

package scratch_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/arthur-debert/dotty/pkg/filesystem"
	"github.com/arthur-debert/dotty/pkg/scratch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NameHasPrefixAndSuffix(t *testing.T) {
	base := t.TempDir()

	area, err := scratch.Create(filesystem.NewOS(), base, "dotty-", nil)
	require.NoError(t, err)

	assert.Equal(t, base, filepath.Dir(area.Path()))
	assert.Regexp(t, regexp.MustCompile(`^dotty-[a-zA-Z0-9]{7}$`), filepath.Base(area.Path()))

	info, err := os.Stat(area.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreate_UniqueNames(t *testing.T) {
	base := t.TempDir()
	fs := filesystem.NewOS()

	a, err := scratch.Create(fs, base, "x-", nil)
	require.NoError(t, err)
	b, err := scratch.Create(fs, base, "x-", nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.Path(), b.Path())
}

func TestCreate_MissingBaseDir(t *testing.T) {
	_, err := scratch.Create(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"), "x-", nil)
	assert.Error(t, err)
}

func TestEntry_PreservesRelativeStructure(t *testing.T) {
	area, err := scratch.Create(filesystem.NewOS(), t.TempDir(), "dotty-", nil)
	require.NoError(t, err)
	defer func() { _, _ = area.Release() }()

	assert.Equal(t, filepath.Join(area.Path(), ".config", "nvim", "init.lua"), area.Entry(".config/nvim/init.lua"))
	assert.Equal(t, area.Entry(".bashrc"), area.Entry(".bashrc"), "mapping is deterministic")
}

func TestRelease_RemovesEmptyDirectory(t *testing.T) {
	rec := &events.Recorder{}
	area, err := scratch.Create(filesystem.NewOS(), t.TempDir(), "dotty-", rec)
	require.NoError(t, err)

	kept, err := area.Release()
	require.NoError(t, err)
	assert.False(t, kept)
	assert.False(t, area.Kept())

	_, statErr := os.Stat(area.Path())
	assert.True(t, os.IsNotExist(statErr))
	assert.True(t, rec.Has(events.KindScratchRemoved))
}

func TestRelease_KeepsDisplacedContent(t *testing.T) {
	rec := &events.Recorder{}
	area, err := scratch.Create(filesystem.NewOS(), t.TempDir(), "dotty-", rec)
	require.NoError(t, err)

	displaced := area.Entry(".config/app.conf")
	require.NoError(t, os.MkdirAll(filepath.Dir(displaced), 0755))
	require.NoError(t, os.WriteFile(displaced, []byte("old"), 0644))

	kept, err := area.Release()
	require.NoError(t, err)
	assert.True(t, kept)

	data, err := os.ReadFile(displaced)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.True(t, rec.Has(events.KindScratchKept))
}

func TestRelease_Idempotent(t *testing.T) {
	area, err := scratch.Create(filesystem.NewOS(), t.TempDir(), "dotty-", nil)
	require.NoError(t, err)

	kept, err := area.Release()
	require.NoError(t, err)
	assert.False(t, kept)

	kept, err = area.Release()
	require.NoError(t, err)
	assert.False(t, kept)
}

func TestRelease_OnErrorPath(t *testing.T) {
	base := t.TempDir()
	var path string

	func() {
		area, err := scratch.Create(filesystem.NewOS(), base, "dotty-", nil)
		require.NoError(t, err)
		path = area.Path()
		defer func() { _, _ = area.Release() }()
		// simulated failure before anything is displaced
	}()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
