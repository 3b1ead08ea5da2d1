package types_test

import (
	"errors"
	"testing"

	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestStringers(t *testing.T) {
	assert.Equal(t, "file", types.LeafFile.String())
	assert.Equal(t, "repository", types.LeafRepoUnit.String())
	assert.Equal(t, "unknown", types.LeafKind(42).String())

	assert.Equal(t, "moved", types.OutcomeMoved.String())
	assert.Equal(t, "already-linked", types.OutcomeAlreadyLinked.String())

	assert.Equal(t, "absent", types.LinkState{Kind: types.StateAbsent}.String())
	assert.Equal(t, "regular", types.LinkState{Kind: types.StateRegular}.String())
	assert.Equal(t, "symlink -> /store/.bashrc",
		types.LinkState{Kind: types.StateSymlink, Target: "/store/.bashrc"}.String())
}

func TestAddResult_Failed(t *testing.T) {
	boom := errors.New("boom")
	result := &types.AddResult{Entries: []types.AddedEntry{
		{Path: "/h/.bashrc", Outcome: types.OutcomeMoved},
		{Path: "/h/.vimrc", Err: boom},
		{Path: "/h/.zshrc", Outcome: types.OutcomeAlreadyLinked},
	}}

	failed := result.Failed()
	if assert.Len(t, failed, 1) {
		assert.Equal(t, "/h/.vimrc", failed[0].Path)
	}
}

func TestRestoreResult_Failed(t *testing.T) {
	result := &types.RestoreResult{Entries: []types.RestoredEntry{
		{Relative: ".bashrc"},
		{Relative: ".vimrc"},
	}}
	assert.Empty(t, result.Failed())

	result.Entries[1].Err = errors.New("would overwrite")
	assert.Len(t, result.Failed(), 1)
}

func TestStatusResult_Count(t *testing.T) {
	result := &types.StatusResult{Entries: []types.EntryStatus{
		{Relative: "a", State: types.EntryLinked},
		{Relative: "b", State: types.EntryLinked},
		{Relative: "c", State: types.EntryConflict},
	}}

	assert.Equal(t, 2, result.Count(types.EntryLinked))
	assert.Equal(t, 1, result.Count(types.EntryConflict))
	assert.Equal(t, 0, result.Count(types.EntryMissing))
}

func TestProbeFunc(t *testing.T) {
	probe := types.ProbeFunc(func(dir string) bool { return dir == "/repo" })
	assert.True(t, probe.IsRepository("/repo"))
	assert.False(t, probe.IsRepository("/other"))
}
