// pkg/commands/initialize/init_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: git binary, real filesystem
// PURPOSE: Test store creation and that repeated init is a no-op

package initialize_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotty/pkg/commands/initialize"
	"github.com/arthur-debert/dotty/pkg/paths"
	"github.com/arthur-debert/dotty/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	g := testutil.RequireGit(t)
	ctx := context.Background()
	home := t.TempDir()
	store := filepath.Join(home, ".dotty")
	opts := initialize.InitOptions{
		Locations: paths.Locations{Repository: store, Root: home},
		Git:       g,
	}

	result, err := initialize.Init(ctx, opts)
	require.NoError(t, err)
	assert.True(t, result.CreatedRepo)
	assert.True(t, result.CreatedManifest)

	data, err := os.ReadFile(filepath.Join(store, "dotty.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	out, err := exec.Command("git", "-C", store, "log", "--format=%s").CombinedOutput()
	require.NoError(t, err, string(out))
	assert.Equal(t, initialize.InitialCommitMessage+"\n", string(out))

	again, err := initialize.Init(ctx, opts)
	require.NoError(t, err)
	assert.False(t, again.CreatedRepo)
	assert.False(t, again.CreatedManifest)
}
