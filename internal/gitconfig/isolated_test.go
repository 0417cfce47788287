package gitconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedMissingFileIsEmpty(t *testing.T) {
	iso, err := LoadIsolated(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)
	assert.Empty(t, iso.Get("branchkit.core.mainBranch"))
	assert.Empty(t, iso.Aliases())
}

func TestIsolatedSetSaveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branchkit", "config")

	iso, err := LoadIsolated(path)
	require.NoError(t, err)
	require.NoError(t, iso.Set("branchkit.core.mainBranch", "main"))
	require.NoError(t, iso.Set("advice.detachedHead", "false"))
	require.NoError(t, iso.Set("alias.sl", "!branchkit smartlog"))
	require.NoError(t, iso.Save())

	reloaded, err := LoadIsolated(path)
	require.NoError(t, err)
	assert.Equal(t, "main", reloaded.Get("branchkit.core.mainBranch"))
	assert.Equal(t, "false", reloaded.Get("advice.detachedHead"))
	assert.Equal(t, map[string]string{"sl": "!branchkit smartlog"}, reloaded.Aliases())
}

func TestIsolatedUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	iso, err := LoadIsolated(path)
	require.NoError(t, err)
	require.NoError(t, iso.Set("branchkit.core.mainBranch", "main"))
	require.NoError(t, iso.Unset("branchkit.core.mainBranch"))
	assert.Empty(t, iso.Get("branchkit.core.mainBranch"))

	// Unsetting an absent key is not an error.
	require.NoError(t, iso.Unset("branchkit.core.mainBranch"))
}

func TestIsolatedMalformedKey(t *testing.T) {
	iso, err := LoadIsolated(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)
	assert.Error(t, iso.Set("nosection", "value"))
}

func TestIsolatedDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	iso, err := LoadIsolated(path)
	require.NoError(t, err)
	require.NoError(t, iso.Set("advice.detachedHead", "false"))
	require.NoError(t, iso.Save())
	require.FileExists(t, path)

	require.NoError(t, iso.Delete())
	_, serr := os.Stat(path)
	assert.True(t, os.IsNotExist(serr))

	// Deleting again is fine.
	require.NoError(t, iso.Delete())
}
