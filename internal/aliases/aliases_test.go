package aliases

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/branchkit/internal/gitconfig"
)

func TestInstallDefaults(t *testing.T) {
	iso, err := gitconfig.LoadIsolated(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)

	require.NoError(t, Install(iso, nil, nil))

	installed := iso.Aliases()
	assert.Len(t, installed, len(Default))
	assert.Equal(t, "!branchkit smartlog", installed["sl"])
	assert.Equal(t, "!branchkit checkout", installed["co"])
}

func TestInstallExtraAndDisable(t *testing.T) {
	iso, err := gitconfig.LoadIsolated(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)

	extra := map[string]string{"rs": "restack"}
	require.NoError(t, Install(iso, extra, []string{"co", "hide"}))

	installed := iso.Aliases()
	assert.Equal(t, "!branchkit restack", installed["rs"])
	assert.NotContains(t, installed, "co")
	assert.NotContains(t, installed, "hide")
	assert.Contains(t, installed, "sl")
}

func TestExtraOverridesDefault(t *testing.T) {
	iso, err := gitconfig.LoadIsolated(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)

	require.NoError(t, Install(iso, map[string]string{"co": "switch"}, nil))
	assert.Equal(t, "!branchkit switch", iso.Aliases()["co"])
}

func TestInstallPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	iso, err := gitconfig.LoadIsolated(path)
	require.NoError(t, err)
	require.NoError(t, Install(iso, nil, nil))
	require.NoError(t, iso.Save())

	reloaded, err := gitconfig.LoadIsolated(path)
	require.NoError(t, err)
	assert.Equal(t, iso.Aliases(), reloaded.Aliases())
}
