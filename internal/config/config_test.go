package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Empty(t, cfg.MainBranch)
	assert.Zero(t, cfg.EventLog.RetentionDays)
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `main_branch: trunk
aliases:
  extra:
    rs: restack
  disable:
    - co
hooks:
  disable:
    - pre-auto-gc
event_log:
  retention_days: 90
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "trunk", cfg.MainBranch)
	assert.Equal(t, map[string]string{"rs": "restack"}, cfg.Aliases.Extra)
	assert.Equal(t, []string{"co"}, cfg.Aliases.Disable)
	assert.Equal(t, []string{"pre-auto-gc"}, cfg.Hooks.Disable)
	assert.Equal(t, 90, cfg.EventLog.RetentionDays)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("main_branch: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeRetention(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("event_log:\n  retention_days: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("main_branch: trunk\n"), 0o644))

	t.Setenv("BRANCHKIT_MAIN_BRANCH", "develop")
	t.Setenv("BRANCHKIT_RETENTION_DAYS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "develop", cfg.MainBranch)
	assert.Equal(t, 30, cfg.EventLog.RetentionDays)
}

func TestInitWritesExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.MainBranch)
	assert.NotZero(t, cfg.EventLog.RetentionDays)
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, Init(path, true))
}
