package gitconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfigText(t *testing.T) {
	original := "[blahblah]\n\tkey = \"value\"\n"
	expect := "# branchkit section start\n" +
		"[include]\n" +
		"\tpath = \"branchkit/config\"\n" +
		"\tpath = \"~/.gitconfig\"\n" +
		"# branchkit section end\n" +
		"[blahblah]\n\tkey = \"value\"\n"

	assert.Equal(t, expect, UpdateConfigText(original, "branchkit/config"))
	// Check for idempotence.
	assert.Equal(t, expect, UpdateConfigText(expect, "branchkit/config"))
}

func TestUpdateConfigTextEmpty(t *testing.T) {
	updated := UpdateConfigText("", "branchkit/config")
	assert.Contains(t, updated, "# branchkit section start")
	assert.Contains(t, updated, "path = \"branchkit/config\"")
	assert.Equal(t, updated, UpdateConfigText(updated, "branchkit/config"))
}

func TestUpdateConfigTextReplacesStalePath(t *testing.T) {
	stale := UpdateConfigText("[user]\n\tname = someone\n", "old/location")
	updated := UpdateConfigText(stale, "branchkit/config")

	assert.NotContains(t, updated, "old/location")
	assert.Contains(t, updated, "branchkit/config")
	assert.Contains(t, updated, "[user]")
}

func TestRemoveConfigText(t *testing.T) {
	original := "[user]\n\tname = someone\n"
	withSection := UpdateConfigText(original, "branchkit/config")
	require.NotEqual(t, original, withSection)

	assert.Equal(t, original, RemoveConfigText(withSection))
	// Removing twice changes nothing.
	assert.Equal(t, original, RemoveConfigText(RemoveConfigText(withSection)))
}
