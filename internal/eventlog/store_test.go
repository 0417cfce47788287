package eventlog

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndGetByTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := CommitPayload{Commit: "abc123", Branch: "master"}
	require.NoError(t, store.Append(ctx, "txn-1", TypeCommit, payload, map[string]string{"source": "hook"}))
	require.NoError(t, store.Append(ctx, "txn-2", TypeGC, struct{}{}, nil))

	events, err := store.GetByTransaction(ctx, "txn-1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "txn-1", e.TxnID)
	assert.Equal(t, TypeCommit, e.Type)
	assert.Equal(t, map[string]string{"source": "hook"}, e.Metadata)

	var decoded CommitPayload
	require.NoError(t, json.Unmarshal(e.Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestGetRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "txn-1", TypeCheckout, CheckoutPayload{
		OldCommit: "aaa", NewCommit: "bbb", IsBranch: true,
	}, nil))

	now := time.Now()
	events, err := store.GetRange(ctx, now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// A window in the past excludes the event.
	events, err = store.GetRange(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventsOrderedWithinTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, ref := range []string{"refs/heads/a", "refs/heads/b", "refs/heads/c"} {
		require.NoError(t, store.Append(ctx, "txn-1", TypeRefUpdate, RefUpdatePayload{
			State: "committed", Ref: ref, OldHash: "old", NewHash: "new",
		}, nil))
	}

	events, err := store.GetByTransaction(ctx, "txn-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].ID, events[i-1].ID)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)

	require.NoError(t, store.Append(ctx, "txn-1", TypeCommit, CommitPayload{Commit: "abc"}, nil))
	require.NoError(t, store.Append(ctx, "txn-1", TypeCommit, CommitPayload{Commit: "def"}, nil))
	require.NoError(t, store.Append(ctx, "txn-2", TypeGC, struct{}{}, nil))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByType[TypeCommit])
	assert.Equal(t, int64(1), stats.ByType[TypeGC])
	assert.False(t, stats.First.IsZero())
	assert.False(t, stats.Last.Before(stats.First))
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "txn-1", TypeCommit, CommitPayload{Commit: "abc"}, nil))
	require.NoError(t, store.Append(ctx, "txn-2", TypeCommit, CommitPayload{Commit: "def"}, nil))

	// Cutoff before all events: nothing removed.
	pruned, err := store.Prune(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, pruned)

	// Cutoff after all events: everything removed.
	pruned, err = store.Prune(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestPersistentFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), DBFileName)

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), "txn-1", TypeInit,
		map[string]string{"main_branch": "main"}, nil))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	events, err := reopened.GetByTransaction(context.Background(), "txn-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, TypeInit, events[0].Type)
}
