package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlaylistAddVideoSerializesOnAdvisoryLock(t *testing.T) {
	db, rec := newRecordedManager(t)
	repo := NewPlaylistRepository(db, zap.NewNop())

	added, err := repo.AddVideo(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, added)

	lockTx := rec.txOf("pg_advisory_xact_lock")
	insertTx := rec.txOf("INSERT INTO playlist_videos")
	require.NotEqual(t, -1, lockTx, "advisory lock was never taken")
	require.NotEqual(t, -1, insertTx, "insert was never executed")

	// The lock is taken before the position-assigning insert, inside the
	// same transaction, so concurrent adds cannot read the same
	// MAX(position).
	assert.NotZero(t, lockTx)
	assert.Equal(t, lockTx, insertTx)
	assert.Less(t,
		rec.indexOf("pg_advisory_xact_lock"),
		rec.indexOf("INSERT INTO playlist_videos"))
	assert.Equal(t, 1, rec.commits)
}

func TestPlaylistReorderRunsUnderAdvisoryLock(t *testing.T) {
	db, rec := newRecordedManager(t)
	repo := NewPlaylistRepository(db, zap.NewNop())

	require.NoError(t, repo.Reorder(context.Background(), 1, []int64{11, 10}))

	lockTx := rec.txOf("pg_advisory_xact_lock")
	updateTx := rec.txOf("UPDATE playlist_videos SET position")
	require.NotEqual(t, -1, lockTx)
	require.NotEqual(t, -1, updateTx)
	assert.Equal(t, lockTx, updateTx)
	assert.Equal(t, 1, rec.commits)
}
