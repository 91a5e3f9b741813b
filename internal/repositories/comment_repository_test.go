package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommentDeleteCascadesLikesInOneTransaction(t *testing.T) {
	db, rec := newRecordedManager(t)
	repo := NewCommentRepository(db, zap.NewNop())

	require.NoError(t, repo.Delete(context.Background(), 5))

	likesTx := rec.txOf("DELETE FROM likes WHERE target_type = 'comment'")
	commentTx := rec.txOf("DELETE FROM comments WHERE id")
	require.NotEqual(t, -1, likesTx, "likes cleanup was never executed")
	require.NotEqual(t, -1, commentTx, "comment delete was never executed")

	// Both deletes run in the same transaction, likes first, and the
	// transaction commits.
	assert.NotZero(t, likesTx)
	assert.Equal(t, likesTx, commentTx)
	assert.Less(t,
		rec.indexOf("DELETE FROM likes WHERE target_type = 'comment'"),
		rec.indexOf("DELETE FROM comments WHERE id"))
	assert.Equal(t, 1, rec.commits)
	assert.Zero(t, rec.rollbacks)
}
