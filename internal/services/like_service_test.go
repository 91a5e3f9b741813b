package services

import (
	"context"
	"testing"

	"vidtube/internal/events"
	"vidtube/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLikeServiceForTest(likes *mockLikeRepo, videos *mockVideoRepo, comments *mockCommentRepo, tweets *mockTweetRepo) LikeService {
	return NewLikeService(likes, videos, comments, tweets,
		events.NewBus(zap.NewNop()), validator.New(), zap.NewNop())
}

func TestLikeToggleCreatesThenRemoves(t *testing.T) {
	likes := new(mockLikeRepo)
	tweets := new(mockTweetRepo)
	svc := newLikeServiceForTest(likes, new(mockVideoRepo), new(mockCommentRepo), tweets)

	target := models.TweetTarget(7)
	tweets.On("Exists", mock.Anything, int64(7)).Return(true, nil)

	// First toggle: the insert lands.
	likes.On("Insert", mock.Anything, int64(1), target).Return(true, nil).Once()
	likes.On("Count", mock.Anything, target).Return(int64(1), nil).Once()

	state, err := svc.Toggle(context.Background(), 1, target)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)
	assert.Equal(t, int64(1), state.LikeCount)

	// Second toggle: the row already exists, so it is an unlike.
	likes.On("Insert", mock.Anything, int64(1), target).Return(false, nil).Once()
	likes.On("Delete", mock.Anything, int64(1), target).Return(true, nil).Once()
	likes.On("Count", mock.Anything, target).Return(int64(0), nil).Once()

	state, err = svc.Toggle(context.Background(), 1, target)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Equal(t, int64(0), state.LikeCount)

	likes.AssertExpectations(t)
}

func TestLikeToggleMissingTarget(t *testing.T) {
	comments := new(mockCommentRepo)
	svc := newLikeServiceForTest(new(mockLikeRepo), new(mockVideoRepo), comments, new(mockTweetRepo))

	comments.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.Toggle(context.Background(), 1, models.CommentTarget(99))
	assert.True(t, IsNotFoundError(err))
}

func TestLikeToggleHiddenVideoReadsAsNotFound(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newLikeServiceForTest(new(mockLikeRepo), videos, new(mockCommentRepo), new(mockTweetRepo))

	unpublished := &models.Video{ID: 5, OwnerID: 2, IsPublished: false}
	videos.On("GetByID", mock.Anything, int64(5), int64Ptr(1)).Return(unpublished, nil)

	_, err := svc.Toggle(context.Background(), 1, models.VideoTarget(5))
	assert.True(t, IsNotFoundError(err))
}

func TestLikeToggleRejectsUnknownTargetType(t *testing.T) {
	svc := newLikeServiceForTest(new(mockLikeRepo), new(mockVideoRepo), new(mockCommentRepo), new(mockTweetRepo))

	_, err := svc.Toggle(context.Background(), 1,
		models.LikeTarget{Type: "playlist", ID: 1})
	assert.True(t, IsValidationError(err))
}

func TestLikeStatus(t *testing.T) {
	likes := new(mockLikeRepo)
	svc := newLikeServiceForTest(likes, new(mockVideoRepo), new(mockCommentRepo), new(mockTweetRepo))

	ids := []int64{1, 2, 3}
	likes.On("LikedSet", mock.Anything, int64(9), models.LikeTargetVideo, ids).
		Return(map[int64]bool{1: true, 2: false, 3: false}, nil)

	status, err := svc.Status(context.Background(), 9, LikeStatusRequest{
		TargetType: models.LikeTargetVideo,
		TargetIDs:  ids,
	})
	require.NoError(t, err)
	assert.True(t, status[1])
	assert.False(t, status[2])
	assert.False(t, status[3])
}

func TestLikeStatusRejectsEmptyBatch(t *testing.T) {
	svc := newLikeServiceForTest(new(mockLikeRepo), new(mockVideoRepo), new(mockCommentRepo), new(mockTweetRepo))

	_, err := svc.Status(context.Background(), 9, LikeStatusRequest{
		TargetType: models.LikeTargetVideo,
		TargetIDs:  nil,
	})
	assert.True(t, IsValidationError(err))
}
