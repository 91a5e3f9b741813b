package services

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommentServiceForTest(comments *mockCommentRepo, videos *mockVideoRepo, users *mockUserRepo) CommentService {
	return NewCommentService(comments, videos, users, validator.New(), zap.NewNop())
}

func TestCommentCreateOnHiddenVideo(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newCommentServiceForTest(new(mockCommentRepo), videos, new(mockUserRepo))

	unpublished := &models.Video{ID: 1, OwnerID: 2, IsPublished: false}
	videos.On("GetByID", mock.Anything, int64(1), int64Ptr(3)).Return(unpublished, nil)

	_, err := svc.Create(context.Background(), 3, CreateCommentRequest{
		VideoID: 1,
		Content: "nice video",
	})
	assert.True(t, IsNotFoundError(err))
}

func TestCommentDeleteByCommentOwner(t *testing.T) {
	comments := new(mockCommentRepo)
	svc := newCommentServiceForTest(comments, new(mockVideoRepo), new(mockUserRepo))

	comments.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Comment{ID: 5, OwnerID: 3, VideoID: 1}, nil)
	comments.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), 3, 5)
	require.NoError(t, err)
	comments.AssertExpectations(t)
}

func TestCommentDeleteByVideoOwner(t *testing.T) {
	comments := new(mockCommentRepo)
	videos := new(mockVideoRepo)
	svc := newCommentServiceForTest(comments, videos, new(mockUserRepo))

	comments.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Comment{ID: 5, OwnerID: 3, VideoID: 1}, nil)
	videos.On("GetByID", mock.Anything, int64(1), (*int64)(nil)).
		Return(&models.Video{ID: 1, OwnerID: 7, IsPublished: true}, nil)
	comments.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), 7, 5)
	require.NoError(t, err)
	comments.AssertExpectations(t)
}

func TestCommentDeleteByStranger(t *testing.T) {
	comments := new(mockCommentRepo)
	videos := new(mockVideoRepo)
	svc := newCommentServiceForTest(comments, videos, new(mockUserRepo))

	comments.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Comment{ID: 5, OwnerID: 3, VideoID: 1}, nil)
	videos.On("GetByID", mock.Anything, int64(1), (*int64)(nil)).
		Return(&models.Video{ID: 1, OwnerID: 7, IsPublished: true}, nil)

	err := svc.Delete(context.Background(), 9, 5)
	assert.True(t, IsForbiddenError(err))
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCommentUpdateForbiddenForNonOwner(t *testing.T) {
	comments := new(mockCommentRepo)
	svc := newCommentServiceForTest(comments, new(mockVideoRepo), new(mockUserRepo))

	comments.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Comment{ID: 5, OwnerID: 3, VideoID: 1}, nil)

	_, err := svc.Update(context.Background(), 4, 5, UpdateCommentRequest{Content: "edited"})
	assert.True(t, IsForbiddenError(err))
}
