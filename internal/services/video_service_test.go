package services

import (
	"context"
	"testing"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVideoServiceForTest(videos *mockVideoRepo, users *mockUserRepo, storage *mockStorage) VideoService {
	return NewVideoService(videos, users, storage,
		events.NewBus(zap.NewNop()), validator.New(), zap.NewNop())
}

func TestVideoGetIncrementsViewCount(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newVideoServiceForTest(videos, new(mockUserRepo), new(mockStorage))

	stored := &models.Video{ID: 1, OwnerID: 2, IsPublished: true, ViewCount: 10}
	videos.On("GetByID", mock.Anything, int64(1), (*int64)(nil)).Return(stored, nil)
	videos.On("IncrementViewCount", mock.Anything, int64(1)).Return(nil)

	video, err := svc.Get(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(11), video.ViewCount)
	videos.AssertExpectations(t)
}

func TestVideoGetUnpublishedHiddenFromOthers(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newVideoServiceForTest(videos, new(mockUserRepo), new(mockStorage))

	stored := &models.Video{ID: 1, OwnerID: 2, IsPublished: false}
	videos.On("GetByID", mock.Anything, int64(1), int64Ptr(3)).Return(stored, nil)

	_, err := svc.Get(context.Background(), 1, int64Ptr(3))
	assert.True(t, IsNotFoundError(err))
	videos.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
}

func TestVideoGetUnpublishedVisibleToOwner(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newVideoServiceForTest(videos, new(mockUserRepo), new(mockStorage))

	stored := &models.Video{ID: 1, OwnerID: 2, IsPublished: false}
	videos.On("GetByID", mock.Anything, int64(1), int64Ptr(2)).Return(stored, nil)
	videos.On("IncrementViewCount", mock.Anything, int64(1)).Return(nil)

	video, err := svc.Get(context.Background(), 1, int64Ptr(2))
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.ID)
}

func TestVideoUpdateForbiddenForNonOwner(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newVideoServiceForTest(videos, new(mockUserRepo), new(mockStorage))

	stored := &models.Video{ID: 1, OwnerID: 2, IsPublished: true}
	videos.On("GetByID", mock.Anything, int64(1), int64Ptr(3)).Return(stored, nil)

	title := "new title"
	_, err := svc.Update(context.Background(), 3, 1, UpdateVideoRequest{Title: &title})
	assert.True(t, IsForbiddenError(err))
}

func TestVideoTogglePublishFlipsState(t *testing.T) {
	videos := new(mockVideoRepo)
	svc := newVideoServiceForTest(videos, new(mockUserRepo), new(mockStorage))

	stored := &models.Video{ID: 1, OwnerID: 2, IsPublished: true}
	videos.On("GetByID", mock.Anything, int64(1), int64Ptr(2)).Return(stored, nil)
	videos.On("Update", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return !v.IsPublished
	})).Return(nil)

	video, err := svc.TogglePublish(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, video.IsPublished)
	videos.AssertExpectations(t)
}

func TestVideoListByUserOwnerSeesUnpublished(t *testing.T) {
	videos := new(mockVideoRepo)
	users := new(mockUserRepo)
	svc := newVideoServiceForTest(videos, users, new(mockStorage))

	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	empty := models.NewPaginatedResponse([]*models.Video{}, models.PaginationParams{Page: 1, Limit: 10}, 0)
	videos.On("List", mock.Anything, mock.MatchedBy(func(opts repositories.VideoListOptions) bool {
		return opts.IncludeUnpublished
	})).Return(empty, nil)

	_, err := svc.ListByUser(context.Background(), 2, int64Ptr(2), models.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	videos.AssertExpectations(t)
}
