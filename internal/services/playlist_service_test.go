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

func newPlaylistServiceForTest(playlists *mockPlaylistRepo, videos *mockVideoRepo, users *mockUserRepo) PlaylistService {
	return NewPlaylistService(playlists, videos, users, validator.New(), zap.NewNop())
}

func TestPlaylistCreateDuplicateName(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	existing := &models.Playlist{ID: 1, OwnerID: 2, Name: "Favorites"}
	playlists.On("GetByOwnerAndName", mock.Anything, int64(2), "Favorites").Return(existing, nil)

	_, err := svc.Create(context.Background(), 2, CreatePlaylistRequest{
		Name:        "Favorites",
		Description: "my favorites",
	})
	assert.True(t, IsConflictError(err))
}

func TestPlaylistCreateDefaultsToPublic(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	playlists.On("GetByOwnerAndName", mock.Anything, int64(2), "mix").Return(nil, nil)
	playlists.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Playlist) bool {
		return p.IsPublic
	})).Return(nil)

	playlist, err := svc.Create(context.Background(), 2, CreatePlaylistRequest{
		Name:        "mix",
		Description: "d",
	})
	require.NoError(t, err)
	assert.True(t, playlist.IsPublic)
	playlists.AssertExpectations(t)
}

func TestPlaylistCreateExplicitlyPrivate(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	playlists.On("GetByOwnerAndName", mock.Anything, int64(2), "mix").Return(nil, nil)
	playlists.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Playlist) bool {
		return !p.IsPublic
	})).Return(nil)

	private := false
	playlist, err := svc.Create(context.Background(), 2, CreatePlaylistRequest{
		Name:        "mix",
		Description: "d",
		IsPublic:    &private,
	})
	require.NoError(t, err)
	assert.False(t, playlist.IsPublic)
}

func TestPlaylistPrivateHiddenFromOthers(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	private := &models.Playlist{ID: 1, OwnerID: 2, IsPublic: false}
	playlists.On("GetByID", mock.Anything, int64(1)).Return(private, nil)

	_, err := svc.Get(context.Background(), 1, int64Ptr(3))
	assert.True(t, IsNotFoundError(err))

	_, err = svc.Get(context.Background(), 1, nil)
	assert.True(t, IsNotFoundError(err))
}

func TestPlaylistGetHidesUnpublishedFromNonOwners(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	public := &models.Playlist{ID: 1, OwnerID: 2, IsPublic: true}
	playlists.On("GetByID", mock.Anything, int64(1)).Return(public, nil)

	// Non-owner viewer: only published entries come back.
	playlists.On("ListVideos", mock.Anything, int64(1), true).
		Return([]*models.Video{{ID: 10, IsPublished: true}}, nil).Once()

	playlist, err := svc.Get(context.Background(), 1, int64Ptr(3))
	require.NoError(t, err)
	assert.Len(t, playlist.Videos, 1)
	assert.Equal(t, int64(1), playlist.VideoCount)

	// Owner sees everything.
	playlists.On("ListVideos", mock.Anything, int64(1), false).
		Return([]*models.Video{{ID: 10, IsPublished: true}, {ID: 11, IsPublished: false}}, nil).Once()

	playlist, err = svc.Get(context.Background(), 1, int64Ptr(2))
	require.NoError(t, err)
	assert.Len(t, playlist.Videos, 2)
}

func TestPlaylistReorderRejectsNonPermutation(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	owned := &models.Playlist{ID: 1, OwnerID: 2, IsPublic: true}
	playlists.On("GetByID", mock.Anything, int64(1)).Return(owned, nil)
	playlists.On("VideoIDs", mock.Anything, int64(1)).Return([]int64{10, 11, 12}, nil)

	// Wrong length.
	_, err := svc.Reorder(context.Background(), 2, 1, ReorderPlaylistRequest{
		VideoIDs: []int64{10, 11},
	})
	assert.True(t, IsValidationError(err))

	// Right length, foreign id.
	_, err = svc.Reorder(context.Background(), 2, 1, ReorderPlaylistRequest{
		VideoIDs: []int64{10, 11, 99},
	})
	assert.True(t, IsValidationError(err))

	playlists.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaylistAddVideoDuplicate(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	videos := new(mockVideoRepo)
	svc := newPlaylistServiceForTest(playlists, videos, new(mockUserRepo))

	owned := &models.Playlist{ID: 1, OwnerID: 2, IsPublic: true}
	playlists.On("GetByID", mock.Anything, int64(1)).Return(owned, nil)
	videos.On("GetByID", mock.Anything, int64(10), int64Ptr(2)).
		Return(&models.Video{ID: 10, OwnerID: 5, IsPublished: true}, nil)
	playlists.On("AddVideo", mock.Anything, int64(1), int64(10)).Return(false, nil)

	_, err := svc.AddVideo(context.Background(), 2, 1, 10)
	assert.True(t, IsConflictError(err))
}

func TestPlaylistUpdateForbiddenForNonOwner(t *testing.T) {
	playlists := new(mockPlaylistRepo)
	svc := newPlaylistServiceForTest(playlists, new(mockVideoRepo), new(mockUserRepo))

	public := &models.Playlist{ID: 1, OwnerID: 2, IsPublic: true}
	playlists.On("GetByID", mock.Anything, int64(1)).Return(public, nil)

	name := "renamed"
	_, err := svc.Update(context.Background(), 3, 1, UpdatePlaylistRequest{Name: &name})
	assert.True(t, IsForbiddenError(err))
}
