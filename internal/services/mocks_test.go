package services

import (
	"context"
	"mime/multipart"

	"vidtube/internal/models"
	"vidtube/internal/repositories"
	"vidtube/internal/utils"

	"github.com/stretchr/testify/mock"
)

// ===============================
// REPOSITORY MOCKS
// ===============================

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockVideoRepo struct{ mock.Mock }

func (m *mockVideoRepo) Create(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Video, error) {
	args := m.Called(ctx, id, viewerID)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *mockVideoRepo) List(ctx context.Context, opts repositories.VideoListOptions) (*models.PaginatedResponse[*models.Video], error) {
	args := m.Called(ctx, opts)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Video])
	return page, args.Error(1)
}

func (m *mockVideoRepo) Update(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVideoRepo) IncrementViewCount(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVideoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCommentRepo) ListByVideo(ctx context.Context, videoID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	args := m.Called(ctx, videoID, viewerID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Comment])
	return page, args.Error(1)
}

func (m *mockCommentRepo) ListByOwner(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	args := m.Called(ctx, ownerID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Comment])
	return page, args.Error(1)
}

func (m *mockCommentRepo) CountByVideo(ctx context.Context, videoID int64) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockTweetRepo struct{ mock.Mock }

func (m *mockTweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *mockTweetRepo) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Tweet, error) {
	args := m.Called(ctx, id, viewerID)
	tweet, _ := args.Get(0).(*models.Tweet)
	return tweet, args.Error(1)
}

func (m *mockTweetRepo) Update(ctx context.Context, tweet *models.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *mockTweetRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTweetRepo) List(ctx context.Context, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	args := m.Called(ctx, viewerID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Tweet])
	return page, args.Error(1)
}

func (m *mockTweetRepo) ListByOwner(ctx context.Context, ownerID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	args := m.Called(ctx, ownerID, viewerID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Tweet])
	return page, args.Error(1)
}

func (m *mockTweetRepo) Search(ctx context.Context, query string, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	args := m.Called(ctx, query, viewerID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Tweet])
	return page, args.Error(1)
}

func (m *mockTweetRepo) Stats(ctx context.Context, ownerID int64) (*models.TweetStats, error) {
	args := m.Called(ctx, ownerID)
	stats, _ := args.Get(0).(*models.TweetStats)
	return stats, args.Error(1)
}

func (m *mockTweetRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockLikeRepo struct{ mock.Mock }

func (m *mockLikeRepo) Insert(ctx context.Context, userID int64, target models.LikeTarget) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) Delete(ctx context.Context, userID int64, target models.LikeTarget) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) Count(ctx context.Context, target models.LikeTarget) (int64, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) Exists(ctx context.Context, userID int64, target models.LikeTarget) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) LikedSet(ctx context.Context, userID int64, targetType models.LikeTargetType, ids []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, targetType, ids)
	set, _ := args.Get(0).(map[int64]bool)
	return set, args.Error(1)
}

func (m *mockLikeRepo) Likers(ctx context.Context, target models.LikeTarget, params models.PaginationParams) (*models.PaginatedResponse[*models.UserSummary], error) {
	args := m.Called(ctx, target, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.UserSummary])
	return page, args.Error(1)
}

func (m *mockLikeRepo) LikedVideos(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	args := m.Called(ctx, userID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Video])
	return page, args.Error(1)
}

type mockPlaylistRepo struct{ mock.Mock }

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, id int64) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	playlist, _ := args.Get(0).(*models.Playlist)
	return playlist, args.Error(1)
}

func (m *mockPlaylistRepo) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Playlist, error) {
	args := m.Called(ctx, ownerID, name)
	playlist, _ := args.Get(0).(*models.Playlist)
	return playlist, args.Error(1)
}

func (m *mockPlaylistRepo) Update(ctx context.Context, playlist *models.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPlaylistRepo) ListByOwner(ctx context.Context, ownerID int64, publicOnly bool, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error) {
	args := m.Called(ctx, ownerID, publicOnly, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Playlist])
	return page, args.Error(1)
}

func (m *mockPlaylistRepo) SearchPublic(ctx context.Context, query string, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error) {
	args := m.Called(ctx, query, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Playlist])
	return page, args.Error(1)
}

func (m *mockPlaylistRepo) ListContainingVideo(ctx context.Context, ownerID, videoID int64) ([]*models.Playlist, error) {
	args := m.Called(ctx, ownerID, videoID)
	playlists, _ := args.Get(0).([]*models.Playlist)
	return playlists, args.Error(1)
}

func (m *mockPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPlaylistRepo) VideoIDs(ctx context.Context, playlistID int64) ([]int64, error) {
	args := m.Called(ctx, playlistID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *mockPlaylistRepo) Reorder(ctx context.Context, playlistID int64, videoIDs []int64) error {
	return m.Called(ctx, playlistID, videoIDs).Error(0)
}

func (m *mockPlaylistRepo) ListVideos(ctx context.Context, playlistID int64, publishedOnly bool) ([]*models.Video, error) {
	args := m.Called(ctx, playlistID, publishedOnly)
	videos, _ := args.Get(0).([]*models.Video)
	return videos, args.Error(1)
}

type mockSubscriptionRepo struct{ mock.Mock }

func (m *mockSubscriptionRepo) Insert(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	sub, _ := args.Get(0).(*models.Subscription)
	return sub, args.Bool(1), args.Error(2)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepo) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepo) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) ListSubscribers(ctx context.Context, channelID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error) {
	args := m.Called(ctx, channelID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Subscription])
	return page, args.Error(1)
}

func (m *mockSubscriptionRepo) ListChannels(ctx context.Context, subscriberID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error) {
	args := m.Called(ctx, subscriberID, params)
	page, _ := args.Get(0).(*models.PaginatedResponse[*models.Subscription])
	return page, args.Error(1)
}

// ===============================
// STORAGE MOCK
// ===============================

type mockStorage struct{ mock.Mock }

func (m *mockStorage) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (*utils.UploadResult, error) {
	args := m.Called(ctx, file, folder)
	result, _ := args.Get(0).(*utils.UploadResult)
	return result, args.Error(1)
}

func (m *mockStorage) DeleteFile(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func (m *mockStorage) ValidateFile(file *multipart.FileHeader, kind utils.AssetKind) error {
	return m.Called(file, kind).Error(0)
}

// ===============================
// TEST HELPERS
// ===============================

func int64Ptr(v int64) *int64 { return &v }
