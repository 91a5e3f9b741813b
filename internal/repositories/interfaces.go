package repositories

import (
	"context"
	"time"

	"vidtube/internal/models"
)

// ===============================
// LISTING OPTIONS
// ===============================

// VideoListOptions filters the public video feed.
type VideoListOptions struct {
	Params  models.PaginationParams
	Query   string // text filter on title/description
	OwnerID *int64 // restrict to one owner
	// ViewerID enables likedByMe enrichment and owner visibility of
	// unpublished rows; nil means anonymous.
	ViewerID *int64
	// IncludeUnpublished lifts the published filter; callers set it only
	// after an ownership check.
	IncludeUnpublished bool
}

// ===============================
// REPOSITORY CONTRACTS
// ===============================

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// VideoRepository persists videos and serves the enriched feed queries.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Video, error)
	List(ctx context.Context, opts VideoListOptions) (*models.PaginatedResponse[*models.Video], error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// CommentRepository persists comments and their enriched thread views.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByVideo(ctx context.Context, videoID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error)
	ListByOwner(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error)
	CountByVideo(ctx context.Context, videoID int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// TweetRepository persists tweets and their enriched listings.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Tweet, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error)
	ListByOwner(ctx context.Context, ownerID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error)
	Search(ctx context.Context, query string, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error)
	Stats(ctx context.Context, ownerID int64) (*models.TweetStats, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// LikeRepository persists likes keyed by the tagged target.
type LikeRepository interface {
	// Insert records a like; created is false when the (user, target) pair
	// already exists.
	Insert(ctx context.Context, userID int64, target models.LikeTarget) (created bool, err error)
	// Delete removes a like; deleted is false when no row existed.
	Delete(ctx context.Context, userID int64, target models.LikeTarget) (deleted bool, err error)
	Count(ctx context.Context, target models.LikeTarget) (int64, error)
	Exists(ctx context.Context, userID int64, target models.LikeTarget) (bool, error)
	// LikedSet reports, per id, whether the user likes that target.
	LikedSet(ctx context.Context, userID int64, targetType models.LikeTargetType, ids []int64) (map[int64]bool, error)
	Likers(ctx context.Context, target models.LikeTarget, params models.PaginationParams) (*models.PaginatedResponse[*models.UserSummary], error)
	LikedVideos(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error)
}

// PlaylistRepository persists playlists and their ordered video lists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id int64) (*models.Playlist, error)
	GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, publicOnly bool, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error)
	SearchPublic(ctx context.Context, query string, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error)
	ListContainingVideo(ctx context.Context, ownerID, videoID int64) ([]*models.Playlist, error)
	// AddVideo appends at the end of the order; added is false when the
	// video is already present.
	AddVideo(ctx context.Context, playlistID, videoID int64) (added bool, err error)
	RemoveVideo(ctx context.Context, playlistID, videoID int64) (removed bool, err error)
	VideoIDs(ctx context.Context, playlistID int64) ([]int64, error)
	Reorder(ctx context.Context, playlistID int64, videoIDs []int64) error
	ListVideos(ctx context.Context, playlistID int64, publishedOnly bool) ([]*models.Video, error)
}

// SubscriptionRepository persists subscriber/channel edges.
type SubscriptionRepository interface {
	Insert(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, bool, error)
	Delete(ctx context.Context, subscriberID, channelID int64) (deleted bool, err error)
	Exists(ctx context.Context, subscriberID, channelID int64) (bool, error)
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
	ListSubscribers(ctx context.Context, channelID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error)
	ListChannels(ctx context.Context, subscriberID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error)
}

// StatsRepository serves the dashboard aggregations. Each snapshot is a set
// of independent queries; no cross-query atomicity is promised.
type StatsRepository interface {
	ChannelStats(ctx context.Context, ownerID int64) (*models.ChannelStats, error)
	WindowStats(ctx context.Context, ownerID int64, since time.Time) (totalVideos, totalViews int64, err error)
	VideosSince(ctx context.Context, ownerID int64, since time.Time) ([]*models.Video, error)
	TopVideos(ctx context.Context, ownerID int64, limit int) ([]*models.Video, error)
	PlatformTotals(ctx context.Context) (totalUsers, totalVideos, totalViews int64, err error)
	CountsSince(ctx context.Context, since time.Time) (newUsers, newVideos int64, err error)
	TopCreators(ctx context.Context, limit int) ([]*models.CreatorSummary, error)
	MonthlyUploads(ctx context.Context, ownerID int64, since time.Time) ([]*models.MonthlyUploadStat, error)
	PublishBreakdown(ctx context.Context, ownerID int64) (published, unpublished int64, err error)
}
