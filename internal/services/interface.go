package services

import (
	"context"

	"vidtube/internal/models"
)

// ===============================
// SERVICE CONTRACTS
// ===============================

// UserService handles registration, login and profile reads.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// VideoService handles the video lifecycle and the enriched feed.
type VideoService interface {
	Upload(ctx context.Context, ownerID int64, req UploadVideoRequest) (*models.Video, error)
	// Get applies the visibility guard and, on a permitted read, bumps the
	// view count.
	Get(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error)
	List(ctx context.Context, viewerID *int64, req ListVideosRequest) (*models.PaginatedResponse[*models.Video], error)
	ListByUser(ctx context.Context, targetUserID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error)
	Update(ctx context.Context, actorID, videoID int64, req UpdateVideoRequest) (*models.Video, error)
	Delete(ctx context.Context, actorID, videoID int64) error
	TogglePublish(ctx context.Context, actorID, videoID int64) (*models.Video, error)
}

// CommentService handles comments under the video visibility guard.
type CommentService interface {
	Create(ctx context.Context, actorID int64, req CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actorID, commentID int64, req UpdateCommentRequest) (*models.Comment, error)
	// Delete permits the comment owner and the owner of the parent video.
	Delete(ctx context.Context, actorID, commentID int64) error
	ListByVideo(ctx context.Context, videoID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error)
	ListByUser(ctx context.Context, targetUserID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error)
	CountByVideo(ctx context.Context, videoID int64, viewerID *int64) (int64, error)
}

// TweetService handles tweets.
type TweetService interface {
	Create(ctx context.Context, actorID int64, req CreateTweetRequest) (*models.Tweet, error)
	Get(ctx context.Context, tweetID int64, viewerID *int64) (*models.Tweet, error)
	Update(ctx context.Context, actorID, tweetID int64, req UpdateTweetRequest) (*models.Tweet, error)
	Delete(ctx context.Context, actorID, tweetID int64) error
	List(ctx context.Context, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error)
	ListByUser(ctx context.Context, targetUserID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error)
	Search(ctx context.Context, query string, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error)
	Stats(ctx context.Context, targetUserID int64) (*models.TweetStats, error)
}

// LikeService handles the toggle state machine across the three target
// kinds.
type LikeService interface {
	Toggle(ctx context.Context, actorID int64, target models.LikeTarget) (*models.LikeState, error)
	Count(ctx context.Context, target models.LikeTarget) (int64, error)
	Status(ctx context.Context, actorID int64, req LikeStatusRequest) (map[int64]bool, error)
	Likers(ctx context.Context, target models.LikeTarget, params models.PaginationParams) (*models.PaginatedResponse[*models.UserSummary], error)
	LikedVideos(ctx context.Context, actorID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error)
}

// PlaylistService handles playlists under the privacy guard.
type PlaylistService interface {
	Create(ctx context.Context, actorID int64, req CreatePlaylistRequest) (*models.Playlist, error)
	// Get returns the playlist with its videos; private playlists are
	// owner-only and public ones hide unpublished videos from non-owners.
	Get(ctx context.Context, playlistID int64, viewerID *int64) (*models.Playlist, error)
	Update(ctx context.Context, actorID, playlistID int64, req UpdatePlaylistRequest) (*models.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID int64) error
	ListByUser(ctx context.Context, targetUserID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error)
	SearchPublic(ctx context.Context, query string, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error)
	AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*models.Playlist, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*models.Playlist, error)
	Reorder(ctx context.Context, actorID, playlistID int64, req ReorderPlaylistRequest) (*models.Playlist, error)
	SetPrivacy(ctx context.Context, actorID, playlistID int64, isPublic bool) (*models.Playlist, error)
	// ContainingVideo lists the actor's own playlists that hold the video,
	// for save-to-playlist pickers.
	ContainingVideo(ctx context.Context, actorID, videoID int64) ([]*models.Playlist, error)
}

// SubscriptionService handles subscriber/channel edges.
type SubscriptionService interface {
	Subscribe(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, subscriberID, channelID int64) error
	IsSubscribed(ctx context.Context, subscriberID, channelID int64) (bool, error)
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
	ListSubscribers(ctx context.Context, channelID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error)
	ListChannels(ctx context.Context, subscriberID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error)
}

// DashboardService serves owner and platform aggregations.
type DashboardService interface {
	ChannelStats(ctx context.Context, actorID int64) (*models.ChannelStats, error)
	Analytics(ctx context.Context, actorID int64, req AnalyticsRequest) (*models.VideoAnalytics, error)
	// AdminStats requires the admin role.
	AdminStats(ctx context.Context, actorID int64) (*models.AdminStats, error)
	UploadSummary(ctx context.Context, actorID int64) (*models.UploadSummary, error)
}
