// Package models defines the persisted entities and the denormalized view
// shapes returned to API clients.
package models

import (
	"time"
)

// ===============================
// USERS
// ===============================

// User represents a registered account. Username and email are unique
// case-insensitively; the stored values are already lowercased.
type User struct {
	ID                 int64      `db:"id" json:"id"`
	Username           string     `db:"username" json:"username" validate:"required,min=3,max=30"`
	Email              string     `db:"email" json:"email" validate:"required,email"`
	DisplayName        string     `db:"display_name" json:"displayName" validate:"required,max=100"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	AvatarURL          *string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	AvatarPublicID     *string    `db:"avatar_public_id" json:"-"`
	CoverImageURL      *string    `db:"cover_image_url" json:"coverImageUrl,omitempty"`
	CoverImagePublicID *string    `db:"cover_image_public_id" json:"-"`
	Role               string     `db:"role" json:"role"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// UserSummary is the owner projection attached to enriched rows.
type UserSummary struct {
	ID          int64   `db:"id" json:"id"`
	Username    string  `db:"username" json:"username"`
	DisplayName string  `db:"display_name" json:"displayName"`
	AvatarURL   *string `db:"avatar_url" json:"avatarUrl,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// ===============================
// VIDEOS
// ===============================

// Video represents an uploaded video and its blob references.
type Video struct {
	ID                int64     `db:"id" json:"id"`
	OwnerID           int64     `db:"owner_id" json:"ownerId"`
	VideoURL          string    `db:"video_url" json:"videoUrl"`
	VideoPublicID     string    `db:"video_public_id" json:"-"`
	ThumbnailURL      string    `db:"thumbnail_url" json:"thumbnailUrl"`
	ThumbnailPublicID string    `db:"thumbnail_public_id" json:"-"`
	Title             string    `db:"title" json:"title" validate:"required,max=200"`
	Description       string    `db:"description" json:"description" validate:"required"`
	DurationSeconds   float64   `db:"duration_seconds" json:"durationSeconds"`
	ViewCount         int64     `db:"view_count" json:"viewCount"`
	IsPublished       bool      `db:"is_published" json:"isPublished"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`

	// Enriched fields, populated by joins
	Owner     *UserSummary `db:"-" json:"owner,omitempty"`
	LikeCount int64        `db:"-" json:"likeCount"`
	LikedByMe *bool        `db:"-" json:"likedByMe,omitempty"`
	IsOwner   bool         `db:"-" json:"isOwner,omitempty"`
}

// VideoSummary is the parent-video projection attached to comments and
// playlist listings.
type VideoSummary struct {
	ID           int64  `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	ThumbnailURL string `db:"thumbnail_url" json:"thumbnailUrl"`
	OwnerID      int64  `db:"owner_id" json:"ownerId"`
}

// IsOwnedBy reports whether userID owns the video.
func (v *Video) IsOwnedBy(userID int64) bool {
	return v.OwnerID == userID
}

// VisibleTo reports whether the video may be read by the given actor.
// Unpublished videos are visible to their owner only.
func (v *Video) VisibleTo(userID *int64) bool {
	if v.IsPublished {
		return true
	}
	return userID != nil && *userID == v.OwnerID
}

// ===============================
// COMMENTS
// ===============================

// Comment is a comment on a video.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"ownerId"`
	VideoID   int64     `db:"video_id" json:"videoId"`
	Content   string    `db:"content" json:"content" validate:"required,max=2000"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Owner     *UserSummary  `db:"-" json:"owner,omitempty"`
	Video     *VideoSummary `db:"-" json:"video,omitempty"`
	LikeCount int64         `db:"-" json:"likeCount"`
	LikedByMe *bool         `db:"-" json:"likedByMe,omitempty"`
}

// IsOwnedBy reports whether userID owns the comment.
func (c *Comment) IsOwnedBy(userID int64) bool {
	return c.OwnerID == userID
}

// ===============================
// TWEETS
// ===============================

// Tweet is a short standalone post.
type Tweet struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"ownerId"`
	Content   string    `db:"content" json:"content" validate:"required,max=500"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Owner     *UserSummary `db:"-" json:"owner,omitempty"`
	LikeCount int64        `db:"-" json:"likeCount"`
	LikedByMe *bool        `db:"-" json:"likedByMe,omitempty"`
}

// IsOwnedBy reports whether userID owns the tweet.
func (t *Tweet) IsOwnedBy(userID int64) bool {
	return t.OwnerID == userID
}

// ===============================
// LIKES
// ===============================

// LikeTargetType enumerates the entity kinds a like may point at.
type LikeTargetType string

const (
	LikeTargetVideo   LikeTargetType = "video"
	LikeTargetComment LikeTargetType = "comment"
	LikeTargetTweet   LikeTargetType = "tweet"
)

// Valid reports whether the target type is one of the known kinds.
func (t LikeTargetType) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// LikeTarget is the tagged reference a Like points at: exactly one entity
// of exactly one kind.
type LikeTarget struct {
	Type LikeTargetType `db:"target_type" json:"targetType"`
	ID   int64          `db:"target_id" json:"targetId"`
}

// VideoTarget returns a LikeTarget for a video.
func VideoTarget(id int64) LikeTarget { return LikeTarget{Type: LikeTargetVideo, ID: id} }

// CommentTarget returns a LikeTarget for a comment.
func CommentTarget(id int64) LikeTarget { return LikeTarget{Type: LikeTargetComment, ID: id} }

// TweetTarget returns a LikeTarget for a tweet.
func TweetTarget(id int64) LikeTarget { return LikeTarget{Type: LikeTargetTweet, ID: id} }

// Like records that a user likes a target. At most one row exists per
// (user, target) pair; the unique constraint carries the toggle semantics.
type Like struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"userId"`
	Target    LikeTarget `json:"target"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// LikeState is the post-toggle result returned to clients.
type LikeState struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}

// ===============================
// PLAYLISTS
// ===============================

// Playlist is an ordered, duplicate-free sequence of video references.
// Name is unique per owner.
type Playlist struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"ownerId"`
	Name        string    `db:"name" json:"name" validate:"required,max=100"`
	Description string    `db:"description" json:"description" validate:"required"`
	IsPublic    bool      `db:"is_public" json:"isPublic"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	Owner               *UserSummary `db:"-" json:"owner,omitempty"`
	Videos              []*Video     `db:"-" json:"videos,omitempty"`
	VideoCount          int64        `db:"-" json:"videoCount"`
	FirstVideoThumbnail *string      `db:"-" json:"firstVideoThumbnail,omitempty"`
}

// IsOwnedBy reports whether userID owns the playlist.
func (p *Playlist) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}

// VisibleTo reports whether the playlist may be read by the given actor.
func (p *Playlist) VisibleTo(userID *int64) bool {
	if p.IsPublic {
		return true
	}
	return userID != nil && *userID == p.OwnerID
}

// ===============================
// SUBSCRIPTIONS
// ===============================

// Subscription records that subscriber follows channel. At most one row
// per pair; self-subscription is rejected before the store is reached.
type Subscription struct {
	ID           int64     `db:"id" json:"id"`
	SubscriberID int64     `db:"subscriber_id" json:"subscriberId"`
	ChannelID    int64     `db:"channel_id" json:"channelId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	Subscriber *UserSummary `db:"-" json:"subscriber,omitempty"`
	Channel    *UserSummary `db:"-" json:"channel,omitempty"`
}

// ===============================
// DASHBOARD / STATS
// ===============================

// ChannelStats aggregates one owner's video figures.
type ChannelStats struct {
	TotalVideos       int64    `json:"totalVideos"`
	TotalViews        int64    `json:"totalViews"`
	PublishedVideos   int64    `json:"publishedVideos"`
	UnpublishedVideos int64    `json:"unpublishedVideos"`
	MostViewedVideo   *Video   `json:"mostViewedVideo,omitempty"`
	LatestVideos      []*Video `json:"latestVideos"`
}

// VideoAnalytics covers a recent time window plus the all-time top
// performers for one owner.
type VideoAnalytics struct {
	WindowDays  int      `json:"windowDays"`
	TotalVideos int64    `json:"totalVideos"`
	TotalViews  int64    `json:"totalViews"`
	Videos      []*Video `json:"videos"`
	TopVideos   []*Video `json:"topPerformingVideos"`
}

// CreatorSummary ranks a user by owned-video count.
type CreatorSummary struct {
	UserID      int64     `db:"user_id" json:"userId"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"displayName"`
	VideoCount  int64     `db:"video_count" json:"videoCount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// AdminStats aggregates platform-wide figures.
type AdminStats struct {
	TotalUsers        int64             `json:"totalUsers"`
	TotalVideos       int64             `json:"totalVideos"`
	TotalViews        int64             `json:"totalViews"`
	NewUsersThisWeek  int64             `json:"newUsersThisWeek"`
	NewVideosThisWeek int64             `json:"newVideosThisWeek"`
	TopCreators       []*CreatorSummary `json:"topCreators"`
}

// MonthlyUploadStat is one month's bucket in the upload summary.
type MonthlyUploadStat struct {
	Year       int   `db:"year" json:"year"`
	Month      int   `db:"month" json:"month"`
	Count      int64 `db:"count" json:"count"`
	TotalViews int64 `db:"total_views" json:"totalViews"`
}

// UploadSummary buckets one owner's uploads by month plus a publish-status
// breakdown.
type UploadSummary struct {
	MonthlyUploads []*MonthlyUploadStat `json:"monthlyUploads"`
	Published      int64                `json:"published"`
	Unpublished    int64                `json:"unpublished"`
}

// TweetStats aggregates one owner's tweets.
type TweetStats struct {
	TotalTweets      int64      `json:"totalTweets"`
	AvgContentLength float64    `json:"avgContentLength"`
	OldestTweet      *time.Time `json:"oldestTweet,omitempty"`
	NewestTweet      *time.Time `json:"newestTweet,omitempty"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams carries parsed, clamped listing parameters.
type PaginationParams struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	SortBy   string `json:"sortBy,omitempty"`
	SortType string `json:"sortType,omitempty"`
}

// Offset returns the row offset for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginatedResponse wraps one page of items with its listing metadata.
// Total counts all rows matching the pre-pagination filter.
type PaginatedResponse[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPaginatedResponse assembles the page envelope from the fetched items
// and the filter-wide total.
func NewPaginatedResponse[T any](items []T, params PaginationParams, total int64) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return &PaginatedResponse[T]{
		Items:       items,
		Page:        params.Page,
		Limit:       params.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: params.Page < totalPages,
		HasPrevPage: params.Page > 1,
	}
}
