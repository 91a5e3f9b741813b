package services

import (
	"mime/multipart"
	"time"

	"vidtube/internal/models"
)

// ===============================
// AUTH
// ===============================

// RegisterRequest carries a new account. Username and email are normalized
// to lowercase before the duplicate check.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=72"`

	Avatar     *multipart.FileHeader `json:"-" validate:"required"`
	CoverImage *multipart.FileHeader `json:"-"`
}

// LoginRequest accepts a username or an email as the login.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the signed session returned after register or login.
type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// ===============================
// VIDEOS
// ===============================

// UploadVideoRequest carries a new video and its two blobs.
type UploadVideoRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description" validate:"required"`
	DurationSeconds float64 `json:"durationSeconds" validate:"gte=0"`

	VideoFile *multipart.FileHeader `json:"-" validate:"required"`
	Thumbnail *multipart.FileHeader `json:"-" validate:"required"`
}

// UpdateVideoRequest carries a partial edit. Nil fields keep their stored
// values; a non-nil Thumbnail replaces the old blob.
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1"`

	Thumbnail *multipart.FileHeader `json:"-"`
}

// ListVideosRequest filters the public feed.
type ListVideosRequest struct {
	Params models.PaginationParams
	Query  string
	UserID *int64 // restrict to one owner's videos
}

// ===============================
// COMMENTS
// ===============================

// CreateCommentRequest attaches a comment to a video.
type CreateCommentRequest struct {
	VideoID int64  `json:"videoId" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=2000"`
}

// UpdateCommentRequest replaces a comment's content.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ===============================
// TWEETS
// ===============================

// CreateTweetRequest carries a new tweet.
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// UpdateTweetRequest replaces a tweet's content.
type UpdateTweetRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// ===============================
// LIKES
// ===============================

// LikeStatusRequest asks, for a batch of ids of one kind, which ones the
// user likes.
type LikeStatusRequest struct {
	TargetType models.LikeTargetType `json:"targetType" validate:"required"`
	TargetIDs  []int64               `json:"targetIds" validate:"required,min=1,max=100,dive,gt=0"`
}

// ===============================
// PLAYLISTS
// ===============================

// CreatePlaylistRequest carries a new playlist. Playlists are public
// unless the request says otherwise.
type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	IsPublic    *bool  `json:"isPublic"`
}

// UpdatePlaylistRequest carries a partial playlist edit.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1"`
}

// ReorderPlaylistRequest carries the full new ordering. VideoIDs must be a
// permutation of the playlist's current membership.
type ReorderPlaylistRequest struct {
	VideoIDs []int64 `json:"videoIds" validate:"required,min=1,dive,gt=0"`
}

// ===============================
// DASHBOARD
// ===============================

// AnalyticsRequest selects the recent window in days.
type AnalyticsRequest struct {
	WindowDays int `json:"windowDays" validate:"gte=1,lte=365"`
}
