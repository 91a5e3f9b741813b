package repositories

import (
	"vidtube/internal/database"

	"go.uber.org/zap"
)

// Collection bundles every store behind one constructor so wiring stays in
// one place.
type Collection struct {
	Users         UserRepository
	Videos        VideoRepository
	Comments      CommentRepository
	Tweets        TweetRepository
	Likes         LikeRepository
	Playlists     PlaylistRepository
	Subscriptions SubscriptionRepository
	Stats         StatsRepository
}

// NewCollection builds all repositories over one database manager.
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		Users:         NewUserRepository(db, logger),
		Videos:        NewVideoRepository(db, logger),
		Comments:      NewCommentRepository(db, logger),
		Tweets:        NewTweetRepository(db, logger),
		Likes:         NewLikeRepository(db, logger),
		Playlists:     NewPlaylistRepository(db, logger),
		Subscriptions: NewSubscriptionRepository(db, logger),
		Stats:         NewStatsRepository(db, logger),
	}
}
