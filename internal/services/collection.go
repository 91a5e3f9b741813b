package services

import (
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/events"
	"vidtube/internal/repositories"
	"vidtube/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Collection bundles every service behind one constructor.
type Collection struct {
	Users         UserService
	Videos        VideoService
	Comments      CommentService
	Tweets        TweetService
	Likes         LikeService
	Playlists     PlaylistService
	Subscriptions SubscriptionService
	Dashboard     DashboardService
}

// NewCollection wires all services over the repository collection and the
// shared collaborators.
func NewCollection(
	repos *repositories.Collection,
	storage utils.FileStorage,
	c cache.Cache,
	cacheTTL time.Duration,
	bus *events.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) *Collection {
	validate := validator.New()

	return &Collection{
		Users:         NewUserService(repos.Users, storage, cfg.Auth, validate, logger),
		Videos:        NewVideoService(repos.Videos, repos.Users, storage, bus, validate, logger),
		Comments:      NewCommentService(repos.Comments, repos.Videos, repos.Users, validate, logger),
		Tweets:        NewTweetService(repos.Tweets, repos.Users, validate, logger),
		Likes:         NewLikeService(repos.Likes, repos.Videos, repos.Comments, repos.Tweets, bus, validate, logger),
		Playlists:     NewPlaylistService(repos.Playlists, repos.Videos, repos.Users, validate, logger),
		Subscriptions: NewSubscriptionService(repos.Subscriptions, repos.Users, bus, logger),
		Dashboard:     NewDashboardService(repos.Stats, repos.Users, c, cacheTTL, validate, logger),
	}
}
