// Package router assembles the HTTP surface: one gorilla/mux router with
// the middleware stack and every versioned API route.
package router

import (
	"net/http"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/handlers/api/v1/comments"
	"vidtube/internal/handlers/api/v1/dashboard"
	"vidtube/internal/handlers/api/v1/likes"
	"vidtube/internal/handlers/api/v1/playlists"
	"vidtube/internal/handlers/api/v1/subscriptions"
	"vidtube/internal/handlers/api/v1/tweets"
	"vidtube/internal/handlers/api/v1/users"
	"vidtube/internal/handlers/api/v1/videos"
	"vidtube/internal/middleware"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Config   *config.Config
	Services *services.Collection
	DB       *database.Manager
	Cache    cache.Cache
	Logger   *zap.Logger
}

// New builds the router.
func New(deps Dependencies) http.Handler {
	responseConfig := response.DefaultConfig()
	responseConfig.MaskInternalErrors = deps.Config.IsProduction()
	responseBuilder := response.NewBuilder(responseConfig, deps.Logger)
	paginationParser := response.NewPaginationParser(response.DefaultPaginationConfig())
	auth := middleware.NewAuth(deps.Config.Auth, responseBuilder, deps.Logger)

	usersController := users.NewController(deps.Services.Users, responseBuilder, deps.Logger)
	videosController := videos.NewController(deps.Services.Videos, responseBuilder, paginationParser, deps.Logger)
	commentsController := comments.NewController(deps.Services.Comments, responseBuilder, paginationParser, deps.Logger)
	tweetsController := tweets.NewController(deps.Services.Tweets, responseBuilder, paginationParser, deps.Logger)
	likesController := likes.NewController(deps.Services.Likes, responseBuilder, paginationParser, deps.Logger)
	playlistsController := playlists.NewController(deps.Services.Playlists, responseBuilder, paginationParser, deps.Logger)
	subscriptionsController := subscriptions.NewController(deps.Services.Subscriptions, responseBuilder, paginationParser, deps.Logger)
	dashboardController := dashboard.NewController(deps.Services.Dashboard, responseBuilder, deps.Logger)

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler(deps, responseBuilder)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// open is for routes where a token enriches the view but is not
	// required; closed rejects anonymous requests.
	open := func(h http.HandlerFunc) http.Handler { return auth.Optional(h) }
	closed := func(h http.HandlerFunc) http.Handler { return auth.Require(h) }

	// Users
	api.Handle("/users/register", http.HandlerFunc(usersController.Register)).Methods(http.MethodPost)
	api.Handle("/users/login", http.HandlerFunc(usersController.Login)).Methods(http.MethodPost)
	api.Handle("/users/me", closed(usersController.Me)).Methods(http.MethodGet)
	api.Handle("/users/{userId}", open(usersController.Get)).Methods(http.MethodGet)

	// Videos
	api.Handle("/videos", closed(videosController.Upload)).Methods(http.MethodPost)
	api.Handle("/videos", open(videosController.List)).Methods(http.MethodGet)
	api.Handle("/videos/{videoId}", open(videosController.Get)).Methods(http.MethodGet)
	api.Handle("/videos/{videoId}", closed(videosController.Update)).Methods(http.MethodPatch)
	api.Handle("/videos/{videoId}", closed(videosController.Delete)).Methods(http.MethodDelete)
	api.Handle("/videos/{videoId}/toggle-publish", closed(videosController.TogglePublish)).Methods(http.MethodPatch)
	api.Handle("/users/{userId}/videos", open(videosController.ListByUser)).Methods(http.MethodGet)

	// Comments
	api.Handle("/comments", closed(commentsController.Create)).Methods(http.MethodPost)
	api.Handle("/comments/{commentId}", closed(commentsController.Update)).Methods(http.MethodPatch)
	api.Handle("/comments/{commentId}", closed(commentsController.Delete)).Methods(http.MethodDelete)
	api.Handle("/videos/{videoId}/comments", open(commentsController.ListByVideo)).Methods(http.MethodGet)
	api.Handle("/videos/{videoId}/comments/count", open(commentsController.Count)).Methods(http.MethodGet)
	api.Handle("/users/{userId}/comments", open(commentsController.ListByUser)).Methods(http.MethodGet)

	// Tweets
	api.Handle("/tweets", closed(tweetsController.Create)).Methods(http.MethodPost)
	api.Handle("/tweets", open(tweetsController.List)).Methods(http.MethodGet)
	api.Handle("/tweets/search", open(tweetsController.Search)).Methods(http.MethodGet)
	api.Handle("/tweets/{tweetId}", open(tweetsController.Get)).Methods(http.MethodGet)
	api.Handle("/tweets/{tweetId}", closed(tweetsController.Update)).Methods(http.MethodPatch)
	api.Handle("/tweets/{tweetId}", closed(tweetsController.Delete)).Methods(http.MethodDelete)
	api.Handle("/users/{userId}/tweets", open(tweetsController.ListByUser)).Methods(http.MethodGet)
	api.Handle("/users/{userId}/tweets/stats", open(tweetsController.Stats)).Methods(http.MethodGet)

	// Likes
	api.Handle("/likes/videos", closed(likesController.LikedVideos)).Methods(http.MethodGet)
	api.Handle("/likes/status", closed(likesController.Status)).Methods(http.MethodPost)
	api.Handle("/likes/{targetType}/{targetId}/toggle", closed(likesController.Toggle)).Methods(http.MethodPost)
	api.Handle("/likes/{targetType}/{targetId}/count", open(likesController.Count)).Methods(http.MethodGet)
	api.Handle("/likes/{targetType}/{targetId}/likers", open(likesController.Likers)).Methods(http.MethodGet)

	// Playlists
	api.Handle("/playlists", closed(playlistsController.Create)).Methods(http.MethodPost)
	api.Handle("/playlists/search", open(playlistsController.Search)).Methods(http.MethodGet)
	api.Handle("/playlists/{playlistId}", open(playlistsController.Get)).Methods(http.MethodGet)
	api.Handle("/playlists/{playlistId}", closed(playlistsController.Update)).Methods(http.MethodPatch)
	api.Handle("/playlists/{playlistId}", closed(playlistsController.Delete)).Methods(http.MethodDelete)
	api.Handle("/playlists/{playlistId}/privacy", closed(playlistsController.SetPrivacy)).Methods(http.MethodPatch)
	api.Handle("/playlists/{playlistId}/reorder", closed(playlistsController.Reorder)).Methods(http.MethodPut)
	api.Handle("/playlists/{playlistId}/videos/{videoId}", closed(playlistsController.AddVideo)).Methods(http.MethodPost)
	api.Handle("/playlists/{playlistId}/videos/{videoId}", closed(playlistsController.RemoveVideo)).Methods(http.MethodDelete)
	api.Handle("/users/{userId}/playlists", open(playlistsController.ListByUser)).Methods(http.MethodGet)
	api.Handle("/videos/{videoId}/playlists", closed(playlistsController.ContainingVideo)).Methods(http.MethodGet)

	// Subscriptions
	api.Handle("/subscriptions/channels", closed(subscriptionsController.Channels)).Methods(http.MethodGet)
	api.Handle("/subscriptions/{channelId}", closed(subscriptionsController.Subscribe)).Methods(http.MethodPost)
	api.Handle("/subscriptions/{channelId}", closed(subscriptionsController.Unsubscribe)).Methods(http.MethodDelete)
	api.Handle("/subscriptions/{channelId}/status", closed(subscriptionsController.Status)).Methods(http.MethodGet)
	api.Handle("/channels/{channelId}/subscribers", open(subscriptionsController.Subscribers)).Methods(http.MethodGet)
	api.Handle("/channels/{channelId}/subscribers/count", open(subscriptionsController.SubscriberCount)).Methods(http.MethodGet)

	// Dashboard
	api.Handle("/dashboard/stats", closed(dashboardController.Stats)).Methods(http.MethodGet)
	api.Handle("/dashboard/analytics", closed(dashboardController.Analytics)).Methods(http.MethodGet)
	api.Handle("/dashboard/admin", closed(dashboardController.Admin)).Methods(http.MethodGet)
	api.Handle("/dashboard/uploads", closed(dashboardController.Uploads)).Methods(http.MethodGet)

	return middleware.Chain(r,
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(responseBuilder, deps.Logger),
	)
}

func healthHandler(deps Dependencies, responseBuilder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": "ok", "cache": "ok"}
		healthy := true

		if err := deps.DB.Health(r.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := deps.Cache.Health(r.Context()); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		}

		if !healthy {
			responseBuilder.WriteError(w, r,
				services.NewUpstreamError("service unhealthy", nil))
			return
		}
		responseBuilder.WriteSuccess(w, r, checks, "healthy")
	}
}
