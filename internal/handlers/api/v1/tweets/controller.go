// Package tweets exposes the tweet endpoints.
package tweets

import (
	"net/http"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles tweet endpoints.
type Controller struct {
	tweets           services.TweetService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewController creates the tweets controller.
func NewController(
	tweets services.TweetService,
	responseBuilder *response.Builder,
	paginationParser *response.PaginationParser,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		tweets:           tweets,
		responseBuilder:  responseBuilder,
		paginationParser: paginationParser,
		logger:           logger,
	}
}

// Create handles POST /tweets.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTweetRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	tweet, err := c.tweets.Create(r.Context(), v1.Actor(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, tweet, "tweet created")
}

// Get handles GET /tweets/{tweetId}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	tweetID, err := v1.PathID(r, "tweetId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	tweet, err := c.tweets.Get(r.Context(), tweetID, v1.Viewer(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, tweet, "tweet retrieved")
}

// Update handles PATCH /tweets/{tweetId}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, err := v1.PathID(r, "tweetId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.UpdateTweetRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	tweet, err := c.tweets.Update(r.Context(), v1.Actor(r), tweetID, req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, tweet, "tweet updated")
}

// Delete handles DELETE /tweets/{tweetId}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := v1.PathID(r, "tweetId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.tweets.Delete(r.Context(), v1.Actor(r), tweetID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, nil, "tweet deleted")
}

// List handles GET /tweets.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.tweets.List(r.Context(), v1.Viewer(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "tweets retrieved")
}

// ListByUser handles GET /users/{userId}/tweets.
func (c *Controller) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := v1.PathID(r, "userId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.tweets.ListByUser(r.Context(), userID, v1.Viewer(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "tweets retrieved")
}

// Search handles GET /tweets/search?query=...
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	page, err := c.tweets.Search(r.Context(), r.URL.Query().Get("query"),
		v1.Viewer(r), c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "tweets retrieved")
}

// Stats handles GET /users/{userId}/tweets/stats.
func (c *Controller) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := v1.PathID(r, "userId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	stats, err := c.tweets.Stats(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, stats, "tweet stats retrieved")
}
