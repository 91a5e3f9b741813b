// Package likes exposes the like toggle and its read endpoints. Routes use
// the generic /likes/{targetType}/{targetId} form across videos, comments
// and tweets.
package likes

import (
	"net/http"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/models"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller handles like endpoints.
type Controller struct {
	likes            services.LikeService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewController creates the likes controller.
func NewController(
	likes services.LikeService,
	responseBuilder *response.Builder,
	paginationParser *response.PaginationParser,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		likes:            likes,
		responseBuilder:  responseBuilder,
		paginationParser: paginationParser,
		logger:           logger,
	}
}

// Toggle handles POST /likes/{targetType}/{targetId}/toggle.
func (c *Controller) Toggle(w http.ResponseWriter, r *http.Request) {
	target, err := pathTarget(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	state, err := c.likes.Toggle(r.Context(), v1.Actor(r), target)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, state, "like toggled")
}

// Count handles GET /likes/{targetType}/{targetId}/count.
func (c *Controller) Count(w http.ResponseWriter, r *http.Request) {
	target, err := pathTarget(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	count, err := c.likes.Count(r.Context(), target)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r,
		map[string]int64{"likeCount": count}, "like count retrieved")
}

// Likers handles GET /likes/{targetType}/{targetId}/likers.
func (c *Controller) Likers(w http.ResponseWriter, r *http.Request) {
	target, err := pathTarget(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.likes.Likers(r.Context(), target,
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "likers retrieved")
}

// Status handles POST /likes/status: a batch liked/not-liked lookup.
func (c *Controller) Status(w http.ResponseWriter, r *http.Request) {
	var req services.LikeStatusRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	status, err := c.likes.Status(r.Context(), v1.Actor(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, status, "like status retrieved")
}

// LikedVideos handles GET /likes/videos.
func (c *Controller) LikedVideos(w http.ResponseWriter, r *http.Request) {
	page, err := c.likes.LikedVideos(r.Context(), v1.Actor(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "liked videos retrieved")
}

func pathTarget(r *http.Request) (models.LikeTarget, error) {
	targetType := models.LikeTargetType(mux.Vars(r)["targetType"])
	if !targetType.Valid() {
		return models.LikeTarget{}, services.NewValidationError(
			"target type must be video, comment or tweet", nil)
	}
	targetID, err := v1.PathID(r, "targetId")
	if err != nil {
		return models.LikeTarget{}, err
	}
	return models.LikeTarget{Type: targetType, ID: targetID}, nil
}
