// Package comments exposes the comment thread endpoints.
package comments

import (
	"net/http"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles comment endpoints.
type Controller struct {
	comments         services.CommentService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewController creates the comments controller.
func NewController(
	comments services.CommentService,
	responseBuilder *response.Builder,
	paginationParser *response.PaginationParser,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		comments:         comments,
		responseBuilder:  responseBuilder,
		paginationParser: paginationParser,
		logger:           logger,
	}
}

// Create handles POST /comments.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCommentRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	comment, err := c.comments.Create(r.Context(), v1.Actor(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, comment, "comment created")
}

// Update handles PATCH /comments/{commentId}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := v1.PathID(r, "commentId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.UpdateCommentRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	comment, err := c.comments.Update(r.Context(), v1.Actor(r), commentID, req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, comment, "comment updated")
}

// Delete handles DELETE /comments/{commentId}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := v1.PathID(r, "commentId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.comments.Delete(r.Context(), v1.Actor(r), commentID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, nil, "comment deleted")
}

// ListByVideo handles GET /videos/{videoId}/comments.
func (c *Controller) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.comments.ListByVideo(r.Context(), videoID, v1.Viewer(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "comments retrieved")
}

// Count handles GET /videos/{videoId}/comments/count.
func (c *Controller) Count(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	count, err := c.comments.CountByVideo(r.Context(), videoID, v1.Viewer(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, map[string]int64{"count": count}, "comment count retrieved")
}

// ListByUser handles GET /users/{userId}/comments.
func (c *Controller) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := v1.PathID(r, "userId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.comments.ListByUser(r.Context(), userID,
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "comments retrieved")
}
