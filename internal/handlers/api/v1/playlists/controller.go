// Package playlists exposes the playlist endpoints.
package playlists

import (
	"net/http"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles playlist endpoints.
type Controller struct {
	playlists        services.PlaylistService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewController creates the playlists controller.
func NewController(
	playlists services.PlaylistService,
	responseBuilder *response.Builder,
	paginationParser *response.PaginationParser,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		playlists:        playlists,
		responseBuilder:  responseBuilder,
		paginationParser: paginationParser,
		logger:           logger,
	}
}

// Create handles POST /playlists.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePlaylistRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlist, err := c.playlists.Create(r.Context(), v1.Actor(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, playlist, "playlist created")
}

// Get handles GET /playlists/{playlistId}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := v1.PathID(r, "playlistId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlist, err := c.playlists.Get(r.Context(), playlistID, v1.Viewer(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlist, "playlist retrieved")
}

// Update handles PATCH /playlists/{playlistId}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, err := v1.PathID(r, "playlistId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.UpdatePlaylistRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlist, err := c.playlists.Update(r.Context(), v1.Actor(r), playlistID, req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlist, "playlist updated")
}

// Delete handles DELETE /playlists/{playlistId}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := v1.PathID(r, "playlistId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.playlists.Delete(r.Context(), v1.Actor(r), playlistID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, nil, "playlist deleted")
}

// ListByUser handles GET /users/{userId}/playlists.
func (c *Controller) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := v1.PathID(r, "userId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.playlists.ListByUser(r.Context(), userID, v1.Viewer(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "playlists retrieved")
}

// Search handles GET /playlists/search?query=...
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	page, err := c.playlists.SearchPublic(r.Context(),
		r.URL.Query().Get("query"), c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "playlists retrieved")
}

// ContainingVideo handles GET /videos/{videoId}/playlists. It lists the
// actor's own playlists that already hold the video.
func (c *Controller) ContainingVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlists, err := c.playlists.ContainingVideo(r.Context(), v1.Actor(r), videoID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlists, "playlists retrieved")
}

// AddVideo handles POST /playlists/{playlistId}/videos/{videoId}.
func (c *Controller) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, videoID, err := pathPair(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlist, err := c.playlists.AddVideo(r.Context(), v1.Actor(r), playlistID, videoID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlist, "video added to playlist")
}

// RemoveVideo handles DELETE /playlists/{playlistId}/videos/{videoId}.
func (c *Controller) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, videoID, err := pathPair(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlist, err := c.playlists.RemoveVideo(r.Context(), v1.Actor(r), playlistID, videoID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlist, "video removed from playlist")
}

// Reorder handles PUT /playlists/{playlistId}/reorder.
func (c *Controller) Reorder(w http.ResponseWriter, r *http.Request) {
	playlistID, err := v1.PathID(r, "playlistId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.ReorderPlaylistRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	playlist, err := c.playlists.Reorder(r.Context(), v1.Actor(r), playlistID, req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlist, "playlist reordered")
}

// SetPrivacy handles PATCH /playlists/{playlistId}/privacy.
func (c *Controller) SetPrivacy(w http.ResponseWriter, r *http.Request) {
	playlistID, err := v1.PathID(r, "playlistId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req struct {
		IsPublic *bool `json:"isPublic"`
	}
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	if req.IsPublic == nil {
		c.responseBuilder.WriteError(w, r,
			services.NewValidationError("isPublic is required", nil))
		return
	}

	playlist, err := c.playlists.SetPrivacy(r.Context(), v1.Actor(r), playlistID, *req.IsPublic)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, playlist, "playlist privacy updated")
}

func pathPair(r *http.Request) (int64, int64, error) {
	playlistID, err := v1.PathID(r, "playlistId")
	if err != nil {
		return 0, 0, err
	}
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		return 0, 0, err
	}
	return playlistID, videoID, nil
}
