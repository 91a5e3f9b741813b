// Package videos exposes the video lifecycle and feed endpoints.
package videos

import (
	"mime/multipart"
	"net/http"
	"strconv"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles video endpoints.
type Controller struct {
	videos           services.VideoService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewController creates the videos controller.
func NewController(
	videos services.VideoService,
	responseBuilder *response.Builder,
	paginationParser *response.PaginationParser,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		videos:           videos,
		responseBuilder:  responseBuilder,
		paginationParser: paginationParser,
		logger:           logger,
	}
}

const maxUploadBody = 200 << 20

// Upload handles POST /videos. Multipart body: title, description,
// durationSeconds, videoFile, thumbnail.
func (c *Controller) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		c.responseBuilder.WriteError(w, r,
			services.NewValidationError("request must be multipart form data", err))
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("durationSeconds"), 64)
	req := services.UploadVideoRequest{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		DurationSeconds: duration,
		VideoFile:       formFile(r, "videoFile"),
		Thumbnail:       formFile(r, "thumbnail"),
	}

	video, err := c.videos.Upload(r.Context(), v1.Actor(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, video, "video uploaded")
}

// List handles GET /videos. Anonymous callers see published videos only.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	req := services.ListVideosRequest{
		Params: c.paginationParser.ParseFromRequest(r),
		Query:  r.URL.Query().Get("query"),
	}

	page, err := c.videos.List(r.Context(), v1.Viewer(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "videos retrieved")
}

// ListByUser handles GET /users/{userId}/videos.
func (c *Controller) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := v1.PathID(r, "userId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.videos.ListByUser(r.Context(), userID, v1.Viewer(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "videos retrieved")
}

// Get handles GET /videos/{videoId}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	video, err := c.videos.Get(r.Context(), videoID, v1.Viewer(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, video, "video retrieved")
}

// Update handles PATCH /videos/{videoId}. Accepts either a JSON body or a
// multipart body carrying a replacement thumbnail.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	var req services.UpdateVideoRequest
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBody); err != nil {
			c.responseBuilder.WriteError(w, r,
				services.NewValidationError("invalid multipart form", err))
			return
		}
		if title := r.FormValue("title"); title != "" {
			req.Title = &title
		}
		if description := r.FormValue("description"); description != "" {
			req.Description = &description
		}
		req.Thumbnail = formFile(r, "thumbnail")
	} else if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	video, err := c.videos.Update(r.Context(), v1.Actor(r), videoID, req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, video, "video updated")
}

// Delete handles DELETE /videos/{videoId}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.videos.Delete(r.Context(), v1.Actor(r), videoID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, nil, "video deleted")
}

// TogglePublish handles PATCH /videos/{videoId}/toggle-publish.
func (c *Controller) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := v1.PathID(r, "videoId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	video, err := c.videos.TogglePublish(r.Context(), v1.Actor(r), videoID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, video, "publish state toggled")
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if files := r.MultipartForm.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return len(contentType) >= 19 && contentType[:19] == "multipart/form-data"
}
