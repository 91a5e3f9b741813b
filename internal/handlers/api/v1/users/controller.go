// Package users exposes registration, login and profile endpoints.
package users

import (
	"mime/multipart"
	"net/http"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles account endpoints.
type Controller struct {
	users           services.UserService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewController creates the users controller.
func NewController(users services.UserService, responseBuilder *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{users: users, responseBuilder: responseBuilder, logger: logger}
}

const maxRegisterBody = 20 << 20

// Register handles POST /users/register. The body is multipart: text
// fields plus a required avatar and an optional cover image.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegisterBody); err != nil {
		c.responseBuilder.WriteError(w, r,
			services.NewValidationError("request must be multipart form data", err))
		return
	}

	req := services.RegisterRequest{
		Username:    r.FormValue("username"),
		Email:       r.FormValue("email"),
		DisplayName: r.FormValue("displayName"),
		Password:    r.FormValue("password"),
	}
	if file := formFile(r, "avatar"); file != nil {
		req.Avatar = file
	}
	if file := formFile(r, "coverImage"); file != nil {
		req.CoverImage = file
	}

	result, err := c.users.Register(r.Context(), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, result, "user registered")
}

// Login handles POST /users/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	result, err := c.users.Login(r.Context(), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, result, "login successful")
}

// Me handles GET /users/me.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	user, err := c.users.GetProfile(r.Context(), v1.Actor(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, user, "profile retrieved")
}

// Get handles GET /users/{userId}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := v1.PathID(r, "userId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	user, err := c.users.GetProfile(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, user, "user retrieved")
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
