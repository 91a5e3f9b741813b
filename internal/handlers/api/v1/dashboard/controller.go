// Package dashboard exposes the owner and platform stats endpoints.
package dashboard

import (
	"net/http"
	"strconv"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles dashboard endpoints.
type Controller struct {
	dashboard       services.DashboardService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewController creates the dashboard controller.
func NewController(dashboard services.DashboardService, responseBuilder *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{dashboard: dashboard, responseBuilder: responseBuilder, logger: logger}
}

// Stats handles GET /dashboard/stats.
func (c *Controller) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboard.ChannelStats(r.Context(), v1.Actor(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, stats, "channel stats retrieved")
}

// Analytics handles GET /dashboard/analytics?days=N.
func (c *Controller) Analytics(w http.ResponseWriter, r *http.Request) {
	var req services.AnalyticsRequest
	if days := r.URL.Query().Get("days"); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil {
			c.responseBuilder.WriteError(w, r,
				services.NewValidationError("days must be a number", err))
			return
		}
		req.WindowDays = parsed
	}

	analytics, err := c.dashboard.Analytics(r.Context(), v1.Actor(r), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, analytics, "analytics retrieved")
}

// Admin handles GET /dashboard/admin.
func (c *Controller) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboard.AdminStats(r.Context(), v1.Actor(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, stats, "admin stats retrieved")
}

// Uploads handles GET /dashboard/uploads.
func (c *Controller) Uploads(w http.ResponseWriter, r *http.Request) {
	summary, err := c.dashboard.UploadSummary(r.Context(), v1.Actor(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, summary, "upload summary retrieved")
}
