// Package subscriptions exposes the channel-follow endpoints.
package subscriptions

import (
	"net/http"

	v1 "vidtube/internal/handlers/api/v1"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// Controller handles subscription endpoints.
type Controller struct {
	subscriptions    services.SubscriptionService
	responseBuilder  *response.Builder
	paginationParser *response.PaginationParser
	logger           *zap.Logger
}

// NewController creates the subscriptions controller.
func NewController(
	subscriptions services.SubscriptionService,
	responseBuilder *response.Builder,
	paginationParser *response.PaginationParser,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		subscriptions:    subscriptions,
		responseBuilder:  responseBuilder,
		paginationParser: paginationParser,
		logger:           logger,
	}
}

// Subscribe handles POST /subscriptions/{channelId}.
func (c *Controller) Subscribe(w http.ResponseWriter, r *http.Request) {
	channelID, err := v1.PathID(r, "channelId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	sub, err := c.subscriptions.Subscribe(r.Context(), v1.Actor(r), channelID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteCreated(w, r, sub, "subscribed")
}

// Unsubscribe handles DELETE /subscriptions/{channelId}.
func (c *Controller) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	channelID, err := v1.PathID(r, "channelId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if err := c.subscriptions.Unsubscribe(r.Context(), v1.Actor(r), channelID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, nil, "unsubscribed")
}

// Status handles GET /subscriptions/{channelId}/status.
func (c *Controller) Status(w http.ResponseWriter, r *http.Request) {
	channelID, err := v1.PathID(r, "channelId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	subscribed, err := c.subscriptions.IsSubscribed(r.Context(), v1.Actor(r), channelID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r,
		map[string]bool{"isSubscribed": subscribed}, "subscription status retrieved")
}

// Subscribers handles GET /channels/{channelId}/subscribers.
func (c *Controller) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := v1.PathID(r, "channelId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	page, err := c.subscriptions.ListSubscribers(r.Context(), channelID,
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "subscribers retrieved")
}

// SubscriberCount handles GET /channels/{channelId}/subscribers/count.
func (c *Controller) SubscriberCount(w http.ResponseWriter, r *http.Request) {
	channelID, err := v1.PathID(r, "channelId")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	count, err := c.subscriptions.CountSubscribers(r.Context(), channelID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r,
		map[string]int64{"subscriberCount": count}, "subscriber count retrieved")
}

// Channels handles GET /subscriptions/channels: the channels the actor
// follows.
func (c *Controller) Channels(w http.ResponseWriter, r *http.Request) {
	page, err := c.subscriptions.ListChannels(r.Context(), v1.Actor(r),
		c.paginationParser.ParseFromRequest(r))
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WritePaginated(w, r, page, "subscribed channels retrieved")
}
