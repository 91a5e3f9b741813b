package services

import (
	"context"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"go.uber.org/zap"
)

type subscriptionService struct {
	subscriptions repositories.SubscriptionRepository
	users         repositories.UserRepository
	bus           *events.Bus
	logger        *zap.Logger
}

// NewSubscriptionService creates the subscription service.
func NewSubscriptionService(
	subscriptions repositories.SubscriptionRepository,
	users repositories.UserRepository,
	bus *events.Bus,
	logger *zap.Logger,
) SubscriptionService {
	return &subscriptionService{
		subscriptions: subscriptions,
		users:         users,
		bus:           bus,
		logger:        logger,
	}
}

// Subscribe follows a channel. Subscribing to yourself and subscribing
// twice are both conflicts.
func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error) {
	if subscriberID == channelID {
		return nil, NewConflictError("you cannot subscribe to yourself", "SELF_SUBSCRIPTION")
	}
	if err := s.checkChannel(ctx, channelID); err != nil {
		return nil, err
	}

	sub, created, err := s.subscriptions.Insert(ctx, subscriberID, channelID)
	if err != nil {
		return nil, NewInternalError("failed to subscribe")
	}
	if !created {
		return nil, NewConflictError("already subscribed to this channel", "DUPLICATE_SUBSCRIPTION")
	}

	s.bus.Publish(events.SubscriptionCreated, map[string]interface{}{
		"subscriberId": subscriberID,
		"channelId":    channelID,
	})
	return sub, nil
}

// Unsubscribe removes the edge; unsubscribing where none exists is not
// found.
func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, channelID int64) error {
	if err := s.checkChannel(ctx, channelID); err != nil {
		return err
	}

	deleted, err := s.subscriptions.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return NewInternalError("failed to unsubscribe")
	}
	if !deleted {
		return NewNotFoundError("you are not subscribed to this channel")
	}
	return nil
}

func (s *subscriptionService) IsSubscribed(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if err := s.checkChannel(ctx, channelID); err != nil {
		return false, err
	}

	subscribed, err := s.subscriptions.Exists(ctx, subscriberID, channelID)
	if err != nil {
		return false, NewInternalError("failed to check subscription")
	}
	return subscribed, nil
}

func (s *subscriptionService) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	if err := s.checkChannel(ctx, channelID); err != nil {
		return 0, err
	}

	count, err := s.subscriptions.CountSubscribers(ctx, channelID)
	if err != nil {
		return 0, NewInternalError("failed to count subscribers")
	}
	return count, nil
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error) {
	if err := s.checkChannel(ctx, channelID); err != nil {
		return nil, err
	}

	page, err := s.subscriptions.ListSubscribers(ctx, channelID, params)
	if err != nil {
		return nil, NewInternalError("failed to list subscribers")
	}
	return page, nil
}

func (s *subscriptionService) ListChannels(ctx context.Context, subscriberID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error) {
	page, err := s.subscriptions.ListChannels(ctx, subscriberID, params)
	if err != nil {
		return nil, NewInternalError("failed to list subscribed channels")
	}
	return page, nil
}

func (s *subscriptionService) checkChannel(ctx context.Context, channelID int64) error {
	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return NewInternalError("failed to check channel")
	}
	if !exists {
		return EntityNotFoundError("channel")
	}
	return nil
}
