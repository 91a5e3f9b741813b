package services

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type tweetService struct {
	tweets   repositories.TweetRepository
	users    repositories.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTweetService creates the tweet service.
func NewTweetService(
	tweets repositories.TweetRepository,
	users repositories.UserRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) TweetService {
	return &tweetService{
		tweets:   tweets,
		users:    users,
		validate: validate,
		logger:   logger,
	}
}

func (s *tweetService) Create(ctx context.Context, actorID int64, req CreateTweetRequest) (*models.Tweet, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{
		OwnerID: actorID,
		Content: strings.TrimSpace(req.Content),
	}
	if tweet.Content == "" {
		return nil, NewValidationError("tweet content cannot be blank", nil)
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, NewInternalError("failed to create tweet")
	}
	return tweet, nil
}

func (s *tweetService) Get(ctx context.Context, tweetID int64, viewerID *int64) (*models.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to load tweet")
	}
	if tweet == nil {
		return nil, EntityNotFoundError("tweet")
	}
	return tweet, nil
}

func (s *tweetService) Update(ctx context.Context, actorID, tweetID int64, req UpdateTweetRequest) (*models.Tweet, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	tweet, err := s.ownedTweet(ctx, actorID, tweetID)
	if err != nil {
		return nil, err
	}

	tweet.Content = strings.TrimSpace(req.Content)
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, NewInternalError("failed to update tweet")
	}
	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, actorID, tweetID int64) error {
	if _, err := s.ownedTweet(ctx, actorID, tweetID); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return NewInternalError("failed to delete tweet")
	}
	return nil
}

func (s *tweetService) List(ctx context.Context, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	page, err := s.tweets.List(ctx, viewerID, params)
	if err != nil {
		return nil, NewInternalError("failed to list tweets")
	}
	return page, nil
}

func (s *tweetService) ListByUser(ctx context.Context, targetUserID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	exists, err := s.users.Exists(ctx, targetUserID)
	if err != nil {
		return nil, NewInternalError("failed to check user")
	}
	if !exists {
		return nil, EntityNotFoundError("user")
	}

	page, err := s.tweets.ListByOwner(ctx, targetUserID, viewerID, params)
	if err != nil {
		return nil, NewInternalError("failed to list tweets")
	}
	return page, nil
}

func (s *tweetService) Search(ctx context.Context, query string, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search query is required", nil)
	}

	page, err := s.tweets.Search(ctx, query, viewerID, params)
	if err != nil {
		return nil, NewInternalError("failed to search tweets")
	}
	return page, nil
}

func (s *tweetService) Stats(ctx context.Context, targetUserID int64) (*models.TweetStats, error) {
	exists, err := s.users.Exists(ctx, targetUserID)
	if err != nil {
		return nil, NewInternalError("failed to check user")
	}
	if !exists {
		return nil, EntityNotFoundError("user")
	}

	stats, err := s.tweets.Stats(ctx, targetUserID)
	if err != nil {
		return nil, NewInternalError("failed to compute tweet stats")
	}
	return stats, nil
}

func (s *tweetService) ownedTweet(ctx context.Context, actorID, tweetID int64) (*models.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID, &actorID)
	if err != nil {
		return nil, NewInternalError("failed to load tweet")
	}
	if tweet == nil {
		return nil, EntityNotFoundError("tweet")
	}
	if !tweet.IsOwnedBy(actorID) {
		return nil, NewForbiddenError("you do not own this tweet")
	}
	return tweet, nil
}
