package services

import (
	"context"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type likeService struct {
	likes    repositories.LikeRepository
	bus      *events.Bus
	validate *validator.Validate
	logger   *zap.Logger

	// existsFor resolves target existence per kind. Video checks go
	// through the visibility-aware loader so likes on hidden videos read
	// as not found.
	existsFor map[models.LikeTargetType]func(ctx context.Context, actorID *int64, id int64) (bool, error)
}

// NewLikeService creates the like service. The per-kind lookup table keeps
// the toggle flow free of type switches.
func NewLikeService(
	likes repositories.LikeRepository,
	videos repositories.VideoRepository,
	comments repositories.CommentRepository,
	tweets repositories.TweetRepository,
	bus *events.Bus,
	validate *validator.Validate,
	logger *zap.Logger,
) LikeService {
	existsFor := map[models.LikeTargetType]func(ctx context.Context, actorID *int64, id int64) (bool, error){
		models.LikeTargetVideo: func(ctx context.Context, actorID *int64, id int64) (bool, error) {
			video, err := videos.GetByID(ctx, id, actorID)
			if err != nil {
				return false, err
			}
			return video != nil && video.VisibleTo(actorID), nil
		},
		models.LikeTargetComment: func(ctx context.Context, _ *int64, id int64) (bool, error) {
			return comments.Exists(ctx, id)
		},
		models.LikeTargetTweet: func(ctx context.Context, _ *int64, id int64) (bool, error) {
			return tweets.Exists(ctx, id)
		},
	}

	return &likeService{
		likes:     likes,
		bus:       bus,
		validate:  validate,
		logger:    logger,
		existsFor: existsFor,
	}
}

// Toggle flips the actor's like on the target and returns the resulting
// state with a fresh count. Concurrent toggles are absorbed by the store's
// uniqueness guarantee: whichever write loses simply observes the other's
// outcome.
func (s *likeService) Toggle(ctx context.Context, actorID int64, target models.LikeTarget) (*models.LikeState, error) {
	if err := s.checkTarget(ctx, &actorID, target); err != nil {
		return nil, err
	}

	created, err := s.likes.Insert(ctx, actorID, target)
	if err != nil {
		return nil, NewInternalError("failed to toggle like")
	}

	isLiked := true
	if !created {
		// Already liked: this toggle is an unlike.
		if _, err := s.likes.Delete(ctx, actorID, target); err != nil {
			return nil, NewInternalError("failed to toggle like")
		}
		isLiked = false
	}

	count, err := s.likes.Count(ctx, target)
	if err != nil {
		return nil, NewInternalError("failed to count likes")
	}

	s.bus.Publish(events.LikeToggled, map[string]interface{}{
		"userId":     actorID,
		"targetType": string(target.Type),
		"targetId":   target.ID,
		"isLiked":    isLiked,
	})

	return &models.LikeState{IsLiked: isLiked, LikeCount: count}, nil
}

func (s *likeService) Count(ctx context.Context, target models.LikeTarget) (int64, error) {
	if err := s.checkTarget(ctx, nil, target); err != nil {
		return 0, err
	}

	count, err := s.likes.Count(ctx, target)
	if err != nil {
		return 0, NewInternalError("failed to count likes")
	}
	return count, nil
}

// Status answers, for a batch of ids of one kind, which ones the actor
// likes. Unknown ids come back false rather than erroring so clients can
// decorate mixed lists in one call.
func (s *likeService) Status(ctx context.Context, actorID int64, req LikeStatusRequest) (map[int64]bool, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if !req.TargetType.Valid() {
		return nil, NewValidationError("unknown target type", nil)
	}

	liked, err := s.likes.LikedSet(ctx, actorID, req.TargetType, req.TargetIDs)
	if err != nil {
		return nil, NewInternalError("failed to load like status")
	}
	return liked, nil
}

func (s *likeService) Likers(ctx context.Context, target models.LikeTarget, params models.PaginationParams) (*models.PaginatedResponse[*models.UserSummary], error) {
	if err := s.checkTarget(ctx, nil, target); err != nil {
		return nil, err
	}

	page, err := s.likes.Likers(ctx, target, params)
	if err != nil {
		return nil, NewInternalError("failed to list likers")
	}
	return page, nil
}

func (s *likeService) LikedVideos(ctx context.Context, actorID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	page, err := s.likes.LikedVideos(ctx, actorID, params)
	if err != nil {
		return nil, NewInternalError("failed to list liked videos")
	}
	return page, nil
}

func (s *likeService) checkTarget(ctx context.Context, actorID *int64, target models.LikeTarget) error {
	if !target.Type.Valid() {
		return NewValidationError("unknown target type", nil)
	}
	if target.ID <= 0 {
		return NewValidationError("target id must be positive", nil)
	}

	exists, err := s.existsFor[target.Type](ctx, actorID, target.ID)
	if err != nil {
		return NewInternalError("failed to check target")
	}
	if !exists {
		return EntityNotFoundError(string(target.Type))
	}
	return nil
}
