package services

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type commentService struct {
	comments repositories.CommentRepository
	videos   repositories.VideoRepository
	users    repositories.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCommentService creates the comment service.
func NewCommentService(
	comments repositories.CommentRepository,
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) CommentService {
	return &commentService{
		comments: comments,
		videos:   videos,
		users:    users,
		validate: validate,
		logger:   logger,
	}
}

// Create attaches a comment to a video the actor can see.
func (s *commentService) Create(ctx context.Context, actorID int64, req CreateCommentRequest) (*models.Comment, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if _, err := s.visibleVideo(ctx, req.VideoID, &actorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		OwnerID: actorID,
		VideoID: req.VideoID,
		Content: strings.TrimSpace(req.Content),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, NewInternalError("failed to create comment")
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actorID, commentID int64, req UpdateCommentRequest) (*models.Comment, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, NewInternalError("failed to load comment")
	}
	if comment == nil {
		return nil, EntityNotFoundError("comment")
	}
	if !comment.IsOwnedBy(actorID) {
		return nil, NewForbiddenError("you do not own this comment")
	}

	comment.Content = strings.TrimSpace(req.Content)
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, NewInternalError("failed to update comment")
	}
	return comment, nil
}

// Delete permits the comment owner and, for moderation, the owner of the
// parent video.
func (s *commentService) Delete(ctx context.Context, actorID, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return NewInternalError("failed to load comment")
	}
	if comment == nil {
		return EntityNotFoundError("comment")
	}

	if !comment.IsOwnedBy(actorID) {
		video, err := s.videos.GetByID(ctx, comment.VideoID, nil)
		if err != nil {
			return NewInternalError("failed to load video")
		}
		if video == nil || !video.IsOwnedBy(actorID) {
			return NewForbiddenError("you cannot delete this comment")
		}
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return NewInternalError("failed to delete comment")
	}
	return nil
}

func (s *commentService) ListByVideo(ctx context.Context, videoID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	if _, err := s.visibleVideo(ctx, videoID, viewerID); err != nil {
		return nil, err
	}

	page, err := s.comments.ListByVideo(ctx, videoID, viewerID, params)
	if err != nil {
		return nil, NewInternalError("failed to list comments")
	}
	return page, nil
}

func (s *commentService) ListByUser(ctx context.Context, targetUserID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	exists, err := s.users.Exists(ctx, targetUserID)
	if err != nil {
		return nil, NewInternalError("failed to check user")
	}
	if !exists {
		return nil, EntityNotFoundError("user")
	}

	page, err := s.comments.ListByOwner(ctx, targetUserID, params)
	if err != nil {
		return nil, NewInternalError("failed to list comments")
	}
	return page, nil
}

func (s *commentService) CountByVideo(ctx context.Context, videoID int64, viewerID *int64) (int64, error) {
	if _, err := s.visibleVideo(ctx, videoID, viewerID); err != nil {
		return 0, err
	}

	count, err := s.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return 0, NewInternalError("failed to count comments")
	}
	return count, nil
}

// visibleVideo loads a video and applies the visibility guard; hidden
// videos read as not found.
func (s *commentService) visibleVideo(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to load video")
	}
	if video == nil || !video.VisibleTo(viewerID) {
		return nil, EntityNotFoundError("video")
	}
	return video, nil
}
