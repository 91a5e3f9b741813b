package services

import (
	"context"
	"strings"
	"time"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"
	"vidtube/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type videoService struct {
	videos   repositories.VideoRepository
	users    repositories.UserRepository
	storage  utils.FileStorage
	bus      *events.Bus
	validate *validator.Validate
	logger   *zap.Logger
}

// NewVideoService creates the video service.
func NewVideoService(
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	storage utils.FileStorage,
	bus *events.Bus,
	validate *validator.Validate,
	logger *zap.Logger,
) VideoService {
	return &videoService{
		videos:   videos,
		users:    users,
		storage:  storage,
		bus:      bus,
		validate: validate,
		logger:   logger,
	}
}

// Upload validates both blobs before any bytes leave the process, then
// uploads video first and thumbnail second. Whatever was uploaded before a
// failure is deleted so the store never holds a half-created video.
func (s *videoService) Upload(ctx context.Context, ownerID int64, req UploadVideoRequest) (*models.Video, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if err := s.storage.ValidateFile(req.VideoFile, utils.AssetVideo); err != nil {
		return nil, NewValidationError("invalid video file", err)
	}
	if err := s.storage.ValidateFile(req.Thumbnail, utils.AssetImage); err != nil {
		return nil, NewValidationError("invalid thumbnail file", err)
	}

	videoBlob, err := s.storage.UploadFile(ctx, req.VideoFile, "videos")
	if err != nil {
		return nil, NewUpstreamError("failed to upload video", err)
	}

	thumbBlob, err := s.storage.UploadFile(ctx, req.Thumbnail, "thumbnails")
	if err != nil {
		s.cleanupBlob(videoBlob.PublicID)
		return nil, NewUpstreamError("failed to upload thumbnail", err)
	}

	video := &models.Video{
		OwnerID:           ownerID,
		VideoURL:          videoBlob.URL,
		VideoPublicID:     videoBlob.PublicID,
		ThumbnailURL:      thumbBlob.URL,
		ThumbnailPublicID: thumbBlob.PublicID,
		Title:             strings.TrimSpace(req.Title),
		Description:       strings.TrimSpace(req.Description),
		DurationSeconds:   req.DurationSeconds,
		IsPublished:       true,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		s.cleanupBlob(videoBlob.PublicID)
		s.cleanupBlob(thumbBlob.PublicID)
		return nil, NewInternalError("failed to create video")
	}

	s.logger.Info("video uploaded",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", ownerID))
	s.bus.Publish(events.VideoUploaded, map[string]interface{}{
		"videoId": video.ID,
		"ownerId": ownerID,
	})

	return video, nil
}

// Get loads one video. Unpublished videos appear absent to everyone but
// their owner; a permitted read bumps the view count.
func (s *videoService) Get(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to load video")
	}
	if video == nil || !video.VisibleTo(viewerID) {
		return nil, EntityNotFoundError("video")
	}

	if err := s.videos.IncrementViewCount(ctx, videoID); err != nil {
		s.logger.Warn("failed to increment view count",
			zap.Int64("video_id", videoID), zap.Error(err))
	} else {
		video.ViewCount++
	}

	return video, nil
}

func (s *videoService) List(ctx context.Context, viewerID *int64, req ListVideosRequest) (*models.PaginatedResponse[*models.Video], error) {
	opts := repositories.VideoListOptions{
		Params:   req.Params,
		Query:    strings.TrimSpace(req.Query),
		OwnerID:  req.UserID,
		ViewerID: viewerID,
	}
	page, err := s.videos.List(ctx, opts)
	if err != nil {
		return nil, NewInternalError("failed to list videos")
	}
	return page, nil
}

// ListByUser shows the target user's published videos; the owner also sees
// their unpublished ones.
func (s *videoService) ListByUser(ctx context.Context, targetUserID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	exists, err := s.users.Exists(ctx, targetUserID)
	if err != nil {
		return nil, NewInternalError("failed to check user")
	}
	if !exists {
		return nil, EntityNotFoundError("user")
	}

	opts := repositories.VideoListOptions{
		Params:             params,
		OwnerID:            &targetUserID,
		ViewerID:           viewerID,
		IncludeUnpublished: viewerID != nil && *viewerID == targetUserID,
	}
	page, err := s.videos.List(ctx, opts)
	if err != nil {
		return nil, NewInternalError("failed to list videos")
	}
	return page, nil
}

// Update edits metadata and optionally replaces the thumbnail. The old
// thumbnail blob is deleted only after the row update succeeds.
func (s *videoService) Update(ctx context.Context, actorID, videoID int64, req UpdateVideoRequest) (*models.Video, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		video.Description = strings.TrimSpace(*req.Description)
	}

	oldThumbnail := ""
	if req.Thumbnail != nil {
		if err := s.storage.ValidateFile(req.Thumbnail, utils.AssetImage); err != nil {
			return nil, NewValidationError("invalid thumbnail file", err)
		}
		blob, err := s.storage.UploadFile(ctx, req.Thumbnail, "thumbnails")
		if err != nil {
			return nil, NewUpstreamError("failed to upload thumbnail", err)
		}
		oldThumbnail = video.ThumbnailPublicID
		video.ThumbnailURL = blob.URL
		video.ThumbnailPublicID = blob.PublicID
	}

	if err := s.videos.Update(ctx, video); err != nil {
		if req.Thumbnail != nil {
			s.cleanupBlob(video.ThumbnailPublicID)
		}
		return nil, NewInternalError("failed to update video")
	}
	if oldThumbnail != "" {
		s.cleanupBlob(oldThumbnail)
	}

	return video, nil
}

// Delete removes the video row with its dependents, then deletes the blobs
// best-effort.
func (s *videoService) Delete(ctx context.Context, actorID, videoID int64) error {
	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return NewInternalError("failed to delete video")
	}

	s.cleanupBlob(video.VideoPublicID)
	s.cleanupBlob(video.ThumbnailPublicID)

	s.logger.Info("video deleted",
		zap.Int64("video_id", videoID),
		zap.Int64("owner_id", actorID))
	s.bus.Publish(events.VideoDeleted, map[string]interface{}{
		"videoId": videoID,
		"ownerId": actorID,
	})

	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, actorID, videoID int64) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videos.Update(ctx, video); err != nil {
		return nil, NewInternalError("failed to toggle publish state")
	}
	return video, nil
}

// ownedVideo loads a video and enforces ownership. Videos the actor cannot
// see at all read as not found; visible but unowned ones as forbidden.
func (s *videoService) ownedVideo(ctx context.Context, actorID, videoID int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID, &actorID)
	if err != nil {
		return nil, NewInternalError("failed to load video")
	}
	if video == nil || !video.VisibleTo(&actorID) {
		return nil, EntityNotFoundError("video")
	}
	if !video.IsOwnedBy(actorID) {
		return nil, NewForbiddenError("you do not own this video")
	}
	return video, nil
}

func (s *videoService) cleanupBlob(publicID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.storage.DeleteFile(ctx, publicID); err != nil {
		s.logger.Warn("failed to clean up blob",
			zap.String("public_id", publicID), zap.Error(err))
	}
}
