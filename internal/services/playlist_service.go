package services

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type playlistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository
	users     repositories.UserRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewPlaylistService creates the playlist service.
func NewPlaylistService(
	playlists repositories.PlaylistRepository,
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) PlaylistService {
	return &playlistService{
		playlists: playlists,
		videos:    videos,
		users:     users,
		validate:  validate,
		logger:    logger,
	}
}

// Create makes an empty playlist. Names are unique per owner,
// case-insensitively.
func (s *playlistService) Create(ctx context.Context, actorID int64, req CreatePlaylistRequest) (*models.Playlist, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.checkNameFree(ctx, actorID, name, 0); err != nil {
		return nil, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	playlist := &models.Playlist{
		OwnerID:     actorID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsPublic:    isPublic,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, EntityAlreadyExistsError("playlist", "NAME")
		}
		return nil, NewInternalError("failed to create playlist")
	}
	playlist.Videos = []*models.Video{}
	return playlist, nil
}

// Get loads the playlist with its videos in order. Private playlists are
// owner-only; public ones hide unpublished videos from non-owners.
func (s *playlistService) Get(ctx context.Context, playlistID int64, viewerID *int64) (*models.Playlist, error) {
	playlist, err := s.visiblePlaylist(ctx, playlistID, viewerID)
	if err != nil {
		return nil, err
	}

	publishedOnly := viewerID == nil || !playlist.IsOwnedBy(*viewerID)
	videos, err := s.playlists.ListVideos(ctx, playlistID, publishedOnly)
	if err != nil {
		return nil, NewInternalError("failed to load playlist videos")
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	playlist.Videos = videos
	playlist.VideoCount = int64(len(videos))
	if len(videos) > 0 {
		playlist.FirstVideoThumbnail = &videos[0].ThumbnailURL
	}
	return playlist, nil
}

func (s *playlistService) Update(ctx context.Context, actorID, playlistID int64, req UpdatePlaylistRequest) (*models.Playlist, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, playlist.Name) {
			if err := s.checkNameFree(ctx, actorID, name, playlistID); err != nil {
				return nil, err
			}
		}
		playlist.Name = name
	}
	if req.Description != nil {
		playlist.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.playlists.Update(ctx, playlist); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, EntityAlreadyExistsError("playlist", "NAME")
		}
		return nil, NewInternalError("failed to update playlist")
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, actorID, playlistID int64) error {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return NewInternalError("failed to delete playlist")
	}
	return nil
}

// ListByUser pages a user's playlists. Non-owners only see public ones.
func (s *playlistService) ListByUser(ctx context.Context, targetUserID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error) {
	exists, err := s.users.Exists(ctx, targetUserID)
	if err != nil {
		return nil, NewInternalError("failed to check user")
	}
	if !exists {
		return nil, EntityNotFoundError("user")
	}

	publicOnly := viewerID == nil || *viewerID != targetUserID
	page, err := s.playlists.ListByOwner(ctx, targetUserID, publicOnly, params)
	if err != nil {
		return nil, NewInternalError("failed to list playlists")
	}
	return page, nil
}

func (s *playlistService) SearchPublic(ctx context.Context, query string, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search query is required", nil)
	}

	page, err := s.playlists.SearchPublic(ctx, query, params)
	if err != nil {
		return nil, NewInternalError("failed to search playlists")
	}
	return page, nil
}

// AddVideo appends a video the actor can see to their playlist. Adding a
// video that is already present is a conflict, not an append.
func (s *playlistService) AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID, &actorID)
	if err != nil {
		return nil, NewInternalError("failed to load video")
	}
	if video == nil || !video.VisibleTo(&actorID) {
		return nil, EntityNotFoundError("video")
	}

	added, err := s.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, NewInternalError("failed to add video to playlist")
	}
	if !added {
		return nil, NewConflictError("video is already in the playlist", "DUPLICATE_PLAYLIST_VIDEO")
	}

	return s.Get(ctx, playlistID, &actorID)
}

func (s *playlistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	removed, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, NewInternalError("failed to remove video from playlist")
	}
	if !removed {
		return nil, NewNotFoundError("video is not in the playlist")
	}

	return s.Get(ctx, playlistID, &actorID)
}

// Reorder replaces the playlist's ordering. The submitted ids must be an
// exact permutation of the current membership.
func (s *playlistService) Reorder(ctx context.Context, actorID, playlistID int64, req ReorderPlaylistRequest) (*models.Playlist, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	current, err := s.playlists.VideoIDs(ctx, playlistID)
	if err != nil {
		return nil, NewInternalError("failed to load playlist videos")
	}
	if !isPermutation(current, req.VideoIDs) {
		return nil, NewValidationError(
			"video ids must be a permutation of the playlist's current videos", nil)
	}

	if err := s.playlists.Reorder(ctx, playlistID, req.VideoIDs); err != nil {
		return nil, NewInternalError("failed to reorder playlist")
	}

	return s.Get(ctx, playlistID, &actorID)
}

func (s *playlistService) SetPrivacy(ctx context.Context, actorID, playlistID int64, isPublic bool) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	playlist.IsPublic = isPublic
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, NewInternalError("failed to update playlist privacy")
	}
	return playlist, nil
}

// ContainingVideo lists the actor's playlists that already hold the
// video, newest-updated first.
func (s *playlistService) ContainingVideo(ctx context.Context, actorID, videoID int64) ([]*models.Playlist, error) {
	playlists, err := s.playlists.ListContainingVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, NewInternalError("failed to list playlists")
	}
	if playlists == nil {
		playlists = []*models.Playlist{}
	}
	return playlists, nil
}

func (s *playlistService) checkNameFree(ctx context.Context, ownerID int64, name string, exceptID int64) error {
	existing, err := s.playlists.GetByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return NewInternalError("failed to check playlist name")
	}
	if existing != nil && existing.ID != exceptID {
		return EntityAlreadyExistsError("playlist", "NAME")
	}
	return nil
}

func (s *playlistService) visiblePlaylist(ctx context.Context, playlistID int64, viewerID *int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, NewInternalError("failed to load playlist")
	}
	if playlist == nil || !playlist.VisibleTo(viewerID) {
		return nil, EntityNotFoundError("playlist")
	}
	return playlist, nil
}

func (s *playlistService) ownedPlaylist(ctx context.Context, actorID, playlistID int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, NewInternalError("failed to load playlist")
	}
	if playlist == nil || !playlist.VisibleTo(&actorID) {
		return nil, EntityNotFoundError("playlist")
	}
	if !playlist.IsOwnedBy(actorID) {
		return nil, NewForbiddenError("you do not own this playlist")
	}
	return playlist, nil
}

// isPermutation reports whether b rearranges exactly the elements of a.
func isPermutation(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int64]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}
