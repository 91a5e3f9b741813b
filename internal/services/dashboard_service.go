package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	defaultAnalyticsWindowDays = 30
	adminStatsWindow           = 7 * 24 * time.Hour
	uploadSummaryMonths        = 6
	topVideosLimit             = 5
	topCreatorsLimit           = 5
)

type dashboardService struct {
	stats    repositories.StatsRepository
	users    repositories.UserRepository
	cache    cache.Cache
	cacheTTL time.Duration
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDashboardService creates the dashboard service. Snapshots are cached;
// the upload and delete events invalidate them.
func NewDashboardService(
	stats repositories.StatsRepository,
	users repositories.UserRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		stats:    stats,
		users:    users,
		cache:    c,
		cacheTTL: cacheTTL,
		validate: validate,
		logger:   logger,
	}
}

// ChannelStats snapshots the actor's own channel.
func (s *dashboardService) ChannelStats(ctx context.Context, actorID int64) (*models.ChannelStats, error) {
	key := fmt.Sprintf("dashboard:channel:%d", actorID)

	var cached models.ChannelStats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	stats, err := s.stats.ChannelStats(ctx, actorID)
	if err != nil {
		return nil, NewInternalError("failed to compute channel stats")
	}

	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// Analytics covers a recent window plus the all-time top performers.
func (s *dashboardService) Analytics(ctx context.Context, actorID int64, req AnalyticsRequest) (*models.VideoAnalytics, error) {
	if req.WindowDays == 0 {
		req.WindowDays = defaultAnalyticsWindowDays
	}
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -req.WindowDays)

	totalVideos, totalViews, err := s.stats.WindowStats(ctx, actorID, since)
	if err != nil {
		return nil, NewInternalError("failed to compute analytics")
	}
	videos, err := s.stats.VideosSince(ctx, actorID, since)
	if err != nil {
		return nil, NewInternalError("failed to load recent videos")
	}
	topVideos, err := s.stats.TopVideos(ctx, actorID, topVideosLimit)
	if err != nil {
		return nil, NewInternalError("failed to load top videos")
	}

	return &models.VideoAnalytics{
		WindowDays:  req.WindowDays,
		TotalVideos: totalVideos,
		TotalViews:  totalViews,
		Videos:      videos,
		TopVideos:   topVideos,
	}, nil
}

// AdminStats is restricted to the admin role.
func (s *dashboardService) AdminStats(ctx context.Context, actorID int64) (*models.AdminStats, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, NewInternalError("failed to load user")
	}
	if actor == nil {
		return nil, EntityNotFoundError("user")
	}
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("admin role required")
	}

	key := "dashboard:admin"
	var cached models.AdminStats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	totalUsers, totalVideos, totalViews, err := s.stats.PlatformTotals(ctx)
	if err != nil {
		return nil, NewInternalError("failed to compute platform totals")
	}
	newUsers, newVideos, err := s.stats.CountsSince(ctx, time.Now().Add(-adminStatsWindow))
	if err != nil {
		return nil, NewInternalError("failed to compute weekly counts")
	}
	topCreators, err := s.stats.TopCreators(ctx, topCreatorsLimit)
	if err != nil {
		return nil, NewInternalError("failed to load top creators")
	}

	stats := &models.AdminStats{
		TotalUsers:        totalUsers,
		TotalVideos:       totalVideos,
		TotalViews:        totalViews,
		NewUsersThisWeek:  newUsers,
		NewVideosThisWeek: newVideos,
		TopCreators:       topCreators,
	}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// UploadSummary buckets the actor's uploads by month over the last six
// months plus the publish breakdown.
func (s *dashboardService) UploadSummary(ctx context.Context, actorID int64) (*models.UploadSummary, error) {
	since := time.Now().AddDate(0, -uploadSummaryMonths, 0)

	monthly, err := s.stats.MonthlyUploads(ctx, actorID, since)
	if err != nil {
		return nil, NewInternalError("failed to compute upload summary")
	}
	published, unpublished, err := s.stats.PublishBreakdown(ctx, actorID)
	if err != nil {
		return nil, NewInternalError("failed to compute publish breakdown")
	}

	return &models.UploadSummary{
		MonthlyUploads: monthly,
		Published:      published,
		Unpublished:    unpublished,
	}, nil
}

func (s *dashboardService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
