package repositories

import (
	"context"
	"fmt"
	"time"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type statsRepository struct {
	*BaseRepository
}

// NewStatsRepository creates the dashboard aggregation store.
func NewStatsRepository(db *database.Manager, logger *zap.Logger) StatsRepository {
	return &statsRepository{NewBaseRepository(db, logger)}
}

// ===============================
// CHANNEL STATS
// ===============================

// ChannelStats snapshots one owner's figures. The most-viewed pick only
// considers published videos; the latest list includes unpublished ones
// since the owner is the audience.
func (r *statsRepository) ChannelStats(ctx context.Context, ownerID int64) (*models.ChannelStats, error) {
	stats := &models.ChannelStats{LatestVideos: []*models.Video{}}

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(view_count), 0),
			COUNT(*) FILTER (WHERE is_published),
			COUNT(*) FILTER (WHERE NOT is_published)
		FROM videos
		WHERE owner_id = $1`

	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.TotalVideos, &stats.TotalViews,
		&stats.PublishedVideos, &stats.UnpublishedVideos,
	)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}

	mostViewed, err := r.ownerVideos(ctx, ownerID,
		"v.owner_id = $1 AND v.is_published = TRUE", "v.view_count DESC", 1)
	if err != nil {
		return nil, err
	}
	if len(mostViewed) > 0 {
		stats.MostViewedVideo = mostViewed[0]
	}

	latest, err := r.ownerVideos(ctx, ownerID,
		"v.owner_id = $1", "v.created_at DESC", 5)
	if err != nil {
		return nil, err
	}
	stats.LatestVideos = latest

	return stats, nil
}

// WindowStats counts an owner's uploads and their views inside a window.
func (r *statsRepository) WindowStats(ctx context.Context, ownerID int64, since time.Time) (int64, int64, error) {
	var totalVideos, totalViews int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(view_count), 0)
		FROM videos
		WHERE owner_id = $1 AND created_at >= $2`,
		ownerID, since,
	).Scan(&totalVideos, &totalViews)
	if err != nil {
		return 0, 0, fmt.Errorf("window stats: %w", err)
	}
	return totalVideos, totalViews, nil
}

func (r *statsRepository) VideosSince(ctx context.Context, ownerID int64, since time.Time) ([]*models.Video, error) {
	return r.ownerVideosArgs(ctx,
		"v.owner_id = $1 AND v.created_at >= $2", "v.created_at DESC", 0,
		ownerID, since)
}

func (r *statsRepository) TopVideos(ctx context.Context, ownerID int64, limit int) ([]*models.Video, error) {
	return r.ownerVideos(ctx, ownerID, "v.owner_id = $1", "v.view_count DESC", limit)
}

func (r *statsRepository) ownerVideos(ctx context.Context, ownerID int64, where, orderBy string, limit int) ([]*models.Video, error) {
	return r.ownerVideosArgs(ctx, where, orderBy, limit, ownerID)
}

func (r *statsRepository) ownerVideosArgs(ctx context.Context, where, orderBy string, limit int, args ...interface{}) ([]*models.Video, error) {
	var queryArgs []interface{}
	query := videoSelect(nil, &queryArgs)
	queryArgs = append(queryArgs, args...)
	query += " WHERE " + where + " ORDER BY " + orderBy
	if limit > 0 {
		queryArgs = append(queryArgs, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(queryArgs))
	}

	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("owner videos: %w", err)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		video, err := scanVideo(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("scan owner video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("owner videos: %w", err)
	}
	return videos, nil
}

// ===============================
// PLATFORM STATS
// ===============================

func (r *statsRepository) PlatformTotals(ctx context.Context) (int64, int64, int64, error) {
	var totalUsers, totalVideos, totalViews int64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM videos),
			(SELECT COALESCE(SUM(view_count), 0) FROM videos)`,
	).Scan(&totalUsers, &totalVideos, &totalViews)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("platform totals: %w", err)
	}
	return totalUsers, totalVideos, totalViews, nil
}

func (r *statsRepository) CountsSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var newUsers, newVideos int64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE created_at >= $1),
			(SELECT COUNT(*) FROM videos WHERE created_at >= $1)`,
		since,
	).Scan(&newUsers, &newVideos)
	if err != nil {
		return 0, 0, fmt.Errorf("counts since: %w", err)
	}
	return newUsers, newVideos, nil
}

// TopCreators ranks users by owned-video count, ties broken by the lower
// user id.
func (r *statsRepository) TopCreators(ctx context.Context, limit int) ([]*models.CreatorSummary, error) {
	query := `
		SELECT u.id, u.username, u.display_name, COUNT(v.id) AS video_count, u.created_at
		FROM users u
		INNER JOIN videos v ON v.owner_id = u.id
		GROUP BY u.id, u.username, u.display_name, u.created_at
		ORDER BY video_count DESC, u.id ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top creators: %w", err)
	}
	defer rows.Close()

	creators := []*models.CreatorSummary{}
	for rows.Next() {
		var c models.CreatorSummary
		err := rows.Scan(&c.UserID, &c.Username, &c.DisplayName, &c.VideoCount, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan creator: %w", err)
		}
		creators = append(creators, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top creators: %w", err)
	}
	return creators, nil
}

// ===============================
// UPLOAD BUCKETS
// ===============================

// MonthlyUploads buckets an owner's uploads by calendar month, newest
// bucket first. Months with no uploads are absent.
func (r *statsRepository) MonthlyUploads(ctx context.Context, ownerID int64, since time.Time) ([]*models.MonthlyUploadStat, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*),
			COALESCE(SUM(view_count), 0)
		FROM videos
		WHERE owner_id = $1 AND created_at >= $2
		GROUP BY year, month
		ORDER BY year DESC, month DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("monthly uploads: %w", err)
	}
	defer rows.Close()

	stats := []*models.MonthlyUploadStat{}
	for rows.Next() {
		var s models.MonthlyUploadStat
		if err := rows.Scan(&s.Year, &s.Month, &s.Count, &s.TotalViews); err != nil {
			return nil, fmt.Errorf("scan monthly uploads: %w", err)
		}
		stats = append(stats, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly uploads: %w", err)
	}
	return stats, nil
}

func (r *statsRepository) PublishBreakdown(ctx context.Context, ownerID int64) (int64, int64, error) {
	var published, unpublished int64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE is_published),
			COUNT(*) FILTER (WHERE NOT is_published)
		FROM videos
		WHERE owner_id = $1`,
		ownerID,
	).Scan(&published, &unpublished)
	if err != nil {
		return 0, 0, fmt.Errorf("publish breakdown: %w", err)
	}
	return published, unpublished, nil
}
