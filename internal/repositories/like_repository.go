package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type likeRepository struct {
	*BaseRepository
}

// NewLikeRepository creates the like store.
func NewLikeRepository(db *database.Manager, logger *zap.Logger) LikeRepository {
	return &likeRepository{NewBaseRepository(db, logger)}
}

// ===============================
// TOGGLE PRIMITIVES
// ===============================

// Insert records a like. The unique constraint on (user_id, target_type,
// target_id) absorbs concurrent toggles: a losing racer sees created=false
// instead of a duplicate row.
func (r *likeRepository) Insert(ctx context.Context, userID int64, target models.LikeTarget) (bool, error) {
	query := `
		INSERT INTO likes (user_id, target_type, target_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, target_type, target_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, userID, target.Type, target.ID)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	return affected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID int64, target models.LikeTarget) (bool, error) {
	query := `
		DELETE FROM likes
		WHERE user_id = $1 AND target_type = $2 AND target_id = $3`

	result, err := r.db.ExecContext(ctx, query, userID, target.Type, target.ID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return affected > 0, nil
}

// ===============================
// COUNTS AND FLAGS
// ===============================

func (r *likeRepository) Count(ctx context.Context, target models.LikeTarget) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE target_type = $1 AND target_id = $2`,
		target.Type, target.ID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID int64, target models.LikeTarget) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM likes
			WHERE user_id = $1 AND target_type = $2 AND target_id = $3
		)`,
		userID, target.Type, target.ID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("like exists: %w", err)
	}
	return exists, nil
}

// LikedSet answers "which of these ids does the user like" in one query.
// Ids not liked map to false so callers get a complete answer.
func (r *likeRepository) LikedSet(ctx context.Context, userID int64, targetType models.LikeTargetType, ids []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		liked[id] = false
	}
	if len(ids) == 0 {
		return liked, nil
	}

	query := `
		SELECT target_id FROM likes
		WHERE user_id = $1 AND target_type = $2 AND target_id = ANY($3)`

	rows, err := r.db.QueryContext(ctx, query, userID, targetType, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("liked set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("liked set: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("liked set: %w", err)
	}
	return liked, nil
}

// ===============================
// LISTINGS
// ===============================

// Likers pages through the users who liked a target, most recent first.
func (r *likeRepository) Likers(ctx context.Context, target models.LikeTarget, params models.PaginationParams) (*models.PaginatedResponse[*models.UserSummary], error) {
	total, err := r.countRows(ctx,
		"FROM likes l WHERE l.target_type = $1 AND l.target_id = $2",
		target.Type, target.ID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM likes l
		INNER JOIN users u ON u.id = l.user_id
		WHERE l.target_type = $1 AND l.target_id = $2
		ORDER BY l.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query,
		target.Type, target.ID, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}
	defer rows.Close()

	var likers []*models.UserSummary
	for rows.Next() {
		var (
			u      models.UserSummary
			avatar sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &avatar); err != nil {
			return nil, fmt.Errorf("scan liker: %w", err)
		}
		if avatar.Valid {
			u.AvatarURL = &avatar.String
		}
		likers = append(likers, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}

	return models.NewPaginatedResponse(likers, params, total), nil
}

// LikedVideos pages through the videos a user has liked, newest like
// first. The inner join drops likes whose video has since been deleted.
func (r *likeRepository) LikedVideos(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	total, err := r.countRows(ctx,
		`FROM likes l
		 INNER JOIN videos v ON v.id = l.target_id
		 WHERE l.target_type = 'video' AND l.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			v.id, v.owner_id, v.video_url, v.video_public_id,
			v.thumbnail_url, v.thumbnail_public_id, v.title, v.description,
			v.duration_seconds, v.view_count, v.is_published,
			v.created_at, v.updated_at,
			u.id, u.username, u.display_name, u.avatar_url,
			COALESCE(lc.like_count, 0) AS like_count,
			TRUE AS liked_by_me
		FROM likes l
		INNER JOIN videos v ON v.id = l.target_id
		LEFT JOIN users u ON u.id = v.owner_id
		LEFT JOIN (
			SELECT target_id, COUNT(*) AS like_count
			FROM likes
			WHERE target_type = 'video'
			GROUP BY target_id
		) lc ON lc.target_id = v.id
		WHERE l.target_type = 'video' AND l.user_id = $1
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows, &userID)
		if err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}

	return models.NewPaginatedResponse(videos, params, total), nil
}
