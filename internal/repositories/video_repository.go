package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

// videoSortColumns whitelists sortBy keys for video listings. "likes" sorts
// on the derived count, so it must name the enriched column.
var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"updatedAt": "v.updated_at",
	"title":     "v.title",
	"views":     "v.view_count",
	"duration":  "v.duration_seconds",
	"likes":     "like_count",
}

type videoRepository struct {
	*BaseRepository
}

// NewVideoRepository creates the video store.
func NewVideoRepository(db *database.Manager, logger *zap.Logger) VideoRepository {
	return &videoRepository{NewBaseRepository(db, logger)}
}

// ===============================
// WRITES
// ===============================

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (
			owner_id, video_url, video_public_id, thumbnail_url,
			thumbnail_public_id, title, description, duration_seconds, is_published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, view_count, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		video.OwnerID, video.VideoURL, video.VideoPublicID, video.ThumbnailURL,
		video.ThumbnailPublicID, video.Title, video.Description,
		video.DurationSeconds, video.IsPublished,
	).Scan(&video.ID, &video.ViewCount, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4,
		    thumbnail_public_id = $5, is_published = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		video.ID, video.Title, video.Description,
		video.ThumbnailURL, video.ThumbnailPublicID, video.IsPublished,
	).Scan(&video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return nil
}

// Delete removes the video and everything hanging off it: likes on the
// video, comments and their likes, and playlist memberships. One
// transaction keeps the cleanup atomic with the delete.
func (r *videoRepository) Delete(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		steps := []string{
			`DELETE FROM likes
			 WHERE target_type = 'comment'
			   AND target_id IN (SELECT id FROM comments WHERE video_id = $1)`,
			`DELETE FROM likes WHERE target_type = 'video' AND target_id = $1`,
			`DELETE FROM comments WHERE video_id = $1`,
			`DELETE FROM playlist_videos WHERE video_id = $1`,
			`DELETE FROM videos WHERE id = $1`,
		}
		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, step, id); err != nil {
				return fmt.Errorf("delete video: %w", err)
			}
		}
		return nil
	})
}

func (r *videoRepository) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE videos SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (r *videoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("video exists: %w", err)
	}
	return exists, nil
}

// ===============================
// ENRICHED READS
// ===============================

// videoSelect assembles the enriched video query: owner summary via LEFT
// JOIN (a deleted owner yields a null owner, not a dropped row), like count
// via an aggregate subquery, and liked-by-me via a conditional join that is
// added only for authenticated viewers.
func videoSelect(viewerID *int64, args *[]interface{}) string {
	likedExpr := "FALSE"
	likedJoin := ""
	if viewerID != nil {
		*args = append(*args, *viewerID)
		n := len(*args)
		likedExpr = "(ul.id IS NOT NULL)"
		likedJoin = fmt.Sprintf(
			`LEFT JOIN likes ul ON ul.target_type = 'video'
			     AND ul.target_id = v.id AND ul.user_id = $%d`, n)
	}

	return fmt.Sprintf(`
		SELECT
			v.id, v.owner_id, v.video_url, v.video_public_id,
			v.thumbnail_url, v.thumbnail_public_id, v.title, v.description,
			v.duration_seconds, v.view_count, v.is_published,
			v.created_at, v.updated_at,
			u.id, u.username, u.display_name, u.avatar_url,
			COALESCE(lc.like_count, 0) AS like_count,
			%s AS liked_by_me
		FROM videos v
		LEFT JOIN users u ON u.id = v.owner_id
		LEFT JOIN (
			SELECT target_id, COUNT(*) AS like_count
			FROM likes
			WHERE target_type = 'video'
			GROUP BY target_id
		) lc ON lc.target_id = v.id
		%s`, likedExpr, likedJoin)
}

// scanVideo reads one enriched row. The likedByMe field stays nil for
// anonymous viewers so it is omitted from the JSON view.
func scanVideo(rows interface{ Scan(...interface{}) error }, viewerID *int64) (*models.Video, error) {
	var (
		v         models.Video
		ownerID   sql.NullInt64
		ownerName sql.NullString
		ownerDisp sql.NullString
		ownerAvtr sql.NullString
		likedByMe bool
	)

	err := rows.Scan(
		&v.ID, &v.OwnerID, &v.VideoURL, &v.VideoPublicID,
		&v.ThumbnailURL, &v.ThumbnailPublicID, &v.Title, &v.Description,
		&v.DurationSeconds, &v.ViewCount, &v.IsPublished,
		&v.CreatedAt, &v.UpdatedAt,
		&ownerID, &ownerName, &ownerDisp, &ownerAvtr,
		&v.LikeCount, &likedByMe,
	)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		owner := &models.UserSummary{
			ID:          ownerID.Int64,
			Username:    ownerName.String,
			DisplayName: ownerDisp.String,
		}
		if ownerAvtr.Valid {
			owner.AvatarURL = &ownerAvtr.String
		}
		v.Owner = owner
	}
	if viewerID != nil {
		v.LikedByMe = &likedByMe
		v.IsOwner = v.OwnerID == *viewerID
	}
	return &v, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Video, error) {
	var args []interface{}
	query := videoSelect(viewerID, &args)
	args = append(args, id)
	query += fmt.Sprintf(" WHERE v.id = $%d", len(args))

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, args...), viewerID)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

func (r *videoRepository) List(ctx context.Context, opts VideoListOptions) (*models.PaginatedResponse[*models.Video], error) {
	var args []interface{}
	query := videoSelect(opts.ViewerID, &args)

	var conditions []string
	var countArgs []interface{}
	var countConditions []string

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
		countArgs = append(countArgs, value)
		countConditions = append(countConditions, fmt.Sprintf(clause, len(countArgs)))
	}

	if !opts.IncludeUnpublished {
		conditions = append(conditions, "v.is_published = TRUE")
		countConditions = append(countConditions, "v.is_published = TRUE")
	}
	if opts.OwnerID != nil {
		addCondition("v.owner_id = $%d", *opts.OwnerID)
	}
	if opts.Query != "" {
		textFilter := "(v.title ILIKE '%%' || $%d || '%%' OR v.description ILIKE '%%' || $%d || '%%')"
		args = append(args, opts.Query)
		conditions = append(conditions, fmt.Sprintf(textFilter, len(args), len(args)))
		countArgs = append(countArgs, opts.Query)
		countConditions = append(countConditions, fmt.Sprintf(textFilter, len(countArgs), len(countArgs)))
	}

	where := ""
	countWhere := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
		countWhere = " WHERE " + strings.Join(countConditions, " AND ")
	}

	total, err := r.countRows(ctx, "FROM videos v"+countWhere, countArgs...)
	if err != nil {
		return nil, err
	}

	query += where
	query += " " + r.orderClause(opts.Params, videoSortColumns, "v.created_at")
	args = append(args, opts.Params.Limit, opts.Params.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows, opts.ViewerID)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return models.NewPaginatedResponse(videos, opts.Params, total), nil
}
