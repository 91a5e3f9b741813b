package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

var commentSortColumns = map[string]string{
	"createdAt": "c.created_at",
	"updatedAt": "c.updated_at",
	"likes":     "like_count",
}

type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates the comment store.
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{NewBaseRepository(db, logger)}
}

// ===============================
// WRITES
// ===============================

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (owner_id, video_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.OwnerID, comment.VideoID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, comment.ID, comment.Content).
		Scan(&comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes the comment and every like pointing at it in one
// transaction, so no orphaned likes survive.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE target_type = 'comment' AND target_id = $1`, id); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM comments WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
}

func (r *commentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("comment exists: %w", err)
	}
	return exists, nil
}

// ===============================
// READS
// ===============================

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT c.id, c.owner_id, c.video_id, c.content, c.created_at, c.updated_at
		FROM comments c
		WHERE c.id = $1`

	var c models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.OwnerID, &c.VideoID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

// commentSelect builds the enriched comment query. Shape mirrors the video
// feed: owner projection, aggregate like count, conditional liked-by-me.
func commentSelect(viewerID *int64, args *[]interface{}) string {
	likedExpr := "FALSE"
	likedJoin := ""
	if viewerID != nil {
		*args = append(*args, *viewerID)
		likedExpr = "(ul.id IS NOT NULL)"
		likedJoin = fmt.Sprintf(
			`LEFT JOIN likes ul ON ul.target_type = 'comment'
			     AND ul.target_id = c.id AND ul.user_id = $%d`, len(*args))
	}

	return fmt.Sprintf(`
		SELECT
			c.id, c.owner_id, c.video_id, c.content, c.created_at, c.updated_at,
			u.id, u.username, u.display_name, u.avatar_url,
			COALESCE(lc.like_count, 0) AS like_count,
			%s AS liked_by_me
		FROM comments c
		LEFT JOIN users u ON u.id = c.owner_id
		LEFT JOIN (
			SELECT target_id, COUNT(*) AS like_count
			FROM likes
			WHERE target_type = 'comment'
			GROUP BY target_id
		) lc ON lc.target_id = c.id
		%s`, likedExpr, likedJoin)
}

func scanComment(rows interface{ Scan(...interface{}) error }, viewerID *int64) (*models.Comment, error) {
	var (
		c         models.Comment
		ownerID   sql.NullInt64
		ownerName sql.NullString
		ownerDisp sql.NullString
		ownerAvtr sql.NullString
		likedByMe bool
	)

	err := rows.Scan(
		&c.ID, &c.OwnerID, &c.VideoID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&ownerID, &ownerName, &ownerDisp, &ownerAvtr,
		&c.LikeCount, &likedByMe,
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
		c.Owner = owner
	}
	if viewerID != nil {
		c.LikedByMe = &likedByMe
	}
	return &c, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	total, err := r.countRows(ctx, "FROM comments c WHERE c.video_id = $1", videoID)
	if err != nil {
		return nil, err
	}

	var args []interface{}
	query := commentSelect(viewerID, &args)
	args = append(args, videoID)
	query += fmt.Sprintf(" WHERE c.video_id = $%d", len(args))
	query += " " + r.orderClause(params, commentSortColumns, "c.created_at")
	args = append(args, params.Limit, params.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows, viewerID)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return models.NewPaginatedResponse(comments, params, total), nil
}

// ListByOwner attaches the parent-video summary to each of the user's
// comments.
func (r *commentRepository) ListByOwner(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	total, err := r.countRows(ctx, "FROM comments c WHERE c.owner_id = $1", ownerID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			c.id, c.owner_id, c.video_id, c.content, c.created_at, c.updated_at,
			u.id, u.username, u.display_name, u.avatar_url,
			v.id, v.title, v.thumbnail_url, v.owner_id
		FROM comments c
		LEFT JOIN users u ON u.id = c.owner_id
		LEFT JOIN videos v ON v.id = c.video_id
		WHERE c.owner_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list comments by owner: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var (
			c          models.Comment
			uID        sql.NullInt64
			uName      sql.NullString
			uDisp      sql.NullString
			uAvtr      sql.NullString
			vID        sql.NullInt64
			vTitle     sql.NullString
			vThumbnail sql.NullString
			vOwner     sql.NullInt64
		)
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.VideoID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&uID, &uName, &uDisp, &uAvtr,
			&vID, &vTitle, &vThumbnail, &vOwner,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if uID.Valid {
			owner := &models.UserSummary{ID: uID.Int64, Username: uName.String, DisplayName: uDisp.String}
			if uAvtr.Valid {
				owner.AvatarURL = &uAvtr.String
			}
			c.Owner = owner
		}
		if vID.Valid {
			c.Video = &models.VideoSummary{
				ID:           vID.Int64,
				Title:        vTitle.String,
				ThumbnailURL: vThumbnail.String,
				OwnerID:      vOwner.Int64,
			}
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments by owner: %w", err)
	}

	return models.NewPaginatedResponse(comments, params, total), nil
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID int64) (int64, error) {
	return r.countRows(ctx, "FROM comments c WHERE c.video_id = $1", videoID)
}
