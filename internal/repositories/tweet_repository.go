package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

var tweetSortColumns = map[string]string{
	"createdAt": "t.created_at",
	"updatedAt": "t.updated_at",
	"likes":     "like_count",
}

type tweetRepository struct {
	*BaseRepository
}

// NewTweetRepository creates the tweet store.
func NewTweetRepository(db *database.Manager, logger *zap.Logger) TweetRepository {
	return &tweetRepository{NewBaseRepository(db, logger)}
}

// ===============================
// WRITES
// ===============================

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, tweet.OwnerID, tweet.Content).
		Scan(&tweet.ID, &tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tweet: %w", err)
	}
	return nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	query := `
		UPDATE tweets SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, tweet.ID, tweet.Content).
		Scan(&tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	return nil
}

// Delete removes the tweet and its likes atomically.
func (r *tweetRepository) Delete(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE target_type = 'tweet' AND target_id = $1`, id); err != nil {
			return fmt.Errorf("delete tweet likes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tweets WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete tweet: %w", err)
		}
		return nil
	})
}

func (r *tweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tweets WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tweet exists: %w", err)
	}
	return exists, nil
}

// ===============================
// ENRICHED READS
// ===============================

func tweetSelect(viewerID *int64, args *[]interface{}) string {
	likedExpr := "FALSE"
	likedJoin := ""
	if viewerID != nil {
		*args = append(*args, *viewerID)
		likedExpr = "(ul.id IS NOT NULL)"
		likedJoin = fmt.Sprintf(
			`LEFT JOIN likes ul ON ul.target_type = 'tweet'
			     AND ul.target_id = t.id AND ul.user_id = $%d`, len(*args))
	}

	return fmt.Sprintf(`
		SELECT
			t.id, t.owner_id, t.content, t.created_at, t.updated_at,
			u.id, u.username, u.display_name, u.avatar_url,
			COALESCE(lc.like_count, 0) AS like_count,
			%s AS liked_by_me
		FROM tweets t
		LEFT JOIN users u ON u.id = t.owner_id
		LEFT JOIN (
			SELECT target_id, COUNT(*) AS like_count
			FROM likes
			WHERE target_type = 'tweet'
			GROUP BY target_id
		) lc ON lc.target_id = t.id
		%s`, likedExpr, likedJoin)
}

func scanTweet(rows interface{ Scan(...interface{}) error }, viewerID *int64) (*models.Tweet, error) {
	var (
		t         models.Tweet
		ownerID   sql.NullInt64
		ownerName sql.NullString
		ownerDisp sql.NullString
		ownerAvtr sql.NullString
		likedByMe bool
	)

	err := rows.Scan(
		&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
		&ownerID, &ownerName, &ownerDisp, &ownerAvtr,
		&t.LikeCount, &likedByMe,
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
		t.Owner = owner
	}
	if viewerID != nil {
		t.LikedByMe = &likedByMe
	}
	return &t, nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Tweet, error) {
	var args []interface{}
	query := tweetSelect(viewerID, &args)
	args = append(args, id)
	query += fmt.Sprintf(" WHERE t.id = $%d", len(args))

	tweet, err := scanTweet(r.db.QueryRowContext(ctx, query, args...), viewerID)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tweet: %w", err)
	}
	return tweet, nil
}

func (r *tweetRepository) collect(ctx context.Context, query string, viewerID *int64, params models.PaginationParams, total int64, args ...interface{}) (*models.PaginatedResponse[*models.Tweet], error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer rows.Close()

	var tweets []*models.Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows, viewerID)
		if err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}

	return models.NewPaginatedResponse(tweets, params, total), nil
}

func (r *tweetRepository) List(ctx context.Context, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	total, err := r.countRows(ctx, "FROM tweets t")
	if err != nil {
		return nil, err
	}

	var args []interface{}
	query := tweetSelect(viewerID, &args)
	query += " " + r.orderClause(params, tweetSortColumns, "t.created_at")
	args = append(args, params.Limit, params.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.collect(ctx, query, viewerID, params, total, args...)
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID int64, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	total, err := r.countRows(ctx, "FROM tweets t WHERE t.owner_id = $1", ownerID)
	if err != nil {
		return nil, err
	}

	var args []interface{}
	query := tweetSelect(viewerID, &args)
	args = append(args, ownerID)
	query += fmt.Sprintf(" WHERE t.owner_id = $%d", len(args))
	query += " " + r.orderClause(params, tweetSortColumns, "t.created_at")
	args = append(args, params.Limit, params.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.collect(ctx, query, viewerID, params, total, args...)
}

func (r *tweetRepository) Search(ctx context.Context, text string, viewerID *int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Tweet], error) {
	total, err := r.countRows(ctx,
		"FROM tweets t WHERE t.content ILIKE '%' || $1 || '%'", text)
	if err != nil {
		return nil, err
	}

	var args []interface{}
	query := tweetSelect(viewerID, &args)
	args = append(args, text)
	query += fmt.Sprintf(" WHERE t.content ILIKE '%%' || $%d || '%%'", len(args))
	query += " " + r.orderClause(params, tweetSortColumns, "t.created_at")
	args = append(args, params.Limit, params.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.collect(ctx, query, viewerID, params, total, args...)
}

// ===============================
// AGGREGATES
// ===============================

func (r *tweetRepository) Stats(ctx context.Context, ownerID int64) (*models.TweetStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(LENGTH(content)), 0),
			MIN(created_at),
			MAX(created_at)
		FROM tweets
		WHERE owner_id = $1`

	var (
		stats  models.TweetStats
		oldest sql.NullTime
		newest sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.TotalTweets, &stats.AvgContentLength, &oldest, &newest,
	)
	if err != nil {
		return nil, fmt.Errorf("tweet stats: %w", err)
	}
	if oldest.Valid {
		stats.OldestTweet = &oldest.Time
	}
	if newest.Valid {
		stats.NewestTweet = &newest.Time
	}
	return &stats, nil
}
