package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type playlistRepository struct {
	*BaseRepository
}

// NewPlaylistRepository creates the playlist store.
func NewPlaylistRepository(db *database.Manager, logger *zap.Logger) PlaylistRepository {
	return &playlistRepository{NewBaseRepository(db, logger)}
}

// ===============================
// WRITES
// ===============================

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		playlist.OwnerID, playlist.Name, playlist.Description, playlist.IsPublic,
	).Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, is_public = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		playlist.ID, playlist.Name, playlist.Description, playlist.IsPublic,
	).Scan(&playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM playlist_videos WHERE playlist_id = $1`, id); err != nil {
			return fmt.Errorf("delete playlist videos: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM playlists WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete playlist: %w", err)
		}
		return nil
	})
}

// ===============================
// MEMBERSHIP
// ===============================

// AddVideo appends the video at the end of the order. The unique
// constraint on (playlist_id, video_id) turns a duplicate add into
// added=false. A per-playlist advisory lock serializes concurrent
// appends so two adds never read the same MAX(position).
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM playlist_videos WHERE playlist_id = $1
		ON CONFLICT (playlist_id, video_id) DO NOTHING`

	var added bool
	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := lockPlaylist(ctx, tx, playlistID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, query, playlistID, videoID)
		if err != nil {
			return fmt.Errorf("add playlist video: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("add playlist video: %w", err)
		}
		if affected > 0 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE playlists SET updated_at = NOW() WHERE id = $1`, playlistID); err != nil {
				return fmt.Errorf("touch playlist: %w", err)
			}
		}
		added = affected > 0
		return nil
	})
	return added, err
}

// lockPlaylist takes a transaction-scoped advisory lock keyed by the
// playlist id. Released automatically at commit or rollback.
func lockPlaylist(ctx context.Context, tx *sql.Tx, playlistID int64) error {
	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock($1)`, playlistID); err != nil {
		return fmt.Errorf("lock playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID)
	if err != nil {
		return false, fmt.Errorf("remove playlist video: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove playlist video: %w", err)
	}
	if affected > 0 {
		r.touch(ctx, playlistID)
	}
	return affected > 0, nil
}

func (r *playlistRepository) VideoIDs(ctx context.Context, playlistID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT video_id FROM playlist_videos
		 WHERE playlist_id = $1 ORDER BY position`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("playlist video ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("playlist video ids: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("playlist video ids: %w", err)
	}
	return ids, nil
}

// Reorder rewrites every position in one transaction. The service layer
// has already verified videoIDs is a permutation of the current set.
func (r *playlistRepository) Reorder(ctx context.Context, playlistID int64, videoIDs []int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := lockPlaylist(ctx, tx, playlistID); err != nil {
			return err
		}
		for position, videoID := range videoIDs {
			_, err := tx.ExecContext(ctx,
				`UPDATE playlist_videos SET position = $3
				 WHERE playlist_id = $1 AND video_id = $2`,
				playlistID, videoID, position+1)
			if err != nil {
				return fmt.Errorf("reorder playlist: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE playlists SET updated_at = NOW() WHERE id = $1`, playlistID)
		return err
	})
}

func (r *playlistRepository) touch(ctx context.Context, playlistID int64) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE playlists SET updated_at = NOW() WHERE id = $1`, playlistID); err != nil {
		r.logger.Warn("failed to touch playlist", zap.Int64("playlist_id", playlistID), zap.Error(err))
	}
}

// ===============================
// READS
// ===============================

const playlistColumns = `
	p.id, p.owner_id, p.name, p.description, p.is_public, p.created_at, p.updated_at`

func scanPlaylistRow(row interface{ Scan(...interface{}) error }, withOwner bool) (*models.Playlist, error) {
	var (
		p         models.Playlist
		ownerID   sql.NullInt64
		ownerName sql.NullString
		ownerDisp sql.NullString
		ownerAvtr sql.NullString
	)

	dest := []interface{}{
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if withOwner {
		dest = append(dest, &ownerID, &ownerName, &ownerDisp, &ownerAvtr)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if withOwner && ownerID.Valid {
		owner := &models.UserSummary{
			ID:          ownerID.Int64,
			Username:    ownerName.String,
			DisplayName: ownerDisp.String,
		}
		if ownerAvtr.Valid {
			owner.AvatarURL = &ownerAvtr.String
		}
		p.Owner = owner
	}
	return &p, nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id int64) (*models.Playlist, error) {
	query := `
		SELECT ` + playlistColumns + `,
			u.id, u.username, u.display_name, u.avatar_url
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`

	playlist, err := scanPlaylistRow(r.db.QueryRowContext(ctx, query, id), true)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

func (r *playlistRepository) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Playlist, error) {
	query := `
		SELECT ` + playlistColumns + `
		FROM playlists p
		WHERE p.owner_id = $1 AND LOWER(p.name) = LOWER($2)`

	playlist, err := scanPlaylistRow(r.db.QueryRowContext(ctx, query, ownerID, name), false)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist by name: %w", err)
	}
	return playlist, nil
}

// listDecorated pages playlists with videoCount and the first video's
// thumbnail joined in.
func (r *playlistRepository) listDecorated(ctx context.Context, where string, params models.PaginationParams, total int64, orderBy string, args ...interface{}) (*models.PaginatedResponse[*models.Playlist], error) {
	query := fmt.Sprintf(`
		SELECT `+playlistColumns+`,
			u.id, u.username, u.display_name, u.avatar_url,
			COALESCE(vc.video_count, 0) AS video_count,
			ft.thumbnail_url
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner_id
		LEFT JOIN (
			SELECT playlist_id, COUNT(*) AS video_count
			FROM playlist_videos
			GROUP BY playlist_id
		) vc ON vc.playlist_id = p.id
		LEFT JOIN LATERAL (
			SELECT v.thumbnail_url
			FROM playlist_videos pv
			INNER JOIN videos v ON v.id = pv.video_id
			WHERE pv.playlist_id = p.id
			ORDER BY pv.position
			LIMIT 1
		) ft ON TRUE
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		where, orderBy, len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var (
			p         models.Playlist
			ownerID   sql.NullInt64
			ownerName sql.NullString
			ownerDisp sql.NullString
			ownerAvtr sql.NullString
			thumbnail sql.NullString
		)
		err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.IsPublic,
			&p.CreatedAt, &p.UpdatedAt,
			&ownerID, &ownerName, &ownerDisp, &ownerAvtr,
			&p.VideoCount, &thumbnail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
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
			p.Owner = owner
		}
		if thumbnail.Valid {
			p.FirstVideoThumbnail = &thumbnail.String
		}
		playlists = append(playlists, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}

	return models.NewPaginatedResponse(playlists, params, total), nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID int64, publicOnly bool, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error) {
	where := "WHERE p.owner_id = $1"
	countWhere := "FROM playlists p WHERE p.owner_id = $1"
	if publicOnly {
		where += " AND p.is_public = TRUE"
		countWhere += " AND p.is_public = TRUE"
	}

	total, err := r.countRows(ctx, countWhere, ownerID)
	if err != nil {
		return nil, err
	}
	return r.listDecorated(ctx, where, params, total, "p.updated_at DESC", ownerID)
}

func (r *playlistRepository) SearchPublic(ctx context.Context, query string, params models.PaginationParams) (*models.PaginatedResponse[*models.Playlist], error) {
	where := `WHERE p.is_public = TRUE
		AND (p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%')`
	countWhere := `FROM playlists p ` + where

	total, err := r.countRows(ctx, countWhere, query)
	if err != nil {
		return nil, err
	}
	return r.listDecorated(ctx, where, params, total, "p.updated_at DESC", query)
}

func (r *playlistRepository) ListContainingVideo(ctx context.Context, ownerID, videoID int64) ([]*models.Playlist, error) {
	query := `
		SELECT ` + playlistColumns + `
		FROM playlists p
		INNER JOIN playlist_videos pv ON pv.playlist_id = p.id
		WHERE p.owner_id = $1 AND pv.video_id = $2
		ORDER BY p.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID, videoID)
	if err != nil {
		return nil, fmt.Errorf("list playlists containing video: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := scanPlaylistRow(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list playlists containing video: %w", err)
	}
	return playlists, nil
}

// ListVideos returns the playlist's videos in playlist order, with owner
// enrichment. publishedOnly hides unpublished entries from non-owners.
func (r *playlistRepository) ListVideos(ctx context.Context, playlistID int64, publishedOnly bool) ([]*models.Video, error) {
	query := `
		SELECT
			v.id, v.owner_id, v.video_url, v.video_public_id,
			v.thumbnail_url, v.thumbnail_public_id, v.title, v.description,
			v.duration_seconds, v.view_count, v.is_published,
			v.created_at, v.updated_at,
			u.id, u.username, u.display_name, u.avatar_url,
			COALESCE(lc.like_count, 0) AS like_count,
			FALSE AS liked_by_me
		FROM playlist_videos pv
		INNER JOIN videos v ON v.id = pv.video_id
		LEFT JOIN users u ON u.id = v.owner_id
		LEFT JOIN (
			SELECT target_id, COUNT(*) AS like_count
			FROM likes
			WHERE target_type = 'video'
			GROUP BY target_id
		) lc ON lc.target_id = v.id
		WHERE pv.playlist_id = $1`
	if publishedOnly {
		query += " AND v.is_published = TRUE"
	}
	query += " ORDER BY pv.position"

	rows, err := r.db.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	return videos, nil
}
