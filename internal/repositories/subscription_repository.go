package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type subscriptionRepository struct {
	*BaseRepository
}

// NewSubscriptionRepository creates the subscription store.
func NewSubscriptionRepository(db *database.Manager, logger *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{NewBaseRepository(db, logger)}
}

// Insert records the edge. The unique constraint on
// (subscriber_id, channel_id) makes a concurrent duplicate come back as
// created=false with the row left untouched.
func (r *subscriptionRepository) Insert(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, bool, error) {
	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
		RETURNING id, created_at`

	sub := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	err := r.db.QueryRowContext(ctx, query, subscriberID, channelID).
		Scan(&sub.ID, &sub.CreatedAt)
	if IsNotFound(err) {
		// Conflict path: the row already existed.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert subscription: %w", err)
	}
	return sub, true, nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	return affected > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM subscriptions
			WHERE subscriber_id = $1 AND channel_id = $2
		)`, subscriberID, channelID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("subscription exists: %w", err)
	}
	return exists, nil
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	return r.countRows(ctx, "FROM subscriptions s WHERE s.channel_id = $1", channelID)
}

// ListSubscribers pages the users following a channel, newest first. The
// joined side is projected into the Subscriber summary.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error) {
	total, err := r.countRows(ctx, "FROM subscriptions s WHERE s.channel_id = $1", channelID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			s.id, s.subscriber_id, s.channel_id, s.created_at,
			u.id, u.username, u.display_name, u.avatar_url
		FROM subscriptions s
		INNER JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, params, total, true, channelID)
}

// ListChannels pages the channels a user follows, newest first.
func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Subscription], error) {
	total, err := r.countRows(ctx, "FROM subscriptions s WHERE s.subscriber_id = $1", subscriberID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			s.id, s.subscriber_id, s.channel_id, s.created_at,
			u.id, u.username, u.display_name, u.avatar_url
		FROM subscriptions s
		INNER JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, params, total, false, subscriberID)
}

func (r *subscriptionRepository) list(ctx context.Context, query string, params models.PaginationParams, total int64, joinedIsSubscriber bool, anchorID int64) (*models.PaginatedResponse[*models.Subscription], error) {
	rows, err := r.db.QueryContext(ctx, query, anchorID, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		var (
			s      models.Subscription
			u      models.UserSummary
			avatar sql.NullString
		)
		err := rows.Scan(
			&s.ID, &s.SubscriberID, &s.ChannelID, &s.CreatedAt,
			&u.ID, &u.Username, &u.DisplayName, &avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if avatar.Valid {
			u.AvatarURL = &avatar.String
		}
		if joinedIsSubscriber {
			s.Subscriber = &u
		} else {
			s.Channel = &u
		}
		subs = append(subs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	return models.NewPaginatedResponse(subs, params, total), nil
}
