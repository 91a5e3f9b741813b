package repositories

import (
	"context"
	"fmt"
	"strings"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates the user store.
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{NewBaseRepository(db, logger)}
}

const userColumns = `
	id, username, email, display_name, password_hash,
	avatar_url, avatar_public_id, cover_image_url, cover_image_public_id,
	role, created_at, updated_at`

func (r *userRepository) scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.PasswordHash,
		&u.AvatarURL, &u.AvatarPublicID, &u.CoverImageURL, &u.CoverImagePublicID,
		&u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			username, email, display_name, password_hash,
			avatar_url, avatar_public_id, cover_image_url, cover_image_public_id, role
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.DisplayName, user.PasswordHash,
		user.AvatarURL, user.AvatarPublicID, user.CoverImageURL,
		user.CoverImagePublicID, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetByLogin resolves a username or email, case-insensitively.
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	query := "SELECT " + userColumns + ` FROM users
		WHERE LOWER(username) = $1 OR LOWER(email) = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, login))
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return user, nil
}

// GetByUsernameOrEmail serves the registration duplicate check.
func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2)`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, username, email))
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username or email: %w", err)
	}
	return user, nil
}

func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}
