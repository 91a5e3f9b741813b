// Package repositories implements the Entity Store and the enrichment
// joins over Postgres.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ===============================
// BASE REPOSITORY
// ===============================

// BaseRepository carries the shared database handle, logger, and the query
// helpers every entity repository uses.
type BaseRepository struct {
	db     *database.Manager
	logger *zap.Logger
}

// NewBaseRepository creates the shared repository core.
func NewBaseRepository(db *database.Manager, logger *zap.Logger) *BaseRepository {
	return &BaseRepository{db: db, logger: logger}
}

// ===============================
// QUERY HELPERS
// ===============================

// orderClause builds an ORDER BY from a caller-supplied sort key validated
// against a per-query whitelist. Unknown keys fall back to the default.
func (r *BaseRepository) orderClause(params models.PaginationParams, allowed map[string]string, defaultColumn string) string {
	column := defaultColumn
	if mapped, ok := allowed[params.SortBy]; ok {
		column = mapped
	}
	direction := "DESC"
	if strings.EqualFold(params.SortType, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// countRows runs a COUNT(*) over the given FROM/WHERE fragment. The total
// is independent of the page window.
func (r *BaseRepository) countRows(ctx context.Context, fromWhere string, args ...interface{}) (int64, error) {
	var total int64
	query := "SELECT COUNT(*) " + fromWhere
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return total, nil
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic.
func (r *BaseRepository) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit()
}

// ===============================
// ERROR CLASSIFICATION
// ===============================

// IsNotFound reports whether err is the no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Races on likes, subscriptions, and usernames surface here.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
