// Package database manages the Postgres connection pool and schema
// migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// ===============================
// MANAGER
// ===============================

// Manager wraps *sql.DB with slow-query logging and migration support.
type Manager struct {
	db     *sql.DB
	config *config.DatabaseConfig
	logger *zap.Logger
}

// NewManager opens and verifies the connection pool.
func NewManager(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*Manager, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return &Manager{db: db, config: cfg, logger: logger}, nil
}

// NewManagerWithDB wraps an already-open pool. Repository tests use it
// to drive the manager over a stub driver.
func NewManagerWithDB(db *sql.DB, cfg *config.DatabaseConfig, logger *zap.Logger) *Manager {
	return &Manager{db: db, config: cfg, logger: logger}
}

// DB exposes the underlying pool for transaction helpers.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Close shuts down the pool.
func (m *Manager) Close() error {
	return m.db.Close()
}

// ===============================
// QUERY EXECUTION
// ===============================

// ExecContext runs a statement, logging slow executions.
func (m *Manager) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := m.db.ExecContext(ctx, query, args...)
	m.logSlow(query, time.Since(start))
	return result, err
}

// QueryContext runs a query, logging slow executions.
func (m *Manager) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query, args...)
	m.logSlow(query, time.Since(start))
	return rows, err
}

// QueryRowContext runs a single-row query, logging slow executions.
func (m *Manager) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := m.db.QueryRowContext(ctx, query, args...)
	m.logSlow(query, time.Since(start))
	return row
}

// BeginTx starts a transaction.
func (m *Manager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.db.BeginTx(ctx, opts)
}

func (m *Manager) logSlow(query string, elapsed time.Duration) {
	if elapsed >= m.config.SlowQueryWarn {
		m.logger.Warn("slow query",
			zap.Duration("elapsed", elapsed),
			zap.String("query", truncateQuery(query)),
		)
	}
}

func truncateQuery(query string) string {
	const max = 200
	if len(query) > max {
		return query[:max] + "..."
	}
	return query
}

// ===============================
// MIGRATIONS
// ===============================

// Migrate applies pending schema migrations from the configured path.
func (m *Manager) Migrate() error {
	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(
		"file://"+m.config.MigrationsPath,
		"postgres", driver,
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	m.logger.Info("migrations applied", zap.String("path", m.config.MigrationsPath))
	return nil
}

// ===============================
// HEALTH
// ===============================

// Health pings the database within a short deadline.
func (m *Manager) Health(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.db.PingContext(pingCtx)
}
