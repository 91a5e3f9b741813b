// Command server runs the vidtube API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/events"
	"vidtube/internal/repositories"
	"vidtube/internal/router"
	"vidtube/internal/services"
	"vidtube/internal/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewManager(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	c, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	storage, err := utils.NewCloudinaryService(&cfg.Cloudinary, logger)
	if err != nil {
		return err
	}

	bus := events.NewBus(logger)
	subscribeCacheInvalidation(bus, c, logger)

	repos := repositories.NewCollection(db, logger)
	svcs := services.NewCollection(repos, storage, c, cfg.Cache.DefaultTTL, bus, cfg, logger)

	handler := router.New(router.Dependencies{
		Config:   cfg,
		Services: svcs,
		DB:       db,
		Cache:    c,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	bus.Drain()
	return nil
}

// subscribeCacheInvalidation drops the dashboard snapshots whenever the
// underlying figures change.
func subscribeCacheInvalidation(bus *events.Bus, c cache.Cache, logger *zap.Logger) {
	invalidate := func(ctx context.Context, event events.Event) {
		if err := c.DeletePattern(ctx, "dashboard:*"); err != nil {
			logger.Warn("cache invalidation failed",
				zap.String("event", event.Name), zap.Error(err))
		}
	}
	bus.Subscribe(events.VideoUploaded, invalidate)
	bus.Subscribe(events.VideoDeleted, invalidate)
	bus.Subscribe(events.LikeToggled, invalidate)
	bus.Subscribe(events.SubscriptionCreated, invalidate)
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
