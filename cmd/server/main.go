package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/wordbingo/internal/api"
	"github.com/mcoot/wordbingo/internal/config"
	"github.com/mcoot/wordbingo/internal/factory"
	"github.com/mcoot/wordbingo/internal/services/feedback"
	"github.com/mcoot/wordbingo/internal/sse"
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config from the loaded settings
	factoryCfg := factory.Config{
		AuthConfig:      cfg.Auth(),
		Logger:          logger,
		StorageType:     cfg.StorageType,
		GameTTL:         cfg.GameTTL,
		LockTTL:         cfg.LockTTL,
		FeedbackTimeout: cfg.FeedbackTimeout,
	}
	if cfg.StorageType == config.StorageRedis {
		redisCfg := cfg.Redis()
		factoryCfg.RedisConfig = &redisCfg
	}
	if cfg.FeedbackEnabled() {
		factoryCfg.FeedbackGenerator = feedback.NewOpenAIGenerator(cfg.Feedback())
		logger.Info("feedback generation enabled", slog.String("model", cfg.FeedbackModel))
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	routerCfg := api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		GameController:  app.GameController,
		BoardService:    app.BoardService,
		ScoringService:  app.ScoringService,
		FeedbackService: app.FeedbackService,
		HubManager:      app.HubManager,
	}
	if pinger, ok := app.Storage.(interface{ Ping(context.Context) error }); ok {
		routerCfg.Pinger = pinger
	}

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(api.NewRouter(routerCfg), serverConfig, logger)
	server.RegisterOnShutdown(app.HubManager.Close)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go cleanupHubs(ctx, app.HubManager, cfg.HubCleanupInterval, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// cleanupHubs drops event hubs for rooms nobody is watching
func cleanupHubs(ctx context.Context, hubs *sse.HubManager, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := hubs.CleanupEmptyHubs(); removed > 0 {
				logger.Debug("removed idle event hubs", slog.Int("count", removed))
			}
		}
	}
}
