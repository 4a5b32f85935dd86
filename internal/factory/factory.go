package factory

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/wordbingo/internal/dependencies/clock"
	"github.com/mcoot/wordbingo/internal/dependencies/random"
	"github.com/mcoot/wordbingo/internal/services/auth"
	"github.com/mcoot/wordbingo/internal/services/board"
	"github.com/mcoot/wordbingo/internal/services/feedback"
	"github.com/mcoot/wordbingo/internal/services/game"
	"github.com/mcoot/wordbingo/internal/services/ids"
	"github.com/mcoot/wordbingo/internal/services/lock"
	"github.com/mcoot/wordbingo/internal/services/scoring"
	"github.com/mcoot/wordbingo/internal/sse"
	"github.com/mcoot/wordbingo/internal/storage"
	"github.com/mcoot/wordbingo/internal/storage/memory"
	redisstorage "github.com/mcoot/wordbingo/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Games   *storage.Games
	Lock    *lock.GameLock

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    ids.Generator

	// Services
	BoardService    *board.Service
	ScoringService  *scoring.Service
	FeedbackService *feedback.Service
	GameController  *game.Controller
	AuthService     *auth.Service
	HubManager      *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// Zero fields fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GameTTL and LockTTL fall back to their package defaults when zero
	GameTTL time.Duration
	LockTTL time.Duration
	// FeedbackGenerator writes turn feedback (optional)
	// If nil, every turn gets the static fallback message
	FeedbackGenerator feedback.Generator
	// FeedbackTimeout bounds each generator call (optional)
	FeedbackTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	logger.Info("storage ready", slog.String("type", storageType))

	return newWithDependencies(store, clock.New(), random.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	idGen := ids.New(rnd)
	games := storage.NewGames(store, cfg.GameTTL)
	gameLock := lock.New(store, cfg.LockTTL, logger)

	generator := cfg.FeedbackGenerator
	if generator == nil {
		generator = feedback.Static{}
	}

	hubManager := sse.NewHubManager(logger)
	gameController := game.NewController(games, gameLock, idGen, clk, rnd, logger)
	gameController.SetNotifier(sse.NewBroadcaster(hubManager, logger))

	return &App{
		Storage:         store,
		Games:           games,
		Lock:            gameLock,
		Clock:           clk,
		Random:          rnd,
		IDs:             idGen,
		BoardService:    board.New(rnd, logger),
		ScoringService:  scoring.New(),
		FeedbackService: feedback.NewService(generator, cfg.FeedbackTimeout, logger),
		GameController:  gameController,
		AuthService:     auth.New(idGen, clk, cfg.AuthConfig),
		HubManager:      hubManager,
	}
}

// Close releases the storage connection, if any, and closes event hubs
func (a *App) Close() error {
	a.HubManager.Close()
	if closer, ok := a.Storage.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
