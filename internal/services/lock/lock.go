package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/storage"
)

const (
	// DefaultTTL bounds how long a crashed holder can block a game
	DefaultTTL = 5 * time.Second

	// Sentinel is the value stored under a held lock key
	Sentinel = "locked"
)

// GameLock is a fail-fast, TTL-bounded mutual exclusion per game.
// Acquisition is a single set-if-absent attempt; there is no waiting.
type GameLock struct {
	store  storage.Storage
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a game lock over store. A non-positive ttl uses DefaultTTL.
func New(store storage.Storage, ttl time.Duration, logger *slog.Logger) *GameLock {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GameLock{
		store:  store,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "lock")),
	}
}

// TTL returns the lock expiration
func (l *GameLock) TTL() time.Duration {
	return l.ttl
}

// Acquire takes the lock for gameID, returning model.ErrLockBusy if it is held
func (l *GameLock) Acquire(ctx context.Context, gameID model.GameID) error {
	ok, err := l.store.SetIfAbsent(ctx, storage.LockKey(gameID), []byte(Sentinel), l.ttl)
	if err != nil {
		return fmt.Errorf("acquire lock for %s: %w", gameID, err)
	}
	if !ok {
		return model.ErrLockBusy
	}
	return nil
}

// Release frees the lock. It does not check ownership.
func (l *GameLock) Release(ctx context.Context, gameID model.GameID) error {
	if err := l.store.Delete(ctx, storage.LockKey(gameID)); err != nil {
		return fmt.Errorf("release lock for %s: %w", gameID, err)
	}
	return nil
}

// WithLock runs fn while holding the lock for gameID.
// The lock is released on every exit path, including panics and a cancelled ctx.
func (l *GameLock) WithLock(ctx context.Context, gameID model.GameID, fn func(ctx context.Context) error) error {
	if err := l.Acquire(ctx, gameID); err != nil {
		return err
	}
	defer func() {
		if err := l.Release(context.WithoutCancel(ctx), gameID); err != nil {
			l.logger.Warn("failed to release lock",
				slog.String("game_id", string(gameID)),
				slog.String("error", err.Error()),
			)
		}
	}()

	return fn(ctx)
}
