package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mcoot/wordbingo/internal/model"
)

// DefaultGameTTL is how long an untouched game survives in the store
const DefaultGameTTL = 2 * time.Hour

// Games stores Game records as JSON in a Storage
type Games struct {
	store Storage
	ttl   time.Duration
}

// NewGames creates a game repository. Every save refreshes the ttl.
func NewGames(store Storage, ttl time.Duration) *Games {
	if ttl <= 0 {
		ttl = DefaultGameTTL
	}
	return &Games{
		store: store,
		ttl:   ttl,
	}
}

// TTL returns the expiration applied on every save
func (g *Games) TTL() time.Duration {
	return g.ttl
}

// Get loads a game, returning model.ErrGameNotFound if it is absent
func (g *Games) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := g.store.Get(ctx, GameKey(id))
	if err != nil {
		if errors.Is(err, model.ErrKeyNotFound) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &game, nil
}

// Save replaces the stored game wholesale
func (g *Games) Save(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", game.ID, err)
	}

	if err := g.store.Set(ctx, GameKey(game.ID), data, g.ttl); err != nil {
		return fmt.Errorf("save game %s: %w", game.ID, err)
	}
	return nil
}

// Exists reports whether a game is stored under id
func (g *Games) Exists(ctx context.Context, id model.GameID) (bool, error) {
	_, err := g.store.Get(ctx, GameKey(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, model.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}
