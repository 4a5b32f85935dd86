package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/wordbingo/internal/model"
)

// Event is the payload of every pushed message
type Event struct {
	Type model.EventType `json:"type"`
	Game *model.Game     `json:"game"`
}

// Broadcaster pushes game snapshots to the room's subscribers
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// GameUpdated sends the new snapshot to anyone watching the room
func (b *Broadcaster) GameUpdated(event model.EventType, game *model.Game) {
	hub := b.hubManager.GetHub(game.RoomCode)
	if hub == nil {
		return
	}

	data, err := EncodeEvent(event, game)
	if err != nil {
		b.logger.Error("sse failed to encode game",
			slog.String("room", string(game.RoomCode)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(data)
}

// EncodeEvent renders a game event as an SSE message
func EncodeEvent(event model.EventType, game *model.Game) ([]byte, error) {
	payload, err := json.Marshal(Event{Type: event, Game: game})
	if err != nil {
		return nil, err
	}
	return formatMessage(string(event), string(payload)), nil
}
