package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordbingo/internal/api/apierr"
	"github.com/mcoot/wordbingo/internal/api/middleware"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/game"
	"github.com/mcoot/wordbingo/internal/sse"
)

// EventsHandler streams room updates over server-sent events
type EventsHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(gameController *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// Stream handles GET /api/v1/rooms/{code}/events. The first message is
// a snapshot of the room; every later change follows as its own event.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	g, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	initial, err := sse.EncodeEvent(model.EventSnapshot, g)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.Debug("sse subscriber connected",
		slog.String("room", string(g.RoomCode)),
		slog.String("user_id", string(session.UserID)),
	)

	hub := h.hubManager.GetOrCreateHub(g.RoomCode)
	sse.ServeSSE(w, r, hub, session.UserID, initial)
}
