package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordbingo/internal/api/apierr"
	"github.com/mcoot/wordbingo/internal/api/middleware"
	"github.com/mcoot/wordbingo/internal/api/request"
	"github.com/mcoot/wordbingo/internal/api/response"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/feedback"
	"github.com/mcoot/wordbingo/internal/services/game"
	"github.com/mcoot/wordbingo/internal/services/scoring"
)

// GameHandler handles play: calling words, turns, claims and standings
type GameHandler struct {
	gameController  *game.Controller
	scoringService  *scoring.Service
	feedbackService *feedback.Service
	logger          *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController *game.Controller,
	scoringService *scoring.Service,
	feedbackService *feedback.Service,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		gameController:  gameController,
		scoringService:  scoringService,
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Call handles POST /api/v1/rooms/{code}/call
func (h *GameHandler) Call(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.CallWordRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	before, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	g, err := h.gameController.CallWord(r.Context(), before.ID, session.UserID, req.Word)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	resp := response.CallResponse{Game: g}
	if len(g.CalledWords) > len(before.CalledWords) {
		resp.Feedback = h.feedbackService.Generate(r.Context(), feedback.InputForTurn(g, session.UserID, req.Word))
	}

	response.JSON(w, http.StatusOK, resp)
}

// SetTurn handles PUT /api/v1/rooms/{code}/turn
func (h *GameHandler) SetTurn(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.SetTurnRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	current, err := loadHostedGame(r.Context(), h.gameController, gameID(r), session.UserID)
	if err != nil {
		apierr.WriteGameError(w, err, current)
		return
	}

	playerID := model.PlayerID(strings.TrimSpace(req.PlayerID))
	if _, ok := current.Players[playerID]; !ok || current.IsHost(playerID) {
		apierr.WriteGameError(w, model.ErrPlayerNotFound, current)
		return
	}

	g, err := h.gameController.SetTurn(r.Context(), current.ID, playerID)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// RequestWord handles POST /api/v1/rooms/{code}/requests
func (h *GameHandler) RequestWord(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.WordRequestRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.Index == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("index is required"))
		return
	}

	current, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if current.IsHost(session.UserID) {
		apierr.WriteGameError(w, apierr.NewInvalidRequestError("the host has no board to request words for"), current)
		return
	}
	if current.Status != model.GameStatusPlaying {
		apierr.WriteGameError(w, model.ErrGameNotInPlay, current)
		return
	}
	if index := *req.Index; index < 0 || index >= current.CellCount() {
		apierr.WriteGameError(w, apierr.NewInvalidRequestError("index is outside the board"), current)
		return
	}

	g, err := h.gameController.RequestWordApproval(r.Context(), current.ID, session.UserID, strings.TrimSpace(req.Word), *req.Index)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	response.JSON(w, http.StatusCreated, g)
}

// ResolveRequest handles POST /api/v1/rooms/{code}/requests/{request_id}
func (h *GameHandler) ResolveRequest(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	requestID := mux.Vars(r)["request_id"]

	var req request.ResolveRequestRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	current, err := loadHostedGame(r.Context(), h.gameController, gameID(r), session.UserID)
	if err != nil {
		apierr.WriteGameError(w, err, current)
		return
	}
	if current.Status != model.GameStatusPlaying {
		apierr.WriteGameError(w, model.ErrGameNotInPlay, current)
		return
	}

	g, err := h.gameController.ResolveWordRequest(r.Context(), current.ID, requestID, req.Approve)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	h.logger.Debug("word request resolved",
		slog.String("game_id", string(g.ID)),
		slog.String("request_id", requestID),
		slog.Bool("approved", req.Approve),
	)

	response.JSON(w, http.StatusOK, g)
}

// Standings handles GET /api/v1/rooms/{code}/standings
func (h *GameHandler) Standings(w http.ResponseWriter, r *http.Request) {
	g, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StandingsFromModel(g, h.scoringService.Standings(g)))
}
