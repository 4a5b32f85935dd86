package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/wordbingo/internal/api/apierr"
	"github.com/mcoot/wordbingo/internal/api/middleware"
	"github.com/mcoot/wordbingo/internal/api/request"
	"github.com/mcoot/wordbingo/internal/api/response"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/auth"
	"github.com/mcoot/wordbingo/internal/services/board"
	"github.com/mcoot/wordbingo/internal/services/game"
)

// RoomHandler handles room setup: creation, joining, boards and start
type RoomHandler struct {
	gameController *game.Controller
	boardService   *board.Service
	logger         *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(gameController *game.Controller, boardService *board.Service, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		gameController: gameController,
		boardService:   boardService,
		logger:         logger,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.CreateRoomRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := board.ValidateSettings(req.Size, req.WinCondition, req.EndCondition); err != nil {
		apierr.WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateRoom(r.Context(), game.CreateRoomParams{
		HostID:              session.UserID,
		HostNickname:        session.Nickname,
		Topic:               strings.TrimSpace(req.Topic),
		Size:                req.Size,
		WinCondition:        req.WinCondition,
		EndCondition:        req.EndCondition,
		IsRandomFillEnabled: req.RandomFill,
		RandomWords:         board.ParseWordList(req.RandomWords),
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, g)
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.JoinRoomRequest
	if err := decode(w, r, &req, true); err != nil {
		apierr.WriteError(w, err)
		return
	}

	nickname := req.Nickname
	if strings.TrimSpace(nickname) == "" {
		nickname = session.Nickname
	}
	nickname, err := auth.NormalizeNickname(nickname)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	g, err := h.gameController.JoinRoom(r.Context(), gameID(r).RoomCode(), session.UserID, nickname)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// SubmitBoard handles POST /api/v1/rooms/{code}/board
func (h *RoomHandler) SubmitBoard(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.SubmitBoardRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	current, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if current.IsHost(session.UserID) {
		apierr.WriteGameError(w, apierr.NewInvalidRequestError("the host does not play a board"), current)
		return
	}
	if current.Status != model.GameStatusWaiting {
		apierr.WriteGameError(w, model.ErrGameAlreadyStarted, current)
		return
	}
	if err := board.ValidateBoard(req.Words, current.Size); err != nil {
		apierr.WriteGameError(w, err, current)
		return
	}

	words := make([]string, len(req.Words))
	for i, word := range req.Words {
		words[i] = strings.TrimSpace(word)
	}

	g, err := h.gameController.SubmitBoard(r.Context(), current.ID, session.UserID, words)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// RandomBoard handles GET /api/v1/rooms/{code}/board/random. The board
// is only suggested; the player still submits it.
func (h *RoomHandler) RandomBoard(w http.ResponseWriter, r *http.Request) {
	g, err := loadGame(r.Context(), h.gameController, gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	words, err := h.boardService.RandomFill(g)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	response.JSON(w, http.StatusOK, response.BoardResponse{Size: g.Size, Words: words})
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	current, err := loadHostedGame(r.Context(), h.gameController, gameID(r), session.UserID)
	if err != nil {
		apierr.WriteGameError(w, err, current)
		return
	}

	g, err := h.gameController.StartGame(r.Context(), current.ID)
	if err != nil {
		apierr.WriteGameError(w, err, g)
		return
	}

	h.logger.Debug("game started via api",
		slog.String("game_id", string(g.ID)),
		slog.Int("players", len(g.TurnOrder)),
	)

	response.JSON(w, http.StatusOK, g)
}
