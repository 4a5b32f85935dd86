package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordbingo/internal/api/handler"
	"github.com/mcoot/wordbingo/internal/api/middleware"
	requestlog "github.com/mcoot/wordbingo/internal/middleware"
	"github.com/mcoot/wordbingo/internal/services/auth"
	"github.com/mcoot/wordbingo/internal/services/board"
	"github.com/mcoot/wordbingo/internal/services/feedback"
	"github.com/mcoot/wordbingo/internal/services/game"
	"github.com/mcoot/wordbingo/internal/services/scoring"
	"github.com/mcoot/wordbingo/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	GameController  *game.Controller
	BoardService    *board.Service
	ScoringService  *scoring.Service
	FeedbackService *feedback.Service
	HubManager      *sse.HubManager
	Pinger          handler.Pinger // Optional storage health probe
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.GameController, cfg.BoardService, logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.ScoringService, cfg.FeedbackService, logger)
	eventsHandler := handler.NewEventsHandler(cfg.GameController, cfg.HubManager, logger)
	healthHandler := handler.NewHealthHandler(cfg.Pinger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(requestlog.Logging(logger))
	api.Use(middleware.Recovery(logger))

	// Unauthenticated routes
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	// Room routes (all require a session)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(middleware.Auth(cfg.AuthService))
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/board", roomHandler.SubmitBoard).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/board/random", roomHandler.RandomBoard).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/start", roomHandler.Start).Methods(http.MethodPost)

	// Play routes
	rooms.HandleFunc("/{code}/call", gameHandler.Call).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/turn", gameHandler.SetTurn).Methods(http.MethodPut)
	rooms.HandleFunc("/{code}/requests", gameHandler.RequestWord).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/requests/{request_id}", gameHandler.ResolveRequest).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/standings", gameHandler.Standings).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	return r
}
