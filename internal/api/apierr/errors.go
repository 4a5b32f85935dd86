package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError. Game carries the latest known state of
// the room when the failure happened, so clients can resync.
type ErrorResponse struct {
	Error APIError    `json:"error"`
	Game  *model.Game `json:"game"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidBoard       = "INVALID_BOARD"
	CodeInvalidSettings    = "INVALID_SETTINGS"
	CodeInvalidNickname    = "INVALID_NICKNAME"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotHost            = "NOT_HOST"
	CodeGameBusy           = "GAME_BUSY"
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeNicknameTaken      = "NICKNAME_TAKEN"
	CodeGameStarted        = "GAME_ALREADY_STARTED"
	CodeGameNotInPlay      = "GAME_NOT_IN_PLAY"
	CodePlayersNotReady    = "PLAYERS_NOT_READY"
	CodeNotEnoughPlayers   = "NOT_ENOUGH_PLAYERS"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeRoomCodesExhausted = "ROOM_CODES_EXHAUSTED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response with no game attached
func WriteError(w http.ResponseWriter, err error) {
	WriteGameError(w, err, nil)
}

// WriteGameError writes an error response carrying the game snapshot
func WriteGameError(w http.ResponseWriter, err error, game *model.Game) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError, Game: game})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrLockBusy):
		return newHTTPError(http.StatusConflict, CodeGameBusy, err)
	case errors.Is(err, model.ErrGameNotFound), errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, model.ErrRoomNotFound.Error()}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return newHTTPError(http.StatusNotFound, CodePlayerNotFound, err)
	case errors.Is(err, model.ErrNotHost):
		return newHTTPError(http.StatusForbidden, CodeNotHost, err)
	case errors.Is(err, model.ErrNicknameTaken):
		return newHTTPError(http.StatusConflict, CodeNicknameTaken, err)
	case errors.Is(err, model.ErrGameAlreadyStarted):
		return newHTTPError(http.StatusConflict, CodeGameStarted, err)
	case errors.Is(err, model.ErrGameNotInPlay):
		return newHTTPError(http.StatusConflict, CodeGameNotInPlay, err)
	case errors.Is(err, model.ErrPlayersNotReady):
		return newHTTPError(http.StatusConflict, CodePlayersNotReady, err)
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return newHTTPError(http.StatusConflict, CodeNotEnoughPlayers, err)
	case errors.Is(err, model.ErrDuplicateRequest):
		return newHTTPError(http.StatusConflict, CodeDuplicateRequest, err)
	case errors.Is(err, model.ErrRoomCodesExhausted):
		return newHTTPError(http.StatusServiceUnavailable, CodeRoomCodesExhausted, err)
	case errors.Is(err, model.ErrInvalidBoard):
		return newHTTPError(http.StatusBadRequest, CodeInvalidBoard, err)
	case errors.Is(err, model.ErrInvalidSettings):
		return newHTTPError(http.StatusBadRequest, CodeInvalidSettings, err)

	case errors.Is(err, auth.ErrInvalidSession):
		return newHTTPError(http.StatusUnauthorized, CodeUnauthorized, err)
	case errors.Is(err, auth.ErrInvalidNickname):
		return newHTTPError(http.StatusBadRequest, CodeInvalidNickname, err)

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// newHTTPError keeps the error text, which includes any wrapped detail
func newHTTPError(status int, code string, err error) *httpError {
	return &httpError{status, APIError{code, err.Error()}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
