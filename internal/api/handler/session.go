package handler

import (
	"net/http"

	"github.com/mcoot/wordbingo/internal/api/apierr"
	"github.com/mcoot/wordbingo/internal/api/request"
	"github.com/mcoot/wordbingo/internal/api/response"
	"github.com/mcoot/wordbingo/internal/services/auth"
)

// SessionHandler issues sessions
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := decode(w, r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	session, err := h.authService.CreateSession(req.Nickname)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromAuth(session))
}
