package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/wordbingo/internal/api/response"
)

// Pinger is implemented by stores that can report their reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and, when possible, storage reachability
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler creates a health handler. pinger may be nil.
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Check handles GET /api/v1/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Storage: "memory"})
		return
	}

	if err := h.pinger.Ping(r.Context()); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.HealthResponse{Status: "degraded", Storage: "unreachable"})
		return
	}
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Storage: "redis"})
}
