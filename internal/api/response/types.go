package response

import (
	"time"

	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/auth"
)

// SessionResponse is returned when a session is created
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionFromAuth converts an auth.Session to a SessionResponse
func SessionFromAuth(s *auth.Session) SessionResponse {
	return SessionResponse{
		UserID:    string(s.UserID),
		Nickname:  s.Nickname,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

// CallResponse is returned after a word is called. Feedback is empty when
// the call did not change the game.
type CallResponse struct {
	Game     *model.Game `json:"game"`
	Feedback string      `json:"feedback,omitempty"`
}

// BoardResponse carries a suggested board
type BoardResponse struct {
	Size  int      `json:"size"`
	Words []string `json:"words"`
}

// StandingsResponse is the ranking of a room's players
type StandingsResponse struct {
	RoomCode  string           `json:"room_code"`
	Status    string           `json:"status"`
	Winners   []string         `json:"winners"`
	Standings []model.Standing `json:"standings"`
}

// StandingsFromModel builds a StandingsResponse for game
func StandingsFromModel(game *model.Game, standings []model.Standing) StandingsResponse {
	winners := game.Winners
	if winners == nil {
		winners = []string{}
	}
	return StandingsResponse{
		RoomCode:  string(game.RoomCode),
		Status:    string(game.Status),
		Winners:   winners,
		Standings: standings,
	}
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
