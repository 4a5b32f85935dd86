package model

import (
	"fmt"
	"time"
)

// PlayerID uniquely identifies a participant (the session id of the user)
type PlayerID string

// Player represents a participant in one game
type Player struct {
	ID       PlayerID `json:"id"`
	Nickname string   `json:"nickname"`
	IsReady  bool     `json:"isReady"` // true once a board has been submitted

	Board  []string `json:"board"`  // Row-major, Size*Size words
	Marked []bool   `json:"marked"` // Parallel to Board

	BingoCount  int        `json:"bingoCount"` // Cached count of completed lines
	IsWinner    bool       `json:"isWinner"`
	LastBingoAt *time.Time `json:"lastBingoTimestamp,omitempty"` // When WinCondition was first reached

	JoinedAt time.Time `json:"joinedAt"`
}

// NewPlayer creates a player with an empty board
func NewPlayer(id PlayerID, nickname string, joinedAt time.Time) Player {
	return Player{
		ID:       id,
		Nickname: nickname,
		Board:    []string{},
		Marked:   []bool{},
		JoinedAt: joinedAt,
	}
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	c := p
	c.Board = cloneSlice(p.Board)
	c.Marked = cloneSlice(p.Marked)
	if p.LastBingoAt != nil {
		t := *p.LastBingoAt
		c.LastBingoAt = &t
	}
	return c
}

// MarkedCount returns how many cells are marked
func (p Player) MarkedCount() int {
	n := 0
	for _, m := range p.Marked {
		if m {
			n++
		}
	}
	return n
}

// WordRequest is a pending claim that a board cell should be marked
type WordRequest struct {
	RequestID string   `json:"requestId"`
	UserID    PlayerID `json:"userId"`
	Nickname  string   `json:"nickname"`
	Word      string   `json:"word"`
	Index     int      `json:"index"`
}

// WordRequestID builds the request id for a player and cell. The id is
// deterministic so the same claim cannot be queued twice.
func WordRequestID(userID PlayerID, index int) string {
	return fmt.Sprintf("%s-%d", userID, index)
}

// Standing is one row of the final ranking
type Standing struct {
	Rank        int        `json:"rank"`
	PlayerID    PlayerID   `json:"playerId"`
	Nickname    string     `json:"nickname"`
	BingoCount  int        `json:"bingoCount"`
	IsWinner    bool       `json:"isWinner"`
	LastBingoAt *time.Time `json:"lastBingoTimestamp,omitempty"`
}
