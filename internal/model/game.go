package model

import (
	"sort"
	"strings"
	"time"
)

// GameID uniquely identifies a game. It doubles as the storage key.
type GameID string

// RoomCode is the short human-shareable identifier for joining a game
type RoomCode string

// GameIDPrefix prefixes every game id
const GameIDPrefix = "game:"

// GameIDFromRoomCode derives the game id for a room code
func GameIDFromRoomCode(code RoomCode) GameID {
	return GameID(GameIDPrefix + strings.ToUpper(string(code)))
}

// RoomCode returns the room code embedded in the id
func (id GameID) RoomCode() RoomCode {
	return RoomCode(strings.TrimPrefix(string(id), GameIDPrefix))
}

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Players joining and filling boards
	GameStatusPlaying  GameStatus = "playing"  // Players calling words in turn
	GameStatusFinished GameStatus = "finished" // Enough winners, terminal
)

// Game is the complete state of one bingo room
type Game struct {
	ID       GameID   `json:"id"`
	HostID   PlayerID `json:"hostId"`
	RoomCode RoomCode `json:"roomCode"`
	Topic    string   `json:"topic"`
	Size     int      `json:"size"`

	WinCondition int `json:"winCondition"` // Lines needed for a player to win
	EndCondition int `json:"endCondition"` // Winners needed to finish the game

	IsRandomFillEnabled bool     `json:"isRandomFillEnabled"`
	RandomWords         []string `json:"randomWords"`

	Status  GameStatus          `json:"status"`
	Players map[PlayerID]Player `json:"players"`

	CalledWords []string   `json:"calledWords"`
	Turn        *PlayerID  `json:"turn"`
	TurnOrder   []PlayerID `json:"turnOrder"` // Fixed when the game starts
	Winners     []string   `json:"winners"`   // Nicknames, first winner first

	WordRequests []WordRequest `json:"wordRequests"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CellCount returns the number of cells on every board in this game
func (g *Game) CellCount() int {
	return g.Size * g.Size
}

// IsHost returns true if the given player created the room
func (g *Game) IsHost(playerID PlayerID) bool {
	return g.HostID == playerID
}

// GetPlayer returns the player with the given ID
func (g *Game) GetPlayer(playerID PlayerID) (Player, bool) {
	p, ok := g.Players[playerID]
	return p, ok
}

// HasNickname returns true if any player already uses the nickname
func (g *Game) HasNickname(nickname string) bool {
	for _, p := range g.Players {
		if p.Nickname == nickname {
			return true
		}
	}
	return false
}

// PlayerIDs returns every participant, host included, in join order
func (g *Game) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := g.Players[ids[i]], g.Players[ids[j]]
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.ID < b.ID
	})
	return ids
}

// NonHostPlayerIDs returns every participant except the host, in join order
func (g *Game) NonHostPlayerIDs() []PlayerID {
	all := g.PlayerIDs()
	ids := make([]PlayerID, 0, len(all))
	for _, id := range all {
		if id != g.HostID {
			ids = append(ids, id)
		}
	}
	return ids
}

// RotationOrder returns the list turns cycle through
func (g *Game) RotationOrder() []PlayerID {
	if len(g.TurnOrder) > 0 {
		return g.TurnOrder
	}
	return g.NonHostPlayerIDs()
}

// IsTurn returns true if it is the given player's turn
func (g *Game) IsTurn(playerID PlayerID) bool {
	return g.Turn != nil && *g.Turn == playerID
}

// HasWinner returns true if the nickname is already among the winners
func (g *Game) HasWinner(nickname string) bool {
	for _, w := range g.Winners {
		if w == nickname {
			return true
		}
	}
	return false
}

// WinnerRank returns the 0-indexed position of the nickname in Winners, or -1
func (g *Game) WinnerRank(nickname string) int {
	for i, w := range g.Winners {
		if w == nickname {
			return i
		}
	}
	return -1
}

// FindWordRequest returns the pending request with the given id
func (g *Game) FindWordRequest(requestID string) (WordRequest, bool) {
	for _, r := range g.WordRequests {
		if r.RequestID == requestID {
			return r, true
		}
	}
	return WordRequest{}, false
}

// LastCalledWord returns the most recently called word, or "" if none
func (g *Game) LastCalledWord() string {
	if len(g.CalledWords) == 0 {
		return ""
	}
	return g.CalledWords[len(g.CalledWords)-1]
}

// Clone returns a deep copy that shares no maps or slices with g
func (g *Game) Clone() *Game {
	c := *g

	c.RandomWords = cloneSlice(g.RandomWords)
	c.CalledWords = cloneSlice(g.CalledWords)
	c.TurnOrder = cloneSlice(g.TurnOrder)
	c.Winners = cloneSlice(g.Winners)
	c.WordRequests = cloneSlice(g.WordRequests)

	if g.Turn != nil {
		turn := *g.Turn
		c.Turn = &turn
	}

	c.Players = make(map[PlayerID]Player, len(g.Players))
	for id, p := range g.Players {
		c.Players[id] = p.Clone()
	}

	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
