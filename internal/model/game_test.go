package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *Game {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	turn := PlayerID("p2")
	return &Game{
		ID:       GameIDFromRoomCode("ABCDE"),
		HostID:   "host",
		RoomCode: "ABCDE",
		Size:     2,
		Status:   GameStatusPlaying,
		Players: map[PlayerID]Player{
			"host": NewPlayer("host", "Host", base),
			"p2":   {ID: "p2", Nickname: "Bob", Board: []string{"a", "b", "c", "d"}, Marked: []bool{true, false, false, false}, JoinedAt: base.Add(2 * time.Minute)},
			"p1":   {ID: "p1", Nickname: "Alice", Board: []string{"e", "f", "g", "h"}, Marked: make([]bool, 4), JoinedAt: base.Add(time.Minute)},
		},
		CalledWords: []string{"a"},
		Turn:        &turn,
		Winners:     []string{},
	}
}

func TestGameIDFromRoomCode(t *testing.T) {
	id := GameIDFromRoomCode("abcde")
	assert.Equal(t, GameID("game:ABCDE"), id)
	assert.Equal(t, RoomCode("ABCDE"), id.RoomCode())
}

func TestNonHostPlayerIDsOrderedByJoin(t *testing.T) {
	g := testGame()
	assert.Equal(t, []PlayerID{"p1", "p2"}, g.NonHostPlayerIDs())
}

func TestRotationOrderPrefersTurnOrder(t *testing.T) {
	g := testGame()
	g.TurnOrder = []PlayerID{"p2", "p1"}
	assert.Equal(t, []PlayerID{"p2", "p1"}, g.RotationOrder())
}

func TestCloneIsIndependent(t *testing.T) {
	g := testGame()
	c := g.Clone()

	p := c.Players["p2"]
	p.Marked[1] = true
	p.Board[0] = "z"
	c.Players["p2"] = p
	c.CalledWords = append(c.CalledWords, "b")
	*c.Turn = "p1"
	c.Winners = append(c.Winners, "Bob")

	require.Len(t, g.CalledWords, 1)
	assert.False(t, g.Players["p2"].Marked[1])
	assert.Equal(t, "a", g.Players["p2"].Board[0])
	assert.True(t, g.IsTurn("p2"))
	assert.Empty(t, g.Winners)
}

func TestWordRequestID(t *testing.T) {
	assert.Equal(t, "user_1-7", WordRequestID("user_1", 7))
}

func TestLastCalledWord(t *testing.T) {
	g := testGame()
	assert.Equal(t, "a", g.LastCalledWord())
	g.CalledWords = nil
	assert.Equal(t, "", g.LastCalledWord())
}

func TestPlayerIDsIncludesHostInJoinOrder(t *testing.T) {
	g := testGame()
	assert.Equal(t, []PlayerID{"host", "p1", "p2"}, g.PlayerIDs())
}

func TestNonHostPlayerIDsTieBreaksOnID(t *testing.T) {
	g := testGame()
	p := g.Players["p2"]
	p.JoinedAt = g.Players["p1"].JoinedAt
	g.Players["p2"] = p
	assert.Equal(t, []PlayerID{"p1", "p2"}, g.NonHostPlayerIDs())
}
