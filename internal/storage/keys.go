package storage

import (
	"fmt"

	"github.com/mcoot/wordbingo/internal/model"
)

// Key generation functions for each entity type

// GameKey returns the key for a Game record (game:<ROOMCODE>)
func GameKey(id model.GameID) string {
	return string(model.GameIDFromRoomCode(id.RoomCode()))
}

// LockKey returns the key for a game's lock (lock:game:<ROOMCODE>)
func LockKey(id model.GameID) string {
	return fmt.Sprintf("lock:%s", GameKey(id))
}
