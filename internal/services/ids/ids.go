package ids

import (
	"github.com/google/uuid"

	"github.com/mcoot/wordbingo/internal/dependencies/random"
	"github.com/mcoot/wordbingo/internal/model"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 5
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generator produces room codes and session ids
type Generator interface {
	NewRoomCode() model.RoomCode
	NewSessionID() string
}

// RandomGenerator draws room codes from a Random source and session ids from UUIDv4
type RandomGenerator struct {
	random random.Random
}

// Ensure RandomGenerator implements Generator
var _ Generator = (*RandomGenerator)(nil)

// New creates a generator backed by rnd
func New(rnd random.Random) *RandomGenerator {
	return &RandomGenerator{random: rnd}
}

// NewRoomCode returns a 5-character uppercase alphanumeric code.
// Uniqueness is checked by the caller against the store.
func (g *RandomGenerator) NewRoomCode() model.RoomCode {
	return model.RoomCode(g.random.String(RoomCodeLength, RoomCodeAlphabet))
}

// NewSessionID returns an opaque, globally unique session id
func (g *RandomGenerator) NewSessionID() string {
	return uuid.NewString()
}
