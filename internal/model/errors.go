package model

import "errors"

// Common errors used across the application. Messages are shown to players.
var (
	// Storage errors
	ErrKeyNotFound = errors.New("key not found")

	// Lock errors
	ErrLockBusy = errors.New("game is busy, try again")

	// Room errors
	ErrGameNotFound       = errors.New("game not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrNicknameTaken      = errors.New("nickname is already taken")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameNotInPlay      = errors.New("game is not in play")
	ErrNotHost            = errors.New("only the host can perform this action")
	ErrRoomCodesExhausted = errors.New("could not allocate a free room code")

	// Start errors
	ErrPlayersNotReady  = errors.New("every player must submit a board before starting")
	ErrNotEnoughPlayers = errors.New("at least one player besides the host is required")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Word request errors
	ErrDuplicateRequest = errors.New("this word has already been requested")

	// Board errors
	ErrInvalidBoard    = errors.New("invalid board")
	ErrInvalidSettings = errors.New("invalid room settings")
)
