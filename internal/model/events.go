package model

// EventType identifies the kind of change pushed to room subscribers
type EventType string

const (
	EventSnapshot        EventType = "snapshot" // Sent once when a subscriber connects
	EventPlayerJoined    EventType = "player_joined"
	EventBoardSubmitted  EventType = "board_submitted"
	EventGameStarted     EventType = "game_started"
	EventWordCalled      EventType = "word_called"
	EventTurnChanged     EventType = "turn_changed"
	EventWordRequested   EventType = "word_requested"
	EventRequestResolved EventType = "request_resolved"
	EventGameFinished    EventType = "game_finished"
)
