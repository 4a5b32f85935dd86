package request

// CreateSessionRequest is the request body for starting a session
type CreateSessionRequest struct {
	Nickname string `json:"nickname"`
}

// CreateRoomRequest is the request body for creating a room. RandomWords
// is a comma or newline separated word list used for random boards.
type CreateRoomRequest struct {
	Topic        string `json:"topic"`
	Size         int    `json:"size"`
	WinCondition int    `json:"win_condition"`
	EndCondition int    `json:"end_condition"`
	RandomFill   bool   `json:"random_fill,omitempty"`
	RandomWords  string `json:"random_words,omitempty"`
}

// JoinRoomRequest is the request body for joining a room. An empty
// nickname falls back to the session's nickname.
type JoinRoomRequest struct {
	Nickname string `json:"nickname,omitempty"`
}

// SubmitBoardRequest is the request body for submitting a board
type SubmitBoardRequest struct {
	Words []string `json:"words"`
}

// CallWordRequest is the request body for calling a word
type CallWordRequest struct {
	Word string `json:"word"`
}

// SetTurnRequest is the request body for handing the turn to a player
type SetTurnRequest struct {
	PlayerID string `json:"player_id"`
}

// WordRequestRequest is the request body for asking the host to mark a cell
type WordRequestRequest struct {
	Word  string `json:"word"`
	Index *int   `json:"index"`
}

// ResolveRequestRequest is the request body for approving or denying a claim
type ResolveRequestRequest struct {
	Approve bool `json:"approve"`
}
