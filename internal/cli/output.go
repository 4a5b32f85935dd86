package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Game:
		o.printGame(v)
	case CallResult:
		o.printCallResult(v)
	case Board:
		o.printSuggestedBoard(v)
	case Standings:
		o.printStandings(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	UserID    string    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Game response type
type Game struct {
	ID                  string            `json:"id"`
	HostID              string            `json:"hostId"`
	RoomCode            string            `json:"roomCode"`
	Topic               string            `json:"topic"`
	Size                int               `json:"size"`
	WinCondition        int               `json:"winCondition"`
	EndCondition        int               `json:"endCondition"`
	IsRandomFillEnabled bool              `json:"isRandomFillEnabled"`
	Status              string            `json:"status"`
	Players             map[string]Player `json:"players"`
	CalledWords         []string          `json:"calledWords"`
	Turn                *string           `json:"turn"`
	TurnOrder           []string          `json:"turnOrder"`
	Winners             []string          `json:"winners"`
	WordRequests        []WordRequest     `json:"wordRequests"`
}

// Player response type
type Player struct {
	ID         string    `json:"id"`
	Nickname   string    `json:"nickname"`
	IsReady    bool      `json:"isReady"`
	Board      []string  `json:"board"`
	Marked     []bool    `json:"marked"`
	BingoCount int       `json:"bingoCount"`
	IsWinner   bool      `json:"isWinner"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// WordRequest response type
type WordRequest struct {
	RequestID string `json:"requestId"`
	UserID    string `json:"userId"`
	Nickname  string `json:"nickname"`
	Word      string `json:"word"`
	Index     int    `json:"index"`
}

// CallResult response type
type CallResult struct {
	Game     Game   `json:"game"`
	Feedback string `json:"feedback,omitempty"`
}

// Board is a suggested random board
type Board struct {
	Size  int      `json:"size"`
	Words []string `json:"words"`
}

// Standing is one ranked player
type Standing struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"playerId"`
	Nickname   string `json:"nickname"`
	BingoCount int    `json:"bingoCount"`
	IsWinner   bool   `json:"isWinner"`
}

// Standings response type
type Standings struct {
	RoomCode  string     `json:"room_code"`
	Status    string     `json:"status"`
	Winners   []string   `json:"winners"`
	Standings []Standing `json:"standings"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Nickname: %s\n", s.Nickname)
	fmt.Printf("User ID: %s\n", s.UserID)
	fmt.Printf("Expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("Token: %s\n", s.Token)
}

// orderedPlayers returns players in join order
func (g Game) orderedPlayers() []Player {
	players := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Room: %s\n", g.RoomCode)
	if g.Topic != "" {
		fmt.Printf("Topic: %s\n", g.Topic)
	}
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Board: %dx%d, %d line(s) to win, game ends after %d winner(s)\n",
		g.Size, g.Size, g.WinCondition, g.EndCondition)

	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.orderedPlayers() {
		var tags []string
		if p.ID == g.HostID {
			tags = append(tags, "host")
		} else if p.IsReady {
			tags = append(tags, "ready")
		}
		if g.Turn != nil && *g.Turn == p.ID {
			tags = append(tags, "turn")
		}
		if p.IsWinner {
			tags = append(tags, "winner")
		}
		tagStr := ""
		if len(tags) > 0 {
			tagStr = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("  - %s (%s) bingos: %d%s\n", p.Nickname, p.ID, p.BingoCount, tagStr)
	}

	if len(g.CalledWords) > 0 {
		fmt.Printf("Called: %s\n", strings.Join(g.CalledWords, ", "))
	}
	if len(g.Winners) > 0 {
		fmt.Printf("Winners: %s\n", strings.Join(g.Winners, ", "))
	}
	if len(g.WordRequests) > 0 {
		fmt.Println("Pending requests:")
		for _, r := range g.WordRequests {
			fmt.Printf("  - %s: %s wants %q at cell %d\n", r.RequestID, r.Nickname, r.Word, r.Index)
		}
	}

	for _, p := range g.orderedPlayers() {
		if len(p.Board) == 0 {
			continue
		}
		fmt.Printf("\nBoard (%s):\n", p.Nickname)
		o.printBoard(g.Size, p.Board, p.Marked)
	}
}

// printBoard renders a board with marked cells in brackets
func (o *Output) printBoard(size int, words []string, marked []bool) {
	if size <= 0 || len(words) != size*size {
		return
	}

	width := 0
	for _, w := range words {
		if len(w) > width {
			width = len(w)
		}
	}

	for row := 0; row < size; row++ {
		cells := make([]string, size)
		for col := 0; col < size; col++ {
			i := row*size + col
			cell := fmt.Sprintf(" %-*s ", width, words[i])
			if i < len(marked) && marked[i] {
				cell = fmt.Sprintf("[%-*s]", width, words[i])
			}
			cells[col] = cell
		}
		fmt.Printf("  %s\n", strings.Join(cells, " "))
	}
}

func (o *Output) printCallResult(c CallResult) {
	if c.Feedback != "" {
		fmt.Println(c.Feedback)
		fmt.Println()
	}
	o.printGame(c.Game)
}

func (o *Output) printSuggestedBoard(b Board) {
	o.printBoard(b.Size, b.Words, nil)
	fmt.Printf("\nWords: %s\n", strings.Join(b.Words, ","))
}

func (o *Output) printStandings(s Standings) {
	fmt.Printf("Room: %s (%s)\n", s.RoomCode, s.Status)
	for _, st := range s.Standings {
		winner := ""
		if st.IsWinner {
			winner = " [winner]"
		}
		fmt.Printf("  %d. %s - %d bingo(s)%s\n", st.Rank, st.Nickname, st.BingoCount, winner)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Printf("Storage: %s\n", h.Storage)
	}
}
