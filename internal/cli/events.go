package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <code>",
		Short: "Stream SSE events from a room",
		Long: `Connect to the room's SSE endpoint and stream events in real-time.
Every event carries the full room state.

Events include:
  - snapshot: Sent once on connect
  - player_joined: A player joined the room
  - board_submitted: A player submitted a board
  - game_started: The host started the game
  - word_called: A word was called
  - turn_changed: The host moved the turn
  - word_requested: A player asked for a cell to be marked
  - request_resolved: The host approved or denied a request
  - game_finished: Enough players have won

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			return streamEvents(code, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(roomCode string, jsonOutput bool) error {
	target := strings.TrimSuffix(cfg.ServerURL, "/") + roomPath(roomCode, "events")

	// Create request
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	req = req.WithContext(ctx)

	// Make request
	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Code != "" {
			return &RequestError{Status: resp.StatusCode, APIError: errResp.Error, Game: errResp.Game}
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Connected to room %s\n", strings.ToUpper(roomCode))
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	// A 7x7 room snapshot can exceed the default 64KB line limit
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" {
				data := strings.Join(dataLines, "\n")
				printEvent(currentEvent, data, jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func printEvent(event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
	} else {
		timestamp := now.Format("2006-01-02 15:04:05")
		fmt.Printf("[%s] %s: %s\n", timestamp, event, summarizeEvent(data))
	}
}

// summarizeEvent condenses an event payload to one line
func summarizeEvent(data string) string {
	var payload struct {
		Game Game `json:"game"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil || payload.Game.RoomCode == "" {
		if len(data) > 100 {
			data = data[:100] + "..."
		}
		return strings.ReplaceAll(data, "\n", " ")
	}

	g := payload.Game
	parts := []string{
		fmt.Sprintf("status=%s", g.Status),
		fmt.Sprintf("players=%d", len(g.Players)),
	}
	if g.Turn != nil {
		if p, ok := g.Players[*g.Turn]; ok {
			parts = append(parts, "turn="+p.Nickname)
		}
	}
	if n := len(g.CalledWords); n > 0 {
		parts = append(parts, "last="+g.CalledWords[n-1])
	}
	if len(g.Winners) > 0 {
		parts = append(parts, "winners="+strings.Join(g.Winners, ","))
	}
	if len(g.WordRequests) > 0 {
		parts = append(parts, fmt.Sprintf("requests=%d", len(g.WordRequests)))
	}
	return strings.Join(parts, " ")
}
