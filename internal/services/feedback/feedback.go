package feedback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mcoot/wordbingo/internal/model"
)

// Fallback is shown whenever no feedback could be generated
const Fallback = "Great move!"

// DefaultTimeout bounds a single generation request
const DefaultTimeout = 5 * time.Second

// Input describes the turn that just ended
type Input struct {
	PlayerName       string `json:"playerName"`
	BingoCount       int    `json:"bingoCount"`
	IsWinner         bool   `json:"isWinner"`
	CalledWord       string `json:"calledWord"`
	RemainingPlayers int    `json:"remainingPlayers"`
	WinCondition     int    `json:"winCondition"`
}

// InputForTurn describes playerID's call of word in game. Remaining
// players are the non-host players who have not yet won.
func InputForTurn(game *model.Game, playerID model.PlayerID, word string) Input {
	player := game.Players[playerID]

	remaining := 0
	for _, id := range game.NonHostPlayerIDs() {
		if !game.Players[id].IsWinner {
			remaining++
		}
	}

	return Input{
		PlayerName:       player.Nickname,
		BingoCount:       player.BingoCount,
		IsWinner:         player.IsWinner,
		CalledWord:       strings.TrimSpace(word),
		RemainingPlayers: remaining,
		WinCondition:     game.WinCondition,
	}
}

// Generator produces a short encouraging message for a turn
type Generator interface {
	Generate(ctx context.Context, in Input) (string, error)
}

// Service wraps a Generator so callers always get a message
type Service struct {
	generator Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewService creates a feedback service. A nil generator always yields the fallback.
func NewService(generator Generator, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "feedback")),
	}
}

// Generate returns feedback for the turn, or Fallback on any failure
func (s *Service) Generate(ctx context.Context, in Input) string {
	if s.generator == nil {
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, in)
	if err != nil {
		s.logger.Warn("feedback generation failed",
			slog.String("player", in.PlayerName),
			slog.String("error", err.Error()),
		)
		return Fallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Fallback
	}
	return text
}

var errEmptyResponse = errors.New("empty completion")

var promptTemplate = template.Must(template.New("prompt").Parse(
	`A player just finished their turn in a word bingo game.
- Player name: {{.PlayerName}}
- Bingo count: {{.BingoCount}}
- Is winner: {{.IsWinner}}
- Called word: {{.CalledWord}}
- Remaining players: {{.RemainingPlayers}}
- Bingos needed to win: {{.WinCondition}}

Reply with one short, positive, encouraging sentence for {{.PlayerName}} that fits their progress.`))

const systemPrompt = "You are a supportive, enthusiastic game master for a word bingo game."

// Prompt renders the user prompt for in
func Prompt(in Input) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OpenAIConfig configures an OpenAI-compatible chat completion backend
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIGenerator generates feedback with a chat completion model
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// Ensure OpenAIGenerator implements Generator
var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator creates a generator for cfg
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, in Input) (string, error) {
	prompt, err := Prompt(in)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   60,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Static returns canned messages chosen from the turn's progress.
// It is used when no model is configured.
type Static struct{}

// Ensure Static implements Generator
var _ Generator = Static{}

func (Static) Generate(ctx context.Context, in Input) (string, error) {
	switch {
	case in.IsWinner:
		return fmt.Sprintf("Great job, %s! You're a winner with %d bingos!", in.PlayerName, in.BingoCount), nil
	case in.WinCondition > 0 && in.BingoCount == in.WinCondition-1:
		return fmt.Sprintf("Nice call, %s! Just one more bingo to go!", in.PlayerName), nil
	case in.RemainingPlayers == 2:
		return fmt.Sprintf("Intense round, %s! Only two players left, make every word count!", in.PlayerName), nil
	case in.BingoCount > 0:
		return fmt.Sprintf("Good effort, %s! You're at %d bingos. Keep going!", in.PlayerName, in.BingoCount), nil
	default:
		return fmt.Sprintf("%s, %q is a great choice!", in.PlayerName, in.CalledWord), nil
	}
}
