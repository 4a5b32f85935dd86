package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/testutil"
)

type generatorFunc func(ctx context.Context, in Input) (string, error)

func (f generatorFunc) Generate(ctx context.Context, in Input) (string, error) {
	return f(ctx, in)
}

var sampleInput = Input{
	PlayerName:       "Alice",
	BingoCount:       1,
	IsWinner:         false,
	CalledWord:       "apple",
	RemainingPlayers: 3,
	WinCondition:     2,
}

func TestServiceReturnsGeneratedText(t *testing.T) {
	svc := NewService(generatorFunc(func(ctx context.Context, in Input) (string, error) {
		return "  Nice one, " + in.PlayerName + "!  ", nil
	}), time.Second, testutil.NopLogger())

	assert.Equal(t, "Nice one, Alice!", svc.Generate(context.Background(), sampleInput))
}

func TestServiceFallsBackOnError(t *testing.T) {
	svc := NewService(generatorFunc(func(ctx context.Context, in Input) (string, error) {
		return "", errors.New("model unavailable")
	}), time.Second, testutil.NopLogger())

	assert.Equal(t, Fallback, svc.Generate(context.Background(), sampleInput))
}

func TestServiceFallsBackOnEmptyText(t *testing.T) {
	svc := NewService(generatorFunc(func(ctx context.Context, in Input) (string, error) {
		return "   ", nil
	}), time.Second, testutil.NopLogger())

	assert.Equal(t, Fallback, svc.Generate(context.Background(), sampleInput))
}

func TestServiceFallsBackOnTimeout(t *testing.T) {
	svc := NewService(generatorFunc(func(ctx context.Context, in Input) (string, error) {
		<-ctx.Done()
		return "too late", ctx.Err()
	}), 10*time.Millisecond, testutil.NopLogger())

	assert.Equal(t, Fallback, svc.Generate(context.Background(), sampleInput))
}

func TestServiceWithoutGenerator(t *testing.T) {
	svc := NewService(nil, 0, testutil.NopLogger())
	assert.Equal(t, Fallback, svc.Generate(context.Background(), sampleInput))
}

func TestPromptCarriesEveryField(t *testing.T) {
	prompt, err := Prompt(sampleInput)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Player name: Alice")
	assert.Contains(t, prompt, "Bingo count: 1")
	assert.Contains(t, prompt, "Is winner: false")
	assert.Contains(t, prompt, "Called word: apple")
	assert.Contains(t, prompt, "Remaining players: 3")
	assert.Contains(t, prompt, "Bingos needed to win: 2")
}

func TestStaticGenerator(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		contains string
	}{
		{"winner", Input{PlayerName: "Alice", IsWinner: true, BingoCount: 3}, "winner with 3 bingos"},
		{"one away", Input{PlayerName: "Alice", BingoCount: 1, WinCondition: 2}, "one more bingo"},
		{"two players", Input{PlayerName: "Alice", RemainingPlayers: 2, WinCondition: 3}, "two players left"},
		{"progress", Input{PlayerName: "Alice", BingoCount: 1, WinCondition: 5, RemainingPlayers: 4}, "at 1 bingos"},
		{"opening", Input{PlayerName: "Alice", CalledWord: "pear", WinCondition: 5, RemainingPlayers: 4}, `"pear" is a great choice`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Static{}.Generate(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestInputForTurn(t *testing.T) {
	game := &model.Game{
		HostID:       "host",
		WinCondition: 3,
		Players: map[model.PlayerID]model.Player{
			"host": {ID: "host", Nickname: "Host"},
			"p1":   {ID: "p1", Nickname: "Alice", BingoCount: 3, IsWinner: true},
			"p2":   {ID: "p2", Nickname: "Bob", BingoCount: 1},
			"p3":   {ID: "p3", Nickname: "Carol"},
		},
	}

	in := InputForTurn(game, "p1", " apple ")

	assert.Equal(t, Input{
		PlayerName:       "Alice",
		BingoCount:       3,
		IsWinner:         true,
		CalledWord:       "apple",
		RemainingPlayers: 2,
		WinCondition:     3,
	}, in)
}

func TestOpenAIGenerator(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Way to go, Alice!"},
			}},
		})
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"})

	text, err := gen.Generate(context.Background(), sampleInput)
	require.NoError(t, err)
	assert.Equal(t, "Way to go, Alice!", text)

	assert.Equal(t, "test-model", received.Model)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, received.Messages[0].Role)
	assert.Contains(t, received.Messages[1].Content, "Called word: apple")
}

func TestOpenAIGeneratorErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded","type":"server_error"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	_, err := gen.Generate(context.Background(), sampleInput)
	require.Error(t, err)

	svc := NewService(gen, time.Second, testutil.NopLogger())
	assert.Equal(t, Fallback, svc.Generate(context.Background(), sampleInput))
}

func TestOpenAIGeneratorNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	_, err := gen.Generate(context.Background(), sampleInput)
	assert.ErrorIs(t, err, errEmptyResponse)
}
