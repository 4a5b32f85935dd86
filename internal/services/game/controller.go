package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordbingo/internal/dependencies/clock"
	"github.com/mcoot/wordbingo/internal/dependencies/random"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/bingo"
	"github.com/mcoot/wordbingo/internal/services/ids"
	"github.com/mcoot/wordbingo/internal/services/lock"
	"github.com/mcoot/wordbingo/internal/storage"
)

// maxRoomCodeAttempts bounds room code generation when codes collide
const maxRoomCodeAttempts = 10

// errUnchanged aborts a mutation without writing and without an error
var errUnchanged = errors.New("unchanged")

// Notifier is told about every persisted change to a game
type Notifier interface {
	GameUpdated(event model.EventType, game *model.Game)
}

// CreateRoomParams holds the host's choices for a new room
type CreateRoomParams struct {
	HostID              model.PlayerID
	HostNickname        string
	Topic               string
	Size                int
	WinCondition        int
	EndCondition        int
	IsRandomFillEnabled bool
	RandomWords         []string
}

// Controller is the game state machine. Every mutation runs under the
// game's lock against a fresh copy of the stored record, which is then
// replaced wholesale.
type Controller struct {
	games    *storage.Games
	lock     *lock.GameLock
	ids      ids.Generator
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	notifier Notifier
}

// NewController creates a new game Controller
func NewController(
	games *storage.Games,
	gameLock *lock.GameLock,
	idGen ids.Generator,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		games:  games,
		lock:   gameLock,
		ids:    idGen,
		clock:  clock,
		random: random,
		logger: logger.With(slog.String("component", "game")),
	}
}

// SetNotifier registers a receiver for game updates
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// CreateRoom creates a waiting game with the host as its only player
func (c *Controller) CreateRoom(ctx context.Context, params CreateRoomParams) (*model.Game, error) {
	code, err := c.allocateRoomCode(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:                  model.GameIDFromRoomCode(code),
		HostID:              params.HostID,
		RoomCode:            code,
		Topic:               params.Topic,
		Size:                params.Size,
		WinCondition:        params.WinCondition,
		EndCondition:        params.EndCondition,
		IsRandomFillEnabled: params.IsRandomFillEnabled,
		RandomWords:         append([]string{}, params.RandomWords...),
		Status:              model.GameStatusWaiting,
		Players: map[model.PlayerID]model.Player{
			params.HostID: model.NewPlayer(params.HostID, params.HostNickname, now),
		},
		CalledWords:  []string{},
		TurnOrder:    []model.PlayerID{},
		Winners:      []string{},
		WordRequests: []model.WordRequest{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.games.Save(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("game_id", string(game.ID)),
		slog.String("host_id", string(params.HostID)),
		slog.Int("size", params.Size),
		slog.Int("win_condition", params.WinCondition),
		slog.Int("end_condition", params.EndCondition),
	)

	return game, nil
}

func (c *Controller) allocateRoomCode(ctx context.Context) (model.RoomCode, error) {
	for attempt := 0; attempt < maxRoomCodeAttempts; attempt++ {
		code := model.RoomCode(strings.ToUpper(string(c.ids.NewRoomCode())))
		if code == "" {
			continue
		}
		exists, err := c.games.Exists(ctx, model.GameIDFromRoomCode(code))
		if err != nil {
			return "", fmt.Errorf("check room code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", model.ErrRoomCodesExhausted
}

// JoinRoom adds a player to a waiting game. Joining again with the same
// user id returns the game unchanged.
func (c *Controller) JoinRoom(ctx context.Context, roomCode model.RoomCode, userID model.PlayerID, nickname string) (*model.Game, error) {
	gameID := model.GameIDFromRoomCode(roomCode)

	game, err := c.mutate(ctx, "join_room", model.EventPlayerJoined, gameID, func(game *model.Game) error {
		if _, ok := game.Players[userID]; ok {
			return errUnchanged
		}
		if game.HasNickname(nickname) {
			return model.ErrNicknameTaken
		}
		if game.Status != model.GameStatusWaiting {
			return model.ErrGameAlreadyStarted
		}

		game.Players[userID] = model.NewPlayer(userID, nickname, c.clock.Now())
		return nil
	})
	if errors.Is(err, model.ErrGameNotFound) {
		return nil, model.ErrRoomNotFound
	}
	return game, err
}

// GetGame reads a game without taking the lock
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.games.Get(ctx, gameID)
}

// SubmitBoard installs the player's board as given and marks them ready.
// Board contents are validated by the caller.
func (c *Controller) SubmitBoard(ctx context.Context, gameID model.GameID, userID model.PlayerID, words []string) (*model.Game, error) {
	return c.mutate(ctx, "submit_board", model.EventBoardSubmitted, gameID, func(game *model.Game) error {
		player, ok := game.Players[userID]
		if !ok {
			return model.ErrPlayerNotFound
		}

		player.Board = append([]string{}, words...)
		player.Marked = make([]bool, game.CellCount())
		player.BingoCount = 0
		player.IsReady = true
		game.Players[userID] = player
		return nil
	})
}

// StartGame moves a waiting game to playing once every non-host player
// has a board. Turn order is a uniform shuffle of the non-host players.
func (c *Controller) StartGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.mutate(ctx, "start_game", model.EventGameStarted, gameID, func(game *model.Game) error {
		if game.Status != model.GameStatusWaiting {
			return model.ErrGameAlreadyStarted
		}

		order := game.NonHostPlayerIDs()
		for _, id := range order {
			if !game.Players[id].IsReady {
				return model.ErrPlayersNotReady
			}
		}
		if len(order) == 0 {
			return model.ErrNotEnoughPlayers
		}

		c.random.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		first := order[0]
		game.TurnOrder = order
		game.Turn = &first
		game.Status = model.GameStatusPlaying
		return nil
	})
}

// CallWord records a word called by the player whose turn it is and marks
// every matching cell. Calls out of turn, with a blank word, or outside
// play return the game unchanged.
func (c *Controller) CallWord(ctx context.Context, gameID model.GameID, userID model.PlayerID, word string) (*model.Game, error) {
	return c.mutate(ctx, "call_word", model.EventWordCalled, gameID, func(game *model.Game) error {
		if game.Status != model.GameStatusPlaying || !game.IsTurn(userID) || strings.TrimSpace(word) == "" {
			return errUnchanged
		}

		game.CalledWords = append(game.CalledWords, word)

		for _, id := range game.PlayerIDs() {
			player := game.Players[id]
			if markMatching(&player, word) {
				c.recount(game, &player)
				game.Players[id] = player
			}
		}

		if c.finishIfDone(game) {
			return nil
		}
		advanceTurn(game)
		return nil
	})
}

// SetTurn hands the turn to playerID. Authorization is the caller's concern.
func (c *Controller) SetTurn(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.mutate(ctx, "set_turn", model.EventTurnChanged, gameID, func(game *model.Game) error {
		turn := playerID
		game.Turn = &turn
		return nil
	})
}

// RequestWordApproval queues a player's claim that the cell at index
// should be marked with word. One pending claim per player and cell,
// accepted only while the game is in play.
func (c *Controller) RequestWordApproval(ctx context.Context, gameID model.GameID, userID model.PlayerID, word string, index int) (*model.Game, error) {
	return c.mutate(ctx, "request_word", model.EventWordRequested, gameID, func(game *model.Game) error {
		player, ok := game.Players[userID]
		if !ok {
			return model.ErrPlayerNotFound
		}
		if game.Status != model.GameStatusPlaying {
			return model.ErrGameNotInPlay
		}

		requestID := model.WordRequestID(userID, index)
		if _, exists := game.FindWordRequest(requestID); exists {
			return model.ErrDuplicateRequest
		}

		game.WordRequests = append(game.WordRequests, model.WordRequest{
			RequestID: requestID,
			UserID:    userID,
			Nickname:  player.Nickname,
			Word:      word,
			Index:     index,
		})
		return nil
	})
}

// ResolveWordRequest removes a pending claim. An approved claim in a game
// that is in play marks the requested cell and applies the same winner
// logic as a called word. An unknown request id leaves the game unchanged.
func (c *Controller) ResolveWordRequest(ctx context.Context, gameID model.GameID, requestID string, approve bool) (*model.Game, error) {
	return c.mutate(ctx, "resolve_request", model.EventRequestResolved, gameID, func(game *model.Game) error {
		request, found := game.FindWordRequest(requestID)
		if !found {
			return errUnchanged
		}

		remaining := make([]model.WordRequest, 0, len(game.WordRequests))
		for _, r := range game.WordRequests {
			if r.RequestID != requestID {
				remaining = append(remaining, r)
			}
		}
		game.WordRequests = remaining

		if !approve || game.Status != model.GameStatusPlaying {
			return nil
		}

		player, ok := game.Players[request.UserID]
		if !ok || request.Index < 0 || request.Index >= len(player.Marked) {
			return nil
		}
		if !player.Marked[request.Index] {
			player.Marked[request.Index] = true
			c.recount(game, &player)
			game.Players[request.UserID] = player
		}

		c.finishIfDone(game)
		return nil
	})
}

// mutate is the shared lock, load, validate, write cycle. fn edits a clone
// of the stored game; returning an error leaves the store untouched.
//
// The returned game is the new value on success, the unmodified snapshot
// on a precondition failure or lock contention, and nil when the store
// itself failed.
func (c *Controller) mutate(
	ctx context.Context,
	op string,
	event model.EventType,
	gameID model.GameID,
	fn func(game *model.Game) error,
) (*model.Game, error) {
	var (
		result   *model.Game
		changed  bool
		finished bool
	)

	err := c.lock.WithLock(ctx, gameID, func(ctx context.Context) error {
		current, err := c.games.Get(ctx, gameID)
		if err != nil {
			return err
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			result = current
			if errors.Is(err, errUnchanged) {
				return nil
			}
			return err
		}

		next.UpdatedAt = c.clock.Now()
		if err := c.games.Save(ctx, next); err != nil {
			return err
		}
		result = next
		changed = true
		finished = current.Status != model.GameStatusFinished && next.Status == model.GameStatusFinished
		return nil
	})

	if errors.Is(err, model.ErrLockBusy) {
		c.logger.Debug("lock busy",
			slog.String("game_id", string(gameID)),
			slog.String("op", op),
		)
		return c.snapshot(ctx, gameID), err
	}
	if err != nil {
		if result == nil && !errors.Is(err, model.ErrGameNotFound) {
			c.logger.Error("game operation failed",
				slog.String("game_id", string(gameID)),
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
		}
		return result, err
	}

	if changed {
		c.logger.Info("game updated",
			slog.String("game_id", string(gameID)),
			slog.String("op", op),
			slog.String("status", string(result.Status)),
		)
		if finished {
			event = model.EventGameFinished
		}
		c.notify(event, result)
	}

	return result, nil
}

// snapshot is a best-effort unlocked read used when the lock is busy
func (c *Controller) snapshot(ctx context.Context, gameID model.GameID) *model.Game {
	game, err := c.games.Get(ctx, gameID)
	if err != nil {
		return nil
	}
	return game
}

func (c *Controller) notify(event model.EventType, game *model.Game) {
	if c.notifier == nil {
		return
	}
	c.notifier.GameUpdated(event, game)
}

// recount refreshes the player's bingo count and, the first time the win
// condition is reached, records them as a winner.
func (c *Controller) recount(game *model.Game, player *model.Player) {
	player.BingoCount = bingo.Count(player.Marked, game.Size)

	if player.IsWinner || player.BingoCount < game.WinCondition {
		return
	}

	now := c.clock.Now()
	player.IsWinner = true
	player.LastBingoAt = &now
	if !game.HasWinner(player.Nickname) {
		game.Winners = append(game.Winners, player.Nickname)
	}
}

// finishIfDone ends a game in play once enough players have won
func (c *Controller) finishIfDone(game *model.Game) bool {
	if game.Status == model.GameStatusPlaying && len(game.Winners) >= game.EndCondition {
		game.Status = model.GameStatusFinished
		return true
	}
	return false
}

// markMatching marks every unmarked cell equal to word, ignoring case and
// surrounding whitespace. It reports whether any mark changed.
func markMatching(player *model.Player, word string) bool {
	target := strings.TrimSpace(word)
	changed := false
	for i, cell := range player.Board {
		if i >= len(player.Marked) || player.Marked[i] {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(cell), target) {
			player.Marked[i] = true
			changed = true
		}
	}
	return changed
}

// advanceTurn moves to the next player in rotation, wrapping at the end.
// An unknown current turn restarts the rotation.
func advanceTurn(game *model.Game) {
	order := game.RotationOrder()
	if len(order) == 0 {
		return
	}

	current := -1
	if game.Turn != nil {
		for i, id := range order {
			if id == *game.Turn {
				current = i
				break
			}
		}
	}

	next := order[(current+1)%len(order)]
	game.Turn = &next
}
