package board

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordbingo/internal/dependencies/random"
	"github.com/mcoot/wordbingo/internal/model"
)

const (
	MinSize = 2
	MaxSize = 7
)

// SampleWords fill boards when a room has no usable word list. There are
// enough for the largest board.
var SampleWords = []string{
	"apple", "banana", "cherry", "grape", "lemon", "mango", "melon",
	"peach", "pear", "plum", "kiwi", "lime", "fig", "date",
	"river", "ocean", "forest", "desert", "island", "valley", "canyon",
	"tiger", "eagle", "whale", "zebra", "panda", "otter", "koala",
	"piano", "violin", "guitar", "drum", "flute", "harp", "trumpet",
	"rocket", "planet", "comet", "galaxy", "meteor", "orbit", "nebula",
	"castle", "bridge", "tower", "harbor", "garden", "market", "temple",
}

// Service provides board checks and random boards
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new board Service
func New(rnd random.Random, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		random: rnd,
		logger: logger,
	}
}

// ValidateSettings checks room settings before a room is created
func ValidateSettings(size, winCondition, endCondition int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: size must be between %d and %d", model.ErrInvalidSettings, MinSize, MaxSize)
	}
	if maxLines := 2*size + 2; winCondition < 1 || winCondition > maxLines {
		return fmt.Errorf("%w: win condition must be between 1 and %d", model.ErrInvalidSettings, maxLines)
	}
	if endCondition < 1 {
		return fmt.Errorf("%w: end condition must be at least 1", model.ErrInvalidSettings)
	}
	return nil
}

// ValidateBoard checks that a board fills every cell with a distinct word.
// Words are compared trimmed and case-insensitively, as calls match them.
func ValidateBoard(words []string, size int) error {
	if len(words) != size*size {
		return fmt.Errorf("%w: expected %d words, got %d", model.ErrInvalidBoard, size*size, len(words))
	}

	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" {
			return fmt.Errorf("%w: cell %d is empty", model.ErrInvalidBoard, i)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q appears more than once", model.ErrInvalidBoard, strings.TrimSpace(w))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ParseWordList splits a comma or newline separated list, trimming words
// and dropping blanks and repeats
func ParseWordList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	return distinctWords(fields)
}

// distinctWords trims words and keeps the first of any that ValidateBoard
// would treat as equal
func distinctWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		key := strings.ToLower(w)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}

// RandomFill returns a shuffled board for the game. The room's own word
// list is used when random fill is enabled and it covers the board.
func (s *Service) RandomFill(game *model.Game) ([]string, error) {
	cells := game.CellCount()

	pool := SampleWords
	if game.IsRandomFillEnabled {
		if own := distinctWords(game.RandomWords); len(own) >= cells {
			pool = own
		}
	}
	if len(pool) < cells {
		return nil, fmt.Errorf("%w: only %d words available for %d cells", model.ErrInvalidBoard, len(pool), cells)
	}

	words := append([]string(nil), pool...)
	s.random.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	s.logger.Debug("random board generated",
		slog.String("game_id", string(game.ID)),
		slog.Int("pool_size", len(pool)),
	)

	return words[:cells], nil
}
