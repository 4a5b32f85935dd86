package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordbingo/internal/dependencies/mocks"
	"github.com/mcoot/wordbingo/internal/dependencies/random"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
}

// ValidateBoard tests

func (s *ServiceSuite) TestValidateBoardAcceptsDistinctWords() {
	s.NoError(ValidateBoard([]string{"apple", "pear", "plum", "fig"}, 2))
}

func (s *ServiceSuite) TestValidateBoardRejectsWrongCount() {
	err := ValidateBoard([]string{"apple", "pear", "plum"}, 2)
	s.ErrorIs(err, model.ErrInvalidBoard)
}

func (s *ServiceSuite) TestValidateBoardRejectsBlankCell() {
	err := ValidateBoard([]string{"apple", "  ", "plum", "fig"}, 2)
	s.ErrorIs(err, model.ErrInvalidBoard)
	s.Contains(err.Error(), "cell 1")
}

func (s *ServiceSuite) TestValidateBoardRejectsDuplicatesIgnoringCaseAndSpace() {
	err := ValidateBoard([]string{"apple", " Apple ", "plum", "fig"}, 2)
	s.ErrorIs(err, model.ErrInvalidBoard)
	s.Contains(err.Error(), `"Apple"`)
}

// ValidateSettings tests

func (s *ServiceSuite) TestValidateSettings() {
	tests := []struct {
		name           string
		size, win, end int
		expectErr      bool
	}{
		{"typical", 5, 3, 1, false},
		{"every line", 3, 8, 2, false},
		{"too small", 1, 1, 1, true},
		{"too large", MaxSize + 1, 1, 1, true},
		{"zero win", 3, 0, 1, true},
		{"unreachable win", 3, 9, 1, true},
		{"zero end", 3, 1, 0, true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := ValidateSettings(tt.size, tt.win, tt.end)
			if tt.expectErr {
				s.ErrorIs(err, model.ErrInvalidSettings)
			} else {
				s.NoError(err)
			}
		})
	}
}

// ParseWordList tests

func (s *ServiceSuite) TestParseWordList() {
	words := ParseWordList(" apple, pear\nplum,,\r\n fig ,  ")
	s.Equal([]string{"apple", "pear", "plum", "fig"}, words)
}

func (s *ServiceSuite) TestParseWordListEmpty() {
	s.Empty(ParseWordList(" , \n "))
}

func (s *ServiceSuite) TestParseWordListDropsRepeatsIgnoringCase() {
	words := ParseWordList("apple, Apple ,pear\nAPPLE, PEAR,plum")
	s.Equal([]string{"apple", "pear", "plum"}, words)
}

// RandomFill tests

func (s *ServiceSuite) TestRandomFillUsesRoomWords() {
	game := &model.Game{
		Size:                2,
		IsRandomFillEnabled: true,
		RandomWords:         []string{"a", "b", "c", "d", "e"},
	}

	words, err := s.service.RandomFill(game)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c", "d"}, words)
	s.Equal(1, s.random.ShuffleCalls)
}

func (s *ServiceSuite) TestRandomFillFallsBackWhenListTooShort() {
	game := &model.Game{
		Size:                2,
		IsRandomFillEnabled: true,
		RandomWords:         []string{"a", "b"},
	}

	words, err := s.service.RandomFill(game)
	s.Require().NoError(err)
	s.Equal(SampleWords[:4], words)
}

func (s *ServiceSuite) TestRandomFillCountsDistinctRoomWords() {
	game := &model.Game{
		Size:                2,
		IsRandomFillEnabled: true,
		RandomWords:         []string{"apple", "Apple", " apple ", "pear", "plum"},
	}

	words, err := s.service.RandomFill(game)
	s.Require().NoError(err)
	s.Equal(SampleWords[:4], words)
}

func (s *ServiceSuite) TestRandomFillFromRepeatedRoomWordsIsValid() {
	game := &model.Game{
		Size:                2,
		IsRandomFillEnabled: true,
		RandomWords:         []string{"apple", "APPLE", "pear", "plum", "fig"},
	}

	words, err := s.service.RandomFill(game)
	s.Require().NoError(err)
	s.Equal([]string{"apple", "pear", "plum", "fig"}, words)
	s.NoError(ValidateBoard(words, 2))
}

func (s *ServiceSuite) TestRandomFillIgnoresListWhenDisabled() {
	game := &model.Game{
		Size:        2,
		RandomWords: []string{"a", "b", "c", "d"},
	}

	words, err := s.service.RandomFill(game)
	s.Require().NoError(err)
	s.Equal(SampleWords[:4], words)
}

func (s *ServiceSuite) TestRandomFillDoesNotReorderRoomWords() {
	service := New(random.New(), testutil.NopLogger())
	list := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	game := &model.Game{Size: 3, IsRandomFillEnabled: true, RandomWords: list}

	words, err := service.RandomFill(game)
	s.Require().NoError(err)
	s.ElementsMatch(list, words)
	s.Equal([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}, game.RandomWords)
}

func (s *ServiceSuite) TestRandomFillProducesValidBoardForEverySize() {
	service := New(random.New(), testutil.NopLogger())
	for size := MinSize; size <= MaxSize; size++ {
		words, err := service.RandomFill(&model.Game{Size: size})
		s.Require().NoError(err)
		s.NoError(ValidateBoard(words, size), "size %d", size)
	}
}
