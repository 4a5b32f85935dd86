package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordbingo/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	base    time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) at(minutes int) *time.Time {
	t := s.base.Add(time.Duration(minutes) * time.Minute)
	return &t
}

func (s *ServiceSuite) game(players ...model.Player) *model.Game {
	g := &model.Game{
		HostID:  "host",
		Players: map[model.PlayerID]model.Player{"host": model.NewPlayer("host", "Host", s.base)},
	}
	for i, p := range players {
		p.JoinedAt = s.base.Add(time.Duration(i+1) * time.Second)
		g.Players[p.ID] = p
	}
	return g
}

func nicknames(standings []model.Standing) []string {
	out := make([]string, len(standings))
	for i, st := range standings {
		out[i] = st.Nickname
	}
	return out
}

func ranks(standings []model.Standing) []int {
	out := make([]int, len(standings))
	for i, st := range standings {
		out[i] = st.Rank
	}
	return out
}

func (s *ServiceSuite) TestStandingsExcludeHost() {
	g := s.game(model.Player{ID: "p1", Nickname: "Alice"})

	standings := s.service.Standings(g)
	s.Equal([]string{"Alice"}, nicknames(standings))
}

func (s *ServiceSuite) TestStandingsOrderByBingoCount() {
	g := s.game(
		model.Player{ID: "p1", Nickname: "Alice", BingoCount: 1},
		model.Player{ID: "p2", Nickname: "Bob", BingoCount: 3},
		model.Player{ID: "p3", Nickname: "Carol", BingoCount: 2},
	)

	standings := s.service.Standings(g)
	s.Equal([]string{"Bob", "Carol", "Alice"}, nicknames(standings))
	s.Equal([]int{1, 2, 3}, ranks(standings))
}

func (s *ServiceSuite) TestStandingsEarlierWinnerFirst() {
	g := s.game(
		model.Player{ID: "p1", Nickname: "Alice", BingoCount: 2, IsWinner: true, LastBingoAt: s.at(5)},
		model.Player{ID: "p2", Nickname: "Bob", BingoCount: 2, IsWinner: true, LastBingoAt: s.at(3)},
	)
	g.Winners = []string{"Bob", "Alice"}

	standings := s.service.Standings(g)
	s.Equal([]string{"Bob", "Alice"}, nicknames(standings))
	s.Equal([]int{1, 2}, ranks(standings))
}

func (s *ServiceSuite) TestStandingsSameTimestampUsesWinnersOrder() {
	g := s.game(
		model.Player{ID: "p1", Nickname: "Alice", BingoCount: 2, IsWinner: true, LastBingoAt: s.at(3)},
		model.Player{ID: "p2", Nickname: "Bob", BingoCount: 2, IsWinner: true, LastBingoAt: s.at(3)},
	)
	g.Winners = []string{"Bob", "Alice"}

	s.Equal([]string{"Bob", "Alice"}, nicknames(s.service.Standings(g)))
}

func (s *ServiceSuite) TestStandingsWinnerBeatsLevelNonWinner() {
	g := s.game(
		model.Player{ID: "p1", Nickname: "Alice", BingoCount: 2},
		model.Player{ID: "p2", Nickname: "Bob", BingoCount: 2, IsWinner: true, LastBingoAt: s.at(1)},
	)
	g.Winners = []string{"Bob"}

	s.Equal([]string{"Bob", "Alice"}, nicknames(s.service.Standings(g)))
}

func (s *ServiceSuite) TestStandingsTiesShareRank() {
	g := s.game(
		model.Player{ID: "p1", Nickname: "Carol", BingoCount: 1},
		model.Player{ID: "p2", Nickname: "Alice", BingoCount: 1},
		model.Player{ID: "p3", Nickname: "Bob", BingoCount: 0},
	)

	standings := s.service.Standings(g)
	s.Equal([]string{"Alice", "Carol", "Bob"}, nicknames(standings))
	s.Equal([]int{1, 1, 3}, ranks(standings))
}

func (s *ServiceSuite) TestWinner() {
	g := s.game(
		model.Player{ID: "p1", Nickname: "Alice", BingoCount: 3, IsWinner: true, LastBingoAt: s.at(9)},
		model.Player{ID: "p2", Nickname: "Bob", BingoCount: 2, IsWinner: true, LastBingoAt: s.at(4)},
	)
	g.Winners = []string{"Bob", "Alice"}

	winner, ok := s.service.Winner(g)
	s.Require().True(ok)
	s.Equal("Bob", winner.Nickname)
	s.Equal(model.PlayerID("p2"), winner.PlayerID)
}

func (s *ServiceSuite) TestWinnerNone() {
	_, ok := s.service.Winner(s.game(model.Player{ID: "p1", Nickname: "Alice"}))
	s.False(ok)
}
