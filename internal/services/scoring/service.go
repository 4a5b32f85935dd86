package scoring

import (
	"sort"

	"github.com/mcoot/wordbingo/internal/model"
)

// Service ranks the players of a game
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// Standings ranks every non-host player. More bingos rank higher; among
// equal counts winners come first, earliest win first, then by nickname.
// Players who are level without having won share a rank.
func (s *Service) Standings(game *model.Game) []model.Standing {
	ids := game.NonHostPlayerIDs()
	standings := make([]model.Standing, 0, len(ids))
	for _, id := range ids {
		p := game.Players[id]
		standings = append(standings, model.Standing{
			PlayerID:    p.ID,
			Nickname:    p.Nickname,
			BingoCount:  p.BingoCount,
			IsWinner:    p.IsWinner,
			LastBingoAt: p.LastBingoAt,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return s.less(game, standings[i], standings[j])
	})

	for i := range standings {
		if i > 0 && s.level(standings[i-1], standings[i]) {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}

	return standings
}

func (s *Service) less(game *model.Game, a, b model.Standing) bool {
	if a.BingoCount != b.BingoCount {
		return a.BingoCount > b.BingoCount
	}
	if a.IsWinner != b.IsWinner {
		return a.IsWinner
	}
	if a.IsWinner {
		if a.LastBingoAt != nil && b.LastBingoAt != nil && !a.LastBingoAt.Equal(*b.LastBingoAt) {
			return a.LastBingoAt.Before(*b.LastBingoAt)
		}
		ra, rb := game.WinnerRank(a.Nickname), game.WinnerRank(b.Nickname)
		if ra != rb {
			return ra < rb
		}
	}
	return a.Nickname < b.Nickname
}

func (s *Service) level(a, b model.Standing) bool {
	return !a.IsWinner && !b.IsWinner && a.BingoCount == b.BingoCount
}

// Winner returns the first player to win, or false if nobody has
func (s *Service) Winner(game *model.Game) (model.Standing, bool) {
	if len(game.Winners) == 0 {
		return model.Standing{}, false
	}
	for _, st := range s.Standings(game) {
		if st.Nickname == game.Winners[0] {
			return st, true
		}
	}
	return model.Standing{}, false
}
