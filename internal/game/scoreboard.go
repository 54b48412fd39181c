package game

import "sort"

// ScoreBoard maps player ids to running scores. Keys are fixed at game start:
// scoring a player that is not on the board is a no-op, so a guesser missing
// from the roster can never grow the key set mid-game.
type ScoreBoard struct {
	scores map[int64]int
}

func NewScoreBoard(players []Player) *ScoreBoard {
	scores := make(map[int64]int, len(players))
	for _, p := range players {
		scores[p.ID] = 0
	}
	return &ScoreBoard{scores: scores}
}

// Add applies a delta and returns the new score. ok is false for ids not on
// the board.
func (b *ScoreBoard) Add(id int64, delta int) (int, bool) {
	if _, known := b.scores[id]; !known {
		return 0, false
	}
	b.scores[id] += delta
	return b.scores[id], true
}

func (b *ScoreBoard) Score(id int64) int {
	return b.scores[id]
}

type Standing struct {
	Player Player
	Score  int
}

// Standings returns one entry per roster player, in roster order.
func (b *ScoreBoard) Standings(roster []Player) []Standing {
	standings := make([]Standing, len(roster))
	for i, p := range roster {
		standings[i] = Standing{Player: p, Score: b.scores[p.ID]}
	}
	return standings
}

// Ranking returns standings sorted by score, highest first. Ties keep roster
// order.
func (b *ScoreBoard) Ranking(roster []Player) []Standing {
	ranking := b.Standings(roster)
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}

// Winners returns every player tied at the top score, or nothing when the
// top score is not positive. Tied top scorers are all announced as
// co-winners rather than crowning an arbitrary one.
func Winners(ranking []Standing) []Standing {
	if len(ranking) == 0 || ranking[0].Score <= 0 {
		return nil
	}
	top := ranking[0].Score
	var winners []Standing
	for _, s := range ranking {
		if s.Score != top {
			break
		}
		winners = append(winners, s)
	}
	return winners
}
