package ai

import (
	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/c4"
)

// IllegalScore marks an unplayable column in an Analysis.
const IllegalScore = -1 << 20

// Analysis holds the score of every column of a position, relative to
// the side to move; unplayable columns hold IllegalScore.
type Analysis struct {
	Scores []int
	Best   int
	Stats  Stats
}

// OptimalMove returns the strongest column (0-indexed) for the side
// to move, and the position's exact score converted to the first
// player's perspective: positive means the first player wins, 0 a
// draw, negative the second player wins.
func (s *Solver) OptimalMove(ctx context.Context, p *c4.Position) (int, int, error) {
	a, err := s.Analyze(ctx, p)
	if err != nil {
		return 0, 0, err
	}
	score := a.Scores[a.Best]
	if p.MoveNumber()%2 == 1 {
		score = -score
	}
	return a.Best, score, nil
}

// Analyze scores every legal move of p. A move's score is the score
// of the position it leads to, negated: the value of the game for the
// mover if they play that column.
func (s *Solver) Analyze(ctx context.Context, p *c4.Position) (*Analysis, error) {
	if over, _ := p.GameOver(); over {
		return nil, c4.ErrGameOver
	}
	a := &Analysis{
		Scores: make([]int, s.cfg.Width),
		Best:   -1,
	}
	for i := range a.Scores {
		a.Scores[i] = IllegalScore
	}
	for _, col := range s.order {
		if !p.CanPlay(col) {
			continue
		}
		var score int
		if p.IsWinningMove(col) {
			score = (s.size() + 1 - p.MoveNumber()) / 2
		} else {
			child, err := p.Move(col)
			if err != nil {
				return nil, err
			}
			v, err := s.Solve(ctx, child)
			if err != nil {
				return nil, err
			}
			score = -v
			a.Stats.Nodes += s.st.Nodes
			a.Stats.TTHits += s.st.TTHits
		}
		a.Scores[col] = score
		if a.Best == -1 || score > a.Scores[a.Best] {
			a.Best = col
		}
	}
	if a.Best == -1 {
		return nil, c4.ErrGameOver
	}
	return a, nil
}
