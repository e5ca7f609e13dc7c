package ai

import (
	"math/rand"

	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/c4"
)

type RandomPlayer struct {
	r *rand.Rand
}

func NewRandom(seed int64) *RandomPlayer {
	return &RandomPlayer{
		r: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomPlayer) GetMove(ctx context.Context, p *c4.Position) int {
	var cols []int
	for col := 0; col < p.Width(); col++ {
		if p.CanPlay(col) {
			cols = append(cols, col)
		}
	}
	return cols[r.r.Intn(len(cols))]
}

// PerfectPlayer plays the solver's optimal move.
type PerfectPlayer struct {
	s *Solver
}

func NewPerfect(s *Solver) *PerfectPlayer {
	return &PerfectPlayer{s: s}
}

// GetMove plays the solver's optimal move. If the search is canceled
// before it finishes, it falls back to the most central legal column.
func (pp *PerfectPlayer) GetMove(ctx context.Context, p *c4.Position) int {
	a, err := pp.s.Analyze(ctx, p)
	if err == nil {
		return a.Best
	}
	for _, col := range pp.s.order {
		if p.CanPlay(col) {
			return col
		}
	}
	return -1
}
