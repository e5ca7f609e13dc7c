package ai

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/c4"
)

const tableSize uint64 = 1 << 23

type SolverConfig struct {
	Width  int
	Height int
	Debug  int

	NoTable bool
	NoSort  bool

	// Weak restricts the search to win/draw/loss instead of the
	// exact score.
	Weak bool
}

// Solver computes exact game-theoretic scores by negamax with
// alpha-beta over the non-losing move set, a transposition table of
// score bounds, and a top-level null-window search narrowing the
// score range.
//
// Scores are relative to the side to move: a position wins for the
// mover with their k-th-to-last stone the sooner the higher the
// score. The score of a position won by dropping the n-th stone
// overall is (Width*Height+2-n)/2.
type Solver struct {
	cfg SolverConfig

	st    Stats
	order []int
	table []tableEntry

	cancel *int32
}

type tableEntry struct {
	key   uint64
	value int8
	bound boundType
}

type boundType byte

const (
	lowerBound boundType = iota
	upperBound
)

type Stats struct {
	Nodes  uint64
	TTHits uint64
}

func NewSolver(cfg SolverConfig) *Solver {
	if cfg.Width == 0 {
		cfg.Width = c4.DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = c4.DefaultHeight
	}
	s := &Solver{cfg: cfg}
	// center-first static order: 3 2 4 1 5 0 6 on the standard board
	s.order = make([]int, cfg.Width)
	for i := 0; i < cfg.Width; i++ {
		s.order[i] = cfg.Width/2 + (1-2*(i%2))*(i+1)/2
	}
	if !cfg.NoTable {
		s.table = make([]tableEntry, tableSize)
	}
	return s
}

func (s *Solver) Stats() Stats {
	return s.st
}

// Reset clears the transposition table and statistics.
func (s *Solver) Reset() {
	s.st = Stats{}
	for i := range s.table {
		s.table[i] = tableEntry{}
	}
}

func (s *Solver) ttGet(key uint64) *tableEntry {
	if s.cfg.NoTable {
		return nil
	}
	te := &s.table[key%tableSize]
	if te.key != key {
		return nil
	}
	return te
}

func (s *Solver) ttPut(key uint64) *tableEntry {
	if s.cfg.NoTable {
		return nil
	}
	return &s.table[key%tableSize]
}

func (s *Solver) size() int {
	return s.cfg.Width * s.cfg.Height
}

// Solve returns the exact score of p for the side to move, or the
// context's error if the search is canceled first.
func (s *Solver) Solve(ctx context.Context, p *c4.Position) (int, error) {
	s.st = Stats{}
	var cancel int32
	s.cancel = &cancel
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			atomic.StoreInt32(&cancel, 1)
		case <-done:
		}
	}()

	if over, _ := p.GameOver(); over {
		return s.terminalScore(p), nil
	}
	size := s.size()
	if p.CanWinNext() {
		return (size + 1 - p.MoveNumber()) / 2, nil
	}

	min := -(size - p.MoveNumber()) / 2
	max := (size + 1 - p.MoveNumber()) / 2
	if s.cfg.Weak {
		min, max = -1, 1
	}

	start := time.Now()
	for min < max {
		if atomic.LoadInt32(&cancel) != 0 {
			return 0, ctx.Err()
		}
		med := min + (max-min)/2
		if med <= 0 && min/2 < med {
			med = min / 2
		} else if med >= 0 && max/2 > med {
			med = max / 2
		}
		r := s.negamax(p, med, med+1)
		if r <= med {
			max = r
		} else {
			min = r
		}
		if s.cfg.Debug > 0 {
			log.Printf("[solve] window: min=%d max=%d med=%d r=%d nodes=%d tt=%d time=%s",
				min, max, med, r, s.st.Nodes, s.st.TTHits, time.Since(start))
		}
	}
	if atomic.LoadInt32(&cancel) != 0 {
		return 0, ctx.Err()
	}
	return min, nil
}

// terminalScore scores an already-decided position for the side to
// move. The winner played the previous stone, so a won game is always
// a loss for the mover.
func (s *Solver) terminalScore(p *c4.Position) int {
	_, winner := p.GameOver()
	if winner == c4.NoColor {
		return 0
	}
	return -(s.size() + 2 - p.MoveNumber()) / 2
}

func (s *Solver) negamax(p *c4.Position, alpha, beta int) int {
	s.st.Nodes++
	if s.st.Nodes&0x3ff == 0 && atomic.LoadInt32(s.cancel) != 0 {
		return alpha
	}

	possible := p.NonLosingMoves()
	size := s.size()
	n := p.MoveNumber()
	if possible == 0 {
		// every move loses: the opponent wins with their next stone
		return -(size - n) / 2
	}
	if n >= size-2 {
		return 0
	}

	if min := -(size - 2 - n) / 2; alpha < min {
		alpha = min
		if alpha >= beta {
			return alpha
		}
	}
	max := (size - 1 - n) / 2
	key := p.Key()
	if te := s.ttGet(key); te != nil {
		s.st.TTHits++
		if te.bound == lowerBound {
			if lo := int(te.value); alpha < lo {
				alpha = lo
				if alpha >= beta {
					return alpha
				}
			}
		} else if up := int(te.value); up < max {
			max = up
		}
	}
	if beta > max {
		beta = max
		if alpha >= beta {
			return beta
		}
	}

	c := p.Constants()
	var sorter moveSorter
	for i := len(s.order) - 1; i >= 0; i-- {
		col := s.order[i]
		if bit := possible & c.ColumnMask(uint(col)); bit != 0 {
			score := 0
			if !s.cfg.NoSort {
				score = p.MoveScore(bit)
			}
			sorter.add(col, score)
		}
	}

	for {
		col, ok := sorter.next()
		if !ok {
			break
		}
		child, err := p.Move(col)
		if err != nil {
			panic("negamax: illegal move from non-losing set")
		}
		v := -s.negamax(child, -beta, -alpha)
		if v >= beta {
			if te := s.ttPut(key); te != nil {
				*te = tableEntry{key: key, value: int8(v), bound: lowerBound}
			}
			return v
		}
		if v > alpha {
			alpha = v
		}
	}

	if te := s.ttPut(key); te != nil {
		*te = tableEntry{key: key, value: int8(alpha), bound: upperBound}
	}
	return alpha
}
