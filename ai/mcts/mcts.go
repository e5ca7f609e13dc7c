// Package mcts implements a UCT Monte-Carlo tree-search player. It
// exists mostly as a sparring partner for the exact solver: selfplay
// and benchmarks grade its move quality against known-optimal play.
package mcts

import (
	"log"
	"math"
	"math/rand"
	"time"

	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/c4"
)

type MCTSConfig struct {
	Debug int
	Limit time.Duration
	C     float64
	Seed  int64
}

type MonteCarloPlayer struct {
	cfg MCTSConfig

	r *rand.Rand
}

type tree struct {
	position    *c4.Position
	move        int
	simulations int
	wins        int

	parent   *tree
	children []*tree
}

func NewMonteCarlo(cfg MCTSConfig) *MonteCarloPlayer {
	mc := &MonteCarloPlayer{cfg: cfg}
	if mc.cfg.C == 0 {
		mc.cfg.C = 0.7
	}
	if mc.cfg.Limit == 0 {
		mc.cfg.Limit = time.Second
	}
	if mc.cfg.Seed == 0 {
		mc.cfg.Seed = time.Now().Unix()
	}
	mc.r = rand.New(rand.NewSource(mc.cfg.Seed))
	return mc
}

func (mc *MonteCarloPlayer) GetMove(ctx context.Context, p *c4.Position) int {
	root := &tree{position: p}
	mc.populate(root)
	if len(root.children) == 0 {
		// the game is already decided, there is no move to search for
		return -1
	}
	if len(root.children) == 1 {
		return root.children[0].move
	}
	start := time.Now()
	deadline, limited := ctx.Deadline()
	if !limited || deadline.Sub(start) > mc.cfg.Limit {
		deadline = start.Add(mc.cfg.Limit)
	}

	for time.Now().Before(deadline) {
		node := mc.descend(root)
		mc.populate(node)
		win := mc.rollout(node)
		mc.update(node, win)
	}

	best := root.children[0]
	i := 0
	for _, c := range root.children {
		if mc.cfg.Debug > 2 {
			log.Printf("[mcts][col %d]: n=%d w=%d", c.move+1, c.simulations, c.wins)
		}
		if c.simulations > best.simulations {
			best = c
			i = 1
		} else if c.simulations == best.simulations {
			i++
			if mc.r.Intn(i) == 0 {
				best = c
				i = 1
			}
		}
	}
	if mc.cfg.Debug > 1 {
		log.Printf("[mcts] simulations=%d wins=%d best=%d", root.simulations, root.wins, best.move+1)
	}
	return best.move
}

func (mc *MonteCarloPlayer) populate(t *tree) {
	if t.children != nil {
		return
	}
	if over, _ := t.position.GameOver(); over {
		return
	}
	for col := 0; col < t.position.Width(); col++ {
		child, err := t.position.Move(col)
		if err != nil {
			continue
		}
		t.children = append(t.children, &tree{
			position: child,
			move:     col,
			parent:   t,
		})
	}
}

func (mc *MonteCarloPlayer) descend(t *tree) *tree {
	if t.children == nil {
		return t
	}
	var best *tree
	var val float64
	i := 0
	for _, c := range t.children {
		var s float64
		if c.simulations == 0 {
			s = 10
		} else {
			s = float64(c.wins)/float64(c.simulations) +
				mc.cfg.C*math.Sqrt(math.Log(float64(t.simulations))/float64(c.simulations))
		}
		if s > val {
			best = c
			val = s
			i = 1
		} else if s == val {
			i++
			if mc.r.Intn(i) == 0 {
				best = c
			}
		}
	}
	return mc.descend(best)
}

// rollout plays uniformly random moves to the end of the game and
// reports whether the player who moved into t won; node statistics
// count wins for that player, so UCT selection at the parent
// maximizes the parent mover's win rate. Draws count as losses.
func (mc *MonteCarloPlayer) rollout(t *tree) bool {
	mover := t.position.ToMove().Flip()
	p := t.position
	for {
		if over, winner := p.GameOver(); over {
			return winner == mover
		}
		col := mc.r.Intn(p.Width())
		next, err := p.Move(col)
		if err != nil {
			continue
		}
		p = next
	}
}

func (mc *MonteCarloPlayer) update(t *tree, win bool) {
	for t != nil {
		t.simulations++
		if win {
			t.wins++
		}
		t = t.parent
		win = !win
	}
}
