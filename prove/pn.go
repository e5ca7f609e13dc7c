// Package prove implements proof-number search over Connect-Four
// positions, answering the binary question "can the side to move
// force a win?". Connect-Four was first solved with PN search, and
// for positions with a forced win it is often far faster than full
// alpha-beta.
package prove

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gamesolver/connect4/c4"
)

type Evaluation int8

const (
	EvalUnknown Evaluation = iota
	EvalTrue
	EvalFalse
)

func (e Evaluation) String() string {
	switch e {
	case EvalUnknown:
		return "unknown"
	case EvalTrue:
		return "proven"
	case EvalFalse:
		return "disproven"
	default:
		return fmt.Sprintf("ERR(%d)", e)
	}
}

const (
	flagExpanded = 1 << iota
	flagAnd
)

const (
	inf = ^uint32(0)

	kCheckFrequency = 1000
)

func saturatingAdd(l uint32, r uint32) uint32 {
	if (l + r) < l {
		return inf
	}
	return l + r
}

type node struct {
	parent *node
	move   int8
	// phi -> proof for OR, disproof for AND
	// delta -> proof for AND, disproof for OR
	phi, delta uint32

	value      Evaluation
	flags      int8
	proofDepth uint16

	children []*node
}

func (n *node) proof() uint32 {
	if n.andNode() {
		return n.delta
	}
	return n.phi
}

func (n *node) disproof() uint32 {
	if n.andNode() {
		return n.phi
	}
	return n.delta
}

func (n *node) expanded() bool {
	return n.flags&flagExpanded != 0
}

func (n *node) andNode() bool {
	return (n.flags & flagAnd) != 0
}

type Stats struct {
	Nodes     uint64
	Proved    uint64
	Disproved uint64
	Dropped   uint64
	Expanded  uint64
	MaxDepth  uint64
}

func (st *Stats) Live() uint64 {
	return st.Nodes - (st.Proved + st.Disproved + st.Dropped)
}

type Config struct {
	Debug     int
	MaxNodes  uint64
	LogPrefix string
}

type Prover struct {
	ctx context.Context

	cfg   *Config
	stats Stats

	start time.Time

	root     *node
	position *c4.Position

	checkNode *node
	stack     []*c4.Position

	progress <-chan time.Time
}

func New(cfg Config) *Prover {
	return &Prover{
		cfg: &cfg,
	}
}

type ProofResult struct {
	Duration        time.Duration
	Result          Evaluation
	Depth           uint32
	Stats           Stats
	Proof, Disproof uint32

	// Move is a winning column (0-indexed) when Result is EvalTrue.
	Move int
}

// Prove searches pos until the root is proven (the side to move can
// force a win), disproven, or a limit is hit.
func (p *Prover) Prove(ctx context.Context, pos *c4.Position) ProofResult {
	p.start = time.Now()
	p.stats = Stats{}
	p.position = pos
	p.ctx = ctx

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	p.progress = ticker.C

	p.prove(ctx, pos)

	move := -1
	if p.root.phi == 0 {
		p.root.value = EvalTrue
		for _, c := range p.root.children {
			if c.delta == 0 {
				move = int(c.move)
			}
		}
	} else if p.root.delta == 0 {
		p.root.value = EvalFalse
	}

	return ProofResult{
		Result:   p.root.value,
		Stats:    p.stats,
		Duration: time.Since(p.start),
		Proof:    p.root.proof(),
		Disproof: p.root.disproof(),
		Move:     move,
		Depth:    uint32(p.root.proofDepth),
	}
}

func (p *Prover) prove(ctx context.Context, pos *c4.Position) {
	p.stats.Nodes++
	p.root = &node{
		parent: nil,
		move:   -1,
	}
	p.stack = []*c4.Position{pos}
	p.checkNode = p.root
	p.evaluate(p.root)
	p.setNumbers(p.root)
	p.search(ctx, p.cfg.MaxNodes)
}

func (p *Prover) search(ctx context.Context, maxNodes uint64) {
	var i uint64
	current := p.root
Outer:
	for p.root.phi != 0 && p.root.delta != 0 {
		i++
		next := p.selectMostProving(current)

		if i%kCheckFrequency == 0 {
			select {
			case <-ctx.Done():
				break Outer
			default:
			}
			select {
			case <-p.progress:
				log.Printf("%stime=%s nodes=%d live=%d done=%d/%d/%d expanded=%d root=(%d, %d)",
					p.cfg.LogPrefix,
					time.Since(p.start),
					p.stats.Nodes,
					p.stats.Live(),
					p.stats.Proved,
					p.stats.Disproved,
					p.stats.Dropped,
					p.stats.Expanded,
					p.root.phi,
					p.root.delta,
				)
			default:
			}
		}
		if maxNodes > 0 && p.stats.Live() > maxNodes {
			break Outer
		}

		p.expand(next)
		current = p.updateAncestors(next)
	}
	for p.checkNode != p.root {
		p.ascend()
	}
}

func (p *Prover) evaluate(node *node) {
	if over, winner := p.currentPosition(node).GameOver(); over {
		if winner == p.position.ToMove() {
			node.value = EvalTrue
		} else {
			// losses and draws both refute a forced win
			node.value = EvalFalse
		}
	} else {
		node.value = EvalUnknown
	}
}

func (p *Prover) setNumbers(node *node) {
	if node.expanded() {
		node.delta = 0
		node.phi = inf
		for _, c := range node.children {
			node.delta = saturatingAdd(node.delta, c.phi)
			if c.delta < node.phi {
				node.phi = c.delta
			}
		}
	} else {
		switch node.value {
		case EvalTrue, EvalFalse:
			if node.andNode() == (node.value == EvalTrue) {
				node.phi = inf
				node.delta = 0
			} else {
				node.phi = 0
				node.delta = inf
			}
		case EvalUnknown:
			pos := p.currentPosition(node)
			legal := uint32(0)
			for col := 0; col < pos.Width(); col++ {
				if pos.CanPlay(col) {
					legal++
				}
			}
			node.phi = 1
			node.delta = legal
		}
	}
}

func (p *Prover) selectMostProving(current *node) *node {
	for current.expanded() {
		var child *node
		for _, c := range current.children {
			if c.delta == current.phi {
				child = c
				break
			}
		}
		if child == nil {
			panic("consistency error: no most-proving child")
		}
		if !p.tryDescend(child) {
			panic("failed to descend")
		}
		current = child
	}
	return current
}

func (p *Prover) expand(n *node) {
	current := p.currentPosition(n)

	for col := 0; col < current.Width(); col++ {
		if !current.CanPlay(col) {
			continue
		}
		child := &node{
			parent: n,
			move:   int8(col),
		}

		if !p.tryDescend(child) {
			continue
		}
		p.stats.Nodes++

		if !n.andNode() {
			child.flags |= flagAnd
		}
		p.evaluate(child)
		p.setNumbers(child)
		p.ascend()
		n.children = append(n.children, child)
		if child.delta == 0 {
			break
		}
	}

	p.stats.Expanded++
	n.flags |= flagExpanded
	d := uint64(p.depth() + 1)
	if d > p.stats.MaxDepth {
		p.stats.MaxDepth = d
	}
}

func (p *Prover) updateAncestors(node *node) *node {
	for {
		oldphi := node.phi
		olddelta := node.delta
		p.setNumbers(node)
		if node.phi == 0 || node.delta == 0 {
			if node.delta == 0 {
				var d uint16
				for _, c := range node.children {
					if c.phi != 0 {
						panic("inconsistent")
					}
					if c.proofDepth > d {
						d = c.proofDepth
					}
				}
				node.proofDepth = d + 1
			} else {
				d := uint16(1 << 15)
				for _, c := range node.children {
					if c.delta != 0 {
						continue
					}
					if c.proofDepth < d {
						d = c.proofDepth
					}
				}
				node.proofDepth = d + 1
			}
			if node.proof() == 0 {
				p.stats.Proved++
			} else {
				p.stats.Disproved++
			}
			if node.phi == 0 {
				p.stats.Dropped += uint64(len(node.children) - 1)
			}
			if node != p.root {
				node.children = nil
			}
		} else if node.phi == oldphi && node.delta == olddelta {
			return node
		}

		if node == p.root {
			return node
		}
		node = node.parent
		p.ascend()
	}
}

func (p *Prover) tryDescend(n *node) bool {
	current := p.currentPosition(n.parent)
	next, err := current.Move(int(n.move))
	if err != nil {
		return false
	}
	p.stack = append(p.stack, next)
	p.checkNode = n
	return true
}

func (p *Prover) currentPosition(cur *node) *c4.Position {
	if cur != p.checkNode {
		panic("inconsistent current position")
	}
	return p.stack[len(p.stack)-1]
}

func (p *Prover) depth() int {
	return len(p.stack) - 1
}

func (p *Prover) ascend() {
	p.stack = p.stack[0 : len(p.stack)-1]
	p.checkNode = p.checkNode.parent
}
