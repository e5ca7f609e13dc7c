package analyze

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/ai/mcts"
	"github.com/gamesolver/connect4/c4"
	"github.com/gamesolver/connect4/cli"
	"github.com/gamesolver/connect4/cmd/internal/opt"
	"github.com/gamesolver/connect4/notation"
	"github.com/gamesolver/connect4/prove"
	"github.com/google/subcommands"
)

type Command struct {
	quiet      bool
	monteCarlo bool
	pn         bool
	cpuProfile string
	memProfile string

	timeLimit time.Duration
	maxNodes  uint64
	seed      int64
	c         float64

	sopt opt.Solver
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a position from a move sequence" }
func (*Command) Usage() string {
	return `analyze [options] POSITION

Evaluate a position given as a move-sequence string using a
configurable engine. By default every legal move is scored exactly;
-prove answers only whether the side to move can force a win, and
-mcts reports the move a Monte-Carlo search prefers.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.BoolVar(&c.monteCarlo, "mcts", false, "use the MCTS player")
	flags.BoolVar(&c.pn, "prove", false, "use the PN prover")

	flags.StringVar(&c.cpuProfile, "cpuprofile", "", "write CPU profile")
	flags.StringVar(&c.memProfile, "memprofile", "", "write memory profile")

	flags.DurationVar(&c.timeLimit, "limit", time.Minute, "limit of how much time to use")
	flags.Uint64Var(&c.maxNodes, "max-nodes", 0, "maximum number of live nodes in the PN tree")
	flags.Int64Var(&c.seed, "seed", 0, "specify a seed")
	flags.Float64Var(&c.c, "mcts.c", 0.7, "MCTS explore/exploit tradeoff constant")

	c.sopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() != 1 {
		log.Fatal("analyze: exactly one position required")
	}
	p, err := notation.ParsePosition(flag.Arg(0))
	if err != nil {
		log.Fatal("parse: ", err)
	}

	if c.cpuProfile != "" {
		f, err := os.OpenFile(c.cpuProfile, os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			log.Fatalf("open cpu-profile: %s: %v", c.cpuProfile, err)
		}
		pprof.StartCPUProfile(f)
		defer f.Close()
		defer pprof.StopCPUProfile()
	}
	if c.memProfile != "" {
		f, err := os.OpenFile(c.memProfile, os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			log.Fatalf("open memory profile: %s: %v", c.memProfile, err)
		}
		defer func() {
			pprof.Lookup("allocs").WriteTo(f, 0)
			f.Close()
		}()
	}

	if !c.quiet {
		cli.RenderBoard(nil, os.Stdout, p)
	}

	if c.timeLimit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeLimit)
		defer cancel()
	}

	switch {
	case c.pn:
		c.provePosition(ctx, p)
	case c.monteCarlo:
		c.monteCarloMove(ctx, p)
	default:
		c.solve(ctx, p)
	}
	return subcommands.ExitSuccess
}

func (c *Command) solve(ctx context.Context, p *c4.Position) {
	solver := ai.NewSolver(c.sopt.BuildConfig())
	start := time.Now()
	a, err := solver.Analyze(ctx, p)
	if err != nil {
		log.Fatal("analyze: ", err)
	}
	for col, score := range a.Scores {
		if score == ai.IllegalScore {
			fmt.Printf("  column %d: full\n", col+1)
		} else {
			fmt.Printf("  column %d: %d\n", col+1, score)
		}
	}
	fmt.Printf("best=%d score=%d nodes=%d time=%s\n",
		a.Best+1, a.Scores[a.Best], a.Stats.Nodes, time.Since(start))
}

func (c *Command) provePosition(ctx context.Context, p *c4.Position) {
	prover := prove.New(prove.Config{
		Debug:    c.sopt.Debug,
		MaxNodes: c.maxNodes,
	})
	r := prover.Prove(ctx, p)
	fmt.Printf("result=%s depth=%d pn=(%d, %d) nodes=%d time=%s\n",
		r.Result, r.Depth, r.Proof, r.Disproof, r.Stats.Nodes, r.Duration)
	if r.Result == prove.EvalTrue {
		fmt.Printf("winning move: column %d\n", r.Move+1)
	}
}

func (c *Command) monteCarloMove(ctx context.Context, p *c4.Position) {
	if over, _ := p.GameOver(); over {
		log.Fatal("analyze: ", c4.ErrGameOver)
	}
	mc := mcts.NewMonteCarlo(mcts.MCTSConfig{
		Debug: c.sopt.Debug,
		Limit: c.timeLimit,
		C:     c.c,
		Seed:  c.seed,
	})
	col := mc.GetMove(ctx, p)
	fmt.Printf("mcts move: column %d\n", col+1)
}
