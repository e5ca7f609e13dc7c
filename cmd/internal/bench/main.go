package bench

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/cmd/internal/opt"
	"github.com/gamesolver/connect4/logs"
	"github.com/gamesolver/connect4/notation"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type Command struct {
	threads int
	limit   time.Duration
	db      string

	sopt opt.Solver
}

func (*Command) Name() string     { return "bench" }
func (*Command) Synopsis() string { return "Run the solver over benchmark files" }
func (*Command) Usage() string {
	return `bench [options] FILE...

Solve every position in the given benchmark files and report timing
statistics. Each line of a benchmark file holds a position and its
expected score; positions whose computed score disagrees are reported
as failures.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.threads, "threads", runtime.NumCPU(), "number of parallel solvers")
	flags.DurationVar(&c.limit, "limit", 0, "time limit per position (0 for none)")
	flags.StringVar(&c.db, "db", "", "record solves into the sqlite db at PATH")
	c.sopt.AddFlags(flags)
}

type result struct {
	input   notation.Case
	score   int
	nodes   uint64
	elapsed time.Duration
	err     error
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() == 0 {
		log.Fatal("bench: at least one benchmark file required")
	}

	var repo *logs.Repository
	if c.db != "" {
		var err error
		repo, err = logs.Open(c.db)
		if err != nil {
			log.Fatalf("open %s: %v", c.db, err)
		}
		defer repo.Close()
	}

	for _, path := range flag.Args() {
		if err := c.benchFile(ctx, repo, path); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
	}
	return subcommands.ExitSuccess
}

func (c *Command) benchFile(ctx context.Context, repo *logs.Repository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	work := make(chan notation.Case)
	var (
		mu      sync.Mutex
		results []result
	)

	grp, ctx := errgroup.WithContext(ctx)
	for i := 0; i < c.threads; i++ {
		grp.Go(func() error {
			solver := ai.NewSolver(c.sopt.BuildConfig())
			for kase := range work {
				r := c.solveCase(ctx, solver, kase)
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
				if r.err != nil {
					return fmt.Errorf("%s: %w", kase.Moves, r.err)
				}
			}
			return nil
		})
	}
	grp.Go(func() error {
		defer close(work)
		it := notation.NewIterator(f)
		for it.Next() {
			select {
			case work <- it.Case():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return it.Err()
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	c.report(path, results)
	if repo != nil {
		if err := c.record(repo, results); err != nil {
			log.Printf("record solves: %v", err)
		}
	}
	return nil
}

func (c *Command) solveCase(ctx context.Context, solver *ai.Solver, kase notation.Case) result {
	if c.limit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.limit)
		defer cancel()
	}
	solver.Reset()
	start := time.Now()
	score, err := solver.Solve(ctx, kase.Position)
	return result{
		input:   kase,
		score:   score,
		nodes:   solver.Stats().Nodes,
		elapsed: time.Since(start),
		err:     err,
	}
}

func (c *Command) report(path string, results []result) {
	var (
		total   time.Duration
		nodes   uint64
		worst   time.Duration
		failed  int
		weakOut = c.sopt.Weak
	)
	for _, r := range results {
		total += r.elapsed
		nodes += r.nodes
		if r.elapsed > worst {
			worst = r.elapsed
		}
		ok := r.score == r.input.Score
		if weakOut {
			ok = sign(r.score) == sign(r.input.Score)
		}
		if !ok {
			failed++
			fmt.Printf("FAIL %s: got %d, want %d\n", r.input.Moves, r.score, r.input.Score)
		}
	}
	n := len(results)
	if n == 0 {
		fmt.Printf("%s: no positions\n", path)
		return
	}
	fmt.Printf("%s: positions=%d failed=%d mean=%s worst=%s nodes/pos=%d knps=%d\n",
		path, n, failed,
		total/time.Duration(n), worst,
		nodes/uint64(n),
		uint64(float64(nodes)/total.Seconds()/1000),
	)
}

func (c *Command) record(repo *logs.Repository, results []result) error {
	solves := make([]*logs.Solve, 0, len(results))
	now := time.Now()
	for _, r := range results {
		solves = append(solves, &logs.Solve{
			Timestamp: now,
			Position:  r.input.Moves,
			Moves:     r.input.Position.MoveNumber(),
			Score:     r.score,
			Nodes:     r.nodes,
			Duration:  r.elapsed,
			Engine:    "negamax",
		})
	}
	return repo.InsertSolves(solves)
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
