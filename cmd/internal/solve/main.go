package solve

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/cmd/internal/opt"
	"github.com/gamesolver/connect4/logs"
	"github.com/gamesolver/connect4/notation"
	"github.com/google/subcommands"
)

type Command struct {
	all   bool
	limit time.Duration
	db    string

	sopt opt.Solver
}

func (*Command) Name() string     { return "solve" }
func (*Command) Synopsis() string { return "Solve positions exactly" }
func (*Command) Usage() string {
	return `solve [options] [POSITION...]

Solve each position given as a move-sequence string. With no
arguments, read positions line by line from standard input, writing
one line per position: the score, the number of nodes explored, and
the time spent in microseconds. Invalid positions produce an error on
standard error and an empty output line.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.all, "all", false, "print the score of every legal move")
	flags.DurationVar(&c.limit, "limit", 0, "time limit per position (0 for none)")
	flags.StringVar(&c.db, "db", "", "record solves into the sqlite db at PATH")
	c.sopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	solver := ai.NewSolver(c.sopt.BuildConfig())

	var repo *logs.Repository
	if c.db != "" {
		var err error
		repo, err = logs.Open(c.db)
		if err != nil {
			log.Fatalf("open %s: %v", c.db, err)
		}
		defer repo.Close()
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if flag.NArg() > 0 {
		for _, pos := range flag.Args() {
			c.solve(ctx, solver, repo, out, pos)
		}
		return subcommands.ExitSuccess
	}

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		c.solve(ctx, solver, repo, out, strings.TrimSpace(in.Text()))
		out.Flush()
	}
	if err := in.Err(); err != nil {
		log.Fatal("read stdin: ", err)
	}
	return subcommands.ExitSuccess
}

func (c *Command) solve(ctx context.Context, solver *ai.Solver, repo *logs.Repository, out *bufio.Writer, pos string) {
	p, err := notation.ParsePosition(pos)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid position %q: %v\n", pos, err)
		fmt.Fprintln(out)
		return
	}

	if c.limit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.limit)
		defer cancel()
	}

	solver.Reset()
	start := time.Now()
	if c.all {
		a, err := solver.Analyze(ctx, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "solve %q: %v\n", pos, err)
			fmt.Fprintln(out)
			return
		}
		var scores []string
		for _, s := range a.Scores {
			if s == ai.IllegalScore {
				scores = append(scores, "-")
			} else {
				scores = append(scores, fmt.Sprint(s))
			}
		}
		fmt.Fprintf(out, "%s %s\n", pos, strings.Join(scores, " "))
		return
	}

	score, err := solver.Solve(ctx, p)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "solve %q: %v\n", pos, err)
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintf(out, "%s %d %d %d\n", pos, score, solver.Stats().Nodes, elapsed.Microseconds())

	if repo != nil {
		err := repo.InsertSolve(&logs.Solve{
			Timestamp: start,
			Position:  pos,
			Moves:     p.MoveNumber(),
			Score:     score,
			Nodes:     solver.Stats().Nodes,
			Duration:  elapsed,
			Engine:    "negamax",
		})
		if err != nil {
			log.Printf("record solve: %v", err)
		}
	}
}
