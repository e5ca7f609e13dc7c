package play

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/ai/mcts"
	"github.com/gamesolver/connect4/c4"
	"github.com/gamesolver/connect4/cli"
	"github.com/gamesolver/connect4/notation"
	"github.com/google/subcommands"
)

type Command struct {
	red    string
	yellow string
	debug  int
	limit  time.Duration

	unicode bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Connect Four from the command line" }
func (*Command) Usage() string {
	return `play

Play Connect Four on the command-line, against a human or AI.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.red, "red", "human", "red player")
	flags.StringVar(&c.yellow, "yellow", "human", "yellow player")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.DurationVar(&c.limit, "limit", time.Minute, "ai time limit")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := bufio.NewReader(os.Stdin)
	st := &cli.CLI{
		Config: c4.Config{},
		Out:    os.Stdout,
		Red:    c.parsePlayer(in, c.red),
		Yellow: c.parsePlayer(in, c.yellow),
		Glyphs: glyphs(c.unicode),
	}
	st.Play(ctx)
	fmt.Printf("moves: %s\n", notation.FormatMoves(st.Moves()))

	return subcommands.ExitSuccess
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}

type aiWrapper struct {
	limit time.Duration
	p     ai.Player
}

func (a *aiWrapper) GetMove(ctx context.Context, p *c4.Position) int {
	ctx, cancel := context.WithDeadline(ctx, time.Now().Add(a.limit))
	defer cancel()
	return a.p.GetMove(ctx, p)
}

func (c *Command) parsePlayer(in *bufio.Reader, s string) ai.Player {
	if s == "human" {
		return cli.NewCLIPlayer(os.Stdout, in)
	}
	if strings.HasPrefix(s, "rand") {
		var seed int64
		if len(s) > len("rand") {
			i, err := strconv.Atoi(s[len("rand:"):])
			if err != nil {
				log.Fatal(err)
			}
			seed = int64(i)
		}
		return &aiWrapper{c.limit, ai.NewRandom(seed)}
	}
	if s == "perfect" {
		solver := ai.NewSolver(ai.SolverConfig{Debug: c.debug})
		return &aiWrapper{c.limit, ai.NewPerfect(solver)}
	}
	if strings.HasPrefix(s, "mcts") {
		var limit = c.limit
		if len(s) > len("mcts") {
			var err error
			limit, err = time.ParseDuration(s[len("mcts:"):])
			if err != nil {
				log.Fatal(err)
			}
		}
		p := mcts.NewMonteCarlo(mcts.MCTSConfig{
			Limit: limit,
			Debug: c.debug,
		})
		return &aiWrapper{limit, p}
	}
	log.Fatalf("unparseable player: %s", s)
	return nil
}
