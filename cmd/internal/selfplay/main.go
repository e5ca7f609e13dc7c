package selfplay

import (
	"flag"
	"fmt"
	"io"
	"log"
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
	p1    string
	p2    string
	games int
	seed  int64
	debug int
	limit time.Duration

	verbose bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two engines against each other" }
func (*Command) Usage() string {
	return `selfplay [options]

Play a series of games between two engines, alternating colors, and
report the wins, draws, and losses from the first engine's point of
view.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "perfect", "first engine")
	flags.StringVar(&c.p2, "p2", "mcts", "second engine")
	flags.IntVar(&c.games, "games", 10, "number of games to play")
	flags.Int64Var(&c.seed, "seed", 1, "base seed for random engines")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.DurationVar(&c.limit, "limit", time.Second, "ai time limit per move")
	flags.BoolVar(&c.verbose, "v", false, "print every game")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var wins, draws, losses int
	for i := 0; i < c.games; i++ {
		p1 := c.buildPlayer(c.p1, c.seed+int64(i))
		p2 := c.buildPlayer(c.p2, c.seed+int64(i))

		st := &cli.CLI{
			Config: c4.Config{},
			Out:    io.Discard,
			Red:    p1,
			Yellow: p2,
		}
		p1Color := c4.Red
		if i%2 == 1 {
			st.Red, st.Yellow = p2, p1
			p1Color = c4.Yellow
		}

		final := st.Play(ctx)
		_, winner := final.GameOver()
		switch winner {
		case c4.NoColor:
			draws++
		case p1Color:
			wins++
		default:
			losses++
		}
		if c.verbose {
			fmt.Printf("game %d: p1=%s winner=%s moves=%s\n",
				i+1, p1Color, winner, notation.FormatMoves(st.Moves()))
		}
	}
	fmt.Printf("p1=%s p2=%s games=%d\n", c.p1, c.p2, c.games)
	fmt.Printf("wins=%d draws=%d losses=%d\n", wins, draws, losses)
	return subcommands.ExitSuccess
}

func (c *Command) buildPlayer(s string, seed int64) ai.Player {
	switch {
	case s == "perfect":
		return ai.NewPerfect(ai.NewSolver(ai.SolverConfig{Debug: c.debug}))
	case s == "rand":
		return ai.NewRandom(seed)
	case strings.HasPrefix(s, "mcts"):
		limit := c.limit
		if len(s) > len("mcts") {
			var err error
			limit, err = time.ParseDuration(s[len("mcts:"):])
			if err != nil {
				log.Fatal(err)
			}
		}
		return mcts.NewMonteCarlo(mcts.MCTSConfig{
			Limit: limit,
			Debug: c.debug,
			Seed:  seed,
		})
	}
	log.Fatalf("unparseable player: %s", s)
	return nil
}
