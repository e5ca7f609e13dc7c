package cli

import (
	"fmt"
	"io"

	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/c4"
)

type Glyphs struct {
	Red, Yellow string
}

var DefaultGlyphs = Glyphs{
	Red:    "x",
	Yellow: "o",
}

var UnicodeGlyphs = Glyphs{
	Red:    "●",
	Yellow: "○",
}

type CLI struct {
	moves []int
	p     *c4.Position

	Config c4.Config
	Glyphs *Glyphs
	Out    io.Writer
	Red    ai.Player
	Yellow ai.Player
}

// Play runs one game between the two players and returns the final
// position.
func (c *CLI) Play(ctx context.Context) *c4.Position {
	c.moves = nil
	c.p = c4.New(c.Config)
	for {
		c.render()
		if ok, winner := c.p.GameOver(); ok {
			fmt.Fprintf(c.Out, "Game Over! ")
			if winner == c4.NoColor {
				fmt.Fprintf(c.Out, "Draw.\n")
			} else {
				fmt.Fprintf(c.Out, "%s wins after %d moves.\n", winner, c.p.MoveNumber())
			}
			return c.p
		}
		var col int
		if c.p.ToMove() == c4.Red {
			col = c.Red.GetMove(ctx, c.p)
		} else {
			col = c.Yellow.GetMove(ctx, c.p)
		}
		p, e := c.p.Move(col)
		if e != nil {
			fmt.Fprintln(c.Out, "illegal move:", e)
		} else {
			fmt.Fprintf(c.Out, "%d. %s drops in column %d\n",
				c.p.MoveNumber()+1, c.p.ToMove(), col+1)
			c.p = p
			c.moves = append(c.moves, col)
		}
	}
}

// Moves returns the columns played so far, 0-indexed.
func (c *CLI) Moves() []int {
	return c.moves
}

func (c *CLI) render() {
	RenderBoard(c.Glyphs, c.Out, c.p)
}

func RenderBoard(g *Glyphs, out io.Writer, p *c4.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s to play]\n", p.ToMove())
	for row := p.Height() - 1; row >= 0; row-- {
		for col := 0; col < p.Width(); col++ {
			switch p.At(col, row) {
			case c4.Red:
				fmt.Fprintf(out, "|%s", g.Red)
			case c4.Yellow:
				fmt.Fprintf(out, "|%s", g.Yellow)
			default:
				fmt.Fprintf(out, "| ")
			}
		}
		fmt.Fprintln(out, "|")
	}
	for col := 0; col < p.Width(); col++ {
		fmt.Fprintf(out, " %d", col+1)
	}
	fmt.Fprintln(out)
}
