package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/c4"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) ai.Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(ctx context.Context, p *c4.Position) int {
	for {
		fmt.Fprintf(c.out, "%s> ", p.ToMove())
		line, err := c.in.ReadString('\n')
		if err != nil {
			panic(err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || col < 1 || col > p.Width() {
			fmt.Fprintf(c.out, "enter a column between 1 and %d\n", p.Width())
			continue
		}
		return col - 1
	}
}
