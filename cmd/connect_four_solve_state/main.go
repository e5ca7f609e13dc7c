// Command connect_four_solve_state solves a single Connect Four
// position given as a move-sequence string and prints the optimal
// move together with the sign of its score.
package main

import (
	"fmt"
	"io"
	"os"

	"context"

	"github.com/gamesolver/connect4/ai"
	"github.com/gamesolver/connect4/notation"
)

const usage = `usage: connect_four_solve_state <state>

Solve the Connect Four position reached by the given sequence of
moves, written as digits 1-7 naming the column of each drop in order.
Prints the state, the best column, and the sign of its score: 1 if
the first player wins with perfect play, -1 if the second player
wins, 0 for a draw.
`

// solver computes the best move for a position string. The returned
// column is 1-indexed and the score is from the first player's point
// of view.
type solver interface {
	OptimalMove(state string) (move, score int, err error)
}

func main() {
	os.Exit(run(os.Args[1:], &engine{s: ai.NewSolver(ai.SolverConfig{})}, os.Stdout, os.Stderr))
}

// run solves args[0]; extra arguments are ignored.
func run(args []string, s solver, out, errw io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(out, usage)
		return 0
	}
	state := args[0]
	move, score, err := s.OptimalMove(state)
	if err != nil {
		fmt.Fprintf(errw, "connect_four_solve_state: %q: %v\n", state, err)
		fmt.Fprintln(out)
		return 0
	}
	fmt.Fprintf(out, "%s %d %d\n", state, move, sign(score))
	return 0
}

func sign(score int) int {
	switch {
	case score < 0:
		return -1
	case score > 0:
		return 1
	}
	return 0
}

type engine struct {
	s *ai.Solver
}

func (e *engine) OptimalMove(state string) (int, int, error) {
	p, err := notation.ParsePosition(state)
	if err != nil {
		return 0, 0, err
	}
	col, score, err := e.s.OptimalMove(context.Background(), p)
	if err != nil {
		return 0, 0, err
	}
	return col + 1, score, nil
}
