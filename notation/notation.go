// Package notation handles the compact Connect-Four move-sequence
// notation: a position is a string of digits, one per move, each the
// 1-indexed column the stone was dropped in, applied in order from
// the empty board.
package notation

import (
	"fmt"
	"strings"

	"github.com/gamesolver/connect4/c4"
)

// ParseMoves converts a move-sequence string into 0-indexed columns.
// It checks syntax only; legality is checked when the moves are
// applied.
func ParseMoves(s string) ([]int, error) {
	cols := make([]int, 0, len(s))
	for i, r := range s {
		if r < '1' || r > '9' {
			return nil, fmt.Errorf("move %d: bad column %q", i+1, r)
		}
		cols = append(cols, int(r-'1'))
	}
	return cols, nil
}

// FormatMoves renders 0-indexed columns back into the digit string.
func FormatMoves(cols []int) string {
	var out strings.Builder
	for _, col := range cols {
		out.WriteByte(byte('1' + col))
	}
	return out.String()
}

// ParsePosition applies a move-sequence string from the empty
// standard board.
func ParsePosition(s string) (*c4.Position, error) {
	return Position(c4.Config{}, s)
}

// Position applies a move-sequence string from an empty board of the
// given configuration.
func Position(cfg c4.Config, s string) (*c4.Position, error) {
	cols, err := ParseMoves(s)
	if err != nil {
		return nil, err
	}
	p := c4.New(cfg)
	for i, col := range cols {
		next, err := p.Move(col)
		if err != nil {
			return nil, fmt.Errorf("move %d (column %d): %w", i+1, col+1, err)
		}
		p = next
	}
	return p, nil
}
