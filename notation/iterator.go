package notation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gamesolver/connect4/c4"
)

// A Case is one line of a benchmark set: a position and its expected
// game-theoretic score, separated by whitespace.
type Case struct {
	Moves    string
	Score    int
	Position *c4.Position
}

// Iterator reads a benchmark set line by line. Usage follows the
// bufio.Scanner pattern:
//
//	it := notation.NewIterator(r)
//	for it.Next() {
//	    c := it.Case()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	scan *bufio.Scanner
	cfg  c4.Config

	line int
	cur  Case
	err  error
}

func NewIterator(r io.Reader) *Iterator {
	return &Iterator{scan: bufio.NewScanner(r)}
}

func (i *Iterator) Err() error {
	return i.err
}

func (i *Iterator) Line() int {
	return i.line
}

func (i *Iterator) Case() Case {
	return i.cur
}

func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}
	for i.scan.Scan() {
		i.line++
		text := strings.TrimSpace(i.scan.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			i.err = fmt.Errorf("line %d: want `moves score`, got %q", i.line, text)
			return false
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			i.err = fmt.Errorf("line %d: bad score %q", i.line, fields[1])
			return false
		}
		pos, err := Position(i.cfg, fields[0])
		if err != nil {
			i.err = fmt.Errorf("line %d: %w", i.line, err)
			return false
		}
		i.cur = Case{Moves: fields[0], Score: score, Position: pos}
		return true
	}
	i.err = i.scan.Err()
	return false
}
