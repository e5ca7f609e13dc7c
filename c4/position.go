package c4

import (
	"errors"

	"github.com/gamesolver/connect4/bitboard"
)

type Config struct {
	Width  int
	Height int

	c bitboard.Constants
}

const (
	DefaultWidth  = 7
	DefaultHeight = 6
)

type Color byte

const (
	NoColor Color = iota
	Red           // moves first
	Yellow
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return "none"
	}
}

func (c Color) Flip() Color {
	switch c {
	case Red:
		return Yellow
	case Yellow:
		return Red
	}
	return c
}

// Position is a Connect-Four position in the two-word bitboard
// encoding: current is the set of stones belonging to the side to
// move, mask the set of all stones. Positions are immutable; Move
// returns a new Position.
type Position struct {
	cfg *Config

	current uint64
	mask    uint64

	move   int
	over   bool
	winner Color
}

func New(cfg Config) *Position {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	cfg.c = bitboard.Precompute(uint(cfg.Width), uint(cfg.Height))
	return &Position{cfg: &cfg}
}

var (
	ErrColumnFull = errors.New("column is full")
	ErrBadColumn  = errors.New("no such column")
	ErrGameOver   = errors.New("game is already decided")
)

func (p *Position) Width() int      { return p.cfg.Width }
func (p *Position) Height() int     { return p.cfg.Height }
func (p *Position) MoveNumber() int { return p.move }

func (p *Position) ToMove() Color {
	if p.move%2 == 0 {
		return Red
	}
	return Yellow
}

// Key is a perfect hash of the position: current+mask assigns every
// column a unique bit pattern with a marker above the topmost stone
// of the side to move.
func (p *Position) Key() uint64 {
	return p.current + p.mask + p.cfg.c.Bottom
}

func (p *Position) GameOver() (bool, Color) {
	return p.over, p.winner
}

// CanPlay reports whether col (0-indexed) has room for another stone.
func (p *Position) CanPlay(col int) bool {
	if col < 0 || col >= p.cfg.Width {
		return false
	}
	return p.mask&p.cfg.c.TopMaskCol(uint(col)) == 0
}

// IsWinningMove reports whether dropping in col wins at once for the
// side to move.
func (p *Position) IsWinningMove(col int) bool {
	return p.winningSpots()&p.possible()&p.cfg.c.ColumnMask(uint(col)) != 0
}

// CanWinNext reports whether the side to move has an immediate win.
func (p *Position) CanWinNext() bool {
	return p.winningSpots()&p.possible() != 0
}

// Move drops a stone in col (0-indexed) and returns the resulting
// position.
func (p *Position) Move(col int) (*Position, error) {
	if col < 0 || col >= p.cfg.Width {
		return nil, ErrBadColumn
	}
	if p.over {
		return nil, ErrGameOver
	}
	if !p.CanPlay(col) {
		return nil, ErrColumnFull
	}
	bit := (p.mask + p.cfg.c.BottomMaskCol(uint(col))) & p.cfg.c.ColumnMask(uint(col))
	// the new side to move owns the old opponent's stones
	next := &Position{
		cfg:     p.cfg,
		current: p.current ^ p.mask,
		mask:    p.mask | bit,
		move:    p.move + 1,
	}
	if bitboard.HasAlignment(&p.cfg.c, p.current|bit) {
		next.over = true
		next.winner = p.ToMove()
	} else if next.mask == p.cfg.c.Board {
		next.over = true
	}
	return next, nil
}

// At returns the color of the stone at (col, row), row 0 at the
// bottom, or NoColor for an empty square.
func (p *Position) At(col, row int) Color {
	bit := uint64(1) << (uint(row) + uint(col)*p.cfg.c.H1)
	if p.mask&bit == 0 {
		return NoColor
	}
	if p.current&bit != 0 {
		return p.ToMove()
	}
	return p.ToMove().Flip()
}

// possible is the set of squares a stone can be dropped onto.
func (p *Position) possible() uint64 {
	return (p.mask + p.cfg.c.Bottom) & p.cfg.c.Board
}

func (p *Position) winningSpots() uint64 {
	return bitboard.WinningSpots(&p.cfg.c, p.current, p.mask)
}

func (p *Position) opponentWinningSpots() uint64 {
	return bitboard.WinningSpots(&p.cfg.c, p.current^p.mask, p.mask)
}

// NonLosingMoves returns the set of playable squares that do not hand
// the opponent an immediate win, or 0 if every move loses. When the
// opponent threatens a win the move is forced.
func (p *Position) NonLosingMoves() uint64 {
	possible := p.possible()
	opponentWin := p.opponentWinningSpots()
	forced := possible & opponentWin
	if forced != 0 {
		if forced&(forced-1) != 0 {
			// two threats, no parry
			return 0
		}
		possible = forced
	}
	// never play directly below an opponent winning spot
	return possible &^ (opponentWin >> 1)
}

// MoveScore counts the winning spots the side to move would own after
// dropping on the square in moveBit. Used for move ordering.
func (p *Position) MoveScore(moveBit uint64) int {
	return bitboard.Popcount(bitboard.WinningSpots(&p.cfg.c, p.current|moveBit, p.mask))
}

// ColumnOf maps a single-square bitmask back to its column.
func (p *Position) ColumnOf(moveBit uint64) int {
	return int(bitboard.TrailingZeros(moveBit) / p.cfg.c.H1)
}

// Constants exposes the precomputed board masks.
func (p *Position) Constants() *bitboard.Constants {
	return &p.cfg.c
}
