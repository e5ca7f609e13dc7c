package bitboard

import (
	"strconv"
	"testing"
)

func TestPrecompute(t *testing.T) {
	c := Precompute(7, 6)
	if c.H1 != 7 {
		t.Error("c.H1:", c.H1)
	}
	if c.Bottom != 0x0040810204081 {
		t.Error("c.Bottom:", strconv.FormatUint(c.Bottom, 16))
	}
	if c.Board != c.Bottom*((1<<6)-1) {
		t.Error("c.Board:", strconv.FormatUint(c.Board, 16))
	}
	if c.Top != c.Bottom<<6 {
		t.Error("c.Top:", strconv.FormatUint(c.Top, 16))
	}
	if c.ColumnMask(0) != (1<<6)-1 {
		t.Error("c.ColumnMask(0):", strconv.FormatUint(c.ColumnMask(0), 2))
	}
	if c.TopMaskCol(0) != 1<<5 {
		t.Error("c.TopMaskCol(0):", strconv.FormatUint(c.TopMaskCol(0), 2))
	}
	if c.BottomMaskCol(3) != 1<<21 {
		t.Error("c.BottomMaskCol(3):", strconv.FormatUint(c.BottomMaskCol(3), 2))
	}
}

// bit returns the mask of the square at (col, row), row 0 at the bottom.
func bit(c *Constants, col, row uint) uint64 {
	return 1 << (row + col*c.H1)
}

func TestHasAlignment(t *testing.T) {
	c := Precompute(7, 6)

	var vertical uint64
	for row := uint(0); row < 4; row++ {
		vertical |= bit(&c, 2, row)
	}
	if !HasAlignment(&c, vertical) {
		t.Error("vertical four not detected")
	}
	if HasAlignment(&c, vertical&^bit(&c, 2, 1)) {
		t.Error("broken vertical detected")
	}

	var horizontal uint64
	for col := uint(1); col < 5; col++ {
		horizontal |= bit(&c, col, 3)
	}
	if !HasAlignment(&c, horizontal) {
		t.Error("horizontal four not detected")
	}

	var diag uint64
	for i := uint(0); i < 4; i++ {
		diag |= bit(&c, i, i)
	}
	if !HasAlignment(&c, diag) {
		t.Error("rising diagonal not detected")
	}

	diag = 0
	for i := uint(0); i < 4; i++ {
		diag |= bit(&c, i, 3-i)
	}
	if !HasAlignment(&c, diag) {
		t.Error("falling diagonal not detected")
	}

	// three in a row wrapping around a column boundary must not count
	wrap := bit(&c, 0, 4) | bit(&c, 0, 5) | bit(&c, 1, 0) | bit(&c, 1, 1)
	if HasAlignment(&c, wrap) {
		t.Error("column wraparound detected as alignment")
	}
}

func TestWinningSpots(t *testing.T) {
	c := Precompute(7, 6)

	// three stacked stones in column 4: the square above completes it
	pos := bit(&c, 4, 0) | bit(&c, 4, 1) | bit(&c, 4, 2)
	spots := WinningSpots(&c, pos, pos)
	if spots != bit(&c, 4, 3) {
		t.Errorf("vertical spots=%x want %x", spots, bit(&c, 4, 3))
	}

	// _XXX_ on the bottom row: both ends are winning spots
	pos = bit(&c, 2, 0) | bit(&c, 3, 0) | bit(&c, 4, 0)
	spots = WinningSpots(&c, pos, pos)
	want := bit(&c, 1, 0) | bit(&c, 5, 0)
	if spots != want {
		t.Errorf("horizontal spots=%x want %x", spots, want)
	}

	// occupied completion squares are excluded
	mask := pos | bit(&c, 1, 0)
	spots = WinningSpots(&c, pos, mask)
	if spots != bit(&c, 5, 0) {
		t.Errorf("occupied spot not excluded: %x", spots)
	}
}

func BenchmarkWinningSpots(b *testing.B) {
	c := Precompute(7, 6)
	pos := bit(&c, 2, 0) | bit(&c, 3, 0) | bit(&c, 4, 1) | bit(&c, 3, 1)
	mask := pos | bit(&c, 4, 0) | bit(&c, 2, 1)
	for i := 0; i < b.N; i++ {
		WinningSpots(&c, pos, mask)
	}
}
