package bitboard

import "math/bits"

// Constants holds the precomputed masks for a board of a given
// geometry. Each column occupies Height+1 bits, least significant bit
// at the bottom; the sentinel row on top of each column keeps shifts
// from carrying into the neighboring column.
type Constants struct {
	Width, Height uint

	// H1 is the stride between adjacent columns (Height+1).
	H1 uint

	Bottom uint64
	Board  uint64
	Top    uint64
}

func Precompute(w, h uint) Constants {
	var c Constants
	if w*(h+1) > 64 {
		panic("bitboard: board does not fit in 64 bits")
	}
	c.Width = w
	c.Height = h
	c.H1 = h + 1
	for i := uint(0); i < w; i++ {
		c.Bottom |= 1 << (i * c.H1)
	}
	c.Board = c.Bottom * ((1 << h) - 1)
	c.Top = c.Bottom << h
	return c
}

func (c *Constants) ColumnMask(col uint) uint64 {
	return ((1 << c.Height) - 1) << (col * c.H1)
}

func (c *Constants) BottomMaskCol(col uint) uint64 {
	return 1 << (col * c.H1)
}

func (c *Constants) TopMaskCol(col uint) uint64 {
	return 1 << (c.Height - 1 + col*c.H1)
}

// HasAlignment reports whether pos contains four aligned stones in
// any of the four directions.
func HasAlignment(c *Constants, pos uint64) bool {
	// vertical
	m := pos & (pos >> 1)
	if m&(m>>2) != 0 {
		return true
	}
	// horizontal
	m = pos & (pos >> c.H1)
	if m&(m>>(2*c.H1)) != 0 {
		return true
	}
	// diagonals
	m = pos & (pos >> c.Height)
	if m&(m>>(2*c.Height)) != 0 {
		return true
	}
	m = pos & (pos >> (c.H1 + 1))
	if m&(m>>(2*(c.H1+1))) != 0 {
		return true
	}
	return false
}

// WinningSpots returns the set of free squares where dropping a stone
// of `position`'s color completes an alignment, given the full
// occupancy in mask.
func WinningSpots(c *Constants, position, mask uint64) uint64 {
	// vertical
	r := (position << 1) & (position << 2) & (position << 3)

	for _, shift := range []uint{c.H1, c.Height, c.H1 + 1} {
		p := (position << shift) & (position << (2 * shift))
		r |= p & (position << (3 * shift))
		r |= p & (position >> shift)
		p = (position >> shift) & (position >> (2 * shift))
		r |= p & (position << shift)
		r |= p & (position >> (3 * shift))
	}

	return r & (c.Board ^ mask)
}

func Popcount(x uint64) int {
	return bits.OnesCount64(x)
}

func TrailingZeros(x uint64) uint {
	return uint(bits.TrailingZeros64(x))
}
