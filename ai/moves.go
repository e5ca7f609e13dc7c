package ai

// moveSorter orders the moves of one node by insertion sort on their
// score (the number of winning spots the move creates). Nodes have at
// most Width moves, and the 64-bit encoding caps Width at 32 (each
// column takes Height+1 bits), so the quadratic sort beats anything
// allocating.
type moveSorter struct {
	n       int
	entries [32]struct {
		col   int
		score int
	}
}

func (ms *moveSorter) add(col, score int) {
	i := ms.n
	for i > 0 && ms.entries[i-1].score > score {
		ms.entries[i] = ms.entries[i-1]
		i--
	}
	ms.entries[i].col = col
	ms.entries[i].score = score
	ms.n++
}

// next pops the highest-scored remaining move.
func (ms *moveSorter) next() (int, bool) {
	if ms.n == 0 {
		return 0, false
	}
	ms.n--
	return ms.entries[ms.n].col, true
}
