package c4

import "testing"

func play(t *testing.T, p *Position, cols ...int) *Position {
	t.Helper()
	for _, col := range cols {
		var e error
		p, e = p.Move(col)
		if e != nil {
			t.Fatalf("move %d: %v", col+1, e)
		}
	}
	return p
}

func TestToMove(t *testing.T) {
	p := New(Config{})
	if p.ToMove() != Red {
		t.Error("red does not move first")
	}
	p = play(t, p, 3)
	if p.ToMove() != Yellow {
		t.Error("yellow does not move second")
	}
	if p.MoveNumber() != 1 {
		t.Error("MoveNumber:", p.MoveNumber())
	}
}

func TestCanPlay(t *testing.T) {
	p := New(Config{})
	for col := 0; col < 7; col++ {
		if !p.CanPlay(col) {
			t.Errorf("cannot play column %d of empty board", col+1)
		}
	}
	if p.CanPlay(-1) || p.CanPlay(7) {
		t.Error("out-of-range column playable")
	}
	p = play(t, p, 0, 0, 0, 0, 0, 0)
	if p.CanPlay(0) {
		t.Error("full column playable")
	}
	if _, e := p.Move(0); e != ErrColumnFull {
		t.Error("expected ErrColumnFull, got", e)
	}
}

func TestVerticalWin(t *testing.T) {
	// red stacks column 4, yellow column 1
	p := play(t, New(Config{}), 3, 0, 3, 0, 3, 0)
	if over, _ := p.GameOver(); over {
		t.Fatal("game over before the winning move")
	}
	if !p.IsWinningMove(3) {
		t.Error("winning move not detected")
	}
	if !p.CanWinNext() {
		t.Error("CanWinNext is false with a win on the board")
	}
	p = play(t, p, 3)
	over, winner := p.GameOver()
	if !over || winner != Red {
		t.Errorf("over=%v winner=%v, want red win", over, winner)
	}
	if _, e := p.Move(0); e != ErrGameOver {
		t.Error("expected ErrGameOver, got", e)
	}
}

func TestHorizontalWin(t *testing.T) {
	p := play(t, New(Config{}), 0, 0, 1, 1, 2, 2)
	if !p.IsWinningMove(3) {
		t.Error("horizontal win not detected")
	}
	p = play(t, p, 3)
	if over, winner := p.GameOver(); !over || winner != Red {
		t.Error("red horizontal win not scored")
	}
}

func TestDiagonalWin(t *testing.T) {
	// build a rising diagonal for red: (1,0) (2,1) (3,2) (4,3)
	p := play(t, New(Config{}), 0, 1, 1, 2, 3, 2, 2, 3, 3, 6, 3)
	if over, winner := p.GameOver(); !over || winner != Red {
		board := ""
		for row := 5; row >= 0; row-- {
			for col := 0; col < 7; col++ {
				switch p.At(col, row) {
				case Red:
					board += "x"
				case Yellow:
					board += "o"
				default:
					board += "."
				}
			}
			board += "\n"
		}
		t.Errorf("diagonal win not scored (over=%v winner=%v)\n%s", over, winner, board)
	}
}

func TestAt(t *testing.T) {
	p := play(t, New(Config{}), 3, 3, 0)
	if c := p.At(3, 0); c != Red {
		t.Error("At(3,0):", c)
	}
	if c := p.At(3, 1); c != Yellow {
		t.Error("At(3,1):", c)
	}
	if c := p.At(0, 0); c != Red {
		t.Error("At(0,0):", c)
	}
	if c := p.At(5, 0); c != NoColor {
		t.Error("At(5,0):", c)
	}
}

func TestKeyDistinguishesPositions(t *testing.T) {
	a := play(t, New(Config{}), 0, 1)
	b := play(t, New(Config{}), 1, 0)
	if a.Key() == b.Key() {
		t.Error("transposed ownership shares a key")
	}
	c := play(t, New(Config{}), 0, 1)
	if a.Key() != c.Key() {
		t.Error("identical positions have different keys")
	}
}

func TestNonLosingMoves(t *testing.T) {
	// yellow to move; red threatens to complete 4 in column 4
	p := play(t, New(Config{}), 3, 0, 3, 0, 3)
	moves := p.NonLosingMoves()
	if moves == 0 {
		t.Fatal("no non-losing move in a defensible position")
	}
	col := p.ColumnOf(moves)
	if moves&(moves-1) != 0 || col != 3 {
		t.Errorf("blocking move not forced: moves=%x col=%d", moves, col+1)
	}

	// red owns c3 c4 c5 on the bottom row: threats at both c2 and
	// c6, and yellow cannot parry both
	p = play(t, New(Config{}), 2, 0, 3, 0, 4)
	if p.NonLosingMoves() != 0 {
		t.Error("double threat still reports a parry")
	}
}

func TestDraw(t *testing.T) {
	// fill the board without four in a row: columns in pairs,
	// pattern shifted every two columns
	order := []int{
		0, 1, 0, 1, 0, 1,
		1, 0, 1, 0, 1, 0,
		2, 3, 2, 3, 2, 3,
		3, 2, 3, 2, 3, 2,
		4, 5, 4, 5, 4, 5,
		5, 4, 5, 4, 5, 4,
		6, 6, 6, 6, 6, 6,
	}
	p := New(Config{})
	for i, col := range order {
		var e error
		p, e = p.Move(col)
		if e != nil {
			t.Fatalf("move %d (column %d): %v", i+1, col+1, e)
		}
		if over, winner := p.GameOver(); over && winner != NoColor {
			t.Fatalf("unexpected %v win after move %d", winner, i+1)
		}
	}
	over, winner := p.GameOver()
	if !over || winner != NoColor {
		t.Errorf("full board: over=%v winner=%v, want draw", over, winner)
	}
}
