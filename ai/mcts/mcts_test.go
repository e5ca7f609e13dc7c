package mcts

import (
	"testing"
	"time"

	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/notation"
)

func TestTakesImmediateWin(t *testing.T) {
	// red has three stacked in column 1
	p, err := notation.ParsePosition("121212")
	if err != nil {
		t.Fatal(err)
	}
	mc := NewMonteCarlo(MCTSConfig{Limit: 200 * time.Millisecond, Seed: 1})
	col := mc.GetMove(context.Background(), p)
	if col != 0 {
		t.Errorf("GetMove=%d, want the winning column 0", col)
	}
}

func TestBlocksImmediateLoss(t *testing.T) {
	// yellow must answer red's triple in column 4
	p, err := notation.ParsePosition("41414")
	if err != nil {
		t.Fatal(err)
	}
	mc := NewMonteCarlo(MCTSConfig{Limit: 500 * time.Millisecond, Seed: 1})
	col := mc.GetMove(context.Background(), p)
	if col != 3 {
		t.Errorf("GetMove=%d, want the blocking column 3", col)
	}
}

func TestSingleReply(t *testing.T) {
	// six columns full, only column 7 playable
	p, err := notation.ParsePosition("121212212121343434434343565656656565")
	if err != nil {
		t.Fatal(err)
	}
	mc := NewMonteCarlo(MCTSConfig{Limit: 10 * time.Millisecond, Seed: 1})
	if col := mc.GetMove(context.Background(), p); col != 6 {
		t.Errorf("GetMove=%d, want 6", col)
	}
}

func TestDecidedPosition(t *testing.T) {
	// red completes four across the bottom with the last move
	p, err := notation.ParsePosition("4455667")
	if err != nil {
		t.Fatal(err)
	}
	mc := NewMonteCarlo(MCTSConfig{Limit: 10 * time.Millisecond, Seed: 1})
	if col := mc.GetMove(context.Background(), p); col != -1 {
		t.Errorf("GetMove=%d on a finished game, want -1", col)
	}
}

func TestRespectsDeadline(t *testing.T) {
	p, err := notation.ParsePosition("44")
	if err != nil {
		t.Fatal(err)
	}
	mc := NewMonteCarlo(MCTSConfig{Limit: time.Minute, Seed: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	mc.GetMove(ctx, p)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("GetMove ran %s past a 100ms deadline", elapsed)
	}
}
