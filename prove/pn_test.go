package prove

import (
	"context"
	"testing"

	"github.com/gamesolver/connect4/notation"
)

func prove(t *testing.T, moves string, maxNodes uint64) ProofResult {
	t.Helper()
	p, err := notation.ParsePosition(moves)
	if err != nil {
		t.Fatal(err)
	}
	return New(Config{MaxNodes: maxNodes}).Prove(context.Background(), p)
}

func TestProveImmediateWin(t *testing.T) {
	r := prove(t, "121212", 0)
	if r.Result != EvalTrue {
		t.Fatalf("result=%s, want proven", r.Result)
	}
	if r.Move != 0 {
		t.Errorf("winning move=%d, want 0", r.Move)
	}
}

func TestProveForcedWin(t *testing.T) {
	// yellow wins this midgame position (score +6)
	r := prove(t, "2252576253462244111563365343671", 0)
	if r.Result != EvalTrue {
		t.Errorf("result=%s, want proven", r.Result)
	}
	if r.Move < 0 {
		t.Error("no winning move reported")
	}
}

func TestDisproveLostPosition(t *testing.T) {
	// yellow to move; red mates in two regardless
	r := prove(t, "44455554221", 0)
	if r.Result != EvalFalse {
		t.Errorf("result=%s, want disproven", r.Result)
	}
}

func TestDisproveDraw(t *testing.T) {
	// only column 7 left; the game is a forced draw, so no win
	r := prove(t, "121212212121343434434343565656656565", 0)
	if r.Result != EvalFalse {
		t.Errorf("result=%s, want disproven", r.Result)
	}
	if r.Stats.Nodes > 100 {
		t.Errorf("forced line expanded %d nodes", r.Stats.Nodes)
	}
}

func TestMaxNodes(t *testing.T) {
	// an opening position is out of reach for a tiny node budget
	r := prove(t, "44", 100)
	if r.Result != EvalUnknown {
		t.Errorf("result=%s, want unknown under node limit", r.Result)
	}
}
