package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type stubSolver struct {
	move  int
	score int
	err   error
}

func (s *stubSolver) OptimalMove(state string) (int, int, error) {
	return s.move, s.score, s.err
}

func TestRunUsage(t *testing.T) {
	var out, errw bytes.Buffer
	code := run(nil, &stubSolver{}, &out, &errw)
	if code != 0 {
		t.Errorf("run(nil): exit %d, want 0", code)
	}
	if !strings.HasPrefix(out.String(), "usage:") {
		t.Errorf("run(nil): output %q, want usage message", out.String())
	}
}

func TestRunIgnoresExtraArgs(t *testing.T) {
	var out, errw bytes.Buffer
	code := run([]string{"44", "71"}, &stubSolver{move: 4, score: 0}, &out, &errw)
	if code != 0 {
		t.Errorf("exit %d, want 0", code)
	}
	if out.String() != "44 4 0\n" {
		t.Errorf("output %q, want %q", out.String(), "44 4 0\n")
	}
}

func TestRunFormatting(t *testing.T) {
	cases := []struct {
		state string
		move  int
		score int
		want  string
	}{
		{"44", 4, 0, "44 4 0\n"},
		{"71", 1, 17, "71 1 1\n"},
		{"1", 7, -3, "1 7 -1\n"},
		{"4455", 6, 1, "4455 6 1\n"},
		{"4455", 6, -1, "4455 6 -1\n"},
	}
	for _, tc := range cases {
		var out, errw bytes.Buffer
		code := run([]string{tc.state}, &stubSolver{move: tc.move, score: tc.score}, &out, &errw)
		if code != 0 {
			t.Errorf("run(%q): exit %d, want 0", tc.state, code)
		}
		if out.String() != tc.want {
			t.Errorf("run(%q): output %q, want %q", tc.state, out.String(), tc.want)
		}
		if errw.Len() != 0 {
			t.Errorf("run(%q): unexpected stderr %q", tc.state, errw.String())
		}
	}
}

func TestRunSolverError(t *testing.T) {
	var out, errw bytes.Buffer
	code := run([]string{"88"}, &stubSolver{err: errors.New("bad column")}, &out, &errw)
	if code != 0 {
		t.Errorf("exit %d, want 0", code)
	}
	if out.String() != "\n" {
		t.Errorf("output %q, want a blank line", out.String())
	}
	if !strings.Contains(errw.String(), "bad column") {
		t.Errorf("stderr %q, want the solver error", errw.String())
	}
}

func TestEngineRejectsBadState(t *testing.T) {
	e := &engine{}
	if _, _, err := e.OptimalMove("8"); err == nil {
		t.Error("OptimalMove(\"8\"): no error for out-of-range column")
	}
	if _, _, err := e.OptimalMove("x"); err == nil {
		t.Error("OptimalMove(\"x\"): no error for non-digit input")
	}
}
