package ai

import (
	"golang.org/x/net/context"

	"github.com/gamesolver/connect4/c4"
)

// Player picks a column (0-indexed) to drop in.
type Player interface {
	GetMove(ctx context.Context, p *c4.Position) int
}
