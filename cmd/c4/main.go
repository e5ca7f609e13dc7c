package main

import (
	"flag"
	"os"

	"context"

	"github.com/gamesolver/connect4/cmd/internal/analyze"
	"github.com/gamesolver/connect4/cmd/internal/bench"
	"github.com/gamesolver/connect4/cmd/internal/play"
	"github.com/gamesolver/connect4/cmd/internal/selfplay"
	"github.com/gamesolver/connect4/cmd/internal/solve"
	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&solve.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&bench.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
