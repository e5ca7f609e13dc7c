// Package opt holds the solver flags shared by the subcommands.
package opt

import (
	"flag"

	"github.com/gamesolver/connect4/ai"
)

type Solver struct {
	Debug int
	Weak  bool
	Table bool
	Sort  bool
}

func (o *Solver) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.BoolVar(&o.Weak, "weak", false, "solve for win/draw/loss only")
	flags.BoolVar(&o.Table, "table", true, "use the transposition table")
	flags.BoolVar(&o.Sort, "sort", true, "sort moves by threats created")
}

func (o *Solver) BuildConfig() ai.SolverConfig {
	return ai.SolverConfig{
		Debug:   o.Debug,
		Weak:    o.Weak,
		NoTable: !o.Table,
		NoSort:  !o.Sort,
	}
}
