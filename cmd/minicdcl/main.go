// Command minicdcl is the command-line front end for the solver package:
// it reads a DIMACS CNF instance and reports SATISFIABLE, UNSATISFIABLE,
// or INDETERMINATE (exit code 10, 20, or 0 respectively). It is adapted
// from crillab/gophersat's main.go, which parses its flags with the
// standard library's flag package; this command uses spf13/cobra and
// spf13/pflag instead.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minicdcl",
		Short: "a conflict-driven clause learning SAT solver",
	}
	cmd.AddCommand(newSolveCmd())
	return cmd
}
