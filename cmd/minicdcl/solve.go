package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/audemard/minicdcl/dimacs"
	"github.com/audemard/minicdcl/solver"
)

func newSolveCmd() *cobra.Command {
	var (
		verb      int
		cpuLim    int
		memLimMB  int
		varDecay  float64
		claDecay  float64
		luby      bool
		gcFrac    float64
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "solve [file.cnf|file.cnf.gz] [output]",
		Short: "solve a DIMACS CNF instance",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			if logFormat == "json" {
				log.SetFormatter(&logrus.JSONFormatter{})
			}

			cfg := solver.DefaultConfig()
			cfg.Verbosity = verb
			cfg.VarDecay = varDecay
			cfg.ClauseDecay = claDecay
			cfg.LubyRestart = luby
			cfg.GarbageFrac = gcFrac

			if memLimMB > 0 {
				debug.SetMemoryLimit(int64(memLimMB) << 20)
			}

			s := solver.New(cfg, log)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			log.WithField("path", args[0]).Info("parsing problem")
			if _, err := dimacs.Parse(f, s); err != nil {
				return err
			}

			if cpuLim > 0 {
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cpuLim)*time.Second)
				defer cancel()
				go func() {
					<-ctx.Done()
					s.Interrupt()
				}()
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				if _, ok := <-sigCh; ok {
					s.Interrupt()
				}
			}()

			status, err := s.Solve()
			if err != nil {
				return err
			}

			out := os.Stdout
			if len(args) == 2 {
				outFile, err := os.Create(args[1])
				if err != nil {
					return err
				}
				defer outFile.Close()
				out = outFile
			}
			writeResult(out, status, s.Model())

			switch status {
			case solver.Sat:
				os.Exit(10)
			case solver.Unsat:
				os.Exit(20)
			default:
				os.Exit(0)
			}
			return nil
		},
	}

	registerSolveFlags(cmd.Flags(), &verb, &cpuLim, &memLimMB, &varDecay, &claDecay, &luby, &gcFrac, &logFormat)

	return cmd
}

// writeResult prints status and, on Sat, the model in DIMACS output
// convention: a "s ..." status line followed by a "v ..." line of signed,
// 1-based literals terminated by 0. Adapted from gophersat's
// solver.Solver.OutputModel, which writes the same convention to stdout
// unconditionally rather than to a caller-chosen writer.
func writeResult(w io.Writer, status solver.Status, model []solver.LBool) {
	switch status {
	case solver.Sat:
		fmt.Fprintln(w, "s SATISFIABLE")
		fmt.Fprint(w, "v ")
		for i, val := range model {
			if val == solver.LFalse {
				fmt.Fprintf(w, "%d ", -(i + 1))
			} else {
				fmt.Fprintf(w, "%d ", i+1)
			}
		}
		fmt.Fprintln(w, "0")
	case solver.Unsat:
		fmt.Fprintln(w, "s UNSATISFIABLE")
	default:
		fmt.Fprintln(w, "s INDETERMINATE")
	}
}

// registerSolveFlags declares solve's flags on an explicit *pflag.FlagSet
// rather than going through cobra.Command.Flags() at each call site, so
// the flag set can be built and tested independently of a *cobra.Command.
func registerSolveFlags(flags *pflag.FlagSet, verb, cpuLim, memLimMB *int, varDecay, claDecay *float64, luby *bool, gcFrac *float64, logFormat *string) {
	flags.IntVar(verb, "verb", 0, "verbosity level (0, 1, or 2)")
	flags.IntVar(cpuLim, "cpu-lim", 0, "time limit in seconds, measured as wall-clock time from the end of parsing, not CPU time (0 = unlimited)")
	flags.IntVar(memLimMB, "mem-lim", 0, "memory limit in MB (0 = unlimited)")
	flags.Float64Var(varDecay, "var-decay", 0.95, "variable activity decay factor")
	flags.Float64Var(claDecay, "cla-decay", 0.999, "clause activity decay factor")
	flags.BoolVar(luby, "luby", true, "use the Luby restart sequence")
	flags.Float64Var(gcFrac, "gc-frac", 0.20, "wasted arena fraction that triggers garbage collection")
	flags.StringVar(logFormat, "log-format", "text", "stats log format: text or json")
}
