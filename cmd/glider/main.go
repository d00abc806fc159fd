// Command glider runs the distributed stencil engine from the command
// line, wiring pflag-parsed parameters into internal/automaton and exiting
// with exit code 0 on normal or early-stopping termination, non-zero on
// configuration or transport failure.
//
// Bring-up constructs the simulation, runs it, and exits through atexit
// rather than a bare os.Exit, so deferred atexit handlers registered deeper
// in the stack still fire.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/mpol1t/glider/internal/automaton"
	"github.com/mpol1t/glider/internal/params"
	"github.com/mpol1t/glider/internal/sink"
)

func main() {
	p := params.Default()

	var seed int64
	pflag.Int64Var(&seed, "seed", int64(p.Seed), "global PRNG seed")
	pflag.IntVar(&p.Length, "length", p.Length, "square lattice side N")
	pflag.Float64Var(&p.Prob, "prob", p.Prob, "alive-probability rho")
	pflag.IntVar(&p.MaxSteps, "max-steps", p.MaxSteps, "generation bound T")
	pflag.IntVar(&p.PrintInterval, "print-interval", p.PrintInterval, "interval record cadence")
	pflag.BoolVar(&p.WriteToFile, "write-to-file", p.WriteToFile, "dump per-tile bitmap at end")
	pflag.BoolVar(&p.EarlyStopping, "early-stopping", p.EarlyStopping, "enable threshold halting")
	pflag.IntVar(&p.Processes, "processes", p.Processes, "number of simulated ranks")
	pflag.BoolVar(&p.Verbose, "verbose", p.Verbose, "log per-rank placement at bring-up")
	pflag.StringVar(&p.OutputDir, "output-dir", p.OutputDir, "directory for bitmap dumps")
	pflag.Parse()

	p.Seed = uint32(seed)

	logger := sink.NewSlogLogger(p.Verbose)
	dumper := sink.NewFileDumper(p.OutputDir)

	sim, err := automaton.New(p, logger, dumper)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
		return
	}

	steps, reason, err := sim.Run()
	if err != nil {
		slog.Error("transport failure", "step", steps, "err", err)
		atexit.Exit(1)
		return
	}

	if closeErr := sim.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
		atexit.Exit(1)
		return
	}

	if reason != automaton.StopNone {
		slog.Info("stopped early", "step", steps, "reason", string(reason))
	}

	atexit.Exit(0)
}
