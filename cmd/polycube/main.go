// Command polycube is the CLI entrypoint (spec.md §6.3, §6.4): it reads
// a configuration token list from its arguments, a puzzle-definition
// stream from standard input, and drives one solver.Solver per puzzle
// in the stream, writing solutions and statistics to standard output.
// Dispatch follows the teacher's cmd/gambit/main.go shape — an
// args[0] subcommand switch with exitOK/exitErr exit codes — reduced
// here to the single "solve" subcommand this program needs.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bpasanek/puzzlecode/config"
	"github.com/bpasanek/puzzlecode/dedup"
	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/output"
	"github.com/bpasanek/puzzlecode/perf"
	"github.com/bpasanek/puzzlecode/puzzle"
	"github.com/bpasanek/puzzlecode/puzzlefmt"
	"github.com/bpasanek/puzzlecode/solver"
)

const (
	exitOK  = 0
	exitErr = 1

	usage = "usage: polycube solve [option=value ...] < puzzle-file"
)

// ErrSizeLimit covers a piece count too large for any supported
// dedup.StateID width (spec.md §7 "Size-limit error").
var ErrSizeLimit = errors.New("polycube: piece count exceeds supported id width")

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "solve":
		return runSolve(args[1:])
	default:
		return errors.New(usage)
	}
}

func runSolve(tokens []string) error {
	cfg, warnings, err := config.Load(tokens)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Println("warning:", w.String())
	}

	solver.InstallSignalHandlers()

	puzzles, err := puzzlefmt.Parse(os.Stdin)
	if err != nil {
		return err
	}

	failures := 0
	for i, pc := range puzzles {
		if err := solveOne(pc, cfg); err != nil {
			log.Printf("puzzle %d: %v", i, err)
			failures++
			continue // spec.md §7: embedder decides whether to continue the stream
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d puzzles failed", failures, len(puzzles))
	}
	return nil
}

func solveOne(pc *puzzlefmt.PuzzleConfig, cfg config.RunConfig) error {
	pz, err := puzzle.Build(pc, cfg.RedundancyFilter)
	if err != nil {
		return err
	}

	meter := perf.NewMeter()
	formatter := output.NewFormatter(cfg.Format)
	start := time.Now()

	total := 0
	for _, sh := range pz.Shapes {
		total += sh.MobileCount()
	}

	switch {
	case total <= 0xff:
		err = runWidth[uint8](pz, cfg, meter, formatter)
	case total <= 0xffff:
		err = runWidth[uint16](pz, cfg, meter, formatter)
	case total <= 0xffffffff:
		err = runWidth[uint32](pz, cfg, meter, formatter)
	default:
		err = fmt.Errorf("%w: %d pieces", ErrSizeLimit, total)
	}
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintln(os.Stdout, meter.Report(start))
		if cfg.Info {
			for _, line := range meter.Lines() {
				fmt.Fprintln(os.Stdout, line)
			}
		}
	}
	return nil
}

// runWidth instantiates a Solver at piece-id width T (spec.md §4.10,
// supplemented in SPEC_FULL.md as a Go generic type parameter) and
// either runs the search to completion or, when cfg.Sample is set,
// runs the Monte Carlo sampler instead.
func runWidth[T dedup.StateID](pz *puzzle.Puzzle, cfg config.RunConfig, meter *perf.Meter, formatter *output.Formatter) error {
	s := solver.New[T](solver.Options{
		Grid:               pz.Grid,
		Shapes:             pz.Shapes,
		Index:              pz.Index,
		SymmetricPerms:     pz.Analysis.Permutations,
		RedundancyFilterID: pz.RedundancyFilterShapeID,
	}, cfg.Solver, meter)

	if cfg.Sample != nil {
		var result solver.SampleResult
		if cfg.Parallel {
			result = solver.ParallelSample[T](solver.Options{
				Grid:               pz.Grid,
				Shapes:             pz.Shapes,
				Index:              pz.Index,
				SymmetricPerms:     pz.Analysis.Permutations,
				RedundancyFilterID: pz.RedundancyFilterShapeID,
			}, cfg.Solver, meter, cfg.Sample.Trials, cfg.Sample.Boundary, cfg.Sample.Seed)
		} else {
			result = s.Sample(cfg.Sample.Trials, cfg.Sample.Boundary, cfg.Sample.Seed)
		}
		fmt.Fprintf(os.Stdout, "trials=%d completed=%d dead=%d\n", result.Trials, result.Completed, result.Dead)
		return nil
	}

	s.Solve(func(sol solver.Solution) bool {
		writeSolution(pz, sol, formatter)
		return true
	})
	return nil
}

// writeSolution renders one completed (or goal-truncated) placement,
// including the puzzle's stationary pieces so Full/Sub-puzzle output
// stays re-emittable and Brief output shows the whole occupied volume.
func writeSolution(pz *puzzle.Puzzle, sol solver.Solution, formatter *output.Formatter) {
	op := output.Puzzle{Dims: pz.Dims, OneSide: pz.OneSide}
	for _, sp := range pz.Stationary {
		op.Pieces = append(op.Pieces, output.PieceRecord{Name: sp.Name, Stationary: true, Cells: sp.Cells})
	}
	for _, pi := range sol.Placements {
		name := fmt.Sprintf("shape%d", pi.Shape.ID)
		if pi.Piece != nil {
			name = pi.Piece.Name
		}
		cells := make([]geometry.Point, len(pi.Cells))
		for i, c := range pi.Cells {
			cells[i] = c.Point
		}
		op.Pieces = append(op.Pieces, output.PieceRecord{Name: name, Cells: cells})
	}
	if err := formatter.Write(os.Stdout, op); err != nil {
		log.Println("write solution:", err)
	}
}
