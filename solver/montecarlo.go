package solver

import (
	"runtime"
	"sync"

	"github.com/bpasanek/puzzlecode/dedup"
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/perf"
	"github.com/bpasanek/puzzlecode/piece"
	"github.com/bpasanek/puzzlecode/placement"
	"github.com/bpasanek/puzzlecode/rng"
)

// SampleResult summarises a Monte Carlo run (spec.md §4.8 "Monte Carlo
// mechanism", §6.3 "sample=T,R,S"): Dead counts trials whose random
// descent reached a zero-row column before reaching the boundary. A
// boundary R below the puzzle's maximum tiling threshold (spec.md §8
// "Monte Carlo with R below threshold: error") is rejected by the
// caller before Sample runs, not by Sample itself.
type SampleResult struct {
	Trials    int
	Completed int
	Dead      int
}

// Sample implements the Monte Carlo mechanism: randomize the DLX rows
// once, then T times in a row descend a single random path (one row
// chosen per column, relying on the prior randomize rather than a
// fresh shuffle per trial) until the remaining piece count crosses
// boundary, unwind the trial fully, and repeat. perf.MonteCarloTrials
// records one increment per trial at the depth it stopped.
func (s *Solver[T]) Sample(trials, boundary int, seed uint64) SampleResult {
	r := rng.New(seed)
	s.matrix.Randomize(r)

	var result SampleResult
	for i := 0; i < trials; i++ {
		depth := len(s.stack)
		dead := s.sampleOnce(boundary, r)
		result.Trials++
		if dead {
			result.Dead++
		} else {
			result.Completed++
		}
		s.meter.Incr(perf.MonteCarloTrials, s.remaining)
		s.unwindTo(depth)
	}
	return result
}

// sampleOnce descends from the current state along a single randomly
// chosen path until remaining <= boundary (success) or a column with
// no live rows is reached (dead). It never unwinds; the caller does
// that via unwindTo once the trial's outcome is recorded.
func (s *Solver[T]) sampleOnce(boundary int, r *rng.Source) bool {
	for s.remaining > boundary {
		colIdx, _ := s.bestColumn()
		if colIdx < 0 {
			return true
		}
		col := s.matrix.Column(colIdx)
		if col.NumRow == 0 {
			return true
		}
		rows := s.matrix.RowsOf(colIdx)
		s.placeDLX(rows[r.Intn(len(rows))])
	}
	return false
}

// unwindTo pops placements made since depth, restoring the matrix and
// monitors through the same path the main search uses on backtrack.
func (s *Solver[T]) unwindTo(depth int) {
	for len(s.stack) > depth {
		s.unplaceDLX()
	}
}

// ParallelSample runs trials Monte Carlo trials across GOMAXPROCS
// workers, adapting bench.Perft's runPerftParallel shape: divide the
// work (here, trial count rather than move count) into per-worker
// chunks, run each chunk to completion on its own goroutine, and fold
// results back with a mutex instead of atomics (SampleResult and
// perf.Meter aren't single integers, so atomic.AddUint64 doesn't apply
// directly — the mutex guards the same few-line merge that function
// would otherwise need one atomic op per field for).
//
// Each worker gets its own cloned grid.Grid (see grid.Clone) and a
// freshly regenerated placement.Index built against that clone, so
// opts' own Grid and Index are read-only for the whole call and no
// worker's placeDLX/unplaceDLX ever touches another's GridPoint.Fill —
// respecting spec.md §5's "single solver instance solves one puzzle at
// a time" by giving every worker its own Solver instance entirely,
// rather than sharing one across goroutines.
func ParallelSample[T dedup.StateID](opts Options, cfg Config, meter *perf.Meter, trials, boundary int, seed uint64) SampleResult {
	workers := runtime.GOMAXPROCS(0)
	if workers > trials {
		workers = trials
	}
	if workers < 1 {
		workers = 1
	}

	chunk := trials / workers
	extra := trials % workers

	var wg sync.WaitGroup
	var mu sync.Mutex
	var result SampleResult
	for w := 0; w < workers; w++ {
		n := chunk
		if w < extra {
			n++
		}
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(n int, workerSeed uint64) {
			defer wg.Done()

			workerOpts := opts
			workerOpts.Grid = opts.Grid.Clone()
			workerOpts.Index = rebuildIndex(workerOpts.Grid, opts.Shapes)

			localMeter := perf.NewMeter()
			s := New[T](workerOpts, cfg, localMeter)
			local := s.Sample(n, boundary, workerSeed)

			mu.Lock()
			result.Trials += local.Trials
			result.Completed += local.Completed
			result.Dead += local.Dead
			meter.Merge(localMeter)
			mu.Unlock()
		}(n, seed+uint64(w))
	}
	wg.Wait()
	return result
}

// rebuildIndex regenerates every shape's placement list against g
// (puzzle.Build's own pattern for turning a Grid + []*piece.Shape into
// a placement.Index) rather than reusing the caller's Index, whose
// Placements carry *grid.GridPoint cell pointers into the original,
// un-cloned grid.
func rebuildIndex(g *grid.Grid, shapes []*piece.Shape) *placement.Index {
	idx := placement.NewIndex()
	for _, sh := range shapes {
		for _, pl := range placement.Generate(g, sh) {
			idx.Add(pl)
		}
	}
	return idx
}
