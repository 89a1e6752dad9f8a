package solver

import (
	"github.com/bpasanek/puzzlecode/dlx"
	"github.com/bpasanek/puzzlecode/heuristic"
	"github.com/bpasanek/puzzlecode/perf"
	"github.com/bpasanek/puzzlecode/placement"
)

// descend is the per-frame recursion skeleton of spec.md §4.8: goal
// check, fit/parity/volume filters, parity/volume backtrack checks,
// the DLX-to-tiling transition test, column selection, and the
// place/recurse/unplace loop. Returns false if the caller's onSolution
// callback asked the search to stop.
func (s *Solver[T]) descend() bool {
	s.meter.Incr(perf.Attempts, s.remaining)
	s.pollSignals()
	s.trace()

	if s.cfg.Goal > 0 && s.remaining == s.cfg.Goal {
		s.meter.Incr(perf.Solutions, s.remaining)
		return s.emit()
	}
	if s.remaining == 0 {
		s.meter.Incr(perf.Solutions, 0)
		return s.emit()
	}

	filterDepth := s.matrix.FilterDepth()
	defer s.matrix.UnfilterTo(filterDepth)

	if s.cfg.FitFilter.active(s.remaining, s.rootRemaining) && !s.fitFilterOK() {
		s.meter.Incr(perf.FitFiltered, s.remaining)
		return true
	}
	if s.cfg.ParityFilter.active(s.remaining, s.rootRemaining) && s.parity != nil && !s.checkParityOK() {
		s.meter.Incr(perf.ParityFiltered, s.remaining)
		return true
	}
	if s.cfg.VolumeFilter.active(s.remaining, s.rootRemaining) && s.volume != nil && !s.checkVolumeOK() {
		s.meter.Incr(perf.VolumeFiltered, s.remaining)
		return true
	}
	if s.cfg.ParityBacktrack && s.parity != nil && !s.checkParityOK() {
		s.meter.Incr(perf.ParityBacktracks, s.remaining)
		return true
	}
	if s.cfg.VolumeBacktrack > 0 && s.remaining >= s.cfg.VolumeBacktrack && s.volume != nil && !s.checkVolumeOK() {
		s.meter.Incr(perf.VolumeBacktracks, s.remaining)
		return true
	}

	if s.remaining <= s.cfg.Mch && s.g.RemainingCount() <= 64 {
		colIdx, _ := s.bestColumn()
		if colIdx >= 0 && s.matrix.Column(colIdx).NumRow >= 2 {
			return s.enterTiling()
		}
	}

	colIdx, _ := s.bestColumn()
	if colIdx < 0 {
		return true
	}
	for _, rowID := range s.matrix.RowsOf(colIdx) {
		s.meter.Incr(perf.Fits, s.remaining)
		s.placeDLX(rowID)
		cont := s.descend()
		s.unplaceDLX()
		s.traceUnplace()
		if !cont {
			return false
		}
	}
	return true
}

// bestColumn scores every live column with the heuristic active at the
// current remaining-piece count and returns the minimum-scoring column
// (spec.md §4.9). Returns -1 if no column remains live (the matrix's
// header chain is empty), which only happens when remaining == 0 (the
// caller never reaches here in that case) or every shape's mobile
// copies are exhausted while cells remain unfilled.
func (s *Solver[T]) bestColumn() (int, heuristic.Score) {
	spec := s.cfg.Heuristic.Select(s.remaining)
	best := -1
	var bestScore heuristic.Score
	first := true
	s.matrix.EachColumn(func(colIdx int) {
		col := s.matrix.Column(colIdx)
		info := heuristic.ColumnInfo{Kind: col.Kind, NumRow: col.NumRow}
		if col.Kind == dlx.ColumnGridPoint {
			info.Point = s.pointOf[col.GridPointID]
		}
		score := spec.Score(info)
		if first || score.Less(bestScore) {
			best, bestScore, first = colIdx, score, false
		}
	})
	return best, bestScore
}

// fitFilterOK reports whether every live GridPoint column still has at
// least one candidate row (spec.md §4.8 step 1 "fit filter"): an
// early, cheap pass that catches a dead cell before the (slightly more
// expensive) heuristic column-selection pass would discover the same
// thing via the NO_FIT tier.
func (s *Solver[T]) fitFilterOK() bool {
	ok := true
	s.matrix.EachColumn(func(colIdx int) {
		if !ok {
			return
		}
		col := s.matrix.Column(colIdx)
		if col.Kind == dlx.ColumnGridPoint && col.NumRow == 0 {
			ok = false
		}
	})
	return ok
}

func (s *Solver[T]) checkParityOK() bool {
	return s.parity.CheckParity(s.holeParitySum)
}

func (s *Solver[T]) checkVolumeOK() bool {
	for _, region := range s.g.FloodFillRegions() {
		if !s.volume.CheckVolume(region.Size) {
			return false
		}
	}
	return true
}

// placeDLX commits rowID: pushes its placement onto the image stack,
// stamps occupied cells, updates the monitors and remaining counters,
// and runs the matrix's cover cascade (spec.md §4.3 PlaceRow). The
// rowID itself is pushed onto a parallel stack so unplaceDLX (and the
// Monte Carlo sampler's unwind) can recover it without the caller
// having to thread it back through recursion.
func (s *Solver[T]) placeDLX(rowID int32) {
	pl := s.rowPlacement[rowID]
	s.placeCommon(pl)
	s.dlxRowStack = append(s.dlxRowStack, rowID)
	s.matrix.PlaceRow(rowID)
}

func (s *Solver[T]) unplaceDLX() {
	rowID := s.dlxRowStack[len(s.dlxRowStack)-1]
	s.dlxRowStack = s.dlxRowStack[:len(s.dlxRowStack)-1]
	s.matrix.UnplaceRow(rowID)
	s.unplaceCommon()
}

// placeCommon is the placement bookkeeping shared by the DLX and
// tiling drivers: image stack, grid fill stamps, remaining piece
// count, and the lazily-built parity/volume monitors.
func (s *Solver[T]) placeCommon(pl *placement.Placement) {
	s.stack = append(s.stack, pl)
	idx := len(s.stack) - 1
	for _, c := range pl.Cells {
		c.Fill = idx
		s.holeParitySum -= c.Point.Parity()
	}
	s.shapeRemain[pl.ShapeID]--
	s.remaining--
	if s.parity != nil {
		s.parity.Place(pl.Parity)
	}
	if s.volume != nil {
		s.volume.Place(pl.Size())
	}
}

func (s *Solver[T]) unplaceCommon() {
	pl := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	sentinel := s.g.UnoccupiedSentinel()
	for _, c := range pl.Cells {
		c.Fill = sentinel
		s.holeParitySum += c.Point.Parity()
	}
	s.shapeRemain[pl.ShapeID]++
	s.remaining++
	if s.parity != nil {
		s.parity.Unplace(pl.Parity)
	}
	if s.volume != nil {
		s.volume.Unplace(pl.Size())
	}
}

// trace implements spec.md §6.3 "trace=K" on the place side of a
// recursion frame: K > 0 dumps the partial placement while
// remaining >= K-1; K < 0 dumps only when remaining == -(K-1).
func (s *Solver[T]) trace() {
	k := s.cfg.Trace
	if k == 0 {
		return
	}
	if k > 0 {
		if s.remaining >= k-1 {
			s.cfg.Logger(s.traceLine())
		}
		return
	}
	if s.remaining == -(k - 1) {
		s.cfg.Logger(s.traceLine())
	}
}

// traceUnplace implements spec.md §6.3's "(and on every unplace if
// K > 0)" clause: only the K > 0 branch fires after a backtrack, never
// the K < 0 branch, matching the original's showTrace() calls which
// are gated solely by "trace > 0" on the post-unplaceStack() side.
func (s *Solver[T]) traceUnplace() {
	k := s.cfg.Trace
	if k > 0 && s.remaining >= k-1 {
		s.cfg.Logger(s.traceLine())
	}
}

func (s *Solver[T]) traceLine() string {
	return "partial placement: " + formatStack(s.stack)
}

func formatStack(stack []*placement.Placement) string {
	out := make([]byte, 0, 16*len(stack))
	for i, pl := range stack {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, pl.Anchor().Point.String()...)
	}
	return string(out)
}
