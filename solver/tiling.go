package solver

import (
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/perf"
	"github.com/bpasanek/puzzlecode/placement"
)

// enterTiling performs the DLX-to-tiling morph (spec.md §4.8 "The
// morph"): assigns each remaining cell a bit and computes every
// placement's layout mask, then continues the rest of this branch with
// the MCH/EMCH/de Bruijn drivers instead of the DLX matrix. Tiling is
// never unwound back to DLX within a branch, since the remaining-cell
// count only shrinks as more pieces are placed; every DLX frame that
// enters tiling redoes the morph for its own occupied cells.
func (s *Solver[T]) enterTiling() bool {
	s.g.AssignBits()
	s.idx.AssignMasks()
	s.tiling = true
	s.occupancy = s.g.OccupancyMask()
	cont := s.descendTiling()
	s.tiling = false
	return cont
}

// descendTiling mirrors descend's per-frame skeleton, minus the DLX
// fit filter and the tiling-entry test (both DLX-specific) and minus
// the parity/volume *filter* passes, which this implementation treats
// identically to their backtrack counterparts and so
// only runs once, below, shared with the DLX path's semantics.
func (s *Solver[T]) descendTiling() bool {
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

	if s.cfg.ParityBacktrack && s.parity != nil && !s.checkParityOK() {
		s.meter.Incr(perf.ParityBacktracks, s.remaining)
		return true
	}
	if s.cfg.VolumeBacktrack > 0 && s.remaining >= s.cfg.VolumeBacktrack && s.volume != nil && !s.checkVolumeOK() {
		s.meter.Incr(perf.VolumeBacktracks, s.remaining)
		return true
	}

	var candidates []*placement.Placement
	switch {
	case s.remaining <= s.cfg.Bruijn:
		candidates = s.deBruijnCandidates()
	case s.remaining <= s.cfg.EMch:
		candidates = s.estimatedMCHCandidates()
	default:
		candidates = s.mchCandidates()
	}

	for _, pl := range candidates {
		s.meter.Incr(perf.Fits, s.remaining)
		s.placeTiling(pl)
		cont := s.descendTiling()
		s.unplaceTiling(pl)
		s.traceUnplace()
		if !cont {
			return false
		}
	}
	return true
}

func (s *Solver[T]) placeTiling(pl *placement.Placement) {
	s.placeCommon(pl)
	s.occupancy |= pl.Mask
}

func (s *Solver[T]) unplaceTiling(pl *placement.Placement) {
	s.occupancy &^= pl.Mask
	s.unplaceCommon()
}

func (s *Solver[T]) unoccupiedCells() []*grid.GridPoint {
	var out []*grid.GridPoint
	for _, gp := range s.g.Points {
		if gp.Unoccupied() {
			out = append(out, gp)
		}
	}
	return out
}

// validFrom returns every placement in the given per-shape
// placement-index bucket (one cell's MCH or de Bruijn list) that is
// still legal: its shape has at least one mobile copy left, its mask
// doesn't overlap the current occupancy, and none of its cells was
// already filled before the morph (such cells carry no mask bit).
func (s *Solver[T]) validFrom(bucket map[int][]*placement.Placement) []*placement.Placement {
	var out []*placement.Placement
	for shapeID, pls := range bucket {
		if s.shapeRemain[shapeID] == 0 {
			continue
		}
		for _, pl := range pls {
			if pl.Mask&s.occupancy != 0 {
				continue
			}
			free := true
			for _, c := range pl.Cells {
				if !c.Unoccupied() {
					free = false
					break
				}
			}
			if free {
				out = append(out, pl)
			}
		}
	}
	return out
}

// mchCandidates implements the Most-Constrained-Hole driver (spec.md
// §4.8): the unfilled cell covered by the fewest legal remaining
// images, branching over every one of them.
func (s *Solver[T]) mchCandidates() []*placement.Placement {
	cells := s.unoccupiedCells()
	if len(cells) == 0 {
		return nil
	}
	best := s.validFrom(s.idx.MCH[cells[0].ID])
	for _, c := range cells[1:] {
		v := s.validFrom(s.idx.MCH[c.ID])
		if len(v) < len(best) {
			best = v
		}
	}
	return best
}

// estimatedMCHCandidates implements the cheaper Estimated-MCH driver:
// restrict to cells whose unfilled-neighbour count is minimal across
// the whole grid, then apply the same fewest-legal-images selection
// among that restricted set (spec.md §4.8).
func (s *Solver[T]) estimatedMCHCandidates() []*placement.Placement {
	cells := s.unoccupiedCells()
	if len(cells) == 0 {
		return nil
	}
	minNeighbors := unfilledNeighborCount(cells[0])
	for _, c := range cells[1:] {
		if n := unfilledNeighborCount(c); n < minNeighbors {
			minNeighbors = n
		}
	}
	var best []*placement.Placement
	haveBest := false
	for _, c := range cells {
		if unfilledNeighborCount(c) != minNeighbors {
			continue
		}
		v := s.validFrom(s.idx.MCH[c.ID])
		if !haveBest || len(v) < len(best) {
			best, haveBest = v, true
		}
	}
	return best
}

// deBruijnCandidates implements the cheapest driver: always the
// lexicographically smallest unfilled cell (the first in grid.Points'
// dense lex order that is still unoccupied), restricted to images
// anchored there.
func (s *Solver[T]) deBruijnCandidates() []*placement.Placement {
	for _, gp := range s.g.Points {
		if gp.Unoccupied() {
			return s.validFrom(s.idx.DeBruijn[gp.ID])
		}
	}
	return nil
}

func unfilledNeighborCount(gp *grid.GridPoint) int {
	n := 0
	for _, nb := range gp.Neighbors {
		if nb.Unoccupied() {
			n++
		}
	}
	return n
}
