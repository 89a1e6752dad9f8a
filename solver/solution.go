package solver

import "github.com/kelindar/bitmap"

// emit binds the current image stack to specific NamedPieces (spec.md
// §9 "Image/piece binding is deferred"), applies the solution-level
// dedup filter when enabled, and hands the result to onSolution.
// Returns false if the caller asked the search to stop.
func (s *Solver[T]) emit() bool {
	state := s.buildState()
	if s.dedupFilter != nil && !s.dedupFilter.Keep(state) {
		return true
	}

	sol := Solution{State: state, Placements: s.bindPlacements()}
	return s.onSolution(sol)
}

// buildState walks GridPoints in id order and records, for each, the id
// of the image on the stack that occupies it.
func (s *Solver[T]) buildState() []int {
	state := make([]int, s.g.NumGridPoints())
	for stackIdx, pl := range s.stack {
		for _, c := range pl.Cells {
			state[c.ID] = stackIdx + 1
		}
	}
	return state
}

// bindPlacements walks the image stack in placement order and claims,
// for each image, the lowest-id not-yet-claimed mobile NamedPiece of
// its shape (spec.md §4.6 getState / §9 "Image/piece binding is
// deferred"). claimed is a fixed-width scratch bitset (one bit per
// dense mobile NamedPiece id, spec.md §3), rebuilt fresh each emit
// since piece binding is a per-solution concern.
func (s *Solver[T]) bindPlacements() []PlacedImage {
	var claimed bitmap.Bitmap
	claimed.Grow(uint32(s.rootRemaining))
	out := make([]PlacedImage, len(s.stack))
	for i, pl := range s.stack {
		shape := s.shapes[pl.ShapeID]
		np := shape.NextUnclaimed(&claimed)
		if np != nil {
			claimed.Set(uint32(np.ID))
		}
		out[i] = PlacedImage{Shape: shape, Piece: np, Cells: pl.Cells}
	}
	return out
}
