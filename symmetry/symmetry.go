// Package symmetry finds the subgroup of cube rotations under which a
// puzzle's stationary load is self-identical, producing the cell-index
// permutation each such rotation induces (spec.md §4.7). These
// permutations feed both the per-shape redundancy filter (placement
// package) and the post-hoc solution-level dedup filter (dedup
// package).
package symmetry

import (
	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/placement"
)

// Analysis is the result of symmetry analysis for one puzzle.
type Analysis struct {
	// Rotations lists every rotation under which the stationary load is
	// exactly self-identical (no mobile-piece help required).
	Rotations []geometry.Rotation
	// Permutations[i] corresponds to Rotations[i]: a cell-index
	// permutation over grid.GridPoint ids.
	Permutations []placement.Permutation
	// RedundancyComplexity is true if some rotation maps the stationary
	// load onto a same-size but distinct cell set — i.e. achieves
	// symmetry only with mobile-piece help. Filtering is refused when
	// this is true and the caller requests it (spec.md §4.7, §7).
	RedundancyComplexity bool
}

// Analyze runs symmetry analysis over the box of the given dims with
// the given stationary cell set already loaded into g. oneSided
// restricts the candidate rotations to the 4 z-axis rotations unless
// allShapesHaveMirrors is also true, in which case flipping the puzzle
// upside-down (and rotating about the z-axis as necessary) could still
// produce a valid solution since every mobile shape has a same-count
// mirror partner to swap in, so all 24 rotations are considered
// (spec.md §4.1, §4.7). allShapesHaveMirrors is meaningless when
// !oneSided (every rotation is already legal for mobile pieces there),
// so it is ignored in that case.
func Analyze(dims geometry.Point, stationaryCells map[geometry.Point]bool, g *grid.Grid, oneSided, allShapesHaveMirrors bool) *Analysis {
	var candidates []geometry.Rotation
	if oneSided && !allShapesHaveMirrors {
		candidates = geometry.ZAxisRotations()
	} else {
		candidates = geometry.All()
	}

	a := &Analysis{}
	for _, r := range candidates {
		if !r.PreservesBox(dims) {
			continue
		}
		rotated := make(map[geometry.Point]bool, len(stationaryCells))
		for p := range stationaryCells {
			rotated[r.ApplyBox(p, dims)] = true
		}
		if setsEqual(rotated, stationaryCells) {
			a.Rotations = append(a.Rotations, r)
			a.Permutations = append(a.Permutations, buildPermutation(g, dims, r))
			continue
		}
		if len(rotated) == len(stationaryCells) {
			// same cardinality (ApplyBox is a bijection on the box) but a
			// different cell set: symmetry would require some mobile
			// pieces to be swapped in for the mismatched cells.
			a.RedundancyComplexity = true
		}
	}
	return a
}

func setsEqual(a, b map[geometry.Point]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}

// buildPermutation computes, for each GridPoint id i, the id of the
// GridPoint that rotates into position i under r: the GridPoint at
// r⁻¹(p_i).
func buildPermutation(g *grid.Grid, dims geometry.Point, r geometry.Rotation) placement.Permutation {
	inv := r.Inverse()
	perm := make(placement.Permutation, g.NumGridPoints())
	for _, gp := range g.Points {
		src := inv.ApplyBox(gp.Point, dims)
		srcPoint := g.At(src)
		if srcPoint == nil {
			panic("symmetry: rotation mapped a GridPoint onto a stationary cell")
		}
		perm[gp.ID] = srcPoint.ID
	}
	return perm
}
