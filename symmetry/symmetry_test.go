package symmetry

import (
	"testing"

	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/placement"
)

func TestAnalyzeEmptyCubeFindsAllRotations(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 2, Y: 2, Z: 2}
	g := grid.New(dims, nil)
	a := Analyze(dims, nil, g, false, false)
	if len(a.Rotations) != 24 {
		t.Fatalf("len(Rotations) = %d, want 24 for an empty cube box", len(a.Rotations))
	}
	if a.RedundancyComplexity {
		t.Error("an empty box should never report redundancy complexity")
	}
}

func TestAnalyzePermutationRoundTrips(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 2, Y: 2, Z: 2}
	g := grid.New(dims, nil)
	a := Analyze(dims, nil, g, false, false)

	ids := make([]int, g.NumGridPoints())
	for i := range ids {
		ids[i] = i
	}

	for i, r := range a.Rotations {
		perm := a.Permutations[i]
		inverse := findInversePermutation(a, r)
		rotated := perm.Apply(ids)
		back := inverse.Apply(rotated)
		for j := range ids {
			if back[j] != ids[j] {
				t.Fatalf("rotation %d: permutation round-trip failed at id %d: got %d", r, j, back[j])
			}
		}
	}
}

func findInversePermutation(a *Analysis, r geometry.Rotation) placement.Permutation {
	inv := r.Inverse()
	for i, candidate := range a.Rotations {
		if candidate == inv {
			return a.Permutations[i]
		}
	}
	panic("inverse rotation not found among symmetric rotations")
}

func TestAnalyzeStationaryMismatchNotSymmetric(t *testing.T) {
	t.Parallel()
	// Two adjacent cells along one edge of a 3x3x1 box: no in-plane turn
	// or flip of the box maps this pair onto itself. (A single corner
	// cell would not do: the half-turn about the box's diagonal keeps it.)
	dims := geometry.Point{X: 3, Y: 3, Z: 1}
	stationary := map[geometry.Point]bool{{X: 0, Y: 0, Z: 0}: true, {X: 1, Y: 0, Z: 0}: true}
	g := grid.New(dims, stationary)
	a := Analyze(dims, stationary, g, false, false)

	for _, r := range a.Rotations {
		if r == geometry.Identity {
			continue
		}
		t.Errorf("rotation %d should not be symmetric for a two-cell edge load in a 3x3 box", r)
	}
	if !a.RedundancyComplexity {
		t.Error("an off-center stationary load should flag redundancy complexity under at least one rotation")
	}
}

func TestAnalyzeOneSidedWithoutMirrorsOnlyConsidersZAxis(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 2, Y: 2, Z: 1}
	g := grid.New(dims, nil)
	a := Analyze(dims, nil, g, true, false)
	if len(a.Rotations) != 4 {
		t.Fatalf("len(Rotations) = %d, want 4 in one-sided mode without mirrors", len(a.Rotations))
	}
}

func TestAnalyzeOneSidedWithAllMirrorsConsidersAllRotations(t *testing.T) {
	t.Parallel()
	// A cube box (all dims equal) so all 24 rotations preserve the box,
	// letting this test distinguish "restricted to z-axis" from "all 24
	// considered" by rotation count alone.
	dims := geometry.Point{X: 2, Y: 2, Z: 2}
	g := grid.New(dims, nil)
	a := Analyze(dims, nil, g, true, true)
	if len(a.Rotations) != 24 {
		t.Fatalf("len(Rotations) = %d, want 24 in one-sided mode when every shape has a mirror", len(a.Rotations))
	}
}
