package placement

import (
	"testing"

	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/piece"
)

func TestGenerateDominoIn2x1(t *testing.T) {
	t.Parallel()
	g := grid.New(geometry.Point{X: 2, Y: 1, Z: 1}, nil)
	domino := piece.New([]geometry.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}, piece.Mobile)
	shape := piece.NewShape(1, domino, geometry.ZAxisRotations())

	placements := Generate(g, shape)
	if len(placements) != 1 {
		t.Fatalf("len(placements) = %d, want 1 (only one way to fit a 2x1 domino in a 2x1 strip)", len(placements))
	}
}

func TestGenerateRespectsOccupiedCells(t *testing.T) {
	t.Parallel()
	g := grid.New(geometry.Point{X: 3, Y: 1, Z: 1}, nil)
	g.At(geometry.Point{X: 1, Y: 0, Z: 0}).Fill = 0 // occupy the middle cell

	domino := piece.New([]geometry.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}, piece.Mobile)
	shape := piece.NewShape(1, domino, geometry.ZAxisRotations())

	placements := Generate(g, shape)
	if len(placements) != 0 {
		t.Fatalf("len(placements) = %d, want 0 (every placement spans the occupied cell)", len(placements))
	}
}

func TestIndexAnchorsAndCoverage(t *testing.T) {
	t.Parallel()
	g := grid.New(geometry.Point{X: 3, Y: 1, Z: 1}, nil)
	domino := piece.New([]geometry.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}, piece.Mobile)
	shape := piece.NewShape(1, domino, geometry.ZAxisRotations())

	placements := Generate(g, shape)
	idx := NewIndex()
	for _, pl := range placements {
		idx.Add(pl)
	}

	middle := g.At(geometry.Point{X: 1, Y: 0, Z: 0})
	if len(idx.MCH[middle.ID][shape.ID]) != 2 {
		t.Errorf("middle cell covered by %d placements, want 2", len(idx.MCH[middle.ID][shape.ID]))
	}
	if len(idx.DeBruijn[middle.ID][shape.ID]) != 1 {
		t.Errorf("placements anchored at the middle cell = %d, want 1", len(idx.DeBruijn[middle.ID][shape.ID]))
	}
}

func TestRedundancyFilterDropsRotationalDuplicate(t *testing.T) {
	t.Parallel()
	g := grid.New(geometry.Point{X: 2, Y: 2, Z: 1}, nil)
	unit := piece.New([]geometry.Point{{X: 0, Y: 0, Z: 0}}, piece.Mobile)
	shape := piece.NewShape(1, unit, geometry.ZAxisRotations())
	placements := Generate(g, shape)
	if len(placements) != 4 {
		t.Fatalf("len(placements) = %d, want 4", len(placements))
	}

	// build the identity->180-degree-rotation permutation for this 2x2 grid:
	// (0,0)<->(1,1), (1,0)<->(0,1).
	idOf := func(x, y int) int { return g.At(geometry.Point{X: x, Y: y, Z: 0}).ID }
	perm := make(Permutation, g.NumGridPoints())
	perm[idOf(0, 0)] = idOf(1, 1)
	perm[idOf(1, 1)] = idOf(0, 0)
	perm[idOf(1, 0)] = idOf(0, 1)
	perm[idOf(0, 1)] = idOf(1, 0)

	f := NewRedundancyFilter([]Permutation{perm})
	kept := FilterShape(placements, f)
	if len(kept) != 2 {
		t.Errorf("len(kept) = %d, want 2 (2 orbits of size 2 under the 180-degree rotation)", len(kept))
	}
}
