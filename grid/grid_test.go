package grid

import (
	"testing"

	"github.com/bpasanek/puzzlecode/geometry"
)

func TestNewExcludesStationaryCells(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 2, Y: 2, Z: 1}
	stationary := map[geometry.Point]bool{{X: 0, Y: 0, Z: 0}: true}
	g := New(dims, stationary)
	if g.NumGridPoints() != 3 {
		t.Fatalf("NumGridPoints() = %d, want 3", g.NumGridPoints())
	}
	if g.At(geometry.Point{X: 0, Y: 0, Z: 0}) != nil {
		t.Errorf("stationary cell should not be present in the mobile grid")
	}
}

func TestNeighborsAreAxisAdjacentOnly(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 3, Y: 3, Z: 1}
	g := New(dims, nil)
	center := g.At(geometry.Point{X: 1, Y: 1, Z: 0})
	if len(center.Neighbors) != 4 {
		t.Fatalf("center cell has %d neighbors, want 4", len(center.Neighbors))
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 3, Y: 3, Z: 1}
	g := New(dims, nil)
	clone := g.Clone()

	original := make(map[*GridPoint]bool, len(g.Points))
	for _, gp := range g.Points {
		original[gp] = true
	}

	origin := g.At(geometry.Point{X: 1, Y: 1, Z: 0})
	cloneCenter := clone.At(geometry.Point{X: 1, Y: 1, Z: 0})
	if origin == cloneCenter {
		t.Fatal("Clone() returned a GridPoint shared with the original")
	}
	if len(cloneCenter.Neighbors) != len(origin.Neighbors) {
		t.Fatalf("clone center has %d neighbors, want %d", len(cloneCenter.Neighbors), len(origin.Neighbors))
	}
	for _, cp := range clone.Points {
		if original[cp] {
			t.Fatal("clone's GridPoints alias the original's")
		}
	}
	for _, n := range cloneCenter.Neighbors {
		if original[n] {
			t.Fatal("clone's neighbour list points back into the original grid")
		}
	}

	cloneCenter.Fill = 7
	if origin.Fill == 7 {
		t.Error("mutating the clone's Fill leaked back into the original")
	}
}

func TestFloodFillRegionsSplitsDisconnectedHoles(t *testing.T) {
	t.Parallel()
	dims := geometry.Point{X: 3, Y: 1, Z: 1}
	g := New(dims, nil)
	// occupy the middle cell, splitting the row into two 1-cell regions.
	g.At(geometry.Point{X: 1, Y: 0, Z: 0}).Fill = 0

	regions := g.FloodFillRegions()
	if len(regions) != 2 {
		t.Fatalf("len(regions) = %d, want 2", len(regions))
	}
	for _, r := range regions {
		if r.Size != 1 {
			t.Errorf("region size = %d, want 1", r.Size)
		}
	}
}

func TestFloodFillSentinelFlipFlops(t *testing.T) {
	t.Parallel()
	g := New(geometry.Point{X: 1, Y: 1, Z: 1}, nil)
	first := g.UnoccupiedSentinel()
	g.FloodFillRegions()
	second := g.UnoccupiedSentinel()
	if first == second {
		t.Errorf("sentinel did not flip: both calls report %d", first)
	}
	g.FloodFillRegions()
	third := g.UnoccupiedSentinel()
	if third != first {
		t.Errorf("sentinel did not flop back: got %d, want %d", third, first)
	}
}

func TestAssignBitsAndOccupancyMask(t *testing.T) {
	t.Parallel()
	g := New(geometry.Point{X: 2, Y: 1, Z: 1}, nil)
	g.AssignBits()
	if g.OccupancyMask() != 0 {
		t.Fatalf("OccupancyMask() = %b, want 0 before any placement", g.OccupancyMask())
	}
	g.Points[0].Fill = 0
	mask := g.OccupancyMask()
	if mask != g.Points[0].Bit {
		t.Errorf("OccupancyMask() = %b, want %b", mask, g.Points[0].Bit)
	}
}
