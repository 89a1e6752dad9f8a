// Package grid models the 3-D cuboid of cells a puzzle is solved within:
// the dense array of GridPoints that remain after stationary pieces are
// stamped in, their neighbour graph, and the fill-state discipline used
// by the parity and volume monitors.
package grid

import "github.com/bpasanek/puzzlecode/geometry"

// unoccupiedInitial is the first sentinel value of the fill flip-flop
// (spec.md §4.2): negative fill values denote an unoccupied cell, and
// the specific negative value toggles between -1 and -2 across volume
// checks so a flood-fill pass never needs to revert its stamp.
const unoccupiedInitial = -1

// GridPoint is a cell not covered by any stationary piece. GridPoints
// are allocated contiguously in lexicographic (x,y,z) order, so slices
// built by iterating Grid.Points are automatically sorted.
type GridPoint struct {
	ID        int
	Point     geometry.Point
	Bit       uint64 // set once tiling mode assigns this cell a mask bit; 0 until then
	Fill      int    // negative: unoccupied (sentinel flip-flops -1/-2); >=0: index of the occupying image
	Neighbors []*GridPoint
}

func (g *GridPoint) Unoccupied() bool {
	return g.Fill < 0
}

// Grid is the dense 3-D array of GridPoints remaining after stationary
// pieces are stamped into the cuboid.
type Grid struct {
	Dims           geometry.Point
	Points         []*GridPoint // dense, lex-ordered; the "GridPoint column" universe
	byCoord        map[geometry.Point]*GridPoint
	unoccupiedFill int
}

// New builds a Grid for a cuboid of the given dimensions, excluding any
// cell in stationaryCells: those cells get no GridPoint at all, so the
// search never sees them.
func New(dims geometry.Point, stationaryCells map[geometry.Point]bool) *Grid {
	g := &Grid{
		Dims:           dims,
		byCoord:        make(map[geometry.Point]*GridPoint),
		unoccupiedFill: unoccupiedInitial,
	}
	id := 0
	for x := 0; x < dims.X; x++ {
		for y := 0; y < dims.Y; y++ {
			for z := 0; z < dims.Z; z++ {
				p := geometry.Point{X: x, Y: y, Z: z}
				if stationaryCells[p] {
					continue
				}
				gp := &GridPoint{ID: id, Point: p, Fill: unoccupiedInitial}
				g.Points = append(g.Points, gp)
				g.byCoord[p] = gp
				id++
			}
		}
	}
	g.linkNeighbors()
	return g
}

var axisSteps = []geometry.Point{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

func (g *Grid) linkNeighbors() {
	for _, gp := range g.Points {
		for _, step := range axisSteps {
			if n, ok := g.byCoord[gp.Point.Add(step)]; ok {
				gp.Neighbors = append(gp.Neighbors, n)
			}
		}
	}
}

// At returns the GridPoint at p, or nil if p is out of the mobile grid
// (either out of bounds or covered by a stationary piece).
func (g *Grid) At(p geometry.Point) *GridPoint {
	return g.byCoord[p]
}

// NumGridPoints is the count of cells the solver must cover.
func (g *Grid) NumGridPoints() int {
	return len(g.Points)
}

// RemainingCount returns how many GridPoints are still unoccupied.
func (g *Grid) RemainingCount() int {
	n := 0
	for _, gp := range g.Points {
		if gp.Unoccupied() {
			n++
		}
	}
	return n
}

// AssignBits assigns each currently-unoccupied GridPoint a unique
// power-of-two bit, for the tiling morph (spec.md §4.8 "The morph").
// Caller must ensure RemainingCount() <= 64 before calling.
func (g *Grid) AssignBits() {
	bit := uint64(1)
	for _, gp := range g.Points {
		if gp.Unoccupied() {
			gp.Bit = bit
			bit <<= 1
		} else {
			gp.Bit = 0
		}
	}
}

// OccupancyMask returns the OR of the bits of every currently occupied
// GridPoint, valid only after AssignBits has run.
func (g *Grid) OccupancyMask() uint64 {
	var mask uint64
	for _, gp := range g.Points {
		if !gp.Unoccupied() {
			mask |= gp.Bit
		}
	}
	return mask
}

// Clone deep-copies every GridPoint (and the neighbour graph between
// them) so the clone can be mutated — by a concurrent Monte Carlo
// worker's placeCommon/unplaceCommon calls, see
// solver.ParallelSample — without racing the original. IDs and
// lex order are preserved, so placement.Generate run again against the
// clone reproduces the same column indexing the original solver used.
func (g *Grid) Clone() *Grid {
	ng := &Grid{
		Dims:           g.Dims,
		Points:         make([]*GridPoint, len(g.Points)),
		byCoord:        make(map[geometry.Point]*GridPoint, len(g.Points)),
		unoccupiedFill: g.unoccupiedFill,
	}
	for i, gp := range g.Points {
		clone := &GridPoint{ID: gp.ID, Point: gp.Point, Bit: gp.Bit, Fill: gp.Fill}
		ng.Points[i] = clone
		ng.byCoord[gp.Point] = clone
	}
	for i, gp := range g.Points {
		clone := ng.Points[i]
		clone.Neighbors = make([]*GridPoint, len(gp.Neighbors))
		for j, n := range gp.Neighbors {
			clone.Neighbors[j] = ng.byCoord[n.Point]
		}
	}
	return ng
}
