// Package placement enumerates legal (rotation, translation) placements
// of each shape — called Images in spec.md — and indexes them for the
// DLX, MCH/EMCH, and de Bruijn search drivers.
package placement

import (
	"github.com/bpasanek/puzzlecode/grid"
)

// Placement is one specific legal placement of a shape: its cells in
// lex order, the OR of their bits (valid once the grid has assigned
// bits, i.e. once tiling mode is active), and its parity. A Placement
// carries no owning piece identity; which NamedPiece instance it
// represents is resolved only at output time (spec.md §4.6, §9
// "Image/piece binding is deferred").
type Placement struct {
	ShapeID int
	Cells   []*grid.GridPoint // sorted lex; Cells[0] is the anchor cell
	Mask    uint64
	Parity  int
}

func (pl *Placement) Size() int {
	return len(pl.Cells)
}

// Anchor is the lexicographically first cell of the placement — the
// cell used to index it for the de Bruijn driver.
func (pl *Placement) Anchor() *grid.GridPoint {
	return pl.Cells[0]
}

// Index collects, per GridPoint, the placements relevant to each tiling
// driver: DeBruijn holds only placements whose anchor is that cell;
// MCH holds every placement that covers that cell at all.
type Index struct {
	DeBruijn map[int]map[int][]*Placement // gridPointID -> shapeID -> placements anchored here
	MCH      map[int]map[int][]*Placement // gridPointID -> shapeID -> placements covering here
	ByShape  map[int][]*Placement
}

func NewIndex() *Index {
	return &Index{
		DeBruijn: make(map[int]map[int][]*Placement),
		MCH:      make(map[int]map[int][]*Placement),
		ByShape:  make(map[int][]*Placement),
	}
}

func (idx *Index) Add(pl *Placement) {
	idx.ByShape[pl.ShapeID] = append(idx.ByShape[pl.ShapeID], pl)

	anchorID := pl.Anchor().ID
	if idx.DeBruijn[anchorID] == nil {
		idx.DeBruijn[anchorID] = make(map[int][]*Placement)
	}
	idx.DeBruijn[anchorID][pl.ShapeID] = append(idx.DeBruijn[anchorID][pl.ShapeID], pl)

	for _, c := range pl.Cells {
		if idx.MCH[c.ID] == nil {
			idx.MCH[c.ID] = make(map[int][]*Placement)
		}
		idx.MCH[c.ID][pl.ShapeID] = append(idx.MCH[c.ID][pl.ShapeID], pl)
	}
}

// AssignMasks computes pl.Mask for every placement in the index from
// the grid's current bit assignment. Call after grid.AssignBits.
func (idx *Index) AssignMasks() {
	for _, placements := range idx.ByShape {
		for _, pl := range placements {
			var mask uint64
			for _, c := range pl.Cells {
				mask |= c.Bit
			}
			pl.Mask = mask
		}
	}
}
