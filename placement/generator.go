package placement

import (
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/piece"
)

// Generate enumerates every legal placement of shape within g: for each
// GridPoint anchor and each of the shape's distinct orientations,
// translate the orientation so its own lex-first cell lands on the
// anchor, and keep the placement iff every resulting cell is in-bounds
// and currently unoccupied (spec.md §4.4).
func Generate(g *grid.Grid, shape *piece.Shape) []*Placement {
	var out []*Placement
	for _, anchor := range g.Points {
		for _, r := range shape.DistinctRotations {
			rotated := shape.Canonical.Rotated(r) // already translated to its own local origin
			cells := make([]*grid.GridPoint, 0, len(rotated.Points))
			ok := true
			for _, rp := range rotated.Points {
				target := rp.Add(anchor.Point)
				if !target.InBounds(g.Dims) {
					ok = false
					break
				}
				gp := g.At(target)
				if gp == nil || !gp.Unoccupied() {
					ok = false
					break
				}
				cells = append(cells, gp)
			}
			if !ok {
				continue
			}
			// rotated.Points is already lex-sorted in the piece's local
			// frame and every cell is shifted by the same vector, so
			// lex order survives the translation: cells is already
			// sorted and cells[0] is exactly anchor.
			out = append(out, &Placement{
				ShapeID: shape.ID,
				Cells:   cells,
				Parity:  rotated.Parity,
			})
		}
	}
	return out
}
