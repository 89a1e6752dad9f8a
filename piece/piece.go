// Package piece models the pieces a puzzle is built from: a Piece is a
// connected set of unit cells, a NamedPiece is a specific user-visible
// copy of one, and a Shape is the equivalence class of pieces congruent
// under rotation plus translation.
package piece

import (
	"sort"

	"github.com/bpasanek/puzzlecode/geometry"
)

// Mobility distinguishes pieces that the solver is free to place from
// ones that are already fixed in the grid before the search starts.
type Mobility int

const (
	Mobile Mobility = iota
	Stationary
)

func (m Mobility) String() string {
	if m == Stationary {
		return "stationary"
	}
	return "mobile"
}

// Piece is a connected set of unit cells, normalized to its own local
// coordinate frame (translated so its lexicographically smallest cell
// sits at the origin) the moment it is constructed.
type Piece struct {
	Points   []geometry.Point
	Mobility Mobility
	Parity   int // signed sum of each point's parity
}

// New builds a Piece from an arbitrary (unsorted, untranslated) cell
// list, normalizing it to start at its own local origin.
func New(points []geometry.Point, mobility Mobility) Piece {
	pts := append([]geometry.Point(nil), points...)
	geometry.SortPoints(pts)
	origin := pts[0]
	for i := range pts {
		pts[i] = pts[i].Sub(origin)
	}
	parity := 0
	for _, p := range pts {
		parity += p.Parity()
	}
	return Piece{Points: pts, Mobility: mobility, Parity: parity}
}

func (p Piece) Size() int {
	return len(p.Points)
}

// Rotated returns the piece obtained by rotating every cell by r and
// renormalizing to local origin. The result is always canonical
// (sorted, translated to its own lex-smallest cell).
func (p Piece) Rotated(r geometry.Rotation) Piece {
	pts := make([]geometry.Point, len(p.Points))
	for i, q := range p.Points {
		pts[i] = r.Apply(q)
	}
	return New(pts, p.Mobility)
}

// CongruentTo reports whether p and q are the same shape up to
// translation alone (both already normalized to local origin, so this
// is simply slice equality after sorting, which New guarantees).
func (p Piece) CongruentTo(q Piece) bool {
	if len(p.Points) != len(q.Points) {
		return false
	}
	for i := range p.Points {
		if p.Points[i] != q.Points[i] {
			return false
		}
	}
	return true
}

// NamedPiece binds a Piece to a 1-based id and a human-readable name.
// Id 0 is reserved by convention to mean "empty cell" in state vectors.
type NamedPiece struct {
	Piece
	ID   int
	Name string
}

// sortIDs is a small helper used by callers that need a NamedPiece list
// ordered by id (e.g. for deterministic output).
func sortIDs(nps []*NamedPiece) {
	sort.Slice(nps, func(i, j int) bool { return nps[i].ID < nps[j].ID })
}
