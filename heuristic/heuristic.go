// Package heuristic implements the DLX column-ordering heuristics
// (spec.md §4.9): pure functions from a column's live state to a
// comparable Score, with two special tiers that always outrank any
// geometric scoring so the solver branches on forced cells first.
package heuristic

import (
	"math"

	"github.com/bpasanek/puzzlecode/dlx"
	"github.com/bpasanek/puzzlecode/geometry"
)

// Score tiers, compared lexicographically: tier first, then Value.
// NoFit and OneFit columns always win regardless of Value (minimises
// branching factor by forcing the solver down an unavoidable cell
// first); Piece columns always lose to any cell column.
const (
	TierNoFit = iota
	TierOneFit
	TierGeometric
	TierPiece
)

type Score struct {
	Tier  int
	Value float64
}

// Less reports whether s should be preferred over o (lower wins).
func (s Score) Less(o Score) bool {
	if s.Tier != o.Tier {
		return s.Tier < o.Tier
	}
	return s.Value < o.Value
}

// ColumnInfo is the subset of a dlx.Column's state a heuristic needs,
// with the GridPoint's coordinate resolved (heuristic has no grid
// dependency of its own).
type ColumnInfo struct {
	Kind   dlx.ColumnKind
	NumRow int32
	Point  geometry.Point // valid iff Kind == dlx.ColumnGridPoint
}

// Spec scores one column. Implementations are pure and stateless.
type Spec interface {
	Score(info ColumnInfo) Score
}

func forcedOrPiece(info ColumnInfo) (Score, bool) {
	if info.Kind == dlx.ColumnShape {
		return Score{Tier: TierPiece}, true
	}
	switch info.NumRow {
	case 0:
		return Score{Tier: TierNoFit}, true
	case 1:
		return Score{Tier: TierOneFit}, true
	default:
		return Score{}, false
	}
}

// Fit scores a cell column by its live row count; the default
// heuristic (spec.md §4.9 "The default heuristic is fit").
type Fit struct{}

func (Fit) Score(info ColumnInfo) Score {
	if s, forced := forcedOrPiece(info); forced {
		return s
	}
	return Score{Tier: TierGeometric, Value: float64(info.NumRow)}
}

// Linear scores a cell column by a·x + b·y + c·z.
type Linear struct {
	A, B, C float64
}

func (h Linear) Score(info ColumnInfo) Score {
	if s, forced := forcedOrPiece(info); forced {
		return s
	}
	p := info.Point
	v := h.A*float64(p.X) + h.B*float64(p.Y) + h.C*float64(p.Z)
	return Score{Tier: TierGeometric, Value: v}
}

// Angular scores a cell column by its angle about (XC, YC) relative to
// Theta0, wrapped into [0, 2π), negated when Reverse is set.
type Angular struct {
	Theta0, XC, YC float64
	Reverse        bool
}

func (h Angular) Score(info ColumnInfo) Score {
	if s, forced := forcedOrPiece(info); forced {
		return s
	}
	p := info.Point
	theta := math.Atan2(float64(p.Y)-h.YC, float64(p.X)-h.XC) - h.Theta0
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	if h.Reverse {
		theta = -theta
	}
	return Score{Tier: TierGeometric, Value: theta}
}

// Radial scores a cell column by negative squared distance from
// (XC, YC, ZC), so the cell farthest from centre wins.
type Radial struct {
	XC, YC, ZC float64
}

func (h Radial) Score(info ColumnInfo) Score {
	if s, forced := forcedOrPiece(info); forced {
		return s
	}
	p := info.Point
	dx := float64(p.X) - h.XC
	dy := float64(p.Y) - h.YC
	dz := float64(p.Z) - h.ZC
	return Score{Tier: TierGeometric, Value: -(dx*dx + dy*dy + dz*dz)}
}
