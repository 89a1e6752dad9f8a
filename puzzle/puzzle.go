// Package puzzle wires a parsed puzzlefmt.PuzzleConfig into a solvable
// instance: mobile piece declarations grouped into piece.Shapes by
// rotational congruence, a grid.Grid with stationary cells stamped
// out, the symmetry analysis redundancy filtering and solution dedup
// both need, and the placement.Index the solver package consumes.
package puzzle

import (
	"errors"
	"fmt"

	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/piece"
	"github.com/bpasanek/puzzlecode/placement"
	"github.com/bpasanek/puzzlecode/puzzlefmt"
	"github.com/bpasanek/puzzlecode/symmetry"
)

// ErrRedundancyFilter covers every redundancy-filter selection failure
// (spec.md §7 "Redundancy-filter error").
var ErrRedundancyFilter = errors.New("puzzle: redundancy filter")

// StationaryPiece is a fixed piece already stamped into the grid
// before search starts; kept separately from Shapes since it never
// participates in the DLX matrix.
type StationaryPiece struct {
	Name  string
	Cells []geometry.Point
}

// Puzzle bundles one parsed puzzle definition's solvable state.
type Puzzle struct {
	Dims       geometry.Point
	OneSide    bool
	Grid       *grid.Grid
	Shapes     []*piece.Shape
	Stationary []StationaryPiece
	Index      *placement.Index
	Analysis   *symmetry.Analysis

	// RedundancyFilterShapeID is the shape chosen for the per-placement
	// redundancy filter (0 if none was requested or none qualified).
	RedundancyFilterShapeID int
}

// Build groups cfg's mobile piece declarations into Shapes, stamps
// stationary cells into a fresh Grid, generates and (optionally)
// redundancy-filters every shape's legal placements, and runs the
// symmetry analysis dedup needs. redundancyFilter is "" (off), "auto",
// or an explicit mobile piece name (spec.md §6.3 "redundancyFilter").
func Build(cfg *puzzlefmt.PuzzleConfig, redundancyFilter string) (*Puzzle, error) {
	dims := geometry.Point{X: cfg.XDim, Y: cfg.YDim, Z: cfg.ZDim}

	stationaryCells := make(map[geometry.Point]bool)
	var stationary []StationaryPiece
	for _, pd := range cfg.Stationary() {
		stationary = append(stationary, StationaryPiece{Name: pd.Name, Cells: pd.Layout})
		for _, p := range pd.Layout {
			stationaryCells[p] = true
		}
	}

	g := grid.New(dims, stationaryCells)

	shapes, nameToPiece, err := buildShapes(cfg.Mobile(), cfg.OneSide)
	if err != nil {
		return nil, err
	}
	linkMirrors(shapes)

	analysis := symmetry.Analyze(dims, stationaryCells, g, cfg.OneSide, allShapesHaveMirrors(shapes))

	filterShapeID, err := resolveRedundancyFilter(redundancyFilter, g, shapes, nameToPiece, analysis)
	if err != nil {
		return nil, err
	}

	idx := placement.NewIndex()
	var redundancyFilter_ *placement.RedundancyFilter
	if filterShapeID != 0 {
		redundancyFilter_ = placement.NewRedundancyFilter(analysis.Permutations)
	}
	for _, sh := range shapes {
		placements := placement.Generate(g, sh)
		if filterShapeID != 0 && sh.ID == filterShapeID {
			placements = placement.FilterShape(placements, redundancyFilter_)
		}
		for _, pl := range placements {
			idx.Add(pl)
		}
	}

	return &Puzzle{
		Dims:                    dims,
		OneSide:                 cfg.OneSide,
		Grid:                    g,
		Shapes:                  shapes,
		Stationary:              stationary,
		Index:                   idx,
		Analysis:                analysis,
		RedundancyFilterShapeID: filterShapeID,
	}, nil
}

// buildShapes groups mobile piece declarations into Shapes by
// rotational congruence (two declarations belong to the same Shape iff
// one's canonical form equals the other's under some rotation the
// puzzle's own mode allows — the full 24-element group normally, or
// z-axis-only in one-sided mode, so a chiral pair of flat pieces stays
// split into two shapes when flipping them over isn't a legal move),
// binds a NamedPiece to each declaration, and assigns dense 1-based
// NamedPiece ids in declaration order.
func buildShapes(mobile []puzzlefmt.PieceDef, oneSided bool) ([]*piece.Shape, map[string]*piece.NamedPiece, error) {
	allowed := geometry.All()
	if oneSided {
		allowed = geometry.ZAxisRotations()
	}

	var shapes []*piece.Shape
	nameToPiece := make(map[string]*piece.NamedPiece, len(mobile))
	nextShapeID := 1
	nextPieceID := 1

	for _, pd := range mobile {
		canonical := piece.New(pd.Layout, piece.Mobile)

		var target *piece.Shape
		for _, sh := range shapes {
			if congruentUnderRotation(sh.Canonical, canonical, allowed) {
				target = sh
				break
			}
		}
		if target == nil {
			target = piece.NewShape(nextShapeID, canonical, allowed)
			nextShapeID++
			shapes = append(shapes, target)
		}

		np := &piece.NamedPiece{Piece: canonical, ID: nextPieceID, Name: pd.Name}
		nextPieceID++
		target.Pieces = append(target.Pieces, np)
		target.Remaining = target.MobileCount()
		nameToPiece[pd.Name] = np
	}
	return shapes, nameToPiece, nil
}

// congruentUnderRotation reports whether a and b (both already
// normalized to local origin) are the same shape under some rotation
// drawn from rotations.
func congruentUnderRotation(a, b piece.Piece, rotations []geometry.Rotation) bool {
	for _, r := range rotations {
		if a.Rotated(r).CongruentTo(b) {
			return true
		}
	}
	return false
}

// linkMirrors pairs each shape with the other shape congruent to its
// mirror image (reflection across the x axis), if any, leaving
// MirrorID 0 for self-mirrored (achiral) shapes and shapes with no
// partner (spec.md §4.1, §4.7). The mirror relation is only read in
// one-sided mode, where every piece lies flat in z = 0 and its
// reflection is the piece turned face down; congruence is therefore
// checked against the 4 z-axis rotations, the same group buildShapes
// groups one-sided pieces by. Under the full 24-element group every
// flat piece would count as its own mirror, since a half-turn about
// the y axis reproduces the reflection.
func linkMirrors(shapes []*piece.Shape) {
	for i, sh := range shapes {
		mirrored := reflectX(sh.Canonical)
		if congruentUnderRotation(mirrored, sh.Canonical, geometry.ZAxisRotations()) {
			continue // self-mirrored
		}
		for j, other := range shapes {
			if j == i {
				continue
			}
			if congruentUnderRotation(mirrored, other.Canonical, geometry.ZAxisRotations()) {
				sh.MirrorID = other.ID
				break
			}
		}
	}
}

// allShapesHaveMirrors reports whether every shape either is its own
// mirror image (achiral) or has a same-copy-count mirror partner
// elsewhere in shapes (spec.md §4.7's precondition for considering the
// full 24-rotation group in a one-sided puzzle's symmetry analysis):
// flipping a one-sided puzzle upside-down only ever yields a possible
// solution if every mobile piece that flips over still has a legal
// piece available to stand in for it.
func allShapesHaveMirrors(shapes []*piece.Shape) bool {
	byID := make(map[int]*piece.Shape, len(shapes))
	for _, sh := range shapes {
		byID[sh.ID] = sh
	}
	for _, sh := range shapes {
		if sh.MirrorID != 0 {
			partner := byID[sh.MirrorID]
			if partner == nil || partner.MobileCount() != sh.MobileCount() {
				return false
			}
			continue
		}
		// MirrorID == 0 here means either self-mirrored or no partner at
		// all; linkMirrors doesn't distinguish the two, so re-check.
		if !congruentUnderRotation(reflectX(sh.Canonical), sh.Canonical, geometry.ZAxisRotations()) {
			return false
		}
	}
	return true
}

func reflectX(p piece.Piece) piece.Piece {
	pts := make([]geometry.Point, len(p.Points))
	for i, q := range p.Points {
		pts[i] = geometry.Point{X: -q.X, Y: q.Y, Z: q.Z}
	}
	return piece.New(pts, p.Mobility)
}

// resolveRedundancyFilter implements spec.md §6.3/§7's redundancyFilter
// selection: "" disables it; an explicit name resolves to that mobile
// piece's shape (error if the shape has more than one mobile copy, per
// spec.md §4.4 "error if not unique among mobile copies"); "auto"
// generates every mobile shape's candidate image list, redundancy-
// filters a scratch copy of each, and picks the shape with the highest
// (unfiltered / filtered) reduction ratio, tiebreaking on the smallest
// filtered count (spec.md §4.4 "AUTO -> pick the shape that yields the
// highest ... ratio; tiebreak on smallest filtered image count").
// Filtering is refused outright when the puzzle's symmetry analysis
// found RedundancyComplexity (spec.md §4.7, §7).
func resolveRedundancyFilter(name string, g *grid.Grid, shapes []*piece.Shape, nameToPiece map[string]*piece.NamedPiece, analysis *symmetry.Analysis) (int, error) {
	if name == "" {
		return 0, nil
	}
	if analysis.RedundancyComplexity {
		return 0, fmt.Errorf("%w: puzzle has redundancy-complexity, filtering refused", ErrRedundancyFilter)
	}
	if len(analysis.Permutations) == 0 {
		return 0, nil
	}

	if name == "auto" {
		// Only shapes with exactly one mobile copy are eligible (spec.md
		// §7 "AUTO mode and no mobile piece has a unique shape"); among
		// those, break ties by the image-reduction ratio (spec.md §4.4).
		var unique []*piece.Shape
		for _, sh := range shapes {
			if sh.MobileCount() == 1 {
				unique = append(unique, sh)
			}
		}
		if len(unique) == 0 {
			return 0, fmt.Errorf("%w: auto mode and no mobile piece has a unique shape", ErrRedundancyFilter)
		}

		var candidate *piece.Shape
		var bestRatio float64
		var bestFilteredCount int
		for _, sh := range unique {
			images := placement.Generate(g, sh)
			unfiltered := len(images)
			if unfiltered == 0 {
				continue
			}
			scratch := placement.NewRedundancyFilter(analysis.Permutations)
			filtered := len(placement.FilterShape(images, scratch))
			if filtered == 0 {
				continue
			}
			ratio := float64(unfiltered) / float64(filtered)
			if candidate == nil || ratio > bestRatio ||
				(ratio == bestRatio && filtered < bestFilteredCount) {
				candidate, bestRatio, bestFilteredCount = sh, ratio, filtered
			}
		}
		if candidate == nil {
			return 0, fmt.Errorf("%w: auto mode and no mobile piece has a unique shape", ErrRedundancyFilter)
		}
		return candidate.ID, nil
	}

	np, ok := nameToPiece[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown piece %q", ErrRedundancyFilter, name)
	}
	for _, sh := range shapes {
		for _, p := range sh.Pieces {
			if p == np {
				if sh.MobileCount() != 1 {
					return 0, fmt.Errorf("%w: %q has multiple mobile copies", ErrRedundancyFilter, name)
				}
				return sh.ID, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unknown piece %q", ErrRedundancyFilter, name)
}
