package solver

import (
	"github.com/bpasanek/puzzlecode/dedup"
	"github.com/bpasanek/puzzlecode/dlx"
	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/grid"
	"github.com/bpasanek/puzzlecode/heuristic"
	"github.com/bpasanek/puzzlecode/monitor"
	"github.com/bpasanek/puzzlecode/perf"
	"github.com/bpasanek/puzzlecode/piece"
	"github.com/bpasanek/puzzlecode/placement"
)

// Solution is one complete placement, in image-stack order, with each
// image already bound to a specific NamedPiece (spec.md §9
// "Image/piece binding is deferred" — resolved by bindPlacements).
type Solution struct {
	// Placements mirrors the image stack at the moment of completion.
	Placements []PlacedImage
	// State is the per-GridPoint vector of occupying images, numbered by
	// 1-based position on the image stack (0 = unoccupied, which only a
	// goal-truncated solution has); it is what the dedup filter keys on.
	State []int
}

type PlacedImage struct {
	Shape *piece.Shape
	Piece *piece.NamedPiece
	Cells []*grid.GridPoint
}

// Solver drives the recursive exact-cover search over one puzzle's
// grid, shapes, and precomputed placement index. T parameterises the
// solution-dedup filter's state-vector element width (spec.md §4.10
// "compile-time selectable" piece-id width, supplemented in
// SPEC_FULL.md §4 item 3 as a Go generic type parameter).
type Solver[T dedup.StateID] struct {
	g      *grid.Grid
	shapes map[int]*piece.Shape
	cfg    Config
	meter  *perf.Meter

	matrix        *dlx.Matrix
	gridColOf     map[int]int // GridPoint id -> matrix column index
	shapeColOf    map[int]int // Shape id -> matrix column index
	pointOf       map[int]geometry.Point
	rowPlacement  map[int32]*placement.Placement
	shapeRemain   map[int]int // Shape id -> mobile copies not yet placed
	rootRemaining int

	idx *placement.Index // retained for the tiling morph (MCH/EMCH/de Bruijn)

	parity *monitor.ParityMonitor
	volume *monitor.VolumeMonitor

	dedupFilter *dedup.Filter[T]

	stack         []*placement.Placement
	dlxRowStack   []int32 // parallel to stack while in DLX mode; lets unplaceDLX/Sample recover rowIDs
	remaining     int
	holeParitySum int // incremental sum of Parity() over unoccupied GridPoints

	tiling    bool
	occupancy uint64

	onSolution func(Solution) bool
}

// Options bundles the collaborators New needs beyond Config: every
// mobile shape's surviving placement list (already redundancy-filtered
// by the caller, per spec.md §4.4) and the symmetric-rotation
// permutations dedup needs when cfg.Unique is set.
type Options struct {
	Grid                *grid.Grid
	Shapes              []*piece.Shape
	Index               *placement.Index
	SymmetricPerms      []placement.Permutation
	RedundancyFilterID  int // Shape id whose column comes first among the shape columns, 0 = none
}

// New builds a Solver, loading the DLX matrix from idx (spec.md §4.3,
// "DLX matrix loaded"). Shape columns are added in shapes order, except
// opts.RedundancyFilterID's shape is moved first when
// cfg.RedundancyFilterFirst is set (spec.md §4.4 "redundancyFilterFirst").
// All shape columns follow the GridPoint columns in the header chain,
// and bestColumn picks by heuristic score, so this order only decides
// ties between shape columns; it does not make the search branch on
// that shape's column first.
func New[T dedup.StateID](opts Options, cfg Config, meter *perf.Meter) *Solver[T] {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}
	if cfg.Heuristic == nil {
		cfg.Heuristic = heuristic.NewTable([]heuristic.Entry{{Threshold: 0, Spec: heuristic.Fit{}}})
	}
	cfg.Clamp()

	s := &Solver[T]{
		g:            opts.Grid,
		shapes:       make(map[int]*piece.Shape, len(opts.Shapes)),
		cfg:          cfg,
		meter:        meter,
		gridColOf:    make(map[int]int, opts.Grid.NumGridPoints()),
		shapeColOf:   make(map[int]int, len(opts.Shapes)),
		pointOf:      make(map[int]geometry.Point, opts.Grid.NumGridPoints()),
		rowPlacement: make(map[int32]*placement.Placement),
		shapeRemain:  make(map[int]int, len(opts.Shapes)),
		idx:          opts.Index,
	}
	for _, sh := range opts.Shapes {
		s.shapes[sh.ID] = sh
		s.shapeRemain[sh.ID] = sh.MobileCount()
		s.rootRemaining += sh.MobileCount()
	}
	s.remaining = s.rootRemaining

	nodeHint := 0
	for _, placements := range opts.Index.ByShape {
		for _, pl := range placements {
			nodeHint += pl.Size() + 1
		}
	}
	s.matrix = dlx.NewMatrix(nodeHint)

	for _, gp := range opts.Grid.Points {
		col := s.matrix.AddColumn(dlx.ColumnGridPoint, gp.ID, 0, 1)
		s.gridColOf[gp.ID] = col
		s.pointOf[gp.ID] = gp.Point
	}

	shapeOrder := orderedMobileShapeIDs(opts.Shapes, opts.RedundancyFilterID, cfg.RedundancyFilterFirst)
	for _, shapeID := range shapeOrder {
		remain := s.shapeRemain[shapeID]
		if remain == 0 {
			continue
		}
		col := s.matrix.AddColumn(dlx.ColumnShape, 0, shapeID, int32(remain))
		s.shapeColOf[shapeID] = col
	}

	for _, shapeID := range shapeOrder {
		shapeCol, ok := s.shapeColOf[shapeID]
		if !ok {
			continue
		}
		for _, pl := range opts.Index.ByShape[shapeID] {
			cols := make([]int, 0, pl.Size()+1)
			for _, c := range pl.Cells {
				cols = append(cols, s.gridColOf[c.ID])
			}
			cols = append(cols, shapeCol)
			rowID := s.matrix.AddRow(cols)
			s.rowPlacement[rowID] = pl
		}
	}

	if cfg.ParityBacktrack || cfg.ParityFilter.kind != filterOff {
		s.parity = monitor.NewParityMonitor(s.parityMagnitudes())
	}
	if cfg.VolumeBacktrack > 0 || cfg.VolumeFilter.kind != filterOff {
		s.volume = monitor.NewVolumeMonitor(s.pieceSizes())
	}
	if cfg.Unique {
		s.dedupFilter = dedup.NewFilter[T](opts.SymmetricPerms)
	}

	for _, gp := range opts.Grid.Points {
		s.holeParitySum += gp.Point.Parity()
	}

	return s
}

func orderedMobileShapeIDs(shapes []*piece.Shape, forceFirst int, enabled bool) []int {
	out := make([]int, 0, len(shapes))
	if enabled && forceFirst != 0 {
		out = append(out, forceFirst)
	}
	for _, sh := range shapes {
		if enabled && sh.ID == forceFirst {
			continue
		}
		out = append(out, sh.ID)
	}
	return out
}

func (s *Solver[T]) parityMagnitudes() []int {
	var mags []int
	for id, sh := range s.shapes {
		p := sh.Canonical.Parity
		if p < 0 {
			p = -p
		}
		for i := 0; i < s.shapeRemain[id]; i++ {
			mags = append(mags, p)
		}
	}
	return mags
}

func (s *Solver[T]) pieceSizes() []int {
	var sizes []int
	for id, sh := range s.shapes {
		sz := sh.Canonical.Size()
		for i := 0; i < s.shapeRemain[id]; i++ {
			sizes = append(sizes, sz)
		}
	}
	return sizes
}

// Solve runs the search to completion, calling onSolution for every
// complete placement found. onSolution returning false stops the
// search early (used by callers that only want the first solution).
func (s *Solver[T]) Solve(onSolution func(Solution) bool) {
	s.onSolution = onSolution
	s.descend()
}
