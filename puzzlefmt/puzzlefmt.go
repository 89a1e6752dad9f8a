// Package puzzlefmt parses the line-oriented ASCII puzzle-definition
// format (spec.md §6.1): a stream of D/C/L/~D/~L records describing
// zero or more puzzles. The parser is an external collaborator — it
// knows nothing of Grid, Shape, or DLX; it produces PuzzleConfig
// values the puzzle package turns into a solvable Puzzle.
package puzzlefmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bpasanek/puzzlecode/geometry"
	"github.com/bpasanek/puzzlecode/piece"
)

// Sentinel error kinds (spec.md §7 "Puzzle-definition error"). Wrap
// with ParseError to attach a line number.
var (
	ErrSyntax            = errors.New("syntax error")
	ErrUnknownDirective  = errors.New("unknown directive")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrDuplicatePiece    = errors.New("duplicate piece name")
	ErrVolumeMismatch    = errors.New("piece volumes do not sum to box volume")
	ErrStationaryOverlap = errors.New("stationary piece overlap")
	ErrOneSidedViolation = errors.New("oneSide requires zDim=1")
	ErrUnexpectedEOF     = errors.New("unexpected end of input in layout block")
	ErrNoOpenPuzzle      = errors.New("record outside an open D...~D block")
)

// ParseError carries the source line at which parsing failed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PieceDef is one named piece declared by a C record or aggregated
// from an L layout block.
type PieceDef struct {
	Name     string
	Mobility piece.Mobility
	Layout   []geometry.Point
}

// PuzzleConfig is the parser's external contract (spec.md §6.4): one
// closed D...~D block's worth of dimensions, mode, and piece
// declarations, in declaration order.
type PuzzleConfig struct {
	XDim, YDim, ZDim int
	OneSide          bool
	Pieces           []PieceDef
}

// Mobile returns the mobile piece declarations, in declaration order.
func (c *PuzzleConfig) Mobile() []PieceDef {
	var out []PieceDef
	for _, p := range c.Pieces {
		if p.Mobility == piece.Mobile {
			out = append(out, p)
		}
	}
	return out
}

// Stationary returns the stationary piece declarations, in
// declaration order.
func (c *PuzzleConfig) Stationary() []PieceDef {
	var out []PieceDef
	for _, p := range c.Pieces {
		if p.Mobility == piece.Stationary {
			out = append(out, p)
		}
	}
	return out
}

// Volume returns the box volume xDim*yDim*zDim.
func (c *PuzzleConfig) Volume() int {
	return c.XDim * c.YDim * c.ZDim
}

type parser struct {
	cfgs []*PuzzleConfig

	cfg      *PuzzleConfig // non-nil while inside D...~D
	declared map[string]bool

	inLayout         bool
	layoutStationary map[string]bool
	layoutPoints     map[string][]geometry.Point
	layoutOrder      []string // piece tokens in order of first appearance, for deterministic declaration order
	layoutRow        int      // counts lines consumed inside the current L block

	lineNo int
}

// Parse reads a full puzzle-definition stream and returns every
// completed (D...~D) puzzle it contains, in stream order.
func Parse(r io.Reader) ([]*PuzzleConfig, error) {
	p := &parser{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.lineNo++
		if err := p.handleLine(scanner.Text()); err != nil {
			return nil, &ParseError{Line: p.lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if p.inLayout || p.cfg != nil {
		return nil, &ParseError{Line: p.lineNo, Err: ErrUnexpectedEOF}
	}
	return p.cfgs, nil
}

func (p *parser) handleLine(raw string) error {
	line := stripComment(raw)
	if p.inLayout {
		return p.handleLayoutLine(line)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	fields := strings.Split(line, ":")
	switch fields[0] {
	case "D":
		return p.handleD(fields[1:])
	case "~D":
		return p.handleCloseD()
	case "C":
		return p.handleC(fields[1:])
	case "L":
		return p.handleOpenL(fields[1:])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirective, fields[0])
	}
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func (p *parser) handleD(fields []string) error {
	if p.cfg != nil {
		return fmt.Errorf("%w: nested D record", ErrSyntax)
	}
	cfg := &PuzzleConfig{}
	seen := map[string]bool{}
	for _, f := range fields {
		key, val, hasVal := splitKV(f)
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, key)
		}
		seen[key] = true
		switch key {
		case "xDim":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("%w: xDim", ErrSyntax)
			}
			cfg.XDim = n
		case "yDim":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("%w: yDim", ErrSyntax)
			}
			cfg.YDim = n
		case "zDim":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("%w: zDim", ErrSyntax)
			}
			cfg.ZDim = n
		case "oneSide":
			if !hasVal {
				cfg.OneSide = true
				continue
			}
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("%w: oneSide", ErrSyntax)
			}
			cfg.OneSide = b
		default:
			return fmt.Errorf("%w: %q", ErrSyntax, key)
		}
	}
	if cfg.XDim == 0 || cfg.YDim == 0 || cfg.ZDim == 0 {
		return fmt.Errorf("%w: D requires xDim, yDim, zDim", ErrSyntax)
	}
	if cfg.OneSide && cfg.ZDim != 1 {
		return ErrOneSidedViolation
	}
	p.cfg = cfg
	p.declared = make(map[string]bool)
	return nil
}

func (p *parser) handleCloseD() error {
	if p.cfg == nil {
		return ErrNoOpenPuzzle
	}
	volume := 0
	for _, pd := range p.cfg.Pieces {
		volume += len(pd.Layout)
	}
	if volume != p.cfg.Volume() {
		return ErrVolumeMismatch
	}
	if err := checkStationaryOverlap(p.cfg.Stationary()); err != nil {
		return err
	}
	p.cfgs = append(p.cfgs, p.cfg)
	p.cfg = nil
	p.declared = nil
	return nil
}

func checkStationaryOverlap(stationary []PieceDef) error {
	seen := make(map[geometry.Point]bool)
	for _, pd := range stationary {
		for _, pt := range pd.Layout {
			if seen[pt] {
				return ErrStationaryOverlap
			}
			seen[pt] = true
		}
	}
	return nil
}

func (p *parser) handleC(fields []string) error {
	if p.cfg == nil {
		return ErrNoOpenPuzzle
	}
	var name string
	var mobility piece.Mobility
	var points []geometry.Point
	haveType := false
	for _, f := range fields {
		key, val, _ := splitKV(f)
		switch key {
		case "name":
			name = val
		case "type":
			switch val {
			case "M":
				mobility = piece.Mobile
			case "S":
				mobility = piece.Stationary
			default:
				return fmt.Errorf("%w: type must be M or S", ErrSyntax)
			}
			haveType = true
		case "layout":
			pts, err := parseLayoutCoords(val)
			if err != nil {
				return err
			}
			points = pts
		default:
			return fmt.Errorf("%w: %q", ErrSyntax, key)
		}
	}
	if name == "" || !haveType || len(points) == 0 {
		return fmt.Errorf("%w: C requires name, type, layout", ErrSyntax)
	}
	return p.declarePiece(name, mobility, points)
}

func (p *parser) declarePiece(name string, mobility piece.Mobility, points []geometry.Point) error {
	if p.declared[name] {
		return fmt.Errorf("%w: %q", ErrDuplicatePiece, name)
	}
	for _, pt := range points {
		if !pt.InBounds(geometry.Point{X: p.cfg.XDim, Y: p.cfg.YDim, Z: p.cfg.ZDim}) {
			return fmt.Errorf("%w: piece %q", ErrOutOfBounds, name)
		}
	}
	p.declared[name] = true
	p.cfg.Pieces = append(p.cfg.Pieces, PieceDef{Name: name, Mobility: mobility, Layout: points})
	return nil
}

// parseLayoutCoords parses "x y z, x y z, ..." into Points.
func parseLayoutCoords(val string) ([]geometry.Point, error) {
	groups := strings.Split(val, ",")
	pts := make([]geometry.Point, 0, len(groups))
	for _, g := range groups {
		fs := strings.Fields(g)
		if len(fs) != 3 {
			return nil, fmt.Errorf("%w: layout coordinate %q", ErrSyntax, g)
		}
		var coords [3]int
		for i, fv := range fs {
			n, err := strconv.Atoi(fv)
			if err != nil {
				return nil, fmt.Errorf("%w: layout coordinate %q", ErrSyntax, g)
			}
			coords[i] = n
		}
		pts = append(pts, geometry.Point{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return pts, nil
}

func (p *parser) handleOpenL(fields []string) error {
	if p.cfg == nil {
		return ErrNoOpenPuzzle
	}
	p.inLayout = true
	p.layoutStationary = make(map[string]bool)
	p.layoutPoints = make(map[string][]geometry.Point)
	p.layoutOrder = nil
	p.layoutRow = 0
	for _, f := range fields {
		key, val, _ := splitKV(f)
		if key != "stationary" {
			return fmt.Errorf("%w: %q", ErrSyntax, key)
		}
		for _, name := range strings.Fields(val) {
			p.layoutStationary[name] = true
		}
	}
	return nil
}

func (p *parser) handleLayoutLine(raw string) error {
	line := strings.TrimSpace(raw)
	if strings.HasPrefix(line, "~L") {
		return p.closeLayout()
	}

	layers := strings.Split(line, ",")
	if len(layers) != p.cfg.ZDim {
		return fmt.Errorf("%w: layout row has %d z-layers, want %d", ErrSyntax, len(layers), p.cfg.ZDim)
	}
	y := p.cfg.YDim - 1 - p.layoutRow
	if y < 0 {
		return fmt.Errorf("%w: layout block has more rows than yDim", ErrSyntax)
	}
	for z, layer := range layers {
		tokens := strings.Fields(layer)
		if len(tokens) != p.cfg.XDim {
			return fmt.Errorf("%w: z-layer has %d cells, want %d", ErrSyntax, len(tokens), p.cfg.XDim)
		}
		for x, tok := range tokens {
			if tok == "." {
				continue
			}
			if _, seen := p.layoutPoints[tok]; !seen {
				p.layoutOrder = append(p.layoutOrder, tok)
			}
			pt := geometry.Point{X: x, Y: y, Z: z}
			p.layoutPoints[tok] = append(p.layoutPoints[tok], pt)
		}
	}
	p.layoutRow++
	return nil
}

func (p *parser) closeLayout() error {
	for _, name := range p.layoutOrder {
		pts := p.layoutPoints[name]
		mobility := piece.Mobile
		if p.layoutStationary[name] {
			mobility = piece.Stationary
		}
		if err := p.declarePiece(name, mobility, pts); err != nil {
			return err
		}
	}
	p.inLayout = false
	p.layoutStationary = nil
	p.layoutPoints = nil
	p.layoutOrder = nil
	return nil
}

// splitKV splits a "key=value" field; hasVal is false for a bare
// flag-style key with no '=' (e.g. "oneSide" meaning true).
func splitKV(field string) (key, val string, hasVal bool) {
	if i := strings.IndexByte(field, '='); i >= 0 {
		return field[:i], field[i+1:], true
	}
	return field, "", false
}
