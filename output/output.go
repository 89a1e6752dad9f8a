// Package output renders a completed placement (spec.md §6.2) as text:
// Brief (a pretty piece-name grid), Full (a re-emittable puzzle
// definition), or Sub-puzzle (Full with placed pieces marked
// stationary), with piece cells shown either as a visual layout or as
// explicit coordinate lines. Brief-format piece names are colored when
// the sink is a terminal, grounded on the teacher's fatih/color +
// go-isatty combination (gambit has no formatter of its own to copy
// the structure from, so only the color/terminal-detection pair is
// reused — see DESIGN.md).
package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bpasanek/puzzlecode/geometry"
)

// OverallFormat selects the overall document shape.
type OverallFormat int

const (
	Brief OverallFormat = iota
	Full
	SubPuzzle
)

// PieceFormat selects how a piece's cells are rendered within Full /
// Sub-puzzle output.
type PieceFormat int

const (
	Layout PieceFormat = iota
	Coordinate
)

// Format is the two-character overall×piece combination from spec.md
// §6.3 "format=spec".
type Format struct {
	Overall OverallFormat
	Piece   PieceFormat
}

// PieceRecord is one piece (mobile or stationary) of a solved or
// partially solved puzzle, in the shape puzzlefmt.PieceDef expects on
// the way back in.
type PieceRecord struct {
	Name       string
	Stationary bool
	Cells      []geometry.Point
}

// Puzzle bundles everything a Full/Sub-puzzle/Brief rendering needs:
// the cuboid dimensions and every piece currently placed (the caller
// decides, via Stationary, whether a given piece counts as placed
// scenery or still-mobile per spec.md §6.2 "Sub-puzzle... placed
// pieces are re-emitted as stationary").
type Puzzle struct {
	Dims    geometry.Point
	OneSide bool
	Pieces  []PieceRecord
}

// Formatter renders one Puzzle snapshot per call to Write. A single
// Formatter is reused across every solution of one run.
type Formatter struct {
	Format Format
	Color  bool
}

// NewFormatter builds a Formatter, defaulting Color to whether standard
// output is a terminal (spec.md is silent on this; §6.2 only specifies the
// text content, so color is an additive presentation detail this
// module supplies in the teacher's style).
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		Format: format,
		Color:  isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func (f *Formatter) Write(w io.Writer, p Puzzle) error {
	switch f.Format.Overall {
	case Brief:
		return f.writeBrief(w, p)
	default:
		return f.writeFull(w, p, f.Format.Overall == SubPuzzle)
	}
}

var paletteFuncs = []func(format string, a ...interface{}) string{
	color.New(color.FgRed).SprintfFunc(),
	color.New(color.FgGreen).SprintfFunc(),
	color.New(color.FgYellow).SprintfFunc(),
	color.New(color.FgBlue).SprintfFunc(),
	color.New(color.FgMagenta).SprintfFunc(),
	color.New(color.FgCyan).SprintfFunc(),
}

// writeBrief prints one text line per y-row, z-layers separated by ", "
// within a line, rows emitted from y=yDim-1 down to 0 (spec.md §6.1's
// layout-block row order, reused here for the mirror output direction).
// Unplaced cells print as ".".
func (f *Formatter) writeBrief(w io.Writer, p Puzzle) error {
	label := make(map[geometry.Point]string)
	colorOf := make(map[string]func(string, ...interface{}) string)
	names := make([]string, 0, len(p.Pieces))
	for _, pc := range p.Pieces {
		if _, ok := colorOf[pc.Name]; !ok {
			names = append(names, pc.Name)
		}
		for _, c := range pc.Cells {
			label[c] = pc.Name
		}
	}
	sort.Strings(names)
	for i, name := range names {
		colorOf[name] = paletteFuncs[i%len(paletteFuncs)]
	}

	for y := p.Dims.Y - 1; y >= 0; y-- {
		for z := 0; z < p.Dims.Z; z++ {
			if z > 0 {
				if _, err := fmt.Fprint(w, ", "); err != nil {
					return err
				}
			}
			for x := 0; x < p.Dims.X; x++ {
				if x > 0 {
					if _, err := fmt.Fprint(w, " "); err != nil {
						return err
					}
				}
				name, ok := label[geometry.Point{X: x, Y: y, Z: z}]
				if !ok {
					if _, err := fmt.Fprint(w, "."); err != nil {
						return err
					}
					continue
				}
				text := name
				if f.Color {
					text = colorOf[name](name)
				}
				if _, err := fmt.Fprint(w, text); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// writeFull re-emits a puzzlefmt-compatible puzzle definition (spec.md
// §6.2 Full / Sub-puzzle): a D header, a C line (or L block, per
// f.Format.Piece) for every piece, and a closing ~D. asStationary
// forces every mobile piece's type to S, matching Sub-puzzle's "placed
// pieces are re-emitted as stationary".
func (f *Formatter) writeFull(w io.Writer, p Puzzle, asStationary bool) error {
	header := fmt.Sprintf("D:xDim=%d:yDim=%d:zDim=%d", p.Dims.X, p.Dims.Y, p.Dims.Z)
	if p.OneSide {
		header += ":oneSide=true"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, pc := range p.Pieces {
		kind := "M"
		if pc.Stationary || asStationary {
			kind = "S"
		}
		switch f.Format.Piece {
		case Coordinate:
			if err := writeCoordinateLine(w, pc.Name, kind, pc.Cells); err != nil {
				return err
			}
		default:
			if err := writeLayoutBlock(w, pc.Name, kind, pc.Cells, p.Dims); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "~D")
	return err
}

func writeCoordinateLine(w io.Writer, name, kind string, cells []geometry.Point) error {
	layout := make([]string, len(cells))
	for i, c := range cells {
		layout[i] = fmt.Sprintf("%d %d %d", c.X, c.Y, c.Z)
	}
	_, err := fmt.Fprintf(w, "C:name=%s:type=%s:layout=%s\n", name, kind, joinComma(layout))
	return err
}

// writeLayoutBlock emits a single-piece L/~L visual grid block (spec.md
// §6.1): one row per y from yDim-1 down to 0, z-layers comma-separated
// within a row, x-tokens space-separated within a layer, "." for every
// cell not belonging to this piece. The block declares only this
// piece's name, so it round-trips through puzzlefmt's parser exactly
// as a multi-piece L block would, just with one name instead of many;
// kind=="S" is carried via the L header's own stationary= field
// (puzzlefmt.handleOpenL) rather than a separate C line, since a name
// can only be declared once per puzzle definition.
func writeLayoutBlock(w io.Writer, name, kind string, cells []geometry.Point, dims geometry.Point) error {
	if len(cells) == 0 {
		return nil
	}
	header := "L"
	if kind == "S" {
		header += ":stationary=" + name
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	occupied := make(map[geometry.Point]bool, len(cells))
	for _, c := range cells {
		occupied[c] = true
	}
	for y := dims.Y - 1; y >= 0; y-- {
		row := make([]byte, 0, dims.X*dims.Z*2)
		for z := 0; z < dims.Z; z++ {
			if z > 0 {
				row = append(row, ',', ' ')
			}
			for x := 0; x < dims.X; x++ {
				if x > 0 {
					row = append(row, ' ')
				}
				if occupied[geometry.Point{X: x, Y: y, Z: z}] {
					row = append(row, name...)
				} else {
					row = append(row, '.')
				}
			}
		}
		if _, err := fmt.Fprintln(w, string(row)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "~L")
	return err
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
