// Package solver implements the recursive exact-cover search driver
// (spec.md §4.8): the DLX/MCH/EMCH/de Bruijn algorithmic modes, the
// fit/parity/volume filter and backtrack checks, ordering-heuristic
// column selection, the goal decomposition mechanism, and Monte Carlo
// sampling.
package solver

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/bpasanek/puzzlecode/heuristic"
)

// FilterMode encodes the fitFilter/parityFilter/volumeFilter threshold
// syntax from spec.md §6.3 ("N | -1 (once) | 0 (off)"): Off disables
// the filter, Once runs it only at the top of the search (the frame
// where remaining equals the puzzle's total mobile piece count), and
// At(n) runs it whenever the remaining piece count is >= n.
type FilterMode struct {
	kind      filterKind
	threshold int
}

type filterKind int

const (
	filterOff filterKind = iota
	filterOnce
	filterAt
)

func FilterOff() FilterMode             { return FilterMode{kind: filterOff} }
func FilterOnce() FilterMode            { return FilterMode{kind: filterOnce} }
func FilterAt(threshold int) FilterMode { return FilterMode{kind: filterAt, threshold: threshold} }

// BelowThreshold reports whether f is a fixed-threshold filter set
// below mch: the filter runs only in DLX frames, never in the tiling
// drivers that take over once k <= mch, so the part of its range below
// mch applies only where tiling cannot start (spec.md §7 "a filter
// threshold below the highest tiling threshold").
func (f FilterMode) BelowThreshold(mch int) (int, bool) {
	if f.kind == filterAt && f.threshold < mch {
		return f.threshold, true
	}
	return 0, false
}

func (f FilterMode) active(k, rootK int) bool {
	switch f.kind {
	case filterOnce:
		return k == rootK
	case filterAt:
		return k >= f.threshold
	default:
		return false
	}
}

// Config collects every threshold and toggle from spec.md §6.3 plus the
// ambient logging injection point, modeled on the teacher's
// EngineConfig/SearchConfig split (engine.EngineConfig's Logger field).
type Config struct {
	// Bruijn, EMch, Mch are the de Bruijn / estimated-MCH / MCH
	// thresholds (spec.md §4.8). Clamp enforces Bruijn <= EMch <= Mch.
	Bruijn, EMch, Mch int

	FitFilter, ParityFilter, VolumeFilter FilterMode
	ParityBacktrack                       bool
	VolumeBacktrack                       int // 0 = off; else active when k >= VolumeBacktrack

	RedundancyFilterFirst bool
	Unique                bool
	Goal                  int // 0 = disabled; solve to completion

	Heuristic heuristic.Table

	// Logger receives trace and info lines (spec.md §6.3 trace=, info=).
	// Defaults to DefaultLogger, which wraps fmt.Println, exactly as
	// engine.EngineConfig defaults to engine.DefaultLogger.
	Logger func(...any)

	// Trace, when nonzero, requests partial-placement dumps per spec.md
	// §6.3 "trace=K": K > 0 prints on every place (and on every unplace
	// if K > 0) while remaining >= K-1; K < 0 prints only when remaining
	// == -(K-1).
	Trace int
}

// DefaultConfig matches the original's conservative defaults: DLX runs
// the entire search (tiling thresholds at 0), fit is the sole ordering
// heuristic, no filtering, no backtrack checks, no dedup.
func DefaultConfig() Config {
	return Config{
		Heuristic: heuristic.NewTable([]heuristic.Entry{{Threshold: 0, Spec: heuristic.Fit{}}}),
		Logger:    DefaultLogger,
	}
}

// Clamp enforces spec.md §6.3's ordering: bruijn <= emch <= mch.
func (c *Config) Clamp() {
	c.EMch = max(c.EMch, c.Bruijn)
	c.Mch = max(c.Mch, c.EMch)
}

// DefaultLogger wraps fmt.Println, exactly as engine.DefaultLogger does
// in the teacher.
func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}
