// Package config parses the CLI/file configuration surface (spec.md
// §6.3) into a solver.Config plus the run parameters that live outside
// the solver proper (redundancy filter selection, Monte Carlo sampling,
// output format, info/quiet toggles). Parsing follows the same
// colon/equals token style puzzlefmt uses for puzzle definitions, and
// the error/warning split mirrors uci.Interface.commandSetOption's
// forgiving per-token handling, tightened to return a hard error on an
// unrecognised key rather than silently ignoring it.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bpasanek/puzzlecode/heuristic"
	"github.com/bpasanek/puzzlecode/output"
	"github.com/bpasanek/puzzlecode/solver"
)

// ErrConfiguration is the sentinel for every configuration-surface
// error (spec.md §7 "Configuration error").
var ErrConfiguration = errors.New("config: invalid configuration")

// Warning is a non-fatal diagnostic (spec.md §7 "Warnings (not
// errors)"): a filter threshold below the highest tiling threshold.
type Warning struct {
	Option  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Option, w.Message)
}

// Sample holds the `sample=T,R,S` triple (spec.md §6.3).
type Sample struct {
	Trials   int
	Boundary int
	Seed     uint64
}

// RunConfig is everything one run of the solver needs beyond the
// puzzle definition itself.
type RunConfig struct {
	Solver solver.Config

	// RedundancyFilter is "" (off), "auto", or an explicit piece name
	// (spec.md §6.3 "redundancyFilter=name | auto | off").
	RedundancyFilter string

	Sample *Sample
	Format output.Format
	Info   bool
	Quiet  bool

	// Parallel runs Sample across GOMAXPROCS workers (solver.ParallelSample,
	// SPEC_FULL.md §2) instead of a single sequential pass. Meaningless
	// without Sample set; Load does not reject that combination since a
	// stray "parallel" token with no "sample" token is harmless, just inert.
	Parallel bool
}

// Default mirrors solver.DefaultConfig: DLX-only, fit ordering, no
// filtering, Brief/Layout output.
func Default() RunConfig {
	return RunConfig{
		Solver: solver.DefaultConfig(),
		Format: output.Format{Overall: output.Brief, Piece: output.Layout},
	}
}

// Load reads a sequence of "key=value" (or bare "key" for booleans)
// tokens — one CLI argument or config-file line each — into a
// RunConfig, per the closed option set in spec.md §6.3.
func Load(tokens []string) (RunConfig, []Warning, error) {
	cfg := Default()
	var warnings []Warning

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || strings.HasPrefix(tok, "#") {
			continue
		}
		key, value, hasValue := strings.Cut(tok, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "bruijn":
			cfg.Solver.Bruijn, err = parseInt(value)
		case "emch":
			cfg.Solver.EMch, err = parseInt(value)
		case "mch":
			cfg.Solver.Mch, err = parseInt(value)
		case "fitFilter":
			cfg.Solver.FitFilter, err = parseFilterMode(value)
		case "parityFilter":
			cfg.Solver.ParityFilter, err = parseFilterMode(value)
		case "volumeFilter":
			cfg.Solver.VolumeFilter, err = parseFilterMode(value)
		case "parityBacktrack":
			cfg.Solver.ParityBacktrack, err = parseBool(value, hasValue)
		case "volumeBacktrack":
			cfg.Solver.VolumeBacktrack, err = parseInt(value)
		case "redundancyFilter":
			if value == "off" {
				value = ""
			}
			cfg.RedundancyFilter = value
		case "redundancyFilterFirst":
			cfg.Solver.RedundancyFilterFirst, err = parseBool(value, hasValue)
		case "unique":
			cfg.Solver.Unique, err = parseBool(value, hasValue)
		case "goal":
			cfg.Solver.Goal, err = parseInt(value)
		case "trace":
			cfg.Solver.Trace, err = parseInt(value)
		case "sample":
			cfg.Sample, err = parseSample(value)
		case "parallel":
			cfg.Parallel, err = parseBool(value, hasValue)
		case "order":
			cfg.Solver.Heuristic, err = parseOrderTable(value)
		case "format":
			cfg.Format, err = parseFormat(value)
		case "info":
			cfg.Info, err = parseBool(value, hasValue)
		case "quiet":
			cfg.Quiet, err = parseBool(value, hasValue)
		default:
			return cfg, warnings, fmt.Errorf("%w: unknown option %q", ErrConfiguration, key)
		}
		if err != nil {
			return cfg, warnings, fmt.Errorf("%w: option %q: %v", ErrConfiguration, key, err)
		}
	}

	cfg.Solver.Clamp()
	if cfg.Sample != nil && cfg.Sample.Boundary < cfg.Solver.Mch {
		return cfg, warnings, fmt.Errorf("%w: sample boundary %d is below mch=%d", ErrConfiguration, cfg.Sample.Boundary, cfg.Solver.Mch)
	}
	warnings = append(warnings, filterWarnings(cfg.Solver)...)
	return cfg, warnings, nil
}

// filterWarnings flags a filter threshold set below the highest tiling
// threshold (spec.md §7): the filter runs only in DLX frames, never in
// the tiling drivers that take over once k <= mch, so the part of its
// range below mch applies only where tiling cannot start.
func filterWarnings(cfg solver.Config) []Warning {
	var out []Warning
	check := func(name string, mode solver.FilterMode) {
		if w, ok := mode.BelowThreshold(cfg.Mch); ok {
			out = append(out, Warning{Option: name, Message: fmt.Sprintf("threshold %d is below mch=%d; filter does not run in tiling mode", w, cfg.Mch)})
		}
	}
	check("fitFilter", cfg.FitFilter)
	check("parityFilter", cfg.ParityFilter)
	check("volumeFilter", cfg.VolumeFilter)
	return out
}

func parseInt(value string) (int, error) {
	return strconv.Atoi(value)
}

func parseBool(value string, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	return strconv.ParseBool(value)
}

// parseFilterMode implements "N | -1 (once) | 0 (off)" (spec.md §6.3).
func parseFilterMode(value string) (solver.FilterMode, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return solver.FilterMode{}, err
	}
	switch {
	case n == 0:
		return solver.FilterOff(), nil
	case n < 0:
		return solver.FilterOnce(), nil
	default:
		return solver.FilterAt(n), nil
	}
}

func parseSample(value string) (*Sample, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("sample requires T,R,S, got %q", value)
	}
	trials, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	boundary, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return nil, err
	}
	return &Sample{Trials: trials, Boundary: boundary, Seed: seed}, nil
}

// parseOrderTable reads a comma-separated "threshold:spec" list into a
// heuristic.Table (spec.md §4.9, §6.3 "order=spec"): spec is one of
// fit, linear(a;b;c), angular(theta0;xc;yc;reverse), radial(xc;yc;zc)
// (arguments are separated by ';' since ',' separates entries).
func parseOrderTable(value string) (heuristic.Table, error) {
	var entries []heuristic.Entry
	for _, term := range strings.Split(value, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		thresholdStr, specStr, ok := strings.Cut(term, ":")
		if !ok {
			return heuristic.Table{}, fmt.Errorf("malformed order entry %q", term)
		}
		threshold, err := strconv.Atoi(strings.TrimSpace(thresholdStr))
		if err != nil {
			return heuristic.Table{}, err
		}
		spec, err := parseHeuristicSpec(strings.TrimSpace(specStr))
		if err != nil {
			return heuristic.Table{}, err
		}
		entries = append(entries, heuristic.Entry{Threshold: threshold, Spec: spec})
	}
	if len(entries) == 0 {
		return heuristic.Table{}, errors.New("order requires at least one entry")
	}
	return heuristic.NewTable(entries), nil
}

func parseHeuristicSpec(s string) (heuristic.Spec, error) {
	name, argStr, hasArgs := strings.Cut(s, "(")
	name = strings.TrimSpace(name)
	var args []float64
	if hasArgs {
		argStr = strings.TrimSuffix(argStr, ")")
		for _, a := range strings.Split(argStr, ";") {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	}

	switch name {
	case "fit":
		return heuristic.Fit{}, nil
	case "linear":
		if len(args) != 3 {
			return nil, fmt.Errorf("linear requires 3 args, got %d", len(args))
		}
		return heuristic.Linear{A: args[0], B: args[1], C: args[2]}, nil
	case "angular":
		if len(args) != 4 {
			return nil, fmt.Errorf("angular requires 4 args, got %d", len(args))
		}
		return heuristic.Angular{Theta0: args[0], XC: args[1], YC: args[2], Reverse: args[3] != 0}, nil
	case "radial":
		if len(args) != 3 {
			return nil, fmt.Errorf("radial requires 3 args, got %d", len(args))
		}
		return heuristic.Radial{XC: args[0], YC: args[1], ZC: args[2]}, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

// parseFormat reads the two-character overall×piece code (spec.md
// §6.3 "format=spec"): first char B/F/S selects Brief/Full/Sub-puzzle,
// second char L/C selects Layout/Coordinate.
func parseFormat(value string) (output.Format, error) {
	if len(value) != 2 {
		return output.Format{}, fmt.Errorf("format requires exactly 2 characters, got %q", value)
	}
	var f output.Format
	switch value[0] {
	case 'B', 'b':
		f.Overall = output.Brief
	case 'F', 'f':
		f.Overall = output.Full
	case 'S', 's':
		f.Overall = output.SubPuzzle
	default:
		return output.Format{}, fmt.Errorf("unknown overall format %q", value[0:1])
	}
	switch value[1] {
	case 'L', 'l':
		f.Piece = output.Layout
	case 'C', 'c':
		f.Piece = output.Coordinate
	default:
		return output.Format{}, fmt.Errorf("unknown piece format %q", value[1:2])
	}
	return f, nil
}
