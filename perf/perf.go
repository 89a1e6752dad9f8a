// Package perf is the performance-meter tree (spec.md §5, §6.2, §8): a
// sink of per-remaining-piece-count counters threaded explicitly
// through the solver rather than kept as package-level mutable state,
// emitting thousands-grouped `KEY=value` statistics lines grounded on
// the teacher's bench.Perft reporting.
package perf

import (
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Metric names one tracked statistic. Breakdown counts are recorded
// per remaining-piece-count k in addition to a running total.
type Metric int

const (
	Attempts Metric = iota
	Fits
	FitFiltered
	ParityFiltered
	VolumeFiltered
	ParityBacktracks
	VolumeBacktracks
	Solutions
	MonteCarloTrials
)

func (m Metric) String() string {
	switch m {
	case Attempts:
		return "attempts"
	case Fits:
		return "fits"
	case FitFiltered:
		return "fitFiltered"
	case ParityFiltered:
		return "parityFiltered"
	case VolumeFiltered:
		return "volumeFiltered"
	case ParityBacktracks:
		return "parityBacktracks"
	case VolumeBacktracks:
		return "volumeBacktracks"
	case Solutions:
		return "solutions"
	case MonteCarloTrials:
		return "mcTrials"
	default:
		return "unknown"
	}
}

var orderedMetrics = []Metric{
	Attempts, Fits, FitFiltered, ParityFiltered, VolumeFiltered,
	ParityBacktracks, VolumeBacktracks, Solutions, MonteCarloTrials,
}

// Meter accumulates counters during a solve. Build one with NewMeter:
// the zero value has no counter map, so Incr on it panics. Callers
// share one Meter per puzzle solve, passed explicitly rather than read
// from a package global.
type Meter struct {
	counts map[Metric]map[int]uint64
}

func NewMeter() *Meter {
	return &Meter{counts: make(map[Metric]map[int]uint64)}
}

// Incr records one occurrence of metric at remaining-piece-count k.
func (m *Meter) Incr(metric Metric, k int) {
	bucket, ok := m.counts[metric]
	if !ok {
		bucket = make(map[int]uint64)
		m.counts[metric] = bucket
	}
	bucket[k]++
}

// Merge folds other's counts into m, bucket by bucket. Used to collect
// per-worker Meters back into one shared Meter after a parallel sample
// run (solver.ParallelSample) — callers serialize calls to Merge
// themselves (e.g. one call per completed worker goroutine, under a
// mutex), since Meter carries no locking of its own.
func (m *Meter) Merge(other *Meter) {
	for metric, bucket := range other.counts {
		dst, ok := m.counts[metric]
		if !ok {
			dst = make(map[int]uint64, len(bucket))
			m.counts[metric] = dst
		}
		for k, v := range bucket {
			dst[k] += v
		}
	}
}

// Total sums every per-k bucket recorded for metric.
func (m *Meter) Total(metric Metric) uint64 {
	var sum uint64
	for _, v := range m.counts[metric] {
		sum += v
	}
	return sum
}

// Lines renders every metric as `KEY=value` totals followed by
// `KEY[k]=value` per-remaining-piece-count breakdowns, thousands
// grouped via golang.org/x/text/message (spec.md §6.2).
func (m *Meter) Lines() []string {
	p := message.NewPrinter(language.English)
	var lines []string
	for _, metric := range orderedMetrics {
		bucket := m.counts[metric]
		if len(bucket) == 0 {
			continue
		}
		lines = append(lines, p.Sprintf("%s=%d", metric, m.Total(metric)))
		ks := make([]int, 0, len(bucket))
		for k := range bucket {
			ks = append(ks, k)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ks)))
		for _, k := range ks {
			lines = append(lines, p.Sprintf("%s[%d]=%d", metric, k, bucket[k]))
		}
	}
	return lines
}

// Report renders a single human-readable summary line for a completed
// solve, grounded on bench.Perft's final Sprintf line.
func (m *Meter) Report(start time.Time) string {
	elapsed := time.Since(start)
	p := message.NewPrinter(language.English)
	return p.Sprintf("solutions=%d attempts=%d rate=%d/s (%.3fs elapsed)",
		m.Total(Solutions), m.Total(Attempts),
		int64(float64(m.Total(Attempts))/elapsed.Seconds()), elapsed.Seconds())
}
