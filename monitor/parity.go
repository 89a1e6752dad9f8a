// Package monitor implements the parity and volume pruning state
// machines (spec.md §4.5, §4.6): given the multiset of magnitudes
// (piece parities or piece sizes) still remaining, answer in O(1)
// amortised whether a target value is reachable, with O(1) place/
// unplace transitions between states.
//
// The original precomputes every reachable state eagerly. Here each
// state's reachability table is computed on first visit and memoized,
// keyed by the remaining-count vector — behaviourally the same closed
// transition table, but materialised lazily so a puzzle with a large
// theoretical state space but a narrow actual search path never pays
// for states it never visits.
package monitor

// ParityMonitor detects that the remaining holes' parity is
// unreachable from the signed sum of remaining mobile pieces' parity
// magnitudes.
type ParityMonitor struct {
	magnitudes []int // distinct |piece.parity| values, ascending
	initial    []int // initial remaining count per magnitude
	counts     []int // current remaining count per magnitude
	maxTotal   int   // sum(initial[i]*magnitudes[i]); offsets run [-maxTotal, maxTotal]
	cache      map[int64][]bool
}

// NewParityMonitor builds a monitor over the given multiset of piece
// parity magnitudes (one entry per remaining mobile piece, duplicates
// expected). Construct lazily: only when parity filtering or
// parity-backtrack is actually enabled (spec.md §3 "Monitors:
// allocated lazily on first need").
func NewParityMonitor(parities []int) *ParityMonitor {
	counts := make(map[int]int)
	for _, p := range parities {
		if p < 0 {
			p = -p
		}
		counts[p]++
	}
	m := &ParityMonitor{cache: make(map[int64][]bool)}
	for p, c := range counts {
		m.magnitudes = append(m.magnitudes, p)
		m.initial = append(m.initial, c)
	}
	insertionSortPairs(m.magnitudes, m.initial)
	m.counts = append([]int(nil), m.initial...)
	for i, p := range m.magnitudes {
		m.maxTotal += m.initial[i] * p
	}
	return m
}

// Place records that one piece of parity magnitude p has been placed,
// removing it from the remaining multiset.
func (m *ParityMonitor) Place(p int) {
	if p < 0 {
		p = -p
	}
	m.counts[m.indexOf(p)]--
}

// Unplace is the exact inverse of Place.
func (m *ParityMonitor) Unplace(p int) {
	if p < 0 {
		p = -p
	}
	m.counts[m.indexOf(p)]++
}

// CheckParity reports whether some signed sum of the currently
// remaining pieces' parity magnitudes equals target.
func (m *ParityMonitor) CheckParity(target int) bool {
	reach := m.reach(m.counts)
	off := target + m.maxTotal
	if off < 0 || off >= len(reach) {
		return false
	}
	return reach[off]
}

func (m *ParityMonitor) indexOf(p int) int {
	for i, mag := range m.magnitudes {
		if mag == p {
			return i
		}
	}
	panic("monitor: parity magnitude not registered")
}

// reach returns the memoized reachability table for the given
// remaining-count vector: reach[v+maxTotal] is true iff some choice of
// sign per remaining piece sums to v.
func (m *ParityMonitor) reach(counts []int) []bool {
	key := m.encode(counts)
	if r, ok := m.cache[key]; ok {
		return r
	}

	idx := -1
	for i := len(counts) - 1; i >= 0; i-- {
		if counts[i] > 0 {
			idx = i
			break
		}
	}
	if idx == -1 {
		arr := make([]bool, 2*m.maxTotal+1)
		arr[m.maxTotal] = true
		m.cache[key] = arr
		return arr
	}

	pred := append([]int(nil), counts...)
	pred[idx]--
	predArr := m.reach(pred)
	p := m.magnitudes[idx]

	arr := make([]bool, len(predArr))
	for off, ok := range predArr {
		if !ok {
			continue
		}
		v := off - m.maxTotal
		if o := v + p + m.maxTotal; o >= 0 && o < len(arr) {
			arr[o] = true
		}
		if o := v - p + m.maxTotal; o >= 0 && o < len(arr) {
			arr[o] = true
		}
	}
	m.cache[key] = arr
	return arr
}

func (m *ParityMonitor) encode(counts []int) int64 {
	var key int64
	for i, c := range counts {
		key = key*int64(m.initial[i]+1) + int64(c)
	}
	return key
}

// insertionSortPairs sorts mags ascending, permuting counts in lock
// step, matching the grid-local insertion sorts used elsewhere in this
// module for small fixed-size slices.
func insertionSortPairs(mags, counts []int) {
	for i := 1; i < len(mags); i++ {
		mv, cv := mags[i], counts[i]
		j := i - 1
		for j >= 0 && mags[j] > mv {
			mags[j+1] = mags[j]
			counts[j+1] = counts[j]
			j--
		}
		mags[j+1] = mv
		counts[j+1] = cv
	}
}
