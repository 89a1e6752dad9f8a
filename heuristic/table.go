package heuristic

// Entry pairs a remaining-piece-count threshold with the heuristic
// active at and above it.
type Entry struct {
	Threshold int
	Spec      Spec
}

// Table is a piecewise selector over remaining-piece count k: at any k
// the lookup finds the entry with the largest Threshold <= k (spec.md
// §4.9). Entries must be sorted ascending by Threshold; NewTable
// enforces this.
type Table []Entry

// NewTable sorts entries by Threshold (insertion sort: tables are
// small, built once at puzzle load). It does not require an entry with
// Threshold <= 0; Select falls back to Fit below the lowest threshold.
func NewTable(entries []Entry) Table {
	t := append(Table(nil), entries...)
	for i := 1; i < len(t); i++ {
		e := t[i]
		j := i - 1
		for j >= 0 && t[j].Threshold > e.Threshold {
			t[j+1] = t[j]
			j--
		}
		t[j+1] = e
	}
	return t
}

// Select returns the heuristic active at remaining-piece count k,
// defaulting to Fit if the table is empty or k falls below every
// registered threshold.
func (t Table) Select(k int) Spec {
	best := Spec(Fit{})
	for _, e := range t {
		if e.Threshold > k {
			break
		}
		best = e.Spec
	}
	return best
}
