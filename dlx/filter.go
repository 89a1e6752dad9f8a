package dlx

// filterEntry remembers one filtered row so UnfilterRow can relink it
// without recomputation.
type filterEntry struct {
	rowID int32
}

// FilterRow unlinks rowID from every column it spans (decrementing
// each column's NumRow) without touching column multiplicity, and
// pushes it onto the filter stack. Unlike PlaceRow, this never fires a
// cover() cascade — it is used to temporarily hide candidate rows a
// fit/parity/volume pre-check has ruled out, not to record a placement
// (spec.md §4.3 "filter-row / unfilter-row").
func (m *Matrix) FilterRow(rowID int32) {
	for _, idx := range m.rows[rowID] {
		m.unlinkVertical(idx)
	}
	m.filterStack = append(m.filterStack, filterEntry{rowID: rowID})
}

// UnfilterRow pops the most recently filtered row and relinks it. Rows
// must be filtered and unfiltered in strict LIFO (non-nesting) order.
func (m *Matrix) UnfilterRow() {
	n := len(m.filterStack)
	entry := m.filterStack[n-1]
	m.filterStack = m.filterStack[:n-1]
	nodes := m.rows[entry.rowID]
	for i := len(nodes) - 1; i >= 0; i-- {
		m.relinkVertical(nodes[i])
	}
}

// FilterDepth reports how many rows are currently filtered, used by
// callers to record a stack-delta checkpoint and unwind exactly that
// many entries on backtrack (spec.md §4.8 step 6).
func (m *Matrix) FilterDepth() int {
	return len(m.filterStack)
}

// UnfilterTo pops filtered rows until FilterDepth() == depth.
func (m *Matrix) UnfilterTo(depth int) {
	for len(m.filterStack) > depth {
		m.UnfilterRow()
	}
}
