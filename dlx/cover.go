package dlx

// cover unlinks column colIdx from the header chain, and for every row
// still live in that column, unlinks every other node of that row from
// its own column chain (Knuth's Algorithm X / Dancing Links).
func (m *Matrix) cover(colIdx int) {
	col := &m.columns[colIdx]
	head := col.head
	hn := &m.nodes[head]
	m.nodes[hn.left].right = hn.right
	m.nodes[hn.right].left = hn.left

	for i := m.nodes[head].down; i != head; i = m.nodes[i].down {
		for j := m.nodes[i].right; j != i; j = m.nodes[j].right {
			m.unlinkVertical(j)
		}
	}
}

// uncover is the exact inverse of cover: after any matched cover/uncover
// pair the matrix is bit-identical to before (spec.md §4.3).
func (m *Matrix) uncover(colIdx int) {
	col := &m.columns[colIdx]
	head := col.head

	for i := m.nodes[head].up; i != head; i = m.nodes[i].up {
		for j := m.nodes[i].left; j != i; j = m.nodes[j].left {
			m.relinkVertical(j)
		}
	}

	hn := &m.nodes[head]
	m.nodes[hn.left].right = head
	m.nodes[hn.right].left = head
}

func (m *Matrix) unlinkVertical(idx int32) {
	n := &m.nodes[idx]
	m.nodes[n.up].down = n.down
	m.nodes[n.down].up = n.up
	m.columns[n.col].NumRow--
}

func (m *Matrix) relinkVertical(idx int32) {
	n := &m.nodes[idx]
	m.nodes[n.up].down = idx
	m.nodes[n.down].up = idx
	m.columns[n.col].NumRow++
}

// PlaceRow selects rowID. Every GridPoint column it spans is fully
// covered (the standard Algorithm X step, which also eliminates every
// other row conflicting on that cell). Its single Shape column is
// handled differently: rowID's own node in that column is unlinked by
// the cover of rowID's first GridPoint column (which unlinks every
// other node of rowID; every row spans at least one GridPoint column),
// so here only the column's multiplicity Count is decremented; the
// column itself — and the cascade that eliminates the shape's other
// pending candidate rows — is covered only once Count reaches zero
// (spec.md §4.3 "Column multiplicity").
func (m *Matrix) PlaceRow(rowID int32) {
	for _, idx := range m.rows[rowID] {
		colIdx := int(m.nodes[idx].col)
		col := &m.columns[colIdx]
		if col.Kind == ColumnShape {
			col.Count--
			if col.Count == 0 {
				m.cover(colIdx)
			}
		} else {
			m.cover(colIdx)
		}
	}
}

// UnplaceRow is the exact inverse of PlaceRow. It must be called in a
// strict LIFO discipline relative to PlaceRow (i.e. only ever to undo
// the most recent not-yet-undone placement) — the dancing-links
// reversal property depends on it.
func (m *Matrix) UnplaceRow(rowID int32) {
	nodes := m.rows[rowID]
	for i := len(nodes) - 1; i >= 0; i-- {
		idx := nodes[i]
		colIdx := int(m.nodes[idx].col)
		col := &m.columns[colIdx]
		if col.Kind == ColumnShape {
			if col.Count == 0 {
				m.uncover(colIdx)
			}
			col.Count++
		} else {
			m.uncover(colIdx)
		}
	}
}
