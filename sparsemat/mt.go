// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"gonum.org/v1/exact/internal/hashmap"
	"gonum.org/v1/exact/sparsevec"
)

// MT pairs a mutable sparse matrix with a column-incidence index: one
// hashmap per column mapping row index → presence. FLINT's matrix-with-
// transpose stores a live pointer into the row's entry array per
// incidence; MT here stores no pointer at all — a column's hashmap
// records which rows are incident, and the value at (row, col) is fetched
// back through M.At, which is an O(log nnz) binary search over that row.
// This trades a re-seat step after every row mutation for one extra
// lookup per access, a small cost against not having to keep pointers
// valid across reallocation.
type MT struct {
	M    *SM
	cols []*hashmap.Map[struct{}]
}

// NewMT builds an MT over (a clone of) m.
func NewMT(m *SM) *MT {
	mt := &MT{M: m.Clone(), cols: make([]*hashmap.Map[struct{}], m.C)}
	for j := range mt.cols {
		mt.cols[j] = hashmap.New[struct{}]()
	}
	for i := int64(0); i < m.R; i++ {
		for _, e := range mt.M.Row(i).Entries() {
			mt.cols[e.Index].Set(i, struct{}{})
		}
	}
	return mt
}

// ColPopulation returns the number of rows incident to column j.
func (mt *MT) ColPopulation(j int64) int {
	return mt.cols[j].Len()
}

// RowsIn returns the row indices incident to column j, in unspecified
// order.
func (mt *MT) RowsIn(j int64) []int64 {
	return mt.cols[j].Keys()
}

// support returns the ascending column-index list of row i's current
// contents.
func support(row *sparsevec.SV) []int64 {
	entries := row.Entries()
	out := make([]int64, len(entries))
	for k, e := range entries {
		out[k] = e.Index
	}
	return out
}

// SetRow installs newRow as row i's contents and refreshes the column
// index via fix_support: it diffs the old ascending support against the
// new ascending support and adds/removes hashmap entries exactly at the
// differing columns to keep the MT invariant intact.
func (mt *MT) SetRow(i int64, newRow *sparsevec.SV) {
	oldSupport := support(mt.M.Row(i))
	newSupport := support(newRow)
	oi, ni := 0, 0
	for oi < len(oldSupport) || ni < len(newSupport) {
		switch {
		case ni >= len(newSupport) || (oi < len(oldSupport) && oldSupport[oi] < newSupport[ni]):
			mt.cols[oldSupport[oi]].Delete(i)
			oi++
		case oi >= len(oldSupport) || (ni < len(newSupport) && newSupport[ni] < oldSupport[oi]):
			mt.cols[newSupport[ni]].Set(i, struct{}{})
			ni++
		default:
			oi++
			ni++
		}
	}
	mt.M.SetRow(i, newRow)
}

// RemoveRowFromColumn deletes row i from column j's incidence set without
// touching the row's stored data; used once a row has been chosen as a
// pivot and must stop being considered for future pivot selection (spec
// §4.2.1 step "Remove pr from every column hashmap it appears in").
func (mt *MT) RemoveRowFromColumn(i, j int64) {
	mt.cols[j].Delete(i)
}
