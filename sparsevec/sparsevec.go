// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparsevec implements sparse vector algebra: an ordered list of
// (index, value) entries with strictly increasing
// indices and non-zero values, plus the merge-based binary operations and
// the Gaussian-elimination-step primitives sparse matrix elimination
// builds on.
//
// A single concrete type, SV, serves both T=Zr (entries reduced modulo a
// *bigz.Mod) and T=Z (plain integers): every package-level operation takes
// a *bigz.Mod and treats a nil Mod as "the integers" — this mirrors FLINT's
// choice to back both fmpz_mod_sparse_vec and fmpz_sparse_vec with the same
// fmpz entry type, distinguished only by whether a reduction context is
// threaded through.
package sparsevec

import "math/big"

// Entry is a single (index, value) pair. Value is never nil and never
// zero in a well-formed SV.
type Entry struct {
	Index int64
	Value *big.Int
}

// SV is a sparse vector: entries in strictly increasing Index order, all
// non-zero. The zero value is the empty vector and is ready to use.
type SV struct {
	entries []Entry
}

// New returns an empty sparse vector.
func New() *SV { return &SV{} }

// NNZ returns the number of non-zero entries.
func (v *SV) NNZ() int { return len(v.entries) }

// Entries returns the vector's entries in ascending index order. The
// caller must not mutate the returned slice's Value pointers in place;
// treat it as read-only.
func (v *SV) Entries() []Entry { return v.entries }

// At returns the value stored at col, or 0 if col is not in the support.
func (v *SV) At(col int64) *big.Int {
	if i, ok := v.search(col); ok {
		return v.entries[i].Value
	}
	return big.NewInt(0)
}

// search returns the position of col in v.entries via binary search, and
// whether it was found.
func (v *SV) search(col int64) (int, bool) {
	lo, hi := 0, len(v.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.entries[mid].Index < col {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.entries) && v.entries[lo].Index == col {
		return lo, true
	}
	return lo, false
}

// LeadIndex returns the smallest column with a non-zero entry and reports
// ok=false for the zero vector.
func (v *SV) LeadIndex() (int64, bool) {
	if len(v.entries) == 0 {
		return 0, false
	}
	return v.entries[0].Index, true
}

// LeadValue returns the value at the leading column, panicking on the
// zero vector.
func (v *SV) LeadValue() *big.Int {
	if len(v.entries) == 0 {
		panic("sparsevec: LeadValue of zero vector")
	}
	return v.entries[0].Value
}

// IsZero reports whether v has no non-zero entries.
func (v *SV) IsZero() bool { return len(v.entries) == 0 }

// Clone returns a deep copy of v.
func (v *SV) Clone() *SV {
	out := &SV{entries: make([]Entry, len(v.entries))}
	for i, e := range v.entries {
		out.entries[i] = Entry{Index: e.Index, Value: new(big.Int).Set(e.Value)}
	}
	return out
}

// Set makes v a deep copy of src's contents.
func (v *SV) Set(src *SV) {
	v.entries = make([]Entry, len(src.entries))
	for i, e := range src.entries {
		v.entries[i] = Entry{Index: e.Index, Value: new(big.Int).Set(e.Value)}
	}
}

// FromEntries builds an SV from pre-sorted, already-reduced (index, value)
// pairs, dropping zero entries. idx must be strictly increasing.
func FromEntries(idx []int64, val []*big.Int) *SV {
	out := &SV{entries: make([]Entry, 0, len(idx))}
	var prev int64
	for i, c := range idx {
		if i > 0 && c <= prev {
			panic("sparsevec: indices must be strictly increasing")
		}
		prev = c
		if val[i].Sign() != 0 {
			out.entries = append(out.entries, Entry{Index: c, Value: new(big.Int).Set(val[i])})
		}
	}
	return out
}

// FromDense builds an SV from a dense slice, one entry per non-zero
// position.
func FromDense(dense []*big.Int) *SV {
	out := &SV{}
	for i, d := range dense {
		if d != nil && d.Sign() != 0 {
			out.entries = append(out.entries, Entry{Index: int64(i), Value: new(big.Int).Set(d)})
		}
	}
	return out
}

// ToDense writes v into a dense slice of the given length.
func (v *SV) ToDense(length int) []*big.Int {
	out := make([]*big.Int, length)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for _, e := range v.entries {
		out[e.Index] = new(big.Int).Set(e.Value)
	}
	return out
}

// Window returns a view over the entries whose index lies in
// [lo, hi), re-indexed relative to lo. Window shares no storage with v: it
// is a filtered copy, not an aliasing slice, so mutating one never affects
// the other.
func (v *SV) Window(lo, hi int64) *SV {
	out := &SV{}
	for _, e := range v.entries {
		if e.Index >= lo && e.Index < hi {
			out.entries = append(out.entries, Entry{Index: e.Index - lo, Value: new(big.Int).Set(e.Value)})
		}
	}
	return out
}

// Equal reports whether u and v have identical (index, value) sequences.
func Equal(u, v *SV) bool {
	if len(u.entries) != len(v.entries) {
		return false
	}
	for i := range u.entries {
		if u.entries[i].Index != v.entries[i].Index || u.entries[i].Value.Cmp(v.entries[i].Value) != 0 {
			return false
		}
	}
	return true
}

// MaxBits returns the largest bit length among v's values, 0 for the zero
// vector. Mirrors fmpz_sparse_vec/max_bits.c.
func (v *SV) MaxBits() int {
	m := 0
	for _, e := range v.entries {
		if b := e.Value.BitLen(); b > m {
			m = b
		}
	}
	return m
}

// Concat appends v after u, shifting v's indices by offset, and returns a
// new vector. Mirrors fmpz_sparse_vec/concat.c.
func Concat(u, v *SV, offset int64) *SV {
	out := &SV{entries: make([]Entry, 0, len(u.entries)+len(v.entries))}
	for _, e := range u.entries {
		out.entries = append(out.entries, Entry{Index: e.Index, Value: new(big.Int).Set(e.Value)})
	}
	for _, e := range v.entries {
		out.entries = append(out.entries, Entry{Index: e.Index + offset, Value: new(big.Int).Set(e.Value)})
	}
	return out
}

// Split partitions v at column pc into (below, atOrAbove), re-indexing the
// upper half relative to pc. Mirrors fmpz_sparse_vec/split.c.
func (v *SV) Split(pc int64) (below, atOrAbove *SV) {
	i, _ := v.search(pc)
	below = &SV{entries: append([]Entry(nil), v.entries[:i]...)}
	atOrAbove = &SV{entries: make([]Entry, len(v.entries)-i)}
	for j, e := range v.entries[i:] {
		atOrAbove.entries[j] = Entry{Index: e.Index - pc, Value: e.Value}
	}
	return below, atOrAbove
}
