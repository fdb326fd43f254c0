// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsevec

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// reduce applies mod if non-nil, writing into dst and returning it.
func reduce(mod *bigz.Mod, dst *big.Int) *big.Int {
	if mod == nil {
		return dst
	}
	return mod.ReduceInto(dst, dst)
}

// merge walks u and v from the high end (descending merge),
// calling combine(uVal, vVal) for every column touched by either vector
// (uVal or vVal is nil when the other vector doesn't have that column),
// collecting non-zero, mod-reduced results. The output list is built in
// descending order internally and reversed once at the end — this is the
// "emit then shift-left to discard leading empties" recipe, specialised so
// that emitting nothing for a column is simply not appending.
func merge(mod *bigz.Mod, u, v *SV, combine func(uVal, vVal *big.Int) *big.Int) *SV {
	out := &SV{entries: make([]Entry, 0, len(u.entries)+len(v.entries))}
	i, j := len(u.entries)-1, len(v.entries)-1
	for i >= 0 || j >= 0 {
		var col int64
		var uVal, vVal *big.Int
		switch {
		case i >= 0 && (j < 0 || u.entries[i].Index > v.entries[j].Index):
			col = u.entries[i].Index
			uVal = u.entries[i].Value
			i--
		case j >= 0 && (i < 0 || v.entries[j].Index > u.entries[i].Index):
			col = v.entries[j].Index
			vVal = v.entries[j].Value
			j--
		default:
			col = u.entries[i].Index
			uVal = u.entries[i].Value
			vVal = v.entries[j].Value
			i--
			j--
		}
		r := combine(uVal, vVal)
		if r.Sign() != 0 {
			out.entries = append(out.entries, Entry{Index: col, Value: r})
		}
	}
	// Entries were appended in descending index order; reverse in place.
	for a, b := 0, len(out.entries)-1; a < b; a, b = a+1, b-1 {
		out.entries[a], out.entries[b] = out.entries[b], out.entries[a]
	}
	return out
}

func orZero(x *big.Int) *big.Int {
	if x == nil {
		return big.NewInt(0)
	}
	return x
}

// Add sets w = u + v (mod m if mod != nil) and returns w. Aliasing
// w ∈ {u, v} is permitted.
func Add(mod *bigz.Mod, u, v *SV) *SV {
	return merge(mod, u, v, func(a, b *big.Int) *big.Int {
		r := new(big.Int).Add(orZero(a), orZero(b))
		return reduce(mod, r)
	})
}

// Sub sets w = u - v (mod m if mod != nil) and returns w.
func Sub(mod *bigz.Mod, u, v *SV) *SV {
	return merge(mod, u, v, func(a, b *big.Int) *big.Int {
		r := new(big.Int).Sub(orZero(a), orZero(b))
		return reduce(mod, r)
	})
}

// Neg returns -v (mod m if mod != nil).
func Neg(mod *bigz.Mod, v *SV) *SV {
	out := &SV{entries: make([]Entry, 0, len(v.entries))}
	for _, e := range v.entries {
		r := new(big.Int).Neg(e.Value)
		r = reduce(mod, r)
		if r.Sign() != 0 {
			out.entries = append(out.entries, Entry{Index: e.Index, Value: r})
		}
	}
	return out
}

// ScalarMul returns c*v (mod m if mod != nil).
func ScalarMul(mod *bigz.Mod, v *SV, c *big.Int) *SV {
	switch c.Sign() {
	case 0:
		return New()
	}
	if c.CmpAbs(big.NewInt(1)) == 0 {
		if c.Sign() > 0 {
			return v.Clone()
		}
		return Neg(mod, v)
	}
	out := &SV{entries: make([]Entry, 0, len(v.entries))}
	for _, e := range v.entries {
		r := new(big.Int).Mul(e.Value, c)
		r = reduce(mod, r)
		if r.Sign() != 0 {
			out.entries = append(out.entries, Entry{Index: e.Index, Value: r})
		}
	}
	return out
}

// ScalarAddMul sets w = u + c*v (mod m if mod != nil) and returns w,
// specialising for c ∈ {0, 1, -1}.
func ScalarAddMul(mod *bigz.Mod, u, v *SV, c *big.Int) *SV {
	switch c.Sign() {
	case 0:
		return u.Clone()
	}
	if c.CmpAbs(big.NewInt(1)) == 0 {
		if c.Sign() > 0 {
			return Add(mod, u, v)
		}
		return Sub(mod, u, v)
	}
	return merge(mod, u, v, func(a, b *big.Int) *big.Int {
		r := new(big.Int).Mul(orZero(b), c)
		r.Add(r, orZero(a))
		return reduce(mod, r)
	})
}

// ScalarSubMul sets w = u - c*v (mod m if mod != nil) and returns w.
func ScalarSubMul(mod *bigz.Mod, u, v *SV, c *big.Int) *SV {
	return ScalarAddMul(mod, u, v, new(big.Int).Neg(c))
}

// Dot returns the standard inner product of two sparse vectors via an
// index-matching scan.
func Dot(mod *bigz.Mod, u, v *SV) *big.Int {
	sum := new(big.Int)
	i, j := 0, 0
	for i < len(u.entries) && j < len(v.entries) {
		ui, vj := u.entries[i].Index, v.entries[j].Index
		switch {
		case ui < vj:
			i++
		case vj < ui:
			j++
		default:
			t := new(big.Int).Mul(u.entries[i].Value, v.entries[j].Value)
			sum.Add(sum, t)
			i++
			j++
		}
	}
	return reduce(mod, sum)
}

// DotDense returns the inner product of a sparse vector with a dense one,
// via indexed accumulation over the sparse support only.
func DotDense(mod *bigz.Mod, u *SV, vdense []*big.Int) *big.Int {
	sum := new(big.Int)
	for _, e := range u.entries {
		t := new(big.Int).Mul(e.Value, vdense[e.Index])
		sum.Add(sum, t)
	}
	return reduce(mod, sum)
}
