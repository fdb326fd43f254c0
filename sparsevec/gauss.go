// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsevec

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// GaussElimCol sets u ← u - ⌊u[col]/v[col]⌋·v, the one-column-targeted
// reduction step used while eliminating a specific
// pivot column rather than whatever u's current leading column happens to
// be. v[col] must be non-zero.
func GaussElimCol(mod *bigz.Mod, u, v *SV, col int64) *SV {
	uCol := u.At(col)
	vCol := v.At(col)
	if vCol.Sign() == 0 {
		panic("sparsevec: GaussElimCol with zero pivot entry")
	}
	q := bigz.FloorDiv(uCol, vCol)
	if q.Sign() == 0 {
		return u.Clone()
	}
	return ScalarSubMul(mod, u, v, q)
}

// GaussElim reduces u by v when v's leading column is at or before u's
// entry at that column: if v's leading column c has
// u[c] != 0, eliminate it using the floor-division quotient at c. Returns
// u unchanged (a clone) if v is zero or v's leading column isn't present
// to reduce.
func GaussElim(mod *bigz.Mod, u, v *SV) *SV {
	c, ok := v.LeadIndex()
	if !ok {
		return u.Clone()
	}
	return GaussElimCol(mod, u, v, c)
}

// ExtResult is the unimodular transform produced by GaussElimExt: the new
// v (with v[lead] = g) and the new u (with u[lead] = 0).
type ExtResult struct {
	V *SV
	U *SV
}

// GaussElimExt performs the extended elimination step used when u and v
// share a leading column. It computes (g, a, b) = xgcd of the
// two leading values and applies the unimodular transform
//
//	[[u[lead]/g, -v[lead]/g], [a, b]]
//
// to (v, u) so the new v[lead] = g and the new u[lead] = 0. It
// pre-normalises so |v[lead]| ≥ |u[lead]| and sign(v[lead]) ≥ 0, and falls
// back to the plain GaussElim when v[lead] already divides u[lead] (the
// "skip the general path when divisibility already holds" rule).
//
// Both u and v must have the same leading column; it panics otherwise.
func GaussElimExt(mod *bigz.Mod, u, v *SV) ExtResult {
	uc, uok := u.LeadIndex()
	vc, vok := v.LeadIndex()
	if !uok || !vok || uc != vc {
		panic("sparsevec: GaussElimExt requires matching leading columns")
	}
	lead := uc
	uVal, vVal := new(big.Int).Set(u.LeadValue()), new(big.Int).Set(v.LeadValue())

	// Pre-normalise: ensure |v[lead]| >= |u[lead]| and sign(v[lead]) >= 0.
	su, sv := u, v
	if vVal.CmpAbs(uVal) < 0 {
		su, sv = v, u
		uVal, vVal = vVal, uVal
	}
	if vVal.Sign() < 0 {
		vVal.Neg(vVal)
		sv = Neg(mod, sv)
	}

	if _, r := new(big.Int).QuoRem(uVal, vVal, new(big.Int)); r.Sign() == 0 {
		// Divisibility already holds: fall back to the cheap path.
		return ExtResult{V: sv, U: GaussElimCol(mod, su, sv, lead)}
	}

	g, a, b := bigz.XGCD(vVal, uVal)
	// The unimodular transform [[a, b], [u/g, -v/g]] applied to (v, u):
	//   newV = a*v + b*u          (leading value g, by Bezout's identity)
	//   newU = (u/g)*v - (v/g)*u  (leading value 0)
	uOverG := new(big.Int).Quo(uVal, g)
	vOverG := new(big.Int).Quo(vVal, g)

	// a*sv + b*su = g (Bezout); (u/g)*sv - (v/g)*su = 0 identically.
	newV := combine(mod, a, sv, b, su)
	newU := combine(mod, uOverG, sv, new(big.Int).Neg(vOverG), su)
	return ExtResult{V: newV, U: newU}
}

// combine returns c1*x + c2*y as a sparse vector, mod-reducing if mod != nil.
func combine(mod *bigz.Mod, c1 *big.Int, x *SV, c2 *big.Int, y *SV) *SV {
	return merge(mod, x, y, func(xv, yv *big.Int) *big.Int {
		t1 := new(big.Int).Mul(c1, orZero(xv))
		t2 := new(big.Int).Mul(c2, orZero(yv))
		t1.Add(t1, t2)
		return reduce(mod, t1)
	})
}

// GaussElimExtMod is the composite-modulus extended elimination step used
// by strong echelon form: unlike GaussElimExt, u and v need not share a
// leading column — col names the column being eliminated. The combination
// works over Z/nZ, so the pivot-role result's leading value comes out as
// gcd(u[col], v[col], n) — the canonical minimal Howell pivot value — not
// the plain integer gcd of the two entries.
func GaussElimExtMod(mod *bigz.Mod, u, v *SV, col int64) ExtResult {
	uVal, vVal := u.At(col), v.At(col)
	g1, a1, b1 := bigz.XGCD(uVal, vVal)
	_, a2, _ := bigz.XGCD(g1, mod.N())

	pivotRow := combine(mod, new(big.Int).Mul(a2, a1), u, new(big.Int).Mul(a2, b1), v)

	var killU, killV *big.Int
	if g1.Sign() == 0 {
		killU, killV = big.NewInt(0), big.NewInt(0)
	} else {
		killU = new(big.Int).Quo(vVal, g1)
		killV = new(big.Int).Neg(new(big.Int).Quo(uVal, g1))
	}
	killRow := combine(mod, killU, u, killV, v)

	return ExtResult{V: pivotRow, U: killRow}
}
