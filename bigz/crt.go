// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigz

import "math/big"

// CRT combines a residue r1 (mod m1) and r2 (mod m2), with gcd(m1,m2)=1,
// into the unique x mod m1*m2 such that x ≡ r1 (mod m1) and x ≡ r2 (mod m2).
// This is FLINT's fmpz_CRT_ui shape, generalised to big moduli.
func CRT(r1, m1, r2, m2 *big.Int) *big.Int {
	// x = r1 + m1 * ((r2-r1) * m1^-1 mod m2)
	m1InvM2 := new(big.Int).ModInverse(m1, m2)
	diff := new(big.Int).Sub(r2, r1)
	t := new(big.Int).Mul(diff, m1InvM2)
	t.Mod(t, m2)
	x := new(big.Int).Mul(m1, t)
	x.Add(x, r1)
	m := new(big.Int).Mul(m1, m2)
	x.Mod(x, m)
	return x
}

// MultiMod reduces x modulo each of the given primes, returning one residue
// per prime. Mirrors fmpz_sparse_mat/multi_mod_ui.c and
// fmpz_sparse_vec/multi_mod_ui.c.
func MultiMod(x *big.Int, primes []*big.Int) []*big.Int {
	out := make([]*big.Int, len(primes))
	for i, p := range primes {
		out[i] = new(big.Int).Mod(x, p)
	}
	return out
}

// MultiCRT combines residues (one per prime, with the primes pairwise
// coprime) into the unique integer modulo the product of the primes,
// mirroring fmpz_sparse_mat/multi_CRT_ui.c. It panics if residues and
// primes have different lengths or either is empty.
func MultiCRT(residues, primes []*big.Int) *big.Int {
	if len(residues) != len(primes) || len(residues) == 0 {
		panic("bigz: MultiCRT requires matching, non-empty slices")
	}
	x := new(big.Int).Set(residues[0])
	m := new(big.Int).Set(primes[0])
	for i := 1; i < len(residues); i++ {
		x = CRT(x, m, residues[i], primes[i])
		m = new(big.Int).Mul(m, primes[i])
	}
	return x
}

// SymmetricMod reduces x modulo n into the symmetric range
// (-n/2, n/2], used when a CRT-combined residue should be reinterpreted as
// a signed integer (e.g. after multi-modular reduction of an integer
// matrix's entries known to be bounded by n/2 in absolute value).
func SymmetricMod(x, n *big.Int) *big.Int {
	r := new(big.Int).Mod(x, n)
	half := new(big.Int).Rsh(n, 1)
	if r.Cmp(half) > 0 {
		r.Sub(r, n)
	}
	return r
}

// RationalReconstruct attempts to recover a fraction p/q with
// |p| ≤ N, 0 < q ≤ D from a residue u mod m (the classical half-GCD
// rational reconstruction used by Dixon p-adic lifting). It reports
// ok=false when no such fraction exists within the given bounds.
//
// This is the standard extended-Euclidean algorithm run on (m, u),
// stopping the remainder sequence as soon as it drops at or below N and
// checking the paired Bézout coefficient against D.
func RationalReconstruct(u, m, N, D *big.Int) (p, q *big.Int, ok bool) {
	if N.Sign() < 0 || D.Sign() <= 0 {
		return nil, nil, false
	}
	r0, r1 := new(big.Int).Set(m), new(big.Int).Mod(u, m)
	t0, t1 := big.NewInt(0), big.NewInt(1)
	for r1.CmpAbs(N) > 0 {
		if r1.Sign() == 0 {
			return nil, nil, false
		}
		q1, r2 := new(big.Int).QuoRem(r0, r1, new(big.Int))
		t2 := new(big.Int).Mul(q1, t1)
		t2.Sub(t0, t2)
		r0, r1 = r1, r2
		t0, t1 = t1, t2
	}
	if t1.Sign() == 0 {
		return nil, nil, false
	}
	qAbs := new(big.Int).Abs(t1)
	if qAbs.Cmp(D) > 0 {
		return nil, nil, false
	}
	if t1.Sign() < 0 {
		r1.Neg(r1)
		t1.Neg(t1)
	}
	g := new(big.Int).GCD(nil, nil, r1, t1)
	if g.Cmp(one) != 0 {
		r1.Div(r1, g)
		t1.Div(t1, g)
	}
	return r1, t1, true
}
