// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dixon implements Dixon's p-adic lifting algorithm for solving
// A·x = b exactly over Z/Q, for square integer A and a single integer
// right-hand-side column b per call.
package dixon

import (
	"errors"
	"math/big"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/sparsemat"
	"gonum.org/v1/exact/sparsevec"
)

var ErrNoLiftingPrime = errors.New("dixon: no invertible lifting prime found")

// primeNear advances from p (inclusive) to the next prime.
func primeNear(p *big.Int) *big.Int {
	cand := new(big.Int).Set(p)
	if cand.Bit(0) == 0 {
		cand.Add(cand, big.NewInt(1))
	}
	for !cand.ProbablyPrime(20) {
		cand.Add(cand, big.NewInt(2))
	}
	return cand
}

// pickLiftingPrime advances p through primes near 2^opt until A mod p is
// invertible (full rank), giving up once the product of rejected primes
// would already exceed detBound.
func pickLiftingPrime(A *sparsemat.SM, opt int, detBound *big.Int) (*big.Int, *sparsemat.SM, error) {
	p := primeNear(new(big.Int).Lsh(big.NewInt(1), uint(opt)))
	tried := big.NewInt(1)
	for tried.Cmp(detBound) < 0 {
		mod := bigz.NewMod(p)
		am := reduceRows(A, mod)
		res, err := sparsemat.LU(am, true)
		if err == nil && res.Rank == A.R {
			return p, am, nil
		}
		tried.Mul(tried, p)
		p = primeNear(new(big.Int).Add(p, big.NewInt(2)))
	}
	return nil, nil, ErrNoLiftingPrime
}

func reduceRows(A *sparsemat.SM, mod *bigz.Mod) *sparsemat.SM {
	out := sparsemat.New(A.R, A.C, mod)
	for i := int64(0); i < A.R; i++ {
		var idx []int64
		var val []*big.Int
		for _, e := range A.Row(i).Entries() {
			r := mod.Reduce(e.Value)
			if r.Sign() == 0 {
				continue
			}
			idx = append(idx, e.Index)
			val = append(val, r)
		}
		out.SetRow(i, sparsevec.FromEntries(idx, val))
	}
	return out
}

// clusterPrimes returns a small set of primes near p whose product exceeds
// 2^bits.
func clusterPrimes(p *big.Int, bits int) []*big.Int {
	var primes []*big.Int
	logProd := 0
	cand := new(big.Int).Set(p)
	for logProd < bits {
		cand = primeNear(new(big.Int).Add(cand, big.NewInt(2)))
		primes = append(primes, cand)
		logProd += cand.BitLen()
	}
	return primes
}

// Solve implements solve_dixon: given square integer A and integer column
// vector b, returns an integer x with A·x ≡ b modulo the accumulated
// p-adic lifting bound — i.e. the exact integer solution when one
// exists. ok is false if no exact integer solution exists or none could be
// found within the lifting bound; a singular A (no lifting prime found)
// also gives ok == false with a nil error.
func Solve(A *sparsemat.SM, b []*big.Int) (x []*big.Int, ok bool, err error) {
	n, d := sparsemat.SolveBound(A, maxAbs(b))
	p, Amodp, perr := pickLiftingPrime(A, 26, d)
	if perr != nil {
		return nil, false, nil
	}
	r := A.R
	cluster := clusterPrimes(p, sparsemat.MaxBits(A)+1+p.BitLen()+bitLen64(r))
	clusterMods := make([]*sparsemat.SM, len(cluster))
	for i, cp := range cluster {
		clusterMods[i] = reduceRows(A, bigz.NewMod(cp))
	}

	bound := new(big.Int).Mul(big.NewInt(2), new(big.Int).Mul(maxBig(n, d), maxBig(n, d)))

	dVec := append([]*big.Int(nil), b...)
	xMod, okInv, serr := sparsemat.Solve(Amodp, modVec(Amodp.Mod, b))
	if serr != nil || !okInv {
		return nil, false, ErrNoLiftingPrime
	}
	X := append([]*big.Int(nil), xMod...)
	curMod := new(big.Int).Set(p)

	for curMod.Cmp(bound) < 0 {
		if q, qok := tryReconstruct(X, curMod, n, d, A, b); qok {
			return q, true, nil
		}

		Ay := crtMulVec(clusterMods, cluster, xMod)
		for i := range dVec {
			diff := new(big.Int).Sub(dVec[i], Ay[i])
			q, rem := new(big.Int).QuoRem(diff, p, new(big.Int))
			if rem.Sign() != 0 {
				return nil, false, nil
			}
			dVec[i] = q
		}

		dModP := modVec(Amodp.Mod, dVec)
		var serr2 error
		xMod, okInv, serr2 = sparsemat.Solve(Amodp, dModP)
		if serr2 != nil || !okInv {
			return nil, false, ErrNoLiftingPrime
		}
		for i := range X {
			X[i] = new(big.Int).Add(X[i], new(big.Int).Mul(xMod[i], curMod))
		}
		curMod = new(big.Int).Mul(curMod, p)
	}

	if q, qok := tryReconstruct(X, curMod, n, d, A, b); qok {
		return q, true, nil
	}
	return nil, false, nil
}

// SolveDen implements solve_dixon_den: like Solve, but returns a common
// denominator den alongside the rational numerator vector x, such that
// A·x = den·b.
func SolveDen(A *sparsemat.SM, b []*big.Int) (x []*big.Int, den *big.Int, ok bool, err error) {
	n, d := sparsemat.SolveBound(A, maxAbs(b))
	p, Amodp, perr := pickLiftingPrime(A, 26, d)
	if perr != nil {
		return nil, nil, false, nil
	}
	xMod, okInv, serr := sparsemat.Solve(Amodp, modVec(Amodp.Mod, b))
	if serr != nil || !okInv {
		return nil, nil, false, ErrNoLiftingPrime
	}
	dVec := append([]*big.Int(nil), b...)
	X := append([]*big.Int(nil), xMod...)
	curMod := new(big.Int).Set(p)
	bound := new(big.Int).Mul(big.NewInt(2), new(big.Int).Mul(maxBig(n, d), maxBig(n, d)))
	cluster := clusterPrimes(p, sparsemat.MaxBits(A)+1+p.BitLen()+bitLen64(A.R))
	clusterMods := make([]*sparsemat.SM, len(cluster))
	for i, cp := range cluster {
		clusterMods[i] = reduceRows(A, bigz.NewMod(cp))
	}

	for curMod.Cmp(bound) < 0 {
		if num, commonDen, rok := reconstructCommonDen(X, curMod, n, d); rok {
			return num, commonDen, true, nil
		}
		Ay := crtMulVec(clusterMods, cluster, xMod)
		for i := range dVec {
			diff := new(big.Int).Sub(dVec[i], Ay[i])
			q, rem := new(big.Int).QuoRem(diff, p, new(big.Int))
			if rem.Sign() != 0 {
				return nil, nil, false, nil
			}
			dVec[i] = q
		}
		dModP := modVec(Amodp.Mod, dVec)
		var serr2 error
		xMod, okInv, serr2 = sparsemat.Solve(Amodp, dModP)
		if serr2 != nil || !okInv {
			return nil, nil, false, ErrNoLiftingPrime
		}
		for i := range X {
			X[i] = new(big.Int).Add(X[i], new(big.Int).Mul(xMod[i], curMod))
		}
		curMod = new(big.Int).Mul(curMod, p)
	}
	if num, commonDen, rok := reconstructCommonDen(X, curMod, n, d); rok {
		return num, commonDen, true, nil
	}
	return nil, nil, false, nil
}

func tryReconstruct(X []*big.Int, mod, n, d *big.Int, A *sparsemat.SM, b []*big.Int) ([]*big.Int, bool) {
	q := make([]*big.Int, len(X))
	for i := range X {
		p0, q0, ok := bigz.RationalReconstruct(mustMod(X[i], mod), mod, n, big.NewInt(1))
		if !ok || q0.Cmp(big.NewInt(1)) != 0 {
			return nil, false
		}
		q[i] = p0
	}
	got := A.MulVec(q)
	for i := range got {
		if got[i].Cmp(b[i]) != 0 {
			return nil, false
		}
	}
	return q, true
}

// reconstructCommonDen attempts rational reconstruction of every entry of
// X (mod curMod) sharing a single common denominator (the first entry's
// reconstructed denominator); it fails if any entry can't be reconstructed
// within bounds (n, d) or disagrees on the denominator.
func reconstructCommonDen(X []*big.Int, curMod, n, d *big.Int) (num []*big.Int, den *big.Int, ok bool) {
	num = make([]*big.Int, len(X))
	for i := range X {
		p0, q0, rok := bigz.RationalReconstruct(mustMod(X[i], curMod), curMod, n, d)
		if !rok {
			return nil, nil, false
		}
		if i == 0 {
			den = q0
		} else if q0.Cmp(den) != 0 {
			return nil, nil, false
		}
		num[i] = p0
	}
	return num, den, true
}

func mustMod(x, m *big.Int) *big.Int {
	return new(big.Int).Mod(x, m)
}

func crtMulVec(mods []*sparsemat.SM, primes []*big.Int, x []*big.Int) []*big.Int {
	n := mods[0].R
	images := make([][]*big.Int, len(mods))
	for k, am := range mods {
		xk := modVec(am.Mod, x)
		images[k] = am.MulVec(xk)
	}
	out := make([]*big.Int, n)
	for i := int64(0); i < n; i++ {
		res := make([]*big.Int, len(mods))
		for k := range mods {
			res[k] = images[k][i]
		}
		out[i] = bigz.SymmetricMod(bigz.MultiCRT(res, primes), productOf(primes))
	}
	return out
}

func productOf(primes []*big.Int) *big.Int {
	p := big.NewInt(1)
	for _, x := range primes {
		p.Mul(p, x)
	}
	return p
}

func modVec(mod *bigz.Mod, v []*big.Int) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, x := range v {
		out[i] = mod.Reduce(x)
	}
	return out
}

func maxAbs(v []*big.Int) *big.Int {
	m := big.NewInt(0)
	for _, x := range v {
		if a := new(big.Int).Abs(x); a.Cmp(m) > 0 {
			m = a
		}
	}
	return m
}

func maxBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) > 0 {
		return a
	}
	return b
}

func bitLen64(n int64) int {
	return big.NewInt(n).BitLen()
}
