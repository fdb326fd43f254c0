// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charpoly implements the similarity-transform, trace,
// characteristic- and minimal-polynomial glue layered over densemat and
// iterative: trace is a direct diagonal sum, the characteristic polynomial
// follows Faddeev–LeVerrier (it needs 1..n invertible mod the modulus,
// so callers should use a prime modulus larger than the matrix dimension),
// and the minimal polynomial falls out of the same Krylov/Berlekamp–Massey
// machinery iterative.Solve already builds for Wiedemann.
package charpoly

import (
	"errors"
	"math/big"

	"gonum.org/v1/exact/densemat"
	"gonum.org/v1/exact/iterative"
)

var (
	ErrNonSquare      = errors.New("charpoly: matrix is not square")
	ErrModulusTooWeak = errors.New("charpoly: modulus does not admit 1..n as units")
)

// Trace returns the sum of the diagonal entries of A, reduced mod A.Mod.
func Trace(A *densemat.DM) *big.Int {
	if A.R != A.C {
		panic(ErrNonSquare)
	}
	t := big.NewInt(0)
	for i := int64(0); i < A.R; i++ {
		t.Add(t, A.At(i, i))
	}
	if A.Mod != nil {
		return A.Mod.Reduce(t)
	}
	return t
}

// Similarity applies one elementary row/column transvection to A in place:
// add d·(column r) to every column j other than r-1 and r, as worked out
// by the classical reduction-to-Hessenberg-form step, then the
// matching row update that keeps A ← Q⁻¹AQ a similarity transform. r is
// 1-based in the sense that column r-1 is the pivot column already cleared
// below the subdiagonal; d is the scalar that cleared it (typically
// d = -1/A[r][r-1]).
func Similarity(A *densemat.DM, r int64, d *big.Int) {
	if A.R != A.C {
		panic(ErrNonSquare)
	}
	mod := A.Mod
	n := A.R
	t := new(big.Int)
	for i := int64(0); i < n; i++ {
		for j := int64(0); j < r-1; j++ {
			t.Mul(A.At(i, r), d)
			A.Set(i, j, mod.Add(new(big.Int), A.At(i, j), mod.Reduce(t)))
		}
		for j := r + 1; j < n; j++ {
			t.Mul(A.At(i, r), d)
			A.Set(i, j, mod.Add(new(big.Int), A.At(i, j), mod.Reduce(t)))
		}
	}
	for i := int64(0); i < n; i++ {
		for j := int64(0); j < r-1; j++ {
			t.Mul(A.At(j, i), d)
			A.Set(r, i, mod.Sub(new(big.Int), A.At(r, i), mod.Reduce(t)))
		}
		for j := r + 1; j < n; j++ {
			t.Mul(A.At(j, i), d)
			A.Set(r, i, mod.Sub(new(big.Int), A.At(r, i), mod.Reduce(t)))
		}
	}
}

// CharPoly computes the characteristic polynomial det(xI - A) via
// Faddeev–LeVerrier: coefficients are returned ascending by degree
// (result[0] is the constant term, result[n] = 1). It requires 1, ..., n
// to be units mod A.Mod (true whenever the modulus is prime and larger than
// A.R), returning ErrModulusTooWeak otherwise.
func CharPoly(A *densemat.DM) ([]*big.Int, error) {
	if A.R != A.C {
		return nil, ErrNonSquare
	}
	mod := A.Mod
	n := A.R

	coef := make([]*big.Int, n+1)
	coef[n] = big.NewInt(1)
	M := densemat.New(n, n, mod)
	for i := int64(0); i < n; i++ {
		M.Set(i, i, big.NewInt(1))
	}
	for k := int64(1); k <= n; k++ {
		AM, err := densemat.Mul(A, M)
		if err != nil {
			return nil, err
		}
		ck := Trace(AM)
		kInv, ok := mod.Inv(new(big.Int), big.NewInt(k))
		if !ok {
			return nil, ErrModulusTooWeak
		}
		ck = mod.Mul(new(big.Int), ck, mod.Neg(new(big.Int), kInv))
		coef[n-k] = ck
		if k == n {
			break
		}
		M = AM
		for i := int64(0); i < n; i++ {
			M.Set(i, i, mod.Add(new(big.Int), M.At(i, i), ck))
		}
	}
	return coef, nil
}

// MinPoly computes a scalar multiple of the minimal polynomial of A: it
// projects the Krylov sequence b, Ab, A²b, ... (for a random probe vector
// b) onto its first coordinate and recovers the minimal recurrence
// via Berlekamp–Massey, the same machinery iterative.Solve uses for
// Wiedemann. With high probability (bounded by the field size) this equals
// the true minimal polynomial of A; it always divides it. Coefficients are
// ascending by degree, monic at the top.
func MinPoly(A *densemat.DM, randVec func() []*big.Int) []*big.Int {
	op := iterative.FromDense(A)
	b := randVec()
	n := int(2*A.R) + 1
	seq := make([]*big.Int, n)
	cur := b
	mod := A.Mod
	probeRow := int64(0)
	for j := 0; j < n; j++ {
		seq[j] = mod.Reduce(new(big.Int).Set(cur[probeRow]))
		if j+1 < n {
			cur = op.MulVec(cur)
		}
	}
	rev := iterative.BerlekampMassey(mod, seq)
	// BerlekampMassey returns its connection polynomial ascending in its own
	// shift-register sense (index 0 always holds the leading 1); reverse it
	// so the result lines up with CharPoly's convention of ascending powers
	// of A with the monic term last.
	out := make([]*big.Int, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}
