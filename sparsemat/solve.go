// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// SolveTril solves L*y = b for a unit lower triangular L (in pivot order,
// as produced by LU) via forward substitution.
func SolveTril(mod *bigz.Mod, L *SM, b []*big.Int) []*big.Int {
	n := L.R
	y := make([]*big.Int, n)
	for t := int64(0); t < n; t++ {
		sum := new(big.Int).Set(b[t])
		for _, e := range L.Row(t).Entries() {
			if e.Index >= t {
				continue
			}
			sum.Sub(sum, new(big.Int).Mul(e.Value, y[e.Index]))
		}
		if mod != nil {
			sum = mod.Reduce(sum)
		}
		y[t] = sum
	}
	return y
}

// SolveTriu solves an upper triangular system presented as rank rows with
// pivot entry at column pivotCols[t]: pivotCols gives, for each row t,
// which column holds that row's pivot, and every other non-zero entry in
// row t sits at a column belonging to a later pivot index — U is
// triangular in *pivot order*, not column-index order, exactly as LU
// leaves it. x is returned as a dense vector of length c with
// x[pivotCols[t]] set to the solved unknown and 0 elsewhere.
func SolveTriu(mod *bigz.Mod, U *SM, pivotCols []int64, y []*big.Int, c int64) ([]*big.Int, bool) {
	rank := int64(len(pivotCols))
	z := make([]*big.Int, rank)
	for t := rank - 1; t >= 0; t-- {
		sum := new(big.Int).Set(y[t])
		for s := t + 1; s < rank; s++ {
			coeff := U.Row(t).At(pivotCols[s])
			if coeff.Sign() == 0 {
				continue
			}
			sum.Sub(sum, new(big.Int).Mul(coeff, z[s]))
		}
		pivotVal := U.Row(t).At(pivotCols[t])
		if mod != nil {
			inv, ok := mod.Inv(new(big.Int), pivotVal)
			if !ok {
				return nil, false
			}
			z[t] = mod.Mul(new(big.Int), sum, inv)
		} else {
			q, ok := bigz.DivExact(sum, pivotVal)
			if !ok {
				return nil, false
			}
			z[t] = q
		}
	}
	x := make([]*big.Int, c)
	for i := range x {
		x[i] = big.NewInt(0)
	}
	for t, col := range pivotCols {
		x[col] = z[t]
	}
	return x, true
}

// Solve solves A*x = b for square A: factor A, forward solve with L, back
// solve with U. ok is false when A is singular.
func Solve(A *SM, b []*big.Int) ([]*big.Int, bool, error) {
	if A.R != A.C {
		panic(ErrNonSquare)
	}
	res, err := LU(A, true)
	if err != nil {
		return nil, false, err
	}
	if res.Rank < A.R {
		return nil, false, nil
	}
	pb := make([]*big.Int, res.Rank)
	for t, origRow := range res.P {
		pb[t] = b[origRow]
	}
	y := SolveTril(A.Mod, res.L, pb)
	x, ok := SolveTriu(A.Mod, res.U, res.Q[:res.Rank], y, A.C)
	if !ok {
		return nil, false, nil
	}
	return x, true, nil
}

// CanSolve solves A*x = b allowing A to be non-square or rank-deficient:
// factor, forward- and back-solve the rank-many independent equations,
// then verify the result reproduces b on every row (the dependent rows
// included) before accepting it. ok is false when the system is
// inconsistent.
func CanSolve(A *SM, b []*big.Int) ([]*big.Int, bool, error) {
	res, err := LU(A, false)
	if err != nil {
		return nil, false, err
	}
	pb := make([]*big.Int, res.Rank)
	for t := int64(0); t < res.Rank; t++ {
		pb[t] = b[res.P[t]]
	}
	y := SolveTril(A.Mod, res.L, pb)
	x, ok := SolveTriu(A.Mod, res.U, res.Q[:res.Rank], y, A.C)
	if !ok {
		return nil, false, nil
	}

	got := A.MulVec(x)
	for i := int64(0); i < A.R; i++ {
		diff := new(big.Int).Sub(got[i], b[i])
		if A.Mod != nil {
			diff = A.Mod.Reduce(diff)
		}
		if diff.Sign() != 0 {
			return nil, false, nil
		}
	}
	return x, true, nil
}
