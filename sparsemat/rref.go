// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"
	"sort"

	"gonum.org/v1/exact/sparsevec"
)

// RREF computes the reduced row-echelon form of M: LU without building L,
// followed by back-substitution so every pivot
// column is zero both above and below the pivot. Returns the RREF matrix
// (same shape as M, non-zero rows first in increasing pivot-column order)
// and the rank. Over the integers (no modulus) a pivot other than ±1 is
// left unnormalised, and its column is not cleared in the other rows.
func RREF(M *SM) (*SM, int64, error) {
	res, err := LU(M, false)
	if err != nil {
		return nil, 0, err
	}
	rank := res.Rank
	U := res.U.Clone()

	// Normalise each pivot row so its pivot entry is 1: mod n via the
	// inverse; over Z only a ±1 pivot is normalised, others stay as they are.
	for t := int64(0); t < rank; t++ {
		pivotCol := res.Q[t]
		pivotVal := U.Row(t).At(pivotCol)
		var scale *big.Int
		if M.Mod != nil {
			inv, ok := M.Mod.Inv(new(big.Int), pivotVal)
			if !ok {
				return nil, 0, ErrNonInvertible
			}
			scale = inv
		} else if pivotVal.CmpAbs(big.NewInt(1)) == 0 {
			scale = pivotVal // self-inverse: 1 or -1
		} else {
			scale = big.NewInt(1)
		}
		U.SetRow(t, sparsevec.ScalarMul(M.Mod, U.Row(t), scale))
	}

	// Eliminate every pivot column from every other pivot row.
	for t := int64(0); t < rank; t++ {
		pivotCol := res.Q[t]
		for s := int64(0); s < rank; s++ {
			if s == t {
				continue
			}
			coeff := U.Row(s).At(pivotCol)
			if coeff.Sign() == 0 {
				continue
			}
			U.SetRow(s, sparsevec.ScalarSubMul(M.Mod, U.Row(s), U.Row(t), coeff))
		}
	}

	order := make([]int64, rank)
	for t := range order {
		order[t] = int64(t)
	}
	sort.Slice(order, func(a, b int) bool { return res.Q[order[a]] < res.Q[order[b]] })

	out := New(M.R, M.C, M.Mod)
	for pos, t := range order {
		out.SetRow(int64(pos), U.Row(t))
	}
	return out, rank, nil
}
