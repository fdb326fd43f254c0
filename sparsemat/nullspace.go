// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import "math/big"

// Nullspace computes a basis for the right nullspace of M: run RREF,
// partition columns into pivot and non-pivot; for each
// non-pivot column c, the basis vector has a 1 at row c and, for every
// pivot row with pivot column p, a -RREF[row,c] at row p. The result X has
// M.C rows and nullity = M.C - rank(M) columns, satisfying M·X = 0.
func Nullspace(M *SM) (*SM, int64, error) {
	rref, rank, err := RREF(M)
	if err != nil {
		return nil, 0, err
	}
	c := M.C
	nullity := c - rank

	isPivot := make([]bool, c)
	pivotCols := make([]int64, rank)
	for t := int64(0); t < rank; t++ {
		lead, ok := rref.Row(t).LeadIndex()
		if !ok {
			continue
		}
		pivotCols[t] = lead
		isPivot[lead] = true
	}

	dense := make([][]*big.Int, c)
	for i := range dense {
		dense[i] = make([]*big.Int, nullity)
		for k := range dense[i] {
			dense[i][k] = big.NewInt(0)
		}
	}
	k := int64(0)
	for col := int64(0); col < c; col++ {
		if isPivot[col] {
			continue
		}
		dense[col][k] = big.NewInt(1)
		for t := int64(0); t < rank; t++ {
			val := rref.Row(t).At(col)
			if val.Sign() == 0 {
				continue
			}
			neg := new(big.Int).Neg(val)
			if M.Mod != nil {
				neg = M.Mod.Reduce(neg)
			}
			dense[pivotCols[t]][k] = neg
		}
		k++
	}
	return FromDense(c, nullity, M.Mod, dense), nullity, nil
}
