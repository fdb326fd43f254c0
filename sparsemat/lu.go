// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"

	"gonum.org/v1/exact/internal/heap"
	"gonum.org/v1/exact/sparsevec"
)

// LUResult holds the compact rank-revealing factorization produced by LU:
// for rank-many pivot steps, P[0:rank] and Q[0:rank] give the original row
// and column index chosen at each pivot position (in pivot order); the
// remaining entries of P and Q (rank:R and rank:C) hold the retired
// (linearly dependent) rows/columns, filled from the back exactly as spec
// §4.2.1 describes. L is the rank×rank unit lower triangular factor in
// pivot order (L[t1][t2] corresponds to original rows P[t1], P[t2]); U is
// the rank×C upper-trapezoidal factor in pivot row order, original column
// numbering, whose pivot entry at row t sits at column Q[t]. Together,
// reading U's columns through Q gives P·M·Q's leading rank×rank block as
// L·U_pivot.
type LUResult struct {
	P, Q []int64
	L, U *SM
	Rank int64
}

// LU computes a Markowitz-style, sparsity-preserving LU factorization of M.
// If rankCheck is true and the discovered rank is less than
// min(R,C), callers that need a full-rank guarantee should treat that as
// failure themselves (LU always returns the best rank it found; it never
// errors on rank deficiency by itself).
//
// With a modulus, LU requires a pivot value to be invertible: for a prime
// modulus this always succeeds for any non-zero candidate. Over the
// integers (no modulus) no invertibility check is made and the multiplier
// is the truncated quotient, so a column below a pivot is cleared only
// where the pivot divides its entries (as a ±1 pivot does). For a
// composite modulus LU returns
// ErrNonInvertible the first time every candidate pivot in the lightest
// column is a non-unit — composite-modulus elimination is unspecified for
// plain LU, and callers needing that case should use HNF/Howell form
// instead of having LU guess.
func LU(M *SM, rankCheck bool) (LUResult, error) {
	r, c := M.R, M.C
	mt := NewMT(M)

	colHeap := heap.New()
	for j := int64(0); j < c; j++ {
		colHeap.Push(int64(mt.ColPopulation(j)))
	}

	rowUsed := make([]bool, r)
	colUsed := make([]bool, c)

	P := make([]int64, r)
	Q := make([]int64, c)
	frontP, backP := int64(0), r-1
	frontQ, backQ := int64(0), c-1

	lRows := make([]*sparsevec.SV, r) // keyed by pivot position, built incrementally
	uRows := make([]*sparsevec.SV, r)

	rank := int64(0)
	for colHeap.Len() > 0 {
		pc, _ := colHeap.Pop()
		if colUsed[pc] {
			continue
		}
		pop := mt.ColPopulation(pc)
		if pop == 0 {
			colUsed[pc] = true
			Q[backQ] = pc
			backQ--
			continue
		}

		// Pick the incident row with smallest nnz.
		var pr int64 = -1
		bestNNZ := -1
		for _, cand := range mt.RowsIn(pc) {
			if rowUsed[cand] {
				continue
			}
			nnz := mt.M.Row(cand).NNZ()
			if bestNNZ < 0 || nnz < bestNNZ {
				bestNNZ = nnz
				pr = cand
			}
		}
		if pr < 0 {
			// Every incident row was already claimed as a pivot for an
			// earlier column; this column is dependent on them.
			colUsed[pc] = true
			Q[backQ] = pc
			backQ--
			continue
		}

		pivotVal := new(big.Int).Set(mt.M.Row(pr).At(pc))
		if M.Mod != nil {
			if _, ok := M.Mod.Inv(new(big.Int), pivotVal); !ok {
				return LUResult{}, ErrNonInvertible
			}
		}

		P[frontP] = pr
		Q[frontQ] = pc
		rowUsed[pr] = true
		colUsed[pc] = true
		mt.RemoveRowFromColumn(pr, pc)

		uRows[frontP] = mt.M.Row(pr).Clone()
		lRows[frontP] = sparsevec.New()

		touched := map[int64]bool{}
		for _, otherRow := range append([]int64(nil), mt.RowsIn(pc)...) {
			if rowUsed[otherRow] {
				continue
			}
			rowVal := mt.M.Row(otherRow).At(pc)
			if rowVal.Sign() == 0 {
				continue
			}
			var quotient *big.Int
			if M.Mod != nil {
				inv, _ := M.Mod.Inv(new(big.Int), pivotVal)
				quotient = M.Mod.Mul(new(big.Int), rowVal, inv)
			} else {
				quotient = new(big.Int).Quo(rowVal, pivotVal)
			}
			lRows[frontP] = sparsevec.ScalarAddMul(M.Mod, lRows[frontP], oneHotAt(otherRow, quotient), big.NewInt(1))

			newRow := sparsevec.ScalarSubMul(M.Mod, mt.M.Row(otherRow), uRows[frontP], quotient)
			for _, j := range diffColumns(mt.M.Row(otherRow), newRow) {
				touched[j] = true
			}
			mt.SetRow(otherRow, newRow)
			if newRow.NNZ() == 0 {
				rowUsed[otherRow] = true
				P[backP] = otherRow
				backP--
			}
		}
		for j := range touched {
			if !colUsed[j] {
				colHeap.Adjust(j, int64(mt.ColPopulation(j)))
			}
		}
		frontP++
		frontQ++
		rank++
	}

	// Any rows/columns never touched (all-zero) are retired in whatever
	// order remains.
	for i := int64(0); i < r; i++ {
		if !rowUsed[i] {
			P[backP] = i
			backP--
			rowUsed[i] = true
		}
	}
	for j := int64(0); j < c; j++ {
		if !colUsed[j] {
			Q[backQ] = j
			backQ--
			colUsed[j] = true
		}
	}

	L := New(rank, rank, M.Mod)
	U := New(rank, c, M.Mod)
	posOfRow := make(map[int64]int64, rank)
	for t := int64(0); t < rank; t++ {
		posOfRow[P[t]] = t
	}
	rowsL := make([]*sparsevec.SV, rank)
	for t := int64(0); t < rank; t++ {
		rowsL[t] = oneHotAt(t, big.NewInt(1))
	}
	for t := int64(0); t < rank; t++ {
		// lRows[t] holds, by original row index, the multipliers pivot t
		// applied; they form column t of L, re-keyed into pivot position.
		for _, e := range lRows[t].Entries() {
			if pos, ok := posOfRow[e.Index]; ok && pos > t {
				rowsL[pos] = sparsevec.ScalarAddMul(M.Mod, rowsL[pos], oneHotAt(t, e.Value), big.NewInt(1))
			}
		}
	}
	for t := int64(0); t < rank; t++ {
		L.SetRow(t, rowsL[t])
		U.SetRow(t, uRows[t])
	}

	return LUResult{P: P, Q: Q, L: L, U: U, Rank: rank}, nil
}

func oneHotAt(idx int64, val *big.Int) *sparsevec.SV {
	if val.Sign() == 0 {
		return sparsevec.New()
	}
	return sparsevec.FromEntries([]int64{idx}, []*big.Int{val})
}

// diffColumns returns the columns present in exactly one of old, new.
func diffColumns(old, nw *sparsevec.SV) []int64 {
	seen := map[int64]bool{}
	for _, e := range old.Entries() {
		seen[e.Index] = true
	}
	for _, e := range nw.Entries() {
		seen[e.Index] = true
	}
	var out []int64
	for j := range seen {
		out = append(out, j)
	}
	return out
}
