// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"

	"gonum.org/v1/exact/internal/heap"
	"gonum.org/v1/exact/sparsevec"
)

// FFLUResult holds a fraction-free LU factorization over Z: P·M·Q = L·U
// after dividing row r of the running elimination by D[r-1] (D[-1] := 1),
// i.e. every intermediate entry stays an integer throughout elimination.
type FFLUResult struct {
	P, Q []int64
	D    []*big.Int
	L, U *SM
	Rank int64
}

// FFLU computes the Bareiss fraction-free LU factorization of the integer
// matrix M: it reuses the same Markowitz pivot-selection scaffold as LU,
// but the elimination step multiplies the eliminated row by the pivot
// before subtracting, and divides the result by the previous pivot (which
// is guaranteed to divide evenly — the Bareiss/Sylvester identity), so the
// whole computation stays in Z.
func FFLU(M *SM) (FFLUResult, error) {
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

	lRows := make([]*sparsevec.SV, r)
	uRows := make([]*sparsevec.SV, r)
	D := []*big.Int{}
	prevPivot := big.NewInt(1)

	rank := int64(0)
	for colHeap.Len() > 0 {
		pc, _ := colHeap.Pop()
		if colUsed[pc] {
			continue
		}
		if mt.ColPopulation(pc) == 0 {
			colUsed[pc] = true
			Q[backQ] = pc
			backQ--
			continue
		}

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
			colUsed[pc] = true
			Q[backQ] = pc
			backQ--
			continue
		}

		pivotVal := new(big.Int).Set(mt.M.Row(pr).At(pc))

		P[frontP] = pr
		Q[frontQ] = pc
		rowUsed[pr] = true
		colUsed[pc] = true
		mt.RemoveRowFromColumn(pr, pc)

		uRows[frontP] = mt.M.Row(pr).Clone()
		lRows[frontP] = sparsevec.New()

		touched := map[int64]bool{}
		for otherRow := int64(0); otherRow < r; otherRow++ {
			if rowUsed[otherRow] {
				continue
			}
			rowVal := mt.M.Row(otherRow).At(pc)
			// newRow = (pivot·otherRow − rowVal·pivotRow) / prevPivot,
			// the fraction-free Bareiss update; the division is exact.
			scaled := sparsevec.ScalarMul(nil, mt.M.Row(otherRow), pivotVal)
			combined := sparsevec.ScalarSubMul(nil, scaled, uRows[frontP], rowVal)
			newRow := exactDivRow(combined, prevPivot)

			lRows[frontP] = sparsevec.ScalarAddMul(nil, lRows[frontP], oneHotAt(otherRow, rowVal), big.NewInt(1))

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
		D = append(D, new(big.Int).Set(prevPivot))
		prevPivot = pivotVal
		frontP++
		frontQ++
		rank++
	}

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

	L := New(rank, rank, nil)
	U := New(rank, c, nil)
	posOfRow := make(map[int64]int64, rank)
	for t := int64(0); t < rank; t++ {
		posOfRow[P[t]] = t
	}
	for t := int64(0); t < rank; t++ {
		dense := lRows[t].ToDense(int(r))
		row := sparsevec.New()
		for origRow, v := range dense {
			if v.Sign() == 0 {
				continue
			}
			if pos, ok := posOfRow[int64(origRow)]; ok && pos < t {
				row = sparsevec.ScalarAddMul(nil, row, oneHotAt(pos, v), big.NewInt(1))
			}
		}
		row = sparsevec.ScalarAddMul(nil, row, oneHotAt(t, big.NewInt(1)), big.NewInt(1))
		L.SetRow(t, row)
		U.SetRow(t, uRows[t])
	}

	return FFLUResult{P: P, Q: Q, D: D, L: L, U: U, Rank: rank}, nil
}

// exactDivRow divides every entry of row by d, panicking if any division is
// inexact — the Bareiss identity guarantees exactness whenever prevPivot
// was correctly the previous pivot.
func exactDivRow(row *sparsevec.SV, d *big.Int) *sparsevec.SV {
	if d.CmpAbs(big.NewInt(1)) == 0 {
		if d.Sign() < 0 {
			return sparsevec.Neg(nil, row)
		}
		return row
	}
	entries := row.Entries()
	idx := make([]int64, len(entries))
	val := make([]*big.Int, len(entries))
	for i, e := range entries {
		q, rem := new(big.Int), new(big.Int)
		q.QuoRem(e.Value, d, rem)
		if rem.Sign() != 0 {
			panic("sparsemat: fraction-free division was inexact")
		}
		idx[i] = e.Index
		val[i] = q
	}
	return sparsevec.FromEntries(idx, val)
}

// DetBareiss computes det(M) for a square integer matrix via fraction-free
// LU: det = (∏ U[i,i]) / (∏ D[i]), negated when the row and column
// permutation parities differ. Zero for non-square M, one for the 0×0
// matrix.
func DetBareiss(M *SM) *big.Int {
	if M.R != M.C {
		return big.NewInt(0)
	}
	if M.R == 0 {
		return big.NewInt(1)
	}
	res, _ := FFLU(M)
	if res.Rank < M.R {
		return big.NewInt(0)
	}
	num := big.NewInt(1)
	for t := int64(0); t < res.Rank; t++ {
		num.Mul(num, res.U.Row(t).At(res.Q[t]))
	}
	den := big.NewInt(1)
	for _, d := range res.D {
		den.Mul(den, d)
	}
	det, ok := bigzDivExact(num, den)
	if !ok {
		panic("sparsemat: Bareiss determinant division was inexact")
	}
	if permParity(res.P)^permParity(res.Q) == 1 {
		det.Neg(det)
	}
	return det
}

// DetCofactor computes det(M) by Laplace expansion along the first row; it
// is exponential and intended only for small M, e.g. as a cross-check of
// DetBareiss.
func DetCofactor(M *SM) *big.Int {
	if M.R != M.C {
		return big.NewInt(0)
	}
	n := M.R
	if n == 0 {
		return big.NewInt(1)
	}
	if n == 1 {
		return new(big.Int).Set(M.At(0, 0))
	}
	det := big.NewInt(0)
	for j := int64(0); j < n; j++ {
		a := M.At(0, j)
		if a.Sign() == 0 {
			continue
		}
		minor := minorOf(M, 0, j)
		term := new(big.Int).Mul(a, DetCofactor(minor))
		if j%2 == 1 {
			term.Neg(term)
		}
		det.Add(det, term)
	}
	return det
}

func minorOf(M *SM, skipRow, skipCol int64) *SM {
	out := New(M.R-1, M.C-1, nil)
	oi := int64(0)
	for i := int64(0); i < M.R; i++ {
		if i == skipRow {
			continue
		}
		var idx []int64
		var val []*big.Int
		for _, e := range M.Row(i).Entries() {
			if e.Index == skipCol {
				continue
			}
			col := e.Index
			if col > skipCol {
				col--
			}
			idx = append(idx, col)
			val = append(val, e.Value)
		}
		out.SetRow(oi, sparsevec.FromEntries(idx, val))
		oi++
	}
	return out
}

func permParity(p []int64) int {
	seen := make([]bool, len(p))
	parity := 0
	for i := range p {
		if seen[i] {
			continue
		}
		cycleLen := 0
		for j := int64(i); !seen[j]; j = p[j] {
			seen[j] = true
			cycleLen++
		}
		if cycleLen%2 == 0 {
			parity ^= 1
		}
	}
	return parity
}

func bigzDivExact(a, b *big.Int) (*big.Int, bool) {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	return q, r.Sign() == 0
}
