// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hnf computes the Hermite normal form of an integer matrix via
// four sharing-one-scaffold algorithms (classical, extended-gcd, minors,
// modular) plus the modular-with-known-elementary-divisors shortcut, all
// built on the matrix-with-transpose elimination scaffold in sparsemat.
package hnf

import (
	"math/big"
	"sort"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/sparsemat"
	"gonum.org/v1/exact/sparsevec"
)

// Classical computes the HNF of M using repeated pairwise elimination: for
// each column with at least one incident non-pivot row, the two
// lightest-|lead| incident rows are reduced against each other with
// sparsevec.GaussElim until one remains, which becomes the column's pivot;
// every previous pivot row incident to the new pivot column is then
// reduced against it.
func Classical(M *sparsemat.SM) *sparsemat.SM {
	return run(M, func(rows []*sparsevec.SV, alive []bool, col int64) {
		for {
			i1, i2 := twoLightest(rows, alive, col)
			if i2 < 0 {
				return
			}
			rows[i1] = sparsevec.GaussElim(nil, rows[i1], rows[i2])
			rows[i2] = sparsevec.GaussElim(nil, rows[i2], rows[i1])
			if rows[i1].At(col).Sign() == 0 {
				alive[i1] = false
			}
			if rows[i2].At(col).Sign() == 0 {
				alive[i2] = false
			}
		}
	})
}

// XGCD computes the HNF of M using a single pass of extended elimination
// (sparsevec.GaussElimExt) of each larger-lead incident row against the
// smallest-lead one, rather than classical's repeated pairwise reduction.
func XGCD(M *sparsemat.SM) *sparsemat.SM {
	return run(M, func(rows []*sparsevec.SV, alive []bool, col int64) {
		small := lightest(rows, alive, col)
		if small < 0 {
			return
		}
		for i, row := range rows {
			if !alive[i] || int64(i) == small || row.At(col).Sign() == 0 {
				continue
			}
			res := sparsevec.GaussElimExt(nil, rows[small], row)
			rows[small] = res.V
			rows[i] = res.U
			if rows[i].At(col).Sign() == 0 {
				alive[i] = false
			}
		}
	})
}

// Minors computes the HNF of M by the Kannan–Bachem algorithm: column by
// column, left to right, it takes the first not-yet-pivot row, reduces it
// by the previous pivots until its leading index reaches pc, promotes it
// to pivot, reduces every previous pivot row incident to pc against it,
// then does a final cleanup sweep re-reducing all pivot rows against each
// other (since later pivots mutate earlier ones).
func Minors(M *sparsemat.SM) *sparsemat.SM {
	r, c := M.R, M.C
	rows := make([]*sparsevec.SV, r)
	for i := int64(0); i < r; i++ {
		rows[i] = M.Row(i).Clone()
	}
	alive := make([]bool, r)
	for i := range alive {
		alive[i] = true
	}
	pivotAt := make(map[int64]int64)
	var pivotCols []int64

	for pc := int64(0); pc < c; pc++ {
		var candidate int64 = -1
		for i := int64(0); i < r; i++ {
			if !alive[i] || isUsedPivot(i, pivotAt) {
				continue
			}
			candidate = i
			break
		}
		if candidate < 0 {
			continue
		}
		for {
			for _, pv := range pivotCols {
				pr := pivotAt[pv]
				rows[candidate] = sparsevec.GaussElim(nil, rows[candidate], rows[pr])
			}
			lead, ok := rows[candidate].LeadIndex()
			if !ok {
				alive[candidate] = false
				break
			}
			if lead >= pc {
				break
			}
		}
		if !alive[candidate] {
			continue
		}
		lead, ok := rows[candidate].LeadIndex()
		if !ok || lead != pc {
			continue
		}
		pivotAt[pc] = candidate
		pivotCols = append(pivotCols, pc)
		for i := int64(0); i < r; i++ {
			if i == candidate || !alive[i] {
				continue
			}
			if rows[i].At(pc).Sign() != 0 {
				rows[i] = sparsevec.GaussElim(nil, rows[i], rows[candidate])
			}
		}
	}

	for _, pv := range pivotCols {
		pr := pivotAt[pv]
		for _, pv2 := range pivotCols {
			if pv2 == pv {
				continue
			}
			other := pivotAt[pv2]
			if rows[other].At(pv).Sign() != 0 {
				rows[other] = sparsevec.GaussElim(nil, rows[other], rows[pr])
			}
		}
	}

	return assemble(rows, alive, pivotAt, pivotCols, M.R, M.C)
}

// Modular computes the HNF of a full-rank M given a known multiple det of
// det(M): the same pairwise scaffold as Classical, but a running modulus
// remDet (initially det) is threaded through every elimination
// (extended, reduced mod remDet) and every pivot row; when a column has
// no non-pivot incident row remaining, remDet itself is injected as a new
// pivot at that column. After each genuine pivot, remDet is divided by
// gcd(lead, remDet).
func Modular(M *sparsemat.SM, det *big.Int) *sparsemat.SM {
	r, c := M.R, M.C
	rows := make([]*sparsevec.SV, r)
	for i := int64(0); i < r; i++ {
		rows[i] = M.Row(i).Clone()
	}
	alive := make([]bool, r)
	for i := range alive {
		alive[i] = true
	}
	pivotAt := make(map[int64]int64)
	var pivotCols []int64
	remDet := new(big.Int).Abs(det)
	nextFree := r

	growRow := func() int64 {
		rows = append(rows, sparsevec.New())
		alive = append(alive, true)
		idx := nextFree
		nextFree++
		return idx
	}

	for pc := int64(0); pc < c; pc++ {
		mod := bigz.NewMod(remDet)
		for {
			i1, i2 := twoLightest(rows, alive, pc)
			if i2 < 0 {
				break
			}
			res := sparsevec.GaussElimExtMod(mod, rows[i1], rows[i2], pc)
			rows[i1] = res.V
			rows[i2] = res.U
			if rows[i2].At(pc).Sign() == 0 {
				alive[i2] = false
			}
		}
		pr := lightest(rows, alive, pc)
		if pr < 0 {
			idx := growRow()
			rows[idx] = sparsevec.FromEntries([]int64{pc}, []*big.Int{new(big.Int).Set(remDet)})
			pr = idx
		}
		lead := rows[pr].At(pc)
		if lead.Sign() != 0 {
			g := new(big.Int).GCD(nil, nil, lead, remDet)
			remDet = new(big.Int).Quo(remDet, g)
		}
		pivotAt[pc] = pr
		pivotCols = append(pivotCols, pc)
		for i := int64(0); i < int64(len(rows)); i++ {
			if i == pr || !alive[i] {
				continue
			}
			if rows[i].At(pc).Sign() != 0 {
				rows[i] = sparsevec.GaussElimCol(nil, rows[i], rows[pr], pc)
			}
		}
	}

	return assemble(rows, alive, pivotAt, pivotCols, M.R, M.C)
}

// ModularEldiv reduces to sparsemat.StrongEchelonFormMod(M, n) and fills
// any empty diagonal slot with n, i.e. it is exactly howell_form's
// construction specialised to the HNF verifier's expectations.
func ModularEldiv(M *sparsemat.SM, n *big.Int) *sparsemat.SM {
	return sparsemat.HowellForm(M, n)
}

// IsInHNF re-exports sparsemat's verifier for convenience.
func IsInHNF(M *sparsemat.SM) bool { return sparsemat.IsInHNF(M) }

func isUsedPivot(row int64, pivotAt map[int64]int64) bool {
	for _, r := range pivotAt {
		if r == row {
			return true
		}
	}
	return false
}

func lightest(rows []*sparsevec.SV, alive []bool, col int64) int64 {
	best := int64(-1)
	for i, row := range rows {
		if !alive[i] {
			continue
		}
		v := row.At(col)
		if v.Sign() == 0 {
			continue
		}
		if best < 0 || v.CmpAbs(rows[best].At(col)) < 0 {
			best = int64(i)
		}
	}
	return best
}

func twoLightest(rows []*sparsevec.SV, alive []bool, col int64) (int64, int64) {
	var idx []int64
	for i, row := range rows {
		if alive[i] && row.At(col).Sign() != 0 {
			idx = append(idx, int64(i))
		}
	}
	if len(idx) < 2 {
		return -1, -1
	}
	sort.Slice(idx, func(a, b int) bool { return rows[idx[a]].At(col).CmpAbs(rows[idx[b]].At(col)) < 0 })
	return idx[0], idx[1]
}

// run is the shared Classical/XGCD driver: for each column with ≥1
// incident non-pivot row, apply step until one row remains (the pivot),
// then reduce every previous pivot row incident to the new column.
func run(M *sparsemat.SM, step func(rows []*sparsevec.SV, alive []bool, col int64)) *sparsemat.SM {
	r, c := M.R, M.C
	rows := make([]*sparsevec.SV, r)
	for i := int64(0); i < r; i++ {
		rows[i] = M.Row(i).Clone()
	}
	alive := make([]bool, r)
	for i := range alive {
		alive[i] = true
	}
	pivotAt := make(map[int64]int64)
	var pivotCols []int64

	for pc := int64(0); pc < c; pc++ {
		step(rows, alive, pc)
		pr := lightest(rows, alive, pc)
		if pr < 0 {
			continue
		}
		pivotAt[pc] = pr
		pivotCols = append(pivotCols, pc)
		for _, pv := range pivotCols {
			if pv == pc {
				continue
			}
			prevPr := pivotAt[pv]
			if rows[prevPr].At(pc).Sign() != 0 {
				rows[prevPr] = sparsevec.GaussElimCol(nil, rows[prevPr], rows[pr], pc)
			}
		}
	}
	return assemble(rows, alive, pivotAt, pivotCols, M.R, M.C)
}

func assemble(rows []*sparsevec.SV, alive []bool, pivotAt map[int64]int64, pivotCols []int64, r, c int64) *sparsemat.SM {
	sort.Slice(pivotCols, func(a, b int) bool { return pivotCols[a] < pivotCols[b] })
	out := sparsemat.New(r, c, nil)
	k := int64(0)
	for _, pc := range pivotCols {
		pr := pivotAt[pc]
		row := rows[pr]
		if row.LeadValue().Sign() < 0 {
			row = sparsevec.Neg(nil, row)
		}
		out.SetRow(k, row)
		k++
	}
	return out
}
