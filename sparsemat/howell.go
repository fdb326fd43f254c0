// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"
	"sort"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/sparsevec"
)

// StrongEchelonFormMod computes the strong echelon (Howell basis) form of M
// modulo n, which may be composite. Column by column: repeatedly pick the
// two lightest-leading-value incident non-pivot rows and eliminate one
// against the other with GaussElimExtMod until at most one incident row
// remains; that row becomes the column's pivot, scaled so its leading
// value is gcd(lead, n) — the minimal value reachable by a unit multiple.
// A second pass reduces every earlier pivot row against each later pivot,
// and, when a pivot's leading value is not 1, injects the
// extra basis element n/lead · pivotRow as a new pivot if it survives
// reduction against the existing basis. Returns the echelon matrix and its
// rank (number of non-zero rows).
func StrongEchelonFormMod(M *SM, n *big.Int) (*SM, int64, error) {
	mod := bigz.NewMod(n)
	extra := int64(1)
	if M.R < M.C {
		extra += M.C - M.R
	}
	total := M.R + extra

	rows := make([]*sparsevec.SV, total)
	for i := int64(0); i < M.R; i++ {
		rows[i] = M.Row(i).Clone()
	}
	for i := M.R; i < total; i++ {
		rows[i] = sparsevec.New()
	}
	isPivot := make([]bool, total)
	isDead := make([]bool, total)
	pivotCol := make([]int64, total)
	for i := range pivotCol {
		pivotCol[i] = -1
	}

	var deadPool []int64
	for i := M.R; i < total; i++ {
		deadPool = append(deadPool, i)
	}

	for col := int64(0); col < M.C; col++ {
		for {
			var candidates []int64
			for i := int64(0); i < total; i++ {
				if isPivot[i] || isDead[i] {
					continue
				}
				if rows[i].At(col).Sign() != 0 {
					candidates = append(candidates, i)
				}
			}
			if len(candidates) == 0 {
				break
			}
			if len(candidates) == 1 {
				pr := candidates[0]
				lead := rows[pr].At(col)
				_, a := bigz.GCDInv(new(big.Int), lead, n)
				rows[pr] = sparsevec.ScalarMul(mod, rows[pr], a)
				isPivot[pr] = true
				pivotCol[pr] = col
				break
			}
			sort.Slice(candidates, func(a, b int) bool {
				return rows[candidates[a]].At(col).CmpAbs(rows[candidates[b]].At(col)) < 0
			})
			r1, r2 := candidates[0], candidates[1]
			res := sparsevec.GaussElimExtMod(mod, rows[r1], rows[r2], col)
			rows[r1] = res.V
			rows[r2] = res.U
			if rows[r2].IsZero() {
				isDead[r2] = true
			}
		}
	}

	var pivotRows []int64
	for i := int64(0); i < total; i++ {
		if isPivot[i] {
			pivotRows = append(pivotRows, i)
		}
	}
	sort.Slice(pivotRows, func(a, b int) bool { return pivotCol[pivotRows[a]] < pivotCol[pivotRows[b]] })

	// Second pass: reduce every earlier pivot against each later pivot, and
	// inject the n/lead extra basis element when the pivot value isn't 1.
	for _, pr := range pivotRows {
		pc := pivotCol[pr]
		for _, other := range pivotRows {
			if other == pr {
				continue
			}
			rows[other] = sparsevec.GaussElimCol(mod, rows[other], rows[pr], pc)
		}
		lead := rows[pr].At(pc)
		if lead.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		q := new(big.Int).Quo(n, lead)
		cand := sparsevec.ScalarMul(mod, rows[pr], q)
		for _, other := range pivotRows {
			cand = sparsevec.GaussElim(mod, cand, rows[other])
		}
		if cand.IsZero() {
			continue
		}
		newLead, ok := cand.LeadIndex()
		if !ok {
			continue
		}
		if len(deadPool) == 0 {
			continue
		}
		slot := deadPool[0]
		deadPool = deadPool[1:]
		rows[slot] = cand
		isPivot[slot] = true
		isDead[slot] = false
		pivotCol[slot] = newLead
		pivotRows = append(pivotRows, slot)
		sort.Slice(pivotRows, func(a, b int) bool { return pivotCol[pivotRows[a]] < pivotCol[pivotRows[b]] })
	}

	out := New(int64(len(pivotRows)), M.C, mod)
	for k, pr := range pivotRows {
		out.SetRow(int64(k), rows[pr])
	}
	return out, int64(len(pivotRows)), nil
}

// HowellForm wraps StrongEchelonFormMod and pads the result into a square
// M.C × M.C matrix, filling any column without a pivot with n on the
// diagonal.
func HowellForm(M *SM, n *big.Int) *SM {
	echelon, rank, err := StrongEchelonFormMod(M, n)
	if err != nil {
		panic(err)
	}
	mod := bigz.NewMod(n)
	hasPivotAt := make([]bool, M.C)
	for t := int64(0); t < rank; t++ {
		if lead, ok := echelon.Row(t).LeadIndex(); ok {
			hasPivotAt[lead] = true
		}
	}
	out := New(M.C, M.C, mod)
	for t := int64(0); t < rank; t++ {
		out.SetRow(t, echelon.Row(t))
	}
	k := rank
	for col := int64(0); col < M.C; col++ {
		if hasPivotAt[col] {
			continue
		}
		out.SetRow(k, sparsevec.FromEntries([]int64{col}, []*big.Int{new(big.Int).Set(n)}))
		k++
	}
	return out
}

// IsInHNF reports whether M satisfies the Hermite/Howell normal form
// invariants: non-zero rows come first, leading indices strictly increase,
// leading values are positive, and every value above a pivot lies in
// [0, pivot).
func IsInHNF(M *SM) bool {
	lastLead := int64(-1)
	seenZero := false
	for i := int64(0); i < M.R; i++ {
		row := M.Row(i)
		if row.IsZero() {
			seenZero = true
			continue
		}
		if seenZero {
			return false
		}
		lead, _ := row.LeadIndex()
		val := row.LeadValue()
		if lead <= lastLead {
			return false
		}
		if val.Sign() <= 0 {
			return false
		}
		for j := int64(0); j < i; j++ {
			above := M.Row(j).At(lead)
			if above.Sign() < 0 || above.Cmp(val) >= 0 {
				return false
			}
		}
		lastLead = lead
	}
	return true
}
