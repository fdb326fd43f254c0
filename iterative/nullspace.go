// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// Nullspace repeatedly draws a random x, solves M·x2 = M·x via Solve, and
// when x - x2 is a non-trivial kernel element, reduces it against the
// kernel basis collected so far (eliminating each new vector's leading
// entry against previous pivot columns, then normalising the new pivot to
// 1) before appending it. It terminates after maxIters consecutive
// fruitless draws, returning whatever basis it has collected.
func Nullspace(op Op, randVec func() []*big.Int, maxProbes, maxIters int) [][]*big.Int {
	mod := op.Mod()
	var basis [][]*big.Int
	var pivotCols []int64

	fruitless := 0
	for fruitless < maxIters {
		x := randVec()
		b := op.MulVec(x)
		x2, err := Solve(op, b, maxProbes)
		if err != nil {
			fruitless++
			continue
		}
		ker := subVec(mod, x, x2)
		if isZeroVec(ker) {
			fruitless++
			continue
		}
		reduced := reduceAgainstBasis(mod, ker, basis, pivotCols)
		if isZeroVec(reduced) {
			fruitless++
			continue
		}
		lead := leadIndex(reduced)
		inv, ok := mod.Inv(new(big.Int), reduced[lead])
		if !ok {
			fruitless++
			continue
		}
		reduced = scaleVec(mod, inv, reduced)
		basis = append(basis, reduced)
		pivotCols = append(pivotCols, lead)
		fruitless = 0
	}
	return basis
}

func reduceAgainstBasis(mod *bigz.Mod, v []*big.Int, basis [][]*big.Int, pivotCols []int64) []*big.Int {
	out := append([]*big.Int(nil), v...)
	for i, p := range pivotCols {
		if out[p].Sign() == 0 {
			continue
		}
		c := out[p]
		out = subVec(mod, out, scaleVec(mod, c, basis[i]))
	}
	return out
}

func leadIndex(v []*big.Int) int64 {
	for i, x := range v {
		if x.Sign() != 0 {
			return int64(i)
		}
	}
	return -1
}
