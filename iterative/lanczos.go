// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// symA applies A = Mᵀ·M to v.
func symA(op Op, v []*big.Int) []*big.Int {
	return op.MulVecT(op.MulVec(v))
}

// LanczosSolve runs symmetrised scalar Lanczos against A = Mᵀ·M (size
// Cols()×Cols()) seeded by v0: maintains two consecutive direction
// vectors, stops if a direction becomes A-orthogonal to itself (vᵀAv=0),
// and otherwise accumulates x += (vᵢᵀ·Mᵀ·b / δᵢ)·vᵢ at every step. Returns
// once M·x = b verifies, or ErrIterationLimit after maxIters steps.
func LanczosSolve(op Op, b []*big.Int, v0 []*big.Int, maxIters int) ([]*big.Int, error) {
	mod := op.Mod()
	c := op.Cols()

	x := zeroVec(c)
	vPrev := zeroVec(c)
	vCur := v0
	deltaPrev := big.NewInt(1)
	mtb := op.MulVecT(b)

	for i := 0; i < maxIters; i++ {
		Av := symA(op, vCur)
		delta := dot(mod, vCur, Av)
		if delta.Sign() == 0 {
			break
		}

		num := dot(mod, vCur, mtb)
		coef := mod.Mul(new(big.Int), num, mustInv(mod, delta))
		x = axpy(mod, x, coef, vCur)

		if vecEqual(op.MulVec(x), b) {
			return x, nil
		}

		alpha := mod.Mul(new(big.Int), dot(mod, Av, Av), mustInv(mod, delta))
		beta := mod.Mul(new(big.Int), delta, mustInv(mod, deltaPrev))

		next := subVec(mod, Av, scaleVec(mod, alpha, vCur))
		next = subVec(mod, next, scaleVec(mod, beta, vPrev))

		vPrev, vCur, deltaPrev = vCur, next, delta
		if isZeroVec(vCur) {
			break
		}
	}
	if vecEqual(op.MulVec(x), b) {
		return x, nil
	}
	return nil, ErrIterationLimit
}

func mustInv(mod *bigz.Mod, a *big.Int) *big.Int {
	inv, ok := mod.Inv(new(big.Int), a)
	if !ok {
		panic("iterative: Lanczos encountered a non-invertible discrepancy")
	}
	return inv
}
