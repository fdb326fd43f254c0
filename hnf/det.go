// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hnf

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/sparsemat"
	"gonum.org/v1/exact/sparsevec"
)

// DetDivisor returns a cheap, guaranteed-exact divisor of det(A): the gcd
// of every row's content. Because det(A) is multilinear in the rows, any
// common factor of a row's entries also divides det(A); this is cheap
// relative to computing the determinant itself and lets
// DetModularGivenDivisor reconstruct only the cofactor det(A)/divisor.
func DetDivisor(A *sparsemat.SM) *big.Int {
	return sparsemat.DetDivisor(A)
}

// DetModularGivenDivisor computes det(A), given that divisor is already
// known to divide it, by reconstructing the cofactor k = det(A)/divisor
// via CRT over a stream of primes (skipping any prime dividing divisor)
// and returning divisor*k. Knowing divisor in advance shrinks the
// reconstruction bound from 2·Hadamard(A) to 2·Hadamard(A)/divisor, so
// fewer primes are needed than a plain multi-modular determinant.
func DetModularGivenDivisor(A *sparsemat.SM, divisor *big.Int, primeStream func() *big.Int) *big.Int {
	if divisor == nil || divisor.Sign() == 0 {
		divisor = big.NewInt(1)
	}
	bound := new(big.Int).Mul(sparsemat.HadamardBound(A), big.NewInt(2))
	kBound := new(big.Int).Quo(bound, divisor)
	if kBound.Sign() == 0 {
		kBound = big.NewInt(1)
	}

	mod := big.NewInt(1)
	acc := big.NewInt(0)
	for mod.Cmp(kBound) < 0 {
		p := primeStream()
		if new(big.Int).Mod(divisor, p).Sign() == 0 {
			continue
		}
		am := reduceModP(A, p)
		dp := sparsemat.DetBareiss(am)
		pm := bigz.NewMod(p)
		divInv, ok := pm.Inv(new(big.Int), new(big.Int).Mod(divisor, p))
		if !ok {
			continue
		}
		kp := pm.Mul(new(big.Int), dp, divInv)
		acc = bigz.CRT(acc, mod, kp, p)
		mod = new(big.Int).Mul(mod, p)
	}
	k := bigz.SymmetricMod(acc, mod)
	return new(big.Int).Mul(k, divisor)
}

func reduceModP(A *sparsemat.SM, p *big.Int) *sparsemat.SM {
	mod := bigz.NewMod(p)
	out := sparsemat.New(A.R, A.C, mod)
	for i := int64(0); i < A.R; i++ {
		var idx []int64
		var val []*big.Int
		for _, e := range A.Row(i).Entries() {
			r := mod.Reduce(e.Value)
			if r.Sign() == 0 {
				continue
			}
			idx = append(idx, e.Index)
			val = append(val, r)
		}
		out.SetRow(i, sparsevec.FromEntries(idx, val))
	}
	return out
}
