// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/sparsevec"
)

// CRT combines two integer matrices that are residues of the same true
// integer matrix modulo m1 and m2 respectively into the unique residue
// modulo lcm(m1,m2) (here m1, m2 are coprime, so lcm = m1*m2), row by row.
func CRT(a *SM, m1 *big.Int, b *SM, m2 *big.Int) *SM {
	checkSameShape(a, b)
	out := New(a.R, a.C, nil)
	for i := int64(0); i < a.R; i++ {
		out.SetRow(i, sparsevec.CRT(a.Row(i), m1, b.Row(i), m2))
	}
	return out
}

// MultiMod reduces the integer matrix m into len(primes) residue matrices,
// one per modulus.
func MultiMod(m *SM, primes []*big.Int) []*SM {
	out := make([]*SM, len(primes))
	mods := make([]*bigz.Mod, len(primes))
	for i, p := range primes {
		mods[i] = bigz.NewMod(p)
		out[i] = New(m.R, m.C, mods[i])
	}
	for i := int64(0); i < m.R; i++ {
		residues := sparsevec.MultiMod(m.Row(i), primes)
		for k := range primes {
			out[k].SetRow(i, residues[k])
		}
	}
	return out
}

// MultiCRT reconstructs the integer matrix whose residues modulo primes[k]
// are images[k], via pairwise CRT across primes.
func MultiCRT(images []*SM, primes []*big.Int) *SM {
	if len(images) == 0 {
		return New(0, 0, nil)
	}
	out := New(images[0].R, images[0].C, nil)
	for i := int64(0); i < images[0].R; i++ {
		rows := make([]*sparsevec.SV, len(images))
		for k := range images {
			rows[k] = images[k].Row(i)
		}
		out.SetRow(i, sparsevec.MultiCRT(rows, primes))
	}
	return out
}

// Content returns the gcd of every entry in row i (0 if the row is zero).
func Content(M *SM, i int64) *big.Int {
	g := big.NewInt(0)
	for _, e := range M.Row(i).Entries() {
		g.GCD(nil, nil, g, new(big.Int).Abs(e.Value))
	}
	return g
}

// Gram returns M·Mᵀ.
func Gram(M *SM) *SM {
	t := M.Transpose()
	dense := make([][]*big.Int, M.R)
	for i := int64(0); i < M.R; i++ {
		row := make([]*big.Int, M.R)
		for j := int64(0); j < M.R; j++ {
			row[j] = sparsevec.Dot(M.Mod, M.Row(i), t.Row(j))
		}
		dense[i] = row
	}
	return FromDense(M.R, M.R, M.Mod, dense)
}

// MaxBits returns the maximum bit length of any entry in M.
func MaxBits(M *SM) int {
	m := 0
	for i := int64(0); i < M.R; i++ {
		for _, e := range M.Row(i).Entries() {
			if b := e.Value.BitLen(); b > m {
				m = b
			}
		}
	}
	return m
}

// HadamardBound returns a bound N on |det(A)| via Hadamard's inequality:
// the product of each row's Euclidean norm, computed with integer ceiling
// square roots to stay exact.
func HadamardBound(A *SM) *big.Int {
	bound := big.NewInt(1)
	for i := int64(0); i < A.R; i++ {
		sumSq := big.NewInt(0)
		for _, e := range A.Row(i).Entries() {
			sumSq.Add(sumSq, new(big.Int).Mul(e.Value, e.Value))
		}
		bound.Mul(bound, ceilSqrt(sumSq))
	}
	return bound
}

// SolveBound returns a pair (N, D) such that |det(A)|·‖B‖∞ ≤ N and
// |det(A)| ≤ D, used to size the Dixon lifting bound.
func SolveBound(A *SM, bNorm *big.Int) (n, d *big.Int) {
	d = HadamardBound(A)
	n = new(big.Int).Mul(d, bNorm)
	return n, d
}

func ceilSqrt(x *big.Int) *big.Int {
	if x.Sign() <= 0 {
		return big.NewInt(1)
	}
	r := new(big.Int).Sqrt(x)
	sq := new(big.Int).Mul(r, r)
	if sq.Cmp(x) < 0 {
		r.Add(r, big.NewInt(1))
	}
	return r
}

// DetDivisor returns a divisor of det(A): the gcd of the contents of every
// row — a cheap, often loose, bound. Det_divisor and det_modular_given_divisor
// themselves live in package hnf, alongside the rest of the HNF suite they
// support.
func DetDivisor(A *SM) *big.Int {
	g := big.NewInt(0)
	for i := int64(0); i < A.R; i++ {
		g.GCD(nil, nil, g, Content(A, i))
	}
	if g.Sign() == 0 {
		return big.NewInt(1)
	}
	return g
}
