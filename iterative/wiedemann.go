// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"errors"
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// ErrIterationLimit is returned when a solver exhausts its probe/candidate
// budget without finding a verified solution.
var ErrIterationLimit = errors.New("iterative: exhausted iteration budget")

// BerlekampMassey computes the shortest linear recurrence of a sequence s
// over Z/pZ (p prime): the textbook two-sequence recurrence with degree
// tracking and discrepancy updates. The result is the connection
// polynomial C of length L+1, L being the recurrence length: C[0] = 1 and
// s[i] + C[1]·s[i-1] + ... + C[L]·s[i-L] = 0 for every i >= L. Reversing C
// gives the minimal polynomial of the sequence.
func BerlekampMassey(mod *bigz.Mod, s []*big.Int) []*big.Int {
	C := []*big.Int{big.NewInt(1)}
	B := []*big.Int{big.NewInt(1)}
	L, m, b := 0, 1, big.NewInt(1)

	for i := 0; i < len(s); i++ {
		delta := new(big.Int).Set(s[i])
		for j := 1; j <= L; j++ {
			delta.Add(delta, new(big.Int).Mul(C[j], s[i-j]))
		}
		delta = mod.Reduce(delta)
		if delta.Sign() == 0 {
			m++
			continue
		}
		bInv, ok := mod.Inv(new(big.Int), b)
		if !ok {
			// b shouldn't ever be a non-unit mod a prime unless it's 0,
			// which can't happen since it was itself a non-zero delta.
			panic("iterative: Berlekamp-Massey encountered a non-invertible discrepancy")
		}
		coef := mod.Mul(new(big.Int), delta, bInv)
		newC := subScaledShift(mod, C, coef, m, B)
		if 2*L <= i {
			T := C
			L, m, b = i+1-L, 1, delta
			B = T
			C = newC
		} else {
			C = newC
			m++
		}
	}
	return C
}

// subScaledShift returns dst - coef·x^shift·src, extending dst as needed.
func subScaledShift(mod *bigz.Mod, dst []*big.Int, coef *big.Int, shift int, src []*big.Int) []*big.Int {
	n := len(dst)
	if shift+len(src) > n {
		n = shift + len(src)
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		var d *big.Int
		if i < len(dst) {
			d = dst[i]
		} else {
			d = big.NewInt(0)
		}
		if i >= shift && i-shift < len(src) {
			d = new(big.Int).Sub(d, new(big.Int).Mul(coef, src[i-shift]))
		}
		out[i] = mod.Reduce(d)
	}
	return out
}

// krylovSequence returns b, M·b, M²·b, ..., M^(count-1)·b.
func krylovSequence(op Op, b []*big.Int, count int) [][]*big.Int {
	seq := make([][]*big.Int, count)
	cur := b
	for j := 0; j < count; j++ {
		seq[j] = cur
		if j+1 < count {
			cur = op.MulVec(cur)
		}
	}
	return seq
}

// Solve implements scalar Wiedemann for square op: it forms the length
// 2·Rows()+1 sequence s_j = (Mʲb)_probe for a handful of candidate probe
// rows, runs Berlekamp–Massey on each, and whenever the minimal
// polynomial's constant term is non-zero, assembles
// x = −C(0)⁻¹·Σⱼ C_{j+1}·Mʲ·b and verifies M·x = b before returning.
func Solve(op Op, b []*big.Int, maxProbes int) ([]*big.Int, error) {
	if op.Rows() != op.Cols() {
		panic("iterative: scalar Wiedemann requires a square operator")
	}
	r := op.Rows()
	mod := op.Mod()
	seqLen := int(2*r) + 1
	w := krylovSequence(op, b, seqLen)

	probes := maxProbes
	if int64(probes) > r {
		probes = int(r)
	}
	for probe := 0; probe < probes; probe++ {
		s := make([]*big.Int, seqLen)
		for j := range s {
			s[j] = w[j][probe]
		}
		conn := BerlekampMassey(mod, s)
		// Reverse the connection polynomial into the minimal polynomial C.
		C := make([]*big.Int, len(conn))
		for k, c := range conn {
			C[len(conn)-1-k] = c
		}
		if C[0].Sign() == 0 {
			continue
		}
		c0Inv, ok := mod.Inv(new(big.Int), C[0])
		if !ok {
			continue
		}
		x := zeroVec(op.Cols())
		for j := 0; j+1 < len(C); j++ {
			if C[j+1].Sign() == 0 {
				continue
			}
			x = axpy(mod, x, C[j+1], w[j])
		}
		x = scaleVec(mod, new(big.Int).Neg(c0Inv), x)
		if vecEqual(op.MulVec(x), b) {
			return x, nil
		}
	}
	return nil, ErrIterationLimit
}

// Nullvector finds a non-zero x with M·x = 0, with failure probability
// bounded by the field size: pick random y, set b = M·y, run the same
// recipe on the sequence starting at b, and the resulting vector (if
// Solve succeeds with a non-trivial result) lies in ker M.
func Nullvector(op Op, randVec func() []*big.Int, maxProbes int) ([]*big.Int, error) {
	y := randVec()
	b := op.MulVec(y)
	x, err := Solve(op, b, maxProbes)
	if err != nil {
		return nil, err
	}
	mod := op.Mod()
	ker := subVec(mod, y, x)
	if isZeroVec(ker) || !isZeroVec(op.MulVec(ker)) {
		return nil, ErrIterationLimit
	}
	return ker, nil
}

func vecEqual(u, v []*big.Int) bool {
	if len(u) != len(v) {
		return false
	}
	for i := range u {
		if u[i].Cmp(v[i]) != 0 {
			return false
		}
	}
	return true
}
