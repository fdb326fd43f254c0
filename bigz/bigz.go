// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bigz is the big-integer façade the rest of the module builds on:
// a ring context for "integers modulo n" (n a runtime big.Int, possibly
// composite) plus the handful of integer primitives — gcd/xgcd, CRT,
// rational reconstruction, and multi-modular reduce/combine — that every
// other package treats as already available.
//
// Everything here is a thin, allocation-light wrapper over math/big; no
// algorithm in this package is novel. Arbitrary-precision arithmetic is
// treated as an external collaborator rather than something the rest of
// the module builds itself, so this package is the one place that is
// deliberately stdlib-only.
package bigz

import "math/big"

// Mod is a ring context for Z/nZ. n must be ≥ 1. A Mod is immutable once
// constructed and is safe for concurrent read-only use; the modulus never
// changes for the lifetime of a matrix built over it.
type Mod struct {
	n *big.Int
}

// NewMod returns a ring context for the modulus n. It panics if n < 1,
// matching this module's panic-on-precondition-violation convention (see
// mat.ErrShape in gonum.org/v1/gonum/mat).
func NewMod(n *big.Int) *Mod {
	if n.Sign() < 1 {
		panic("bigz: modulus must be positive")
	}
	return &Mod{n: new(big.Int).Set(n)}
}

// ModUint64 is a convenience constructor for a prime or composite modulus
// that fits in a uint64.
func ModUint64(n uint64) *Mod {
	return NewMod(new(big.Int).SetUint64(n))
}

// N returns the modulus as a big.Int. The caller must not mutate the
// result.
func (m *Mod) N() *big.Int { return m.n }

// Reduce normalises z into [0, n) and returns a new big.Int; z is
// unmodified.
func (m *Mod) Reduce(z *big.Int) *big.Int {
	r := new(big.Int).Mod(z, m.n)
	return r
}

// ReduceInto normalises z into [0, n), storing the result in dst and
// returning it. dst may alias z.
func (m *Mod) ReduceInto(dst, z *big.Int) *big.Int {
	return dst.Mod(z, m.n)
}

// Add sets dst = (a + b) mod n and returns dst.
func (m *Mod) Add(dst, a, b *big.Int) *big.Int {
	dst.Add(a, b)
	return m.ReduceInto(dst, dst)
}

// Sub sets dst = (a - b) mod n and returns dst.
func (m *Mod) Sub(dst, a, b *big.Int) *big.Int {
	dst.Sub(a, b)
	return m.ReduceInto(dst, dst)
}

// Neg sets dst = (-a) mod n and returns dst.
func (m *Mod) Neg(dst, a *big.Int) *big.Int {
	dst.Neg(a)
	return m.ReduceInto(dst, dst)
}

// Mul sets dst = (a * b) mod n and returns dst.
func (m *Mod) Mul(dst, a, b *big.Int) *big.Int {
	dst.Mul(a, b)
	return m.ReduceInto(dst, dst)
}

// Inv sets dst = a⁻¹ mod n and returns (dst, true) when a is a unit mod n.
// When gcd(a,n) ≠ 1 it returns (nil, false): the non-invertible case
// callers must check for rather than treating inversion as total.
func (m *Mod) Inv(dst, a *big.Int) (*big.Int, bool) {
	g, x := GCDInv(dst, a, m.n)
	if g.Cmp(one) != 0 {
		return nil, false
	}
	return m.ReduceInto(dst, x), true
}

var one = big.NewInt(1)

// GCDInv computes g = gcd(a, n) and a modular inverse-like Bézout
// coefficient x such that a*x ≡ g (mod n), writing g into dst and
// returning (g, x). This mirrors FLINT's fmpz_gcdinv, used throughout
// Howell-form elimination to find the unit that minimises a pivot's
// leading value.
func GCDInv(dst, a, n *big.Int) (*big.Int, *big.Int) {
	x := new(big.Int)
	g := new(big.Int).GCD(x, nil, a, n)
	dst.Set(g)
	x.Mod(x, n)
	return dst, x
}

// XGCD returns (g, s, t) with g = gcd(a,b) = s*a + t*b: the
// extended-Euclidean convention the sparse-vector Gaussian-elimination
// steps build their pivot combinations from.
func XGCD(a, b *big.Int) (g, s, t *big.Int) {
	g = new(big.Int)
	s = new(big.Int)
	t = new(big.Int)
	g.GCD(s, t, a, b)
	return g, s, t
}

// FloorDiv returns the floor-division quotient of a by b (b ≠ 0): the
// convention the column-elimination step of sparse vector reduction uses.
func FloorDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, one)
	}
	return q
}

// DivExact returns a/b and reports whether the division was exact
// (remainder zero). Callers must check b != 0 themselves; DivExact panics
// on b == 0 exactly as big.Int.Div would.
func DivExact(a, b *big.Int) (*big.Int, bool) {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	return q, r.Sign() == 0
}

// Sign, IsZero, Cmp are thin re-exports kept here so callers needn't import
// math/big directly for the most common scalar predicates.
func Sign(a *big.Int) int   { return a.Sign() }
func IsZero(a *big.Int) bool { return a.Sign() == 0 }
func Cmp(a, b *big.Int) int { return a.Cmp(b) }

// Abs returns |a| as a new big.Int.
func Abs(a *big.Int) *big.Int {
	return new(big.Int).Abs(a)
}

// BitLen returns the number of bits required to represent |a|.
func BitLen(a *big.Int) int {
	return a.BitLen()
}

// MaxBits returns the maximum BitLen over a slice of big.Ints, 0 for an
// empty slice.
func MaxBits(xs []*big.Int) int {
	m := 0
	for _, x := range xs {
		if b := x.BitLen(); b > m {
			m = b
		}
	}
	return m
}
