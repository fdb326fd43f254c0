// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iterative implements the black-box Krylov-subspace solvers:
// scalar Wiedemann (with Berlekamp–Massey), a block-Wiedemann reduction,
// symmetrised scalar Lanczos, and a block-Lanczos reduction, plus the
// random-nullvector and nullspace-assembly loops built on top of them.
// Every solver only ever calls M·x and Mᵀ·x — it never looks at M's
// internal representation, which is the point of a black-box method.
package iterative

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/densemat"
	"gonum.org/v1/exact/sparsemat"
)

// Op is the black-box matrix operator every solver in this package targets:
// matrix-vector and transpose-matrix-vector products over a fixed prime
// modulus.
type Op interface {
	Rows() int64
	Cols() int64
	Mod() *bigz.Mod
	MulVec(x []*big.Int) []*big.Int
	MulVecT(x []*big.Int) []*big.Int
}

type sparseOp struct {
	m *sparsemat.SM
	t *sparsemat.SM
}

// FromSparse adapts a *sparsemat.SM (over a prime modulus) into an Op,
// precomputing the transpose once.
func FromSparse(m *sparsemat.SM) Op {
	return &sparseOp{m: m, t: m.Transpose()}
}

func (o *sparseOp) Rows() int64               { return o.m.R }
func (o *sparseOp) Cols() int64               { return o.m.C }
func (o *sparseOp) Mod() *bigz.Mod             { return o.m.Mod }
func (o *sparseOp) MulVec(x []*big.Int) []*big.Int  { return o.m.MulVec(x) }
func (o *sparseOp) MulVecT(x []*big.Int) []*big.Int { return o.t.MulVec(x) }

type denseOp struct {
	m *densemat.DM
	t *densemat.DM
}

// FromDense adapts a *densemat.DM into an Op.
func FromDense(m *densemat.DM) Op {
	return &denseOp{m: m, t: m.Transpose()}
}

func (o *denseOp) Rows() int64               { return o.m.R }
func (o *denseOp) Cols() int64               { return o.m.C }
func (o *denseOp) Mod() *bigz.Mod             { return o.m.Mod }
func (o *denseOp) MulVec(x []*big.Int) []*big.Int  { return o.m.MulVec(x) }
func (o *denseOp) MulVecT(x []*big.Int) []*big.Int { return o.t.MulVec(x) }

func zeroVec(n int64) []*big.Int {
	v := make([]*big.Int, n)
	for i := range v {
		v[i] = big.NewInt(0)
	}
	return v
}

func dot(mod *bigz.Mod, u, v []*big.Int) *big.Int {
	acc := big.NewInt(0)
	for i := range u {
		acc.Add(acc, new(big.Int).Mul(u[i], v[i]))
	}
	return mod.Reduce(acc)
}

func axpy(mod *bigz.Mod, dst []*big.Int, c *big.Int, x []*big.Int) []*big.Int {
	out := make([]*big.Int, len(dst))
	for i := range dst {
		out[i] = mod.Reduce(new(big.Int).Add(dst[i], new(big.Int).Mul(c, x[i])))
	}
	return out
}

func scaleVec(mod *bigz.Mod, c *big.Int, x []*big.Int) []*big.Int {
	out := make([]*big.Int, len(x))
	for i := range x {
		out[i] = mod.Reduce(new(big.Int).Mul(c, x[i]))
	}
	return out
}

func subVec(mod *bigz.Mod, u, v []*big.Int) []*big.Int {
	out := make([]*big.Int, len(u))
	for i := range u {
		out[i] = mod.Reduce(new(big.Int).Sub(u[i], v[i]))
	}
	return out
}

func isZeroVec(v []*big.Int) bool {
	for _, x := range v {
		if x.Sign() != 0 {
			return false
		}
	}
	return true
}
