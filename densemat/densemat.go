// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package densemat implements a dense big-integer matrix over Z/nZ: a
// reduce-after-op wrapper over a row-pointer-indirected integer array, so
// that window views can share storage with their parent, following a
// uniform "write unreduced, then _reduce" discipline on every public
// operation's exit.
package densemat

import (
	"errors"
	"math/big"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/internal/pool"
)

var (
	ErrShape           = errors.New("densemat: shape mismatch")
	ErrModulusMismatch = errors.New("densemat: modulus mismatch")
	ErrNonSquare       = errors.New("densemat: matrix is not square")
	ErrSingular        = errors.New("densemat: matrix is singular")
	ErrNonInvertible   = errors.New("densemat: pivot is not invertible")
)

// DM is a dense matrix over Z/nZ (Mod == nil means over Z): R row pointers
// into independently-owned []*big.Int rows, so a Window can alias a
// parent's backing rows directly.
type DM struct {
	R, C int64
	Mod  *bigz.Mod
	rows [][]*big.Int
}

// New allocates an R×C all-zero matrix.
func New(r, c int64, mod *bigz.Mod) *DM {
	rows := make([][]*big.Int, r)
	for i := range rows {
		row := make([]*big.Int, c)
		for j := range row {
			row[j] = big.NewInt(0)
		}
		rows[i] = row
	}
	return &DM{R: r, C: c, Mod: mod, rows: rows}
}

// FromRows wraps an existing row-major big.Int array without copying.
func FromRows(r, c int64, mod *bigz.Mod, rows [][]*big.Int) *DM {
	return &DM{R: r, C: c, Mod: mod, rows: rows}
}

func (m *DM) At(i, j int64) *big.Int { return m.rows[i][j] }

func (m *DM) Set(i, j int64, v *big.Int) { m.rows[i][j] = v }

func (m *DM) Row(i int64) []*big.Int { return m.rows[i] }

// Clone returns a deep copy.
func (m *DM) Clone() *DM {
	out := New(m.R, m.C, m.Mod)
	for i := int64(0); i < m.R; i++ {
		for j := int64(0); j < m.C; j++ {
			out.rows[i][j] = new(big.Int).Set(m.rows[i][j])
		}
	}
	return out
}

// Window returns a view of rows [r1,r2) and columns [c1,c2) that aliases
// the parent's storage: mutating the view's entries mutates the parent.
func (m *DM) Window(r1, c1, r2, c2 int64) *DM {
	rows := make([][]*big.Int, r2-r1)
	for i := range rows {
		rows[i] = m.rows[r1+int64(i)][c1:c2]
	}
	return &DM{R: r2 - r1, C: c2 - c1, Mod: m.Mod, rows: rows}
}

func checkSameShape(a, b *DM) {
	if a.R != b.R || a.C != b.C {
		panic(ErrShape)
	}
	if (a.Mod == nil) != (b.Mod == nil) || (a.Mod != nil && a.Mod.N().Cmp(b.Mod.N()) != 0) {
		panic(ErrModulusMismatch)
	}
}

// reduce parallelises a per-row scalar-mod over a worker pool sized by
// internal/pool.SizeHeuristic, restoring the "entries in [0,n)" invariant.
func (m *DM) reduce() {
	if m.Mod == nil {
		return
	}
	limit := pool.SizeHeuristic(m.Mod.N().BitLen(), int(m.R), int(m.C))
	pool.New(limit).RunRange(int(m.R), limit, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := m.rows[i]
			for j := range row {
				row[j] = m.Mod.Reduce(row[j])
			}
		}
	})
}

// Add returns a+b, entrywise, reduced.
func Add(a, b *DM) *DM {
	checkSameShape(a, b)
	out := New(a.R, a.C, a.Mod)
	for i := int64(0); i < a.R; i++ {
		for j := int64(0); j < a.C; j++ {
			out.rows[i][j] = new(big.Int).Add(a.rows[i][j], b.rows[i][j])
		}
	}
	out.reduce()
	return out
}

// Sub returns a-b, entrywise, reduced.
func Sub(a, b *DM) *DM {
	checkSameShape(a, b)
	out := New(a.R, a.C, a.Mod)
	for i := int64(0); i < a.R; i++ {
		for j := int64(0); j < a.C; j++ {
			out.rows[i][j] = new(big.Int).Sub(a.rows[i][j], b.rows[i][j])
		}
	}
	out.reduce()
	return out
}

// Scale returns c·a, reduced.
func Scale(a *DM, c *big.Int) *DM {
	out := New(a.R, a.C, a.Mod)
	for i := int64(0); i < a.R; i++ {
		for j := int64(0); j < a.C; j++ {
			out.rows[i][j] = new(big.Int).Mul(a.rows[i][j], c)
		}
	}
	out.reduce()
	return out
}

// Mul computes a·b via threaded classical multiplication: rows of the
// output are split across a worker pool exactly as internal/pool's
// RunRange documents, each goroutine owning a disjoint row range.
func Mul(a, b *DM) (*DM, error) {
	if a.C != b.R {
		return nil, ErrShape
	}
	if (a.Mod == nil) != (b.Mod == nil) || (a.Mod != nil && a.Mod.N().Cmp(b.Mod.N()) != 0) {
		return nil, ErrModulusMismatch
	}
	out := New(a.R, b.C, a.Mod)
	limit := pool.SizeHeuristic(modBits(a.Mod), int(a.R), int(b.C))
	pool.New(limit).RunRange(int(a.R), limit, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for k := int64(0); k < a.C; k++ {
				aik := a.rows[i][k]
				if aik.Sign() == 0 {
					continue
				}
				brow := b.rows[k]
				orow := out.rows[i]
				for j := int64(0); j < b.C; j++ {
					orow[j].Add(orow[j], new(big.Int).Mul(aik, brow[j]))
				}
			}
		}
	})
	out.reduce()
	return out, nil
}

// Sqr returns a·a.
func Sqr(a *DM) (*DM, error) { return Mul(a, a) }

func modBits(mod *bigz.Mod) int {
	if mod == nil {
		return 64
	}
	return mod.N().BitLen()
}

// Transpose returns aᵀ.
func (m *DM) Transpose() *DM {
	out := New(m.C, m.R, m.Mod)
	for i := int64(0); i < m.R; i++ {
		for j := int64(0); j < m.C; j++ {
			out.rows[j][i] = new(big.Int).Set(m.rows[i][j])
		}
	}
	return out
}

// MulVec computes m·x.
func (m *DM) MulVec(x []*big.Int) []*big.Int {
	out := make([]*big.Int, m.R)
	for i := int64(0); i < m.R; i++ {
		acc := big.NewInt(0)
		for j := int64(0); j < m.C; j++ {
			acc.Add(acc, new(big.Int).Mul(m.rows[i][j], x[j]))
		}
		if m.Mod != nil {
			acc = m.Mod.Reduce(acc)
		}
		out[i] = acc
	}
	return out
}
