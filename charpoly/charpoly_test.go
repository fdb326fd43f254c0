// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charpoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/densemat"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func fromInts(mod *bigz.Mod, rows [][]int64) *densemat.DM {
	dense := make([][]*big.Int, len(rows))
	for i, r := range rows {
		dense[i] = make([]*big.Int, len(r))
		for j, v := range r {
			dense[i][j] = bi(v)
		}
	}
	return densemat.FromRows(int64(len(rows)), int64(len(rows[0])), mod, dense)
}

func TestTrace(t *testing.T) {
	mod := bigz.ModUint64(11)
	A := fromInts(mod, [][]int64{
		{2, 1},
		{1, 2},
	})
	require.Equal(t, 0, Trace(A).Cmp(bi(4)))
}

func TestCharPolyQuadratic(t *testing.T) {
	// A = [[2,1],[1,2]]: tr=4, det=3, so x^2 - 4x + 3.
	mod := bigz.ModUint64(11)
	A := fromInts(mod, [][]int64{
		{2, 1},
		{1, 2},
	})
	coef, err := CharPoly(A)
	require.NoError(t, err)
	require.Len(t, coef, 3)
	require.Equal(t, 0, coef[2].Cmp(bi(1)), "leading coefficient must be monic")
	require.Equal(t, 0, mod.Reduce(coef[0]).Cmp(mod.Reduce(bi(3))), "constant term = det(A)")
	require.Equal(t, 0, mod.Reduce(coef[1]).Cmp(mod.Reduce(bi(-4))), "linear term = -trace(A)")
}

func TestCharPolySatisfiesCayleyHamilton(t *testing.T) {
	mod := bigz.ModUint64(13)
	A := fromInts(mod, [][]int64{
		{1, 2, 0},
		{0, 1, 3},
		{4, 0, 1},
	})
	coef, err := CharPoly(A)
	require.NoError(t, err)
	require.Len(t, coef, 4)

	// Evaluate p(A) = sum coef[k]*A^k and verify it is the zero matrix.
	n := A.R
	acc := densemat.New(n, n, mod)
	Ak := densemat.New(n, n, mod)
	for i := int64(0); i < n; i++ {
		Ak.Set(i, i, bi(1))
	}
	for k := 0; k < len(coef); k++ {
		scaled := densemat.Scale(Ak, coef[k])
		acc = densemat.Add(acc, scaled)
		if k+1 < len(coef) {
			var err error
			Ak, err = densemat.Mul(Ak, A)
			require.NoError(t, err)
		}
	}
	for i := int64(0); i < n; i++ {
		for j := int64(0); j < n; j++ {
			require.Equal(t, 0, mod.Reduce(acc.At(i, j)).Sign(), "p(A)[%d][%d] must be zero", i, j)
		}
	}
}

// TestMinPolyOnCompanionMatrix uses the companion matrix of
// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6, probed at e0: since the pair
// (A, e0) is cyclic, the recovered recurrence must equal the full
// characteristic polynomial, letting this check Cayley-Hamilton-style
// annihilation exactly rather than just divisibility.
func TestMinPolyOnCompanionMatrix(t *testing.T) {
	mod := bigz.ModUint64(101)
	A := fromInts(mod, [][]int64{
		{0, 1, 0},
		{0, 0, 1},
		{6, -11, 6},
	})

	e0 := vec3(1, 0, 0)
	randVec := func() []*big.Int { return e0 }

	m := MinPoly(A, randVec)
	require.Len(t, m, 4)
	require.Equal(t, 0, mod.Reduce(m[3]).Cmp(bi(1)), "must be monic at the top degree")

	n := A.R
	acc := densemat.New(n, n, mod)
	Ak := densemat.New(n, n, mod)
	for k := int64(0); k < n; k++ {
		Ak.Set(k, k, bi(1))
	}
	for k := 0; k < len(m); k++ {
		scaled := densemat.Scale(Ak, m[k])
		acc = densemat.Add(acc, scaled)
		if k+1 < len(m) {
			var err error
			Ak, err = densemat.Mul(Ak, A)
			require.NoError(t, err)
		}
	}
	for i := int64(0); i < n; i++ {
		for j := int64(0); j < n; j++ {
			require.Equal(t, 0, mod.Reduce(acc.At(i, j)).Sign(), "m(A)[%d][%d] must be zero", i, j)
		}
	}
}

func vec3(a, b, c int64) []*big.Int { return []*big.Int{bi(a), bi(b), bi(c)} }
