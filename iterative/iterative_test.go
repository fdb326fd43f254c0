// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/sparsemat"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func mat(mod *bigz.Mod, rows [][]int64) *sparsemat.SM {
	dense := make([][]*big.Int, len(rows))
	for i, r := range rows {
		dense[i] = make([]*big.Int, len(r))
		for j, v := range r {
			dense[i][j] = bi(v)
		}
	}
	return sparsemat.FromDense(int64(len(rows)), int64(len(rows[0])), mod, dense)
}

func vec(xs ...int64) []*big.Int {
	v := make([]*big.Int, len(xs))
	for i, x := range xs {
		v[i] = bi(x)
	}
	return v
}

func TestWiedemannSolve(t *testing.T) {
	mod := bigz.ModUint64(11)
	A := mat(mod, [][]int64{
		{2, 0, 1},
		{0, 3, 1},
		{1, 1, 1},
	})
	op := FromSparse(A)
	b := vec(1, 2, 3)

	x, err := Solve(op, b, 20)
	require.NoError(t, err)

	got := op.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])), "row %d", i)
	}
}

func TestWiedemannNullvector(t *testing.T) {
	mod := bigz.ModUint64(11)
	// Row 2 = 2*Row 1, so the matrix is singular.
	A := mat(mod, [][]int64{
		{1, 1, 1},
		{2, 2, 2},
		{0, 1, 2},
	})
	op := FromSparse(A)

	i := 0
	seeds := [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3}, {3, 1, 2}, {2, 2, 1}, {5, 3, 7}, {4, 6, 1}}
	randVec := func() []*big.Int {
		v := vec(seeds[i%len(seeds)]...)
		i++
		return v
	}

	var n []*big.Int
	var err error
	for attempt := 0; attempt < len(seeds); attempt++ {
		n, err = Nullvector(op, randVec, 25)
		if err == nil {
			break
		}
	}
	require.NoError(t, err)

	Mn := op.MulVec(n)
	allZero := true
	for _, c := range Mn {
		if mod.Reduce(c).Sign() != 0 {
			allZero = false
		}
	}
	require.True(t, allZero, "Mn must be zero, got %v", Mn)

	nonTrivial := false
	for _, c := range n {
		if mod.Reduce(c).Sign() != 0 {
			nonTrivial = true
		}
	}
	require.True(t, nonTrivial, "nullvector must not be all-zero")
}

func TestLanczosSolve(t *testing.T) {
	mod := bigz.ModUint64(13)
	A := mat(mod, [][]int64{
		{4, 1},
		{1, 3},
	})
	op := FromSparse(A)
	b := vec(5, 4)
	v0 := vec(1, 0)

	x, err := LanczosSolve(op, b, v0, 20)
	require.NoError(t, err)

	got := op.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])), "row %d", i)
	}
}

func TestNullspaceFindsKernel(t *testing.T) {
	mod := bigz.ModUint64(11)
	A := mat(mod, [][]int64{
		{1, 1, 1},
		{2, 2, 2},
		{0, 1, 2},
	})
	op := FromSparse(A)

	i := 0
	seeds := [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3}, {3, 1, 2}, {2, 2, 1}}
	randVec := func() []*big.Int {
		v := vec(seeds[i%len(seeds)]...)
		i++
		return v
	}

	basis := Nullspace(op, randVec, 25, 10)
	require.Len(t, basis, 1)

	Mv := op.MulVec(basis[0])
	for _, c := range Mv {
		require.Equal(t, 0, mod.Reduce(c).Sign(), "basis vector must be in the kernel")
	}
}

func TestBlockWiedemannSolve(t *testing.T) {
	mod := bigz.ModUint64(11)
	A := mat(mod, [][]int64{
		{2, 0, 1},
		{0, 3, 1},
		{1, 1, 1},
	})
	op := FromSparse(A)
	b := vec(1, 2, 3)

	i := 0
	seeds := [][]int64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3},
		{3, 1, 2}, {2, 2, 1}, {5, 3, 7}, {4, 6, 1},
		{6, 2, 3}, {1, 5, 4}, {7, 1, 1}, {2, 3, 5},
	}
	randVec := func() []*big.Int {
		v := vec(seeds[i%len(seeds)]...)
		i++
		return v
	}

	x, err := BlockWiedemannSolve(op, b, 2, 10, randVec)
	require.NoError(t, err)

	got := op.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])), "row %d", i)
	}
}

func TestBlockLanczosSolve(t *testing.T) {
	mod := bigz.ModUint64(13)
	A := mat(mod, [][]int64{
		{4, 1},
		{1, 3},
	})
	op := FromSparse(A)
	b := vec(5, 4)

	i := 0
	seeds := [][]int64{{1, 0}, {0, 1}, {1, 1}, {2, 3}, {3, 2}, {1, 4}}
	randVec := func() []*big.Int {
		v := vec(seeds[i%len(seeds)]...)
		i++
		return v
	}

	x, err := BlockLanczosSolve(op, b, 2, 20, randVec)
	require.NoError(t, err)

	got := op.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])), "row %d", i)
	}
}

func TestBerlekampMasseyRecoversLinearRecurrence(t *testing.T) {
	mod := bigz.ModUint64(97)
	// s[i] = 2 for all i satisfies s[i] - 2*s[i-1] + s[i-2] = 0 for i>=2,
	// so BerlekampMassey should find a short annihilating polynomial.
	s := vec(2, 2, 2, 2, 2, 2)
	C := BerlekampMassey(mod, s)
	require.NotEmpty(t, C)

	for i := len(C) - 1; i < len(s); i++ {
		acc := new(big.Int)
		for j, c := range C {
			acc.Add(acc, new(big.Int).Mul(c, s[i-j]))
		}
		require.Equal(t, 0, mod.Reduce(acc).Sign(), "recurrence must annihilate s at i=%d", i)
	}
}
