// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gonum.org/v1/exact/bigz"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func denseMod(mod *bigz.Mod, rows [][]int64) *SM {
	dense := make([][]*big.Int, len(rows))
	for i, r := range rows {
		dense[i] = make([]*big.Int, len(r))
		for j, v := range r {
			dense[i][j] = bi(v)
		}
	}
	return FromDense(int64(len(rows)), int64(len(rows[0])), mod, dense)
}

func TestSolvePrime(t *testing.T) {
	mod := bigz.ModUint64(11)
	A := denseMod(mod, [][]int64{
		{1, 2, 3},
		{0, 1, 4},
		{5, 6, 0},
	})
	b := []*big.Int{bi(1), bi(2), bi(3)}

	x, ok, err := Solve(A, b)
	require.NoError(t, err)
	require.True(t, ok)

	got := A.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])), "row %d: got %v want %v", i, got[i], b[i])
	}
}

func TestCanSolveUnderdetermined(t *testing.T) {
	mod := bigz.ModUint64(13)
	// Row 2 = 2*Row 1, so the system is consistent but rank-deficient.
	A := denseMod(mod, [][]int64{
		{1, 1, 1},
		{2, 2, 2},
		{0, 1, 2},
	})
	b := []*big.Int{bi(3), bi(6), bi(5)}

	x, ok, err := CanSolve(A, b)
	require.NoError(t, err)
	require.True(t, ok)

	got := A.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])))
	}
}

func TestCanSolveInconsistent(t *testing.T) {
	mod := bigz.ModUint64(13)
	A := denseMod(mod, [][]int64{
		{1, 1, 1},
		{2, 2, 2},
	})
	b := []*big.Int{bi(3), bi(7)} // inconsistent: row2 should be 2*row1's rhs

	_, ok, err := CanSolve(A, b)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFFLUDetBareissMatchesCofactor(t *testing.T) {
	A := FromDense(3, 3, nil, [][]*big.Int{
		{bi(2), bi(0), bi(1)},
		{bi(1), bi(3), bi(2)},
		{bi(0), bi(1), bi(4)},
	})
	got := DetBareiss(A)
	want := DetCofactor(A)
	require.Equal(t, 0, got.Cmp(want), "DetBareiss = %v, DetCofactor = %v", got, want)
}

func TestHowellFormIsInHNF(t *testing.T) {
	n := bi(12)
	A := FromDense(2, 2, nil, [][]*big.Int{
		{bi(4), bi(6)},
		{bi(2), bi(8)},
	})
	H := HowellForm(A, n)
	require.True(t, IsInHNF(H), "HowellForm output must satisfy IsInHNF")
}
