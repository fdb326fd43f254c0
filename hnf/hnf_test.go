// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hnf

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gonum.org/v1/exact/sparsemat"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func mat(rows [][]int64) *sparsemat.SM {
	dense := make([][]*big.Int, len(rows))
	for i, r := range rows {
		dense[i] = make([]*big.Int, len(r))
		for j, v := range r {
			dense[i][j] = bi(v)
		}
	}
	return sparsemat.FromDense(int64(len(rows)), int64(len(rows[0])), nil, dense)
}

func TestClassicalXGCDAgree(t *testing.T) {
	A := mat([][]int64{
		{3, 1},
		{5, 2},
	})
	hc := Classical(A.Clone())
	hx := XGCD(A.Clone())

	require.True(t, IsInHNF(hc))
	require.True(t, IsInHNF(hx))

	dc, dx := hc.ToDense(), hx.ToDense()
	for i := range dc {
		for j := range dc[i] {
			require.Equal(t, 0, dc[i][j].Cmp(dx[i][j]), "Classical/XGCD disagree at (%d,%d): %v vs %v", i, j, dc[i][j], dx[i][j])
		}
	}
}

func TestMinorsIsInHNF(t *testing.T) {
	A := mat([][]int64{
		{2, 4, 4},
		{0, 3, 3},
		{0, 0, 5},
	})
	H := Minors(A)
	require.True(t, IsInHNF(H))
}

func TestModularEldivIsInHNF(t *testing.T) {
	A := mat([][]int64{
		{4, 6},
		{2, 8},
	})
	H := ModularEldiv(A, bi(12))
	require.True(t, IsInHNF(H))
}

func TestDetDivisorDividesDeterminant(t *testing.T) {
	A := mat([][]int64{
		{2, 0},
		{0, 3},
	})
	div := DetDivisor(A)
	det := sparsemat.DetBareiss(A)
	q, rem := new(big.Int), new(big.Int)
	q.QuoRem(det, div, rem)
	require.Equal(t, 0, rem.Sign(), "DetDivisor must divide the determinant")
}
