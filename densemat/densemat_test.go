// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemat

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gonum.org/v1/exact/bigz"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func fromInts(mod *bigz.Mod, rows [][]int64) *DM {
	dense := make([][]*big.Int, len(rows))
	for i, r := range rows {
		dense[i] = make([]*big.Int, len(r))
		for j, v := range r {
			dense[i][j] = bi(v)
		}
	}
	return FromRows(int64(len(rows)), int64(len(rows[0])), mod, dense)
}

func TestMulAndTranspose(t *testing.T) {
	mod := bigz.ModUint64(97)
	A := fromInts(mod, [][]int64{{1, 2}, {3, 4}})
	B := fromInts(mod, [][]int64{{5, 6}, {7, 8}})

	AB, err := Mul(A, B)
	require.NoError(t, err)
	require.Equal(t, 0, AB.At(0, 0).Cmp(bi(19)))
	require.Equal(t, 0, AB.At(0, 1).Cmp(bi(22)))
	require.Equal(t, 0, AB.At(1, 0).Cmp(bi(43)))
	require.Equal(t, 0, AB.At(1, 1).Cmp(bi(50)))

	At := A.Transpose()
	require.Equal(t, 0, At.At(0, 1).Cmp(A.At(1, 0)))
}

func TestSolveDelegatesToSparse(t *testing.T) {
	mod := bigz.ModUint64(11)
	A := fromInts(mod, [][]int64{{1, 2}, {3, 5}})
	b := []*big.Int{bi(1), bi(2)}

	x, ok, err := A.Solve(b)
	require.NoError(t, err)
	require.True(t, ok)

	got := A.MulVec(x)
	for i := range got {
		require.Equal(t, 0, mod.Reduce(got[i]).Cmp(mod.Reduce(b[i])))
	}
}

func TestWindowAliasesParent(t *testing.T) {
	mod := bigz.ModUint64(13)
	A := fromInts(mod, [][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	w := A.Window(1, 1, 3, 3)
	w.Set(0, 0, bi(100))
	require.Equal(t, 0, A.At(1, 1).Cmp(bi(100)), "Window must alias its parent's storage")
}
