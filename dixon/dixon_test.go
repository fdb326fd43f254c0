// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dixon

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

func vec(xs ...int64) []*big.Int {
	v := make([]*big.Int, len(xs))
	for i, x := range xs {
		v[i] = bi(x)
	}
	return v
}

func TestSolveIntegerSystem(t *testing.T) {
	// x + 2y = 5, 3x + 4y = 11  =>  x=1, y=2.
	A := mat([][]int64{
		{1, 2},
		{3, 4},
	})
	b := vec(5, 11)

	x, ok, err := Solve(A, b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, x[0].Cmp(bi(1)))
	require.Equal(t, 0, x[1].Cmp(bi(2)))
}

func TestSolveDenRationalSystem(t *testing.T) {
	// 2x + y = 1, x - y = 1  =>  x=2/3, y=-1/3.
	A := mat([][]int64{
		{2, 1},
		{1, -1},
	})
	b := vec(1, 1)

	num, den, ok, err := SolveDen(A, b)
	require.NoError(t, err)
	require.True(t, ok)

	// A·num must equal den·b exactly.
	for i := 0; i < 2; i++ {
		lhs := new(big.Int)
		for _, e := range A.Row(int64(i)).Entries() {
			lhs.Add(lhs, new(big.Int).Mul(e.Value, num[e.Index]))
		}
		rhs := new(big.Int).Mul(den, b[i])
		require.Equal(t, 0, lhs.Cmp(rhs), "row %d: A*num=%v, den*b=%v", i, lhs, rhs)
	}
}

func TestSolveInconsistentSystem(t *testing.T) {
	A := mat([][]int64{
		{1, 1},
		{2, 2},
	})
	b := vec(1, 3) // inconsistent: row2 should equal 2*row1's rhs.

	_, ok, err := Solve(A, b)
	require.NoError(t, err)
	require.False(t, ok)
}
