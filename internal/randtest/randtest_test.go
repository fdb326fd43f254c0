// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randtest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSupportDistinctAndSorted(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	s := Support(r, 5, 20)
	require.Len(t, s, 5)
	seen := make(map[int64]bool)
	for i, v := range s {
		require.GreaterOrEqual(t, v, int64(0))
		require.Less(t, v, int64(20))
		require.False(t, seen[v], "duplicate index %d", v)
		seen[v] = true
		if i > 0 {
			require.Less(t, s[i-1], v, "must be ascending")
		}
	}
}

func TestBitsHasRequestedBitLength(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	v := Bits(r, 10)
	require.Equal(t, 10, v.BitLen())
}

func TestNonZeroIsNeverZero(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		v := NonZero(r, 8)
		require.NotEqual(t, 0, v.Sign())
	}
}

func TestPrimeIsPrime(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	p := Prime(r, 16)
	require.True(t, p.ProbablyPrime(20))
}
