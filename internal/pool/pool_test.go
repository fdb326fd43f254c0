// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunRangeCoversEveryIndexExactlyOnce(t *testing.T) {
	p := New(4)
	const n = 97

	var mu sync.Mutex
	seen := make([]int, 0, n)
	p.RunRange(n, 4, func(lo, hi int) {
		mu.Lock()
		for i := lo; i < hi; i++ {
			seen = append(seen, i)
		}
		mu.Unlock()
	})

	require.Len(t, seen, n)
	sort.Ints(seen)
	for i := 0; i < n; i++ {
		require.Equal(t, i, seen[i])
	}
}

func TestRunRangeInlineForSmallWorkerCount(t *testing.T) {
	p := New(4)
	var calls int
	p.RunRange(10, 1, func(lo, hi int) {
		calls++
		require.Equal(t, 0, lo)
		require.Equal(t, 10, hi)
	})
	require.Equal(t, 1, calls)
}

func TestRunRangeEmptyRange(t *testing.T) {
	p := New(4)
	called := false
	p.RunRange(0, 4, func(lo, hi int) { called = true })
	require.False(t, called)
}

func TestSizeHeuristicClamps(t *testing.T) {
	require.Equal(t, 0, SizeHeuristic(8, 4, 4))
	require.LessOrEqual(t, SizeHeuristic(100000, 4, 4), 4)
	require.GreaterOrEqual(t, SizeHeuristic(100000, 4, 4), 0)
}
