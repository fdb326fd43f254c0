// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPopReturnsAscendingOrder(t *testing.T) {
	h := New()
	h.Push(5)
	h.Push(1)
	h.Push(3)
	h.Push(2)
	h.Push(4)

	var got []int64
	for h.Len() > 0 {
		_, score := h.Pop()
		got = append(got, score)
	}
	require.Equal(t, []int64{1, 2, 3, 4, 5}, got)
}

func TestAdjustReprioritises(t *testing.T) {
	h := New()
	a := h.Push(10)
	b := h.Push(20)
	h.Push(30)

	h.Adjust(b, 1)
	idx, score := h.Peek()
	require.Equal(t, b, idx)
	require.Equal(t, int64(1), score)

	h.Adjust(a, 0)
	idx, score = h.Peek()
	require.Equal(t, a, idx)
	require.Equal(t, int64(0), score)
}

func TestRemove(t *testing.T) {
	h := New()
	a := h.Push(1)
	b := h.Push(2)
	h.Push(3)

	h.Remove(a)
	require.Equal(t, 2, h.Len())

	idx, score := h.Pop()
	require.Equal(t, b, idx)
	require.Equal(t, int64(2), score)
}
