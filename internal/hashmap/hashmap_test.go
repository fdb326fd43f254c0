// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashmap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	m := New[string]()
	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(3, "c")
	require.Equal(t, 3, m.Len())

	v, ok := m.Get(2)
	require.True(t, ok)
	require.Equal(t, "b", v)

	m.Delete(2)
	require.Equal(t, 2, m.Len())
	_, ok = m.Get(2)
	require.False(t, ok)
	require.False(t, m.Has(2))
	require.True(t, m.Has(1))
}

func TestSetOverwrites(t *testing.T) {
	m := New[int]()
	m.Set(5, 1)
	m.Set(5, 2)
	require.Equal(t, 1, m.Len())
	v, ok := m.Get(5)
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestGrowsPastStartCap(t *testing.T) {
	m := New[int]()
	for i := int64(0); i < 200; i++ {
		m.Set(i, int(i*2))
	}
	require.Equal(t, 200, m.Len())
	for i := int64(0); i < 200; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		require.Equal(t, int(i*2), v)
	}
}

func TestKeysAfterDeletesLeaveTombstones(t *testing.T) {
	m := New[int]()
	for i := int64(0); i < 10; i++ {
		m.Set(i, int(i))
	}
	for i := int64(0); i < 10; i += 2 {
		m.Delete(i)
	}
	keys := m.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	require.Equal(t, []int64{1, 3, 5, 7, 9}, keys)
}
