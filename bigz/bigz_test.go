// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigz

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func TestModArithmetic(t *testing.T) {
	mod := ModUint64(11)
	require.Equal(t, 0, mod.Add(new(big.Int), bi(7), bi(9)).Cmp(bi(5)))
	require.Equal(t, 0, mod.Sub(new(big.Int), bi(3), bi(9)).Cmp(bi(5)))
	require.Equal(t, 0, mod.Mul(new(big.Int), bi(6), bi(6)).Cmp(bi(3)))
	require.Equal(t, 0, mod.Neg(new(big.Int), bi(4)).Cmp(bi(7)))
}

func TestModInv(t *testing.T) {
	mod := ModUint64(11)
	inv, ok := mod.Inv(new(big.Int), bi(7))
	require.True(t, ok)
	require.Equal(t, 0, mod.Mul(new(big.Int), bi(7), inv).Cmp(bi(1)))

	_, ok = mod.Inv(new(big.Int), bi(0))
	require.False(t, ok)
}

func TestXGCD(t *testing.T) {
	g, s, tt := XGCD(bi(240), bi(46))
	require.Equal(t, 0, g.Cmp(bi(2)))
	lhs := new(big.Int).Add(new(big.Int).Mul(bi(240), s), new(big.Int).Mul(bi(46), tt))
	require.Equal(t, 0, lhs.Cmp(g))
}

func TestFloorDiv(t *testing.T) {
	require.Equal(t, 0, FloorDiv(bi(-7), bi(2)).Cmp(bi(-4)))
	require.Equal(t, 0, FloorDiv(bi(7), bi(2)).Cmp(bi(3)))
}

func TestDivExact(t *testing.T) {
	q, ok := DivExact(bi(12), bi(3))
	require.True(t, ok)
	require.Equal(t, 0, q.Cmp(bi(4)))

	_, ok = DivExact(bi(13), bi(3))
	require.False(t, ok)
}

func TestCRT(t *testing.T) {
	// x = 2 mod 3, x = 3 mod 5  =>  x = 8 mod 15.
	x := CRT(bi(2), bi(3), bi(3), bi(5))
	require.Equal(t, 0, new(big.Int).Mod(x, bi(15)).Cmp(bi(8)))
}

func TestMultiModAndMultiCRT(t *testing.T) {
	primes := []*big.Int{bi(3), bi(5), bi(7)}
	x := bi(59)
	residues := MultiMod(x, primes)

	back := MultiCRT(residues, primes)
	mod105 := new(big.Int).Mod(back, bi(105))
	want := new(big.Int).Mod(x, bi(105))
	require.Equal(t, 0, mod105.Cmp(want))
}

func TestRationalReconstruct(t *testing.T) {
	// p/q = 2/3 mod 101: u = 2 * 3^{-1} mod 101.
	m := bi(101)
	qInv := new(big.Int).ModInverse(bi(3), m)
	u := new(big.Int).Mod(new(big.Int).Mul(bi(2), qInv), m)

	N := bi(7)
	D := bi(7)
	p, q, ok := RationalReconstruct(u, m, N, D)
	require.True(t, ok)
	require.Equal(t, 0, p.Cmp(bi(2)))
	require.Equal(t, 0, q.Cmp(bi(3)))
}
