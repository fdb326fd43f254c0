// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsevec

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/exact/bigz"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func vec(idx []int64, val []int64) *SV {
	vs := make([]*big.Int, len(val))
	for i, v := range val {
		vs[i] = bi(v)
	}
	return FromEntries(idx, vs)
}

// cmpSV compares two SV values structurally, the same shape
// graph/formats/rdf uses go-cmp for opaque struct equality.
func cmpSV(t *testing.T, got, want *SV) {
	t.Helper()
	diff := cmp.Diff(want, got,
		cmp.AllowUnexported(SV{}, Entry{}),
		cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 }),
	)
	if diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAddSub(t *testing.T) {
	for _, test := range []struct {
		name string
		u, v *SV
		want *SV
	}{
		{
			name: "disjoint supports",
			u:    vec([]int64{0, 2}, []int64{1, 2}),
			v:    vec([]int64{1, 3}, []int64{3, 4}),
			want: vec([]int64{0, 1, 2, 3}, []int64{1, 3, 2, 4}),
		},
		{
			name: "overlap cancels",
			u:    vec([]int64{0, 1}, []int64{1, -2}),
			v:    vec([]int64{0, 1}, []int64{-1, 2}),
			want: New(),
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := Add(nil, test.u, test.v)
			cmpSV(t, got, test.want)

			// (u+v)-v = u
			back := Sub(nil, got, test.v)
			cmpSV(t, back, test.u)
		})
	}
}

func TestScalarAddMulSpecialCases(t *testing.T) {
	u := vec([]int64{0, 2}, []int64{1, 2})
	v := vec([]int64{2, 3}, []int64{5, 7})

	require.True(t, Equal(ScalarAddMul(nil, u, v, bi(0)), u))
	require.True(t, Equal(ScalarAddMul(nil, u, v, bi(1)), Add(nil, u, v)))
	require.True(t, Equal(ScalarAddMul(nil, u, v, bi(-1)), Sub(nil, u, v)))

	general := ScalarAddMul(nil, u, v, bi(3))
	want := vec([]int64{0, 2, 3}, []int64{1, 2 + 15, 21})
	cmpSV(t, general, want)
}

func TestDot(t *testing.T) {
	u := vec([]int64{0, 1, 3}, []int64{1, 2, 3})
	v := vec([]int64{1, 2, 3}, []int64{5, 7, 11})
	got := Dot(nil, u, v)
	want := bi(2*5 + 3*11)
	if got.Cmp(want) != 0 {
		t.Errorf("Dot = %v, want %v", got, want)
	}
}

func TestGaussElimCol(t *testing.T) {
	u := vec([]int64{0}, []int64{7})
	v := vec([]int64{0}, []int64{2})
	// 7 - floor(7/2)*2 = 7-6 = 1
	got := GaussElimCol(nil, u, v, 0)
	require.Equal(t, 0, got.At(0).Cmp(bi(1)), "GaussElimCol residual = %v, want 1", got.At(0))
}

func TestGaussElimExt(t *testing.T) {
	u := vec([]int64{0, 1}, []int64{6, 1})
	v := vec([]int64{0, 2}, []int64{4, 1})
	res := GaussElimExt(nil, u, v)
	if res.U.At(0).Sign() != 0 {
		t.Errorf("new u[0] = %v, want 0", res.U.At(0))
	}
	g := new(big.Int).GCD(nil, nil, bi(6), bi(4))
	if res.V.At(0).CmpAbs(g) != 0 {
		t.Errorf("new v[0] = %v, want +/-%v", res.V.At(0), g)
	}
}

func TestWindowSplitConcat(t *testing.T) {
	u := vec([]int64{0, 2, 5, 7}, []int64{1, 2, 3, 4})
	w := u.Window(2, 6)
	want := vec([]int64{0, 3}, []int64{2, 3})
	cmpSV(t, w, want)

	below, above := u.Split(5)
	cmpSV(t, below, vec([]int64{0, 2}, []int64{1, 2}))
	cmpSV(t, above, vec([]int64{0, 2}, []int64{3, 4}))

	cat := Concat(below, above, 5)
	cmpSV(t, cat, u)
}

func TestCRTRoundTrip(t *testing.T) {
	v := vec([]int64{0, 3, 9}, []int64{123456789, -7, 42})
	p1 := big.NewInt(1000003)
	p2 := big.NewInt(999983)
	primes := []*big.Int{p1, p2}
	images := MultiMod(v, primes)

	back := MultiCRT(images, primes)
	// Values are bounded well below p1*p2/2, so symmetric-mod recovers them.
	m := new(big.Int).Mul(p1, p2)
	for _, e := range v.Entries() {
		got := bigz.SymmetricMod(back.At(e.Index), m)
		if got.Cmp(e.Value) != 0 {
			t.Errorf("CRT round trip at %d: got %v want %v", e.Index, got, e.Value)
		}
	}
}

func TestModularReduction(t *testing.T) {
	mod := bigz.ModUint64(7)
	u := vec([]int64{0, 1}, []int64{5, 6})
	v := vec([]int64{0, 1}, []int64{4, 6})
	got := Add(mod, u, v)
	// 5+4=9≡2 (mod 7), 6+6=12≡5 (mod 7).
	if got.At(0).Cmp(bi(2)) != 0 {
		t.Errorf("mod add col0 = %v, want 2", got.At(0))
	}
	if got.At(1).Cmp(bi(5)) != 0 {
		t.Errorf("mod add col1 = %v, want 5", got.At(1))
	}
}
