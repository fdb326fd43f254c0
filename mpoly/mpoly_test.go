// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func bi(x int64) *big.Int { return big.NewInt(x) }

func term(coeff int64, exp ...int64) Term {
	return Term{Exp: exp, Coeff: bi(coeff)}
}

func findTerm(p *Poly, exp ...int64) *big.Int {
	for _, t := range p.Terms {
		match := true
		for k, e := range exp {
			if t.Exp[k] != e {
				match = false
				break
			}
		}
		if match {
			return t.Coeff
		}
	}
	return bi(0)
}

func TestDivExactArrayDifferenceOfSquares(t *testing.T) {
	// p2 = x^2 - y^2, p3 = x + y  =>  q = x - y, r = 0.
	p2 := &Poly{NVars: 2, Terms: []Term{
		term(1, 2, 0),
		term(-1, 0, 2),
	}}
	p3 := &Poly{NVars: 2, Terms: []Term{
		term(1, 1, 0),
		term(1, 0, 1),
	}}

	q, err := DivExactArray(p2, p3)
	require.NoError(t, err)
	require.Equal(t, 0, findTerm(q, 1, 0).Cmp(bi(1)), "coefficient of x")
	require.Equal(t, 0, findTerm(q, 0, 1).Cmp(bi(-1)), "coefficient of y")
}

func TestDivExactArrayChunkedMatchesPlain(t *testing.T) {
	p2 := &Poly{NVars: 2, Terms: []Term{
		term(1, 2, 0),
		term(-1, 0, 2),
	}}
	p3 := &Poly{NVars: 2, Terms: []Term{
		term(1, 1, 0),
		term(1, 0, 1),
	}}

	want, err := DivExactArray(p2, p3)
	require.NoError(t, err)
	got, err := DivExactArrayChunked(p2, p3, 0)
	require.NoError(t, err)
	require.Equal(t, len(want.Terms), len(got.Terms))
	for _, wt := range want.Terms {
		require.Equal(t, 0, findTerm(got, wt.Exp...).Cmp(wt.Coeff))
	}
}

func TestDivExactArrayInexact(t *testing.T) {
	// p2 = x + 1, p3 = x + 2: 1/(x+2) doesn't divide exactly.
	p2 := &Poly{NVars: 1, Terms: []Term{
		term(1, 1),
		term(1, 0),
	}}
	p3 := &Poly{NVars: 1, Terms: []Term{
		term(1, 1),
		term(2, 0),
	}}

	_, err := DivExactArray(p2, p3)
	require.ErrorIs(t, err, ErrInexactDivision)
}

func TestDividesArray(t *testing.T) {
	p2 := &Poly{NVars: 2, Terms: []Term{
		term(1, 2, 0),
		term(-1, 0, 2),
	}}
	p3 := &Poly{NVars: 2, Terms: []Term{
		term(1, 1, 0),
		term(1, 0, 1),
	}}
	p4 := &Poly{NVars: 2, Terms: []Term{
		term(1, 1, 0),
		term(2, 0, 1),
	}}

	ok, err := DividesArray(p2, p3)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = DividesArray(p2, p4)
	require.NoError(t, err)
	require.False(t, ok)
}
