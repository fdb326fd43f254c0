// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpoly implements exact division of multivariate integer
// polynomials by packing monomials into a dense coefficient array indexed
// by a mixed-radix packed exponent, following the "array" method: the
// divisor's lowest-packed-index term is the pivot; cells are visited in
// ascending packed order and, whenever non-zero, divided exactly by the
// pivot coefficient and subtracted off (scaled, shifted) from the array.
//
// The original C algorithm escalates through 1/2/3-limb fixed-width
// accumulators before falling back to arbitrary precision, purely to avoid
// paying for big-integer arithmetic on small coefficients. math/big already
// handles arbitrary precision without that tiered cost, so this port keeps
// a single big.Int-array path; see DESIGN.md.
package mpoly

import (
	"errors"
	"math/big"
)

// MaxArraySize bounds the packed array this package is willing to
// allocate: the product of per-variable degree bounds must not exceed it.
const MaxArraySize = 300000

var (
	ErrInexactDivision = errors.New("mpoly: inexact division")
	ErrArrayTooLarge   = errors.New("mpoly: packed array would exceed MaxArraySize")
)

// Term is one monomial of a multivariate polynomial: Coeff·x1^Exp[0]·x2^Exp[1]·...
type Term struct {
	Exp   []int64
	Coeff *big.Int
}

// Poly is a multivariate polynomial over Z as an unordered list of terms,
// all with Exp of length NVars. A zero coefficient never appears.
type Poly struct {
	NVars int
	Terms []Term
}

// degreeBounds returns, per variable, one more than the maximum exponent
// appearing in terms — the radix used to pack that variable's digit.
func degreeBounds(nvars int, terms []Term) []int64 {
	bounds := make([]int64, nvars)
	for _, t := range terms {
		for k, e := range t.Exp {
			if e+1 > bounds[k] {
				bounds[k] = e + 1
			}
		}
	}
	for k := range bounds {
		if bounds[k] == 0 {
			bounds[k] = 1
		}
	}
	return bounds
}

func prodBounds(bounds []int64) int64 {
	p := int64(1)
	for _, b := range bounds {
		p *= b
	}
	return p
}

// pack encodes exp as a single mixed-radix index using bounds as the
// per-variable radix: index = exp[0] + bounds[0]*(exp[1] + bounds[1]*(...)).
func pack(exp []int64, bounds []int64) int64 {
	idx := int64(0)
	for k := len(exp) - 1; k >= 0; k-- {
		idx = idx*bounds[k] + exp[k]
	}
	return idx
}

// unpack is pack's inverse.
func unpack(idx int64, bounds []int64) []int64 {
	exp := make([]int64, len(bounds))
	for k := 0; k < len(bounds); k++ {
		exp[k] = idx % bounds[k]
		idx /= bounds[k]
	}
	return exp
}

// toArray packs p's terms into a dense coefficient array of size
// prod(bounds), returning ErrArrayTooLarge when that size exceeds
// MaxArraySize. Terms are not checked against the box; bounds is taken to
// cover every exponent of p.
func toArray(p *Poly, bounds []int64) ([]*big.Int, error) {
	size := prodBounds(bounds)
	if size > MaxArraySize {
		return nil, ErrArrayTooLarge
	}
	arr := make([]*big.Int, size)
	for i := range arr {
		arr[i] = new(big.Int)
	}
	for _, t := range p.Terms {
		idx := pack(t.Exp, bounds)
		arr[idx].Add(arr[idx], t.Coeff)
	}
	return arr, nil
}

func fromArray(nvars int, bounds []int64, arr []*big.Int) *Poly {
	var terms []Term
	for i, c := range arr {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, Term{Exp: unpack(int64(i), bounds), Coeff: new(big.Int).Set(c)})
	}
	return &Poly{NVars: nvars, Terms: terms}
}

// packedIndices returns the packed index of every term of p.
func packedIndices(p *Poly, bounds []int64) []int64 {
	idx := make([]int64, len(p.Terms))
	for i, t := range p.Terms {
		idx[i] = pack(t.Exp, bounds)
	}
	return idx
}

// DivRemArray computes quotient and remainder of p2 / p3 using the packed-
// array method: p2 = q·p3 + r with every surviving non-zero cell of the
// dense array, after exhausting monomial-divisible subtractions against
// p3's lowest-packed-index term, becoming a remainder term.
func DivRemArray(p2, p3 *Poly) (q, r *Poly, err error) {
	if len(p3.Terms) == 0 {
		panic("mpoly: division by the zero polynomial")
	}
	nvars := p2.NVars
	bounds := degreeBounds(nvars, append(append([]Term(nil), p2.Terms...), p3.Terms...))

	arr, err := toArray(p2, bounds)
	if err != nil {
		return nil, nil, err
	}

	p3idx := packedIndices(p3, bounds)
	minI, min3idx := 0, p3idx[0]
	for i, idx := range p3idx {
		if idx < min3idx {
			min3idx, minI = idx, i
		}
	}
	minExp := p3.Terms[minI].Exp
	pivot := p3.Terms[minI].Coeff

	size := int64(len(arr))
	qArr := make([]*big.Int, size)
	for i := range qArr {
		qArr[i] = new(big.Int)
	}

	for i := int64(0); i < size; i++ {
		cell := arr[i]
		if cell.Sign() == 0 {
			continue
		}
		digits := unpack(i, bounds)
		if !monomialGE(digits, minExp) {
			continue
		}
		quot, rem := new(big.Int), new(big.Int)
		quot.QuoRem(cell, pivot, rem)
		if rem.Sign() != 0 {
			continue
		}
		qArr[i-min3idx].Add(qArr[i-min3idx], quot)
		for j, t := range p3.Terms {
			if j == minI {
				continue
			}
			off := i - min3idx + p3idx[j]
			if off < 0 || off >= size {
				continue
			}
			arr[off].Sub(arr[off], new(big.Int).Mul(quot, t.Coeff))
		}
		arr[i].SetInt64(0)
	}

	return fromArray(nvars, bounds, qArr), fromArray(nvars, bounds, arr), nil
}

// monomialGE reports whether every component of a is >= the matching
// component of b (so a-b is a valid, non-negative exponent vector).
func monomialGE(a, b []int64) bool {
	for k := range a {
		if a[k] < b[k] {
			return false
		}
	}
	return true
}

// DivExactArray computes p2/p3, returning ErrInexactDivision if the
// division does not come out exact (non-zero remainder).
func DivExactArray(p2, p3 *Poly) (*Poly, error) {
	q, r, err := DivRemArray(p2, p3)
	if err != nil {
		return nil, err
	}
	if len(r.Terms) != 0 {
		return nil, ErrInexactDivision
	}
	return q, nil
}

// DividesArray reports whether p3 exactly divides p2, without allocating a
// quotient polynomial for the caller (the quotient is still computed
// internally, matching the upstream routine's behaviour).
func DividesArray(p2, p3 *Poly) (bool, error) {
	_, r, err := DivRemArray(p2, p3)
	if err != nil {
		return false, err
	}
	return len(r.Terms) == 0, nil
}

// DivExactArrayChunked behaves exactly as DivExactArray. Upstream, the
// chunked variant re-derives the same dense array but processes it in
// main-variable-major tiles to improve cache locality on fixed-width
// limbs; that motivation doesn't transfer to a big.Int-backed Go port
// (see DESIGN.md), so this is the same algorithm under the chunked name
// for API parity with callers that distinguish the two.
func DivExactArrayChunked(p2, p3 *Poly, mainVar int) (*Poly, error) {
	return DivExactArray(p2, p3)
}
