// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randtest generates the random sparse/dense test fixtures used
// across this module's _test.go files. It follows the shape of FLINT's
// fmpz_sparse_vec_randtest_unsigned (reservoir sampling for the column
// support, then one non-zero value per chosen column), translated to a
// seeded math/rand.Rand so tests are reproducible without a C-style
// flint_rand_t.
package randtest

import (
	"math/big"
	"math/rand"
	"sort"
)

// Support draws nnz distinct indices from [0, length) uniformly via
// reservoir sampling, returned in ascending order. It panics if
// nnz > length.
func Support(r *rand.Rand, nnz, length int) []int64 {
	if nnz > length {
		panic("randtest: nnz exceeds length")
	}
	chosen := make([]int64, nnz)
	for i := 0; i < nnz; i++ {
		chosen[i] = int64(i)
	}
	for j := nnz; j < length; j++ {
		i := r.Intn(j + 1)
		if i < nnz {
			chosen[i] = int64(j)
		}
	}
	sort.Slice(chosen, func(i, j int) bool { return chosen[i] < chosen[j] })
	return chosen
}

// Bits returns a random non-negative integer with exactly bits bits of
// magnitude (bits == 0 yields zero).
func Bits(r *rand.Rand, bits int) *big.Int {
	if bits <= 0 {
		return big.NewInt(0)
	}
	buf := make([]byte, (bits+7)/8)
	for i := range buf {
		buf[i] = byte(r.Intn(256))
	}
	v := new(big.Int).SetBytes(buf)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1))
	v.And(v, mask)
	v.SetBit(v, bits-1, 1)
	return v
}

// NonZero returns a random non-zero integer of the given bit length,
// randomly signed.
func NonZero(r *rand.Rand, bits int) *big.Int {
	v := Bits(r, bits)
	if v.Sign() == 0 {
		v.SetInt64(1)
	}
	if r.Intn(2) == 0 {
		v.Neg(v)
	}
	return v
}

// Prime returns a random prime below the given bit length using
// math/big's probabilistic primality test, retrying until one is found.
func Prime(r *rand.Rand, bits int) *big.Int {
	for {
		v := Bits(r, bits)
		v.SetBit(v, 0, 1) // odd
		if v.ProbablyPrime(20) {
			return v
		}
	}
}
