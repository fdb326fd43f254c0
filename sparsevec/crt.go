// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsevec

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
)

// CRT combines two modular images of the same integer sparse vector (one
// reduced mod m1, one mod m2, gcd(m1,m2)=1) into a single integer sparse
// vector reduced mod m1*m2, mirroring fmpz_sparse_vec/CRT_ui.c. Entries
// present in only one operand are treated as zero in the other.
func CRT(u *SV, m1 *big.Int, v *SV, m2 *big.Int) *SV {
	return merge(nil, u, v, func(a, b *big.Int) *big.Int {
		return bigz.CRT(orZero(a), m1, orZero(b), m2)
	})
}

// MultiMod reduces an integer sparse vector modulo each of the given
// primes, mirroring fmpz_sparse_vec/multi_mod_ui.c.
func MultiMod(v *SV, primes []*big.Int) []*SV {
	out := make([]*SV, len(primes))
	for i, p := range primes {
		mod := bigz.NewMod(p)
		w := &SV{entries: make([]Entry, 0, len(v.entries))}
		for _, e := range v.entries {
			r := mod.Reduce(e.Value)
			if r.Sign() != 0 {
				w.entries = append(w.entries, Entry{Index: e.Index, Value: r})
			}
		}
		out[i] = w
	}
	return out
}

// MultiCRT is the inverse of MultiMod: it combines one modular image per
// prime (primes pairwise coprime) into the integer sparse vector reduced
// modulo the product, mirroring fmpz_sparse_vec/multi_CRT_ui.c. The union
// of supports across images is used; a column absent from an image is
// treated as 0 in that image.
func MultiCRT(images []*SV, primes []*big.Int) *SV {
	if len(images) != len(primes) || len(images) == 0 {
		panic("sparsevec: MultiCRT requires matching, non-empty slices")
	}
	result := images[0].Clone()
	m := new(big.Int).Set(primes[0])
	for i := 1; i < len(images); i++ {
		result = CRT(result, m, images[i], primes[i])
		m = new(big.Int).Mul(m, primes[i])
	}
	return result
}
