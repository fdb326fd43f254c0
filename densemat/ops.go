// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemat

import (
	"math/big"

	"gonum.org/v1/exact/sparsemat"
)

// toSparse converts m to sparsemat.SM, dropping explicit zeros.
func (m *DM) toSparse() *sparsemat.SM {
	dense := make([][]*big.Int, m.R)
	for i := int64(0); i < m.R; i++ {
		dense[i] = m.rows[i]
	}
	return sparsemat.FromDense(m.R, m.C, m.Mod, dense)
}

func fromSparse(s *sparsemat.SM) *DM {
	return FromRows(s.R, s.C, s.Mod, s.ToDense())
}

// LU, RREF, Solve, CanSolve and Nullspace follow the same contracts as
// their sparsemat counterparts (the LU pivot search, the composite-modulus
// NONINVERTIBLE failure, the RREF column ordering); over dense storage the
// pivot search itself is delegated to the sparse Markowitz scaffold, since
// the underlying elimination arithmetic (gcd/xgcd on a non-unit pivot) is
// identical regardless of storage layout; these operations run
// single-threaded.

func (m *DM) LU(rankCheck bool) (sparsemat.LUResult, error) {
	return sparsemat.LU(m.toSparse(), rankCheck)
}

func (m *DM) RREF() (*DM, int64, error) {
	r, rank, err := sparsemat.RREF(m.toSparse())
	if err != nil {
		return nil, 0, err
	}
	return fromSparse(r), rank, nil
}

func (m *DM) Solve(b []*big.Int) ([]*big.Int, bool, error) {
	return sparsemat.Solve(m.toSparse(), b)
}

func (m *DM) CanSolve(b []*big.Int) ([]*big.Int, bool, error) {
	return sparsemat.CanSolve(m.toSparse(), b)
}

func (m *DM) Nullspace() (*DM, int64, error) {
	ns, nullity, err := sparsemat.Nullspace(m.toSparse())
	if err != nil {
		return nil, 0, err
	}
	return fromSparse(ns), nullity, nil
}

func (m *DM) Rank() (int64, error) {
	res, err := sparsemat.LU(m.toSparse(), false)
	if err != nil {
		return 0, err
	}
	return res.Rank, nil
}

// Howell computes the Howell/strong-echelon form of m modulo n.
func (m *DM) Howell(n *big.Int) *DM {
	return fromSparse(sparsemat.HowellForm(m.toSparse(), n))
}
