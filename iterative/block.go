// Copyright ©2024 The Exact Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/big"

	"gonum.org/v1/exact/bigz"
	"gonum.org/v1/exact/densemat"
)

// BlockWiedemannSolve solves M·x = b by Coppersmith's block generalisation
// of Wiedemann: it embeds the system into the homogeneous [(M|b); 0]
// matrix one dimension larger, runs a joint block-Berlekamp–Massey over
// the resulting Krylov sequence to recover a nullvector, and rescales by
// the nullvector's last coordinate. Unlike scalar Wiedemann, the width
// probes share one elimination instead of running independently, so the
// method survives bases a lone scalar probe would miss. M must be
// square.
func BlockWiedemannSolve(op Op, b []*big.Int, width, maxProbes int, randVec func() []*big.Int) ([]*big.Int, error) {
	if op.Rows() != op.Cols() {
		panic("iterative: block Wiedemann requires a square operator")
	}
	if isZeroVec(b) {
		return zeroVec(op.Cols()), nil
	}
	mod := op.Mod()
	emb := embedOp{base: op, b: b}
	embRand := embedRandVec(randVec)
	bw := int64(width)

	for attempt := 0; attempt < maxProbes; attempt++ {
		x1, err := blockWiedemannNullvector(emb, bw, embRand)
		if err != nil {
			continue
		}
		last := x1[len(x1)-1]
		if last.Sign() == 0 {
			continue
		}
		scale := mod.Reduce(new(big.Int).Neg(mustInv(mod, last)))
		x := scaleVec(mod, scale, x1[:len(x1)-1])
		if vecEqual(op.MulVec(x), b) {
			return x, nil
		}
	}
	return nil, ErrIterationLimit
}

// BlockLanczosSolve solves M·x = b by Montgomery's block-Lanczos
// recurrence against A = Mᵀ·M: three c×width direction matrices are
// carried across a sliding window, each step computing the viable-column
// mask S and the "anti-inverse" W⁻¹ restricted to it via row-Gaussian
// elimination on [VᵀAV | I], then advancing the direction matrices by the
// Equation-(19) update with its D/E/F correction terms. M need not be
// square.
func BlockLanczosSolve(op Op, b []*big.Int, width, maxIters int, randVec func() []*big.Int) ([]*big.Int, error) {
	if isZeroVec(b) {
		return zeroVec(op.Cols()), nil
	}
	mod := op.Mod()
	c := op.Cols()
	bw := int64(width)

	var V [3]*densemat.DM
	V[0] = densemat.New(c, bw, mod)
	for j := int64(0); j < bw; j++ {
		col := randVec()
		for i := int64(0); i < c; i++ {
			V[0].Set(i, j, col[i])
		}
	}
	V[1] = densemat.New(c, bw, mod)
	V[2] = densemat.New(c, bw, mod)

	var nWi [3]*densemat.DM
	S := make([]bool, bw)
	for i := range S {
		S[i] = true
	}
	I := identityMat(bw, mod)

	x := zeroVec(c)
	Mtb := op.MulVecT(b)

	applyA := func(v []*big.Int) []*big.Int { return op.MulVecT(op.MulVec(v)) }

	var VtAV, combo *densemat.DM
	totalDim := int64(0)

	for iter := 0; iter < maxIters; iter++ {
		i := iter % 3
		nextI := (iter + 1) % 3
		prevI := (iter + 2) % 3

		var defF *densemat.DM
		if iter >= 2 {
			part := matAddMul(I, VtAV, nWi[prevI])
			tmp := matMul(nWi[nextI], part)
			defF = matMul(tmp, combo)
		}

		AV := mulMatCols(applyA, c, V[i])
		T := V[i].Transpose()
		VtAV = matMul(T, AV)
		if matIsZero(VtAV) {
			break
		}

		curNWi, curDim := computeNWiS(mod, S, VtAV)
		nWi[i] = curNWi
		totalDim += curDim
		if curDim == 0 || totalDim > c {
			break
		}

		VSSt := killColumns(V[i], S)
		SStVtMtb := VSSt.Transpose().MulVec(Mtb)
		WiSStVtMtb := nWi[i].MulVec(SStVtMtb)
		VSStWiSStVtMtb := VSSt.MulVec(WiSStVtMtb)
		x = addVec(mod, x, VSStWiSStVtMtb)

		if iter >= 2 {
			V[nextI] = matMul(V[nextI], killColumns(defF, S))
		}
		if iter >= 1 {
			defE := killColumns(matMul(nWi[prevI], VtAV), S)
			V[nextI] = densemat.Add(V[nextI], matMul(V[prevI], defE))
		}
		AVtAVkilled := killColumns(matMul(AV.Transpose(), AV), S)
		combo = densemat.Add(AVtAVkilled, VtAV)
		defD := matAddMul(I, nWi[i], combo)
		V[nextI] = densemat.Add(V[nextI], matMul(V[i], defD))

		V[nextI] = densemat.Add(V[nextI], killColumns(AV, S))

		if matIsZero(V[nextI]) {
			break
		}
	}
	x = scaleVec(mod, big.NewInt(-1), x)
	if vecEqual(op.MulVec(x), b) {
		return x, nil
	}
	return nil, ErrIterationLimit
}

// embedOp wraps a square Op into the (n+1)×(n+1) homogeneous operator
// [(M|b); 0], used by BlockWiedemannSolve to turn a non-homogeneous solve
// into a nullvector search.
type embedOp struct {
	base Op
	b    []*big.Int
}

func (e embedOp) Rows() int64    { return e.base.Rows() + 1 }
func (e embedOp) Cols() int64    { return e.base.Cols() + 1 }
func (e embedOp) Mod() *bigz.Mod { return e.base.Mod() }

func (e embedOp) MulVec(x []*big.Int) []*big.Int {
	mod := e.base.Mod()
	n := e.base.Cols()
	y := e.base.MulVec(x[:n])
	last := x[n]
	out := make([]*big.Int, n+1)
	for i := int64(0); i < n; i++ {
		out[i] = mod.Reduce(new(big.Int).Add(y[i], new(big.Int).Mul(last, e.b[i])))
	}
	out[n] = big.NewInt(0)
	return out
}

func (e embedOp) MulVecT(y []*big.Int) []*big.Int {
	mod := e.base.Mod()
	n := e.base.Cols()
	yt := e.base.MulVecT(y[:n])
	out := make([]*big.Int, n+1)
	copy(out, yt)
	out[n] = dot(mod, e.b, y[:n])
	return out
}

// embedRandVec extends randVec (which produces vectors sized to the
// un-embedded operator) with one extra coordinate, borrowed from a second
// draw, so it can seed the embedded operator's one-larger Krylov space.
func embedRandVec(randVec func() []*big.Int) func() []*big.Int {
	return func() []*big.Int {
		v := randVec()
		extra := randVec()
		out := make([]*big.Int, len(v)+1)
		copy(out, v)
		out[len(v)] = extra[0]
		return out
	}
}

// blockWiedemannNullvector finds a non-zero x with M·x = 0 for square op,
// following nmod_sparse_mat_nullvector_block_wiedemann: draw a random
// c×b matrix Y₀, form the block Krylov sequence of M·Y₀, run the joint
// block-Berlekamp–Massey to get the block minimal polynomial, then try
// each of its b rows against the sequence until one assembles to a
// verified nullvector.
func blockWiedemannNullvector(op Op, b int64, randVec func() []*big.Int) ([]*big.Int, error) {
	mod := op.Mod()
	n := op.Rows()

	Y0 := densemat.New(n, b, mod)
	for {
		for j := int64(0); j < b; j++ {
			col := randVec()
			for i := int64(0); i < n; i++ {
				Y0.Set(i, j, col[i])
			}
		}
		if !matIsZero(Y0) {
			break
		}
	}

	ns := int(2*n/b) + 3
	Y1 := mulMatCols(op.MulVec, n, Y0)
	S := blockSequences(op, Y1, ns, b)
	d := make([]int64, 2*b)
	findBlockMinPoly(mod, S, d, ns, n, b)

	for l := int64(0); l < b; l++ {
		x := makeBlockSum(op, S, d, Y0, l, b)
		if !isZeroVec(x) && isZeroVec(op.MulVec(x)) {
			return x, nil
		}
	}
	return nil, ErrIterationLimit
}

// blockSequences computes S_k = ((Mᵏ⁺¹Y₀)[0:b,0:b])ᵀ for k = 0..ns-1,
// following make_block_sequences: Y1 already holds M·Y₀, and each step
// multiplies by M again before taking the leading b×b block.
func blockSequences(op Op, Y1 *densemat.DM, ns int, b int64) []*densemat.DM {
	S := make([]*densemat.DM, ns)
	var Y [2]*densemat.DM
	Y[0] = Y1
	i := 0
	for iter := 0; iter < ns; iter++ {
		if iter > 0 {
			Y[i] = mulMatCols(op.MulVec, op.Rows(), Y[1-i])
		}
		S[iter] = Y[i].Window(0, 0, b, b).Transpose()
		i = 1 - i
	}
	return S
}

// coppersmithAuxGauss runs row-Gaussian elimination on the 2b×3b matrix
// M = [D | I], pivoting each column on its minimum-degree viable row
// (falling back to the auxiliary half when the generating half has none),
// and leaves the transformed combination in M's right 2b×2b block
// (accessible via the caller's tau window). Following
// coppersmith_aux_gauss: a donor row that isn't already in pivot position
// is swapped into place when the auxiliary slot's row has a non-zero entry
// in the donor's column; otherwise it is folded into the auxiliary slot by
// addition and marked no longer viable.
func coppersmithAuxGauss(mod *bigz.Mod, M *densemat.DM, d []int64) {
	b := M.R / 2
	gamma := make([]bool, b)
	for r := range gamma {
		gamma[r] = true
	}

	for pc := int64(0); pc < b; pc++ {
		pr := b + pc
		for r := int64(0); r < b; r++ {
			if gamma[r] && M.At(r, pc).Sign() != 0 && d[r] < d[pr] {
				pr = r
			}
		}
		if M.At(pr, pc).Sign() == 0 {
			continue
		}

		if pr != b+pc {
			d[pr], d[b+pc] = d[b+pc], d[pr]
			if M.At(b+pc, pr).Sign() != 0 {
				swapRows(M, pr, b+pc)
				pr = b + pc
			} else {
				addRowInPlace(mod, M, b+pc, pr)
				gamma[pr] = false
			}
		}

		cinv := mustInv(mod, M.At(pr, pc))
		for r := int64(0); r < b; r++ {
			if gamma[r] && M.At(r, pc).Sign() != 0 {
				coef := mod.Reduce(new(big.Int).Neg(new(big.Int).Mul(M.At(r, pc), cinv)))
				addScaledRowInPlace(mod, M, r, pr, coef)
			}
		}
	}
}

// coppersmithStoppingCriterion returns 0 once the first-b degree sum
// exceeds delta, 1 once it exceeds delta plus the spread between
// the generating half's maximum degree and the auxiliary half's minimum,
// and -1 otherwise (keep iterating).
func coppersmithStoppingCriterion(d []int64, delta, b int64) int {
	sum := d[0]
	for r := int64(1); r < b; r++ {
		sum += d[r]
	}
	rem := delta - sum
	if rem < 0 {
		return 0
	}
	maxFirst := d[0]
	for r := int64(1); r < b; r++ {
		if d[r] > maxFirst {
			maxFirst = d[r]
		}
	}
	minSecond := d[b]
	for r := b + 1; r < 2*b; r++ {
		if d[r] < minSecond {
			minSecond = d[r]
		}
	}
	if rem+maxFirst-minSecond < 0 {
		return 1
	}
	return -1
}

// findBlockMinPoly is Coppersmith's generalisation of Berlekamp–Massey to
// a 2b×b polynomial matrix F: the first b rows are the (reversed)
// generating polynomials, the last b auxiliary. Each step folds in the
// next discrepancy block D = Σ F_k·S_{t-k}, row-reduces [D|I] via
// coppersmithAuxGauss to get τ, updates F ← F·τ with the generating half
// shifted down by one degree (division by x) and the auxiliary half
// bumped up, and stops per coppersmithStoppingCriterion. The result is
// written back into S, each row r holding its minimal polynomial's
// coefficients ascending from S[0].
func findBlockMinPoly(mod *bigz.Mod, S []*densemat.DM, d []int64, steps int, delta, b int64) int {
	F := make([]*densemat.DM, steps+1)
	F[0] = densemat.New(2*b, b, mod)
	for i := int64(0); i < b; i++ {
		d[i] = 0
		d[b+i] = 1
		F[0].Set(i, i, big.NewInt(1))
	}
	fLen := 1
	ret := -1

	for t := 0; t < steps && ret == -1; t++ {
		M := densemat.New(2*b, 3*b, mod)
		D := M.Window(0, 0, 2*b, b)
		tau := M.Window(0, b, 2*b, 3*b)
		for k := 0; k <= t; k++ {
			addMatInPlace(D, matMul(F[k], S[t-k]))
		}
		setIdentity(tau)
		coppersmithAuxGauss(mod, M, d)

		F[fLen] = densemat.New(2*b, b, mod)
		fLen++
		for k := fLen - 1; k > 0; k-- {
			F[k] = matMul(tau, F[k-1])
		}
		for k := 0; k < fLen; k++ {
			for r := int64(0); r < b; r++ {
				if k < fLen-1 {
					copyRow(F[k], r, F[k+1], r)
				} else {
					zeroRowInPlace(F[k], r)
				}
			}
		}
		for r := b; r < 2*b; r++ {
			zeroRowInPlace(F[0], r)
			d[r]++
		}
		ret = coppersmithStoppingCriterion(d, delta, b)
	}

	for r := int64(0); r < b; r++ {
		for k := int64(0); k <= d[r]; k++ {
			copyRow(S[k], r, F[d[r]-k], r)
		}
	}
	return ret
}

// makeBlockSum assembles x = Σ_{k=0}^{d[l]} S_{dd+k}[l]·Mᵏ·Z, where Z
// starts at Y₀ and dd skips whatever leading zero rows the block
// reduction's bookkeeping left row l with, following make_block_sum.
func makeBlockSum(op Op, S []*densemat.DM, d []int64, Z0 *densemat.DM, l, b int64) []*big.Int {
	mod := op.Mod()
	dd := int64(0)
	for isZeroRow(S[dd], l) {
		dd++
	}

	x := zeroVec(op.Cols())
	var Z [2]*densemat.DM
	Z[0] = Z0
	i := 0
	for iter := int64(0); iter <= d[l]; iter++ {
		if iter > 0 {
			Z[i] = mulMatCols(op.MulVec, op.Rows(), Z[1-i])
		}
		xi := matVecRow(mod, Z[i], S[dd+iter].Row(l))
		x = addVec(mod, x, xi)
		i = 1 - i
	}
	return x
}

// computeNWiS is compute_nWi_S: it row-reduces [VtAV | I] (VtAV a clone
// of Torig), trying previously-dropped columns (S[i]==false) as pivots
// first, falling back from the VtAV half to the identity half when a
// column has no viable pivot there, and returns -((SSᵀ·Torig·SSᵀ)⁻¹) —
// restricted to the columns it found viable — plus their count. S is
// updated in place to record which columns stayed viable.
func computeNWiS(mod *bigz.Mod, S []bool, Torig *densemat.DM) (*densemat.DM, int64) {
	b := Torig.R
	T := Torig.Clone()
	nWi := identityMat(b, mod)

	P := make([]int64, b)
	j := 0
	for i := int64(0); i < b; i++ {
		if !S[i] {
			P[j] = i
			j++
		}
	}
	for i := int64(0); i < b; i++ {
		if S[i] {
			P[j] = i
			j++
		}
	}

	var rank int64
	for jj := int64(0); jj < b; jj++ {
		pc := P[jj]

		useT := true
		i := jj
		for ; i < b && T.At(P[i], pc).Sign() == 0; i++ {
		}
		if i == b {
			useT = false
			for i = jj; i < b && nWi.At(P[i], pc).Sign() == 0; i++ {
			}
		}
		S[pc] = useT
		swapRows(T, pc, P[i])
		swapRows(nWi, pc, P[i])

		var pivot *big.Int
		if useT {
			pivot = T.At(pc, pc)
		} else {
			pivot = nWi.At(pc, pc)
		}
		cc := mustInv(mod, pivot)
		scaleRowInPlace(mod, T, pc, cc)
		scaleRowInPlace(mod, nWi, pc, cc)

		for i := int64(0); i < b; i++ {
			row := P[i]
			var entry *big.Int
			if useT {
				entry = T.At(row, pc)
			} else {
				entry = nWi.At(row, pc)
			}
			if i == jj || entry.Sign() == 0 {
				continue
			}
			neg := mod.Reduce(new(big.Int).Neg(entry))
			addScaledRowInPlace(mod, T, row, pc, neg)
			addScaledRowInPlace(mod, nWi, row, pc, neg)
		}

		if S[pc] {
			rank++
		} else {
			zeroRowInPlace(T, pc)
			zeroRowInPlace(nWi, pc)
		}
	}

	return densemat.Scale(nWi, big.NewInt(-1)), rank
}

// killColumns returns a clone of m with every column not in mask zeroed.
func killColumns(m *densemat.DM, mask []bool) *densemat.DM {
	out := m.Clone()
	for j, ok := range mask {
		if ok {
			continue
		}
		for i := int64(0); i < out.R; i++ {
			out.Set(i, int64(j), big.NewInt(0))
		}
	}
	return out
}

func matMul(a, b *densemat.DM) *densemat.DM {
	out, err := densemat.Mul(a, b)
	if err != nil {
		panic(err)
	}
	return out
}

// matAddMul returns c + a·b.
func matAddMul(c, a, b *densemat.DM) *densemat.DM {
	return densemat.Add(c, matMul(a, b))
}

func matIsZero(m *densemat.DM) bool {
	for i := int64(0); i < m.R; i++ {
		for _, v := range m.Row(i) {
			if v.Sign() != 0 {
				return false
			}
		}
	}
	return true
}

func identityMat(n int64, mod *bigz.Mod) *densemat.DM {
	m := densemat.New(n, n, mod)
	setIdentity(m)
	return m
}

func setIdentity(m *densemat.DM) {
	for i := int64(0); i < m.R; i++ {
		m.Set(i, i, big.NewInt(1))
	}
}

func isZeroRow(m *densemat.DM, row int64) bool {
	for _, v := range m.Row(row) {
		if v.Sign() != 0 {
			return false
		}
	}
	return true
}

func copyRow(dst *densemat.DM, rDst int64, src *densemat.DM, rSrc int64) {
	d, s := dst.Row(rDst), src.Row(rSrc)
	for k := range d {
		d[k] = new(big.Int).Set(s[k])
	}
}

func swapRows(m *densemat.DM, i, j int64) {
	ri, rj := m.Row(i), m.Row(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

func scaleRowInPlace(mod *bigz.Mod, m *densemat.DM, row int64, c *big.Int) {
	r := m.Row(row)
	for k := range r {
		r[k] = mod.Reduce(new(big.Int).Mul(c, r[k]))
	}
}

func zeroRowInPlace(m *densemat.DM, row int64) {
	r := m.Row(row)
	for k := range r {
		r[k] = big.NewInt(0)
	}
}

func addRowInPlace(mod *bigz.Mod, m *densemat.DM, dst, src int64) {
	d, s := m.Row(dst), m.Row(src)
	for k := range d {
		d[k] = mod.Reduce(new(big.Int).Add(d[k], s[k]))
	}
}

func addScaledRowInPlace(mod *bigz.Mod, m *densemat.DM, dst, src int64, coef *big.Int) {
	d, s := m.Row(dst), m.Row(src)
	for k := range d {
		d[k] = mod.Reduce(new(big.Int).Add(d[k], new(big.Int).Mul(coef, s[k])))
	}
}

func addMatInPlace(dst, src *densemat.DM) {
	for i := int64(0); i < dst.R; i++ {
		d, s := dst.Row(i), src.Row(i)
		for j := range d {
			d[j] = dst.Mod.Reduce(new(big.Int).Add(d[j], s[j]))
		}
	}
}

// mulMatCols applies mulVec to every column of m, assembling an
// outRows×m.C result — the matrix-valued analogue of Op.MulVec, since Op
// only exposes vector products.
func mulMatCols(mulVec func([]*big.Int) []*big.Int, outRows int64, m *densemat.DM) *densemat.DM {
	out := densemat.New(outRows, m.C, m.Mod)
	col := make([]*big.Int, m.R)
	for j := int64(0); j < m.C; j++ {
		for i := int64(0); i < m.R; i++ {
			col[i] = m.At(i, j)
		}
		res := mulVec(col)
		for i := int64(0); i < outRows; i++ {
			out.Set(i, j, res[i])
		}
	}
	return out
}

// matVecRow computes m·row.
func matVecRow(mod *bigz.Mod, m *densemat.DM, row []*big.Int) []*big.Int {
	out := make([]*big.Int, m.R)
	for i := int64(0); i < m.R; i++ {
		acc := big.NewInt(0)
		mr := m.Row(i)
		for j := range row {
			acc.Add(acc, new(big.Int).Mul(mr[j], row[j]))
		}
		out[i] = mod.Reduce(acc)
	}
	return out
}

func addVec(mod *bigz.Mod, u, v []*big.Int) []*big.Int {
	out := make([]*big.Int, len(u))
	for i := range u {
		out[i] = mod.Reduce(new(big.Int).Add(u[i], v[i]))
	}
	return out
}
