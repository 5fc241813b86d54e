// Package linalg provides tolerance-bounded rank and column-space queries
// on real matrices, backed by gonum's SVD.
//
// All thresholds are relative to the largest singular value: a singular
// value sigma counts toward the rank iff sigma > tol * sigma_max. This keeps
// the predicates scale-invariant, which matters when callers feed in
// homogeneous coordinate matrices mixing unit rows with large coordinates.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Rank returns the numerical rank of m.
func Rank(m mat.Matrix, tol float64) int {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return 0
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDNone); !ok {
		return 0
	}

	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0
	}

	rank := 0
	for _, sigma := range values {
		if sigma > tol*values[0] {
			rank++
		}
	}

	return rank
}

// IndependentColumns returns the indices of a maximal linearly independent
// subset of m's columns, scanning left to right: a column joins the subset
// iff appending it increases the numerical rank of the columns accumulated
// so far. Indices come back in increasing order.
func IndependentColumns(m mat.Matrix, tol float64) []int {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil
	}

	var indices []int
	accumulated := mat.NewDense(rows, cols, nil)
	rank := 0

	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			accumulated.Set(i, rank, m.At(i, j))
		}

		candidate := accumulated.Slice(0, rows, 0, rank+1)
		if Rank(candidate, tol) > rank {
			indices = append(indices, j)
			rank++
			if rank == rows {
				break // column space is full, nothing left to gain
			}
		}
	}

	return indices
}

// ColumnSpaceBasis returns the columns of m at the indices selected by
// IndependentColumns, as a new dense matrix. Returns an error if m has no
// nonzero columns within tolerance.
func ColumnSpaceBasis(m mat.Matrix, tol float64) (*mat.Dense, error) {
	indices := IndependentColumns(m, tol)
	if len(indices) == 0 {
		return nil, fmt.Errorf("linalg: matrix has no independent columns within tolerance %g", tol)
	}

	rows, _ := m.Dims()
	basis := mat.NewDense(rows, len(indices), nil)
	for k, j := range indices {
		for i := 0; i < rows; i++ {
			basis.Set(i, k, m.At(i, j))
		}
	}

	return basis, nil
}
