// SPDX-License-Identifier: MIT

// Package csr - reference conversions to dense gonum types.
//
// Purpose:
//   - Materialize a CSR matrix as *mat.Dense for inspection and for the
//     reference solver in package refsolve.
//   - Provide MulVec and the residual ‖A·x − b‖₂ used to check solutions.
//
// Duplicate entries are summed on the fly, so ToDense of a raw matrix and of
// its deduplicated form are equal.

package csr

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ToDense returns the N×N dense form of m, summing duplicate entries.
// Structure-only matrices are rejected with ErrLengthMismatch since they
// have no numeric content to place.
//
// Complexity: O(N² + nnz).
func ToDense[I Index](m Matrix[I]) (*mat.Dense, error) {
	if err := m.Validate(); err != nil {
		return nil, Errorf("ToDense", err)
	}
	if m.Values == nil {
		return nil, Errorf("ToDense: structure-only matrix", ErrLengthMismatch)
	}

	d := mat.NewDense(m.N, m.N, nil)
	for i := 0; i < m.N; i++ {
		for p := int(m.RowPtr[i]); p < int(m.RowPtr[i+1]); p++ {
			j := int(m.ColIdx[p])
			d.Set(i, j, d.At(i, j)+m.Values[p])
		}
	}

	return d, nil
}

// MulVec returns y = A·x. Duplicate entries contribute additively.
//
// Complexity: O(N + nnz).
func MulVec[I Index](m Matrix[I], x []float64) ([]float64, error) {
	if m.Values == nil {
		return nil, Errorf("MulVec: structure-only matrix", ErrLengthMismatch)
	}
	if err := ValidateVecLen(x, m.N); err != nil {
		return nil, Errorf("MulVec", err)
	}

	y := make([]float64, m.N)
	for i := 0; i < m.N; i++ {
		var s float64
		for p := int(m.RowPtr[i]); p < int(m.RowPtr[i+1]); p++ {
			s += m.Values[p] * x[int(m.ColIdx[p])]
		}
		y[i] = s
	}

	return y, nil
}

// Residual returns the Euclidean norm ‖A·x − b‖₂.
func Residual[I Index](m Matrix[I], x, b []float64) (float64, error) {
	y, err := MulVec(m, x)
	if err != nil {
		return 0, Errorf("Residual", err)
	}
	if err = ValidateVecLen(b, m.N); err != nil {
		return 0, Errorf("Residual", err)
	}
	floats.Sub(y, b)

	return floats.Norm(y, 2), nil
}
