// SPDX-License-Identifier: MIT

// Package csr: domain types shared by the transformers.
// This file contains ONLY the data model (Index, Matrix, State). Errors,
// options and validators live in dedicated files.

package csr

import "golang.org/x/exp/constraints"

// Index is the integer type used for row pointers and column indices.
// int32 matches the common solver ABI; int64 is for matrices whose entry
// count exceeds 2³¹-1.
type Index interface {
	constraints.Signed
}

// Matrix is a square sparse matrix in CSR form.
//   - N is the dimension (rows == cols).
//   - RowPtr has length N+1; row i spans [RowPtr[i], RowPtr[i+1]).
//   - ColIdx and Values are index-aligned; Values may be nil (structure only).
//
// A Matrix returned by a transformer aliases the transformer's buffers. It is
// valid until the next Analyze or Reset on that transformer; Refresh updates
// Values in place. Use Clone for an independent copy.
type Matrix[I Index] struct {
	N      int
	RowPtr []I
	ColIdx []I
	Values []float64
}

// NNZ returns the number of stored entries, RowPtr[N].
// Complexity: O(1).
func (m Matrix[I]) NNZ() int {
	if len(m.RowPtr) == 0 {
		return 0
	}

	return int(m.RowPtr[len(m.RowPtr)-1])
}

// HasValues reports whether the matrix carries numeric values.
func (m Matrix[I]) HasValues() bool { return m.Values != nil }

// Row returns the column indices and values of row i as subslices.
// vals is nil when the matrix is structure-only.
// Complexity: O(1).
func (m Matrix[I]) Row(i int) (cols []I, vals []float64) {
	start, end := int(m.RowPtr[i]), int(m.RowPtr[i+1])
	cols = m.ColIdx[start:end]
	if m.Values != nil {
		vals = m.Values[start:end]
	}

	return cols, vals
}

// Clone returns a deep copy that shares no storage with m.
// Complexity: O(N + nnz).
func (m Matrix[I]) Clone() Matrix[I] {
	out := Matrix[I]{
		N:      m.N,
		RowPtr: append([]I(nil), m.RowPtr...),
		ColIdx: append([]I(nil), m.ColIdx...),
	}
	if m.Values != nil {
		out.Values = append([]float64(nil), m.Values...)
	}

	return out
}

// Validate runs the full structural check on m, plus the value length check
// when values are present.
// Complexity: O(N + nnz).
func (m Matrix[I]) Validate() error {
	if err := ValidateStructure(m.N, m.RowPtr, m.ColIdx); err != nil {
		return Errorf("Matrix.Validate", err)
	}
	if m.Values != nil {
		if err := ValidateValues(m.Values, m.NNZ(), false); err != nil {
			return Errorf("Matrix.Validate", err)
		}
	}

	return nil
}

// State is the lifecycle state of a transformer.
//
//	Empty    — no structure; only Analyze is meaningful.
//	Analyzed — structure frozen, values may be refreshed.
//
// Analyze always passes through Empty first, so a failed Analyze leaves the
// transformer Empty rather than holding the previous generation.
type State uint8

const (
	// Empty means no derived structure is held.
	Empty State = iota
	// Analyzed means the structural phase completed successfully.
	Analyzed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Analyzed:
		return "analyzed"
	default:
		return "unknown"
	}
}
