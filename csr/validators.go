// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Single source of truth for CSR input checks, so dedup and lift share
//     identical guard semantics.
//   - Return sentinel errors wrapped with a validator tag; callers add their
//     own method tag on top.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing.
//   - ValidateShape is O(1); ValidateStructure is O(n + nnz).

package csr

import "math"

// ValidateDimension ensures n > 0.
func ValidateDimension(n int) error {
	if n <= 0 {
		return Errorf("ValidateDimension", ErrInvalidDimension)
	}

	return nil
}

// ValidateShape performs the O(1) checks that make indexing by RowPtr safe
// at the array ends: n > 0, len(rowPtr) == n+1, rowPtr[0] == 0 and
// rowPtr[n] == len(colIdx).
//
// It does NOT check monotonicity or column ranges; see ValidateStructure.
func ValidateShape[I Index](n int, rowPtr, colIdx []I) error {
	if err := ValidateDimension(n); err != nil {
		return Errorf("ValidateShape", err)
	}
	if len(rowPtr) != n+1 {
		return Errorf("ValidateShape: RowPtr length", ErrBadRowPtr)
	}
	if rowPtr[0] != 0 {
		return Errorf("ValidateShape: RowPtr[0]", ErrBadRowPtr)
	}
	if rowPtr[n] < 0 {
		return Errorf("ValidateShape: RowPtr[n]", ErrBadRowPtr)
	}
	if int(rowPtr[n]) != len(colIdx) {
		return Errorf("ValidateShape: ColIdx length", ErrLengthMismatch)
	}

	return nil
}

// ValidateStructure runs ValidateShape and then scans every row:
// row pointers must be non-decreasing and every column must lie in [0, n).
// Duplicate columns inside a row are legal.
//
// Complexity: O(n + nnz). Space: O(1).
func ValidateStructure[I Index](n int, rowPtr, colIdx []I) error {
	if err := ValidateShape(n, rowPtr, colIdx); err != nil {
		return Errorf("ValidateStructure", err)
	}

	// Monotonicity first: together with RowPtr[n] == len(ColIdx) it bounds
	// every row range, so the column scan below cannot run past ColIdx.
	for i := 0; i < n; i++ {
		if rowPtr[i+1] < rowPtr[i] {
			return Errorf("ValidateStructure: RowPtr not monotone", ErrBadRowPtr)
		}
	}
	for _, col := range colIdx {
		if col < 0 || int(col) >= n {
			return Errorf("ValidateStructure", ErrColumnOutOfRange)
		}
	}

	return nil
}

// ValidateValues ensures len(values) == want and, when finite is true, that
// every value is finite.
//
// Complexity: O(1) without the finite scan, O(len) with it.
func ValidateValues(values []float64, want int, finite bool) error {
	if len(values) != want {
		return Errorf("ValidateValues", ErrLengthMismatch)
	}
	if finite {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Errorf("ValidateValues", ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateComplexValues is ValidateValues for interleaved (re, im) pairs:
// the expected length is 2·nnz.
func ValidateComplexValues(values []float64, nnz int, finite bool) error {
	if err := ValidateValues(values, 2*nnz, finite); err != nil {
		return Errorf("ValidateComplexValues", err)
	}

	return nil
}

// ValidateVecLen ensures a dense vector has exactly n elements.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return Errorf("ValidateVecLen", ErrLengthMismatch)
	}

	return nil
}

// CheckInput validates a CSR structure according to o: the full scan when
// StructureCheck is on, the shape check otherwise.
func CheckInput[I Index](o Options, n int, rowPtr, colIdx []I) error {
	if o.StructureCheck() {
		return ValidateStructure(n, rowPtr, colIdx)
	}

	return ValidateShape(n, rowPtr, colIdx)
}

// FitsIndex reports whether v is non-negative and representable in I.
func FitsIndex[I Index](v int) bool {
	return v >= 0 && int(I(v)) == v
}
