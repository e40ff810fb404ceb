// SPDX-License-Identifier: MIT
// Package csr: sentinel error set.
// Every error returned by csr, dedup, lift and pipeline wraps one of these
// sentinels; callers match them with errors.Is. User-triggered conditions
// never panic. Panics are reserved for nonsensical option parameters.

package csr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when the matrix dimension n is not positive.
	ErrInvalidDimension = errors.New("csr: dimension must be > 0")

	// ErrBadRowPtr indicates a malformed row pointer array: wrong length,
	// RowPtr[0] != 0, a negative entry or a decreasing step.
	ErrBadRowPtr = errors.New("csr: malformed row pointer")

	// ErrColumnOutOfRange indicates a column index outside [0, n).
	ErrColumnOutOfRange = errors.New("csr: column index out of range")

	// ErrLengthMismatch indicates that an array length does not match the
	// number of stored entries (ColIdx, Values, complex values, refresh input).
	ErrLengthMismatch = errors.New("csr: length mismatch")

	// ErrNaNInf signals a NaN or ±Inf value under the finite-value policy.
	ErrNaNInf = errors.New("csr: NaN or Inf encountered")

	// ErrIndexOverflow is returned when a derived dimension or entry count
	// does not fit the index type of the matrix.
	ErrIndexOverflow = errors.New("csr: index type overflow")

	// ErrNotAnalyzed is returned by value-phase operations on a component
	// that holds no analyzed structure.
	ErrNotAnalyzed = errors.New("csr: structure not analyzed")
)

// Errorf wraps err with an operation tag ("Merger.Analyze: csr: ...").
// The sentinel stays reachable through errors.Is.
func Errorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
