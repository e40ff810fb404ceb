// SPDX-License-Identifier: MIT

// Package csr holds the shared data model of csrprep: square sparse matrices
// in Compressed Sparse Row form, together with the sentinel errors,
// validators and functional options used by the dedup and lift transformers.
//
// A Matrix is three parallel arrays plus a dimension:
//
//	RowPtr  length N+1, RowPtr[0]==0, non-decreasing
//	ColIdx  length RowPtr[N], every entry in [0, N)
//	Values  length RowPtr[N], or nil for structure-only inputs
//
// Row i owns the contiguous range [RowPtr[i], RowPtr[i+1]) of ColIdx and
// Values. Column order inside a row is not required to be sorted and the
// same column may appear more than once (see package dedup).
//
// The index type is generic (Index) so callers can keep int32 arrays for
// ordinary circuits and int64 arrays for very large ones without copying.
//
// Helpers ToDense, MulVec and Residual bridge to gonum for verification;
// they are O(N²) or O(nnz) reference paths and not part of the hot loop.
package csr
