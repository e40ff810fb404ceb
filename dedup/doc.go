// SPDX-License-Identifier: MIT

// Package dedup merges duplicate (row, column) entries of a CSR matrix.
//
// Sparse direct solvers assume each (row, column) pair is stored once, but
// matrices assembled by stamping (circuit simulators, finite elements) emit
// one entry per contribution. A Merger collapses them in two phases:
//
//   - Analyze (structural, once): builds the deduplicated RowPtr/ColIdx and a
//     scatter map from every original entry position to the merged slot it
//     accumulates into. Values, when supplied, are summed at the same time.
//   - Refresh (numeric, per iteration): zeroes the merged values and
//     re-accumulates new input values through the scatter map, in O(nnz),
//     without touching indices.
//
// Within a row, merged entries keep the order of first occurrence.
//
// A Merger is not safe for concurrent use; use one per solver pipeline.
package dedup
