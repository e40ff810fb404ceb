// SPDX-License-Identifier: MIT
// Package dedup_test contains test fixtures
//
// Purpose:
//   - Deterministic random CSR inputs with frequent duplicates.
//   - A naive map-based reference merge to compare the Merger against.

package dedup_test

import (
	"math/rand"
)

// randomCSR builds an n×n CSR matrix with up to maxPerRow entries per row.
// Columns are drawn from a window of three around the diagonal so repeated
// (row, column) pairs are common.
func randomCSR(rng *rand.Rand, n, maxPerRow int) (rowPtr, colIdx []int32, values []float64) {
	rowPtr = make([]int32, n+1)
	colIdx = []int32{}
	values = []float64{}
	for i := 0; i < n; i++ {
		k := rng.Intn(maxPerRow + 1)
		for e := 0; e < k; e++ {
			colIdx = append(colIdx, int32((i+rng.Intn(3))%n))
			values = append(values, rng.NormFloat64())
		}
		rowPtr[i+1] = int32(len(colIdx))
	}

	return rowPtr, colIdx, values
}

// randomValues returns nnz fresh values.
func randomValues(rng *rand.Rand, nnz int) []float64 {
	out := make([]float64, nnz)
	for i := range out {
		out[i] = rng.NormFloat64()
	}

	return out
}

// refRow is the reference merge result of one row.
type refRow struct {
	cols []int32
	sums map[int32]float64
}

// referenceMerge merges each row with a map, recording first-occurrence
// order. Sums are accumulated in input order, like the Merger.
func referenceMerge(n int, rowPtr, colIdx []int32, values []float64) []refRow {
	rows := make([]refRow, n)
	for i := 0; i < n; i++ {
		r := refRow{sums: map[int32]float64{}}
		for p := rowPtr[i]; p < rowPtr[i+1]; p++ {
			j := colIdx[p]
			if _, seen := r.sums[j]; !seen {
				r.cols = append(r.cols, j)
				r.sums[j] = values[p]
				continue
			}
			r.sums[j] += values[p]
		}
		rows[i] = r
	}

	return rows
}
