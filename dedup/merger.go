// SPDX-License-Identifier: MIT

package dedup

import (
	"github.com/katalvlaran/csrprep/csr"
)

// ---------- error context tags ----------

const (
	tagAnalyze = "Merger.Analyze"
	tagRefresh = "Merger.Refresh"
)

// Merger removes duplicate entries from CSR matrices and keeps the scatter
// map needed to repeat the summation for new values.
//
// The zero value is not usable; construct with New.
type Merger[I csr.Index] struct {
	opts  csr.Options
	state csr.State

	n      int // dimension of the last analyzed matrix
	srcNNZ int // entry count of the original (duplicate-containing) input

	rowPtr  []I       // len n+1
	colIdx  []I       // len nnz'
	values  []float64 // len nnz'
	scatter []I       // len srcNNZ; original position -> merged slot
}

// New returns an Empty Merger configured by opts.
func New[I csr.Index](opts ...csr.Option) *Merger[I] {
	return &Merger[I]{opts: csr.GatherOptions(opts...)}
}

// Analyze deduplicates the CSR matrix (n, rowPtr, colIdx, values) and
// returns the merged matrix. values may be nil: the structure is then
// deduplicated on its own and the merged values are zero-filled, ready for
// the first Refresh.
//
// Implementation:
//   - Stage 1: drop the previous generation (the Merger is Empty from here).
//   - Stage 2: validate input per the configured options.
//   - Stage 3: one pass per row; mark[j] == i means column j was already
//     seen in row i and slot[j] is where it lives.
//   - Stage 4: install the new arrays and switch to Analyzed.
//
// Errors leave the Merger Empty: ErrInvalidDimension, ErrBadRowPtr,
// ErrColumnOutOfRange, ErrLengthMismatch, ErrNaNInf.
//
// The returned Matrix aliases the Merger's buffers.
//
// Complexity: O(n + nnz) time, O(n + nnz) extra space.
func (m *Merger[I]) Analyze(n int, rowPtr, colIdx []I, values []float64) (csr.Matrix[I], error) {
	m.Reset()

	if err := csr.CheckInput(m.opts, n, rowPtr, colIdx); err != nil {
		return csr.Matrix[I]{}, csr.Errorf(tagAnalyze, err)
	}
	nnz := int(rowPtr[n])
	hasValues := values != nil
	if hasValues {
		if err := csr.ValidateValues(values, nnz, m.opts.ValidateNaNInf()); err != nil {
			return csr.Matrix[I]{}, csr.Errorf(tagAnalyze, err)
		}
	}

	var (
		outRowPtr = make([]I, n+1)
		outColIdx = make([]I, nnz)
		outValues = make([]float64, nnz)
		scatter   = make([]I, nnz)
		mark      = make([]int, n) // last row that touched column j
		slot      = make([]I, n)   // merged slot of column j in that row
		k         int              // running merged entry count
	)
	for j := range mark {
		mark[j] = -1
	}

	for i := 0; i < n; i++ {
		end := int(rowPtr[i+1])
		for p := int(rowPtr[i]); p < end; p++ {
			j := int(colIdx[p])
			if mark[j] != i {
				mark[j] = i
				outColIdx[k] = colIdx[p]
				if hasValues {
					outValues[k] = values[p]
				}
				scatter[p] = I(k)
				slot[j] = I(k)
				k++
				continue
			}
			t := slot[j]
			scatter[p] = t
			if hasValues {
				outValues[int(t)] += values[p]
			}
		}
		outRowPtr[i+1] = I(k)
	}

	m.n = n
	m.srcNNZ = nnz
	m.rowPtr = outRowPtr
	m.colIdx = outColIdx[:k:k]
	m.values = outValues[:k:k]
	m.scatter = scatter
	m.state = csr.Analyzed

	m.opts.Logger().Debug("csr duplicates merged",
		"n", n,
		"nnz", nnz,
		"merged_nnz", k,
		"duplicates", nnz-k,
		"with_values", hasValues,
	)

	return m.Matrix(), nil
}

// Refresh recomputes the merged values for a new value array over the
// structure frozen by the last Analyze: values' is zeroed and every
// values[p] is added into values'[scatter[p]]. The result is identical to a
// fresh Analyze with the same structure and values. Indices and the scatter
// map are not touched.
//
// Errors: ErrNotAnalyzed when the Merger is Empty; ErrLengthMismatch when
// len(values) differs from the original nnz; ErrNaNInf under the finite
// policy. On error the merged values are left unchanged.
//
// Complexity: O(nnz).
func (m *Merger[I]) Refresh(values []float64) error {
	if m.state != csr.Analyzed {
		return csr.Errorf(tagRefresh, csr.ErrNotAnalyzed)
	}
	if err := csr.ValidateValues(values, m.srcNNZ, m.opts.ValidateNaNInf()); err != nil {
		return csr.Errorf(tagRefresh, err)
	}

	clear(m.values)
	for p, t := range m.scatter {
		m.values[int(t)] += values[p]
	}

	return nil
}

// Reset releases all derived state and returns the Merger to Empty.
func (m *Merger[I]) Reset() {
	m.state = csr.Empty
	m.n = 0
	m.srcNNZ = 0
	m.rowPtr = nil
	m.colIdx = nil
	m.values = nil
	m.scatter = nil
}

// State reports whether the Merger holds an analyzed structure.
func (m *Merger[I]) State() csr.State { return m.state }

// N returns the dimension of the analyzed matrix (0 when Empty).
func (m *Merger[I]) N() int { return m.n }

// NNZ returns the merged entry count nnz'.
func (m *Merger[I]) NNZ() int { return len(m.colIdx) }

// SourceNNZ returns the entry count of the original input.
func (m *Merger[I]) SourceNNZ() int { return m.srcNNZ }

// Duplicates returns how many input entries were folded into earlier ones.
func (m *Merger[I]) Duplicates() int { return m.srcNNZ - len(m.colIdx) }

// RowPtr returns the merged row pointers. Read-only.
func (m *Merger[I]) RowPtr() []I { return m.rowPtr }

// ColIdx returns the merged column indices. Read-only.
func (m *Merger[I]) ColIdx() []I { return m.colIdx }

// Values returns the merged values, updated in place by Refresh.
func (m *Merger[I]) Values() []float64 { return m.values }

// ScatterMap returns, for every original entry position, the merged slot it
// accumulates into. Read-only.
func (m *Merger[I]) ScatterMap() []I { return m.scatter }

// Matrix returns the merged matrix as a csr.Matrix aliasing the Merger's
// buffers; the zero Matrix when Empty.
func (m *Merger[I]) Matrix() csr.Matrix[I] {
	if m.state != csr.Analyzed {
		return csr.Matrix[I]{}
	}

	return csr.Matrix[I]{N: m.n, RowPtr: m.rowPtr, ColIdx: m.colIdx, Values: m.values}
}
