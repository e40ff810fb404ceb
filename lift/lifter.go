// SPDX-License-Identifier: MIT

package lift

import (
	"math"

	"github.com/katalvlaran/csrprep/csr"
)

const (
	tagAnalyze = "Lifter.Analyze"
	tagRefresh = "Lifter.Refresh"
)

// Lifter holds the real 2n×2n CSR form of an n×n complex CSR matrix.
//
// Layout of the lifted row pair for original row i with len_i entries:
//
//	row 2i:   [ a0 -b0 | a1 -b1 | ... ]   2·len_i slots from RowPtr[2i]
//	row 2i+1: [ b0  a0 | b1  a1 | ... ]   2·len_i slots from RowPtr[2i+1]
//
// The k-th original entry of the row owns slots RowPtr[2i]+2k, +1 and the
// same offsets shifted by 2·len_i. Refresh relies on this fixed pattern.
type Lifter[I csr.Index] struct {
	opts  csr.Options
	state csr.State

	n int // source (complex) dimension

	rowPtr []I       // len 2n+1
	colIdx []I       // len 4·nnz
	values []float64 // len 4·nnz
}

// New returns an Empty Lifter configured by opts.
func New[I csr.Index](opts ...csr.Option) *Lifter[I] {
	return &Lifter[I]{opts: csr.GatherOptions(opts...)}
}

// Analyze lifts the complex CSR matrix (n, rowPtr, colIdx, complexValues)
// to its real 2n×2n equivalent. complexValues holds interleaved (re, im)
// pairs, 2·nnz floats; it may be nil, in which case only the structure is
// built and the lifted values are zero until the first Refresh.
//
// Errors leave the Lifter Empty: the csr validation sentinels, plus
// ErrIndexOverflow when 2n or 4·nnz does not fit the index type.
//
// The returned Matrix aliases the Lifter's buffers.
//
// Complexity: O(n + nnz).
func (l *Lifter[I]) Analyze(n int, rowPtr, colIdx []I, complexValues []float64) (csr.Matrix[I], error) {
	l.Reset()

	if err := csr.CheckInput(l.opts, n, rowPtr, colIdx); err != nil {
		return csr.Matrix[I]{}, csr.Errorf(tagAnalyze, err)
	}
	nnz := int(rowPtr[n])
	hasValues := complexValues != nil
	if hasValues {
		if err := csr.ValidateComplexValues(complexValues, nnz, l.opts.ValidateNaNInf()); err != nil {
			return csr.Matrix[I]{}, csr.Errorf(tagAnalyze, err)
		}
	}
	if n > math.MaxInt/2 || nnz > math.MaxInt/4 || !csr.FitsIndex[I](2*n) || !csr.FitsIndex[I](4*nnz) {
		return csr.Matrix[I]{}, csr.Errorf(tagAnalyze, csr.ErrIndexOverflow)
	}

	var (
		rn        = 2 * n
		rnz       = 4 * nnz
		outRowPtr = make([]I, rn+1)
		outColIdx = make([]I, rnz)
		outValues = make([]float64, rnz)
	)
	for i := 0; i < n; i++ {
		start, end := int(rowPtr[i]), int(rowPtr[i+1])
		width := 2 * (end - start) // slots per lifted row
		a := int(outRowPtr[2*i])
		outRowPtr[2*i+1] = I(a + width)
		outRowPtr[2*i+2] = I(a + 2*width)

		for p := start; p < end; p, a = p+1, a+2 {
			j2 := 2 * int(colIdx[p])
			c := a + width
			outColIdx[a] = I(j2)
			outColIdx[a+1] = I(j2 + 1)
			outColIdx[c] = I(j2)
			outColIdx[c+1] = I(j2 + 1)
			if hasValues {
				putBlock(outValues, a, c, complexValues[2*p], complexValues[2*p+1])
			}
		}
	}

	l.n = n
	l.rowPtr = outRowPtr
	l.colIdx = outColIdx
	l.values = outValues
	l.state = csr.Analyzed

	l.opts.Logger().Debug("complex csr lifted",
		"n", n,
		"nnz", nnz,
		"real_n", rn,
		"real_nnz", rnz,
		"with_values", hasValues,
	)

	return l.Matrix(), nil
}

// Refresh rewrites the lifted values from a new interleaved complex value
// array over the structure frozen by Analyze. Slot positions are derived
// from the lifted row pointers; indices are never touched.
//
// Errors: ErrNotAnalyzed when Empty; ErrLengthMismatch unless
// len(complexValues) == 2·SourceNNZ(); ErrNaNInf under the finite policy.
// On error the lifted values are left unchanged.
//
// Complexity: O(n + nnz).
func (l *Lifter[I]) Refresh(complexValues []float64) error {
	if l.state != csr.Analyzed {
		return csr.Errorf(tagRefresh, csr.ErrNotAnalyzed)
	}
	if err := csr.ValidateComplexValues(complexValues, l.SourceNNZ(), l.opts.ValidateNaNInf()); err != nil {
		return csr.Errorf(tagRefresh, err)
	}

	for i := 0; i < l.n; i++ {
		base := int(l.rowPtr[2*i])
		width := int(l.rowPtr[2*i+1]) - base
		first := base / 4 // original position of the row's first entry
		for k := 0; k < width/2; k++ {
			p := first + k
			a := base + 2*k
			putBlock(l.values, a, a+width, complexValues[2*p], complexValues[2*p+1])
		}
	}

	return nil
}

// putBlock writes re+i·im as [[re, -im], [im, re]]: a and a+1 in the even
// lifted row, c and c+1 in the odd one.
func putBlock(dst []float64, a, c int, re, im float64) {
	dst[a] = re
	dst[a+1] = -im
	dst[c] = im
	dst[c+1] = re
}

// Reset releases all derived state and returns the Lifter to Empty.
func (l *Lifter[I]) Reset() {
	l.state = csr.Empty
	l.n = 0
	l.rowPtr = nil
	l.colIdx = nil
	l.values = nil
}

// State reports whether the Lifter holds an analyzed structure.
func (l *Lifter[I]) State() csr.State { return l.state }

// N returns the lifted dimension 2n (0 when Empty).
func (l *Lifter[I]) N() int { return 2 * l.n }

// SourceN returns the complex dimension n.
func (l *Lifter[I]) SourceN() int { return l.n }

// NNZ returns the lifted entry count, 4·SourceNNZ().
func (l *Lifter[I]) NNZ() int { return len(l.colIdx) }

// SourceNNZ returns the complex entry count.
func (l *Lifter[I]) SourceNNZ() int { return len(l.colIdx) / 4 }

// RowPtr returns the lifted row pointers. Read-only.
func (l *Lifter[I]) RowPtr() []I { return l.rowPtr }

// ColIdx returns the lifted column indices. Read-only.
func (l *Lifter[I]) ColIdx() []I { return l.colIdx }

// Values returns the lifted values, updated in place by Refresh.
func (l *Lifter[I]) Values() []float64 { return l.values }

// Matrix returns the lifted matrix aliasing the Lifter's buffers; the zero
// Matrix when Empty.
func (l *Lifter[I]) Matrix() csr.Matrix[I] {
	if l.state != csr.Analyzed {
		return csr.Matrix[I]{}
	}

	return csr.Matrix[I]{N: 2 * l.n, RowPtr: l.rowPtr, ColIdx: l.colIdx, Values: l.values}
}
