// SPDX-License-Identifier: MIT

package csr_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/csrprep/csr"
)

// demoReal is a 6×6 system with solution x = (1, ..., 6).
func demoReal() (csr.Matrix[int32], []float64) {
	m := csr.Matrix[int32]{
		N:      6,
		RowPtr: []int32{0, 3, 5, 7, 8, 10, 13},
		ColIdx: []int32{0, 3, 4, 1, 4, 1, 2, 3, 2, 4, 0, 3, 5},
		Values: []float64{1.1, -7.7, 13.13, 2.2, 9.9, 8.8, -3.3, -4.4, 11.11, 5.5, 10.1, 12.12, 6.6},
	}
	b := []float64{35.95, 53.9, 7.7, -17.6, 60.83, 98.18}

	return m, b
}

func TestToDenseSumsDuplicates(t *testing.T) {
	m := csr.Matrix[int32]{
		N:      2,
		RowPtr: []int32{0, 3, 4},
		ColIdx: []int32{1, 0, 1, 1},
		Values: []float64{3, 1, -1.5, 2},
	}

	d, err := csr.ToDense(m)
	require.NoError(t, err)
	want := mat.NewDense(2, 2, []float64{
		1, 1.5,
		0, 2,
	})
	require.True(t, mat.Equal(want, d))
}

func TestToDenseRejectsInvalid(t *testing.T) {
	_, err := csr.ToDense(csr.Matrix[int32]{N: 1, RowPtr: []int32{0, 1}, ColIdx: []int32{0}})
	require.ErrorIs(t, err, csr.ErrLengthMismatch)

	_, err = csr.ToDense(csr.Matrix[int32]{N: 1, RowPtr: []int32{0, 1}, ColIdx: []int32{3}, Values: []float64{1}})
	require.ErrorIs(t, err, csr.ErrColumnOutOfRange)
}

func TestMulVecAndResidual(t *testing.T) {
	m, b := demoReal()
	x := []float64{1, 2, 3, 4, 5, 6}

	y, err := csr.MulVec(m, x)
	require.NoError(t, err)
	require.InDeltaSlice(t, b, y, 1e-9)

	r, err := csr.Residual(m, x, b)
	require.NoError(t, err)
	require.InDelta(t, 0, r, 1e-9)

	// Perturbing one unknown by 1 leaves a residual equal to the norm of
	// the matching column.
	x[5] = 7
	r, err = csr.Residual(m, x, b)
	require.NoError(t, err)
	require.InDelta(t, 6.6, r, 1e-9)
}

func TestMulVecRejectsBadVectors(t *testing.T) {
	m, b := demoReal()

	_, err := csr.MulVec(m, []float64{1, 2})
	require.ErrorIs(t, err, csr.ErrLengthMismatch)

	_, err = csr.Residual(m, []float64{1, 2, 3, 4, 5, 6}, b[:5])
	require.ErrorIs(t, err, csr.ErrLengthMismatch)

	m.Values = nil
	_, err = csr.MulVec(m, []float64{1, 2, 3, 4, 5, 6})
	require.ErrorIs(t, err, csr.ErrLengthMismatch)
}
