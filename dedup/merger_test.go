// SPDX-License-Identifier: MIT

package dedup_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/csrprep/csr"
	"github.com/katalvlaran/csrprep/dedup"
)

// fixture: row 0 repeats column 2 (3.0 and -1.5), row 2 repeats column 0
// three times.
var (
	fxRowPtr = []int32{0, 3, 4, 7}
	fxColIdx = []int32{2, 0, 2, 1, 0, 0, 0}
	fxValues = []float64{3, 1, -1.5, 2, 1, 1, 1}
)

func TestMergerSumsDuplicates(t *testing.T) {
	m := dedup.New[int32]()
	out, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)

	require.Equal(t, csr.Analyzed, m.State())
	require.Equal(t, 3, out.N)
	require.Equal(t, []int32{0, 2, 3, 4}, out.RowPtr)
	require.Equal(t, []int32{2, 0, 1, 0}, out.ColIdx)
	require.Equal(t, []float64{1.5, 1, 2, 3}, out.Values)
	require.Equal(t, []int32{0, 1, 0, 2, 3, 3, 3}, m.ScatterMap())

	require.Equal(t, 4, m.NNZ())
	require.Equal(t, 7, m.SourceNNZ())
	require.Equal(t, 3, m.Duplicates())
	require.Equal(t, 3, m.N())
}

func TestMergerStructureOnly(t *testing.T) {
	m := dedup.New[int32]()
	out, err := m.Analyze(3, fxRowPtr, fxColIdx, nil)
	require.NoError(t, err)
	require.Equal(t, []int32{2, 0, 1, 0}, out.ColIdx)
	require.Equal(t, []float64{0, 0, 0, 0}, out.Values)

	require.NoError(t, m.Refresh(fxValues))
	require.Equal(t, []float64{1.5, 1, 2, 3}, m.Values())
	// out aliases the Merger's buffers.
	require.Equal(t, []float64{1.5, 1, 2, 3}, out.Values)
}

// TestMergerAgainstReference compares random merges with the map-based
// reference: per-row bound, unique columns, first-occurrence order, sums.
func TestMergerAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1337))
	m := dedup.New[int32]()
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(12)
		rowPtr, colIdx, values := randomCSR(rng, n, 6)

		out, err := m.Analyze(n, rowPtr, colIdx, values)
		require.NoError(t, err)
		require.LessOrEqual(t, out.NNZ(), len(colIdx))

		ref := referenceMerge(n, rowPtr, colIdx, values)
		for i := 0; i < n; i++ {
			cols, vals := out.Row(i)
			require.LessOrEqual(t, len(cols), int(rowPtr[i+1]-rowPtr[i]))
			require.Equal(t, ref[i].cols, nilIfEmpty(cols), "row %d order", i)
			for k, j := range cols {
				require.Equal(t, ref[i].sums[j], vals[k], "row %d col %d", i, j)
			}
		}
	}
}

func nilIfEmpty(s []int32) []int32 {
	if len(s) == 0 {
		return nil
	}

	return s
}

// TestMergerRefreshMatchesAnalyze: Refresh(values) equals a fresh Analyze
// with the same structure and values, bit for bit.
func TestMergerRefreshMatchesAnalyze(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 30; trial++ {
		n := 1 + rng.Intn(10)
		rowPtr, colIdx, values := randomCSR(rng, n, 8)

		refreshed := dedup.New[int32]()
		_, err := refreshed.Analyze(n, rowPtr, colIdx, values)
		require.NoError(t, err)

		next := randomValues(rng, len(colIdx))
		require.NoError(t, refreshed.Refresh(next))

		fresh := dedup.New[int32]()
		want, err := fresh.Analyze(n, rowPtr, colIdx, next)
		require.NoError(t, err)
		require.Equal(t, want.Values, refreshed.Values())
	}
}

// TestMergerRefreshKeepsStructure: any number of Refresh calls leaves row
// pointers, columns and the scatter map bit-identical.
func TestMergerRefreshKeepsStructure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rowPtr, colIdx, values := randomCSR(rng, 20, 6)

	m := dedup.New[int32]()
	_, err := m.Analyze(20, rowPtr, colIdx, values)
	require.NoError(t, err)
	rp := append([]int32(nil), m.RowPtr()...)
	ci := append([]int32(nil), m.ColIdx()...)
	sc := append([]int32(nil), m.ScatterMap()...)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Refresh(randomValues(rng, len(colIdx))))
	}
	require.Equal(t, rp, m.RowPtr())
	require.Equal(t, ci, m.ColIdx())
	require.Equal(t, sc, m.ScatterMap())
}

func TestMergerAnalyzeIsIdempotent(t *testing.T) {
	m := dedup.New[int32]()
	first, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)
	first = first.Clone()

	second, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMergerRefreshErrors(t *testing.T) {
	m := dedup.New[int32]()
	require.ErrorIs(t, m.Refresh(fxValues), csr.ErrNotAnalyzed)

	_, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)

	require.ErrorIs(t, m.Refresh(fxValues[:6]), csr.ErrLengthMismatch)
	require.ErrorIs(t, m.Refresh(nil), csr.ErrLengthMismatch)
	// Rejected refreshes leave values untouched.
	require.Equal(t, []float64{1.5, 1, 2, 3}, m.Values())
}

// TestMergerFailedAnalyzeLeavesEmpty: a rejected re-analysis drops the
// previous generation instead of keeping it.
func TestMergerFailedAnalyzeLeavesEmpty(t *testing.T) {
	m := dedup.New[int32]()
	_, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)

	out, err := m.Analyze(3, fxRowPtr, []int32{2, 0, 2, 1, 0, 0, 9}, fxValues)
	require.ErrorIs(t, err, csr.ErrColumnOutOfRange)
	require.Equal(t, csr.Matrix[int32]{}, out)

	require.Equal(t, csr.Empty, m.State())
	require.Nil(t, m.RowPtr())
	require.Nil(t, m.ColIdx())
	require.Nil(t, m.Values())
	require.Nil(t, m.ScatterMap())
	require.Equal(t, csr.Matrix[int32]{}, m.Matrix())
	require.ErrorIs(t, m.Refresh(fxValues), csr.ErrNotAnalyzed)
}

func TestMergerAnalyzeRejectsBadInput(t *testing.T) {
	m := dedup.New[int32]()

	_, err := m.Analyze(0, []int32{0}, nil, nil)
	require.ErrorIs(t, err, csr.ErrInvalidDimension)

	_, err = m.Analyze(3, []int32{0, 3, 2, 7}, fxColIdx, fxValues)
	require.ErrorIs(t, err, csr.ErrBadRowPtr)

	_, err = m.Analyze(3, fxRowPtr, fxColIdx, fxValues[:5])
	require.ErrorIs(t, err, csr.ErrLengthMismatch)
}

func TestMergerFinitePolicy(t *testing.T) {
	bad := append([]float64(nil), fxValues...)
	bad[4] = math.NaN()

	lenient := dedup.New[int32]()
	_, err := lenient.Analyze(3, fxRowPtr, fxColIdx, bad)
	require.NoError(t, err)

	strict := dedup.New[int32](csr.WithValidateNaNInf())
	_, err = strict.Analyze(3, fxRowPtr, fxColIdx, bad)
	require.ErrorIs(t, err, csr.ErrNaNInf)

	_, err = strict.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)
	require.ErrorIs(t, strict.Refresh(bad), csr.ErrNaNInf)
}

// TestMergerPreservesDenseForm: raw and merged matrices are the same
// operator. Uses 64-bit indices.
func TestMergerPreservesDenseForm(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	rp32, ci32, values := randomCSR(rng, 15, 7)
	rowPtr := make([]int64, len(rp32))
	for i, v := range rp32 {
		rowPtr[i] = int64(v)
	}
	colIdx := make([]int64, len(ci32))
	for i, v := range ci32 {
		colIdx[i] = int64(v)
	}

	m := dedup.New[int64]()
	out, err := m.Analyze(15, rowPtr, colIdx, values)
	require.NoError(t, err)

	raw, err := csr.ToDense(csr.Matrix[int64]{N: 15, RowPtr: rowPtr, ColIdx: colIdx, Values: values})
	require.NoError(t, err)
	merged, err := csr.ToDense(out)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(raw, merged, 1e-12))
}

func TestMergerSkipStructureCheck(t *testing.T) {
	m := dedup.New[int32](csr.WithSkipStructureCheck())
	out, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 1, 2, 3}, out.Values)

	// Shape errors are still reported.
	_, err = m.Analyze(3, fxRowPtr[:3], fxColIdx, fxValues)
	require.ErrorIs(t, err, csr.ErrBadRowPtr)
}

func TestMergerLogsAnalyze(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := dedup.New[int32](csr.WithLogger(logger))
	_, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "duplicates=3")
	require.Contains(t, buf.String(), "merged_nnz=4")
}

func TestMergerReset(t *testing.T) {
	m := dedup.New[int32]()
	_, err := m.Analyze(3, fxRowPtr, fxColIdx, fxValues)
	require.NoError(t, err)

	m.Reset()
	require.Equal(t, csr.Empty, m.State())
	require.Equal(t, 0, m.N())
	require.Equal(t, 0, m.NNZ())
	require.Equal(t, 0, m.SourceNNZ())
}
