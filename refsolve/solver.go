// SPDX-License-Identifier: MIT

// Package refsolve is a dense reference implementation of the consumer
// protocol csrprep prepares matrices for:
//
//	Analyze(structure)        once per sparsity pattern
//	Factorize(values)         first numeric factorization
//	Refactorize(values)       later factorizations, same pattern
//	Solve(b) -> x
//
// It densifies the CSR matrix and delegates to gonum's partially pivoted LU.
// It exists to verify preprocessing end to end (tests, examples, the
// csrprep CLI); it is O(n³) and not meant for production-sized systems.
package refsolve

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/csrprep/csr"
)

var (
	// ErrNotFactorized is returned by Refactorize and Solve before a
	// successful Factorize.
	ErrNotFactorized = errors.New("refsolve: matrix not factorized")

	// ErrSingular is returned when the LU factorization is exactly singular.
	ErrSingular = errors.New("refsolve: matrix is numerically singular")
)

type stage uint8

const (
	stageEmpty stage = iota
	stageAnalyzed
	stageFactorized
)

// Solver holds one analyzed structure and its latest factorization.
// Not safe for concurrent use.
type Solver[I csr.Index] struct {
	stage  stage
	n      int
	rowPtr []I
	colIdx []I
	a      *mat.Dense
	lu     mat.LU
}

// New returns an empty Solver.
func New[I csr.Index]() *Solver[I] { return &Solver[I]{} }

// Analyze records the structure of m. Values of m, if any, are ignored.
// Any previous structure and factorization are dropped first.
func (s *Solver[I]) Analyze(m csr.Matrix[I]) error {
	*s = Solver[I]{}
	if err := csr.ValidateStructure(m.N, m.RowPtr, m.ColIdx); err != nil {
		return csr.Errorf("Solver.Analyze", err)
	}
	s.n = m.N
	s.rowPtr = append([]I(nil), m.RowPtr...)
	s.colIdx = append([]I(nil), m.ColIdx...)
	s.a = mat.NewDense(m.N, m.N, nil)
	s.stage = stageAnalyzed

	return nil
}

// Factorize computes the LU factorization for values laid out over the
// analyzed structure (duplicates are summed).
func (s *Solver[I]) Factorize(values []float64) error {
	if s.stage < stageAnalyzed {
		return csr.Errorf("Solver.Factorize", csr.ErrNotAnalyzed)
	}

	return s.factor("Solver.Factorize", values)
}

// Refactorize is Factorize for a solver that already holds a factorization
// of the same structure.
func (s *Solver[I]) Refactorize(values []float64) error {
	if s.stage < stageFactorized {
		return csr.Errorf("Solver.Refactorize", ErrNotFactorized)
	}

	return s.factor("Solver.Refactorize", values)
}

func (s *Solver[I]) factor(tag string, values []float64) error {
	if err := csr.ValidateValues(values, len(s.colIdx), false); err != nil {
		return csr.Errorf(tag, err)
	}

	s.a.Zero()
	for i := 0; i < s.n; i++ {
		for p := int(s.rowPtr[i]); p < int(s.rowPtr[i+1]); p++ {
			j := int(s.colIdx[p])
			s.a.Set(i, j, s.a.At(i, j)+values[p])
		}
	}
	s.lu.Factorize(s.a)
	if logDet, _ := s.lu.LogDet(); math.IsInf(logDet, -1) || math.IsInf(s.lu.Cond(), 1) {
		s.stage = stageAnalyzed
		return csr.Errorf(tag, ErrSingular)
	}
	s.stage = stageFactorized

	return nil
}

// Solve returns x with A·x = b for the latest factorization. An
// ill-conditioned (but not singular) matrix still yields a solution.
func (s *Solver[I]) Solve(b []float64) ([]float64, error) {
	if s.stage < stageFactorized {
		return nil, csr.Errorf("Solver.Solve", ErrNotFactorized)
	}
	if err := csr.ValidateVecLen(b, s.n); err != nil {
		return nil, csr.Errorf("Solver.Solve", err)
	}

	var x mat.VecDense
	err := s.lu.SolveVecTo(&x, false, mat.NewVecDense(s.n, append([]float64(nil), b...)))
	var cond mat.Condition
	if err != nil && !errors.As(err, &cond) {
		return nil, csr.Errorf("Solver.Solve", err)
	}

	return mat.Col(nil, 0, &x), nil
}

// N returns the analyzed dimension.
func (s *Solver[I]) N() int { return s.n }
