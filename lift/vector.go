// SPDX-License-Identifier: MIT

package lift

import (
	"github.com/katalvlaran/csrprep/csr"
)

// Interleave flattens z into [re0, im0, re1, im1, ...].
// The result is both the complex value layout expected by Analyze/Refresh
// and the lifted right-hand side of a complex system.
func Interleave(z []complex128) []float64 {
	out := make([]float64, 2*len(z))
	for k, v := range z {
		out[2*k] = real(v)
		out[2*k+1] = imag(v)
	}

	return out
}

// Deinterleave is the inverse of Interleave: it reads a lifted solution
// vector back as complex numbers. Odd lengths yield ErrLengthMismatch.
func Deinterleave(x []float64) ([]complex128, error) {
	if len(x)%2 != 0 {
		return nil, csr.Errorf("Deinterleave", csr.ErrLengthMismatch)
	}
	out := make([]complex128, len(x)/2)
	for k := range out {
		out[k] = complex(x[2*k], x[2*k+1])
	}

	return out, nil
}

// MulVecComplex computes w = A·z for the complex CSR matrix
// (n, rowPtr, colIdx, complexValues) in complex arithmetic. It is the
// reference the lifted real product is checked against.
//
// Complexity: O(n + nnz).
func MulVecComplex[I csr.Index](n int, rowPtr, colIdx []I, complexValues []float64, z []complex128) ([]complex128, error) {
	if err := csr.ValidateStructure(n, rowPtr, colIdx); err != nil {
		return nil, csr.Errorf("MulVecComplex", err)
	}
	if err := csr.ValidateComplexValues(complexValues, int(rowPtr[n]), false); err != nil {
		return nil, csr.Errorf("MulVecComplex", err)
	}
	if len(z) != n {
		return nil, csr.Errorf("MulVecComplex", csr.ErrLengthMismatch)
	}

	w := make([]complex128, n)
	for i := 0; i < n; i++ {
		var s complex128
		for p := int(rowPtr[i]); p < int(rowPtr[i+1]); p++ {
			s += complex(complexValues[2*p], complexValues[2*p+1]) * z[int(colIdx[p])]
		}
		w[i] = s
	}

	return w, nil
}
