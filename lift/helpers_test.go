// SPDX-License-Identifier: MIT

package lift_test

import (
	"math/rand"
)

// randomComplexCSR builds an n×n complex CSR matrix with interleaved values.
// Every row gets a dominant diagonal entry plus up to extra random
// off-diagonal (possibly repeated) entries, so the result is nonsingular.
func randomComplexCSR(rng *rand.Rand, n, extra int) (rowPtr, colIdx []int32, values []float64) {
	rowPtr = make([]int32, n+1)
	for i := 0; i < n; i++ {
		k := rng.Intn(extra + 1)
		diagAt := rng.Intn(k + 1)
		for e := 0; e <= k; e++ {
			if e == diagAt {
				colIdx = append(colIdx, int32(i))
				values = append(values, float64(4*(extra+1))+rng.Float64(), rng.NormFloat64())
				continue
			}
			colIdx = append(colIdx, int32(rng.Intn(n)))
			values = append(values, rng.Float64()*2-1, rng.Float64()*2-1)
		}
		rowPtr[i+1] = int32(len(colIdx))
	}

	return rowPtr, colIdx, values
}

func randomComplexVec(rng *rand.Rand, n int) []complex128 {
	z := make([]complex128, n)
	for i := range z {
		z[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	return z
}

func randomFloats(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}

	return out
}

// 6×6 complex fixture whose solution is x_k = (2k+1) + (2k+2)i.
var (
	demoRowPtr = []int32{0, 3, 5, 7, 8, 10, 13}
	demoColIdx = []int32{0, 3, 4, 1, 4, 1, 2, 3, 2, 4, 0, 3, 5}
	demoValues = []float64{
		1, 1.1, -7, -7.7, 13, 13.13, 2, 2.2, 9, 9.9, 8, 8.8, -3, -3.3,
		-4, -4.4, 11, 11.11, 5, 5.5, 10, 10.10, 12, 12.12, 6, 6.6,
	}
	demoRHS = []float64{
		-2.9, 141.37, -20.8, 193.7, -6.4, 23.9, 7.2, -62.8,
		-21.66, 221.05, -36.36, 355.54,
	}
)
