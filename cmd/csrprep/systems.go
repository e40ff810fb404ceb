// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand"
)

// system is a small linear system A·x = b in CSR form. For complex systems
// values and rhs hold interleaved (re, im) pairs.
type system struct {
	name    string
	complex bool
	n       int
	rowPtr  []int32
	colIdx  []int32
	values  []float64
	rhs     []float64
}

// realDemo is a 6×6 real system whose solution is x = (1, 2, 3, 4, 5, 6).
func realDemo() system {
	return system{
		name:   "real 6x6",
		n:      6,
		rowPtr: []int32{0, 3, 5, 7, 8, 10, 13},
		colIdx: []int32{0, 3, 4, 1, 4, 1, 2, 3, 2, 4, 0, 3, 5},
		values: []float64{1.1, -7.7, 13.13, 2.2, 9.9, 8.8, -3.3, -4.4, 11.11, 5.5, 10.1, 12.12, 6.6},
		rhs:    []float64{35.95, 53.9, 7.7, -17.6, 60.83, 98.18},
	}
}

// complexDemo is a 6×6 complex system whose solution is
// x_k = (2k+1) + (2k+2)i, k = 0..5.
func complexDemo() system {
	return system{
		name:    "complex 6x6",
		complex: true,
		n:       6,
		rowPtr:  []int32{0, 3, 5, 7, 8, 10, 13},
		colIdx:  []int32{0, 3, 4, 1, 4, 1, 2, 3, 2, 4, 0, 3, 5},
		values: []float64{
			1, 1.1, -7, -7.7, 13, 13.13, 2, 2.2, 9, 9.9, 8, 8.8, -3, -3.3,
			-4, -4.4, 11, 11.11, 5, 5.5, 10, 10.10, 12, 12.12, 6, 6.6,
		},
		rhs: []float64{-2.9, 141.37, -20.8, 193.7, -6.4, 23.9, 7.2, -62.8, -21.66, 221.05, -36.36, 355.54},
	}
}

// split doubles every row: each entry is stored twice with half its value,
// the copies appended after the row's original entries. The matrix is
// unchanged algebraically but now needs deduplication.
func (s system) split() system {
	width := 1
	if s.complex {
		width = 2
	}
	out := s
	out.name = s.name + " (split)"
	out.rowPtr = make([]int32, len(s.rowPtr))
	out.colIdx = make([]int32, 0, 2*len(s.colIdx))
	out.values = make([]float64, 0, 2*len(s.values))
	for i := 0; i < s.n; i++ {
		start, end := int(s.rowPtr[i]), int(s.rowPtr[i+1])
		for pass := 0; pass < 2; pass++ {
			for p := start; p < end; p++ {
				out.colIdx = append(out.colIdx, s.colIdx[p])
				for w := 0; w < width; w++ {
					out.values = append(out.values, s.values[width*p+w]/2)
				}
			}
		}
		out.rowPtr[i+1] = int32(len(out.colIdx))
	}

	return out
}

// network stamps a random conductance network in nodal form: every node is
// tied to ground and each branch joins a random pair of distinct nodes.
// Every stamp is stored as its own entry, so nodes shared by several
// elements produce duplicates the way simulator assembly does. Complex
// networks give each element an admittance g + iB.
//
// The ground ties make the real part strictly diagonally dominant, so the
// matrix is nonsingular. rhs is drawn from [0, 100).
func network(nodes, branches int, complexSys bool, seed int64) system {
	rng := rand.New(rand.NewSource(seed))
	cols := make([][]int32, nodes)
	vals := make([][]float64, nodes)
	stamp := func(i, j int, g, b float64) {
		cols[i] = append(cols[i], int32(j))
		vals[i] = append(vals[i], g)
		if complexSys {
			vals[i] = append(vals[i], b)
		}
	}

	for i := 0; i < nodes; i++ {
		stamp(i, i, 0.1+rng.Float64(), rng.Float64())
	}
	for k := 0; k < branches && nodes > 1; k++ {
		a := rng.Intn(nodes)
		c := rng.Intn(nodes - 1)
		if c >= a {
			c++
		}
		g, b := rng.Float64(), rng.Float64()
		stamp(a, a, g, b)
		stamp(c, c, g, b)
		stamp(a, c, -g, -b)
		stamp(c, a, -g, -b)
	}

	s := system{
		name:    fmt.Sprintf("network %d nodes, %d branches", nodes, branches),
		complex: complexSys,
		n:       nodes,
		rowPtr:  make([]int32, nodes+1),
	}
	for i := range cols {
		s.colIdx = append(s.colIdx, cols[i]...)
		s.values = append(s.values, vals[i]...)
		s.rowPtr[i+1] = int32(len(s.colIdx))
	}
	width := 1
	if complexSys {
		width = 2
	}
	s.rhs = make([]float64, width*nodes)
	for i := range s.rhs {
		s.rhs[i] = rng.Float64() * 100
	}

	return s
}
