// SPDX-License-Identifier: MIT

// Package lift rewrites complex CSR matrices as equivalent real ones.
//
// Each complex entry a+bi at (i, j) becomes the 2×2 real block
//
//	(2i,   2j) = a   (2i,   2j+1) = -b
//	(2i+1, 2j) = b   (2i+1, 2j+1) =  a
//
// so an n×n complex system A·z = w becomes a 2n×2n real system whose
// unknowns and right-hand side are the complex vectors interleaved as
// [re0, im0, re1, im1, ...]. A real-only direct solver then handles complex
// systems (AC analysis, phasor circuits) without loss.
//
// Complex values are passed in the same interleaved layout: entry p has its
// real part at 2p and its imaginary part at 2p+1. Interleave and
// Deinterleave convert between []complex128 and that layout.
//
// Like dedup.Merger, a Lifter separates Analyze (structure + values, once)
// from Refresh (values only, per iteration). Refresh needs no stored map:
// the four slots of every original entry follow from the lifted row
// pointers.
package lift
