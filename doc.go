// SPDX-License-Identifier: MIT

// Package csrprep prepares square sparse matrices in Compressed Sparse Row
// form for sparse direct solvers that only accept real values and unique
// (row, column) entries.
//
// What is csrprep?
//
//	Two transformers, each split into a structural phase that runs once per
//	sparsity pattern and a value phase that runs on every iteration:
//		• dedup: merge duplicate entries, keep a scatter map for Refresh
//		• lift:  rewrite an n×n complex matrix as its 2n×2n real form
//
// Why two phases?
//
//	Circuit simulators and finite-element codes rebuild matrix values on
//	every Newton step or frequency point while the pattern stays fixed.
//	Analyze pays for the structure once; Refresh rewrites only values in
//	O(nnz), never touching indices, so the downstream solver can keep its
//	symbolic analysis and call Refactorize.
//
// Under the hood:
//
//	csr/       — data model, generic index type, validators, options, errors
//	dedup/     — Merger: Analyze/Refresh duplicate merging
//	lift/      — Lifter: Analyze/Refresh complex-to-real lifting + vectors
//	pipeline/  — lift then dedupe, YAML config, slog logging, Prometheus
//	refsolve/  — dense reference consumer (gonum LU) for verification
//	cmd/csrprep — demo and bench CLI
//
// Quick example of a lifted entry:
//
//	3+4i at (0,0)   →   [ 3  -4 ]   rows 0,1
//	                    [ 4   3 ]   cols 0,1
//
//	go get github.com/katalvlaran/csrprep
package csrprep
