// SPDX-License-Identifier: MIT

// Package csr: functional configuration shared by the transformers.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - GatherOptions, which resolves a list of Option into Options.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Every flag changes behavior and is covered by tests.
//   - Panic only on invalid parameters (programmer error).

package csr

import (
	"io"
	"log/slog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultStructureCheck enables the O(n + nnz) structural scan (row
	// pointer monotonicity, column range) on every Analyze.
	DefaultStructureCheck = true

	// DefaultValidateNaNInf rejects NaN/±Inf values on Analyze and Refresh.
	// Off by default: value refresh sits in the simulator's inner loop.
	DefaultValidateNaNInf = false
)

const panicNilLogger = "csr: WithLogger: logger must be non-nil"

// discardLogger is the default logger; the library is silent unless the
// caller injects a logger.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; read them through the accessor methods.
type Options struct {
	logger         *slog.Logger
	structureCheck bool
	validateNaNInf bool
}

// WithLogger routes component diagnostics to l.
// Panics when l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// WithStructureCheck enables the full structural scan on Analyze (default).
func WithStructureCheck() Option {
	return func(o *Options) { o.structureCheck = true }
}

// WithSkipStructureCheck limits Analyze to O(1) shape checks (lengths and
// RowPtr[0]). Use only for inputs already validated upstream: a decreasing
// row pointer or an out-of-range column then panics with an index error
// instead of returning ErrBadRowPtr / ErrColumnOutOfRange.
func WithSkipStructureCheck() Option {
	return func(o *Options) { o.structureCheck = false }
}

// WithValidateNaNInf rejects NaN and ±Inf values on Analyze and Refresh.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf lets non-finite values pass through (default).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// GatherOptions applies user setters over the defaults, in order
// (last writer wins).
func GatherOptions(user ...Option) Options {
	o := Options{
		logger:         discardLogger,
		structureCheck: DefaultStructureCheck,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// Logger returns the configured logger (never nil).
func (o Options) Logger() *slog.Logger { return o.logger }

// StructureCheck reports whether the full structural scan is enabled.
func (o Options) StructureCheck() bool { return o.structureCheck }

// ValidateNaNInf reports whether non-finite values are rejected.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }
