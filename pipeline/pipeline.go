// SPDX-License-Identifier: MIT

// Package pipeline chains the csrprep transformers the way a simulator feeds
// a real-only sparse direct solver:
//
//	complex input --lift--> real 2n×2n --dedupe--> solver-ready CSR
//	real input    ---------------------dedupe--> solver-ready CSR
//
// Analyze runs every stage's structural phase; Refresh runs every stage's
// value phase, each stage feeding the next in place. A Pipeline adds
// structured logging (log/slog) and optional Prometheus metrics around the
// transformers, which stay silent and metric-free on their own.
//
// A Pipeline is not safe for concurrent use.
package pipeline

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/csrprep/csr"
	"github.com/katalvlaran/csrprep/dedup"
	"github.com/katalvlaran/csrprep/lift"
)

// Option configures a Pipeline.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	metrics *Metrics
}

// WithLogger sets the logger used by the pipeline and its transformers.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// Pipeline owns a Lifter and a Merger and the configuration that selects
// which of them run.
type Pipeline[I csr.Index] struct {
	cfg     Config
	csrOpts csr.Options
	logger  *slog.Logger
	metrics *Metrics

	lifter *lift.Lifter[I]
	merger *dedup.Merger[I]

	state csr.State
	out   csr.Matrix[I]
}

// New validates cfg and builds an Empty pipeline.
func New[I csr.Index](cfg Config, opts ...Option) (*Pipeline[I], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := settings{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range opts {
		o(&s)
	}

	csrOpts := cfg.csrOptions(s.logger)
	p := &Pipeline[I]{
		cfg:     cfg,
		csrOpts: csr.GatherOptions(csrOpts...),
		logger:  s.logger,
		metrics: s.metrics,
		merger:  dedup.New[I](csrOpts...),
	}
	if cfg.Complex {
		p.lifter = lift.New[I](csrOpts...)
	}

	return p, nil
}

// Analyze runs the structural phase of every configured stage on the input
// matrix. In complex mode values are interleaved (re, im) pairs of length
// 2·nnz; in real mode they have length nnz. values may be nil.
//
// On error the pipeline is Empty.
func (p *Pipeline[I]) Analyze(n int, rowPtr, colIdx []I, values []float64) (out csr.Matrix[I], err error) {
	start := time.Now()
	defer func() { p.metrics.observe(opAnalyze, start, err) }()

	p.Reset()
	out, err = p.analyze(n, rowPtr, colIdx, values)
	if err != nil {
		p.Reset()
		p.logger.Warn("csr pipeline analyze failed", "n", n, "error", err)
		return csr.Matrix[I]{}, csr.Errorf("Pipeline.Analyze", err)
	}
	p.out = out
	p.state = csr.Analyzed

	p.logger.Info("csr pipeline analyzed",
		"complex", p.cfg.Complex,
		"dedupe", p.cfg.Dedupe,
		"n", n,
		"out_n", out.N,
		"out_nnz", out.NNZ(),
		"elapsed", time.Since(start),
	)

	return out, nil
}

func (p *Pipeline[I]) analyze(n int, rowPtr, colIdx []I, values []float64) (csr.Matrix[I], error) {
	cur := csr.Matrix[I]{N: n, RowPtr: rowPtr, ColIdx: colIdx, Values: values}

	if p.cfg.Complex {
		lifted, err := p.lifter.Analyze(n, rowPtr, colIdx, values)
		if err != nil {
			return csr.Matrix[I]{}, err
		}
		p.metrics.setEntries(stageInput, p.lifter.SourceNNZ())
		p.metrics.setEntries(stageLifted, lifted.NNZ())
		cur = lifted
	}

	if p.cfg.Dedupe {
		merged, err := p.merger.Analyze(cur.N, cur.RowPtr, cur.ColIdx, cur.Values)
		if err != nil {
			return csr.Matrix[I]{}, err
		}
		if !p.cfg.Complex {
			p.metrics.setEntries(stageInput, p.merger.SourceNNZ())
		}
		p.metrics.setEntries(stageOutput, merged.NNZ())
		return merged, nil
	}

	if p.cfg.Complex {
		p.metrics.setEntries(stageOutput, cur.NNZ())
		return cur, nil
	}

	return p.passthrough(cur)
}

// passthrough validates a real input and keeps an owned copy, so later
// Refresh calls never write into caller memory.
func (p *Pipeline[I]) passthrough(in csr.Matrix[I]) (csr.Matrix[I], error) {
	if err := csr.CheckInput(p.csrOpts, in.N, in.RowPtr, in.ColIdx); err != nil {
		return csr.Matrix[I]{}, err
	}
	nnz := in.NNZ()
	if in.Values != nil {
		if err := csr.ValidateValues(in.Values, nnz, p.csrOpts.ValidateNaNInf()); err != nil {
			return csr.Matrix[I]{}, err
		}
	}
	out := in.Clone()
	if out.Values == nil {
		out.Values = make([]float64, nnz)
	}
	p.metrics.setEntries(stageInput, nnz)
	p.metrics.setEntries(stageOutput, nnz)

	return out, nil
}

// Refresh runs the value phase of every configured stage for new input
// values of the analyzed structure. The output matrix returned by Analyze
// (and Matrix) observes the new values in place.
func (p *Pipeline[I]) Refresh(values []float64) (err error) {
	start := time.Now()
	defer func() { p.metrics.observe(opRefresh, start, err) }()

	if p.state != csr.Analyzed {
		return csr.Errorf("Pipeline.Refresh", csr.ErrNotAnalyzed)
	}

	switch {
	case p.cfg.Complex && p.cfg.Dedupe:
		if err = p.lifter.Refresh(values); err == nil {
			err = p.merger.Refresh(p.lifter.Values())
		}
	case p.cfg.Complex:
		err = p.lifter.Refresh(values)
	case p.cfg.Dedupe:
		err = p.merger.Refresh(values)
	default:
		if err = csr.ValidateValues(values, p.out.NNZ(), p.csrOpts.ValidateNaNInf()); err == nil {
			copy(p.out.Values, values)
		}
	}
	if err != nil {
		p.logger.Debug("csr pipeline refresh rejected", "error", err)
		return csr.Errorf("Pipeline.Refresh", err)
	}

	return nil
}

// Matrix returns the solver-ready matrix (zero Matrix when Empty).
func (p *Pipeline[I]) Matrix() csr.Matrix[I] { return p.out }

// State reports whether the pipeline holds an analyzed structure.
func (p *Pipeline[I]) State() csr.State { return p.state }

// Config returns the configuration the pipeline was built with.
func (p *Pipeline[I]) Config() Config { return p.cfg }

// Reset releases every stage and returns the pipeline to Empty.
func (p *Pipeline[I]) Reset() {
	if p.lifter != nil {
		p.lifter.Reset()
	}
	p.merger.Reset()
	p.out = csr.Matrix[I]{}
	p.state = csr.Empty
}
