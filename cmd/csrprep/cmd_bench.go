// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/csrprep/csr"
	"github.com/katalvlaran/csrprep/pipeline"
	"github.com/katalvlaran/csrprep/refsolve"
)

type benchOptions struct {
	nodes      int   // network size
	branches   int   // random two-terminal elements
	complex    bool  // AC network (complex admittances)
	iterations int   // timed Refresh calls
	solveLimit int   // largest solver dimension handed to the dense solver
	seed       int64 // network and right-hand side seed
	metrics    bool  // dump pipeline metrics after the run
}

func newBenchCmd(ro *rootOptions) *cobra.Command {
	bo := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time Analyze and Refresh on a generated stamped network",
		Long: `Generates a random nodal conductance network whose assembly stamps
produce duplicate entries, runs one timed Analyze and repeated timed Refresh
calls through the pipeline, and, for small enough results, factorizes and
solves with the dense reference solver and prints the residual norm.

Examples:
  csrprep bench
  csrprep bench --nodes 20000 --branches 60000 --solve-limit 0
  csrprep bench --complex -n 1000 --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ro.loadConfig()
			if err != nil {
				return err
			}
			cfg.Complex = bo.complex
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			if bo.nodes <= 0 || bo.branches < 0 {
				return errors.New("bench: --nodes must be positive and --branches non-negative")
			}

			reg := prometheus.NewRegistry()
			pl, err := pipeline.New[int32](cfg,
				pipeline.WithLogger(logger),
				pipeline.WithMetrics(pipeline.NewMetrics(reg)),
			)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if err = runBench(w, pl, network(bo.nodes, bo.branches, bo.complex, bo.seed), bo); err != nil {
				return err
			}
			if bo.metrics {
				return writeMetrics(w, reg)
			}

			return nil
		},
	}
	cmd.Flags().IntVar(&bo.nodes, "nodes", 1000, "number of network nodes")
	cmd.Flags().IntVar(&bo.branches, "branches", 3000, "number of random branches")
	cmd.Flags().BoolVar(&bo.complex, "complex", false, "use complex admittances (lifted before merging)")
	cmd.Flags().IntVarP(&bo.iterations, "iterations", "n", 100, "number of timed refreshes")
	cmd.Flags().IntVar(&bo.solveLimit, "solve-limit", 1000, "largest dimension solved with the dense reference solver (0 disables)")
	cmd.Flags().Int64Var(&bo.seed, "seed", 1, "seed for the network and right-hand side")
	cmd.Flags().BoolVar(&bo.metrics, "metrics", false, "print pipeline metrics in Prometheus text format")

	return cmd
}

func runBench(w io.Writer, pl *pipeline.Pipeline[int32], sys system, bo *benchOptions) error {
	fmt.Fprintf(w, "system %s: n=%d nnz=%d complex=%t\n", sys.name, sys.n, len(sys.colIdx), sys.complex)

	start := time.Now()
	out, err := pl.Analyze(sys.n, sys.rowPtr, sys.colIdx, sys.values)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "solver matrix: n=%d nnz=%d\n", out.N, out.NNZ())
	fmt.Fprintf(w, "analysis time = %v\n", time.Since(start))

	if bo.iterations > 0 {
		var total, fastest time.Duration
		for i := 0; i < bo.iterations; i++ {
			t0 := time.Now()
			if err = pl.Refresh(sys.values); err != nil {
				return err
			}
			d := time.Since(t0)
			total += d
			if i == 0 || d < fastest {
				fastest = d
			}
		}
		fmt.Fprintf(w, "refresh average time = %v, min time = %v\n",
			total/time.Duration(bo.iterations), fastest)
	}

	if out.N > bo.solveLimit {
		fmt.Fprintf(w, "solve skipped: n=%d above --solve-limit\n", out.N)
		return nil
	}

	return benchSolve(w, out, sys.rhs)
}

// benchSolve factorizes the solver-ready matrix, solves it for b and
// reports the residual norm.
func benchSolve(w io.Writer, m csr.Matrix[int32], b []float64) error {
	s := refsolve.New[int32]()
	if err := s.Analyze(m); err != nil {
		return err
	}
	start := time.Now()
	if err := s.Factorize(m.Values); err != nil {
		return err
	}
	fmt.Fprintf(w, "factorization time = %v\n", time.Since(start))

	start = time.Now()
	x, err := s.Solve(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "solve time = %v\n", time.Since(start))

	return printResidual(w, "solve", m, x, b)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
