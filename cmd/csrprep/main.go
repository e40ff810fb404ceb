// SPDX-License-Identifier: MIT

// Command csrprep runs CSR matrices through the csrprep pipeline: built-in
// demonstration systems solved with a dense reference solver, and generated
// stamped networks for timing Analyze and Refresh.
//
// Usage:
//
//	csrprep demo                       # 6×6 real system, solution 1..6
//	csrprep demo --complex             # 6×6 complex system via lifting
//	csrprep demo --split -n 10         # add duplicates, refresh 10 times
//	csrprep bench --nodes 5000         # time Analyze/Refresh on a network
//	csrprep bench --complex --metrics  # AC network, dump pipeline metrics
//	csrprep config --config prep.yaml  # print the effective configuration
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
