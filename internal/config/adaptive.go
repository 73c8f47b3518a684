package config

import "runtime"

// Parallelism resolution chain (highest priority first):
//  1. CLI flags (-groups, -workers)
//  2. Environment variables (TRIPLE_GROUPS, TRIPLE_WORKERS)
//  3. Hardware estimation (this file)

// ApplyAdaptiveParallelism fills in worker tuning values that are still at
// their zero default, preserving any user-specified overrides. The tuning
// affects performance only, never correctness or output order.
func ApplyAdaptiveParallelism(cfg Config) Config {
	if cfg.Groups == 0 {
		cfg.Groups = EstimateWorkerGroups()
	}
	if cfg.WorkersPerGroup == 0 {
		cfg.WorkersPerGroup = EstimateWorkersPerGroup()
	}
	return cfg
}

// EstimateWorkerGroups provides a heuristic worker-group count from the
// CPU count without running benchmarks.
func EstimateWorkerGroups() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return 1
	case numCPU <= 8:
		return 2
	case numCPU <= 16:
		return 4
	default:
		return 8
	}
}

// EstimateWorkersPerGroup provides a heuristic per-group worker count so
// that groups × workers covers the logical processors.
func EstimateWorkersPerGroup() int {
	numCPU := runtime.NumCPU()
	groups := EstimateWorkerGroups()

	workers := numCPU / groups
	if workers < 1 {
		workers = 1
	}
	return workers
}
