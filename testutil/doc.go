// Package testutil provides testing utilities for colarr.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random column data, scattered
// index sets, and skewed code distributions.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	ints := rng.Int32s(1000, 0, 100)
//	vals := rng.Float64s(1000, 0.05) // 5% NaN
//
// # Scattered Index Sets
//
//	idx := rng.ScatteredIndexes(1_000_000, 500)
package testutil
