// Package colarr provides typed, pluggable columnar arrays.
//
// An Array stores a large homogeneous sequence of values behind one uniform
// value-access contract, independent of how the values are physically held.
// Three storage styles are available:
//
//   - Dense: one contiguous buffer slot per index (the default)
//   - Sparse: a map from index to value holding only non-default entries
//   - Mapped: a file-backed, memory-mapped buffer for off-heap storage
//
// Rich value types (times, durations, zones, currencies, enums, strings)
// are stored as compact 4-byte or 8-byte codes through the coding package,
// so a column of a million timestamps costs eight bytes per row.
//
// # Creating arrays
//
//	dense, err := colarr.New(colarr.Double, 1000, 0.0)
//	sparse, err := colarr.NewSparse(colarr.Int, 1_000_000, int32(0), 0.01)
//	mapped, err := colarr.NewMapped(colarr.Long, 1<<30, int64(0), "col.bin")
//
// Incremental construction with type inference goes through Builder:
//
//	b := colarr.NewBuilder(0)
//	b.Append(int32(1))
//	b.Append(int32(2))
//	arr := b.ToArray()
//
// # Mutation and views
//
// Arrays are not safe for concurrent writers. Parallel and Sequential
// return cheap views sharing the backing storage; the flag is an advisory
// hint consumed by bulk read operations, not a thread-safety guarantee.
//
// Mapped arrays own an OS file handle and mapping and must be released with
// Close. Close is a no-op for the heap-backed styles.
package colarr
