// Package mmap provides read-write memory-mapped file access.
//
// # Overview
//
// Memory mapping allows an array's backing storage to live in a file rather
// than on the Go heap, so arrays can exceed heap memory and survive across
// process boundaries. Unlike a read-only segment mapping, the mappings here
// are writable and can be remapped to a larger size as an array expands.
//
// # Usage
//
//	m, err := mmap.Create("column.bin", 4096)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Direct read-write access to file contents
//	data := m.Bytes()
//
//	// Grow the file and remap
//	if err := m.Remap(8192); err != nil { ... }
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with PROT_READ|PROT_WRITE and
//     madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// # Thread Safety
//
// A File is safe for concurrent reads. Writers require external
// synchronization. Close is idempotent and protected by an atomic flag, but
// callers must ensure no goroutines touch Bytes() after Close returns.
package mmap
