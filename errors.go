package colarr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFillPct is returned when a sparse fill percent lies outside (0,1].
	ErrInvalidFillPct = errors.New("colarr: fill percent must be in (0,1]")
	// ErrClosed is raised when accessing a mapped array after Close.
	ErrClosed = errors.New("colarr: array is closed")
)

// BoundsError indicates an index outside [0, length).
//
// Per-element accessors panic with a *BoundsError rather than returning it,
// matching the failure mode of native slice indexing.
type BoundsError struct {
	Op     string
	Index  int
	Length int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("colarr: %s index %d out of range [0,%d)", e.Op, e.Index, e.Length)
}

// TypeError indicates a value or operation incompatible with the array's
// element type. Raised by panic at the point of mismatch.
type TypeError struct {
	Op    string
	Kind  Kind
	Value any
}

func (e *TypeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("colarr: %s: %v (%T) is not compatible with %s array", e.Op, e.Value, e.Value, e.Kind)
	}
	return fmt.Sprintf("colarr: %s not supported for %s array", e.Op, e.Kind)
}

// ConfigError indicates an invalid construction request, such as an
// unregistered kind/style combination or mismatched bulk-update indexes.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Op     string
	Detail string
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("colarr: %s: %s", e.Op, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// ResourceError indicates a backing-file creation, mapping or remap failure
// for a mapped array. It carries the file path and requested size so the
// environment problem can be diagnosed without inspecting array state.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ResourceError struct {
	Op    string
	Path  string
	Size  int64
	cause error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("colarr: %s failed for %s (%d bytes): %v", e.Op, e.Path, e.Size, e.cause)
}

func (e *ResourceError) Unwrap() error { return e.cause }

func checkBounds(op string, i, length int) {
	if i < 0 || i >= length {
		panic(&BoundsError{Op: op, Index: i, Length: length})
	}
}

func checkRange(op string, start, end, length int) {
	if start < 0 || start > end || end > length {
		panic(&BoundsError{Op: op, Index: start, Length: length})
	}
}
