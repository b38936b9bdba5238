// Package coding maps rich value types to compact fixed-width integer codes.
//
// A coding is a total, deterministic, collision-free bidirectional mapping
// between a value type and a 32-bit or 64-bit code, with one reserved
// sentinel code standing in for a missing value. Codings let date, zone,
// currency, enum and string values live inside primitive-backed arrays.
//
// All codings in this package are stateless or backed by a process-wide
// intern table, so a single shared instance serves any number of arrays.
package coding

import (
	"fmt"
	"math"
)

// NullInt32 is the reserved 32-bit code for a missing value.
// No real value ever encodes to it.
const NullInt32 = math.MinInt32

// NullInt64 is the reserved 64-bit code for a missing value.
const NullInt64 = math.MinInt64

// IntCoding maps values to 32-bit codes and back.
//
// Code returns NullInt32 for nil and panics with *Error for a value the
// coding cannot represent. Value returns nil for NullInt32. The mapping is
// collision-free: Value(Code(v)) == v for every representable v.
type IntCoding interface {
	// Code encodes a value, nil maps to NullInt32.
	Code(v any) int32
	// Value decodes a code, NullInt32 maps to nil.
	Value(code int32) any
	// Ordered reports whether code order matches the natural value order,
	// allowing sorts and searches to operate on raw codes.
	Ordered() bool
}

// LongCoding maps values to 64-bit codes and back.
// The contract mirrors IntCoding with NullInt64 as the sentinel.
type LongCoding interface {
	Code(v any) int64
	Value(code int64) any
	Ordered() bool
}

// Error indicates a value that a coding cannot represent.
type Error struct {
	Coding string
	Value  any
}

func (e *Error) Error() string {
	return fmt.Sprintf("coding: %s cannot encode %v (%T)", e.Coding, e.Value, e.Value)
}

func encodeErr(coding string, v any) *Error {
	return &Error{Coding: coding, Value: v}
}
