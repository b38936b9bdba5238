package colarr

import (
	"time"

	"github.com/hupe1980/colarr/coding"
)

// Kind identifies the semantic element type of an array.
type Kind uint8

const (
	// Object holds arbitrary boxed values.
	Object Kind = iota
	// Bool holds booleans.
	Bool
	// Int holds 32-bit integers.
	Int
	// Long holds 64-bit integers.
	Long
	// Double holds 64-bit floats.
	Double
	// String holds strings, dictionary-coded as 32-bit intern codes.
	String
	// Time holds time.Time instants, coded as epoch milliseconds.
	Time
	// Duration holds time.Duration values, coded as nanoseconds.
	Duration
	// Zone holds *time.Location values, coded as interned zone names.
	Zone
	// Currency holds ISO-4217 currency codes from the static table.
	Currency
	// Year holds calendar years.
	Year
	// Enum holds values of a user-declared closed set via an Ordinal coding.
	Enum
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Long:
		return "long"
	case Double:
		return "double"
	case String:
		return "string"
	case Time:
		return "time"
	case Duration:
		return "duration"
	case Zone:
		return "zone"
	case Currency:
		return "currency"
	case Year:
		return "year"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// width returns the serialized element width in bytes, or 0 for
// variable-width or non-serializable kinds.
func (k Kind) width() int {
	switch k {
	case Bool:
		return 1
	case Int, Currency, Year, Enum:
		return 4
	case Long, Double, Time, Duration:
		return 8
	case String, Zone:
		return 0 // variable width: persisted as decoded text
	default:
		return 0
	}
}

// KindOf infers the Kind for a runtime value, falling back to Object for
// anything without a dedicated representation. Used by the builder when the
// element type is not declared up front.
func KindOf(v any) Kind {
	switch v.(type) {
	case bool:
		return Bool
	case int32:
		return Int
	case int, int64:
		return Long
	case float64, float32:
		return Double
	case string:
		return String
	case time.Time:
		return Time
	case time.Duration:
		return Duration
	case *time.Location:
		return Zone
	case coding.Currency:
		return Currency
	default:
		return Object
	}
}

// kindCoding returns the registered coding for a kind, if any.
// Int/Long/Double/Bool/Object store raw primitives and have none.
func kindCoding(k Kind) (ic coding.IntCoding, lc coding.LongCoding) {
	switch k {
	case String:
		ic = coding.String
	case Zone:
		ic = coding.Zone
	case Currency:
		ic = coding.ISOCurrency
	case Year:
		ic = coding.Year
	case Time:
		lc = coding.Time
	case Duration:
		lc = coding.Duration
	}
	return ic, lc
}
