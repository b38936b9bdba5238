package colarr

import (
	"math"
	"time"

	"github.com/hupe1980/colarr/coding"
)

// valueCompare orders two decoded values. nil sorts before everything,
// NaN sorts after every finite double. Values of incomparable types panic
// with a *TypeError at the point of mismatch.
func valueCompare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case bool:
		y, ok := b.(bool)
		if !ok {
			break
		}
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case int32:
		if y, ok := b.(int32); ok {
			return cmpOrdered(int64(x), int64(y))
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmpOrdered(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmpOrdered(int64(x), int64(y))
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmpFloat(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmpOrdered(x, y)
		}
	case coding.Currency:
		if y, ok := b.(coding.Currency); ok {
			return cmpOrdered(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case time.Duration:
		if y, ok := b.(time.Duration); ok {
			return cmpOrdered(x, y)
		}
	case *time.Location:
		if y, ok := b.(*time.Location); ok {
			return cmpOrdered(x.String(), y.String())
		}
	}
	panic(&TypeError{Op: "compare", Kind: KindOf(a), Value: b})
}

func cmpOrdered[T int64 | string | coding.Currency | time.Duration](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpFloat treats NaN as greater than every other value and equal to itself.
func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	default:
		return -1
	}
}

// valueEqual is equality in decoded terms: NaN equals NaN, time instants
// compare with Equal, zones by name. Cross-type comparisons are false, not
// an error, so IsEqual can probe without knowing the element type.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return false
		}
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case *time.Location:
		y, ok := b.(*time.Location)
		return ok && y != nil && x.String() == y.String()
	default:
		return a == b
	}
}

// nanKey stands in for NaN in dedup maps, where the raw float64 would never
// match itself.
type nanKey struct{}

// distinctKey normalizes a decoded value into a comparable map key so that
// logically equal values (zone instances, wall-clock times, NaN) dedupe.
func distinctKey(v any) any {
	switch x := v.(type) {
	case *time.Location:
		return x.String()
	case time.Time:
		return x.UnixMilli()
	case float64:
		if math.IsNaN(x) {
			return nanKey{}
		}
		return x
	default:
		return v
	}
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case nil:
		return math.NaN()
	default:
		panic(&TypeError{Op: "getDouble", Kind: KindOf(v), Value: v})
	}
}
