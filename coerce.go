package colarr

import "math"

func coerceBool(op string, k Kind, v any) bool {
	b, ok := v.(bool)
	if !ok {
		panic(&TypeError{Op: op, Kind: k, Value: v})
	}
	return b
}

func coerceInt32(op string, k Kind, v any) int32 {
	switch n := v.(type) {
	case int32:
		return n
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			panic(&TypeError{Op: op, Kind: k, Value: v})
		}
		return int32(n)
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			panic(&TypeError{Op: op, Kind: k, Value: v})
		}
		return int32(n)
	default:
		panic(&TypeError{Op: op, Kind: k, Value: v})
	}
}

func coerceInt64(op string, k Kind, v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	default:
		panic(&TypeError{Op: op, Kind: k, Value: v})
	}
}

func coerceFloat64(op string, k Kind, v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		panic(&TypeError{Op: op, Kind: k, Value: v})
	}
}
