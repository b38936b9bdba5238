package coding

import "time"

// Time codes time.Time values as epoch milliseconds.
//
// Values are normalized to UTC with millisecond precision: round-tripping
// preserves the instant, not the wall-clock zone or sub-millisecond digits.
var Time LongCoding = timeCoding{}

type timeCoding struct{}

func (timeCoding) Code(v any) int64 {
	if v == nil {
		return NullInt64
	}
	t, ok := v.(time.Time)
	if !ok {
		panic(encodeErr("time", v))
	}
	ms := t.UnixMilli()
	if ms == NullInt64 {
		panic(encodeErr("time", v))
	}
	return ms
}

func (timeCoding) Value(code int64) any {
	if code == NullInt64 {
		return nil
	}
	return time.UnixMilli(code).UTC()
}

func (timeCoding) Ordered() bool { return true }

// Duration codes time.Duration values as their nanosecond count.
var Duration LongCoding = durationCoding{}

type durationCoding struct{}

func (durationCoding) Code(v any) int64 {
	if v == nil {
		return NullInt64
	}
	d, ok := v.(time.Duration)
	if !ok {
		panic(encodeErr("duration", v))
	}
	if int64(d) == NullInt64 {
		panic(encodeErr("duration", v))
	}
	return int64(d)
}

func (durationCoding) Value(code int64) any {
	if code == NullInt64 {
		return nil
	}
	return time.Duration(code)
}

func (durationCoding) Ordered() bool { return true }
