package coding

// MinYear and MaxYear bound the representable year range.
// The bounds match the proleptic range used by ISO-8601 dates.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// Year codes calendar years (plain ints) as themselves.
var Year IntCoding = yearCoding{}

type yearCoding struct{}

func (yearCoding) Code(v any) int32 {
	if v == nil {
		return NullInt32
	}
	var y int64
	switch n := v.(type) {
	case int:
		y = int64(n)
	case int32:
		y = int64(n)
	case int64:
		y = n
	default:
		panic(encodeErr("year", v))
	}
	if y < MinYear || y > MaxYear {
		panic(encodeErr("year", v))
	}
	return int32(y)
}

func (yearCoding) Value(code int32) any {
	if code == NullInt32 {
		return nil
	}
	return int(code)
}

func (yearCoding) Ordered() bool { return true }
