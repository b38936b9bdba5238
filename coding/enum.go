package coding

// Ordinal codes a closed set of values by their position in the set.
//
// It is the coding behind enum-typed arrays: declare the constants once, in
// their natural order, and every array stores 4-byte ordinals. The value
// set is fixed at construction, so an Ordinal is immutable and shareable.
type Ordinal[T comparable] struct {
	values   []T
	ordinals map[T]int32
}

// NewOrdinal builds an ordinal coding over the given value set.
// Duplicate values are rejected since the mapping must be collision-free.
func NewOrdinal[T comparable](values ...T) *Ordinal[T] {
	ordinals := make(map[T]int32, len(values))
	for i, v := range values {
		if _, dup := ordinals[v]; dup {
			panic(encodeErr("ordinal", v))
		}
		ordinals[v] = int32(i)
	}
	return &Ordinal[T]{values: values, ordinals: ordinals}
}

// Code returns the ordinal of v, or NullInt32 for nil.
// A value outside the declared set cannot be encoded.
func (o *Ordinal[T]) Code(v any) int32 {
	if v == nil {
		return NullInt32
	}
	tv, ok := v.(T)
	if !ok {
		panic(encodeErr("ordinal", v))
	}
	code, ok := o.ordinals[tv]
	if !ok {
		panic(encodeErr("ordinal", v))
	}
	return code
}

// Value returns the value at the given ordinal, or nil for the sentinel.
func (o *Ordinal[T]) Value(code int32) any {
	if code == NullInt32 {
		return nil
	}
	if code < 0 || int(code) >= len(o.values) {
		return nil
	}
	return o.values[code]
}

// Ordered holds by convention: declaration order is the natural order of an
// enum, exactly as ordinal comparison works for closed constant sets.
func (o *Ordinal[T]) Ordered() bool { return true }

// Size returns the number of values in the set.
func (o *Ordinal[T]) Size() int { return len(o.values) }
