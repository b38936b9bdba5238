package colarr

// Builder accumulates values of initially unknown or partially known type
// and materializes a finished Array.
//
// The builder moves through three states: empty (no backing array yet),
// typed (backing array exists, element type fixed by declaration or by the
// first value), and widened (backing array is generic Object storage).
// Widening happens at most once, when a value incompatible with the fixed
// type arrives; the builder never re-narrows.
type Builder struct {
	arr     Array
	kind    Kind
	state   builderState
	index   int // next append position
	length  int // logical high-water length
	fillPct float64
	initCap int // requested capacity, applied when the backing array is created
}

type builderState uint8

const (
	builderEmpty builderState = iota
	builderTyped
	builderWidened
)

const builderMinCapacity = 16

// NewBuilder creates a builder whose element type is inferred from the
// first appended value.
func NewBuilder(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{kind: Object, state: builderEmpty, initCap: capacity}
}

// NewBuilderOf creates a builder with a declared element type.
func NewBuilderOf(kind Kind, capacity int) *Builder {
	b := NewBuilder(capacity)
	b.init(kind)
	return b
}

// NewBuilderSparse creates a typed builder whose backing array is sparse
// with the given fill percent, carried through to the final array.
func NewBuilderSparse(kind Kind, capacity int, fillPct float64) (*Builder, error) {
	if fillPct <= 0 || fillPct > 1 {
		return nil, &ConfigError{Op: "build", Detail: "fill percent out of range", cause: ErrInvalidFillPct}
	}
	b := NewBuilder(capacity)
	b.fillPct = fillPct
	b.init(kind)
	return b, nil
}

// Len returns the logical length of the staged array.
func (b *Builder) Len() int { return b.length }

// Kind returns the current element type; Object once widened.
func (b *Builder) Kind() Kind { return b.kind }

// Append assigns v at the current write position and advances it.
func (b *Builder) Append(v any) *Builder {
	b.Set(b.index, v)
	b.index++
	return b
}

// Set writes v at an explicit position; the logical length becomes at
// least index+1.
func (b *Builder) Set(index int, v any) *Builder {
	b.ensureFor(v)
	b.grow(index + 1)
	b.arr.SetValue(index, v)
	if index+1 > b.length {
		b.length = index + 1
	}
	return b
}

// AppendBool appends through the typed fast path.
func (b *Builder) AppendBool(v bool) *Builder {
	if b.state == builderEmpty {
		b.init(Bool)
	}
	if b.state == builderTyped && b.kind == Bool {
		b.grow(b.index + 1)
		b.arr.SetBool(b.index, v)
		b.advance()
		return b
	}
	return b.Append(v)
}

// AppendInt appends a raw 32-bit integer through the typed fast path.
func (b *Builder) AppendInt(v int32) *Builder {
	if b.state == builderEmpty {
		b.init(Int)
	}
	if b.state == builderTyped && b.kind == Int {
		b.grow(b.index + 1)
		b.arr.SetInt(b.index, v)
		b.advance()
		return b
	}
	return b.Append(v)
}

// AppendLong appends a 64-bit integer through the typed fast path.
func (b *Builder) AppendLong(v int64) *Builder {
	if b.state == builderEmpty {
		b.init(Long)
	}
	if b.state == builderTyped && b.kind == Long {
		b.grow(b.index + 1)
		b.arr.SetLong(b.index, v)
		b.advance()
		return b
	}
	return b.Append(v)
}

// AppendDouble appends a double through the typed fast path.
func (b *Builder) AppendDouble(v float64) *Builder {
	if b.state == builderEmpty {
		b.init(Double)
	}
	if b.state == builderTyped && b.kind == Double {
		b.grow(b.index + 1)
		b.arr.SetDouble(b.index, v)
		b.advance()
		return b
	}
	return b.Append(v)
}

// AppendString appends a string.
func (b *Builder) AppendString(v string) *Builder {
	return b.Append(v)
}

// AppendAll bulk-appends every element of src, using the typed path when
// src's kind matches the builder's raw primitive type.
func (b *Builder) AppendAll(src Array) *Builder {
	n := src.Len()
	if b.state != builderWidened {
		switch src.Kind() {
		case Bool:
			for i := 0; i < n; i++ {
				b.AppendBool(src.Bool(i))
			}
			return b
		case Int:
			for i := 0; i < n; i++ {
				b.AppendInt(src.Int(i))
			}
			return b
		case Long:
			for i := 0; i < n; i++ {
				b.AppendLong(src.Long(i))
			}
			return b
		case Double:
			for i := 0; i < n; i++ {
				b.AppendDouble(src.Double(i))
			}
			return b
		}
	}
	for i := 0; i < n; i++ {
		b.Append(src.Value(i))
	}
	return b
}

// ToArray returns a copy of the staged values trimmed to the logical
// length, or an empty Object array if nothing was ever appended.
func (b *Builder) ToArray() Array {
	if b.state == builderEmpty {
		empty, err := New(Object, 0, nil)
		if err != nil {
			panic(err)
		}
		return empty
	}
	out, err := b.arr.CopyRange(0, b.length)
	if err != nil {
		panic(err) // heap-backed staging copies cannot fail
	}
	return out
}

func (b *Builder) advance() {
	b.index++
	if b.index > b.length {
		b.length = b.index
	}
}

func (b *Builder) init(kind Kind) {
	capacity := b.initCap
	if capacity < builderMinCapacity {
		capacity = builderMinCapacity
	}
	var (
		arr Array
		err error
	)
	if b.fillPct > 0 {
		arr, err = NewSparse(kind, capacity, zeroDefault(kind), b.fillPct)
	} else {
		arr, err = New(kind, capacity, zeroDefault(kind))
	}
	if err != nil {
		panic(err)
	}
	b.arr = arr
	b.kind = kind
	b.state = builderTyped
}

func (b *Builder) ensureFor(v any) {
	switch b.state {
	case builderEmpty:
		b.init(KindOf(v))
	case builderTyped:
		if !b.accepts(v) {
			b.widen()
		}
	}
}

func (b *Builder) accepts(v any) bool {
	if v == nil {
		return nullableKind(b.kind)
	}
	return KindOf(v) == b.kind
}

// widen reallocates the staged values into generic Object storage. This is
// the one-way escape hatch: subsequent appends skip type checking.
func (b *Builder) widen() {
	widened, err := New(Object, b.arr.Len(), nil)
	if err != nil {
		panic(err)
	}
	for i := 0; i < b.length; i++ {
		widened.SetValue(i, b.arr.Value(i))
	}
	b.arr = widened
	b.kind = Object
	b.state = builderWidened
}

func (b *Builder) grow(need int) {
	if need <= b.arr.Len() {
		return
	}
	newLen := b.arr.Len() + b.arr.Len()/2
	if newLen < need {
		newLen = need
	}
	if err := b.arr.Expand(newLen); err != nil {
		panic(err) // heap-backed staging growth cannot fail
	}
}

func zeroDefault(k Kind) any {
	switch k {
	case Bool:
		return false
	case Int:
		return int32(0)
	case Long:
		return int64(0)
	case Double:
		return float64(0)
	default:
		return nil
	}
}

func nullableKind(k Kind) bool {
	switch k {
	case Bool, Int, Long, Double:
		return false
	default:
		return true
	}
}
