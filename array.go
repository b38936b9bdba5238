package colarr

import (
	"math"
	"sort"
)

// Style is the storage strategy tag carried by every array instance.
type Style uint8

const (
	// Dense stores one contiguous buffer slot per index.
	Dense Style = iota
	// Sparse stores only entries differing from the default value.
	Sparse
	// Mapped stores elements in a memory-mapped backing file.
	Mapped
)

func (s Style) String() string {
	switch s {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	case Mapped:
		return "mapped"
	default:
		return "unknown"
	}
}

// Array is the uniform value-access contract shared by all storage styles.
//
// Per-element accessors panic with *BoundsError or *TypeError on misuse;
// operations that can fail for environmental reasons (file-backed copies,
// expansion, bulk updates) return errors instead.
//
// Int and Long accessors expose the raw stored primitive. For coded arrays
// that is the code, not the decoded value; Value and SetValue always work
// in decoded terms.
type Array interface {
	// Len returns the current element count.
	Len() int
	// Kind returns the semantic element type.
	Kind() Kind
	// Style returns the storage strategy.
	Style() Style
	// DefaultValue returns the value read from any index never written.
	DefaultValue() any
	// LoadFactor returns the fraction of indexes holding a non-default
	// value; always 1 for dense and mapped arrays.
	LoadFactor() float64

	// IsNull reports whether the value at i represents a missing value.
	IsNull(i int) bool
	// IsEqual reports whether the decoded value at i equals v.
	IsEqual(i int, v any) bool

	Value(i int) any
	// SetValue writes the decoded value v at i and returns the previous value.
	SetValue(i int, v any) any
	Bool(i int) bool
	SetBool(i int, v bool) bool
	Int(i int) int32
	SetInt(i int, v int32) int32
	Long(i int) int64
	SetLong(i int, v int64) int64
	Double(i int) float64
	SetDouble(i int, v float64) float64

	// Copy returns a fully independent deep copy.
	Copy() (Array, error)
	// CopyRange copies the half-open index range [start, end).
	CopyRange(start, end int) (Array, error)
	// CopyIndexes copies the values at the given positions, in order.
	CopyIndexes(indexes []int) (Array, error)
	// Expand grows the array to newLen, default-filling the tail.
	// Lengths not larger than the current one are a no-op.
	Expand(newLen int) error
	// Fill overwrites [start, end) with a single value.
	Fill(v any, start, end int)

	// Compare orders the values at i and j (-1, 0, +1).
	Compare(i, j int) int
	Swap(i, j int)
	// Sort sorts [start, end) in place; dir is +1 ascending, -1 descending.
	Sort(start, end, dir int)
	// BinarySearch searches the sorted range [start, end) and returns the
	// match index, or -(insertion+1) if v is absent.
	BinarySearch(start, end int, v any) int
	// Distinct returns the first-seen-order unique values, stopping once
	// limit values are collected (limit <= 0 means no limit).
	Distinct(limit int) (Array, error)
	// CumSum returns a new array of running totals. Supported for Int,
	// Long and Double arrays.
	CumSum() Array
	// Filter returns a new array holding the values for which pred is true.
	Filter(pred func(i int, v any) bool) (Array, error)
	// Update copies from[fromIndexes[k]] into this array at toIndexes[k].
	Update(from Array, fromIndexes, toIndexes []int) error

	// Parallel returns a cheap view sharing this array's storage whose
	// bulk read operations may execute in parallel. Sequential returns the
	// converse view. Neither copies backing storage.
	Parallel() Array
	Sequential() Array
	IsParallel() bool

	// Close releases the backing resources of a mapped array. It is a
	// no-op for the heap-backed styles.
	Close() error
}

// store is the narrow contract a storage representation implements; the
// array wrapper layers bounds checking and the shared algorithms on top.
// Indexes passed to a store are always in range.
type store interface {
	len() int
	kind() Kind
	style() Style
	defaultValue() any
	loadFactor() float64
	value(i int) any
	setValue(i int, v any) any
	isNull(i int) bool
	compare(i, j int) int
	swap(i, j int)
	copyRange(start, end int) (store, error)
	copyIndexes(indexes []int) (store, error)
	expand(n int) error
	close() error
}

// Optional typed fast paths a store may provide.
type (
	boolStore interface {
		getBool(i int) bool
		setBool(i int, v bool) bool
	}
	int32Store interface {
		getInt(i int) int32
		setInt(i int, v int32) int32
	}
	int64Store interface {
		getLong(i int) int64
		setLong(i int, v int64) int64
	}
	float64Store interface {
		getDouble(i int) float64
		setDouble(i int, v float64) float64
	}
	// rangeSorter sorts [start, end) natively; ok is false when the store
	// cannot honor the natural value order itself.
	rangeSorter interface {
		sortRange(start, end, dir int) bool
	}
	// coder translates a decoded value to its raw code when raw-code order
	// matches natural value order; ok is false otherwise.
	coder interface {
		codeOf(v any) (int64, bool)
	}
)

// array pairs a shared store with the advisory parallel flag. Parallel and
// Sequential views are two lightweight handles over one owned store; the
// single-writer contract is documented, not enforced.
type array struct {
	s        store
	parallel bool
}

func wrap(s store) *array { return &array{s: s} }

func (a *array) Len() int           { return a.s.len() }
func (a *array) Kind() Kind         { return a.s.kind() }
func (a *array) Style() Style       { return a.s.style() }
func (a *array) DefaultValue() any  { return a.s.defaultValue() }
func (a *array) LoadFactor() float64 { return a.s.loadFactor() }

func (a *array) IsNull(i int) bool {
	checkBounds("isNull", i, a.s.len())
	return a.s.isNull(i)
}

func (a *array) IsEqual(i int, v any) bool {
	checkBounds("isEqual", i, a.s.len())
	return valueEqual(a.s.value(i), v)
}

func (a *array) Value(i int) any {
	checkBounds("get", i, a.s.len())
	return a.s.value(i)
}

func (a *array) SetValue(i int, v any) any {
	checkBounds("set", i, a.s.len())
	return a.s.setValue(i, v)
}

func (a *array) Bool(i int) bool {
	checkBounds("getBool", i, a.s.len())
	bs, ok := a.s.(boolStore)
	if !ok {
		panic(&TypeError{Op: "getBool", Kind: a.s.kind()})
	}
	return bs.getBool(i)
}

func (a *array) SetBool(i int, v bool) bool {
	checkBounds("setBool", i, a.s.len())
	bs, ok := a.s.(boolStore)
	if !ok {
		panic(&TypeError{Op: "setBool", Kind: a.s.kind(), Value: v})
	}
	return bs.setBool(i, v)
}

func (a *array) Int(i int) int32 {
	checkBounds("getInt", i, a.s.len())
	is, ok := a.s.(int32Store)
	if !ok {
		panic(&TypeError{Op: "getInt", Kind: a.s.kind()})
	}
	return is.getInt(i)
}

func (a *array) SetInt(i int, v int32) int32 {
	checkBounds("setInt", i, a.s.len())
	is, ok := a.s.(int32Store)
	if !ok {
		panic(&TypeError{Op: "setInt", Kind: a.s.kind(), Value: v})
	}
	return is.setInt(i, v)
}

func (a *array) Long(i int) int64 {
	checkBounds("getLong", i, a.s.len())
	ls, ok := a.s.(int64Store)
	if !ok {
		panic(&TypeError{Op: "getLong", Kind: a.s.kind()})
	}
	return ls.getLong(i)
}

func (a *array) SetLong(i int, v int64) int64 {
	checkBounds("setLong", i, a.s.len())
	ls, ok := a.s.(int64Store)
	if !ok {
		panic(&TypeError{Op: "setLong", Kind: a.s.kind(), Value: v})
	}
	return ls.setLong(i, v)
}

func (a *array) Double(i int) float64 {
	checkBounds("getDouble", i, a.s.len())
	fs, ok := a.s.(float64Store)
	if !ok {
		panic(&TypeError{Op: "getDouble", Kind: a.s.kind()})
	}
	return fs.getDouble(i)
}

func (a *array) SetDouble(i int, v float64) float64 {
	checkBounds("setDouble", i, a.s.len())
	fs, ok := a.s.(float64Store)
	if !ok {
		panic(&TypeError{Op: "setDouble", Kind: a.s.kind(), Value: v})
	}
	return fs.setDouble(i, v)
}

func (a *array) Copy() (Array, error) {
	return a.CopyRange(0, a.s.len())
}

func (a *array) CopyRange(start, end int) (Array, error) {
	checkRange("copy", start, end, a.s.len())
	s, err := a.s.copyRange(start, end)
	if err != nil {
		return nil, err
	}
	return &array{s: s, parallel: a.parallel}, nil
}

func (a *array) CopyIndexes(indexes []int) (Array, error) {
	for _, i := range indexes {
		checkBounds("copy", i, a.s.len())
	}
	s, err := a.s.copyIndexes(indexes)
	if err != nil {
		return nil, err
	}
	return &array{s: s, parallel: a.parallel}, nil
}

func (a *array) Expand(newLen int) error {
	if newLen <= a.s.len() {
		return nil
	}
	return a.s.expand(newLen)
}

func (a *array) Fill(v any, start, end int) {
	checkRange("fill", start, end, a.s.len())
	for i := start; i < end; i++ {
		a.s.setValue(i, v)
	}
}

func (a *array) Compare(i, j int) int {
	checkBounds("compare", i, a.s.len())
	checkBounds("compare", j, a.s.len())
	return a.s.compare(i, j)
}

func (a *array) Swap(i, j int) {
	checkBounds("swap", i, a.s.len())
	checkBounds("swap", j, a.s.len())
	a.s.swap(i, j)
}

func (a *array) Sort(start, end, dir int) {
	checkRange("sort", start, end, a.s.len())
	if dir == 0 {
		dir = 1
	}
	if rs, ok := a.s.(rangeSorter); ok && rs.sortRange(start, end, dir) {
		return
	}
	sort.Sort(&viewSorter{s: a.s, start: start, n: end - start, dir: dir})
}

// viewSorter adapts a store range to sort.Interface using the store's
// comparator with the direction multiplier. Double arrays keep NaN last in
// both directions by convention.
type viewSorter struct {
	s     store
	start int
	n     int
	dir   int
}

func (v *viewSorter) Len() int { return v.n }

func (v *viewSorter) Less(i, j int) bool {
	a, b := v.start+i, v.start+j
	if v.s.kind() == Double {
		x, y := toFloat(v.s.value(a)), toFloat(v.s.value(b))
		if math.IsNaN(x) {
			return false
		}
		if math.IsNaN(y) {
			return true
		}
		if v.dir < 0 {
			return x > y
		}
		return x < y
	}
	return v.s.compare(a, b)*v.dir < 0
}

func (v *viewSorter) Swap(i, j int) { v.s.swap(v.start+i, v.start+j) }

func (a *array) BinarySearch(start, end int, v any) int {
	checkRange("binarySearch", start, end, a.s.len())
	if c, ok := a.s.(coder); ok {
		if code, exact := c.codeOf(v); exact {
			return a.searchCodes(start, end, code)
		}
	}
	lo, hi := start, end-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		cmp := valueCompare(a.s.value(mid), v)
		switch {
		case cmp < 0:
			lo = mid + 1
		case cmp > 0:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -(lo + 1)
}

func (a *array) searchCodes(start, end int, code int64) int {
	var at func(i int) int64
	switch s := a.s.(type) {
	case int32Store:
		at = func(i int) int64 { return int64(s.getInt(i)) }
	case int64Store:
		at = func(i int) int64 { return s.getLong(i) }
	default:
		panic(&TypeError{Op: "binarySearch", Kind: a.s.kind()})
	}
	lo, hi := start, end-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		c := at(mid)
		switch {
		case c < code:
			lo = mid + 1
		case c > code:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -(lo + 1)
}

func (a *array) Distinct(limit int) (Array, error) {
	n := a.s.len()
	seen := make(map[any]struct{})
	var indexes []int
	for i := 0; i < n; i++ {
		k := distinctKey(a.s.value(i))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		indexes = append(indexes, i)
		if limit > 0 && len(indexes) >= limit {
			break
		}
	}
	return a.CopyIndexes(indexes)
}

func (a *array) CumSum() Array {
	n := a.s.len()
	switch a.s.kind() {
	case Int:
		out := make([]int32, n)
		var sum int32
		for i := 0; i < n; i++ {
			sum += a.s.(int32Store).getInt(i)
			out[i] = sum
		}
		return wrap(&int32Dense{k: Int, vals: out})
	case Long:
		out := make([]int64, n)
		var sum int64
		for i := 0; i < n; i++ {
			sum += a.s.(int64Store).getLong(i)
			out[i] = sum
		}
		return wrap(&int64Dense{k: Long, vals: out})
	case Double:
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v := a.s.(float64Store).getDouble(i)
			if i == 0 {
				// The first running value is seeded as-is, even when NaN.
				out[i] = v
				continue
			}
			if math.IsNaN(v) {
				// Missing values contribute the additive identity.
				out[i] = out[i-1]
				continue
			}
			prev := out[i-1]
			if math.IsNaN(prev) {
				prev = 0
			}
			out[i] = prev + v
		}
		return wrap(&float64Dense{vals: out})
	default:
		panic(&TypeError{Op: "cumSum", Kind: a.s.kind()})
	}
}

func (a *array) Filter(pred func(i int, v any) bool) (Array, error) {
	n := a.s.len()
	var indexes []int
	if a.parallel && n >= parallelThreshold {
		chunks := chunkRanges(n)
		matched := make([][]int, len(chunks))
		err := runChunks(chunks, func(c int, start, end int) error {
			for i := start; i < end; i++ {
				if pred(i, a.s.value(i)) {
					matched[c] = append(matched[c], i)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		for _, m := range matched {
			indexes = append(indexes, m...)
		}
	} else {
		for i := 0; i < n; i++ {
			if pred(i, a.s.value(i)) {
				indexes = append(indexes, i)
			}
		}
	}
	return a.CopyIndexes(indexes)
}

func (a *array) Update(from Array, fromIndexes, toIndexes []int) error {
	if len(fromIndexes) != len(toIndexes) {
		return &ConfigError{Op: "update", Detail: "from/to index arrays differ in length"}
	}
	for k, to := range toIndexes {
		checkBounds("update", to, a.s.len())
		a.s.setValue(to, from.Value(fromIndexes[k]))
	}
	return nil
}

func (a *array) Parallel() Array {
	if a.parallel {
		return a
	}
	return &array{s: a.s, parallel: true}
}

func (a *array) Sequential() Array {
	if !a.parallel {
		return a
	}
	return &array{s: a.s, parallel: false}
}

func (a *array) IsParallel() bool { return a.parallel }

func (a *array) Close() error { return a.s.close() }
