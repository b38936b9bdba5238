package colarr

import (
	"math"
	"sort"

	"github.com/hupe1980/colarr/coding"
)

// boolDense is contiguous boolean storage.
type boolDense struct {
	vals []bool
	def  bool
}

func newBoolDense(length int, def bool) *boolDense {
	vals := make([]bool, length)
	if def {
		for i := range vals {
			vals[i] = true
		}
	}
	return &boolDense{vals: vals, def: def}
}

func (s *boolDense) len() int             { return len(s.vals) }
func (s *boolDense) kind() Kind           { return Bool }
func (s *boolDense) style() Style         { return Dense }
func (s *boolDense) defaultValue() any    { return s.def }
func (s *boolDense) loadFactor() float64  { return 1 }
func (s *boolDense) isNull(i int) bool    { return false }
func (s *boolDense) value(i int) any      { return s.vals[i] }
func (s *boolDense) close() error         { return nil }

func (s *boolDense) setValue(i int, v any) any {
	return s.setBool(i, coerceBool("set", Bool, v))
}

func (s *boolDense) getBool(i int) bool { return s.vals[i] }

func (s *boolDense) setBool(i int, v bool) bool {
	prev := s.vals[i]
	s.vals[i] = v
	return prev
}

func (s *boolDense) compare(i, j int) int {
	return valueCompare(s.vals[i], s.vals[j])
}

func (s *boolDense) swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

func (s *boolDense) copyRange(start, end int) (store, error) {
	vals := make([]bool, end-start)
	copy(vals, s.vals[start:end])
	return &boolDense{vals: vals, def: s.def}, nil
}

func (s *boolDense) copyIndexes(indexes []int) (store, error) {
	vals := make([]bool, len(indexes))
	for k, i := range indexes {
		vals[k] = s.vals[i]
	}
	return &boolDense{vals: vals, def: s.def}, nil
}

func (s *boolDense) expand(n int) error {
	grown := make([]bool, n)
	copy(grown, s.vals)
	if s.def {
		for i := len(s.vals); i < n; i++ {
			grown[i] = true
		}
	}
	s.vals = grown
	return nil
}

func (s *boolDense) sortRange(start, end, dir int) bool {
	// Counting sort: booleans only have two values.
	trues := 0
	for i := start; i < end; i++ {
		if s.vals[i] {
			trues++
		}
	}
	for i := start; i < end; i++ {
		if dir < 0 {
			s.vals[i] = i-start < trues
		} else {
			s.vals[i] = end-i <= trues
		}
	}
	return true
}

// int32Dense is contiguous 4-byte storage, optionally coded. With a nil
// coding it stores raw 32-bit integers; with a coding it stores codes and
// decodes through it.
type int32Dense struct {
	k    Kind
	vals []int32
	def  int32
	c    coding.IntCoding
}

func newInt32Dense(k Kind, length int, def int32, c coding.IntCoding) *int32Dense {
	vals := make([]int32, length)
	if def != 0 {
		for i := range vals {
			vals[i] = def
		}
	}
	return &int32Dense{k: k, vals: vals, def: def, c: c}
}

func (s *int32Dense) len() int            { return len(s.vals) }
func (s *int32Dense) kind() Kind          { return s.k }
func (s *int32Dense) style() Style        { return Dense }
func (s *int32Dense) loadFactor() float64 { return 1 }
func (s *int32Dense) close() error        { return nil }

func (s *int32Dense) defaultValue() any { return decode32(s.c, s.def) }

func (s *int32Dense) isNull(i int) bool {
	return s.c != nil && s.vals[i] == coding.NullInt32
}

func (s *int32Dense) value(i int) any { return decode32(s.c, s.vals[i]) }

func (s *int32Dense) setValue(i int, v any) any {
	return decode32(s.c, s.setInt(i, encode32("set", s.k, s.c, v)))
}

func (s *int32Dense) getInt(i int) int32 { return s.vals[i] }

func (s *int32Dense) setInt(i int, v int32) int32 {
	prev := s.vals[i]
	s.vals[i] = v
	return prev
}

func (s *int32Dense) compare(i, j int) int {
	if s.c == nil || s.c.Ordered() {
		return cmpOrdered(int64(s.vals[i]), int64(s.vals[j]))
	}
	return valueCompare(s.value(i), s.value(j))
}

func (s *int32Dense) swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

func (s *int32Dense) codeOf(v any) (int64, bool) {
	if s.c == nil {
		return int64(coerceInt32("binarySearch", s.k, v)), true
	}
	if !s.c.Ordered() {
		return 0, false
	}
	return int64(s.c.Code(v)), true
}

func (s *int32Dense) copyRange(start, end int) (store, error) {
	vals := make([]int32, end-start)
	copy(vals, s.vals[start:end])
	return &int32Dense{k: s.k, vals: vals, def: s.def, c: s.c}, nil
}

func (s *int32Dense) copyIndexes(indexes []int) (store, error) {
	vals := make([]int32, len(indexes))
	for k, i := range indexes {
		vals[k] = s.vals[i]
	}
	return &int32Dense{k: s.k, vals: vals, def: s.def, c: s.c}, nil
}

func (s *int32Dense) expand(n int) error {
	grown := make([]int32, n)
	copy(grown, s.vals)
	if s.def != 0 {
		for i := len(s.vals); i < n; i++ {
			grown[i] = s.def
		}
	}
	s.vals = grown
	return nil
}

func (s *int32Dense) sortRange(start, end, dir int) bool {
	if s.c != nil && !s.c.Ordered() {
		return false
	}
	slice := s.vals[start:end]
	sort.Slice(slice, func(i, j int) bool {
		if dir < 0 {
			return slice[i] > slice[j]
		}
		return slice[i] < slice[j]
	})
	return true
}

// int64Dense is contiguous 8-byte integer storage, optionally coded.
type int64Dense struct {
	k    Kind
	vals []int64
	def  int64
	c    coding.LongCoding
}

func newInt64Dense(k Kind, length int, def int64, c coding.LongCoding) *int64Dense {
	vals := make([]int64, length)
	if def != 0 {
		for i := range vals {
			vals[i] = def
		}
	}
	return &int64Dense{k: k, vals: vals, def: def, c: c}
}

func (s *int64Dense) len() int            { return len(s.vals) }
func (s *int64Dense) kind() Kind          { return s.k }
func (s *int64Dense) style() Style        { return Dense }
func (s *int64Dense) loadFactor() float64 { return 1 }
func (s *int64Dense) close() error        { return nil }

func (s *int64Dense) defaultValue() any { return decode64(s.c, s.def) }

func (s *int64Dense) isNull(i int) bool {
	return s.c != nil && s.vals[i] == coding.NullInt64
}

func (s *int64Dense) value(i int) any { return decode64(s.c, s.vals[i]) }

func (s *int64Dense) setValue(i int, v any) any {
	return decode64(s.c, s.setLong(i, encode64("set", s.k, s.c, v)))
}

func (s *int64Dense) getLong(i int) int64 { return s.vals[i] }

func (s *int64Dense) setLong(i int, v int64) int64 {
	prev := s.vals[i]
	s.vals[i] = v
	return prev
}

func (s *int64Dense) compare(i, j int) int {
	if s.c == nil || s.c.Ordered() {
		return cmpOrdered(s.vals[i], s.vals[j])
	}
	return valueCompare(s.value(i), s.value(j))
}

func (s *int64Dense) swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

func (s *int64Dense) codeOf(v any) (int64, bool) {
	if s.c == nil {
		return coerceInt64("binarySearch", s.k, v), true
	}
	if !s.c.Ordered() {
		return 0, false
	}
	return s.c.Code(v), true
}

func (s *int64Dense) copyRange(start, end int) (store, error) {
	vals := make([]int64, end-start)
	copy(vals, s.vals[start:end])
	return &int64Dense{k: s.k, vals: vals, def: s.def, c: s.c}, nil
}

func (s *int64Dense) copyIndexes(indexes []int) (store, error) {
	vals := make([]int64, len(indexes))
	for k, i := range indexes {
		vals[k] = s.vals[i]
	}
	return &int64Dense{k: s.k, vals: vals, def: s.def, c: s.c}, nil
}

func (s *int64Dense) expand(n int) error {
	grown := make([]int64, n)
	copy(grown, s.vals)
	if s.def != 0 {
		for i := len(s.vals); i < n; i++ {
			grown[i] = s.def
		}
	}
	s.vals = grown
	return nil
}

func (s *int64Dense) sortRange(start, end, dir int) bool {
	if s.c != nil && !s.c.Ordered() {
		return false
	}
	slice := s.vals[start:end]
	sort.Slice(slice, func(i, j int) bool {
		if dir < 0 {
			return slice[i] > slice[j]
		}
		return slice[i] < slice[j]
	})
	return true
}

// float64Dense is contiguous double storage. NaN doubles as the missing
// value.
type float64Dense struct {
	vals []float64
	def  float64
}

func newFloat64Dense(length int, def float64) *float64Dense {
	vals := make([]float64, length)
	if def != 0 {
		for i := range vals {
			vals[i] = def
		}
	}
	return &float64Dense{vals: vals, def: def}
}

func (s *float64Dense) len() int            { return len(s.vals) }
func (s *float64Dense) kind() Kind          { return Double }
func (s *float64Dense) style() Style        { return Dense }
func (s *float64Dense) defaultValue() any   { return s.def }
func (s *float64Dense) loadFactor() float64 { return 1 }
func (s *float64Dense) close() error        { return nil }

func (s *float64Dense) isNull(i int) bool { return math.IsNaN(s.vals[i]) }
func (s *float64Dense) value(i int) any   { return s.vals[i] }

func (s *float64Dense) setValue(i int, v any) any {
	return s.setDouble(i, coerceFloat64("set", Double, v))
}

func (s *float64Dense) getDouble(i int) float64 { return s.vals[i] }

func (s *float64Dense) setDouble(i int, v float64) float64 {
	prev := s.vals[i]
	s.vals[i] = v
	return prev
}

func (s *float64Dense) compare(i, j int) int {
	return cmpFloat(s.vals[i], s.vals[j])
}

func (s *float64Dense) swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

func (s *float64Dense) copyRange(start, end int) (store, error) {
	vals := make([]float64, end-start)
	copy(vals, s.vals[start:end])
	return &float64Dense{vals: vals, def: s.def}, nil
}

func (s *float64Dense) copyIndexes(indexes []int) (store, error) {
	vals := make([]float64, len(indexes))
	for k, i := range indexes {
		vals[k] = s.vals[i]
	}
	return &float64Dense{vals: vals, def: s.def}, nil
}

func (s *float64Dense) expand(n int) error {
	grown := make([]float64, n)
	copy(grown, s.vals)
	if s.def != 0 {
		for i := len(s.vals); i < n; i++ {
			grown[i] = s.def
		}
	}
	s.vals = grown
	return nil
}

func (s *float64Dense) sortRange(start, end, dir int) bool {
	slice := s.vals[start:end]
	sort.Slice(slice, func(i, j int) bool {
		x, y := slice[i], slice[j]
		if math.IsNaN(x) {
			return false
		}
		if math.IsNaN(y) {
			return true
		}
		if dir < 0 {
			return x > y
		}
		return x < y
	})
	return true
}

// objectDense is contiguous boxed storage for arbitrary values.
type objectDense struct {
	vals []any
	def  any
}

func newObjectDense(length int, def any) *objectDense {
	vals := make([]any, length)
	if def != nil {
		for i := range vals {
			vals[i] = def
		}
	}
	return &objectDense{vals: vals, def: def}
}

func (s *objectDense) len() int            { return len(s.vals) }
func (s *objectDense) kind() Kind          { return Object }
func (s *objectDense) style() Style        { return Dense }
func (s *objectDense) defaultValue() any   { return s.def }
func (s *objectDense) loadFactor() float64 { return 1 }
func (s *objectDense) close() error        { return nil }

func (s *objectDense) isNull(i int) bool { return s.vals[i] == nil }
func (s *objectDense) value(i int) any   { return s.vals[i] }

func (s *objectDense) setValue(i int, v any) any {
	prev := s.vals[i]
	s.vals[i] = v
	return prev
}

func (s *objectDense) compare(i, j int) int {
	return valueCompare(s.vals[i], s.vals[j])
}

func (s *objectDense) swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

func (s *objectDense) copyRange(start, end int) (store, error) {
	vals := make([]any, end-start)
	copy(vals, s.vals[start:end])
	return &objectDense{vals: vals, def: s.def}, nil
}

func (s *objectDense) copyIndexes(indexes []int) (store, error) {
	vals := make([]any, len(indexes))
	for k, i := range indexes {
		vals[k] = s.vals[i]
	}
	return &objectDense{vals: vals, def: s.def}, nil
}

func (s *objectDense) expand(n int) error {
	grown := make([]any, n)
	copy(grown, s.vals)
	if s.def != nil {
		for i := len(s.vals); i < n; i++ {
			grown[i] = s.def
		}
	}
	s.vals = grown
	return nil
}

func decode32(c coding.IntCoding, code int32) any {
	if c == nil {
		return code
	}
	return c.Value(code)
}

func encode32(op string, k Kind, c coding.IntCoding, v any) int32 {
	if c == nil {
		return coerceInt32(op, k, v)
	}
	return c.Code(v)
}

func decode64(c coding.LongCoding, code int64) any {
	if c == nil {
		return code
	}
	return c.Value(code)
}

func encode64(op string, k Kind, c coding.LongCoding, v any) int64 {
	if c == nil {
		return coerceInt64(op, k, v)
	}
	return c.Code(v)
}
