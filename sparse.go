package colarr

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/colarr/coding"
)

// Sparse stores hold only entries differing from the default value: a map
// from index to value (or code) plus a roaring bitmap of occupied indexes.
// The bitmap gives ordered iteration for range copies and a cheap
// cardinality for the load factor.

func sparseCapacity(length int, fillPct float64) int {
	capHint := int(float64(length) * fillPct)
	if capHint < 16 {
		capHint = 16
	}
	return capHint
}

// occupancy re-derives a fill estimate from the current load so copies can
// size their maps realistically rather than from the construction-time hint.
func occupancy(keys *roaring.Bitmap, length int) float64 {
	if length == 0 {
		return 1
	}
	pct := float64(keys.GetCardinality()) / float64(length)
	if pct <= 0 {
		pct = 1.0 / float64(length)
	}
	if pct > 1 {
		pct = 1
	}
	return pct
}

// int32Sparse is 4-byte sparse storage, optionally coded.
type int32Sparse struct {
	k    Kind
	m    map[int]int32
	keys *roaring.Bitmap
	n    int
	def  int32
	c    coding.IntCoding
}

func newInt32Sparse(k Kind, length int, def int32, fillPct float64, c coding.IntCoding) *int32Sparse {
	return &int32Sparse{
		k:    k,
		m:    make(map[int]int32, sparseCapacity(length, fillPct)),
		keys: roaring.New(),
		n:    length,
		def:  def,
		c:    c,
	}
}

func (s *int32Sparse) len() int          { return s.n }
func (s *int32Sparse) kind() Kind        { return s.k }
func (s *int32Sparse) style() Style      { return Sparse }
func (s *int32Sparse) defaultValue() any { return decode32(s.c, s.def) }
func (s *int32Sparse) close() error      { return nil }

func (s *int32Sparse) loadFactor() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.keys.GetCardinality()) / float64(s.n)
}

func (s *int32Sparse) code(i int) int32 {
	if code, ok := s.m[i]; ok {
		return code
	}
	return s.def
}

func (s *int32Sparse) setCode(i int, code int32) int32 {
	prev := s.code(i)
	if code == s.def {
		delete(s.m, i)
		s.keys.Remove(uint32(i))
	} else {
		s.m[i] = code
		s.keys.Add(uint32(i))
	}
	return prev
}

func (s *int32Sparse) isNull(i int) bool {
	return s.c != nil && s.code(i) == coding.NullInt32
}

func (s *int32Sparse) value(i int) any { return decode32(s.c, s.code(i)) }

func (s *int32Sparse) setValue(i int, v any) any {
	return decode32(s.c, s.setCode(i, encode32("set", s.k, s.c, v)))
}

func (s *int32Sparse) getInt(i int) int32       { return s.code(i) }
func (s *int32Sparse) setInt(i int, v int32) int32 { return s.setCode(i, v) }

func (s *int32Sparse) compare(i, j int) int {
	if s.c == nil || s.c.Ordered() {
		return cmpOrdered(int64(s.code(i)), int64(s.code(j)))
	}
	return valueCompare(s.value(i), s.value(j))
}

func (s *int32Sparse) swap(i, j int) {
	ci, cj := s.code(i), s.code(j)
	s.setCode(i, cj)
	s.setCode(j, ci)
}

func (s *int32Sparse) codeOf(v any) (int64, bool) {
	if s.c == nil {
		return int64(coerceInt32("binarySearch", s.k, v)), true
	}
	if !s.c.Ordered() {
		return 0, false
	}
	return int64(s.c.Code(v)), true
}

func (s *int32Sparse) copyRange(start, end int) (store, error) {
	out := newInt32Sparse(s.k, end-start, s.def, occupancy(s.keys, s.n), s.c)
	it := s.keys.Iterator()
	it.AdvanceIfNeeded(uint32(start))
	for it.HasNext() {
		i := int(it.Next())
		if i >= end {
			break
		}
		out.setCode(i-start, s.m[i])
	}
	return out, nil
}

func (s *int32Sparse) copyIndexes(indexes []int) (store, error) {
	out := newInt32Sparse(s.k, len(indexes), s.def, occupancy(s.keys, s.n), s.c)
	for k, i := range indexes {
		out.setCode(k, s.code(i))
	}
	return out, nil
}

func (s *int32Sparse) expand(n int) error {
	s.n = n
	return nil
}

// int64Sparse is 8-byte integer sparse storage, optionally coded.
type int64Sparse struct {
	k    Kind
	m    map[int]int64
	keys *roaring.Bitmap
	n    int
	def  int64
	c    coding.LongCoding
}

func newInt64Sparse(k Kind, length int, def int64, fillPct float64, c coding.LongCoding) *int64Sparse {
	return &int64Sparse{
		k:    k,
		m:    make(map[int]int64, sparseCapacity(length, fillPct)),
		keys: roaring.New(),
		n:    length,
		def:  def,
		c:    c,
	}
}

func (s *int64Sparse) len() int          { return s.n }
func (s *int64Sparse) kind() Kind        { return s.k }
func (s *int64Sparse) style() Style      { return Sparse }
func (s *int64Sparse) defaultValue() any { return decode64(s.c, s.def) }
func (s *int64Sparse) close() error      { return nil }

func (s *int64Sparse) loadFactor() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.keys.GetCardinality()) / float64(s.n)
}

func (s *int64Sparse) code(i int) int64 {
	if code, ok := s.m[i]; ok {
		return code
	}
	return s.def
}

func (s *int64Sparse) setCode(i int, code int64) int64 {
	prev := s.code(i)
	if code == s.def {
		delete(s.m, i)
		s.keys.Remove(uint32(i))
	} else {
		s.m[i] = code
		s.keys.Add(uint32(i))
	}
	return prev
}

func (s *int64Sparse) isNull(i int) bool {
	return s.c != nil && s.code(i) == coding.NullInt64
}

func (s *int64Sparse) value(i int) any { return decode64(s.c, s.code(i)) }

func (s *int64Sparse) setValue(i int, v any) any {
	return decode64(s.c, s.setCode(i, encode64("set", s.k, s.c, v)))
}

func (s *int64Sparse) getLong(i int) int64        { return s.code(i) }
func (s *int64Sparse) setLong(i int, v int64) int64 { return s.setCode(i, v) }

func (s *int64Sparse) compare(i, j int) int {
	if s.c == nil || s.c.Ordered() {
		return cmpOrdered(s.code(i), s.code(j))
	}
	return valueCompare(s.value(i), s.value(j))
}

func (s *int64Sparse) swap(i, j int) {
	ci, cj := s.code(i), s.code(j)
	s.setCode(i, cj)
	s.setCode(j, ci)
}

func (s *int64Sparse) codeOf(v any) (int64, bool) {
	if s.c == nil {
		return coerceInt64("binarySearch", s.k, v), true
	}
	if !s.c.Ordered() {
		return 0, false
	}
	return s.c.Code(v), true
}

func (s *int64Sparse) copyRange(start, end int) (store, error) {
	out := newInt64Sparse(s.k, end-start, s.def, occupancy(s.keys, s.n), s.c)
	it := s.keys.Iterator()
	it.AdvanceIfNeeded(uint32(start))
	for it.HasNext() {
		i := int(it.Next())
		if i >= end {
			break
		}
		out.setCode(i-start, s.m[i])
	}
	return out, nil
}

func (s *int64Sparse) copyIndexes(indexes []int) (store, error) {
	out := newInt64Sparse(s.k, len(indexes), s.def, occupancy(s.keys, s.n), s.c)
	for k, i := range indexes {
		out.setCode(k, s.code(i))
	}
	return out, nil
}

func (s *int64Sparse) expand(n int) error {
	s.n = n
	return nil
}

// float64Sparse is sparse double storage. Default comparison is bit-aware
// so a NaN default still restores sparsity when rewritten.
type float64Sparse struct {
	m    map[int]float64
	keys *roaring.Bitmap
	n    int
	def  float64
}

func newFloat64Sparse(length int, def float64, fillPct float64) *float64Sparse {
	return &float64Sparse{
		m:    make(map[int]float64, sparseCapacity(length, fillPct)),
		keys: roaring.New(),
		n:    length,
		def:  def,
	}
}

func (s *float64Sparse) len() int          { return s.n }
func (s *float64Sparse) kind() Kind        { return Double }
func (s *float64Sparse) style() Style      { return Sparse }
func (s *float64Sparse) defaultValue() any { return s.def }
func (s *float64Sparse) close() error      { return nil }

func (s *float64Sparse) loadFactor() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.keys.GetCardinality()) / float64(s.n)
}

func (s *float64Sparse) get(i int) float64 {
	if v, ok := s.m[i]; ok {
		return v
	}
	return s.def
}

func (s *float64Sparse) isNull(i int) bool { return math.IsNaN(s.get(i)) }
func (s *float64Sparse) value(i int) any   { return s.get(i) }

func (s *float64Sparse) setValue(i int, v any) any {
	return s.setDouble(i, coerceFloat64("set", Double, v))
}

func (s *float64Sparse) getDouble(i int) float64 { return s.get(i) }

func (s *float64Sparse) setDouble(i int, v float64) float64 {
	prev := s.get(i)
	if v == s.def || (math.IsNaN(v) && math.IsNaN(s.def)) {
		delete(s.m, i)
		s.keys.Remove(uint32(i))
	} else {
		s.m[i] = v
		s.keys.Add(uint32(i))
	}
	return prev
}

func (s *float64Sparse) compare(i, j int) int {
	return cmpFloat(s.get(i), s.get(j))
}

func (s *float64Sparse) swap(i, j int) {
	vi, vj := s.get(i), s.get(j)
	s.setDouble(i, vj)
	s.setDouble(j, vi)
}

func (s *float64Sparse) copyRange(start, end int) (store, error) {
	out := newFloat64Sparse(end-start, s.def, occupancy(s.keys, s.n))
	it := s.keys.Iterator()
	it.AdvanceIfNeeded(uint32(start))
	for it.HasNext() {
		i := int(it.Next())
		if i >= end {
			break
		}
		out.setDouble(i-start, s.m[i])
	}
	return out, nil
}

func (s *float64Sparse) copyIndexes(indexes []int) (store, error) {
	out := newFloat64Sparse(len(indexes), s.def, occupancy(s.keys, s.n))
	for k, i := range indexes {
		out.setDouble(k, s.get(i))
	}
	return out, nil
}

func (s *float64Sparse) expand(n int) error {
	s.n = n
	return nil
}

// objectSparse is sparse boxed storage for arbitrary values.
type objectSparse struct {
	m    map[int]any
	keys *roaring.Bitmap
	n    int
	def  any
}

func newObjectSparse(length int, def any, fillPct float64) *objectSparse {
	return &objectSparse{
		m:    make(map[int]any, sparseCapacity(length, fillPct)),
		keys: roaring.New(),
		n:    length,
		def:  def,
	}
}

func (s *objectSparse) len() int          { return s.n }
func (s *objectSparse) kind() Kind        { return Object }
func (s *objectSparse) style() Style      { return Sparse }
func (s *objectSparse) defaultValue() any { return s.def }
func (s *objectSparse) close() error      { return nil }

func (s *objectSparse) loadFactor() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.keys.GetCardinality()) / float64(s.n)
}

func (s *objectSparse) get(i int) any {
	if v, ok := s.m[i]; ok {
		return v
	}
	return s.def
}

func (s *objectSparse) isNull(i int) bool { return s.get(i) == nil }
func (s *objectSparse) value(i int) any   { return s.get(i) }

func (s *objectSparse) setValue(i int, v any) any {
	prev := s.get(i)
	if valueEqual(v, s.def) {
		delete(s.m, i)
		s.keys.Remove(uint32(i))
	} else {
		s.m[i] = v
		s.keys.Add(uint32(i))
	}
	return prev
}

func (s *objectSparse) compare(i, j int) int {
	return valueCompare(s.get(i), s.get(j))
}

func (s *objectSparse) swap(i, j int) {
	vi, vj := s.get(i), s.get(j)
	s.setValue(i, vj)
	s.setValue(j, vi)
}

func (s *objectSparse) copyRange(start, end int) (store, error) {
	out := newObjectSparse(end-start, s.def, occupancy(s.keys, s.n))
	it := s.keys.Iterator()
	it.AdvanceIfNeeded(uint32(start))
	for it.HasNext() {
		i := int(it.Next())
		if i >= end {
			break
		}
		out.setValue(i-start, s.m[i])
	}
	return out, nil
}

func (s *objectSparse) copyIndexes(indexes []int) (store, error) {
	out := newObjectSparse(len(indexes), s.def, occupancy(s.keys, s.n))
	for k, i := range indexes {
		out.setValue(k, s.get(i))
	}
	return out, nil
}

func (s *objectSparse) expand(n int) error {
	s.n = n
	return nil
}
