package colarr

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"

	"github.com/hupe1980/colarr/coding"
	"github.com/hupe1980/colarr/internal/mmap"
)

// Mapped stores keep elements big-endian in a memory-mapped file, so the
// backing file doubles as the serialized form. Every independent array owns
// its own file: copies always allocate a fresh one, never alias.

func mapBacking(path string, size int64) (*mmap.File, error) {
	f, err := mmap.Create(path, size)
	if err != nil {
		logger().LogMap("map", path, size, err)
		return nil, &ResourceError{Op: "map", Path: path, Size: size, cause: err}
	}
	// Point access dominates; the advice is best-effort.
	_ = f.Advise(mmap.AccessRandom)
	logger().LogMap("map", path, size, nil)
	return f, nil
}

// copyPath derives a fresh sibling file path for a mapped copy.
func copyPath(orig string) (string, error) {
	dir, base := filepath.Split(orig)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, base+".copy-*")
	if err != nil {
		return "", &ResourceError{Op: "copy", Path: orig, Size: 0, cause: err}
	}
	path := f.Name()
	f.Close()
	return path, nil
}

func remapBacking(f *mmap.File, size int64) error {
	if err := f.Remap(size); err != nil {
		logger().LogMap("remap", f.Path(), size, err)
		return &ResourceError{Op: "remap", Path: f.Path(), Size: size, cause: err}
	}
	logger().LogMap("remap", f.Path(), size, nil)
	return nil
}

// boolMapped is file-backed boolean storage, one byte per element.
type boolMapped struct {
	f   *mmap.File
	n   int
	def bool
}

func newBoolMapped(length int, def bool, path string) (*boolMapped, error) {
	f, err := mapBacking(path, int64(length))
	if err != nil {
		return nil, err
	}
	s := &boolMapped{f: f, n: length, def: def}
	if def {
		b := s.bytes()
		for i := range b {
			b[i] = 1
		}
	}
	return s, nil
}

func (s *boolMapped) bytes() []byte {
	b := s.f.Bytes()
	if b == nil && s.n > 0 {
		panic(ErrClosed)
	}
	return b
}

func (s *boolMapped) len() int          { return s.n }
func (s *boolMapped) kind() Kind        { return Bool }
func (s *boolMapped) style() Style      { return Mapped }
func (s *boolMapped) defaultValue() any { return s.def }
func (s *boolMapped) loadFactor() float64 { return 1 }
func (s *boolMapped) isNull(i int) bool { return false }

func (s *boolMapped) value(i int) any { return s.getBool(i) }

func (s *boolMapped) setValue(i int, v any) any {
	return s.setBool(i, coerceBool("set", Bool, v))
}

func (s *boolMapped) getBool(i int) bool { return s.bytes()[i] != 0 }

func (s *boolMapped) setBool(i int, v bool) bool {
	b := s.bytes()
	prev := b[i] != 0
	if v {
		b[i] = 1
	} else {
		b[i] = 0
	}
	return prev
}

func (s *boolMapped) compare(i, j int) int {
	return valueCompare(s.getBool(i), s.getBool(j))
}

func (s *boolMapped) swap(i, j int) {
	b := s.bytes()
	b[i], b[j] = b[j], b[i]
}

func (s *boolMapped) copyRange(start, end int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newBoolMapped(end-start, s.def, path)
	if err != nil {
		return nil, err
	}
	copy(out.bytes(), s.bytes()[start:end])
	return out, nil
}

func (s *boolMapped) copyIndexes(indexes []int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newBoolMapped(len(indexes), s.def, path)
	if err != nil {
		return nil, err
	}
	src, dst := s.bytes(), out.bytes()
	for k, i := range indexes {
		dst[k] = src[i]
	}
	return out, nil
}

func (s *boolMapped) expand(n int) error {
	old := s.n
	if err := remapBacking(s.f, int64(n)); err != nil {
		return err
	}
	s.n = n
	if s.def {
		b := s.bytes()
		for i := old; i < n; i++ {
			b[i] = 1
		}
	}
	return nil
}

func (s *boolMapped) close() error {
	logger().LogMap("close", s.f.Path(), int64(s.f.Size()), nil)
	return s.f.Close()
}

// int32Mapped is file-backed 4-byte storage, optionally coded.
type int32Mapped struct {
	k   Kind
	f   *mmap.File
	n   int
	def int32
	c   coding.IntCoding
}

func newInt32Mapped(k Kind, length int, def int32, c coding.IntCoding, path string) (*int32Mapped, error) {
	f, err := mapBacking(path, int64(length)*4)
	if err != nil {
		return nil, err
	}
	s := &int32Mapped{k: k, f: f, n: length, def: def, c: c}
	if def != 0 {
		for i := 0; i < length; i++ {
			s.put(i, def)
		}
	}
	return s, nil
}

func (s *int32Mapped) bytes() []byte {
	b := s.f.Bytes()
	if b == nil && s.n > 0 {
		panic(ErrClosed)
	}
	return b
}

func (s *int32Mapped) at(i int) int32 {
	return int32(binary.BigEndian.Uint32(s.bytes()[i*4:]))
}

func (s *int32Mapped) put(i int, v int32) {
	binary.BigEndian.PutUint32(s.bytes()[i*4:], uint32(v))
}

func (s *int32Mapped) len() int          { return s.n }
func (s *int32Mapped) kind() Kind        { return s.k }
func (s *int32Mapped) style() Style      { return Mapped }
func (s *int32Mapped) defaultValue() any { return decode32(s.c, s.def) }
func (s *int32Mapped) loadFactor() float64 { return 1 }

func (s *int32Mapped) isNull(i int) bool {
	return s.c != nil && s.at(i) == coding.NullInt32
}

func (s *int32Mapped) value(i int) any { return decode32(s.c, s.at(i)) }

func (s *int32Mapped) setValue(i int, v any) any {
	return decode32(s.c, s.setInt(i, encode32("set", s.k, s.c, v)))
}

func (s *int32Mapped) getInt(i int) int32 { return s.at(i) }

func (s *int32Mapped) setInt(i int, v int32) int32 {
	prev := s.at(i)
	s.put(i, v)
	return prev
}

func (s *int32Mapped) compare(i, j int) int {
	if s.c == nil || s.c.Ordered() {
		return cmpOrdered(int64(s.at(i)), int64(s.at(j)))
	}
	return valueCompare(s.value(i), s.value(j))
}

func (s *int32Mapped) swap(i, j int) {
	vi, vj := s.at(i), s.at(j)
	s.put(i, vj)
	s.put(j, vi)
}

func (s *int32Mapped) codeOf(v any) (int64, bool) {
	if s.c == nil {
		return int64(coerceInt32("binarySearch", s.k, v)), true
	}
	if !s.c.Ordered() {
		return 0, false
	}
	return int64(s.c.Code(v)), true
}

func (s *int32Mapped) copyRange(start, end int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newInt32Mapped(s.k, end-start, s.def, s.c, path)
	if err != nil {
		return nil, err
	}
	copy(out.bytes(), s.bytes()[start*4:end*4])
	return out, nil
}

func (s *int32Mapped) copyIndexes(indexes []int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newInt32Mapped(s.k, len(indexes), s.def, s.c, path)
	if err != nil {
		return nil, err
	}
	for k, i := range indexes {
		out.put(k, s.at(i))
	}
	return out, nil
}

func (s *int32Mapped) expand(n int) error {
	old := s.n
	if err := remapBacking(s.f, int64(n)*4); err != nil {
		return err
	}
	s.n = n
	if s.def != 0 {
		for i := old; i < n; i++ {
			s.put(i, s.def)
		}
	}
	return nil
}

func (s *int32Mapped) close() error {
	logger().LogMap("close", s.f.Path(), int64(s.f.Size()), nil)
	return s.f.Close()
}

// int64Mapped is file-backed 8-byte integer storage, optionally coded.
type int64Mapped struct {
	k   Kind
	f   *mmap.File
	n   int
	def int64
	c   coding.LongCoding
}

func newInt64Mapped(k Kind, length int, def int64, c coding.LongCoding, path string) (*int64Mapped, error) {
	f, err := mapBacking(path, int64(length)*8)
	if err != nil {
		return nil, err
	}
	s := &int64Mapped{k: k, f: f, n: length, def: def, c: c}
	if def != 0 {
		for i := 0; i < length; i++ {
			s.put(i, def)
		}
	}
	return s, nil
}

func (s *int64Mapped) bytes() []byte {
	b := s.f.Bytes()
	if b == nil && s.n > 0 {
		panic(ErrClosed)
	}
	return b
}

func (s *int64Mapped) at(i int) int64 {
	return int64(binary.BigEndian.Uint64(s.bytes()[i*8:]))
}

func (s *int64Mapped) put(i int, v int64) {
	binary.BigEndian.PutUint64(s.bytes()[i*8:], uint64(v))
}

func (s *int64Mapped) len() int          { return s.n }
func (s *int64Mapped) kind() Kind        { return s.k }
func (s *int64Mapped) style() Style      { return Mapped }
func (s *int64Mapped) defaultValue() any { return decode64(s.c, s.def) }
func (s *int64Mapped) loadFactor() float64 { return 1 }

func (s *int64Mapped) isNull(i int) bool {
	return s.c != nil && s.at(i) == coding.NullInt64
}

func (s *int64Mapped) value(i int) any { return decode64(s.c, s.at(i)) }

func (s *int64Mapped) setValue(i int, v any) any {
	return decode64(s.c, s.setLong(i, encode64("set", s.k, s.c, v)))
}

func (s *int64Mapped) getLong(i int) int64 { return s.at(i) }

func (s *int64Mapped) setLong(i int, v int64) int64 {
	prev := s.at(i)
	s.put(i, v)
	return prev
}

func (s *int64Mapped) compare(i, j int) int {
	if s.c == nil || s.c.Ordered() {
		return cmpOrdered(s.at(i), s.at(j))
	}
	return valueCompare(s.value(i), s.value(j))
}

func (s *int64Mapped) swap(i, j int) {
	vi, vj := s.at(i), s.at(j)
	s.put(i, vj)
	s.put(j, vi)
}

func (s *int64Mapped) codeOf(v any) (int64, bool) {
	if s.c == nil {
		return coerceInt64("binarySearch", s.k, v), true
	}
	if !s.c.Ordered() {
		return 0, false
	}
	return s.c.Code(v), true
}

func (s *int64Mapped) copyRange(start, end int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newInt64Mapped(s.k, end-start, s.def, s.c, path)
	if err != nil {
		return nil, err
	}
	copy(out.bytes(), s.bytes()[start*8:end*8])
	return out, nil
}

func (s *int64Mapped) copyIndexes(indexes []int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newInt64Mapped(s.k, len(indexes), s.def, s.c, path)
	if err != nil {
		return nil, err
	}
	for k, i := range indexes {
		out.put(k, s.at(i))
	}
	return out, nil
}

func (s *int64Mapped) expand(n int) error {
	old := s.n
	if err := remapBacking(s.f, int64(n)*8); err != nil {
		return err
	}
	s.n = n
	if s.def != 0 {
		for i := old; i < n; i++ {
			s.put(i, s.def)
		}
	}
	return nil
}

func (s *int64Mapped) close() error {
	logger().LogMap("close", s.f.Path(), int64(s.f.Size()), nil)
	return s.f.Close()
}

// float64Mapped is file-backed double storage holding IEEE-754 bits.
type float64Mapped struct {
	f   *mmap.File
	n   int
	def float64
}

func newFloat64Mapped(length int, def float64, path string) (*float64Mapped, error) {
	f, err := mapBacking(path, int64(length)*8)
	if err != nil {
		return nil, err
	}
	s := &float64Mapped{f: f, n: length, def: def}
	if def != 0 {
		for i := 0; i < length; i++ {
			s.put(i, def)
		}
	}
	return s, nil
}

func (s *float64Mapped) bytes() []byte {
	b := s.f.Bytes()
	if b == nil && s.n > 0 {
		panic(ErrClosed)
	}
	return b
}

func (s *float64Mapped) at(i int) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(s.bytes()[i*8:]))
}

func (s *float64Mapped) put(i int, v float64) {
	binary.BigEndian.PutUint64(s.bytes()[i*8:], math.Float64bits(v))
}

func (s *float64Mapped) len() int          { return s.n }
func (s *float64Mapped) kind() Kind        { return Double }
func (s *float64Mapped) style() Style      { return Mapped }
func (s *float64Mapped) defaultValue() any { return s.def }
func (s *float64Mapped) loadFactor() float64 { return 1 }

func (s *float64Mapped) isNull(i int) bool { return math.IsNaN(s.at(i)) }
func (s *float64Mapped) value(i int) any   { return s.at(i) }

func (s *float64Mapped) setValue(i int, v any) any {
	return s.setDouble(i, coerceFloat64("set", Double, v))
}

func (s *float64Mapped) getDouble(i int) float64 { return s.at(i) }

func (s *float64Mapped) setDouble(i int, v float64) float64 {
	prev := s.at(i)
	s.put(i, v)
	return prev
}

func (s *float64Mapped) compare(i, j int) int {
	return cmpFloat(s.at(i), s.at(j))
}

func (s *float64Mapped) swap(i, j int) {
	vi, vj := s.at(i), s.at(j)
	s.put(i, vj)
	s.put(j, vi)
}

func (s *float64Mapped) copyRange(start, end int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newFloat64Mapped(end-start, s.def, path)
	if err != nil {
		return nil, err
	}
	copy(out.bytes(), s.bytes()[start*8:end*8])
	return out, nil
}

func (s *float64Mapped) copyIndexes(indexes []int) (store, error) {
	path, err := copyPath(s.f.Path())
	if err != nil {
		return nil, err
	}
	out, err := newFloat64Mapped(len(indexes), s.def, path)
	if err != nil {
		return nil, err
	}
	for k, i := range indexes {
		out.put(k, s.at(i))
	}
	return out, nil
}

func (s *float64Mapped) expand(n int) error {
	old := s.n
	if err := remapBacking(s.f, int64(n)*8); err != nil {
		return err
	}
	s.n = n
	if s.def != 0 {
		for i := old; i < n; i++ {
			s.put(i, s.def)
		}
	}
	return nil
}

func (s *float64Mapped) close() error {
	logger().LogMap("close", s.f.Path(), int64(s.f.Size()), nil)
	return s.f.Close()
}
