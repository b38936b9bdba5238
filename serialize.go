package colarr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"time"

	"github.com/hupe1980/colarr/coding"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// Snapshot format: a fixed header, the default value, the element stream
// in index order (optionally compressed as one block), and a checksum of
// the uncompressed element stream.
//
//	magic "CLA0" | version | compression | style | kind
//	length u64 | fillPct f64 | default | payloadLen u64 | payload | crc32c
//
// Elements are big-endian fixed width: 1 byte for bools, 4 bytes for ints
// and 32-bit codes, 8 bytes for longs, doubles and 64-bit codes. String
// and zone elements are written as length-prefixed text because their
// intern codes are process-local.

var snapshotMagic = [4]byte{'C', 'L', 'A', '0'}

const snapshotVersion = 1

// Compression selects the snapshot payload compression.
type Compression uint8

const (
	// CompressionNone writes the raw element stream.
	CompressionNone Compression = iota
	// CompressionS2 compresses the element stream with s2.
	CompressionS2
	// CompressionLZ4 compresses the element stream with lz4.
	CompressionLZ4
)

// WriteOption configures Write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	compression Compression
}

// WithCompression selects the payload compression codec.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = c
	}
}

var crcTable = crc32.MakeTable(crc32.Castagnoli)

const nullTextLen = ^uint32(0)

// Write serializes the array to w.
func Write(a Array, w io.Writer, opts ...WriteOption) (err error) {
	defer func() { logger().LogSnapshot("write", a.Kind(), a.Len(), err) }()

	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	kind := a.Kind()
	if kind == Object {
		return &ConfigError{Op: "write", Detail: "object arrays are not serializable"}
	}

	var elems bytes.Buffer
	n := a.Len()
	if kind == String || kind == Zone {
		// Intern codes are process-local, so variable-width kinds travel
		// in decoded text form.
		writeText(&elems, a.DefaultValue())
		for i := 0; i < n; i++ {
			writeText(&elems, a.Value(i))
		}
	} else {
		writeCode(&elems, kind, defaultCodeOf(a))
		for i := 0; i < n; i++ {
			writeCode(&elems, kind, rawCodeAt(a, i))
		}
	}

	raw := elems.Bytes()
	sum := crc32.Checksum(raw, crcTable)

	payload := raw
	switch o.compression {
	case CompressionS2:
		payload = s2.Encode(nil, raw)
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return fmt.Errorf("colarr: lz4 compression failed: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("colarr: lz4 compression failed: %w", err)
		}
		payload = buf.Bytes()
	}

	header := make([]byte, 0, 32)
	header = append(header, snapshotMagic[:]...)
	header = append(header, snapshotVersion, byte(o.compression), byte(a.Style()), byte(kind))
	header = binary.BigEndian.AppendUint64(header, uint64(n))
	header = binary.BigEndian.AppendUint64(header, math.Float64bits(fillPctOf(a)))
	header = binary.BigEndian.AppendUint64(header, uint64(len(payload)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("colarr: failed to write snapshot header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("colarr: failed to write snapshot payload: %w", err)
	}
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], sum)
	if _, err := w.Write(footer[:]); err != nil {
		return fmt.Errorf("colarr: failed to write snapshot checksum: %w", err)
	}
	return nil
}

// Read deserializes an array written by Write into fresh heap storage.
// Mapped snapshots need ReadMapped; enum snapshots need ReadCoded since
// the ordinal coding lives with the caller's declaration.
func Read(r io.Reader) (Array, error) {
	h, raw, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}
	if h.style == Mapped {
		return nil, &ConfigError{Op: "read", Detail: "mapped snapshot requires ReadMapped with a backing file path"}
	}
	if h.kind == Enum {
		return nil, &ConfigError{Op: "read", Detail: "enum snapshot requires ReadCoded with the ordinal coding"}
	}
	return buildFromSnapshot(h, raw, "", nil)
}

// ReadMapped deserializes a snapshot into a fresh mapped array backed by a
// new file at path, replaying the element stream into the mapping.
func ReadMapped(r io.Reader, path string) (Array, error) {
	h, raw, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}
	if h.kind == Enum {
		return nil, &ConfigError{Op: "read", Detail: "enum snapshot requires ReadCodedMapped with the ordinal coding"}
	}
	h.style = Mapped
	return buildFromSnapshot(h, raw, path, nil)
}

// ReadCoded deserializes an enum snapshot using the caller's coding.
func ReadCoded(r io.Reader, c coding.IntCoding) (Array, error) {
	if c == nil {
		return nil, &ConfigError{Op: "read", Detail: "nil coding"}
	}
	h, raw, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}
	if h.style == Mapped {
		return nil, &ConfigError{Op: "read", Detail: "mapped snapshot requires ReadCodedMapped with a backing file path"}
	}
	if h.kind != Enum {
		return nil, &ConfigError{Op: "read", Detail: fmt.Sprintf("snapshot holds %s, not enum", h.kind)}
	}
	return buildFromSnapshot(h, raw, "", c)
}

// ReadCodedMapped deserializes an enum snapshot into a fresh mapped array
// backed by a new file at path, using the caller's coding.
func ReadCodedMapped(r io.Reader, c coding.IntCoding, path string) (Array, error) {
	if c == nil {
		return nil, &ConfigError{Op: "read", Detail: "nil coding"}
	}
	h, raw, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}
	if h.kind != Enum {
		return nil, &ConfigError{Op: "read", Detail: fmt.Sprintf("snapshot holds %s, not enum", h.kind)}
	}
	h.style = Mapped
	return buildFromSnapshot(h, raw, path, c)
}

type snapshotHeader struct {
	compression Compression
	style       Style
	kind        Kind
	length      int
	fillPct     float64
}

func readSnapshot(r io.Reader) (snapshotHeader, []byte, error) {
	var h snapshotHeader

	header := make([]byte, 32)
	if _, err := io.ReadFull(r, header); err != nil {
		return h, nil, fmt.Errorf("colarr: failed to read snapshot header: %w", err)
	}
	if !bytes.Equal(header[:4], snapshotMagic[:]) {
		return h, nil, &ConfigError{Op: "read", Detail: "invalid snapshot magic"}
	}
	if header[4] != snapshotVersion {
		return h, nil, &ConfigError{Op: "read", Detail: fmt.Sprintf("unsupported snapshot version %d", header[4])}
	}
	h.compression = Compression(header[5])
	h.style = Style(header[6])
	h.kind = Kind(header[7])
	h.length = int(binary.BigEndian.Uint64(header[8:16]))
	h.fillPct = math.Float64frombits(binary.BigEndian.Uint64(header[16:24]))
	payloadLen := binary.BigEndian.Uint64(header[24:32])

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return h, nil, fmt.Errorf("colarr: failed to read snapshot payload: %w", err)
	}

	raw := payload
	switch h.compression {
	case CompressionNone:
	case CompressionS2:
		var err error
		raw, err = s2.Decode(nil, payload)
		if err != nil {
			return h, nil, fmt.Errorf("colarr: s2 decompression failed: %w", err)
		}
	case CompressionLZ4:
		var err error
		raw, err = io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return h, nil, fmt.Errorf("colarr: lz4 decompression failed: %w", err)
		}
	default:
		return h, nil, &ConfigError{Op: "read", Detail: fmt.Sprintf("unknown compression %d", h.compression)}
	}

	var footer [4]byte
	if _, err := io.ReadFull(r, footer[:]); err != nil {
		return h, nil, fmt.Errorf("colarr: failed to read snapshot checksum: %w", err)
	}
	if got := crc32.Checksum(raw, crcTable); got != binary.BigEndian.Uint32(footer[:]) {
		return h, nil, &ConfigError{Op: "read", Detail: "snapshot checksum mismatch"}
	}
	return h, raw, nil
}

func buildFromSnapshot(h snapshotHeader, raw []byte, path string, c coding.IntCoding) (Array, error) {
	buf := bytes.NewReader(raw)

	def, err := readElementValue(buf, h.kind, c)
	if err != nil {
		return nil, err
	}

	var arr Array
	switch {
	case c != nil:
		switch h.style {
		case Sparse:
			arr, err = NewCodedSparse(c, h.length, def, clampFill(h.fillPct))
		case Mapped:
			arr, err = NewCodedMapped(c, h.length, def, path)
		default:
			arr, err = NewCoded(c, h.length, def)
		}
	case h.style == Sparse:
		arr, err = NewSparse(h.kind, h.length, def, clampFill(h.fillPct))
	case h.style == Mapped:
		arr, err = NewMapped(h.kind, h.length, def, path)
	default:
		arr, err = New(h.kind, h.length, def)
	}
	if err != nil {
		return nil, err
	}

	for i := 0; i < h.length; i++ {
		if err := readElementInto(buf, arr, h.kind, i, c); err != nil {
			arr.Close()
			return nil, err
		}
	}
	logger().LogSnapshot("read", arr.Kind(), arr.Len(), nil)
	return arr, nil
}

func clampFill(pct float64) float64 {
	if pct <= 0 || pct > 1 {
		return 0.25
	}
	return pct
}

// rawCodeAt extracts the stored primitive at i in wire terms.
func rawCodeAt(a Array, i int) int64 {
	switch a.Kind() {
	case Bool:
		if a.Bool(i) {
			return 1
		}
		return 0
	case Int, Currency, Year, Enum:
		return int64(a.Int(i))
	case Double:
		return int64(math.Float64bits(a.Double(i)))
	default:
		return a.Long(i)
	}
}

func defaultCodeOf(a Array) int64 {
	def := a.DefaultValue()
	switch a.Kind() {
	case Bool:
		if def.(bool) {
			return 1
		}
		return 0
	case Int:
		return int64(def.(int32))
	case Double:
		return int64(math.Float64bits(def.(float64)))
	case Currency:
		return int64(coding.ISOCurrency.Code(def))
	case Year:
		return int64(coding.Year.Code(def))
	case Time:
		return coding.Time.Code(def)
	case Duration:
		return coding.Duration.Code(def)
	case Enum:
		return enumDefaultCode(a)
	default:
		return def.(int64)
	}
}

// enumDefaultCode recovers the default's ordinal through the store coding.
func enumDefaultCode(a Array) int64 {
	type coded interface {
		codeOf(v any) (int64, bool)
	}
	if w, ok := a.(*array); ok {
		if c, ok := w.s.(coded); ok {
			if code, ok := c.codeOf(a.DefaultValue()); ok {
				return code
			}
		}
	}
	return int64(coding.NullInt32)
}

func writeCode(buf *bytes.Buffer, kind Kind, c int64) {
	switch kind.width() {
	case 1:
		buf.WriteByte(byte(c))
	case 4:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(int32(c)))
		buf.Write(b[:])
	default:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(c))
		buf.Write(b[:])
	}
}

func writeText(buf *bytes.Buffer, v any) {
	var b [4]byte
	if v == nil {
		binary.BigEndian.PutUint32(b[:], nullTextLen)
		buf.Write(b[:])
		return
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case *time.Location:
		s = x.String()
	default:
		panic(&TypeError{Op: "write", Kind: String, Value: v})
	}
	binary.BigEndian.PutUint32(b[:], uint32(len(s)))
	buf.Write(b[:])
	buf.WriteString(s)
}

func readText(r *bytes.Reader, kind Kind) (any, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, fmt.Errorf("colarr: truncated snapshot element: %w", err)
	}
	n := binary.BigEndian.Uint32(b[:])
	if n == nullTextLen {
		return nil, nil
	}
	text := make([]byte, n)
	if _, err := io.ReadFull(r, text); err != nil {
		return nil, fmt.Errorf("colarr: truncated snapshot element: %w", err)
	}
	if kind == Zone {
		name := string(text)
		switch name {
		case "UTC", "":
			return time.UTC, nil
		case "Local":
			return time.Local, nil
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("colarr: unknown zone %q in snapshot: %w", name, err)
		}
		return loc, nil
	}
	return string(text), nil
}

// readElementValue decodes one element from the stream into value terms.
func readElementValue(r *bytes.Reader, kind Kind, c coding.IntCoding) (any, error) {
	switch kind {
	case String, Zone:
		return readText(r, kind)
	case Bool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		return b != 0, nil
	case Int, Currency, Year, Enum:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		code := int32(binary.BigEndian.Uint32(b[:]))
		switch kind {
		case Currency:
			return coding.ISOCurrency.Value(code), nil
		case Year:
			return coding.Year.Value(code), nil
		case Enum:
			return c.Value(code), nil
		default:
			return code, nil
		}
	default:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		code := int64(binary.BigEndian.Uint64(b[:]))
		switch kind {
		case Double:
			return math.Float64frombits(uint64(code)), nil
		case Time:
			return coding.Time.Value(code), nil
		case Duration:
			return coding.Duration.Value(code), nil
		default:
			return code, nil
		}
	}
}

// readElementInto replays one element into the target array, using raw
// codes for the fixed-width kinds to skip redundant decode/encode hops.
func readElementInto(r *bytes.Reader, arr Array, kind Kind, i int, _ coding.IntCoding) error {
	switch kind {
	case String, Zone:
		v, err := readText(r, kind)
		if err != nil {
			return err
		}
		arr.SetValue(i, v)
	case Bool:
		b, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		arr.SetBool(i, b != 0)
	case Int, Currency, Year, Enum:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		arr.SetInt(i, int32(binary.BigEndian.Uint32(b[:])))
	case Double:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		arr.SetDouble(i, math.Float64frombits(binary.BigEndian.Uint64(b[:])))
	default:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return fmt.Errorf("colarr: truncated snapshot element: %w", err)
		}
		arr.SetLong(i, int64(binary.BigEndian.Uint64(b[:])))
	}
	return nil
}

func fillPctOf(a Array) float64 {
	if a.Style() == Sparse {
		return a.LoadFactor()
	}
	return 0
}
