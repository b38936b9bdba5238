package mmap

import (
	"fmt"
	"os"
	"sync/atomic"
)

// File is a read-write memory-mapped file.
// It owns both the OS file handle and the mapped byte region and is
// responsible for releasing them via Close.
type File struct {
	path   string
	f      *os.File
	data   []byte
	size   int
	closed atomic.Bool
}

// Create creates (or truncates) the file at path, grows it to size bytes
// and maps it read-write.
func Create(path string, size int64) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mmap: failed to create %s: %w", path, err)
	}
	m, err := mapFile(path, f, size)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	return m, nil
}

// Open maps an existing file at path read-write for its full size.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mmap: failed to open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: failed to stat %s: %w", path, err)
	}
	m, err := mapFile(path, f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	return m, nil
}

func mapFile(path string, f *os.File, size int64) (*File, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if err := f.Truncate(size); err != nil {
		return nil, fmt.Errorf("mmap: failed to truncate %s to %d bytes: %w", path, size, err)
	}
	var data []byte
	if size > 0 {
		var err error
		data, err = osMap(f, int(size))
		if err != nil {
			return nil, fmt.Errorf("mmap: failed to map %s (%d bytes): %w", path, size, err)
		}
	}
	return &File{path: path, f: f, data: data, size: int(size)}, nil
}

// Remap grows the underlying file to size bytes and replaces the mapping.
// Shrinking is not supported.
func (m *File) Remap(size int64) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if size < int64(m.size) {
		return ErrInvalidSize
	}
	if size == int64(m.size) {
		return nil
	}
	if m.data != nil {
		if err := osUnmap(m.data); err != nil {
			return fmt.Errorf("mmap: failed to unmap %s: %w", m.path, err)
		}
		m.data = nil
	}
	if err := m.f.Truncate(size); err != nil {
		return fmt.Errorf("mmap: failed to grow %s to %d bytes: %w", m.path, size, err)
	}
	data, err := osMap(m.f, int(size))
	if err != nil {
		return fmt.Errorf("mmap: failed to remap %s (%d bytes): %w", m.path, size, err)
	}
	m.data = data
	m.size = int(size)
	return nil
}

// Bytes returns the mapped byte slice.
// The slice is valid only until Close or Remap is called; it is nil for a
// zero-length or closed mapping.
func (m *File) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Path returns the backing file path.
func (m *File) Path() string { return m.path }

// Size returns the size of the mapping in bytes.
func (m *File) Size() int { return m.size }

// Sync flushes mapped changes to the backing file.
func (m *File) Sync() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osSync(m.data)
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *File) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// Close unmaps the memory and closes the file handle. It is idempotent.
// The backing file is left in place; removing it is the caller's decision.
func (m *File) Close() error {
	if m == nil || m.closed.Swap(true) {
		return nil
	}
	var err error
	if m.data != nil {
		err = osUnmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
