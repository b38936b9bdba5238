package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_CreateWriteReadClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "col.bin")

	m, err := Create(path, 16)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 16, m.Size())
	assert.Equal(t, path, m.Path())

	copy(m.Bytes(), []byte("Hello, Mapped!"))
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())

	// Reopen and verify the write survived.
	m2, err := Open(path)
	require.NoError(t, err)
	defer m2.Close()

	assert.Equal(t, []byte("Hello, Mapped!"), m2.Bytes()[:14])
}

func TestMmap_Remap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "col.bin")

	m, err := Create(path, 8)
	require.NoError(t, err)
	defer m.Close()

	copy(m.Bytes(), []byte("abcdefgh"))

	require.NoError(t, m.Remap(16))
	assert.Equal(t, 16, m.Size())

	// Old content preserved, tail zero-filled by the file system.
	assert.Equal(t, []byte("abcdefgh"), m.Bytes()[:8])
	assert.Equal(t, make([]byte, 8), m.Bytes()[8:])

	// Shrinking is rejected.
	assert.ErrorIs(t, m.Remap(4), ErrInvalidSize)

	// Remap to the same size is a no-op.
	require.NoError(t, m.Remap(16))
}

func TestMmap_ZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")

	m, err := Create(path, 0)
	require.NoError(t, err)
	defer m.Close()

	assert.Nil(t, m.Bytes())
	assert.Equal(t, 0, m.Size())
	require.NoError(t, m.Remap(8))
	assert.Len(t, m.Bytes(), 8)
}

func TestMmap_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "col.bin")

	m, err := Create(path, 8)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Remap(16), ErrClosed)
	assert.ErrorIs(t, m.Sync(), ErrClosed)

	// The backing file is left behind for the owner to remove.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestMmap_OpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}
