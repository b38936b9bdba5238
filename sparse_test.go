package colarr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colarr"
	"github.com/hupe1980/colarr/testutil"
)

func TestSparseDefaults(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Long, 100, int64(-1), 0.1)
	require.NoError(t, err)

	assert.Equal(t, 100, a.Len())
	assert.Equal(t, colarr.Sparse, a.Style())
	assert.Equal(t, int64(-1), a.DefaultValue())
	assert.Equal(t, 0.0, a.LoadFactor())

	for _, i := range []int{0, 50, 99} {
		assert.Equal(t, int64(-1), a.Value(i))
	}
}

func TestSparseDefaultRestoration(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Long, 100, int64(0), 0.1)
	require.NoError(t, err)

	a.SetLong(10, 42)
	a.SetLong(20, 43)
	assert.Equal(t, 0.02, a.LoadFactor())

	// Writing the default back releases the entry.
	a.SetLong(10, 0)
	assert.Equal(t, 0.01, a.LoadFactor())
	assert.Equal(t, int64(0), a.Long(10))

	a.SetLong(20, 0)
	assert.Equal(t, 0.0, a.LoadFactor())
}

func TestSparseDoubleNaNDefault(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Double, 10, math.NaN(), 0.5)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(a.Double(0)))
	assert.True(t, a.IsNull(0))

	a.SetDouble(0, 1.5)
	assert.Equal(t, 1.5, a.Double(0))
	assert.Equal(t, 0.1, a.LoadFactor())

	// NaN equals the NaN default for occupancy purposes.
	a.SetDouble(0, math.NaN())
	assert.Equal(t, 0.0, a.LoadFactor())
}

func TestSparseCopyIndependence(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Int, 50, int32(0), 0.2)
	require.NoError(t, err)
	a.SetInt(5, 100)

	b, err := a.Copy()
	require.NoError(t, err)
	require.Equal(t, colarr.Sparse, b.Style())

	b.SetInt(5, 200)
	assert.Equal(t, int32(100), a.Int(5))
	assert.Equal(t, int32(200), b.Int(5))
}

func TestSparseExpand(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Long, 10, int64(7), 0.5)
	require.NoError(t, err)
	a.SetLong(3, 1)

	require.NoError(t, a.Expand(1000))

	assert.Equal(t, 1000, a.Len())
	assert.Equal(t, int64(1), a.Long(3))
	assert.Equal(t, int64(7), a.Long(999))
	assert.Equal(t, 0.001, a.LoadFactor())
}

func TestSparseSort(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Int, 5, int32(0), 0.9)
	require.NoError(t, err)
	a.SetInt(0, 5)
	a.SetInt(2, 3)
	a.SetInt(4, 1)

	a.Sort(0, 5, 1)

	got := make([]int32, 5)
	for i := range got {
		got[i] = a.Int(i)
	}
	assert.Equal(t, []int32{0, 0, 1, 3, 5}, got)
}

func TestSparseString(t *testing.T) {
	a, err := colarr.NewSparse(colarr.String, 20, nil, 0.25)
	require.NoError(t, err)

	a.SetValue(7, "only")
	assert.Equal(t, "only", a.Value(7))
	assert.True(t, a.IsNull(0))
	assert.Equal(t, 0.05, a.LoadFactor())

	a.SetValue(7, nil)
	assert.Equal(t, 0.0, a.LoadFactor())
}

func TestSparseMillion(t *testing.T) {
	const (
		n    = 1_000_000
		sets = 500
	)

	a, err := colarr.NewSparse(colarr.Long, n, int64(0), 0.01)
	require.NoError(t, err)

	rng := testutil.NewRNG(4711)
	idx := rng.ScatteredIndexes(n, sets)
	vals := rng.Int64s(sets, 1, 1_000_000)

	for k, i := range idx {
		a.SetLong(i, vals[k])
	}

	assert.InDelta(t, float64(sets)/float64(n), a.LoadFactor(), 1e-9)

	for k, i := range idx {
		assert.Equal(t, vals[k], a.Long(i))
	}

	// Untouched indexes still read the default.
	probe := 0
	touched := make(map[int]struct{}, sets)
	for _, i := range idx {
		touched[i] = struct{}{}
	}
	for i := 0; i < n && probe < 100; i += n / 100 {
		if _, ok := touched[i]; ok {
			continue
		}
		assert.Equal(t, int64(0), a.Long(i))
		probe++
	}

	// A sub-range copy keeps only the occupancy that falls inside it.
	b, err := a.CopyRange(100, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Len())
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Long(100+i), b.Long(i))
	}
}
