package colarr_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colarr"
	"github.com/hupe1980/colarr/coding"
)

func requirePanicsBounds(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected bounds panic")
		_, ok := r.(*colarr.BoundsError)
		require.True(t, ok, "expected *BoundsError, got %T: %v", r, r)
	}()
	fn()
}

func requirePanicsType(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected type panic")
		_, ok := r.(*colarr.TypeError)
		require.True(t, ok, "expected *TypeError, got %T: %v", r, r)
	}()
	fn()
}

func TestDenseDefaults(t *testing.T) {
	a, err := colarr.New(colarr.Int, 5, int32(7))
	require.NoError(t, err)

	assert.Equal(t, 5, a.Len())
	assert.Equal(t, colarr.Int, a.Kind())
	assert.Equal(t, colarr.Dense, a.Style())
	assert.Equal(t, int32(7), a.DefaultValue())
	assert.Equal(t, 1.0, a.LoadFactor())

	for i := 0; i < 5; i++ {
		assert.Equal(t, int32(7), a.Value(i))
	}
}

func TestDenseGetSet(t *testing.T) {
	a, err := colarr.New(colarr.Int, 3, int32(0))
	require.NoError(t, err)

	prev := a.SetInt(1, 42)
	assert.Equal(t, int32(0), prev)
	assert.Equal(t, int32(42), a.Int(1))
	assert.Equal(t, int32(42), a.Value(1))

	prev = a.SetInt(1, 43)
	assert.Equal(t, int32(42), prev)
}

func TestDenseBoundsPanic(t *testing.T) {
	a, err := colarr.New(colarr.Long, 3, int64(0))
	require.NoError(t, err)

	requirePanicsBounds(t, func() { a.Value(3) })
	requirePanicsBounds(t, func() { a.Value(-1) })
	requirePanicsBounds(t, func() { a.SetLong(100, 1) })
}

func TestDenseTypeMismatchPanic(t *testing.T) {
	a, err := colarr.New(colarr.Int, 3, int32(0))
	require.NoError(t, err)

	requirePanicsType(t, func() { a.SetValue(0, "not an int") })
	requirePanicsType(t, func() { a.Double(0) })

	d, err := colarr.New(colarr.Double, 3, 0.0)
	require.NoError(t, err)

	requirePanicsType(t, func() { d.Long(0) })
}

func TestDenseFill(t *testing.T) {
	a, err := colarr.New(colarr.Long, 6, int64(0))
	require.NoError(t, err)

	a.Fill(int64(9), 2, 5)

	assert.Equal(t, int64(0), a.Long(1))
	assert.Equal(t, int64(9), a.Long(2))
	assert.Equal(t, int64(9), a.Long(4))
	assert.Equal(t, int64(0), a.Long(5))
}

func TestDenseExpand(t *testing.T) {
	a, err := colarr.New(colarr.Double, 3, 1.5)
	require.NoError(t, err)
	a.SetDouble(0, 9)

	require.NoError(t, a.Expand(6))

	assert.Equal(t, 6, a.Len())
	assert.Equal(t, 9.0, a.Double(0))
	assert.Equal(t, 1.5, a.Double(5))

	// Shrinking is a no-op.
	require.NoError(t, a.Expand(2))
	assert.Equal(t, 6, a.Len())
}

func TestCopyIndependence(t *testing.T) {
	a, err := colarr.New(colarr.Int, 4, int32(0))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		a.SetInt(i, int32(i*10))
	}

	b, err := a.Copy()
	require.NoError(t, err)

	b.SetInt(2, 999)
	assert.Equal(t, int32(20), a.Int(2))
	assert.Equal(t, int32(999), b.Int(2))

	a.SetInt(0, -1)
	assert.Equal(t, int32(0), b.Int(0))
}

func TestCopyRange(t *testing.T) {
	a, err := colarr.New(colarr.Long, 10, int64(0))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		a.SetLong(i, int64(i))
	}

	b, err := a.CopyRange(3, 7)
	require.NoError(t, err)

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, int64(3), b.Long(0))
	assert.Equal(t, int64(6), b.Long(3))
}

func TestCopyIndexes(t *testing.T) {
	a, err := colarr.New(colarr.Int, 5, int32(0))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		a.SetInt(i, int32(i))
	}

	b, err := a.CopyIndexes([]int{4, 0, 2})
	require.NoError(t, err)

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, int32(4), b.Int(0))
	assert.Equal(t, int32(0), b.Int(1))
	assert.Equal(t, int32(2), b.Int(2))
}

func TestSortAscending(t *testing.T) {
	a, err := colarr.New(colarr.Int, 5, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{3, 1, 4, 1, 5} {
		a.SetInt(i, v)
	}

	a.Sort(0, 5, 1)

	got := make([]int32, 5)
	for i := range got {
		got[i] = a.Int(i)
	}
	assert.Equal(t, []int32{1, 1, 3, 4, 5}, got)
}

func TestSortDescending(t *testing.T) {
	a, err := colarr.New(colarr.Int, 5, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{3, 1, 4, 1, 5} {
		a.SetInt(i, v)
	}

	a.Sort(0, 5, -1)

	got := make([]int32, 5)
	for i := range got {
		got[i] = a.Int(i)
	}
	assert.Equal(t, []int32{5, 4, 3, 1, 1}, got)
}

func TestSortDoubleNaNLast(t *testing.T) {
	vals := []float64{2, math.NaN(), 1, 3, math.NaN()}

	for _, dir := range []int{1, -1} {
		a, err := colarr.New(colarr.Double, len(vals), 0.0)
		require.NoError(t, err)
		for i, v := range vals {
			a.SetDouble(i, v)
		}

		a.Sort(0, a.Len(), dir)

		// NaN sinks to the end regardless of direction.
		assert.True(t, math.IsNaN(a.Double(3)), "dir %d", dir)
		assert.True(t, math.IsNaN(a.Double(4)), "dir %d", dir)
		if dir > 0 {
			assert.Equal(t, []float64{1, 2, 3}, []float64{a.Double(0), a.Double(1), a.Double(2)})
		} else {
			assert.Equal(t, []float64{3, 2, 1}, []float64{a.Double(0), a.Double(1), a.Double(2)})
		}
	}
}

func TestSortSubRange(t *testing.T) {
	a, err := colarr.New(colarr.Int, 6, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{9, 5, 3, 1, 7, 0} {
		a.SetInt(i, v)
	}

	a.Sort(1, 5, 1)

	got := make([]int32, 6)
	for i := range got {
		got[i] = a.Int(i)
	}
	assert.Equal(t, []int32{9, 1, 3, 5, 7, 0}, got)
}

func TestBinarySearch(t *testing.T) {
	a, err := colarr.New(colarr.Int, 4, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{1, 3, 5, 7} {
		a.SetInt(i, v)
	}

	assert.Equal(t, 2, a.BinarySearch(0, 4, int32(5)))
	assert.Equal(t, 0, a.BinarySearch(0, 4, int32(1)))
	assert.Equal(t, -3, a.BinarySearch(0, 4, int32(4)))
	assert.Equal(t, -1, a.BinarySearch(0, 4, int32(0)))
	assert.Equal(t, -5, a.BinarySearch(0, 4, int32(9)))
}

func TestBinarySearchLong(t *testing.T) {
	a, err := colarr.New(colarr.Long, 3, int64(0))
	require.NoError(t, err)
	for i, v := range []int64{10, 20, 30} {
		a.SetLong(i, v)
	}

	assert.Equal(t, 1, a.BinarySearch(0, 3, int64(20)))
	assert.Equal(t, -4, a.BinarySearch(0, 3, int64(31)))
}

func TestCumSumInt(t *testing.T) {
	a, err := colarr.New(colarr.Int, 4, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{1, 2, 3, 4} {
		a.SetInt(i, v)
	}

	c := a.CumSum()

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []int32{1, 3, 6, 10}, []int32{c.Int(0), c.Int(1), c.Int(2), c.Int(3)})
}

func TestCumSumDoubleNaN(t *testing.T) {
	a, err := colarr.New(colarr.Double, 3, 0.0)
	require.NoError(t, err)
	a.SetDouble(0, 1)
	a.SetDouble(1, math.NaN())
	a.SetDouble(2, 3)

	c := a.CumSum()

	assert.Equal(t, 1.0, c.Double(0))
	assert.Equal(t, 1.0, c.Double(1))
	assert.Equal(t, 4.0, c.Double(2))
}

func TestCumSumDoubleNaNFirst(t *testing.T) {
	a, err := colarr.New(colarr.Double, 3, 0.0)
	require.NoError(t, err)
	a.SetDouble(0, math.NaN())
	a.SetDouble(1, 2)
	a.SetDouble(2, 3)

	c := a.CumSum()

	// The first running value is seeded as-is.
	assert.True(t, math.IsNaN(c.Double(0)))
	assert.Equal(t, 2.0, c.Double(1))
	assert.Equal(t, 5.0, c.Double(2))
}

func TestCumSumUnsupportedKind(t *testing.T) {
	a, err := colarr.New(colarr.String, 2, nil)
	require.NoError(t, err)

	requirePanicsType(t, func() { a.CumSum() })
}

func TestDistinct(t *testing.T) {
	a, err := colarr.New(colarr.Int, 6, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{3, 1, 3, 2, 1, 3} {
		a.SetInt(i, v)
	}

	d, err := a.Distinct(0)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []int32{3, 1, 2}, []int32{d.Int(0), d.Int(1), d.Int(2)})
}

func TestDistinctLimit(t *testing.T) {
	a, err := colarr.New(colarr.Int, 6, int32(0))
	require.NoError(t, err)
	for i, v := range []int32{3, 1, 3, 2, 1, 3} {
		a.SetInt(i, v)
	}

	d, err := a.Distinct(2)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
}

func TestDistinctDoubleNaN(t *testing.T) {
	a, err := colarr.New(colarr.Double, 4, float64(0))
	require.NoError(t, err)
	for i, v := range []float64{1, math.NaN(), math.NaN(), 1} {
		a.SetDouble(i, v)
	}

	d, err := a.Distinct(0)
	require.NoError(t, err)

	// All NaNs collapse to a single distinct value, in first-seen order.
	require.Equal(t, 2, d.Len())
	assert.Equal(t, 1.0, d.Double(0))
	assert.True(t, math.IsNaN(d.Double(1)))
}

func TestStringArray(t *testing.T) {
	a, err := colarr.New(colarr.String, 3, nil)
	require.NoError(t, err)

	assert.True(t, a.IsNull(0))

	a.SetValue(0, "alpha")
	a.SetValue(1, "beta")
	a.SetValue(2, "alpha")

	assert.Equal(t, "alpha", a.Value(0))
	assert.False(t, a.IsNull(0))
	assert.True(t, a.IsEqual(2, "alpha"))

	// Equal strings intern to the same code.
	assert.Equal(t, a.Int(0), a.Int(2))
	assert.NotEqual(t, a.Int(0), a.Int(1))
}

func TestStringSort(t *testing.T) {
	a, err := colarr.New(colarr.String, 3, nil)
	require.NoError(t, err)
	a.SetValue(0, "pear")
	a.SetValue(1, "apple")
	a.SetValue(2, "mango")

	// Intern codes carry no order, so sorting compares decoded values.
	a.Sort(0, 3, 1)

	assert.Equal(t, "apple", a.Value(0))
	assert.Equal(t, "mango", a.Value(1))
	assert.Equal(t, "pear", a.Value(2))
}

func TestTimeArray(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	a, err := colarr.New(colarr.Time, 2, nil)
	require.NoError(t, err)
	assert.True(t, a.IsNull(0))

	a.SetValue(0, ts)
	got, ok := a.Value(0).(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(got))

	// The raw long is the epoch-millisecond code.
	assert.Equal(t, ts.UnixMilli(), a.Long(0))
}

func TestDurationArray(t *testing.T) {
	a, err := colarr.New(colarr.Duration, 2, time.Duration(0))
	require.NoError(t, err)

	a.SetValue(0, 90*time.Second)
	assert.Equal(t, 90*time.Second, a.Value(0))
	assert.Equal(t, int64(90*time.Second), a.Long(0))
}

func TestCurrencyArray(t *testing.T) {
	a, err := colarr.New(colarr.Currency, 3, nil)
	require.NoError(t, err)

	a.SetValue(0, coding.Currency("USD"))
	a.SetValue(1, "EUR")
	a.SetValue(2, "CHF")

	assert.Equal(t, coding.Currency("USD"), a.Value(0))
	assert.Equal(t, coding.Currency("EUR"), a.Value(1))

	// Currency codes are table-ordered, so code sorts are value sorts.
	a.Sort(0, 3, 1)
	assert.Equal(t, coding.Currency("CHF"), a.Value(0))
	assert.Equal(t, coding.Currency("EUR"), a.Value(1))
	assert.Equal(t, coding.Currency("USD"), a.Value(2))
}

func TestZoneArray(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	a, err := colarr.New(colarr.Zone, 2, nil)
	require.NoError(t, err)

	a.SetValue(0, berlin)
	a.SetValue(1, time.UTC)

	got, ok := a.Value(0).(*time.Location)
	require.True(t, ok)
	assert.Equal(t, "Europe/Berlin", got.String())
	assert.Equal(t, time.UTC, a.Value(1))
}

func TestYearArray(t *testing.T) {
	a, err := colarr.New(colarr.Year, 2, nil)
	require.NoError(t, err)

	a.SetValue(0, 2024)
	assert.Equal(t, 2024, a.Value(0))
	assert.Equal(t, int32(2024), a.Int(0))
	assert.True(t, a.IsNull(1))
}

func TestBoolArray(t *testing.T) {
	a, err := colarr.New(colarr.Bool, 4, false)
	require.NoError(t, err)

	a.SetBool(1, true)
	a.SetBool(3, true)

	assert.False(t, a.Bool(0))
	assert.True(t, a.Bool(1))
	assert.Equal(t, true, a.Value(3))

	// Counting sort groups false before true ascending.
	a.Sort(0, 4, 1)
	assert.Equal(t, []bool{false, false, true, true}, []bool{a.Bool(0), a.Bool(1), a.Bool(2), a.Bool(3)})
}

func TestObjectArray(t *testing.T) {
	a, err := colarr.New(colarr.Object, 3, nil)
	require.NoError(t, err)

	a.SetValue(0, "mixed")
	a.SetValue(1, 42)

	assert.Equal(t, "mixed", a.Value(0))
	assert.Equal(t, 42, a.Value(1))
	assert.True(t, a.IsNull(2))
}
