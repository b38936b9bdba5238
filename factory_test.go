package colarr_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colarr"
	"github.com/hupe1980/colarr/coding"
)

func TestBoolNeverSparse(t *testing.T) {
	a, err := colarr.NewSparse(colarr.Bool, 100, false, 0.1)
	require.NoError(t, err)

	assert.Equal(t, colarr.Dense, a.Style())
	assert.Equal(t, colarr.Bool, a.Kind())
}

func TestInvalidFillPct(t *testing.T) {
	for _, pct := range []float64{0, -0.5, 1.5} {
		_, err := colarr.NewSparse(colarr.Long, 10, int64(0), pct)
		require.Error(t, err, "pct %v", pct)
		assert.ErrorIs(t, err, colarr.ErrInvalidFillPct, "pct %v", pct)
	}
}

func TestUnregisteredCombination(t *testing.T) {
	// Intern codes are process-local, so strings and zones have no mapped form.
	for _, kind := range []colarr.Kind{colarr.String, colarr.Zone} {
		_, err := colarr.NewMapped(kind, 10, nil, "/tmp/never-created.bin")
		require.Error(t, err)

		var ce *colarr.ConfigError
		assert.True(t, errors.As(err, &ce))
	}

	_, err := colarr.NewMapped(colarr.Object, 10, nil, "/tmp/never-created.bin")
	require.Error(t, err)
}

func TestNegativeLength(t *testing.T) {
	_, err := colarr.New(colarr.Int, -1, int32(0))
	require.Error(t, err)

	var ce *colarr.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestInvalidDefaultValue(t *testing.T) {
	_, err := colarr.New(colarr.Int, 3, "seven")
	require.Error(t, err)

	var ce *colarr.ConfigError
	require.True(t, errors.As(err, &ce))

	var te *colarr.TypeError
	assert.True(t, errors.As(err, &te))
}

func TestZeroLength(t *testing.T) {
	a, err := colarr.New(colarr.Long, 0, int64(0))
	require.NoError(t, err)

	assert.Equal(t, 0, a.Len())
	requirePanicsBounds(t, func() { a.Value(0) })
}

func TestNewEnum(t *testing.T) {
	type suit string
	a, err := colarr.NewEnum(4, suit("clubs"), suit("clubs"), suit("diamonds"), suit("hearts"), suit("spades"))
	require.NoError(t, err)

	assert.Equal(t, colarr.Enum, a.Kind())
	assert.Equal(t, suit("clubs"), a.Value(0))

	a.SetValue(1, suit("spades"))
	assert.Equal(t, suit("spades"), a.Value(1))
	// Ordinals follow declaration order.
	assert.Equal(t, int32(3), a.Int(1))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*coding.Error)
		assert.True(t, ok, "expected *coding.Error, got %T", r)
	}()
	a.SetValue(0, suit("jokers"))
}

func TestNewEnumSort(t *testing.T) {
	a, err := colarr.NewEnum(3, "low", "low", "mid", "high")
	require.NoError(t, err)
	a.SetValue(0, "high")
	a.SetValue(1, "low")
	a.SetValue(2, "mid")

	// Declaration order is the sort order, not lexicographic order.
	a.Sort(0, 3, 1)
	assert.Equal(t, "low", a.Value(0))
	assert.Equal(t, "mid", a.Value(1))
	assert.Equal(t, "high", a.Value(2))
}

func TestNewCoded(t *testing.T) {
	c := coding.NewOrdinal("red", "green", "blue")

	a, err := colarr.NewCoded(c, 5, nil)
	require.NoError(t, err)

	assert.Equal(t, colarr.Enum, a.Kind())
	assert.True(t, a.IsNull(0))

	a.SetValue(0, "blue")
	assert.Equal(t, "blue", a.Value(0))
	assert.Equal(t, int32(2), a.Int(0))
}

func TestNewCodedSparse(t *testing.T) {
	c := coding.NewOrdinal("a", "b")

	a, err := colarr.NewCodedSparse(c, 100, "a", 0.1)
	require.NoError(t, err)

	assert.Equal(t, colarr.Sparse, a.Style())
	assert.Equal(t, "a", a.Value(50))

	a.SetValue(50, "b")
	assert.Equal(t, 0.01, a.LoadFactor())
}

func TestNewCodedMapped(t *testing.T) {
	c := coding.NewOrdinal("x", "y")

	a, err := colarr.NewCodedMapped(c, 10, "x", mappedPath(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, colarr.Mapped, a.Style())
	a.SetValue(3, "y")
	assert.Equal(t, "y", a.Value(3))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, colarr.Bool, colarr.KindOf(true))
	assert.Equal(t, colarr.Int, colarr.KindOf(int32(1)))
	assert.Equal(t, colarr.Long, colarr.KindOf(1))
	assert.Equal(t, colarr.Long, colarr.KindOf(int64(1)))
	assert.Equal(t, colarr.Double, colarr.KindOf(1.0))
	assert.Equal(t, colarr.String, colarr.KindOf("s"))
	assert.Equal(t, colarr.Time, colarr.KindOf(time.Now()))
	assert.Equal(t, colarr.Duration, colarr.KindOf(time.Second))
	assert.Equal(t, colarr.Zone, colarr.KindOf(time.UTC))
	assert.Equal(t, colarr.Currency, colarr.KindOf(coding.Currency("USD")))
	assert.Equal(t, colarr.Object, colarr.KindOf(struct{}{}))
}
