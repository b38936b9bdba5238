package colarr_test

import (
	"bytes"
	"testing"

	"github.com/hupe1980/colarr"
	"github.com/hupe1980/colarr/testutil"
)

func BenchmarkDenseSet(b *testing.B) {
	b.ReportAllocs()

	a, err := colarr.New(colarr.Long, 1_000_000, int64(0))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.SetLong(i%1_000_000, int64(i))
	}
}

func BenchmarkSparseSet(b *testing.B) {
	b.ReportAllocs()

	a, err := colarr.NewSparse(colarr.Long, 1_000_000, int64(0), 0.01)
	if err != nil {
		b.Fatal(err)
	}

	rng := testutil.NewRNG(1)
	idx := rng.ScatteredIndexes(1_000_000, 10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.SetLong(idx[i%len(idx)], int64(i))
	}
}

func BenchmarkMappedSet(b *testing.B) {
	b.ReportAllocs()

	a, err := colarr.NewMapped(colarr.Long, 1_000_000, int64(0), b.TempDir()+"/col.bin")
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.SetLong(i%1_000_000, int64(i))
	}
}

func BenchmarkSort(b *testing.B) {
	rng := testutil.NewRNG(1)
	vals := rng.Int64s(100_000, 0, 1_000_000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		a, err := colarr.New(colarr.Long, len(vals), int64(0))
		if err != nil {
			b.Fatal(err)
		}
		for j, v := range vals {
			a.SetLong(j, v)
		}
		b.StartTimer()

		a.Sort(0, a.Len(), 1)
	}
}

func BenchmarkFilter_Sequential(b *testing.B) {
	benchmarkFilter(b, false)
}

func BenchmarkFilter_Parallel(b *testing.B) {
	benchmarkFilter(b, true)
}

func benchmarkFilter(b *testing.B, parallel bool) {
	b.ReportAllocs()

	rng := testutil.NewRNG(1)
	vals := rng.Int64s(1_000_000, 0, 1000)

	a, err := colarr.New(colarr.Long, len(vals), int64(0))
	if err != nil {
		b.Fatal(err)
	}
	for i, v := range vals {
		a.SetLong(i, v)
	}
	if parallel {
		a = a.Parallel()
	}

	pred := func(i int, v any) bool { return v.(int64) < 100 }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Filter(pred); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSnapshotWrite(b *testing.B) {
	b.ReportAllocs()

	rng := testutil.NewRNG(1)
	vals := rng.Int64s(100_000, 0, 1_000_000)

	a, err := colarr.New(colarr.Long, len(vals), int64(0))
	if err != nil {
		b.Fatal(err)
	}
	for i, v := range vals {
		a.SetLong(i, v)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := colarr.Write(a, &buf, colarr.WithCompression(colarr.CompressionS2)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuilderAppend(b *testing.B) {
	b.ReportAllocs()

	builder := colarr.NewBuilder(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.AppendLong(int64(i))
	}
}
