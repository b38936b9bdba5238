package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Int32s generates n random values in [minVal, maxVal).
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) Int32s(n int, minVal, maxVal int32) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := int64(maxVal) - int64(minVal)
	out := make([]int32, n)
	for i := range out {
		out[i] = minVal + int32(r.rand.Int63n(span))
	}
	return out
}

// Int64s generates n random values in [minVal, maxVal).
func (r *RNG) Int64s(n int, minVal, maxVal int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	out := make([]int64, n)
	for i := range out {
		out[i] = minVal + r.rand.Int63n(span)
	}
	return out
}

// Float64s generates n random values in [0, 1), replacing each with NaN
// at the given rate. nanRate 0 yields plain uniform data.
func (r *RNG) Float64s(n int, nanRate float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		if nanRate > 0 && r.rand.Float64() < nanRate {
			out[i] = math.NaN()
		} else {
			out[i] = r.rand.Float64()
		}
	}
	return out
}

// Bools generates n random booleans where trueRate is the probability
// of true.
func (r *RNG) Bools(n int, trueRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() < trueRate
	}
	return out
}

// Strings generates n strings drawn from a pool of distinct values.
// A small pool exercises intern-code reuse; pool == n approximates
// all-distinct data.
func (r *RNG) Strings(n, pool int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("v%06d", r.rand.Intn(pool))
	}
	return out
}

// ScatteredIndexes returns k distinct sorted indexes in [0, n).
// Useful for populating sparse arrays far below their fill threshold.
func (r *RNG) ScatteredIndexes(n, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if k > n {
		k = n
	}
	seen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for len(out) < k {
		i := r.rand.Intn(n)
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// ZipfCodes generates n code assignments with Zipfian distribution over
// codeCount distinct codes. Skewed codes mimic real categorical columns
// where a few values dominate.
func (r *RNG) ZipfCodes(n, codeCount int, s float64) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := make([]int32, n)
	for i := 0; i < n; i++ {
		codes[i] = int32(r.zipfLocked(codeCount, s))
	}
	return codes
}
