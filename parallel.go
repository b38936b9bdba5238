package colarr

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the minimum element count before a parallel view
// actually fans out; below it the goroutine overhead dominates.
const parallelThreshold = 4096

type chunk struct {
	start, end int
}

func chunkRanges(n int) []chunk {
	workers := runtime.GOMAXPROCS(0)
	if workers < 2 {
		workers = 2
	}
	size := (n + workers - 1) / workers
	var chunks []chunk
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, chunk{start: start, end: end})
	}
	return chunks
}

// runChunks executes fn over every chunk concurrently and waits for all of
// them. fn receives the chunk ordinal so results can be reassembled in
// index order.
func runChunks(chunks []chunk, fn func(c, start, end int) error) error {
	g := new(errgroup.Group)
	for c, ch := range chunks {
		c, ch := c, ch
		g.Go(func() error {
			return fn(c, ch.start, ch.end)
		})
	}
	return g.Wait()
}
