// Package parallel provides a small helper for splitting independent work
// across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items across up to GOMAXPROCS workers and calls fn
// with the half-open range [start, end) each worker owns. fn must not
// touch state outside its range; callers that need ordered results write
// into per-index slots and combine sequentially afterwards.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item lands in exactly one chunk.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at or below
// threshold, and in parallel otherwise. Useful when per-item work is cheap
// enough that goroutine overhead dominates for small inputs.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
