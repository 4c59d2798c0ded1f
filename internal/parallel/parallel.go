// Package parallel provides the fork-join helpers shared by the tree builder
// and the force pipeline. All helpers block until every chunk has finished.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultWorkers returns the worker count used when a config leaves it unset.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// For splits [0, n) into at most workers contiguous chunks and runs fn on
// each chunk concurrently.
func For(workers, n int, fn func(start, end int)) {
	ForWorker(workers, n, func(_, start, end int) {
		fn(start, end)
	})
}

// ForWorker is For with the worker index passed through, for callers that
// keep per-worker local buffers.
func ForWorker(workers, n int, fn func(worker, start, end int)) {
	if n <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		fn(0, 0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(w, start, end int) {
			defer wg.Done()
			if start < end {
				fn(w, start, end)
			}
		}(w, start, end)
	}
	wg.Wait()
}
