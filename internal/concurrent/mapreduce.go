// Package concurrent provides a bounded worker pool for mapping a function
// over an index range and collecting results in order.
package concurrent

import (
	"runtime"
	"sync"
)

// MapReduce runs fn(i) for every i in [0, n) across up to parallelism
// workers and returns the results indexed by i. A parallelism of 1 or less
// runs sequentially in the caller's goroutine. Results preserve input order
// regardless of completion order, matching a sequential map's semantics.
func MapReduce[T any](n, parallelism int, fn func(i int) T) []T {
	results := make([]T, n)
	if n == 0 {
		return results
	}
	if parallelism <= 1 {
		for i := 0; i < n; i++ {
			results[i] = fn(i)
		}
		return results
	}

	workers := parallelism
	if workers > n {
		workers = n
	}
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	workChan := make(chan int, n)
	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workChan {
				results[i] = fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		workChan <- i
	}
	close(workChan)
	wg.Wait()

	return results
}

// ForEach runs fn(i) for every i in [0, n) across up to parallelism workers,
// discarding return values. Use MapReduce when results must be collected.
func ForEach(n, parallelism int, fn func(i int)) {
	MapReduce(n, parallelism, func(i int) struct{} {
		fn(i)
		return struct{}{}
	})
}
