// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool runs kernel work in parallel goroutines, with a soft limit on how many run at a time.
package workerspool

import (
	"runtime"
	"sync"

	"github.com/gomlx/exceptions"
)

// Pool of workers. A Pool is safe for concurrent use.
type Pool struct {
	// maxParallelism is the limit of tasks running at the same time. 1 runs everything inline.
	maxParallelism int
	mu             sync.Mutex
	cond           sync.Cond // Signaled whenever numRunning is decreased.
	numRunning     int
}

// New returns a Pool running at most maxParallelism tasks at a time.
// If maxParallelism is negative runtime.NumCPU() is used, and 0 is the same as 1: tasks run inline.
func New(maxParallelism int) *Pool {
	if maxParallelism < 0 {
		maxParallelism = runtime.NumCPU()
	}
	maxParallelism = max(maxParallelism, 1)
	w := &Pool{maxParallelism: maxParallelism}
	w.cond = sync.Cond{L: &w.mu}
	return w
}

// MaxParallelism returns the limit of tasks running at the same time.
func (w *Pool) MaxParallelism() int { return w.maxParallelism }

// IsEnabled returns whether tasks can run in parallel.
func (w *Pool) IsEnabled() bool { return w.maxParallelism > 1 }

// WaitToStart waits until there is a worker available and runs task in a goroutine.
// If parallelism is disabled, it runs task inline.
func (w *Pool) WaitToStart(task func()) {
	if !w.IsEnabled() {
		task()
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.numRunning >= w.maxParallelism {
		w.cond.Wait()
	}
	w.numRunning++
	go func() {
		defer func() {
			w.mu.Lock()
			w.numRunning--
			w.cond.Signal()
			w.mu.Unlock()
		}()
		task()
	}()
}

// ParallelFor splits [0, n) into consecutive ranges of at least minChunk items (one range per worker at most),
// calls fn for each range and waits for all of them.
//
// If any call panics, ParallelFor re-panics with the first exception, after all calls finished.
func (w *Pool) ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	minChunk = max(minChunk, 1)
	numChunks := min(w.maxParallelism, (n+minChunk-1)/minChunk)
	if !w.IsEnabled() || numChunks <= 1 {
		fn(0, n)
		return
	}
	chunkSize := (n + numChunks - 1) / numChunks
	var wg sync.WaitGroup
	var exceptionMu sync.Mutex
	var firstException any
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		w.WaitToStart(func() {
			defer wg.Done()
			if exception := exceptions.Try(func() { fn(start, end) }); exception != nil {
				exceptionMu.Lock()
				if firstException == nil {
					firstException = exception
				}
				exceptionMu.Unlock()
			}
		})
	}
	wg.Wait()
	if firstException != nil {
		panic(firstException)
	}
}
