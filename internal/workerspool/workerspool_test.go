// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package workerspool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), New(-1).MaxParallelism())
	assert.Equal(t, 1, New(0).MaxParallelism())
	assert.False(t, New(0).IsEnabled())
	assert.Equal(t, 3, New(3).MaxParallelism())
	assert.False(t, New(1).IsEnabled())
	assert.True(t, New(2).IsEnabled())
}

func TestParallelFor(t *testing.T) {
	for _, parallelism := range []int{1, 2, 4, 16} {
		pool := New(parallelism)
		for _, n := range []int{0, 1, 7, 100, 1001} {
			for _, minChunk := range []int{0, 1, 10, 2000} {
				visited := make([]int32, n)
				var numCalls atomic.Int32
				pool.ParallelFor(n, minChunk, func(start, end int) {
					numCalls.Add(1)
					for ii := start; ii < end; ii++ {
						atomic.AddInt32(&visited[ii], 1)
					}
				})
				for ii, count := range visited {
					require.Equalf(t, int32(1), count, "parallelism=%d, n=%d, minChunk=%d: item %d visited %d times",
						parallelism, n, minChunk, ii, count)
				}
				require.LessOrEqual(t, int(numCalls.Load()), parallelism)
			}
		}
	}
}

func TestParallelForLimitsRunning(t *testing.T) {
	pool := New(3)
	var running, maxRunning atomic.Int32
	var mu sync.Mutex
	pool.ParallelFor(3, 1, func(start, end int) {
		current := running.Add(1)
		mu.Lock()
		if current > maxRunning.Load() {
			maxRunning.Store(current)
		}
		mu.Unlock()
		runtime.Gosched()
		running.Add(-1)
	})
	assert.LessOrEqual(t, int(maxRunning.Load()), 3)
	assert.Equal(t, int32(0), running.Load())
}

func TestParallelForPanics(t *testing.T) {
	pool := New(4)
	var numCalls atomic.Int32
	require.PanicsWithError(t, "failed range", func() {
		pool.ParallelFor(8, 1, func(start, end int) {
			numCalls.Add(1)
			if start == 0 {
				panic(errors.New("failed range"))
			}
		})
	})
	// All ranges still run.
	assert.Equal(t, int32(4), numCalls.Load())
}
