// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestBufferPool(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		pool := newBufferPool(enabled)
		flat := pool.Alloc(dtypes.Float32, 4).([]float32)
		require.Len(t, flat, 4)
		flat[2] = 7
		pool.Release(dtypes.Float32, flat)

		// Whether reused or not, buffers are always handed out zeroed.
		for range 3 {
			again := pool.Alloc(dtypes.Float32, 4).([]float32)
			require.Equal(t, []float32{0, 0, 0, 0}, again)
			pool.Release(dtypes.Float32, again)
		}
		other := pool.Alloc(dtypes.Int64, 2)
		require.IsType(t, []int64{}, other)
		pool.Release(dtypes.Int64, nil)
	}
}
