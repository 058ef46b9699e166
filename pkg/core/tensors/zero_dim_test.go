// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/varlist/pkg/core/shapes"
)

func TestZeroDimFromShape(t *testing.T) {
	testCases := []struct {
		name       string
		dimensions []int
		dtype      dtypes.DType
	}{
		{"rank_1_zero_dim", []int{0}, dtypes.Int32},
		{"rank_2_zero_first", []int{0, 5}, dtypes.Float64},
		{"rank_2_zero_second", []int{3, 0}, dtypes.Int64},
		{"rank_3_zero_middle", []int{2, 0, 4}, dtypes.Int8},
		{"rank_4_multiple_zeros", []int{1, 0, 0, 3}, dtypes.Float32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tensor := FromShape(shapes.Make(tc.dtype, tc.dimensions...))
			require.True(t, tensor.IsAllocated())
			tensor.ConstFlatData(func(flat any) {
				require.Nil(t, flat)
			})
			require.Equal(t, tc.dimensions, tensor.Shape().Dimensions)
			require.Equal(t, 0, int(tensor.Memory()))
			require.Equal(t, tensor.Shape().String(), tensor.Summary(3))
		})
	}
}

func TestZeroDimFromFlat(t *testing.T) {
	tensor := FromFlatDataAndDimensions([]int32{}, 0, 5)
	ConstFlatData(tensor, func(flat []int32) {
		require.Len(t, flat, 0)
	})
	require.Equal(t, []int32{}, CopyFlatData[int32](tensor))

	clone := tensor.Clone()
	require.True(t, clone.IsAllocated())
	require.True(t, clone.Shape().Equal(tensor.Shape()))

	require.Panics(t, func() { _ = FromFlatDataAndDimensions([]int32{1}, 0, 5) })
}

func TestZeroDimResize(t *testing.T) {
	tensor := FromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 2, 2)
	tensor.Resize(nil, 0, 2)
	require.True(t, tensor.IsAllocated())
	tensor.Allocate(nil)
	ConstFlatData(tensor, func(flat []float32) {
		require.Nil(t, flat)
	})

	tensor.Resize(nil, 3)
	require.False(t, tensor.IsAllocated())
	tensor.Allocate(nil)
	require.Equal(t, []float32{0, 0, 0}, CopyFlatData[float32](tensor))
}
