// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/gomlx/varlist/pkg/core/shapes"
)

func TestFromFlatDataAndDimensions(t *testing.T) {
	data := []int32{1, 2, 3, 4, 5, 6}
	tensor := FromFlatDataAndDimensions(data, 2, 3)
	require.Equal(t, dtypes.Int32, tensor.DType())
	require.Equal(t, []int{2, 3}, tensor.Shape().Dimensions)
	require.Equal(t, AllocDynamic, tensor.AllocationType())

	// Data is copied.
	data[0] = 100
	require.Equal(t, []int32{1, 2, 3, 4, 5, 6}, CopyFlatData[int32](tensor))

	require.Panics(t, func() { CopyFlatData[float32](tensor) })
}

func TestFromScalar(t *testing.T) {
	tensor := FromScalar(float64(3.5))
	require.True(t, tensor.IsScalar())
	require.Equal(t, 1, tensor.Size())
	require.Equal(t, []float64{3.5}, CopyFlatData[float64](tensor))
	require.Contains(t, tensor.String(), "3.5")
}

func TestClone(t *testing.T) {
	tensor := FromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 2, 2)
	tensor.SetName("original")
	clone := tensor.Clone()
	require.Equal(t, "original", clone.Name())
	MutableFlatData(clone, func(flat []float32) {
		flat[0] = -1
	})
	require.Equal(t, []float32{1, 2, 3, 4}, CopyFlatData[float32](tensor))
	require.Equal(t, []float32{-1, 2, 3, 4}, CopyFlatData[float32](clone))
}

func TestFinalize(t *testing.T) {
	tensor := FromFlatDataAndDimensions([]float32{1, 2}, 2)
	tensor.Finalize()
	require.True(t, tensor.IsFinalized())
	require.False(t, tensor.IsAllocated())
	require.Panics(t, func() { tensor.ConstFlatData(func(any) {}) })
	require.NotPanics(t, func() { tensor.Finalize() })

	var nilTensor *Tensor
	require.True(t, nilTensor.IsFinalized())
	require.Panics(t, func() { nilTensor.AssertValid() })
}

func TestAllocate(t *testing.T) {
	tensor := NewUnallocated(shapes.Make(dtypes.Float16, 3))
	require.False(t, tensor.IsAllocated())
	require.Panics(t, func() { tensor.ConstFlatData(func(any) {}) })
	tensor.Allocate(HeapAllocator{})
	require.True(t, tensor.IsAllocated())
	MutableFlatData(tensor, func(flat []float16.Float16) {
		require.Len(t, flat, 3)
		flat[1] = float16.Fromfloat32(2)
	})
	require.Contains(t, tensor.Summary(3), "[0 2 0]")

	tensor.Release(HeapAllocator{})
	require.False(t, tensor.IsAllocated())
}

func TestZeroFlatRangeAndCopyFlatFrom(t *testing.T) {
	dst := FromFlatDataAndDimensions([]int64{9, 9, 9, 9, 9, 9}, 3, 2)
	src := FromFlatDataAndDimensions([]int64{1, 2}, 2)
	dst.CopyFlatFrom(2, src)
	require.Equal(t, []int64{9, 9, 1, 2, 9, 9}, CopyFlatData[int64](dst))
	dst.ZeroFlatRange(4, 6)
	require.Equal(t, []int64{9, 9, 1, 2, 0, 0}, CopyFlatData[int64](dst))

	require.Panics(t, func() { dst.CopyFlatFrom(5, src) })
	require.Panics(t, func() { dst.CopyFlatFrom(0, FromScalar(float32(1))) })
	require.Panics(t, func() { dst.ZeroFlatRange(4, 7) })
}

func TestSummary(t *testing.T) {
	tensor := FromFlatDataAndDimensions([]int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 10)
	require.Contains(t, tensor.Summary(3), "[0 1 2 ... 7 8 9]")

	tensor = FromFlatDataAndDimensions([]bool{true, false, false, true}, 2, 2)
	require.Contains(t, tensor.Summary(3), "[[true false] [false true]]")
}
