// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
	"github.com/gomlx/varlist/pkg/kernels/listops"
	"github.com/gomlx/varlist/pkg/kernels/listops/graphs"
)

// runGetItem builds Reserve -> SetItem(setIndex, value) -> GetItem(getIndex) and returns the item read.
func runGetItem(t *testing.T, elementShape []int, numElements, setIndex int, value *tensors.Tensor, getIndex int,
	outputDType dtypes.DType) (*tensors.Tensor, error) {
	b := interpreter.NewBuilder("get_item")
	shapeIdx := graphs.AddShapeTensor(b, "element_shape", elementShape)
	numIdx := interpreter.AddConstant(b, "num_elements", []int32{int32(numElements)})
	listIdx := b.AddVariantTensor("list")
	b.AddNode(interpreter.OpTypeListReserve, listops.ReserveParams{ElementDType: dtypes.Float32},
		[]int{shapeIdx, numIdx}, []int{listIdx})
	if value != nil {
		setIdx := interpreter.AddConstant(b, "set_index", []int64{int64(setIndex)})
		valueIdx := b.AddConstantTensor("value", value)
		updatedIdx := b.AddVariantTensor("updated")
		b.AddNode(interpreter.OpTypeListSetItem, nil, []int{listIdx, setIdx, valueIdx}, []int{updatedIdx})
		listIdx = updatedIdx
	}
	getIdx := interpreter.AddConstant(b, "get_index", []int32{int32(getIndex)})
	itemIdx := b.AddTensor("item", outputDType)
	b.AddNode(interpreter.OpTypeListGetItem, nil, []int{listIdx, getIdx}, []int{itemIdx})
	b.SetOutputs(itemIdx)
	interp, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, interp.Finalize()) })
	if err = interp.AllocateTensors(); err != nil {
		return nil, err
	}
	if err = interp.Invoke(); err != nil {
		return nil, err
	}
	item := interp.OutputTensor(0)
	require.Equal(t, tensors.AllocDynamic, item.AllocationType())
	return item, nil
}

func TestGetItem(t *testing.T) {
	value := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 2, 2)
	item, err := runGetItem(t, []int{-1, 2}, 3, 2, value, 2, dtypes.Float32)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, item.Shape().Dimensions)
	require.Equal(t, []float32{1, 2, 3, 4}, tensors.CopyFlatData[float32](item))

	// Absent element with a fully known shape reads as zeros.
	item, err = runGetItem(t, []int{3}, 2, 0, nil, 1, dtypes.Float32)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 0}, tensors.CopyFlatData[float32](item))
}

func TestGetItemErrors(t *testing.T) {
	// Absent element, shape not fully known.
	_, err := runGetItem(t, []int{-1}, 2, 0, nil, 0, dtypes.Float32)
	require.Equal(t, status.CodeUnresolvedShape, status.CodeOf(err))

	// Out-of-range index.
	_, err = runGetItem(t, []int{3}, 2, 0, nil, 2, dtypes.Float32)
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))

	// Output of the wrong dtype.
	_, err = runGetItem(t, []int{3}, 2, 0, nil, 0, dtypes.Int32)
	require.Equal(t, status.CodeTypeMismatch, status.CodeOf(err))
}
