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

func TestLength(t *testing.T) {
	for _, n := range []int{0, 1, 17} {
		g := &graphs.ListGraph{ElementDType: dtypes.Float32, ElementShape: []int{2}, NumElements: n, FedInputs: true}
		interp, idx, err := runListGraph(t, g)
		require.NoError(t, err)
		length := interp.Tensor(idx.Length)
		require.Equal(t, tensors.AllocStatic, length.AllocationType())
		require.True(t, length.IsScalar())
		require.Equal(t, []int32{int32(n)}, tensors.CopyFlatData[int32](length))
	}
}

func TestLengthWrongOutput(t *testing.T) {
	b := interpreter.NewBuilder("length")
	shapeIdx := graphs.AddShapeTensor(b, "element_shape", nil)
	numIdx := interpreter.AddConstant(b, "num_elements", []int32{3})
	listIdx := b.AddVariantTensor("list")
	b.AddNode(interpreter.OpTypeListReserve, listops.ReserveParams{ElementDType: dtypes.Float32},
		[]int{shapeIdx, numIdx}, []int{listIdx})
	lengthIdx := b.AddTensor("length", dtypes.Int64)
	b.AddNode(interpreter.OpTypeListLength, nil, []int{listIdx}, []int{lengthIdx})
	interp, err := b.Build()
	require.NoError(t, err)
	defer func() { require.NoError(t, interp.Finalize()) }()
	err = interp.AllocateTensors()
	require.Equal(t, status.CodeTypeMismatch, status.CodeOf(err))
	require.Contains(t, err.Error(), "prepare of node #1 (ListLength)")
}

func TestListInputMustBeVariant(t *testing.T) {
	b := interpreter.NewBuilder("length")
	denseIdx := interpreter.AddConstant(b, "dense", []float32{1, 2}, 2)
	lengthIdx := b.AddTensor("length", dtypes.Int32)
	b.AddNode(interpreter.OpTypeListLength, nil, []int{denseIdx}, []int{lengthIdx})
	interp, err := b.Build()
	require.NoError(t, err)
	defer func() { require.NoError(t, interp.Finalize()) }()
	err = interp.AllocateTensors()
	require.Error(t, err)
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
}
