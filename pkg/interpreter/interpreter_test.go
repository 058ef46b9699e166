// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
	"github.com/gomlx/varlist/pkg/kernels/listops/graphs"
)

func init() {
	klog.InitFlags(nil)
}

func TestAddGraph(t *testing.T) {
	interp := must.M1(graphs.BuildAddGraph([]float32{1, 2, 3}, []float32{4, 5, 6}, []int{3}))
	defer func() { require.NoError(t, interp.Finalize()) }()

	require.Equal(t, 1, interp.NumNodes())
	require.Len(t, interp.Outputs(), 1)
	require.Empty(t, interp.Inputs())

	err := interp.Invoke()
	require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(err))

	require.NoError(t, interp.AllocateTensors())
	sum := interp.OutputTensor(0)
	require.Equal(t, tensors.AllocStatic, sum.AllocationType())
	require.True(t, sum.IsAllocated())
	require.NoError(t, interp.Invoke())
	require.Equal(t, []float32{5, 7, 9}, tensors.CopyFlatData[float32](sum))

	// Invoking again gives the same result.
	require.NoError(t, interp.Invoke())
	require.Equal(t, []float32{5, 7, 9}, tensors.CopyFlatData[float32](sum))

	require.Nil(t, interp.OutputTensor(1))
	require.Nil(t, interp.InputTensor(0))
	require.Nil(t, interp.Tensor(-1))
}

func TestAddGraphDynamic(t *testing.T) {
	for _, opts := range [][]interpreter.Option{
		{interpreter.WithForceDynamic(true)},
		{interpreter.WithPoolBuffers(false)},
	} {
		interp := must.M1(graphs.BuildAddGraph([]float32{1, 2}, []float32{10, 20}, []int{2, 1}, opts...))
		require.NoError(t, interp.AllocateTensors())
		require.NoError(t, interp.Invoke())
		sum := interp.OutputTensor(0)
		require.Equal(t, []int{2, 1}, sum.Shape().Dimensions)
		require.Equal(t, []float32{11, 22}, tensors.CopyFlatData[float32](sum))
		require.Equal(t, interp.Options().ForceDynamic, sum.AllocationType() == tensors.AllocDynamic)
		require.NoError(t, interp.Finalize())
	}
}

func TestSetAllocationType(t *testing.T) {
	interp := must.M1(graphs.BuildAddGraph([]float32{1}, []float32{2}, nil))
	defer func() { _ = interp.Finalize() }()
	sumIdx := interp.Outputs()[0]
	require.NoError(t, interp.SetAllocationType(sumIdx, tensors.AllocDynamic))
	require.NoError(t, interp.AllocateTensors())
	require.Equal(t, tensors.AllocDynamic, interp.Tensor(sumIdx).AllocationType())
	require.NoError(t, interp.Invoke())
	require.Equal(t, []float32{3}, tensors.CopyFlatData[float32](interp.Tensor(sumIdx)))

	// Changing the allocation type requires a new AllocateTensors.
	require.NoError(t, interp.SetAllocationType(sumIdx, tensors.AllocStatic))
	require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(interp.Invoke()))
	require.NoError(t, interp.AllocateTensors())
	require.Equal(t, tensors.AllocStatic, interp.Tensor(sumIdx).AllocationType())

	err := interp.SetAllocationType(0, tensors.AllocDynamic) // A constant.
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
	err = interp.SetAllocationType(sumIdx, tensors.AllocVariantObject)
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
	err = interp.SetAllocationType(100, tensors.AllocDynamic)
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
}

func TestBuildErrors(t *testing.T) {
	t.Run("unregistered op", func(t *testing.T) {
		b := interpreter.NewBuilder("test")
		x := interpreter.AddConstant(b, "x", []float32{1})
		y := b.AddTensor("y", dtypes.Float32)
		b.AddNode(interpreter.OpTypeInvalid, nil, []int{x}, []int{y})
		_, err := b.Build()
		require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
	})
	t.Run("wrong number of inputs", func(t *testing.T) {
		b := interpreter.NewBuilder("test")
		x := interpreter.AddConstant(b, "x", []float32{1})
		y := b.AddTensor("y", dtypes.Float32)
		b.AddNode(interpreter.OpTypeAdd, nil, []int{x}, []int{y})
		_, err := b.Build()
		require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
	})
	t.Run("input not computed yet", func(t *testing.T) {
		b := interpreter.NewBuilder("test")
		x := interpreter.AddConstant(b, "x", []float32{1})
		y := b.AddTensor("y", dtypes.Float32)
		z := b.AddTensor("z", dtypes.Float32)
		b.AddNode(interpreter.OpTypeAdd, nil, []int{x, z}, []int{y})
		b.AddNode(interpreter.OpTypeAdd, nil, []int{x, x}, []int{z})
		_, err := b.Build()
		require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
		require.ErrorContains(t, err, "not a graph input")
	})
	t.Run("output to constant", func(t *testing.T) {
		b := interpreter.NewBuilder("test")
		x := interpreter.AddConstant(b, "x", []float32{1})
		b.AddNode(interpreter.OpTypeAdd, nil, []int{x, x}, []int{x})
		_, err := b.Build()
		require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
	})
	t.Run("tensor index out of range", func(t *testing.T) {
		b := interpreter.NewBuilder("test")
		x := interpreter.AddConstant(b, "x", []float32{1})
		b.AddNode(interpreter.OpTypeAdd, nil, []int{x, x}, []int{7})
		_, err := b.Build()
		require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
	})
	t.Run("builder used twice", func(t *testing.T) {
		b := interpreter.NewBuilder("test")
		x := interpreter.AddConstant(b, "x", []float32{1})
		b.SetOutputs(x)
		interp := must.M1(b.Build())
		defer func() { _ = interp.Finalize() }()
		_, err := b.Build()
		require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(err))
		require.Panics(t, func() { b.AddTensor("late", dtypes.Int32) })
	})
}

func TestKernelErrorsKeepTheirCode(t *testing.T) {
	b := interpreter.NewBuilder("mismatch")
	x := interpreter.AddConstant(b, "x", []float32{1, 2})
	y := interpreter.AddConstant(b, "y", []float32{1, 2, 3})
	z := b.AddTensor("z", dtypes.Float32)
	b.AddNode(interpreter.OpTypeAdd, nil, []int{x, y}, []int{z})
	interp := must.M1(b.Build())
	defer func() { _ = interp.Finalize() }()
	err := interp.AllocateTensors()
	require.Equal(t, status.CodeShapeMismatch, status.CodeOf(err))
	require.ErrorContains(t, err, "node #0 (Add)")
}

func TestResizeInputAndFinalize(t *testing.T) {
	b := interpreter.NewBuilder("inputs")
	x := b.AddTensor("x", dtypes.Int32, 2)
	one := interpreter.AddConstant(b, "one", []int32{1})
	y := b.AddTensor("y", dtypes.Int32)
	b.AddNode(interpreter.OpTypeAdd, nil, []int{x, one}, []int{y})
	b.SetInputs(x)
	b.SetOutputs(y)
	interp := must.M1(b.Build())

	require.NoError(t, interp.ResizeInput(0, 3))
	require.NoError(t, interp.AllocateTensors())
	tensors.MutableFlatData(interp.InputTensor(0), func(flat []int32) {
		copy(flat, []int32{10, 20, 30})
	})
	require.NoError(t, interp.Invoke())
	require.Equal(t, []int32{11, 21, 31}, tensors.CopyFlatData[int32](interp.OutputTensor(0)))

	// Resizing requires a new AllocateTensors.
	require.NoError(t, interp.ResizeInput(0, 1))
	require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(interp.Invoke()))
	require.NoError(t, interp.AllocateTensors())
	require.NoError(t, interp.Invoke())
	require.Equal(t, []int{1}, interp.OutputTensor(0).Shape().Dimensions)

	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(interp.ResizeInput(1, 2)))
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(interp.ResizeInput(0, -2)))
	// The size would wrap around to 0.
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(interp.ResizeInput(0, 1<<40, 1<<24)))
	require.Equal(t, []int{1}, interp.InputTensor(0).Shape().Dimensions)

	output := interp.OutputTensor(0)
	require.NoError(t, interp.Finalize())
	require.True(t, output.IsFinalized())
	require.NoError(t, interp.Finalize())
	require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(interp.AllocateTensors()))
	require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(interp.Invoke()))
}
