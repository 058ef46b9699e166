// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package builtin implements the non-list kernels of the interpreter: importing it registers them.
package builtin

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"

	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
)

func init() {
	interpreter.Register(interpreter.OpTypeAdd, interpreter.Registration{
		Name:       "Add",
		MinInputs:  2,
		MaxInputs:  2,
		NumOutputs: 1,
		New:        func(any) (interpreter.Kernel, error) { return addKernel{}, nil },
	})
}

// addKernel sums two tensors of the same dtype elementwise. Either operand can be a scalar, in which
// case it is broadcast.
type addKernel struct{}

var dispatchAdd = tensors.NewDTypeDispatcher("Add")

func init() {
	dispatchAdd.Register(dtypes.Int8, execAddGeneric[int8])
	dispatchAdd.Register(dtypes.Int16, execAddGeneric[int16])
	dispatchAdd.Register(dtypes.Int32, execAddGeneric[int32])
	dispatchAdd.Register(dtypes.Int64, execAddGeneric[int64])
	dispatchAdd.Register(dtypes.Uint8, execAddGeneric[uint8])
	dispatchAdd.Register(dtypes.Uint16, execAddGeneric[uint16])
	dispatchAdd.Register(dtypes.Uint32, execAddGeneric[uint32])
	dispatchAdd.Register(dtypes.Uint64, execAddGeneric[uint64])
	dispatchAdd.Register(dtypes.Float32, execAddGeneric[float32])
	dispatchAdd.Register(dtypes.Float64, execAddGeneric[float64])
	dispatchAdd.Register(dtypes.Float16, execAddFloat16)
	dispatchAdd.Register(dtypes.BFloat16, execAddBFloat16)
}

type podNumeric interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// execAddGeneric: params are lhs, rhs, output []T. lhs or rhs may have length 1 (broadcast).
func execAddGeneric[T podNumeric](params ...any) any {
	lhs, rhs, output := params[0].([]T), params[1].([]T), params[2].([]T)
	switch {
	case len(lhs) == len(output) && len(rhs) == len(output):
		for ii := range output {
			output[ii] = lhs[ii] + rhs[ii]
		}
	case len(lhs) == 1:
		for ii := range output {
			output[ii] = lhs[0] + rhs[ii]
		}
	default:
		for ii := range output {
			output[ii] = lhs[ii] + rhs[0]
		}
	}
	return nil
}

func execAddFloat16(params ...any) any {
	lhs, rhs, output := params[0].([]float16.Float16), params[1].([]float16.Float16), params[2].([]float16.Float16)
	at := func(flat []float16.Float16, ii int) float32 {
		if len(flat) == 1 {
			return flat[0].Float32()
		}
		return flat[ii].Float32()
	}
	for ii := range output {
		output[ii] = float16.Fromfloat32(at(lhs, ii) + at(rhs, ii))
	}
	return nil
}

func execAddBFloat16(params ...any) any {
	lhs, rhs, output := params[0].([]bfloat16.BFloat16), params[1].([]bfloat16.BFloat16), params[2].([]bfloat16.BFloat16)
	at := func(flat []bfloat16.BFloat16, ii int) float32 {
		if len(flat) == 1 {
			return flat[0].Float32()
		}
		return flat[ii].Float32()
	}
	for ii := range output {
		output[ii] = bfloat16.FromFloat32(at(lhs, ii) + at(rhs, ii))
	}
	return nil
}

// outputDimensions returns the dimensions of the sum, or an error if the inputs are not compatible.
func outputDimensions(ctx *interpreter.Context) ([]int, error) {
	lhs, rhs, output := ctx.Input(0), ctx.Input(1), ctx.Output(0)
	if lhs.IsVariant() || rhs.IsVariant() || output.IsVariant() {
		return nil, status.Errorf(status.CodeTypeMismatch, "Add only works on dense tensors")
	}
	if lhs.DType() != rhs.DType() || lhs.DType() != output.DType() {
		return nil, status.Errorf(status.CodeTypeMismatch, "Add(%s, %s) -> %s: dtypes must match",
			lhs.DType(), rhs.DType(), output.DType())
	}
	if !dispatchAdd.IsSupported(lhs.DType()) {
		return nil, status.Errorf(status.CodeTypeMismatch, "Add doesn't support dtype %s", lhs.DType())
	}
	switch {
	case lhs.Shape().EqualDimensions(rhs.Shape()):
		return lhs.Shape().Dimensions, nil
	case lhs.IsScalar():
		return rhs.Shape().Dimensions, nil
	case rhs.IsScalar():
		return lhs.Shape().Dimensions, nil
	}
	return nil, status.Errorf(status.CodeShapeMismatch, "Add(%s, %s): incompatible shapes", lhs.Shape(), rhs.Shape())
}

// Prepare implements interpreter.Kernel.
func (addKernel) Prepare(ctx *interpreter.Context) error {
	dims, err := outputDimensions(ctx)
	if err != nil {
		return err
	}
	if ctx.IsDynamicInput(0) || ctx.IsDynamicInput(1) {
		ctx.SetOutputDynamic(0)
		return nil
	}
	_, err = ctx.ResizeOutput(0, dims...)
	return err
}

// Eval implements interpreter.Kernel.
func (addKernel) Eval(ctx *interpreter.Context) error {
	dims, err := outputDimensions(ctx)
	if err != nil {
		return err
	}
	output, err := ctx.ResizeOutput(0, dims...)
	if err != nil {
		return err
	}
	if output.Size() == 0 {
		return nil
	}
	ctx.Input(0).ConstFlatData(func(lhs any) {
		ctx.Input(1).ConstFlatData(func(rhs any) {
			output.MutableFlatData(func(flat any) {
				dispatchAdd.Dispatch(output.DType(), lhs, rhs, flat)
			})
		})
	})
	return nil
}
