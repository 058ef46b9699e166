// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops

import (
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensorlist"
	"github.com/gomlx/varlist/pkg/interpreter"
)

// getItemKernel implements OpTypeListGetItem.
//
// Inputs: the list and the index (int32/int64 scalar). Output: a copy of the element at index, or zeros if the
// element is absent, in which case the list's element shape must be fully known. The output is always dynamic.
type getItemKernel struct{}

func newGetItemKernel(any) (interpreter.Kernel, error) { return getItemKernel{}, nil }

// Prepare implements interpreter.Kernel.
func (getItemKernel) Prepare(ctx *interpreter.Context) error {
	if err := checkListInput(ctx, 0); err != nil {
		return err
	}
	output := ctx.Output(0)
	if output.IsVariant() {
		return status.Errorf(status.CodeTypeMismatch, "ListGetItem output %q must be a dense tensor", output.Name())
	}
	if spec, found := tensorlist.SpecOf(ctx.Input(0)); found && spec.DType != output.DType() {
		return status.Errorf(status.CodeTypeMismatch, "ListGetItem: list of %s, but output %q has dtype %s",
			spec.DType, output.Name(), output.DType())
	}
	ctx.SetOutputDynamic(0)
	return nil
}

// Eval implements interpreter.Kernel.
func (getItemKernel) Eval(ctx *interpreter.Context) error {
	list, err := listInput(ctx, 0)
	if err != nil {
		return err
	}
	index, err := decodeScalarInt("index", ctx.Input(1))
	if err != nil {
		return err
	}
	if index < 0 || index >= list.NumElements() {
		return status.Errorf(status.CodeInvalidArgument, "ListGetItem: index %d out of range for list with %d elements",
			index, list.NumElements())
	}
	dtype := ctx.Output(0).DType()
	if list.ElementType() != dtype {
		return status.Errorf(status.CodeTypeMismatch, "ListGetItem: list of %s, but output has dtype %s",
			list.ElementType(), dtype)
	}
	if element := list.At(index); element != nil {
		output, err := ctx.ResizeOutput(0, element.Shape().Dimensions...)
		if err != nil {
			return err
		}
		if output.Size() > 0 {
			output.CopyFlatFrom(0, element)
		}
		return nil
	}
	shape, err := list.ElementShape().ToShape(dtype)
	if err != nil {
		return status.Wrapf(status.CodeUnresolvedShape, err, "ListGetItem: element #%d is absent", index)
	}
	output, err := ctx.ResizeOutput(0, shape.Dimensions...)
	if err != nil {
		return err
	}
	output.ZeroFlatRange(0, output.Size())
	return nil
}
