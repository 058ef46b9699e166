// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
)

// lengthKernel implements OpTypeListLength: it outputs the number of elements of a list as an int32 scalar.
type lengthKernel struct{}

func newLengthKernel(any) (interpreter.Kernel, error) { return lengthKernel{}, nil }

// Prepare implements interpreter.Kernel.
func (lengthKernel) Prepare(ctx *interpreter.Context) error {
	if err := checkListInput(ctx, 0); err != nil {
		return err
	}
	if output := ctx.Output(0); output.IsVariant() || output.DType() != dtypes.Int32 {
		return status.Errorf(status.CodeTypeMismatch, "ListLength output %q must be an int32 tensor, got %s",
			output.Name(), describe(output))
	}
	_, err := ctx.ResizeOutput(0)
	return err
}

// Eval implements interpreter.Kernel.
func (lengthKernel) Eval(ctx *interpreter.Context) error {
	list, err := listInput(ctx, 0)
	if err != nil {
		return err
	}
	output, err := ctx.ResizeOutput(0)
	if err != nil {
		return err
	}
	tensors.MutableFlatData(output, func(flat []int32) {
		flat[0] = int32(list.NumElements())
	})
	return nil
}
