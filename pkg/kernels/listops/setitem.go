// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops

import (
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensorlist"
	"github.com/gomlx/varlist/pkg/interpreter"
)

// setItemKernel implements OpTypeListSetItem.
//
// Inputs: the list, the index (int32/int64 scalar) and the item (a dense tensor). Output: a new list, copy of the
// input list with the element at index replaced by a copy of the item. The input list is not modified.
type setItemKernel struct{}

func newSetItemKernel(any) (interpreter.Kernel, error) { return setItemKernel{}, nil }

// Prepare implements interpreter.Kernel. The output list has the same static description as the input list.
func (setItemKernel) Prepare(ctx *interpreter.Context) error {
	if err := ctx.SetOutputVariant(0); err != nil {
		return err
	}
	if err := checkListInput(ctx, 0); err != nil {
		return err
	}
	if item := ctx.Input(2); item.IsVariant() {
		return status.Errorf(status.CodeInvalidArgument, "ListSetItem: item %q must be a dense tensor", item.Name())
	}
	if spec, found := tensorlist.SpecOf(ctx.Input(0)); found {
		if item := ctx.Input(2); item.DType() != spec.DType {
			return status.Errorf(status.CodeTypeMismatch, "ListSetItem: item %q of dtype %s can't be stored in a list of %s",
				item.Name(), item.DType(), spec.DType)
		}
		ctx.Output(0).SetVariantSpec(spec)
	}
	return nil
}

// Eval implements interpreter.Kernel.
func (setItemKernel) Eval(ctx *interpreter.Context) error {
	list, err := listInput(ctx, 0)
	if err != nil {
		return err
	}
	index, err := decodeScalarInt("index", ctx.Input(1))
	if err != nil {
		return err
	}
	updated := list.Clone()
	item := ctx.Input(2).Clone()
	if err := updated.Set(index, item); err != nil {
		item.Finalize()
		updated.Finalize()
		return err
	}
	ctx.Output(0).SetVariant(updated)
	return nil
}
