// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package listops implements the interpreter kernels that create and consume tensor lists:
// Reserve, Stack, SetItem, GetItem and Length.
//
// Importing the package registers the kernels with the interpreter:
//
//	import _ "github.com/gomlx/varlist/pkg/kernels/listops"
//
// Lists travel through the graph inside variant tensors (see interpreter.Builder.AddVariantTensor). Shapes are
// given as int32 or int64 tensors using the shape-vector convention: one entry per axis, -1 for an unknown
// dimension, and a scalar (or empty vector) for an unranked shape.
package listops

import (
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensorlist"
	"github.com/gomlx/varlist/pkg/interpreter"
)

func init() {
	interpreter.Register(interpreter.OpTypeListReserve, interpreter.Registration{
		Name: "ListReserve", MinInputs: 2, MaxInputs: 2, NumOutputs: 1, New: newReserveKernel,
	})
	interpreter.Register(interpreter.OpTypeListStack, interpreter.Registration{
		Name: "ListStack", MinInputs: 1, MaxInputs: 2, NumOutputs: 1, New: newStackKernel,
	})
	interpreter.Register(interpreter.OpTypeListSetItem, interpreter.Registration{
		Name: "ListSetItem", MinInputs: 3, MaxInputs: 3, NumOutputs: 1, New: newSetItemKernel,
	})
	interpreter.Register(interpreter.OpTypeListGetItem, interpreter.Registration{
		Name: "ListGetItem", MinInputs: 2, MaxInputs: 2, NumOutputs: 1, New: newGetItemKernel,
	})
	interpreter.Register(interpreter.OpTypeListLength, interpreter.Registration{
		Name: "ListLength", MinInputs: 1, MaxInputs: 1, NumOutputs: 1, New: newLengthKernel,
	})
}

// checkListInput checks that the i-th input was declared as a variant tensor.
func checkListInput(ctx *interpreter.Context, i int) error {
	if t := ctx.Input(i); !t.IsVariant() {
		return status.Errorf(status.CodeInvalidArgument, "input #%d (%q) must be a tensor list, got %s",
			i, t.Name(), describe(t))
	}
	return nil
}

// listInput returns the list held by the i-th input. The list is owned by the input tensor: it must not be modified.
func listInput(ctx *interpreter.Context, i int) (*tensorlist.List, error) {
	if err := checkListInput(ctx, i); err != nil {
		return nil, err
	}
	return tensorlist.FromVariantTensor(ctx.Input(i))
}
