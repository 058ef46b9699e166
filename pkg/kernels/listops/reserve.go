// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops

import (
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensorlist"
	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
)

// ReserveParams configures a OpTypeListReserve node.
//
// Inputs: element shape (int32/int64 scalar or vector, see package documentation) and the number of
// elements (int32/int64 scalar >= 0). Output: a variant tensor holding a new list with all elements absent.
type ReserveParams struct {
	// ElementDType is the dtype of the elements of the list.
	ElementDType dtypes.DType
}

type reserveKernel struct {
	dtype dtypes.DType
}

func newReserveKernel(params any) (interpreter.Kernel, error) {
	var p ReserveParams
	switch v := params.(type) {
	case ReserveParams:
		p = v
	case *ReserveParams:
		p = *v
	default:
		return nil, status.Errorf(status.CodeInvalidArgument, "ListReserve requires ReserveParams, got %T", params)
	}
	if !tensors.IsSupportedDType(p.ElementDType) {
		return nil, status.Errorf(status.CodeInvalidArgument, "ListReserve: element dtype %s is not supported",
			p.ElementDType)
	}
	return &reserveKernel{dtype: p.ElementDType}, nil
}

func (k *reserveKernel) decodeInputs(ctx *interpreter.Context) (es shapes.ElementShape, numElements int, err error) {
	es, err = decodeElementShape("element shape", ctx.Input(0))
	if err != nil {
		return
	}
	numElements, err = k.decodeNumElements(ctx)
	return
}

func (k *reserveKernel) decodeNumElements(ctx *interpreter.Context) (int, error) {
	numElements, err := decodeScalarInt("number of elements", ctx.Input(1))
	if err != nil {
		return 0, err
	}
	if numElements < 0 {
		return 0, status.Errorf(status.CodeInvalidArgument, "number of elements must be >= 0, got %d", numElements)
	}
	if maxElements := ctx.Options().MaxListElements; maxElements > 0 && numElements > maxElements {
		return 0, status.Errorf(status.CodeInvalidArgument,
			"number of elements %d above the configured max_list_elements=%d", numElements, maxElements)
	}
	return numElements, nil
}

// Prepare implements interpreter.Kernel. When inputs are constant, it records a tensorlist.Spec on the output
// so consumers can size their outputs ahead of evaluation.
func (k *reserveKernel) Prepare(ctx *interpreter.Context) error {
	if err := ctx.SetOutputVariant(0); err != nil {
		return err
	}
	spec := tensorlist.Spec{
		DType:        k.dtype,
		ElementShape: shapes.UnrankedElementShape(),
		NumElements:  tensorlist.UnknownNumElements,
	}
	if ctx.IsConstantInput(0) {
		es, err := decodeElementShape("element shape", ctx.Input(0))
		if err != nil {
			return err
		}
		spec.ElementShape = es
	}
	if ctx.IsConstantInput(1) {
		numElements, err := k.decodeNumElements(ctx)
		if err != nil {
			return err
		}
		spec.NumElements = numElements
	}
	ctx.Output(0).SetVariantSpec(spec)
	if klog.V(2).Enabled() {
		klog.Infof("ListReserve node #%d: output %s", ctx.NodeIndex(), spec)
	}
	return nil
}

// Eval implements interpreter.Kernel.
func (k *reserveKernel) Eval(ctx *interpreter.Context) error {
	es, numElements, err := k.decodeInputs(ctx)
	if err != nil {
		return err
	}
	list, err := tensorlist.New(k.dtype, es, numElements)
	if err != nil {
		return err
	}
	ctx.Output(0).SetVariant(list)
	return nil
}
