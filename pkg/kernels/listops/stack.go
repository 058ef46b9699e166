// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops

import (
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensorlist"
	"github.com/gomlx/varlist/pkg/interpreter"
)

// minBytesPerTask is the least amount of output each goroutine writes when stacking in parallel.
const minBytesPerTask = 256 * 1024

// stackKernel implements OpTypeListStack.
//
// Inputs: the list and, optionally, a target element shape (int32/int64; a scalar means no target).
// Output: a dense tensor of the output's declared dtype with shape [N] + element shape, where absent elements
// are zero-filled. The element shape is resolved by merging the list's descriptor, the target and the shapes of
// the present elements.
type stackKernel struct{}

func newStackKernel(any) (interpreter.Kernel, error) { return stackKernel{}, nil }

// targetShape returns the target element shape, or an unranked shape if there is none.
func targetShape(ctx *interpreter.Context) (shapes.ElementShape, error) {
	if ctx.NumInputs() < 2 {
		return shapes.UnrankedElementShape(), nil
	}
	return decodeElementShape("target element shape", ctx.Input(1))
}

// stackDimensions returns [numElements] + es, where for an empty list the unknown parts of es don't matter.
// It fails with status.CodeInvalidArgument if the stacked tensor of the given dtype would be too large to address.
func stackDimensions(es shapes.ElementShape, numElements int, dtype dtypes.DType) ([]int, error) {
	if numElements == 0 {
		es = es.ResolveUnknownAsZero()
	}
	elementShape, err := es.ToShape(dtype)
	if err != nil {
		return nil, status.Wrapf(status.CodeUnresolvedShape, err,
			"element shape of a list with %d elements could not be resolved from the list, the target shape or its elements",
			numElements)
	}
	stacked := shapes.ConcatenateDimensions(shapes.Make(dtype, numElements), elementShape)
	if _, err := stacked.CheckSize(); err != nil {
		return nil, errors.WithMessagef(err, "ListStack: stacking %d elements of shape %s", numElements, elementShape)
	}
	return stacked.Dimensions, nil
}

// Prepare implements interpreter.Kernel. If the number of elements and the element shape are known without
// looking at the elements, the output is sized statically, otherwise it is marked as dynamic.
func (stackKernel) Prepare(ctx *interpreter.Context) error {
	if err := checkListInput(ctx, 0); err != nil {
		return err
	}
	output := ctx.Output(0)
	if output.IsVariant() {
		return status.Errorf(status.CodeTypeMismatch, "ListStack output %q must be a dense tensor", output.Name())
	}
	if ctx.NumInputs() > 1 && !isIndexDType(ctx.Input(1).DType()) {
		return status.Errorf(status.CodeInvalidArgument, "target element shape must be an int32 or int64 tensor, got %s",
			describe(ctx.Input(1)))
	}
	if ctx.IsDynamicOutput(0) {
		return nil
	}
	if dims, ok, err := staticStackDimensions(ctx); err != nil {
		return err
	} else if ok {
		if _, err := ctx.ResizeOutput(0, dims...); err != nil {
			return err
		}
		if klog.V(1).Enabled() {
			klog.Infof("ListStack node #%d: static output %s (%s)", ctx.NodeIndex(), output.Shape(),
				humanize.Bytes(uint64(output.Memory())))
		}
		return nil
	}
	ctx.SetOutputDynamic(0)
	if klog.V(1).Enabled() {
		klog.Infof("ListStack node #%d: output shape depends on the list contents, allocated dynamically",
			ctx.NodeIndex())
	}
	return nil
}

// staticStackDimensions returns the output dimensions if they can be fully determined during prepare.
// It only returns an error for contradictions that would also fail during evaluation.
func staticStackDimensions(ctx *interpreter.Context) (dims []int, ok bool, err error) {
	spec, found := tensorlist.SpecOf(ctx.Input(0))
	if !found || !spec.IsNumElementsKnown() {
		return nil, false, nil
	}
	output := ctx.Output(0)
	if spec.DType != output.DType() {
		return nil, false, status.Errorf(status.CodeTypeMismatch,
			"ListStack: list of %s can't be stacked into output %q of dtype %s", spec.DType, output.Name(), output.DType())
	}
	es := spec.ElementShape
	if ctx.NumInputs() > 1 {
		if !ctx.IsConstantInput(1) {
			return nil, false, nil
		}
		target, err := targetShape(ctx)
		if err != nil {
			return nil, false, err
		}
		es, err = shapes.Merge(es, target)
		if err != nil {
			return nil, false, status.Wrapf(status.CodeShapeMismatch, err, "ListStack: target shape %s", target)
		}
	}
	dims, err = stackDimensions(es, spec.NumElements, output.DType())
	if status.Is(err, status.CodeUnresolvedShape) {
		// Elements may still resolve it.
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return dims, true, nil
}

// Eval implements interpreter.Kernel.
func (stackKernel) Eval(ctx *interpreter.Context) error {
	list, err := listInput(ctx, 0)
	if err != nil {
		return err
	}
	if output := ctx.Output(0); list.ElementType() != output.DType() {
		return status.Errorf(status.CodeTypeMismatch,
			"ListStack: list of %s can't be stacked into output %q of dtype %s",
			list.ElementType(), output.Name(), output.DType())
	}

	// Resolve the element shape: list descriptor, then target, then present elements.
	es := list.ElementShape()
	target, err := targetShape(ctx)
	if err != nil {
		return err
	}
	if es, err = shapes.Merge(es, target); err != nil {
		return status.Wrapf(status.CodeShapeMismatch, err, "ListStack: target shape %s incompatible with list %s",
			target, list)
	}
	numElements := list.NumElements()
	for ii := range numElements {
		element := list.At(ii)
		if element == nil {
			continue
		}
		if es, err = shapes.Merge(es, shapes.ElementShapeFromShape(element.Shape())); err != nil {
			return status.Wrapf(status.CodeShapeMismatch, err, "ListStack: element #%d with shape %s", ii, element.Shape())
		}
	}
	dims, err := stackDimensions(es, numElements, list.ElementType())
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
	elementSize := output.Size() / numElements
	elementBytes := int(output.Memory()) / numElements
	ctx.Workers().ParallelFor(numElements, minBytesPerTask/max(elementBytes, 1), func(from, to int) {
		for ii := from; ii < to; ii++ {
			start := ii * elementSize
			if element := list.At(ii); element != nil {
				output.CopyFlatFrom(start, element)
			} else {
				output.ZeroFlatRange(start, start+elementSize)
			}
		}
	})
	return nil
}
