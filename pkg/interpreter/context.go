// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/gomlx/varlist/internal/workerspool"
	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
)

// Context is what a kernel sees of the interpreter during Prepare and Eval of one node.
//
// Methods taking an input or output position panic if it is out-of-range: the number of inputs and outputs
// were validated against the kernel's Registration at build time.
type Context struct {
	interp    *Interpreter
	node      *node
	preparing bool
}

// NodeIndex returns the index of the node being executed.
func (ctx *Context) NodeIndex() int { return ctx.node.index }

// Options returns the interpreter options.
func (ctx *Context) Options() Options { return ctx.interp.options }

// Workers returns the pool kernels use to split large computations across goroutines.
func (ctx *Context) Workers() *workerspool.Pool { return ctx.interp.workers }

// NumInputs returns the number of inputs of the node.
func (ctx *Context) NumInputs() int { return len(ctx.node.inputs) }

// NumOutputs returns the number of outputs of the node.
func (ctx *Context) NumOutputs() int { return len(ctx.node.outputs) }

func (ctx *Context) inputIdx(i int) int {
	if i < 0 || i >= len(ctx.node.inputs) {
		exceptions.Panicf("node #%d (%s): input #%d out of range, node has %d inputs",
			ctx.node.index, ctx.node.reg.Name, i, len(ctx.node.inputs))
	}
	return ctx.node.inputs[i]
}

func (ctx *Context) outputIdx(i int) int {
	if i < 0 || i >= len(ctx.node.outputs) {
		exceptions.Panicf("node #%d (%s): output #%d out of range, node has %d outputs",
			ctx.node.index, ctx.node.reg.Name, i, len(ctx.node.outputs))
	}
	return ctx.node.outputs[i]
}

// Input returns the i-th input tensor of the node. Kernels must not modify it.
func (ctx *Context) Input(i int) *tensors.Tensor {
	return ctx.interp.tensors[ctx.inputIdx(i)]
}

// IsConstantInput returns whether the i-th input has its values fixed at build time,
// in which case they can be read during Prepare.
func (ctx *Context) IsConstantInput(i int) bool {
	return ctx.interp.isConstant[ctx.inputIdx(i)]
}

// IsDynamicInput returns whether the shape of the i-th input is only known during Eval.
func (ctx *Context) IsDynamicInput(i int) bool {
	return ctx.Input(i).AllocationType() == tensors.AllocDynamic
}

// Output returns the i-th output tensor of the node.
func (ctx *Context) Output(i int) *tensors.Tensor {
	return ctx.interp.tensors[ctx.outputIdx(i)]
}

// IsDynamicOutput returns whether the i-th output is sized and allocated during Eval.
func (ctx *Context) IsDynamicOutput(i int) bool {
	return ctx.Output(i).AllocationType() == tensors.AllocDynamic
}

// SetOutputDynamic makes the i-th output sized and allocated during Eval (with ResizeOutput).
// It can only be called during Prepare.
func (ctx *Context) SetOutputDynamic(i int) {
	if !ctx.preparing {
		exceptions.Panicf("node #%d (%s): SetOutputDynamic can only be called during prepare",
			ctx.node.index, ctx.node.reg.Name)
	}
	t := ctx.Output(i)
	if t.IsVariant() {
		exceptions.Panicf("node #%d (%s): output #%d is a variant tensor, it can't be made dynamic",
			ctx.node.index, ctx.node.reg.Name, i)
	}
	t.SetAllocationType(tensors.AllocDynamic)
}

// SetOutputVariant checks that the i-th output was declared as a variant tensor (see Builder.AddVariantTensor).
// It returns an error with status.CodeTypeMismatch otherwise.
func (ctx *Context) SetOutputVariant(i int) error {
	t := ctx.Output(i)
	if !t.IsVariant() {
		return status.Errorf(status.CodeTypeMismatch,
			"output #%d (%q) must be a variant tensor, but it was declared as a dense tensor of shape %s",
			i, t.Name(), t.Shape())
	}
	t.SetAllocationType(tensors.AllocVariantObject)
	return nil
}

// ResizeOutput sets the dimensions of the i-th (dense) output and returns it.
//
// During Prepare it fixes the shape of a static output, which is then allocated by AllocateTensors.
// During Eval it sizes and allocates a dynamic output: previous storage is reused if the size didn't change, so
// kernels must write every value. For a static output during Eval, it only checks that the dimensions match
// the ones set during Prepare, and returns an error with status.CodeShapeMismatch otherwise.
func (ctx *Context) ResizeOutput(i int, dimensions ...int) (*tensors.Tensor, error) {
	t := ctx.Output(i)
	if t.IsVariant() {
		return nil, status.Errorf(status.CodeTypeMismatch, "output #%d (%q) is a variant tensor, it can't be resized",
			i, t.Name())
	}
	if _, err := (shapes.Shape{DType: t.DType(), Dimensions: dimensions}).CheckSize(); err != nil {
		return nil, errors.WithMessagef(err, "invalid dimensions %v for output #%d (%q)", dimensions, i, t.Name())
	}
	if ctx.preparing {
		t.Resize(ctx.interp.pool, dimensions...)
		return t, nil
	}
	switch t.AllocationType() {
	case tensors.AllocDynamic:
		t.Resize(ctx.interp.pool, dimensions...)
		t.Allocate(ctx.interp.pool)
	default:
		if !slices.Equal(t.Shape().Dimensions, dimensions) {
			return nil, status.Errorf(status.CodeShapeMismatch,
				"output #%d (%q) was sized to %s during prepare, but evaluation produced dimensions %v",
				i, t.Name(), t.Shape(), dimensions)
		}
	}
	return t, nil
}
