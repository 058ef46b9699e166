// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package interpreter executes a graph of kernels in two passes: AllocateTensors runs every kernel's Prepare and
// allocates the statically sized tensors, and Invoke runs every kernel's Eval, in node order.
//
// A typical use:
//
//	b := interpreter.NewBuilder("reserve")
//	shapeIdx := interpreter.AddConstant(b, "element_shape", []int32{2, 2}, 2)
//	numIdx := interpreter.AddConstant(b, "num_elements", []int32{3})
//	listIdx := b.AddVariantTensor("list")
//	b.AddNode(interpreter.OpTypeListReserve, listops.ReserveParams{ElementDType: dtypes.Float32},
//		[]int{shapeIdx, numIdx}, []int{listIdx})
//	b.SetOutputs(listIdx)
//	interp, err := b.Build()
//	...
//	err = interp.AllocateTensors()
//	...
//	err = interp.Invoke()
//
// Kernels are registered by OpType (see Register), usually by importing the package implementing them.
//
// An Interpreter is not safe for concurrent use.
package interpreter

import (
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/internal/workerspool"
	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
)

// Interpreter executes a graph built with Builder.
type Interpreter struct {
	name    string
	options Options
	pool    *bufferPool
	workers *workerspool.Pool

	tensors     []*tensors.Tensor
	isConstant  []bool
	isInput     []bool
	producer    []int
	userDynamic []bool

	nodes           []*node
	inputs, outputs []int

	prepared, finalized bool
}

type node struct {
	index           int
	op              OpType
	reg             *Registration
	kernel          Kernel
	inputs, outputs []int
}

// Name of the graph.
func (interp *Interpreter) Name() string { return interp.name }

// Options used by the interpreter.
func (interp *Interpreter) Options() Options { return interp.options }

// NumTensors returns the number of tensors in the graph.
func (interp *Interpreter) NumTensors() int { return len(interp.tensors) }

// NumNodes returns the number of nodes in the graph.
func (interp *Interpreter) NumNodes() int { return len(interp.nodes) }

// Tensor returns the tensor with the given index, or nil if the index is out-of-range.
//
// The tensor is owned by the interpreter: its contents are only valid until the next Invoke, AllocateTensors
// or Finalize.
func (interp *Interpreter) Tensor(tensorIdx int) *tensors.Tensor {
	if tensorIdx < 0 || tensorIdx >= len(interp.tensors) {
		return nil
	}
	return interp.tensors[tensorIdx]
}

// Inputs returns the tensor indices of the graph inputs.
func (interp *Interpreter) Inputs() []int { return interp.inputs }

// Outputs returns the tensor indices of the graph outputs.
func (interp *Interpreter) Outputs() []int { return interp.outputs }

// InputTensor returns the i-th graph input, or nil if i is out-of-range.
// Users write the input values through it (see tensors.MutableFlatData) after AllocateTensors.
func (interp *Interpreter) InputTensor(i int) *tensors.Tensor {
	if i < 0 || i >= len(interp.inputs) {
		return nil
	}
	return interp.tensors[interp.inputs[i]]
}

// OutputTensor returns the i-th graph output, or nil if i is out-of-range.
func (interp *Interpreter) OutputTensor(i int) *tensors.Tensor {
	if i < 0 || i >= len(interp.outputs) {
		return nil
	}
	return interp.tensors[interp.outputs[i]]
}

func (interp *Interpreter) checkValid() error {
	if interp == nil {
		return status.Errorf(status.CodeFailedPrecondition, "interpreter is nil")
	}
	if interp.finalized {
		return status.Errorf(status.CodeFailedPrecondition, "interpreter %q was finalized", interp.name)
	}
	return nil
}

// ResizeInput changes the dimensions of the i-th (dense) graph input.
// AllocateTensors must be called again before Invoke.
func (interp *Interpreter) ResizeInput(i int, dimensions ...int) error {
	if err := interp.checkValid(); err != nil {
		return err
	}
	t := interp.InputTensor(i)
	if t == nil {
		return status.Errorf(status.CodeInvalidArgument, "interpreter %q: input #%d out of range, there are %d inputs",
			interp.name, i, len(interp.inputs))
	}
	if t.IsVariant() {
		return status.Errorf(status.CodeInvalidArgument, "interpreter %q: input #%d (%q) is a variant tensor, it can't be resized",
			interp.name, i, t.Name())
	}
	if _, err := (shapes.Shape{DType: t.DType(), Dimensions: dimensions}).CheckSize(); err != nil {
		return errors.WithMessagef(err, "interpreter %q: invalid dimensions %v for input #%d (%q)",
			interp.name, dimensions, i, t.Name())
	}
	if slices.Equal(t.Shape().Dimensions, dimensions) {
		return nil
	}
	t.Resize(interp.pool, dimensions...)
	interp.prepared = false
	return nil
}

// SetAllocationType requests how a dense tensor produced by a node is allocated: AllocDynamic forces it to be
// sized and allocated during Invoke, and AllocStatic (the default) lets its kernel size it during prepare when
// it can.
//
// AllocateTensors must be called (again) afterward.
func (interp *Interpreter) SetAllocationType(tensorIdx int, allocation tensors.AllocationType) error {
	if err := interp.checkValid(); err != nil {
		return err
	}
	t := interp.Tensor(tensorIdx)
	if t == nil {
		return status.Errorf(status.CodeInvalidArgument, "interpreter %q: tensor #%d out of range", interp.name, tensorIdx)
	}
	if t.IsVariant() || interp.producer[tensorIdx] == -1 {
		return status.Errorf(status.CodeInvalidArgument,
			"interpreter %q: allocation type can only be set for dense tensors output by a node, tensor #%d (%q) is not",
			interp.name, tensorIdx, t.Name())
	}
	switch allocation {
	case tensors.AllocDynamic:
		interp.userDynamic[tensorIdx] = true
	case tensors.AllocStatic:
		interp.userDynamic[tensorIdx] = false
	default:
		return status.Errorf(status.CodeInvalidArgument,
			"interpreter %q: allocation type %s can't be requested for tensor #%d (%q)",
			interp.name, allocation, tensorIdx, t.Name())
	}
	interp.prepared = false
	return nil
}

// AllocateTensors runs the Prepare of every kernel, in node order, and then allocates the static tensors.
// It must be called before the first Invoke and after any ResizeInput or SetAllocationType.
//
// If a kernel fails, the error (with its status code) is returned annotated with the node.
func (interp *Interpreter) AllocateTensors() error {
	if err := interp.checkValid(); err != nil {
		return err
	}
	interp.prepared = false
	interp.resetAllocations()
	for _, n := range interp.nodes {
		ctx := &Context{interp: interp, node: n, preparing: true}
		if err := interp.runKernel(n, "prepare", n.kernel.Prepare, ctx); err != nil {
			return err
		}
	}
	if err := catchPanic(interp.allocateStatic); err != nil {
		return status.Wrapf(status.CodeInternal, err, "interpreter %q: allocating tensors", interp.name)
	}
	interp.prepared = true
	return nil
}

// resetAllocations sets the default allocation type of the tensors output by nodes, before the kernels
// prepare them.
func (interp *Interpreter) resetAllocations() {
	for idx, t := range interp.tensors {
		switch {
		case interp.isConstant[idx]:
			continue
		case t.IsVariant():
			if interp.producer[idx] != -1 {
				t.SetVariantSpec(nil)
			}
		case interp.producer[idx] != -1 && (interp.userDynamic[idx] || interp.options.ForceDynamic):
			t.SetAllocationType(tensors.AllocDynamic)
		default:
			t.SetAllocationType(tensors.AllocStatic)
		}
	}
}

func (interp *Interpreter) allocateStatic() {
	var staticMemory uintptr
	var numStatic, numDynamic int
	for _, t := range interp.tensors {
		switch t.AllocationType() {
		case tensors.AllocStatic:
			t.Allocate(interp.pool)
			staticMemory += t.Memory()
			numStatic++
		case tensors.AllocDynamic:
			numDynamic++
		}
	}
	if klog.V(1).Enabled() {
		klog.Infof("interpreter %q: %d static tensors using %s, %d dynamic tensors",
			interp.name, numStatic, humanize.Bytes(uint64(staticMemory)), numDynamic)
	}
}

// Invoke runs the Eval of every kernel, in node order. AllocateTensors must have been called before, and the
// dense graph inputs must have their values set.
//
// If a kernel fails, the evaluation stops and the error (with its status code) is returned annotated with the node.
func (interp *Interpreter) Invoke() error {
	if err := interp.checkValid(); err != nil {
		return err
	}
	if !interp.prepared {
		return status.Errorf(status.CodeFailedPrecondition,
			"interpreter %q: AllocateTensors() must be called before Invoke()", interp.name)
	}
	for ii, idx := range interp.inputs {
		t := interp.tensors[idx]
		if !t.IsVariant() && !t.IsAllocated() {
			return status.Errorf(status.CodeFailedPrecondition, "interpreter %q: input #%d (%q) is not allocated",
				interp.name, ii, t.Name())
		}
	}
	for _, n := range interp.nodes {
		ctx := &Context{interp: interp, node: n}
		if err := interp.runKernel(n, "eval", n.kernel.Eval, ctx); err != nil {
			return err
		}
	}
	return nil
}

// catchPanic runs fn and returns any panic as an error. Panics with values that are not errors (e.g. the strings
// used by the runtime for some failures) are converted as well.
func catchPanic(fn func()) error {
	exception := exceptions.Try(fn)
	if exception == nil {
		return nil
	}
	if err, ok := exception.(error); ok {
		return err
	}
	return errors.Errorf("%v", exception)
}

// runKernel calls fn, converting panics to errors with status.CodeInternal, and annotates errors with the node.
func (interp *Interpreter) runKernel(n *node, phase string, fn func(*Context) error, ctx *Context) error {
	var err error
	if panicErr := catchPanic(func() { err = fn(ctx) }); panicErr != nil {
		err = status.Wrapf(status.CodeInternal, panicErr, "panic")
	}
	if err != nil {
		if klog.V(1).Enabled() {
			klog.Infof("interpreter %q: %s of node #%d (%s) failed: %v", interp.name, phase, n.index, n.reg.Name, err)
		}
		return errors.WithMessagef(err, "interpreter %q: %s of node #%d (%s)", interp.name, phase, n.index, n.reg.Name)
	}
	return nil
}

// Finalize releases all tensors, including the payload of variant tensors. The interpreter can't be used
// afterward. It is a no-op if called more than once.
func (interp *Interpreter) Finalize() error {
	if interp == nil || interp.finalized {
		return nil
	}
	var err error
	for idx, t := range interp.tensors {
		releaseErr := catchPanic(func() {
			if !t.IsVariant() {
				t.Release(interp.pool)
			}
			t.Finalize()
		})
		if releaseErr != nil {
			klog.Warningf("interpreter %q: failed to release tensor #%d (%q): %v", interp.name, idx, t.Name(), releaseErr)
			err = multierr.Append(err, errors.WithMessagef(releaseErr, "releasing tensor #%d (%q)", idx, t.Name()))
		}
	}
	interp.tensors = nil
	interp.nodes = nil
	interp.finalized = true
	return err
}
