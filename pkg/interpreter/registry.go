// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"github.com/gomlx/exceptions"
)

// Kernel implements one node of the graph.
//
// Prepare is called by Interpreter.AllocateTensors, after input shapes are known (but not necessarily their values).
// It validates the node and decides how outputs are allocated: it can size them (ResizeOutput), mark them as
// dynamic (SetOutputDynamic) or declare them as variant (SetOutputVariant).
//
// Eval is called by Interpreter.Invoke and computes the outputs. It may be called many times after one Prepare,
// and must produce the same result for the same inputs.
type Kernel interface {
	Prepare(ctx *Context) error
	Eval(ctx *Context) error
}

// KernelConstructor creates a kernel for a node, given the node's parameters.
// Constructors should validate the parameters and return an error if they are not usable.
type KernelConstructor func(params any) (Kernel, error)

// Registration describes the kernel of an OpType.
type Registration struct {
	// Name used in error messages and logs.
	Name string

	// MinInputs and MaxInputs bound the number of inputs of a node.
	MinInputs, MaxInputs int

	// NumOutputs is the exact number of outputs of a node.
	NumOutputs int

	New KernelConstructor
}

var registry [OpTypeLast]*Registration

// Register the kernel for opType. It overwrites any previous registration.
//
// To be safe, call Register during the initialization of a package.
func Register(opType OpType, reg Registration) {
	if opType <= OpTypeInvalid || opType >= OpTypeLast {
		exceptions.Panicf("interpreter.Register(%s): invalid op type", opType)
	}
	if reg.New == nil {
		exceptions.Panicf("interpreter.Register(%s): missing kernel constructor", opType)
	}
	if reg.Name == "" {
		reg.Name = opType.String()
	}
	registry[opType] = &reg
}

// Lookup returns the registration for opType, if any.
func Lookup(opType OpType) (*Registration, bool) {
	if opType <= OpTypeInvalid || opType >= OpTypeLast {
		return nil, false
	}
	reg := registry[opType]
	return reg, reg != nil
}
