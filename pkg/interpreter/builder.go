// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/gomlx/varlist/internal/workerspool"
	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
)

// Builder defines a graph: tensors, and the nodes that compute them, in execution order.
//
// Tensors are referred to by the index returned when they are added. A node can only read tensors that are
// graph inputs, constants or outputs of nodes added before it.
//
// A Builder is used once: after Build the tensors belong to the Interpreter.
type Builder struct {
	name            string
	tensors         []*tensors.Tensor
	isConstant      []bool
	nodes           []*nodeDef
	inputs, outputs []int
	built           bool
}

type nodeDef struct {
	op              OpType
	params          any
	inputs, outputs []int
}

// NewBuilder returns an empty graph builder. The name is used in error messages and logs.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) assertNotBuilt() {
	if b.built {
		exceptions.Panicf("graph builder %q already built, it can't be modified", b.name)
	}
}

func (b *Builder) addTensor(t *tensors.Tensor, isConstant bool) int {
	b.assertNotBuilt()
	b.tensors = append(b.tensors, t)
	b.isConstant = append(b.isConstant, isConstant)
	return len(b.tensors) - 1
}

// AddTensor adds a dense tensor with the given dtype and initial dimensions, and returns its index.
// The dimensions of graph inputs can later be changed with Interpreter.ResizeInput, and the dimensions of
// node outputs are set by their kernels.
//
// It panics for negative dimensions.
func (b *Builder) AddTensor(name string, dtype dtypes.DType, dimensions ...int) int {
	t := tensors.NewUnallocated(shapes.Make(dtype, dimensions...))
	t.SetName(name)
	return b.addTensor(t, false)
}

// AddVariantTensor adds a variant tensor, which can hold a tensorlist.List, and returns its index.
func (b *Builder) AddVariantTensor(name string) int {
	t := tensors.NewVariant()
	t.SetName(name)
	return b.addTensor(t, false)
}

// AddConstant adds a dense tensor whose values are fixed at build time, and returns its index.
// The values are copied.
func AddConstant[T dtypes.Supported](b *Builder, name string, flat []T, dimensions ...int) int {
	return b.AddConstantTensor(name, tensors.FromFlatDataAndDimensions(flat, dimensions...))
}

// AddConstantTensor adds the dense tensor t as a constant, taking ownership of it, and returns its index.
func (b *Builder) AddConstantTensor(name string, t *tensors.Tensor) int {
	t.AssertValid()
	if t.IsVariant() || !t.IsAllocated() {
		exceptions.Panicf("AddConstantTensor(%q): constants must be allocated dense tensors", name)
	}
	t.SetName(name)
	t.SetAllocationType(tensors.AllocConstant)
	return b.addTensor(t, true)
}

// AddNode appends a node executing op, and returns its index.
// The params are passed to the kernel constructor (see Registration), and may be nil.
// Validation happens at Build.
func (b *Builder) AddNode(op OpType, params any, inputs []int, outputs []int) int {
	b.assertNotBuilt()
	b.nodes = append(b.nodes, &nodeDef{
		op:      op,
		params:  params,
		inputs:  slices.Clone(inputs),
		outputs: slices.Clone(outputs),
	})
	return len(b.nodes) - 1
}

// SetInputs defines which tensors are fed by the user.
func (b *Builder) SetInputs(indices ...int) {
	b.assertNotBuilt()
	b.inputs = slices.Clone(indices)
}

// SetOutputs defines which tensors are the results of the graph.
func (b *Builder) SetOutputs(indices ...int) {
	b.assertNotBuilt()
	b.outputs = slices.Clone(indices)
}

// Build validates the graph, instantiates the kernels and returns an Interpreter.
//
// The options start from DefaultOptions (environment variable VARLIST_INTERPRETER or DefaultConfig) and
// are then modified by opts.
func (b *Builder) Build(opts ...Option) (*Interpreter, error) {
	if b.built {
		return nil, status.Errorf(status.CodeFailedPrecondition, "graph builder %q already built", b.name)
	}
	options, err := DefaultOptions()
	if err != nil {
		return nil, status.Wrapf(status.CodeInvalidArgument, err, "building graph %q", b.name)
	}
	for _, opt := range opts {
		opt(&options)
	}
	var interp *Interpreter
	err = catchPanic(func() { interp = b.build(options) })
	if err != nil {
		if status.CodeOf(err) == status.CodeUnknown {
			err = status.Wrapf(status.CodeInvalidArgument, err, "invalid graph")
		}
		return nil, errors.WithMessagef(err, "building graph %q", b.name)
	}
	b.built = true
	return interp, nil
}

// build panics with an error if the graph is invalid.
func (b *Builder) build(options Options) *Interpreter {
	numTensors := len(b.tensors)
	checkIndex := func(what string, idx int) {
		if idx < 0 || idx >= numTensors {
			panic(status.Errorf(status.CodeInvalidArgument, "%s refers to tensor #%d, but there are only %d tensors",
				what, idx, numTensors))
		}
	}

	// producer[idx] is the node that outputs the tensor, -1 if none.
	producer := make([]int, numTensors)
	for ii := range producer {
		producer[ii] = -1
	}
	isInput := make([]bool, numTensors)
	for _, idx := range b.inputs {
		checkIndex("graph input", idx)
		if b.isConstant[idx] {
			panic(status.Errorf(status.CodeInvalidArgument, "constant tensor #%d can't be a graph input", idx))
		}
		if isInput[idx] {
			panic(status.Errorf(status.CodeInvalidArgument, "tensor #%d listed twice as a graph input", idx))
		}
		isInput[idx] = true
	}

	interp := &Interpreter{
		name:        b.name,
		options:     options,
		pool:        newBufferPool(options.PoolBuffers),
		workers:     workerspool.New(options.Parallelism),
		tensors:     b.tensors,
		isConstant:  b.isConstant,
		isInput:     isInput,
		producer:    producer,
		userDynamic: make([]bool, numTensors),
		inputs:      b.inputs,
		outputs:     b.outputs,
	}
	for nodeIdx, def := range b.nodes {
		reg, found := Lookup(def.op)
		if !found {
			panic(status.Errorf(status.CodeInvalidArgument, "node #%d: no kernel registered for op %s", nodeIdx, def.op))
		}
		if len(def.inputs) < reg.MinInputs || len(def.inputs) > reg.MaxInputs {
			panic(status.Errorf(status.CodeInvalidArgument, "node #%d (%s): takes %d to %d inputs, %d given",
				nodeIdx, reg.Name, reg.MinInputs, reg.MaxInputs, len(def.inputs)))
		}
		if len(def.outputs) != reg.NumOutputs {
			panic(status.Errorf(status.CodeInvalidArgument, "node #%d (%s): has %d outputs, %d given",
				nodeIdx, reg.Name, reg.NumOutputs, len(def.outputs)))
		}
		for _, idx := range def.inputs {
			checkIndex("node input", idx)
			if !b.isConstant[idx] && !isInput[idx] && producer[idx] == -1 {
				panic(status.Errorf(status.CodeInvalidArgument,
					"node #%d (%s): input tensor #%d (%q) is not a graph input, a constant or the output of a previous node",
					nodeIdx, reg.Name, idx, b.tensors[idx].Name()))
			}
		}
		for _, idx := range def.outputs {
			checkIndex("node output", idx)
			switch {
			case b.isConstant[idx]:
				panic(status.Errorf(status.CodeInvalidArgument, "node #%d (%s): can't output to constant tensor #%d",
					nodeIdx, reg.Name, idx))
			case isInput[idx]:
				panic(status.Errorf(status.CodeInvalidArgument, "node #%d (%s): can't output to graph input tensor #%d",
					nodeIdx, reg.Name, idx))
			case producer[idx] != -1:
				panic(status.Errorf(status.CodeInvalidArgument, "node #%d (%s): tensor #%d is already the output of node #%d",
					nodeIdx, reg.Name, idx, producer[idx]))
			}
			producer[idx] = nodeIdx
		}
		kernel, err := reg.New(def.params)
		if err != nil {
			if status.CodeOf(err) == status.CodeUnknown {
				err = status.Wrapf(status.CodeInvalidArgument, err, "invalid parameters")
			}
			panic(errors.WithMessagef(err, "node #%d (%s)", nodeIdx, reg.Name))
		}
		interp.nodes = append(interp.nodes, &node{
			index:   nodeIdx,
			op:      def.op,
			reg:     reg,
			kernel:  kernel,
			inputs:  def.inputs,
			outputs: def.outputs,
		})
	}
	for _, idx := range b.outputs {
		checkIndex("graph output", idx)
	}
	return interp
}
