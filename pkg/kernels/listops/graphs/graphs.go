// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package graphs builds small interpreter graphs around the list kernels, used by the varlist command line
// and by tests.
package graphs

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
	"github.com/gomlx/varlist/pkg/kernels/listops"

	// Registers the Add kernel.
	_ "github.com/gomlx/varlist/pkg/kernels/builtin"
)

// AddShapeTensor adds an int32 constant encoding shape with the shape-vector convention.
// A nil shape is encoded as a scalar, meaning unranked.
func AddShapeTensor(b *interpreter.Builder, name string, shape []int) int {
	if shape == nil {
		return interpreter.AddConstant(b, name, []int32{-1})
	}
	flat := make([]int32, len(shape))
	for ii, dim := range shape {
		flat[ii] = int32(dim)
	}
	return interpreter.AddConstant(b, name, flat, len(flat))
}

// BuildAddGraph returns an interpreter computing lhs+rhs from two float32 constants of the given dimensions.
// Its only output is the sum.
func BuildAddGraph(lhs, rhs []float32, dimensions []int, opts ...interpreter.Option) (*interpreter.Interpreter, error) {
	b := interpreter.NewBuilder("add")
	lhsIdx := interpreter.AddConstant(b, "lhs", lhs, dimensions...)
	rhsIdx := interpreter.AddConstant(b, "rhs", rhs, dimensions...)
	sumIdx := b.AddTensor("sum", dtypes.Float32)
	b.AddNode(interpreter.OpTypeAdd, nil, []int{lhsIdx, rhsIdx}, []int{sumIdx})
	b.SetOutputs(sumIdx)
	return b.Build(opts...)
}

// Item is an element set into the list before it is stacked.
type Item struct {
	Index int
	Value *tensors.Tensor
}

// ListGraph describes a graph Reserve -> SetItem* -> Stack, with a Length of the final list.
//
// Outputs, in order: the stacked tensor, the length (int32 scalar) and the final list (variant).
type ListGraph struct {
	ElementDType dtypes.DType

	// ElementShape given to Reserve, with -1 for unknown dimensions. Nil means unranked.
	ElementShape []int

	// NumElements given to Reserve, as an int64 scalar.
	NumElements int

	// FedInputs makes the element shape, the number of elements and the Stack target graph inputs instead of
	// constants, which are fed by Run. This hides their values from the kernels during prepare.
	FedInputs bool

	// Target element shape given to Stack, if HasTarget. Nil means a scalar target, that is, no target.
	HasTarget bool
	Target    []int

	// Items are set in order, each one with a SetItem node.
	Items []Item

	// StackDType is the declared dtype of the stacked output. If invalid, ElementDType is used.
	StackDType dtypes.DType
}

// Indices of the tensors of a built ListGraph. Target is -1 if the Stack has no target input.
type Indices struct {
	ElementShape, NumElements int
	Target                    int
	List, FinalList           int
	Stacked, Length           int
}

// addShapeInput adds an int32 graph input for a shape encoded with the shape-vector convention.
func addShapeInput(b *interpreter.Builder, name string, shape []int) int {
	if shape == nil {
		return b.AddTensor(name, dtypes.Int32)
	}
	return b.AddTensor(name, dtypes.Int32, len(shape))
}

// writeShape is the counterpart of addShapeInput, to feed the input.
func writeShape(t *tensors.Tensor, shape []int) {
	tensors.MutableFlatData(t, func(flat []int32) {
		if shape == nil {
			flat[0] = -1
			return
		}
		for ii, dim := range shape {
			flat[ii] = int32(dim)
		}
	})
}

// Build the graph described by g.
func (g *ListGraph) Build(opts ...interpreter.Option) (*interpreter.Interpreter, Indices, error) {
	idx := Indices{Target: -1}
	b := interpreter.NewBuilder("list_graph")
	if g.FedInputs {
		idx.ElementShape = addShapeInput(b, "element_shape", g.ElementShape)
		idx.NumElements = b.AddTensor("num_elements", dtypes.Int64)
		inputs := []int{idx.ElementShape, idx.NumElements}
		if g.HasTarget {
			idx.Target = addShapeInput(b, "target_shape", g.Target)
			inputs = append(inputs, idx.Target)
		}
		b.SetInputs(inputs...)
	} else {
		idx.ElementShape = AddShapeTensor(b, "element_shape", g.ElementShape)
		idx.NumElements = interpreter.AddConstant(b, "num_elements", []int64{int64(g.NumElements)})
		if g.HasTarget {
			idx.Target = AddShapeTensor(b, "target_shape", g.Target)
		}
	}
	idx.List = b.AddVariantTensor("list")
	b.AddNode(interpreter.OpTypeListReserve, listops.ReserveParams{ElementDType: g.ElementDType},
		[]int{idx.ElementShape, idx.NumElements}, []int{idx.List})

	current := idx.List
	for ii, item := range g.Items {
		if item.Value == nil {
			return nil, idx, errors.Errorf("item #%d has no value", ii)
		}
		indexIdx := interpreter.AddConstant(b, "index", []int32{int32(item.Index)})
		valueIdx := b.AddConstantTensor("item", item.Value.Clone())
		next := b.AddVariantTensor("list")
		b.AddNode(interpreter.OpTypeListSetItem, nil, []int{current, indexIdx, valueIdx}, []int{next})
		current = next
	}
	idx.FinalList = current

	stackInputs := []int{current}
	if g.HasTarget {
		stackInputs = append(stackInputs, idx.Target)
	}
	stackDType := g.StackDType
	if stackDType == dtypes.InvalidDType {
		stackDType = g.ElementDType
	}
	idx.Stacked = b.AddTensor("stacked", stackDType)
	b.AddNode(interpreter.OpTypeListStack, nil, stackInputs, []int{idx.Stacked})
	idx.Length = b.AddTensor("length", dtypes.Int32)
	b.AddNode(interpreter.OpTypeListLength, nil, []int{current}, []int{idx.Length})
	b.SetOutputs(idx.Stacked, idx.Length, idx.FinalList)

	interp, err := b.Build(opts...)
	return interp, idx, err
}

// Feed writes the element shape, the number of elements and the target into the graph inputs, when FedInputs
// is set. It must be called after AllocateTensors.
func (g *ListGraph) Feed(interp *interpreter.Interpreter, idx Indices) {
	if !g.FedInputs {
		return
	}
	writeShape(interp.Tensor(idx.ElementShape), g.ElementShape)
	tensors.MutableFlatData(interp.Tensor(idx.NumElements), func(flat []int64) {
		flat[0] = int64(g.NumElements)
	})
	if idx.Target >= 0 {
		writeShape(interp.Tensor(idx.Target), g.Target)
	}
}

// Run builds, allocates, feeds and invokes the graph. The interpreter is returned even if AllocateTensors or
// Invoke fail, so the caller can inspect it, and must be finalized by the caller.
func (g *ListGraph) Run(opts ...interpreter.Option) (*interpreter.Interpreter, Indices, error) {
	interp, idx, err := g.Build(opts...)
	if err != nil {
		return nil, idx, err
	}
	if err = interp.AllocateTensors(); err != nil {
		return interp, idx, err
	}
	g.Feed(interp, idx)
	return interp, idx, interp.Invoke()
}
