// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

// OpType identifies the operation of a graph node, and selects the kernel registered for it.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota

	// OpTypeAdd is the elementwise sum of two tensors of the same dtype and shape (or a scalar and a tensor).
	OpTypeAdd

	// OpTypeListReserve creates a list with a given number of absent elements.
	OpTypeListReserve

	// OpTypeListStack concatenates the elements of a list into a dense tensor with a new leading axis.
	OpTypeListStack

	// OpTypeListSetItem outputs a copy of a list with one of its elements replaced.
	OpTypeListSetItem

	// OpTypeListGetItem outputs a copy of one of the elements of a list.
	OpTypeListGetItem

	// OpTypeListLength outputs the number of elements of a list.
	OpTypeListLength

	// OpTypeLast should always be kept the last, it is used as a counter/marker for OpType.
	OpTypeLast
)
