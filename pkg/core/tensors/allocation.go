// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

// AllocationType describes who owns a tensor's storage and when it is sized.
type AllocationType int

//go:generate go tool enumer -type=AllocationType -trimprefix=Alloc -output=gen_allocationtype_enumer.go allocation.go

const (
	// AllocNone is used for tensors whose storage was not decided yet.
	AllocNone AllocationType = iota

	// AllocStatic tensors have their shape fixed during prepare, and are allocated once by the interpreter
	// before evaluation.
	AllocStatic

	// AllocDynamic tensors are sized and allocated during evaluation, because their shape depends on runtime data.
	// Tensors created directly by the user (e.g. list elements) are also dynamic: they own their heap storage.
	AllocDynamic

	// AllocVariantObject tensors hold a Variant payload (e.g. a tensorlist.List) instead of flat data.
	AllocVariantObject

	// AllocConstant tensors have their values fixed when the graph is built, and are never re-allocated.
	AllocConstant
)
