// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implement a `Tensor`, the value that flows through the edges of an interpreter graph.
//
// A Tensor is one of two things:
//
//   - A dense multidimensional array, defined by its shape (a data type and its axes' dimensions) and its
//     content, stored as a flat Go slice of the dtype's Go type. Zero-size tensors have no storage at all.
//   - A variant tensor: its declared type is opaque, and its payload is an exclusively owned Variant container
//     (see package tensorlist). Copying a variant tensor (Clone) deep-copies the payload.
//
// There are various ways to construct a dense Tensor:
//
//   - FromShape(shape shapes.Shape): creates a tensor with the given shape, and zero values.
//   - FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int): creates a Tensor with the
//     given dimensions and set the flattened values with the given data. Example:
//
//     t := FromFlatDataAndDimensions([]int8{1, 2, 3, 4}, 2, 2}) // Tensor with [[1,2], [3,4]]
//
//   - FromScalar[T dtypes.Supported](value T): creates a scalar tensor.
//   - NewUnallocated(shape): a tensor with a shape but no storage yet, used by the interpreter.
//
// Tensors are not safe for concurrent use: the interpreter evaluates one node at a time.
package tensors

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/varlist/pkg/core/shapes"
)

// Tensor represents either a dense multidimensional array or a variant payload. See package documentation.
type Tensor struct {
	// name is optional, used for error messages and logging.
	name string

	// shape of a dense tensor. Invalid for variant tensors.
	shape shapes.Shape

	allocation AllocationType

	// flat holds the dense data, a slice of the Go type of shape.DType.
	// It is nil for zero-size tensors and for tensors not allocated yet.
	flat any

	isVariant   bool
	variant     Variant
	variantSpec VariantSpec

	finalized bool
}

var invalidShape = shapes.Invalid()

// FromShape returns a Tensor with the given shape, with the data initialized with zeros.
func FromShape(shape shapes.Shape) (t *Tensor) {
	if !shape.Ok() {
		exceptions.Panicf("tensors.FromShape(%s): invalid shape", shape)
	}
	t = NewUnallocated(shape)
	t.allocation = AllocDynamic
	t.Allocate(HeapAllocator{})
	return
}

// FromFlatDataAndDimensions creates a tensor with the given dimensions, filled with a copy of the flattened values
// given. `T` must be one of the supported types.
func FromFlatDataAndDimensions[T dtypes.Supported](flat []T, dimensions ...int) (t *Tensor) {
	dtype := dtypes.FromGenericsType[T]()
	shape := shapes.Make(dtype, dimensions...)
	if len(flat) != shape.Size() {
		exceptions.Panicf("FromFlatDataAndDimensions(flat.size=%d, dimensions=%v): shape %s requires %d values",
			len(flat), dimensions, shape, shape.Size())
	}
	t = FromShape(shape)
	if shape.Size() > 0 {
		copy(t.flat.([]T), flat)
	}
	return
}

// FromScalar creates a scalar tensor with the given value.
func FromScalar[T dtypes.Supported](value T) *Tensor {
	return FromFlatDataAndDimensions([]T{value})
}

// NewUnallocated returns a dense tensor with the given shape and no storage. See Allocate.
func NewUnallocated(shape shapes.Shape) *Tensor {
	return &Tensor{shape: shape.Clone()}
}

// AssertValid panics if the tensor is nil or was finalized.
func (t *Tensor) AssertValid() {
	if t == nil {
		exceptions.Panicf("tensor is nil")
	}
	if t.finalized {
		exceptions.Panicf("tensor %q has already been finalized", t.name)
	}
}

// Name of the tensor, if one was given.
func (t *Tensor) Name() string { return t.name }

// SetName sets the name used in error messages and logging.
func (t *Tensor) SetName(name string) { t.name = name }

// Shape of a dense tensor. It is invalid for variant tensors.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of a dense tensor. It returns dtypes.InvalidDType for variant tensors.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank of a dense tensor.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Size returns the number of elements of a dense tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// Memory returns the number of bytes used by the dense data.
func (t *Tensor) Memory() uintptr { return t.shape.Memory() }

// IsScalar returns whether the tensor is a dense scalar.
func (t *Tensor) IsScalar() bool { return t.shape.IsScalar() }

// AllocationType returns how the tensor storage is managed.
func (t *Tensor) AllocationType() AllocationType { return t.allocation }

// SetAllocationType changes how the tensor storage is managed. Variant tensors can only be AllocVariantObject.
func (t *Tensor) SetAllocationType(allocation AllocationType) {
	if t.isVariant && allocation != AllocVariantObject {
		exceptions.Panicf("tensor %q is a variant tensor, it cannot be set to allocation %s", t.name, allocation)
	}
	t.allocation = allocation
}

// IsFinalized returns true if the tensor has already been "finalized", and its data freed.
func (t *Tensor) IsFinalized() bool {
	return t == nil || t.finalized
}

// IsAllocated returns whether a dense tensor has storage for its shape. Zero-size tensors are always allocated,
// since they need no storage.
func (t *Tensor) IsAllocated() bool {
	if t.finalized || t.isVariant || !t.shape.Ok() {
		return false
	}
	return t.shape.Size() == 0 || t.flat != nil
}

// Resize changes the dimensions of a dense tensor. If the number of elements changes, the current storage
// is released to the given allocator (which can be nil) and the tensor becomes unallocated.
func (t *Tensor) Resize(allocator Allocator, dimensions ...int) {
	t.AssertValid()
	if t.isVariant {
		exceptions.Panicf("cannot resize variant tensor %q", t.name)
	}
	newShape := shapes.Make(t.shape.DType, dimensions...)
	if newShape.Size() != t.shape.Size() {
		t.Release(allocator)
	}
	t.shape = newShape
}

// Allocate storage for the tensor's current shape, if not yet allocated.
// Zero-size tensors get no storage.
func (t *Tensor) Allocate(allocator Allocator) {
	t.AssertValid()
	if t.isVariant {
		exceptions.Panicf("cannot allocate flat storage for variant tensor %q", t.name)
	}
	size := t.shape.Size()
	if size == 0 {
		t.flat = nil
		return
	}
	if t.flat != nil && reflect.ValueOf(t.flat).Len() == size {
		return
	}
	t.Release(allocator)
	if allocator == nil {
		allocator = HeapAllocator{}
	}
	t.flat = allocator.Alloc(t.shape.DType, size)
}

// Release the dense storage back to the allocator (it can be nil) and leaves the tensor unallocated.
// For variant tensors, it finalizes the payload.
func (t *Tensor) Release(allocator Allocator) {
	if t.isVariant {
		t.SetVariant(nil)
		return
	}
	if t.flat == nil {
		return
	}
	if allocator != nil {
		allocator.Release(t.shape.DType, t.flat)
	}
	t.flat = nil
}

// Finalize releases the memory associated with the tensor (including a variant payload).
// The tensor should not be used afterward. It is a no-op if the tensor was already finalized.
func (t *Tensor) Finalize() {
	if t == nil || t.finalized {
		return
	}
	if t.isVariant && t.variant != nil {
		t.variant.Finalize()
		t.variant = nil
	}
	t.flat = nil
	t.variantSpec = nil
	t.finalized = true
}

// Clone returns a deep copy of the tensor: dense data is copied, and a variant payload is cloned,
// never aliased. The clone is owned by the caller, and its allocation type is AllocDynamic (or
// AllocVariantObject for variants).
func (t *Tensor) Clone() *Tensor {
	t.AssertValid()
	if t.isVariant {
		clone := NewVariant()
		clone.name = t.name
		clone.variantSpec = t.variantSpec
		if t.variant != nil {
			clone.variant = t.variant.CloneVariant()
		}
		return clone
	}
	clone := NewUnallocated(t.shape)
	clone.name = t.name
	clone.allocation = AllocDynamic
	if t.flat != nil {
		flatV := reflect.ValueOf(t.flat)
		size := flatV.Len()
		cloneFlatV := reflect.MakeSlice(flatV.Type(), size, size)
		reflect.Copy(cloneFlatV, flatV)
		clone.flat = cloneFlatV.Interface()
	}
	return clone
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	if t == nil {
		return "<nil tensor>"
	}
	if t.finalized {
		return fmt.Sprintf("Tensor(%q, finalized)", t.name)
	}
	if t.isVariant {
		if t.variant == nil {
			return "Variant(empty)"
		}
		return fmt.Sprintf("Variant(%s)", t.variant)
	}
	return t.Summary(6)
}

// ConstFlatData calls accessFn with the flattened data as a slice of the Go type corresponding to the DType type.
// Even scalar values have a flattened data representation of one element. Zero-size tensors pass a nil value.
//
// The data should not be changed. See MutableFlatData.
func (t *Tensor) ConstFlatData(accessFn func(flat any)) {
	t.assertReadable()
	accessFn(t.flat)
}

// MutableFlatData calls accessFn with the flattened data, which can be modified until accessFn returns.
func (t *Tensor) MutableFlatData(accessFn func(flat any)) {
	t.assertReadable()
	accessFn(t.flat)
}

func (t *Tensor) assertReadable() {
	t.AssertValid()
	if t.isVariant {
		exceptions.Panicf("tensor %q is a variant tensor, it has no flat data", t.name)
	}
	if !t.IsAllocated() {
		exceptions.Panicf("tensor %q with shape %s is not allocated", t.name, t.shape)
	}
}

// ConstFlatData calls accessFn with the flattened data as a slice of T, which must match the tensor's DType.
// Zero-size tensors pass a nil slice.
//
// It is the "generics" version of Tensor.ConstFlatData.
func ConstFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	assertGenericsDType[T](t)
	t.ConstFlatData(func(anyFlat any) {
		if anyFlat == nil {
			accessFn(nil)
			return
		}
		accessFn(anyFlat.([]T))
	})
}

// MutableFlatData calls accessFn with the flattened data as a slice of T, which must match the tensor's DType.
//
// It is the "generics" version of Tensor.MutableFlatData.
func MutableFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	assertGenericsDType[T](t)
	t.MutableFlatData(func(anyFlat any) {
		if anyFlat == nil {
			accessFn(nil)
			return
		}
		accessFn(anyFlat.([]T))
	})
}

// CopyFlatData returns a copy of the flat data of the tensor. T must match the tensor's DType.
func CopyFlatData[T dtypes.Supported](t *Tensor) (flat []T) {
	ConstFlatData(t, func(data []T) {
		flat = slices.Clone(data)
	})
	if flat == nil {
		flat = []T{}
	}
	return
}

func assertGenericsDType[T dtypes.Supported](t *Tensor) {
	if t.DType() != dtypes.FromGenericsType[T]() {
		var v T
		exceptions.Panicf("flat data access with %T is incompatible with tensor's dtype %s -- expected dtype %s",
			v, t.DType(), dtypes.FromGenericsType[T]())
	}
}
