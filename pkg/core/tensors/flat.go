// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"reflect"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// Allocator provides the flat storage of dense tensors.
//
// Alloc must return a zero-initialized slice of dtype's Go type with exactly length elements.
// Release hands back a slice previously returned by Alloc: the caller must not use it afterward.
type Allocator interface {
	Alloc(dtype dtypes.DType, length int) any
	Release(dtype dtypes.DType, flat any)
}

// HeapAllocator allocates directly from the Go heap, and leaves released storage to the garbage collector.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(dtype dtypes.DType, length int) any {
	return MakeFlat(dtype, length)
}

// Release implements Allocator.
func (HeapAllocator) Release(dtypes.DType, any) {}

// MakeFlat returns a zero-initialized slice of dtype's Go type.
func MakeFlat(dtype dtypes.DType, length int) any {
	goType := dtype.GoType()
	if goType == nil {
		exceptions.Panicf("dtype %s has no Go equivalent, it can't be used for flat storage", dtype)
	}
	return reflect.MakeSlice(reflect.SliceOf(goType), length, length).Interface()
}

// FuncForDispatcher is the type of functions that the DTypeDispatcher can handle.
type FuncForDispatcher func(params ...any) any

// MaxDTypes is one above the largest dtype value that can be registered in a DTypeDispatcher.
const MaxDTypes = 32

// DTypeDispatcher calls the function registered for a dtype, usually a generic function instantiated
// for the dtype's Go type.
type DTypeDispatcher struct {
	Name  string
	fnMap [MaxDTypes]FuncForDispatcher
}

// NewDTypeDispatcher creates a new dispatcher for a class of functions.
func NewDTypeDispatcher(name string) *DTypeDispatcher {
	return &DTypeDispatcher{Name: name}
}

// Dispatch calls the function that matches the dtype.
func (d *DTypeDispatcher) Dispatch(dtype dtypes.DType, params ...any) any {
	if dtype < 0 || int(dtype) >= MaxDTypes || d.fnMap[dtype] == nil {
		exceptions.Panicf("dtype %s not supported by %s", dtype, d.Name)
	}
	return d.fnMap[dtype](params...)
}

// IsSupported returns whether a function was registered for dtype.
func (d *DTypeDispatcher) IsSupported(dtype dtypes.DType) bool {
	return dtype >= 0 && int(dtype) < MaxDTypes && d.fnMap[dtype] != nil
}

// Register a function to handle a specific dtype.
// This overwrites any previous setting for the same dtype.
func (d *DTypeDispatcher) Register(dtype dtypes.DType, fn FuncForDispatcher) {
	if dtype < 0 || int(dtype) >= MaxDTypes {
		exceptions.Panicf("dtype %s not supported by %s", dtype, d.Name)
	}
	d.fnMap[dtype] = fn
}

// SupportedTypes enumerates the Go types that can be stored in dense tensors.
type SupportedTypes interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 |
		float16.Float16 | bfloat16.BFloat16 | float32 | float64
}

// IsSupportedDType returns whether dtype can be stored in a dense tensor.
func IsSupportedDType(dtype dtypes.DType) bool {
	return dispatchZeroRange.IsSupported(dtype)
}

var dispatchZeroRange = NewDTypeDispatcher("ZeroRange")

func init() {
	dispatchZeroRange.Register(dtypes.Bool, zeroRangeGeneric[bool])
	dispatchZeroRange.Register(dtypes.Int8, zeroRangeGeneric[int8])
	dispatchZeroRange.Register(dtypes.Int16, zeroRangeGeneric[int16])
	dispatchZeroRange.Register(dtypes.Int32, zeroRangeGeneric[int32])
	dispatchZeroRange.Register(dtypes.Int64, zeroRangeGeneric[int64])
	dispatchZeroRange.Register(dtypes.Uint8, zeroRangeGeneric[uint8])
	dispatchZeroRange.Register(dtypes.Uint16, zeroRangeGeneric[uint16])
	dispatchZeroRange.Register(dtypes.Uint32, zeroRangeGeneric[uint32])
	dispatchZeroRange.Register(dtypes.Uint64, zeroRangeGeneric[uint64])
	dispatchZeroRange.Register(dtypes.Float16, zeroRangeGeneric[float16.Float16])
	dispatchZeroRange.Register(dtypes.BFloat16, zeroRangeGeneric[bfloat16.BFloat16])
	dispatchZeroRange.Register(dtypes.Float32, zeroRangeGeneric[float32])
	dispatchZeroRange.Register(dtypes.Float64, zeroRangeGeneric[float64])
}

// zeroRangeGeneric: params are flat []T, from, to int.
func zeroRangeGeneric[T SupportedTypes](params ...any) any {
	flat, from, to := params[0].([]T), params[1].(int), params[2].(int)
	clear(flat[from:to])
	return nil
}

// ZeroFlatRange sets the values of the flat positions [from, to) of a dense tensor to zero.
func (t *Tensor) ZeroFlatRange(from, to int) {
	t.assertReadable()
	if from == to {
		return
	}
	if from < 0 || to > t.shape.Size() || from > to {
		exceptions.Panicf("ZeroFlatRange(%d, %d) out of bounds for tensor %q of shape %s", from, to, t.name, t.shape)
	}
	dispatchZeroRange.Dispatch(t.shape.DType, t.flat, from, to)
}

// CopyFlatFrom copies all the values of src (a dense tensor with the same dtype) into t's flat positions starting
// at offset.
func (t *Tensor) CopyFlatFrom(offset int, src *Tensor) {
	t.assertReadable()
	src.assertReadable()
	if src.shape.DType != t.shape.DType {
		exceptions.Panicf("CopyFlatFrom: source dtype %s doesn't match destination dtype %s",
			src.shape.DType, t.shape.DType)
	}
	n := src.shape.Size()
	if n == 0 {
		return
	}
	if offset < 0 || offset+n > t.shape.Size() {
		exceptions.Panicf("CopyFlatFrom(offset=%d, src %s) out of bounds for tensor %q of shape %s",
			offset, src.shape, t.name, t.shape)
	}
	reflect.Copy(reflect.ValueOf(t.flat).Slice(offset, offset+n), reflect.ValueOf(src.flat))
}

// ZeroFlat sets all values of flat, a slice of dtype's Go type, to zero.
func ZeroFlat(dtype dtypes.DType, flat any) {
	dispatchZeroRange.Dispatch(dtype, flat, 0, reflect.ValueOf(flat).Len())
}
