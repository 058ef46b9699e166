// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape and ElementShape and associated tools.
//
// Shape is the concrete shape (DType and dimensions) of a dense tensor. All of its dimensions are known,
// and they may be 0 (a zero-size tensor).
//
// ElementShape is a partially known shape: the rank may be unknown (an "unranked" shape), and each
// dimension may be unknown. It describes the shape every element of a tensor list must conform to, and
// it is refined with Merge as more information becomes available.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a tensor.
//   - Axis: the index of a dimension of a multidimensional tensor.
//   - Dimension: the size of a tensor in one of its axes.
//   - DType: the data type of the unit element in a tensor. Enumeration defined in github.com/gomlx/gopjrt/dtypes.
//   - Scalar: a shape with no axes, only a single value of the associated DType.
//   - Unranked: an ElementShape with no known number of dimensions.
package shapes

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/varlist/pkg/core/status"
)

// Shape represents the shape of a dense tensor.
//
// Use Make to create a new shape.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape structure filled with the values given.
//
// It panics if any of the dimensions is negative: a dense shape is always fully known.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{Dimensions: slices.Clone(dimensions), DType: dtype}
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with an axis with dimension < 0", s)
		}
	}
	return s
}

// Invalid returns an invalid shape.
//
// Invalid().Ok() == false.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape. A "zero" shape, that is just instantiating it with Shape{} will be invalid.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape represents a scalar, that is there are no dimensions (rank==0).
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// String implements stringer, pretty-prints the shape.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	parts := make([]string, len(s.Dimensions))
	for ii, dim := range s.Dimensions {
		parts[ii] = fmt.Sprintf("%d", dim)
	}
	return fmt.Sprintf("(%s)[%s]", s.DType, strings.Join(parts, " "))
}

// Size returns the number of elements of DType needed for this shape. It's the product of all dimensions.
func (s Shape) Size() (size int) {
	size = 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return
}

// CheckSize returns the number of elements of the shape, like Size, but it fails with status.CodeInvalidArgument
// if the number of elements or the number of bytes (see Memory) doesn't fit in an int.
//
// Size and Memory silently wrap around for such shapes, so shapes built from untrusted dimensions should be
// checked before being allocated.
func (s Shape) CheckSize() (int, error) {
	if slices.ContainsFunc(s.Dimensions, func(dim int) bool { return dim < 0 }) {
		return 0, status.Errorf(status.CodeInvalidArgument, "shape %s has a negative dimension", s)
	}
	if s.IsZeroSize() {
		return 0, nil
	}
	size := 1
	for _, dim := range s.Dimensions {
		if size > math.MaxInt/dim {
			return 0, status.Errorf(status.CodeInvalidArgument, "shape %s has too many elements", s)
		}
		size *= dim
	}
	if itemSize := s.DType.Size(); itemSize > 1 && size > math.MaxInt/itemSize {
		return 0, status.Errorf(status.CodeInvalidArgument, "shape %s takes more than %d bytes", s, math.MaxInt)
	}
	return size, nil
}

// Memory returns the memory used to store an array of the given shape, the same as the size in bytes.
func (s Shape) Memory() uintptr {
	if !s.Ok() {
		return 0
	}
	return uintptr(s.DType.Size()) * uintptr(s.Size())
}

// Equal compares two shapes for equality: dtype and dimensions are compared.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType {
		return false
	}
	return s.EqualDimensions(s2)
}

// EqualDimensions compares two shapes for equality of dimensions. Dtypes can be different.
func (s Shape) EqualDimensions(s2 Shape) bool {
	if s.Rank() != s2.Rank() {
		return false
	}
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() (s2 Shape) {
	s2.DType = s.DType
	s2.Dimensions = slices.Clone(s.Dimensions)
	return
}

// ConcatenateDimensions of two shapes. The resulting rank is the sum of both ranks. They must
// have the same dtype. If any of them is a scalar, the resulting shape will be a copy of the other.
//
// It returns an invalid shape if the dtypes differ or if any of the shapes is invalid.
func ConcatenateDimensions(s1, s2 Shape) (shape Shape) {
	if !s1.Ok() || !s2.Ok() || s1.DType != s2.DType {
		return
	}
	if s1.IsScalar() {
		return s2.Clone()
	} else if s2.IsScalar() {
		return s1.Clone()
	}
	shape.DType = s1.DType
	shape.Dimensions = make([]int, s1.Rank()+s2.Rank())
	copy(shape.Dimensions, s1.Dimensions)
	copy(shape.Dimensions[s1.Rank():], s2.Dimensions)
	return
}
