// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/varlist/pkg/core/status"
)

// Dim is one dimension of an ElementShape: either a known non-negative size or UnknownDim.
type Dim int

// UnknownDim marks a dimension whose size is not known yet.
// It is also the value used for an unknown dimension in the shape-vector encoding (see ElementShapeFromVector).
const UnknownDim Dim = -1

// UnknownRank is returned by ElementShape.Rank for unranked shapes.
const UnknownRank = -1

// IsKnown returns whether the dimension has a known size.
func (d Dim) IsKnown() bool { return d >= 0 }

// String prints the size, or "?" for an unknown dimension.
func (d Dim) String() string {
	if !d.IsKnown() {
		return "?"
	}
	return fmt.Sprintf("%d", int(d))
}

// MergeDim returns the more specific of the two dimensions.
//
// An unknown dimension merged with a known size K yields K, K merged with K yields K, and two different known
// sizes fail with status.CodeShapeMismatch.
func MergeDim(a, b Dim) (Dim, error) {
	switch {
	case !a.IsKnown():
		return b, nil
	case !b.IsKnown():
		return a, nil
	case a == b:
		return a, nil
	default:
		return UnknownDim, status.Errorf(status.CodeShapeMismatch, "incompatible dimensions %d and %d", a, b)
	}
}

// ElementShape is a partially known shape: the rank may be unknown ("unranked"), and any of the dimensions may be
// UnknownDim.
//
// The zero value is an unranked shape. Notice an unranked shape is different from a rank-0 (scalar) shape.
//
// ElementShape is immutable: all methods return new values.
type ElementShape struct {
	ranked bool
	dims   []Dim
}

// UnrankedElementShape returns a shape whose rank (and hence dimensions) is unknown.
func UnrankedElementShape() ElementShape {
	return ElementShape{}
}

// MakeElementShape returns a ranked shape with the given dimensions, where -1 (UnknownDim) marks unknown dimensions.
// Use MakeElementShape() (with no arguments) for a known scalar shape.
//
// It panics for dimensions < -1. See ElementShapeFromVector for a version that returns an error.
func MakeElementShape(dims ...int) ElementShape {
	es, err := elementShapeFromDims(dims)
	if err != nil {
		panic(err)
	}
	return es
}

// ElementShapeFromShape returns the fully known ElementShape matching the dense shape's dimensions.
func ElementShapeFromShape(shape Shape) ElementShape {
	es := ElementShape{ranked: true, dims: make([]Dim, shape.Rank())}
	for ii, dim := range shape.Dimensions {
		es.dims[ii] = Dim(dim)
	}
	return es
}

// ElementShapeFromVector decodes the shape-vector convention: each entry is either a non-negative dimension or -1
// for an unknown dimension, and a zero-length vector means unranked.
//
// It returns an error with status.CodeInvalidArgument for entries < -1.
func ElementShapeFromVector(vector []int) (ElementShape, error) {
	if len(vector) == 0 {
		return UnrankedElementShape(), nil
	}
	return elementShapeFromDims(vector)
}

func elementShapeFromDims(dims []int) (ElementShape, error) {
	es := ElementShape{ranked: true, dims: make([]Dim, len(dims))}
	for ii, dim := range dims {
		if dim < int(UnknownDim) {
			return ElementShape{}, status.Errorf(status.CodeInvalidArgument,
				"invalid dimension %d at axis %d of element shape %v: must be >= 0 or -1 for unknown", dim, ii, dims)
		}
		es.dims[ii] = Dim(dim)
	}
	return es, nil
}

// Vector encodes the shape using the shape-vector convention (see ElementShapeFromVector).
//
// A ranked scalar (rank 0) also encodes to an empty vector, and hence decodes back as unranked.
func (es ElementShape) Vector() []int {
	vector := make([]int, len(es.dims))
	for ii, dim := range es.dims {
		vector[ii] = int(dim)
	}
	return vector
}

// IsRanked returns whether the rank of the shape is known.
func (es ElementShape) IsRanked() bool { return es.ranked }

// Rank returns the number of dimensions, or UnknownRank if the shape is unranked.
func (es ElementShape) Rank() int {
	if !es.ranked {
		return UnknownRank
	}
	return len(es.dims)
}

// Dims returns a copy of the dimensions. It is nil for an unranked shape.
func (es ElementShape) Dims() []Dim {
	return slices.Clone(es.dims)
}

// Dim returns the dimension of the given axis. It panics if the shape is unranked or the axis is out-of-bounds.
func (es ElementShape) Dim(axis int) Dim {
	return es.dims[axis]
}

// IsFullyKnown returns whether the shape is ranked and all of its dimensions are known.
func (es ElementShape) IsFullyKnown() bool {
	if !es.ranked {
		return false
	}
	for _, dim := range es.dims {
		if !dim.IsKnown() {
			return false
		}
	}
	return true
}

// Equal returns whether both shapes have exactly the same information: both unranked, or same rank and
// same dimensions (including which ones are unknown).
func (es ElementShape) Equal(other ElementShape) bool {
	if es.ranked != other.ranked {
		return false
	}
	return slices.Equal(es.dims, other.dims)
}

// String implements fmt.Stringer. Unknown dimensions are printed as "?", and an unranked shape as "[*]".
func (es ElementShape) String() string {
	if !es.ranked {
		return "[*]"
	}
	parts := make([]string, len(es.dims))
	for ii, dim := range es.dims {
		parts[ii] = dim.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Merge returns the most specific shape compatible with both a and b.
//
// An unranked shape merges as the identity. Otherwise, the ranks must match, and each dimension is merged with
// MergeDim. A known dimension is never replaced by an unknown one.
//
// Incompatible shapes return an error with status.CodeShapeMismatch.
func Merge(a, b ElementShape) (ElementShape, error) {
	if !a.ranked {
		return b, nil
	}
	if !b.ranked {
		return a, nil
	}
	if len(a.dims) != len(b.dims) {
		return ElementShape{}, status.Errorf(status.CodeShapeMismatch,
			"incompatible ranks for shapes %s and %s", a, b)
	}
	merged := ElementShape{ranked: true, dims: make([]Dim, len(a.dims))}
	for axis := range a.dims {
		dim, err := MergeDim(a.dims[axis], b.dims[axis])
		if err != nil {
			return ElementShape{}, status.Wrapf(status.CodeShapeMismatch, err,
				"merging shapes %s and %s at axis %d", a, b, axis)
		}
		merged.dims[axis] = dim
	}
	return merged, nil
}

// IsCompatibleWith returns whether a dense tensor with the given shape conforms to this element shape.
// The dtype of the shape is not checked.
func (es ElementShape) IsCompatibleWith(shape Shape) bool {
	_, err := Merge(es, ElementShapeFromShape(shape))
	return err == nil
}

// ToShape converts a fully known element shape to a dense Shape with the given dtype.
//
// It returns an error with status.CodeUnresolvedShape if the shape is not fully known.
func (es ElementShape) ToShape(dtype dtypes.DType) (Shape, error) {
	if !es.IsFullyKnown() {
		return Invalid(), status.Errorf(status.CodeUnresolvedShape,
			"element shape %s is not fully known, cannot convert to a concrete shape", es)
	}
	return Make(dtype, es.Vector()...), nil
}

// ResolveUnknownAsZero returns a fully known shape where the unknown dimensions are set to 0,
// and where an unranked shape becomes a scalar.
//
// It is used for lists with no elements, whose stacked form has no data regardless of the element shape.
func (es ElementShape) ResolveUnknownAsZero() ElementShape {
	resolved := ElementShape{ranked: true, dims: make([]Dim, len(es.dims))}
	for ii, dim := range es.dims {
		if dim.IsKnown() {
			resolved.dims[ii] = dim
		}
	}
	return resolved
}
