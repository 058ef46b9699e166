// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensorlist implements List, a growable-by-construction list of optional tensors that lives inside a
// variant tensor.
//
// Every slot of a List is either absent or holds a dense tensor of the list's element dtype whose shape is
// compatible with the list's element shape descriptor (see shapes.ElementShape). The List owns its elements:
// Set takes ownership of the given tensor and Finalize releases them all.
package tensorlist

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
)

// List is an ordered, fixed-length sequence of optional dense tensors. It implements tensors.Variant.
type List struct {
	tag          string
	dtype        dtypes.DType
	elementShape shapes.ElementShape
	elements     []*tensors.Tensor
	finalized    bool
}

// Compile-time check.
var _ tensors.Variant = (*List)(nil)

// New creates a List with numElements absent slots.
//
// It returns an error with status.CodeInvalidArgument if numElements is negative or dtype is not supported for
// dense tensors.
func New(dtype dtypes.DType, elementShape shapes.ElementShape, numElements int) (*List, error) {
	if numElements < 0 {
		return nil, status.Errorf(status.CodeInvalidArgument,
			"tensorlist.New(): number of elements must be >= 0, got %d", numElements)
	}
	if !tensors.IsSupportedDType(dtype) {
		return nil, status.Errorf(status.CodeInvalidArgument,
			"tensorlist.New(): element dtype %s is not supported", dtype)
	}
	l := &List{
		tag:          uuid.NewString(),
		dtype:        dtype,
		elementShape: elementShape,
		elements:     make([]*tensors.Tensor, numElements),
	}
	if klog.V(2).Enabled() {
		klog.Infof("%s: created", l)
	}
	return l, nil
}

// VariantKind implements tensors.Variant.
func (l *List) VariantKind() tensors.VariantKind { return tensors.VariantKindTensorList }

func (l *List) assertValid() {
	if l == nil {
		exceptions.Panicf("tensorlist.List is nil")
	}
	if l.finalized {
		exceptions.Panicf("%s: used after Finalize", l)
	}
}

// NumElements returns the number of slots in the list, present or not.
func (l *List) NumElements() int {
	l.assertValid()
	return len(l.elements)
}

// ElementType returns the dtype shared by all elements.
func (l *List) ElementType() dtypes.DType { return l.dtype }

// ElementShape returns the element shape descriptor.
func (l *List) ElementShape() shapes.ElementShape { return l.elementShape }

// At returns the element at index, or nil if the slot is absent. The tensor is still owned by the list.
func (l *List) At(index int) *tensors.Tensor {
	l.assertValid()
	if index < 0 || index >= len(l.elements) {
		exceptions.Panicf("%s: index %d out of range [0, %d)", l, index, len(l.elements))
	}
	return l.elements[index]
}

// Set stores element at index, taking ownership of it. The previous element, if any, is finalized.
// Setting a nil element is the same as Clear.
//
// Errors:
//   - status.CodeInvalidArgument: index out of range, or element is not a dense tensor.
//   - status.CodeTypeMismatch: element dtype differs from the list's.
//   - status.CodeShapeMismatch: element shape incompatible with the descriptor.
func (l *List) Set(index int, element *tensors.Tensor) error {
	l.assertValid()
	if index < 0 || index >= len(l.elements) {
		return status.Errorf(status.CodeInvalidArgument, "%s: index %d out of range [0, %d)", l, index, len(l.elements))
	}
	if element == nil {
		l.Clear(index)
		return nil
	}
	if element.IsVariant() {
		return status.Errorf(status.CodeInvalidArgument, "%s: cannot store a variant tensor as element %d", l, index)
	}
	if element.DType() != l.dtype {
		return status.Errorf(status.CodeTypeMismatch, "%s: element %d has dtype %s, list holds %s",
			l, index, element.DType(), l.dtype)
	}
	if !l.elementShape.IsCompatibleWith(element.Shape()) {
		return status.Errorf(status.CodeShapeMismatch, "%s: element %d with shape %s is incompatible with element shape %s",
			l, index, element.Shape(), l.elementShape)
	}
	if previous := l.elements[index]; previous != nil && previous != element {
		previous.Finalize()
	}
	l.elements[index] = element
	return nil
}

// Clear makes the slot at index absent, releasing its element.
func (l *List) Clear(index int) {
	if previous := l.At(index); previous != nil {
		previous.Finalize()
		l.elements[index] = nil
	}
}

// NumPresent returns how many slots hold an element.
func (l *List) NumPresent() int {
	l.assertValid()
	return l.countPresent()
}

// RefineElementShape merges more specific information into the element shape descriptor.
// It fails with status.CodeShapeMismatch (leaving the descriptor unchanged) if es contradicts it.
func (l *List) RefineElementShape(es shapes.ElementShape) error {
	l.assertValid()
	merged, err := shapes.Merge(l.elementShape, es)
	if err != nil {
		return status.Wrapf(status.CodeShapeMismatch, err, "%s: refining element shape", l)
	}
	l.elementShape = merged
	return nil
}

// Clone returns a deep copy of the list: every present element is cloned, and the copy gets a new tag.
func (l *List) Clone() *List {
	l.assertValid()
	clone := &List{
		tag:          uuid.NewString(),
		dtype:        l.dtype,
		elementShape: l.elementShape,
		elements:     make([]*tensors.Tensor, len(l.elements)),
	}
	for ii, element := range l.elements {
		if element != nil {
			clone.elements[ii] = element.Clone()
		}
	}
	if klog.V(2).Enabled() {
		klog.Infof("%s: cloned from %s", clone, l)
	}
	return clone
}

// CloneVariant implements tensors.Variant.
func (l *List) CloneVariant() tensors.Variant { return l.Clone() }

// Finalize releases all elements. It is idempotent.
func (l *List) Finalize() {
	if l == nil || l.finalized {
		return
	}
	if klog.V(2).Enabled() {
		klog.Infof("%s: finalized", l)
	}
	for ii, element := range l.elements {
		element.Finalize()
		l.elements[ii] = nil
	}
	l.elements = nil
	l.finalized = true
}

// IsFinalized returns whether Finalize was called.
func (l *List) IsFinalized() bool { return l == nil || l.finalized }

// Tag is a unique identifier of the list, used in logs.
func (l *List) Tag() string { return l.tag }

// String implements fmt.Stringer.
func (l *List) String() string {
	if l == nil {
		return "<TensorList nil>"
	}
	if l.finalized {
		return fmt.Sprintf("<TensorList id=%s finalized>", l.tag)
	}
	return fmt.Sprintf("<TensorList id=%s dtype=%s element_shape=%s present=%d/%d>",
		l.tag, l.dtype, l.elementShape, l.countPresent(), len(l.elements))
}

func (l *List) countPresent() (count int) {
	for _, element := range l.elements {
		if element != nil {
			count++
		}
	}
	return
}

// Describe returns a multi-line listing of the elements, for debugging.
func (l *List) Describe(precision int) string {
	var sb strings.Builder
	sb.WriteString(l.String())
	for ii, element := range l.elements {
		if element == nil {
			_, _ = fmt.Fprintf(&sb, "\n  #%d: <absent>", ii)
		} else {
			_, _ = fmt.Fprintf(&sb, "\n  #%d: %s", ii, element.Summary(precision))
		}
	}
	return sb.String()
}

// FromVariantTensor returns the List held by a variant tensor.
//
// It returns an error with status.CodeInvalidArgument if t is not a variant tensor, and
// status.CodeFailedPrecondition if it holds no payload or a payload of another kind.
func FromVariantTensor(t *tensors.Tensor) (*List, error) {
	if t == nil {
		return nil, status.Errorf(status.CodeInvalidArgument, "nil tensor given where a tensor list was expected")
	}
	if !t.IsVariant() {
		return nil, status.Errorf(status.CodeInvalidArgument, "tensor %q is not a variant tensor", t.Name())
	}
	v := t.Variant()
	if v == nil {
		return nil, status.Errorf(status.CodeFailedPrecondition, "variant tensor %q holds no list yet", t.Name())
	}
	l, ok := v.(*List)
	if !ok || l.finalized {
		return nil, status.Errorf(status.CodeFailedPrecondition, "variant tensor %q holds %s, not a live tensor list",
			t.Name(), v)
	}
	return l, nil
}
