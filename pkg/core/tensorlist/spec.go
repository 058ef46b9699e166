// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensorlist

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/tensors"
)

// UnknownNumElements is used in Spec when the number of elements is only known at evaluation.
const UnknownNumElements = -1

// Spec is what is known about a List before it is created: kernels producing lists record it on their
// variant output during prepare, so consumers can size their outputs ahead of evaluation.
type Spec struct {
	DType        dtypes.DType
	ElementShape shapes.ElementShape
	NumElements  int
}

// Compile-time check.
var _ tensors.VariantSpec = Spec{}

// VariantKind implements tensors.VariantSpec.
func (s Spec) VariantKind() tensors.VariantKind { return tensors.VariantKindTensorList }

// IsNumElementsKnown returns whether NumElements holds an actual count.
func (s Spec) IsNumElementsKnown() bool { return s.NumElements >= 0 }

// String implements fmt.Stringer.
func (s Spec) String() string {
	if !s.IsNumElementsKnown() {
		return fmt.Sprintf("TensorListSpec(dtype=%s, element_shape=%s, num_elements=?)", s.DType, s.ElementShape)
	}
	return fmt.Sprintf("TensorListSpec(dtype=%s, element_shape=%s, num_elements=%d)",
		s.DType, s.ElementShape, s.NumElements)
}

// SpecOf returns the Spec recorded on a variant tensor, if there is one.
func SpecOf(t *tensors.Tensor) (Spec, bool) {
	if t == nil || !t.IsVariant() {
		return Spec{}, false
	}
	spec, ok := t.VariantSpec().(Spec)
	return spec, ok
}

// Spec returns the static description of an existing list.
func (l *List) Spec() Spec {
	return Spec{DType: l.dtype, ElementShape: l.elementShape, NumElements: l.NumElements()}
}
