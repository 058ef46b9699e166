// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// VariantKind enumerates the closed set of payloads a variant tensor can hold.
type VariantKind int

//go:generate go tool enumer -type=VariantKind -trimprefix=VariantKind -output=gen_variantkind_enumer.go variant.go

const (
	VariantKindInvalid VariantKind = iota

	// VariantKindTensorList is a list of optional tensors, see package tensorlist.
	VariantKindTensorList
)

// Variant is the payload of a variant tensor: an opaque, heap-allocated container exclusively owned by
// the tensor holding it.
type Variant interface {
	// VariantKind identifies the concrete container.
	VariantKind() VariantKind

	// CloneVariant returns a deep copy: the copy shares no storage with the original.
	CloneVariant() Variant

	// Finalize releases everything owned by the container. It must be idempotent.
	Finalize()

	// String pretty-prints a short description of the container.
	String() string
}

// VariantSpec is static information about a variant payload that a kernel can determine during prepare,
// before the payload itself exists. See tensorlist.Spec.
type VariantSpec interface {
	VariantKind() VariantKind
}

// NewVariant creates an empty variant tensor: it holds no payload until SetVariant is called.
func NewVariant() *Tensor {
	return &Tensor{
		shape:      invalidShape,
		isVariant:  true,
		allocation: AllocVariantObject,
	}
}

// IsVariant returns whether the tensor holds (or was declared to hold) a Variant payload instead of flat data.
func (t *Tensor) IsVariant() bool { return t.isVariant }

// Variant returns the payload of a variant tensor, or nil if nothing was stored yet.
//
// The payload is still owned by the tensor: callers must not finalize it nor keep references to it
// beyond the current evaluation.
func (t *Tensor) Variant() Variant {
	t.AssertValid()
	if !t.isVariant {
		exceptions.Panicf("Tensor.Variant() called on a dense tensor of shape %s", t.shape)
	}
	return t.variant
}

// SetVariant installs v as the tensor's payload, taking ownership of it.
// Any previous payload is finalized first -- unless it is v itself.
//
// Setting a nil payload simply releases the previous one.
func (t *Tensor) SetVariant(v Variant) {
	t.AssertValid()
	if !t.isVariant {
		exceptions.Panicf("Tensor.SetVariant() called on a dense tensor of shape %s", t.shape)
	}
	if v != nil && !(v.VariantKind().IsAVariantKind() && v.VariantKind() != VariantKindInvalid) {
		exceptions.Panicf("Tensor.SetVariant(): invalid variant kind %s", v.VariantKind())
	}
	if t.variant != nil && t.variant != v {
		if klog.V(2).Enabled() {
			klog.Infof("tensor %q: releasing variant payload %s", t.name, t.variant)
		}
		t.variant.Finalize()
	}
	t.variant = v
	t.allocation = AllocVariantObject
}

// TakeVariant returns the payload and removes it from the tensor, transferring ownership to the caller.
func (t *Tensor) TakeVariant() Variant {
	v := t.Variant()
	t.variant = nil
	return v
}

// VariantSpec returns the static information recorded during prepare, or nil.
func (t *Tensor) VariantSpec() VariantSpec { return t.variantSpec }

// SetVariantSpec records static information about the payload this tensor will hold.
func (t *Tensor) SetVariantSpec(spec VariantSpec) {
	if !t.isVariant {
		exceptions.Panicf("Tensor.SetVariantSpec() called on a dense tensor of shape %s", t.shape)
	}
	t.variantSpec = spec
}
