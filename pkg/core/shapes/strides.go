// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

// IsZeroSize returns whether any of the axes has dimension 0, in which case the shape holds no values.
func (s Shape) IsZeroSize() bool {
	for _, dim := range s.Dimensions {
		if dim == 0 {
			return true
		}
	}
	return false
}

// Strides returns the strides for each axis of the shape, assuming a "row-major" layout
// in memory.
//
// Notice the strides are **not in bytes**, but in indices. For a zero-size shape all strides are 0.
func (s Shape) Strides() (strides []int) {
	rank := s.Rank()
	if rank == 0 {
		return
	}
	strides = make([]int, rank)
	if s.IsZeroSize() {
		return
	}
	currentStride := 1
	for dim := rank - 1; dim >= 0; dim-- {
		strides[dim] = currentStride
		currentStride *= s.Dimensions[dim]
	}
	return
}
