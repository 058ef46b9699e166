// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingVariant records how many times it was finalized.
type countingVariant struct {
	id         int
	finalized  *int
	cloneCount *int
}

func (v *countingVariant) VariantKind() VariantKind { return VariantKindTensorList }
func (v *countingVariant) CloneVariant() Variant {
	*v.cloneCount++
	return &countingVariant{id: v.id + 100, finalized: v.finalized, cloneCount: v.cloneCount}
}
func (v *countingVariant) Finalize()      { *v.finalized++ }
func (v *countingVariant) String() string { return fmt.Sprintf("counting#%d", v.id) }

func TestVariant(t *testing.T) {
	var finalized, clones int
	tensor := NewVariant()
	require.True(t, tensor.IsVariant())
	require.Equal(t, AllocVariantObject, tensor.AllocationType())
	require.False(t, tensor.IsAllocated())
	require.Nil(t, tensor.Variant())
	require.Equal(t, "Variant(empty)", tensor.String())

	first := &countingVariant{id: 1, finalized: &finalized, cloneCount: &clones}
	tensor.SetVariant(first)
	require.Equal(t, "Variant(counting#1)", tensor.String())

	// Setting the same payload doesn't finalize it.
	tensor.SetVariant(first)
	require.Equal(t, 0, finalized)

	// Replacing the payload finalizes the previous one.
	tensor.SetVariant(&countingVariant{id: 2, finalized: &finalized, cloneCount: &clones})
	require.Equal(t, 1, finalized)

	clone := tensor.Clone()
	require.True(t, clone.IsVariant())
	require.Equal(t, 1, clones)
	require.NotSame(t, tensor.Variant(), clone.Variant())

	taken := tensor.TakeVariant()
	require.Equal(t, "counting#2", taken.String())
	require.Nil(t, tensor.Variant())

	clone.Finalize()
	require.Equal(t, 2, finalized)
	require.True(t, clone.IsFinalized())

	require.Panics(t, func() { tensor.SetAllocationType(AllocDynamic) })
	require.Panics(t, func() { tensor.Resize(nil, 2) })
	require.Panics(t, func() { FromScalar(int32(1)).Variant() })
}
