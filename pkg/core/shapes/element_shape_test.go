// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/varlist/pkg/core/status"
)

func TestMergeDim(t *testing.T) {
	for _, k := range []Dim{0, 1, 7} {
		got, err := MergeDim(UnknownDim, k)
		require.NoError(t, err)
		require.Equal(t, k, got)

		got, err = MergeDim(k, UnknownDim)
		require.NoError(t, err)
		require.Equal(t, k, got)

		got, err = MergeDim(k, k)
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	got, err := MergeDim(UnknownDim, UnknownDim)
	require.NoError(t, err)
	require.False(t, got.IsKnown())

	_, err = MergeDim(2, 3)
	require.Error(t, err)
	require.Equal(t, status.CodeShapeMismatch, status.CodeOf(err))
}

func TestElementShape(t *testing.T) {
	unranked := UnrankedElementShape()
	require.False(t, unranked.IsRanked())
	require.Equal(t, UnknownRank, unranked.Rank())
	require.False(t, unranked.IsFullyKnown())
	require.Equal(t, "[*]", unranked.String())
	require.True(t, unranked.Equal(ElementShape{}))

	scalar := MakeElementShape()
	require.True(t, scalar.IsRanked())
	require.Equal(t, 0, scalar.Rank())
	require.True(t, scalar.IsFullyKnown())
	require.False(t, scalar.Equal(unranked))

	partial := MakeElementShape(2, -1)
	require.Equal(t, 2, partial.Rank())
	require.False(t, partial.IsFullyKnown())
	require.Equal(t, "[2 ?]", partial.String())
	require.Equal(t, Dim(2), partial.Dim(0))
	require.False(t, partial.Dim(1).IsKnown())

	require.Panics(t, func() { _ = MakeElementShape(2, -3) })
}

func TestElementShapeVector(t *testing.T) {
	for _, vector := range [][]int{{}, {-1}, {2, 2}, {2, -1}, {0}, {-1, -1, 3}} {
		es, err := ElementShapeFromVector(vector)
		require.NoError(t, err)
		require.Equal(t, vector, es.Vector(), "round trip of %v", vector)
	}

	es, err := ElementShapeFromVector(nil)
	require.NoError(t, err)
	require.False(t, es.IsRanked())

	_, err = ElementShapeFromVector([]int{3, -2})
	require.Error(t, err)
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))

	// Rank-0 widens to unranked through the vector form.
	es, err = ElementShapeFromVector(MakeElementShape().Vector())
	require.NoError(t, err)
	require.False(t, es.IsRanked())
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    ElementShape
		want    ElementShape
		errCode status.Code
	}{
		{"unranked-unranked", UnrankedElementShape(), UnrankedElementShape(), UnrankedElementShape(), status.CodeUnknown},
		{"unranked-identity-left", UnrankedElementShape(), MakeElementShape(3, 4), MakeElementShape(3, 4), status.CodeUnknown},
		{"unranked-identity-right", MakeElementShape(2, -1), UnrankedElementShape(), MakeElementShape(2, -1), status.CodeUnknown},
		{"resolve-unknown", MakeElementShape(2, -1), MakeElementShape(-1, 5), MakeElementShape(2, 5), status.CodeUnknown},
		{"same", MakeElementShape(2, 2), MakeElementShape(2, 2), MakeElementShape(2, 2), status.CodeUnknown},
		{"scalars", MakeElementShape(), MakeElementShape(), MakeElementShape(), status.CodeUnknown},
		{"rank-mismatch", MakeElementShape(2), MakeElementShape(2, 1), ElementShape{}, status.CodeShapeMismatch},
		{"dim-mismatch", MakeElementShape(2, 3), MakeElementShape(2, 4), ElementShape{}, status.CodeShapeMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Merge(tc.a, tc.b)
			if tc.errCode != status.CodeUnknown {
				require.Error(t, err)
				require.Equal(t, tc.errCode, status.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.Truef(t, tc.want.Equal(got), "Merge(%s, %s): want %s, got %s", tc.a, tc.b, tc.want, got)

			// Merge is symmetric.
			got, err = Merge(tc.b, tc.a)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got))
		})
	}
}

func TestIsCompatibleWith(t *testing.T) {
	require.True(t, UnrankedElementShape().IsCompatibleWith(Make(dtypes.Float32, 1, 2, 3)))
	require.True(t, MakeElementShape(2, -1).IsCompatibleWith(Make(dtypes.Float32, 2, 9)))
	require.False(t, MakeElementShape(2, -1).IsCompatibleWith(Make(dtypes.Float32, 3, 9)))
	require.False(t, MakeElementShape(2).IsCompatibleWith(Make(dtypes.Float32)))
	require.True(t, MakeElementShape().IsCompatibleWith(Make(dtypes.Float32)))
}

func TestToShape(t *testing.T) {
	shape, err := MakeElementShape(3, 4).ToShape(dtypes.Int32)
	require.NoError(t, err)
	require.True(t, shape.Equal(Make(dtypes.Int32, 3, 4)))

	_, err = MakeElementShape(3, -1).ToShape(dtypes.Int32)
	require.Equal(t, status.CodeUnresolvedShape, status.CodeOf(err))

	_, err = UnrankedElementShape().ToShape(dtypes.Int32)
	require.Equal(t, status.CodeUnresolvedShape, status.CodeOf(err))

	require.True(t, MakeElementShape(2, -1).ResolveUnknownAsZero().Equal(MakeElementShape(2, 0)))
	require.True(t, UnrankedElementShape().ResolveUnknownAsZero().Equal(MakeElementShape()))
}
