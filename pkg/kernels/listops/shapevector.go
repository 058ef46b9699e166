// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package listops

import (
	"github.com/gomlx/gopjrt/dtypes"
	"golang.org/x/exp/constraints"

	"github.com/gomlx/varlist/pkg/core/shapes"
	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/core/tensors"
)

// isIndexDType returns whether dtype can be used for shapes, counts and indices.
func isIndexDType(dtype dtypes.DType) bool {
	return dtype == dtypes.Int32 || dtype == dtypes.Int64
}

func toInts[T constraints.Integer](flat []T) []int {
	ints := make([]int, len(flat))
	for ii, v := range flat {
		ints[ii] = int(v)
	}
	return ints
}

// readInts returns the values of a dense int32 or int64 tensor.
func readInts(t *tensors.Tensor) []int {
	var ints []int
	switch t.DType() {
	case dtypes.Int32:
		tensors.ConstFlatData(t, func(flat []int32) { ints = toInts(flat) })
	case dtypes.Int64:
		tensors.ConstFlatData(t, func(flat []int64) { ints = toInts(flat) })
	}
	return ints
}

// decodeElementShape reads an element shape tensor: a rank-0 tensor means unranked (its value is ignored), and a
// rank-1 tensor holds one entry per axis, -1 for unknown dimensions. An empty vector also means unranked.
func decodeElementShape(what string, t *tensors.Tensor) (shapes.ElementShape, error) {
	if t.IsVariant() || !isIndexDType(t.DType()) {
		return shapes.ElementShape{}, status.Errorf(status.CodeInvalidArgument,
			"%s must be an int32 or int64 tensor, got %s", what, describe(t))
	}
	switch t.Rank() {
	case 0:
		return shapes.UnrankedElementShape(), nil
	case 1:
		es, err := shapes.ElementShapeFromVector(readInts(t))
		if err != nil {
			return shapes.ElementShape{}, status.Wrapf(status.CodeInvalidArgument, err, "decoding %s", what)
		}
		return es, nil
	default:
		return shapes.ElementShape{}, status.Errorf(status.CodeInvalidArgument,
			"%s must be a scalar or a vector, got shape %s", what, t.Shape())
	}
}

// decodeScalarInt reads a scalar int32 or int64 tensor.
func decodeScalarInt(what string, t *tensors.Tensor) (int, error) {
	if t.IsVariant() || !isIndexDType(t.DType()) || !t.IsScalar() {
		return 0, status.Errorf(status.CodeInvalidArgument,
			"%s must be a scalar int32 or int64 tensor, got %s", what, describe(t))
	}
	return readInts(t)[0], nil
}

func describe(t *tensors.Tensor) string {
	if t.IsVariant() {
		return "a variant tensor"
	}
	return t.Shape().String()
}
