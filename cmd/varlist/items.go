// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"strconv"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/gomlx/varlist/pkg/core/tensors"
)

// itemFlag is the value of one -set flag.
type itemFlag struct {
	index  int
	values []float64
}

// parseItemFlag parses "index:v0,v1,...".
func parseItemFlag(value string) (itemFlag, error) {
	var item itemFlag
	indexStr, valuesStr, found := strings.Cut(value, ":")
	if !found {
		return item, errors.Errorf("invalid item %q, expected index:values", value)
	}
	var err error
	item.index, err = strconv.Atoi(strings.TrimSpace(indexStr))
	if err != nil {
		return item, errors.Wrapf(err, "invalid index in item %q", value)
	}
	for _, part := range strings.Split(valuesStr, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return item, errors.Wrapf(err, "invalid value in item %q", value)
		}
		item.values = append(item.values, v)
	}
	return item, nil
}

// parseDims parses comma-separated dimensions, where -1 means unknown.
func parseDims(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	dims := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "?" {
			dims = append(dims, -1)
			continue
		}
		dim, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dimensions %q", value)
		}
		dims = append(dims, dim)
	}
	return dims, nil
}

// tensor converts the item to a tensor of the given dtype. If elementShape is fully known and matches the number
// of values, the tensor takes its shape, otherwise it is a vector.
func (item itemFlag) tensor(dtype dtypes.DType, elementShape []int) (*tensors.Tensor, error) {
	dims := []int{len(item.values)}
	if size, ok := knownSize(elementShape); ok && size == len(item.values) {
		dims = elementShape
	}
	switch dtype {
	case dtypes.Float32:
		return convertValues[float32](item.values, dims), nil
	case dtypes.Float64:
		return convertValues[float64](item.values, dims), nil
	case dtypes.Int8:
		return convertValues[int8](item.values, dims), nil
	case dtypes.Int16:
		return convertValues[int16](item.values, dims), nil
	case dtypes.Int32:
		return convertValues[int32](item.values, dims), nil
	case dtypes.Int64:
		return convertValues[int64](item.values, dims), nil
	case dtypes.Uint8:
		return convertValues[uint8](item.values, dims), nil
	case dtypes.Uint32:
		return convertValues[uint32](item.values, dims), nil
	case dtypes.Uint64:
		return convertValues[uint64](item.values, dims), nil
	case dtypes.Float16:
		flat := make([]float16.Float16, len(item.values))
		for ii, v := range item.values {
			flat[ii] = float16.Fromfloat32(float32(v))
		}
		return tensors.FromFlatDataAndDimensions(flat, dims...), nil
	case dtypes.BFloat16:
		flat := make([]bfloat16.BFloat16, len(item.values))
		for ii, v := range item.values {
			flat[ii] = bfloat16.FromFloat32(float32(v))
		}
		return tensors.FromFlatDataAndDimensions(flat, dims...), nil
	}
	return nil, errors.Errorf("items of dtype %s can't be set from the command line", dtype)
}

func knownSize(dims []int) (int, bool) {
	if dims == nil {
		return 0, false
	}
	size := 1
	for _, dim := range dims {
		if dim < 0 {
			return 0, false
		}
		size *= dim
	}
	return size, true
}

type numeric interface {
	int8 | int16 | int32 | int64 | uint8 | uint32 | uint64 | float32 | float64
}

func convertValues[T numeric](values []float64, dims []int) *tensors.Tensor {
	flat := make([]T, len(values))
	for ii, v := range values {
		flat[ii] = T(v)
	}
	return tensors.FromFlatDataAndDimensions(flat, dims...)
}
