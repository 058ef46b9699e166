// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

var (
	typeFloat16  = reflect.TypeOf(float16.Float16(0))
	typeBFloat16 = reflect.TypeOf(bfloat16.BFloat16(0))
)

// maxPrintedRow is the number of values in a row above which the middle values are replaced by "...".
const maxPrintedRow = 6

// Summary returns a one-line summary of a dense tensor's shape and content, using precision significant
// digits for floating point values. Long rows are abbreviated with "...".
//
// Zero-size and unallocated tensors print only their shape.
func (t *Tensor) Summary(precision int) string {
	if t.isVariant {
		return t.String()
	}
	if t.shape.IsZeroSize() || !t.IsAllocated() {
		return t.shape.String()
	}
	var sb strings.Builder
	sb.WriteString(t.shape.String())
	sb.WriteString(": ")
	values := reflect.ValueOf(t.flat)
	if t.shape.IsScalar() {
		writeValue(&sb, values.Index(0), precision)
		return sb.String()
	}
	dims, strides := t.shape.Dimensions, t.shape.Strides()
	var printAxis func(offset, axis int)
	printAxis = func(offset, axis int) {
		dim := dims[axis]
		sb.WriteByte('[')
		for ii := 0; ii < dim; ii++ {
			if dim > maxPrintedRow && ii == maxPrintedRow/2 {
				sb.WriteString(" ...")
				ii = dim - maxPrintedRow/2
			}
			if ii > 0 {
				sb.WriteByte(' ')
			}
			if axis == len(dims)-1 {
				writeValue(&sb, values.Index(offset+ii), precision)
			} else {
				printAxis(offset+ii*strides[axis], axis+1)
			}
		}
		sb.WriteByte(']')
	}
	printAxis(0, 0)
	return sb.String()
}

func writeValue(sb *strings.Builder, v reflect.Value, precision int) {
	switch {
	case v.Type() == typeFloat16:
		_, _ = fmt.Fprintf(sb, "%.*g", precision, v.Interface().(float16.Float16).Float32())
		return
	case v.Type() == typeBFloat16:
		_, _ = fmt.Fprintf(sb, "%.*g", precision, v.Interface().(bfloat16.BFloat16).Float32())
		return
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, _ = fmt.Fprintf(sb, "%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		_, _ = fmt.Fprintf(sb, "%d", v.Uint())
	case reflect.Bool:
		_, _ = fmt.Fprintf(sb, "%v", v.Bool())
	default:
		_, _ = fmt.Fprintf(sb, "%.*g", precision, v.Interface())
	}
}
