// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/varlist/pkg/core/status"
)

func TestCatchPanic(t *testing.T) {
	require.NoError(t, catchPanic(func() {}))

	err := catchPanic(func() { panic("reflect.MakeSlice: negative len") })
	require.ErrorContains(t, err, "reflect.MakeSlice: negative len")

	cause := status.Errorf(status.CodeShapeMismatch, "bad shape")
	err = catchPanic(func() { panic(cause) })
	require.ErrorIs(t, err, cause)
	require.Equal(t, status.CodeShapeMismatch, status.CodeOf(err))

	err = catchPanic(func() { panic(42) })
	require.ErrorContains(t, err, "42")
}

func TestRunKernelPanics(t *testing.T) {
	interp := &Interpreter{name: "panics"}
	n := &node{index: 3, reg: &Registration{Name: "Faulty"}}
	testCases := []struct {
		name     string
		fn       func(*Context) error
		wantCode status.Code
		wantMsg  string
	}{
		{"string", func(*Context) error { panic("out of memory for buffer") }, status.CodeInternal, "out of memory for buffer"},
		{"error", func(*Context) error { panic(errors.New("broken invariant")) }, status.CodeInternal, "broken invariant"},
		{"runtime", func(*Context) error {
			var values []int
			return errors.Errorf("unreachable %d", values[1])
		}, status.CodeInternal, "index out of range"},
		{"returned", func(*Context) error {
			return status.Errorf(status.CodeInvalidArgument, "bad value")
		}, status.CodeInvalidArgument, "bad value"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				err = interp.runKernel(n, "eval", tc.fn, &Context{interp: interp, node: n})
			})
			require.Error(t, err)
			require.Equal(t, tc.wantCode, status.CodeOf(err))
			require.ErrorContains(t, err, tc.wantMsg)
			require.ErrorContains(t, err, `interpreter "panics": eval of node #3 (Faulty)`)
		})
	}
}
