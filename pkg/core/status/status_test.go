// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package status

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	err := Errorf(CodeShapeMismatch, "dimension %d: %d != %d", 1, 2, 3)
	require.Equal(t, CodeShapeMismatch, CodeOf(err))
	require.Contains(t, err.Error(), "ShapeMismatch")
	require.Contains(t, err.Error(), "dimension 1: 2 != 3")

	// Wrapping keeps the code.
	wrapped := errors.WithMessage(err, "node #3 (ListStack)")
	require.Equal(t, CodeShapeMismatch, CodeOf(wrapped))
	require.True(t, Is(wrapped, CodeShapeMismatch))
	require.False(t, Is(wrapped, CodeTypeMismatch))

	require.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	require.False(t, Is(nil, CodeUnknown))
}

func TestWrapf(t *testing.T) {
	require.NoError(t, Wrapf(CodeInternal, nil, "nothing"))
	err := Wrapf(CodeInternal, errors.New("boom"), "while running %q", "stack")
	require.Equal(t, CodeInternal, CodeOf(err))
	require.Contains(t, err.Error(), "boom")
	require.Contains(t, fmt.Sprintf("%+v", err), "while running \"stack\"")
}

func TestCodeString(t *testing.T) {
	for _, code := range CodeValues() {
		parsed, err := CodeString(code.String())
		require.NoError(t, err)
		require.Equal(t, code, parsed)
	}
	parsed, err := CodeString("unresolvedshape")
	require.NoError(t, err)
	require.Equal(t, CodeUnresolvedShape, parsed)
}
