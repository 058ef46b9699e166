// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package status defines the error taxonomy shared by the list kernels and the interpreter.
//
// Every error reported by a kernel carries a Code, and the Code survives any wrapping done on the
// way up to the caller of Interpreter.Invoke: use CodeOf to recover it.
package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies a failure.
type Code int

//go:generate go tool enumer -type=Code -trimprefix=Code -output=gen_code_enumer.go status.go

const (
	// CodeUnknown is used for errors that were not created by this package.
	CodeUnknown Code = iota

	// CodeInvalidArgument for malformed kernel inputs: negative counts, wrong-rank shape tensors, out-of-range
	// indices.
	CodeInvalidArgument

	// CodeShapeMismatch when two known dimensions (or ranks) disagree.
	CodeShapeMismatch

	// CodeUnresolvedShape when a dimension could not be determined from any source.
	CodeUnresolvedShape

	// CodeTypeMismatch when a data type doesn't match the declared one.
	CodeTypeMismatch

	// CodeFailedPrecondition when the interpreter is used out of order, e.g. Invoke before AllocateTensors.
	CodeFailedPrecondition

	// CodeInternal is used for unexpected failures (bugs), e.g. a recovered panic.
	CodeInternal
)

// Error is an error with an associated Code.
//
// It is always created with a stack trace (see github.com/pkg/errors), so printing it with "%+v"
// shows where it was created.
type Error struct {
	code  Code
	cause error
}

// Errorf creates a new error with the given code. The message is formatted with fmt.Sprintf.
func Errorf(code Code, format string, args ...any) error {
	return &Error{code: code, cause: errors.Errorf(format, args...)}
}

// Wrapf wraps err with the given code and message. If err is nil it returns nil.
func Wrapf(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, cause: errors.WithMessagef(err, format, args...)}
}

// Code returns the code associated with the error.
func (e *Error) Code() Code { return e.code }

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.cause.Error())
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.cause }

// Cause implements the github.com/pkg/errors causer interface.
func (e *Error) Cause() error { return e.cause }

// Format implements fmt.Formatter, so "%+v" prints the stack trace of the underlying error.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		_, _ = fmt.Fprintf(s, "%s: %+v", e.code, e.cause)
		return
	}
	_, _ = fmt.Fprint(s, e.Error())
}

// CodeOf returns the Code of the first *Error found in err's chain.
// It returns CodeUnknown if there is none, and it shouldn't be called with a nil error.
func CodeOf(err error) Code {
	var statusErr *Error
	if errors.As(err, &statusErr) {
		return statusErr.code
	}
	return CodeUnknown
}

// Is reports whether err (or any error it wraps) carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
