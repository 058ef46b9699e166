// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VARLIST_INTERPRETER is the environment variable with the default interpreter configuration.
//
// The format is a comma-separated list of options, each either "key=value" or a bare "key" (meaning "key=true").
// E.g.: "pool_buffers=false,max_list_elements=1000".
//
// See ParseConfig for the list of options.
const VARLIST_INTERPRETER = "VARLIST_INTERPRETER"

// DefaultConfig is used as configuration if VARLIST_INTERPRETER is not set.
//
// See ParseConfig for the format.
var DefaultConfig string

// Options that control an Interpreter. See ParseConfig for the corresponding configuration keys.
type Options struct {
	// PoolBuffers reuses the storage of released dense tensors ("pool_buffers", default true).
	PoolBuffers bool

	// ForceDynamic makes every dense node output dynamically allocated, disabling the static sizing kernels can
	// do at prepare ("force_dynamic").
	ForceDynamic bool

	// MaxListElements, if > 0, bounds the number of elements of lists created by kernels ("max_list_elements").
	MaxListElements int

	// Parallelism is the number of goroutines kernels can use for large copies ("parallelism").
	// 0 and 1 keep every kernel on the calling goroutine, and -1 means runtime.NumCPU().
	Parallelism int
}

// Option modifies Options, used with Builder.Build.
type Option func(*Options)

// WithPoolBuffers enables or disables the reuse of dense tensor storage.
func WithPoolBuffers(enabled bool) Option {
	return func(o *Options) { o.PoolBuffers = enabled }
}

// WithForceDynamic makes all dense node outputs dynamically allocated.
func WithForceDynamic(enabled bool) Option {
	return func(o *Options) { o.ForceDynamic = enabled }
}

// WithMaxListElements bounds the number of elements of lists created by kernels. 0 means unbounded.
func WithMaxListElements(n int) Option {
	return func(o *Options) { o.MaxListElements = n }
}

// WithParallelism sets the number of goroutines kernels can use. -1 means runtime.NumCPU().
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

// DefaultOptions returns the options from the environment variable VARLIST_INTERPRETER if set,
// or from DefaultConfig otherwise.
func DefaultOptions() (Options, error) {
	if config, found := os.LookupEnv(VARLIST_INTERPRETER); found {
		opts, err := ParseConfig(config)
		if err != nil {
			return opts, errors.WithMessagef(err, "parsing $%s=%q", VARLIST_INTERPRETER, config)
		}
		return opts, nil
	}
	return ParseConfig(DefaultConfig)
}

// ParseConfig parses a configuration string: a comma-separated list of "key=value" or "key" (for "key=true").
//
// Keys:
//   - "pool_buffers": bool, default true.
//   - "force_dynamic": bool, default false.
//   - "max_list_elements": int >= 0, default 0 (unbounded).
//   - "parallelism": int >= -1, default 0 (no parallelism). -1 means runtime.NumCPU().
func ParseConfig(config string) (Options, error) {
	opts := Options{PoolBuffers: true}
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !hasValue {
			value = "true"
		}
		value = strings.TrimSpace(value)
		var err error
		switch key {
		case "pool_buffers":
			opts.PoolBuffers, err = strconv.ParseBool(value)
		case "force_dynamic":
			opts.ForceDynamic, err = strconv.ParseBool(value)
		case "max_list_elements":
			opts.MaxListElements, err = strconv.Atoi(value)
			if err == nil && opts.MaxListElements < 0 {
				err = errors.Errorf("must be >= 0")
			}
		case "parallelism":
			opts.Parallelism, err = strconv.Atoi(value)
			if err == nil && opts.Parallelism < -1 {
				err = errors.Errorf("must be >= -1")
			}
		default:
			return opts, errors.Errorf("unknown interpreter configuration option %q in %q", key, config)
		}
		if err != nil {
			return opts, errors.Wrapf(err, "invalid value %q for interpreter option %q", value, key)
		}
	}
	return opts, nil
}
