// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"reflect"
	"sync"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/varlist/pkg/core/tensors"
)

type bufferPoolKey struct {
	dtype  dtypes.DType
	length int
}

// bufferPool implements tensors.Allocator with one sync.Pool per (dtype, length).
// Buffers taken from the pool are zeroed before being handed out.
type bufferPool struct {
	enabled bool

	// pools maps bufferPoolKey to *sync.Pool.
	pools sync.Map
}

var _ tensors.Allocator = (*bufferPool)(nil)

func newBufferPool(enabled bool) *bufferPool {
	return &bufferPool{enabled: enabled}
}

func (p *bufferPool) getPool(dtype dtypes.DType, length int) *sync.Pool {
	key := bufferPoolKey{dtype: dtype, length: length}
	pool, ok := p.pools.Load(key)
	if !ok {
		pool, _ = p.pools.LoadOrStore(key, &sync.Pool{
			New: func() any {
				return tensors.MakeFlat(dtype, length)
			},
		})
	}
	return pool.(*sync.Pool)
}

// Alloc implements tensors.Allocator.
func (p *bufferPool) Alloc(dtype dtypes.DType, length int) any {
	if !p.enabled {
		return tensors.MakeFlat(dtype, length)
	}
	flat := p.getPool(dtype, length).Get()
	tensors.ZeroFlat(dtype, flat)
	return flat
}

// Release implements tensors.Allocator.
func (p *bufferPool) Release(dtype dtypes.DType, flat any) {
	if !p.enabled || flat == nil {
		return
	}
	length := reflect.ValueOf(flat).Len()
	if length == 0 {
		return
	}
	p.getPool(dtype, length).Put(flat)
}
