// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package crc32x computes the IEEE 802.3 CRC-32 (the reflected
// 0xEDB88320 polynomial everybody means by "CRC32") with a choice of
// three back-ends of increasing width: a portable byte-at-a-time table
// lookup, an eight-lane slicing gather, and a carry-less-multiply
// Barrett-reduction fold for long buffers.
package crc32x

import (
	"github.com/cryptofast/cryptofast/errcrypto"
	"github.com/cryptofast/cryptofast/internal/cpuid"
	"github.com/cryptofast/cryptofast/internal/tables"
)

// Backend selects the algorithm Update dispatches to.
type Backend int

const (
	// BackendAuto picks BackendCLMUL on amd64 with PCLMULQDQ and
	// BackendGather otherwise.
	BackendAuto Backend = iota
	// BackendPortable folds one byte per step through CRC32Table.
	BackendPortable
	// BackendGather folds eight bytes per step through the slicing-by-8
	// tables.
	BackendGather
	// BackendCLMUL folds 64 bytes per step with carry-less multiply and
	// Barrett-reduces the residual to 32 bits. Falls back to the
	// portable byte table for inputs under 16 bytes.
	BackendCLMUL
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendPortable:
		return "portable"
	case BackendGather:
		return "gather"
	case BackendCLMUL:
		return "clmul"
	default:
		return "unknown"
	}
}

func resolve(requested Backend) (Backend, error) {
	switch requested {
	case BackendAuto:
		if cpuid.Probe().PCLMULQDQ {
			return BackendCLMUL, nil
		}
		return BackendGather, nil
	case BackendPortable:
		return BackendPortable, nil
	case BackendGather:
		return BackendGather, nil
	case BackendCLMUL:
		if !cpuid.Probe().PCLMULQDQ {
			return 0, errcrypto.ErrUnsupportedBackend
		}
		return BackendCLMUL, nil
	default:
		return 0, errcrypto.ErrUnsupportedBackend
	}
}

// Context is a streaming CRC-32 accumulator. The zero value is not usable;
// construct one with NewContext or NewContextWithBackend.
type Context struct {
	crc     uint32
	backend Backend
}

// NewContext returns a Context seeded with the standard initial value
// (0), picking the backend automatically from the probed CPU features.
// Use NewContextWithInitial to resume a checksum from a non-zero running
// value, e.g. one persisted from a prior Context's Current().
func NewContext() *Context {
	return NewContextWithInitial(0)
}

// NewContextWithInitial is NewContext seeded from an arbitrary running
// value instead of 0, for resuming a checksum across a boundary (a file
// split across chunks, a value carried over from another process).
func NewContextWithInitial(initial uint32) *Context {
	c, _ := NewContextWithBackend(initial, BackendAuto)
	return c
}

// NewContextWithBackend is NewContext with an explicit backend, returning
// ErrUnsupportedBackend if the running CPU lacks the features that
// backend requires.
func NewContextWithBackend(initial uint32, backend Backend) (*Context, error) {
	resolved, err := resolve(backend)
	if err != nil {
		return nil, err
	}
	return &Context{crc: initial, backend: resolved}, nil
}

// Backend reports the backend this context dispatches to.
func (c *Context) Backend() Backend { return c.backend }

// Update folds data into the running checksum and returns the receiver
// for chaining.
func (c *Context) Update(data []byte) *Context {
	switch c.backend {
	case BackendGather:
		c.crc = updateGather(c.crc, data)
	case BackendCLMUL:
		c.crc = updateCLMUL(c.crc, data)
	default:
		c.crc = updatePortable(c.crc, data)
	}
	return c
}

// Current returns the CRC-32 of every byte folded in so far.
func (c *Context) Current() uint32 { return c.crc }

// Checksum is a one-shot convenience wrapper equivalent to
// NewContext().Update(data).Current().
func Checksum(data []byte) uint32 {
	return updatePortable(0, data)
}

// ChecksumWithInitial is Checksum resuming from a non-zero running value,
// equivalent to NewContextWithInitial(initial).Update(data).Current().
func ChecksumWithInitial(initial uint32, data []byte) uint32 {
	return updatePortable(initial, data)
}

func updatePortable(current uint32, data []byte) uint32 {
	crc := ^current
	for _, b := range data {
		crc = (crc >> 8) ^ tables.CRC32Table[byte(crc)^b]
	}
	return ^crc
}
