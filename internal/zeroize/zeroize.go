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

// Package zeroize overwrites secret key material on context teardown in a
// way the compiler is not permitted to optimize away as a dead store.
//
// No assembly stub for a true volatile-store primitive is present in this
// module, so the barrier is built from two portable, well-known building
// blocks instead:
// a byte-at-a-time store loop, which the compiler cannot hoist or elide
// because it cannot prove the slice is unobserved, followed by
// runtime.KeepAlive to pin the backing array past the call site so the
// store is not dead-code-eliminated by escape analysis.
package zeroize

import (
	"runtime"

	"golang.org/x/exp/constraints"
)

// Bytes overwrites buf with zeros.
func Bytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// Words overwrites a slice of fixed-width integers with zeros, for
// secrets held as []uint32 / []uint64 rather than raw bytes.
func Words[T constraints.Integer](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// Struct overwrites *v with its zero value. Used for fixed-layout round
// key schedules, which are plain structs of uint64 fields rather than
// slices.
func Struct[T any](v *T) {
	var zero T
	*v = zero
	runtime.KeepAlive(v)
}
