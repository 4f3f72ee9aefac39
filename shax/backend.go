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

// Package shax implements the SHA-1 and SHA-2 (224/256/384/512) message
// digests as streaming contexts with a pure-Go portable compression loop
// and a message-schedule-vectorized back-end, dispatched the same way
// camellia and crc32x dispatch.
package shax

import (
	"github.com/cryptofast/cryptofast/errcrypto"
	"github.com/cryptofast/cryptofast/internal/cpuid"
)

// Backend selects how a context expands its message schedule.
type Backend int

const (
	// BackendAuto picks BackendSIMD on amd64 with SSE2 and
	// BackendPortable otherwise.
	BackendAuto Backend = iota
	// BackendPortable expands and consumes the message schedule one word
	// at a time.
	BackendPortable
	// BackendSIMD expands the message schedule four words at a time
	// using the same four-lane vectors an SSE2 implementation would,
	// then runs the identical scalar compression rounds.
	BackendSIMD
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendPortable:
		return "portable"
	case BackendSIMD:
		return "simd"
	default:
		return "unknown"
	}
}

func resolve(requested Backend) (Backend, error) {
	switch requested {
	case BackendAuto:
		if cpuid.Probe().SSE2 {
			return BackendSIMD, nil
		}
		return BackendPortable, nil
	case BackendPortable:
		return BackendPortable, nil
	case BackendSIMD:
		if !cpuid.Probe().SSE2 {
			return 0, errcrypto.ErrUnsupportedBackend
		}
		return BackendSIMD, nil
	default:
		return 0, errcrypto.ErrUnsupportedBackend
	}
}
