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

package camellia

import (
	"github.com/cryptofast/cryptofast/errcrypto"
	"github.com/cryptofast/cryptofast/internal/cpuid"
	"github.com/cryptofast/cryptofast/internal/simd"
)

// Backend selects which lane width the block loop processes at a time.
// They all compute the identical Feistel network; BackendAuto picks the
// widest one the CPU (and the remaining block count) supports.
type Backend int

const (
	// BackendAuto lets the context pick a backend from the probed CPU
	// features: BackendSliced32 with AVX2 and AES-NI, BackendSIMD8 with
	// AVX2 alone, falling back to BackendPortable on anything that isn't
	// amd64 with AVX2.
	BackendAuto Backend = iota
	// BackendPortable processes one block at a time. Always available.
	BackendPortable
	// BackendSIMD8 processes eight blocks per iteration using eight-lane
	// vectors, mirroring an AVX2 implementation's native lane width.
	BackendSIMD8
	// BackendSliced32 processes thirty-two blocks per iteration as four
	// groups of eight lanes, mirroring an AVX-512-width implementation.
	BackendSliced32
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendPortable:
		return "portable"
	case BackendSIMD8:
		return "simd8"
	case BackendSliced32:
		return "sliced32"
	default:
		return "unknown"
	}
}

// resolve turns BackendAuto into a concrete backend and validates any
// explicit request against the running CPU's feature set.
func resolve(requested Backend) (Backend, error) {
	switch requested {
	case BackendAuto:
		feat := cpuid.Probe()
		if feat.AVX2 && feat.AESNI {
			return BackendSliced32, nil
		}
		if feat.AVX2 {
			return BackendSIMD8, nil
		}
		return BackendPortable, nil
	case BackendPortable:
		return BackendPortable, nil
	case BackendSIMD8:
		if !cpuid.Probe().SSE41 {
			return 0, errcrypto.ErrUnsupportedBackend
		}
		return BackendSIMD8, nil
	case BackendSliced32:
		if !cpuid.Probe().AVX2 {
			return 0, errcrypto.ErrUnsupportedBackend
		}
		return BackendSliced32, nil
	default:
		return 0, errcrypto.ErrUnsupportedBackend
	}
}

// blockFunc processes one 16-byte block (l, r halves) under a key schedule.
type blockFunc func(l, r uint64) (uint64, uint64)

func smallBlockFunc(kv *KeyVectorSmall) blockFunc {
	return func(l, r uint64) (uint64, uint64) { return processBlockSmall(l, r, kv) }
}

func largeBlockFunc(kv *KeyVectorLarge) blockFunc {
	return func(l, r uint64) (uint64, uint64) { return processBlockLarge(l, r, kv) }
}

// runBlocks processes n consecutive 16-byte blocks starting at loader(i),
// storing the cipher's output halves via storer(i, l, r), batching the
// scalar Feistel network across simd.Vec64x8 lanes according to backend.
// Every backend computes byte-identical output; only the batch granularity
// differs.
func runBlocks(backend Backend, n int, loader func(i int) (uint64, uint64), storer func(i int, l, r uint64), block blockFunc) {
	switch backend {
	case BackendSIMD8:
		i := 0
		for ; i+8 <= n; i += 8 {
			var ls, rs simd.Vec64x8
			for j := 0; j < 8; j++ {
				ls[j], rs[j] = loader(i + j)
			}
			for j := 0; j < 8; j++ {
				ls[j], rs[j] = block(ls[j], rs[j])
			}
			for j := 0; j < 8; j++ {
				storer(i+j, ls[j], rs[j])
			}
		}
		for ; i < n; i++ {
			l, r := loader(i)
			nl, nr := block(l, r)
			storer(i, nl, nr)
		}
	case BackendSliced32:
		i := 0
		for ; i+32 <= n; i += 32 {
			var ls, rs [4]simd.Vec64x8
			for g := 0; g < 4; g++ {
				for j := 0; j < 8; j++ {
					ls[g][j], rs[g][j] = loader(i + g*8 + j)
				}
			}
			for g := 0; g < 4; g++ {
				for j := 0; j < 8; j++ {
					ls[g][j], rs[g][j] = block(ls[g][j], rs[g][j])
				}
			}
			for g := 0; g < 4; g++ {
				for j := 0; j < 8; j++ {
					storer(i+g*8+j, ls[g][j], rs[g][j])
				}
			}
		}
		for ; i < n; i++ {
			l, r := loader(i)
			nl, nr := block(l, r)
			storer(i, nl, nr)
		}
	default: // BackendPortable
		for i := 0; i < n; i++ {
			l, r := loader(i)
			nl, nr := block(l, r)
			storer(i, nl, nr)
		}
	}
}
