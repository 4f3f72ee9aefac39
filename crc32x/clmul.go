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

package crc32x

import (
	"encoding/binary"

	"github.com/cryptofast/cryptofast/internal/simd"
)

// Barrett-reduction fold constants for the 0xEDB88320 polynomial, after
// "Fast CRC Computation for Generic Polynomials Using PCLMULQDQ
// Instruction" (Gopal, Ozturk, Guilford et al., Intel, 2009). k1/k2 fold
// four 128-bit lanes into one four-lanes-back; k3/k4 fold one lane into
// the running 128-bit state one lane at a time; k4/k5 fold 128 bits down
// to 64; kP/kM are the reduction polynomial and its Barrett multiplier
// used to fold the last 64 bits down to the 32-bit CRC.
const (
	k1 uint64 = 0x154442bd4
	k2 uint64 = 0x1c6e41596
	k3 uint64 = 0x1751997d0
	k4 uint64 = 0xccaa009e
	k5 uint64 = 0x163cd6124
	kP uint64 = 0x1DB710641
	kM uint64 = 0x1f7011641
)

func readBlock(b []byte) (lo, hi uint64) {
	return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])
}

// fold128 computes CLMUL128(lo, ka) xor CLMUL128(hi, kb), folding a
// 128-bit state through one step of the reduction polynomial.
func fold128(lo, hi, ka, kb uint64) (nlo, nhi uint64) {
	h1, l1 := simd.CLMUL64(lo, ka)
	h2, l2 := simd.CLMUL64(hi, kb)
	return l1 ^ l2, h1 ^ h2
}

// updateCLMUL folds 16-byte lanes of data (four lanes at a time while at
// least 64 bytes remain) using carry-less multiply, then Barrett-reduces
// the residual 128-bit state to the 32-bit CRC. Buffers under 16 bytes,
// and the tail shorter than 16 bytes left after folding, run through the
// portable byte table instead.
func updateCLMUL(current uint32, data []byte) uint32 {
	if len(data) < 16 {
		return updatePortable(current, data)
	}

	lo, hi := uint64(^current), uint64(0)

	if len(data) >= 64 {
		l0, h0 := lo, hi
		var l1, h1, l2, h2, l3, h3 uint64

		bl, bh := readBlock(data[0:16])
		l0, h0 = l0^bl, h0^bh
		bl, bh = readBlock(data[16:32])
		l1, h1 = l1^bl, h1^bh
		bl, bh = readBlock(data[32:48])
		l2, h2 = l2^bl, h2^bh
		bl, bh = readBlock(data[48:64])
		l3, h3 = l3^bl, h3^bh
		data = data[64:]

		for len(data) >= 64 {
			l0, h0 = fold128(l0, h0, k1, k2)
			bl, bh = readBlock(data[0:16])
			l0, h0 = l0^bl, h0^bh

			l1, h1 = fold128(l1, h1, k1, k2)
			bl, bh = readBlock(data[16:32])
			l1, h1 = l1^bl, h1^bh

			l2, h2 = fold128(l2, h2, k1, k2)
			bl, bh = readBlock(data[32:48])
			l2, h2 = l2^bl, h2^bh

			l3, h3 = fold128(l3, h3, k1, k2)
			bl, bh = readBlock(data[48:64])
			l3, h3 = l3^bl, h3^bh

			data = data[64:]
		}

		lo, hi = l0, h0
		lo, hi = fold128(lo, hi, k3, k4)
		lo, hi = lo^l1, hi^h1
		lo, hi = fold128(lo, hi, k3, k4)
		lo, hi = lo^l2, hi^h2
		lo, hi = fold128(lo, hi, k3, k4)
		lo, hi = lo^l3, hi^h3
	} else {
		bl, bh := readBlock(data[0:16])
		lo, hi = lo^bl, hi^bh
		data = data[16:]
	}

	for len(data) >= 16 {
		lo, hi = fold128(lo, hi, k3, k4)
		bl, bh := readBlock(data[0:16])
		lo, hi = lo^bl, hi^bh
		data = data[16:]
	}

	// Fold 128 bits -> 96 bits: clmul(lo, k4) xor (state >> 64 bits).
	h1, l1 := simd.CLMUL64(lo, k4)
	s96lo := l1 ^ hi
	s96hi := h1

	// Fold 96 bits -> 64 bits: clmul(low32(s96), k5) xor (state >> 32 bits).
	// Only the low 64 bits of the result feed the Barrett step below, so
	// the high half is never materialized.
	_, l2 := simd.CLMUL64(s96lo&0xFFFFFFFF, k5)
	shiftedLo := s96lo>>32 | s96hi<<32
	s64lo := l2 ^ shiftedLo

	// Barrett reduction to 32 bits.
	_, t1lo := simd.CLMUL64(s64lo&0xFFFFFFFF, kM)
	_, t2lo := simd.CLMUL64(t1lo&0xFFFFFFFF, kP)
	rlo := t2lo ^ s64lo
	current = ^uint32(rlo >> 32)

	return updatePortable(current, data)
}
