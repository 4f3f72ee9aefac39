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

package simd

// CLMUL64 computes the 128-bit carry-less (polynomial, GF(2)[x]) product
// of a and b, the operation PCLMULQDQ performs on one lane pair. It is
// the textbook shift-and-xor binary multiply with the carry propagation
// removed, standing in for the hardware instruction on targets (and in
// tests) where no assembly implementation is available.
func CLMUL64(a, b uint64) (hi, lo uint64) {
	for i := uint(0); i < 64; i++ {
		if (b>>i)&1 != 0 {
			lo ^= a << i
			if i > 0 {
				hi ^= a >> (64 - i)
			}
		}
	}
	return hi, lo
}
