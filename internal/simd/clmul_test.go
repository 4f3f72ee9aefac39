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

import "testing"

func TestCLMUL64Identity(t *testing.T) {
	hi, lo := CLMUL64(0x123456789abcdef0, 1)
	if hi != 0 || lo != 0x123456789abcdef0 {
		t.Fatalf("CLMUL64(a, 1) = (%x, %x), want (0, a)", hi, lo)
	}
}

func TestCLMUL64Zero(t *testing.T) {
	hi, lo := CLMUL64(0xffffffffffffffff, 0)
	if hi != 0 || lo != 0 {
		t.Fatalf("CLMUL64(a, 0) = (%x, %x), want (0, 0)", hi, lo)
	}
}

func TestCLMUL64Commutative(t *testing.T) {
	a, b := uint64(0xdeadbeefcafef00d), uint64(0x0102030405060708)
	h1, l1 := CLMUL64(a, b)
	h2, l2 := CLMUL64(b, a)
	if h1 != h2 || l1 != l2 {
		t.Fatalf("CLMUL64 not commutative: (%x,%x) vs (%x,%x)", h1, l1, h2, l2)
	}
}

// TestCLMUL64NoCarry checks the defining property that distinguishes
// carry-less multiply from integer multiply: multiplying two values
// whose bit patterns don't overlap when shifted must equal a plain
// shift-OR, since no carries ever propagate in GF(2)[x] arithmetic.
func TestCLMUL64NoCarry(t *testing.T) {
	// 0b101 (x^2 + 1) times 0b10 (x) = x^3 + x = 0b1010, matching
	// ordinary multiplication here only because there is no bit overlap
	// to carry.
	_, lo := CLMUL64(0b101, 0b10)
	if lo != 0b1010 {
		t.Fatalf("CLMUL64(0b101, 0b10) = %b, want %b", lo, 0b1010)
	}
}
