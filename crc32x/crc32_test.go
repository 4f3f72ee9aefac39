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
	"bytes"
	"fmt"
	"testing"
)

func allBackends() []Backend {
	return []Backend{BackendPortable, BackendGather, BackendCLMUL}
}

// The standard "check value" vectors for the reflected 0xEDB88320
// polynomial (CRC-32/ISO-HDLC), reproduced in every implementation's
// test suite, including Go's own hash/crc32.
var vectors = []struct {
	in   string
	want uint32
}{
	{"", 0x00000000},
	{"123456789", 0xCBF43926},
	{"a", 0xE8B7BE43},
	{"abc", 0x352441C2},
}

// TestChecksumZeroByteVectors covers spec.md's own zero-byte vectors:
// a single 0x00 byte and sixteen 0x00 bytes (one full Camellia-block's
// worth, chosen to also exercise the gather/CLMUL backends' first
// block-sized fold step).
func TestChecksumZeroByteVectors(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint32
	}{
		{make([]byte, 1), 0xD202EF8D},
		{make([]byte, 16), 0xD7D303E7},
	}
	for _, c := range cases {
		if got := Checksum(c.in); got != c.want {
			t.Errorf("Checksum(%d zero bytes) = %08x, want %08x", len(c.in), got, c.want)
		}
		for _, b := range allBackends() {
			ctx, err := NewContextWithBackend(0, b)
			if err != nil {
				continue
			}
			if got := ctx.Update(c.in).Current(); got != c.want {
				t.Errorf("backend %s Update(%d zero bytes) = %08x, want %08x", b, len(c.in), got, c.want)
			}
		}
	}
}

func TestChecksumVectors(t *testing.T) {
	for _, v := range vectors {
		got := Checksum([]byte(v.in))
		if got != v.want {
			t.Errorf("Checksum(%q) = %08x, want %08x", v.in, got, v.want)
		}
	}
}

func TestBackendsAgreeWithPortable(t *testing.T) {
	for _, v := range vectors {
		for _, b := range allBackends() {
			ctx, err := NewContextWithBackend(0, b)
			if err != nil {
				t.Logf("backend %s unsupported on this CPU: %s", b, err)
				continue
			}
			got := ctx.Update([]byte(v.in)).Current()
			if got != v.want {
				t.Errorf("backend %s: Update(%q) = %08x, want %08x", b, v.in, got, v.want)
			}
		}
	}
}

// TestLongBufferBoundaries exercises every length class each backend's
// fold loop branches on: under 16 bytes, under 64 bytes, an exact
// multiple of 64, and a multiple of 64 plus a ragged tail.
func TestLongBufferBoundaries(t *testing.T) {
	lengths := []int{0, 1, 8, 15, 16, 17, 63, 64, 65, 127, 128, 129, 1000, 4096 + 13}
	for _, n := range lengths {
		buf := bytes.Repeat([]byte{0xA5, 0x3C, 0x00, 0xFF}, (n/4)+1)[:n]
		want := updatePortable(0, buf)
		for _, b := range []Backend{BackendGather, BackendCLMUL} {
			ctx, err := NewContextWithBackend(0, b)
			if err != nil {
				continue
			}
			got := ctx.Update(buf).Current()
			if got != want {
				t.Errorf("len=%d backend=%s: got %08x want %08x", n, b, got, want)
			}
		}
	}
}

// TestInitialValueResumesChecksum checks that current() after zero
// updates equals the initial value passed in, and that feeding a split
// buffer through two contexts joined by that initial value agrees with
// a single context processing the whole buffer.
func TestInitialValueResumesChecksum(t *testing.T) {
	fresh := NewContextWithInitial(0x12345678)
	if got := fresh.Current(); got != 0x12345678 {
		t.Fatalf("Current() after zero updates = %08x, want %08x", got, 0x12345678)
	}

	data := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 50)
	whole := Checksum(data)

	half := len(data) / 2
	first := NewContext().Update(data[:half]).Current()
	resumed := NewContextWithInitial(first).Update(data[half:]).Current()
	if resumed != whole {
		t.Fatalf("resumed checksum = %08x, want %08x", resumed, whole)
	}

	if got := ChecksumWithInitial(first, data[half:]); got != whole {
		t.Fatalf("ChecksumWithInitial = %08x, want %08x", got, whole)
	}
}

func TestUpdateIsChainable(t *testing.T) {
	ctx := NewContext()
	full := ctx.Update([]byte("123456")).Update([]byte("789")).Current()
	want := Checksum([]byte("123456789"))
	if full != want {
		t.Errorf("chained Update = %08x, want %08x", full, want)
	}
}

func TestBackendString(t *testing.T) {
	cases := map[Backend]string{
		BackendAuto:     "auto",
		BackendPortable: "portable",
		BackendGather:   "gather",
		BackendCLMUL:    "clmul",
	}
	for b, want := range cases {
		if got := fmt.Sprint(b); got != want {
			t.Errorf("Backend(%d).String() = %q, want %q", b, got, want)
		}
	}
}
