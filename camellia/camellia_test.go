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
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/cryptofast/cryptofast/errcrypto"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %s", s, err)
	}
	return b
}

// RFC 3713 appendix A test vectors, one per key size.
var ecbVectors = []struct {
	name  string
	key   string
	plain string
	ct    string
}{
	{
		name:  "128-bit",
		key:   "0123456789abcdeffedcba9876543210",
		plain: "0123456789abcdeffedcba9876543210",
		ct:    "67673138549669730857065648eabe43",
	},
	{
		name:  "192-bit",
		key:   "0123456789abcdeffedcba98765432100011223344556677",
		plain: "0123456789abcdeffedcba9876543210",
		ct:    "b4993401b3e996f84ee5cee7d79b09b9",
	},
	{
		name:  "256-bit",
		key:   "0123456789abcdeffedcba987654321000112233445566778899aabbccddeeff",
		plain: "0123456789abcdeffedcba9876543210",
		ct:    "9acc237dff16d76c20ef7c919e3a7509",
	},
}

func allBackends() []Backend {
	return []Backend{BackendPortable, BackendSIMD8, BackendSliced32}
}

func TestECBEncryptVectors(t *testing.T) {
	for _, v := range ecbVectors {
		v := v
		t.Run(v.name, func(t *testing.T) {
			key := hexBytes(t, v.key)
			plain := hexBytes(t, v.plain)
			want := hexBytes(t, v.ct)

			for _, b := range allBackends() {
				ctx, err := NewECBEncryptContextWithBackend(key, b)
				if err != nil {
					t.Logf("backend %s unsupported on this CPU: %s", b, err)
					continue
				}
				got := make([]byte, BlockSize)
				if err := ctx.ProcessBlocks(got, plain); err != nil {
					t.Fatalf("backend %s: %s", b, err)
				}
				if !bytes.Equal(got, want) {
					t.Errorf("backend %s: got %x want %x", b, got, want)
				}
				ctx.Close()
			}
		})
	}
}

func TestECBDecryptRoundTrip(t *testing.T) {
	for _, v := range ecbVectors {
		v := v
		t.Run(v.name, func(t *testing.T) {
			key := hexBytes(t, v.key)
			plain := hexBytes(t, v.plain)
			ct := hexBytes(t, v.ct)

			for _, b := range allBackends() {
				dec, err := NewECBDecryptContextWithBackend(key, b)
				if err != nil {
					continue
				}
				got := make([]byte, BlockSize)
				if err := dec.ProcessBlocks(got, ct); err != nil {
					t.Fatalf("backend %s: %s", b, err)
				}
				if !bytes.Equal(got, plain) {
					t.Errorf("backend %s: got %x want %x", b, got, plain)
				}
				dec.Close()
			}
		})
	}
}

func TestECBBackendsAgree(t *testing.T) {
	key := hexBytes(t, ecbVectors[0].key)
	msg := bytes.Repeat([]byte{0x5a}, BlockSize*40+16)

	var results [][]byte
	for _, b := range allBackends() {
		ctx, err := NewECBEncryptContextWithBackend(key, b)
		if err != nil {
			continue
		}
		got := make([]byte, len(msg))
		if err := ctx.ProcessBlocks(got, msg); err != nil {
			t.Fatalf("backend %s: %s", b, err)
		}
		ctx.Close()
		results = append(results, got)
	}
	for i := 1; i < len(results); i++ {
		if !bytes.Equal(results[0], results[i]) {
			t.Fatalf("backend %d disagrees with portable backend", i)
		}
	}
}

func TestECBInvalidLength(t *testing.T) {
	key := hexBytes(t, ecbVectors[0].key)
	ctx, err := NewECBEncryptContext(key)
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	dst := make([]byte, 20)
	src := make([]byte, 20) // not a multiple of BlockSize
	if err := ctx.ProcessBlocks(dst, src); err != errcrypto.ErrInvalidLength {
		t.Fatalf("got %v, want ErrInvalidLength", err)
	}
}

func TestECBZeroLengthIsNoOp(t *testing.T) {
	key := hexBytes(t, ecbVectors[0].key)
	ctx, err := NewECBEncryptContext(key)
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	if err := ctx.ProcessBlocks(nil, nil); err != nil {
		t.Fatalf("ProcessBlocks with zero-length input: %s", err)
	}
}

func TestInvalidKeySize(t *testing.T) {
	_, err := NewECBEncryptContext(make([]byte, 10))
	if err != errcrypto.ErrInvalidKeySize {
		t.Fatalf("got %v, want ErrInvalidKeySize", err)
	}
}

// TestCTRAgainstECB checks the defining property of CTR mode directly
// against the RFC 3713 vectors: encrypting N all-zero blocks under CTR
// with nonce/IV X must equal ECB-encrypting the N successive counter
// blocks nonce||X||BE32(1..N) built the same way counterBlock does.
func TestCTRAgainstECB(t *testing.T) {
	key := hexBytes(t, ecbVectors[0].key)
	var iv [8]byte
	copy(iv[:], hexBytes(t, "0001020304050607"))
	var nonce [4]byte
	copy(nonce[:], hexBytes(t, "00000030"))

	const n = 5
	plain := make([]byte, BlockSize*n)

	ctr, err := NewCTRContext(key, iv, nonce)
	if err != nil {
		t.Fatal(err)
	}
	defer ctr.Close()
	ctrOut := make([]byte, len(plain))
	if err := ctr.ProcessBytes(ctrOut, plain, 0); err != nil {
		t.Fatal(err)
	}

	ecb, err := NewECBEncryptContext(key)
	if err != nil {
		t.Fatal(err)
	}
	defer ecb.Close()
	counters := make([]byte, len(plain))
	for i := 0; i < n; i++ {
		b := counters[i*BlockSize:]
		copy(b[0:4], nonce[:])
		copy(b[4:12], iv[:])
		b[12] = byte(uint32(i+1) >> 24)
		b[13] = byte(uint32(i+1) >> 16)
		b[14] = byte(uint32(i+1) >> 8)
		b[15] = byte(uint32(i + 1))
	}
	ecbOut := make([]byte, len(plain))
	if err := ecb.ProcessBlocks(ecbOut, counters); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(ctrOut, ecbOut) {
		t.Fatalf("CTR keystream does not match ECB of the counter blocks")
	}
}

func TestCTRRoundTripAndChunking(t *testing.T) {
	key := hexBytes(t, ecbVectors[0].key)
	var iv [8]byte
	var nonce [4]byte
	msg := bytes.Repeat([]byte{0x11, 0x22, 0x33, 0x44}, 100) // 400 bytes, 25 whole blocks

	enc, err := NewCTRContext(key, iv, nonce)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	ct := make([]byte, len(msg))
	if err := enc.ProcessBytes(ct, msg, 0); err != nil {
		t.Fatal(err)
	}

	// Decrypt in irregular chunks, not aligned to BlockSize, to exercise
	// the unaligned-offset path in ProcessBytes.
	dec, err := NewCTRContext(key, iv, nonce)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	got := make([]byte, len(ct))
	chunk := 17
	for pos := 0; pos < len(ct); pos += chunk {
		end := pos + chunk
		if end > len(ct) {
			end = len(ct)
		}
		if err := dec.ProcessBytes(got[pos:end], ct[pos:end], uint64(pos)); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("CTR round trip mismatch")
	}
}
