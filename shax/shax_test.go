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

package shax

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

func backends() []Backend { return []Backend{BackendPortable, BackendSIMD} }

// The classic FIPS 180-4 two-block message, which forces SHA-1/224/256
// into their padding-overflow branch (length 56 is past block-8).
const twoBlockMsg = "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"

func TestSHA1Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{twoBlockMsg, "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
	}
	for _, c := range cases {
		want := hexBytes(t, c.want)
		for _, b := range backends() {
			ctx, err := NewSHA1ContextWithBackend(b)
			if err != nil {
				continue
			}
			ctx.Write([]byte(c.in))
			sum, err := ctx.Sum()
			if err != nil {
				t.Fatalf("backend %s: %s", b, err)
			}
			if !bytes.Equal(sum[:], want) {
				t.Errorf("backend %s SHA1(%q) = %x, want %x", b, c.in, sum, want)
			}
			ctx.Close()
		}
	}
}

func TestSHA256Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{twoBlockMsg, "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	}
	for _, c := range cases {
		want := hexBytes(t, c.want)
		for _, b := range backends() {
			ctx, err := NewSHA256ContextWithBackend(b)
			if err != nil {
				continue
			}
			ctx.Write([]byte(c.in))
			sum, err := ctx.Sum()
			if err != nil {
				t.Fatalf("backend %s: %s", b, err)
			}
			if !bytes.Equal(sum, want) {
				t.Errorf("backend %s SHA256(%q) = %x, want %x", b, c.in, sum, want)
			}
			ctx.Close()
		}
	}
}

func TestSHA224Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f"},
		{"abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
	}
	for _, c := range cases {
		want := hexBytes(t, c.want)
		for _, b := range backends() {
			ctx, err := NewSHA224ContextWithBackend(b)
			if err != nil {
				continue
			}
			ctx.Write([]byte(c.in))
			sum, err := ctx.Sum()
			if err != nil {
				t.Fatalf("backend %s: %s", b, err)
			}
			if len(sum) != 28 {
				t.Fatalf("SHA224 digest length = %d, want 28", len(sum))
			}
			if !bytes.Equal(sum, want) {
				t.Errorf("backend %s SHA224(%q) = %x, want %x", b, c.in, sum, want)
			}
			ctx.Close()
		}
	}
}

func TestSHA512Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{"abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, c := range cases {
		want := hexBytes(t, c.want)
		for _, b := range backends() {
			ctx, err := NewSHA512ContextWithBackend(b)
			if err != nil {
				continue
			}
			ctx.Write([]byte(c.in))
			sum, err := ctx.Sum()
			if err != nil {
				t.Fatalf("backend %s: %s", b, err)
			}
			if !bytes.Equal(sum, want) {
				t.Errorf("backend %s SHA512(%q) = %x, want %x", b, c.in, sum, want)
			}
			ctx.Close()
		}
	}
}

func TestSHA384Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"},
		{"abc", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
	}
	for _, c := range cases {
		want := hexBytes(t, c.want)
		for _, b := range backends() {
			ctx, err := NewSHA384ContextWithBackend(b)
			if err != nil {
				continue
			}
			ctx.Write([]byte(c.in))
			sum, err := ctx.Sum()
			if err != nil {
				t.Fatalf("backend %s: %s", b, err)
			}
			if len(sum) != 48 {
				t.Fatalf("SHA384 digest length = %d, want 48", len(sum))
			}
			if !bytes.Equal(sum, want) {
				t.Errorf("backend %s SHA384(%q) = %x, want %x", b, c.in, sum, want)
			}
			ctx.Close()
		}
	}
}

// TestSHA224OneMillionA exercises a long message (15,625 block
// compressions, ending exactly on a block boundary so the padding fills
// one fresh block) with the classic one-million-repeated-'a' vector.
func TestSHA224OneMillionA(t *testing.T) {
	want := hexBytes(t, "20794655980c91d8bbb4c1ea97618a4bf03f42581948b2ee4ee7ad67")
	msg := bytes.Repeat([]byte("a"), 1000000)
	for _, b := range backends() {
		ctx, err := NewSHA224ContextWithBackend(b)
		if err != nil {
			continue
		}
		ctx.Write(msg)
		sum, err := ctx.Sum()
		if err != nil {
			t.Fatalf("backend %s: %s", b, err)
		}
		if !bytes.Equal(sum, want) {
			t.Errorf("backend %s SHA224(10^6 'a') = %x, want %x", b, sum, want)
		}
		ctx.Close()
	}
}

// TestWriteIsChunkAgnostic checks that splitting the same input across
// many small Write calls (straddling block boundaries at awkward
// offsets) produces the same digest as a single Write.
func TestWriteIsChunkAgnostic(t *testing.T) {
	msg := bytes.Repeat([]byte("0123456789"), 40) // 400 bytes

	one := NewSHA256Context()
	one.Write(msg)
	wantSum, _ := one.Sum()

	chunked := NewSHA256Context()
	for i := 0; i < len(msg); {
		n := 7
		if i+n > len(msg) {
			n = len(msg) - i
		}
		chunked.Write(msg[i : i+n])
		i += n
	}
	gotSum, _ := chunked.Sum()

	if !bytes.Equal(wantSum, gotSum) {
		t.Fatalf("chunked write produced a different digest: %x vs %x", gotSum, wantSum)
	}
}

func TestWriteAfterSumFails(t *testing.T) {
	ctx := NewSHA1Context()
	ctx.Write([]byte("x"))
	if _, err := ctx.Sum(); err != nil {
		t.Fatalf("first Sum: %s", err)
	}
	if _, err := ctx.Write([]byte("y")); err != errcrypto.ErrAlreadyFinalized {
		t.Fatalf("Write after Sum = %v, want ErrAlreadyFinalized", err)
	}
	if _, err := ctx.Sum(); err != errcrypto.ErrAlreadyFinalized {
		t.Fatalf("second Sum = %v, want ErrAlreadyFinalized", err)
	}
}
