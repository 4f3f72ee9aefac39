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
	"encoding/binary"
	"math/bits"

	"github.com/cryptofast/cryptofast/errcrypto"
	"github.com/cryptofast/cryptofast/internal/tables"
	"github.com/cryptofast/cryptofast/internal/zeroize"
)

const sha512BlockSize = 128

var sha512IV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var sha384IV = [8]uint64{
	0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
	0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
}

// SHA512Context is a streaming SHA-512 digest. The zero value is not
// usable; construct one with NewSHA512Context or NewSHA512ContextWithBackend.
type SHA512Context struct {
	h         [8]uint64
	buf       [sha512BlockSize]byte
	buflen    int
	length    uint64 // bytes absorbed so far; Sum encodes length*8 in the low 64 bits of the length field
	backend   Backend
	truncate  bool
	finalized bool
}

// NewSHA512Context returns a context ready to absorb input, picking the
// backend automatically from the probed CPU features.
func NewSHA512Context() *SHA512Context {
	c, _ := NewSHA512ContextWithBackend(BackendAuto)
	return c
}

// NewSHA512ContextWithBackend is NewSHA512Context with an explicit backend.
func NewSHA512ContextWithBackend(backend Backend) (*SHA512Context, error) {
	resolved, err := resolve(backend)
	if err != nil {
		return nil, err
	}
	return &SHA512Context{h: sha512IV, backend: resolved}, nil
}

// NewSHA384Context returns a SHA-384 context: the same compression
// function as SHA-512 with a distinct initial state and a truncated,
// 48-byte digest.
func NewSHA384Context() *SHA512Context {
	c, _ := NewSHA512ContextWithBackend(BackendAuto)
	c.h = sha384IV
	c.truncate = true
	return c
}

// NewSHA384ContextWithBackend is NewSHA384Context with an explicit backend.
func NewSHA384ContextWithBackend(backend Backend) (*SHA512Context, error) {
	c, err := NewSHA512ContextWithBackend(backend)
	if err != nil {
		return nil, err
	}
	c.h = sha384IV
	c.truncate = true
	return c, nil
}

// Backend reports the backend this context dispatches to.
func (c *SHA512Context) Backend() Backend { return c.backend }

// Write absorbs more input. It returns ErrAlreadyFinalized once Sum has
// been called.
func (c *SHA512Context) Write(p []byte) (int, error) {
	if c.finalized {
		return 0, errcrypto.ErrAlreadyFinalized
	}
	n := len(p)
	c.length += uint64(n)

	if c.buflen > 0 {
		take := sha512BlockSize - c.buflen
		if take > len(p) {
			take = len(p)
		}
		copy(c.buf[c.buflen:], p[:take])
		c.buflen += take
		p = p[take:]
		if c.buflen == sha512BlockSize {
			sha512Compress(&c.h, c.buf[:], c.backend)
			c.buflen = 0
		}
	}

	for len(p) >= sha512BlockSize {
		sha512Compress(&c.h, p[:sha512BlockSize], c.backend)
		p = p[sha512BlockSize:]
	}

	if len(p) > 0 {
		c.buflen = copy(c.buf[:], p)
	}
	return n, nil
}

// Sum finalizes the digest. For a SHA-384 context the returned slice is
// truncated to 48 bytes; for SHA-512 it is the full 64 bytes.
func (c *SHA512Context) Sum() ([]byte, error) {
	if c.finalized {
		return nil, errcrypto.ErrAlreadyFinalized
	}
	c.finalized = true

	bitLen := c.length * 8
	c.buf[c.buflen] = 0x80
	c.buflen++
	if c.buflen > sha512BlockSize-16 {
		for c.buflen < sha512BlockSize {
			c.buf[c.buflen] = 0
			c.buflen++
		}
		sha512Compress(&c.h, c.buf[:], c.backend)
		c.buflen = 0
	}
	for c.buflen < sha512BlockSize-16 {
		c.buf[c.buflen] = 0
		c.buflen++
	}
	// The upper 64 bits of the 128-bit bit-length field are always zero
	// at realistic message sizes.
	binary.BigEndian.PutUint64(c.buf[sha512BlockSize-16:], 0)
	binary.BigEndian.PutUint64(c.buf[sha512BlockSize-8:], bitLen)
	sha512Compress(&c.h, c.buf[:], c.backend)

	out := make([]byte, 64)
	for i, v := range c.h {
		binary.BigEndian.PutUint64(out[i*8:], v)
	}
	if c.truncate {
		return out[:48], nil
	}
	return out, nil
}

// Close zeroizes the running state.
func (c *SHA512Context) Close() {
	zeroize.Struct(c)
}

func sha512Compress(h *[8]uint64, block []byte, backend Backend) {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(block[i*8:])
	}
	if backend == BackendSIMD {
		sha512ExpandSIMD(&w)
	} else {
		for t := 16; t < 80; t++ {
			s0 := bits.RotateLeft64(w[t-15], -1) ^ bits.RotateLeft64(w[t-15], -8) ^ (w[t-15] >> 7)
			s1 := bits.RotateLeft64(w[t-2], -19) ^ bits.RotateLeft64(w[t-2], -61) ^ (w[t-2] >> 6)
			w[t] = w[t-16] + s0 + w[t-7] + s1
		}
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for t := 0; t < 80; t++ {
		s1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + tables.SHA512K[t] + w[t]
		s0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		hh, g, f, e = g, f, e, d+t1
		d, c, b, a = c, b, a, t1+t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// sha512ExpandSIMD mirrors sha256ExpandSIMD, four 64-bit lanes at a time.
func sha512ExpandSIMD(w *[80]uint64) {
	for t := 16; t < 80; t += 4 {
		var lane [4]uint64
		for i := 0; i < 4; i++ {
			j := t + i
			lane[i] = w[j-16] + w[j-7]
		}
		for i := 0; i < 4; i++ {
			j := t + i
			s0 := bits.RotateLeft64(w[j-15], -1) ^ bits.RotateLeft64(w[j-15], -8) ^ (w[j-15] >> 7)
			s1 := bits.RotateLeft64(w[j-2], -19) ^ bits.RotateLeft64(w[j-2], -61) ^ (w[j-2] >> 6)
			w[j] = lane[i] + s0 + s1
		}
	}
}
