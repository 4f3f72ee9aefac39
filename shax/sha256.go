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

const sha256BlockSize = 64

var sha256IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha224IV = [8]uint32{
	0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
	0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
}

// SHA256Context is a streaming SHA-256 digest. The zero value is not
// usable; construct one with NewSHA256Context or NewSHA256ContextWithBackend.
type SHA256Context struct {
	h         [8]uint32
	buf       [sha256BlockSize]byte
	buflen    int
	length    uint64
	backend   Backend
	truncate  bool
	finalized bool
}

// NewSHA256Context returns a context ready to absorb input, picking the
// backend automatically from the probed CPU features.
func NewSHA256Context() *SHA256Context {
	c, _ := NewSHA256ContextWithBackend(BackendAuto)
	return c
}

// NewSHA256ContextWithBackend is NewSHA256Context with an explicit backend.
func NewSHA256ContextWithBackend(backend Backend) (*SHA256Context, error) {
	resolved, err := resolve(backend)
	if err != nil {
		return nil, err
	}
	return &SHA256Context{h: sha256IV, backend: resolved}, nil
}

// NewSHA224Context returns a SHA-224 context: the same compression
// function as SHA-256 with a distinct initial state and a truncated,
// 28-byte digest.
func NewSHA224Context() *SHA256Context {
	c, _ := NewSHA256ContextWithBackend(BackendAuto)
	c.h = sha224IV
	c.truncate = true
	return c
}

// NewSHA224ContextWithBackend is NewSHA224Context with an explicit backend.
func NewSHA224ContextWithBackend(backend Backend) (*SHA256Context, error) {
	c, err := NewSHA256ContextWithBackend(backend)
	if err != nil {
		return nil, err
	}
	c.h = sha224IV
	c.truncate = true
	return c, nil
}

// Backend reports the backend this context dispatches to.
func (c *SHA256Context) Backend() Backend { return c.backend }

// Write absorbs more input. It returns ErrAlreadyFinalized once Sum has
// been called.
func (c *SHA256Context) Write(p []byte) (int, error) {
	if c.finalized {
		return 0, errcrypto.ErrAlreadyFinalized
	}
	n := len(p)
	c.length += uint64(n)

	if c.buflen > 0 {
		take := sha256BlockSize - c.buflen
		if take > len(p) {
			take = len(p)
		}
		copy(c.buf[c.buflen:], p[:take])
		c.buflen += take
		p = p[take:]
		if c.buflen == sha256BlockSize {
			sha256Compress(&c.h, c.buf[:], c.backend)
			c.buflen = 0
		}
	}

	for len(p) >= sha256BlockSize {
		sha256Compress(&c.h, p[:sha256BlockSize], c.backend)
		p = p[sha256BlockSize:]
	}

	if len(p) > 0 {
		c.buflen = copy(c.buf[:], p)
	}
	return n, nil
}

// Sum finalizes the digest. For a SHA-224 context the returned slice is
// truncated to 28 bytes; for SHA-256 it is the full 32 bytes.
func (c *SHA256Context) Sum() ([]byte, error) {
	if c.finalized {
		return nil, errcrypto.ErrAlreadyFinalized
	}
	c.finalized = true

	bitLen := c.length * 8
	c.buf[c.buflen] = 0x80
	c.buflen++
	if c.buflen > sha256BlockSize-8 {
		for c.buflen < sha256BlockSize {
			c.buf[c.buflen] = 0
			c.buflen++
		}
		sha256Compress(&c.h, c.buf[:], c.backend)
		c.buflen = 0
	}
	for c.buflen < sha256BlockSize-8 {
		c.buf[c.buflen] = 0
		c.buflen++
	}
	binary.BigEndian.PutUint64(c.buf[sha256BlockSize-8:], bitLen)
	sha256Compress(&c.h, c.buf[:], c.backend)

	out := make([]byte, 32)
	for i, v := range c.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	if c.truncate {
		return out[:28], nil
	}
	return out, nil
}

// Close zeroizes the running state.
func (c *SHA256Context) Close() {
	zeroize.Struct(c)
}

func sha256Compress(h *[8]uint32, block []byte, backend Backend) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	if backend == BackendSIMD {
		sha256ExpandSIMD(&w)
	} else {
		for t := 16; t < 64; t++ {
			s0 := bits.RotateLeft32(w[t-15], -7) ^ bits.RotateLeft32(w[t-15], -18) ^ (w[t-15] >> 3)
			s1 := bits.RotateLeft32(w[t-2], -17) ^ bits.RotateLeft32(w[t-2], -19) ^ (w[t-2] >> 10)
			w[t] = w[t-16] + s0 + w[t-7] + s1
		}
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for t := 0; t < 64; t++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + tables.SHA256K[t] + w[t]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
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

// sha256ExpandSIMD gathers the w[t-16] and w[t-7] terms of four
// consecutive schedule words as a vector. The sigma-transformed w[t-2]
// term falls within the batch being computed (distance 2 is less than
// the 4-wide batch), so it and the sigma-transformed w[t-15] term are
// added in with a scalar pass as each lane is written, in the same
// order the scalar expansion would compute them.
func sha256ExpandSIMD(w *[64]uint32) {
	for t := 16; t < 64; t += 4 {
		var lane [4]uint32
		for i := 0; i < 4; i++ {
			j := t + i
			lane[i] = w[j-16] + w[j-7]
		}
		for i := 0; i < 4; i++ {
			j := t + i
			s0 := bits.RotateLeft32(w[j-15], -7) ^ bits.RotateLeft32(w[j-15], -18) ^ (w[j-15] >> 3)
			s1 := bits.RotateLeft32(w[j-2], -17) ^ bits.RotateLeft32(w[j-2], -19) ^ (w[j-2] >> 10)
			w[j] = lane[i] + s0 + s1
		}
	}
}
