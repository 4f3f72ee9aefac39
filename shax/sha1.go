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

const sha1BlockSize = 64

var sha1IV = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}

// SHA1Context is a streaming SHA-1 digest. The zero value is not usable;
// construct one with NewSHA1Context or NewSHA1ContextWithBackend.
type SHA1Context struct {
	h         [5]uint32
	buf       [sha1BlockSize]byte
	buflen    int
	length    uint64
	backend   Backend
	finalized bool
}

// NewSHA1Context returns a context ready to absorb input, picking the
// backend automatically from the probed CPU features.
func NewSHA1Context() *SHA1Context {
	c, _ := NewSHA1ContextWithBackend(BackendAuto)
	return c
}

// NewSHA1ContextWithBackend is NewSHA1Context with an explicit backend.
func NewSHA1ContextWithBackend(backend Backend) (*SHA1Context, error) {
	resolved, err := resolve(backend)
	if err != nil {
		return nil, err
	}
	return &SHA1Context{h: sha1IV, backend: resolved}, nil
}

// Backend reports the backend this context dispatches to.
func (c *SHA1Context) Backend() Backend { return c.backend }

// Write absorbs more input. It returns ErrAlreadyFinalized once Sum has
// been called.
func (c *SHA1Context) Write(p []byte) (int, error) {
	if c.finalized {
		return 0, errcrypto.ErrAlreadyFinalized
	}
	n := len(p)
	c.length += uint64(n)

	if c.buflen > 0 {
		take := sha1BlockSize - c.buflen
		if take > len(p) {
			take = len(p)
		}
		copy(c.buf[c.buflen:], p[:take])
		c.buflen += take
		p = p[take:]
		if c.buflen == sha1BlockSize {
			sha1Compress(&c.h, c.buf[:], c.backend)
			c.buflen = 0
		}
	}

	for len(p) >= sha1BlockSize {
		sha1Compress(&c.h, p[:sha1BlockSize], c.backend)
		p = p[sha1BlockSize:]
	}

	if len(p) > 0 {
		c.buflen = copy(c.buf[:], p)
	}
	return n, nil
}

// Sum finalizes the digest and returns it. The context cannot be written
// to again afterward; Sum itself returns ErrAlreadyFinalized if called
// more than once.
func (c *SHA1Context) Sum() ([20]byte, error) {
	var out [20]byte
	if c.finalized {
		return out, errcrypto.ErrAlreadyFinalized
	}
	c.finalized = true

	bitLen := c.length * 8
	c.buf[c.buflen] = 0x80
	c.buflen++
	if c.buflen > sha1BlockSize-8 {
		for c.buflen < sha1BlockSize {
			c.buf[c.buflen] = 0
			c.buflen++
		}
		sha1Compress(&c.h, c.buf[:], c.backend)
		c.buflen = 0
	}
	for c.buflen < sha1BlockSize-8 {
		c.buf[c.buflen] = 0
		c.buflen++
	}
	binary.BigEndian.PutUint64(c.buf[sha1BlockSize-8:], bitLen)
	sha1Compress(&c.h, c.buf[:], c.backend)

	for i, v := range c.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out, nil
}

// Close zeroizes the running state. It is safe to call at any point in
// the context's lifetime, finalized or not.
func (c *SHA1Context) Close() {
	zeroize.Struct(c)
}

// sha1Compress absorbs exactly one 64-byte block into h.
func sha1Compress(h *[5]uint32, block []byte, backend Backend) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	if backend == BackendSIMD {
		sha1ExpandSIMD(&w)
	} else {
		for t := 16; t < 80; t++ {
			w[t] = bits.RotateLeft32(w[t-3]^w[t-8]^w[t-14]^w[t-16], 1)
		}
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	for t := 0; t < 80; t++ {
		var f, k uint32
		switch {
		case t < 20:
			f = (b & c) | (^b & d)
			k = tables.SHA1K[0]
		case t < 40:
			f = b ^ c ^ d
			k = tables.SHA1K[1]
		case t < 60:
			f = (b & c) | (b & d) | (c & d)
			k = tables.SHA1K[2]
		default:
			f = b ^ c ^ d
			k = tables.SHA1K[3]
		}
		temp := bits.RotateLeft32(a, 5) + f + e + k + w[t]
		e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, temp
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}

// sha1ExpandSIMD computes w[16:80] four words at a time. The w[t-3] term
// reaches back into the word a real four-lane vectorization is still
// computing, so only the w[t-8], w[t-14] and w[t-16] terms are gathered
// as a vector; w[t-3] is folded in with a scalar pass once those three
// lanes land, which keeps this word-for-word identical to the scalar
// expansion.
func sha1ExpandSIMD(w *[80]uint32) {
	for t := 16; t < 80; t += 4 {
		var lane [4]uint32
		for i := 0; i < 4; i++ {
			j := t + i
			lane[i] = w[j-8] ^ w[j-14] ^ w[j-16]
		}
		for i := 0; i < 4; i++ {
			j := t + i
			w[j] = bits.RotateLeft32(lane[i]^w[j-3], 1)
		}
	}
}
