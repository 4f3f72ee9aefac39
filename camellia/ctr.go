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
	"encoding/binary"

	"github.com/cryptofast/cryptofast/errcrypto"
	"github.com/cryptofast/cryptofast/internal/zeroize"
)

// CTRContext implements RFC 5528 Camellia-CTR: the 8-byte IV and 4-byte
// nonce are fixed at construction, and ProcessBytes derives the keystream for arbitrary byte offsets into the stream so callers can
// process a message out of order or in chunks.
//
// Only the encryption key schedule is ever needed: CTR mode always
// encrypts the counter block and xors it with the data, for both
// directions.
type CTRContext struct {
	small   *KeyVectorSmall
	large   *KeyVectorLarge
	nonce   [4]byte
	iv      [8]byte
	backend Backend
}

func newCTRContext(key []byte, iv [8]byte, nonce [4]byte, requested Backend) (*CTRContext, error) {
	backend, err := resolve(requested)
	if err != nil {
		return nil, err
	}
	c := &CTRContext{nonce: nonce, iv: iv, backend: backend}
	switch len(key) {
	case 16:
		kv := GenerateKeyVectorSmall(key, true)
		c.small = &kv
	case 24, 32:
		kv := GenerateKeyVectorLarge(key, true)
		c.large = &kv
	default:
		return nil, errcrypto.ErrInvalidKeySize
	}
	return c, nil
}

// NewCTRContext derives a Camellia-CTR context from a 128, 192 or 256-bit
// key, an 8-byte RFC 5528 IV and a 4-byte nonce, picking the batch
// backend automatically.
func NewCTRContext(key []byte, iv [8]byte, nonce [4]byte) (*CTRContext, error) {
	return newCTRContext(key, iv, nonce, BackendAuto)
}

// NewCTRContextWithBackend is NewCTRContext with an explicit backend,
// returning ErrUnsupportedBackend if the running CPU lacks the features
// that backend requires.
func NewCTRContextWithBackend(key []byte, iv [8]byte, nonce [4]byte, backend Backend) (*CTRContext, error) {
	return newCTRContext(key, iv, nonce, backend)
}

// Backend reports the batch backend this context dispatches to.
func (c *CTRContext) Backend() Backend { return c.backend }

// counterBlock builds the RFC 5528 counter block for the blockIndex-th
// (0-based) 16-byte block of the keystream: nonce(4) || iv(8) ||
// big-endian counter(4), where the counter for block 0 is 1.
func (c *CTRContext) counterBlock(blockIndex uint64) (uint64, uint64) {
	var buf [16]byte
	copy(buf[0:4], c.nonce[:])
	copy(buf[4:12], c.iv[:])
	binary.BigEndian.PutUint32(buf[12:16], uint32(blockIndex+1))
	return binary.LittleEndian.Uint64(buf[0:8]), binary.LittleEndian.Uint64(buf[8:16])
}

// ProcessBytes xors src with the keystream starting at byte offset pos
// into the stream, writing the result to dst. pos need not be block
// aligned; dst and src may overlap exactly. The same context can be
// called repeatedly with increasing or arbitrary pos values since the
// keystream is a pure function of the block index.
func (c *CTRContext) ProcessBytes(dst, src []byte, pos uint64) error {
	if len(dst) < len(src) {
		return errcrypto.ErrInvalidLength
	}
	if len(src) == 0 {
		return nil
	}

	block := c.blockFunc()

	first := pos % BlockSize
	srcOff, dstOff := 0, 0
	remaining := len(src)
	blockIdx := pos / BlockSize

	if first != 0 {
		n := BlockSize - int(first)
		if n > remaining {
			n = remaining
		}
		kl, kr := c.counterBlock(blockIdx)
		l, r := block(kl, kr)
		var ks [16]byte
		binary.LittleEndian.PutUint64(ks[0:8], l)
		binary.LittleEndian.PutUint64(ks[8:16], r)
		for i := 0; i < n; i++ {
			dst[dstOff+i] = src[srcOff+i] ^ ks[int(first)+i]
		}
		srcOff += n
		dstOff += n
		remaining -= n
		blockIdx++
	}

	fullBlocks := remaining / BlockSize
	if fullBlocks > 0 {
		loader := func(i int) (uint64, uint64) { return c.counterBlock(blockIdx + uint64(i)) }
		storer := func(i int, l, r uint64) {
			b := dst[dstOff+i*BlockSize:]
			s := src[srcOff+i*BlockSize:]
			binary.LittleEndian.PutUint64(b[0:8], binary.LittleEndian.Uint64(s[0:8])^l)
			binary.LittleEndian.PutUint64(b[8:16], binary.LittleEndian.Uint64(s[8:16])^r)
		}
		runBlocks(c.backend, fullBlocks, loader, storer, block)
		srcOff += fullBlocks * BlockSize
		dstOff += fullBlocks * BlockSize
		remaining -= fullBlocks * BlockSize
		blockIdx += uint64(fullBlocks)
	}

	if remaining > 0 {
		kl, kr := c.counterBlock(blockIdx)
		l, r := block(kl, kr)
		var ks [16]byte
		binary.LittleEndian.PutUint64(ks[0:8], l)
		binary.LittleEndian.PutUint64(ks[8:16], r)
		for i := 0; i < remaining; i++ {
			dst[dstOff+i] = src[srcOff+i] ^ ks[i]
		}
	}
	return nil
}

func (c *CTRContext) blockFunc() blockFunc {
	if c.small != nil {
		return smallBlockFunc(c.small)
	}
	return largeBlockFunc(c.large)
}

// Close zeroizes the round key schedule. The context must not be used
// afterward.
func (c *CTRContext) Close() {
	if c.small != nil {
		zeroize.Struct(c.small)
	}
	if c.large != nil {
		zeroize.Struct(c.large)
	}
}
