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

// BlockSize is the width of a Camellia block in bytes, fixed by RFC 3713
// regardless of key size.
const BlockSize = 16

// ECBContext encrypts or decrypts data one block at a time under RFC 3713
// Camellia, with no chaining between blocks. Construct one with
// NewECBEncryptContext or NewECBDecryptContext and release it with Close
// once the key schedule is no longer needed.
type ECBContext struct {
	small   *KeyVectorSmall
	large   *KeyVectorLarge
	backend Backend
}

func newECBContext(key []byte, encrypting bool, requested Backend) (*ECBContext, error) {
	backend, err := resolve(requested)
	if err != nil {
		return nil, err
	}
	c := &ECBContext{backend: backend}
	switch len(key) {
	case 16:
		kv := GenerateKeyVectorSmall(key, encrypting)
		c.small = &kv
	case 24, 32:
		kv := GenerateKeyVectorLarge(key, encrypting)
		c.large = &kv
	default:
		return nil, errcrypto.ErrInvalidKeySize
	}
	return c, nil
}

// NewECBEncryptContext derives an encrypting ECB context from a 128, 192
// or 256-bit key, picking the batch backend automatically.
func NewECBEncryptContext(key []byte) (*ECBContext, error) {
	return newECBContext(key, true, BackendAuto)
}

// NewECBDecryptContext derives a decrypting ECB context from a 128, 192
// or 256-bit key, picking the batch backend automatically.
func NewECBDecryptContext(key []byte) (*ECBContext, error) {
	return newECBContext(key, false, BackendAuto)
}

// NewECBEncryptContextWithBackend is NewECBEncryptContext with an explicit
// backend, returning ErrUnsupportedBackend if the running CPU lacks the
// features that backend requires.
func NewECBEncryptContextWithBackend(key []byte, backend Backend) (*ECBContext, error) {
	return newECBContext(key, true, backend)
}

// NewECBDecryptContextWithBackend is NewECBDecryptContext with an explicit
// backend, returning ErrUnsupportedBackend if the running CPU lacks the
// features that backend requires.
func NewECBDecryptContextWithBackend(key []byte, backend Backend) (*ECBContext, error) {
	return newECBContext(key, false, backend)
}

// Backend reports the batch backend this context dispatches to.
func (c *ECBContext) Backend() Backend { return c.backend }

// ProcessBlocks encrypts (or decrypts) src into dst. len(src) must be a
// multiple of BlockSize (zero is a valid no-op), and dst must be at
// least as long as src; dst and src may overlap exactly.
func (c *ECBContext) ProcessBlocks(dst, src []byte) error {
	if len(src)%BlockSize != 0 {
		return errcrypto.ErrInvalidLength
	}
	if len(dst) < len(src) {
		return errcrypto.ErrInvalidLength
	}
	n := len(src) / BlockSize
	loader := func(i int) (uint64, uint64) {
		b := src[i*BlockSize:]
		return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])
	}
	storer := func(i int, l, r uint64) {
		b := dst[i*BlockSize:]
		binary.LittleEndian.PutUint64(b[0:8], l)
		binary.LittleEndian.PutUint64(b[8:16], r)
	}
	if c.small != nil {
		runBlocks(c.backend, n, loader, storer, smallBlockFunc(c.small))
	} else {
		runBlocks(c.backend, n, loader, storer, largeBlockFunc(c.large))
	}
	return nil
}

// Close zeroizes the round key schedule. The context must not be used
// afterward.
func (c *ECBContext) Close() {
	if c.small != nil {
		zeroize.Struct(c.small)
	}
	if c.large != nil {
		zeroize.Struct(c.large)
	}
}
