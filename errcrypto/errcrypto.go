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

// Package errcrypto holds the sentinel errors shared by camellia, crc32x
// and shax, so callers can errors.Is against one stable set of values
// instead of each package minting its own.
package errcrypto

import "errors"

var (
	// ErrInvalidLength is returned when an ECB-mode buffer is not a
	// multiple of the cipher's block size.
	ErrInvalidLength = errors.New("cryptofast: length must be a multiple of the block size")

	// ErrAlreadyFinalized is returned when bytes are written to a hash
	// context, or a digest is requested twice, after Sum has already
	// consumed the padding block.
	ErrAlreadyFinalized = errors.New("cryptofast: hash context already finalized")

	// ErrUnsupportedBackend is returned by the explicit-backend
	// constructors when the requested backend is not implemented for the
	// running GOARCH, or the requested backend requires CPU features the
	// process does not have.
	ErrUnsupportedBackend = errors.New("cryptofast: backend not supported")

	// ErrInvalidKeySize is returned when a Camellia key is not 16, 24 or
	// 32 bytes.
	ErrInvalidKeySize = errors.New("cryptofast: camellia key must be 16, 24 or 32 bytes")
)
