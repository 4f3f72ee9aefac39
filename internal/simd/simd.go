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

// Package simd holds the lane-width types the block-cipher and checksum
// back-ends batch their scalar work across.
package simd

// Vec64x8 groups eight 64-bit lanes, the batch width camellia's
// BackendSIMD8 and (four at a time) BackendSliced32 process per loop
// iteration.
type Vec64x8 [8]uint64
