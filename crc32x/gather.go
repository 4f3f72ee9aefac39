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
	"encoding/binary"

	"github.com/cryptofast/cryptofast/internal/tables"
)

// updateGather folds eight bytes of input per step by gathering across
// the eight slicing tables, instead of walking CRC32Table one byte at a
// time. It is an eight-way unrolling of the same recurrence, not a
// different algorithm, so it always agrees with updatePortable.
func updateGather(current uint32, data []byte) uint32 {
	crc := ^current
	for len(data) >= 8 {
		one := crc ^ binary.LittleEndian.Uint32(data[0:4])
		two := binary.LittleEndian.Uint32(data[4:8])
		crc = tables.CRC32Table8[7][byte(one)] ^
			tables.CRC32Table8[6][byte(one>>8)] ^
			tables.CRC32Table8[5][byte(one>>16)] ^
			tables.CRC32Table8[4][byte(one>>24)] ^
			tables.CRC32Table8[3][byte(two)] ^
			tables.CRC32Table8[2][byte(two>>8)] ^
			tables.CRC32Table8[1][byte(two>>16)] ^
			tables.CRC32Table8[0][byte(two>>24)]
		data = data[8:]
	}
	for _, b := range data {
		crc = (crc >> 8) ^ tables.CRC32Table[byte(crc)^b]
	}
	return ^crc
}
