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

package tables

// CRC32Poly is the reflected form of the IEEE 802.3 polynomial 0x04C11DB7,
// the one every "CRC-32" implementation in the wild actually computes
// against (zlib, gzip, PNG, ...).
const CRC32Poly uint32 = 0xEDB88320

// CRC32Table is the standard reflected byte table: table[i] is the CRC of
// the single byte i run through eight division steps. The portable and
// gather back-ends both index into this table; the Barrett/CLMUL back-end
// still falls back to it for the tail shorter than one 16-byte lane.
var CRC32Table [256]uint32

// CRC32Table8 is the slicing-by-8 extension of CRC32Table: table n folds
// n+1 bytes of table0 lookups into one, so the gather back-end can
// process eight bytes of input per step instead of one. Built the same
// recursive way arkana's crc32_table_n is: table_n[i] = (table_n-1[i]>>8)
// ^ table0[table_n-1[i]&0xFF].
var CRC32Table8 [8][256]uint32

func init() {
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for b := 0; b < 8; b++ {
			if c&1 != 0 {
				c = (c >> 1) ^ CRC32Poly
			} else {
				c >>= 1
			}
		}
		CRC32Table[i] = c
	}

	CRC32Table8[0] = CRC32Table
	for n := 1; n < 8; n++ {
		prev := CRC32Table8[n-1]
		for i := 0; i < 256; i++ {
			v := prev[i]
			CRC32Table8[n][i] = (v >> 8) ^ CRC32Table[v&0xFF]
		}
	}
}
