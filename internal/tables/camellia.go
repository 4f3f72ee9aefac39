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

// Package tables holds the lookup tables the block/stream dispatchers in
// this module share: the Camellia substitution boxes folded with their
// round-function diffusion, the CRC32 byte tables used by the portable
// back-end, and the SHA round constants. None of these depend on CPU
// features; they exist so the generation logic lives in exactly one place
// instead of being copy-pasted into every back-end file.
package tables

// CamelliaSBox0 is Camellia's single literal substitution box. sbox_1,
// sbox_2 and sbox_3 are all byte-rotations of this table, and the F
// function is built entirely out of these four.
var CamelliaSBox0 = [256]byte{
	112, 130, 44, 236, 179, 39, 192, 229, 228, 133, 87, 53, 234, 12, 174, 65,
	35, 239, 107, 147, 69, 25, 165, 33, 237, 14, 79, 78, 29, 101, 146, 189,
	134, 184, 175, 143, 124, 235, 31, 206, 62, 48, 220, 95, 94, 197, 11, 26,
	166, 225, 57, 202, 213, 71, 93, 61, 217, 1, 90, 214, 81, 86, 108, 77,
	139, 13, 154, 102, 251, 204, 176, 45, 116, 18, 43, 32, 240, 177, 132, 153,
	223, 76, 203, 194, 52, 126, 118, 5, 109, 183, 169, 49, 209, 23, 4, 215,
	20, 88, 58, 97, 222, 27, 17, 28, 50, 15, 156, 22, 83, 24, 242, 34,
	254, 68, 207, 178, 195, 181, 122, 145, 36, 8, 232, 168, 96, 252, 105, 80,
	170, 208, 160, 125, 161, 137, 98, 151, 84, 91, 30, 149, 224, 255, 100, 210,
	16, 196, 0, 72, 163, 247, 117, 219, 138, 3, 230, 218, 9, 63, 221, 148,
	135, 92, 131, 2, 205, 74, 144, 51, 115, 103, 246, 243, 157, 127, 191, 226,
	82, 155, 216, 38, 200, 55, 198, 59, 129, 150, 111, 75, 19, 190, 99, 46,
	233, 121, 167, 140, 159, 110, 188, 142, 41, 245, 249, 182, 47, 253, 180, 89,
	120, 152, 6, 106, 231, 70, 113, 186, 212, 37, 171, 66, 136, 162, 141, 250,
	114, 7, 185, 85, 248, 238, 172, 10, 54, 73, 42, 104, 60, 56, 241, 164,
	64, 40, 211, 123, 187, 201, 67, 193, 21, 227, 173, 244, 119, 199, 128, 158,
}

var (
	CamelliaSBox1 [256]byte
	CamelliaSBox2 [256]byte
	CamelliaSBox3 [256]byte

	// CamelliaSBox64 are the eight pre-combined 64-bit scatter tables that
	// fold the F function's P-layer diffusion into the table lookup, so a
	// round only costs eight loads and seven xors instead of four sbox
	// lookups plus an explicit linear layer.
	CamelliaSBox64 [8][256]uint64
)

func init() {
	for i := 0; i < 256; i++ {
		s0 := CamelliaSBox0[i]
		CamelliaSBox1[i] = s0<<1 | s0>>7
		CamelliaSBox2[i] = s0<<7 | s0>>1
	}
	for i := 0; i < 256; i++ {
		CamelliaSBox3[i] = CamelliaSBox0[byte(i<<1|i>>7)]
	}
	for i := 0; i < 256; i++ {
		s0 := uint64(CamelliaSBox0[i])
		s1 := uint64(CamelliaSBox1[i])
		s2 := uint64(CamelliaSBox2[i])
		s3 := uint64(CamelliaSBox3[i])
		CamelliaSBox64[0][i] = 0x0100000100010101 * s0
		CamelliaSBox64[1][i] = 0x0000010101010100 * s1
		CamelliaSBox64[2][i] = 0x0001010001010001 * s2
		CamelliaSBox64[3][i] = 0x0101000001000101 * s3
		CamelliaSBox64[4][i] = 0x0101010001010100 * s1
		CamelliaSBox64[5][i] = 0x0101000101010001 * s2
		CamelliaSBox64[6][i] = 0x0100010101000101 * s3
		CamelliaSBox64[7][i] = 0x0001010100010101 * s0
	}
}
