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

import "github.com/cryptofast/cryptofast/internal/tables"

// f is Camellia's round function: it mixes y with the round key, runs the
// four-rotation S-box scatter-table lookup (which folds the P-layer
// diffusion into the tables themselves), and xors the result into x.
func f(x, y, k uint64) uint64 {
	t := y ^ k
	v := tables.CamelliaSBox64[0][byte(t)] ^
		tables.CamelliaSBox64[1][byte(t>>8)] ^
		tables.CamelliaSBox64[2][byte(t>>16)] ^
		tables.CamelliaSBox64[3][byte(t>>24)] ^
		tables.CamelliaSBox64[4][byte(t>>32)] ^
		tables.CamelliaSBox64[5][byte(t>>40)] ^
		tables.CamelliaSBox64[6][byte(t>>48)] ^
		tables.CamelliaSBox64[7][byte(t>>56)]
	return x ^ v
}

// rotlBE1 rotates each of the four bytes packed in v one bit to the left,
// carrying between bytes as if v were a big-endian bit string rather than
// a little-endian machine word. Used only inside fl/flInv.
func rotlBE1(v uint32) uint32 {
	x := v & 0x80808080
	y := v &^ 0x80808080
	a := x<<17 | x>>15
	b := y << 1
	return a | b
}

func fl(l, k uint64) uint64 {
	ll, lr := uint32(l), uint32(l>>32)
	kl, kr := uint32(k), uint32(k>>32)
	lr ^= rotlBE1(ll & kl)
	ll ^= lr | kr
	return uint64(lr)<<32 | uint64(ll)
}

func flInv(r, k uint64) uint64 {
	rl, rr := uint32(r), uint32(r>>32)
	kl, kr := uint32(k), uint32(k>>32)
	rl ^= rr | kr
	rr ^= rotlBE1(rl & kl)
	return uint64(rr)<<32 | uint64(rl)
}

func prewhite(l, r, kl, kr uint64) (uint64, uint64) {
	return l ^ kl, r ^ kr
}

// postwhite folds Camellia's final round swap into the post-whitening
// step: ciphertext halves are (r^kl, l^kr), not (l^kl, r^kr).
func postwhite(l, r, kl, kr uint64) (uint64, uint64) {
	return r ^ kl, l ^ kr
}

// processBlockSmall runs the 18-round Feistel network for a 128-bit key.
func processBlockSmall(l, r uint64, kv *KeyVectorSmall) (uint64, uint64) {
	l, r = prewhite(l, r, kv.Kw1, kv.Kw2)
	r = f(r, l, kv.K1)
	l = f(l, r, kv.K2)
	r = f(r, l, kv.K3)
	l = f(l, r, kv.K4)
	r = f(r, l, kv.K5)
	l = f(l, r, kv.K6)
	l = fl(l, kv.Kl1)
	r = flInv(r, kv.Kl2)
	r = f(r, l, kv.K7)
	l = f(l, r, kv.K8)
	r = f(r, l, kv.K9)
	l = f(l, r, kv.K10)
	r = f(r, l, kv.K11)
	l = f(l, r, kv.K12)
	l = fl(l, kv.Kl3)
	r = flInv(r, kv.Kl4)
	r = f(r, l, kv.K13)
	l = f(l, r, kv.K14)
	r = f(r, l, kv.K15)
	l = f(l, r, kv.K16)
	r = f(r, l, kv.K17)
	l = f(l, r, kv.K18)
	return postwhite(l, r, kv.Kw3, kv.Kw4)
}

// processBlockLarge runs the 24-round Feistel network for a 192/256-bit key.
func processBlockLarge(l, r uint64, kv *KeyVectorLarge) (uint64, uint64) {
	l, r = prewhite(l, r, kv.Kw1, kv.Kw2)
	r = f(r, l, kv.K1)
	l = f(l, r, kv.K2)
	r = f(r, l, kv.K3)
	l = f(l, r, kv.K4)
	r = f(r, l, kv.K5)
	l = f(l, r, kv.K6)
	l = fl(l, kv.Kl1)
	r = flInv(r, kv.Kl2)
	r = f(r, l, kv.K7)
	l = f(l, r, kv.K8)
	r = f(r, l, kv.K9)
	l = f(l, r, kv.K10)
	r = f(r, l, kv.K11)
	l = f(l, r, kv.K12)
	l = fl(l, kv.Kl3)
	r = flInv(r, kv.Kl4)
	r = f(r, l, kv.K13)
	l = f(l, r, kv.K14)
	r = f(r, l, kv.K15)
	l = f(l, r, kv.K16)
	r = f(r, l, kv.K17)
	l = f(l, r, kv.K18)
	l = fl(l, kv.Kl5)
	r = flInv(r, kv.Kl6)
	r = f(r, l, kv.K19)
	l = f(l, r, kv.K20)
	r = f(r, l, kv.K21)
	l = f(l, r, kv.K22)
	r = f(r, l, kv.K23)
	l = f(l, r, kv.K24)
	return postwhite(l, r, kv.Kw3, kv.Kw4)
}
