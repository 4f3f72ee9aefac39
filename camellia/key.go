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
	"math/bits"
)

// KeyVectorSmall holds the 26 round subkeys RFC 3713 derives from a
// 128-bit key: two pairs of whitening keys, eighteen F-function keys,
// and two pairs of FL/FL^-1 keys.
type KeyVectorSmall struct {
	Kw1, Kw2                      uint64
	K1, K2, K3, K4, K5, K6        uint64
	Kl1, Kl2                      uint64
	K7, K8, K9, K10, K11, K12     uint64
	Kl3, Kl4                      uint64
	K13, K14, K15, K16, K17, K18  uint64
	Kw3, Kw4                      uint64
}

// KeyVectorLarge holds the 34 round subkeys RFC 3713 derives from a
// 192-bit or 256-bit key: the same structure as KeyVectorSmall, extended
// with six more F-function rounds and one more FL/FL^-1 pair.
type KeyVectorLarge struct {
	Kw1, Kw2                     uint64
	K1, K2, K3, K4, K5, K6       uint64
	Kl1, Kl2                     uint64
	K7, K8, K9, K10, K11, K12    uint64
	Kl3, Kl4                     uint64
	K13, K14, K15, K16, K17, K18 uint64
	Kl5, Kl6                     uint64
	K19, K20, K21, K22, K23, K24 uint64
	Kw3, Kw4                     uint64
}

// u128 is a 128-bit value split into two 64-bit limbs. Depending on
// context it is either "raw" (l/r are the two halves of a block or key as
// loaded straight off the wire, little-endian per word) or "numeric"
// (l is the low 64 bits and r the high 64 bits of the value read as one
// big big-endian integer). byteswap converts between the two; it is its
// own inverse.
type u128 struct{ l, r uint64 }

func (u u128) byteswap() u128 {
	return u128{bits.ReverseBytes64(u.r), bits.ReverseBytes64(u.l)}
}

// rotl rotates the 128-bit numeric value left by i bits (0 <= i < 128).
func (u u128) rotl(i uint) u128 {
	i &= 127
	sh := i & 63
	var xl, xr uint64
	if sh == 0 {
		xl, xr = u.l, u.r
	} else {
		xl = u.l<<sh | u.r>>(64-sh)
		xr = u.r<<sh | u.l>>(64-sh)
	}
	if i&64 != 0 {
		return u128{xr, xl}
	}
	return u128{xl, xr}
}

// sigma are RFC 3713's key-schedule constants (the fractional part of
// sqrt(2), sqrt(3), sqrt(5), sqrt(7), sqrt(11) and sqrt(13) in hex),
// pre-swapped into the raw little-endian-word domain the F function
// operates in, so the schedule below never has to special-case them.
var sigma = [6]uint64{
	bits.ReverseBytes64(0xA09E667F3BCC908B),
	bits.ReverseBytes64(0xB67AE8584CAA73B2),
	bits.ReverseBytes64(0xC6EF372FE94F82BE),
	bits.ReverseBytes64(0x54FF53A5F1D36F1C),
	bits.ReverseBytes64(0x10E527FADE682D1D),
	bits.ReverseBytes64(0xB05688C2B3E6C1FD),
}

func loadRaw128(b []byte) u128 {
	return u128{binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])}
}

// deriveKAKB runs the key-schedule Feistel network that produces KA (and,
// for 192/256-bit keys, KB) from KL and KR.
func deriveKAKB(kl, kr u128) (ka, kb u128) {
	t := u128{kl.l ^ kr.l, kl.r ^ kr.r}
	t.r = f(t.r, t.l, sigma[0])
	t.l = f(t.l, t.r, sigma[1])
	t.l ^= kl.l
	t.r ^= kl.r
	t.r = f(t.r, t.l, sigma[2])
	t.l = f(t.l, t.r, sigma[3])
	ka = t
	t.l ^= kr.l
	t.r ^= kr.r
	t.r = f(t.r, t.l, sigma[4])
	t.l = f(t.l, t.r, sigma[5])
	kb = t
	return
}

// sub returns the raw-domain 64-bit halves of src rotated left by n bits
// in the numeric domain.
func sub(src u128, n uint) (lo, hi uint64) {
	s := src.rotl(n).byteswap()
	return s.l, s.r
}

// GenerateKeyVectorSmall derives the encryption (or decryption, when
// encrypting is false) round keys for a 128-bit Camellia key.
func GenerateKeyVectorSmall(key []byte, encrypting bool) KeyVectorSmall {
	kl := loadRaw128(key[0:16]).byteswap()
	kr := u128{}
	ka, _ := deriveKAKB(kl.byteswap(), kr.byteswap())
	ka = ka.byteswap()

	var r KeyVectorSmall
	set := func(dst *uint64, src u128, n uint, half int) {
		lo, hi := sub(src, n)
		if half == 0 {
			*dst = lo
		} else {
			*dst = hi
		}
	}

	if encrypting {
		set(&r.Kw1, kl, 0, 0)
		set(&r.Kw2, kl, 0, 1)
		set(&r.K1, ka, 0, 0)
		set(&r.K2, ka, 0, 1)
		set(&r.K3, kl, 15, 0)
		set(&r.K4, kl, 15, 1)
		set(&r.K5, ka, 15, 0)
		set(&r.K6, ka, 15, 1)
		set(&r.Kl1, ka, 30, 0)
		set(&r.Kl2, ka, 30, 1)
		set(&r.K7, kl, 45, 0)
		set(&r.K8, kl, 45, 1)
		set(&r.K9, ka, 45, 0)
		_, k10 := sub(kl, 60)
		r.K10 = k10
		k11, _ := sub(ka, 60)
		r.K11 = k11
		_, k12 := sub(ka, 60)
		r.K12 = k12
		set(&r.Kl3, kl, 77, 0)
		set(&r.Kl4, kl, 77, 1)
		set(&r.K13, kl, 94, 0)
		set(&r.K14, kl, 94, 1)
		set(&r.K15, ka, 94, 0)
		set(&r.K16, ka, 94, 1)
		set(&r.K17, kl, 111, 0)
		set(&r.K18, kl, 111, 1)
		set(&r.Kw3, ka, 111, 0)
		set(&r.Kw4, ka, 111, 1)
	} else {
		set(&r.Kw3, kl, 0, 0)
		set(&r.Kw4, kl, 0, 1)
		set(&r.K18, ka, 0, 0)
		set(&r.K17, ka, 0, 1)
		set(&r.K16, kl, 15, 0)
		set(&r.K15, kl, 15, 1)
		set(&r.K14, ka, 15, 0)
		set(&r.K13, ka, 15, 1)
		set(&r.Kl4, ka, 30, 0)
		set(&r.Kl3, ka, 30, 1)
		set(&r.K12, kl, 45, 0)
		set(&r.K11, kl, 45, 1)
		set(&r.K10, ka, 45, 0)
		_, k9 := sub(kl, 60)
		r.K9 = k9
		k8, _ := sub(ka, 60)
		r.K8 = k8
		_, k7 := sub(ka, 60)
		r.K7 = k7
		set(&r.Kl2, kl, 77, 0)
		set(&r.Kl1, kl, 77, 1)
		set(&r.K6, kl, 94, 0)
		set(&r.K5, kl, 94, 1)
		set(&r.K4, ka, 94, 0)
		set(&r.K3, ka, 94, 1)
		set(&r.K2, kl, 111, 0)
		set(&r.K1, kl, 111, 1)
		set(&r.Kw1, ka, 111, 0)
		set(&r.Kw2, ka, 111, 1)
	}
	return r
}

// GenerateKeyVectorLarge derives the encryption (or decryption, when
// encrypting is false) round keys for a 192-bit or 256-bit Camellia key.
// key must be 24 or 32 bytes.
func GenerateKeyVectorLarge(key []byte, encrypting bool) KeyVectorLarge {
	kl := loadRaw128(key[0:16]).byteswap()

	var krRaw u128
	if len(key) == 24 {
		lo := binary.LittleEndian.Uint64(key[16:24])
		krRaw = u128{lo, ^lo}
	} else {
		krRaw = u128{binary.LittleEndian.Uint64(key[16:24]), binary.LittleEndian.Uint64(key[24:32])}
	}
	kr := krRaw.byteswap()

	ka, kb := deriveKAKB(kl.byteswap(), kr.byteswap())
	ka = ka.byteswap()
	kb = kb.byteswap()

	var r KeyVectorLarge
	set := func(dst *uint64, src u128, n uint, half int) {
		lo, hi := sub(src, n)
		if half == 0 {
			*dst = lo
		} else {
			*dst = hi
		}
	}

	if encrypting {
		set(&r.Kw1, kl, 0, 0)
		set(&r.Kw2, kl, 0, 1)
		set(&r.K1, kb, 0, 0)
		set(&r.K2, kb, 0, 1)
		set(&r.K3, kr, 15, 0)
		set(&r.K4, kr, 15, 1)
		set(&r.K5, ka, 15, 0)
		set(&r.K6, ka, 15, 1)
		set(&r.Kl1, kr, 30, 0)
		set(&r.Kl2, kr, 30, 1)
		set(&r.K7, kb, 30, 0)
		set(&r.K8, kb, 30, 1)
		set(&r.K9, kl, 45, 0)
		set(&r.K10, kl, 45, 1)
		set(&r.K11, ka, 45, 0)
		set(&r.K12, ka, 45, 1)
		set(&r.Kl3, kl, 60, 0)
		set(&r.Kl4, kl, 60, 1)
		set(&r.K13, kr, 60, 0)
		set(&r.K14, kr, 60, 1)
		set(&r.K15, kb, 60, 0)
		set(&r.K16, kb, 60, 1)
		set(&r.K17, kl, 77, 0)
		set(&r.K18, kl, 77, 1)
		set(&r.Kl5, ka, 77, 0)
		set(&r.Kl6, ka, 77, 1)
		set(&r.K19, kr, 94, 0)
		set(&r.K20, kr, 94, 1)
		set(&r.K21, ka, 94, 0)
		set(&r.K22, ka, 94, 1)
		set(&r.K23, kl, 111, 0)
		set(&r.K24, kl, 111, 1)
		set(&r.Kw3, kb, 111, 0)
		set(&r.Kw4, kb, 111, 1)
	} else {
		set(&r.Kw3, kl, 0, 0)
		set(&r.Kw4, kl, 0, 1)
		set(&r.K24, kb, 0, 0)
		set(&r.K23, kb, 0, 1)
		set(&r.K22, kr, 15, 0)
		set(&r.K21, kr, 15, 1)
		set(&r.K20, ka, 15, 0)
		set(&r.K19, ka, 15, 1)
		set(&r.Kl6, kr, 30, 0)
		set(&r.Kl5, kr, 30, 1)
		set(&r.K18, kb, 30, 0)
		set(&r.K17, kb, 30, 1)
		set(&r.K16, kl, 45, 0)
		set(&r.K15, kl, 45, 1)
		set(&r.K14, ka, 45, 0)
		set(&r.K13, ka, 45, 1)
		set(&r.Kl4, kl, 60, 0)
		set(&r.Kl3, kl, 60, 1)
		set(&r.K12, kr, 60, 0)
		set(&r.K11, kr, 60, 1)
		set(&r.K10, kb, 60, 0)
		set(&r.K9, kb, 60, 1)
		set(&r.K8, kl, 77, 0)
		set(&r.K7, kl, 77, 1)
		set(&r.Kl2, ka, 77, 0)
		set(&r.Kl1, ka, 77, 1)
		set(&r.K6, kr, 94, 0)
		set(&r.K5, kr, 94, 1)
		set(&r.K4, ka, 94, 0)
		set(&r.K3, ka, 94, 1)
		set(&r.K2, kl, 111, 0)
		set(&r.K1, kl, 111, 1)
		set(&r.Kw1, kb, 111, 0)
		set(&r.Kw2, kb, 111, 1)
	}
	return r
}
