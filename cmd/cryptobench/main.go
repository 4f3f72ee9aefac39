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

// cryptobench checks every back-end of camellia, crc32x and shax against
// their known-answer test vectors, and optionally measures their
// throughput.
package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cryptofast/cryptofast/camellia"
	"github.com/cryptofast/cryptofast/crc32x"
	"github.com/cryptofast/cryptofast/shax"
)

func fatalf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func main() {
	var bench bool
	var sizeMB int
	var algo string
	flag.BoolVar(&bench, "bench", false, "measure throughput instead of checking vectors")
	flag.IntVar(&sizeMB, "size", 16, "buffer size in MiB for -bench")
	flag.StringVar(&algo, "algo", "all", "algorithm to time with -bench: camellia, crc32, sha256 or all")
	flag.Parse()

	if bench {
		runBench(algo, sizeMB)
		return
	}

	failed := 0
	failed += checkCamellia()
	failed += checkCRC32()
	failed += checkSHA()
	if failed > 0 {
		fatalf("%d vector(s) failed", failed)
	}
	fmt.Println("all vectors passed")
}

func checkCamellia() int {
	// RFC 3713 Appendix A, 128-bit key.
	key := mustHex("0123456789abcdeffedcba9876543210")
	plain := mustHex("0123456789abcdeffedcba9876543210")
	want := mustHex("67673138549669730857065648eabe43")

	fails := 0
	for _, b := range []camellia.Backend{camellia.BackendPortable, camellia.BackendSIMD8, camellia.BackendSliced32} {
		enc, err := camellia.NewECBEncryptContextWithBackend(key, b)
		if err != nil {
			continue // backend unsupported on this CPU
		}
		got := make([]byte, 16)
		if err := enc.ProcessBlocks(got, plain); err != nil {
			fmt.Printf("camellia ecb encrypt (%s): %s\n", b, err)
			fails++
			continue
		}
		enc.Close()
		if !bytes.Equal(got, want) {
			fmt.Printf("camellia ecb encrypt (%s): got %x want %x\n", b, got, want)
			fails++
		}

		dec, _ := camellia.NewECBDecryptContextWithBackend(key, b)
		back := make([]byte, 16)
		if err := dec.ProcessBlocks(back, got); err != nil {
			fmt.Printf("camellia ecb decrypt (%s): %s\n", b, err)
			fails++
			continue
		}
		dec.Close()
		if !bytes.Equal(back, plain) {
			fmt.Printf("camellia ecb decrypt (%s): got %x want %x\n", b, back, plain)
			fails++
		}
	}
	return fails
}

func checkCRC32() int {
	cases := []struct {
		in   []byte
		want uint32
	}{
		{[]byte(""), 0x00000000},
		{[]byte("123456789"), 0xCBF43926},
		{make([]byte, 1), 0xD202EF8D},
		{make([]byte, 16), 0xD7D303E7},
	}
	fails := 0
	for _, bk := range []crc32x.Backend{crc32x.BackendPortable, crc32x.BackendGather, crc32x.BackendCLMUL} {
		for _, c := range cases {
			ctx, err := crc32x.NewContextWithBackend(0, bk)
			if err != nil {
				continue
			}
			got := ctx.Update(c.in).Current()
			if got != c.want {
				fmt.Printf("crc32 (%s) %d zero/lit bytes: got %08x want %08x\n", bk, len(c.in), got, c.want)
				fails++
			}
		}
	}
	return fails
}

func checkSHA() int {
	fails := 0
	for _, b := range []shax.Backend{shax.BackendPortable, shax.BackendSIMD} {
		c, err := shax.NewSHA1ContextWithBackend(b)
		if err != nil {
			continue
		}
		c.Write([]byte("abc"))
		sum, _ := c.Sum()
		want := mustHex("a9993e364706816aba3e25717850c26c9cd0d89d")
		if !bytes.Equal(sum[:], want) {
			fmt.Printf("sha1 (%s) \"abc\": got %x want %x\n", b, sum, want)
			fails++
		}

		c256, _ := shax.NewSHA256ContextWithBackend(b)
		c256.Write([]byte("abc"))
		sum256, _ := c256.Sum()
		want256 := mustHex("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
		if !bytes.Equal(sum256, want256) {
			fmt.Printf("sha256 (%s) \"abc\": got %x want %x\n", b, sum256, want256)
			fails++
		}

		c512, _ := shax.NewSHA512ContextWithBackend(b)
		c512.Write([]byte("abc"))
		sum512, _ := c512.Sum()
		want512 := mustHex("ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f")
		if !bytes.Equal(sum512, want512) {
			fmt.Printf("sha512 (%s) \"abc\": got %x want %x\n", b, sum512, want512)
			fails++
		}

		c224, _ := shax.NewSHA224ContextWithBackend(b)
		c224.Write(bytes.Repeat([]byte("a"), 1000000))
		sum224, _ := c224.Sum()
		want224 := mustHex("20794655980c91d8bbb4c1ea97618a4bf03f42581948b2ee4ee7ad67")
		if !bytes.Equal(sum224, want224) {
			fmt.Printf("sha224 (%s) 10^6 'a': got %x want %x\n", b, sum224, want224)
			fails++
		}
	}
	return fails
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func runBench(algo string, sizeMB int) {
	buf := make([]byte, sizeMB<<20)
	if _, err := rand.Read(buf); err != nil {
		fatalf("generating input: %s", err)
	}

	run := func(name string, fn func()) {
		deadline := time.Now().Add(2 * time.Second)
		var min time.Duration
		for time.Now().Before(deadline) {
			start := time.Now()
			fn()
			dur := time.Since(start)
			if min == 0 || dur < min {
				min = dur
			}
		}
		gibps := float64(len(buf)) / min.Seconds() / (1 << 30)
		fmt.Printf("%-28s %7.2f GiB/s\n", name, gibps)
	}

	if algo == "all" || algo == "crc32" {
		for _, b := range []crc32x.Backend{crc32x.BackendPortable, crc32x.BackendGather, crc32x.BackendCLMUL} {
			ctx, err := crc32x.NewContextWithBackend(0, b)
			if err != nil {
				continue
			}
			run("crc32/"+b.String(), func() { ctx.Update(buf) })
		}
	}
	if algo == "all" || algo == "sha256" {
		for _, b := range []shax.Backend{shax.BackendPortable, shax.BackendSIMD} {
			run("sha256/"+b.String(), func() {
				c, err := shax.NewSHA256ContextWithBackend(b)
				if err != nil {
					return
				}
				c.Write(buf)
				c.Sum()
			})
		}
	}
	if algo == "all" || algo == "camellia" {
		key := make([]byte, 16)
		for _, b := range []camellia.Backend{camellia.BackendPortable, camellia.BackendSIMD8, camellia.BackendSliced32} {
			enc, err := camellia.NewECBEncryptContextWithBackend(key, b)
			if err != nil {
				continue
			}
			dst := make([]byte, len(buf))
			run("camellia-ecb/"+b.String(), func() { enc.ProcessBlocks(dst, buf) })
		}
	}
}
