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

// Package cpuid reports the fixed set of CPU features the dispatchers in
// this module care about. It is a thin, cached wrapper around
// golang.org/x/sys/cpu: that package does the actual CPUID probing, this
// package only decides which of its bits are load-bearing here and caches
// the answer for the lifetime of the process.
package cpuid

import (
	"sync"
)

// Features is the fixed set of booleans the back-end dispatchers consult.
// On non-x86 targets every field is false and callers must fall back to
// the portable back-end.
type Features struct {
	SSE2      bool
	SSSE3     bool
	SSE41     bool
	SSE42     bool
	AVX       bool
	AVX2      bool
	BMI2      bool
	PCLMULQDQ bool
	AESNI     bool
}

var (
	once   sync.Once
	cached Features
)

// Probe returns the process-wide cached feature set, computing it on the
// first call. Subsequent calls are a single atomic-guarded read.
func Probe() Features {
	once.Do(func() {
		cached = probe()
	})
	return cached
}
