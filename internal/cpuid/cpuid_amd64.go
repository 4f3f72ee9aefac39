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

//go:build amd64
// +build amd64

package cpuid

import "golang.org/x/sys/cpu"

func probe() Features {
	return Features{
		SSE2:      cpu.X86.HasSSE2,
		SSSE3:     cpu.X86.HasSSSE3,
		SSE41:     cpu.X86.HasSSE41,
		SSE42:     cpu.X86.HasSSE42,
		AVX:       cpu.X86.HasAVX,
		AVX2:      cpu.X86.HasAVX2,
		BMI2:      cpu.X86.HasBMI2,
		PCLMULQDQ: cpu.X86.HasPCLMULQDQ,
		AESNI:     cpu.X86.HasAES,
	}
}
