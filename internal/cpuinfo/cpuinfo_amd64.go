// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build amd64

package cpuinfo

import "golang.org/x/sys/cpu"

func detectLevel() (Level, int) {
	switch {
	case cpu.X86.HasAVX512F:
		return LevelAVX512, 64
	case cpu.X86.HasAVX2:
		return LevelAVX2, 32
	default:
		// SSE2 is baseline for amd64
		return LevelSSE2, 16
	}
}

func detectFeatures() []string {
	flags := []struct {
		name string
		has  bool
	}{
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"avx512f", cpu.X86.HasAVX512F},
		{"avx512vl", cpu.X86.HasAVX512VL},
		{"fma", cpu.X86.HasFMA},
		{"sse2", cpu.X86.HasSSE2},
		{"sse41", cpu.X86.HasSSE41},
		{"sse42", cpu.X86.HasSSE42},
	}

	var features []string
	for _, f := range flags {
		if f.has {
			features = append(features, f.name)
		}
	}
	return features
}
