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

//go:build arm64

package cpuinfo

import "golang.org/x/sys/cpu"

func detectLevel() (Level, int) {
	// SVE width is implementation defined and x/sys/cpu does not report it,
	// so SVE is reported with the NEON width as a lower bound.
	switch {
	case cpu.ARM64.HasSVE:
		return LevelSVE, 16
	case cpu.ARM64.HasASIMD:
		return LevelNEON, 16
	default:
		return LevelScalar, 16
	}
}

func detectFeatures() []string {
	flags := []struct {
		name string
		has  bool
	}{
		{"asimd", cpu.ARM64.HasASIMD},
		{"fp", cpu.ARM64.HasFP},
		{"fphp", cpu.ARM64.HasFPHP},
		{"asimdhp", cpu.ARM64.HasASIMDHP},
		{"asimdfhm", cpu.ARM64.HasASIMDFHM},
		{"sve", cpu.ARM64.HasSVE},
		{"sve2", cpu.ARM64.HasSVE2},
	}

	var features []string
	for _, f := range flags {
		if f.has {
			features = append(features, f.name)
		}
	}
	return features
}
