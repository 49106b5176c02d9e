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

package matmul

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyStringRoundTrip(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestParseStrategyUnknown(t *testing.T) {
	_, err := ParseStrategy("strassen")
	require.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Contains(t, err.Error(), `"strassen"`)
	assert.Equal(t, "unknown", Strategy(99).String())
}

func TestStrategyUsesBlock(t *testing.T) {
	assert.False(t, StrategyNaive.UsesBlock())
	assert.True(t, StrategyBlocked.UsesBlock())
	assert.False(t, StrategyLibrary.UsesBlock())
	assert.True(t, StrategyBlockedLibrary.UsesBlock())
}

func TestStrategyMulAgrees(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, 0))
	a := NewRandom(40, 30, rng)
	b := NewRandom(30, 20, rng)

	want, err := StrategyLibrary.Mul(a, b, 0)
	require.NoError(t, err)
	require.Equal(t, 40, want.Rows)
	require.Equal(t, 20, want.Cols)

	for _, s := range Strategies {
		t.Run(s.String(), func(t *testing.T) {
			got, err := s.Mul(a, b, 16)
			require.NoError(t, err)
			assert.True(t, AllClose(got.Data, want.Data, DefaultRtol, DefaultAtol),
				"max abs diff %e", MaxAbsDiff(got.Data, want.Data))
		})
	}
}

func TestStrategyMulShapeMismatch(t *testing.T) {
	a := New(3, 4)
	b := New(5, 2)

	for _, s := range Strategies {
		_, err := s.Mul(a, b, 2)
		assert.ErrorIs(t, err, ErrShape, s.String())
	}

	err := StrategyNaive.MulInto(New(3, 3), a, New(4, 2), 0)
	assert.ErrorIs(t, err, ErrShape)
}

func TestStrategyMulBadBlock(t *testing.T) {
	a := New(4, 4)
	b := New(4, 4)

	_, err := StrategyBlocked.Mul(a, b, 0)
	assert.ErrorIs(t, err, ErrBlockSize)
	_, err = StrategyBlockedLibrary.Mul(a, b, -8)
	assert.ErrorIs(t, err, ErrBlockSize)

	// Strategies that do not tile ignore the block size.
	_, err = StrategyNaive.Mul(a, b, 0)
	assert.NoError(t, err)
	_, err = StrategyLibrary.Mul(a, b, -1)
	assert.NoError(t, err)
}
