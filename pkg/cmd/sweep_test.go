// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"testing"

	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sweep(t *testing.T) {
	cache, err := nwr.NewCache(0)
	require.NoError(t, err)
	//
	rows, err := sweep(cache, 3, 8)
	require.NoError(t, err)
	// Lines 4 (w=1..3) then 8 (w=1..7)
	require.Len(t, rows, 10)
	assert.Equal(t, uint(4), rows[0].lines)
	assert.Equal(t, uint(8), rows[3].lines)
	//
	for _, row := range rows {
		assert.Equal(t, row.lines-1, row.carries)
		assert.Positive(t, row.flips)
		assert.GreaterOrEqual(t, row.fpcRounds, row.benesRounds)
	}
	// C(8,3) == 56
	assert.Equal(t, float64(56), rows[5].patterns)
	assert.Equal(t, uint(5), rows[5].benesRounds)
	assert.Equal(t, uint(12), rows[5].fpcRounds)
	// Compiled patterns are shared
	swaps, adders := cache.Len()
	assert.Equal(t, 10, swaps)
	assert.Equal(t, 2, adders)
}

func Test_Sweep_Large(t *testing.T) {
	cache, err := nwr.NewCache(0)
	require.NoError(t, err)
	// C(128,64) does not fit in 64 bits
	row := sweepRow{lines: 128, weight: 64}
	require.NoError(t, row.compile(cache))
	assert.InEpsilon(t, 2.3951146041928085e37, row.patterns, 1e-12)
	assert.Greater(t, row.benesRounds, uint(1)<<61)
	assert.Greater(t, row.fpcRounds, row.benesRounds)
	// Neither 2^256 candidates
	row = sweepRow{lines: 256, weight: 1}
	assert.Error(t, row.compile(cache))
}

func Test_Sweep_Invalid(t *testing.T) {
	cache, err := nwr.NewCache(0)
	require.NoError(t, err)
	//
	_, err = sweep(cache, 1, 8)
	assert.Error(t, err)
	_, err = sweep(cache, 8, 4)
	assert.Error(t, err)
}

func Test_IsCompressed(t *testing.T) {
	assert.True(t, isCompressed("circuit.json.sz"))
	assert.False(t, isCompressed("circuit.json"))
}
