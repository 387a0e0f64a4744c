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
package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequiredBits(t *testing.T) {
	assert.Equal(t, uint(0), RequiredBits(0))
	assert.Equal(t, uint(1), RequiredBits(1))
	assert.Equal(t, uint(3), RequiredBits(4))
	assert.Equal(t, uint(3), RequiredBits(3, -7))
	assert.Equal(t, uint(4), RequiredBits(2, 8, 5))
}

func Test_BitstringFromInt(t *testing.T) {
	str, err := BitstringFromInt(11, 4, false)
	require.NoError(t, err)
	assert.Equal(t, "1011", str)
	//
	str, err = BitstringFromInt(11, 6, true)
	require.NoError(t, err)
	assert.Equal(t, "110100", str)
	//
	str, err = BitstringFromInt(-1, 3, false)
	require.NoError(t, err)
	assert.Equal(t, "111", str)
	//
	_, err = BitstringFromInt(16, 4, false)
	assert.Error(t, err)
}

func Test_BitstringRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		for _, le := range []bool{false, true} {
			str, err := BitstringFromInt(i, 8, le)
			require.NoError(t, err)
			//
			val, err := IntFromBitstring(str, le)
			require.NoError(t, err)
			assert.Equal(t, uint64(i), val)
		}
	}
}

func Test_NegateBits(t *testing.T) {
	assert.Equal(t, "0100", NegateBitstring("1011"))
	assert.Equal(t, []uint8{0, 1, 0, 0}, NegateBits([]uint8{1, 0, 1, 1}))
}

func Test_ParseBits(t *testing.T) {
	arr, err := ParseBits("10110100")
	require.NoError(t, err)
	assert.Equal(t, uint(4), HammingWeight(arr))
	assert.Equal(t, "10110100", FormatBits(arr))
	//
	_, err = ParseBits("10a1")
	assert.Error(t, err)
}

func Test_PadBitstring(t *testing.T) {
	assert.Equal(t, "00101", PadBitstring("101", 5))
	assert.Equal(t, "101", PadBitstring("101", 2))
}
