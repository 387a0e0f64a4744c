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
	"math/big"
	"math/bits"
)

// CeilLog2 returns the smallest k such that 2^k >= n.  By convention, CeilLog2(0)
// and CeilLog2(1) are both 0.
func CeilLog2(n uint) uint {
	if n <= 1 {
		return 0
	}
	//
	return uint(bits.Len(n - 1))
}

// NextPowerOfTwo returns the smallest power of two which is greater than or
// equal to n.  For example, NextPowerOfTwo(5) == 8 and NextPowerOfTwo(8) == 8.
func NextPowerOfTwo(n uint) uint {
	return 1 << CeilLog2(n)
}

// IsPowerOfTwo checks whether n is an exact (non-zero) power of two.
func IsPowerOfTwo(n uint) bool {
	return n != 0 && n&(n-1) == 0
}

// Binomial computes "n choose k".  The result is exact up to 2^53, and
// rounded to the nearest float64 beyond that.  For example, Binomial(128, 64)
// is roughly 2.4e37, well beyond the range of a uint64.
func Binomial(n uint, k uint) float64 {
	if k > n {
		return 0
	}
	//
	var r big.Int
	//
	f, _ := new(big.Float).SetInt(r.Binomial(int64(n), int64(k))).Float64()
	//
	return f
}
