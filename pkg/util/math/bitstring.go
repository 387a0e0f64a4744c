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
	"fmt"
	"math/bits"
	"strings"
)

// RequiredBits returns the number of bits needed to write the largest (by
// magnitude) of the given integers in binary.  Thus, RequiredBits(0) == 0,
// RequiredBits(4) == 3 and RequiredBits(3, -7) == 3.
func RequiredBits(ints ...int) uint {
	var largest uint64
	//
	if len(ints) == 0 {
		panic("required bits of nothing")
	}
	//
	for _, i := range ints {
		if i < 0 {
			i = -i
		}
		//
		largest = max(largest, uint64(i))
	}
	//
	return uint(bits.Len64(largest))
}

// BitstringFromInt writes i in binary (most significant bit first) padded with
// zeros to exactly width characters.  Negative values are written in two's
// complement.  When littleEndian is set the string is reversed, so that the
// least significant bit comes first.
func BitstringFromInt(i int, width uint, littleEndian bool) (string, error) {
	var val uint64
	//
	if i >= 0 {
		val = uint64(i)
	} else if width < 64 {
		val = (uint64(1) << width) - uint64(-i)
	} else {
		val = uint64(i)
	}
	//
	str := fmt.Sprintf("%0*b", int(width), val)
	//
	if uint(len(str)) > width {
		return "", fmt.Errorf("%d does not fit in %d bits", i, width)
	} else if littleEndian {
		return Reverse(str), nil
	}
	//
	return str, nil
}

// BitsFromInt is BitstringFromInt returning an array of 0/1 values.
func BitsFromInt(i int, width uint, littleEndian bool) ([]uint8, error) {
	str, err := BitstringFromInt(i, width, littleEndian)
	if err != nil {
		return nil, err
	}
	//
	return ParseBits(str)
}

// IntFromBitstring is the inverse of BitstringFromInt for non-negative values.
func IntFromBitstring(str string, littleEndian bool) (uint64, error) {
	var val uint64
	//
	if littleEndian {
		str = Reverse(str)
	}
	//
	if len(str) > 64 {
		return 0, fmt.Errorf("bitstring too long (%d bits)", len(str))
	}
	//
	for _, c := range str {
		val <<= 1
		//
		switch c {
		case '1':
			val |= 1
		case '0':
		default:
			return 0, fmt.Errorf("invalid bit '%c' in \"%s\"", c, str)
		}
	}
	//
	return val, nil
}

// IntFromBits is IntFromBitstring over an array of 0/1 values.
func IntFromBits(arr []uint8, littleEndian bool) (uint64, error) {
	return IntFromBitstring(FormatBits(arr), littleEndian)
}

// NegateBitstring complements every bit of the given string.  Thus, "1011"
// becomes "0100".  Characters other than '0' and '1' are left untouched.
func NegateBitstring(str string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '0':
			return '1'
		case '1':
			return '0'
		}
		//
		return r
	}, str)
}

// NegateBits complements every bit of the given array, returning a fresh
// array.
func NegateBits(arr []uint8) []uint8 {
	neg := make([]uint8, len(arr))
	//
	for i, b := range arr {
		neg[i] = 1 - (b & 1)
	}
	//
	return neg
}

// PadBitstring left-pads str with zeros up to the given width.
func PadBitstring(str string, width uint) string {
	if uint(len(str)) >= width {
		return str
	}
	//
	return strings.Repeat("0", int(width)-len(str)) + str
}

// ParseBits converts a string of '0' and '1' characters into an array of bits.
func ParseBits(str string) ([]uint8, error) {
	arr := make([]uint8, len(str))
	//
	for i, c := range str {
		switch c {
		case '0':
		case '1':
			arr[i] = 1
		default:
			return nil, fmt.Errorf("invalid bit '%c' in \"%s\"", c, str)
		}
	}
	//
	return arr, nil
}

// FormatBits converts an array of bits into a string of '0' and '1' characters.
func FormatBits(arr []uint8) string {
	var builder strings.Builder
	//
	for _, b := range arr {
		if b != 0 {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	//
	return builder.String()
}

// HammingWeight counts the non-zero entries of a bit array.
func HammingWeight(arr []uint8) uint {
	var count uint
	//
	for _, b := range arr {
		if b != 0 {
			count++
		}
	}
	//
	return count
}

// Reverse a string byte by byte (bitstrings are ASCII).
func Reverse(str string) string {
	bytes := []byte(str)
	//
	for i, j := 0, len(bytes)-1; i < j; i, j = i+1, j-1 {
		bytes[i], bytes[j] = bytes[j], bytes[i]
	}
	//
	return string(bytes)
}
