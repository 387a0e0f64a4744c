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
// Package isd builds quantum circuits for the syndrome decoding problem: given
// a parity-check matrix H and a syndrome s, find an error vector e of weight w
// such that He = s.
package isd

import (
	"fmt"
	"slices"

	"github.com/consensys/go-qisd/pkg/fault"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	"github.com/pkg/errors"
)

// ErrNoResult signals that a backend answered without any outcome.  This is
// terminal; the run is not retried.
var ErrNoResult = errors.New("no result from backend")

// Problem is an instance of syndrome decoding over GF(2).
type Problem struct {
	// Parity-check matrix, as r rows of n bits.
	H [][]uint8
	// Syndrome, of r bits.
	Syndrome []uint8
	// Weight of the error vector sought.
	W uint
}

// Rows returns r, the number of rows of the parity-check matrix.
func (p *Problem) Rows() uint {
	return uint(len(p.H))
}

// Columns returns n, the number of columns of the parity-check matrix.
func (p *Problem) Columns() uint {
	if len(p.H) == 0 {
		return 0
	}
	//
	return uint(len(p.H[0]))
}

// Column returns the ith column of the parity-check matrix.
func (p *Problem) Column(i uint) []uint8 {
	col := make([]uint8, len(p.H))
	//
	for k, row := range p.H {
		col[k] = row[i]
	}
	//
	return col
}

// Validate that the matrix is rectangular and binary, that the syndrome
// matches it, and that the weight is feasible.
func (p *Problem) Validate() error {
	var n = p.Columns()
	//
	if err := p.validateMatrix(); err != nil {
		return err
	} else if p.W == 0 || p.W >= util_math.NextPowerOfTwo(n) || p.W > n {
		return fault.InvalidParameter("weight %d infeasible for %d columns", p.W, n)
	}
	//
	return nil
}

func (p *Problem) validateMatrix() error {
	var n = p.Columns()
	//
	if p.Rows() == 0 || n == 0 {
		return fault.InvalidParameter("empty parity-check matrix")
	} else if uint(len(p.Syndrome)) != p.Rows() {
		return fault.InvalidParameter("syndrome of %d bits for %d rows", len(p.Syndrome), p.Rows())
	}
	//
	for i, row := range p.H {
		if uint(len(row)) != n {
			return fault.InvalidParameter("row %d has %d columns, expected %d", i, len(row), n)
		} else if err := checkBinary(row); err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
	}
	//
	return checkBinary(p.Syndrome)
}

// Satisfies checks whether a given error vector has the right weight and
// syndrome.
func (p *Problem) Satisfies(e []uint8) bool {
	if uint(len(e)) != p.Columns() || util_math.HammingWeight(e) != p.W {
		return false
	}
	//
	for k, row := range p.H {
		var parity uint8
		//
		for i, b := range row {
			parity ^= b & e[i]
		}
		//
		if parity != p.Syndrome[k] {
			return false
		}
	}
	//
	return true
}

// Residual returns s + He, the syndrome left once the columns chosen by e are
// accounted for.
func (p *Problem) Residual(e []uint8) []uint8 {
	residual := slices.Clone(p.Syndrome)
	//
	for k, row := range p.H {
		for i, b := range row {
			if i < len(e) {
				residual[k] ^= b & e[i]
			}
		}
	}
	//
	return residual
}

// Systematic returns the problem over [H | I], whose error vectors are those
// of this problem followed by their residual.
func (p *Problem) Systematic() *Problem {
	var (
		r = p.Rows()
		h = make([][]uint8, r)
	)
	//
	for k, row := range p.H {
		h[k] = make([]uint8, uint(len(row))+r)
		copy(h[k], row)
		h[k][uint(len(row))+uint(k)] = 1
	}
	//
	return &Problem{H: h, Syndrome: slices.Clone(p.Syndrome), W: p.W}
}

func (p *Problem) String() string {
	return fmt.Sprintf("{n: %d, r: %d, w: %d, syndrome: %s}", p.Columns(), p.Rows(), p.W,
		util_math.FormatBits(p.Syndrome))
}

func checkBinary(bits []uint8) error {
	for i, b := range bits {
		if b > 1 {
			return fault.InvalidParameter("non-binary value %d at %d", b, i)
		}
	}
	//
	return nil
}
