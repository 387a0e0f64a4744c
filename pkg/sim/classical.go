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
package sim

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
)

// Evaluate runs a circuit over a single computational basis state.  Every
// gate other than the Hadamard maps basis states to basis states, hence the
// evaluation is exact.  Each Hadamard instead follows one branch, chosen by
// the next coin: a true coin flips the qubit, a false coin leaves it.  Exactly
// one coin must be given per Hadamard.  Measurements and barriers have no
// effect.  The initial state is left unchanged.
func Evaluate(c *circuit.Circuit, initial *bitset.BitSet, coins []bool) (*bitset.BitSet, error) {
	var (
		state = initial.Clone()
		used  int
	)
	//
	for _, g := range c.Gates() {
		switch g.Kind {
		case circuit.H:
			if used == len(coins) {
				return nil, fault.InvalidParameter("ran out of coins (%d given)", len(coins))
			} else if coins[used] {
				state.Flip(uint(g.Targets[0]))
			}
			//
			used++
		case circuit.X, circuit.CX, circuit.CCX, circuit.MCX:
			if allSet(state, g.Controls) {
				state.Flip(uint(g.Targets[0]))
			}
		case circuit.CSWAP:
			if allSet(state, g.Controls) {
				var (
					i, j = uint(g.Targets[0]), uint(g.Targets[1])
					bi   = state.Test(i)
				)
				//
				state.SetTo(i, state.Test(j))
				state.SetTo(j, bi)
			}
		case circuit.BARRIER, circuit.MEASURE:
		default:
			return nil, fault.InvalidParameter("cannot evaluate %s", g.Kind)
		}
	}
	//
	if used != len(coins) {
		return nil, fault.InvalidParameter("%d coins given, %d used", len(coins), used)
	}
	//
	return state, nil
}

// Write the given bits onto the given qubits of a state.
func Write(state *bitset.BitSet, qubits circuit.View, bits []uint8) error {
	if len(qubits) != len(bits) {
		return fault.InvalidParameter("%d bits given for %d qubits", len(bits), len(qubits))
	}
	//
	for i, q := range qubits {
		state.SetTo(uint(q), bits[i] != 0)
	}
	//
	return nil
}

// Read the bits held on the given qubits of a state.
func Read(state *bitset.BitSet, qubits circuit.View) []uint8 {
	bits := make([]uint8, len(qubits))
	//
	for i, q := range qubits {
		if state.Test(uint(q)) {
			bits[i] = 1
		}
	}
	//
	return bits
}

func allSet(state *bitset.BitSet, qubits circuit.View) bool {
	for _, q := range qubits {
		if !state.Test(uint(q)) {
			return false
		}
	}
	//
	return true
}
