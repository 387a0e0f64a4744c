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
package network

import (
	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
)

// InitBits sets each qubit whose corresponding bit is one, assuming the
// qubits start at zero.  Qubit i receives bits[i].  Since every gate is a bit
// flip, this is its own inverse.
func InitBits(c *circuit.Circuit, qubits circuit.View, bits []uint8) error {
	targets, err := initTargets(c, qubits, bits)
	if err != nil {
		return err
	}
	//
	c.X(targets...)
	//
	return nil
}

// InitInt sets the qubits to the binary form of a given value, with qubit 0
// holding the least significant bit.
func InitInt(c *circuit.Circuit, qubits circuit.View, value int) error {
	bits, err := util_math.BitsFromInt(value, qubits.Len(), true)
	if err != nil {
		return fault.InvalidParameter("%s", err.Error())
	}
	//
	return InitBits(c, qubits, bits)
}

// InitBitsControlled is InitBits conditioned on every control being set.  It
// reports whether any gate was emitted.  Nothing is emitted when an error is
// returned.
func InitBitsControlled(c *circuit.Circuit, qubits circuit.View, bits []uint8, controls circuit.View,
	ancillas circuit.View, mode circuit.MctMode) (bool, error) {
	targets, err := initTargets(c, qubits, bits)
	if err != nil {
		return false, err
	}
	//
	need := mode.AncillasRequired(controls.Len())
	//
	if ancillas.Len() < need {
		return false, fault.InsufficientResource("%d controls need %d ancillas in %s mode, got %d", len(controls),
			need, mode, len(ancillas))
	} else if !circuit.Concat(controls, ancillas[:need], targets).Distinct() {
		return false, fault.InvalidParameter("controlled initialisation over overlapping qubits")
	} else if err := c.CheckAllocated(controls, ancillas[:need]); err != nil {
		return false, err
	}
	//
	for _, q := range targets {
		if err := c.Mcx(controls, q, ancillas, mode); err != nil {
			return false, err
		}
	}
	//
	return len(targets) != 0, nil
}

// Select the qubits to flip, checking they can be.
func initTargets(c *circuit.Circuit, qubits circuit.View, bits []uint8) (circuit.View, error) {
	var targets circuit.View
	//
	if len(bits) > len(qubits) {
		return nil, fault.InvalidParameter("%d bits given for %d qubits", len(bits), len(qubits))
	}
	//
	for i, b := range bits {
		if b != 0 {
			targets = append(targets, qubits[i])
		}
	}
	//
	if !targets.Distinct() {
		return nil, fault.InvalidParameter("initialisation of overlapping qubits")
	}
	//
	return targets, c.CheckAllocated(targets)
}
