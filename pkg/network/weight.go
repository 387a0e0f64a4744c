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
	"github.com/consensys/go-qisd/pkg/nwr"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// WeightCheck describes a check that a set of lines has a given Hamming
// weight, raising a flag qubit when it does.
type WeightCheck struct {
	// Adder tree computing the population count of the lines.
	Pattern *nwr.AdderPattern
	// Registers the adder tree operates over.
	AdderRegisters
	// Qubit raised when the weight matches.
	Flag circuit.Qubit
	// Ancillas borrowed by the multi-controlled NOT raising the flag.
	Ancillas circuit.View
	// Lowering of the multi-controlled NOT raising the flag.
	Mode circuit.MctMode
}

// CheckWeight computes the population count of the lines into the result
// wires, complements the result wires whose bit in the target is zero, then
// raises the flag when all result wires are set.  A target which cannot be
// written in the result wires (such as a negative one) can never match, hence
// the flag is left alone.  The result wires remain in use until
// UncheckWeight.
func CheckWeight(c *circuit.Circuit, check *WeightCheck, target int) error {
	if err := check.validate(c); err != nil {
		return err
	}
	//
	results := check.Results(check.Pattern)
	//
	c.Barrier()
	//
	if err := EmitAdder(c, check.Pattern, &check.AdderRegisters, Forward); err != nil {
		return err
	}
	//
	c.Barrier()
	//
	if bits, ok := targetBits(target, results.Len()); ok {
		c.X(selectZeros(results, bits)...)
		c.Barrier()
		//
		if err := c.Mcx(results, check.Flag, check.Ancillas, check.Mode); err != nil {
			return err
		}
	} else {
		log.Debugf("weight %d cannot be held in %d bits, flag left unset", target, results.Len())
	}
	//
	c.Barrier()
	//
	return nil
}

// UncheckWeight undoes CheckWeight for the same target, restoring the lines
// and returning the carries to zero.  When unflag is false, the flag is left
// as raised by CheckWeight.
func UncheckWeight(c *circuit.Circuit, check *WeightCheck, target int, unflag bool) error {
	if err := check.validate(c); err != nil {
		return err
	}
	//
	results := check.Results(check.Pattern)
	bits, ok := targetBits(target, results.Len())
	//
	c.Barrier()
	//
	if ok {
		if unflag {
			if err := c.Mcx(results, check.Flag, check.Ancillas, check.Mode); err != nil {
				return err
			}
		}
		//
		c.Barrier()
		c.X(selectZeros(results, bits)...)
	}
	//
	c.Barrier()
	//
	if err := EmitAdder(c, check.Pattern, &check.AdderRegisters, Inverse); err != nil {
		return err
	}
	//
	c.Barrier()
	//
	return nil
}

// Check everything needed before any gate is emitted.
func (p *WeightCheck) validate(c *circuit.Circuit) error {
	if err := p.check(c, p.Pattern); err != nil {
		return err
	}
	//
	var (
		results = p.Results(p.Pattern)
		need    = p.Mode.AncillasRequired(results.Len())
	)
	//
	if p.Ancillas.Len() < need {
		return fault.InsufficientResource("weight check needs %d ancillas in %s mode, got %d", need, p.Mode,
			len(p.Ancillas))
	} else if !circuit.Concat(p.Lines, p.Carries, circuit.View{p.CarryIn, p.Flag}, p.Ancillas[:need]).Distinct() {
		return fault.InvalidParameter("weight check registers overlap")
	}
	//
	return c.CheckAllocated(circuit.View{p.Flag}, p.Ancillas[:need])
}

// Bits of the target, least significant first, if it fits in the given width.
func targetBits(target int, width uint) ([]uint8, bool) {
	if target < 0 || (width < 64 && uint64(target) >= uint64(1)<<width) {
		return nil, false
	}
	//
	bits, err := util_math.BitsFromInt(target, width, true)
	//
	return bits, err == nil
}

func selectZeros(qubits circuit.View, bits []uint8) circuit.View {
	var zeros circuit.View
	//
	for i, b := range bits {
		if b == 0 {
			zeros = append(zeros, qubits[i])
		}
	}
	//
	return zeros
}
