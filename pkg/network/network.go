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
// Package network writes compiled network patterns into a circuit, either
// forwards or as their exact inverse, and builds the weight check on top of
// the adder tree.
package network

import (
	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/nwr"
)

// Direction in which a network is emitted.
type Direction uint8

const (
	// Forward emits a network as compiled.
	Forward Direction = iota
	// Inverse emits the mirror image of a network, undoing Forward.
	Inverse
)

func (p Direction) String() string {
	if p == Inverse {
		return "inverse"
	}
	//
	return "forward"
}

// EmitSwap writes a swap network over the given lines, driven by the given
// flip qubits.  Forwards, every flip is put in superposition, the leading
// ToNegateRange lines are set, each swap is applied conditioned on its flip
// and, when the pattern is negated, all lines are complemented.  Starting from
// all zeros, the lines then hold a uniform-support superposition of every
// string of the pattern's weight.
func EmitSwap(c *circuit.Circuit, pattern *nwr.SwapPattern, lines circuit.View, flips circuit.View,
	dir Direction) error {
	if err := pattern.Validate(); err != nil {
		return fault.InvalidParameter("malformed swap network: %s", err.Error())
	} else if lines.Len() != pattern.NLines {
		return fault.InvalidParameter("swap network over %d lines given %d", pattern.NLines, len(lines))
	} else if flips.Len() != pattern.NFlips {
		return fault.InvalidParameter("swap network with %d flips given %d", pattern.NFlips, len(flips))
	} else if !circuit.Concat(lines, flips).Distinct() {
		return fault.InvalidParameter("swap network lines and flips overlap")
	} else if err := c.CheckAllocated(lines, flips); err != nil {
		return err
	}
	//
	ones := lines[:pattern.ToNegateRange]
	//
	if dir == Forward {
		c.H(flips...)
		c.X(ones...)
		//
		for _, s := range pattern.Swaps {
			c.CSwap(flips[s.Flip], lines[s.I], lines[s.J])
		}
		//
		if pattern.Negated {
			c.X(lines...)
		}
	} else {
		if pattern.Negated {
			c.X(lines...)
		}
		//
		for i := len(pattern.Swaps) - 1; i >= 0; i-- {
			s := pattern.Swaps[i]
			c.CSwap(flips[s.Flip], lines[s.I], lines[s.J])
		}
		//
		c.X(ones...)
		c.H(flips...)
	}
	//
	return nil
}

// AdderRegisters identifies the qubits an adder tree operates over.  The carry
// in is shared by every adder and left at zero between them.
type AdderRegisters struct {
	Lines   circuit.View
	CarryIn circuit.Qubit
	Carries circuit.View
}

// Results maps the result wires of a pattern onto qubits, least significant
// first.
func (p *AdderRegisters) Results(pattern *nwr.AdderPattern) circuit.View {
	view := make(circuit.View, len(pattern.Results))
	//
	for i, w := range pattern.Results {
		view[i] = p.qubit(w)
	}
	//
	return view
}

func (p *AdderRegisters) qubit(w nwr.WireRef) circuit.Qubit {
	if w.Kind == nwr.CARRY_WIRE {
		return p.Carries[w.Index]
	}
	//
	return p.Lines[w.Index]
}

func (p *AdderRegisters) check(c *circuit.Circuit, pattern *nwr.AdderPattern) error {
	if p.Lines.Len() != pattern.NLines {
		return fault.InvalidParameter("adder tree over %d lines given %d", pattern.NLines, len(p.Lines))
	} else if p.Carries.Len() != pattern.NCouts {
		return fault.InvalidParameter("adder tree with %d carries given %d", pattern.NCouts, len(p.Carries))
	} else if !circuit.Concat(p.Lines, p.Carries, circuit.View{p.CarryIn}).Distinct() {
		return fault.InvalidParameter("adder tree registers overlap")
	}
	//
	return c.CheckAllocated(p.Lines, p.Carries, circuit.View{p.CarryIn})
}

// EmitAdder writes the adder tree of a pattern, where each adder is a ripple
// carry adder built from majority and unmajority blocks.  Forwards, each adder
// adds operand A into operand B and its carry into the carry out.  The inverse
// walks the adders backwards, mirroring each one.
func EmitAdder(c *circuit.Circuit, pattern *nwr.AdderPattern, regs *AdderRegisters, dir Direction) error {
	if err := regs.check(c, pattern); err != nil {
		return err
	}
	//
	for i := range pattern.Adders {
		if dir == Forward {
			emitRipple(c, regs, &pattern.Adders[i])
		} else {
			emitRippleInverse(c, regs, &pattern.Adders[len(pattern.Adders)-1-i])
		}
	}
	//
	return nil
}

func operands(regs *AdderRegisters, op *nwr.AdderOp) (a, b circuit.View, cout circuit.Qubit) {
	for _, w := range op.A() {
		a = append(a, regs.qubit(w))
	}
	//
	for _, w := range op.B() {
		b = append(b, regs.qubit(w))
	}
	//
	return a, b, regs.qubit(op.CarryOut)
}

func emitRipple(c *circuit.Circuit, regs *AdderRegisters, op *nwr.AdderOp) {
	var (
		a, b, cout = operands(regs, op)
		n          = len(a)
	)
	//
	majority(c, regs.CarryIn, b[0], a[0])
	//
	for j := 0; j < n-1; j++ {
		majority(c, a[j], b[j+1], a[j+1])
	}
	//
	c.CX(a[n-1], cout)
	//
	for j := n - 2; j >= 0; j-- {
		unmajority(c, a[j], b[j+1], a[j+1])
	}
	//
	unmajority(c, regs.CarryIn, b[0], a[0])
}

func emitRippleInverse(c *circuit.Circuit, regs *AdderRegisters, op *nwr.AdderOp) {
	var (
		a, b, cout = operands(regs, op)
		n          = len(a)
	)
	//
	unmajorityInverse(c, regs.CarryIn, b[0], a[0])
	//
	for j := 0; j < n-1; j++ {
		unmajorityInverse(c, a[j], b[j+1], a[j+1])
	}
	//
	c.CX(a[n-1], cout)
	//
	for j := n - 2; j >= 0; j-- {
		majorityInverse(c, a[j], b[j+1], a[j+1])
	}
	//
	majorityInverse(c, regs.CarryIn, b[0], a[0])
}

func majority(c *circuit.Circuit, a, b, x circuit.Qubit) {
	c.CX(x, b)
	c.CX(x, a)
	c.CCX(a, b, x)
}

func majorityInverse(c *circuit.Circuit, a, b, x circuit.Qubit) {
	c.CCX(a, b, x)
	c.CX(x, a)
	c.CX(x, b)
}

func unmajority(c *circuit.Circuit, a, b, x circuit.Qubit) {
	c.CCX(a, b, x)
	c.CX(x, a)
	c.CX(a, b)
}

func unmajorityInverse(c *circuit.Circuit, a, b, x circuit.Qubit) {
	c.CX(a, b)
	c.CX(x, a)
	c.CCX(a, b, x)
}
