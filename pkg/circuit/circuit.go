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
package circuit

import (
	"fmt"
	"slices"

	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ClassicalRegister is a named block of classical bits receiving
// measurements.
type ClassicalRegister struct {
	Name   string
	Offset uint
	Size   uint
}

// Circuit is an append-only log of gates over a set of named registers.  It is
// the single mutable object shared by all emitters during one build and is
// not safe for concurrent use: one build owns its circuit from start to
// finish.
type Circuit struct {
	// Unique identifier of this build session.
	id uuid.UUID
	// Given name of this circuit.
	name string
	// Registers in allocation order.
	registers []Register
	// Classical registers in allocation order.
	clregisters []ClassicalRegister
	// Number of qubits allocated so far.
	nqubits uint
	// Number of classical bits allocated so far.
	nclbits uint
	// Gates in emission order.
	gates []Gate
}

// NewCircuit constructs an empty circuit with the given name.
func NewCircuit(name string) *Circuit {
	return &Circuit{id: uuid.New(), name: name}
}

// Id returns the unique identifier of this build.
func (p *Circuit) Id() uuid.UUID {
	return p.id
}

// Name returns the given name of this circuit.
func (p *Circuit) Name() string {
	return p.name
}

// AddRegister allocates a fresh register of the given size.  Register names
// must be unique within a circuit.
func (p *Circuit) AddRegister(name string, size uint) (Register, error) {
	if _, ok := p.HasRegister(name); ok {
		return Register{}, fault.InvalidParameter("register %s already declared", name)
	} else if size == 0 {
		return Register{}, fault.InvalidParameter("register %s is empty", name)
	}
	//
	reg := Register{name, p.nqubits, size}
	p.registers = append(p.registers, reg)
	p.nqubits += size
	//
	log.Debugf("allocated register %s as q%d..q%d", reg.String(), reg.Offset, reg.Offset+size-1)
	//
	return reg, nil
}

// AddClassicalRegister allocates a fresh classical register of the given
// size.
func (p *Circuit) AddClassicalRegister(name string, size uint) ClassicalRegister {
	reg := ClassicalRegister{name, p.nclbits, size}
	p.clregisters = append(p.clregisters, reg)
	p.nclbits += size
	//
	return reg
}

// HasRegister checks whether a register with the given name exists.
func (p *Circuit) HasRegister(name string) (Register, bool) {
	for _, r := range p.registers {
		if r.Name == name {
			return r, true
		}
	}
	//
	return Register{}, false
}

// Registers returns the registers of this circuit in allocation order.
func (p *Circuit) Registers() []Register {
	return p.registers
}

// ClassicalRegisters returns the classical registers of this circuit.
func (p *Circuit) ClassicalRegisters() []ClassicalRegister {
	return p.clregisters
}

// Width returns the number of qubits allocated.
func (p *Circuit) Width() uint {
	return p.nqubits
}

// ClassicalWidth returns the number of classical bits allocated.
func (p *Circuit) ClassicalWidth() uint {
	return p.nclbits
}

// Gates returns the gate log.  The returned slice must not be modified.
func (p *Circuit) Gates() []Gate {
	return p.gates
}

// Len returns the number of gates emitted so far, which can be used to mark
// the start of a span for AppendInverse.
func (p *Circuit) Len() int {
	return len(p.gates)
}

// Append a gate to the log, after checking it is well-formed and refers only
// to allocated qubits.
func (p *Circuit) Append(gate Gate) error {
	if err := gate.Validate(); err != nil {
		return fault.InvalidParameter("%s", err.Error())
	}
	//
	for _, q := range gate.Qubits() {
		if uint(q) >= p.nqubits {
			return fault.InvalidParameter("%s refers to unallocated qubit %s", gate.Kind, q)
		}
	}
	//
	for _, c := range gate.Clbits {
		if c >= p.nclbits {
			return fault.InvalidParameter("%s refers to unallocated bit %d", gate.Kind, c)
		}
	}
	//
	p.gates = append(p.gates, gate)
	//
	return nil
}

// CheckAllocated checks that every qubit of the given views has been
// allocated in this circuit.
func (p *Circuit) CheckAllocated(views ...View) error {
	for _, view := range views {
		for _, q := range view {
			if uint(q) >= p.nqubits {
				return fault.InvalidParameter("qubit %s not allocated in %s", q, p.name)
			}
		}
	}
	//
	return nil
}

// AppendInverse appends the inverse of the span of gates [start, end), that
// is the same gates in reverse order.  Every unitary gate of the log is its
// own inverse, hence only their order changes.
func (p *Circuit) AppendInverse(start int, end int) error {
	if start < 0 || end > len(p.gates) || start > end {
		return fault.InvalidParameter("invalid span [%d, %d) of %d gates", start, end, len(p.gates))
	}
	//
	span := slices.Clone(p.gates[start:end])
	slices.Reverse(span)
	//
	for _, g := range span {
		if g.Kind == MEASURE {
			return fault.InvalidParameter("cannot invert a measurement")
		}
	}
	//
	p.gates = append(p.gates, span...)
	//
	return nil
}

// ============================================================================
// Gate helpers
// ============================================================================

// H appends a Hadamard gate on each given qubit.
func (p *Circuit) H(qubits ...Qubit) {
	for _, q := range qubits {
		p.must(Gate{Kind: H, Targets: View{q}})
	}
}

// X appends a bit flip on each given qubit.
func (p *Circuit) X(qubits ...Qubit) {
	for _, q := range qubits {
		p.must(Gate{Kind: X, Targets: View{q}})
	}
}

// CX appends a controlled NOT.
func (p *Circuit) CX(control Qubit, target Qubit) {
	p.must(Gate{Kind: CX, Controls: View{control}, Targets: View{target}})
}

// CCX appends a Toffoli gate.
func (p *Circuit) CCX(c0 Qubit, c1 Qubit, target Qubit) {
	p.must(Gate{Kind: CCX, Controls: View{c0, c1}, Targets: View{target}})
}

// CSwap appends a controlled swap of two qubits.
func (p *Circuit) CSwap(control Qubit, t0 Qubit, t1 Qubit) {
	p.must(Gate{Kind: CSWAP, Controls: View{control}, Targets: View{t0, t1}})
}

// Barrier appends a barrier over the given qubits, or over every qubit when
// none are given.
func (p *Circuit) Barrier(qubits ...Qubit) {
	p.must(Gate{Kind: BARRIER, Targets: View(qubits)})
}

// Measure appends a measurement of the given qubits into a fresh classical
// register with the given name.
func (p *Circuit) Measure(name string, qubits View) ClassicalRegister {
	var (
		creg   = p.AddClassicalRegister(name, qubits.Len())
		clbits = make([]uint, len(qubits))
	)
	//
	for i := range clbits {
		clbits[i] = creg.Offset + uint(i)
	}
	//
	p.must(Gate{Kind: MEASURE, Targets: slices.Clone(qubits), Clbits: clbits})
	//
	return creg
}

// The helpers above are used with qubits obtained from this circuit's own
// registers, so a failure indicates a programming error.
func (p *Circuit) must(gate Gate) {
	if err := p.Append(gate); err != nil {
		panic(err.Error())
	}
}

func (p *Circuit) String() string {
	return fmt.Sprintf("%s(%s): %d qubits, %d gates", p.name, p.id.String(), p.nqubits, len(p.gates))
}
