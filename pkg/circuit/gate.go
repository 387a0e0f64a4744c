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
	"strings"
)

// Kind identifies the operation performed by a gate.
type Kind uint8

const (
	// H is the Hadamard gate, used as a fair coin flip.
	H Kind = iota
	// X is the bit flip (NOT) gate.
	X
	// CX is the controlled NOT.
	CX
	// CCX is the Toffoli gate (doubly controlled NOT).
	CCX
	// CSWAP is the Fredkin gate (controlled swap of two targets).
	CSWAP
	// MCX is a NOT controlled by an arbitrary number of qubits, optionally
	// annotated with the ancillas its decomposition may borrow.
	MCX
	// BARRIER separates stages of a circuit and has no effect on its state.
	BARRIER
	// MEASURE measures each target into the corresponding classical bit.
	MEASURE
)

var kindNames = []string{"h", "x", "cx", "ccx", "cswap", "mcx", "barrier", "measure"}

func (p Kind) String() string {
	if int(p) < len(kindNames) {
		return kindNames[p]
	}
	//
	return fmt.Sprintf("kind(%d)", uint8(p))
}

// MarshalText writes a gate kind by name.
func (p Kind) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText reads a gate kind by name.
func (p *Kind) UnmarshalText(text []byte) error {
	for i, n := range kindNames {
		if n == string(text) {
			*p = Kind(i)
			return nil
		}
	}
	//
	return fmt.Errorf("unknown gate \"%s\"", string(text))
}

// Gate is a single entry of the circuit log.  Controls are read, targets are
// written (or, for a barrier, merely fenced).  Ancillas are scratch qubits a
// backend may use to decompose the gate, which are returned to their initial
// state.  Clbits are only used by measurements.
type Gate struct {
	Kind     Kind   `json:"gate"`
	Controls View   `json:"controls,omitempty"`
	Targets  View   `json:"targets,omitempty"`
	Ancillas View   `json:"ancillas,omitempty"`
	Clbits   []uint `json:"clbits,omitempty"`
}

// Uses returns the qubits read by this gate.
func (p *Gate) Uses() View {
	return p.Controls
}

// Definitions returns the qubits written by this gate.
func (p *Gate) Definitions() View {
	if p.Kind == BARRIER {
		return nil
	}
	//
	return p.Targets
}

// Qubits returns every qubit this gate touches, including ancillas.
func (p *Gate) Qubits() View {
	return Concat(p.Controls, p.Targets, p.Ancillas)
}

// IsPermutation holds for gates which map computational basis states to
// computational basis states (i.e. everything except Hadamard and
// measurement).
func (p *Gate) IsPermutation() bool {
	switch p.Kind {
	case X, CX, CCX, CSWAP, MCX, BARRIER:
		return true
	default:
		return false
	}
}

// Validate that this gate is well-formed, namely that it has the right number
// of controls and targets for its kind, and that no qubit is used twice.
func (p *Gate) Validate() error {
	var nControls, nTargets = -1, 1
	//
	switch p.Kind {
	case H, X:
		nControls = 0
	case CX:
		nControls = 1
	case CCX:
		nControls = 2
	case CSWAP:
		nControls, nTargets = 1, 2
	case MCX:
	case BARRIER:
		return nil
	case MEASURE:
		if len(p.Clbits) != len(p.Targets) {
			return fmt.Errorf("measure of %d qubits into %d bits", len(p.Targets), len(p.Clbits))
		}
		//
		return nil
	default:
		return fmt.Errorf("unknown gate %s", p.Kind)
	}
	//
	if nControls >= 0 && len(p.Controls) != nControls {
		return fmt.Errorf("%s expects %d controls, got %d", p.Kind, nControls, len(p.Controls))
	} else if len(p.Targets) != nTargets {
		return fmt.Errorf("%s expects %d targets, got %d", p.Kind, nTargets, len(p.Targets))
	} else if !p.Qubits().Distinct() {
		return fmt.Errorf("%s uses a qubit more than once %s", p.Kind, p.Qubits().String())
	}
	//
	return nil
}

func (p *Gate) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Kind.String())
	builder.WriteString(" ")
	//
	if len(p.Controls) > 0 {
		builder.WriteString(p.Controls.String())
		builder.WriteString(" -> ")
	}
	//
	builder.WriteString(p.Targets.String())
	//
	if len(p.Ancillas) > 0 {
		builder.WriteString(" using ")
		builder.WriteString(p.Ancillas.String())
	}
	//
	return builder.String()
}
