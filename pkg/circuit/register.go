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

// Qubit identifies a single qubit within a circuit.  Qubits are numbered from
// zero in order of allocation, across all registers of the circuit.  The
// wrapper avoids confusion between qubit indices and other unsigned values.
type Qubit uint

func (p Qubit) String() string {
	return fmt.Sprintf("q%d", uint(p))
}

// Register is a named, contiguous block of qubits allocated by a circuit.
// Registers are never modified after allocation; gates refer to their qubits
// by index.
type Register struct {
	// Given name of this register.
	Name string
	// Index of the first qubit of this register within the circuit.
	Offset uint
	// Number of qubits in this register.
	Size uint
}

// Qubit returns the ith qubit of this register.
func (p Register) Qubit(i uint) Qubit {
	if i >= p.Size {
		panic(fmt.Sprintf("qubit %d out-of-bounds for register %s[%d]", i, p.Name, p.Size))
	}
	//
	return Qubit(p.Offset + i)
}

// View returns all qubits of this register, in order.
func (p Register) View() View {
	view := make(View, p.Size)
	//
	for i := range view {
		view[i] = Qubit(p.Offset + uint(i))
	}
	//
	return view
}

// Contains checks whether a given qubit belongs to this register.
func (p Register) Contains(q Qubit) bool {
	return uint(q) >= p.Offset && uint(q) < p.Offset+p.Size
}

func (p Register) String() string {
	return fmt.Sprintf("%s[%d]", p.Name, p.Size)
}

// View is a flat, ownership-free list of qubits drawn from one or more
// registers.  It is used wherever a gate operates over an arbitrary selection
// of qubits, such as the controls of a multi-controlled gate.  Views never
// copy qubit state, only qubit indices.
type View []Qubit

// Concat joins zero or more views (or registers, via their View) into one.
func Concat(views ...View) View {
	var (
		n      = 0
		result View
	)
	//
	for _, v := range views {
		n += len(v)
	}
	//
	result = make(View, 0, n)
	//
	for _, v := range views {
		result = append(result, v...)
	}
	//
	return result
}

// Len returns the number of qubits in this view.
func (p View) Len() uint {
	return uint(len(p))
}

// Distinct checks that no qubit occurs twice in this view.
func (p View) Distinct() bool {
	seen := make(map[Qubit]bool, len(p))
	//
	for _, q := range p {
		if seen[q] {
			return false
		}
		//
		seen[q] = true
	}
	//
	return true
}

func (p View) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, q := range p {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(q.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
