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
	"strings"
)

// Info summarises the shape of a circuit.  Barriers do not count towards size
// or depth.
type Info struct {
	// Number of qubits.
	Width uint
	// Number of classical bits.
	ClassicalWidth uint
	// Number of gates.
	Size uint
	// Length of the longest chain of gates which share a qubit.
	Depth uint
	// Number of gates of each kind.
	Counts map[Kind]uint
}

// Stats computes the summary of a given circuit.
func Stats(circuit *Circuit) Info {
	var (
		info = Info{
			Width:          circuit.Width(),
			ClassicalWidth: circuit.ClassicalWidth(),
			Counts:         make(map[Kind]uint),
		}
		layers = make([]uint, circuit.Width())
	)
	//
	for _, g := range circuit.Gates() {
		if g.Kind == BARRIER {
			continue
		}
		//
		var layer uint
		//
		for _, q := range g.Qubits() {
			layer = max(layer, layers[q])
		}
		//
		for _, q := range g.Qubits() {
			layers[q] = layer + 1
		}
		//
		info.Size++
		info.Counts[g.Kind]++
		info.Depth = max(info.Depth, layer+1)
	}
	//
	return info
}

// MaxControls returns the largest number of controls of any gate in this
// circuit.
func (p *Circuit) MaxControls() uint {
	var n uint
	//
	for _, g := range p.gates {
		n = max(n, g.Controls.Len())
	}
	//
	return n
}

func (p Info) String() string {
	var (
		builder strings.Builder
		kinds   []Kind
	)
	//
	for k := range p.Counts {
		kinds = append(kinds, k)
	}
	//
	slices.Sort(kinds)
	//
	builder.WriteString(fmt.Sprintf("width: %d, depth: %d, size: %d, ops: {", p.Width, p.Depth, p.Size))
	//
	for i, k := range kinds {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%s: %d", k, p.Counts[k]))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
