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
	"io"
	"strings"

	"github.com/consensys/go-qisd/pkg/fault"
)

// Largest number of controls for which qelib1.inc provides a native
// multi-controlled NOT (c3x and c4x).
const maxQasmControls = 4

// WriteQasm writes a circuit in OpenQASM 2.0.  Ancilla annotations are not
// representable and are dropped, hence multi-controlled gates are limited to
// what qelib1.inc provides.  Circuits with wider gates should be built in
// BASIC mode before export.
func WriteQasm(w io.Writer, circuit *Circuit) error {
	var builder strings.Builder
	//
	builder.WriteString("OPENQASM 2.0;\n")
	builder.WriteString("include \"qelib1.inc\";\n")
	builder.WriteString(fmt.Sprintf("// %s (%s)\n", circuit.Name(), circuit.Id().String()))
	//
	for _, r := range circuit.Registers() {
		builder.WriteString(fmt.Sprintf("qreg %s[%d];\n", r.Name, r.Size))
	}
	//
	for _, r := range circuit.ClassicalRegisters() {
		builder.WriteString(fmt.Sprintf("creg %s[%d];\n", r.Name, r.Size))
	}
	//
	for _, g := range circuit.Gates() {
		if err := writeQasmGate(&builder, circuit, g); err != nil {
			return err
		}
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}

func writeQasmGate(builder *strings.Builder, circuit *Circuit, g Gate) error {
	var name = g.Kind.String()
	//
	switch g.Kind {
	case MCX:
		if len(g.Controls) > maxQasmControls {
			return fault.InvalidParameter("mcx with %d controls has no OpenQASM 2.0 equivalent", len(g.Controls))
		}
		//
		name = fmt.Sprintf("c%dx", len(g.Controls))
	case BARRIER:
		if len(g.Targets) == 0 {
			builder.WriteString("barrier ")
			builder.WriteString(qasmRegisters(circuit.Registers()))
			builder.WriteString(";\n")
			//
			return nil
		}
	case MEASURE:
		for i, q := range g.Targets {
			builder.WriteString(fmt.Sprintf("measure %s -> %s;\n", qasmQubit(circuit, q),
				qasmClbit(circuit, g.Clbits[i])))
		}
		//
		return nil
	}
	//
	builder.WriteString(name)
	builder.WriteString(" ")
	//
	for i, q := range Concat(g.Controls, g.Targets) {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(qasmQubit(circuit, q))
	}
	//
	builder.WriteString(";\n")
	//
	return nil
}

func qasmRegisters(registers []Register) string {
	names := make([]string, len(registers))
	//
	for i, r := range registers {
		names[i] = r.Name
	}
	//
	return strings.Join(names, ",")
}

func qasmQubit(circuit *Circuit, q Qubit) string {
	for _, r := range circuit.Registers() {
		if r.Contains(q) {
			return fmt.Sprintf("%s[%d]", r.Name, uint(q)-r.Offset)
		}
	}
	// Unreachable for gates accepted by Append
	panic(fmt.Sprintf("qubit %s not allocated", q))
}

func qasmClbit(circuit *Circuit, bit uint) string {
	for _, r := range circuit.ClassicalRegisters() {
		if bit >= r.Offset && bit < r.Offset+r.Size {
			return fmt.Sprintf("%s[%d]", r.Name, bit-r.Offset)
		}
	}
	//
	panic(fmt.Sprintf("bit %d not allocated", bit))
}
