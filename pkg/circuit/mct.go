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

	"github.com/consensys/go-qisd/pkg/fault"
)

// MctMode determines how a multi-controlled NOT is written into the gate log.
type MctMode uint8

const (
	// NOANCILLA writes a single native MCX gate, leaving its decomposition to
	// the backend.
	NOANCILLA MctMode = iota
	// BASIC decomposes into a chain of Toffoli gates, borrowing one ancilla
	// per control beyond the second.
	BASIC
	// ADVANCED writes a native MCX gate annotated with a single borrowed
	// ancilla, for backends with a linear-depth decomposition.
	ADVANCED
)

var mctModeNames = []string{"noancilla", "basic", "advanced"}

// ParseMctMode reads a mode by name (case insensitive).
func ParseMctMode(name string) (MctMode, error) {
	for i, n := range mctModeNames {
		if strings.EqualFold(n, name) {
			return MctMode(i), nil
		}
	}
	//
	return NOANCILLA, fault.InvalidParameter("unknown mct mode \"%s\" (expected one of %s)", name,
		strings.Join(mctModeNames, ", "))
}

func (p MctMode) String() string {
	if int(p) < len(mctModeNames) {
		return mctModeNames[p]
	}
	//
	return fmt.Sprintf("mct(%d)", uint8(p))
}

// MarshalText writes a mode by name.
func (p MctMode) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText reads a mode by name.
func (p *MctMode) UnmarshalText(text []byte) error {
	mode, err := ParseMctMode(string(text))
	*p = mode
	//
	return err
}

// AncillasRequired returns the number of ancillas a multi-controlled NOT with
// the given number of controls borrows under this mode.
func (p MctMode) AncillasRequired(controls uint) uint {
	if controls <= 2 {
		return 0
	}
	//
	switch p {
	case BASIC:
		return controls - 2
	case ADVANCED:
		return 1
	default:
		return 0
	}
}

// Mcx appends a NOT on target controlled by every qubit in controls.  With at
// most two controls this is an X, CX or CCX regardless of mode.  Otherwise,
// the gate is written according to the mode, borrowing ancillas from the
// front of the given view.  Ancillas are returned in their initial state.
// Nothing is emitted when an error is returned.
func (p *Circuit) Mcx(controls View, target Qubit, ancillas View, mode MctMode) error {
	var (
		n    = controls.Len()
		need = mode.AncillasRequired(n)
	)
	//
	if uint(len(ancillas)) < need {
		return fault.InsufficientResource("%d controls need %d ancillas in %s mode, got %d", n, need, mode,
			len(ancillas))
	}
	//
	ancillas = ancillas[:need]
	//
	if qubits := Concat(controls, View{target}, ancillas); !qubits.Distinct() {
		return fault.InvalidParameter("mcx uses a qubit more than once %s", qubits.String())
	}
	//
	if err := p.CheckAllocated(controls, View{target}, ancillas); err != nil {
		return err
	}
	//
	switch {
	case n == 0:
		p.X(target)
	case n == 1:
		p.CX(controls[0], target)
	case n == 2:
		p.CCX(controls[0], controls[1], target)
	case mode == BASIC:
		p.toffoliChain(controls, target, ancillas)
	default:
		p.must(Gate{Kind: MCX, Controls: controls, Targets: View{target}, Ancillas: ancillas})
	}
	//
	return nil
}

// Compute the conjunction of the controls along a chain of ancillas, flip the
// target from the last link, then uncompute the chain.
func (p *Circuit) toffoliChain(controls View, target Qubit, ancillas View) {
	var n = len(controls)
	//
	p.CCX(controls[0], controls[1], ancillas[0])
	//
	for i := 2; i < n-1; i++ {
		p.CCX(controls[i], ancillas[i-2], ancillas[i-1])
	}
	//
	p.CCX(controls[n-1], ancillas[n-3], target)
	//
	for i := n - 2; i >= 2; i-- {
		p.CCX(controls[i], ancillas[i-2], ancillas[i-1])
	}
	//
	p.CCX(controls[0], controls[1], ancillas[0])
}
