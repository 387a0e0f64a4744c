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
package grover

import (
	"math"
	"strings"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/network"
	"github.com/consensys/go-qisd/pkg/nwr"
)

// NwrMode determines how a register of n selectors is restricted to (or
// checked for) a given Hamming weight.
type NwrMode uint8

const (
	// BENES prepares only the strings of the right weight, using a swap
	// network driven by coin flips.  Diffusion acts on the flips.
	BENES NwrMode = iota
	// FPC prepares every string and leaves the oracle to check the weight
	// with a population count.  Diffusion acts on the selectors.
	FPC
)

var nwrModeNames = []string{"benes", "fpc"}

// ParseNwrMode reads a mode by name (case insensitive).
func ParseNwrMode(name string) (NwrMode, error) {
	for i, n := range nwrModeNames {
		if strings.EqualFold(n, name) {
			return NwrMode(i), nil
		}
	}
	//
	return BENES, fault.InvalidParameter("unknown nwr mode \"%s\" (expected one of %s)", name,
		strings.Join(nwrModeNames, ", "))
}

func (p NwrMode) String() string {
	if int(p) < len(nwrModeNames) {
		return nwrModeNames[p]
	}
	//
	return "nwr(?)"
}

// MarshalText writes a mode by name.
func (p NwrMode) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText reads a mode by name.
func (p *NwrMode) UnmarshalText(text []byte) error {
	mode, err := ParseNwrMode(string(text))
	*p = mode
	//
	return err
}

// Preparation puts a register of selectors in superposition over a search
// domain, and knows how large the domain is and which qubits the diffusion
// reflects.
type Preparation interface {
	Prepare(c *circuit.Circuit) error
	PrepareInverse(c *circuit.Circuit) error
	DomainSize() float64
	DiffusionQubits() circuit.View
}

// Benes prepares every selector string of a given weight using a swap
// network.
type Benes struct {
	Pattern   *nwr.SwapPattern
	Selectors circuit.View
	Flips     circuit.View
}

// Prepare emits the swap network forwards.
func (p *Benes) Prepare(c *circuit.Circuit) error {
	c.Barrier()
	//
	if err := network.EmitSwap(c, p.Pattern, p.Selectors, p.Flips, network.Forward); err != nil {
		return err
	}
	//
	c.Barrier()
	//
	return nil
}

// PrepareInverse emits the swap network backwards.
func (p *Benes) PrepareInverse(c *circuit.Circuit) error {
	c.Barrier()
	//
	if err := network.EmitSwap(c, p.Pattern, p.Selectors, p.Flips, network.Inverse); err != nil {
		return err
	}
	//
	c.Barrier()
	//
	return nil
}

// DomainSize returns the number of strings of the pattern's weight.
func (p *Benes) DomainSize() float64 {
	return p.Pattern.DomainSize()
}

// DiffusionQubits returns the flips, since they determine the selectors.
func (p *Benes) DiffusionQubits() circuit.View {
	return p.Flips
}

// Fpc prepares every selector string.
type Fpc struct {
	Selectors circuit.View
}

// Prepare puts every selector in superposition.
func (p *Fpc) Prepare(c *circuit.Circuit) error {
	c.Barrier()
	c.H(p.Selectors...)
	c.Barrier()
	//
	return nil
}

// PrepareInverse is the same as Prepare.
func (p *Fpc) PrepareInverse(c *circuit.Circuit) error {
	return p.Prepare(c)
}

// DomainSize returns the number of selector strings.
func (p *Fpc) DomainSize() float64 {
	return math.Exp2(float64(len(p.Selectors)))
}

// DiffusionQubits returns the selectors.
func (p *Fpc) DiffusionQubits() circuit.View {
	return p.Selectors
}

// NewController builds a controller around a preparation, an oracle and the
// inversion about zero of the preparation's diffusion qubits.
func NewController(prep Preparation, oracle Stage, ancillas circuit.View, mode circuit.MctMode) *Controller {
	return &Controller{
		Prepare:        prep.Prepare,
		Oracle:         oracle,
		PrepareInverse: prep.PrepareInverse,
		Diffuse: func(c *circuit.Circuit) error {
			return InversionAboutZero(c, prep.DiffusionQubits(), ancillas, mode)
		},
		SolutionSpaceSize: prep.DomainSize(),
	}
}
