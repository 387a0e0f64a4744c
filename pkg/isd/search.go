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
package isd

import (
	"context"
	"slices"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/grover"
	"github.com/consensys/go-qisd/pkg/network"
	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/sim"
	log "github.com/sirupsen/logrus"
)

// Options controlling how a search circuit is built.
type Options struct {
	// How selectors are restricted to the weight sought.
	Nwr grover.NwrMode
	// How multi-controlled NOTs are written.
	Mct circuit.MctMode
	// Number of rounds, computed from the domain size when zero.
	Rounds uint
	// Whether to measure the selectors.
	Measure bool
	// Whether to also measure the flips (BENES only), to cross-check the
	// selectors against the swap network.
	MeasureFlips bool
	// Source of compiled patterns, compiled afresh when nil.
	Cache *nwr.Cache
}

// Search is an amplitude amplification circuit looking for the error vector
// of a problem.
type Search interface {
	// Circuit returns the circuit being built.
	Circuit() *circuit.Circuit
	// Selectors returns the selector qubits, one per (padded) column.
	Selectors() circuit.View
	// Build writes the amplification into the circuit, returning the number
	// of rounds.  A circuit can only be built once.
	Build() (uint, error)
	// Decode reads the error vector from the most frequent outcome of a run.
	Decode(outcome *sim.Result, rounds uint) (*Result, error)
	// Run builds the circuit with measurement, executes it on a backend and
	// decodes the result.
	Run(ctx context.Context, backend sim.Backend) (*Result, error)
}

// Registers and plumbing shared by every search.
type search struct {
	problem *Problem
	options Options
	circuit *circuit.Circuit
	// One selector per line, lines being rounded up to a power of two.
	selectors circuit.Register
	// Scratch qubits for multi-controlled NOTs, possibly empty.
	ancillas circuit.View
	// Swap network (BENES only).
	swap  *nwr.SwapPattern
	flips circuit.Register
	// Preparation of the selectors.
	prep grover.Preparation
	// Set once the amplification has been written.
	built bool
}

// Circuit returns the circuit being built.
func (p *search) Circuit() *circuit.Circuit {
	return p.circuit
}

// Selectors returns the selector qubits, one per (padded) column.
func (p *search) Selectors() circuit.View {
	return p.selectors.View()
}

// SwapPattern returns the swap network driving the selectors, or nil outside
// BENES mode.
func (p *search) SwapPattern() *nwr.SwapPattern {
	return p.swap
}

// Allocate the selectors (and flips) of a BENES preparation choosing w of n
// columns.
func (p *search) allocateBenes(n uint, w uint) error {
	var err error
	//
	if p.swap, err = swapPattern(p.options.Cache, n, w); err != nil {
		return err
	} else if p.selectors, err = p.circuit.AddRegister("select", p.swap.NLines); err != nil {
		return err
	} else if p.flips, err = p.circuit.AddRegister("flip", p.swap.NFlips); err != nil {
		return err
	}
	//
	p.prep = &grover.Benes{Pattern: p.swap, Selectors: p.selectors.View(), Flips: p.flips.View()}
	//
	return nil
}

// Allocate the ancillas needed by multi-controlled NOTs of the given fan-ins,
// including the inversion about zero.
func (p *search) allocateAncillas(fanin ...uint) error {
	fanin = append(fanin, p.prep.DiffusionQubits().Len()-1)
	//
	if need := p.options.Mct.AncillasRequired(slices.Max(fanin)); need > 0 {
		anc, err := p.circuit.AddRegister("mct_anc", need)
		if err != nil {
			return err
		}
		//
		p.ancillas = anc.View()
	}
	//
	log.Debugf("%d qubits allocated for %s", p.circuit.Width(), p.circuit.Name())
	//
	return nil
}

// Write the amplification of a given oracle into the circuit.
func (p *search) build(oracle grover.Stage) (uint, error) {
	if p.built {
		return 0, fault.InvalidParameter("%s already built", p.circuit.Name())
	}
	//
	p.built = true
	ctrl := grover.NewController(p.prep, oracle, p.ancillas, p.options.Mct)
	ctrl.Rounds = p.options.Rounds
	//
	if p.options.Measure {
		ctrl.Measure = p.measure
	}
	//
	rounds, err := ctrl.Build(p.circuit)
	if err != nil {
		return 0, err
	}
	//
	log.Infof("built %s with %d rounds (%s)", p.circuit.Name(), rounds, circuit.Stats(p.circuit).String())
	//
	return rounds, nil
}

func (p *search) measure(c *circuit.Circuit) error {
	c.Measure("out", p.selectors.View())
	//
	if p.options.MeasureFlips && p.swap != nil {
		c.Measure("flips", p.flips.View())
	}
	//
	return nil
}

// Add each column of the matrix into the sum register, conditioned on its
// selector.  The inverse walks the columns backwards.  Selectors beyond the
// last column (padding) select nothing.
func (p *search) addColumns(c *circuit.Circuit, sum circuit.View, inverse bool) error {
	var (
		n         = p.problem.Columns()
		selectors = p.selectors.View()
	)
	//
	c.Barrier()
	//
	for j := uint(0); j < n; j++ {
		i := j
		//
		if inverse {
			i = n - 1 - j
		}
		// A single control needs no ancilla
		_, err := network.InitBitsControlled(c, sum, p.problem.Column(i), circuit.View{selectors[i]}, nil,
			circuit.NOANCILLA)
		if err != nil {
			return err
		}
	}
	//
	c.Barrier()
	//
	return nil
}

// Write the given bits into the sum register.  This is its own inverse.
func (p *search) initSum(c *circuit.Circuit, sum circuit.View, bits []uint8) error {
	c.Barrier()
	//
	if err := network.InitBits(c, sum, bits); err != nil {
		return err
	}
	//
	c.Barrier()
	//
	return nil
}

// Allocate a weight check over the given lines.
func (p *search) allocateCheck(pattern *nwr.AdderPattern, lines circuit.View, cin circuit.Qubit,
	suffix string) (*network.WeightCheck, error) {
	couts, err := p.circuit.AddRegister(suffix+"cout", pattern.NCouts)
	if err != nil {
		return nil, err
	}
	//
	eq, err := p.circuit.AddRegister(suffix+"eq", 1)
	if err != nil {
		return nil, err
	}
	//
	return &network.WeightCheck{
		Pattern: pattern,
		AdderRegisters: network.AdderRegisters{
			Lines:   lines,
			CarryIn: cin,
			Carries: couts.View(),
		},
		Flag: eq.Qubit(0),
		Mode: p.options.Mct,
	}, nil
}

func swapPattern(cache *nwr.Cache, n, w uint) (*nwr.SwapPattern, error) {
	if cache != nil {
		return cache.SwapPattern(n, w)
	}
	//
	return nwr.CompileSwapPatternTraced(n, w, log.StandardLogger())
}

func adderPattern(cache *nwr.Cache, n uint) (*nwr.AdderPattern, error) {
	if cache != nil {
		return cache.AdderPattern(n)
	}
	//
	return nwr.CompileAdderPatternTraced(n, log.StandardLogger())
}
