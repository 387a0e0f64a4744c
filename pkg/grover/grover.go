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
// Package grover assembles amplitude amplification circuits: an input
// preparation followed by a number of rounds, each made of an oracle marking
// the solutions and a diffusion reflecting about the prepared state.
package grover

import (
	"fmt"
	"math"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Stage writes one step of the amplification into a circuit.
type Stage func(c *circuit.Circuit) error

// State of a controller while building.
type State uint8

const (
	// INIT allocates and initialises registers.
	INIT State = iota
	// PREPARE puts the input in superposition over the search domain.
	PREPARE
	// ORACLE marks the solutions.
	ORACLE
	// PREPARE_INVERSE undoes the preparation.
	PREPARE_INVERSE
	// DIFFUSE reflects about the zero state.
	DIFFUSE
	// MEASURE reads out the result.
	MEASURE
	// DONE indicates the circuit is complete.
	DONE
)

var stateNames = []string{"init", "prepare", "oracle", "prepare_inverse", "diffuse", "measure", "done"}

func (p State) String() string {
	if int(p) < len(stateNames) {
		return stateNames[p]
	}
	//
	return fmt.Sprintf("state(%d)", uint8(p))
}

// ComputeRounds returns the number of rounds maximising the probability of
// observing the single solution in a search domain of n elements, namely
// round(pi / (4 * asin(1/sqrt(n))) - 1/2), but never fewer than one.
func ComputeRounds(n float64) (uint, error) {
	if !(n > 1) || math.IsInf(n, 1) {
		return 0, fault.InvalidParameter("no rounds for a domain of size %v", n)
	}
	//
	theta := math.Asin(1 / math.Sqrt(n))
	rounds := math.Round(math.Pi/(4*theta) - 0.5)
	//
	if rounds >= math.Exp2(64) {
		return 0, fault.InsufficientResource("%g rounds for a domain of size %g", rounds, n)
	}
	//
	return uint(max(rounds, 1)), nil
}

// Controller sequences the stages of an amplitude amplification circuit:
//
//	Init -> Prepare -> (Oracle -> PrepareInverse -> Diffuse -> Prepare) x rounds -> Measure -> Done
//
// Prepare, Oracle and Diffuse are required.  Init and Measure are optional.
// When PrepareInverse is not given, it is obtained by mirroring the gates the
// first Prepare emitted, which is valid since every unitary gate of a circuit
// is self inverse.
type Controller struct {
	Init           Stage
	Prepare        Stage
	Oracle         Stage
	PrepareInverse Stage
	Diffuse        Stage
	Measure        Stage
	// Size of the search domain, used to compute the number of rounds.
	SolutionSpaceSize float64
	// Number of rounds, overriding SolutionSpaceSize when positive.
	Rounds uint
	// Notified on entry to every state, when given.
	Observer func(state State, round uint)
}

// Schedule returns the number of rounds this controller will build.
func (p *Controller) Schedule() (uint, error) {
	if p.Rounds > 0 {
		return p.Rounds, nil
	}
	//
	return ComputeRounds(p.SolutionSpaceSize)
}

// Build writes the complete amplification into a circuit, returning the number
// of rounds built.  The first failing stage aborts the build.
func (p *Controller) Build(c *circuit.Circuit) (uint, error) {
	if p.Prepare == nil || p.Oracle == nil || p.Diffuse == nil {
		return 0, fault.InvalidParameter("controller requires prepare, oracle and diffuse stages")
	}
	//
	rounds, err := p.Schedule()
	if err != nil {
		return 0, err
	}
	//
	log.Debugf("building %d rounds of amplitude amplification", rounds)
	//
	if err := p.run(INIT, 0, c, p.Init); err != nil {
		return 0, err
	}
	//
	start := c.Len()
	//
	if err := p.run(PREPARE, 0, c, p.Prepare); err != nil {
		return 0, err
	}
	//
	inverse := p.PrepareInverse
	//
	if inverse == nil {
		end := c.Len()
		inverse = func(c *circuit.Circuit) error {
			return c.AppendInverse(start, end)
		}
	}
	//
	for r := uint(1); r <= rounds; r++ {
		if err := p.run(ORACLE, r, c, p.Oracle); err != nil {
			return 0, err
		} else if err := p.run(PREPARE_INVERSE, r, c, inverse); err != nil {
			return 0, err
		} else if err := p.run(DIFFUSE, r, c, p.Diffuse); err != nil {
			return 0, err
		} else if err := p.run(PREPARE, r, c, p.Prepare); err != nil {
			return 0, err
		}
	}
	//
	if err := p.run(MEASURE, rounds, c, p.Measure); err != nil {
		return 0, err
	}
	//
	p.notify(DONE, rounds)
	//
	return rounds, nil
}

func (p *Controller) run(state State, round uint, c *circuit.Circuit, stage Stage) error {
	if stage == nil {
		return nil
	}
	//
	p.notify(state, round)
	//
	if err := stage(c); err != nil {
		return errors.Wrapf(err, "%s (round %d)", state, round)
	}
	//
	return nil
}

func (p *Controller) notify(state State, round uint) {
	log.Tracef("round %d: %s", round, state)
	//
	if p.Observer != nil {
		p.Observer(state, round)
	}
}

// InversionAboutZero reflects the given qubits about the all-zero state, up to
// a global phase: it complements every qubit, applies a phase flip on the
// all-ones state as a controlled NOT between two Hadamards on the first qubit,
// then complements again.  A single qubit is left alone, since the reflection
// is then a global phase.
func InversionAboutZero(c *circuit.Circuit, qubits circuit.View, ancillas circuit.View,
	mode circuit.MctMode) error {
	switch len(qubits) {
	case 0:
		return fault.InvalidParameter("inversion about zero of no qubits")
	case 1:
		log.Debugf("inversion about zero of single qubit %s skipped", qubits[0])
		return nil
	}
	//
	var (
		first = qubits[0]
		rest  = qubits[1:]
	)
	//
	if need := mode.AncillasRequired(rest.Len()); ancillas.Len() < need {
		return fault.InsufficientResource("inversion about zero needs %d ancillas in %s mode, got %d", need, mode,
			len(ancillas))
	} else if !circuit.Concat(qubits, ancillas[:need]).Distinct() {
		return fault.InvalidParameter("inversion about zero over overlapping qubits")
	} else if err := c.CheckAllocated(qubits, ancillas[:need]); err != nil {
		return err
	}
	//
	c.X(qubits...)
	c.H(first)
	//
	if err := c.Mcx(rest, first, ancillas, mode); err != nil {
		return err
	}
	//
	c.H(first)
	c.X(qubits...)
	//
	return nil
}
