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
	"fmt"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/grover"
	"github.com/consensys/go-qisd/pkg/network"
	"github.com/consensys/go-qisd/pkg/sim"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Bruteforce searches every selection of w columns of the parity-check matrix
// for one summing to the syndrome.  Each selector qubit chooses one column;
// the oracle adds the chosen columns into a sum register, compares it with
// the syndrome and flips the phase on a match.
type Bruteforce struct {
	search
	// Sum of the selected columns.
	sum circuit.Register
	// Weight check (FPC only).
	check *network.WeightCheck
}

// NewBruteforce allocates the registers of a bruteforce circuit for a given
// problem.
func NewBruteforce(problem *Problem, options Options) (*Bruteforce, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	//
	var (
		n    = problem.Columns()
		r    = problem.Rows()
		name = fmt.Sprintf("bruteforce_%d_%d_%d_%s_%s", n, r, problem.W, options.Mct, options.Nwr)
		p    = &Bruteforce{search: search{problem: problem, options: options, circuit: circuit.NewCircuit(name)}}
		// Fan-in of every multi-controlled NOT, to size the ancillas
		fanin []uint
		err   error
	)
	//
	log.Infof("n: %d, r: %d, w: %d, syndrome: %v", n, r, problem.W, problem.Syndrome)
	//
	switch options.Nwr {
	case grover.BENES:
		if err := p.allocateBenes(n, problem.W); err != nil {
			return nil, err
		}
		// Phase flip of the correct state
		fanin = append(fanin, r-1)
	case grover.FPC:
		pattern, err := adderPattern(options.Cache, n)
		if err != nil {
			return nil, err
		}
		//
		cin, err := p.circuit.AddRegister("cin", 1)
		if err != nil {
			return nil, err
		} else if p.selectors, err = p.circuit.AddRegister("select", pattern.NLines); err != nil {
			return nil, err
		} else if p.check, err = p.allocateCheck(pattern, p.selectors.View(), cin.Qubit(0), ""); err != nil {
			return nil, err
		}
		//
		p.prep = &grover.Fpc{Selectors: p.selectors.View()}
		// Weight check, then phase flip of the correct state (with the flag)
		fanin = append(fanin, uint(len(pattern.Results)), r)
	default:
		return nil, fault.InvalidParameter("unknown nwr mode %s", options.Nwr)
	}
	//
	if p.sum, err = p.circuit.AddRegister("sum", r); err != nil {
		return nil, err
	} else if err = p.allocateAncillas(fanin...); err != nil {
		return nil, err
	}
	//
	if p.check != nil {
		p.check.Ancillas = p.ancillas
	}
	//
	return p, nil
}

// Build writes the amplification into the circuit, returning the number of
// rounds.
func (p *Bruteforce) Build() (uint, error) {
	return p.build(p.oracle)
}

// Run builds the circuit (with measurement), executes it on the given backend
// and decodes the result.
func (p *Bruteforce) Run(ctx context.Context, backend sim.Backend) (*Result, error) {
	p.options.Measure = true
	//
	return run(ctx, backend, p)
}

// Decode reads the error vector from the most frequent outcome of a run.
// Outcomes begin with the selectors (selector 0 leftmost), followed by the
// flips when they were measured.
func (p *Bruteforce) Decode(outcome *sim.Result, rounds uint) (*Result, error) {
	result, selectors, err := p.decode(outcome, rounds)
	if err != nil {
		return nil, err
	}
	//
	result.Error = selectors[:p.problem.Columns()]
	result.Valid = p.validSelectors(selectors) && p.problem.Satisfies(result.Error)
	//
	return result, nil
}

func (p *Bruteforce) oracle(c *circuit.Circuit) error {
	if err := p.addColumns(c, p.sum.View(), false); err != nil {
		return err
	} else if err := p.syndromeToGates(c); err != nil {
		return err
	}
	//
	if p.check != nil {
		if err := network.CheckWeight(c, p.check, int(p.problem.W)); err != nil {
			return err
		}
	}
	//
	if err := p.flipCorrectState(c); err != nil {
		return err
	}
	//
	if p.check != nil {
		if err := network.UncheckWeight(c, p.check, int(p.problem.W), true); err != nil {
			return err
		}
	}
	//
	if err := p.syndromeToGates(c); err != nil {
		return err
	}
	//
	return p.addColumns(c, p.sum.View(), true)
}

// Complement the sum bits where the syndrome is zero, such that the sum
// register is all ones exactly when the selected columns sum to the syndrome.
func (p *Bruteforce) syndromeToGates(c *circuit.Circuit) error {
	return p.initSum(c, p.sum.View(), util_math.NegateBits(p.problem.Syndrome))
}

// Flip the phase of the state where the sum register is all ones (and, for
// FPC, the weight flag is raised), as a multi-controlled NOT between two
// Hadamards.
func (p *Bruteforce) flipCorrectState(c *circuit.Circuit) error {
	var (
		target   = p.sum.Qubit(0)
		controls = p.sum.View()[1:]
	)
	//
	if p.check != nil {
		controls = circuit.Concat(circuit.View{p.check.Flag}, controls)
	}
	//
	c.Barrier()
	c.H(target)
	//
	if err := c.Mcx(controls, target, p.ancillas, p.options.Mct); err != nil {
		return err
	}
	//
	c.H(target)
	c.Barrier()
	//
	return nil
}
