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
	"slices"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/grover"
	"github.com/consensys/go-qisd/pkg/network"
	"github.com/consensys/go-qisd/pkg/sim"
	log "github.com/sirupsen/logrus"
)

// LeeBrickell searches for the error vector of a problem in systematic form
// [V | I], where V has k columns.  Selectors choose p columns of V; the oracle
// adds the chosen columns to the syndrome in a sum register, and flips the
// phase when the residual left there has weight w - p.  The residual then
// covers the identity part of the error vector.
type LeeBrickell struct {
	search
	// Weight sought among the columns of V.
	weight uint
	// Selected columns plus the syndrome, padded to the adder lines.
	sum circuit.Register
	// Carry in shared by both weight checks.
	cin circuit.Register
	// Weight check of the selectors (FPC only).
	selCheck *network.WeightCheck
	// Weight check of the residual.
	leeCheck *network.WeightCheck
}

// NewLeeBrickell allocates the registers of a Lee-Brickell circuit for a
// problem whose matrix is the V of a systematic parity-check matrix [V | I].
// The weight of the problem is that of the complete error vector, of which p
// fall within V.
func NewLeeBrickell(problem *Problem, p uint, options Options) (*LeeBrickell, error) {
	var (
		k = problem.Columns()
		r = problem.Rows()
		w = problem.W
	)
	//
	if err := problem.validateMatrix(); err != nil {
		return nil, err
	} else if w == 0 || p > w || p > k {
		return nil, fault.InvalidParameter("weight %d with p %d infeasible for %d columns", w, p, k)
	} else if w-p > r {
		return nil, fault.InvalidParameter("weight %d with p %d infeasible for %d rows", w, p, r)
	}
	//
	var (
		name = fmt.Sprintf("lee_k%d_r%d_w%d_p%d_%s_%s", k, r, w, p, options.Mct, options.Nwr)
		lb   = &LeeBrickell{search: search{problem: problem, options: options, circuit: circuit.NewCircuit(name)},
			weight: p}
		fanin []uint
	)
	//
	log.Infof("k: %d, r: %d, w: %d, p: %d, syndrome: %v", k, r, w, p, problem.Syndrome)
	//
	switch options.Nwr {
	case grover.BENES:
		if err := lb.allocateBenes(k, p); err != nil {
			return nil, err
		}
	case grover.FPC:
		pattern, err := adderPattern(options.Cache, k)
		if err != nil {
			return nil, err
		} else if lb.selectors, err = lb.circuit.AddRegister("select", pattern.NLines); err != nil {
			return nil, err
		} else if lb.cin, err = lb.circuit.AddRegister("cin", 1); err != nil {
			return nil, err
		} else if lb.selCheck, err = lb.allocateCheck(pattern, lb.selectors.View(), lb.cin.Qubit(0), "f"); err != nil {
			return nil, err
		}
		//
		lb.prep = &grover.Fpc{Selectors: lb.selectors.View()}
		fanin = append(fanin, uint(len(pattern.Results)))
	default:
		return nil, fault.InvalidParameter("unknown nwr mode %s", options.Nwr)
	}
	//
	pattern, err := adderPattern(options.Cache, r)
	if err != nil {
		return nil, err
	} else if lb.sum, err = lb.circuit.AddRegister("sum", pattern.NLines); err != nil {
		return nil, err
	}
	// Both weight checks share the carry in
	if lb.selCheck == nil {
		if lb.cin, err = lb.circuit.AddRegister("cin", 1); err != nil {
			return nil, err
		}
	}
	//
	if lb.leeCheck, err = lb.allocateCheck(pattern, lb.sum.View(), lb.cin.Qubit(0), "l"); err != nil {
		return nil, err
	} else if err = lb.allocateAncillas(append(fanin, uint(len(pattern.Results)))...); err != nil {
		return nil, err
	}
	//
	lb.leeCheck.Ancillas = lb.ancillas
	//
	if lb.selCheck != nil {
		lb.selCheck.Ancillas = lb.ancillas
	}
	//
	return lb, nil
}

// Build writes the amplification into the circuit, returning the number of
// rounds.
func (p *LeeBrickell) Build() (uint, error) {
	return p.build(p.oracle)
}

// Run builds the circuit (with measurement), executes it on the given backend
// and decodes the result.
func (p *LeeBrickell) Run(ctx context.Context, backend sim.Backend) (*Result, error) {
	p.options.Measure = true
	//
	return run(ctx, backend, p)
}

// Decode reads the error vector from the most frequent outcome of a run.  The
// error vector is the selected columns of V followed by the residual they
// leave, and is valid when it satisfies the systematic problem [V | I].
func (p *LeeBrickell) Decode(outcome *sim.Result, rounds uint) (*Result, error) {
	result, selectors, err := p.search.decode(outcome, rounds)
	if err != nil {
		return nil, err
	}
	//
	e1 := selectors[:p.problem.Columns()]
	result.Error = slices.Concat(e1, p.problem.Residual(e1))
	result.Valid = p.validSelectors(selectors) && p.problem.Systematic().Satisfies(result.Error)
	//
	return result, nil
}

func (p *LeeBrickell) oracle(c *circuit.Circuit) error {
	var target = int(p.problem.W - p.weight)
	//
	if err := p.addColumns(c, p.sum.View(), false); err != nil {
		return err
	} else if err := p.initSum(c, p.sum.View(), p.problem.Syndrome); err != nil {
		return err
	}
	//
	if p.selCheck != nil {
		if err := network.CheckWeight(c, p.selCheck, int(p.weight)); err != nil {
			return err
		}
	}
	//
	if err := network.CheckWeight(c, p.leeCheck, target); err != nil {
		return err
	}
	//
	p.flipCorrectState(c)
	//
	if err := network.UncheckWeight(c, p.leeCheck, target, true); err != nil {
		return err
	}
	//
	if p.selCheck != nil {
		if err := network.UncheckWeight(c, p.selCheck, int(p.weight), true); err != nil {
			return err
		}
	}
	//
	if err := p.initSum(c, p.sum.View(), p.problem.Syndrome); err != nil {
		return err
	}
	//
	return p.addColumns(c, p.sum.View(), true)
}

// Flip the phase when the residual has the right weight (and, for FPC, so do
// the selectors).  Z is written as HXH, and CZ as H CX H.
func (p *LeeBrickell) flipCorrectState(c *circuit.Circuit) {
	var flag = p.leeCheck.Flag
	//
	c.Barrier()
	c.H(flag)
	//
	if p.selCheck != nil {
		c.CX(p.selCheck.Flag, flag)
	} else {
		c.X(flag)
	}
	//
	c.H(flag)
	c.Barrier()
}
