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
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/sim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ComputeRounds_Examples(t *testing.T) {
	for _, c := range []struct {
		n      float64
		rounds uint
	}{{2, 1}, {4, 1}, {6, 1}, {8, 2}, {16, 3}, {64, 6}, {1024, 25}} {
		rounds, err := ComputeRounds(c.n)
		require.NoError(t, err)
		assert.Equal(t, c.rounds, rounds, "N=%v", c.n)
	}
}

func Test_ComputeRounds_Monotone(t *testing.T) {
	var last uint = 1
	//
	for n := 2; n < 100000; n += 7 {
		rounds, err := ComputeRounds(float64(n))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rounds, last)
		//
		last = rounds
	}
}

func Test_ComputeRounds_Invalid(t *testing.T) {
	for _, n := range []float64{1, 0.5, 0, -4} {
		_, err := ComputeRounds(n)
		assert.True(t, errors.Is(err, fault.ErrInvalidParameter), "N=%v", n)
	}
}

func Test_ComputeRounds_Large(t *testing.T) {
	// C(128,64) candidates still have a representable round count
	rounds, err := ComputeRounds(2.3951146041928085e37)
	require.NoError(t, err)
	assert.InEpsilon(t, 3.84e18, float64(rounds), 0.01)
	// 2^256 candidates do not
	_, err = ComputeRounds(math.Exp2(256))
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
}

func Test_Controller_Order(t *testing.T) {
	var (
		trace  []string
		record = func(name string) Stage {
			return func(c *circuit.Circuit) error {
				trace = append(trace, name)
				return nil
			}
		}
		ctrl = Controller{
			Init:           record("init"),
			Prepare:        record("prepare"),
			Oracle:         record("oracle"),
			PrepareInverse: record("prepare_inverse"),
			Diffuse:        record("diffuse"),
			Measure:        record("measure"),
			Rounds:         2,
		}
	)
	//
	rounds, err := ctrl.Build(circuit.NewCircuit(t.Name()))
	require.NoError(t, err)
	assert.Equal(t, uint(2), rounds)
	assert.Equal(t, []string{
		"init", "prepare",
		"oracle", "prepare_inverse", "diffuse", "prepare",
		"oracle", "prepare_inverse", "diffuse", "prepare",
		"measure",
	}, trace)
}

func Test_Controller_Observer(t *testing.T) {
	var (
		states []string
		noop   = func(*circuit.Circuit) error { return nil }
		ctrl   = Controller{
			Prepare:           noop,
			Oracle:            noop,
			Diffuse:           noop,
			SolutionSpaceSize: 4,
			Observer: func(s State, r uint) {
				states = append(states, fmt.Sprintf("%s/%d", s, r))
			},
		}
	)
	//
	_, err := ctrl.Build(circuit.NewCircuit(t.Name()))
	require.NoError(t, err)
	// Optional stages which are not given are skipped.
	assert.Equal(t, []string{"prepare/0", "oracle/1", "prepare_inverse/1", "diffuse/1", "prepare/1", "done/1"},
		states)
}

func Test_Controller_Abort(t *testing.T) {
	var (
		calls  int
		noop   = func(*circuit.Circuit) error { calls++; return nil }
		broken = errors.Wrap(fault.ErrInsufficientResource, "broken")
		ctrl   = Controller{
			Prepare: noop,
			Oracle:  noop,
			Diffuse: func(*circuit.Circuit) error { return broken },
			Measure: noop,
			Rounds:  3,
		}
	)
	//
	_, err := ctrl.Build(circuit.NewCircuit(t.Name()))
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
	// Prepare, oracle, derived inverse (not counted) then diffuse fails.
	assert.Equal(t, 2, calls)
}

func Test_Controller_Missing(t *testing.T) {
	_, err := (&Controller{Rounds: 1}).Build(circuit.NewCircuit(t.Name()))
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	//
	noop := func(*circuit.Circuit) error { return nil }
	_, err = (&Controller{Prepare: noop, Oracle: noop, Diffuse: noop, SolutionSpaceSize: 1}).
		Build(circuit.NewCircuit(t.Name()))
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
}

func Test_Controller_DerivedInverse(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	//
	ctrl := Controller{
		Prepare: func(c *circuit.Circuit) error {
			c.H(q.Qubit(0))
			c.CX(q.Qubit(0), q.Qubit(1))
			c.X(q.Qubit(2))
			return nil
		},
		Oracle:  func(*circuit.Circuit) error { return nil },
		Diffuse: func(*circuit.Circuit) error { return nil },
		Rounds:  1,
	}
	//
	_, err = ctrl.Build(c)
	require.NoError(t, err)
	//
	gates := c.Gates()
	require.Len(t, gates, 9)
	// The inverse mirrors the first preparation
	for i := 0; i < 3; i++ {
		assert.Equal(t, gates[i], gates[5-i])
		assert.Equal(t, gates[i], gates[6+i])
	}
}

func Test_InversionAboutZero(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 4)
	require.NoError(t, err)
	//
	require.NoError(t, InversionAboutZero(c, q.View()[:1], nil, circuit.NOANCILLA))
	assert.Equal(t, 0, c.Len())
	//
	require.NoError(t, InversionAboutZero(c, q.View(), nil, circuit.NOANCILLA))
	info := circuit.Stats(c)
	assert.Equal(t, uint(8), info.Counts[circuit.X])
	assert.Equal(t, uint(2), info.Counts[circuit.H])
	assert.Equal(t, uint(1), info.Counts[circuit.MCX])
	//
	err = InversionAboutZero(c, q.View(), nil, circuit.BASIC)
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
	err = InversionAboutZero(c, nil, nil, circuit.BASIC)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
}

func Test_InversionAboutZero_Unallocated(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 4)
	require.NoError(t, err)
	//
	err = InversionAboutZero(c, circuit.Concat(q.View(), circuit.View{4}), nil, circuit.NOANCILLA)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	// Ancilla beyond the circuit
	err = InversionAboutZero(c, q.View(), circuit.View{7}, circuit.ADVANCED)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
}

// Search for one of eight strings, which takes two rounds.
func Test_Grover_Fpc(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("select", 3)
	require.NoError(t, err)
	//
	prep := &Fpc{q.View()}
	ctrl := NewController(prep, markString(q.View(), []uint8{1, 0, 1}), nil, circuit.NOANCILLA)
	rounds, err := ctrl.Build(c)
	require.NoError(t, err)
	assert.Equal(t, uint(2), rounds)
	//
	result, err := (&sim.StateVector{}).Execute(context.Background(), c)
	require.NoError(t, err)
	assert.InDelta(t, 0.945, result.Marginal(q.View())["101"], 0.001)
}

// Search for one of the four strings of weight one, which succeeds with
// certainty after a single round.
func Test_Grover_Benes(t *testing.T) {
	var (
		c         = circuit.NewCircuit(t.Name())
		pattern   = compileSwap(t, 4, 1)
		sel, err1 = c.AddRegister("select", pattern.NLines)
		flip, err = c.AddRegister("flip", pattern.NFlips)
	)
	//
	require.NoError(t, err1)
	require.NoError(t, err)
	//
	prep := &Benes{pattern, sel.View(), flip.View()}
	assert.Equal(t, float64(4), prep.DomainSize())
	//
	ctrl := NewController(prep, markString(sel.View(), []uint8{0, 0, 1, 0}), nil, circuit.NOANCILLA)
	rounds, err := ctrl.Build(c)
	require.NoError(t, err)
	assert.Equal(t, uint(1), rounds)
	//
	result, err := (&sim.StateVector{}).Execute(context.Background(), c)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Marginal(sel.View())["0010"], 1e-9)
}

// Strings of weight two are not prepared uniformly (two of the sixteen flip
// outcomes yield "1001"), but amplification still favours the marked one.
func Test_Grover_Benes_Weighted(t *testing.T) {
	var (
		c         = circuit.NewCircuit(t.Name())
		pattern   = compileSwap(t, 4, 2)
		sel, err1 = c.AddRegister("select", pattern.NLines)
		flip, err = c.AddRegister("flip", pattern.NFlips)
	)
	//
	require.NoError(t, err1)
	require.NoError(t, err)
	//
	prep := &Benes{pattern, sel.View(), flip.View()}
	ctrl := NewController(prep, markString(sel.View(), []uint8{1, 0, 0, 1}), nil, circuit.NOANCILLA)
	ctrl.Measure = func(c *circuit.Circuit) error {
		c.Measure("out", sel.View())
		return nil
	}
	//
	_, err = ctrl.Build(c)
	require.NoError(t, err)
	//
	result, err := (&sim.StateVector{Shots: 1000, Seed: 7}).Execute(context.Background(), c)
	require.NoError(t, err)
	// sin^2(3 asin(sqrt(1/8)))
	assert.InDelta(t, 0.781, result.Marginal(sel.View())["1001"], 0.001)
	//
	best, _, ok := result.MostFrequent()
	assert.True(t, ok)
	assert.Equal(t, "1001", best)
}

func Test_ParseNwrMode(t *testing.T) {
	mode, err := ParseNwrMode("FPC")
	require.NoError(t, err)
	assert.Equal(t, FPC, mode)
	//
	_, err = ParseNwrMode("butterfly")
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
}

func Test_Fpc_DomainSize(t *testing.T) {
	prep := &Fpc{circuit.View{0, 1, 2, 3, 4}}
	assert.Equal(t, float64(32), prep.DomainSize())
}

// Phase flip on the given string of the given qubits.
func markString(qubits circuit.View, bits []uint8) Stage {
	return func(c *circuit.Circuit) error {
		var (
			n     = len(qubits)
			zeros circuit.View
		)
		//
		for i, b := range bits {
			if b == 0 {
				zeros = append(zeros, qubits[i])
			}
		}
		//
		c.X(zeros...)
		c.H(qubits[n-1])
		//
		if err := c.Mcx(qubits[:n-1], qubits[n-1], nil, circuit.NOANCILLA); err != nil {
			return err
		}
		//
		c.H(qubits[n-1])
		c.X(zeros...)
		//
		return nil
	}
}

func compileSwap(t *testing.T, n, w uint) *nwr.SwapPattern {
	pattern, err := nwr.CompileSwapPattern(n, w)
	require.NoError(t, err)
	//
	return pattern
}
