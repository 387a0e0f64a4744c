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
package network

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/sim"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Swap network
// ============================================================================

func Test_EmitSwap_Replay(t *testing.T) {
	for _, nw := range [][2]uint{{4, 1}, {4, 2}, {4, 3}, {8, 3}, {8, 6}} {
		pattern, c, lines, flips := swapCircuit(t, nw[0], nw[1])
		require.NoError(t, EmitSwap(c, pattern, lines, flips, Forward))
		//
		seen := make(map[string]bool)
		//
		for coins := range allCoins(pattern.NFlips) {
			state, err := sim.Evaluate(c, bitset.New(c.Width()), coins)
			require.NoError(t, err)
			//
			expected, err := pattern.Replay(coins)
			require.NoError(t, err)
			//
			actual := sim.Read(state, lines)
			assert.Equal(t, expected, actual)
			assert.Equal(t, nw[1], util_math.HammingWeight(actual))
			//
			seen[util_math.FormatBits(actual)] = true
		}
		//
		assert.Equal(t, util_math.Binomial(nw[0], nw[1]), float64(len(seen)), "n=%d, w=%d", nw[0], nw[1])
	}
}

func Test_EmitSwap_RoundTrip(t *testing.T) {
	for _, nw := range [][2]uint{{4, 1}, {4, 3}, {8, 2}, {8, 5}} {
		pattern, c, lines, flips := swapCircuit(t, nw[0], nw[1])
		require.NoError(t, EmitSwap(c, pattern, lines, flips, Forward))
		require.NoError(t, EmitSwap(c, pattern, lines, flips, Inverse))
		//
		for coins := range allCoins(pattern.NFlips) {
			// The inverse revisits each flip, following the same branch back.
			state, err := sim.Evaluate(c, bitset.New(c.Width()), append(coins, coins...))
			require.NoError(t, err)
			assert.Equal(t, uint(0), state.Count())
		}
	}
}

func Test_EmitSwap_StateVector(t *testing.T) {
	pattern, c, lines, flips := swapCircuit(t, 4, 2)
	require.NoError(t, EmitSwap(c, pattern, lines, flips, Forward))
	//
	result, err := (&sim.StateVector{}).Execute(context.Background(), c)
	require.NoError(t, err)
	//
	dist := result.Marginal(lines)
	assert.Len(t, dist, 6)
	//
	for outcome := range dist {
		bits, err := util_math.ParseBits(outcome)
		require.NoError(t, err)
		assert.Equal(t, uint(2), util_math.HammingWeight(bits))
	}
}

func Test_EmitSwap_Invalid(t *testing.T) {
	pattern, c, lines, flips := swapCircuit(t, 4, 1)
	//
	err := EmitSwap(c, pattern, lines[:3], flips, Forward)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	err = EmitSwap(c, pattern, lines, flips[1:], Forward)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	err = EmitSwap(c, pattern, lines, lines[:pattern.NFlips], Forward)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
}

// ============================================================================
// Adder tree
// ============================================================================

func Test_EmitAdder_Exhaustive_4(t *testing.T) {
	checkAdderExhaustive(t, 4)
}

func Test_EmitAdder_Exhaustive_8(t *testing.T) {
	checkAdderExhaustive(t, 8)
}

func Test_EmitAdder_Sampled_16(t *testing.T) {
	var (
		pattern, c, regs = adderCircuit(t, 16)
		rng              = rand.New(rand.NewPCG(1, 2))
	)
	//
	require.NoError(t, EmitAdder(c, pattern, regs, Forward))
	//
	for i := 0; i < 200; i++ {
		checkAdder(t, c, pattern, regs, rng.Uint64N(1<<16))
	}
}

func Test_EmitAdder_RoundTrip(t *testing.T) {
	for _, n := range []uint{4, 8, 16} {
		var (
			pattern, c, regs = adderCircuit(t, n)
			rng              = rand.New(rand.NewPCG(3, uint64(n)))
		)
		//
		require.NoError(t, EmitAdder(c, pattern, regs, Forward))
		require.NoError(t, EmitAdder(c, pattern, regs, Inverse))
		//
		for i := 0; i < 100; i++ {
			in := bitset.From([]uint64{rng.Uint64N(1 << n)})
			out, err := sim.Evaluate(c, in, nil)
			require.NoError(t, err)
			assert.True(t, in.Equal(out), "lines %s", in.String())
		}
	}
}

func Test_EmitAdder_Invalid(t *testing.T) {
	pattern, c, regs := adderCircuit(t, 4)
	//
	bad := *regs
	bad.Lines = regs.Lines[:3]
	assert.True(t, errors.Is(EmitAdder(c, pattern, &bad, Forward), fault.ErrInvalidParameter))
	//
	bad = *regs
	bad.Carries = regs.Carries[:2]
	assert.True(t, errors.Is(EmitAdder(c, pattern, &bad, Forward), fault.ErrInvalidParameter))
	//
	bad = *regs
	bad.CarryIn = regs.Lines[0]
	assert.True(t, errors.Is(EmitAdder(c, pattern, &bad, Inverse), fault.ErrInvalidParameter))
	//
	assert.Equal(t, 0, c.Len())
}

// ============================================================================
// Weight check
// ============================================================================

func Test_CheckWeight(t *testing.T) {
	for _, mode := range []circuit.MctMode{circuit.NOANCILLA, circuit.BASIC, circuit.ADVANCED} {
		for target := 0; target <= 4; target++ {
			check, c := weightCircuit(t, 4, mode)
			require.NoError(t, CheckWeight(c, check, target))
			//
			for lines := uint64(0); lines < 16; lines++ {
				out, err := sim.Evaluate(c, bitset.From([]uint64{lines}), nil)
				require.NoError(t, err)
				//
				weight := bitset.From([]uint64{lines}).Count()
				assert.Equal(t, weight == uint(target), out.Test(uint(check.Flag)), "lines %04b, target %d", lines,
					target)
			}
		}
	}
}

func Test_UncheckWeight(t *testing.T) {
	for target := 0; target <= 4; target++ {
		for _, unflag := range []bool{false, true} {
			check, c := weightCircuit(t, 4, circuit.BASIC)
			require.NoError(t, CheckWeight(c, check, target))
			require.NoError(t, UncheckWeight(c, check, target, unflag))
			//
			for lines := uint64(0); lines < 16; lines++ {
				in := bitset.From([]uint64{lines})
				out, err := sim.Evaluate(c, in, nil)
				require.NoError(t, err)
				//
				raised := !unflag && in.Count() == uint(target)
				assert.Equal(t, raised, out.Test(uint(check.Flag)))
				// Everything else is restored
				out.Clear(uint(check.Flag))
				assert.True(t, in.Equal(out))
			}
		}
	}
}

func Test_CheckWeight_OutOfRange(t *testing.T) {
	// Four lines have three result wires, hence 8 cannot be held.
	for _, target := range []int{-1, 8, 100} {
		check, c := weightCircuit(t, 4, circuit.NOANCILLA)
		require.NoError(t, CheckWeight(c, check, target))
		require.NoError(t, UncheckWeight(c, check, target, true))
		//
		for _, g := range c.Gates() {
			assert.NotContains(t, g.Qubits(), check.Flag)
		}
	}
}

func Test_CheckWeight_Ancillas(t *testing.T) {
	check, c := weightCircuit(t, 8, circuit.BASIC)
	// Four result wires need two ancillas
	check.Ancillas = check.Ancillas[:1]
	err := CheckWeight(c, check, 3)
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
	assert.Equal(t, 0, c.Len())
}

// ============================================================================
// Initialisation
// ============================================================================

func Test_InitInt(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 4)
	require.NoError(t, err)
	//
	require.NoError(t, InitInt(c, q.View(), 11))
	out, err := sim.Evaluate(c, bitset.New(4), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 0, 1}, sim.Read(out, q.View()))
	//
	assert.Error(t, InitInt(c, q.View(), 16))
}

func Test_InitBitsControlled(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	ctl, err := c.AddRegister("ctl", 3)
	require.NoError(t, err)
	anc, err := c.AddRegister("anc", 1)
	require.NoError(t, err)
	//
	emitted, err := InitBitsControlled(c, q.View(), []uint8{0, 0, 0}, ctl.View(), anc.View(), circuit.BASIC)
	require.NoError(t, err)
	assert.False(t, emitted)
	//
	emitted, err = InitBitsControlled(c, q.View(), []uint8{1, 0, 1}, ctl.View(), anc.View(), circuit.BASIC)
	require.NoError(t, err)
	assert.True(t, emitted)
	//
	for controls := uint64(0); controls < 8; controls++ {
		in := bitset.New(7)
		require.NoError(t, sim.Write(in, ctl.View(), []uint8{uint8(controls & 1), uint8(controls >> 1 & 1),
			uint8(controls >> 2)}))
		//
		out, err := sim.Evaluate(c, in, nil)
		require.NoError(t, err)
		//
		if controls == 7 {
			assert.Equal(t, []uint8{1, 0, 1}, sim.Read(out, q.View()))
		} else {
			assert.Equal(t, []uint8{0, 0, 0}, sim.Read(out, q.View()))
		}
		//
		assert.Equal(t, []uint8{0}, sim.Read(out, anc.View()))
	}
}

func Test_InitBitsControlled_Overlap(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 3)
	require.NoError(t, err)
	// The last bit targets the control itself
	_, err = InitBitsControlled(c, q.View(), []uint8{1, 0, 1}, circuit.View{q.Qubit(2)}, nil, circuit.NOANCILLA)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
	// Not enough ancillas for three controls
	ctl, err := c.AddRegister("ctl", 3)
	require.NoError(t, err)
	_, err = InitBitsControlled(c, q.View(), []uint8{1, 1}, ctl.View(), nil, circuit.BASIC)
	assert.True(t, errors.Is(err, fault.ErrInsufficientResource))
	assert.Equal(t, 0, c.Len())
}

func Test_InitBits_Unallocated(t *testing.T) {
	c := circuit.NewCircuit(t.Name())
	q, err := c.AddRegister("q", 2)
	require.NoError(t, err)
	//
	err = InitBits(c, circuit.Concat(q.View(), circuit.View{2}), []uint8{1, 0, 1})
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
	//
	_, err = InitBitsControlled(c, q.View(), []uint8{1, 1}, circuit.View{5}, nil, circuit.NOANCILLA)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
}

// ============================================================================
// Unallocated qubits
// ============================================================================

func Test_EmitSwap_Unallocated(t *testing.T) {
	pattern, err := nwr.CompileSwapPattern(4, 1)
	require.NoError(t, err)
	//
	c := circuit.NewCircuit(t.Name())
	lines := circuit.View{0, 1, 2, 3}
	flips := circuit.View{4, 5, 6}
	//
	err = EmitSwap(c, pattern, lines, flips, Forward)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
	// Lines allocated, flips not
	_, err = c.AddRegister("lines", 4)
	require.NoError(t, err)
	err = EmitSwap(c, pattern, lines, flips, Inverse)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
}

func Test_EmitAdder_Unallocated(t *testing.T) {
	pattern, err := nwr.CompileAdderPattern(4)
	require.NoError(t, err)
	//
	c := circuit.NewCircuit(t.Name())
	_, err = c.AddRegister("lines", 4)
	require.NoError(t, err)
	// Carries beyond the circuit
	regs := &AdderRegisters{Lines: circuit.View{0, 1, 2, 3}, CarryIn: 4, Carries: circuit.View{5, 6, 7}}
	//
	for _, dir := range []Direction{Forward, Inverse} {
		err = EmitAdder(c, pattern, regs, dir)
		assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
		assert.Equal(t, 0, c.Len())
	}
}

func Test_CheckWeight_Unallocated(t *testing.T) {
	check, c := weightCircuit(t, 4, circuit.ADVANCED)
	// Ancilla beyond the circuit
	check.Ancillas = circuit.View{circuit.Qubit(c.Width())}
	//
	err := CheckWeight(c, check, 2)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	err = UncheckWeight(c, check, 2, true)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, 0, c.Len())
}

// ============================================================================
// Helpers
// ============================================================================

func swapCircuit(t *testing.T, n, w uint) (*nwr.SwapPattern, *circuit.Circuit, circuit.View, circuit.View) {
	pattern, err := nwr.CompileSwapPattern(n, w)
	require.NoError(t, err)
	//
	c := circuit.NewCircuit(t.Name())
	lines, err := c.AddRegister("lines", pattern.NLines)
	require.NoError(t, err)
	flips, err := c.AddRegister("flips", pattern.NFlips)
	require.NoError(t, err)
	//
	return pattern, c, lines.View(), flips.View()
}

func adderCircuit(t *testing.T, n uint) (*nwr.AdderPattern, *circuit.Circuit, *AdderRegisters) {
	pattern, err := nwr.CompileAdderPattern(n)
	require.NoError(t, err)
	//
	c := circuit.NewCircuit(t.Name())
	lines, err := c.AddRegister("lines", pattern.NLines)
	require.NoError(t, err)
	cin, err := c.AddRegister("cin", 1)
	require.NoError(t, err)
	couts, err := c.AddRegister("couts", pattern.NCouts)
	require.NoError(t, err)
	//
	return pattern, c, &AdderRegisters{lines.View(), cin.Qubit(0), couts.View()}
}

func weightCircuit(t *testing.T, n uint, mode circuit.MctMode) (*WeightCheck, *circuit.Circuit) {
	var (
		pattern, c, regs = adderCircuit(t, n)
		check            = &WeightCheck{Pattern: pattern, AdderRegisters: *regs, Mode: mode}
	)
	//
	flag, err := c.AddRegister("eq", 1)
	require.NoError(t, err)
	check.Flag = flag.Qubit(0)
	//
	if need := mode.AncillasRequired(uint(len(pattern.Results))); need > 0 {
		anc, err := c.AddRegister("anc", need)
		require.NoError(t, err)
		check.Ancillas = anc.View()
	}
	//
	return check, c
}

func checkAdderExhaustive(t *testing.T, n uint) {
	pattern, c, regs := adderCircuit(t, n)
	require.NoError(t, EmitAdder(c, pattern, regs, Forward))
	//
	for lines := uint64(0); lines < 1<<n; lines++ {
		checkAdder(t, c, pattern, regs, lines)
	}
}

func checkAdder(t *testing.T, c *circuit.Circuit, pattern *nwr.AdderPattern, regs *AdderRegisters, lines uint64) {
	in := bitset.From([]uint64{lines})
	out, err := sim.Evaluate(c, in, nil)
	require.NoError(t, err)
	//
	count, err := util_math.IntFromBits(sim.Read(out, regs.Results(pattern)), true)
	require.NoError(t, err)
	assert.Equal(t, uint64(in.Count()), count, "lines %b", lines)
	// Agrees with the classical model of the pattern
	inBits := sim.Read(in, regs.Lines)
	l, k, err := pattern.Evaluate(inBits)
	require.NoError(t, err)
	assert.Equal(t, l, sim.Read(out, regs.Lines))
	assert.Equal(t, k, sim.Read(out, regs.Carries))
	assert.False(t, out.Test(uint(regs.CarryIn)))
}

// Enumerate every assignment of the given number of coins.
func allCoins(n uint) func(func([]bool) bool) {
	return func(yield func([]bool) bool) {
		for i := uint64(0); i < 1<<n; i++ {
			coins := make([]bool, n)
			//
			for j := range coins {
				coins[j] = (i>>j)&1 == 1
			}
			//
			if !yield(coins) {
				return
			}
		}
	}
}
