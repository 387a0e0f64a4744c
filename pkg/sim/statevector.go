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
package sim

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_MAX_WIDTH is the default limit on the number of qubits simulated.
// The state vector holds 2^width amplitudes of 16 bytes each.
const DEFAULT_MAX_WIDTH = 24

// StateVector is a dense state-vector simulator.  Measurements must be
// terminal, i.e. no gate may act on a qubit after it is measured; they are
// sampled from the final state.
type StateVector struct {
	// Number of shots to sample.
	Shots uint
	// Seed of the sampler.
	Seed uint64
	// Largest number of qubits accepted (DEFAULT_MAX_WIDTH when zero).
	MaxWidth uint
}

// Records that a given qubit was measured into a given classical bit.
type measurement struct {
	qubit circuit.Qubit
	clbit uint
}

// Execute simulates the circuit from the all-zero state.  Cancellation is
// checked between gates.
func (p *StateVector) Execute(ctx context.Context, c *circuit.Circuit) (*Result, error) {
	var (
		width    = c.Width()
		maxWidth = p.MaxWidth
		measured []measurement
	)
	//
	if maxWidth == 0 {
		maxWidth = DEFAULT_MAX_WIDTH
	}
	//
	if width > maxWidth {
		return nil, fault.InsufficientResource("%d qubits exceed simulator limit of %d", width, maxWidth)
	}
	//
	log.Debugf("simulating %s over %d amplitudes", c.String(), uint64(1)<<width)
	//
	var (
		amps    = make([]complex128, 1<<width)
		scratch = make([]complex128, 1<<width)
		done    = make([]bool, width)
	)
	//
	amps[0] = 1
	//
	for i, g := range c.Gates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		//
		for _, q := range g.Qubits() {
			if done[q] && g.Kind != circuit.BARRIER {
				return nil, fault.InvalidParameter("gate %d (%s) acts on measured qubit %s", i, g.String(), q)
			}
		}
		//
		switch g.Kind {
		case circuit.H:
			hadamard(amps, g.Targets[0])
		case circuit.BARRIER:
		case circuit.MEASURE:
			for j, q := range g.Targets {
				measured = append(measured, measurement{q, g.Clbits[j]})
				done[q] = true
			}
		default:
			permute(amps, scratch, &g)
			amps, scratch = scratch, amps
		}
	}
	//
	result := &Result{Amplitudes: amps}
	//
	if len(measured) > 0 && p.Shots > 0 {
		result.Counts = p.sample(amps, measured, c.ClassicalWidth())
	}
	//
	return result, nil
}

// Draw shots from the distribution given by the amplitudes, keeping only the
// measured qubits.
func (p *StateVector) sample(amps []complex128, measured []measurement, nbits uint) map[string]uint {
	var (
		rng    = rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
		cdf    = make([]float64, len(amps))
		total  float64
		counts = make(map[string]uint)
		key    = make([]byte, nbits)
	)
	//
	for i, amp := range amps {
		total += real(amp)*real(amp) + imag(amp)*imag(amp)
		cdf[i] = total
	}
	//
	for s := uint(0); s < p.Shots; s++ {
		// Largest index guards against rounding at the top of the cdf.
		index, _ := slices.BinarySearch(cdf, rng.Float64()*total)
		index = min(index, len(cdf)-1)
		//
		for i := range key {
			key[i] = '0'
		}
		//
		for _, m := range measured {
			key[m.clbit] = '0' + byte((index>>m.qubit)&1)
		}
		//
		counts[string(key)]++
	}
	//
	return counts
}

func hadamard(amps []complex128, q circuit.Qubit) {
	var (
		mask = 1 << q
		s    = complex(1/math.Sqrt2, 0)
	)
	//
	for i := range amps {
		if i&mask == 0 {
			a, b := amps[i], amps[i|mask]
			amps[i], amps[i|mask] = (a+b)*s, (a-b)*s
		}
	}
}

// Apply a gate which permutes basis states, writing the result into out.
func permute(amps []complex128, out []complex128, g *circuit.Gate) {
	for i, amp := range amps {
		out[basisImage(g, i)] = amp
	}
}

// Image of a basis state under a permutation gate.
func basisImage(g *circuit.Gate, i int) int {
	for _, c := range g.Controls {
		if (i>>c)&1 == 0 {
			return i
		}
	}
	//
	switch g.Kind {
	case circuit.CSWAP:
		var (
			a, b   = g.Targets[0], g.Targets[1]
			ba, bb = (i >> a) & 1, (i >> b) & 1
		)
		//
		if ba != bb {
			i ^= (1 << a) | (1 << b)
		}
		//
		return i
	default:
		return i ^ (1 << g.Targets[0])
	}
}
