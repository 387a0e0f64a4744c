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
// Package sim provides reference backends for executing circuits: a classical
// evaluator which follows a single computational path, and a dense
// state-vector simulator for small circuits.
package sim

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/consensys/go-qisd/pkg/circuit"
)

// Backend executes a circuit.  Execution may be long running, hence backends
// honour cancellation of the given context.
type Backend interface {
	Execute(ctx context.Context, circuit *circuit.Circuit) (*Result, error)
}

// Result of executing a circuit.
type Result struct {
	// Number of shots yielding each classical outcome.  Outcomes are written
	// with classical bit 0 leftmost.
	Counts map[string]uint `json:"counts"`
	// Final amplitudes, indexed by basis state with qubit 0 as the least
	// significant bit.  Only available from simulators.
	Amplitudes []complex128 `json:"-"`
}

// Shots returns the total number of shots recorded in this result.
func (p *Result) Shots() uint {
	var n uint
	//
	for _, c := range p.Counts {
		n += c
	}
	//
	return n
}

// MostFrequent returns the outcome observed most often, breaking ties by
// lexicographic order.  The flag is false when nothing was observed.
func (p *Result) MostFrequent() (string, uint, bool) {
	var (
		best  string
		count uint
	)
	//
	for outcome, n := range p.Counts {
		if n > count || (n == count && strings.Compare(outcome, best) < 0) {
			best, count = outcome, n
		}
	}
	//
	return best, count, count > 0
}

// Marginal returns the probability of each outcome of the given qubits,
// computed from the amplitudes.  Outcomes are written with the first qubit of
// the view leftmost.  Outcomes of (near) zero probability are omitted.
func (p *Result) Marginal(qubits circuit.View) map[string]float64 {
	var (
		dist = make(map[string]float64)
		key  = make([]byte, len(qubits))
	)
	//
	for i, amp := range p.Amplitudes {
		prob := real(amp)*real(amp) + imag(amp)*imag(amp)
		//
		if prob < 1e-12 {
			continue
		}
		//
		for j, q := range qubits {
			key[j] = '0' + byte((i>>q)&1)
		}
		//
		dist[string(key)] += prob
	}
	//
	return dist
}

// Outcomes returns the observed outcomes ordered by decreasing count.
func (p *Result) Outcomes() []string {
	var outcomes []string
	//
	for o := range p.Counts {
		outcomes = append(outcomes, o)
	}
	//
	slices.SortFunc(outcomes, func(a, b string) int {
		if c := cmp.Compare(p.Counts[b], p.Counts[a]); c != 0 {
			return c
		}
		//
		return strings.Compare(a, b)
	})
	//
	return outcomes
}
