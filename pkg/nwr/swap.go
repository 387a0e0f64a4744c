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
package nwr

import (
	"fmt"

	"github.com/consensys/go-qisd/pkg/fault"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
)

// Swap is a single conditional swap of the network.  Lines I and J are
// exchanged when coin flip Flip is set.
type Swap struct {
	Flip uint `json:"flip"`
	I    uint `json:"i"`
	J    uint `json:"j"`
}

func (p Swap) String() string {
	return fmt.Sprintf("cswap(%d, %d, %d)", p.Flip, p.I, p.J)
}

// SwapPattern describes a swap network which generates every bit pattern of
// NLines bits with a given weight.  The network starts from ToNegateRange
// leading ones, applies the swaps in order (each controlled by its own coin
// flip) and, when Negated holds, complements the whole register at the end.
type SwapPattern struct {
	// Number of lines (a power of two) of the register being prepared.
	NLines uint `json:"n_lines"`
	// Number of coin flips needed, which equals the number of swaps.
	NFlips uint `json:"n_flips"`
	// Swaps in emission order.
	Swaps []Swap `json:"swaps"`
	// Number of leading lines initialised to one.
	ToNegateRange uint `json:"to_negate_range"`
	// Indicates the register is complemented after the swaps.  This happens
	// when the requested weight exceeds NLines/2, since C(n,w) == C(n,n-w)
	// and the complement needs fewer swaps.
	Negated bool `json:"negated"`
}

// CompileSwapPattern compiles the swap network generating all patterns of
// weight w over n lines, where n is rounded up to the next power of two.
func CompileSwapPattern(n uint, w uint) (*SwapPattern, error) {
	return CompileSwapPatternTraced(n, w, nil)
}

// CompileSwapPatternTraced is CompileSwapPattern reporting each emitted swap
// and recursion step to the given tracer.
func CompileSwapPatternTraced(n uint, w uint, tracer Tracer) (*SwapPattern, error) {
	var (
		lines = util_math.NextPowerOfTwo(n)
		ones  = w
		p     = &SwapPattern{NLines: lines}
		trace = orSilent(tracer)
	)
	//
	if n == 0 {
		return nil, fault.InvalidParameter("no lines to permute")
	} else if w == 0 || w >= lines {
		return nil, fault.InvalidParameter("no combination of %d lines with weight %d", lines, w)
	}
	// C(n,w) == C(n,n-w), so work with whichever has fewer ones.
	if w > lines/2 {
		ones = lines - w
		p.Negated = true
	}
	//
	p.ToNegateRange = ones
	p.Swaps = make([]Swap, 0, expectedSwaps(lines, ones))
	p.NFlips = p.compile(0, ones, lines/2, 0, trace)
	//
	trace.Debugf("compiled %d choose %d into %d swaps (negated %t)", lines, w, p.NFlips, p.Negated)
	//
	return p, nil
}

// Emit the diagonal of one recursion level, then recurse into the two halves.
// Each half only needs as many swaps as this level actually emitted (bounded
// by the half width), which truncates the network when there are fewer ones
// than half the lines.  Returns the next free flip index.
func (p *SwapPattern) compile(start, end, step, flip uint, trace Tracer) uint {
	trace.Debugf("start: %d, end: %d, swap_step: %d", start, end, step)
	//
	if step == 0 || start >= end {
		return flip
	}
	//
	for i := start; i < end; i++ {
		p.Swaps = append(p.Swaps, Swap{flip, i, i + step})
		trace.Debugf("cswap(%d, %d, %d)", flip, i, i+step)
		flip++
	}
	//
	bound := min(end-start, step/2)
	flip = p.compile(start, start+bound, step/2, flip, trace)
	//
	return p.compile(start+step, start+step+bound, step/2, flip, trace)
}

// Weight returns the Hamming weight of the patterns generated by this network.
func (p *SwapPattern) Weight() uint {
	if p.Negated {
		return p.NLines - p.ToNegateRange
	}
	//
	return p.ToNegateRange
}

// DomainSize returns the number of distinct patterns reachable by this
// network, that is C(NLines, Weight()).  Large values are approximate.
func (p *SwapPattern) DomainSize() float64 {
	return util_math.Binomial(p.NLines, p.Weight())
}

// Validate checks the structural invariants of a pattern: the lines are a
// power of two, the flip count matches the number of swaps, each flip index is
// used exactly once, and every swap stays within the lines.
func (p *SwapPattern) Validate() error {
	used := make([]bool, p.NFlips)
	//
	if !util_math.IsPowerOfTwo(p.NLines) {
		return fmt.Errorf("%d lines is not a power of two", p.NLines)
	} else if p.ToNegateRange > p.NLines {
		return fmt.Errorf("%d leading ones over %d lines", p.ToNegateRange, p.NLines)
	} else if p.NFlips != uint(len(p.Swaps)) {
		return fmt.Errorf("%d flips for %d swaps", p.NFlips, len(p.Swaps))
	}
	//
	for _, s := range p.Swaps {
		switch {
		case s.Flip >= p.NFlips:
			return fmt.Errorf("flip index %d out of range", s.Flip)
		case used[s.Flip]:
			return fmt.Errorf("flip index %d reused", s.Flip)
		case s.I >= p.NLines || s.J >= p.NLines || s.I == s.J:
			return fmt.Errorf("invalid swap %s", s.String())
		}
		//
		used[s.Flip] = true
	}
	//
	return nil
}

// Replay computes the classical pattern produced by the network for a given
// outcome of the coin flips.  This is what the register holds (in the
// computational basis) when the flip register is measured as flips.
func (p *SwapPattern) Replay(flips []bool) ([]uint8, error) {
	lines := make([]uint8, p.NLines)
	//
	if uint(len(flips)) != p.NFlips {
		return nil, fault.InvalidParameter("%d flips given, %d expected", len(flips), p.NFlips)
	}
	//
	for i := uint(0); i < p.ToNegateRange; i++ {
		lines[i] = 1
	}
	//
	for _, s := range p.Swaps {
		if flips[s.Flip] {
			lines[s.I], lines[s.J] = lines[s.J], lines[s.I]
		}
	}
	//
	if p.Negated {
		return util_math.NegateBits(lines), nil
	}
	//
	return lines, nil
}

func (p *SwapPattern) String() string {
	return fmt.Sprintf("{lines: %d, flips: %d, ones: %d, negated: %t, swaps: %v}",
		p.NLines, p.NFlips, p.ToNegateRange, p.Negated, p.Swaps)
}

// Number of swaps a network over the given lines needs for the given number
// of leading ones.  The first level swaps each one across, and every further
// level doubles (up to half the lines).
func expectedSwaps(lines uint, ones uint) uint {
	var (
		total uint
		width = ones
	)
	//
	for level := uint(0); level < util_math.CeilLog2(lines); level++ {
		total += width
		width = min(2*width, lines/2)
	}
	//
	return total
}
