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
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-qisd/pkg/fault"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
)

// WireKind distinguishes the two pools of wires an adder tree operates over.
type WireKind uint8

const (
	// LINE_WIRE identifies one of the input lines being counted.
	LINE_WIRE WireKind = iota
	// CARRY_WIRE identifies one of the carry-out wires, which start at zero.
	CARRY_WIRE
)

// WireRef identifies a wire in an adder tree, either an input line or a
// carry-out.
type WireRef struct {
	Kind  WireKind
	Index uint
}

// Line constructs a reference to the given input line.
func Line(index uint) WireRef {
	return WireRef{LINE_WIRE, index}
}

// Carry constructs a reference to the given carry-out wire.
func Carry(index uint) WireRef {
	return WireRef{CARRY_WIRE, index}
}

func (p WireRef) String() string {
	if p.Kind == LINE_WIRE {
		return fmt.Sprintf("a%d", p.Index)
	}
	//
	return fmt.Sprintf("c%d", p.Index)
}

// MarshalText writes a wire as "a<n>" or "c<n>", matching String().
func (p WireRef) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a wire written by MarshalText.
func (p *WireRef) UnmarshalText(text []byte) error {
	str := string(text)
	//
	if len(str) < 2 {
		return fmt.Errorf("invalid wire \"%s\"", str)
	}
	//
	index, err := strconv.ParseUint(str[1:], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid wire \"%s\"", str)
	}
	//
	switch str[0] {
	case 'a':
		*p = Line(uint(index))
	case 'c':
		*p = Carry(uint(index))
	default:
		return fmt.Errorf("invalid wire \"%s\"", str)
	}
	//
	return nil
}

// AdderOp is a single ripple-carry adder of the tree.  The first half of the
// inputs form operand A, the second half operand B (both least significant
// bit first).  The adder leaves A unchanged, overwrites B with A+B (modulo
// its width) and flips CarryOut when the sum overflows.
type AdderOp struct {
	Inputs   []WireRef `json:"inputs"`
	CarryOut WireRef   `json:"carry_out"`
}

// Width returns the number of bits in each operand.
func (p *AdderOp) Width() uint {
	return uint(len(p.Inputs)) / 2
}

// A returns the wires of the first operand.
func (p *AdderOp) A() []WireRef {
	return p.Inputs[:p.Width()]
}

// B returns the wires of the second operand, which receive the sum.
func (p *AdderOp) B() []WireRef {
	return p.Inputs[p.Width():]
}

// Outputs returns the wires holding the sum after this adder, least
// significant first.
func (p *AdderOp) Outputs() []WireRef {
	return append(slices.Clone(p.B()), p.CarryOut)
}

func (p *AdderOp) String() string {
	return fmt.Sprintf("%v + %v -> %v", p.A(), p.B(), p.Outputs())
}

// AdderPattern describes a tree of adders which computes the population count
// of NLines input lines.  Adders are listed in emission order, and Results
// identifies the wires holding the count (least significant bit first) once
// all adders have run.
type AdderPattern struct {
	// Number of input lines (a power of two).
	NLines uint `json:"n_lines"`
	// Number of carry-out wires needed.
	NCouts uint `json:"n_couts"`
	// Adders in emission order.
	Adders []AdderOp `json:"adders"`
	// Wires holding the final count.
	Results []WireRef `json:"results"`
}

// CompileAdderPattern compiles the adder tree computing the Hamming weight of
// n lines, where n is rounded up to the next power of two.
func CompileAdderPattern(n uint) (*AdderPattern, error) {
	return CompileAdderPatternTraced(n, nil)
}

// CompileAdderPatternTraced is CompileAdderPattern reporting each stage to the
// given tracer.
func CompileAdderPatternTraced(n uint, tracer Tracer) (*AdderPattern, error) {
	var (
		trace  = orSilent(tracer)
		steps  = util_math.CeilLog2(n)
		lines  = uint(1) << steps
		p      = &AdderPattern{NLines: lines, NCouts: lines - 1}
		inputs = make([]WireRef, lines)
		couts  = make([]WireRef, p.NCouts)
	)
	//
	if n < 2 {
		return nil, fault.InvalidParameter("cannot count the weight of %d lines", n)
	}
	// Both pools are consumed from the front, lowest index first.
	for i := range inputs {
		inputs[i] = Line(uint(i))
	}
	//
	for i := range couts {
		couts[i] = Carry(uint(i))
	}
	// Each stage halves the number of adders and widens their operands by one
	// bit, since the outputs of two adders of width k form one of width k+1.
	adders := lines
	//
	for stage := uint(0); stage < steps; stage++ {
		var (
			width   = stage + 1
			outputs []WireRef
		)
		//
		adders /= 2
		trace.Debugf("stage %d, %d adders of width %d over %v", stage, adders, width, inputs)
		//
		for j := uint(0); j < adders; j++ {
			op := AdderOp{slices.Clone(inputs[:2*width]), couts[0]}
			inputs, couts = inputs[2*width:], couts[1:]
			//
			p.Adders = append(p.Adders, op)
			outputs = append(outputs, op.Outputs()...)
			trace.Debugf("%s", op.String())
		}
		//
		inputs = outputs
	}
	//
	p.Results = inputs
	trace.Debugf("population count of %d lines held in %v", lines, p.Results)
	//
	return p, nil
}

// Evaluate computes the classical effect of the adder tree on the given input
// lines (all carries starting at zero), returning the final line and carry
// values.  Only wires listed in Results are meaningful afterwards.
func (p *AdderPattern) Evaluate(lines []uint8) ([]uint8, []uint8, error) {
	var (
		state  = [2][]uint8{slices.Clone(lines), make([]uint8, p.NCouts)}
		getter = func(w WireRef) uint64 { return uint64(state[w.Kind][w.Index]) }
	)
	//
	if uint(len(lines)) != p.NLines {
		return nil, nil, fault.InvalidParameter("%d lines given, %d expected", len(lines), p.NLines)
	}
	//
	for _, op := range p.Adders {
		var a, b uint64
		//
		for i, w := range op.A() {
			a |= getter(w) << i
		}
		//
		for i, w := range op.B() {
			b |= getter(w) << i
		}
		//
		sum := a + b
		//
		for i, w := range op.B() {
			state[w.Kind][w.Index] = uint8((sum >> i) & 1)
		}
		//
		state[op.CarryOut.Kind][op.CarryOut.Index] ^= uint8(sum >> op.Width())
	}
	//
	return state[LINE_WIRE], state[CARRY_WIRE], nil
}

// Count reads the population count from the final wire values returned by
// Evaluate.
func (p *AdderPattern) Count(lines []uint8, carries []uint8) uint {
	var (
		state = [2][]uint8{lines, carries}
		count uint
	)
	//
	for i, w := range p.Results {
		count |= uint(state[w.Kind][w.Index]) << i
	}
	//
	return count
}

func (p *AdderPattern) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("{lines: %d, couts: %d, adders: [", p.NLines, p.NCouts))
	//
	for i, op := range p.Adders {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(op.String())
	}
	//
	builder.WriteString(fmt.Sprintf("], results: %v}", p.Results))
	//
	return builder.String()
}
