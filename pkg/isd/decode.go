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

	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/sim"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Result of a search run, read from the most frequent outcome.
type Result struct {
	// Most frequent outcome of the selectors.
	Outcome string
	// Error vector read from the outcome.
	Error []uint8
	// Fraction of shots yielding the most frequent outcome.
	Accuracy float64
	// Number of rounds built.
	Rounds uint
	// Whether the error vector has the right weight and syndrome, and no
	// padding selector is set.
	Valid bool
	// Selectors obtained by replaying the measured flips (BENES with
	// MeasureFlips only).
	Replayed []uint8
}

func (p *Result) String() string {
	return fmt.Sprintf("{error: %s, accuracy: %.2f, rounds: %d, valid: %t}", util_math.FormatBits(p.Error),
		p.Accuracy, p.Rounds, p.Valid)
}

// Build a search, execute it on a backend and decode the outcome.
func run(ctx context.Context, backend sim.Backend, s Search) (*Result, error) {
	rounds, err := s.Build()
	if err != nil {
		return nil, err
	}
	//
	outcome, err := backend.Execute(ctx, s.Circuit())
	if err != nil {
		return nil, err
	}
	//
	return s.Decode(outcome, rounds)
}

// Read the selectors from the most frequent outcome of a run.  Outcomes begin
// with the selectors (selector 0 leftmost), followed by the flips when they
// were measured.
func (p *search) decode(outcome *sim.Result, rounds uint) (*Result, []uint8, error) {
	var nsel = p.selectors.Size
	//
	best, count, ok := outcome.MostFrequent()
	//
	if !ok {
		return nil, nil, ErrNoResult
	} else if uint(len(best)) < nsel {
		return nil, nil, fault.InvalidParameter("outcome \"%s\" shorter than %d selectors", best, nsel)
	}
	//
	selectors, err := util_math.ParseBits(best[:nsel])
	if err != nil {
		return nil, nil, errors.Wrap(err, "malformed outcome")
	}
	//
	result := &Result{
		Outcome:  best[:nsel],
		Accuracy: float64(count) / float64(outcome.Shots()),
		Rounds:   rounds,
	}
	//
	if p.swap != nil && uint(len(best)) == nsel+p.swap.NFlips {
		if result.Replayed, err = p.replay(best[nsel:]); err != nil {
			return nil, nil, err
		}
	}
	//
	log.Infof("max value is %d (%.2f accuracy) for status %s", count, result.Accuracy, result.Outcome)
	//
	return result, selectors, nil
}

// Check no selector beyond the last column is set.
func (p *search) validSelectors(selectors []uint8) bool {
	return util_math.HammingWeight(selectors[p.problem.Columns():]) == 0
}

func (p *search) replay(outcome string) ([]uint8, error) {
	bits, err := util_math.ParseBits(outcome)
	if err != nil {
		return nil, errors.Wrap(err, "malformed flips")
	}
	//
	flips := make([]bool, len(bits))
	//
	for i, b := range bits {
		flips[i] = b != 0
	}
	//
	return p.swap.Replay(flips)
}
