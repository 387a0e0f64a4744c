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

// Package nwr compiles the combinatorial networks used to prepare and inspect
// registers of a given Hamming weight ("n bits of weight r").  Two networks
// are provided: a Benes-style swap network which, driven by a register of fair
// coin flips, spreads a fixed number of ones across all positions of a
// register; and a tree of ripple-carry adders which computes the population
// count of a register.  Compilation is a pure function of the sizes involved,
// hence patterns can be cached and shared freely.
package nwr

// Tracer receives debug output from the compilers.  This matches the Debugf
// method of logrus loggers and entries.  A nil Tracer is silent.
type Tracer interface {
	Debugf(format string, args ...any)
}

type silent struct{}

func (silent) Debugf(string, ...any) {}

func orSilent(tracer Tracer) Tracer {
	if tracer == nil {
		return silent{}
	}
	//
	return tracer
}
