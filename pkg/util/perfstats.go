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
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time and allocation counters at some starting point,
// such that the cost of a build or a simulation can be reported afterwards.
type PerfStats struct {
	startTime time.Time
	// Total bytes allocated
	startAlloc uint64
	// Number of completed GC cycles
	startGc uint32
}

// NewPerfStats takes a snapshot of the current counters.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Elapsed returns the time since the snapshot was taken.
func (p *PerfStats) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Log reports (at debug level) the time taken, memory allocated and GC cycles
// run since the snapshot was taken.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	log.WithFields(log.Fields{
		"alloc_mb": (m.TotalAlloc - p.startAlloc) / 1024 / 1024,
		"gc":       m.NumGC - p.startGc,
		"heap_mb":  m.Alloc / 1024 / 1024,
	}).Debugf("%s took %0.3fs", prefix, p.Elapsed().Seconds())
}
