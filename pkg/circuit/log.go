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
package circuit

import (
	"encoding/json"
	"io"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Serialised form of a circuit, as written by WriteLog.
type circuitLog struct {
	Id                 uuid.UUID           `json:"id"`
	Name               string              `json:"name"`
	Registers          []Register          `json:"registers"`
	ClassicalRegisters []ClassicalRegister `json:"clregisters,omitempty"`
	Gates              []Gate              `json:"gates"`
}

// WriteLog writes the gate log of a circuit as JSON, optionally compressed
// using the snappy framing format.
func WriteLog(w io.Writer, circuit *Circuit, compress bool) error {
	var (
		data = circuitLog{circuit.id, circuit.name, circuit.registers, circuit.clregisters, circuit.gates}
		sw   *snappy.Writer
	)
	//
	if compress {
		sw = snappy.NewBufferedWriter(w)
		w = sw
	}
	//
	if err := json.NewEncoder(w).Encode(&data); err != nil {
		return errors.WithStack(err)
	} else if sw != nil {
		return errors.WithStack(sw.Close())
	}
	//
	return nil
}

// ReadLog reads a circuit written by WriteLog.  Every gate is checked as it
// is appended, hence a log which does not describe a valid circuit is
// rejected.
func ReadLog(r io.Reader, compressed bool) (*Circuit, error) {
	var data circuitLog
	//
	if compressed {
		r = snappy.NewReader(r)
	}
	//
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "malformed circuit log")
	}
	//
	circuit := &Circuit{id: data.Id, name: data.Name}
	//
	for _, reg := range data.Registers {
		if reg.Offset != circuit.nqubits {
			return nil, errors.Errorf("register %s out of order", reg.String())
		} else if _, err := circuit.AddRegister(reg.Name, reg.Size); err != nil {
			return nil, err
		}
	}
	//
	for _, reg := range data.ClassicalRegisters {
		if reg.Offset != circuit.nclbits {
			return nil, errors.Errorf("classical register %s out of order", reg.Name)
		}
		//
		circuit.AddClassicalRegister(reg.Name, reg.Size)
	}
	//
	for i, g := range data.Gates {
		if err := circuit.Append(g); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	//
	return circuit, nil
}
