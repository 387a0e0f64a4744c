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
package config

import (
	"path/filepath"
	"testing"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/fault"
	"github.com/consensys/go-qisd/pkg/grover"
	"github.com/consensys/go-qisd/pkg/isd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_Defaults(t *testing.T) {
	config, err := Parse([]byte("shots: 10\nmct: basic\n"))
	require.NoError(t, err)
	//
	assert.Equal(t, uint(10), config.Shots)
	assert.Equal(t, "benes", config.Nwr)
	//
	opts, err := config.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, grover.BENES, opts.Nwr)
	assert.Equal(t, circuit.BASIC, opts.Mct)
	assert.Equal(t, uint(24), config.Backend().MaxWidth)
}

func Test_Parse_Invalid(t *testing.T) {
	_, err := Parse([]byte("nwr: butterfly\n"))
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	//
	_, err = Parse([]byte("unknown: 1\n"))
	assert.Error(t, err)
	//
	_, err = Parse([]byte("shots: many\n"))
	assert.Error(t, err)
}

func Test_Save_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qisd.yaml")
	config := Default()
	config.Nwr = "fpc"
	config.Seed = 42
	//
	require.NoError(t, Save(path, config))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func Test_ParseProblem(t *testing.T) {
	problem, err := ParseProblem([]byte(`
h:
  - "1001"
  - "0101"
  - "0011"
syndrome: "111"
w: 1
`))
	require.NoError(t, err)
	//
	assert.Equal(t, uint(4), problem.Columns())
	assert.Equal(t, uint(3), problem.Rows())
	assert.True(t, problem.Satisfies([]uint8{0, 0, 0, 1}))
}

func Test_ParseProblem_Invalid(t *testing.T) {
	for _, data := range []string{
		"h: [\"10x1\"]\nsyndrome: \"1\"\nw: 1\n",
		"h: [\"1001\"]\nsyndrome: \"2\"\nw: 1\n",
		"h: [\"1001\"]\nsyndrome: \"11\"\nw: 1\n",
		"h: [\"1001\"]\nsyndrome: \"1\"\nw: 0\n",
		"h: [\"1001\"]\nsyndrome: \"1\"\nweight: 1\n",
	} {
		_, err := ParseProblem([]byte(data))
		assert.Error(t, err, data)
	}
}

func Test_SaveProblem(t *testing.T) {
	var (
		path    = filepath.Join(t.TempDir(), "problem.yaml")
		problem = &isd.Problem{
			H:        [][]uint8{{1, 0, 1}, {0, 1, 1}},
			Syndrome: []uint8{0, 1},
			W:        1,
		}
	)
	//
	require.NoError(t, SaveProblem(path, problem))
	loaded, err := LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, problem, loaded)
	//
	_, err = LoadProblem(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
