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
	"os"

	"github.com/consensys/go-qisd/pkg/isd"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Problem file layout, with the matrix given as rows of bits.  For example:
//
//	h:
//	  - "1001"
//	  - "0101"
//	  - "0011"
//	syndrome: "111"
//	w: 1
type problemFile struct {
	H        []string `yaml:"h"`
	Syndrome string   `yaml:"syndrome"`
	W        uint     `yaml:"w"`
}

// LoadProblem reads a problem instance from a YAML file.
func LoadProblem(path string) (*isd.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	problem, err := ParseProblem(data)
	//
	return problem, errors.Wrap(err, path)
}

// ParseProblem reads a problem instance from YAML, and checks it is well
// formed.
func ParseProblem(data []byte) (*isd.Problem, error) {
	var (
		file    problemFile
		problem isd.Problem
		err     error
	)
	//
	if err = yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, errors.Wrap(err, "malformed problem")
	}
	//
	problem.W = file.W
	problem.H = make([][]uint8, len(file.H))
	//
	for i, row := range file.H {
		if problem.H[i], err = util_math.ParseBits(row); err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}
	//
	if problem.Syndrome, err = util_math.ParseBits(file.Syndrome); err != nil {
		return nil, errors.Wrap(err, "syndrome")
	} else if err = problem.Validate(); err != nil {
		return nil, err
	}
	//
	return &problem, nil
}

// SaveProblem writes a problem instance as a YAML file.
func SaveProblem(path string, problem *isd.Problem) error {
	file := problemFile{Syndrome: util_math.FormatBits(problem.Syndrome), W: problem.W}
	//
	for _, row := range problem.H {
		file.H = append(file.H, util_math.FormatBits(row))
	}
	//
	data, err := yaml.Marshal(&file)
	if err != nil {
		return err
	}
	//
	return os.WriteFile(path, data, 0644)
}
