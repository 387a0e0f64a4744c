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
// Package config reads run configurations and problem instances from YAML
// files.
package config

import (
	"os"

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/grover"
	"github.com/consensys/go-qisd/pkg/isd"
	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/sim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config determines how circuits are built and run.
type Config struct {
	// Weight restriction mode, "benes" or "fpc".
	Nwr string `yaml:"nwr"`
	// Multi-controlled NOT mode, "noancilla", "basic" or "advanced".
	Mct string `yaml:"mct"`
	// Number of rounds, computed when zero.
	Rounds uint `yaml:"rounds"`
	// Number of shots sampled per run.
	Shots uint `yaml:"shots"`
	// Seed of the sampler.
	Seed uint64 `yaml:"seed"`
	// Largest number of qubits simulated.
	MaxWidth uint `yaml:"max_width"`
	// Number of compiled patterns kept.
	CacheSize int `yaml:"cache_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Nwr:       grover.BENES.String(),
		Mct:       circuit.NOANCILLA.String(),
		Shots:     1024,
		MaxWidth:  sim.DEFAULT_MAX_WIDTH,
		CacheSize: nwr.DEFAULT_CACHE_SIZE,
	}
}

// Load a configuration from a YAML file.  Keys missing from the file keep
// their default value, whilst unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return Parse(data)
}

// Parse a configuration from YAML.
func Parse(data []byte) (*Config, error) {
	config := Default()
	//
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, errors.Wrap(err, "malformed configuration")
	} else if _, err := config.Options(nil); err != nil {
		return nil, err
	}
	//
	return config, nil
}

// Save a configuration as a YAML file.
func Save(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	//
	return os.WriteFile(path, data, 0644)
}

// Options returns the build options described by this configuration.
func (p *Config) Options(cache *nwr.Cache) (isd.Options, error) {
	nwrMode, err := grover.ParseNwrMode(p.Nwr)
	if err != nil {
		return isd.Options{}, err
	}
	//
	mctMode, err := circuit.ParseMctMode(p.Mct)
	if err != nil {
		return isd.Options{}, err
	}
	//
	return isd.Options{Nwr: nwrMode, Mct: mctMode, Rounds: p.Rounds, Cache: cache}, nil
}

// Backend returns the simulator described by this configuration.
func (p *Config) Backend() *sim.StateVector {
	return &sim.StateVector{Shots: p.Shots, Seed: p.Seed, MaxWidth: p.MaxWidth}
}
