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
package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/consensys/go-qisd/pkg/config"
	"github.com/consensys/go-qisd/pkg/isd"
	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer flag, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected integer flag, or exit if an error arises.
func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Set the logging level from the persistent flags.
func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "trace") {
		log.SetLevel(log.TraceLevel)
	} else if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read the configuration file (if any), and then apply those settings given
// explicitly on the command line.
func readConfig(cmd *cobra.Command) *config.Config {
	var (
		cfg   = config.Default()
		flags = cmd.Flags()
		err   error
	)
	//
	if filename := getString(cmd, "config"); filename != "" {
		if cfg, err = config.Load(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if flags.Changed("nwr") {
		cfg.Nwr = getString(cmd, "nwr")
	}
	//
	if flags.Changed("mct") {
		cfg.Mct = getString(cmd, "mct")
	}
	//
	if flags.Changed("rounds") {
		cfg.Rounds = getUint(cmd, "rounds")
	}
	//
	if flags.Changed("shots") {
		cfg.Shots = getUint(cmd, "shots")
	}
	//
	if flags.Changed("seed") {
		cfg.Seed = uint64(getUint(cmd, "seed"))
	}
	//
	return cfg
}

// Register the flags understood by readConfig when building.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("nwr", "benes", "weight restriction mode (benes or fpc)")
	cmd.Flags().String("mct", "noancilla", "multi-controlled NOT mode (noancilla, basic or advanced)")
	cmd.Flags().Uint("rounds", 0, "number of amplification rounds (computed when zero)")
	cmd.Flags().Uint("p", 0, "build a Lee-Brickell circuit over [V | I], with p errors among the columns of V")
}

// Read a problem and construct a search circuit for it, or exit if an error
// arises.  The circuit is Lee-Brickell when --p is given, and bruteforce
// otherwise.
func newSearch(cmd *cobra.Command, filename string, cfg *config.Config, measure bool, measureFlips bool) isd.Search {
	problem, err := config.LoadProblem(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	cache, err := nwr.NewCache(cfg.CacheSize)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	options, err := cfg.Options(cache)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	options.Measure = measure
	options.MeasureFlips = measureFlips
	//
	log.Debugf("read %s from %s", problem, filename)
	//
	var search isd.Search
	//
	if cmd.Flags().Changed("p") {
		search, err = isd.NewLeeBrickell(problem, getUint(cmd, "p"), options)
	} else {
		search, err = isd.NewBruteforce(problem, options)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return search
}

// Create an output file, where "-" means stdout.
func createOutput(filename string) (*os.File, error) {
	if filename == "-" {
		return os.Stdout, nil
	}
	//
	return os.Create(filename)
}

// Close an output file, unless it is stdout.
func closeOutput(file *os.File) error {
	if file == os.Stdout {
		return nil
	}
	//
	return file.Close()
}

// Check whether an output file should be compressed, based on its extension.
func isCompressed(filename string) bool {
	return path.Ext(filename) == ".sz"
}

// Print a table on stdout, with escapes only when stdout is a terminal.
func printTable(table *termio.TablePrinter) {
	table.AnsiEscapes(termio.IsTerminal(os.Stdout))
	table.SetMaxWidth(termio.Width(os.Stdout) / 2)
	//
	if err := table.Print(os.Stdout); err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
}
