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

	"github.com/consensys/go-qisd/pkg/circuit"
	"github.com/consensys/go-qisd/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] problem_file",
	Short: "Build the search circuit for a decoding problem.",
	Long: "Build the bruteforce (or, given --p, Lee-Brickell) circuit for a decoding problem, reporting " +
		"its size and optionally writing it as OpenQASM or as a (compressed) JSON gate log.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		var (
			cfg        = readConfig(cmd)
			stats      = util.NewPerfStats()
			measure    = getFlag(cmd, "measure")
			search     = newSearch(cmd, args[0], cfg, measure, getFlag(cmd, "measure-flips"))
		)
		//
		rounds, err := search.Build()
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		stats.Log("Building circuit")
		//
		c := search.Circuit()
		fmt.Printf("%s: %d rounds, %s, max controls: %d\n", c.Name(), rounds, circuit.Stats(c), c.MaxControls())
		//
		if filename := getString(cmd, "qasm"); filename != "" {
			writeOutput(filename, func(file *os.File) error {
				return circuit.WriteQasm(file, c)
			})
		}
		//
		if filename := getString(cmd, "log"); filename != "" {
			writeOutput(filename, func(file *os.File) error {
				return circuit.WriteLog(file, c, isCompressed(filename))
			})
		}
	},
}

// Write an output file using a given writer, or exit if an error arises.
func writeOutput(filename string, writer func(*os.File) error) {
	file, err := createOutput(filename)
	if err == nil {
		err = writer(file)
		//
		if cerr := closeOutput(file); err == nil {
			err = cerr
		}
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	log.Debugf("wrote %s", filename)
}

func init() {
	addBuildFlags(buildCmd)
	buildCmd.Flags().Bool("measure", false, "measure the selectors at the end")
	buildCmd.Flags().Bool("measure-flips", false, "also measure the flips (benes only)")
	buildCmd.Flags().String("qasm", "", "write the circuit as OpenQASM 2.0 (\"-\" for stdout)")
	buildCmd.Flags().String("log", "", "write the circuit as a JSON gate log (snappy compressed for .sz)")
	rootCmd.AddCommand(buildCmd)
}
