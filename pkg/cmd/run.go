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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/consensys/go-qisd/pkg/isd"
	"github.com/consensys/go-qisd/pkg/sim"
	"github.com/consensys/go-qisd/pkg/util"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	"github.com/consensys/go-qisd/pkg/util/termio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] problem_file",
	Short: "Build and simulate the search circuit for a decoding problem.",
	Long: "Build the bruteforce (or, given --p, Lee-Brickell) circuit for a decoding problem, run it on " +
		"the state vector simulator and report the error vector read from the most frequent outcome.",
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
			search     = newSearch(cmd, args[0], cfg, true, getFlag(cmd, "measure-flips"))
			backend    = cfg.Backend()
			stats      = util.NewPerfStats()
		)
		//
		if cmd.Flags().Changed("max-width") {
			backend.MaxWidth = getUint(cmd, "max-width")
		}
		//
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		result, err := search.Run(ctx, backend)
		//
		if errors.Is(err, isd.ErrNoResult) {
			fmt.Println("no result")
			os.Exit(5)
		} else if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		stats.Log("Running circuit")
		printResult(result)
		//
		if !result.Valid {
			os.Exit(6)
		}
	},
}

func printResult(result *isd.Result) {
	var (
		table  = termio.NewTablePrinter("outcome", "error", "accuracy", "rounds", "valid")
		colour = termio.TERM_GREEN
	)
	//
	if !result.Valid {
		colour = termio.TERM_RED
	}
	//
	table.AddRow(result.Outcome, util_math.FormatBits(result.Error), fmt.Sprintf("%.3f", result.Accuracy),
		fmt.Sprint(result.Rounds), fmt.Sprint(result.Valid))
	table.SetEscape(4, 1, termio.NewAnsiEscape().Bold().FgColour(colour))
	printTable(table)
	//
	if result.Replayed != nil {
		fmt.Printf("selectors replayed from flips: %s\n", util_math.FormatBits(result.Replayed))
	}
}

func init() {
	addBuildFlags(runCmd)
	runCmd.Flags().Bool("measure-flips", false, "also measure the flips (benes only)")
	runCmd.Flags().Uint("shots", 1024, "number of shots sampled")
	runCmd.Flags().Uint("seed", 0, "seed of the sampler")
	runCmd.Flags().Uint("max-width", sim.DEFAULT_MAX_WIDTH, "largest number of qubits simulated")
	rootCmd.AddCommand(runCmd)
}
