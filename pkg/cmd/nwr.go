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
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// nwrCmd groups the commands inspecting compiled networks.
var nwrCmd = &cobra.Command{
	Use:   "nwr",
	Short: "Inspect the networks used to prepare and check registers of a given weight.",
}

var nwrSwapCmd = &cobra.Command{
	Use:   "swap [flags] n w",
	Short: "Compile the swap network generating all patterns of weight w over n lines.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		n, w := parseUint(args[0]), parseUint(args[1])
		//
		pattern, err := nwr.CompileSwapPatternTraced(n, w, log.WithField("network", "swap"))
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		if getFlag(cmd, "json") {
			printJson(pattern)
			return
		}
		//
		fmt.Printf("lines: %d, flips: %d, seed ones: %d, negated: %t, patterns: %g\n", pattern.NLines,
			pattern.NFlips, pattern.ToNegateRange, pattern.Negated, pattern.DomainSize())
		//
		table := termio.NewTablePrinter("flip", "i", "j")
		//
		for _, swap := range pattern.Swaps {
			table.AddRow(fmt.Sprint(swap.Flip), fmt.Sprint(swap.I), fmt.Sprint(swap.J))
		}
		//
		printTable(table)
	},
}

var nwrAdderCmd = &cobra.Command{
	Use:   "adder [flags] n",
	Short: "Compile the adder tree computing the population count of n lines.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		pattern, err := nwr.CompileAdderPatternTraced(parseUint(args[0]), log.WithField("network", "adder"))
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		if getFlag(cmd, "json") {
			printJson(pattern)
			return
		}
		//
		fmt.Printf("lines: %d, carries: %d, results: %v\n", pattern.NLines, pattern.NCouts, pattern.Results)
		//
		table := termio.NewTablePrinter("#", "a", "b", "carry")
		//
		for i, adder := range pattern.Adders {
			table.AddRow(fmt.Sprint(i), fmt.Sprint(adder.A()), fmt.Sprint(adder.B()), adder.CarryOut.String())
			table.SetEscape(3, uint(i+1), termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW))
		}
		//
		printTable(table)
	},
}

// Parse a command-line argument as an unsigned integer, or exit.
func parseUint(arg string) uint {
	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Printf("invalid argument \"%s\"\n", arg)
		os.Exit(2)
	}
	//
	return uint(n)
}

func printJson(value any) {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	fmt.Println(string(bytes))
}

func init() {
	nwrSwapCmd.Flags().Bool("json", false, "print the pattern as JSON")
	nwrAdderCmd.Flags().Bool("json", false, "print the pattern as JSON")
	nwrCmd.AddCommand(nwrSwapCmd)
	nwrCmd.AddCommand(nwrAdderCmd)
	rootCmd.AddCommand(nwrCmd)
}
