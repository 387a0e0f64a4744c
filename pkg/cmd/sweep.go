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
	"math"
	"os"
	"runtime"

	"github.com/consensys/go-qisd/pkg/grover"
	"github.com/consensys/go-qisd/pkg/nwr"
	"github.com/consensys/go-qisd/pkg/util"
	util_math "github.com/consensys/go-qisd/pkg/util/math"
	"github.com/consensys/go-qisd/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [flags]",
	Short: "Tabulate the cost of the weight restriction networks over a range of sizes.",
	Long: "Compile the swap network and adder tree for every line count (a power of two) in a range " +
		"and every weight below it, and compare the rounds needed by each weight restriction mode.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		var (
			minLines = getUint(cmd, "min")
			maxLines = getUint(cmd, "max")
			stats    = util.NewPerfStats()
		)
		//
		cache, err := nwr.NewCache(getInt(cmd, "cache"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		rows, err := sweep(cache, minLines, maxLines)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		stats.Log("Sweeping networks")
		//
		table := termio.NewTablePrinter("lines", "w", "flips", "patterns", "benes rounds", "carries", "fpc rounds")
		//
		for i, row := range rows {
			table.AddRow(fmt.Sprint(row.lines), fmt.Sprint(row.weight), fmt.Sprint(row.flips),
				fmt.Sprint(row.patterns), fmt.Sprint(row.benesRounds), fmt.Sprint(row.carries),
				fmt.Sprint(row.fpcRounds))
			//
			if row.benesRounds < row.fpcRounds {
				table.SetEscape(4, uint(i+1), termio.NewAnsiEscape().FgColour(termio.TERM_GREEN))
			}
		}
		//
		printTable(table)
	},
}

// One line of the sweep table.
type sweepRow struct {
	lines       uint
	weight      uint
	flips       uint
	patterns    float64
	benesRounds uint
	carries     uint
	fpcRounds   uint
}

// Compile every network in the range, each in its own goroutine.  Rows are
// ordered by lines and then weight.
func sweep(cache *nwr.Cache, minLines uint, maxLines uint) ([]sweepRow, error) {
	var (
		rows  []sweepRow
		group errgroup.Group
	)
	//
	if minLines < 2 || maxLines < minLines {
		return nil, fmt.Errorf("invalid line range %d..%d", minLines, maxLines)
	}
	//
	for n := util_math.NextPowerOfTwo(minLines); n <= maxLines; n *= 2 {
		for w := uint(1); w < n; w++ {
			rows = append(rows, sweepRow{lines: n, weight: w})
		}
	}
	//
	group.SetLimit(runtime.GOMAXPROCS(0))
	//
	for i := range rows {
		row := &rows[i]
		//
		group.Go(func() error {
			return row.compile(cache)
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	log.Debugf("swept %d networks", len(rows))
	//
	return rows, nil
}

func (p *sweepRow) compile(cache *nwr.Cache) error {
	swap, err := cache.SwapPattern(p.lines, p.weight)
	if err != nil {
		return err
	}
	//
	adder, err := cache.AdderPattern(p.lines)
	if err != nil {
		return err
	}
	//
	p.flips = swap.NFlips
	p.patterns = swap.DomainSize()
	p.carries = adder.NCouts
	//
	if p.benesRounds, err = grover.ComputeRounds(p.patterns); err != nil {
		return err
	}
	//
	p.fpcRounds, err = grover.ComputeRounds(math.Exp2(float64(p.lines)))
	//
	return err
}

func init() {
	sweepCmd.Flags().Uint("min", 2, "smallest number of lines")
	sweepCmd.Flags().Uint("max", 16, "largest number of lines")
	sweepCmd.Flags().Int("cache", nwr.DEFAULT_CACHE_SIZE, "number of patterns of each kind kept")
	rootCmd.AddCommand(sweepCmd)
}
