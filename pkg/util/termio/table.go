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
// Package termio formats output for the command line.
package termio

import (
	"fmt"
	"io"
	"strings"
)

// TablePrinter lays out rows of cells in right-aligned columns.  The first
// row is treated as a header, and is separated from the others by a rule.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a table with a given number of columns, whose
// first row is the given header.
func NewTablePrinter(header ...string) *TablePrinter {
	p := &TablePrinter{widths: make([]uint, len(header)), enableEscapes: true}
	p.AddRow(header...)
	//
	return p
}

// AddRow appends a row of cells.
func (p *TablePrinter) AddRow(cells ...string) {
	if len(cells) != len(p.widths) {
		panic(fmt.Sprintf("row of %d cells in table of %d columns", len(cells), len(p.widths)))
	}
	//
	for i, c := range cells {
		p.widths[i] = max(p.widths[i], uint(len(c)))
	}
	//
	p.rows = append(p.rows, cells)
	p.escapes = append(p.escapes, make([]string, len(cells)))
}

// Height returns the number of rows, including the header.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape sets the rendition of a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables escapes, which should only be written to a
// terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of every column.  Longer cells
// are truncated.
func (p *TablePrinter) SetMaxWidth(width uint) {
	for i := range p.widths {
		p.widths[i] = min(p.widths[i], max(width, 3))
	}
}

// Print the table.
func (p *TablePrinter) Print(w io.Writer) error {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		for j, cell := range row {
			width := p.widths[j]
			//
			if uint(len(cell)) > width {
				cell = cell[:width-2] + ".."
			}
			//
			if p.enableEscapes && p.escapes[i][j] != "" {
				builder.WriteString(fmt.Sprintf(" %s%*s%s |", p.escapes[i][j], width, cell,
					ResetAnsiEscape().Build()))
			} else {
				builder.WriteString(fmt.Sprintf(" %*s |", width, cell))
			}
		}
		//
		builder.WriteString("\n")
		//
		if i == 0 {
			for _, width := range p.widths {
				builder.WriteString("-" + strings.Repeat("-", int(width)) + "-+")
			}
			//
			builder.WriteString("\n")
		}
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}
