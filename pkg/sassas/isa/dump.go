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
package isa

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Dump writes a human-readable rendition of this ISA to a given writer.
// This is a debugging aid, not a stable format.  Map-backed sections are
// printed in sorted key order for determinism.
func (p *ISA) Dump(out io.Writer) {
	fmt.Fprintln(out, "ISA dump:")
	//
	p.dumpArchitecture(out)
	p.dumpConditionTypes(out)
	dumpConstantMap(out, "Parameters", p.Parameters)
	dumpConstantMap(out, "Constants", p.Constants)
	p.dumpStringMap(out)
	p.dumpRegisters(out)
	p.dumpTables(out)
	dumpStringList(out, "Operation Properties", p.OperationProperties)
	dumpStringList(out, "Operation Predicates", p.OperationPredicates)
	p.dumpFunctionalUnit(out)
}

func (p *ISA) dumpArchitecture(out io.Writer) {
	dumpTitle(out, fmt.Sprintf("Architecture (%s)", p.Architecture.Name))
	//
	for _, detail := range p.Architecture.Details {
		value := detail.Value
		// Elide very long values.
		if len(value) > 65 {
			value = fmt.Sprintf("%s... (%d more characters)", value[:65], len(value)-65)
		}
		//
		fmt.Fprintf(out, "    %s: %s\n", detail.Name, value)
	}
	//
	fmt.Fprintln(out)
}

func (p *ISA) dumpConditionTypes(out io.Writer) {
	dumpTitle(out, "Condition Types")
	//
	for _, ct := range p.ConditionTypes {
		fmt.Fprintf(out, "    %s: %d\n", ct.Name, ct.Kind)
	}
	//
	fmt.Fprintln(out)
}

func dumpConstantMap(out io.Writer, title string, constants ConstantMap) {
	dumpTitle(out, title)
	//
	for _, name := range slices.Sorted(maps.Keys(constants)) {
		fmt.Fprintf(out, "    %s = %d\n", name, constants[name])
	}
	//
	fmt.Fprintln(out)
}

func (p *ISA) dumpStringMap(out io.Writer) {
	dumpTitle(out, "String Map")
	//
	for _, name := range slices.Sorted(maps.Keys(p.StringMap)) {
		fmt.Fprintf(out, "    %s: %s\n", name, p.StringMap[name])
	}
	//
	fmt.Fprintln(out)
}

func (p *ISA) dumpRegisters(out io.Writer) {
	dumpTitle(out, "Registers")
	//
	for _, category := range slices.Sorted(maps.Keys(p.Registers)) {
		fmt.Fprintf(out, "    %s\n", category)
		dumpRegisterGroup(out, p.Registers[category], 8)
		fmt.Fprintln(out)
	}
	//
	fmt.Fprintln(out)
}

// dumpRegisterGroup prints the registers of a group five per line, with each
// column sized to its widest name.
func dumpRegisterGroup(out io.Writer, group *RegisterGroup, indent int) {
	registers := group.Registers()
	// Compute the maximum name length of each column.
	var widths [5]int
	for i, reg := range registers {
		widths[i%5] = max(widths[i%5], len(reg.Name))
	}
	//
	for i, reg := range registers {
		if i%5 == 0 {
			if i != 0 {
				fmt.Fprintln(out)
			}
			//
			fmt.Fprintf(out, "%*s", indent, "")
		}
		//
		fmt.Fprintf(out, "%-*s %-5s ", widths[i%5], reg.Name, fmt.Sprintf("(%d)", reg.Value))
	}
	//
	fmt.Fprintln(out)
}

func (p *ISA) dumpTables(out io.Writer) {
	dumpTitle(out, "Tables")
	//
	for _, name := range slices.Sorted(maps.Keys(p.Tables)) {
		fmt.Fprintf(out, "    %s\n", name)
		dumpTable(out, p.Tables[name], 8)
		fmt.Fprintln(out)
	}
	//
	fmt.Fprintln(out)
}

// dumpTable prints the rows of a table with right-aligned columns, with
// wildcards printed as "Any".
func dumpTable(out io.Writer, table *Table, indent int) {
	keySize := int(table.KeySize())
	// Compute the maximum width of each column.
	widths := make([]int, keySize+1)
	//
	for i := uint(0); i < table.Rows(); i++ {
		keys, value := table.Row(i)
		for j, key := range keys {
			widths[j] = max(widths[j], len(key.String()))
		}
		//
		widths[keySize] = max(widths[keySize], len(value.String()))
	}
	// Print the rows.
	for i := uint(0); i < table.Rows(); i++ {
		keys, value := table.Row(i)
		//
		fmt.Fprintf(out, "%*s", indent, "")
		//
		for j, key := range keys {
			fmt.Fprintf(out, "%*s", widths[j]+1, key.String())
		}
		//
		fmt.Fprintf(out, " -> %*s\n", widths[keySize], value.String())
	}
}

// dumpStringList prints a list of identifiers five per line, with each
// column sized to its widest entry.
func dumpStringList(out io.Writer, title string, list []string) {
	dumpTitle(out, title)
	// Compute the maximum width of each column.
	var widths [5]int
	for i, item := range list {
		widths[i%5] = max(widths[i%5], len(item))
	}
	//
	for i, item := range list {
		if i%5 == 0 {
			if i != 0 {
				fmt.Fprintln(out)
			}
			//
			fmt.Fprint(out, "    ")
		}
		//
		fmt.Fprintf(out, "%-*s ", widths[i%5], item)
	}
	//
	fmt.Fprintln(out)
	fmt.Fprintln(out)
}

func (p *ISA) dumpFunctionalUnit(out io.Writer) {
	dumpTitle(out, "Functional Unit")
	//
	fmt.Fprintf(out, "    name: %s\n", p.FunctionalUnit.Name())
	fmt.Fprintf(out, "    encoding width: %d\n", p.FunctionalUnit.EncodingWidth())
	fmt.Fprintln(out, "    Bitmasks")
	//
	bitmasks := p.FunctionalUnit.Bitmasks()
	for _, name := range slices.Sorted(maps.Keys(bitmasks)) {
		fmt.Fprintf(out, "        %s    %s\n", name, bitmasks[name])
	}
	//
	fmt.Fprintln(out)
}

func dumpTitle(out io.Writer, title string) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
}
