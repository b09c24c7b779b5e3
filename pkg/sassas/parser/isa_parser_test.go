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
package parser

import (
	"testing"

	"github.com/consensys/go-sassas/pkg/sassas/isa"
)

// ==================================================================
// Architecture
// ==================================================================

func TestArchitecture_00(t *testing.T) {
	model := parseValid(t, `ARCHITECTURE "SM90";`)
	//
	if model.Architecture.Name != "SM90" {
		t.Errorf("got name %q", model.Architecture.Name)
	}
	//
	if len(model.Architecture.Details) != 0 {
		t.Errorf("got %d details", len(model.Architecture.Details))
	}
}

func TestArchitecture_01(t *testing.T) {
	model := parseValid(t, `ARCHITECTURE "SM90"; CHIPSET 90;`)
	//
	details := model.Architecture.Details
	if len(details) != 1 || details[0].Name != "CHIPSET" || details[0].Value != "90" {
		t.Errorf("got details %v", details)
	}
}

func TestArchitecture_02(t *testing.T) {
	// Item values are retained verbatim, whitespace included.
	model := parseValid(t, `ARCHITECTURE "X"; FOO 1 2 abc;`)
	//
	details := model.Architecture.Details
	if len(details) != 1 || details[0].Value != "1 2 abc" {
		t.Errorf("got details %v", details)
	}
}

func TestArchitecture_03(t *testing.T) {
	parseInvalid(t, `ARCHITECTURE 90;`, "Unexpected token")
}

func TestArchitecture_04(t *testing.T) {
	parseInvalid(t, `ARCHITECTURE "X"; CHIPSET;`, "Expected content")
}

// ==================================================================
// Condition types
// ==================================================================

func TestConditionTypes_00(t *testing.T) {
	model := parseValid(t, `
		CONDITION TYPES
			ILLEGAL_ENCODING : ERROR
			UNPREDICTABLE : WARNING
			SCHEDULING : INFO`)
	//
	types := model.ConditionTypes
	if len(types) != 3 {
		t.Fatalf("got %d condition types", len(types))
	}
	//
	if types[0].Kind != isa.ConditionError || types[1].Kind != isa.ConditionWarning ||
		types[2].Kind != isa.ConditionInfo {
		t.Errorf("got kinds %v", types)
	}
	//
	if types[1].Name != "UNPREDICTABLE" {
		t.Errorf("got name %q", types[1].Name)
	}
}

func TestConditionTypes_01(t *testing.T) {
	parseInvalid(t, `CONDITION TYPES FOO : FATAL`, "Invalid kind of condition type")
}

// ==================================================================
// Parameters and constants
// ==================================================================

func TestConstantMap_00(t *testing.T) {
	model := parseValid(t, `PARAMETERS MAX_REG = 255; MIN = -1;`)
	//
	if v := model.Parameters["MAX_REG"]; v != 255 {
		t.Errorf("got MAX_REG = %d", v)
	}
	//
	if v := model.Parameters["MIN"]; v != -1 {
		t.Errorf("got MIN = %d", v)
	}
}

func TestConstantMap_01(t *testing.T) {
	model := parseValid(t, `CONSTANTS A = 0x10; B = 0b101;`)
	//
	if model.Constants["A"] != 16 || model.Constants["B"] != 5 {
		t.Errorf("got constants %v", model.Constants)
	}
}

func TestConstantMap_02(t *testing.T) {
	parseInvalid(t, `PARAMETERS X = 1; X = 2;`, "Duplicate constant name")
}

func TestConstantMap_03(t *testing.T) {
	// Constants are signed 32bit.
	parseInvalid(t, `CONSTANTS X = 0x8000_0000;`, "Integer literal out of range")
}

// ==================================================================
// String map
// ==================================================================

func TestStringMap_00(t *testing.T) {
	model := parseValid(t, `STRING_MAP foo -> bar; baz -> "hello world";`)
	//
	if model.StringMap["foo"] != "bar" || model.StringMap["baz"] != "hello world" {
		t.Errorf("got string map %v", model.StringMap)
	}
}

func TestStringMap_01(t *testing.T) {
	parseInvalid(t, `STRING_MAP foo -> bar; foo -> baz;`, "Duplicate string map name")
}

// ==================================================================
// Registers
// ==================================================================

func TestRegisters_00(t *testing.T) {
	model := parseValid(t, `REGISTERS Register R(0..3), RZ = 255;`)
	//
	group := model.Registers["Register"]
	if group == nil {
		t.Fatalf("missing category")
	}
	//
	registers := group.Registers()
	if len(registers) != 5 {
		t.Fatalf("got %d registers", len(registers))
	}
	// Without an initialiser, values continue from the previous register.
	if registers[0].Name != "R0" || registers[0].Value != 0 {
		t.Errorf("got %v", registers[0])
	}
	//
	if registers[3].Name != "R3" || registers[3].Value != 3 {
		t.Errorf("got %v", registers[3])
	}
	//
	if registers[4].Name != "RZ" || registers[4].Value != 255 {
		t.Errorf("got %v", registers[4])
	}
}

func TestRegisters_01(t *testing.T) {
	// Ranged names pair with ranged values positionally.
	model := parseValid(t, `REGISTERS SpecialRegister SR(4..7) = (0..3);`)
	//
	registers := model.Registers["SpecialRegister"].Registers()
	if len(registers) != 4 {
		t.Fatalf("got %d registers", len(registers))
	}
	//
	if registers[0].Name != "SR4" || registers[0].Value != 0 {
		t.Errorf("got %v", registers[0])
	}
	//
	if registers[3].Name != "SR7" || registers[3].Value != 3 {
		t.Errorf("got %v", registers[3])
	}
}

func TestRegisters_02(t *testing.T) {
	model := parseValid(t, `REGISTERS A X, Y; B Z; C = A + B;`)
	//
	registers := model.Registers["C"].Registers()
	if len(registers) != 3 {
		t.Fatalf("got %d registers", len(registers))
	}
	//
	if registers[0].Name != "X" || registers[2].Name != "Z" {
		t.Errorf("got %v", registers)
	}
}

func TestRegisters_03(t *testing.T) {
	// A reuse marker is accepted and discarded.
	model := parseValid(t, `REGISTERS Register R0*, R1;`)
	//
	registers := model.Registers["Register"].Registers()
	if len(registers) != 2 || registers[1].Name != "R1" || registers[1].Value != 1 {
		t.Errorf("got %v", registers)
	}
}

func TestRegisters_04(t *testing.T) {
	result, diagnostics := Parse("test", `REGISTERS SpecialRegister SR(0..3) = 5;`)
	//
	if result.HasValue() {
		t.Fatalf("parse succeeded unexpectedly")
	}
	//
	if len(diagnostics) != 1 {
		t.Fatalf("got %d diagnostics", len(diagnostics))
	}
	//
	d := diagnostics[0]
	if d.Message() != "The number of register names and initial values do not match" {
		t.Fatalf("got message %q", d.Message())
	}
	// Both sides of the mismatch are annotated.
	annotations := d.Annotations()
	if len(annotations) != 2 {
		t.Fatalf("got %d annotations", len(annotations))
	}
	//
	if annotations[0].Label != "4 names" || annotations[1].Label != "1 value" {
		t.Errorf("got labels %q and %q", annotations[0].Label, annotations[1].Label)
	}
}

func TestRegisters_05(t *testing.T) {
	parseInvalid(t, `REGISTERS C = A;`, "Unknown register category")
}

func TestRegisters_06(t *testing.T) {
	parseInvalid(t, `REGISTERS A X(3..1);`, "The start of the range is greater than the end")
}

func TestRegisters_07(t *testing.T) {
	parseInvalid(t, `REGISTERS A X; A Y;`, "Duplicate register category name")
}

// ==================================================================
// Tables
// ==================================================================

func TestTables_00(t *testing.T) {
	model := parseValid(t, `
		REGISTERS Predicate PT = 7;
		TABLES tab
			0 0 -> 1
			1 - -> 2
			Predicate@PT 0 -> 3;`)
	//
	table := model.Tables["tab"]
	if table == nil {
		t.Fatalf("missing table")
	}
	//
	if table.KeySize() != 2 || table.Rows() != 3 {
		t.Fatalf("got key size %d, %d rows", table.KeySize(), table.Rows())
	}
	//
	checkLookup(t, table, []uint{0, 0}, 1)
	// The wildcard matches any second key.
	checkLookup(t, table, []uint{1, 99}, 2)
	// Register references resolve to their encoding value.
	checkLookup(t, table, []uint{7, 0}, 3)
	//
	if table.Get([]uint{9, 9}).HasValue() {
		t.Errorf("unexpected match")
	}
}

func TestTables_01(t *testing.T) {
	// Register lookups are case-insensitive, searching from the end.
	model := parseValid(t, `
		REGISTERS DC nodc = 0, DC = 1;
		TABLES t DC@noDC -> 5;`)
	//
	checkLookup(t, model.Tables["t"], []uint{0}, 5)
}

func TestTables_02(t *testing.T) {
	// Single-character atoms resolve to their ASCII value.
	model := parseValid(t, `TABLES ops '&' -> 1;`)
	//
	checkLookup(t, model.Tables["ops"], []uint{'&'}, 1)
}

func TestTables_03(t *testing.T) {
	parseInvalid(t, `
		TABLES tab
			0 0 -> 1
			0 0 0 -> 2;`,
		"The table expects 2 keys per row, but this row has 3 keys")
}

func TestTables_04(t *testing.T) {
	parseInvalid(t, `REGISTERS P A; TABLES t P@B -> 1;`, "Unknown register name")
}

func TestTables_05(t *testing.T) {
	parseInvalid(t, `TABLES t Q@A -> 1;`, "Unknown register category")
}

func TestTables_06(t *testing.T) {
	parseInvalid(t, `TABLES t abc -> 1;`, "Invalid table element")
}

// ==================================================================
// Operation properties and predicates
// ==================================================================

func TestOperation_00(t *testing.T) {
	model := parseValid(t, `OPERATION PROPERTIES a b c; OPERATION PREDICATES x y;`)
	//
	if len(model.OperationProperties) != 3 || model.OperationProperties[2] != "c" {
		t.Errorf("got properties %v", model.OperationProperties)
	}
	//
	if len(model.OperationPredicates) != 2 || model.OperationPredicates[0] != "x" {
		t.Errorf("got predicates %v", model.OperationPredicates)
	}
}

func TestOperation_01(t *testing.T) {
	model := parseValid(t, `OPERATION PROPERTIES ;`)
	//
	if len(model.OperationProperties) != 0 {
		t.Errorf("got properties %v", model.OperationProperties)
	}
}

func TestOperation_02(t *testing.T) {
	parseInvalid(t, `OPERATION PROPERTIES a 1 b;`, "Unexpected token")
}

// ==================================================================
// Functional unit
// ==================================================================

func TestFunctionalUnit_00(t *testing.T) {
	model := parseValid(t, `
		FUNIT uc
			ENCODING WIDTH 8;
			OPCODE "....XXXX";
			PRED   "XX......";`)
	//
	funit := model.FunctionalUnit
	if funit.Name() != "uc" || funit.EncodingWidth() != 8 {
		t.Fatalf("got name %q, width %d", funit.Name(), funit.EncodingWidth())
	}
	//
	checkBitmask(t, funit, "OPCODE", "[0-3]")
	checkBitmask(t, funit, "PRED", "[6-7]")
}

func TestFunctionalUnit_01(t *testing.T) {
	parseInvalid(t, `FUNIT uc ENCODING WIDTH 8; OPCODE "XX";`,
		"The bitmask must be 8 bits long, but got 2 bits")
}

func TestFunctionalUnit_02(t *testing.T) {
	parseInvalid(t, `FUNIT uc ENCODING WIDTH 4; OP "X..."; OP "...X";`,
		"Duplicate bitmask name")
}

func TestFunctionalUnit_03(t *testing.T) {
	parseInvalid(t, `FUNIT uc ENCODING WIDTH 4; OP "X.Y.";`,
		"Invalid character `Y` in bitmask")
}

func TestFunctionalUnit_04(t *testing.T) {
	parseInvalid(t, `FUNIT uc ENCODING WIDTH 0;`, "Invalid encoding width")
}

func TestFunctionalUnit_05(t *testing.T) {
	// Extra whitespace within a multi-word item name is insignificant.
	model := parseValid(t, "FUNIT uc ENCODING \t WIDTH 4; OP \"..XX\";")
	//
	if model.FunctionalUnit.EncodingWidth() != 4 {
		t.Fatalf("got width %d", model.FunctionalUnit.EncodingWidth())
	}
	//
	checkBitmask(t, model.FunctionalUnit, "OP", "[0-1]")
}

// ==================================================================
// Whole descriptions
// ==================================================================

func TestParse_00(t *testing.T) {
	model := parseValid(t, `
		ARCHITECTURE "SM90";
			CHIPSET 90;
			WORD_SIZE 32;

		CONDITION TYPES
			ILLEGAL_ENCODING : ERROR

		PARAMETERS MAX_REG_COUNT = 255;

		REGISTERS
			Register R(0..7), RZ = 255;
			Predicate P(0..6), PT = 7;

		TABLES pred_join
			- 7 -> 0
			7 - -> 1;

		OPERATION PROPERTIES opex min_stall;

		FUNIT uc
			ENCODING WIDTH 16;
			OPCODE "........XXXXXXXX";`)
	//
	if model.Architecture.Name != "SM90" || len(model.Architecture.Details) != 2 {
		t.Errorf("got architecture %v", model.Architecture)
	}
	//
	if model.Parameters["MAX_REG_COUNT"] != 255 {
		t.Errorf("got parameters %v", model.Parameters)
	}
	//
	if got := model.Registers["Register"].Find("rz"); got.IsEmpty() || got.Unwrap() != 255 {
		t.Errorf("got RZ = %v", got)
	}
	//
	checkLookup(t, model.Tables["pred_join"], []uint{1, 7}, 0)
	checkLookup(t, model.Tables["pred_join"], []uint{7, 1}, 1)
	//
	checkBitmask(t, model.FunctionalUnit, "OPCODE", "[0-7]")
}

func TestParse_01(t *testing.T) {
	// An empty description parses cleanly.
	parseValid(t, "")
}

func TestParse_02(t *testing.T) {
	// A keyword which does not introduce a section ends parsing cleanly when
	// nothing failed beforehand.
	model := parseValid(t, `ARCHITECTURE "X"; ENCODING`)
	//
	if model.Architecture.Name != "X" {
		t.Errorf("got architecture %v", model.Architecture)
	}
}

func TestParse_03(t *testing.T) {
	// ... but not when an earlier section already failed.
	parseInvalid(t, `ARCHITECTURE 1; ENCODING`, "Unexpected token")
}

func TestParse_04(t *testing.T) {
	// A non-keyword at a section boundary is unrecoverable.
	parseInvalid(t, `123`, "Unexpected token")
}

func TestParse_05(t *testing.T) {
	// A failed section does not prevent later sections from being parsed (and
	// checked), but the overall parse still fails.
	result, diagnostics := Parse("test", `PARAMETERS X = ; REGISTERS A B; TABLES t Q@C -> 1;`)
	//
	if result.HasValue() {
		t.Fatalf("parse succeeded unexpectedly")
	}
	//
	if len(diagnostics) != 2 {
		t.Fatalf("got %d diagnostics", len(diagnostics))
	}
	//
	if diagnostics[0].Message() != "Unexpected token" ||
		diagnostics[1].Message() != "Unknown register category" {
		t.Errorf("got %q and %q", diagnostics[0].Message(), diagnostics[1].Message())
	}
}

// ==================================================================
// Framework
// ==================================================================

func parseValid(t *testing.T, input string) isa.ISA {
	result, diagnostics := Parse("test", input)
	//
	for _, d := range diagnostics {
		t.Errorf("unexpected diagnostic: %s", d.Message())
	}
	//
	if result.IsEmpty() {
		t.Fatalf("parse failed")
	}
	//
	return result.Unwrap()
}

func parseInvalid(t *testing.T, input string, messages ...string) {
	result, diagnostics := Parse("test", input)
	//
	if result.HasValue() {
		t.Fatalf("parse succeeded unexpectedly")
	}
	//
	if len(diagnostics) != len(messages) {
		for _, d := range diagnostics {
			t.Logf("diagnostic: %s", d.Message())
		}
		//
		t.Fatalf("got %d diagnostics, expected %d", len(diagnostics), len(messages))
	}
	//
	for i, message := range messages {
		if got := diagnostics[i].Message(); got != message {
			t.Errorf("diagnostic %d: got %q, expected %q", i, got, message)
		}
	}
}

func checkLookup(t *testing.T, table *isa.Table, keys []uint, expected uint) {
	value := table.Get(keys)
	//
	if value.IsEmpty() {
		t.Errorf("lookup %v: no match", keys)
	} else if got := value.Unwrap(); got.IsAny() || got.Value() != expected {
		t.Errorf("lookup %v: got %s, expected %d", keys, got, expected)
	}
}

func checkBitmask(t *testing.T, funit isa.FunctionalUnit, name string, expected string) {
	mask := funit.FindBitmask(name)
	//
	if mask.IsEmpty() {
		t.Errorf("missing bitmask %s", name)
	} else if got := mask.Unwrap().String(); got != expected {
		t.Errorf("bitmask %s: got %s, expected %s", name, got, expected)
	}
}
