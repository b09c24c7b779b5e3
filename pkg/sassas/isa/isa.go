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

// Package isa defines the in-memory data model produced by parsing an
// instruction-set description file.
package isa

// ConstantMap maps names to signed 32bit constants, as parsed from the
// PARAMETERS and CONSTANTS sections.  Keys are unique; the parser reports
// duplicate insertions rather than overwriting.
type ConstantMap map[string]int32

// StringMap maps names to replacement strings, as parsed from the
// STRING_MAP section.  Keys are unique; the parser reports duplicate
// insertions rather than overwriting.
type StringMap map[string]string

// RegisterTable maps register category names to their register groups, as
// parsed from the REGISTERS section.
type RegisterTable map[string]*RegisterGroup

// TableMap maps table names to their tables, as parsed from the TABLES
// section.
type TableMap map[string]*Table

// ISA summarises all the information parsed from an instruction-set
// description file.  It is produced by the parser on a fully successful
// parse and is immutable thereafter from the parser's perspective.
type ISA struct {
	// Architecture information, parsed from the ARCHITECTURE section.
	Architecture Architecture
	// Condition types, parsed from the CONDITION TYPES section.
	ConditionTypes []ConditionType
	// Named integer constants, parsed from the PARAMETERS and CONSTANTS
	// sections respectively.
	Parameters, Constants ConstantMap
	// String substitutions, parsed from the STRING_MAP section.
	StringMap StringMap
	// Register categories, parsed from the REGISTERS section.
	Registers RegisterTable
	// Lookup tables, parsed from the TABLES section.
	Tables TableMap
	// Identifier lists parsed from the OPERATION PROPERTIES and OPERATION
	// PREDICATES sections.
	OperationProperties, OperationPredicates []string
	// Functional unit description, parsed from the FUNIT section.
	FunctionalUnit FunctionalUnit
}
