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

	"github.com/consensys/go-sassas/pkg/util"
)

// Element is one key or value of a table row.  The wildcard is represented
// explicitly rather than as a reserved integer, so a genuine key equal to
// the maximum representable value can never be misread as "match any".
type Element struct {
	value uint
	any   bool
}

// NewElement constructs an element holding a concrete value.
func NewElement(value uint) Element {
	return Element{value, false}
}

// MatchAny constructs the wildcard element, which matches any probe value in
// its position.
func MatchAny() Element {
	return Element{0, true}
}

// IsAny checks whether this element is the wildcard.
func (e Element) IsAny() bool {
	return e.any
}

// Value returns the concrete value of this element, which is meaningless for
// the wildcard.
func (e Element) Value() uint {
	return e.value
}

// Matches checks whether this element matches a given probe value.
func (e Element) Matches(probe uint) bool {
	return e.any || e.value == probe
}

// String returns "Any" for the wildcard, or the decimal value otherwise.
func (e Element) String() string {
	if e.any {
		return "Any"
	}
	//
	return fmt.Sprintf("%d", e.value)
}

// Table represents one table of the TABLES section: a mapping from a fixed
// number of keys to a single value.  Lookup scans rows from top to bottom
// and the first structurally matching row wins.
//
// For storage efficiency all keys and values live in a single flattened
// slice.  For example, the table
//
//	1 0 0 -> 0
//	2 2 0 -> 5
//	2 1 0 -> 5
//
// is stored as {1, 0, 0, 0, 2, 2, 0, 5, 2, 1, 0, 5} with a key size of 3.
type Table struct {
	content []Element
	keySize uint
}

// SetKeySize fixes the number of keys per row.  This is established by the
// first row appended and every subsequent row must match it exactly.
func (p *Table) SetKeySize(keySize uint) {
	p.keySize = keySize
}

// KeySize returns the number of keys per row.
func (p *Table) KeySize() uint {
	return p.keySize
}

// Rows returns the number of rows in this table.
func (p *Table) Rows() uint {
	if p.keySize == 0 && len(p.content) == 0 {
		return 0
	}
	//
	return uint(len(p.content)) / (p.keySize + 1)
}

// Row returns the keys and value of the ith row.
func (p *Table) Row(i uint) ([]Element, Element) {
	offset := i * (p.keySize + 1)
	return p.content[offset : offset+p.keySize], p.content[offset+p.keySize]
}

// AppendRow adds a row to the end of this table.  The number of keys must
// equal the key size; this is a caller precondition, not a runtime table
// error.
func (p *Table) AppendRow(keys []Element, value Element) {
	if uint(len(keys)) != p.keySize {
		panic("key size mismatch")
	}
	//
	p.content = append(p.content, keys...)
	p.content = append(p.content, value)
}

// Get looks up the value for a given key tuple, scanning rows top to bottom
// and returning the value of the first row whose every key element matches
// the corresponding probe (wildcard elements match anything).  The probe
// must have exactly the key size of the table; this is a caller
// precondition.
func (p *Table) Get(keys []uint) util.Option[Element] {
	if uint(len(keys)) != p.keySize {
		panic("key size mismatch")
	}
	//
	for i := uint(0); i < p.Rows(); i++ {
		row, value := p.Row(i)
		match := true
		//
		for j, key := range keys {
			if !row[j].Matches(key) {
				match = false
				break
			}
		}
		//
		if match {
			return util.Some(value)
		}
	}
	// No match found.
	return util.None[Element]()
}
