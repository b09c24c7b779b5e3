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
	"strings"

	"github.com/consensys/go-sassas/pkg/util"
)

// BitRange is a contiguous range of bit positions within a bitmask, where
// bit 0 is the least significant bit of the encoding.
type BitRange struct {
	Start uint
	Size  uint
}

// BitMask identifies which bits of an instruction encoding are relevant for
// a particular part, as a list of maximal contiguous bit ranges.  The ranges
// are recorded in the order the construction scan visits them, i.e. from
// the most significant run down to the least significant.
type BitMask []BitRange

// NewBitMask constructs a bitmask from a string description, where `.`
// marks a bit not covered by the mask and `X` a bit covered by it.  The
// first character of the string corresponds to the most significant bit.
//
// This function assumes the description contains only `.` and `X`; the
// parser validates this beforehand.
func NewBitMask(description string) BitMask {
	var (
		mask BitMask
		n    = uint(len(description))
		i    = uint(0)
	)
	//
	for i < n {
		// Find the next run of X characters.
		for i < n && description[i] != 'X' {
			i++
		}
		//
		if i == n {
			break
		}
		// One past the most significant bit of this run.
		end := n - i
		//
		for i < n && description[i] == 'X' {
			i++
		}
		// Least significant bit of this run.
		begin := n - i
		//
		mask = append(mask, BitRange{begin, end - begin})
	}
	//
	return mask
}

// String prints the ranges of this bitmask in reverse order, so that the
// least significant range comes first, e.g. "[1-2, 4]".
func (p BitMask) String() string {
	if len(p) == 0 {
		return "[Empty]"
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i := len(p) - 1; i >= 0; i-- {
		if i != len(p)-1 {
			builder.WriteString(", ")
		}
		//
		if p[i].Size == 1 {
			fmt.Fprintf(&builder, "%d", p[i].Start)
		} else {
			fmt.Fprintf(&builder, "%d-%d", p[i].Start, p[i].Start+p[i].Size-1)
		}
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// FunctionalUnit represents the contents of the FUNIT section: the unit
// name, the width in bits of the instruction encoding, and a collection of
// named bitmasks over that encoding.
type FunctionalUnit struct {
	name          string
	encodingWidth uint
	bitmasks      map[string]BitMask
}

// SetName sets the name of this functional unit.
func (p *FunctionalUnit) SetName(name string) {
	p.name = name
}

// Name returns the name of this functional unit.
func (p *FunctionalUnit) Name() string {
	return p.name
}

// SetEncodingWidth sets the width in bits of the instruction encoding.
func (p *FunctionalUnit) SetEncodingWidth(width uint) {
	p.encodingWidth = width
}

// EncodingWidth returns the width in bits of the instruction encoding.
func (p *FunctionalUnit) EncodingWidth() uint {
	return p.encodingWidth
}

// AddBitmask registers a named bitmask, returning false if a bitmask of the
// same name already exists (in which case the original is retained).
func (p *FunctionalUnit) AddBitmask(name string, mask BitMask) bool {
	if p.bitmasks == nil {
		p.bitmasks = make(map[string]BitMask)
	} else if _, ok := p.bitmasks[name]; ok {
		return false
	}
	//
	p.bitmasks[name] = mask
	//
	return true
}

// FindBitmask returns the bitmask registered under a given name.
func (p *FunctionalUnit) FindBitmask(name string) util.Option[BitMask] {
	if mask, ok := p.bitmasks[name]; ok {
		return util.Some(mask)
	}
	//
	return util.None[BitMask]()
}

// Bitmasks returns all named bitmasks of this functional unit.
func (p *FunctionalUnit) Bitmasks() map[string]BitMask {
	return p.bitmasks
}
