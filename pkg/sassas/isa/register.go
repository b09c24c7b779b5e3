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
	"strings"

	"github.com/consensys/go-sassas/pkg/util"
)

// Register is a single register name together with its encoding value.
type Register struct {
	Name  string
	Value uint
}

// RegisterGroup represents all registers belonging to the same category, as
// an ordered list of name/value pairs.  A value may correspond to multiple
// names, so lookups must follow a specific search order; this is why the
// group is not a map.
type RegisterGroup struct {
	registers []Register
}

// AppendValue adds a new register with an explicit value to the end of the
// group.
func (p *RegisterGroup) AppendValue(name string, value uint) {
	p.registers = append(p.registers, Register{name, value})
}

// Append adds a new register to the end of the group, defaulting its value
// to the last register value + 1, or 0 if the group is empty.
func (p *RegisterGroup) Append(name string) {
	var value uint
	//
	if n := len(p.registers); n > 0 {
		value = p.registers[n-1].Value + 1
	}
	//
	p.AppendValue(name, value)
}

// ConcatWith appends all registers of another group to the end of this one,
// preserving their order.
func (p *RegisterGroup) ConcatWith(other *RegisterGroup) {
	p.registers = append(p.registers, other.registers...)
}

// Registers returns the registers of this group in insertion order.
func (p *RegisterGroup) Registers() []Register {
	return p.registers
}

// Find searches for a register by name, returning its value.  The search is
// case-insensitive and runs from the end of the group, so the most recently
// added register wins on a name collision.
//
// Case-insensitivity matters in practice: description files contain
// references like `DC@noDC` against a register spelled `nodc`.
func (p *RegisterGroup) Find(name string) util.Option[uint] {
	for i := len(p.registers) - 1; i >= 0; i-- {
		if strings.EqualFold(p.registers[i].Name, name) {
			return util.Some(p.registers[i].Value)
		}
	}
	//
	return util.None[uint]()
}

// FindValue searches for a register by value from the end of the group,
// returning the name of the first register which matches.
func (p *RegisterGroup) FindValue(value uint) util.Option[string] {
	for i := len(p.registers) - 1; i >= 0; i-- {
		if p.registers[i].Value == value {
			return util.Some(p.registers[i].Name)
		}
	}
	//
	return util.None[string]()
}
