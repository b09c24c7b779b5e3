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

import "github.com/consensys/go-sassas/pkg/util"

// ConditionKind identifies the severity kind of a condition type.
type ConditionKind uint8

const (
	// ConditionError corresponds to the `ERROR` kind.
	ConditionError ConditionKind = iota
	// ConditionWarning corresponds to the `WARNING` kind.
	ConditionWarning
	// ConditionInfo corresponds to the `INFO` kind.
	ConditionInfo
)

// ConditionType represents one item of the CONDITION TYPES section, where
// each item has the format "name : kind".  For example,
// ILLEGAL_INSTR_ENCODING_ERROR : ERROR.  Instances are only constructed
// through ConditionTypeFromString, hence the kind is always valid.
type ConditionType struct {
	Name string
	Kind ConditionKind
}

// conditionKinds maps the spelling of each valid kind to its value.  The
// slice (rather than map) keeps ConditionKinds deterministic.
var conditionKinds = []struct {
	spelling string
	kind     ConditionKind
}{
	{"ERROR", ConditionError},
	{"WARNING", ConditionWarning},
	{"INFO", ConditionInfo},
}

// ConditionTypeFromString creates a ConditionType from a given kind string
// and name.  If the kind string is not a valid kind, an empty option is
// returned and no instance is produced.
func ConditionTypeFromString(kind string, name string) util.Option[ConditionType] {
	for _, k := range conditionKinds {
		if k.spelling == kind {
			return util.Some(ConditionType{name, k.kind})
		}
	}
	//
	return util.None[ConditionType]()
}

// ConditionKinds returns the spellings of all valid condition kinds, in a
// fixed order suitable for diagnostic messages.
func ConditionKinds() []string {
	kinds := make([]string, len(conditionKinds))
	for i, k := range conditionKinds {
		kinds[i] = k.spelling
	}
	//
	return kinds
}
