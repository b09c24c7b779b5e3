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
	"slices"
	"testing"
)

func TestBitMask_00(t *testing.T) {
	checkBitMask(t, ".X.XX.", "[1-2, 4]", BitRange{4, 1}, BitRange{1, 2})
}

func TestBitMask_01(t *testing.T) {
	checkBitMask(t, ".XX..X", "[0, 3-4]", BitRange{3, 2}, BitRange{0, 1})
}

func TestBitMask_02(t *testing.T) {
	checkBitMask(t, "XXXX", "[0-3]", BitRange{0, 4})
}

func TestBitMask_03(t *testing.T) {
	checkBitMask(t, "....", "[Empty]")
}

func TestBitMask_04(t *testing.T) {
	checkBitMask(t, "X...X", "[0, 4]", BitRange{4, 1}, BitRange{0, 1})
}

func TestBitMask_05(t *testing.T) {
	checkBitMask(t, "", "[Empty]")
}

func TestFunctionalUnit_00(t *testing.T) {
	var funit FunctionalUnit
	//
	funit.SetName("uc")
	funit.SetEncodingWidth(8)
	//
	if funit.Name() != "uc" || funit.EncodingWidth() != 8 {
		t.Errorf("got name %q, width %d", funit.Name(), funit.EncodingWidth())
	}
}

func TestFunctionalUnit_01(t *testing.T) {
	var funit FunctionalUnit
	//
	if !funit.AddBitmask("OPCODE", NewBitMask("XX..")) {
		t.Fatalf("insertion failed")
	}
	// A second insertion under the same name fails, retaining the original.
	if funit.AddBitmask("OPCODE", NewBitMask("..XX")) {
		t.Fatalf("insertion succeeded unexpectedly")
	}
	//
	mask := funit.FindBitmask("OPCODE")
	if mask.IsEmpty() || mask.Unwrap().String() != "[2-3]" {
		t.Errorf("got %v", mask)
	}
}

func TestFunctionalUnit_02(t *testing.T) {
	var funit FunctionalUnit
	//
	if funit.FindBitmask("OPCODE").HasValue() {
		t.Errorf("unexpected match")
	}
}

// ==================================================================
// Framework
// ==================================================================

func checkBitMask(t *testing.T, description string, display string, expected ...BitRange) {
	mask := NewBitMask(description)
	//
	if !slices.Equal([]BitRange(mask), expected) {
		t.Errorf("%q: got ranges %v, expected %v", description, mask, expected)
	}
	//
	if got := mask.String(); got != display {
		t.Errorf("%q: got display %s, expected %s", description, got, display)
	}
}
