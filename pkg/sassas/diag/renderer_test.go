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
package diag

import (
	"strings"
	"testing"

	"github.com/consensys/go-sassas/pkg/util/source"
)

func TestRender_00(t *testing.T) {
	d := New(Error, "Duplicate constant name").
		WithAnnotation(source.NewSpan(18, 19), "")
	//
	checkRender(t, "PARAMETERS X = 1;\nX = 2;\n", d,
		"error: Duplicate constant name",
		" --> test.sass:2:1",
		"  |",
		"2 | X = 2;",
		"  | ^",
	)
}

func TestRender_01(t *testing.T) {
	d := New(Error, "Unexpected token").
		WithAnnotation(source.NewSpan(4, 7), "expected `;`, but got identifier")
	//
	checkRender(t, "abc def", d,
		"error: Unexpected token",
		" --> test.sass:1:5",
		"  |",
		"1 | abc def",
		"  |     ^^^ expected `;`, but got identifier",
	)
}

func TestRender_02(t *testing.T) {
	// Sub-entries without a span render as "= level: message" lines.
	d := New(Error, "Integer literal out of range").
		WithAnnotation(source.NewSpan(0, 3), "").
		WithSubEntry(Note, "the value must be in the range [0, 255]")
	//
	checkRender(t, "256", d,
		"error: Integer literal out of range",
		" --> test.sass:1:1",
		"  |",
		"1 | 256",
		"  | ^^^",
		"  = note: the value must be in the range [0, 255]",
	)
}

func TestRender_03(t *testing.T) {
	// A zero-length span still gets a single caret.
	d := New(Error, "missing key").
		WithAnnotation(source.NewSpan(3, 3), "")
	//
	checkRender(t, "0 0 -> 1;", d,
		"error: missing key",
		" --> test.sass:1:4",
		"  |",
		"1 | 0 0 -> 1;",
		"  |    ^",
	)
}

func TestRender_04(t *testing.T) {
	// Multiple annotations each get their own snippet.
	d := New(Warning, "odd spacing").
		WithAnnotation(source.NewSpan(0, 1), "here").
		WithAnnotation(source.NewSpan(4, 5), "and here")
	//
	checkRender(t, "a\nb\nc", d,
		"warning: odd spacing",
		" --> test.sass:1:1",
		"  |",
		"1 | a",
		"  | ^ here",
		" --> test.sass:3:1",
		"  |",
		"3 | c",
		"  | ^ and here",
	)
}

// ==================================================================
// Framework
// ==================================================================

func checkRender(t *testing.T, contents string, d Diag, expected ...string) {
	var builder strings.Builder
	// Colour is disabled, since the writer is not standard output.
	renderer := NewRenderer(&builder, DefaultStyles)
	renderer.Render(source.NewFile("test.sass", contents), d)
	//
	got := builder.String()
	want := strings.Join(expected, "\n") + "\n"
	//
	if got != want {
		t.Errorf("got:\n%s\nexpected:\n%s", got, want)
	}
}
