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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-sassas/pkg/util/source"
	"github.com/consensys/go-sassas/pkg/util/termio"
	"golang.org/x/term"
)

// StyleSheet maps a diagnostic level to the terminal style used when
// rendering it.  The core never depends on concrete styling; callers supply
// their own mapping, or use DefaultStyles.
type StyleSheet func(Level) termio.AnsiEscape

// DefaultStyles is the standard severity-to-style mapping: bold bright
// colours per level.  Every level resolves to some style.
func DefaultStyles(level Level) termio.AnsiEscape {
	switch level {
	case Error:
		return termio.NewAnsiEscape().FgColour(termio.TERM_RED).Bold()
	case Warning:
		return termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW).Bold()
	case Note:
		return termio.NewAnsiEscape().FgColour(termio.TERM_GREEN).Bold()
	default:
		return termio.NewAnsiEscape().FgColour(termio.TERM_CYAN).Bold()
	}
}

// Renderer produces a human-readable report of a diagnostic, including the
// enclosing source line of each annotation with an underline marking the
// annotated span.
type Renderer struct {
	out    io.Writer
	styles StyleSheet
	// Whether to emit ANSI colour escapes.
	colour bool
}

// NewRenderer constructs a renderer over a given writer using a given style
// sheet.  Colour is enabled only when the writer is standard output and
// standard output is a terminal.
func NewRenderer(out io.Writer, styles StyleSheet) *Renderer {
	colour := out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	return &Renderer{out, styles, colour}
}

// Render writes a human-readable report of a given diagnostic reported
// against a given source file.
func (r *Renderer) Render(file *source.File, d Diag) {
	r.renderHeader(d.Level(), d.Message())
	//
	for _, annotation := range d.Annotations() {
		r.renderAnnotation(file, d.Level(), annotation)
	}
	//
	for _, sub := range d.SubEntries() {
		if sub.Span.HasValue() {
			r.renderHeader(sub.Level, sub.Message)
			r.renderAnnotation(file, sub.Level, Annotation{sub.Span.Unwrap(), ""})
		} else {
			fmt.Fprintf(r.out, "  = %s: %s\n", r.styled(sub.Level, sub.Level.String()), sub.Message)
		}
	}
}

// renderHeader writes the "error: message" line.
func (r *Renderer) renderHeader(level Level, message string) {
	fmt.Fprintf(r.out, "%s: %s\n", r.styled(level, level.String()), message)
}

// renderAnnotation writes the location line, the enclosing source line and
// an underline covering the annotated span.
func (r *Renderer) renderAnnotation(file *source.File, level Level, annotation Annotation) {
	line := file.FindFirstEnclosingLine(annotation.Span)
	// Column of the annotation within its line (counting from 1).
	col := annotation.Span.Start() - line.Start() + 1
	// Width of the underline, clipped to the end of the line.  Zero-length
	// spans still get a single caret.
	width := min(annotation.Span.Length(), line.Start()+line.Length()-annotation.Span.Start())
	width = max(width, 1)
	// Gutter width is determined by the line number.
	number := fmt.Sprintf("%d", line.Number())
	gutter := strings.Repeat(" ", len(number))
	//
	fmt.Fprintf(r.out, "%s--> %s:%d:%d\n", gutter, file.Origin(), line.Number(), col)
	fmt.Fprintf(r.out, "%s |\n", gutter)
	fmt.Fprintf(r.out, "%s | %s\n", number, line.String())
	// Underline
	underline := strings.Repeat(" ", col-1) + strings.Repeat("^", width)
	//
	if annotation.Label != "" {
		fmt.Fprintf(r.out, "%s | %s %s\n", gutter, r.styled(level, underline), annotation.Label)
	} else {
		fmt.Fprintf(r.out, "%s | %s\n", gutter, r.styled(level, underline))
	}
}

// styled wraps text in the style for a given level, when colour is enabled.
func (r *Renderer) styled(level Level, text string) string {
	if !r.colour {
		return text
	}
	//
	return r.styles(level).Build() + text + termio.ResetAnsiEscape().Build()
}
