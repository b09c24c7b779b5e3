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
	"github.com/consensys/go-sassas/pkg/util"
	"github.com/consensys/go-sassas/pkg/util/source"
)

// Level identifies the severity of a diagnostic (or of one of its
// sub-entries).
type Level uint8

const (
	// Error indicates the input is malformed and the overall parse fails.
	Error Level = iota
	// Warning indicates a suspicious construct which does not fail the parse.
	Warning
	// Note provides additional information attached to another diagnostic.
	Note
	// Help suggests how the reported problem might be fixed.
	Help
)

// String returns the display string for this level.
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Annotation associates a span of the original source with an optional
// label, e.g. "unexpected keys".
type Annotation struct {
	// Span of the original source being annotated.  This is always a valid
	// byte range of the source the diagnostic was reported against.
	Span source.Span
	// Optional label displayed alongside the underlined span.
	Label string
}

// SubEntry is a secondary entry attached to a diagnostic, such as a note or
// a help suggestion.  A sub-entry may optionally carry its own span.
type SubEntry struct {
	Level   Level
	Message string
	Span    util.Option[source.Span]
}

// Diag is a structured diagnostic produced by the parser.  It is a pure data
// object: it carries a severity level, a primary message, zero or more
// annotated source spans and zero or more secondary sub-entries.  Rendering
// (styling, snippet layout) is delegated to an external renderer.
type Diag struct {
	level       Level
	message     string
	annotations []Annotation
	subEntries  []SubEntry
}

// New constructs a diagnostic with a given level and primary message.
func New(level Level, message string) Diag {
	return Diag{level: level, message: message}
}

// WithAnnotation returns this diagnostic extended with an annotation over a
// given span.  The label may be empty.
func (d Diag) WithAnnotation(span source.Span, label string) Diag {
	d.annotations = append(d.annotations, Annotation{span, label})
	return d
}

// WithSubEntry returns this diagnostic extended with a secondary entry
// carrying no span of its own.
func (d Diag) WithSubEntry(level Level, message string) Diag {
	d.subEntries = append(d.subEntries, SubEntry{level, message, util.None[source.Span]()})
	return d
}

// WithSubEntryAt returns this diagnostic extended with a secondary entry
// annotating a given span.
func (d Diag) WithSubEntryAt(level Level, message string, span source.Span) Diag {
	d.subEntries = append(d.subEntries, SubEntry{level, message, util.Some(span)})
	return d
}

// Level returns the severity of this diagnostic.
func (d Diag) Level() Level {
	return d.level
}

// Message returns the primary message of this diagnostic.
func (d Diag) Message() string {
	return d.message
}

// Annotations returns the annotated source spans of this diagnostic.
func (d Diag) Annotations() []Annotation {
	return d.annotations
}

// SubEntries returns the secondary entries of this diagnostic.
func (d Diag) SubEntries() []SubEntry {
	return d.subEntries
}
