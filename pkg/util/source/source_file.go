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
package source

import "os"

// ReadFile reads a given source file, or produces an error.  The filename is
// retained as the origin label for any diagnostics reported against the file.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewFile(filename, string(bytes)), nil
}

// File represents a given source file (typically stored on disk).  The origin
// label is purely descriptive and never parsed; it simply identifies where
// the contents came from when rendering diagnostics.
type File struct {
	// Origin label for this source file (e.g. a file path).
	origin string
	// Contents of this file.
	contents string
}

// NewFile constructs a new source file from a given string.
func NewFile(origin string, contents string) *File {
	return &File{origin, contents}
}

// Origin returns the origin label associated with this source file.
func (p *File) Origin() string {
	return p.origin
}

// Contents returns the contents of this source file.
func (p *File) Contents() string {
	return p.contents
}

// Text returns the contents of this source file covered by a given span.
func (p *File) Text(span Span) string {
	return p.contents[span.Start():span.End()]
}

// Line provides information about a given line within the original string.
// This includes the line number (counting from 1), and the span of the line
// within the original string.
type Line struct {
	// Original text
	text string
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

// String returns the text of this line.
func (p *Line) String() string {
	return p.text[p.span.Start():p.span.End()]
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original string.
func (p *Line) Start() int {
	return p.span.Start()
}

// Length returns the number of bytes in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// FindFirstEnclosingLine determines the first line in this source file which
// encloses the start of a span.  Observe that, if the position is beyond the
// bounds of the source file then the last physical line is returned.  Also,
// the returned line is not guaranteed to enclose the entire span, as these
// can cross multiple lines.
func (p *File) FindFirstEnclosingLine(span Span) Line {
	// Index identifies the position of the span within the original text.
	index := span.Start()
	// Num records the line number, counting from 1.
	num := 1
	// Start records the starting offset of the current line.
	start := 0
	// Find the line.
	for i := 0; i < len(p.contents); i++ {
		if i == index {
			end := findEndOfLine(index, p.contents)
			return Line{p.contents, Span{start, end}, num}
		} else if p.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{p.contents, Span{start, len(p.contents)}, num}
}

// Find the end of the enclosing line
func findEndOfLine(index int, text string) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	// No end in sight!
	return len(text)
}
