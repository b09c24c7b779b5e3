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

// Package parser implements parsing of instruction-set description files
// into the data model of pkg/sassas/isa, reporting malformed input through
// structured diagnostics with precise source spans.
package parser

import (
	"fmt"
	"strings"

	"github.com/consensys/go-sassas/pkg/sassas/diag"
	"github.com/consensys/go-sassas/pkg/sassas/lexer"
	"github.com/consensys/go-sassas/pkg/util"
	"github.com/consensys/go-sassas/pkg/util/source"
)

// Parser provides the generic machinery shared by concrete parsers: it owns
// the lexer and the diagnostics produced during parsing, and offers common
// token-expectation and literal-extraction helpers.  Parsing never aborts on
// malformed input; helpers record a diagnostic and leave recovery to the
// caller.
type Parser struct {
	// The source being parsed, retained for diagnostic rendering.
	file *source.File
	// The underlying token stream.
	lexer *lexer.Lexer
	// All diagnostics generated during the parsing process.
	diagnostics []diag.Diag
}

// NewParser constructs a parser over a given source text.  The origin label
// is purely descriptive (e.g. a file path) and is only used when rendering
// diagnostics.
func NewParser(origin string, text string) *Parser {
	return &Parser{source.NewFile(origin, text), lexer.NewLexer(text), nil}
}

// SourceFile returns the source being parsed.
func (p *Parser) SourceFile() *source.File {
	return p.file
}

// TakeDiagnostics drains the diagnostics generated during parsing.  The
// diagnostics are moved out: a second drain yields nothing, and the parser
// should not be reused to produce further diagnostics afterwards.
func (p *Parser) TakeDiagnostics() []diag.Diag {
	diagnostics := p.diagnostics
	p.diagnostics = nil
	//
	return diagnostics
}

// Report appends a diagnostic to the diagnostics list.
func (p *Parser) Report(d diag.Diag) {
	p.diagnostics = append(p.diagnostics, d)
}

// diagAtSpan creates a diagnostic with a primary annotation over a given
// span.  The label may be empty; a non-empty note becomes an additional
// note entry.  The diagnostic is not reported, so that the caller can extend
// it first.
func (p *Parser) diagAtSpan(span source.Span, level diag.Level, message string, label string,
	note string) diag.Diag {
	d := diag.New(level, message).WithAnnotation(span, label)
	//
	if note != "" {
		d = d.WithSubEntry(diag.Note, note)
	}
	//
	return d
}

// diagAtToken creates a diagnostic with a primary annotation at the range of
// a given token.
func (p *Parser) diagAtToken(token lexer.Token, level diag.Level, message string, label string,
	note string) diag.Diag {
	return p.diagAtSpan(token.Span(), level, message, label, note)
}

// ExpectToken returns whether a given token is *not* of any of the expected
// kinds.  On a mismatch a diagnostic is recorded at the token describing the
// acceptable kinds; parsing is never aborted here, the caller decides how to
// recover.  At least one expected kind must be given.
func (p *Parser) ExpectToken(token lexer.Token, expected ...lexer.Kind) bool {
	for _, kind := range expected {
		if token.Is(kind) {
			return false
		}
	}
	//
	label := fmt.Sprintf("expected %s, but got %s", describeKinds(expected), token.Kind())
	p.Report(p.diagAtToken(token, diag.Error, "Unexpected token", label, ""))
	//
	return true
}

// ExpectCurrentToken behaves as ExpectToken applied to the current token.
func (p *Parser) ExpectCurrentToken(expected ...lexer.Kind) bool {
	return p.ExpectToken(p.lexer.CurrentToken(), expected...)
}

// ExpectNextToken behaves as ExpectToken applied to the next token, which is
// consumed either way.
func (p *Parser) ExpectNextToken(expected ...lexer.Kind) bool {
	return p.ExpectToken(p.lexer.NextToken(), expected...)
}

// GetStringLiteral extracts the content of a string literal token, without
// the surrounding quotes.  If the literal is malformed (e.g. truncated at
// the end of a line, so its first and last characters differ) a diagnostic
// is recorded and an empty option returned.  The token is assumed to be a
// String token.
func (p *Parser) GetStringLiteral(token lexer.Token) util.Option[string] {
	content := token.Content()
	//
	if len(content) > 1 && content[0] == content[len(content)-1] {
		// Remove the surrounding quotes.
		return util.Some(content[1 : len(content)-1])
	}
	// Invalid string literal.
	p.Report(p.diagAtToken(token, diag.Error, "Invalid string literal",
		"string literal must be enclosed in quotes", ""))
	//
	return util.None[string]()
}

// ExpectStringLiteral behaves as GetStringLiteral, except that it first
// checks that the token is a String token, recording a diagnostic otherwise.
func (p *Parser) ExpectStringLiteral(token lexer.Token) util.Option[string] {
	if p.ExpectToken(token, lexer.String) {
		return util.None[string]()
	}
	//
	return p.GetStringLiteral(token)
}

// GetIdentifierOrString returns the spelling of an identifier token, or the
// (dequoted) content of a string literal token.
func (p *Parser) GetIdentifierOrString(token lexer.Token) util.Option[string] {
	if token.Is(lexer.String) {
		return p.GetStringLiteral(token)
	}
	//
	return util.Some(token.Content())
}

// ExpectIdentifierOrString behaves as GetIdentifierOrString, except that it
// first checks that the token is an Identifier or String token, recording a
// diagnostic otherwise.
func (p *Parser) ExpectIdentifierOrString(token lexer.Token) util.Option[string] {
	if p.ExpectToken(token, lexer.Identifier, lexer.String) {
		return util.None[string]()
	}
	//
	return p.GetIdentifierOrString(token)
}

// describeKinds renders one or more token kinds for use in an "expected ..."
// diagnostic, e.g. "identifier, `=` or string".
func describeKinds(kinds []lexer.Kind) string {
	if len(kinds) == 1 {
		return kinds[0].String()
	}
	//
	descriptions := make([]string, len(kinds))
	for i, kind := range kinds {
		descriptions[i] = kind.String()
	}
	//
	n := len(descriptions)
	//
	return strings.Join(descriptions[:n-1], ", ") + " or " + descriptions[n-1]
}
