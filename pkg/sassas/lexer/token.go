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
package lexer

import (
	"github.com/consensys/go-sassas/pkg/util/source"
)

// Kind identifies the kind of a token produced by the lexer.
type Kind uint8

const (
	// Unknown is the kind assigned to tokens in the source code that are
	// unrecognised or erroneous.  The lexer never fails on such input; the
	// parser checks the legality of the token further.
	Unknown Kind = iota
	// End marks the end of the input.  Once the lexer reaches the end of the
	// source code, it keeps producing End tokens.
	End
	// Identifier is a string composed of letters, digits and underscores
	// which does not start with a digit.
	Identifier
	// Integer is an integer literal in any supported base.  Format
	// validation is deferred to the integer evaluator, not the lexer.
	Integer
	// String is a literal enclosed in single or double quotes.  Strings must
	// be single-line; escape characters are not supported.
	String

	// Keywords.
	KeywordArchitecture
	KeywordCondition
	KeywordConstants
	KeywordEncoding
	KeywordFUnit
	KeywordOperation
	KeywordParameters
	KeywordPredicates
	KeywordProperties
	KeywordRegisters
	KeywordStringMap
	KeywordTables
	KeywordTypes

	// Punctuators.
	LeftSquare
	RightSquare
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Plus
	Minus
	Star
	Slash
	Percent
	Tilde
	Exclaim
	ExclaimEqual
	Less
	LessEqual
	LessLess
	Greater
	GreaterEqual
	GreaterGreater
	Equal
	EqualEqual
	Amp
	AmpAmp
	Pipe
	PipePipe
	Arrow
	Dot
	DotDot
	Question
	Colon
	Semi
	Comma
	At
	Dollar
	BackTick

	firstKeyword    = KeywordArchitecture
	lastKeyword     = KeywordTypes
	firstPunctuator = LeftSquare
	lastPunctuator  = BackTick
)

// keywords maps the exact spelling of each reserved word to its kind.
var keywords = map[string]Kind{
	"ARCHITECTURE": KeywordArchitecture,
	"CONDITION":    KeywordCondition,
	"CONSTANTS":    KeywordConstants,
	"ENCODING":     KeywordEncoding,
	"FUNIT":        KeywordFUnit,
	"OPERATION":    KeywordOperation,
	"PARAMETERS":   KeywordParameters,
	"PREDICATES":   KeywordPredicates,
	"PROPERTIES":   KeywordProperties,
	"REGISTERS":    KeywordRegisters,
	"STRING_MAP":   KeywordStringMap,
	"TABLES":       KeywordTables,
	"TYPES":        KeywordTypes,
}

// keywordSpellings is the inverse of keywords, used when describing token
// kinds in diagnostic messages.
var keywordSpellings = map[Kind]string{}

// punctuatorSpellings gives the spelling of each punctuator, used when
// describing token kinds in diagnostic messages.
var punctuatorSpellings = map[Kind]string{
	LeftSquare: "[", RightSquare: "]",
	LeftParen: "(", RightParen: ")",
	LeftBrace: "{", RightBrace: "}",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Tilde: "~", Exclaim: "!", ExclaimEqual: "!=",
	Less: "<", LessEqual: "<=", LessLess: "<<",
	Greater: ">", GreaterEqual: ">=", GreaterGreater: ">>",
	Equal: "=", EqualEqual: "==",
	Amp: "&", AmpAmp: "&&",
	Pipe: "|", PipePipe: "||",
	Arrow: "->", Dot: ".", DotDot: "..",
	Question: "?", Colon: ":", Semi: ";", Comma: ",",
	At: "@", Dollar: "$", BackTick: "`",
}

func init() {
	for spelling, kind := range keywords {
		keywordSpellings[kind] = spelling
	}
}

// IsKeyword determines whether this kind corresponds to a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= firstKeyword && k <= lastKeyword
}

// IsPunctuator determines whether this kind corresponds to a punctuator.
func (k Kind) IsPunctuator() bool {
	return k >= firstPunctuator && k <= lastPunctuator
}

// String returns a description of this token kind suitable for use in
// diagnostic messages.
func (k Kind) String() string {
	switch {
	case k == End:
		return "`EOF`"
	case k == Identifier:
		return "identifier"
	case k == Integer:
		return "integer"
	case k == String:
		return "string"
	case k.IsKeyword():
		return "keyword `" + keywordSpellings[k] + "`"
	case k.IsPunctuator():
		return "`" + punctuatorSpellings[k] + "`"
	default:
		return "unknown"
	}
}

// Token associates a kind with the range of source code it occupies.  Its
// content is always a valid substring of the source; an End token has
// zero-length content positioned at the end of the input.
type Token struct {
	kind Kind
	// The source text being lexed.  Retaining it here allows tokens to be
	// merged and their content recovered without consulting the lexer.
	src  string
	span source.Span
}

// NewToken constructs a token of a given kind covering a given span of the
// source.
func NewToken(kind Kind, src string, span source.Span) Token {
	return Token{kind, src, span}
}

// Kind returns the kind of this token.
func (t Token) Kind() Kind {
	return t.kind
}

// Content returns the source text covered by this token.
func (t Token) Content() string {
	return t.src[t.span.Start():t.span.End()]
}

// Span returns the range of source code occupied by this token.
func (t Token) Span() source.Span {
	return t.span
}

// Is checks whether this token has a given kind.
func (t Token) Is(kind Kind) bool {
	return t.kind == kind
}

// IsNot checks whether this token does not have a given kind.
func (t Token) IsNot(kind Kind) bool {
	return t.kind != kind
}

// IsKeyword checks whether this token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.kind.IsKeyword()
}

// IsPunctuator checks whether this token is a punctuator.
func (t Token) IsPunctuator() bool {
	return t.kind.IsPunctuator()
}

// Merge combines this token and another into a single token of a given kind.
// The content of the merged token is the source text spanning both tokens,
// hence any whitespace between them is preserved.  Neither original token is
// modified.
func (t Token) Merge(other Token, kind Kind) Token {
	start := min(t.span.Start(), other.span.Start())
	end := max(t.span.End(), other.span.End())
	//
	return Token{kind, t.src, source.NewSpan(start, end)}
}
