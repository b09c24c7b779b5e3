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

// Lexer turns a source string into a stream of tokens on demand.  It is a
// simple synchronous state machine holding the source, a byte cursor and the
// last token produced.  The lexer itself never reports errors: unrecognised
// characters become Unknown tokens and unterminated strings are still
// emitted as String tokens, with legality checks deferred to the parser.
type Lexer struct {
	// The content of the source code.
	src string
	// Offset of the next byte to be processed.
	index int
	// Caches the last produced token.
	current Token
}

// NewLexer constructs a lexer over a given source string.  Note that no
// token has been produced yet; the first call to NextToken establishes the
// current token.
func NewLexer(src string) *Lexer {
	return &Lexer{src, 0, Token{}}
}

// Source returns the source string being lexed.
func (p *Lexer) Source() string {
	return p.src
}

// CurrentToken returns the last token produced by NextToken.
func (p *Lexer) CurrentToken() Token {
	return p.current
}

// NextToken advances from the current scan position, skips whitespace, and
// produces a token whose span covers exactly the recognised lexeme.  The
// token is cached as the current token and returned.  Repeated calls after
// the end of the input keep returning End tokens.
func (p *Lexer) NextToken() Token {
	// Consume whitespace.
	for p.index < len(p.src) && isSpace(p.src[p.index]) {
		p.index++
	}
	//
	if p.index >= len(p.src) {
		return p.formToken(End, p.index)
	}
	//
	begin := p.index
	ch := p.src[p.index]
	p.index++
	//
	switch {
	case ch >= '0' && ch <= '9':
		// Integer literal.  Greedily consume alphanumerics and underscores;
		// format validation happens in the integer evaluator.
		p.consumeWhile(isIdentifierChar)
		return p.formToken(Integer, begin)

	case ch == '_' || isLetter(ch):
		// Identifier or keyword.
		p.consumeWhile(isIdentifierChar)
		//
		token := p.formToken(Identifier, begin)
		// Reclassify exact keyword spellings.
		if kind, ok := keywords[token.Content()]; ok {
			token = NewToken(kind, p.src, token.Span())
			p.current = token
		}
		//
		return token

	case ch == '"' || ch == '\'':
		return p.lexStringLiteral(begin, ch)
	}
	//
	return p.lexPunctuator(begin, ch)
}

// LexUntil lexes tokens until the given condition is satisfied, starting
// with the current token.  The consume flag indicates whether the matching
// token itself is consumed.  If a token satisfying the condition is
// encountered it returns true, otherwise false (i.e. the end of the input
// was reached first).
func (p *Lexer) LexUntil(cond func(Token) bool, consume bool) bool {
	for p.current.IsNot(End) && !cond(p.current) {
		p.NextToken()
	}
	//
	if p.current.Is(End) {
		return false
	}
	//
	if consume {
		p.NextToken()
	}
	//
	return true
}

// LexUntilKind lexes tokens until a token of the given kind is encountered.
// The consume flag indicates whether that token itself is consumed.
func (p *Lexer) LexUntilKind(kind Kind, consume bool) bool {
	return p.LexUntil(func(t Token) bool { return t.Is(kind) }, consume)
}

// ============================================================================
// Helpers
// ============================================================================

// formToken creates (and caches) a token of a given kind covering the bytes
// [begin, index).
func (p *Lexer) formToken(kind Kind, begin int) Token {
	p.current = NewToken(kind, p.src, source.NewSpan(begin, p.index))
	return p.current
}

// consumeWhile advances the cursor over all bytes satisfying a predicate.
func (p *Lexer) consumeWhile(pred func(byte) bool) {
	for p.index < len(p.src) && pred(p.src[p.index]) {
		p.index++
	}
}

// lexStringLiteral scans to the matching quote.  Strings are single-line, so
// scanning also ends at a newline or the end of the input, in which case the
// (illegal) literal is still emitted as a String token for the parser to
// reject.
func (p *Lexer) lexStringLiteral(begin int, quote byte) Token {
	for p.index < len(p.src) && p.src[p.index] != quote && p.src[p.index] != '\n' {
		p.index++
	}
	//
	if p.index < len(p.src) && p.src[p.index] == quote {
		// Found the closing quote.  Move past it.
		p.index++
	}
	//
	return p.formToken(String, begin)
}

// lexPunctuator recognises single and double character punctuators, using
// longest-match for the two-character operators.  Anything unrecognised
// becomes a single-character Unknown token.
func (p *Lexer) lexPunctuator(begin int, ch byte) Token {
	// followedBy consumes the next byte if it matches.
	followedBy := func(next byte) bool {
		if p.index < len(p.src) && p.src[p.index] == next {
			p.index++
			return true
		}
		//
		return false
	}
	//
	switch ch {
	case '[':
		return p.formToken(LeftSquare, begin)
	case ']':
		return p.formToken(RightSquare, begin)
	case '(':
		return p.formToken(LeftParen, begin)
	case ')':
		return p.formToken(RightParen, begin)
	case '{':
		return p.formToken(LeftBrace, begin)
	case '}':
		return p.formToken(RightBrace, begin)
	case '+':
		return p.formToken(Plus, begin)
	case '-':
		if followedBy('>') {
			return p.formToken(Arrow, begin)
		}
		//
		return p.formToken(Minus, begin)
	case '*':
		return p.formToken(Star, begin)
	case '/':
		return p.formToken(Slash, begin)
	case '%':
		return p.formToken(Percent, begin)
	case '~':
		return p.formToken(Tilde, begin)
	case '!':
		if followedBy('=') {
			return p.formToken(ExclaimEqual, begin)
		}
		//
		return p.formToken(Exclaim, begin)
	case '<':
		if followedBy('=') {
			return p.formToken(LessEqual, begin)
		} else if followedBy('<') {
			return p.formToken(LessLess, begin)
		}
		//
		return p.formToken(Less, begin)
	case '>':
		if followedBy('=') {
			return p.formToken(GreaterEqual, begin)
		} else if followedBy('>') {
			return p.formToken(GreaterGreater, begin)
		}
		//
		return p.formToken(Greater, begin)
	case '=':
		if followedBy('=') {
			return p.formToken(EqualEqual, begin)
		}
		//
		return p.formToken(Equal, begin)
	case '&':
		if followedBy('&') {
			return p.formToken(AmpAmp, begin)
		}
		//
		return p.formToken(Amp, begin)
	case '|':
		if followedBy('|') {
			return p.formToken(PipePipe, begin)
		}
		//
		return p.formToken(Pipe, begin)
	case '.':
		if followedBy('.') {
			return p.formToken(DotDot, begin)
		}
		//
		return p.formToken(Dot, begin)
	case '?':
		return p.formToken(Question, begin)
	case ':':
		return p.formToken(Colon, begin)
	case ';':
		return p.formToken(Semi, begin)
	case ',':
		return p.formToken(Comma, begin)
	case '@':
		return p.formToken(At, begin)
	case '$':
		return p.formToken(Dollar, begin)
	case '`':
		return p.formToken(BackTick, begin)
	}
	// Unknown character.  The parser will check the legality of the token
	// further.
	return p.formToken(Unknown, begin)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentifierChar(ch byte) bool {
	return isLetter(ch) || (ch >= '0' && ch <= '9') || ch == '_'
}
