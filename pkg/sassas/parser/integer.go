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
package parser

import (
	"fmt"
	"math"

	"github.com/consensys/go-sassas/pkg/sassas/diag"
	"github.com/consensys/go-sassas/pkg/sassas/lexer"
	"github.com/consensys/go-sassas/pkg/util"
	"github.com/consensys/go-sassas/pkg/util/source"
)

// GetIntegerConstant evaluates an integer literal token to a value fitting a
// given width and signedness.  The literal may carry an optional leading
// sign (a minus only when the target is signed), a base prefix (0b/0B for
// binary, 0x/0X for hexadecimal, a bare leading zero for octal, decimal
// otherwise) and `_` digit separators, which must not appear at the start or
// end of the digit sequence nor be doubled.
//
// The accepted range is [-2^(bits-1), 2^(bits-1)-1] for signed targets and
// [0, 2^bits-1] for unsigned ones.  Negative values are returned sign
// extended to 64 bits in two's complement.  On any malformed digit, bad
// separator placement or overflow, a diagnostic pinpointing the offending
// character is recorded and an empty option returned.
//
// The sign may originate from a separately lexed token merged onto the
// literal, hence whitespace between the sign and the first digit is
// tolerated.  The token is assumed to be an Integer token.
func (p *Parser) GetIntegerConstant(token lexer.Token, bits uint, signed bool) util.Option[uint64] {
	var (
		text     = token.Content()
		offset   = token.Span().Start()
		index    = 0
		negative = false
	)
	// Process the (optional) leading sign.
	if index < len(text) && (text[index] == '+' || text[index] == '-') {
		if text[index] == '-' {
			if !signed {
				p.Report(p.charDiag(offset+index, "Invalid integer literal",
					"a negative value is not allowed here", rangeNote(bits, signed)))
				//
				return util.None[uint64]()
			}
			//
			negative = true
		}
		//
		index++
		// Skip whitespace separating a merged sign token from the digits.
		for index < len(text) && (text[index] == ' ' || text[index] == '\t') {
			index++
		}
	}
	// Determine the base from the prefix.
	base := uint64(10)
	//
	if index+1 < len(text) && text[index] == '0' {
		switch text[index+1] {
		case 'b', 'B':
			base, index = 2, index+2
		case 'x', 'X':
			base, index = 16, index+2
		default:
			base, index = 8, index+1
		}
	}
	//
	digits := text[index:]
	//
	if len(digits) == 0 {
		p.Report(p.diagAtToken(token, diag.Error, "Invalid integer literal",
			"missing digits after the base prefix", rangeNote(bits, signed)))
		//
		return util.None[uint64]()
	}
	//
	limit := magnitudeLimit(bits, signed, negative)
	value := uint64(0)
	//
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		// Digit separators carry no value, but their placement is checked.
		if c == '_' {
			if ok := p.checkSeparator(digits, i, offset+index, bits, signed); !ok {
				return util.None[uint64]()
			}
			//
			continue
		}
		//
		digit, ok := digitValue(c)
		if !ok || uint64(digit) >= base {
			p.Report(p.charDiag(offset+index+i, "Invalid integer literal",
				fmt.Sprintf("invalid digit `%c` in a base-%d literal", c, base), rangeNote(bits, signed)))
			//
			return util.None[uint64]()
		}
		// Accumulate, rejecting the digit which would push the value past the
		// accepted range.  The limit can itself fall below the digit for very
		// narrow targets, so check that before subtracting.
		if uint64(digit) > limit || value > (limit-uint64(digit))/base {
			p.Report(p.charDiag(offset+index+i, "Integer literal out of range",
				"the literal overflows at this digit", rangeNote(bits, signed)))
			//
			return util.None[uint64]()
		}
		//
		value = value*base + uint64(digit)
	}
	//
	if negative {
		value = -value
	}
	//
	return util.Some(value)
}

// ExpectIntegerConstant behaves as GetIntegerConstant, except that it first
// checks that the token is an Integer token, recording a diagnostic
// otherwise.
func (p *Parser) ExpectIntegerConstant(token lexer.Token, bits uint, signed bool) util.Option[uint64] {
	if p.ExpectToken(token, lexer.Integer) {
		return util.None[uint64]()
	}
	//
	return p.GetIntegerConstant(token, bits, signed)
}

// checkSeparator validates the placement of a `_` separator at position i of
// the digit sequence, recording a diagnostic on a misplaced one.  The offset
// gives the source position of the first digit.
func (p *Parser) checkSeparator(digits string, i int, offset int, bits uint, signed bool) bool {
	note := rangeNote(bits, signed)
	//
	switch {
	case i > 0 && digits[i-1] == '_':
		// Annotate the offending pair.
		span := source.NewSpan(offset+i-1, offset+i+1)
		p.Report(p.diagAtSpan(span, diag.Error, "Invalid integer literal",
			"doubled digit separator", note))
	case i == 0:
		p.Report(p.charDiag(offset+i, "Invalid integer literal",
			"digit separator at the start of a number", note))
	case i == len(digits)-1:
		p.Report(p.charDiag(offset+i, "Invalid integer literal",
			"digit separator at the end of a number", note))
	default:
		return true
	}
	//
	return false
}

// digitValue returns the numeric value of a digit character, accepting the
// letters a-f (in either case) for bases above ten.
func digitValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// charDiag creates an error diagnostic annotating a single character.
func (p *Parser) charDiag(position int, message string, label string, note string) diag.Diag {
	return p.diagAtSpan(source.NewSpan(position, position+1), diag.Error, message, label, note)
}

// magnitudeLimit returns the largest acceptable magnitude for a literal of a
// given width, signedness and sign.
func magnitudeLimit(bits uint, signed bool, negative bool) uint64 {
	switch {
	case signed && negative:
		return uint64(1) << (bits - 1)
	case signed:
		return (uint64(1) << (bits - 1)) - 1
	case bits == 64:
		return math.MaxUint64
	default:
		return (uint64(1) << bits) - 1
	}
}

// rangeNote renders the accepted range of values for a given width and
// signedness, e.g. "the value must be in the range [-128, 127]".
func rangeNote(bits uint, signed bool) string {
	if signed {
		minimum := int64(-1) << (bits - 1)
		maximum := (uint64(1) << (bits - 1)) - 1
		//
		return fmt.Sprintf("the value must be in the range [%d, %d]", minimum, maximum)
	}
	//
	return fmt.Sprintf("the value must be in the range [0, %d]", magnitudeLimit(bits, false, false))
}
