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
	"strings"

	"github.com/consensys/go-sassas/pkg/sassas/diag"
	"github.com/consensys/go-sassas/pkg/sassas/isa"
	"github.com/consensys/go-sassas/pkg/sassas/lexer"
	"github.com/consensys/go-sassas/pkg/util"
	"github.com/consensys/go-sassas/pkg/util/source"
)

// ISAParser parses instruction-set description files.  A description is a
// sequence of sections, each introduced by a keyword (ARCHITECTURE,
// REGISTERS, TABLES, etc).  Sections are parsed independently: when one
// fails, the parser resynchronises on the next section keyword and carries
// on, so that a single pass can report problems in several sections.
type ISAParser struct {
	*Parser
}

// NewISAParser constructs a parser for a given instruction-set description.
func NewISAParser(origin string, text string) *ISAParser {
	return &ISAParser{NewParser(origin, text)}
}

// Parse parses the entire description.  On success the parsed model is
// returned; if any section failed an empty option is returned instead, so a
// partially parsed model is never mistaken for a complete one.  All
// diagnostics are available through TakeDiagnostics either way.
func (p *ISAParser) Parse() util.Option[isa.ISA] {
	// Produce the first token.
	p.lexer.NextToken()
	//
	var (
		hasErrors bool
		result    isa.ISA
	)
	//
	for p.lexer.CurrentToken().IsNot(lexer.End) {
		token := p.lexer.CurrentToken()
		// Anything other than a keyword where a section should start is
		// unrecoverable, since there is nothing to resynchronise on.
		if !token.IsKeyword() {
			p.Report(p.diagAtToken(token, diag.Error, "Unexpected token",
				fmt.Sprintf("expected a keyword, but got %s", token.Kind()), ""))
			//
			return util.None[isa.ISA]()
		}
		//
		ok := false
		//
		switch token.Kind() {
		case lexer.KeywordArchitecture:
			if arch := p.parseArchitecture(); arch.HasValue() {
				result.Architecture = arch.Unwrap()
				ok = true
			}
		case lexer.KeywordCondition:
			if !p.ExpectNextToken(lexer.KeywordTypes) {
				if types := p.parseConditionTypes(); types.HasValue() {
					result.ConditionTypes = types.Unwrap()
					ok = true
				}
			}
		case lexer.KeywordParameters:
			if constants := p.parseConstantMap(); constants.HasValue() {
				result.Parameters = constants.Unwrap()
				ok = true
			}
		case lexer.KeywordConstants:
			if constants := p.parseConstantMap(); constants.HasValue() {
				result.Constants = constants.Unwrap()
				ok = true
			}
		case lexer.KeywordStringMap:
			if stringMap := p.parseStringMap(); stringMap.HasValue() {
				result.StringMap = stringMap.Unwrap()
				ok = true
			}
		case lexer.KeywordRegisters:
			if registers := p.parseRegisters(); registers.HasValue() {
				result.Registers = registers.Unwrap()
				ok = true
			}
		case lexer.KeywordTables:
			if tables := p.parseTables(result.Registers); tables.HasValue() {
				result.Tables = tables.Unwrap()
				ok = true
			}
		case lexer.KeywordOperation:
			if !p.ExpectNextToken(lexer.KeywordProperties, lexer.KeywordPredicates) {
				properties := p.lexer.CurrentToken().Is(lexer.KeywordProperties)
				//
				if list := p.parseIdentifierList(); list.HasValue() {
					if properties {
						result.OperationProperties = list.Unwrap()
					} else {
						result.OperationPredicates = list.Unwrap()
					}
					//
					ok = true
				}
			}
		case lexer.KeywordFUnit:
			if funit := p.parseFunctionalUnit(); funit.HasValue() {
				result.FunctionalUnit = funit.Unwrap()
				ok = true
			}
		default:
			// A keyword which does not introduce a section.  Treat it as the
			// end of the recognised portion of the description.
			if hasErrors {
				return util.None[isa.ISA]()
			}
			//
			return util.Some(result)
		}
		//
		if ok {
			continue
		}
		// The section failed.  Resynchronise on the next section keyword.
		hasErrors = true
		p.lexer.LexUntil(lexer.Token.IsKeyword, false)
	}
	//
	if hasErrors {
		return util.None[isa.ISA]()
	}
	//
	return util.Some(result)
}

// Parse parses a complete instruction-set description in one call, returning
// the parsed model (empty on failure) together with all diagnostics
// generated along the way.
func Parse(origin string, text string) (util.Option[isa.ISA], []diag.Diag) {
	parser := NewISAParser(origin, text)
	result := parser.Parse()
	//
	return result, parser.TakeDiagnostics()
}

// recoverUntil skips tokens until one of the given kind, typically a `;`, so
// that parsing can continue with the next item.  Reaching the end of the
// input first is itself reported, since it means the expected terminator is
// missing altogether.
func (p *ISAParser) recoverUntil(kind lexer.Kind, consume bool) {
	if !p.lexer.LexUntilKind(kind, consume) {
		p.Report(p.diagAtToken(p.lexer.CurrentToken(), diag.Error,
			fmt.Sprintf("Expected %s", kind), "", ""))
	}
}

// ============================================================================
// Architecture
// ============================================================================

// parseArchitecture parses the ARCHITECTURE section, which has the form
//
//	ARCHITECTURE "SM90";
//	    CHIPSET 90;
//	    WORD_SIZE 32;
//
// i.e. a quoted architecture name followed by items each consisting of an
// identifier, an arbitrary token sequence as value and a terminating `;`.
// The item values are not interpreted here and are retained verbatim.
func (p *ISAParser) parseArchitecture() util.Option[isa.Architecture] {
	var (
		hasErrors bool
		result    isa.Architecture
	)
	// Parse the architecture name.
	if name := p.ExpectStringLiteral(p.lexer.NextToken()); name.HasValue() {
		result.Name = name.Unwrap()
	} else {
		hasErrors = true
	}
	// The name may carry its own terminating semicolon.
	if p.lexer.NextToken().Is(lexer.Semi) {
		p.lexer.NextToken()
	}
	// Parse the architecture details.
	for p.lexer.CurrentToken().Is(lexer.Identifier) {
		itemName := p.lexer.CurrentToken().Content()
		itemValue := p.lexer.NextToken()
		//
		if itemValue.Is(lexer.Semi) {
			p.Report(p.diagAtToken(itemValue, diag.Error, "Expected content",
				"missing value for this architecture item", ""))
			//
			hasErrors = true
			p.lexer.NextToken()
			//
			continue
		}
		// Merge the value tokens up to the terminating semicolon.
		hasSemi := p.lexer.LexUntil(func(token lexer.Token) bool {
			if token.Is(lexer.Semi) {
				return true
			}
			//
			itemValue = itemValue.Merge(token, lexer.String)
			//
			return false
		}, false)
		//
		if !hasSemi {
			p.Report(p.diagAtToken(itemValue, diag.Error, "Expected `;`", "", ""))
			//
			hasErrors = true
			//
			break
		}
		//
		result.Details = append(result.Details, isa.ArchitectureDetail{Name: itemName, Value: itemValue.Content()})
		p.lexer.NextToken()
	}
	//
	if hasErrors {
		return util.None[isa.Architecture]()
	}
	//
	return util.Some(result)
}

// ============================================================================
// Condition types
// ============================================================================

// parseConditionTypes parses the CONDITION TYPES section, which consists of
// repeated "name : kind" items, e.g.
//
//	CONDITION TYPES
//	    ILLEGAL_INSTR_ENCODING_ERROR : ERROR
//	    UNPREDICTABLE_BEHAVIOUR : WARNING
func (p *ISAParser) parseConditionTypes() util.Option[[]isa.ConditionType] {
	var (
		hasErrors bool
		result    []isa.ConditionType
	)
	//
	for p.lexer.NextToken().Is(lexer.Identifier) {
		name := p.lexer.CurrentToken().Content()
		//
		if p.ExpectNextToken(lexer.Colon) || p.ExpectNextToken(lexer.Identifier) {
			return util.None[[]isa.ConditionType]()
		}
		//
		kindToken := p.lexer.CurrentToken()
		//
		if conditionType := isa.ConditionTypeFromString(kindToken.Content(), name); conditionType.HasValue() {
			result = append(result, conditionType.Unwrap())
		} else {
			p.Report(p.diagAtToken(kindToken, diag.Error, "Invalid kind of condition type", "",
				"valid kinds are "+describeConditionKinds()))
			//
			hasErrors = true
		}
	}
	//
	if hasErrors {
		return util.None[[]isa.ConditionType]()
	}
	//
	return util.Some(result)
}

func describeConditionKinds() string {
	kinds := isa.ConditionKinds()
	for i := range kinds {
		kinds[i] = "`" + kinds[i] + "`"
	}
	//
	return strings.Join(kinds, ", ")
}

// ============================================================================
// Parameters and constants
// ============================================================================

// parseConstantMap parses the body shared by the PARAMETERS and CONSTANTS
// sections: repeated "name = value;" items binding names to signed 32bit
// integer constants.
func (p *ISAParser) parseConstantMap() util.Option[isa.ConstantMap] {
	var (
		hasErrors bool
		result    = isa.ConstantMap{}
	)
	//
	for p.lexer.NextToken().Is(lexer.Identifier) {
		nameToken := p.lexer.CurrentToken()
		//
		if p.ExpectNextToken(lexer.Equal) {
			hasErrors = true
			p.recoverUntil(lexer.Semi, false)
			//
			continue
		}
		//
		valueToken := p.lexer.NextToken()
		// An explicit sign is lexed as a separate token.  Glue it back onto
		// the literal, so that the evaluator sees the signed spelling.
		if valueToken.Is(lexer.Plus) || valueToken.Is(lexer.Minus) {
			if p.ExpectNextToken(lexer.Integer) {
				hasErrors = true
				p.recoverUntil(lexer.Semi, false)
				//
				continue
			}
			//
			valueToken = valueToken.Merge(p.lexer.CurrentToken(), lexer.Integer)
		}
		//
		constant := p.ExpectIntegerConstant(valueToken, 32, true)
		//
		if constant.IsEmpty() || p.ExpectNextToken(lexer.Semi) {
			hasErrors = true
			p.recoverUntil(lexer.Semi, false)
			//
			continue
		}
		//
		name := nameToken.Content()
		//
		if _, ok := result[name]; ok {
			p.Report(p.diagAtToken(nameToken, diag.Error, "Duplicate constant name", "", ""))
			// The original binding is retained.
			hasErrors = true
		} else {
			result[name] = int32(constant.Unwrap())
		}
	}
	//
	if hasErrors {
		return util.None[isa.ConstantMap]()
	}
	//
	return util.Some(result)
}

// ============================================================================
// String map
// ============================================================================

// parseStringMap parses the STRING_MAP section, which consists of repeated
// "name -> replacement;" items.  The replacement may be an identifier or a
// quoted string.
func (p *ISAParser) parseStringMap() util.Option[isa.StringMap] {
	var (
		hasErrors bool
		result    = isa.StringMap{}
	)
	//
	for p.lexer.NextToken().Is(lexer.Identifier) {
		nameToken := p.lexer.CurrentToken()
		//
		if p.ExpectNextToken(lexer.Arrow) {
			hasErrors = true
			p.recoverUntil(lexer.Semi, false)
			//
			continue
		}
		//
		value := p.ExpectIdentifierOrString(p.lexer.NextToken())
		//
		if value.IsEmpty() || p.ExpectNextToken(lexer.Semi) {
			hasErrors = true
			p.recoverUntil(lexer.Semi, false)
			//
			continue
		}
		//
		name := nameToken.Content()
		//
		if _, ok := result[name]; ok {
			p.Report(p.diagAtToken(nameToken, diag.Error, "Duplicate string map name", "", ""))
			hasErrors = true
		} else {
			result[name] = value.Unwrap()
		}
	}
	//
	if hasErrors {
		return util.None[isa.StringMap]()
	}
	//
	return util.Some(result)
}

// ============================================================================
// Registers
// ============================================================================

// rangeExpr is a parsed "(begin .. end)" range, retained with its source
// span for diagnostics.  Both bounds are inclusive.
type rangeExpr struct {
	span  source.Span
	begin uint
	end   uint
}

// size returns the number of values covered by this range.
func (r rangeExpr) size() uint {
	return r.end - r.begin + 1
}

// registerName is a parsed register name, which either names a single
// register (e.g. "PC") or expands to a family of registers through a range
// suffix (e.g. "R(0..15)" for R0 to R15).
type registerName struct {
	span   source.Span
	prefix string
	rng    util.Option[rangeExpr]
}

// nameCount returns the number of registers this name expands to.
func (r registerName) nameCount() uint {
	if r.rng.HasValue() {
		return r.rng.Unwrap().size()
	}
	//
	return 1
}

// parseRegisters parses the REGISTERS section, which consists of repeated
// register categories, e.g.
//
//	REGISTERS
//	    Register R(0..254) = (0..254), RZ = 255;
//	    Predicate P0, P1, P2;
//	    AllRegisters = Register + Predicate;
func (p *ISAParser) parseRegisters() util.Option[isa.RegisterTable] {
	var (
		hasErrors bool
		result    = isa.RegisterTable{}
	)
	//
	for p.lexer.NextToken().Is(lexer.Identifier) {
		categoryToken := p.lexer.CurrentToken()
		//
		if registers := p.parseRegisterCategory(result); registers.HasValue() {
			name := categoryToken.Content()
			//
			if _, ok := result[name]; ok {
				p.Report(p.diagAtToken(categoryToken, diag.Error, "Duplicate register category name", "", ""))
				hasErrors = true
			} else {
				result[name] = registers.Unwrap()
			}
			//
			if !p.ExpectCurrentToken(lexer.Semi) {
				continue
			}
		}
		// The category is invalid.  Skip to the next one.
		hasErrors = true
		p.recoverUntil(lexer.Semi, false)
	}
	//
	if hasErrors {
		return util.None[isa.RegisterTable]()
	}
	//
	return util.Some(result)
}

// parseRegisterCategory parses the body of a single register category, which
// is either a register list or a concatenation of existing categories.  The
// current token is the category name.
func (p *ISAParser) parseRegisterCategory(table isa.RegisterTable) util.Option[*isa.RegisterGroup] {
	if p.ExpectNextToken(lexer.Identifier, lexer.String, lexer.Equal) {
		return util.None[*isa.RegisterGroup]()
	}
	//
	if p.lexer.CurrentToken().Is(lexer.Equal) {
		return p.parseRegisterCategoryConcatenation(table)
	}
	//
	return p.parseRegisterList()
}

// parseRegisterCategoryConcatenation parses "= Category + Category + ...",
// producing a group holding the registers of all named categories in order.
// Each named category must already exist.
func (p *ISAParser) parseRegisterCategoryConcatenation(table isa.RegisterTable) util.Option[*isa.RegisterGroup] {
	result := &isa.RegisterGroup{}
	//
	for {
		if p.ExpectNextToken(lexer.Identifier) {
			return util.None[*isa.RegisterGroup]()
		}
		//
		nameToken := p.lexer.CurrentToken()
		//
		if group, ok := table[nameToken.Content()]; ok {
			result.ConcatWith(group)
		} else {
			p.Report(p.diagAtToken(nameToken, diag.Error, "Unknown register category", "", ""))
			//
			return util.None[*isa.RegisterGroup]()
		}
		//
		if p.lexer.NextToken().IsNot(lexer.Plus) {
			break
		}
	}
	//
	return util.Some(result)
}

// parseRegisterList parses a comma-separated list of register definitions,
// each a register name with an optional "= value" initialiser.  A ranged
// name must pair with a matching number of values, e.g. "R(0..7) = (8..15)";
// without an initialiser values continue from the previous register.
func (p *ISAParser) parseRegisterList() util.Option[*isa.RegisterGroup] {
	result := &isa.RegisterGroup{}
	//
	for {
		names := p.parseRegisterName()
		if names.IsEmpty() {
			return util.None[*isa.RegisterGroup]()
		}
		//
		name := names.Unwrap()
		//
		if p.lexer.CurrentToken().Is(lexer.Equal) {
			p.lexer.NextToken()
			//
			values := p.parseRegisterValue()
			if values.IsEmpty() {
				return util.None[*isa.RegisterGroup]()
			}
			//
			value := values.Unwrap()
			//
			nameCount, valueCount := name.nameCount(), value.size()
			if nameCount != valueCount {
				d := diag.New(diag.Error, "The number of register names and initial values do not match").
					WithAnnotation(name.span, plural(nameCount, "name")).
					WithAnnotation(value.span, plural(valueCount, "value"))
				p.Report(d)
				//
				return util.None[*isa.RegisterGroup]()
			}
			//
			if name.rng.HasValue() {
				rng := name.rng.Unwrap()
				for i := uint(0); i < nameCount; i++ {
					result.AppendValue(fmt.Sprintf("%s%d", name.prefix, rng.begin+i), value.begin+i)
				}
			} else {
				result.AppendValue(name.prefix, value.begin)
			}
		} else if name.rng.HasValue() {
			rng := name.rng.Unwrap()
			for i := uint(0); i < name.nameCount(); i++ {
				result.Append(fmt.Sprintf("%s%d", name.prefix, rng.begin+i))
			}
		} else {
			result.Append(name.prefix)
		}
		// A comma continues the list.
		if p.lexer.CurrentToken().IsNot(lexer.Comma) {
			break
		}
		//
		p.lexer.NextToken()
	}
	//
	return util.Some(result)
}

// parseRegisterName parses a register name with an optional "(begin..end)"
// range suffix.  A trailing `*` marker is accepted and discarded; it
// annotates reuse-eligible registers, which does not affect translation.
// The current token is the name itself.
func (p *ISAParser) parseRegisterName() util.Option[registerName] {
	var (
		token = p.lexer.CurrentToken()
		span  = token.Span()
	)
	//
	name := p.ExpectIdentifierOrString(token)
	if name.IsEmpty() {
		return util.None[registerName]()
	}
	//
	switch p.lexer.NextToken().Kind() {
	case lexer.LeftParen:
		rng := p.parseRangeExpr()
		if rng.IsEmpty() {
			return util.None[registerName]()
		}
		//
		fullSpan := source.NewSpan(span.Start(), rng.Unwrap().span.End())
		//
		return util.Some(registerName{fullSpan, name.Unwrap(), rng})
	case lexer.Star:
		p.lexer.NextToken()
	}
	//
	return util.Some(registerName{span, name.Unwrap(), util.None[rangeExpr]()})
}

// parseRegisterValue parses a register initialiser, which is either a single
// integer or a "(begin..end)" range.  A single integer is normalised to a
// range of size one.
func (p *ISAParser) parseRegisterValue() util.Option[rangeExpr] {
	if p.ExpectCurrentToken(lexer.LeftParen, lexer.Integer) {
		return util.None[rangeExpr]()
	}
	//
	if p.lexer.CurrentToken().Is(lexer.LeftParen) {
		return p.parseRangeExpr()
	}
	//
	token := p.lexer.CurrentToken()
	//
	if value := p.ExpectIntegerConstant(token, 32, false); value.HasValue() {
		p.lexer.NextToken()
		//
		v := uint(value.Unwrap())
		//
		return util.Some(rangeExpr{token.Span(), v, v})
	}
	//
	return util.None[rangeExpr]()
}

// parseRangeExpr parses a "(begin .. end)" range with inclusive unsigned
// bounds.  The current token is the opening parenthesis; the closing one is
// consumed on success.
func (p *ISAParser) parseRangeExpr() util.Option[rangeExpr] {
	exprBegin := p.lexer.CurrentToken().Span().Start()
	//
	begin := p.ExpectIntegerConstant(p.lexer.NextToken(), 32, false)
	if begin.IsEmpty() || p.ExpectNextToken(lexer.DotDot) {
		return util.None[rangeExpr]()
	}
	//
	end := p.ExpectIntegerConstant(p.lexer.NextToken(), 32, false)
	if end.IsEmpty() || p.ExpectNextToken(lexer.RightParen) {
		return util.None[rangeExpr]()
	}
	//
	span := source.NewSpan(exprBegin, p.lexer.CurrentToken().Span().End())
	// Consume the closing parenthesis.
	p.lexer.NextToken()
	//
	if begin.Unwrap() > end.Unwrap() {
		p.Report(p.diagAtSpan(span, diag.Error, "The start of the range is greater than the end", "", ""))
		//
		return util.None[rangeExpr]()
	}
	//
	return util.Some(rangeExpr{span, uint(begin.Unwrap()), uint(end.Unwrap())})
}

// ============================================================================
// Tables
// ============================================================================

// parseTables parses the TABLES section, which consists of repeated named
// tables.  Table elements may reference registers by "Category@name", hence
// the REGISTERS section must precede any table using that form.
func (p *ISAParser) parseTables(registers isa.RegisterTable) util.Option[isa.TableMap] {
	var (
		hasErrors bool
		result    = isa.TableMap{}
	)
	//
	for p.lexer.NextToken().Is(lexer.Identifier) {
		nameToken := p.lexer.CurrentToken()
		p.lexer.NextToken()
		//
		if table := p.parseSingleTable(registers); table.HasValue() {
			name := nameToken.Content()
			//
			if _, ok := result[name]; ok {
				p.Report(p.diagAtToken(nameToken, diag.Error, "Duplicate table name", "", ""))
				hasErrors = true
			} else {
				result[name] = table.Unwrap()
			}
		} else {
			hasErrors = true
		}
	}
	//
	if hasErrors {
		return util.None[isa.TableMap]()
	}
	//
	return util.Some(result)
}

// parseSingleTable parses the rows of one table, each of the form
// "key key ... -> value;" with a trailing `;` terminating the whole table.
// Every row must provide the same number of keys as the first.
func (p *ISAParser) parseSingleTable(registers isa.RegisterTable) util.Option[*isa.Table] {
	var (
		result = &isa.Table{}
		first  = true
	)
	//
	for p.lexer.CurrentToken().IsNot(lexer.Semi) {
		var (
			keys     []isa.Element
			keySpans []source.Span
		)
		// Parse the keys of this row.
		for p.lexer.CurrentToken().IsNot(lexer.Arrow) {
			keySpans = append(keySpans, p.lexer.CurrentToken().Span())
			//
			key := p.resolveTableElement(registers)
			if key.IsEmpty() {
				p.recoverUntil(lexer.Semi, false)
				//
				return util.None[*isa.Table]()
			}
			//
			keys = append(keys, key.Unwrap())
		}
		// The first row establishes the key count.
		if first {
			result.SetKeySize(uint(len(keys)))
			first = false
		} else if result.KeySize() != uint(len(keys)) {
			p.reportKeyCountMismatch(result.KeySize(), keySpans)
			p.recoverUntil(lexer.Semi, false)
			//
			return util.None[*isa.Table]()
		}
		// Consume the arrow.
		p.lexer.NextToken()
		//
		value := p.resolveTableElement(registers)
		if value.IsEmpty() {
			p.recoverUntil(lexer.Semi, false)
			//
			return util.None[*isa.Table]()
		}
		//
		result.AppendRow(keys, value.Unwrap())
	}
	//
	return util.Some(result)
}

// reportKeyCountMismatch reports a row whose key count differs from the key
// count established by the first row of the table, annotating either the
// surplus keys or the position where keys are missing.
func (p *ISAParser) reportKeyCountMismatch(keySize uint, keySpans []source.Span) {
	n := uint(len(keySpans))
	//
	message := fmt.Sprintf("The table expects %s per row, but this row has %s",
		plural(keySize, "key"), plural(n, "key"))
	d := diag.New(diag.Error, message)
	//
	if keySize < n {
		// Annotate the surplus keys, labelling the last one.
		for _, span := range keySpans[keySize : n-1] {
			d = d.WithAnnotation(span, "")
		}
		//
		d = d.WithAnnotation(keySpans[n-1], "unexpected keys")
	} else {
		// Annotate the position where the missing keys should go, which is
		// just after the last provided key (or the arrow, if none were).
		position := p.lexer.CurrentToken().Span().Start()
		if n > 0 {
			position = keySpans[n-1].End()
		}
		//
		d = d.WithAnnotation(source.NewSpan(position, position),
			fmt.Sprintf("missing %s", plural(keySize-n, "key")))
	}
	//
	p.Report(d)
}

// resolveTableElement parses and resolves one table key or value.  An
// element is one of:
//
//   - an unsigned integer literal;
//   - `-`, the wildcard matching any value in its position;
//   - "Category@name", resolved against the registers parsed so far;
//   - a single-character string, resolved to its ASCII value (used by tables
//     keyed on literal characters).
//
// The element's tokens are consumed in all cases, so that the caller can
// decide how far to recover on failure.
func (p *ISAParser) resolveTableElement(registers isa.RegisterTable) util.Option[isa.Element] {
	if p.ExpectCurrentToken(lexer.Integer, lexer.Identifier, lexer.String, lexer.Minus) {
		return util.None[isa.Element]()
	}
	//
	token := p.lexer.CurrentToken()
	//
	switch token.Kind() {
	case lexer.Integer:
		value := p.GetIntegerConstant(token, 32, false)
		p.lexer.NextToken()
		//
		if value.IsEmpty() {
			return util.None[isa.Element]()
		}
		//
		return util.Some(isa.NewElement(uint(value.Unwrap())))
	case lexer.Minus:
		p.lexer.NextToken()
		//
		return util.Some(isa.MatchAny())
	}
	// A register reference or a single-character atom.
	category := p.GetIdentifierOrString(token)
	//
	if category.IsEmpty() {
		p.lexer.NextToken()
		//
		return util.None[isa.Element]()
	}
	//
	if p.lexer.NextToken().Is(lexer.At) {
		name := p.ExpectIdentifierOrString(p.lexer.NextToken())
		nameToken := p.lexer.CurrentToken()
		p.lexer.NextToken()
		//
		if name.IsEmpty() {
			return util.None[isa.Element]()
		}
		//
		group, ok := registers[category.Unwrap()]
		if !ok {
			p.Report(p.diagAtToken(token, diag.Error, "Unknown register category", "", ""))
			//
			return util.None[isa.Element]()
		}
		//
		if value := group.Find(name.Unwrap()); value.HasValue() {
			return util.Some(isa.NewElement(value.Unwrap()))
		}
		//
		p.Report(p.diagAtToken(nameToken, diag.Error, "Unknown register name", "", ""))
		//
		return util.None[isa.Element]()
	}
	// Not a register reference, so this must be a single-character atom.
	if atom := category.Unwrap(); len(atom) == 1 {
		return util.Some(isa.NewElement(uint(atom[0])))
	}
	//
	p.Report(p.diagAtToken(token, diag.Error, "Invalid table element",
		"expected an integer, `-`, a register reference or a single character", ""))
	//
	return util.None[isa.Element]()
}

// ============================================================================
// Operation properties and predicates
// ============================================================================

// parseIdentifierList parses the body shared by the OPERATION PROPERTIES and
// OPERATION PREDICATES sections: a list of identifiers terminated by `;`.
func (p *ISAParser) parseIdentifierList() util.Option[[]string] {
	result := []string{}
	//
	for {
		token := p.lexer.NextToken()
		//
		if token.Is(lexer.Semi) {
			break
		}
		//
		if p.ExpectToken(token, lexer.Identifier) {
			p.recoverUntil(lexer.Semi, false)
			//
			return util.None[[]string]()
		}
		//
		result = append(result, token.Content())
	}
	// Move past the terminating semicolon.
	p.lexer.NextToken()
	//
	return util.Some(result)
}

// ============================================================================
// Functional unit
// ============================================================================

// parseFunctionalUnit parses the FUNIT section, e.g.
//
//	FUNIT uc
//	    ENCODING WIDTH 64;
//	    OPCODE "............XXXX";
//	    PRED   "........XX......";
//
// i.e. the unit name followed by items which are either the encoding width
// or a named bitmask over the encoding.  Item names may span several words,
// e.g. "ENCODING WIDTH".
func (p *ISAParser) parseFunctionalUnit() util.Option[isa.FunctionalUnit] {
	var (
		hasErrors bool
		result    isa.FunctionalUnit
	)
	// Parse the unit name.
	if p.ExpectNextToken(lexer.Identifier) {
		hasErrors = true
	} else {
		result.SetName(p.lexer.CurrentToken().Content())
	}
	// Parse the items.
	for {
		token := p.lexer.NextToken()
		if token.IsNot(lexer.Identifier) && token.IsNot(lexer.KeywordEncoding) {
			break
		}
		// Merge multi-word item names, e.g. "ENCODING WIDTH".
		itemName := token
		p.lexer.NextToken()
		//
		p.lexer.LexUntil(func(t lexer.Token) bool {
			if t.Is(lexer.Identifier) {
				itemName = itemName.Merge(t, lexer.Identifier)
				//
				return false
			}
			//
			return true
		}, false)
		//
		// A merged name preserves the original spacing between the words,
		// hence the comparison is on the words themselves.
		switch {
		case strings.Join(strings.Fields(itemName.Content()), " ") == "ENCODING WIDTH":
			if width := p.parseEncodingWidth(); width.HasValue() {
				result.SetEncodingWidth(width.Unwrap())
			} else {
				hasErrors = true
			}
		case p.lexer.CurrentToken().Is(lexer.String):
			mask := p.parseBitmask(result.EncodingWidth())
			//
			if mask.IsEmpty() || p.ExpectNextToken(lexer.Semi) {
				hasErrors = true
				p.recoverUntil(lexer.Semi, false)
			} else if !result.AddBitmask(itemName.Content(), mask.Unwrap()) {
				p.Report(p.diagAtToken(itemName, diag.Error, "Duplicate bitmask name", "", ""))
				hasErrors = true
			}
		default:
			// An unrecognised item.  Skip it without failing the section.
			p.recoverUntil(lexer.Semi, false)
		}
	}
	//
	if hasErrors {
		return util.None[isa.FunctionalUnit]()
	}
	//
	return util.Some(result)
}

// parseEncodingWidth parses the value of an "ENCODING WIDTH n;" item, where
// the current token is the width itself.  Encodings wider than 128 bits do
// not occur in practice and are rejected as presumably mistyped.
func (p *ISAParser) parseEncodingWidth() util.Option[uint] {
	if value := p.ExpectIntegerConstant(p.lexer.CurrentToken(), 32, false); value.HasValue() {
		width := uint(value.Unwrap())
		//
		if width == 0 || width > 128 {
			p.Report(p.diagAtToken(p.lexer.CurrentToken(), diag.Error, "Invalid encoding width",
				"the width must be between 1 and 128 bits", ""))
		} else if !p.ExpectNextToken(lexer.Semi) {
			return util.Some(width)
		}
	}
	//
	p.recoverUntil(lexer.Semi, false)
	//
	return util.None[uint]()
}

// parseBitmask parses the value of a bitmask item, where the current token
// is a string of `.` and `X` characters, one per encoding bit with the most
// significant first.  The string must be exactly as long as the encoding
// width, hence the "ENCODING WIDTH" item must come before any bitmask.
func (p *ISAParser) parseBitmask(encodingWidth uint) util.Option[isa.BitMask] {
	maskToken := p.lexer.CurrentToken()
	//
	description := p.GetStringLiteral(maskToken)
	if description.IsEmpty() {
		return util.None[isa.BitMask]()
	}
	//
	mask := description.Unwrap()
	//
	if uint(len(mask)) != encodingWidth {
		p.Report(p.diagAtToken(maskToken, diag.Error,
			fmt.Sprintf("The bitmask must be %d bits long, but got %d bits", encodingWidth, len(mask)), "", ""))
		//
		return util.None[isa.BitMask]()
	}
	//
	for i := 0; i < len(mask); i++ {
		if c := mask[i]; c != '.' && c != 'X' {
			// Position of the character inside the quoted literal.
			position := maskToken.Span().Start() + 1 + i
			//
			p.Report(p.diagAtSpan(source.NewSpan(position, position+1), diag.Error,
				fmt.Sprintf("Invalid character `%c` in bitmask", c), "",
				"only `X` and `.` are allowed"))
			//
			return util.None[isa.BitMask]()
		}
	}
	//
	return util.Some(isa.NewBitMask(mask))
}

// plural renders a count with a noun, e.g. "1 key" or "4 names".
func plural(n uint, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	//
	return fmt.Sprintf("%d %ss", n, noun)
}
