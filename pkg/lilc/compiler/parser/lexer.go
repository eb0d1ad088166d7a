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
	"slices"

	"github.com/consensys/go-lilc/pkg/util/source"
	"github.com/consensys/go-lilc/pkg/util/source/lex"
)

// END_OF signals "end of file".  This is never produced by the lexer itself,
// but is returned by the parser when looking beyond the last token.
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LBRACE signals "("
const LBRACE uint = 2

// RBRACE signals ")"
const RBRACE uint = 3

// LCURLY signals "{"
const LCURLY uint = 4

// RCURLY signals "}"
const RCURLY uint = 5

// COLON signals ":"
const COLON uint = 6

// COLON_COLON signals "::"
const COLON_COLON uint = 7

// COLON_EQUALS signals ":="
const COLON_EQUALS uint = 8

// SEMICOLON signals ";"
const SEMICOLON uint = 9

// RIGHTARROW signals "->"
const RIGHTARROW uint = 10

// DOTDOT signals ".."
const DOTDOT uint = 11

// DOTDOT_EQUALS signals "..="
const DOTDOT_EQUALS uint = 12

// NUMBER signals an integer number
const NUMBER uint = 20

// IDENTIFIER signals a name
const IDENTIFIER uint = 21

// KEYWORD_I32 signals the "i32" type
const KEYWORD_I32 uint = 30

// KEYWORD_IF signals an if expression
const KEYWORD_IF uint = 31

// KEYWORD_ELSE signals the else branch of an if expression
const KEYWORD_ELSE uint = 32

// KEYWORD_FOR signals a for expression
const KEYWORD_FOR uint = 33

// KEYWORD_BREAK signals a break expression
const KEYWORD_BREAK uint = 34

// KEYWORD_CONTINUE signals a continue expression
const KEYWORD_CONTINUE uint = 35

// KEYWORDS maps the text of each keyword to its token kind.  An identifier
// only becomes a keyword when its text matches exactly, so "iffy" remains an
// identifier.
var KEYWORDS = map[string]uint{
	"i32":      KEYWORD_I32,
	"if":       KEYWORD_IF,
	"else":     KEYWORD_ELSE,
	"for":      KEYWORD_FOR,
	"break":    KEYWORD_BREAK,
	"continue": KEYWORD_CONTINUE,
}

// Describe returns a human-readable description of a given token kind, as used
// in error messages.
func Describe(kind uint) string {
	switch kind {
	case END_OF:
		return "end of input"
	case LBRACE:
		return "`(`"
	case RBRACE:
		return "`)`"
	case LCURLY:
		return "`{`"
	case RCURLY:
		return "`}`"
	case COLON:
		return "`:`"
	case COLON_COLON:
		return "`::`"
	case COLON_EQUALS:
		return "`:=`"
	case SEMICOLON:
		return "`;`"
	case RIGHTARROW:
		return "`->`"
	case DOTDOT:
		return "`..`"
	case DOTDOT_EQUALS:
		return "`..=`"
	case NUMBER:
		return "integer constant"
	case IDENTIFIER:
		return "identifier"
	}
	//
	for text, kw := range KEYWORDS {
		if kw == kind {
			return "keyword `" + text + "`"
		}
	}
	//
	return "unknown token"
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

// Rule for describing numbers, which are maximal runs of decimal digits.
var number lex.Scanner[rune] = lex.Many(lex.Within('0', '9'))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers (and keywords).  Both scanners are applied at
// the same position, hence the first must match and the second determines the
// length.
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// lexing rules.  Multi-character punctuation precedes any rule matching one of
// its prefixes, so that the longest match wins.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lex.Unit(':', ':'), COLON_COLON),
	lex.Rule(lex.Unit(':', '='), COLON_EQUALS),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit('-', '>'), RIGHTARROW),
	lex.Rule(lex.Unit('.', '.', '='), DOTDOT_EQUALS),
	lex.Rule(lex.Unit('.', '.'), DOTDOT),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace is discarded, and no end-of-file
// token is appended.  Lexing halts at the first unrecognised character.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		end := len(srcfile.Contents())
		err := srcfile.SyntaxError(source.NewSpan(start, end), "unknown text encountered")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	// Remove any whitespace
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	// Identify keywords
	for i, t := range tokens {
		if t.Kind != IDENTIFIER {
			continue
		} else if kw, ok := KEYWORDS[srcfile.Text(t.Span)]; ok {
			tokens[i].Kind = kw
		}
	}
	// Done
	return tokens, nil
}
