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
	"strconv"

	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
	"github.com/consensys/go-lilc/pkg/util/source"
	"github.com/consensys/go-lilc/pkg/util/source/lex"
)

// Parse the source file of a given compilation unit into a program.  All
// expressions are allocated in the unit's arena, and their spans are recorded
// in the unit's source map.  Parsing stops at the first syntax error, in which
// case no program is produced.
func Parse(unit *ast.Unit) (ast.Program, []source.SyntaxError) {
	// Convert source file into tokens
	tokens, errors := Lex(unit.Source())
	//
	if len(errors) > 0 {
		return ast.Program{}, errors
	}
	//
	return NewParser(unit, tokens).Parse()
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive descent parser for Lil programs.
type Parser struct {
	unit   *ast.Unit
	tokens []lex.Token
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given sequence of tokens, which
// were obtained from the source file of the given unit.
func NewParser(unit *ast.Unit, tokens []lex.Token) *Parser {
	return &Parser{unit, tokens, 0}
}

// Parse the tokens into a sequence of zero or more declarations, or a syntax
// error.
func (p *Parser) Parse() (ast.Program, []source.SyntaxError) {
	var program ast.Program
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		decl, errors := p.parseDeclaration(ast.DeclId(len(program.Declarations)))
		//
		if len(errors) > 0 {
			return ast.Program{}, errors
		}
		//
		program.Declarations = append(program.Declarations, decl)
	}
	//
	return program, nil
}

// decl := IDENT "::" stmt-expr
func (p *Parser) parseDeclaration(id ast.DeclId) (ast.Declaration, []source.SyntaxError) {
	var (
		start = p.index
		name  ast.Symbol
		value ast.ExprId
		errs  []source.SyntaxError
	)
	//
	if p.lookahead().Kind != IDENTIFIER {
		return ast.Declaration{}, p.syntaxErrors(p.lookahead(), "expected declaration")
	} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return ast.Declaration{}, errs
	} else if _, errs = p.expect(COLON_COLON); len(errs) > 0 {
		return ast.Declaration{}, errs
	} else if value, errs = p.parseStatementExpr(); len(errs) > 0 {
		return ast.Declaration{}, errs
	}
	//
	p.unit.SourceMap().Put(id, p.spanOf(start, p.index-1))
	//
	return ast.Declaration{Name: name, Value: value}, nil
}

// expr := stmt-expr [";"]
func (p *Parser) parseExpr() (ast.ExprId, []source.SyntaxError) {
	var start = p.index
	//
	expr, errs := p.parseStatementExpr()
	//
	if len(errs) > 0 || !p.match(SEMICOLON) {
		return expr, errs
	}
	//
	return p.alloc(&ast.Semi{Expr: expr}, start), nil
}

func (p *Parser) parseStatementExpr() (ast.ExprId, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		expr      ast.Expr
		errs      []source.SyntaxError
	)
	//
	switch lookahead.Kind {
	case NUMBER:
		expr, errs = p.parseConstant()
	case KEYWORD_IF:
		expr, errs = p.parseIf()
	case KEYWORD_FOR:
		expr, errs = p.parseFor()
	case KEYWORD_BREAK:
		p.index++
		expr = &ast.Break{}
	case KEYWORD_CONTINUE:
		p.index++
		expr = &ast.Continue{}
	case LBRACE:
		expr, errs = p.parseFunction()
	case LCURLY:
		var body ast.Compound
		body, errs = p.parseCompound()
		expr = &body
	case IDENTIFIER:
		expr, errs = p.parseIdentifierExpr()
	case END_OF:
		return 0, p.syntaxErrors(lookahead, "unexpected end of input")
	default:
		return 0, p.syntaxErrors(lookahead, fmt.Sprintf("expected expression, found %s", Describe(lookahead.Kind)))
	}
	//
	if len(errs) > 0 {
		return 0, errs
	}
	//
	return p.alloc(expr, start), nil
}

func (p *Parser) parseConstant() (ast.Expr, []source.SyntaxError) {
	var (
		token = p.tokens[p.index]
		text  = p.string(token)
	)
	//
	p.index++
	//
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, p.syntaxErrors(token, "integer constant out of range")
	}
	//
	return &ast.Constant{Value: int32(value)}, nil
}

// IDENT ":=" stmt-expr | IDENT "(" ")" | IDENT
func (p *Parser) parseIdentifierExpr() (ast.Expr, []source.SyntaxError) {
	var (
		name, _ = p.parseIdentifier()
		errs    []source.SyntaxError
		value   ast.ExprId
	)
	//
	switch {
	case p.match(COLON_EQUALS):
		if value, errs = p.parseStatementExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.BindDef{Name: name, Value: value}, nil
	case p.match(LBRACE):
		if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.Call{Name: name}, nil
	default:
		return &ast.BindRef{Name: name}, nil
	}
}

// "(" ")" ["->" "i32"] compound
func (p *Parser) parseFunction() (ast.Expr, []source.SyntaxError) {
	var (
		returnType = ast.UNIT_TYPE
		body       ast.Compound
		errs       []source.SyntaxError
	)
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	// Parse optional return type
	if p.match(RIGHTARROW) {
		if _, errs = p.expect(KEYWORD_I32); len(errs) > 0 {
			return nil, errs
		}
		//
		returnType = ast.I32_TYPE
	}
	//
	if body, errs = p.parseCompound(); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Function{ReturnType: returnType, Params: nil, Body: body}, nil
}

// "if" cond compound { "else" "if" cond compound } ["else" compound]
func (p *Parser) parseIf() (ast.Expr, []source.SyntaxError) {
	var (
		expr ast.If
		errs []source.SyntaxError
	)
	// Parse first branch
	if _, errs = p.expect(KEYWORD_IF); len(errs) > 0 {
		return nil, errs
	} else if expr.Cond, expr.Then, errs = p.parseGuardedBranch(); len(errs) > 0 {
		return nil, errs
	}
	// Parse else-if branches
	for p.lookahead().Kind == KEYWORD_ELSE && p.lookaheadN(1).Kind == KEYWORD_IF {
		var branch ast.ElseIf
		//
		p.index += 2
		//
		if branch.Cond, branch.Body, errs = p.parseGuardedBranch(); len(errs) > 0 {
			return nil, errs
		}
		//
		expr.ElseIfs = append(expr.ElseIfs, branch)
	}
	// Parse final branch (if present)
	if p.match(KEYWORD_ELSE) {
		body, errs := p.parseCompound()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		expr.Else = &body
	}
	//
	return &expr, nil
}

func (p *Parser) parseGuardedBranch() (ast.ExprId, ast.Compound, []source.SyntaxError) {
	cond, errs := p.parseStatementExpr()
	//
	if len(errs) > 0 {
		return 0, ast.Compound{}, errs
	}
	//
	body, errs := p.parseCompound()
	//
	return cond, body, errs
}

// "for" [IDENT ":" start (".." | "..=") end | cond] compound
func (p *Parser) parseFor() (ast.Expr, []source.SyntaxError) {
	var (
		expr ast.For
		errs []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_FOR); len(errs) > 0 {
		return nil, errs
	}
	// Determine kind of iteration
	if p.lookahead().Kind == IDENTIFIER && p.lookaheadN(1).Kind == COLON {
		if expr.Iteration, errs = p.parseRange(); len(errs) > 0 {
			return nil, errs
		}
	} else if p.lookahead().Kind != LCURLY {
		var cond ast.ExprId
		//
		if cond, errs = p.parseStatementExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		expr.Iteration = &ast.While{Cond: cond}
	}
	//
	if expr.Body, errs = p.parseCompound(); len(errs) > 0 {
		return nil, errs
	}
	//
	return &expr, nil
}

func (p *Parser) parseRange() (*ast.Range, []source.SyntaxError) {
	var (
		rng  ast.Range
		errs []source.SyntaxError
	)
	//
	rng.Counter, _ = p.parseIdentifier()
	// Skip ":"
	p.index++
	//
	if rng.Start, errs = p.parseStatementExpr(); len(errs) > 0 {
		return nil, errs
	}
	//
	switch lookahead := p.lookahead(); lookahead.Kind {
	case DOTDOT:
		rng.Kind = ast.EXCLUSIVE_RANGE
	case DOTDOT_EQUALS:
		rng.Kind = ast.INCLUSIVE_RANGE
	default:
		return nil, p.unexpected(lookahead, "`..` or `..=`")
	}
	//
	p.index++
	//
	if rng.End, errs = p.parseStatementExpr(); len(errs) > 0 {
		return nil, errs
	}
	//
	return &rng, nil
}

// "{" { expr } "}"
func (p *Parser) parseCompound() (ast.Compound, []source.SyntaxError) {
	var exprs []ast.ExprId
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return ast.Compound{}, errs
	}
	//
	for !p.match(RCURLY) {
		expr, errs := p.parseExpr()
		//
		if len(errs) > 0 {
			return ast.Compound{}, errs
		}
		//
		exprs = append(exprs, expr)
	}
	//
	return ast.Compound{Exprs: p.unit.Arena().AllocIds(exprs)}, nil
}

func (p *Parser) parseIdentifier() (ast.Symbol, []source.SyntaxError) {
	tok, errs := p.expect(IDENTIFIER)
	//
	if len(errs) > 0 {
		return 0, errs
	}
	//
	return p.unit.Intern(p.string(tok)), nil
}

// ============================================================================
// Helpers
// ============================================================================

// Allocate an expression which began at a given token and finished at the
// last token consumed.
func (p *Parser) alloc(expr ast.Expr, start int) ast.ExprId {
	var id = p.unit.Arena().Alloc(expr)
	//
	p.unit.SourceMap().Put(id, p.spanOf(start, p.index-1))
	//
	return id
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.unit.Source().Text(token.Span)
}

// Lookahead returns the next token, or an END_OF token (with an empty span at
// the end of the file) if all tokens have been consumed.
func (p *Parser) lookahead() lex.Token {
	return p.lookaheadN(0)
}

// LookaheadN returns the token n positions beyond the next token.
func (p *Parser) lookaheadN(n int) lex.Token {
	if p.index+n < len(p.tokens) {
		return p.tokens[p.index+n]
	}
	//
	end := len(p.unit.Source().Contents())
	//
	return lex.Token{Kind: END_OF, Span: source.NewSpan(end, end)}
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.unexpected(lookahead, Describe(kind))
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) unexpected(token lex.Token, expected string) []source.SyntaxError {
	if token.Kind == END_OF {
		return p.syntaxErrors(token, "unexpected end of input")
	}
	//
	return p.syntaxErrors(token, fmt.Sprintf("expected %s, found %s", expected, Describe(token.Kind)))
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.unit.Source().SyntaxError(token.Span, msg)}
}
