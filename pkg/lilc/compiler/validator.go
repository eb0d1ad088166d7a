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
package compiler

import (
	"fmt"

	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
	"github.com/consensys/go-lilc/pkg/util/collection/stack"
	"github.com/consensys/go-lilc/pkg/util/source"
)

// Validate checks that a given program is well-formed.  For example, every
// top-level declaration must be a function, and no two declarations may share
// a name.  Likewise, names cannot be used before they are bound, calls must
// target a declared function (either in this program or one of the given
// externals), and break or continue must occur within a loop.  Scoping follows
// exactly that used during code generation, hence a valid program can always
// be lowered.
func Validate(unit *ast.Unit, program ast.Program, externs ...string) []source.SyntaxError {
	var v = validator{
		unit:      unit,
		functions: make(map[ast.Symbol]bool),
		scopes:    stack.NewStack[map[ast.Symbol]bool](),
	}
	// Register externally declared functions
	for _, name := range externs {
		v.functions[unit.Intern(name)] = true
	}
	// Register declared functions
	for i, decl := range program.Declarations {
		if v.declared(decl.Name, program.Declarations[:i]) {
			v.error(ast.DeclId(i), "duplicate declaration")
		}
		//
		v.functions[decl.Name] = true
	}
	// Check function bodies
	for i, decl := range program.Declarations {
		if fn, ok := program.Function(unit.Arena(), ast.DeclId(i)); !ok {
			v.error(decl.Value, "expected function")
		} else {
			v.validateCompound(fn.Body)
		}
	}
	//
	return v.errors
}

type validator struct {
	unit *ast.Unit
	// Names of all functions which can be called.
	functions map[ast.Symbol]bool
	// Bindings visible at the current point (innermost on top)
	scopes *stack.Stack[map[ast.Symbol]bool]
	// Number of enclosing loops
	loops uint
	// Errors found so far
	errors []source.SyntaxError
}

func (p *validator) validate(id ast.ExprId) {
	expr, ok := p.unit.Arena().Get(id)
	//
	if !ok {
		panic(fmt.Sprintf("invalid expression %d", id))
	}
	//
	switch e := expr.(type) {
	case *ast.Constant:
		// nothing to check
	case *ast.BindRef:
		if _, _, ok := p.scopes.Find(func(s map[ast.Symbol]bool) bool { return s[e.Name] }); !ok {
			p.error(id, "unknown binding")
		}
	case *ast.Call:
		if !p.functions[e.Name] {
			p.error(id, "unknown function")
		}
	case *ast.Break:
		if p.loops == 0 {
			p.error(id, "break outside of loop")
		}
	case *ast.Continue:
		if p.loops == 0 {
			p.error(id, "continue outside of loop")
		}
	case *ast.BindDef:
		// Value is checked before the name comes into scope
		p.validate(e.Value)
		p.scopes.Peek(0)[e.Name] = true
	case *ast.Semi:
		p.validate(e.Expr)
	case *ast.Compound:
		p.validateCompound(*e)
	case *ast.If:
		p.validate(e.Cond)
		p.validateCompound(e.Then)
		//
		for _, branch := range e.ElseIfs {
			p.validate(branch.Cond)
			p.validateCompound(branch.Body)
		}
		//
		if e.Else != nil {
			p.validateCompound(*e.Else)
		}
	case *ast.For:
		p.validateFor(e)
	case *ast.Function:
		p.error(id, "nested functions not supported")
	default:
		panic(fmt.Sprintf("unknown expression %T", expr))
	}
}

func (p *validator) validateCompound(compound ast.Compound) {
	p.scopes.Push(make(map[ast.Symbol]bool))
	//
	for _, id := range compound.Exprs {
		p.validate(id)
	}
	//
	p.scopes.Pop()
}

// The loop has its own scope, which holds the counter of a counted loop.
func (p *validator) validateFor(e *ast.For) {
	p.scopes.Push(make(map[ast.Symbol]bool))
	p.loops++
	//
	switch it := e.Iteration.(type) {
	case *ast.While:
		p.validate(it.Cond)
	case *ast.Range:
		p.validate(it.Start)
		p.scopes.Peek(0)[it.Counter] = true
		p.validate(it.End)
	}
	//
	p.validateCompound(e.Body)
	//
	p.loops--
	p.scopes.Pop()
}

func (p *validator) declared(name ast.Symbol, decls []ast.Declaration) bool {
	for _, decl := range decls {
		if decl.Name == name {
			return true
		}
	}
	//
	return false
}

func (p *validator) error(node any, msg string) {
	p.errors = append(p.errors, p.unit.SyntaxError(node, msg))
}
