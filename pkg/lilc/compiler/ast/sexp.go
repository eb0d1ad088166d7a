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
package ast

import (
	"fmt"

	"github.com/consensys/go-lilc/pkg/util/source/sexp"
)

// ToSExp translates a program into an S-Expression, primarily for debugging.
// For example, "main :: () -> i32 { x := 1; x }" is rendered as
// "(program (decl main (fn i32 (block (semi (let x 1)) x))))".
func ToSExp(unit *Unit, program Program) sexp.SExp {
	var list = sexp.NewList([]sexp.SExp{sexp.NewSymbol("program")})
	//
	for _, decl := range program.Declarations {
		list.Append(sexp.NewList([]sexp.SExp{
			sexp.NewSymbol("decl"),
			symbolToSExp(unit, decl.Name),
			exprToSExp(unit, decl.Value),
		}))
	}
	//
	return list
}

func exprToSExp(unit *Unit, id ExprId) sexp.SExp {
	expr, ok := unit.Arena().Get(id)
	//
	if !ok {
		return sexp.NewSymbol(fmt.Sprintf("<invalid expr %d>", id))
	}
	//
	switch e := expr.(type) {
	case *Constant:
		return sexp.NewSymbol(fmt.Sprintf("%d", e.Value))
	case *BindRef:
		return symbolToSExp(unit, e.Name)
	case *Call:
		return newList("call", symbolToSExp(unit, e.Name))
	case *Break:
		return newList("break")
	case *Continue:
		return newList("continue")
	case *BindDef:
		return newList("let", symbolToSExp(unit, e.Name), exprToSExp(unit, e.Value))
	case *Semi:
		return newList("semi", exprToSExp(unit, e.Expr))
	case *Compound:
		return compoundToSExp(unit, *e)
	case *Function:
		return newList("fn", sexp.NewSymbol(e.ReturnType.String()), compoundToSExp(unit, e.Body))
	case *If:
		list := newList("if", exprToSExp(unit, e.Cond), compoundToSExp(unit, e.Then))
		//
		for _, branch := range e.ElseIfs {
			list.Append(newList("elif", exprToSExp(unit, branch.Cond), compoundToSExp(unit, branch.Body)))
		}
		//
		if e.Else != nil {
			list.Append(newList("else", compoundToSExp(unit, *e.Else)))
		}
		//
		return list
	case *For:
		list := newList("for")
		//
		switch it := e.Iteration.(type) {
		case *While:
			list.Append(newList("while", exprToSExp(unit, it.Cond)))
		case *Range:
			op := ".."
			if it.Kind == INCLUSIVE_RANGE {
				op = "..="
			}
			//
			list.Append(newList("range", symbolToSExp(unit, it.Counter), exprToSExp(unit, it.Start),
				sexp.NewSymbol(op), exprToSExp(unit, it.End)))
		}
		//
		list.Append(compoundToSExp(unit, e.Body))
		//
		return list
	default:
		return sexp.NewSymbol(fmt.Sprintf("<unknown expr %T>", expr))
	}
}

func compoundToSExp(unit *Unit, compound Compound) *sexp.List {
	var list = newList("block")
	//
	for _, id := range compound.Exprs {
		list.Append(exprToSExp(unit, id))
	}
	//
	return list
}

func symbolToSExp(unit *Unit, symbol Symbol) sexp.SExp {
	if name, ok := unit.Name(symbol); ok {
		return sexp.NewSymbol(name)
	}
	//
	return sexp.NewSymbol(fmt.Sprintf("<invalid symbol %d>", symbol))
}

func newList(head string, elements ...sexp.SExp) *sexp.List {
	return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol(head)}, elements...))
}
