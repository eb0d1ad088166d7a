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

// Symbol is an interned identifier.  Two symbols from the same compilation
// unit are equal if, and only if, they were interned from the same text.
type Symbol uint32

// ExprId identifies an expression allocated within an arena.
type ExprId uint32

// Expr represents an arbitrary expression.  Every expression is allocated in
// an arena, and refers to its subexpressions by their identifiers.  The set of
// expressions is closed, and consists of exactly those types declared in this
// file.
type Expr interface {
	isExpr()
}

// Type represents the return type of a function.
type Type uint8

const (
	// UNIT_TYPE is the type of functions which return nothing.
	UNIT_TYPE Type = iota
	// I32_TYPE is the type of functions returning a signed 32-bit integer.
	I32_TYPE
)

func (t Type) String() string {
	if t == I32_TYPE {
		return "i32"
	}
	//
	return "()"
}

// RangeKind determines whether the upper bound of a counted loop is included
// or not.
type RangeKind uint8

const (
	// EXCLUSIVE_RANGE is written "start..end", and stops before end.
	EXCLUSIVE_RANGE RangeKind = iota
	// INCLUSIVE_RANGE is written "start..=end", and stops after end.
	INCLUSIVE_RANGE
)

// ============================================================================
// Leaves
// ============================================================================

// Constant is an integer literal.
type Constant struct {
	Value int32
}

func (*Constant) isExpr() {}

// BindRef is a reference to a previously bound name.
type BindRef struct {
	Name Symbol
}

func (*BindRef) isExpr() {}

// Call invokes a function by name, without any arguments.
type Call struct {
	Name Symbol
}

func (*Call) isExpr() {}

// Break exits the innermost enclosing loop.
type Break struct{}

func (*Break) isExpr() {}

// Continue jumps to the next iteration of the innermost enclosing loop.
type Continue struct{}

func (*Continue) isExpr() {}

// ============================================================================
// Compound expressions
// ============================================================================

// BindDef binds a name to the value of an expression.  The value is evaluated
// once, and the name is visible from this point until the end of the
// enclosing compound expression.
type BindDef struct {
	Name  Symbol
	Value ExprId
}

func (*BindDef) isExpr() {}

// Semi wraps an expression whose value is discarded (i.e. "expr;").
type Semi struct {
	Expr ExprId
}

func (*Semi) isExpr() {}

// Compound is a brace-delimited sequence of expressions.  Its value is that of
// its last expression (or unit, if empty).  A compound forms a lexical scope
// for the bindings it contains.
type Compound struct {
	Exprs []ExprId
}

func (*Compound) isExpr() {}

// Function is a function literal.  Parameters are not (yet) supported, and
// the parameter list is always empty.
type Function struct {
	ReturnType Type
	Params     []Symbol
	Body       Compound
}

func (*Function) isExpr() {}

// ElseIf is a guarded branch following the first branch of an if expression.
type ElseIf struct {
	Cond ExprId
	Body Compound
}

// If is a chain of one or more guarded branches, optionally followed by an
// unguarded final branch.
type If struct {
	Cond    ExprId
	Then    Compound
	ElseIfs []ElseIf
	// Final branch, or nil if there is none.
	Else *Compound
}

func (*If) isExpr() {}

// Iteration determines how a for loop iterates.  This is either nil (for an
// infinite loop), a *While or a *Range.
type Iteration interface {
	isIteration()
}

// While iterates for as long as its condition evaluates to non-zero.
type While struct {
	Cond ExprId
}

func (*While) isIteration() {}

// Range iterates a counter from a start value up to an end value.
type Range struct {
	Counter Symbol
	Start   ExprId
	End     ExprId
	Kind    RangeKind
}

func (*Range) isIteration() {}

// For is a loop.
type For struct {
	// Iteration clause, or nil for an infinite loop.
	Iteration Iteration
	Body      Compound
}

func (*For) isExpr() {}
