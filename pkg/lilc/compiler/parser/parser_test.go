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
	"testing"

	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
	"github.com/consensys/go-lilc/pkg/util/assert"
	"github.com/consensys/go-lilc/pkg/util/source"
)

func TestParse_Empty(t *testing.T) {
	checkParse(t, "", "(program)")
}

func TestParse_EmptyFunction(t *testing.T) {
	checkParse(t, "main :: () {}", "(program (decl main (fn \"()\" (block))))")
}

func TestParse_ReturnType(t *testing.T) {
	checkParse(t, "main :: () -> i32 { 42 }", "(program (decl main (fn i32 (block 42))))")
}

func TestParse_Bindings(t *testing.T) {
	checkParse(t, "main :: () -> i32 { foo := 42; bar := foo; bar }",
		"(program (decl main (fn i32 (block (semi (let foo 42)) (semi (let bar foo)) bar))))")
}

func TestParse_ArenaAllocation(t *testing.T) {
	unit := ast.NewUnit(source.NewSourceFile("test.lil", []byte("main :: () { 1; 2 }")))
	program, errs := Parse(unit)
	//
	assert.Equal(t, 0, len(errs))
	// Constants first, then the semi, then the enclosing function
	assert.Equal(t, uint(4), unit.Arena().Len())
	//
	expr, ok := unit.Arena().Get(program.Declarations[0].Value)
	assert.True(t, ok)
	_, ok = expr.(*ast.Function)
	assert.True(t, ok)
	assert.Equal(t, source.NewSpan(8, 19), unit.SourceMap().Get(program.Declarations[0].Value))
}

func TestParse_Call(t *testing.T) {
	checkParse(t, "foo :: () {} main :: () { foo(); foo() }",
		"(program (decl foo (fn \"()\" (block))) (decl main (fn \"()\" (block (semi (call foo)) (call foo)))))")
}

func TestParse_Compound(t *testing.T) {
	checkParse(t, "main :: () { { x := 1; } { } }",
		"(program (decl main (fn \"()\" (block (block (semi (let x 1))) (block)))))")
}

func TestParse_If(t *testing.T) {
	checkParse(t, "main :: () { if 1 { 2 } }",
		"(program (decl main (fn \"()\" (block (if 1 (block 2))))))")
}

func TestParse_IfElse(t *testing.T) {
	checkParse(t, "main :: () { if 1 { 2 } else { 3 } }",
		"(program (decl main (fn \"()\" (block (if 1 (block 2) (else (block 3)))))))")
}

func TestParse_IfElseIf(t *testing.T) {
	checkParse(t, "main :: () { if 1 { 2 } else if 3 { 4 } else if 5 { 6 } else { 7 } }",
		"(program (decl main (fn \"()\" (block (if 1 (block 2) (elif 3 (block 4)) (elif 5 (block 6)) (else (block 7)))))))")
}

func TestParse_InfiniteLoop(t *testing.T) {
	checkParse(t, "main :: () { for { break; continue } }",
		"(program (decl main (fn \"()\" (block (for (block (semi (break)) (continue)))))))")
}

func TestParse_WhileLoop(t *testing.T) {
	checkParse(t, "main :: () { x := 1; for x { } }",
		"(program (decl main (fn \"()\" (block (semi (let x 1)) (for (while x) (block))))))")
}

func TestParse_RangeLoop(t *testing.T) {
	checkParse(t, "main :: () { for i: 0..10 { i } for j: 1..=n() { } }",
		"(program (decl main (fn \"()\" (block (for (range i 0 .. 10) (block i)) (for (range j 1 ..= (call n)) (block))))))")
}

func TestParse_KeywordPrefixIdentifier(t *testing.T) {
	checkParse(t, "iffy :: () { formula := 1; formula }",
		"(program (decl iffy (fn \"()\" (block (semi (let formula 1)) formula))))")
}

func TestParse_MaxConstant(t *testing.T) {
	checkParse(t, "main :: () -> i32 { 2147483647 }", "(program (decl main (fn i32 (block 2147483647))))")
}

func TestParse_SourceMap(t *testing.T) {
	unit := ast.NewUnit(source.NewSourceFile("test.lil", []byte("main :: () { x := 42; }")))
	program, errs := Parse(unit)
	//
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 1, len(program.Declarations))
	// Declaration spans the whole text
	assert.Equal(t, source.NewSpan(0, 23), unit.SourceMap().Get(ast.DeclId(0)))
	// Function literal
	assert.Equal(t, source.NewSpan(8, 23), unit.SourceMap().Get(program.Declarations[0].Value))
	//
	fn, ok := program.Function(unit.Arena(), 0)
	assert.True(t, ok)
	// Statement "x := 42;"
	semi := fn.Body.Exprs[0]
	assert.Equal(t, source.NewSpan(13, 21), unit.SourceMap().Get(semi))
}

func TestParse_Interning(t *testing.T) {
	unit := ast.NewUnit(source.NewSourceFile("test.lil", []byte("main :: () { main := 1; main }")))
	program, errs := Parse(unit)
	//
	assert.Equal(t, 0, len(errs))
	//
	fn, _ := program.Function(unit.Arena(), 0)
	expr, _ := unit.Arena().Get(fn.Body.Exprs[1])
	ref, ok := expr.(*ast.BindRef)
	//
	assert.True(t, ok)
	assert.Equal(t, program.Declarations[0].Name, ref.Name)
}

// ============================================================================
// Errors
// ============================================================================

func TestParse_Invalid_01(t *testing.T) {
	checkParseError(t, "42", "expected declaration", 0, 2)
}

func TestParse_Invalid_02(t *testing.T) {
	checkParseError(t, "main : () {}", "expected `::`, found `:`", 5, 6)
}

func TestParse_Invalid_03(t *testing.T) {
	checkParseError(t, "main :: () {", "unexpected end of input", 12, 12)
}

func TestParse_Invalid_04(t *testing.T) {
	checkParseError(t, "main :: () -> u8 {}", "expected keyword `i32`, found identifier", 14, 16)
}

func TestParse_Invalid_05(t *testing.T) {
	checkParseError(t, "main :: () { ; }", "expected expression, found `;`", 13, 14)
}

func TestParse_Invalid_06(t *testing.T) {
	checkParseError(t, "main :: () { 2147483648 }", "integer constant out of range", 13, 23)
}

func TestParse_Invalid_07(t *testing.T) {
	checkParseError(t, "main :: () { for i: 0 10 {} }", "expected `..` or `..=`, found integer constant", 22, 24)
}

func TestParse_Invalid_08(t *testing.T) {
	checkParseError(t, "main :: () { foo( }", "expected `)`, found `}`", 18, 19)
}

func TestParse_Invalid_09(t *testing.T) {
	checkParseError(t, "main :: () { if 1 2 }", "expected `{`, found integer constant", 18, 19)
}

func TestParse_Invalid_10(t *testing.T) {
	checkParseError(t, "main :: () { x := 1 # }", "unknown text encountered", 20, 23)
}

func TestParse_Invalid_11(t *testing.T) {
	checkParseError(t, "main ::", "unexpected end of input", 7, 7)
}

// ============================================================================
// Framework
// ============================================================================

func checkParse(t *testing.T, input string, expected string) {
	t.Helper()
	//
	unit := ast.NewUnit(source.NewSourceFile("test.lil", []byte(input)))
	program, errs := Parse(unit)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	assert.Equal(t, expected, ast.ToSExp(unit, program).String(true))
}

func checkParseError(t *testing.T, input string, msg string, start, end int) {
	t.Helper()
	//
	unit := ast.NewUnit(source.NewSourceFile("test.lil", []byte(input)))
	program, errs := Parse(unit)
	//
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, msg, errs[0].Message())
	assert.Equal(t, source.NewSpan(start, end), errs[0].Span())
	assert.Equal(t, 0, len(program.Declarations))
}
