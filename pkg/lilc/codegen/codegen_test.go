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
package codegen

import (
	"errors"
	"testing"

	"github.com/consensys/go-lilc/pkg/lilc/asm"
	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
	"github.com/consensys/go-lilc/pkg/lilc/compiler/parser"
	"github.com/consensys/go-lilc/pkg/util/assert"
	"github.com/consensys/go-lilc/pkg/util/source"
)

// ============================================================================
// Functions
// ============================================================================

func TestCodegen_EmptyFunction(t *testing.T) {
	checkCodegen(t, "main :: () {}", `
main:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
`)
}

func TestCodegen_Return42(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { 42 }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 42
    pop rbp
    ret
`)
}

func TestCodegen_CallPreviouslyDefined(t *testing.T) {
	checkCodegen(t, "foo :: () {}\nbar :: () { foo() }", `
foo:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
bar:
    push rbp
    mov rbp, rsp
    call foo
    pop rbp
    ret
`)
}

func TestCodegen_CallLaterDefined(t *testing.T) {
	checkCodegen(t, "foo :: () { bar() }\nbar :: () {}", `
foo:
    push rbp
    mov rbp, rsp
    call bar
    pop rbp
    ret
bar:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
`)
}

func TestCodegen_DuplicateFunctions(t *testing.T) {
	// Both definitions are emitted, and the assembler picks the first.
	checkCodegen(t, "foo :: () {}\nfoo :: () { 1 }", `
foo:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
foo:
    push rbp
    mov rbp, rsp
    mov eax, 1
    pop rbp
    ret
`)
}

// ============================================================================
// Bindings
// ============================================================================

func TestCodegen_Binding(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { foo := 42; foo }", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 4
    mov eax, 42
    mov DWORD PTR [rbp-4], eax
    mov eax, DWORD PTR [rbp-4]
    add rsp, 4
    pop rbp
    ret
`)
}

func TestCodegen_ManyBindings(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { foo := 42; bar := 314; baz := 1; quxx := 0; bar }", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 16
    mov eax, 42
    mov DWORD PTR [rbp-4], eax
    mov eax, 314
    mov DWORD PTR [rbp-8], eax
    mov eax, 1
    mov DWORD PTR [rbp-12], eax
    mov eax, 0
    mov DWORD PTR [rbp-16], eax
    mov eax, DWORD PTR [rbp-8]
    add rsp, 16
    pop rbp
    ret
`)
}

func TestCodegen_FramePerFunction(t *testing.T) {
	checkCodegen(t, `
func1 :: () -> i32 { foo := 42; quxx := 314; foo }
func2 :: () -> i32 { quxx := 1; baz := 2; bar := 3; quxx }`, `
func1:
    push rbp
    mov rbp, rsp
    sub rsp, 8
    mov eax, 42
    mov DWORD PTR [rbp-4], eax
    mov eax, 314
    mov DWORD PTR [rbp-8], eax
    mov eax, DWORD PTR [rbp-4]
    add rsp, 8
    pop rbp
    ret
func2:
    push rbp
    mov rbp, rsp
    sub rsp, 12
    mov eax, 1
    mov DWORD PTR [rbp-4], eax
    mov eax, 2
    mov DWORD PTR [rbp-8], eax
    mov eax, 3
    mov DWORD PTR [rbp-12], eax
    mov eax, DWORD PTR [rbp-4]
    add rsp, 12
    pop rbp
    ret
`)
}

func TestCodegen_SiblingCompounds(t *testing.T) {
	checkCodegen(t, "main :: () { { a := 1; b := 2; } { c := 3; d := 4; } }", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 16
    mov eax, 1
    mov DWORD PTR [rbp-4], eax
    mov eax, 2
    mov DWORD PTR [rbp-8], eax
    mov eax, 3
    mov DWORD PTR [rbp-12], eax
    mov eax, 4
    mov DWORD PTR [rbp-16], eax
    add rsp, 16
    pop rbp
    ret
`)
}

func TestCodegen_Shadowing(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { x := 1; { x := 2; x; } x }", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 8
    mov eax, 1
    mov DWORD PTR [rbp-4], eax
    mov eax, 2
    mov DWORD PTR [rbp-8], eax
    mov eax, DWORD PTR [rbp-8]
    mov eax, DWORD PTR [rbp-4]
    add rsp, 8
    pop rbp
    ret
`)
}

func TestCodegen_SelfReferenceInValue(t *testing.T) {
	// The value is evaluated before the name is bound, hence refers to the
	// outer binding.
	checkCodegen(t, "main :: () -> i32 { x := 7; { x := x; x } }", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 8
    mov eax, 7
    mov DWORD PTR [rbp-4], eax
    mov eax, DWORD PTR [rbp-4]
    mov DWORD PTR [rbp-8], eax
    mov eax, DWORD PTR [rbp-8]
    add rsp, 8
    pop rbp
    ret
`)
}

// ============================================================================
// Conditionals
// ============================================================================

func TestCodegen_IfElse(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { if 1 { 1 } else { 0 } }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 1
    cmp eax, 0
    je .L0
    mov eax, 1
    jmp .L1
.L0:
    mov eax, 0
.L1:
    pop rbp
    ret
`)
}

func TestCodegen_NestedIfElse(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { if 1 { if 2 { 3 } else { 4 } } else { 0 } }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 1
    cmp eax, 0
    je .L0
    mov eax, 2
    cmp eax, 0
    je .L1
    mov eax, 3
    jmp .L2
.L1:
    mov eax, 4
.L2:
    jmp .L3
.L0:
    mov eax, 0
.L3:
    pop rbp
    ret
`)
}

func TestCodegen_IfWithoutElse(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { if 1 { 1 }; 0 }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 1
    cmp eax, 0
    je .L0
    mov eax, 1
.L0:
    mov eax, 0
    pop rbp
    ret
`)
}

func TestCodegen_MultipleExprsInBranches(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { if 1 { 1; 2; 3 } else { 4; 5 } }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 1
    cmp eax, 0
    je .L0
    mov eax, 1
    mov eax, 2
    mov eax, 3
    jmp .L1
.L0:
    mov eax, 4
    mov eax, 5
.L1:
    pop rbp
    ret
`)
}

func TestCodegen_ChainedIfElse(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { if 10 { 1 } else if 20 { 2 } else if 30 { 3 } else { 4 } }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 10
    cmp eax, 0
    je .L0
    mov eax, 1
    jmp .L3
.L0:
    mov eax, 20
    cmp eax, 0
    je .L1
    mov eax, 2
    jmp .L3
.L1:
    mov eax, 30
    cmp eax, 0
    je .L2
    mov eax, 3
    jmp .L3
.L2:
    mov eax, 4
.L3:
    pop rbp
    ret
`)
}

func TestCodegen_ChainedIfWithoutElse(t *testing.T) {
	checkCodegen(t, "main :: () -> i32 { if 10 { 1 } else if 20 { 2 } else if 30 { 3 } }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 10
    cmp eax, 0
    je .L0
    mov eax, 1
    jmp .L2
.L0:
    mov eax, 20
    cmp eax, 0
    je .L1
    mov eax, 2
    jmp .L2
.L1:
    mov eax, 30
    cmp eax, 0
    je .L2
    mov eax, 3
    jmp .L2
.L2:
    pop rbp
    ret
`)
}

func TestCodegen_ElseBranchLabelsAfterExit(t *testing.T) {
	// The exit label is allocated before lowering the final branch.
	checkCodegen(t, "main :: () { if 1 { } else { if 2 { } } }", `
main:
    push rbp
    mov rbp, rsp
    mov eax, 1
    cmp eax, 0
    je .L0
    jmp .L1
.L0:
    mov eax, 2
    cmp eax, 0
    je .L2
.L2:
.L1:
    pop rbp
    ret
`)
}

// ============================================================================
// Loops
// ============================================================================

func TestCodegen_EmptyInfiniteLoop(t *testing.T) {
	checkCodegen(t, "main :: () { for { } }", `
main:
    push rbp
    mov rbp, rsp
.L0:
    jmp .L0
.L1:
    pop rbp
    ret
`)
}

func TestCodegen_InfiniteLoop(t *testing.T) {
	checkCodegen(t, "main :: () { for { x := 42; foo(); } }\nfoo :: () {}", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 4
.L0:
    mov eax, 42
    mov DWORD PTR [rbp-4], eax
    call foo
    jmp .L0
.L1:
    add rsp, 4
    pop rbp
    ret
foo:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
`)
}

func TestCodegen_ConditionalLoop(t *testing.T) {
	checkCodegen(t, "main :: () { for 1 { foo(); } }\nfoo :: () {}", `
main:
    push rbp
    mov rbp, rsp
.L0:
    mov eax, 1
    cmp eax, 0
    je .L1
    call foo
    jmp .L0
.L1:
    pop rbp
    ret
foo:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
`)
}

func TestCodegen_NestedBreaks(t *testing.T) {
	checkCodegen(t, "main :: () { for { for { break; } break; } }", `
main:
    push rbp
    mov rbp, rsp
.L0:
.L2:
    jmp .L3
    jmp .L2
.L3:
    jmp .L1
    jmp .L0
.L1:
    pop rbp
    ret
`)
}

func TestCodegen_BreakInsideIf(t *testing.T) {
	checkCodegen(t, "main :: () { for { if 1 { break; } } }", `
main:
    push rbp
    mov rbp, rsp
.L0:
    mov eax, 1
    cmp eax, 0
    je .L2
    jmp .L1
.L2:
    jmp .L0
.L1:
    pop rbp
    ret
`)
}

func TestCodegen_WhileContinue(t *testing.T) {
	checkCodegen(t, "main :: () { for 1 { continue; } }", `
main:
    push rbp
    mov rbp, rsp
.L0:
    mov eax, 1
    cmp eax, 0
    je .L1
    jmp .L0
    jmp .L0
.L1:
    pop rbp
    ret
`)
}

func TestCodegen_ExclusiveRange(t *testing.T) {
	checkCodegen(t, "main :: () { for i: 0..10 { foo(); } }\nfoo :: () {}", `
main:
    push rbp
    mov rbp, rsp
    sub rsp, 4
    mov eax, 0
    mov DWORD PTR [rbp-4], eax
.L0:
    mov eax, DWORD PTR [rbp-4]
    cmp eax, 10
    jge .L1
    call foo
.L2:
    mov eax, DWORD PTR [rbp-4]
    add eax, 1
    mov DWORD PTR [rbp-4], eax
    jmp .L0
.L1:
    add rsp, 4
    pop rbp
    ret
foo:
    push rbp
    mov rbp, rsp
    pop rbp
    ret
`)
}

func TestCodegen_InclusiveRangeComputedEnd(t *testing.T) {
	checkCodegen(t, "n :: () -> i32 { 3 }\nmain :: () { for i: 1..=n() { if i { continue; } } }", `
n:
    push rbp
    mov rbp, rsp
    mov eax, 3
    pop rbp
    ret
main:
    push rbp
    mov rbp, rsp
    sub rsp, 8
    mov eax, 1
    mov DWORD PTR [rbp-4], eax
    call n
    mov DWORD PTR [rbp-8], eax
.L0:
    mov eax, DWORD PTR [rbp-4]
    cmp eax, DWORD PTR [rbp-8]
    jg .L1
    mov eax, DWORD PTR [rbp-4]
    cmp eax, 0
    je .L3
    jmp .L2
.L3:
.L2:
    mov eax, DWORD PTR [rbp-4]
    add eax, 1
    mov DWORD PTR [rbp-4], eax
    jmp .L0
.L1:
    add rsp, 8
    pop rbp
    ret
`)
}

// ============================================================================
// Properties
// ============================================================================

func TestCodegen_Deterministic(t *testing.T) {
	var text = "main :: () -> i32 { x := 1; for { if x { break; } else if 2 { continue; } } x }"
	//
	first := compile(t, text)
	second := compile(t, text)
	//
	assert.Equal(t, first.String(), second.String())
}

func TestCodegen_LabelsUniqueAcrossUnits(t *testing.T) {
	var (
		gen    = NewGenerator()
		result string
	)
	//
	for _, text := range []string{"foo :: () { for {} }", "bar :: () { for {} }"} {
		unit, program := parse(t, text)
		code, err := gen.Generate(unit, program)
		//
		assert.True(t, err == nil)
		//
		result += code.String()
	}
	//
	assert.Lines(t, `
foo:
    push rbp
    mov rbp, rsp
.L0:
    jmp .L0
.L1:
    pop rbp
    ret
bar:
    push rbp
    mov rbp, rsp
.L2:
    jmp .L2
.L3:
    pop rbp
    ret
`, result)
}

// ============================================================================
// Internal errors
// ============================================================================

func TestCodegen_Invalid_UnresolvedBinding(t *testing.T) {
	checkInternalError(t, "main :: () -> i32 { x }", "unresolved binding x")
}

func TestCodegen_Invalid_OutOfScope(t *testing.T) {
	checkInternalError(t, "main :: () -> i32 { { x := 1; } x }", "unresolved binding x")
}

func TestCodegen_Invalid_CounterOutOfScope(t *testing.T) {
	checkInternalError(t, "main :: () -> i32 { for i: 0..1 { } i }", "unresolved binding i")
}

func TestCodegen_Invalid_Break(t *testing.T) {
	checkInternalError(t, "main :: () { break }", "break outside of loop")
}

func TestCodegen_Invalid_Continue(t *testing.T) {
	checkInternalError(t, "main :: () { if 1 { continue; } }", "continue outside of loop")
}

func TestCodegen_Invalid_NestedFunction(t *testing.T) {
	checkInternalError(t, "main :: () { () {} }", "nested function")
}

func TestCodegen_Invalid_NotFunction(t *testing.T) {
	checkInternalError(t, "x :: 42", "declaration x is not a function")
}

// ============================================================================
// Framework
// ============================================================================

func checkCodegen(t *testing.T, input string, expected string) {
	t.Helper()
	//
	code := compile(t, input)
	//
	assert.Lines(t, expected, code.String())
}

func checkInternalError(t *testing.T, input string, msg string) {
	t.Helper()
	//
	var (
		unit, program = parse(t, input)
		_, err        = Generate(unit, program)
		ierr          *InternalError
	)
	//
	assert.True(t, errors.As(err, &ierr), "expected internal error")
	assert.Equal(t, msg, ierr.Message)
}

func compile(t *testing.T, input string) asm.Program {
	t.Helper()
	//
	unit, program := parse(t, input)
	code, err := Generate(unit, program)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	//
	return code
}

func parse(t *testing.T, input string) (*ast.Unit, ast.Program) {
	t.Helper()
	//
	unit := ast.NewUnit(source.NewSourceFile("test.lil", []byte(input)))
	program, errs := parser.Parse(unit)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Message())
	}
	//
	return unit, program
}
