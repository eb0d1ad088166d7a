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
package asm

import (
	"testing"

	"github.com/consensys/go-lilc/pkg/util/assert"
)

func TestAsm_Operands(t *testing.T) {
	assert.Equal(t, "eax", EAX.String())
	assert.Equal(t, "rbp", RBP.String())
	assert.Equal(t, "rsp", RSP.String())
	assert.Equal(t, "-7", Immediate(-7).String())
	assert.Equal(t, "DWORD PTR [rbp-12]", Slot(12).String())
}

func TestAsm_Instructions(t *testing.T) {
	checkInstruction(t, "main:", &Def{"main"})
	checkInstruction(t, ".L3:", &Def{LocalLabel(3)})
	checkInstruction(t, ".intel_syntax noprefix", &Directive{".intel_syntax noprefix"})
	checkInstruction(t, "    push rbp", &Push{RBP})
	checkInstruction(t, "    pop rbp", &Pop{RBP})
	checkInstruction(t, "    mov rbp, rsp", Mov(RBP, RSP))
	checkInstruction(t, "    mov eax, 42", Mov(EAX, Immediate(42)))
	checkInstruction(t, "    mov DWORD PTR [rbp-4], eax", Mov(Slot(4), EAX))
	checkInstruction(t, "    mov eax, DWORD PTR [rbp-8]", Mov(EAX, Slot(8)))
	checkInstruction(t, "    sub rsp, 16", Sub(RSP, Immediate(16)))
	checkInstruction(t, "    add eax, 1", Add(EAX, Immediate(1)))
	checkInstruction(t, "    cmp eax, 0", Cmp(EAX, Immediate(0)))
	checkInstruction(t, "    je .L0", JumpIf(EQUAL, LocalLabel(0)))
	checkInstruction(t, "    jg .L1", JumpIf(GREATER, LocalLabel(1)))
	checkInstruction(t, "    jge .L2", JumpIf(GREATER_EQUAL, LocalLabel(2)))
	checkInstruction(t, "    jmp .L0", Goto(LocalLabel(0)))
	checkInstruction(t, "    call foo", &Call{"foo"})
	checkInstruction(t, "    ret", &Ret{})
}

func TestAsm_Program(t *testing.T) {
	var program Program
	//
	program.Append(&Def{"main"}, &Push{RBP}, Mov(RBP, RSP))
	program.Append(&Pop{RBP}, &Ret{})
	//
	assert.Equal(t, uint(5), program.Len())
	assert.Equal(t, "main:\n    push rbp\n    mov rbp, rsp\n    pop rbp\n    ret\n", program.String())
	assert.True(t, program.Check() == nil)
}

func TestAsm_Concat(t *testing.T) {
	var first, second Program
	//
	first.Append(&Def{"foo"}, &Ret{})
	second.Append(&Def{"bar"}, &Ret{})
	first.Concat(second)
	//
	assert.Equal(t, "foo:\n    ret\nbar:\n    ret\n", first.String())
}

func TestAsm_Prelude(t *testing.T) {
	var program Program
	//
	program.Append(&Def{"foo"}, &Def{LocalLabel(0)}, &Ret{}, &Def{"main"}, &Ret{})
	prelude := program.Prelude()
	//
	assert.Equal(t, ".intel_syntax noprefix\n.globl foo\n.globl main\n", prelude.String())
}

func TestAsm_CheckUndefined(t *testing.T) {
	var program Program
	//
	program.Append(&Def{LocalLabel(0)}, Goto(LocalLabel(1)))
	//
	err := program.Check()
	assert.True(t, err != nil)
	assert.Equal(t, "jump to undefined label .L1", err.Error())
}

func TestAsm_CheckDuplicate(t *testing.T) {
	var program Program
	//
	program.Append(&Def{LocalLabel(0)}, &Def{LocalLabel(0)})
	//
	err := program.Check()
	assert.True(t, err != nil)
	assert.Equal(t, "label .L0 defined twice", err.Error())
}

func TestAsm_CheckDuplicateFunction(t *testing.T) {
	var program Program
	//
	program.Append(&Def{"foo"}, &Ret{}, &Def{"foo"}, &Ret{})
	//
	assert.True(t, program.Check() == nil)
	assert.Equal(t, "foo:\n    ret\nfoo:\n    ret\n", program.String())
}

func checkInstruction(t *testing.T, expected string, insn Instruction) {
	t.Helper()
	assert.Equal(t, expected, insn.String())
}
