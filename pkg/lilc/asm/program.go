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
	"fmt"
	"strings"
)

// Program is a flat sequence of instructions.
type Program struct {
	Instructions []Instruction
}

// Append one or more instructions to the end of this program.
func (p *Program) Append(insns ...Instruction) {
	p.Instructions = append(p.Instructions, insns...)
}

// Concat appends all instructions of another program to this program.
func (p *Program) Concat(other Program) {
	p.Instructions = append(p.Instructions, other.Instructions...)
}

// Len returns the number of instructions in this program.
func (p *Program) Len() uint {
	return uint(len(p.Instructions))
}

// Prelude returns the directives needed for GNU as to accept this program:
// Intel syntax without register prefixes, and every function label exported.
func (p *Program) Prelude() Program {
	var prelude Program
	//
	prelude.Append(&Directive{".intel_syntax noprefix"})
	//
	for _, insn := range p.Instructions {
		if def, ok := insn.(*Def); ok && !def.Label.IsLocal() {
			prelude.Append(&Directive{fmt.Sprintf(".globl %s", def.Label)})
		}
	}
	//
	return prelude
}

// Check that every jump in this program targets a label defined somewhere in
// the program, and that no local label is defined twice.  Function labels may
// be repeated, in which case the assembler decides which definition is used.
func (p *Program) Check() error {
	var defined = make(map[Label]bool)
	//
	for _, insn := range p.Instructions {
		if def, ok := insn.(*Def); ok {
			if defined[def.Label] && def.Label.IsLocal() {
				return fmt.Errorf("label %s defined twice", def.Label)
			}
			//
			defined[def.Label] = true
		}
	}
	//
	for _, insn := range p.Instructions {
		for _, target := range insn.Targets() {
			if !defined[target] {
				return fmt.Errorf("jump to undefined label %s", target)
			}
		}
	}
	//
	return nil
}

// String renders this program as text, with one instruction per line.
func (p *Program) String() string {
	var builder strings.Builder
	//
	for _, insn := range p.Instructions {
		builder.WriteString(insn.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
