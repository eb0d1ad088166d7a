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

import "fmt"

// Opcode identifies a two-operand instruction.
type Opcode uint8

const (
	// MOV copies the source operand into the target.
	MOV Opcode = iota
	// ADD adds the source operand to the target.
	ADD
	// SUB subtracts the source operand from the target.
	SUB
	// CMP compares both operands, setting flags for a subsequent conditional
	// jump.
	CMP
)

func (op Opcode) String() string {
	switch op {
	case MOV:
		return "mov"
	case ADD:
		return "add"
	case SUB:
		return "sub"
	case CMP:
		return "cmp"
	}
	//
	return fmt.Sprintf("op?%d", uint8(op))
}

// Binary is a two-operand instruction in Intel operand order (i.e. target
// first).
type Binary struct {
	Opcode Opcode
	Target Operand
	Source Operand
}

// Mov constructs "mov target, source".
func Mov(target Operand, source Operand) *Binary {
	return &Binary{MOV, target, source}
}

// Add constructs "add target, source".
func Add(target Operand, source Operand) *Binary {
	return &Binary{ADD, target, source}
}

// Sub constructs "sub target, source".
func Sub(target Operand, source Operand) *Binary {
	return &Binary{SUB, target, source}
}

// Cmp constructs "cmp left, right".
func Cmp(left Operand, right Operand) *Binary {
	return &Binary{CMP, left, right}
}

// Targets implementation for Instruction interface.
func (p *Binary) Targets() []Label { return nil }

func (p *Binary) String() string {
	return fmt.Sprintf("    %s %s, %s", p.Opcode, p.Target, p.Source)
}
