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

// Operand represents an argument of an instruction.  This is either a
// register, an immediate value or a memory location.
type Operand interface {
	fmt.Stringer
	isOperand()
}

// Register identifies a machine register.
type Register uint8

const (
	// EAX is the (32-bit) accumulator.  All expression values are computed
	// into this register.
	EAX Register = iota
	// RBP is the frame pointer.
	RBP
	// RSP is the stack pointer.
	RSP
)

func (r Register) isOperand() {}

func (r Register) String() string {
	switch r {
	case EAX:
		return "eax"
	case RBP:
		return "rbp"
	case RSP:
		return "rsp"
	}
	//
	return fmt.Sprintf("r?%d", uint8(r))
}

// Immediate is a constant operand.
type Immediate int32

func (i Immediate) isOperand() {}

func (i Immediate) String() string {
	return fmt.Sprintf("%d", int32(i))
}

// Memory is a 32-bit memory location addressed relative to the frame pointer.
// Local slots live below the frame pointer, hence the offset is subtracted.
type Memory struct {
	Offset uint
}

// Slot returns the memory operand for the local slot at a given (positive)
// offset below the frame pointer.
func Slot(offset uint) Memory {
	return Memory{offset}
}

func (m Memory) isOperand() {}

func (m Memory) String() string {
	return fmt.Sprintf("DWORD PTR [rbp-%d]", m.Offset)
}
