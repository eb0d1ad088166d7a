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

// Condition determines when a conditional jump is taken, based on the flags
// set by the most recent comparison.
type Condition uint8

const (
	// ALWAYS indicates an unconditional jump.
	ALWAYS Condition = iota
	// EQUAL jumps if the comparison found both operands equal.
	EQUAL
	// GREATER jumps if the left operand was (signed) greater than the right.
	GREATER
	// GREATER_EQUAL jumps if the left operand was (signed) greater than or
	// equal to the right.
	GREATER_EQUAL
)

func (c Condition) mnemonic() string {
	switch c {
	case EQUAL:
		return "je"
	case GREATER:
		return "jg"
	case GREATER_EQUAL:
		return "jge"
	default:
		return "jmp"
	}
}

// Jmp provides a (possibly conditional) branching instruction to a given
// label.
type Jmp struct {
	Condition Condition
	Target    Label
}

// Goto constructs an unconditional jump.
func Goto(target Label) *Jmp {
	return &Jmp{ALWAYS, target}
}

// JumpIf constructs a conditional jump.
func JumpIf(cond Condition, target Label) *Jmp {
	return &Jmp{cond, target}
}

// Targets implementation for Instruction interface.
func (p *Jmp) Targets() []Label {
	return []Label{p.Target}
}

func (p *Jmp) String() string {
	return fmt.Sprintf("    %s %s", p.Condition.mnemonic(), p.Target)
}
