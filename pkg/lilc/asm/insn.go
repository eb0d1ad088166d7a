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

// Instruction represents a single line of assembly, which is either a real
// machine instruction, a label definition or an assembler directive.
type Instruction interface {
	fmt.Stringer
	// Targets returns the labels this instruction may transfer control to.
	Targets() []Label
}

// Label identifies a jump target.  Function labels use the name of the
// function, whilst local labels are numbered.
type Label string

// LocalLabel constructs the local label with a given number.
func LocalLabel(n uint) Label {
	return Label(fmt.Sprintf(".L%d", n))
}

// IsLocal checks whether this is a local label (i.e. one private to the
// assembly file).
func (l Label) IsLocal() bool {
	return strings.HasPrefix(string(l), ".")
}

// Def is the definition of a label, which marks the position of the next
// instruction.
type Def struct {
	Label Label
}

// Targets implementation for Instruction interface.
func (p *Def) Targets() []Label { return nil }

func (p *Def) String() string {
	return fmt.Sprintf("%s:", p.Label)
}

// Directive is an assembler directive (e.g. ".globl main").
type Directive struct {
	Text string
}

// Targets implementation for Instruction interface.
func (p *Directive) Targets() []Label { return nil }

func (p *Directive) String() string {
	return p.Text
}

// Push a 64-bit register onto the stack.
type Push struct {
	Register Register
}

// Targets implementation for Instruction interface.
func (p *Push) Targets() []Label { return nil }

func (p *Push) String() string {
	return fmt.Sprintf("    push %s", p.Register)
}

// Pop a 64-bit register from the stack.
type Pop struct {
	Register Register
}

// Targets implementation for Instruction interface.
func (p *Pop) Targets() []Label { return nil }

func (p *Pop) String() string {
	return fmt.Sprintf("    pop %s", p.Register)
}

// Call a function by name.
type Call struct {
	Target Label
}

// Targets implementation for Instruction interface.  Calls are not
// considered jumps, since the target is resolved by the linker.
func (p *Call) Targets() []Label { return nil }

func (p *Call) String() string {
	return fmt.Sprintf("    call %s", p.Target)
}

// Ret signals a return from the enclosing function.
type Ret struct {
	// dummy is included to force Ret structs to be stored in the heap.
	//nolint
	dummy uint
}

// Targets implementation for Instruction interface.
func (p *Ret) Targets() []Label { return nil }

func (p *Ret) String() string {
	return "    ret"
}
