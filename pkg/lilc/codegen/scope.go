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
	"github.com/consensys/go-lilc/pkg/lilc/asm"
	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
)

// Scope captures the bindings introduced by a single compound expression (or
// loop), along with the jump targets of a loop (if this scope belongs to one).
type Scope struct {
	// Maps each bound name to its offset below the frame pointer.
	bindings map[ast.Symbol]uint
	// Target of "break", or empty if this is not a loop scope.
	exit asm.Label
	// Target of "continue", or empty if this is not a loop scope.
	next asm.Label
}

func newScope() *Scope {
	return &Scope{bindings: make(map[ast.Symbol]uint)}
}

func newLoopScope(exit asm.Label, next asm.Label) *Scope {
	return &Scope{make(map[ast.Symbol]uint), exit, next}
}

// IsLoop checks whether or not this scope belongs to a loop.
func (p *Scope) IsLoop() bool {
	return p.exit != ""
}

// Has checks whether a given name is bound in this scope.
func (p *Scope) Has(name ast.Symbol) bool {
	_, ok := p.bindings[name]
	return ok
}
