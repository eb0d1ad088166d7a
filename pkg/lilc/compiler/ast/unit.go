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

import (
	"github.com/consensys/go-lilc/pkg/util/collection/pool"
	"github.com/consensys/go-lilc/pkg/util/source"
)

// Unit holds everything shared between the stages of a single compilation:
// the source file being compiled, the identifier interner and the arena
// owning all expressions.  A unit is constructed once per source file, and is
// never shared between compilations.
type Unit struct {
	srcfile *source.File
	symbols *pool.StringIndex[Symbol]
	arena   *Arena
	// Maps expressions (ExprId) and declarations (DeclId) back to the source
	// file.
	srcmap *source.Map[any]
}

// NewUnit constructs a fresh compilation unit for a given source file.
func NewUnit(srcfile *source.File) *Unit {
	return &Unit{
		srcfile: srcfile,
		symbols: pool.NewStringIndex[Symbol](),
		arena:   NewArena(),
		srcmap:  source.NewSourceMap[any](srcfile),
	}
}

// Source returns the source file being compiled.
func (p *Unit) Source() *source.File {
	return p.srcfile
}

// Arena returns the arena owning this unit's expressions.
func (p *Unit) Arena() *Arena {
	return p.arena
}

// SourceMap returns the mapping from expressions and declarations to their
// spans in the source file.
func (p *Unit) SourceMap() *source.Map[any] {
	return p.srcmap
}

// Intern returns the symbol for a given identifier.
func (p *Unit) Intern(name string) Symbol {
	return p.symbols.Put(name)
}

// Name returns the identifier text for a given symbol, or false if the symbol
// was not issued by this unit.
func (p *Unit) Name(symbol Symbol) (string, bool) {
	return p.symbols.Get(symbol)
}

// SyntaxError constructs a syntax error for a given expression (ExprId) or
// declaration (DeclId) of this unit.
func (p *Unit) SyntaxError(node any, msg string) source.SyntaxError {
	return *p.srcmap.SyntaxError(node, msg)
}
