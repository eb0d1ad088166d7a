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

// Arena owns every expression of a single compilation unit.  Expressions are
// addressed by index, and are never freed individually: the arena is dropped
// as a whole once the compilation unit is finished with.  Identifier lists
// (e.g. the elements of a compound expression) are likewise copied into a
// shared backing array.
type Arena struct {
	exprs []Expr
	ids   []ExprId
}

// NewArena constructs an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc allocates a given expression into this arena, returning its
// identifier.
func (p *Arena) Alloc(expr Expr) ExprId {
	var id = ExprId(len(p.exprs))
	//
	p.exprs = append(p.exprs, expr)
	//
	return id
}

// AllocIds copies a given list of expression identifiers into the arena's
// backing storage.  The returned slice is capped, so appending to it never
// overwrites a neighbouring list.
func (p *Arena) AllocIds(ids []ExprId) []ExprId {
	if len(ids) == 0 {
		return nil
	}
	//
	var start = len(p.ids)
	//
	p.ids = append(p.ids, ids...)
	//
	return p.ids[start:len(p.ids):len(p.ids)]
}

// Get returns the expression with the given identifier.  This fails if the
// identifier was not issued by this arena.
func (p *Arena) Get(id ExprId) (Expr, bool) {
	if uint64(id) >= uint64(len(p.exprs)) {
		return nil, false
	}
	//
	return p.exprs[id], true
}

// Len returns the number of expressions allocated in this arena.
func (p *Arena) Len() uint {
	return uint(len(p.exprs))
}
