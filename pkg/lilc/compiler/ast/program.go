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

// DeclId identifies a declaration within a program, by its position.
type DeclId uint32

// Declaration binds a top-level name to a value.  In practice, the value is
// always a function.
type Declaration struct {
	Name  Symbol
	Value ExprId
}

// Program is an ordered sequence of top-level declarations, in the order they
// appeared in the source file.
type Program struct {
	Declarations []Declaration
}

// Function returns the function bound by the given declaration, or false if
// the declaration binds something other than a function.
func (p *Program) Function(arena *Arena, id DeclId) (*Function, bool) {
	var decl = p.Declarations[id]
	//
	if expr, ok := arena.Get(decl.Value); ok {
		fn, ok := expr.(*Function)
		return fn, ok
	}
	//
	return nil, false
}
