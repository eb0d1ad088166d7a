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
	"github.com/consensys/go-lilc/pkg/util/collection/stack"
)

// SLOT_SIZE determines the number of bytes reserved on the stack for each
// binding.
const SLOT_SIZE = 4

// Generate assembly for a given program.  Local labels are numbered from zero.
func Generate(unit *ast.Unit, program ast.Program) (asm.Program, error) {
	return NewGenerator().Generate(unit, program)
}

// Generator lowers programs into assembly.  A single generator can be used
// for several compilation units, in which case local labels remain unique
// across all of them.
type Generator struct {
	unit *ast.Unit
	// Number of local labels allocated so far.
	labels uint
	// Lexical scopes of the function being lowered (innermost on top).
	scopes *stack.Stack[*Scope]
	// Number of bytes of the current function's frame allocated so far.
	frame uint
	// Instructions of the function being lowered.
	out asm.Program
}

// NewGenerator constructs a fresh generator.
func NewGenerator() *Generator {
	return &Generator{scopes: stack.NewStack[*Scope]()}
}

// Generate assembly for a given program, whose expressions are owned by the
// given unit.  Declarations are lowered in order, and each begins with a label
// bearing its name.
func (g *Generator) Generate(unit *ast.Unit, program ast.Program) (asm.Program, error) {
	var result asm.Program
	//
	g.unit = unit
	//
	for i, decl := range program.Declarations {
		name, err := g.name(decl.Name)
		//
		if err != nil {
			return asm.Program{}, err
		}
		//
		fn, ok := program.Function(unit.Arena(), ast.DeclId(i))
		//
		if !ok {
			return asm.Program{}, internalError("declaration %s is not a function", name)
		}
		//
		code, err := g.generateFunction(name, fn)
		//
		if err != nil {
			return asm.Program{}, err
		}
		//
		result.Concat(code)
	}
	// Sanity check jumps
	if err := result.Check(); err != nil {
		return asm.Program{}, internalError("%s", err.Error())
	}
	//
	return result, nil
}

// Lower a function into a labelled block with a prologue establishing the
// frame, and a matching epilogue.  The frame size is known only after the body
// has been lowered.
func (g *Generator) generateFunction(name string, fn *ast.Function) (asm.Program, error) {
	var code asm.Program
	// Reset function state
	g.out = asm.Program{}
	g.frame = 0
	// Lower body
	if err := g.lowerCompound(fn.Body); err != nil {
		return code, err
	}
	// Prologue
	code.Append(&asm.Def{Label: asm.Label(name)}, &asm.Push{Register: asm.RBP}, asm.Mov(asm.RBP, asm.RSP))
	//
	if g.frame > 0 {
		code.Append(asm.Sub(asm.RSP, asm.Immediate(g.frame)))
	}
	// Body
	code.Concat(g.out)
	// Epilogue
	if g.frame > 0 {
		code.Append(asm.Add(asm.RSP, asm.Immediate(g.frame)))
	}
	//
	code.Append(&asm.Pop{Register: asm.RBP}, &asm.Ret{})
	//
	return code, nil
}

// Lower an expression such that its value (if any) ends up in eax.
func (g *Generator) lower(id ast.ExprId) error {
	expr, ok := g.unit.Arena().Get(id)
	//
	if !ok {
		return internalError("invalid expression %d", id)
	}
	//
	switch e := expr.(type) {
	case *ast.Constant:
		g.emit(asm.Mov(asm.EAX, asm.Immediate(e.Value)))
	case *ast.BindRef:
		return g.lowerBindRef(e)
	case *ast.Call:
		name, err := g.name(e.Name)
		if err != nil {
			return err
		}
		//
		g.emit(&asm.Call{Target: asm.Label(name)})
	case *ast.Break:
		return g.lowerJump("break", func(s *Scope) asm.Label { return s.exit })
	case *ast.Continue:
		return g.lowerJump("continue", func(s *Scope) asm.Label { return s.next })
	case *ast.BindDef:
		if err := g.lower(e.Value); err != nil {
			return err
		}
		//
		g.bind(e.Name)
	case *ast.Semi:
		return g.lower(e.Expr)
	case *ast.Compound:
		return g.lowerCompound(*e)
	case *ast.If:
		return g.lowerIf(e)
	case *ast.For:
		return g.lowerFor(e)
	case *ast.Function:
		return internalError("nested function")
	default:
		return internalError("unknown expression %T", expr)
	}
	//
	return nil
}

func (g *Generator) lowerCompound(compound ast.Compound) error {
	g.scopes.Push(newScope())
	//
	defer g.scopes.Pop()
	//
	for _, id := range compound.Exprs {
		if err := g.lower(id); err != nil {
			return err
		}
	}
	//
	return nil
}

func (g *Generator) lowerBindRef(e *ast.BindRef) error {
	scope, _, ok := g.scopes.Find(func(s *Scope) bool { return s.Has(e.Name) })
	//
	if !ok {
		name, _ := g.unit.Name(e.Name)
		return internalError("unresolved binding %s", name)
	}
	//
	g.emit(asm.Mov(asm.EAX, asm.Slot(scope.bindings[e.Name])))
	//
	return nil
}

// Lower break or continue into a jump to the corresponding label of the
// innermost enclosing loop.
func (g *Generator) lowerJump(kind string, target func(*Scope) asm.Label) error {
	scope, _, ok := g.scopes.Find((*Scope).IsLoop)
	//
	if !ok {
		return internalError("%s outside of loop", kind)
	}
	//
	g.emit(asm.Goto(target(scope)))
	//
	return nil
}

// Lower an if-else chain.  Each guarded branch jumps to the next branch when
// its condition is zero.  When there are subsequent branches, each guarded
// branch finishes with a jump to the exit label.
func (g *Generator) lowerIf(e *ast.If) error {
	var (
		exits []*asm.Jmp
		chain = len(e.ElseIfs) > 0 || e.Else != nil
	)
	//
	next, err := g.lowerGuardedBranch(e.Cond, e.Then)
	if err != nil {
		return err
	}
	//
	if chain {
		exits = append(exits, g.emitExitJump())
	}
	//
	for _, branch := range e.ElseIfs {
		g.emit(&asm.Def{Label: next})
		//
		if next, err = g.lowerGuardedBranch(branch.Cond, branch.Body); err != nil {
			return err
		}
		//
		exits = append(exits, g.emitExitJump())
	}
	//
	if e.Else != nil {
		g.emit(&asm.Def{Label: next})
		// Exit label is allocated before lowering the final branch
		next = g.freshLabel()
		//
		if err := g.lowerCompound(*e.Else); err != nil {
			return err
		}
	}
	// Patch exit jumps
	for _, jmp := range exits {
		jmp.Target = next
	}
	//
	g.emit(&asm.Def{Label: next})
	//
	return nil
}

func (g *Generator) lowerGuardedBranch(cond ast.ExprId, body ast.Compound) (asm.Label, error) {
	if err := g.lower(cond); err != nil {
		return "", err
	}
	//
	g.emit(asm.Cmp(asm.EAX, asm.Immediate(0)))
	// Allocate label before lowering branch
	next := g.freshLabel()
	//
	g.emit(asm.JumpIf(asm.EQUAL, next))
	//
	return next, g.lowerCompound(body)
}

// Emit an exit jump whose target is not yet known.
func (g *Generator) emitExitJump() *asm.Jmp {
	jmp := asm.Goto("")
	g.emit(jmp)
	//
	return jmp
}

func (g *Generator) lowerFor(e *ast.For) error {
	var (
		start = g.freshLabel()
		exit  = g.freshLabel()
	)
	//
	switch it := e.Iteration.(type) {
	case nil:
		return g.lowerLoop(start, exit, start, func() error { return nil }, e.Body)
	case *ast.While:
		return g.lowerLoop(start, exit, start, func() error {
			if err := g.lower(it.Cond); err != nil {
				return err
			}
			//
			g.emit(asm.Cmp(asm.EAX, asm.Immediate(0)))
			g.emit(asm.JumpIf(asm.EQUAL, exit))
			//
			return nil
		}, e.Body)
	case *ast.Range:
		return g.lowerRange(start, exit, it, e.Body)
	default:
		return internalError("unknown iteration %T", it)
	}
}

// Lower a loop whose header (i.e. the code between the start label and the
// body) is generated by a given function.
func (g *Generator) lowerLoop(start, exit, next asm.Label, header func() error, body ast.Compound) error {
	g.scopes.Push(newLoopScope(exit, next))
	//
	defer g.scopes.Pop()
	//
	g.emit(&asm.Def{Label: start})
	//
	if err := header(); err != nil {
		return err
	} else if err := g.lowerCompound(body); err != nil {
		return err
	}
	//
	g.emit(asm.Goto(start))
	g.emit(&asm.Def{Label: exit})
	//
	return nil
}

// Lower a counted loop.  The counter is bound within the loop's own scope, and
// is incremented at the step label (which is the target of continue).
func (g *Generator) lowerRange(start, exit asm.Label, it *ast.Range, body ast.Compound) error {
	var (
		step = g.freshLabel()
		cond = asm.JumpIf(asm.GREATER_EQUAL, exit)
		end  asm.Operand
	)
	//
	if it.Kind == ast.INCLUSIVE_RANGE {
		cond = asm.JumpIf(asm.GREATER, exit)
	}
	//
	g.scopes.Push(newLoopScope(exit, step))
	//
	defer g.scopes.Pop()
	// Initialise counter
	if err := g.lower(it.Start); err != nil {
		return err
	}
	//
	counter := asm.Slot(g.bind(it.Counter))
	// Determine end operand
	if expr, ok := g.unit.Arena().Get(it.End); !ok {
		return internalError("invalid expression %d", it.End)
	} else if c, ok := expr.(*ast.Constant); ok {
		end = asm.Immediate(c.Value)
	} else if err := g.lower(it.End); err != nil {
		return err
	} else {
		end = asm.Slot(g.allocate())
		g.emit(asm.Mov(end, asm.EAX))
	}
	// Loop header
	g.emit(&asm.Def{Label: start})
	g.emit(asm.Mov(asm.EAX, counter))
	g.emit(asm.Cmp(asm.EAX, end))
	g.emit(cond)
	// Loop body
	if err := g.lowerCompound(body); err != nil {
		return err
	}
	// Increment counter
	g.emit(&asm.Def{Label: step})
	g.emit(asm.Mov(asm.EAX, counter))
	g.emit(asm.Add(asm.EAX, asm.Immediate(1)))
	g.emit(asm.Mov(counter, asm.EAX))
	g.emit(asm.Goto(start))
	g.emit(&asm.Def{Label: exit})
	//
	return nil
}

// Bind a name to the value in eax, using a fresh slot in the innermost scope.
func (g *Generator) bind(name ast.Symbol) uint {
	offset := g.allocate()
	//
	g.scopes.Peek(0).bindings[name] = offset
	g.emit(asm.Mov(asm.Slot(offset), asm.EAX))
	//
	return offset
}

// Allocate a fresh slot in the current frame.  Slots are never reclaimed
// within a function.
func (g *Generator) allocate() uint {
	g.frame += SLOT_SIZE
	return g.frame
}

func (g *Generator) freshLabel() asm.Label {
	label := asm.LocalLabel(g.labels)
	g.labels++
	//
	return label
}

func (g *Generator) emit(insn asm.Instruction) {
	g.out.Append(insn)
}

func (g *Generator) name(symbol ast.Symbol) (string, error) {
	if name, ok := g.unit.Name(symbol); ok {
		return name, nil
	}
	//
	return "", internalError("unknown symbol %d", symbol)
}
