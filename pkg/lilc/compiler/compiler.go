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
package compiler

import (
	"slices"

	"github.com/consensys/go-lilc/pkg/lilc/asm"
	"github.com/consensys/go-lilc/pkg/lilc/codegen"
	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
	"github.com/consensys/go-lilc/pkg/lilc/compiler/parser"
	"github.com/consensys/go-lilc/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Compile takes a given set of source files, and compiles them into a single
// assembly program.  Each file is a separate compilation unit, though
// functions declared in one file may be called from any other.  Syntax errors
// from all files are reported together, in which case no code is generated.
// Otherwise, an error can only arise from an internal inconsistency of the
// compiler itself (i.e. a *codegen.InternalError).
func Compile(files ...source.File) (asm.Program, []source.SyntaxError, error) {
	var (
		units    []*ast.Unit
		programs []ast.Program
		errors   []source.SyntaxError
		globals  []string
	)
	// Parse each file in turn.
	for i := range files {
		unit, program, errs := parseFile(&files[i])
		//
		units = append(units, unit)
		programs = append(programs, program)
		errors = append(errors, errs...)
	}
	//
	if len(errors) != 0 {
		return asm.Program{}, errors, nil
	}
	// Collect function names, checking for duplicates between files
	for i, unit := range units {
		names := declarationNames(unit, programs[i])
		//
		for j, name := range names {
			if slices.Contains(globals, name) {
				errors = append(errors, unit.SyntaxError(ast.DeclId(j), "duplicate declaration"))
			}
		}
		//
		globals = append(globals, names...)
	}
	// Well-formedness checks
	for i, unit := range units {
		errors = append(errors, Validate(unit, programs[i], globals...)...)
	}
	//
	if len(errors) != 0 {
		return asm.Program{}, errors, nil
	}
	//
	return generate(units, programs)
}

// Parse a single file into a fresh compilation unit.
func parseFile(srcfile *source.File) (*ast.Unit, ast.Program, []source.SyntaxError) {
	var unit = ast.NewUnit(srcfile)
	//
	log.Debugf("compiling %s", srcfile.Filename())
	// Convert source file into tokens
	tokens, errs := parser.Lex(srcfile)
	//
	if len(errs) != 0 {
		return unit, ast.Program{}, errs
	}
	//
	log.Debugf("%s: %d tokens", srcfile.Filename(), len(tokens))
	//
	program, errs := parser.NewParser(unit, tokens).Parse()
	//
	if len(errs) == 0 {
		log.Debugf("%s: %d declarations, %d expressions", srcfile.Filename(), len(program.Declarations),
			unit.Arena().Len())
	}
	//
	return unit, program, errs
}

func generate(units []*ast.Unit, programs []ast.Program) (asm.Program, []source.SyntaxError, error) {
	var (
		result    asm.Program
		generator = codegen.NewGenerator()
	)
	//
	for i, unit := range units {
		code, err := generator.Generate(unit, programs[i])
		//
		if err != nil {
			return asm.Program{}, nil, err
		}
		//
		log.Debugf("%s: %d instructions", unit.Source().Filename(), code.Len())
		//
		result.Concat(code)
	}
	//
	return result, nil, nil
}

func declarationNames(unit *ast.Unit, program ast.Program) []string {
	var names []string
	//
	for _, decl := range program.Declarations {
		name, _ := unit.Name(decl.Name)
		names = append(names, name)
	}
	//
	return names
}
