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
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-lilc/pkg/lilc/compiler/ast"
	"github.com/consensys/go-lilc/pkg/lilc/compiler/parser"
	"github.com/consensys/go-lilc/pkg/util/source"
	"github.com/consensys/go-lilc/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Width used when pretty printing S-Expressions.
const debugWidth = 80

var debugCmd = &cobra.Command{
	Use:   "debug [flags] file.lil",
	Short: "print internal representations of a lil source file.",
	Long: `Print the tokens and/or the abstract syntax tree of a given source file.
The abstract syntax tree is printed as an S-Expression.`,
	Args: cobra.ExactArgs(1),
	Run:  runDebugCmd,
}

func runDebugCmd(cmd *cobra.Command, args []string) {
	var (
		colour   = !GetFlag(cmd, "no-colour")
		tokens   = GetFlag(cmd, "tokens")
		tree     = GetFlag(cmd, "ast")
		srcfiles = ReadSourceFiles(args)
		srcfile  = &srcfiles[0]
	)
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	if !tokens && !tree {
		fmt.Println("nothing to do (use --tokens and/or --ast)")
		os.Exit(2)
	}
	//
	if tokens {
		printTokens(srcfile, colour)
	}
	//
	if tree {
		unit := ast.NewUnit(srcfile)
		program, errs := parser.Parse(unit)
		//
		exitOnSyntaxErrors(errs, colour)
		//
		fmt.Println(sexp.Pretty(ast.ToSExp(unit, program), debugWidth))
	}
}

func printTokens(srcfile *source.File, colour bool) {
	tokens, errs := parser.Lex(srcfile)
	//
	exitOnSyntaxErrors(errs, colour)
	//
	for _, token := range tokens {
		fmt.Printf("%s\t%s\t%q\n", token.Span.String(), parser.Describe(token.Kind), srcfile.Text(token.Span))
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().Bool("tokens", false, "print tokens")
	debugCmd.Flags().Bool("ast", false, "print abstract syntax tree")
}
