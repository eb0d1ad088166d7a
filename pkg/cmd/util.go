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
	"strings"

	"github.com/consensys/go-lilc/pkg/lilc/asm"
	"github.com/consensys/go-lilc/pkg/lilc/compiler"
	"github.com/consensys/go-lilc/pkg/util/source"
	"github.com/consensys/go-lilc/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// ReadSourceFiles reads a given set of source files, or exits if any cannot be
// read.
func ReadSourceFiles(filenames []string) []source.File {
	log.Debug(fmt.Sprintf("including source files %s", strings.Join(filenames, ", ")))
	// Read source files
	srcfiles, err := source.ReadFiles(filenames...)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return srcfiles
}

// CompileSourceFiles accepts a set of source files and compiles them into an
// assembly program.  This can result, for example, in one or more syntax
// errors, etc.
func CompileSourceFiles(filenames []string, colour bool) asm.Program {
	// Compile source files
	program, errs, err := compiler.Compile(ReadSourceFiles(filenames)...)
	// Check for errors
	exitOnSyntaxErrors(errs, colour)
	//
	if err != nil {
		// Internal compiler errors indicate a bug, rather than a problem with
		// the source files.
		log.Error(err.Error())
		os.Exit(5)
	}
	// Done
	return program
}

// Report any syntax errors and, if there were any, exit.
func exitOnSyntaxErrors(errs []source.SyntaxError, colour bool) {
	if len(errs) == 0 {
		return
	}
	// Only highlight when writing to a terminal
	colour = colour && termio.IsTerminal(os.Stdout)
	// Report errors
	for _, err := range errs {
		printSyntaxError(&err, colour)
	}
	// Fail
	os.Exit(4)
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError, colour bool) {
	fmt.Print(formatSyntaxError(err, colour))
}

func formatSyntaxError(err *source.SyntaxError, colour bool) string {
	var (
		builder    strings.Builder
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		// Calculate length (ensures don't overflow line)
		length = max(1, min(line.Length()-lineOffset, span.Length()))
		msg    = err.Message()
		caret  = strings.Repeat("^", length)
	)
	//
	if colour {
		msg = termio.NewAnsiEscape().Bold().Apply(msg)
		caret = termio.NewAnsiEscape().FgColour(termio.TERM_RED).Apply(caret)
	}
	// Print error + line number
	builder.WriteString(fmt.Sprintf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, msg))
	// Print separator line
	builder.WriteString("\n")
	// Print line
	builder.WriteString(line.String())
	builder.WriteString("\n")
	// Print indent (todo: account for tabs)
	builder.WriteString(strings.Repeat(" ", lineOffset))
	// Print highlight
	builder.WriteString(caret)
	builder.WriteString("\n")
	//
	return builder.String()
}
