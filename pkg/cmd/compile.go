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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file1.lil file2.lil ...",
	Short: "compile lil source files into assembly.",
	Long: `Compile a given set of source file(s) into a single x86-64 assembly file.
Each file is compiled separately, though functions declared in one file can be
called from any other.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCompileCmd,
}

func runCompileCmd(cmd *cobra.Command, args []string) {
	var (
		output  = GetString(cmd, "output")
		prelude = GetFlag(cmd, "prelude")
		text    strings.Builder
	)
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	// Compile source files, or print errors
	program := CompileSourceFiles(args, !GetFlag(cmd, "no-colour"))
	//
	if prelude {
		directives := program.Prelude()
		text.WriteString(directives.String())
	}
	//
	text.WriteString(program.String())
	//
	if output == "" {
		fmt.Print(text.String())
	} else if err := os.WriteFile(output, []byte(text.String()), 0644); err != nil {
		fmt.Println(err)
		os.Exit(2)
	} else {
		log.Debugf("wrote %s", output)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "write assembly to file (rather than stdout)")
	compileCmd.Flags().Bool("prelude", false, "include directives required by GNU as")
}
