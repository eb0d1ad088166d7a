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
package util

import (
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-lilc/pkg/util/source"
)

// AssemblyCompiler compiles a source file into assembly text, or produces
// zero or more syntax errors.
type AssemblyCompiler func(source.File) (string, []source.SyntaxError, error)

// CheckValid checks that a given source file compiles, producing exactly the
// assembly held in its sidecar file.
// nolint
func CheckValid(t *testing.T, test string, compiler AssemblyCompiler) {
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, TestFile(test, SOURCE_EXT))
	// Read expected output
	bytes, err := os.ReadFile(TestFile(test, ASSEMBLY_EXT))
	if err != nil {
		t.Fatal(err)
	}
	//
	actual, errs, err := compiler(*srcfile)
	//
	if err != nil {
		t.Fatalf("Error %s: %s", srcfile.Filename(), err.Error())
	} else if len(errs) > 0 {
		t.Fatalf("Error %s: unexpected error %s", srcfile.Filename(), errorToString(errs[0]))
	}
	//
	checkExpectedLines(t, srcfile.Filename(), strings.Split(string(bytes), "\n"), strings.Split(actual, "\n"))
}

func checkExpectedLines(t *testing.T, filename string, expected, actual []string) {
	for i := 0; i < max(len(actual), len(expected)); i++ {
		var e, a = "<missing>", "<missing>"
		//
		if i < len(expected) {
			e = expected[i]
		}
		//
		if i < len(actual) {
			a = actual[i]
		}
		//
		if e != a {
			t.Fatalf("Error %s (line %d)\n expected: %q\n   actual: %q\n", filename, i+1, e, a)
		}
	}
}
