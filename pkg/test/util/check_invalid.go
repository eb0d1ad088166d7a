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
	"errors"
	"fmt"
	"testing"

	"github.com/consensys/go-lilc/pkg/util/source"
)

// ErrorCompiler compiles a source file and produces zero or more errors.
type ErrorCompiler func(source.File) []source.SyntaxError

// CheckInvalid checks that a given source file fails to compile, producing
// exactly the errors listed in its sidecar file.
// nolint
func CheckInvalid(t *testing.T, test string, compiler ErrorCompiler) {
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, TestFile(test, SOURCE_EXT))
	errfile := readSourceFile(t, TestFile(test, ERRORS_EXT))
	// Compile source file to produce errors
	actual := compiler(*srcfile)
	// Extract expected errors for comparison
	expected, errs := ExpectedErrors(srcfile, errfile)
	//
	if len(errs) > 0 {
		// Report any errors encountered parsing the sidecar itself.
		t.Fatal(errors.Join(errs...))
	}
	// Check program did not compile!
	checkExpectedErrors(t, srcfile, actual, expected)
}

func checkExpectedErrors(t *testing.T, srcfile *source.File, actual, expected []source.SyntaxError) {
	if len(actual) == 0 {
		t.Fatalf("Error %s should not have compiled\n", srcfile.Filename())
	} else {
		error := false
		// Construct initial message
		msg := fmt.Sprintf("Error %s\n", srcfile.Filename())
		// Pad out with what received
		for i := 0; i < max(len(actual), len(expected)); i++ {
			if i < len(actual) && i < len(expected) {
				expected := expected[i]
				actual := actual[i]
				// Check whether message OK
				if expected.Message() == actual.Message() && expected.Span() == actual.Span() {
					continue
				}
			}
			// Indicate error arose
			error = true
			// actual
			if i < len(actual) {
				msg = fmt.Sprintf("%s unexpected error %s\n", msg, errorToString(actual[i]))
			}
			// expected
			if i < len(expected) {
				msg = fmt.Sprintf("%s   expected error %s\n", msg, errorToString(expected[i]))
			}
		}
		//
		if error {
			t.Fatal(msg)
		}
	}
}

// Convert an error into a useful human readable string, in the same format
// used by the sidecar files.
func errorToString(err source.SyntaxError) string {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	//
	return fmt.Sprintf("%d:%d-%d:%s", line.Number(), 1+lineOffset, 1+lineOffset+span.Length(), err.Message())
}
