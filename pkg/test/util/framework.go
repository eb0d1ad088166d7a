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
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-lilc/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the lil test files and their expected outputs (or errors) are found.
const TestDir = "../../testdata"

// SOURCE_EXT is the extension of lil source files.
const SOURCE_EXT = "lil"

// ASSEMBLY_EXT is the extension of expected assembly files.
const ASSEMBLY_EXT = "s"

// ERRORS_EXT is the extension of expected error files.
const ERRORS_EXT = "err"

// TestFile determines the path of a given test file, relative to the package
// being tested.
func TestFile(test, ext string) string {
	return fmt.Sprintf("%s/%s.%s", TestDir, test, ext)
}

func readSourceFile(t *testing.T, filename string) *source.File {
	// Read source file
	bytes, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	// Package up as source file
	return source.NewSourceFile(filename, bytes)
}
