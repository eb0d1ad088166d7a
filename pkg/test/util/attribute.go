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
	"github.com/consensys/go-lilc/pkg/util/source"
)

// Attribute provides a generic mechanism for extracting items from the lines
// of a file.  Given a line number, it either matches the line (producing an
// item or an error) or ignores it.
type Attribute[T any] func(int, []source.Line) (bool, T, error)

// ExtractAttributes extracts all items from the non-blank lines of a file,
// using the first attribute to match each line.
func ExtractAttributes[T any](file *source.File, attributes ...Attribute[T]) ([]T, []error) {
	var (
		// Calculate the character offset of each line
		lines = file.Lines()
		// Now construct items
		items []T
		//
		errors []error
	)
	//
	for i := range lines {
		if lines[i].Length() == 0 {
			continue
		}
		//
		for _, attribute := range attributes {
			matched, item, err := attribute(i, lines)
			//
			if err != nil {
				errors = append(errors, err)
			} else if matched {
				items = append(items, item)
			}
			//
			if matched || err != nil {
				break
			}
		}
	}
	//
	return items, errors
}
