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
	"strconv"
	"strings"

	"github.com/consensys/go-lilc/pkg/util/source"
)

// ExpectedErrors reads the errors expected for a given source file from its
// sidecar file.  Each line of the sidecar describes one error, in the form
// "line:start-end:message", where columns are numbered from 1 and the end
// column is exclusive.
func ExpectedErrors(srcfile *source.File, errfile *source.File) ([]source.SyntaxError, []error) {
	return ExtractAttributes(errfile, expectedError(srcfile))
}

func expectedError(srcfile *source.File) Attribute[source.SyntaxError] {
	var lines = srcfile.Lines()
	//
	return func(lineno int, errlines []source.Line) (bool, source.SyntaxError, error) {
		line, start, end, msg, err := parseExpectedErrorLine(errlines[lineno].String())
		//
		if err == nil {
			span, err := determineFileSpan(line, start, end, lines)
			// Done
			return true, *srcfile.SyntaxError(span, msg), err
		}
		//
		return true, source.SyntaxError{}, err
	}
}

func parseExpectedErrorLine(contents string) (line, start, end int, msg string, err error) {
	var splits = strings.Split(contents, ":")
	//
	if len(splits) < 3 {
		return 0, 0, 0, "", fmt.Errorf("malformed expected error \"%s\", should be e.g. \"X:Y-Z:msg\"", contents)
	}
	// Parse line number
	if line, err = strconv.Atoi(splits[0]); err != nil {
		return 0, 0, 0, "", fmt.Errorf("invalid span \"%s:%s\" (%s)", splits[0], splits[1], err.Error())
	} else if line == 0 {
		return 0, 0, 0, "", fmt.Errorf("invalid span \"%s:%s\" (lines numbered from 1)", splits[0], splits[1])
	}
	// Parse split
	if start, end, err = parseExpectedErrorSpan(splits[1]); err != nil {
		return 0, 0, 0, "", err
	}
	//
	msg = strings.Join(splits[2:], ":")
	//
	return line, start, end, msg, nil
}

func parseExpectedErrorSpan(spanStr string) (start, end int, err error) {
	var spanSplits = strings.Split(spanStr, "-")
	//
	if len(spanSplits) != 2 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (malformed, should be X-Y)", spanStr)
	}
	// Parse span start as integer
	if start, err = strconv.Atoi(spanSplits[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", spanStr, err.Error())
	} else if start == 0 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (columns numbered from 1)", spanStr)
	}
	// Parse span end as integer
	if end, err = strconv.Atoi(spanSplits[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", spanStr, err.Error())
	} else if end < start {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (end before start)", spanStr)
	}
	//
	return start, end, err
}

// Determine the span that the the given line and columns correspond to.  We
// need the line offsets so that the computed span includes the starting
// offset of the relevant line.  A span may finish just after the end of its
// line, which is where errors at the end of the file are reported.
func determineFileSpan(lineno, start, end int, lines []source.Line) (source.Span, error) {
	// Sanity checks
	if lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (non-existent line)", lineno, start, end)
	}
	//
	line := lines[lineno-1]
	// Subtract one from each since column numbering starts from 1.
	start--
	end--
	//
	if end > line.Length()+1 {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (overflows to following line)", lineno, start, end)
	}
	// Add line offset
	start += line.Start()
	end += line.Start()
	//
	return source.NewSpan(start, end), nil
}
