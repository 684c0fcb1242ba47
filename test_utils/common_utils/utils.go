/*
 * Aspect Linker - compile-time merging of aspect layers into member declarations
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common_utils

import (
	"strings"
	"testing"

	"github.com/k0kubun/pp/v3"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/errors"
)

func init() {
	pp.Default.SetColoringEnabled(false)
}

// TestPath is used as the default path of compilation units in tests.
const TestPath = "Test.cs"

// AssertEqualWithDiff asserts that two objects are equal.
//
// If the objects are not equal, this function prints a human-readable diff.
func AssertEqualWithDiff(t *testing.T, expected, actual any) {
	t.Helper()

	diff := pretty.Diff(expected, actual)

	if len(diff) != 0 {
		s := strings.Builder{}

		for i, d := range diff {
			if i == 0 {
				s.WriteString("diff    : ")
			} else {
				s.WriteString("          ")
			}

			s.WriteString(d)
			s.WriteString("\n")
		}

		t.Errorf(
			"Not equal: \n"+
				"expected: %s\n"+
				"actual  : %s\n\n"+
				"%s",
			pp.Sprint(expected),
			pp.Sprint(actual),
			s.String(),
		)
	}
}

// RequireError is a wrapper around require.Error which also ensures
// that the error message, the secondary message (if any),
// and the error notes' (if any) messages can be successfully produced
func RequireError(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)

	_ = err.Error()

	if hasPosition, ok := err.(ast.HasPosition); ok {
		_ = hasPosition.StartPosition()
		_ = hasPosition.EndPosition()
	}

	if hasErrorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range hasErrorNotes.ErrorNotes() {
			_ = note.Message()
		}
	}

	if hasSecondaryError, ok := err.(errors.SecondaryError); ok {
		_ = hasSecondaryError.SecondaryError()
	}

	if parentError, ok := err.(errors.ParentError); ok {
		for _, childError := range parentError.ChildErrors() {
			RequireError(t, childError)
		}
	}
}

// TrimLines removes the common leading indentation of the given text,
// and leading and trailing empty lines,
// so expected source text can be written indented in tests.
func TrimLines(text string) string {
	lines := strings.Split(text, "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineIndent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || lineIndent < indent {
			indent = lineIndent
		}
	}

	if indent > 0 {
		for i, line := range lines {
			if len(line) >= indent {
				lines[i] = line[indent:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}

	return strings.Join(lines, "\n")
}
