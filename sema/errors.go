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

package sema

import (
	"fmt"
	"strings"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/errors"
)

// ModelError is returned when the declaration model of a compilation unit
// cannot be built. It contains one or more errors.
type ModelError struct {
	Path   string
	Errors []error
}

var _ errors.UserError = &ModelError{}
var _ errors.ParentError = &ModelError{}

func (*ModelError) IsUserError() {}

func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("Checking failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteByte(':')
	for _, err := range e.Errors {
		b.WriteString("\n")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ModelError) ChildErrors() []error {
	return e.Errors
}

func (e *ModelError) Unwrap() []error {
	return e.Errors
}

// RedeclarationError

type RedeclarationError struct {
	Name        string
	Pos         ast.Position
	PreviousPos ast.Position
}

var _ errors.UserError = &RedeclarationError{}
var _ errors.ErrorNotes = &RedeclarationError{}

func (*RedeclarationError) IsUserError() {}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf(
		"cannot redeclare `%s`: it is already declared",
		e.Name,
	)
}

func (e *RedeclarationError) StartPosition() ast.Position {
	return e.Pos
}

func (e *RedeclarationError) EndPosition() ast.Position {
	return e.Pos
}

func (e *RedeclarationError) ErrorNotes() []errors.ErrorNote {
	if e.PreviousPos.Line < 1 {
		return nil
	}

	return []errors.ErrorNote{
		RedeclarationNote{
			Range: ast.NewRange(
				e.PreviousPos,
				e.PreviousPos,
			),
		},
	}
}

// RedeclarationNote

type RedeclarationNote struct {
	ast.Range
}

func (n RedeclarationNote) Message() string {
	return "previously declared here"
}
