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

package parser

import (
	"fmt"
	"strings"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/errors"
)

// Error

type Error struct {
	Code   []byte
	Errors []error
}

var _ errors.ParentError = Error{}
var _ errors.UserError = Error{}

func (Error) IsUserError() {}

func (e Error) Error() string {
	var sb strings.Builder
	sb.WriteString("Parsing failed:")
	for _, err := range e.Errors {
		sb.WriteString("\n")
		if positioned, ok := err.(ast.HasPosition); ok {
			pos := positioned.StartPosition()
			fmt.Fprintf(&sb, "%d:%d: ", pos.Line, pos.Column)
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (e Error) ChildErrors() []error {
	return e.Errors
}

func (e Error) Unwrap() []error {
	return e.Errors
}

// ParseError

type ParseError interface {
	errors.UserError
	ast.HasPosition
	isParseError()
}

// SyntaxError

type SyntaxError struct {
	Message string
	Pos     ast.Position
}

func NewSyntaxError(pos ast.Position, message string, params ...any) *SyntaxError {
	return &SyntaxError{
		Pos:     pos,
		Message: fmt.Sprintf(message, params...),
	}
}

var _ ParseError = &SyntaxError{}

func (*SyntaxError) isParseError() {}

func (*SyntaxError) IsUserError() {}

func (e *SyntaxError) StartPosition() ast.Position {
	return e.Pos
}

func (e *SyntaxError) EndPosition() ast.Position {
	return e.Pos
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// UnexpectedTokenError

type UnexpectedTokenError struct {
	Expected string
	Got      string
	ast.Range
}

var _ ParseError = &UnexpectedTokenError{}
var _ errors.SecondaryError = &UnexpectedTokenError{}

func (*UnexpectedTokenError) isParseError() {}

func (*UnexpectedTokenError) IsUserError() {}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token: got %s", e.Got)
}

func (e *UnexpectedTokenError) SecondaryError() string {
	return fmt.Sprintf("expected %s", e.Expected)
}

// KeywordAsIdentifierError

type KeywordAsIdentifierError struct {
	Keyword string
	ast.Range
}

var _ ParseError = &KeywordAsIdentifierError{}
var _ errors.SecondaryError = &KeywordAsIdentifierError{}

func (*KeywordAsIdentifierError) isParseError() {}

func (*KeywordAsIdentifierError) IsUserError() {}

func (e *KeywordAsIdentifierError) Error() string {
	return fmt.Sprintf("expected identifier, got keyword `%s`", e.Keyword)
}

func (e *KeywordAsIdentifierError) SecondaryError() string {
	return "keywords cannot be used as identifiers"
}

// UndefinedLabelError

type UndefinedLabelError struct {
	Name string
	ast.Range
}

var _ ParseError = &UndefinedLabelError{}

func (*UndefinedLabelError) isParseError() {}

func (*UndefinedLabelError) IsUserError() {}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label `%s`", e.Name)
}
