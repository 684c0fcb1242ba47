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

package errors

import (
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/xerrors"
)

// InternalError is an implementation error, e.g an unreachable code path (UnreachableError).
// A link run should never produce an InternalError in an ideal world.
//
// InternalError s must always be thrown and not be caught (recovered),
// i.e. be propagated up the call stack.
type InternalError interface {
	error
	IsInternalError()
}

// UserError is an error caused by the input of a link run,
// e.g. inconsistent transformation data produced upstream.
type UserError interface {
	error
	IsUserError()
}

// UnreachableError

// UnreachableError is an internal error in the linker which should have never occurred
// due to a programming error in the linker.
//
// NOTE: this error is not used for errors caused by malformed input.
// For those, see linker/errors.go
type UnreachableError struct {
	Stack []byte
}

var _ InternalError = UnreachableError{}

func (e UnreachableError) Error() string {
	return fmt.Sprintf("unreachable\n%s", e.Stack)
}

func (UnreachableError) IsInternalError() {}

func NewUnreachableError() *UnreachableError {
	return &UnreachableError{Stack: debug.Stack()}
}

// SecondaryError is an interface for errors that provide a secondary error message
type SecondaryError interface {
	SecondaryError() string
}

// ErrorNotes is an interface for errors that provide notes
type ErrorNotes interface {
	ErrorNotes() []ErrorNote
}

type ErrorNote interface {
	Message() string
}

// ParentError is an error that contains one or more child errors.
type ParentError interface {
	error
	ChildErrors() []error
}

// UnexpectedError is the default implementation of InternalError interface.
// It's a generic error that wraps an implementation error.
type UnexpectedError struct {
	Err error
}

var _ InternalError = UnexpectedError{}

func NewUnexpectedError(message string, arg ...any) UnexpectedError {
	return UnexpectedError{
		Err: xerrors.Errorf(message, arg...),
	}
}

func NewUnexpectedErrorFromCause(err error) UnexpectedError {
	return UnexpectedError{
		Err: err,
	}
}

func (e UnexpectedError) Unwrap() error {
	return e.Err
}

func (e UnexpectedError) Error() string {
	return e.Err.Error()
}

func (UnexpectedError) IsInternalError() {}

// DefaultUserError is the default implementation of UserError interface.
// It's a generic error that wraps a user error.
type DefaultUserError struct {
	Err error
}

var _ UserError = DefaultUserError{}

func NewDefaultUserError(message string, arg ...any) DefaultUserError {
	return DefaultUserError{
		Err: xerrors.Errorf(message, arg...),
	}
}

func (e DefaultUserError) Unwrap() error {
	return e.Err
}

func (e DefaultUserError) Error() string {
	return e.Err.Error()
}

func (DefaultUserError) IsUserError() {}

// IsInternal returns true if the given error, or any error it wraps,
// is an InternalError.
func IsInternal(err error) bool {
	var internalErr InternalError
	return xerrors.As(err, &internalErr)
}

// IsUser returns true if the given error, or any error it wraps,
// is a UserError.
func IsUser(err error) bool {
	var userErr UserError
	return xerrors.As(err, &userErr)
}

// Messages returns the message of the error and, if present,
// its secondary message and notes, one per line.
func Messages(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())

	if secondaryError, ok := err.(SecondaryError); ok {
		secondary := secondaryError.SecondaryError()
		if secondary != "" {
			b.WriteString("\n  ")
			b.WriteString(secondary)
		}
	}

	if errorNotes, ok := err.(ErrorNotes); ok {
		for _, note := range errorNotes.ErrorNotes() {
			b.WriteString("\n  note: ")
			b.WriteString(note.Message())
		}
	}

	return b.String()
}
