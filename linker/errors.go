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

package linker

import (
	"fmt"
	"strings"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
)

// recoverErrors recovers a panic and passes it to onError as an error.
// Panics which are neither user errors nor internal errors
// are wrapped as internal errors.
func recoverErrors(onError func(error)) {
	if r := recover(); r != nil {
		onError(asLinkerError(r))
	}
}

func asLinkerError(r any) error {
	err, ok := r.(error)
	if !ok {
		return errors.NewUnexpectedError("%v", r)
	}
	if errors.IsInternal(err) || errors.IsUser(err) {
		return err
	}
	return errors.NewUnexpectedErrorFromCause(err)
}

// LinkError is returned when a link run fails.
// It contains one or more errors, e.g. ChainInconsistencyError.
type LinkError struct {
	Path   string
	Errors []error
}

var _ errors.UserError = &LinkError{}
var _ errors.ParentError = &LinkError{}

func (*LinkError) IsUserError() {}

func (e *LinkError) Error() string {
	var b strings.Builder
	b.WriteString("Linking failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteByte(':')
	for _, err := range e.Errors {
		b.WriteString("\n")
		b.WriteString(errors.Messages(err))
	}
	return b.String()
}

func (e *LinkError) ChildErrors() []error {
	return e.Errors
}

func (e *LinkError) Unwrap() []error {
	return e.Errors
}

// InconsistencyKind tells what is wrong with the transformations of a chain.
type InconsistencyKind uint8

const (
	InconsistencyKindUnknown InconsistencyKind = iota
	InconsistencyKindDuplicateOrdinal
	InconsistencyKindNonPositiveOrdinal
	InconsistencyKindMissingPredecessor
	InconsistencyKindPredecessorNotLower
	InconsistencyKindMissingDeclaration
	InconsistencyKindMissingType
	InconsistencyKindExistingDeclaration
	InconsistencyKindDuplicateIntroduction
	InconsistencyKindInvalidIntroduction
	InconsistencyKindKindMismatch
	InconsistencyKindParameterMismatch
	InconsistencyKindUnknownAccessor
	InconsistencyKindUnknownProceedTarget
	InconsistencyKindAbstractMember
	InconsistencyKindFinalNotHighest
	InconsistencyKindMissingMember
)

func (k InconsistencyKind) message() string {
	switch k {
	case InconsistencyKindDuplicateOrdinal:
		return "ordinal is claimed by more than one transformation"
	case InconsistencyKindNonPositiveOrdinal:
		return "ordinal must be positive"
	case InconsistencyKindMissingPredecessor:
		return "predecessor does not exist in the chain"
	case InconsistencyKindPredecessorNotLower:
		return "predecessor must have a lower ordinal"
	case InconsistencyKindMissingDeclaration:
		return "declaration does not exist and is not introduced"
	case InconsistencyKindMissingType:
		return "type does not exist"
	case InconsistencyKindExistingDeclaration:
		return "introduced declaration already exists"
	case InconsistencyKindDuplicateIntroduction:
		return "declaration is introduced more than once"
	case InconsistencyKindInvalidIntroduction:
		return "introduced member does not declare the declaration"
	case InconsistencyKindKindMismatch:
		return "member kind does not match the declaration"
	case InconsistencyKindParameterMismatch:
		return "parameters do not match the declaration"
	case InconsistencyKindUnknownAccessor:
		return "accessor does not exist"
	case InconsistencyKindUnknownProceedTarget:
		return "proceed target does not exist"
	case InconsistencyKindAbstractMember:
		return "abstract members cannot be overridden"
	case InconsistencyKindFinalNotHighest:
		return "only the highest ordinal can be final"
	case InconsistencyKindMissingMember:
		return "transformation has no member"
	}

	return "inconsistent chain"
}

// ChainInconsistencyError is reported when the transformations of a declaration
// cannot be assembled into a chain.
type ChainInconsistencyError struct {
	Declaration common.DeclarationID
	Ordinal     int
	Kind        InconsistencyKind
	// Detail names the offending element, e.g. the accessor or proceed target, if any
	Detail string
	// Suggestion is the closest existing name, if any
	Suggestion string
	ast.Range
}

var _ errors.UserError = &ChainInconsistencyError{}
var _ errors.SecondaryError = &ChainInconsistencyError{}

func (*ChainInconsistencyError) IsUserError() {}

func (e *ChainInconsistencyError) Error() string {
	message := e.Kind.message()
	if e.Detail != "" {
		message = fmt.Sprintf("%s: `%s`", message, e.Detail)
	}
	return fmt.Sprintf(
		"inconsistent chain for `%s` at ordinal %d: %s",
		e.Declaration,
		e.Ordinal,
		message,
	)
}

func (e *ChainInconsistencyError) SecondaryError() string {
	if e.Suggestion == "" {
		return ""
	}
	return fmt.Sprintf("did you mean `%s`?", e.Suggestion)
}

// AmbiguousFinalSemanticError is reported when more than one transformation
// of a declaration claims to be final.
type AmbiguousFinalSemanticError struct {
	Declaration common.DeclarationID
	Ordinals    []int
}

var _ errors.UserError = &AmbiguousFinalSemanticError{}
var _ errors.SecondaryError = &AmbiguousFinalSemanticError{}

func (*AmbiguousFinalSemanticError) IsUserError() {}

func (e *AmbiguousFinalSemanticError) Error() string {
	return fmt.Sprintf(
		"ambiguous final semantic for `%s`: ordinals %s claim to be final",
		e.Declaration,
		formatOrdinals(e.Ordinals),
	)
}

func (e *AmbiguousFinalSemanticError) SecondaryError() string {
	return "at most one transformation of a declaration can be final"
}

func formatOrdinals(ordinals []int) string {
	parts := make([]string, len(ordinals))
	for i, ordinal := range ordinals {
		parts[i] = fmt.Sprint(ordinal)
	}
	return strings.Join(parts, ", ")
}

// NotInlineableContextError is a diagnostic:
// the proceed reference is called through a synthesized member instead.
type NotInlineableContextError struct {
	Caller  SemanticKey
	Target  SemanticKey
	Context ContextKind
	ast.Range
}

var _ errors.UserError = &NotInlineableContextError{}
var _ errors.SecondaryError = &NotInlineableContextError{}

func (*NotInlineableContextError) IsUserError() {}

func (e *NotInlineableContextError) Error() string {
	return fmt.Sprintf(
		"proceed reference in `%s` at ordinal %d cannot be inlined in %s context",
		e.Caller.Declaration,
		e.Caller.Ordinal,
		e.Context.Description(),
	)
}

func (e *NotInlineableContextError) SecondaryError() string {
	return fmt.Sprintf("`%s` is called through a synthesized member", e.Target)
}
