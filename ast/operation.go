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

package ast

import (
	"github.com/onflow/aspectlink/errors"
)

type precedence uint

const (
	precedenceUnknown precedence = iota
	// precedenceAssignment is the precedence of
	// - AssignmentExpression
	precedenceAssignment
	// precedenceConditional is the precedence of
	// - ConditionalExpression. right associative!
	precedenceConditional
	// precedenceCoalescing is the precedence of
	// - BinaryOperationCoalesce. right associative!
	precedenceCoalescing
	// precedenceLogicalOr is the precedence of
	// - BinaryOperationOr
	precedenceLogicalOr
	// precedenceLogicalAnd is the precedence of
	// - BinaryOperationAnd
	precedenceLogicalAnd
	// precedenceEquality is the precedence of
	// - BinaryOperationEqual
	// - BinaryOperationNotEqual
	precedenceEquality
	// precedenceRelational is the precedence of
	// - BinaryOperationLess
	// - BinaryOperationLessEqual
	// - BinaryOperationGreater
	// - BinaryOperationGreaterEqual
	precedenceRelational
	// precedenceAdditive is the precedence of
	// - BinaryOperationPlus
	// - BinaryOperationMinus
	precedenceAdditive
	// precedenceMultiplicative is the precedence of
	// - BinaryOperationMul
	// - BinaryOperationDiv
	// - BinaryOperationMod
	precedenceMultiplicative
	// precedenceUnary is the precedence of
	// - UnaryExpression
	// - CastExpression
	precedenceUnary
	// precedencePrimary is the precedence of
	// - literals, identifiers, invocations, member and element accesses
	precedencePrimary
)

// AssignmentOperation

type AssignmentOperation uint8

const (
	AssignmentOperationUnknown AssignmentOperation = iota
	AssignmentOperationSimple
	AssignmentOperationAdd
	AssignmentOperationSubtract
	AssignmentOperationMultiply
	AssignmentOperationDivide
	AssignmentOperationCoalesce
)

func (o AssignmentOperation) Symbol() string {
	switch o {
	case AssignmentOperationSimple:
		return "="
	case AssignmentOperationAdd:
		return "+="
	case AssignmentOperationSubtract:
		return "-="
	case AssignmentOperationMultiply:
		return "*="
	case AssignmentOperationDivide:
		return "/="
	case AssignmentOperationCoalesce:
		return "??="
	}

	panic(errors.NewUnreachableError())
}

func (o AssignmentOperation) String() string {
	return o.Symbol()
}

// IsSimple returns true for the plain `=` assignment.
func (o AssignmentOperation) IsSimple() bool {
	return o == AssignmentOperationSimple
}

// BinaryOperation

type BinaryOperation uint8

const (
	BinaryOperationUnknown BinaryOperation = iota
	BinaryOperationPlus
	BinaryOperationMinus
	BinaryOperationMul
	BinaryOperationDiv
	BinaryOperationMod
	BinaryOperationEqual
	BinaryOperationNotEqual
	BinaryOperationLess
	BinaryOperationLessEqual
	BinaryOperationGreater
	BinaryOperationGreaterEqual
	BinaryOperationAnd
	BinaryOperationOr
	BinaryOperationCoalesce
)

func (o BinaryOperation) Symbol() string {
	switch o {
	case BinaryOperationPlus:
		return "+"
	case BinaryOperationMinus:
		return "-"
	case BinaryOperationMul:
		return "*"
	case BinaryOperationDiv:
		return "/"
	case BinaryOperationMod:
		return "%"
	case BinaryOperationEqual:
		return "=="
	case BinaryOperationNotEqual:
		return "!="
	case BinaryOperationLess:
		return "<"
	case BinaryOperationLessEqual:
		return "<="
	case BinaryOperationGreater:
		return ">"
	case BinaryOperationGreaterEqual:
		return ">="
	case BinaryOperationAnd:
		return "&&"
	case BinaryOperationOr:
		return "||"
	case BinaryOperationCoalesce:
		return "??"
	}

	panic(errors.NewUnreachableError())
}

func (o BinaryOperation) String() string {
	return o.Symbol()
}

func (o BinaryOperation) precedence() precedence {
	switch o {
	case BinaryOperationPlus,
		BinaryOperationMinus:
		return precedenceAdditive
	case BinaryOperationMul,
		BinaryOperationDiv,
		BinaryOperationMod:
		return precedenceMultiplicative
	case BinaryOperationEqual,
		BinaryOperationNotEqual:
		return precedenceEquality
	case BinaryOperationLess,
		BinaryOperationLessEqual,
		BinaryOperationGreater,
		BinaryOperationGreaterEqual:
		return precedenceRelational
	case BinaryOperationAnd:
		return precedenceLogicalAnd
	case BinaryOperationOr:
		return precedenceLogicalOr
	case BinaryOperationCoalesce:
		return precedenceCoalescing
	}

	panic(errors.NewUnreachableError())
}

// UnaryOperation

type UnaryOperation uint8

const (
	UnaryOperationUnknown UnaryOperation = iota
	UnaryOperationNot
	UnaryOperationMinus
)

func (o UnaryOperation) Symbol() string {
	switch o {
	case UnaryOperationNot:
		return "!"
	case UnaryOperationMinus:
		return "-"
	}

	panic(errors.NewUnreachableError())
}

func (o UnaryOperation) String() string {
	return o.Symbol()
}
