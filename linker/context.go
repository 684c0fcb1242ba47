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
	"github.com/onflow/aspectlink/ast"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=ContextKind -trimprefix=ContextKind

// ContextKind is the syntactic context of a proceed reference.
type ContextKind uint8

const (
	// ContextKindOther is any context that cannot be inlined,
	// e.g. a compound assignment or a nested expression
	ContextKindOther ContextKind = iota
	// ContextKindStatement is `proceed();`
	ContextKindStatement
	// ContextKindDiscard is `_ = proceed();`
	ContextKindDiscard
	// ContextKindReturn is `return proceed();`
	ContextKindReturn
	// ContextKindCastReturn is `return (T)proceed();`
	ContextKindCastReturn
	// ContextKindAssignment is `x = proceed();`
	ContextKindAssignment
	// ContextKindLocalDeclaration is `T x = proceed();`
	ContextKindLocalDeclaration
)

func (k ContextKind) Description() string {
	switch k {
	case ContextKindStatement:
		return "statement"
	case ContextKindDiscard:
		return "discard"
	case ContextKindReturn:
		return "return"
	case ContextKindCastReturn:
		return "cast return"
	case ContextKindAssignment:
		return "assignment"
	case ContextKindLocalDeclaration:
		return "local declaration"
	}
	return "nested expression"
}

// ProducesValue returns true if the context consumes the value of the reference.
func (k ContextKind) ProducesValue() bool {
	switch k {
	case ContextKindReturn,
		ContextKindCastReturn,
		ContextKindAssignment,
		ContextKindLocalDeclaration:

		return true
	}
	return false
}

// Context is the classified context of a proceed reference.
type Context struct {
	Kind ContextKind
	// Statement is the statement the reference is the whole of, if inlineable
	Statement ast.Statement
	// Cast is the cast of a CastReturn context
	Cast *ast.CastExpression
	// Target is the assigned expression of an Assignment context
	Target ast.Expression
	// Local is the declaration of a LocalDeclaration context
	Local *ast.LocalDeclarationStatement
}

// classifyContext classifies the context of the proceed reference
// at the top of the given traversal stack.
// The first element of the stack is the body the reference occurs in.
func classifyContext(stack []ast.Element) Context {
	other := Context{Kind: ContextKindOther}

	index := len(stack) - 1
	expression := stack[index].(ast.Expression)
	index, expression = skipParentheses(stack, index-1, expression)
	if index < 0 {
		return other
	}

	var context Context

	switch parent := stack[index].(type) {
	case *ast.ExpressionStatement:
		context = Context{
			Kind:      ContextKindStatement,
			Statement: parent,
		}

	case *ast.ReturnStatement:
		context = Context{
			Kind:      ContextKindReturn,
			Statement: parent,
		}

	case *ast.LocalDeclarationStatement:
		if parent.Value != expression {
			return other
		}
		context = Context{
			Kind:      ContextKindLocalDeclaration,
			Statement: parent,
			Local:     parent,
		}

	case *ast.CastExpression:
		index, _ = skipParentheses(stack, index-1, parent)
		if index < 0 {
			return other
		}
		statement, ok := stack[index].(*ast.ReturnStatement)
		if !ok {
			return other
		}
		context = Context{
			Kind:      ContextKindCastReturn,
			Statement: statement,
			Cast:      parent,
		}

	case *ast.AssignmentExpression:
		if parent.Value != expression || !parent.Operation.IsSimple() {
			return other
		}
		index--
		if index < 0 {
			return other
		}
		statement, ok := stack[index].(*ast.ExpressionStatement)
		if !ok {
			return other
		}

		switch {
		case parent.IsDiscard():
			context = Context{
				Kind:      ContextKindDiscard,
				Statement: statement,
			}
		case isSimpleAssignmentTarget(parent.Target):
			context = Context{
				Kind:      ContextKindAssignment,
				Statement: statement,
				Target:    parent.Target,
			}
		default:
			return other
		}

	default:
		return other
	}

	// the statement may only be nested in constructs
	// whose control flow is preserved around a spliced block
	for _, element := range stack[:index] {
		switch element.(type) {
		case *ast.Block,
			*ast.IfStatement,
			*ast.WhileStatement,
			*ast.DoStatement,
			*ast.ForEachStatement,
			*ast.LabeledStatement:

			continue

		default:
			return other
		}
	}

	return context
}

func skipParentheses(stack []ast.Element, index int, expression ast.Expression) (int, ast.Expression) {
	for index >= 0 {
		parenthesized, ok := stack[index].(*ast.ParenthesizedExpression)
		if !ok {
			break
		}
		expression = parenthesized
		index--
	}
	return index, expression
}

// isSimpleAssignmentTarget returns true for targets which can be assigned
// repeatedly without side effects: locals, parameters and fields.
func isSimpleAssignmentTarget(target ast.Expression) bool {
	switch target := target.(type) {
	case *ast.IdentifierExpression:
		return true
	case *ast.MemberAccessExpression:
		switch target.Target.(type) {
		case *ast.ThisExpression, *ast.IdentifierExpression:
			return true
		}
	}
	return false
}
