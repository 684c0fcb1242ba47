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
	"github.com/onflow/aspectlink/errors"
)

const implicitlyTypedLocalTypeName = "var"

// splice returns the statements replacing the site of an inlined reference,
// and the label jumped to after them, if any.
//
// The body of the target is copied, and its labels and locals
// are renamed where they clash with those of the caller.
func (r *rewriter) splice(reference *Reference) ([]ast.Statement, *ast.Label) {
	body := r.body(reference.Target)
	if body == nil {
		panic(errors.NewUnreachableError())
	}
	body = ast.CloneBlock(body)

	context := reference.Context

	r.scope.isolate(body, context.Target)

	var splicer returnSplicer
	var prefix []ast.Statement

	switch context.Kind {
	case ContextKindReturn, ContextKindCastReturn:
		if declaresLocals(body.Statements) {
			return []ast.Statement{body}, nil
		}
		return body.Statements, nil

	case ContextKindStatement, ContextKindDiscard:
		splicer = returnSplicer{
			label:       ast.NewLabel(""),
			fallThrough: true,
		}

	case ContextKindAssignment:
		splicer = returnSplicer{
			label:  ast.NewLabel(""),
			target: context.Target,
		}

	case ContextKindLocalDeclaration:
		local := context.Local
		typ := local.Type
		if typ == nil || typ.Name == implicitlyTypedLocalTypeName {
			typ = reference.TargetDeclaration.MemberType()
		}
		prefix = append(prefix, &ast.LocalDeclarationStatement{
			Type:       ast.NewTypeReference(typ.Name),
			Identifier: local.Identifier,
			Range:      local.Range,
		})
		splicer = returnSplicer{
			label:  ast.NewLabel(""),
			target: ast.NewIdentifierExpression(local.Identifier),
		}

	default:
		panic(errors.NewUnreachableError())
	}

	statements := splicer.statements(body.Statements)

	if declaresLocals(body.Statements) {
		statements = []ast.Statement{ast.NewBlock(statements...)}
	}

	statements = append(prefix, statements...)

	if !splicer.labelUsed {
		return statements, nil
	}
	return statements, splicer.label
}

// returnSplicer replaces the return statements of a spliced body.
type returnSplicer struct {
	label *ast.Label
	// target is the assigned expression, if the returned value is assigned
	target ast.Expression
	// fallThrough is true if a final top-level return needs no jump
	fallThrough bool
	labelUsed   bool
	// nested is the depth of the statement lists being replaced
	nested int
}

func (s *returnSplicer) statements(statements []ast.Statement) []ast.Statement {
	s.nested++
	defer func() {
		s.nested--
	}()

	result := make([]ast.Statement, 0, len(statements))
	for i, statement := range statements {
		if returnStatement, ok := statement.(*ast.ReturnStatement); ok {
			if s.fallThrough && s.nested == 1 && i == len(statements)-1 {
				result = append(result, s.value(returnStatement.Expression)...)
				continue
			}
			result = append(result, s.jump(returnStatement)...)
			continue
		}
		result = append(result, s.statement(statement))
	}
	return result
}

// embedded replaces a statement nested directly in another statement.
func (s *returnSplicer) embedded(statement ast.Statement) ast.Statement {
	returnStatement, ok := statement.(*ast.ReturnStatement)
	if !ok {
		return s.statement(statement)
	}

	statements := s.jump(returnStatement)
	if len(statements) == 1 {
		return statements[0]
	}
	return ast.NewBlock(statements...)
}

// statement replaces the nested returns of a statement.
// The statement is part of a fresh copy and is updated in place.
func (s *returnSplicer) statement(statement ast.Statement) ast.Statement {
	switch statement := statement.(type) {
	case *ast.Block:
		statement.Statements = s.statements(statement.Statements)

	case *ast.IfStatement:
		statement.Then = s.embedded(statement.Then)
		if statement.Else != nil {
			statement.Else = s.embedded(statement.Else)
		}

	case *ast.WhileStatement:
		statement.Body = s.embedded(statement.Body)

	case *ast.DoStatement:
		statement.Body = s.embedded(statement.Body)

	case *ast.ForEachStatement:
		statement.Body = s.embedded(statement.Body)

	case *ast.LabeledStatement:
		statement.Statement = s.embedded(statement.Statement)

	case *ast.ReturnStatement:
		panic(errors.NewUnreachableError())
	}

	return statement
}

// jump returns the statements replacing a nested return:
// the returned value, and a jump to the end of the splice.
func (s *returnSplicer) jump(statement *ast.ReturnStatement) []ast.Statement {
	s.labelUsed = true
	return append(
		s.value(statement.Expression),
		ast.NewGotoStatement(s.label),
	)
}

// value returns the statements evaluating a returned value.
func (s *returnSplicer) value(expression ast.Expression) []ast.Statement {
	if expression == nil {
		return nil
	}

	if s.target != nil {
		return []ast.Statement{
			ast.NewExpressionStatement(
				ast.NewAssignmentExpression(
					ast.AssignmentOperationSimple,
					ast.CloneExpression(s.target),
					expression,
				),
			),
		}
	}

	return discardedValueStatements(expression)
}

// discardedValueStatements returns the statements evaluating
// a value which is not used.
func discardedValueStatements(expression ast.Expression) []ast.Statement {
	switch ast.Unparenthesized(expression).(type) {
	case *ast.InvocationExpression,
		*ast.AssignmentExpression,
		*ast.NewExpression:

		return []ast.Statement{
			ast.NewExpressionStatement(ast.Unparenthesized(expression)),
		}

	case *ast.LiteralExpression,
		*ast.IdentifierExpression,
		*ast.ThisExpression,
		*ast.DefaultExpression:

		return nil
	}

	return []ast.Statement{
		ast.NewExpressionStatement(
			ast.NewAssignmentExpression(
				ast.AssignmentOperationSimple,
				&ast.DiscardExpression{},
				expression,
			),
		),
	}
}

func declaresLocals(statements []ast.Statement) bool {
	for _, statement := range statements {
		if declaredLocal(statement) != nil {
			return true
		}
	}
	return false
}
