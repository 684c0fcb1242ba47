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

// rewriter produces the linked bodies of a group of chains.
//
// Bodies are never changed in place: unchanged elements are shared
// with the semantics, changed elements are new.
// Spliced bodies are copies, renamed to not clash with the body they are spliced into.
type rewriter struct {
	set      *ChainSet
	analysis *Analysis
	names    map[SemanticKey]string
	// bodies are the linked bodies, by body key
	bodies map[BodyKey]*ast.Block
	// scope is the scope of the body being rewritten
	scope *bodyScope
}

func newRewriter(set *ChainSet, analysis *Analysis, names map[SemanticKey]string) *rewriter {
	return &rewriter{
		set:      set,
		analysis: analysis,
		names:    names,
		bodies:   map[BodyKey]*ast.Block{},
	}
}

// rewrite links the given bodies, in order.
// Every body inlined into another body must precede it.
func (r *rewriter) rewrite(keys []BodyKey) {
	for _, key := range keys {
		r.bodies[key] = r.rewriteBody(key)
	}
}

// body returns the linked body of the given key.
func (r *rewriter) body(key BodyKey) *ast.Block {
	if body, ok := r.bodies[key]; ok {
		return body
	}

	semantic, ok := r.set.Semantic(key.Semantic)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return semantic.Body(key.Accessor)
}

func (r *rewriter) rewriteBody(key BodyKey) *ast.Block {
	semantic, ok := r.set.Semantic(key.Semantic)
	if !ok {
		panic(errors.NewUnreachableError())
	}

	body := semantic.Body(key.Accessor)
	if body == nil || len(r.analysis.References[key]) == 0 {
		return body
	}

	r.scope = newBodyScope(semantic, key.Accessor, body)
	defer func() {
		r.scope = nil
	}()

	statements, changed := r.statements(body.Statements)
	if !changed {
		return body
	}

	return &ast.Block{
		Statements: statements,
		Range:      body.Range,
	}
}

// statements rewrites a statement list, splicing the bodies of inlined references.
// The label a splice jumps to is attached to the statement following it.
func (r *rewriter) statements(statements []ast.Statement) ([]ast.Statement, bool) {
	result := make([]ast.Statement, 0, len(statements))
	changed := false

	var pendingLabel *ast.Label

	emit := func(statement ast.Statement) {
		if pendingLabel != nil {
			statement = ast.NewLabeledStatement(pendingLabel, statement)
			pendingLabel = nil
		}
		result = append(result, statement)
	}

	for _, statement := range statements {
		if site, ok := r.analysis.Sites[statement]; ok {
			changed = true

			spliced, label := r.splice(site)
			for _, splicedStatement := range spliced {
				emit(splicedStatement)
			}

			if label != nil {
				if pendingLabel != nil {
					emit(&ast.EmptyStatement{})
				}
				pendingLabel = label
			}
			continue
		}

		rewritten, statementChanged := r.statement(statement)
		changed = changed || statementChanged
		emit(rewritten)
	}

	if pendingLabel != nil {
		emit(&ast.EmptyStatement{})
	}

	if !changed {
		return statements, false
	}
	return result, true
}

// embedded rewrites a statement nested directly in another statement.
// A spliced body is wrapped in a block.
func (r *rewriter) embedded(statement ast.Statement) (ast.Statement, bool) {
	site, ok := r.analysis.Sites[statement]
	if !ok {
		return r.statement(statement)
	}

	spliced, label := r.splice(site)
	if label != nil {
		spliced = append(spliced, ast.NewLabeledStatement(label, &ast.EmptyStatement{}))
	}
	return ast.NewBlock(spliced...), true
}

func (r *rewriter) statement(statement ast.Statement) (ast.Statement, bool) {
	switch statement := statement.(type) {
	case *ast.Block:
		statements, changed := r.statements(statement.Statements)
		if !changed {
			return statement, false
		}
		return &ast.Block{
			Statements: statements,
			Range:      statement.Range,
		}, true

	case *ast.ExpressionStatement:
		expression, changed := r.expression(statement.Expression)
		if !changed {
			return statement, false
		}
		return ast.NewExpressionStatement(expression), true

	case *ast.ReturnStatement:
		if statement.Expression == nil {
			return statement, false
		}
		expression, changed := r.expression(statement.Expression)
		if !changed {
			return statement, false
		}
		return &ast.ReturnStatement{
			Expression: expression,
			Range:      statement.Range,
		}, true

	case *ast.IfStatement:
		test, testChanged := r.expression(statement.Test)
		then, thenChanged := r.embedded(statement.Then)
		elseStatement, elseChanged := statement.Else, false
		if statement.Else != nil {
			elseStatement, elseChanged = r.embedded(statement.Else)
		}
		if !testChanged && !thenChanged && !elseChanged {
			return statement, false
		}
		return &ast.IfStatement{
			Test:  test,
			Then:  then,
			Else:  elseStatement,
			Range: statement.Range,
		}, true

	case *ast.WhileStatement:
		test, testChanged := r.expression(statement.Test)
		body, bodyChanged := r.embedded(statement.Body)
		if !testChanged && !bodyChanged {
			return statement, false
		}
		return &ast.WhileStatement{
			Test:  test,
			Body:  body,
			Range: statement.Range,
		}, true

	case *ast.DoStatement:
		body, bodyChanged := r.embedded(statement.Body)
		test, testChanged := r.expression(statement.Test)
		if !testChanged && !bodyChanged {
			return statement, false
		}
		return &ast.DoStatement{
			Body:  body,
			Test:  test,
			Range: statement.Range,
		}, true

	case *ast.ForEachStatement:
		collection, collectionChanged := r.expression(statement.Collection)
		body, bodyChanged := r.embedded(statement.Body)
		if !collectionChanged && !bodyChanged {
			return statement, false
		}
		return &ast.ForEachStatement{
			Type:       statement.Type,
			Identifier: statement.Identifier,
			Collection: collection,
			Body:       body,
			Range:      statement.Range,
		}, true

	case *ast.LabeledStatement:
		labeled, changed := r.embedded(statement.Statement)
		if !changed {
			return statement, false
		}
		return &ast.LabeledStatement{
			Label:     statement.Label,
			Statement: labeled,
			Range:     statement.Range,
		}, true

	case *ast.LocalDeclarationStatement:
		if statement.Value == nil {
			return statement, false
		}
		value, changed := r.expression(statement.Value)
		if !changed {
			return statement, false
		}
		return &ast.LocalDeclarationStatement{
			Type:       statement.Type,
			Identifier: statement.Identifier,
			Value:      value,
			Range:      statement.Range,
		}, true

	case *ast.ThrowStatement:
		if statement.Expression == nil {
			return statement, false
		}
		expression, changed := r.expression(statement.Expression)
		if !changed {
			return statement, false
		}
		return &ast.ThrowStatement{
			Expression: expression,
			Range:      statement.Range,
		}, true

	case *ast.GotoStatement,
		*ast.BreakStatement,
		*ast.ContinueStatement,
		*ast.EmptyStatement:

		return statement, false
	}

	panic(errors.NewUnreachableError())
}

func (r *rewriter) expressions(expressions []ast.Expression) ([]ast.Expression, bool) {
	var result []ast.Expression
	for i, expression := range expressions {
		rewritten, changed := r.expression(expression)
		if changed && result == nil {
			result = make([]ast.Expression, len(expressions))
			copy(result, expressions[:i])
		}
		if result != nil {
			result[i] = rewritten
		}
	}
	if result == nil {
		return expressions, false
	}
	return result, true
}

func (r *rewriter) expression(expression ast.Expression) (ast.Expression, bool) {
	switch expression := expression.(type) {
	case *ast.IdentifierExpression,
		*ast.ThisExpression,
		*ast.DiscardExpression,
		*ast.LiteralExpression,
		*ast.DefaultExpression:

		return expression, false

	case *ast.ProceedExpression:
		reference, ok := r.analysis.Expressions[expression]
		if !ok {
			panic(errors.NewUnreachableError())
		}
		return r.call(reference), true

	case *ast.MemberAccessExpression:
		target, changed := r.expression(expression.Target)
		if !changed {
			return expression, false
		}
		return &ast.MemberAccessExpression{
			Target: target,
			Name:   expression.Name,
			Range:  expression.Range,
		}, true

	case *ast.InvocationExpression:
		target, targetChanged := r.expression(expression.Target)
		arguments, argumentsChanged := r.expressions(expression.Arguments)
		if !targetChanged && !argumentsChanged {
			return expression, false
		}
		return &ast.InvocationExpression{
			Target:    target,
			Arguments: arguments,
			Range:     expression.Range,
		}, true

	case *ast.ElementAccessExpression:
		target, targetChanged := r.expression(expression.Target)
		arguments, argumentsChanged := r.expressions(expression.Arguments)
		if !targetChanged && !argumentsChanged {
			return expression, false
		}
		return &ast.ElementAccessExpression{
			Target:    target,
			Arguments: arguments,
			Range:     expression.Range,
		}, true

	case *ast.AssignmentExpression:
		target, targetChanged := r.expression(expression.Target)
		value, valueChanged := r.expression(expression.Value)
		if !targetChanged && !valueChanged {
			return expression, false
		}
		return &ast.AssignmentExpression{
			Operation: expression.Operation,
			Target:    target,
			Value:     value,
			Range:     expression.Range,
		}, true

	case *ast.BinaryExpression:
		left, leftChanged := r.expression(expression.Left)
		right, rightChanged := r.expression(expression.Right)
		if !leftChanged && !rightChanged {
			return expression, false
		}
		return &ast.BinaryExpression{
			Operation: expression.Operation,
			Left:      left,
			Right:     right,
			Range:     expression.Range,
		}, true

	case *ast.UnaryExpression:
		operand, changed := r.expression(expression.Expression)
		if !changed {
			return expression, false
		}
		return &ast.UnaryExpression{
			Operation:  expression.Operation,
			Expression: operand,
			Range:      expression.Range,
		}, true

	case *ast.CastExpression:
		operand, changed := r.expression(expression.Expression)
		if !changed {
			return expression, false
		}
		return &ast.CastExpression{
			Type:       expression.Type,
			Expression: operand,
			Range:      expression.Range,
		}, true

	case *ast.ParenthesizedExpression:
		inner, changed := r.expression(expression.Expression)
		if !changed {
			return expression, false
		}
		return &ast.ParenthesizedExpression{
			Expression: inner,
			Range:      expression.Range,
		}, true

	case *ast.ConditionalExpression:
		test, testChanged := r.expression(expression.Test)
		then, thenChanged := r.expression(expression.Then)
		elseExpression, elseChanged := r.expression(expression.Else)
		if !testChanged && !thenChanged && !elseChanged {
			return expression, false
		}
		return &ast.ConditionalExpression{
			Test:  test,
			Then:  then,
			Else:  elseExpression,
			Range: expression.Range,
		}, true

	case *ast.InterpolatedStringExpression:
		expressions, changed := r.expressions(expression.Expressions)
		if !changed {
			return expression, false
		}
		return &ast.InterpolatedStringExpression{
			Texts:       expression.Texts,
			Expressions: expressions,
			Range:       expression.Range,
		}, true

	case *ast.NewExpression:
		arguments, changed := r.expressions(expression.Arguments)
		if !changed {
			return expression, false
		}
		return &ast.NewExpression{
			Type:      expression.Type,
			Arguments: arguments,
			Range:     expression.Range,
		}, true
	}

	panic(errors.NewUnreachableError())
}

// call returns the access replacing a reference which is not inlined.
func (r *rewriter) call(reference *Reference) ast.Expression {
	arguments := r.arguments(reference)

	switch reference.Decision {
	case DecisionCallPublic:
		return publicAccess(
			reference.TargetDeclaration,
			reference.Target.Accessor,
			arguments,
		)

	case DecisionCallSynthesized:
		name, ok := r.names[reference.Target.Semantic]
		if !ok {
			panic(errors.NewUnreachableError())
		}
		return synthesizedAccess(
			reference.TargetDeclaration,
			name,
			reference.Target.Accessor,
			arguments,
		)
	}

	panic(errors.NewUnreachableError())
}

// arguments returns the arguments of a reference,
// or the forwarded parameters of the caller if it has none.
func (r *rewriter) arguments(reference *Reference) []ast.Expression {
	if len(reference.Expression.Arguments) > 0 {
		arguments, _ := r.expressions(reference.Expression.Arguments)
		return arguments
	}

	caller, ok := r.set.Semantic(reference.Caller.Semantic)
	if !ok {
		panic(errors.NewUnreachableError())
	}

	names := forwardedParameterNames(
		caller.Member,
		reference.Caller.Accessor,
		reference.TargetDeclaration,
		reference.Target.Accessor,
	)

	arguments := make([]ast.Expression, len(names))
	for i, name := range names {
		arguments[i] = ast.NewIdentifierExpression(name)
	}
	return arguments
}
