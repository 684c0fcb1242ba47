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

// cloner deep-copies statements and expressions.
// Labels defined within the copied elements are replaced by fresh labels,
// so a copy never shares jump targets with its original.
// Type references are immutable and shared.
type cloner struct {
	labels map[*Label]*Label
}

func newCloner(root Element) *cloner {
	c := &cloner{
		labels: map[*Label]*Label{},
	}

	Inspect(root, func(element Element) bool {
		if labeled, ok := element.(*LabeledStatement); ok {
			label := labeled.Label
			c.labels[label] = NewLabel(label.Name)
		}
		return true
	})

	return c
}

// CloneBlock returns a deep copy of the given block.
func CloneBlock(block *Block) *Block {
	if block == nil {
		return nil
	}
	return newCloner(block).block(block)
}

// CloneStatement returns a deep copy of the given statement.
func CloneStatement(statement Statement) Statement {
	return newCloner(statement).statement(statement)
}

// CloneExpression returns a deep copy of the given expression.
func CloneExpression(expression Expression) Expression {
	if expression == nil {
		return nil
	}
	return newCloner(expression).expression(expression)
}

func (c *cloner) label(label *Label) *Label {
	if fresh, ok := c.labels[label]; ok {
		return fresh
	}
	return label
}

func (c *cloner) block(block *Block) *Block {
	if block == nil {
		return nil
	}
	return &Block{
		Statements: c.statements(block.Statements),
		Range:      block.Range,
	}
}

func (c *cloner) statements(statements []Statement) []Statement {
	if statements == nil {
		return nil
	}
	result := make([]Statement, len(statements))
	for i, statement := range statements {
		result[i] = c.statement(statement)
	}
	return result
}

func (c *cloner) optionalStatement(statement Statement) Statement {
	if statement == nil {
		return nil
	}
	return c.statement(statement)
}

func (c *cloner) statement(statement Statement) Statement {
	switch statement := statement.(type) {
	case *Block:
		return c.block(statement)

	case *ExpressionStatement:
		return &ExpressionStatement{
			Expression: c.expression(statement.Expression),
		}

	case *ReturnStatement:
		return &ReturnStatement{
			Expression: c.optionalExpression(statement.Expression),
			Range:      statement.Range,
		}

	case *IfStatement:
		return &IfStatement{
			Test:  c.expression(statement.Test),
			Then:  c.statement(statement.Then),
			Else:  c.optionalStatement(statement.Else),
			Range: statement.Range,
		}

	case *WhileStatement:
		return &WhileStatement{
			Test:  c.expression(statement.Test),
			Body:  c.statement(statement.Body),
			Range: statement.Range,
		}

	case *DoStatement:
		return &DoStatement{
			Body:  c.statement(statement.Body),
			Test:  c.expression(statement.Test),
			Range: statement.Range,
		}

	case *ForEachStatement:
		return &ForEachStatement{
			Type:       statement.Type,
			Identifier: statement.Identifier,
			Collection: c.expression(statement.Collection),
			Body:       c.statement(statement.Body),
			Range:      statement.Range,
		}

	case *LabeledStatement:
		return &LabeledStatement{
			Label:     c.label(statement.Label),
			Statement: c.statement(statement.Statement),
			Range:     statement.Range,
		}

	case *GotoStatement:
		return &GotoStatement{
			Label: c.label(statement.Label),
			Range: statement.Range,
		}

	case *BreakStatement:
		copied := *statement
		return &copied

	case *ContinueStatement:
		copied := *statement
		return &copied

	case *EmptyStatement:
		copied := *statement
		return &copied

	case *LocalDeclarationStatement:
		return &LocalDeclarationStatement{
			Type:       statement.Type,
			Identifier: statement.Identifier,
			Value:      c.optionalExpression(statement.Value),
			Range:      statement.Range,
		}

	case *ThrowStatement:
		return &ThrowStatement{
			Expression: c.optionalExpression(statement.Expression),
			Range:      statement.Range,
		}
	}

	panic(errors.NewUnreachableError())
}

func (c *cloner) expressions(expressions []Expression) []Expression {
	if expressions == nil {
		return nil
	}
	result := make([]Expression, len(expressions))
	for i, expression := range expressions {
		result[i] = c.expression(expression)
	}
	return result
}

func (c *cloner) optionalExpression(expression Expression) Expression {
	if expression == nil {
		return nil
	}
	return c.expression(expression)
}

func (c *cloner) expression(expression Expression) Expression {
	switch expression := expression.(type) {
	case *IdentifierExpression:
		copied := *expression
		return &copied

	case *ThisExpression:
		copied := *expression
		return &copied

	case *DiscardExpression:
		copied := *expression
		return &copied

	case *LiteralExpression:
		copied := *expression
		return &copied

	case *DefaultExpression:
		copied := *expression
		return &copied

	case *MemberAccessExpression:
		return &MemberAccessExpression{
			Target: c.expression(expression.Target),
			Name:   expression.Name,
			Range:  expression.Range,
		}

	case *InvocationExpression:
		return &InvocationExpression{
			Target:    c.expression(expression.Target),
			Arguments: c.expressions(expression.Arguments),
			Range:     expression.Range,
		}

	case *ElementAccessExpression:
		return &ElementAccessExpression{
			Target:    c.expression(expression.Target),
			Arguments: c.expressions(expression.Arguments),
			Range:     expression.Range,
		}

	case *AssignmentExpression:
		return &AssignmentExpression{
			Operation: expression.Operation,
			Target:    c.expression(expression.Target),
			Value:     c.expression(expression.Value),
			Range:     expression.Range,
		}

	case *BinaryExpression:
		return &BinaryExpression{
			Operation: expression.Operation,
			Left:      c.expression(expression.Left),
			Right:     c.expression(expression.Right),
			Range:     expression.Range,
		}

	case *UnaryExpression:
		return &UnaryExpression{
			Operation:  expression.Operation,
			Expression: c.expression(expression.Expression),
			Range:      expression.Range,
		}

	case *CastExpression:
		return &CastExpression{
			Type:       expression.Type,
			Expression: c.expression(expression.Expression),
			Range:      expression.Range,
		}

	case *ParenthesizedExpression:
		return &ParenthesizedExpression{
			Expression: c.expression(expression.Expression),
			Range:      expression.Range,
		}

	case *ConditionalExpression:
		return &ConditionalExpression{
			Test:  c.expression(expression.Test),
			Then:  c.expression(expression.Then),
			Else:  c.expression(expression.Else),
			Range: expression.Range,
		}

	case *InterpolatedStringExpression:
		return &InterpolatedStringExpression{
			Texts:       append([]string(nil), expression.Texts...),
			Expressions: c.expressions(expression.Expressions),
			Range:       expression.Range,
		}

	case *NewExpression:
		return &NewExpression{
			Type:      expression.Type,
			Arguments: c.expressions(expression.Arguments),
			Range:     expression.Range,
		}

	case *ProceedExpression:
		return &ProceedExpression{
			Target:    expression.Target,
			Accessor:  expression.Accessor,
			Order:     expression.Order,
			Hint:      expression.Hint,
			Arguments: c.expressions(expression.Arguments),
			Range:     expression.Range,
		}
	}

	panic(errors.NewUnreachableError())
}
