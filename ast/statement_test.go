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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integerLiteral(value string) *LiteralExpression {
	return &LiteralExpression{
		Kind:  LiteralKindInteger,
		Value: value,
	}
}

// exampleBody returns the body
//
//	{
//	    int r = 0;
//	    if (x) { goto L; } else r = 1;
//	    L: return r;
//	}
func exampleBody() (*Block, *Label) {
	label := NewLabel("L")

	return NewBlock(
		&LocalDeclarationStatement{
			Type:       NewTypeReference("int"),
			Identifier: "r",
			Value:      integerLiteral("0"),
		},
		&IfStatement{
			Test: NewIdentifierExpression("x"),
			Then: NewBlock(
				NewGotoStatement(label),
			),
			Else: NewExpressionStatement(
				NewAssignmentExpression(
					AssignmentOperationSimple,
					NewIdentifierExpression("r"),
					integerLiteral("1"),
				),
			),
		},
		NewLabeledStatement(
			label,
			NewReturnStatement(NewIdentifierExpression("r")),
		),
	), label
}

func TestBlock_Doc(t *testing.T) {

	t.Parallel()

	block, _ := exampleBody()

	assert.Equal(t,
		"{\n"+
			"    int r = 0;\n"+
			"    if (x)\n"+
			"    {\n"+
			"        goto L;\n"+
			"    }\n"+
			"    else\n"+
			"        r = 1;\n"+
			"    L:\n"+
			"    return r;\n"+
			"}",
		block.String(),
	)
}

func TestStatementDocs(t *testing.T) {

	t.Parallel()

	assert.Equal(t, "{ }", Prettier(NewBlock()))

	assert.Equal(t,
		"L: ;",
		Prettier(NewLabeledStatement(NewLabel("L"), &EmptyStatement{})),
	)

	assert.Equal(t,
		"while (b)\n    i += 1;",
		Prettier(&WhileStatement{
			Test: NewIdentifierExpression("b"),
			Body: NewExpressionStatement(
				NewAssignmentExpression(
					AssignmentOperationAdd,
					NewIdentifierExpression("i"),
					integerLiteral("1"),
				),
			),
		}),
	)

	assert.Equal(t, "return;", Prettier(NewReturnStatement(nil)))
}

func TestCloneBlock(t *testing.T) {

	t.Parallel()

	block, label := exampleBody()

	outer := NewLabel("Outer")
	block.Statements = append(block.Statements, NewGotoStatement(outer))

	copied := CloneBlock(block)

	assert.Equal(t, block.String(), copied.String())

	// labels defined in the block are fresh

	copiedLabeled := copied.Statements[2].(*LabeledStatement)
	assert.NotSame(t, label, copiedLabeled.Label)
	assert.Equal(t, label.Name, copiedLabeled.Label.Name)

	copiedGoto := copied.Statements[1].(*IfStatement).
		Then.(*Block).
		Statements[0].(*GotoStatement)
	assert.Same(t, copiedLabeled.Label, copiedGoto.Label)

	// labels defined outside of the block are kept

	copiedOuterGoto := copied.Statements[3].(*GotoStatement)
	assert.Same(t, outer, copiedOuterGoto.Label)

	// the copy is independent

	copiedDeclaration := copied.Statements[0].(*LocalDeclarationStatement)
	copiedDeclaration.Identifier = "s"
	copiedDeclaration.Value.(*LiteralExpression).Value = "42"

	declaration := block.Statements[0].(*LocalDeclarationStatement)
	assert.Equal(t, "r", declaration.Identifier)
	assert.Equal(t, "0", declaration.Value.(*LiteralExpression).Value)

	// the labels of a copy of a copy are fresh again

	copiedTwice := CloneBlock(copied)
	assert.NotSame(t,
		copiedLabeled.Label,
		copiedTwice.Statements[2].(*LabeledStatement).Label,
	)
}

func TestCloneNil(t *testing.T) {

	t.Parallel()

	assert.Nil(t, CloneBlock(nil))
	assert.Nil(t, CloneExpression(nil))
}

func TestInspector_WithStack(t *testing.T) {

	t.Parallel()

	block, _ := exampleBody()

	var returnStack []ElementType

	NewInspector(block).WithStack(
		[]ElementType{ElementTypeReturnStatement},
		func(element Element, push bool, stack []Element) bool {
			if !push {
				return true
			}
			require.IsType(t, &ReturnStatement{}, element)
			for _, stackElement := range stack {
				returnStack = append(returnStack, stackElement.ElementType())
			}
			return true
		},
	)

	assert.Equal(t,
		[]ElementType{
			ElementTypeBlock,
			ElementTypeLabeledStatement,
			ElementTypeReturnStatement,
		},
		returnStack,
	)
}

func TestInspector_Preorder(t *testing.T) {

	t.Parallel()

	block, _ := exampleBody()

	var identifiers []string

	NewInspector(block).Preorder(
		[]ElementType{ElementTypeIdentifierExpression},
		func(element Element) {
			identifiers = append(identifiers, element.(*IdentifierExpression).Identifier)
		},
	)

	assert.Equal(t, []string{"x", "r", "r"}, identifiers)
}
