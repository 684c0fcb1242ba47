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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	. "github.com/onflow/aspectlink/test_utils/common_utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pos(offset, line, column int) ast.Position {
	return ast.Position{Offset: offset, Line: line, Column: column}
}

func rng(startOffset, endOffset int) ast.Range {
	return ast.NewRange(
		pos(startOffset, 1, startOffset),
		pos(endOffset, 1, endOffset),
	)
}

func parseExpressionString(t *testing.T, input string) string {
	t.Helper()

	expression, err := ParseExpression([]byte(input))
	require.NoError(t, err)
	return ast.Prettier(expression)
}

func TestParseInvocation(t *testing.T) {

	t.Parallel()

	actual, err := ParseExpression([]byte("a.b(1, c)"))
	require.NoError(t, err)

	AssertEqualWithDiff(t,
		&ast.InvocationExpression{
			Target: &ast.MemberAccessExpression{
				Target: &ast.IdentifierExpression{
					Identifier: "a",
					Range:      rng(0, 0),
				},
				Name:  "b",
				Range: rng(0, 2),
			},
			Arguments: []ast.Expression{
				&ast.LiteralExpression{
					Kind:  ast.LiteralKindInteger,
					Value: "1",
					Range: rng(4, 4),
				},
				&ast.IdentifierExpression{
					Identifier: "c",
					Range:      rng(7, 7),
				},
			},
			Range: rng(0, 8),
		},
		actual,
	)
}

func TestParseBinaryPrecedence(t *testing.T) {

	t.Parallel()

	actual, err := ParseExpression([]byte("1 + 2 * 3"))
	require.NoError(t, err)

	AssertEqualWithDiff(t,
		&ast.BinaryExpression{
			Operation: ast.BinaryOperationPlus,
			Left: &ast.LiteralExpression{
				Kind:  ast.LiteralKindInteger,
				Value: "1",
				Range: rng(0, 0),
			},
			Right: &ast.BinaryExpression{
				Operation: ast.BinaryOperationMul,
				Left: &ast.LiteralExpression{
					Kind:  ast.LiteralKindInteger,
					Value: "2",
					Range: rng(4, 4),
				},
				Right: &ast.LiteralExpression{
					Kind:  ast.LiteralKindInteger,
					Value: "3",
					Range: rng(8, 8),
				},
				Range: rng(4, 8),
			},
			Range: rng(0, 8),
		},
		actual,
	)
}

func TestParseAssociativity(t *testing.T) {

	t.Parallel()

	t.Run("assignment is right associative", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("a = b += c"))
		require.NoError(t, err)

		require.IsType(t, &ast.AssignmentExpression{}, expression)
		assignment := expression.(*ast.AssignmentExpression)
		assert.Equal(t, ast.AssignmentOperationSimple, assignment.Operation)

		require.IsType(t, &ast.AssignmentExpression{}, assignment.Value)
		assert.Equal(t,
			ast.AssignmentOperationAdd,
			assignment.Value.(*ast.AssignmentExpression).Operation,
		)
	})

	t.Run("subtraction is left associative", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("a - b - c"))
		require.NoError(t, err)

		require.IsType(t, &ast.BinaryExpression{}, expression)
		binary := expression.(*ast.BinaryExpression)
		require.IsType(t, &ast.BinaryExpression{}, binary.Left)
		assert.IsType(t, &ast.IdentifierExpression{}, binary.Right)
	})

	t.Run("coalescing is right associative", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("a ?? b ?? c"))
		require.NoError(t, err)

		require.IsType(t, &ast.BinaryExpression{}, expression)
		binary := expression.(*ast.BinaryExpression)
		assert.IsType(t, &ast.IdentifierExpression{}, binary.Left)
		assert.IsType(t, &ast.BinaryExpression{}, binary.Right)
	})

	t.Run("conditional", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("a ? b : c ? d : e"))
		require.NoError(t, err)

		require.IsType(t, &ast.ConditionalExpression{}, expression)
		conditional := expression.(*ast.ConditionalExpression)
		assert.IsType(t, &ast.ConditionalExpression{}, conditional.Else)
	})
}

func TestParseExpressionRoundTrip(t *testing.T) {

	t.Parallel()

	for _, input := range []string{
		"a.b(c, d)[e]",
		"!a && (b || c)",
		"-a * (b + c)",
		"x = y ?? z",
		"this.Value = value",
		"new List<int>(1, 2)",
		"default(int)",
		"default",
		"a == null ? 0 : a.Count",
		"(int)x",
		"(string)this.Name",
		"_ = F()",
		"true != false",
		"a <= b",
		`"a\tb"`,
	} {
		assert.Equal(t, input, parseExpressionString(t, input), input)
	}
}

func TestParseCastOrParenthesized(t *testing.T) {

	t.Parallel()

	t.Run("cast", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("(List<int>) xs"))
		require.NoError(t, err)

		require.IsType(t, &ast.CastExpression{}, expression)
		cast := expression.(*ast.CastExpression)
		assert.Equal(t, "List<int>", cast.Type.Name)
		assert.Equal(t, rng(0, 13), cast.Range)
	})

	t.Run("parenthesized followed by operator", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("(a) + b"))
		require.NoError(t, err)

		require.IsType(t, &ast.BinaryExpression{}, expression)
		binary := expression.(*ast.BinaryExpression)
		assert.IsType(t, &ast.ParenthesizedExpression{}, binary.Left)
	})

	t.Run("parenthesized followed by member access", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("(a).b"))
		require.NoError(t, err)

		require.IsType(t, &ast.MemberAccessExpression{}, expression)
		access := expression.(*ast.MemberAccessExpression)
		assert.IsType(t, &ast.ParenthesizedExpression{}, access.Target)
	})

	t.Run("parenthesized expression which is not a type", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte("(a + b)"))
		require.NoError(t, err)

		assert.IsType(t, &ast.ParenthesizedExpression{}, expression)
	})
}

func TestParseProceed(t *testing.T) {

	t.Parallel()

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		actual, err := ParseExpression([]byte("proceed()"))
		require.NoError(t, err)

		AssertEqualWithDiff(t,
			&ast.ProceedExpression{
				Range: rng(0, 8),
			},
			actual,
		)
	})

	t.Run("target, order and hint", func(t *testing.T) {
		t.Parallel()

		actual, err := ParseExpression([]byte("proceed<C.Foo(int)>.original.inline(x)"))
		require.NoError(t, err)

		AssertEqualWithDiff(t,
			&ast.ProceedExpression{
				Target: common.DeclarationID{
					Type:      "C",
					Member:    "Foo",
					Signature: "(int)",
				},
				Order: ast.ProceedOrderOriginal,
				Hint:  ast.InlineHintInline,
				Arguments: []ast.Expression{
					&ast.IdentifierExpression{
						Identifier: "x",
						Range:      rng(36, 36),
					},
				},
				Range: rng(0, 37),
			},
			actual,
		)
	})

	t.Run("accessor", func(t *testing.T) {
		t.Parallel()

		actual, err := ParseExpression([]byte("proceed.final.set(value)"))
		require.NoError(t, err)

		require.IsType(t, &ast.ProceedExpression{}, actual)
		proceed := actual.(*ast.ProceedExpression)
		assert.Equal(t, ast.ProceedOrderFinal, proceed.Order)
		assert.Equal(t, common.AccessorKindSet, proceed.Accessor)
		assert.Len(t, proceed.Arguments, 1)
	})

	t.Run("invalid selector", func(t *testing.T) {
		t.Parallel()

		_, err := ParseExpression([]byte("proceed.next()"))
		require.Error(t, err)

		var parseErr Error
		require.ErrorAs(t, err, &parseErr)
		require.Len(t, parseErr.Errors, 1)
		assert.IsType(t, &SyntaxError{}, parseErr.Errors[0])
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		_, err := ParseExpression([]byte("proceed<Foo>()"))
		require.Error(t, err)
	})
}

func TestParseStringLiteral(t *testing.T) {

	t.Parallel()

	t.Run("escapes", func(t *testing.T) {
		t.Parallel()

		expression, err := ParseExpression([]byte(`"a\tbA\x41\"\\"`))
		require.NoError(t, err)

		require.IsType(t, &ast.LiteralExpression{}, expression)
		assert.Equal(t, "a\tbAA\"\\", expression.(*ast.LiteralExpression).Value)
	})

	t.Run("invalid escape", func(t *testing.T) {
		t.Parallel()

		_, err := ParseExpression([]byte(`"\q"`))
		require.Error(t, err)

		var parseErr Error
		require.ErrorAs(t, err, &parseErr)
		require.Len(t, parseErr.Errors, 1)
		require.IsType(t, &SyntaxError{}, parseErr.Errors[0])
		assert.Equal(t, pos(1, 1, 1), parseErr.Errors[0].(*SyntaxError).Pos)
	})

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()

		_, err := ParseExpression([]byte(`"abc`))
		require.Error(t, err)
	})
}

func TestParseInterpolatedString(t *testing.T) {

	t.Parallel()

	actual, err := ParseExpression([]byte(`$"a{x + 1}b{{c}}"`))
	require.NoError(t, err)

	AssertEqualWithDiff(t,
		&ast.InterpolatedStringExpression{
			Texts: []string{"a", "b{c}"},
			Expressions: []ast.Expression{
				&ast.BinaryExpression{
					Operation: ast.BinaryOperationPlus,
					Left: &ast.IdentifierExpression{
						Identifier: "x",
						Range:      rng(4, 4),
					},
					Right: &ast.LiteralExpression{
						Kind:  ast.LiteralKindInteger,
						Value: "1",
						Range: rng(8, 8),
					},
					Range: rng(4, 8),
				},
			},
			Range: rng(0, 16),
		},
		actual,
	)
}

func TestParseKeywordAsIdentifier(t *testing.T) {

	t.Parallel()

	_, err := ParseExpression([]byte("class"))
	require.Error(t, err)

	var parseErr Error
	require.ErrorAs(t, err, &parseErr)
	require.Len(t, parseErr.Errors, 1)
	assert.IsType(t, &KeywordAsIdentifierError{}, parseErr.Errors[0])
}

func TestParseLexerError(t *testing.T) {

	t.Parallel()

	_, err := ParseExpression([]byte("a # b"))
	require.Error(t, err)

	var parseErr Error
	require.ErrorAs(t, err, &parseErr)
	require.Len(t, parseErr.Errors, 1)
	require.IsType(t, &SyntaxError{}, parseErr.Errors[0])
	assert.Equal(t, pos(2, 1, 2), parseErr.Errors[0].(*SyntaxError).Pos)
}

func TestParseType(t *testing.T) {

	t.Parallel()

	for input, expected := range map[string]string{
		"int":                        "int",
		"System.Int32":               "System.Int32",
		"Dictionary<string,int>":     "Dictionary<string, int>",
		"List< List<int> >":          "List<List<int>>",
		"int[][]":                    "int[][]",
		"int?":                       "int?",
		"List<int?>[]":               "List<int?>[]",
		"System.Collections.List<T>": "System.Collections.List<T>",
	} {
		typ, err := ParseType([]byte(input))
		require.NoError(t, err, input)
		assert.Equal(t, expected, typ.Name, input)
	}
}
