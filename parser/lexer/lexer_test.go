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

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/onflow/aspectlink/ast"
	. "github.com/onflow/aspectlink/test_utils/common_utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func lexAll(t *testing.T, input string) []Token {
	tokenStream, err := Lex([]byte(input))
	require.NoError(t, err)

	tokens := make([]Token, 0)
	for {
		token := tokenStream.Next()
		tokens = append(tokens, token)
		if token.Is(TokenEOF) {
			return tokens
		}
	}
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, token := range tokens {
		types[i] = token.Type
	}
	return types
}

func TestLexBasic(t *testing.T) {

	t.Parallel()

	t.Run("compound assignment", func(t *testing.T) {

		t.Parallel()

		AssertEqualWithDiff(t,
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 0, Line: 1, Column: 0},
						EndPos:   ast.Position{Offset: 0, Line: 1, Column: 0},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: false},
					Range: ast.Range{
						StartPos: ast.Position{Offset: 1, Line: 1, Column: 1},
						EndPos:   ast.Position{Offset: 1, Line: 1, Column: 1},
					},
				},
				{
					Type: TokenPlusEqual,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 2, Line: 1, Column: 2},
						EndPos:   ast.Position{Offset: 3, Line: 1, Column: 3},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: false},
					Range: ast.Range{
						StartPos: ast.Position{Offset: 4, Line: 1, Column: 4},
						EndPos:   ast.Position{Offset: 4, Line: 1, Column: 4},
					},
				},
				{
					Type: TokenIntegerLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 5, Line: 1, Column: 5},
						EndPos:   ast.Position{Offset: 5, Line: 1, Column: 5},
					},
				},
				{
					Type: TokenSemicolon,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 6, Line: 1, Column: 6},
						EndPos:   ast.Position{Offset: 6, Line: 1, Column: 6},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 7, Line: 1, Column: 7},
						EndPos:   ast.Position{Offset: 7, Line: 1, Column: 7},
					},
				},
			},
			lexAll(t, "a += 1;"),
		)
	})

	t.Run("operators", func(t *testing.T) {

		t.Parallel()

		assert.Equal(t,
			[]TokenType{
				TokenDoubleQuestionMarkEqual,
				TokenDoubleQuestionMark,
				TokenQuestionMark,
				TokenLessEqual,
				TokenGreater,
				TokenNotEqual,
				TokenEqualEqual,
				TokenAmpersandAmpersand,
				TokenVerticalBarVerticalBar,
				TokenSlashEqual,
				TokenPercent,
				TokenEOF,
			},
			tokenTypes(lexAll(t, "??=???<=>!===&&||/=%")),
		)
	})

	t.Run("integer literals", func(t *testing.T) {

		t.Parallel()

		input := "0xFF 1_000 10L"
		tokens := lexAll(t, input)

		assert.Equal(t,
			[]TokenType{
				TokenIntegerLiteral,
				TokenSpace,
				TokenIntegerLiteral,
				TokenSpace,
				TokenIntegerLiteral,
				TokenEOF,
			},
			tokenTypes(tokens),
		)

		source := []byte(input)
		assert.Equal(t, "0xFF", string(tokens[0].Source(source)))
		assert.Equal(t, "1_000", string(tokens[2].Source(source)))
		assert.Equal(t, "10L", string(tokens[4].Source(source)))
	})
}

func TestLexPositions(t *testing.T) {

	t.Parallel()

	t.Run("multi-byte identifier and newline", func(t *testing.T) {

		t.Parallel()

		AssertEqualWithDiff(t,
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 0, Line: 1, Column: 0},
						EndPos:   ast.Position{Offset: 1, Line: 1, Column: 0},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: true},
					Range: ast.Range{
						StartPos: ast.Position{Offset: 2, Line: 1, Column: 1},
						EndPos:   ast.Position{Offset: 2, Line: 1, Column: 1},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 3, Line: 2, Column: 0},
						EndPos:   ast.Position{Offset: 3, Line: 2, Column: 0},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Offset: 4, Line: 2, Column: 1},
						EndPos:   ast.Position{Offset: 4, Line: 2, Column: 1},
					},
				},
			},
			lexAll(t, "\u00e4\nb"),
		)
	})

	t.Run("grapheme clusters count as one column", func(t *testing.T) {

		t.Parallel()

		// e followed by a combining acute accent
		tokens := lexAll(t, "\"e\u0301\" x")

		require.Len(t, tokens, 4)

		assert.Equal(t,
			ast.Range{
				StartPos: ast.Position{Offset: 0, Line: 1, Column: 0},
				EndPos:   ast.Position{Offset: 4, Line: 1, Column: 2},
			},
			tokens[0].Range,
		)
		assert.Equal(t,
			ast.Range{
				StartPos: ast.Position{Offset: 6, Line: 1, Column: 4},
				EndPos:   ast.Position{Offset: 6, Line: 1, Column: 4},
			},
			tokens[2].Range,
		)
	})
}

func TestLexStrings(t *testing.T) {

	t.Parallel()

	t.Run("escaped quote", func(t *testing.T) {

		t.Parallel()

		input := `"a\"b" c`
		tokens := lexAll(t, input)

		assert.Equal(t,
			[]TokenType{TokenString, TokenSpace, TokenIdentifier, TokenEOF},
			tokenTypes(tokens),
		)
		assert.Equal(t, `"a\"b"`, string(tokens[0].Source([]byte(input))))
	})

	t.Run("interpolated with nested braces and strings", func(t *testing.T) {

		t.Parallel()

		input := `$"a{{{f("}")}}}b" + 1`
		tokens := lexAll(t, input)

		assert.Equal(t,
			[]TokenType{
				TokenInterpolatedString,
				TokenSpace,
				TokenPlus,
				TokenSpace,
				TokenIntegerLiteral,
				TokenEOF,
			},
			tokenTypes(tokens),
		)
		assert.Equal(t, `$"a{{{f("}")}}}b"`, string(tokens[0].Source([]byte(input))))
	})
}

func TestLexComments(t *testing.T) {

	t.Parallel()

	input := "// line\n/** doc */x"
	tokens := lexAll(t, input)

	assert.Equal(t,
		[]TokenType{
			TokenLineComment,
			TokenSpace,
			TokenBlockComment,
			TokenIdentifier,
			TokenEOF,
		},
		tokenTypes(tokens),
	)

	source := []byte(input)
	assert.Equal(t, "// line", string(tokens[0].Source(source)))
	assert.Equal(t, "/** doc */", string(tokens[2].Source(source)))
}

func TestLexErrors(t *testing.T) {

	t.Parallel()

	tokens := lexAll(t, "a # b")

	require.Len(t, tokens, 4)
	assert.Equal(t, TokenError, tokens[2].Type)
	assert.EqualError(t,
		tokens[2].SpaceOrError.(error),
		"unrecognized character: U+0023 '#'",
	)
}

func TestLexRange(t *testing.T) {

	t.Parallel()

	input := []byte("xx(a+b)yy")

	tokenStream, err := LexRange(input, 3, 6, ast.Position{Offset: 3, Line: 4, Column: 10})
	require.NoError(t, err)

	first := tokenStream.Next()
	assert.Equal(t, TokenIdentifier, first.Type)
	assert.Equal(t,
		ast.Position{Offset: 3, Line: 4, Column: 10},
		first.StartPos,
	)

	assert.Equal(t, TokenPlus, tokenStream.Next().Type)
	assert.Equal(t, TokenIdentifier, tokenStream.Next().Type)
	assert.Equal(t, TokenEOF, tokenStream.Next().Type)
}
