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
	"fmt"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/parser/lexer"
)

const lowestBindingPower = 0

const (
	exprLeftBindingPowerAssignment = 10 * (iota + 1)
	exprLeftBindingPowerConditional
	exprLeftBindingPowerCoalescing
	exprLeftBindingPowerLogicalOr
	exprLeftBindingPowerLogicalAnd
	exprLeftBindingPowerEquality
	exprLeftBindingPowerRelational
	exprLeftBindingPowerAdditive
	exprLeftBindingPowerMultiplicative
	exprLeftBindingPowerUnaryPrefix
	exprLeftBindingPowerAccess
)

type infixExprFunc func(left, right ast.Expression) ast.Expression
type prefixExprFunc func(right ast.Expression, tokenRange ast.Range) ast.Expression
type exprNullDenotationFunc func(parser *parser, token lexer.Token) ast.Expression
type exprLeftDenotationFunc func(parser *parser, token lexer.Token, left ast.Expression) ast.Expression

type literalExpr struct {
	tokenType      lexer.TokenType
	nullDenotation exprNullDenotationFunc
}

type infixExpr struct {
	tokenType        lexer.TokenType
	leftBindingPower int
	rightAssociative bool
	leftDenotation   infixExprFunc
}

type binaryExpr struct {
	tokenType        lexer.TokenType
	leftBindingPower int
	rightAssociative bool
	operation        ast.BinaryOperation
}

type assignmentExpr struct {
	tokenType lexer.TokenType
	operation ast.AssignmentOperation
}

type prefixExpr struct {
	tokenType      lexer.TokenType
	bindingPower   int
	nullDenotation prefixExprFunc
}

type unaryExpr struct {
	tokenType    lexer.TokenType
	bindingPower int
	operation    ast.UnaryOperation
}

var exprNullDenotations = [lexer.TokenMax]exprNullDenotationFunc{}
var exprLeftBindingPowers = [lexer.TokenMax]int{}
var exprLeftDenotations = [lexer.TokenMax]exprLeftDenotationFunc{}

func defineExpr(def any) {
	switch def := def.(type) {
	case infixExpr:
		tokenType := def.tokenType

		setExprLeftBindingPower(tokenType, def.leftBindingPower)

		rightBindingPower := def.leftBindingPower
		if def.rightAssociative {
			rightBindingPower--
		}

		setExprLeftDenotation(
			tokenType,
			func(parser *parser, _ lexer.Token, left ast.Expression) ast.Expression {
				right := parseExpression(parser, rightBindingPower)
				return def.leftDenotation(left, right)
			},
		)

	case binaryExpr:
		defineExpr(infixExpr{
			tokenType:        def.tokenType,
			leftBindingPower: def.leftBindingPower,
			rightAssociative: def.rightAssociative,
			leftDenotation: func(left, right ast.Expression) ast.Expression {
				return &ast.BinaryExpression{
					Operation: def.operation,
					Left:      left,
					Right:     right,
					Range: ast.NewRange(
						left.StartPosition(),
						right.EndPosition(),
					),
				}
			},
		})

	case assignmentExpr:
		defineExpr(infixExpr{
			tokenType:        def.tokenType,
			leftBindingPower: exprLeftBindingPowerAssignment,
			rightAssociative: true,
			leftDenotation: func(left, right ast.Expression) ast.Expression {
				return &ast.AssignmentExpression{
					Operation: def.operation,
					Target:    left,
					Value:     right,
					Range: ast.NewRange(
						left.StartPosition(),
						right.EndPosition(),
					),
				}
			},
		})

	case literalExpr:
		setExprNullDenotation(def.tokenType, def.nullDenotation)

	case prefixExpr:
		setExprNullDenotation(
			def.tokenType,
			func(parser *parser, token lexer.Token) ast.Expression {
				right := parseExpression(parser, def.bindingPower)
				return def.nullDenotation(right, token.Range)
			},
		)

	case unaryExpr:
		defineExpr(prefixExpr{
			tokenType:    def.tokenType,
			bindingPower: def.bindingPower,
			nullDenotation: func(right ast.Expression, tokenRange ast.Range) ast.Expression {
				return &ast.UnaryExpression{
					Operation:  def.operation,
					Expression: right,
					Range: ast.NewRange(
						tokenRange.StartPos,
						right.EndPosition(),
					),
				}
			},
		})

	default:
		panic(errors.NewUnreachableError())
	}
}

func setExprNullDenotation(tokenType lexer.TokenType, nullDenotation exprNullDenotationFunc) {
	current := exprNullDenotations[tokenType]
	if current != nil {
		panic(errors.NewUnexpectedError(
			"expression null denotation for token %s already exists",
			tokenType,
		))
	}
	exprNullDenotations[tokenType] = nullDenotation
}

func setExprLeftBindingPower(tokenType lexer.TokenType, power int) {
	current := exprLeftBindingPowers[tokenType]
	if current > power {
		return
	}
	exprLeftBindingPowers[tokenType] = power
}

func setExprLeftDenotation(tokenType lexer.TokenType, leftDenotation exprLeftDenotationFunc) {
	current := exprLeftDenotations[tokenType]
	if current != nil {
		panic(errors.NewUnexpectedError(
			"expression left denotation for token %s already exists",
			tokenType,
		))
	}
	exprLeftDenotations[tokenType] = leftDenotation
}

func init() {
	defineAssignmentExpressions()
	defineConditionalExpression()
	defineBinaryExpressions()
	defineUnaryExpressions()
	defineLiteralExpressions()
	defineIdentifierExpression()
	defineParenthesizedOrCastExpression()
	defineMemberAccessExpression()
	defineInvocationExpression()
	defineElementAccessExpression()
}

func defineAssignmentExpressions() {
	for _, def := range []assignmentExpr{
		{tokenType: lexer.TokenEqual, operation: ast.AssignmentOperationSimple},
		{tokenType: lexer.TokenPlusEqual, operation: ast.AssignmentOperationAdd},
		{tokenType: lexer.TokenMinusEqual, operation: ast.AssignmentOperationSubtract},
		{tokenType: lexer.TokenStarEqual, operation: ast.AssignmentOperationMultiply},
		{tokenType: lexer.TokenSlashEqual, operation: ast.AssignmentOperationDivide},
		{tokenType: lexer.TokenDoubleQuestionMarkEqual, operation: ast.AssignmentOperationCoalesce},
	} {
		defineExpr(def)
	}
}

func defineConditionalExpression() {
	setExprLeftBindingPower(lexer.TokenQuestionMark, exprLeftBindingPowerConditional)
	setExprLeftDenotation(
		lexer.TokenQuestionMark,
		func(p *parser, _ lexer.Token, left ast.Expression) ast.Expression {
			thenExpression := parseExpression(p, lowestBindingPower)
			p.mustOne(lexer.TokenColon)
			// right associative
			elseExpression := parseExpression(p, exprLeftBindingPowerConditional-1)
			return &ast.ConditionalExpression{
				Test: left,
				Then: thenExpression,
				Else: elseExpression,
				Range: ast.NewRange(
					left.StartPosition(),
					elseExpression.EndPosition(),
				),
			}
		},
	)
}

func defineBinaryExpressions() {
	for _, def := range []binaryExpr{
		{
			tokenType:        lexer.TokenDoubleQuestionMark,
			leftBindingPower: exprLeftBindingPowerCoalescing,
			rightAssociative: true,
			operation:        ast.BinaryOperationCoalesce,
		},
		{
			tokenType:        lexer.TokenVerticalBarVerticalBar,
			leftBindingPower: exprLeftBindingPowerLogicalOr,
			operation:        ast.BinaryOperationOr,
		},
		{
			tokenType:        lexer.TokenAmpersandAmpersand,
			leftBindingPower: exprLeftBindingPowerLogicalAnd,
			operation:        ast.BinaryOperationAnd,
		},
		{
			tokenType:        lexer.TokenEqualEqual,
			leftBindingPower: exprLeftBindingPowerEquality,
			operation:        ast.BinaryOperationEqual,
		},
		{
			tokenType:        lexer.TokenNotEqual,
			leftBindingPower: exprLeftBindingPowerEquality,
			operation:        ast.BinaryOperationNotEqual,
		},
		{
			tokenType:        lexer.TokenLess,
			leftBindingPower: exprLeftBindingPowerRelational,
			operation:        ast.BinaryOperationLess,
		},
		{
			tokenType:        lexer.TokenLessEqual,
			leftBindingPower: exprLeftBindingPowerRelational,
			operation:        ast.BinaryOperationLessEqual,
		},
		{
			tokenType:        lexer.TokenGreater,
			leftBindingPower: exprLeftBindingPowerRelational,
			operation:        ast.BinaryOperationGreater,
		},
		{
			tokenType:        lexer.TokenGreaterEqual,
			leftBindingPower: exprLeftBindingPowerRelational,
			operation:        ast.BinaryOperationGreaterEqual,
		},
		{
			tokenType:        lexer.TokenPlus,
			leftBindingPower: exprLeftBindingPowerAdditive,
			operation:        ast.BinaryOperationPlus,
		},
		{
			tokenType:        lexer.TokenMinus,
			leftBindingPower: exprLeftBindingPowerAdditive,
			operation:        ast.BinaryOperationMinus,
		},
		{
			tokenType:        lexer.TokenStar,
			leftBindingPower: exprLeftBindingPowerMultiplicative,
			operation:        ast.BinaryOperationMul,
		},
		{
			tokenType:        lexer.TokenSlash,
			leftBindingPower: exprLeftBindingPowerMultiplicative,
			operation:        ast.BinaryOperationDiv,
		},
		{
			tokenType:        lexer.TokenPercent,
			leftBindingPower: exprLeftBindingPowerMultiplicative,
			operation:        ast.BinaryOperationMod,
		},
	} {
		defineExpr(def)
	}
}

func defineUnaryExpressions() {
	defineExpr(unaryExpr{
		tokenType:    lexer.TokenExclamationMark,
		bindingPower: exprLeftBindingPowerUnaryPrefix,
		operation:    ast.UnaryOperationNot,
	})

	defineExpr(unaryExpr{
		tokenType:    lexer.TokenMinus,
		bindingPower: exprLeftBindingPowerUnaryPrefix,
		operation:    ast.UnaryOperationMinus,
	})
}

func defineLiteralExpressions() {
	defineExpr(literalExpr{
		tokenType: lexer.TokenIntegerLiteral,
		nullDenotation: func(p *parser, token lexer.Token) ast.Expression {
			return &ast.LiteralExpression{
				Kind:  ast.LiteralKindInteger,
				Value: string(token.Source(p.tokens.Input())),
				Range: token.Range,
			}
		},
	})

	defineExpr(literalExpr{
		tokenType: lexer.TokenString,
		nullDenotation: func(p *parser, token lexer.Token) ast.Expression {
			value := parseStringLiteral(token.Source(p.tokens.Input()), token.StartPos)
			return &ast.LiteralExpression{
				Kind:  ast.LiteralKindString,
				Value: value,
				Range: token.Range,
			}
		},
	})

	defineExpr(literalExpr{
		tokenType:      lexer.TokenInterpolatedString,
		nullDenotation: parseInterpolatedString,
	})
}

func defineIdentifierExpression() {
	defineExpr(literalExpr{
		tokenType: lexer.TokenIdentifier,
		nullDenotation: func(p *parser, token lexer.Token) ast.Expression {
			identifier := string(token.Source(p.tokens.Input()))

			switch identifier {
			case KeywordThis:
				return &ast.ThisExpression{
					Range: token.Range,
				}

			case KeywordTrue, KeywordFalse:
				return &ast.LiteralExpression{
					Kind:  ast.LiteralKindBoolean,
					Value: identifier,
					Range: token.Range,
				}

			case KeywordNull:
				return &ast.LiteralExpression{
					Kind:  ast.LiteralKindNull,
					Value: identifier,
					Range: token.Range,
				}

			case KeywordDefault:
				return parseDefaultExpression(p, token)

			case KeywordNew:
				return parseNewExpression(p, token)

			case KeywordProceed:
				return parseProceedExpression(p, token)

			case "_":
				return &ast.DiscardExpression{
					Range: token.Range,
				}
			}

			if IsHardKeyword(identifier) {
				panic(&KeywordAsIdentifierError{
					Keyword: identifier,
					Range:   token.Range,
				})
			}

			return &ast.IdentifierExpression{
				Identifier: identifier,
				Range:      token.Range,
			}
		},
	})
}

func parseDefaultExpression(p *parser, token lexer.Token) ast.Expression {
	if !p.peek(lexer.TokenParenOpen) {
		return &ast.DefaultExpression{
			Range: token.Range,
		}
	}

	p.mustOne(lexer.TokenParenOpen)
	typ := parseType(p)
	endToken := p.mustOne(lexer.TokenParenClose)

	return &ast.DefaultExpression{
		Type: typ,
		Range: ast.NewRange(
			token.StartPos,
			endToken.EndPos,
		),
	}
}

func parseNewExpression(p *parser, token lexer.Token) ast.Expression {
	typ := parseType(p)
	p.mustOne(lexer.TokenParenOpen)
	arguments, endPos := parseArguments(p, lexer.TokenParenClose)

	return &ast.NewExpression{
		Type:      typ,
		Arguments: arguments,
		Range: ast.NewRange(
			token.StartPos,
			endPos,
		),
	}
}

func defineParenthesizedOrCastExpression() {
	setExprLeftBindingPower(lexer.TokenParenOpen, exprLeftBindingPowerAccess)
	setExprNullDenotation(
		lexer.TokenParenOpen,
		func(p *parser, startToken lexer.Token) ast.Expression {
			cast, ok := tryParse(p, func() ast.Expression {
				return parseCastExpression(p, startToken)
			})
			if ok {
				return cast
			}

			expression := parseExpression(p, lowestBindingPower)
			endToken := p.mustOne(lexer.TokenParenClose)

			return &ast.ParenthesizedExpression{
				Expression: expression,
				Range: ast.NewRange(
					startToken.StartPos,
					endToken.EndPos,
				),
			}
		},
	)
}

// parseCastExpression parses the rest of a cast expression `(T)e`.
// It fails if the parenthesized part is not followed by an operand,
// e.g. for `(a) + b`, so the caller can parse a parenthesized expression instead.
func parseCastExpression(p *parser, startToken lexer.Token) ast.Expression {
	typ := parseType(p)
	p.mustOne(lexer.TokenParenClose)

	p.skipSpaceAndComments()
	if !p.startsCastOperand() {
		panic(p.unexpected("cast operand"))
	}

	expression := parseExpression(p, exprLeftBindingPowerUnaryPrefix)

	return &ast.CastExpression{
		Type:       typ,
		Expression: expression,
		Range: ast.NewRange(
			startToken.StartPos,
			expression.EndPosition(),
		),
	}
}

func (p *parser) startsCastOperand() bool {
	switch p.current.Type {
	case lexer.TokenIntegerLiteral,
		lexer.TokenString,
		lexer.TokenInterpolatedString,
		lexer.TokenParenOpen,
		lexer.TokenExclamationMark:

		return true

	case lexer.TokenIdentifier:
		switch word := p.currentWord(); word {
		case KeywordThis, KeywordNew, KeywordDefault,
			KeywordTrue, KeywordFalse, KeywordNull:
			return true
		default:
			return !IsHardKeyword(word)
		}
	}

	return false
}

func defineMemberAccessExpression() {
	setExprLeftBindingPower(lexer.TokenDot, exprLeftBindingPowerAccess)
	setExprLeftDenotation(
		lexer.TokenDot,
		func(p *parser, _ lexer.Token, left ast.Expression) ast.Expression {
			name, nameToken := p.mustIdentifier()
			return &ast.MemberAccessExpression{
				Target: left,
				Name:   name,
				Range: ast.NewRange(
					left.StartPosition(),
					nameToken.EndPos,
				),
			}
		},
	)
}

func defineInvocationExpression() {
	setExprLeftDenotation(
		lexer.TokenParenOpen,
		func(p *parser, _ lexer.Token, left ast.Expression) ast.Expression {
			arguments, endPos := parseArguments(p, lexer.TokenParenClose)
			return &ast.InvocationExpression{
				Target:    left,
				Arguments: arguments,
				Range: ast.NewRange(
					left.StartPosition(),
					endPos,
				),
			}
		},
	)
}

func defineElementAccessExpression() {
	setExprLeftBindingPower(lexer.TokenBracketOpen, exprLeftBindingPowerAccess)
	setExprLeftDenotation(
		lexer.TokenBracketOpen,
		func(p *parser, _ lexer.Token, left ast.Expression) ast.Expression {
			arguments, endPos := parseArguments(p, lexer.TokenBracketClose)
			return &ast.ElementAccessExpression{
				Target:    left,
				Arguments: arguments,
				Range: ast.NewRange(
					left.StartPosition(),
					endPos,
				),
			}
		},
	)
}

// parseArguments parses a comma-separated argument list,
// after the opening token, up to and including the given closing token.
// It returns the arguments and the end position of the closing token.
func parseArguments(p *parser, closeTokenType lexer.TokenType) (arguments []ast.Expression, endPos ast.Position) {
	p.skipSpaceAndComments()
	if p.current.Is(closeTokenType) {
		endPos = p.current.EndPos
		p.next()
		return nil, endPos
	}

	for {
		argument := parseExpression(p, lowestBindingPower)
		arguments = append(arguments, argument)

		p.skipSpaceAndComments()
		switch p.current.Type {
		case lexer.TokenComma:
			p.next()

		case closeTokenType:
			endPos = p.current.EndPos
			p.next()
			return arguments, endPos

		default:
			panic(p.unexpected(fmt.Sprintf("%s or %s", lexer.TokenComma, closeTokenType)))
		}
	}
}

// parseProceedExpression parses the rest of a proceed expression:
//
//	proceed [ '<' declaration '>' ] { '.' ( original | final | inline | accessor ) } '(' arguments ')'
func parseProceedExpression(p *parser, token lexer.Token) ast.Expression {
	expression := &ast.ProceedExpression{}

	if p.peek(lexer.TokenLess) {
		p.skipSpaceAndComments()
		expression.Target = parseProceedTarget(p)
	}

	for p.peek(lexer.TokenDot) {
		p.mustOne(lexer.TokenDot)
		word, wordToken := p.mustIdentifier()

		switch word {
		case KeywordOriginal:
			expression.Order = ast.ProceedOrderOriginal

		case KeywordFinal:
			expression.Order = ast.ProceedOrderFinal

		case KeywordInline:
			expression.Hint = ast.InlineHintInline

		default:
			accessor, ok := common.AccessorKindFromKeyword(word)
			if !ok {
				panic(NewSyntaxError(
					wordToken.StartPos,
					"invalid proceed selector `%s`: expected `%s`, `%s`, `%s` or an accessor",
					word,
					KeywordOriginal,
					KeywordFinal,
					KeywordInline,
				))
			}
			expression.Accessor = accessor
		}
	}

	p.mustOne(lexer.TokenParenOpen)
	arguments, endPos := parseArguments(p, lexer.TokenParenClose)

	expression.Arguments = arguments
	expression.Range = ast.NewRange(token.StartPos, endPos)

	return expression
}

// parseProceedTarget parses a declaration identifier enclosed in angle brackets,
// e.g. `<C.Foo(int)>`. The current token is the opening bracket.
func parseProceedTarget(p *parser) common.DeclarationID {
	openToken := p.current
	startOffset := openToken.EndPos.Offset + 1
	p.next()

	depth := 1
	for {
		switch p.current.Type {
		case lexer.TokenLess:
			depth++

		case lexer.TokenGreater:
			depth--
			if depth == 0 {
				endOffset := p.current.StartPos.Offset
				p.next()

				text := string(p.tokens.Input()[startOffset:endOffset])
				id, err := common.ParseDeclarationID(text)
				if err != nil {
					panic(NewSyntaxError(openToken.StartPos, "%s", err.Error()))
				}
				return id
			}

		case lexer.TokenEOF:
			panic(p.unexpected(lexer.TokenGreater.String()))
		}

		p.next()
	}
}

func parseExpression(p *parser, rightBindingPower int) ast.Expression {
	p.skipSpaceAndComments()
	t := p.current
	p.next()

	left := applyExprNullDenotation(p, t)

	for {
		p.skipSpaceAndComments()

		if rightBindingPower >= exprLeftBindingPowers[p.current.Type] {
			break
		}

		t = p.current
		p.next()

		left = applyExprLeftDenotation(p, t, left)
	}

	return left
}

func applyExprNullDenotation(p *parser, token lexer.Token) ast.Expression {
	nullDenotation := exprNullDenotations[token.Type]
	if nullDenotation == nil {
		panic(&UnexpectedTokenError{
			Expected: "expression",
			Got:      token.Type.String(),
			Range:    token.Range,
		})
	}
	return nullDenotation(p, token)
}

func applyExprLeftDenotation(p *parser, token lexer.Token, left ast.Expression) ast.Expression {
	leftDenotation := exprLeftDenotations[token.Type]
	if leftDenotation == nil {
		panic(errors.NewUnexpectedError("missing left denotation for token type: %s", token.Type))
	}
	return leftDenotation(p, token, left)
}
