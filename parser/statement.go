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
	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/parser/lexer"
)

func parseStatements(p *parser, endTokenType lexer.TokenType) (statements []ast.Statement) {
	for {
		p.skipSpaceAndComments()
		if p.current.Is(endTokenType) || p.current.Is(lexer.TokenEOF) {
			return
		}

		statement := parseStatement(p)
		statements = append(statements, statement)
	}
}

// parseBody parses a block which is a body of a method or accessor,
// i.e. the scope of its labels.
func parseBody(p *parser) *ast.Block {
	p.beginBody()
	block := parseBlock(p)
	p.endBody()
	return block
}

func parseBlock(p *parser) *ast.Block {
	startToken := p.mustOne(lexer.TokenBraceOpen)
	statements := parseStatements(p, lexer.TokenBraceClose)
	endToken := p.mustOne(lexer.TokenBraceClose)

	return &ast.Block{
		Statements: statements,
		Range: ast.NewRange(
			startToken.StartPos,
			endToken.EndPos,
		),
	}
}

func parseStatement(p *parser) ast.Statement {
	p.skipSpaceAndComments()

	switch p.current.Type {
	case lexer.TokenBraceOpen:
		return parseBlock(p)

	case lexer.TokenSemicolon:
		token := p.current
		p.next()
		return &ast.EmptyStatement{
			Range: token.Range,
		}

	case lexer.TokenIdentifier:
		switch p.currentWord() {
		case KeywordReturn:
			return parseReturnStatement(p)
		case KeywordIf:
			return parseIfStatement(p)
		case KeywordWhile:
			return parseWhileStatement(p)
		case KeywordDo:
			return parseDoStatement(p)
		case KeywordForeach:
			return parseForEachStatement(p)
		case KeywordGoto:
			return parseGotoStatement(p)
		case KeywordBreak:
			token := p.current
			p.next()
			endToken := p.mustOne(lexer.TokenSemicolon)
			return &ast.BreakStatement{
				Range: ast.NewRange(token.StartPos, endToken.EndPos),
			}
		case KeywordContinue:
			token := p.current
			p.next()
			endToken := p.mustOne(lexer.TokenSemicolon)
			return &ast.ContinueStatement{
				Range: ast.NewRange(token.StartPos, endToken.EndPos),
			}
		case KeywordThrow:
			return parseThrowStatement(p)
		}

		if statement, ok := parseLabeledStatement(p); ok {
			return statement
		}

		if statement, ok := tryParse(p, func() ast.Statement {
			return parseLocalDeclarationStatement(p)
		}); ok {
			return statement
		}
	}

	return parseExpressionStatement(p)
}

func parseReturnStatement(p *parser) *ast.ReturnStatement {
	startToken := p.current
	p.next()

	var expression ast.Expression
	p.skipSpaceAndComments()
	if !p.current.Is(lexer.TokenSemicolon) {
		expression = parseExpression(p, lowestBindingPower)
	}

	endToken := p.mustOne(lexer.TokenSemicolon)

	return &ast.ReturnStatement{
		Expression: expression,
		Range: ast.NewRange(
			startToken.StartPos,
			endToken.EndPos,
		),
	}
}

func parseThrowStatement(p *parser) *ast.ThrowStatement {
	startToken := p.current
	p.next()

	expression := parseExpression(p, lowestBindingPower)
	endToken := p.mustOne(lexer.TokenSemicolon)

	return &ast.ThrowStatement{
		Expression: expression,
		Range: ast.NewRange(
			startToken.StartPos,
			endToken.EndPos,
		),
	}
}

func parseCondition(p *parser) ast.Expression {
	p.mustOne(lexer.TokenParenOpen)
	test := parseExpression(p, lowestBindingPower)
	p.mustOne(lexer.TokenParenClose)
	return test
}

func parseIfStatement(p *parser) *ast.IfStatement {
	startToken := p.current
	p.next()

	test := parseCondition(p)
	thenStatement := parseStatement(p)
	endPos := thenStatement.EndPosition()

	var elseStatement ast.Statement

	state := p.save()
	p.skipSpaceAndComments()
	if p.isKeyword(KeywordElse) {
		p.next()
		elseStatement = parseStatement(p)
		endPos = elseStatement.EndPosition()
	} else {
		p.restore(state)
	}

	return &ast.IfStatement{
		Test: test,
		Then: thenStatement,
		Else: elseStatement,
		Range: ast.NewRange(
			startToken.StartPos,
			endPos,
		),
	}
}

func parseWhileStatement(p *parser) *ast.WhileStatement {
	startToken := p.current
	p.next()

	test := parseCondition(p)
	body := parseStatement(p)

	return &ast.WhileStatement{
		Test: test,
		Body: body,
		Range: ast.NewRange(
			startToken.StartPos,
			body.EndPosition(),
		),
	}
}

func parseDoStatement(p *parser) *ast.DoStatement {
	startToken := p.current
	p.next()

	body := parseStatement(p)
	p.mustKeyword(KeywordWhile)
	test := parseCondition(p)
	endToken := p.mustOne(lexer.TokenSemicolon)

	return &ast.DoStatement{
		Body: body,
		Test: test,
		Range: ast.NewRange(
			startToken.StartPos,
			endToken.EndPos,
		),
	}
}

func parseForEachStatement(p *parser) *ast.ForEachStatement {
	startToken := p.current
	p.next()

	p.mustOne(lexer.TokenParenOpen)
	typ := parseType(p)
	identifier, _ := p.mustIdentifier()
	p.mustKeyword(KeywordIn)
	collection := parseExpression(p, lowestBindingPower)
	p.mustOne(lexer.TokenParenClose)

	body := parseStatement(p)

	return &ast.ForEachStatement{
		Type:       typ,
		Identifier: identifier,
		Collection: collection,
		Body:       body,
		Range: ast.NewRange(
			startToken.StartPos,
			body.EndPosition(),
		),
	}
}

func parseGotoStatement(p *parser) *ast.GotoStatement {
	startToken := p.current
	p.next()

	name, _ := p.mustIdentifier()
	endToken := p.mustOne(lexer.TokenSemicolon)

	statement := &ast.GotoStatement{
		Label: p.label(name),
		Range: ast.NewRange(
			startToken.StartPos,
			endToken.EndPos,
		),
	}
	p.gotos = append(p.gotos, statement)

	return statement
}

// parseLabeledStatement parses `label: statement`,
// if the current identifier is followed by a colon.
func parseLabeledStatement(p *parser) (ast.Statement, bool) {
	if IsHardKeyword(p.currentWord()) || !p.peekAfterCurrent(lexer.TokenColon) {
		return nil, false
	}

	nameToken := p.current
	name := p.currentWord()
	p.next()
	p.mustOne(lexer.TokenColon)

	if _, ok := p.definedLabels[name]; ok {
		panic(NewSyntaxError(nameToken.StartPos, "duplicate label `%s`", name))
	}
	p.definedLabels[name] = struct{}{}

	statement := parseStatement(p)

	return &ast.LabeledStatement{
		Label:     p.label(name),
		Statement: statement,
		Range: ast.NewRange(
			nameToken.StartPos,
			statement.EndPosition(),
		),
	}, true
}

// peekAfterCurrent returns true if the token after the current token,
// whitespace and comments has the given type.
func (p *parser) peekAfterCurrent(tokenType lexer.TokenType) bool {
	state := p.save()
	defer p.restore(state)

	p.next()
	return p.peek(tokenType)
}

func parseLocalDeclarationStatement(p *parser) *ast.LocalDeclarationStatement {
	typ := parseType(p)
	identifier, _ := p.mustIdentifier()

	var value ast.Expression
	p.skipSpaceAndComments()
	if p.current.Is(lexer.TokenEqual) {
		p.next()
		value = parseExpression(p, lowestBindingPower)
	}

	endToken := p.mustOne(lexer.TokenSemicolon)

	return &ast.LocalDeclarationStatement{
		Type:       typ,
		Identifier: identifier,
		Value:      value,
		Range: ast.NewRange(
			typ.StartPos,
			endToken.EndPos,
		),
	}
}

func parseExpressionStatement(p *parser) *ast.ExpressionStatement {
	expression := parseExpression(p, lowestBindingPower)
	p.mustOne(lexer.TokenSemicolon)

	return &ast.ExpressionStatement{
		Expression: expression,
	}
}
