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
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/parser/lexer"
)

func parseCompilationUnit(p *parser, path string) *ast.CompilationUnit {
	unit := &ast.CompilationUnit{
		Path: path,
	}

	for {
		p.skipSpaceAndComments()
		if !p.isKeyword(KeywordUsing) {
			break
		}
		p.next()
		unit.Usings = append(unit.Usings, parseQualifiedName(p))
		p.mustOne(lexer.TokenSemicolon)
		parseTrailingComments(p)

		// comments of using directives are not preserved
		p.takeComments()
	}

	for {
		p.skipSpaceAndComments()
		if p.current.Is(lexer.TokenEOF) {
			return unit
		}

		leading := p.takeComments()
		typ := parseTypeDeclaration(p)
		typ.Comments = ast.Comments{
			Leading:  leading,
			Trailing: parseTrailingComments(p),
		}
		unit.Types = append(unit.Types, typ)
	}
}

func parseQualifiedName(p *parser) string {
	name, _ := p.mustIdentifier()
	for p.peek(lexer.TokenDot) {
		p.mustOne(lexer.TokenDot)
		part, _ := p.mustIdentifier()
		name += "." + part
	}
	return name
}

// parseModifiers parses a possibly empty sequence of modifiers.
// It returns the start position of the first modifier, if any.
func parseModifiers(p *parser) (modifiers ast.Modifiers, startPos *ast.Position) {
	for {
		p.skipSpaceAndComments()
		if !p.current.Is(lexer.TokenIdentifier) {
			return
		}

		modifier, ok := ast.ModifierFromKeyword(p.currentWord())
		if !ok {
			return
		}
		if modifiers.Has(modifier) {
			panic(NewSyntaxError(p.current.StartPos, "duplicate modifier `%s`", p.currentWord()))
		}
		modifiers |= modifier

		if startPos == nil {
			pos := p.current.StartPos
			startPos = &pos
		}
		p.next()
	}
}

func parseTypeDeclaration(p *parser) *ast.TypeDeclaration {
	modifiers, modifiersStartPos := parseModifiers(p)

	var kind ast.TypeKind
	switch {
	case p.isKeyword(KeywordClass):
		kind = ast.TypeKindClass
	case p.isKeyword(KeywordStruct):
		kind = ast.TypeKindStruct
	default:
		panic(p.unexpected("type declaration"))
	}

	startPos := p.current.StartPos
	if modifiersStartPos != nil {
		startPos = *modifiersStartPos
	}
	p.next()

	name, _ := p.mustIdentifier()

	p.mustOne(lexer.TokenBraceOpen)

	var members []ast.MemberDeclaration
	for {
		// comments inside the previous member are not preserved
		p.takeComments()
		p.skipSpaceAndComments()
		if p.current.Is(lexer.TokenBraceClose) {
			break
		}

		members = append(members, parseMemberWithComments(p))
	}

	p.takeComments()
	endToken := p.mustOne(lexer.TokenBraceClose)

	return &ast.TypeDeclaration{
		Modifiers: modifiers,
		Kind:      kind,
		Name:      name,
		Members:   members,
		Range: ast.NewRange(
			startPos,
			endToken.EndPos,
		),
	}
}

// parseMemberWithComments parses a member declaration,
// the comments preceding it and the comments following it on the same line.
func parseMemberWithComments(p *parser) ast.MemberDeclaration {
	p.skipSpaceAndComments()
	leading := p.takeComments()

	member := parseMemberDeclaration(p)

	setMemberComments(member, ast.Comments{
		Leading:  leading,
		Trailing: parseTrailingComments(p),
	})

	return member
}

func setMemberComments(member ast.MemberDeclaration, comments ast.Comments) {
	switch member := member.(type) {
	case *ast.MethodDeclaration:
		member.Comments = comments
	case *ast.PropertyDeclaration:
		member.Comments = comments
	case *ast.IndexerDeclaration:
		member.Comments = comments
	case *ast.EventDeclaration:
		member.Comments = comments
	case *ast.EventFieldDeclaration:
		member.Comments = comments
	case *ast.FieldDeclaration:
		member.Comments = comments
	default:
		panic(errors.NewUnreachableError())
	}
}

func parseMemberDeclaration(p *parser) ast.MemberDeclaration {
	modifiers, modifiersStartPos := parseModifiers(p)

	startPos := p.current.StartPos
	if modifiersStartPos != nil {
		startPos = *modifiersStartPos
	}

	if p.isKeyword(KeywordEvent) {
		p.next()
		return parseEventDeclaration(p, modifiers, startPos)
	}

	typ := parseType(p)

	p.skipSpaceAndComments()
	if p.isKeyword(KeywordThis) {
		p.next()
		return parseIndexerDeclaration(p, modifiers, typ, startPos)
	}

	name, nameToken := p.mustIdentifier()

	p.skipSpaceAndComments()
	switch p.current.Type {
	case lexer.TokenParenOpen:
		return parseMethodDeclaration(p, modifiers, typ, name, startPos)

	case lexer.TokenBraceOpen:
		return parsePropertyDeclaration(p, modifiers, typ, name, startPos)
	}

	variables, endPos := parseVariableDeclarators(p, name, nameToken)

	return &ast.FieldDeclaration{
		Modifiers: modifiers,
		Type:      typ,
		Variables: variables,
		Range: ast.NewRange(
			startPos,
			endPos,
		),
	}
}

func parseMethodDeclaration(
	p *parser,
	modifiers ast.Modifiers,
	returnType *ast.TypeReference,
	name string,
	startPos ast.Position,
) *ast.MethodDeclaration {
	p.mustOne(lexer.TokenParenOpen)
	parameters := parseParameters(p, lexer.TokenParenClose)

	var body *ast.Block
	var endPos ast.Position

	p.skipSpaceAndComments()
	if p.current.Is(lexer.TokenSemicolon) {
		endPos = p.current.EndPos
		p.next()
	} else {
		body = parseBody(p)
		endPos = body.EndPos
	}

	return &ast.MethodDeclaration{
		Modifiers:  modifiers,
		ReturnType: returnType,
		Name:       name,
		Parameters: parameters,
		Body:       body,
		Range: ast.NewRange(
			startPos,
			endPos,
		),
	}
}

// parseParameters parses a comma-separated parameter list,
// after the opening token, up to and including the given closing token.
func parseParameters(p *parser, closeTokenType lexer.TokenType) (parameters []*ast.Parameter) {
	p.skipSpaceAndComments()
	if p.current.Is(closeTokenType) {
		p.next()
		return nil
	}

	for {
		typ := parseType(p)
		name, nameToken := p.mustIdentifier()

		parameters = append(parameters, &ast.Parameter{
			Type: typ,
			Name: name,
			Range: ast.NewRange(
				typ.StartPos,
				nameToken.EndPos,
			),
		})

		p.skipSpaceAndComments()
		switch p.current.Type {
		case lexer.TokenComma:
			p.next()

		case closeTokenType:
			p.next()
			return parameters

		default:
			panic(p.unexpected(lexer.TokenComma.String() + " or " + closeTokenType.String()))
		}
	}
}

func parsePropertyDeclaration(
	p *parser,
	modifiers ast.Modifiers,
	typ *ast.TypeReference,
	name string,
	startPos ast.Position,
) *ast.PropertyDeclaration {
	accessors, endPos := parseAccessors(p)

	var initializer ast.Expression
	if p.peek(lexer.TokenEqual) {
		p.mustOne(lexer.TokenEqual)
		initializer = parseExpression(p, lowestBindingPower)
		endPos = p.mustOne(lexer.TokenSemicolon).EndPos
	}

	return &ast.PropertyDeclaration{
		Modifiers:   modifiers,
		Type:        typ,
		Name:        name,
		Accessors:   accessors,
		Initializer: initializer,
		Range: ast.NewRange(
			startPos,
			endPos,
		),
	}
}

func parseIndexerDeclaration(
	p *parser,
	modifiers ast.Modifiers,
	typ *ast.TypeReference,
	startPos ast.Position,
) *ast.IndexerDeclaration {
	p.mustOne(lexer.TokenBracketOpen)
	parameters := parseParameters(p, lexer.TokenBracketClose)
	if len(parameters) == 0 {
		panic(NewSyntaxError(p.current.StartPos, "indexer must have at least one parameter"))
	}

	accessors, endPos := parseAccessors(p)

	return &ast.IndexerDeclaration{
		Modifiers:  modifiers,
		Type:       typ,
		Parameters: parameters,
		Accessors:  accessors,
		Range: ast.NewRange(
			startPos,
			endPos,
		),
	}
}

func parseEventDeclaration(p *parser, modifiers ast.Modifiers, startPos ast.Position) ast.MemberDeclaration {
	typ := parseType(p)
	name, nameToken := p.mustIdentifier()

	if p.peek(lexer.TokenBraceOpen) {
		accessors, endPos := parseAccessors(p)
		for _, accessor := range accessors {
			if !accessor.Kind.IsEventAccessor() {
				panic(NewSyntaxError(
					accessor.StartPos,
					"invalid event accessor `%s`: expected `%s` or `%s`",
					accessor.Kind.Keyword(),
					KeywordAdd,
					KeywordRemove,
				))
			}
		}

		return &ast.EventDeclaration{
			Modifiers: modifiers,
			Type:      typ,
			Name:      name,
			Accessors: accessors,
			Range: ast.NewRange(
				startPos,
				endPos,
			),
		}
	}

	variables, endPos := parseVariableDeclarators(p, name, nameToken)

	return &ast.EventFieldDeclaration{
		Modifiers: modifiers,
		Type:      typ,
		Variables: variables,
		Range: ast.NewRange(
			startPos,
			endPos,
		),
	}
}

// parseVariableDeclarators parses the variables of a field declaration,
// starting with the initializer of the already parsed first variable.
func parseVariableDeclarators(p *parser, firstName string, firstToken lexer.Token) (variables []*ast.VariableDeclarator, endPos ast.Position) {
	name, nameToken := firstName, firstToken
	for {
		variable := &ast.VariableDeclarator{
			Name:  name,
			Range: nameToken.Range,
		}

		p.skipSpaceAndComments()
		if p.current.Is(lexer.TokenEqual) {
			p.next()
			variable.Initializer = parseExpression(p, lowestBindingPower)
			variable.EndPos = variable.Initializer.EndPosition()
		}

		variables = append(variables, variable)

		p.skipSpaceAndComments()
		switch p.current.Type {
		case lexer.TokenComma:
			p.next()
			name, nameToken = p.mustIdentifier()

		case lexer.TokenSemicolon:
			endPos = p.current.EndPos
			p.next()
			return variables, endPos

		default:
			panic(p.unexpected(lexer.TokenComma.String() + " or " + lexer.TokenSemicolon.String()))
		}
	}
}

// parseAccessors parses an accessor list, e.g. `{ get; set; }`,
// and returns the end position of the closing brace.
func parseAccessors(p *parser) (accessors ast.AccessorList, endPos ast.Position) {
	p.mustOne(lexer.TokenBraceOpen)

	for {
		p.skipSpaceAndComments()
		if p.current.Is(lexer.TokenBraceClose) {
			endPos = p.current.EndPos
			p.next()
			break
		}

		accessor := parseAccessor(p)
		if accessors.Get(accessor.Kind) != nil {
			panic(NewSyntaxError(
				accessor.StartPos,
				"duplicate accessor `%s`",
				accessor.Kind.Keyword(),
			))
		}
		accessors = append(accessors, accessor)
	}

	if len(accessors) == 0 {
		panic(NewSyntaxError(endPos, "missing accessors"))
	}

	return accessors, endPos
}

func parseAccessor(p *parser) *ast.Accessor {
	modifiers, modifiersStartPos := parseModifiers(p)

	keyword, keywordToken := p.mustIdentifier()
	kind, ok := common.AccessorKindFromKeyword(keyword)
	if !ok {
		panic(&UnexpectedTokenError{
			Expected: "accessor",
			Got:      "identifier `" + keyword + "`",
			Range:    keywordToken.Range,
		})
	}

	startPos := keywordToken.StartPos
	if modifiersStartPos != nil {
		startPos = *modifiersStartPos
	}

	var body *ast.Block
	var endPos ast.Position

	p.skipSpaceAndComments()
	if p.current.Is(lexer.TokenSemicolon) {
		endPos = p.current.EndPos
		p.next()
	} else {
		body = parseBody(p)
		endPos = body.EndPos
	}

	return &ast.Accessor{
		Kind:      kind,
		Modifiers: modifiers,
		Body:      body,
		Range: ast.NewRange(
			startPos,
			endPos,
		),
	}
}
