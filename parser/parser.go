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

// Package parser parses the C#-like member language the linker operates on,
// including the proceed pseudo-syntax of aspect layers.
package parser

import (
	"fmt"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/parser/lexer"
)

type parser struct {
	// tokens is a stream of tokens from the lexer
	tokens lexer.TokenStream
	// current is the current token being parsed
	current lexer.Token
	// comments are the comments skipped since they were last taken
	comments []*ast.Comment
	// labels are the labels of the body being parsed, by name
	labels map[string]*ast.Label
	// definedLabels are the names of the labels which have a labeled statement
	definedLabels map[string]struct{}
	// gotos are the goto statements of the body being parsed
	gotos []*ast.GotoStatement
}

// Parse creates a lexer to scan the given input string,
// and uses the given `parse` function to parse tokens into a result.
//
// It can be composed with different parse functions to parse the input string into different results.
// See "ParseExpression", "ParseStatements" as examples.
func Parse[T any](input []byte, parse func(*parser) T) (result T, err error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return result, Error{
			Code:   input,
			Errors: []error{err},
		}
	}

	return parseTokens(input, tokens, parse)
}

func parseTokens[T any](input []byte, tokens lexer.TokenStream, parse func(*parser) T) (result T, err error) {
	p := &parser{
		tokens: tokens,
	}

	defer func() {
		if r := recover(); r != nil {
			var parseErr error
			switch r := r.(type) {
			case errors.InternalError:
				// internal errors percolate up
				panic(r)
			case errors.UserError:
				parseErr = r
			case error:
				// any other error is a bug in the parser
				panic(errors.NewUnexpectedErrorFromCause(r))
			default:
				panic(errors.NewUnexpectedError("parser: %v", r))
			}

			var empty T
			result = empty
			err = Error{
				Code:   input,
				Errors: []error{parseErr},
			}
		}
	}()

	p.next()

	result = parse(p)

	p.skipSpaceAndComments()
	if !p.current.Is(lexer.TokenEOF) {
		panic(p.unexpected("end of input"))
	}

	return result, nil
}

// ParseCompilationUnit parses a compilation unit: using directives and type declarations.
func ParseCompilationUnit(path string, input []byte) (*ast.CompilationUnit, error) {
	return Parse(input, func(p *parser) *ast.CompilationUnit {
		return parseCompilationUnit(p, path)
	})
}

// ParseMember parses one member declaration, e.g. the member contributed by an aspect layer.
func ParseMember(input []byte) (ast.MemberDeclaration, error) {
	return Parse(input, parseMemberWithComments)
}

// ParseStatements parses a sequence of statements, e.g. the content of a body.
func ParseStatements(input []byte) ([]ast.Statement, error) {
	return Parse(input, func(p *parser) []ast.Statement {
		p.beginBody()
		statements := parseStatements(p, lexer.TokenEOF)
		p.endBody()
		return statements
	})
}

// ParseBlock parses a block statement, i.e. a body.
func ParseBlock(input []byte) (*ast.Block, error) {
	return Parse(input, parseBody)
}

func ParseExpression(input []byte) (ast.Expression, error) {
	return Parse(input, func(p *parser) ast.Expression {
		return parseExpression(p, lowestBindingPower)
	})
}

func ParseType(input []byte) (*ast.TypeReference, error) {
	return Parse(input, parseType)
}

func (p *parser) next() {
	p.current = p.tokens.Next()
	if p.current.Is(lexer.TokenError) {
		err := p.current.SpaceOrError.(error)
		panic(NewSyntaxError(p.current.StartPos, "%s", err.Error()))
	}
}

// skipSpaceAndComments skips whitespace and comments,
// and collects the skipped comments.
// It returns true if the skipped whitespace contained a newline.
func (p *parser) skipSpaceAndComments() (containsNewline bool) {
	for {
		switch {
		case p.current.Is(lexer.TokenSpace):
			space := p.current.SpaceOrError.(lexer.Space)
			if space.ContainsNewline {
				containsNewline = true
			}
			p.next()

		case p.current.Type.IsComment():
			p.comments = append(p.comments, p.currentComment())
			p.next()

		default:
			return
		}
	}
}

func (p *parser) currentComment() *ast.Comment {
	source := p.current.Source(p.tokens.Input())
	return ast.NewComment(append([]byte(nil), source...))
}

// takeComments returns the collected comments and resets the collection.
func (p *parser) takeComments() []*ast.Comment {
	comments := p.comments
	p.comments = nil
	return comments
}

// parseTrailingComments collects the comments that follow
// on the same line as the previous token.
func parseTrailingComments(p *parser) []*ast.Comment {
	var comments []*ast.Comment
	for {
		switch {
		case p.current.Is(lexer.TokenSpace):
			space := p.current.SpaceOrError.(lexer.Space)
			if space.ContainsNewline {
				return comments
			}
			p.next()

		case p.current.Type.IsComment():
			comments = append(comments, p.currentComment())
			p.next()

		default:
			return comments
		}
	}
}

func (p *parser) currentWord() string {
	return string(p.current.Source(p.tokens.Input()))
}

// isKeyword returns true if the current token is the given keyword.
func (p *parser) isKeyword(keyword string) bool {
	return p.current.Is(lexer.TokenIdentifier) &&
		p.currentWord() == keyword
}

func (p *parser) unexpected(expected string) *UnexpectedTokenError {
	got := p.current.Type.String()
	if p.current.Is(lexer.TokenIdentifier) {
		got = fmt.Sprintf("identifier `%s`", p.currentWord())
	}
	return &UnexpectedTokenError{
		Expected: expected,
		Got:      got,
		Range:    p.current.Range,
	}
}

func (p *parser) mustOne(tokenType lexer.TokenType) lexer.Token {
	p.skipSpaceAndComments()
	token := p.current
	if !token.Is(tokenType) {
		panic(p.unexpected(tokenType.String()))
	}
	p.next()
	return token
}

func (p *parser) mustKeyword(keyword string) lexer.Token {
	p.skipSpaceAndComments()
	if !p.isKeyword(keyword) {
		panic(p.unexpected(fmt.Sprintf("keyword `%s`", keyword)))
	}
	token := p.current
	p.next()
	return token
}

// mustIdentifier parses an identifier which is not a hard keyword.
func (p *parser) mustIdentifier() (string, lexer.Token) {
	p.skipSpaceAndComments()
	token := p.current
	if !token.Is(lexer.TokenIdentifier) {
		panic(p.unexpected("identifier"))
	}
	identifier := p.currentWord()
	if IsHardKeyword(identifier) {
		panic(&KeywordAsIdentifierError{
			Keyword: identifier,
			Range:   token.Range,
		})
	}
	p.next()
	return identifier, token
}

type parserState struct {
	cursor   int
	current  lexer.Token
	comments int
}

func (p *parser) save() parserState {
	return parserState{
		cursor:   p.tokens.Cursor(),
		current:  p.current,
		comments: len(p.comments),
	}
}

func (p *parser) restore(state parserState) {
	p.tokens.Revert(state.cursor)
	p.current = state.current
	p.comments = p.comments[:state.comments]
}

// peek returns true if the next token after whitespace and comments
// has the given type. It does not consume any tokens.
func (p *parser) peek(tokenType lexer.TokenType) bool {
	state := p.save()
	defer p.restore(state)

	p.skipSpaceAndComments()
	return p.current.Is(tokenType)
}

// tryParse runs the given parse function.
// If it fails with a parse error, the parser is reverted
// to the state before the call, and false is returned.
func tryParse[T any](p *parser, parse func() T) (result T, ok bool) {
	state := p.save()

	defer func() {
		if r := recover(); r != nil {
			if _, isParseError := r.(ParseError); !isParseError {
				panic(r)
			}
			p.restore(state)
			var empty T
			result = empty
			ok = false
		}
	}()

	return parse(), true
}

// beginBody starts a new label scope.
func (p *parser) beginBody() {
	p.labels = map[string]*ast.Label{}
	p.definedLabels = map[string]struct{}{}
	p.gotos = nil
}

// endBody checks that all jump targets of the body are defined.
func (p *parser) endBody() {
	for _, gotoStatement := range p.gotos {
		name := gotoStatement.Label.Name
		if _, ok := p.definedLabels[name]; !ok {
			panic(&UndefinedLabelError{
				Name:  name,
				Range: gotoStatement.Range,
			})
		}
	}
	p.labels = nil
	p.definedLabels = nil
	p.gotos = nil
}

// label returns the label with the given name in the current body.
func (p *parser) label(name string) *ast.Label {
	label, ok := p.labels[name]
	if !ok {
		label = ast.NewLabel(name)
		p.labels[name] = label
	}
	return label
}
