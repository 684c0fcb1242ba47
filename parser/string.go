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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/parser/lexer"
)

// parseStringLiteral returns the value of the given string literal source,
// including the enclosing quotes. startPos is the position of the opening quote.
func parseStringLiteral(source []byte, startPos ast.Position) string {
	if len(source) < 2 || source[len(source)-1] != '"' {
		panic(NewSyntaxError(startPos, "missing end of string literal: expected '\"'"))
	}
	return unescapeString(source[1:len(source)-1], startPos.Shifted(1), false)
}

// unescapeString resolves the escape sequences in the given literal text.
// If interpolated is true, doubled braces are unescaped as well.
func unescapeString(text []byte, startPos ast.Position, interpolated bool) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case interpolated && (c == '{' || c == '}'):
			b.WriteByte(c)
			// doubled brace
			i += 2
			continue

		case c != '\\':
			r, size := utf8.DecodeRune(text[i:])
			b.WriteRune(r)
			i += size
			continue
		}

		escapePos := lexer.AdvancePosition(startPos, text[:i])

		if i+1 >= len(text) {
			panic(NewSyntaxError(escapePos, "incomplete escape sequence: missing escape character"))
		}

		escape := text[i+1]
		i += 2

		switch escape {
		case '"', '\'', '\\':
			b.WriteByte(escape)
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')

		case 'x', 'u', 'U':
			var length int
			switch escape {
			case 'x':
				length = 2
			case 'u':
				length = 4
			default:
				length = 8
			}

			if i+length > len(text) {
				panic(NewSyntaxError(
					escapePos,
					"incomplete escape sequence: expected %d hexadecimal digits",
					length,
				))
			}

			code, err := strconv.ParseUint(string(text[i:i+length]), 16, 32)
			if err != nil {
				panic(NewSyntaxError(
					escapePos,
					"invalid escape sequence: invalid hexadecimal digits `%s`",
					text[i:i+length],
				))
			}
			i += length

			r := rune(code)
			if !utf8.ValidRune(r) {
				panic(NewSyntaxError(escapePos, "invalid escape sequence: invalid code point %#x", code))
			}
			b.WriteRune(r)

		default:
			panic(NewSyntaxError(escapePos, "invalid escape character: `%c`", escape))
		}
	}

	return b.String()
}

// parseInterpolatedString splits an interpolated string literal into its texts
// and parses the expressions of its holes.
func parseInterpolatedString(p *parser, token lexer.Token) ast.Expression {
	input := p.tokens.Input()
	source := token.Source(input)

	if len(source) < 3 || source[len(source)-1] != '"' {
		panic(NewSyntaxError(token.StartPos, "missing end of interpolated string literal: expected '\"'"))
	}

	// skip `$"`
	contentStart := token.StartPos.Offset + 2
	contentEnd := token.EndPos.Offset

	positionAt := func(offset int) ast.Position {
		return lexer.AdvancePosition(
			token.StartPos,
			input[token.StartPos.Offset:offset],
		)
	}

	var texts []string
	var expressions []ast.Expression

	textStart := contentStart

	for i := contentStart; i < contentEnd; i++ {
		switch input[i] {
		case '\\':
			// skip the escaped character
			i++

		case '{', '}':
			if i+1 < contentEnd && input[i+1] == input[i] {
				i++
				continue
			}
			if input[i] == '}' {
				panic(NewSyntaxError(positionAt(i), "unexpected '}' in interpolated string: expected '}}'"))
			}

			texts = append(texts, unescapeString(input[textStart:i], positionAt(textStart), true))

			holeStart := i + 1
			holeEnd := findHoleEnd(input, holeStart, contentEnd)
			if holeEnd < 0 {
				panic(NewSyntaxError(positionAt(i), "missing end of interpolated expression: expected '}'"))
			}

			expressions = append(expressions, parseHole(p, holeStart, holeEnd, positionAt(holeStart)))

			i = holeEnd
			textStart = holeEnd + 1
		}
	}

	texts = append(texts, unescapeString(input[textStart:contentEnd], positionAt(textStart), true))

	return &ast.InterpolatedStringExpression{
		Texts:       texts,
		Expressions: expressions,
		Range:       token.Range,
	}
}

// findHoleEnd returns the offset of the brace closing the hole starting at the given offset,
// or -1 if the hole is not closed before the end offset.
func findHoleEnd(input []byte, start, end int) int {
	depth := 0
	for i := start; i < end; i++ {
		switch input[i] {
		case '"':
			// skip the nested string literal
			for i++; i < end && input[i] != '"'; i++ {
				if input[i] == '\\' {
					i++
				}
			}

		case '{':
			depth++

		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func parseHole(p *parser, start, end int, startPos ast.Position) ast.Expression {
	tokens, err := lexer.LexRange(p.tokens.Input(), start, end, startPos)
	if err != nil {
		panic(NewSyntaxError(startPos, "%s", err.Error()))
	}

	holeParser := &parser{
		tokens: tokens,
		labels: p.labels,
	}
	holeParser.next()

	expression := parseExpression(holeParser, lowestBindingPower)

	holeParser.skipSpaceAndComments()
	if !holeParser.current.Is(lexer.TokenEOF) {
		panic(holeParser.unexpected("'}'"))
	}

	return expression
}
