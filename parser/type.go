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
	"strings"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/parser/lexer"
)

// parseType parses a type reference, e.g. `int`, `System.Int32`,
// `Dictionary<string, int>`, `int[]` or `int?`.
//
// Whitespace is only allowed inside type argument lists,
// so that e.g. the `?` of a conditional expression is not mistaken for a nullable type.
func parseType(p *parser) *ast.TypeReference {
	var b strings.Builder

	name, startToken := p.mustIdentifier()
	b.WriteString(name)
	endPos := startToken.EndPos

	for p.current.Is(lexer.TokenDot) {
		p.next()
		if !p.current.Is(lexer.TokenIdentifier) {
			panic(p.unexpected("identifier"))
		}
		name, nameToken := p.mustIdentifier()
		b.WriteByte('.')
		b.WriteString(name)
		endPos = nameToken.EndPos
	}

	if p.current.Is(lexer.TokenLess) {
		p.next()
		b.WriteByte('<')
		for i := 0; ; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			argument := parseType(p)
			b.WriteString(argument.Name)

			p.skipSpaceAndComments()
			if p.current.Is(lexer.TokenComma) {
				p.next()
				p.skipSpaceAndComments()
				continue
			}

			endPos = p.mustOne(lexer.TokenGreater).EndPos
			break
		}
		b.WriteByte('>')
	}

	for p.current.Is(lexer.TokenBracketOpen) {
		p.next()
		endPos = p.mustOne(lexer.TokenBracketClose).EndPos
		b.WriteString("[]")
	}

	if p.current.Is(lexer.TokenQuestionMark) {
		endPos = p.current.EndPos
		p.next()
		b.WriteByte('?')
	}

	return &ast.TypeReference{
		Name: b.String(),
		Range: ast.NewRange(
			startToken.StartPos,
			endPos,
		),
	}
}
