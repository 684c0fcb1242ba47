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
	"github.com/onflow/aspectlink/errors"
)

type TokenType uint8

const EOF rune = -1

const (
	TokenError TokenType = iota
	TokenEOF
	TokenSpace
	TokenIdentifier
	TokenIntegerLiteral
	TokenString
	TokenInterpolatedString
	TokenLineComment
	TokenBlockComment
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPlusEqual
	TokenMinusEqual
	TokenStarEqual
	TokenSlashEqual
	TokenDoubleQuestionMark
	TokenDoubleQuestionMarkEqual
	TokenQuestionMark
	TokenParenOpen
	TokenParenClose
	TokenBraceOpen
	TokenBraceClose
	TokenBracketOpen
	TokenBracketClose
	TokenComma
	TokenColon
	TokenDot
	TokenSemicolon
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenEqual
	TokenEqualEqual
	TokenExclamationMark
	TokenNotEqual
	TokenAmpersandAmpersand
	TokenVerticalBarVerticalBar
	// NOTE: not an actual token, must be last item
	TokenMax
)

func init() {
	// ensure all tokens have its string format
	for t := TokenType(0); t < TokenMax; t++ {
		_ = t.String()
	}
}

func (t TokenType) String() string {
	switch t {
	case TokenError:
		return "error"
	case TokenEOF:
		return "EOF"
	case TokenSpace:
		return "space"
	case TokenIdentifier:
		return "identifier"
	case TokenIntegerLiteral:
		return "integer"
	case TokenString:
		return "string"
	case TokenInterpolatedString:
		return "interpolated string"
	case TokenLineComment:
		return "line comment"
	case TokenBlockComment:
		return "block comment"
	case TokenPlus:
		return `'+'`
	case TokenMinus:
		return `'-'`
	case TokenStar:
		return `'*'`
	case TokenSlash:
		return `'/'`
	case TokenPercent:
		return `'%'`
	case TokenPlusEqual:
		return `'+='`
	case TokenMinusEqual:
		return `'-='`
	case TokenStarEqual:
		return `'*='`
	case TokenSlashEqual:
		return `'/='`
	case TokenDoubleQuestionMark:
		return `'??'`
	case TokenDoubleQuestionMarkEqual:
		return `'??='`
	case TokenQuestionMark:
		return `'?'`
	case TokenParenOpen:
		return `'('`
	case TokenParenClose:
		return `')'`
	case TokenBraceOpen:
		return `'{'`
	case TokenBraceClose:
		return `'}'`
	case TokenBracketOpen:
		return `'['`
	case TokenBracketClose:
		return `']'`
	case TokenComma:
		return `','`
	case TokenColon:
		return `':'`
	case TokenDot:
		return `'.'`
	case TokenSemicolon:
		return `';'`
	case TokenLess:
		return `'<'`
	case TokenLessEqual:
		return `'<='`
	case TokenGreater:
		return `'>'`
	case TokenGreaterEqual:
		return `'>='`
	case TokenEqual:
		return `'='`
	case TokenEqualEqual:
		return `'=='`
	case TokenExclamationMark:
		return `'!'`
	case TokenNotEqual:
		return `'!='`
	case TokenAmpersandAmpersand:
		return `'&&'`
	case TokenVerticalBarVerticalBar:
		return `'||'`
	default:
		panic(errors.NewUnreachableError())
	}
}

// IsComment returns true for line and block comments.
func (t TokenType) IsComment() bool {
	return t == TokenLineComment || t == TokenBlockComment
}
