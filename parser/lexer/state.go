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
	"fmt"
	"unicode"
)

// stateFn uses the input lexer to read runes and emit tokens.
//
// It either returns nil when reaching end of file,
// or returns another stateFn for more scanning work.
type stateFn func(*lexer) (stateFn, error)

// rootState returns a stateFn that scans the file and emits tokens until
// reaching the end of the file.
func rootState(l *lexer) (stateFn, error) {

	for {
		var ty TokenType

		r := l.next()
		switch r {
		case EOF:
			return nil, nil
		case '+':
			ty = l.withEqual(TokenPlus, TokenPlusEqual)
		case '-':
			ty = l.withEqual(TokenMinus, TokenMinusEqual)
		case '*':
			ty = l.withEqual(TokenStar, TokenStarEqual)
		case '%':
			ty = TokenPercent
		case '(':
			ty = TokenParenOpen
		case ')':
			ty = TokenParenClose
		case '{':
			ty = TokenBraceOpen
		case '}':
			ty = TokenBraceClose
		case '[':
			ty = TokenBracketOpen
		case ']':
			ty = TokenBracketClose
		case ',':
			ty = TokenComma
		case ';':
			ty = TokenSemicolon
		case ':':
			ty = TokenColon
		case '.':
			ty = TokenDot
		case '=':
			ty = l.withEqual(TokenEqual, TokenEqualEqual)
		case '!':
			ty = l.withEqual(TokenExclamationMark, TokenNotEqual)
		case '<':
			ty = l.withEqual(TokenLess, TokenLessEqual)
		case '>':
			ty = l.withEqual(TokenGreater, TokenGreaterEqual)
		case '&':
			if !l.acceptOne('&') {
				return l.error(fmt.Errorf("unsupported operator: %q", r))
			}
			ty = TokenAmpersandAmpersand
		case '|':
			if !l.acceptOne('|') {
				return l.error(fmt.Errorf("unsupported operator: %q", r))
			}
			ty = TokenVerticalBarVerticalBar
		case '?':
			if l.acceptOne('?') {
				ty = l.withEqual(TokenDoubleQuestionMark, TokenDoubleQuestionMarkEqual)
			} else {
				ty = TokenQuestionMark
			}
		case '/':
			r = l.next()
			switch r {
			case '/':
				return lineCommentState, nil
			case '*':
				return blockCommentState, nil
			case '=':
				ty = TokenSlashEqual
			default:
				l.backupOne()
				ty = TokenSlash
			}
		case '"':
			return stringState, nil
		case '$':
			if !l.acceptOne('"') {
				return l.error(fmt.Errorf("expected '\"' after '$'"))
			}
			return interpolatedStringState, nil
		case ' ', '\t', '\r':
			return spaceState(false), nil
		case '\n':
			return spaceState(true), nil
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return numberState, nil
		default:
			if isIdentifierStart(r) {
				return identifierState, nil
			}
			return l.error(fmt.Errorf("unrecognized character: %#U", r))
		}

		err := l.emitType(ty)
		if err != nil {
			return nil, err
		}
	}
}

func (l *lexer) error(err error) (stateFn, error) {
	return nil, l.emitError(err)
}

// withEqual returns the compound token type if the next rune is '=',
// and the simple token type otherwise.
func (l *lexer) withEqual(simple, compound TokenType) TokenType {
	if l.acceptOne('=') {
		return compound
	}
	return simple
}

func (l *lexer) emitTokenAndReturnRootState(token TokenType) (stateFn, error) {
	err := l.emitType(token)
	if err != nil {
		return nil, err
	}
	return rootState, nil
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}

func spaceState(startIsNewline bool) stateFn {
	return func(l *lexer) (stateFn, error) {
		containsNewline := startIsNewline

		// lookahead is already lexed.
		// parse more, if any
		l.acceptWhile(func(r rune) bool {
			switch r {
			case ' ', '\t', '\r':
				return true
			case '\n':
				containsNewline = true
				return true
			default:
				return false
			}
		})

		err := l.emit(
			TokenSpace,
			Space{
				ContainsNewline: containsNewline,
			},
			l.startPosition(),
			true,
		)
		if err != nil {
			return nil, err
		}
		return rootState, nil
	}
}

func identifierState(l *lexer) (stateFn, error) {
	l.acceptWhile(isIdentifierPart)
	return l.emitTokenAndReturnRootState(TokenIdentifier)
}

func isHexadecimalDigitOrUnderscore(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F') ||
		r == '_'
}

func isDecimalDigitOrUnderscore(r rune) bool {
	return (r >= '0' && r <= '9') || r == '_'
}

func isIntegerSuffix(r rune) bool {
	switch r {
	case 'u', 'U', 'l', 'L':
		return true
	}
	return false
}

// numberState returns a stateFn that scans the following runes as an integer literal,
// e.g. `42`, `1_000`, `0xFF` or `10L`, and emits a corresponding token
func numberState(l *lexer) (stateFn, error) {
	// lookahead is already lexed.
	// parse more, if any
	if l.current == '0' {
		r := l.next()
		if r == 'x' || r == 'X' {
			l.acceptWhile(isHexadecimalDigitOrUnderscore)
			if l.endOffset-l.startOffset <= 2 {
				err := l.emitError(fmt.Errorf("missing digits"))
				if err != nil {
					return nil, err
				}
			}
		} else {
			l.backupOne()
		}
	}

	l.acceptWhile(isDecimalDigitOrUnderscore)
	l.acceptWhile(isIntegerSuffix)

	return l.emitTokenAndReturnRootState(TokenIntegerLiteral)
}

// scanString scans the rest of a string literal, including the closing quote.
// An unterminated literal ends before the newline or at the end of the input;
// it is reported by the parser.
func (l *lexer) scanString() {
	r := l.next()
	for r != '"' {
		switch r {
		case '\n', EOF:
			l.backupOne()
			return
		case '\\':
			r = l.next()
			switch r {
			case '\n', EOF:
				l.backupOne()
				return
			}
		}
		r = l.next()
	}
}

func stringState(l *lexer) (stateFn, error) {
	l.scanString()
	return l.emitTokenAndReturnRootState(TokenString)
}

// interpolatedStringState scans an interpolated string literal as one token.
// Holes may contain nested braces and string literals.
// The parser splits the token into texts and holes.
func interpolatedStringState(l *lexer) (stateFn, error) {
	depth := 0

	for {
		r := l.next()
		switch r {
		case '\n', EOF:
			l.backupOne()
			return l.emitTokenAndReturnRootState(TokenInterpolatedString)

		case '"':
			if depth == 0 {
				return l.emitTokenAndReturnRootState(TokenInterpolatedString)
			}
			l.scanString()

		case '\\':
			if depth == 0 {
				r = l.next()
				if r == '\n' || r == EOF {
					l.backupOne()
				}
			}

		case '{':
			if depth == 0 && l.acceptOne('{') {
				continue
			}
			depth++

		case '}':
			if depth == 0 {
				// escaped closing brace
				l.acceptOne('}')
				continue
			}
			depth--
		}
	}
}

func lineCommentState(l *lexer) (stateFn, error) {
	l.acceptWhile(func(r rune) bool {
		return !(r == '\n' || r == EOF)
	})
	return l.emitTokenAndReturnRootState(TokenLineComment)
}

func blockCommentState(l *lexer) (stateFn, error) {
	for {
		r := l.next()
		switch r {
		case EOF:
			l.backupOne()
			err := l.emitType(TokenBlockComment)
			if err != nil {
				return nil, err
			}
			return l.error(fmt.Errorf("missing comment end '*/'"))

		case '*':
			if l.acceptOne('/') {
				return l.emitTokenAndReturnRootState(TokenBlockComment)
			}
		}
	}
}
