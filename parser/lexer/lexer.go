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
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/errors"
)

// tokenLimit is a sensible limit for how many tokens may be emitted
const tokenLimit = 1 << 19

type TokenLimitReachedError struct {
	ast.Position
}

var _ errors.UserError = TokenLimitReachedError{}

func (TokenLimitReachedError) IsUserError() {}

func (TokenLimitReachedError) Error() string {
	return fmt.Sprintf("limit of %d tokens exceeded", tokenLimit)
}

// TokenStream is a stream of tokens with backtracking support.
type TokenStream interface {
	// Next consumes the next token.
	// At the end of the stream, it returns a synthetic EOF token.
	Next() Token
	Input() []byte
	Cursor() int
	Revert(cursor int)
}

// position is a line and a column, counted in grapheme clusters,
// so that positions match what an editor displays.
type position struct {
	line   int
	column int
}

// advance moves the position over the given text.
func (p *position) advance(text []byte) {
	state := -1
	var cluster []byte
	for len(text) > 0 {
		cluster, text, _, state = uniseg.Step(text, state)
		if bytes.IndexByte(cluster, '\n') >= 0 {
			p.line++
			p.column = 0
		} else {
			p.column++
		}
	}
}

// AdvancePosition returns the position after the given text,
// which starts at the given position.
func AdvancePosition(start ast.Position, text []byte) ast.Position {
	p := position{
		line:   start.Line,
		column: start.Column,
	}
	p.advance(text)
	return ast.NewPosition(start.Offset+len(text), p.line, p.column)
}

type lexer struct {
	// input is the entire input
	input []byte
	// limit is the offset at which scanning stops
	limit int
	// tokens contains all tokens of the stream
	tokens []Token
	// startPos is the start position of the current word
	startPos position
	// startOffset is the start offset of the current word
	startOffset int
	// endOffset is the end offset of the current word
	endOffset int
	// prevEndOffset is the previous end offset, used for stepping back
	prevEndOffset int
	// cursor is the offset in the token stream
	cursor int
	// current is the currently scanned rune
	current rune
	// prev is the previously scanned rune, used for stepping back
	prev rune
	// canBackup indicates whether stepping back is allowed
	canBackup bool
}

var _ TokenStream = &lexer{}

func (l *lexer) Next() Token {
	if l.cursor >= len(l.tokens) {

		// At the end of the token stream,
		// emit a synthetic EOF token

		endPos := l.endPos()
		pos := ast.NewPosition(
			l.endOffset-1,
			endPos.line,
			endPos.column,
		)

		return Token{
			Type:  TokenEOF,
			Range: ast.NewRange(pos, pos),
		}
	}

	token := l.tokens[l.cursor]
	l.cursor++
	return token
}

func (l *lexer) Input() []byte {
	return l.input
}

func (l *lexer) Cursor() int {
	return l.cursor
}

func (l *lexer) Revert(cursor int) {
	l.cursor = cursor
}

// Lex scans the whole input into a token stream.
func Lex(input []byte) (TokenStream, error) {
	return LexRange(input, 0, len(input), ast.NewPosition(0, 1, 0))
}

// LexRange scans the part of the input between the given offsets.
// Positions of the emitted tokens are relative to the given start position,
// which must be the position of startOffset.
func LexRange(input []byte, startOffset, endOffset int, start ast.Position) (TokenStream, error) {
	l := &lexer{
		input:       input,
		limit:       endOffset,
		tokens:      make([]Token, 0, 64),
		startOffset: startOffset,
		endOffset:   startOffset,
		startPos: position{
			line:   start.Line,
			column: start.Column,
		},
		current: EOF,
		prev:    EOF,
	}
	err := l.run(rootState)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// run executes the stateFn, which will scan the runes in the input
// and emit tokens.
//
// stateFn might return another stateFn to indicate further scanning work,
// or nil if there is no scanning work left to be done,
// i.e. run will keep running the returned stateFn until no more
// stateFn is returned, which for example happens when reaching the end of the file.
func (l *lexer) run(state stateFn) (err error) {

	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case errors.InternalError:
				// internal errors percolate up
				panic(r)
			case error:
				err = r
			default:
				err = fmt.Errorf("lexer: %v", r)
			}
		}
	}()

	for state != nil {
		state, err = state(l)
		if err != nil {
			return err
		}
	}

	return nil
}

// next decodes the next rune (UTF8 character) from the input.
//
// It returns EOF if it reaches the end of the input,
// otherwise returns the scanned rune.
func (l *lexer) next() rune {
	l.canBackup = true

	endOffset := l.endOffset

	// update prevEndOffset and prev so that we can step back one rune.
	l.prevEndOffset = endOffset
	l.prev = l.current

	r := EOF
	w := 1
	if endOffset < l.limit {
		r, w = utf8.DecodeRune(l.input[endOffset:l.limit])
	}

	l.endOffset += w
	l.current = r

	return r
}

// backupOne steps back one rune.
// Can be called only once per call of next.
func (l *lexer) backupOne() {
	if !l.canBackup {
		panic(errors.NewUnexpectedError("second backup"))
	}
	l.canBackup = false

	l.endOffset = l.prevEndOffset
	l.current = l.prev
}

// word returns the text of the current word.
func (l *lexer) word() []byte {
	end := l.endOffset
	if end > l.limit {
		end = l.limit
	}
	return l.input[l.startOffset:end]
}

// acceptOne reads one rune ahead.
// It returns true if the next rune matches with the input rune,
// otherwise it steps back one rune and returns false.
func (l *lexer) acceptOne(r rune) bool {
	if l.next() == r {
		return true
	}
	l.backupOne()
	return false
}

func (l *lexer) acceptWhile(f func(rune) bool) {
	for {
		r := l.next()

		if f(r) {
			continue
		}

		l.backupOne()
		return
	}
}

// emit appends a token to the stream.
func (l *lexer) emit(ty TokenType, spaceOrError any, rangeStart ast.Position, consume bool) error {

	if len(l.tokens) >= tokenLimit {
		return TokenLimitReachedError{
			Position: rangeStart,
		}
	}

	endPos := l.endPos()

	token := Token{
		Type:         ty,
		SpaceOrError: spaceOrError,
		Range: ast.NewRange(
			rangeStart,
			ast.NewPosition(
				l.endOffset-1,
				endPos.line,
				endPos.column,
			),
		),
	}

	l.tokens = append(l.tokens, token)

	if consume {
		l.startPos.advance(l.word())
		l.startOffset = l.endOffset
	}

	return nil
}

func (l *lexer) startPosition() ast.Position {
	return ast.NewPosition(
		l.startOffset,
		l.startPos.line,
		l.startPos.column,
	)
}

// endPos returns the position of the last rune of the current word.
func (l *lexer) endPos() position {
	endPos := l.startPos

	word := l.word()
	if len(word) == 0 {
		return endPos
	}

	_, lastWidth := utf8.DecodeLastRune(word)
	endPos.advance(word[:len(word)-lastWidth])

	return endPos
}

func (l *lexer) emitType(ty TokenType) error {
	return l.emit(ty, nil, l.startPosition(), true)
}

func (l *lexer) emitError(err error) error {
	endPos := l.endPos()
	rangeStart := ast.NewPosition(
		l.endOffset-1,
		endPos.line,
		endPos.column,
	)
	return l.emit(TokenError, err, rangeStart, false)
}
