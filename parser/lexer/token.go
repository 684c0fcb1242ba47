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
	"github.com/onflow/aspectlink/ast"
)

type Token struct {
	// SpaceOrError is a Space for space tokens,
	// and the lexing error for error tokens
	SpaceOrError any
	ast.Range
	Type TokenType
}

func (t Token) Is(ty TokenType) bool {
	return t.Type == ty
}

// Source returns the source text of the token.
func (t Token) Source(input []byte) []byte {
	return input[t.StartPos.Offset : t.EndPos.Offset+1]
}

type Space struct {
	ContainsNewline bool
}
