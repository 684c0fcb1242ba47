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

import "github.com/SaveTheRbtz/mph"

// NOTE: ensure to update allKeywords when adding a new keyword
const (
	KeywordUsing     = "using"
	KeywordClass     = "class"
	KeywordStruct    = "struct"
	KeywordEvent     = "event"
	KeywordThis      = "this"
	KeywordNew       = "new"
	KeywordIf        = "if"
	KeywordElse      = "else"
	KeywordWhile     = "while"
	KeywordDo        = "do"
	KeywordForeach   = "foreach"
	KeywordIn        = "in"
	KeywordReturn    = "return"
	KeywordGoto      = "goto"
	KeywordBreak     = "break"
	KeywordContinue  = "continue"
	KeywordThrow     = "throw"
	KeywordTrue      = "true"
	KeywordFalse     = "false"
	KeywordNull      = "null"
	KeywordDefault   = "default"
	KeywordPublic    = "public"
	KeywordProtected = "protected"
	KeywordInternal  = "internal"
	KeywordPrivate   = "private"
	KeywordStatic    = "static"
	KeywordAbstract  = "abstract"
	KeywordVirtual   = "virtual"
	KeywordOverride  = "override"
	KeywordSealed    = "sealed"
	KeywordReadonly  = "readonly"
	KeywordGet       = "get"
	KeywordSet       = "set"
	KeywordInit      = "init"
	KeywordAdd       = "add"
	KeywordRemove    = "remove"
	KeywordValue     = "value"
	KeywordVar       = "var"
	KeywordProceed   = "proceed"
	KeywordOriginal  = "original"
	KeywordFinal     = "final"
	KeywordInline    = "inline"
	// NOTE: ensure to update allKeywords when adding a new keyword
)

var allKeywords = []string{
	KeywordUsing,
	KeywordClass,
	KeywordStruct,
	KeywordEvent,
	KeywordThis,
	KeywordNew,
	KeywordIf,
	KeywordElse,
	KeywordWhile,
	KeywordDo,
	KeywordForeach,
	KeywordIn,
	KeywordReturn,
	KeywordGoto,
	KeywordBreak,
	KeywordContinue,
	KeywordThrow,
	KeywordTrue,
	KeywordFalse,
	KeywordNull,
	KeywordDefault,
	KeywordPublic,
	KeywordProtected,
	KeywordInternal,
	KeywordPrivate,
	KeywordStatic,
	KeywordAbstract,
	KeywordVirtual,
	KeywordOverride,
	KeywordSealed,
	KeywordReadonly,
	KeywordGet,
	KeywordSet,
	KeywordInit,
	KeywordAdd,
	KeywordRemove,
	KeywordValue,
	KeywordVar,
	KeywordProceed,
	KeywordOriginal,
	KeywordFinal,
	KeywordInline,
}

// Keywords that can be used in identifier position without ambiguity.
var softKeywords = []string{
	KeywordGet,
	KeywordSet,
	KeywordInit,
	KeywordAdd,
	KeywordRemove,
	KeywordValue,
	KeywordVar,
	KeywordProceed,
	KeywordOriginal,
	KeywordFinal,
	KeywordInline,
}

var softKeywordsTable = mph.Build(softKeywords)

// Keywords that aren't allowed in identifier position.
var hardKeywords = filter(
	allKeywords,
	func(keyword string) bool {
		_, ok := softKeywordsTable.Lookup(keyword)
		return !ok
	},
)

var hardKeywordsTable = mph.Build(hardKeywords)

func filter[T comparable](items []T, f func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if f(item) {
			result = append(result, item)
		}
	}
	return result
}

// IsHardKeyword returns true if the given word cannot be used as an identifier.
func IsHardKeyword(word string) bool {
	_, ok := hardKeywordsTable.Lookup(word)
	return ok
}
