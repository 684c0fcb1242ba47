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

package sema

import (
	"sort"
	"strings"
	"unicode"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/aspectlink/ast"
)

// typeAliases maps the framework names of the built-in types to their keywords.
var typeAliases = map[string]string{}

func init() {
	for keyword, name := range map[string]string{
		"bool":    "Boolean",
		"byte":    "Byte",
		"sbyte":   "SByte",
		"char":    "Char",
		"short":   "Int16",
		"ushort":  "UInt16",
		"int":     "Int32",
		"uint":    "UInt32",
		"long":    "Int64",
		"ulong":   "UInt64",
		"float":   "Single",
		"double":  "Double",
		"decimal": "Decimal",
		"string":  "String",
		"object":  "Object",
		"void":    "Void",
	} {
		typeAliases[name] = keyword
		typeAliases["System."+name] = keyword
	}
}

// NormalizedTypeName returns the canonical form of the given type name:
// whitespace is removed and built-in types are named by their keyword,
// e.g. `Dictionary<System.String, Int32>` becomes `Dictionary<string,int>`.
func NormalizedTypeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	isNamePart := func(r rune) bool {
		return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}

	for len(name) > 0 {
		end := strings.IndexFunc(name, func(r rune) bool {
			return !isNamePart(r)
		})
		if end < 0 {
			end = len(name)
		}

		if end > 0 {
			part := name[:end]
			if keyword, ok := typeAliases[part]; ok {
				part = keyword
			}
			b.WriteString(part)
			name = name[end:]
			continue
		}

		r := rune(name[0])
		if !unicode.IsSpace(r) {
			b.WriteByte(name[0])
		}
		name = name[1:]
	}

	return b.String()
}

func NormalizedTypeNames(names []string) []string {
	result := make([]string, len(names))
	for i, name := range names {
		result[i] = NormalizedTypeName(name)
	}
	return result
}

// IdenticalTypes returns true if the given type references denote the same type.
// An absent type reference denotes `void`.
func IdenticalTypes(a, b *ast.TypeReference) bool {
	if a.IsVoid() || b.IsVoid() {
		return a.IsVoid() && b.IsVoid()
	}
	return NormalizedTypeName(a.Name) == NormalizedTypeName(b.Name)
}

// closestName returns the candidate with the smallest edit distance from the given name.
// Candidates which would have to be replaced completely are not suggested.
func closestName(name string, candidates []string) (closest string) {
	nameRunes := []rune(name)

	closestDistance := len(name)

	sortedCandidates := append([]string(nil), candidates...)
	sort.Strings(sortedCandidates)

	for _, candidate := range sortedCandidates {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)

		if distance < closestDistance && distance < len(candidate) {
			closest = candidate
			closestDistance = distance
		}
	}

	return
}
