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

package ast

import (
	"github.com/turbolent/prettier"
)

// Modifiers is the set of modifiers of a type or member declaration.
type Modifiers uint16

const (
	ModifierPublic Modifiers = 1 << iota
	ModifierProtected
	ModifierInternal
	ModifierPrivate
	ModifierStatic
	ModifierAbstract
	ModifierVirtual
	ModifierOverride
	ModifierSealed
	ModifierReadonly
	ModifierNew
)

const accessModifiers = ModifierPublic | ModifierProtected | ModifierInternal | ModifierPrivate

// NOTE: ordered as they are printed
var modifierKeywords = []struct {
	modifier Modifiers
	keyword  string
}{
	{ModifierPublic, "public"},
	{ModifierProtected, "protected"},
	{ModifierInternal, "internal"},
	{ModifierPrivate, "private"},
	{ModifierNew, "new"},
	{ModifierStatic, "static"},
	{ModifierAbstract, "abstract"},
	{ModifierVirtual, "virtual"},
	{ModifierOverride, "override"},
	{ModifierSealed, "sealed"},
	{ModifierReadonly, "readonly"},
}

// ModifierFromKeyword returns the modifier for the given keyword,
// and false if the keyword is not a modifier.
func ModifierFromKeyword(keyword string) (Modifiers, bool) {
	for _, entry := range modifierKeywords {
		if entry.keyword == keyword {
			return entry.modifier, true
		}
	}
	return 0, false
}

func (m Modifiers) Has(modifier Modifiers) bool {
	return m&modifier != 0
}

func (m Modifiers) IsStatic() bool {
	return m.Has(ModifierStatic)
}

// WithAccess returns the modifiers with the access modifiers replaced.
func (m Modifiers) WithAccess(access Modifiers) Modifiers {
	return m&^accessModifiers | access&accessModifiers
}

func (m Modifiers) Without(modifiers Modifiers) Modifiers {
	return m &^ modifiers
}

func (m Modifiers) Keywords() []string {
	var keywords []string
	for _, entry := range modifierKeywords {
		if m.Has(entry.modifier) {
			keywords = append(keywords, entry.keyword)
		}
	}
	return keywords
}

// Doc returns the modifiers, each followed by a space.
func (m Modifiers) Doc() prettier.Doc {
	doc := prettier.Concat{}
	for _, keyword := range m.Keywords() {
		doc = append(
			doc,
			prettier.Text(keyword),
			prettier.Space,
		)
	}
	return doc
}
