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

// Package ast contains the syntax model the linker operates on:
// compilation units, type and member declarations, statements and expressions
// of a C#-like member language.
// All AST nodes implement the Element interface,
// so have position information, can be traversed using Walk and Inspect,
// and can be rendered to source text through a prettier document.
package ast

import (
	"strings"

	"github.com/turbolent/prettier"
)

type Element interface {
	HasPosition
	ElementType() ElementType
	Walk(walkChild func(Element))
	Doc() prettier.Doc
}

// Inspect traverses the given element in depth-first order:
// It starts by calling f(element); element must not be nil.
// If f returns true, Inspect invokes f recursively for each of the non-nil children of element,
// followed by a call of f(nil).
func Inspect(element Element, f func(Element) bool) {
	if !f(element) {
		return
	}

	element.Walk(func(child Element) {
		if child == nil {
			return
		}
		Inspect(child, f)
	})

	f(nil)
}

const prettierMaxLineWidth = 120

const prettierIndent = "    "

// Prettier renders the document of the given element as source text.
func Prettier(element interface{ Doc() prettier.Doc }) string {
	var builder strings.Builder
	prettier.Prettier(&builder, element.Doc(), prettierMaxLineWidth, prettierIndent)
	return builder.String()
}

func joinDocs(separator prettier.Doc, docs []prettier.Doc) prettier.Doc {
	if len(docs) == 0 {
		return prettier.Concat{}
	}
	return prettier.Join(separator, docs...)
}

var commaSeparatorDoc prettier.Doc = prettier.Text(", ")
