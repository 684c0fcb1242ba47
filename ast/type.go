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

const VoidTypeName = "void"

// TypeReference is a reference to a type by its source name,
// e.g. `int`, `System.Int32`, `List<string>` or `int[]`.
// Resolving the name to a type is left to the sema package.
type TypeReference struct {
	Name string
	Range
}

var _ Element = &TypeReference{}

func NewTypeReference(name string) *TypeReference {
	return &TypeReference{
		Name: name,
	}
}

func (*TypeReference) ElementType() ElementType {
	return ElementTypeTypeReference
}

func (*TypeReference) Walk(_ func(Element)) {
	// NO-OP
}

func (t *TypeReference) Doc() prettier.Doc {
	return prettier.Text(t.Name)
}

func (t *TypeReference) String() string {
	return t.Name
}

// IsVoid returns true if the reference is absent or names `void`.
func (t *TypeReference) IsVoid() bool {
	return t == nil || t.Name == VoidTypeName
}
