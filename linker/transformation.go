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

package linker

import (
	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TransformationKind -trimprefix=TransformationKind

type TransformationKind uint8

const (
	// TransformationKindOverride replaces the bodies of an existing or introduced declaration
	TransformationKindOverride TransformationKind = iota
	// TransformationKindIntroduction contributes a declaration that is absent from the tree
	TransformationKindIntroduction
)

// TransformationKindFromString returns the kind with the given lower-case name.
func TransformationKindFromString(s string) (TransformationKind, bool) {
	switch s {
	case "", "override":
		return TransformationKindOverride, true
	case "introduction":
		return TransformationKindIntroduction, true
	}
	return TransformationKindOverride, false
}

// Transformation is one aspect layer's contribution to a declaration,
// as produced upstream of the linker.
type Transformation struct {
	Declaration common.DeclarationID
	// Ordinal is the position of the aspect layer in the global layer order.
	// The original declaration has ordinal 0
	Ordinal int
	Aspect  string
	Kind    TransformationKind
	// Predecessor is the ordinal of the semantic a default proceed reference invokes.
	// If absent, the closest lower ordinal of the chain is used
	Predecessor *int
	// Final claims that this transformation is the top layer of the chain
	Final                bool
	ForcedNotInlineable  bool
	ForcedNotDiscardable bool
	// Member carries the bodies of the layer.
	// For introductions it also carries the public shape of the declaration
	Member ast.MemberDeclaration
}
