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
	"fmt"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/sema"
)

// OriginalOrdinal is the ordinal of the semantic declared in the tree
const OriginalOrdinal = 0

// EmptyOrdinal is the ordinal of the synthesized default semantic,
// which precedes every other semantic of a chain
const EmptyOrdinal = -1

// SemanticKey identifies a semantic of a chain.
type SemanticKey struct {
	Declaration common.DeclarationID
	Ordinal     int
}

func (k SemanticKey) String() string {
	if k.Ordinal == EmptyOrdinal {
		return fmt.Sprintf("%s@empty", k.Declaration)
	}
	return fmt.Sprintf("%s@%d", k.Declaration, k.Ordinal)
}

// Compare orders keys of the same declaration by ordinal.
func (k SemanticKey) Compare(other SemanticKey) int {
	switch {
	case k.Ordinal < other.Ordinal:
		return -1
	case k.Ordinal > other.Ordinal:
		return 1
	default:
		return 0
	}
}

//go:generate go run golang.org/x/tools/cmd/stringer -type=SemanticKind -trimprefix=SemanticKind

type SemanticKind uint8

const (
	SemanticKindOriginal SemanticKind = iota
	SemanticKindIntroduction
	SemanticKindOverride
	SemanticKindEmpty
)

// Semantic is one implementation of a declaration at one point of the layer order.
//
// Semantics are immutable once their chain is built:
// rewriting produces new bodies instead of changing Member.
type Semantic struct {
	Key         SemanticKey
	Kind        SemanticKind
	Aspect      string
	Predecessor *SemanticKey
	// Member carries the bodies, one per accessor,
	// or the single body of a method
	Member               ast.MemberDeclaration
	ForcedNotInlineable  bool
	ForcedNotDiscardable bool

	// index is the position of the semantic in its chain set
	index uint
}

// Body returns the body of the given accessor,
// or the body of a method for AccessorKindNone.
func (s *Semantic) Body(accessor common.AccessorKind) *ast.Block {
	if method, ok := s.Member.(*ast.MethodDeclaration); ok {
		return method.Body
	}

	declaration := ast.MemberAccessors(s.Member).Get(accessor)
	if declaration == nil {
		return nil
	}
	return declaration.Body
}

// BodyKeys returns the keys of all bodies of the semantic, in declaration order.
func (s *Semantic) BodyKeys() []BodyKey {
	accessors := sema.MemberAccessors(s.Member)
	keys := make([]BodyKey, len(accessors))
	for i, accessor := range accessors {
		keys[i] = BodyKey{
			Semantic: s.Key,
			Accessor: accessor,
		}
	}
	return keys
}

// BodyKey identifies one body of a semantic:
// the body of a method, or the body of one accessor.
type BodyKey struct {
	Semantic SemanticKey
	Accessor common.AccessorKind
}

func (k BodyKey) String() string {
	if k.Accessor == common.AccessorKindNone {
		return k.Semantic.String()
	}
	return fmt.Sprintf("%s.%s", k.Semantic, k.Accessor.Keyword())
}

// Declaration is a declaration of the compilation unit:
// either a member of the tree, or a member introduced by an aspect.
type Declaration struct {
	ID   common.DeclarationID
	Type *sema.TypeInfo
	// Member declares the declaration
	Member ast.MemberDeclaration
	// Variable is the variable of a field or field-like event declaration
	Variable   *ast.VariableDeclarator
	Introduced bool
	// Index is the position of the declaration among the declarations of its type.
	// Introduced declarations follow the declarations of the tree
	Index int
}

func newTreeDeclaration(info *sema.DeclarationInfo) *Declaration {
	return &Declaration{
		ID:       info.ID,
		Type:     info.Type,
		Member:   info.Member,
		Variable: info.Variable,
		Index:    info.MemberIndex,
	}
}

func (d *Declaration) Kind() common.MemberKind {
	return d.Member.MemberKind()
}

func (d *Declaration) Name() string {
	return d.ID.Member
}

func (d *Declaration) TypeName() string {
	return d.ID.Type
}

func (d *Declaration) IsStatic() bool {
	return d.Member.MemberModifiers().IsStatic()
}

func (d *Declaration) MemberType() *ast.TypeReference {
	return d.Member.MemberType()
}

func (d *Declaration) Parameters() []*ast.Parameter {
	return sema.MemberParameters(d.Member)
}

func (d *Declaration) Accessors() []common.AccessorKind {
	return sema.MemberAccessors(d.Member)
}

func (d *Declaration) HasAccessor(kind common.AccessorKind) bool {
	for _, accessor := range d.Accessors() {
		if accessor == kind {
			return true
		}
	}
	return false
}

// ReturnsValue returns true if invoking the given accessor of the declaration
// produces a value.
func (d *Declaration) ReturnsValue(accessor common.AccessorKind) bool {
	if d.Kind() == common.MemberKindMethod {
		return !d.MemberType().IsVoid()
	}
	return accessor.ReturnsValue()
}

// baseName is the name synthesized member names are derived from.
func (d *Declaration) baseName() string {
	if d.Kind() == common.MemberKindIndexer {
		return indexerBaseName
	}
	return d.Name()
}

const indexerBaseName = "Item"

// Chain is the ordered list of semantics of one declaration.
//
// The first semantic is the Original or the Introduction,
// followed by Overrides in strictly increasing ordinal order.
// The last semantic is the Final semantic.
type Chain struct {
	Declaration *Declaration
	Semantics   []*Semantic
	// Empty is the semantic invoked when nothing precedes a reference
	Empty *Semantic
	// BackingField holds the storage of a flattened declaration, if any
	BackingField *ast.FieldDeclaration
}

func (c *Chain) First() *Semantic {
	return c.Semantics[0]
}

func (c *Chain) Final() *Semantic {
	return c.Semantics[len(c.Semantics)-1]
}

func (c *Chain) IsFinal(semantic *Semantic) bool {
	return semantic == c.Final()
}

// Semantic returns the semantic with the given ordinal.
func (c *Chain) Semantic(ordinal int) (*Semantic, bool) {
	if ordinal == EmptyOrdinal {
		return c.Empty, true
	}
	for _, semantic := range c.Semantics {
		if semantic.Key.Ordinal == ordinal {
			return semantic, true
		}
	}
	return nil, false
}

// Below returns the last semantic with an ordinal lower than the given one,
// or the Empty semantic if there is none.
func (c *Chain) Below(ordinal int) *Semantic {
	result := c.Empty
	for _, semantic := range c.Semantics {
		if semantic.Key.Ordinal >= ordinal {
			break
		}
		result = semantic
	}
	return result
}
