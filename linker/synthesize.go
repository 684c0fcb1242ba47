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
	"strings"
	"unicode"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
)

// synthesizedName returns the name of the standalone member of the given semantic,
// before name clashes are resolved.
func synthesizedName(declaration *Declaration, semantic *Semantic) string {
	base := declaration.baseName()

	switch semantic.Kind {
	case SemanticKindOriginal, SemanticKindIntroduction:
		return fmt.Sprintf("__%s__OriginalImpl", base)
	case SemanticKindOverride:
		return fmt.Sprintf("__%s__%s", base, sanitizeIdentifier(semantic.Aspect))
	case SemanticKindEmpty:
		return fmt.Sprintf("__%s__Empty", base)
	}

	panic(errors.NewUnreachableError())
}

// sanitizeIdentifier replaces all characters which may not occur in an identifier,
// e.g. the dots of a qualified aspect name.
func sanitizeIdentifier(name string) string {
	if name == "" {
		return "Aspect"
	}
	return strings.Map(
		func(r rune) rune {
			if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return '_'
		},
		name,
	)
}

// memberNames assigns the names of synthesized members,
// avoiding the names of each type's existing and introduced members.
type memberNames struct {
	set   *ChainSet
	used  map[string]map[string]bool
	names map[SemanticKey]string
}

func newMemberNames(set *ChainSet) *memberNames {
	names := &memberNames{
		set:   set,
		used:  map[string]map[string]bool{},
		names: map[SemanticKey]string{},
	}

	for _, chain := range set.Chains() {
		used := names.usedNames(chain.Declaration)
		used[chain.Declaration.Name()] = true
		if chain.BackingField != nil {
			used[backingFieldName(chain.Declaration.Name())] = true
		}
	}

	return names
}

func (n *memberNames) usedNames(declaration *Declaration) map[string]bool {
	used, ok := n.used[declaration.TypeName()]
	if !ok {
		used = map[string]bool{}
		for _, name := range declaration.Type.MemberNames() {
			used[name] = true
		}
		n.used[declaration.TypeName()] = used
	}
	return used
}

// assign assigns a unique name to the standalone member of the given semantic.
func (n *memberNames) assign(declaration *Declaration, semantic *Semantic) string {
	if name, ok := n.names[semantic.Key]; ok {
		return name
	}

	used := n.usedNames(declaration)
	isIndexer := declaration.Kind() == common.MemberKindIndexer

	clashes := func(name string) bool {
		if isIndexer {
			return used[name+"_Get"] || used[name+"_Set"]
		}
		return used[name]
	}

	name := synthesizedName(declaration, semantic)
	if clashes(name) && semantic.Key.Ordinal > 0 {
		name = fmt.Sprintf("%s_%d", name, semantic.Key.Ordinal)
	}
	base := name
	for i := 2; clashes(name); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}

	if isIndexer {
		used[name+"_Get"] = true
		used[name+"_Set"] = true
	} else {
		used[name] = true
	}
	n.names[semantic.Key] = name

	return name
}

// bodyFunc returns the linked body of the given body key.
type bodyFunc func(BodyKey) *ast.Block

func synthesizedModifiers(declaration *Declaration) ast.Modifiers {
	modifiers := ast.ModifierPrivate
	if declaration.IsStatic() {
		modifiers |= ast.ModifierStatic
	}
	return modifiers
}

// synthesizedMembers returns the standalone members of the given semantic:
// one member of the semantic's kind, or one method per accessor for indexers.
func synthesizedMembers(
	declaration *Declaration,
	semantic *Semantic,
	name string,
	bodies bodyFunc,
) []ast.MemberDeclaration {
	modifiers := synthesizedModifiers(declaration)

	body := func(accessor common.AccessorKind) *ast.Block {
		return bodies(BodyKey{
			Semantic: semantic.Key,
			Accessor: accessor,
		})
	}

	switch member := semantic.Member.(type) {
	case *ast.MethodDeclaration:
		return []ast.MemberDeclaration{
			&ast.MethodDeclaration{
				Modifiers:  modifiers,
				ReturnType: member.ReturnType,
				Name:       name,
				Parameters: member.Parameters,
				Body:       body(common.AccessorKindNone),
			},
		}

	case *ast.PropertyDeclaration:
		return []ast.MemberDeclaration{
			&ast.PropertyDeclaration{
				Modifiers: modifiers,
				Type:      member.Type,
				Name:      name,
				Accessors: accessorsWithBodies(member.Accessors, body, false),
			},
		}

	case *ast.EventDeclaration:
		return []ast.MemberDeclaration{
			&ast.EventDeclaration{
				Modifiers: modifiers,
				Type:      member.Type,
				Name:      name,
				Accessors: accessorsWithBodies(member.Accessors, body, false),
			},
		}

	case *ast.IndexerDeclaration:
		var result []ast.MemberDeclaration
		for _, accessor := range member.Accessors {
			switch accessor.Kind {
			case common.AccessorKindGet:
				result = append(result, &ast.MethodDeclaration{
					Modifiers:  modifiers,
					ReturnType: member.Type,
					Name:       indexerMethodName(name, accessor.Kind),
					Parameters: member.Parameters,
					Body:       body(accessor.Kind),
				})

			case common.AccessorKindSet, common.AccessorKindInit:
				parameters := make([]*ast.Parameter, 0, len(member.Parameters)+1)
				parameters = append(parameters, member.Parameters...)
				parameters = append(parameters, ast.NewParameter(member.Type, valueParameterName))

				result = append(result, &ast.MethodDeclaration{
					Modifiers:  modifiers,
					ReturnType: ast.NewTypeReference(ast.VoidTypeName),
					Name:       indexerMethodName(name, accessor.Kind),
					Parameters: parameters,
					Body:       body(accessor.Kind),
				})
			}
		}
		return result
	}

	panic(errors.NewUnreachableError())
}

// accessorsWithBodies returns copies of the given accessors with the linked bodies.
// Accessor modifiers are only kept for public members,
// as a private member's accessors cannot be more restrictive.
func accessorsWithBodies(
	accessors ast.AccessorList,
	body func(common.AccessorKind) *ast.Block,
	keepModifiers bool,
) ast.AccessorList {
	result := make(ast.AccessorList, len(accessors))
	for i, accessor := range accessors {
		linked := ast.NewAccessor(accessor.Kind, body(accessor.Kind))
		if keepModifiers {
			linked.Modifiers = accessor.Modifiers
		}
		result[i] = linked
	}
	return result
}

// publicMember returns the member exposing the Final semantic of the chain
// under the public name, in the shape of the chain's first semantic.
func publicMember(chain *Chain, bodies bodyFunc) ast.MemberDeclaration {
	final := chain.Final()

	body := func(accessor common.AccessorKind) *ast.Block {
		return bodies(BodyKey{
			Semantic: final.Key,
			Accessor: accessor,
		})
	}

	parameters := ast.MemberParameters(final.Member)

	switch shape := chain.First().Member.(type) {
	case *ast.MethodDeclaration:
		result := *shape
		result.Parameters = parameters
		result.Body = body(common.AccessorKindNone)
		return &result

	case *ast.PropertyDeclaration:
		result := *shape
		result.Accessors = accessorsWithBodies(shape.Accessors, body, true)
		return &result

	case *ast.IndexerDeclaration:
		result := *shape
		result.Parameters = parameters
		result.Accessors = accessorsWithBodies(shape.Accessors, body, true)
		return &result

	case *ast.EventDeclaration:
		result := *shape
		result.Accessors = accessorsWithBodies(shape.Accessors, body, true)
		return &result

	case *ast.FieldDeclaration, *ast.EventFieldDeclaration:
		// storage is only kept as is when nothing overrides it
		return shape
	}

	panic(errors.NewUnreachableError())
}

// emptyMember returns a member of the given shape whose bodies do nothing,
// and produce the default value of the member's type where a value is expected.
func emptyMember(shape ast.MemberDeclaration) ast.MemberDeclaration {
	body := func(returnsValue bool) *ast.Block {
		if returnsValue {
			return ast.NewBlock(ast.NewReturnStatement(ast.NewDefaultExpression(nil)))
		}
		return ast.NewBlock()
	}

	accessorBody := func(kind common.AccessorKind) *ast.Block {
		return body(kind.ReturnsValue())
	}

	switch shape := shape.(type) {
	case *ast.MethodDeclaration:
		result := *shape
		result.Comments = ast.Comments{}
		result.Body = body(!shape.ReturnType.IsVoid())
		return &result

	case *ast.PropertyDeclaration:
		result := *shape
		result.Comments = ast.Comments{}
		result.Accessors = accessorsWithBodies(shape.Accessors, accessorBody, false)
		result.Initializer = nil
		return &result

	case *ast.IndexerDeclaration:
		result := *shape
		result.Comments = ast.Comments{}
		result.Accessors = accessorsWithBodies(shape.Accessors, accessorBody, false)
		return &result

	case *ast.EventDeclaration:
		result := *shape
		result.Comments = ast.Comments{}
		result.Accessors = accessorsWithBodies(shape.Accessors, accessorBody, false)
		return &result

	case *ast.FieldDeclaration:
		return &ast.PropertyDeclaration{
			Modifiers: shape.Modifiers,
			Type:      shape.Type,
			Name:      shape.Variables[0].Name,
			Accessors: ast.AccessorList{
				ast.NewAccessor(common.AccessorKindGet, body(true)),
				ast.NewAccessor(common.AccessorKindSet, body(false)),
			},
		}

	case *ast.EventFieldDeclaration:
		return &ast.EventDeclaration{
			Modifiers: shape.Modifiers,
			Type:      shape.Type,
			Name:      shape.Variables[0].Name,
			Accessors: ast.AccessorList{
				ast.NewAccessor(common.AccessorKindAdd, body(false)),
				ast.NewAccessor(common.AccessorKindRemove, body(false)),
			},
		}
	}

	panic(errors.NewUnreachableError())
}

// withComments returns a copy of the member with the given comments.
func withComments(member ast.MemberDeclaration, comments ast.Comments) ast.MemberDeclaration {
	switch member := member.(type) {
	case *ast.MethodDeclaration:
		result := *member
		result.Comments = comments
		return &result
	case *ast.PropertyDeclaration:
		result := *member
		result.Comments = comments
		return &result
	case *ast.IndexerDeclaration:
		result := *member
		result.Comments = comments
		return &result
	case *ast.EventDeclaration:
		result := *member
		result.Comments = comments
		return &result
	case *ast.EventFieldDeclaration:
		result := *member
		result.Comments = comments
		return &result
	case *ast.FieldDeclaration:
		result := *member
		result.Comments = comments
		return &result
	}

	panic(errors.NewUnreachableError())
}
