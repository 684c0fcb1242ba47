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

// Package sema provides the declaration model of a compilation unit:
// the declarations the linker can transform, their identities, kinds and types.
package sema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
)

// Model is the declaration model of a compilation unit.
// It is immutable after construction and safe for concurrent use.
type Model struct {
	unit         *ast.CompilationUnit
	types        *orderedmap.OrderedMap[string, *TypeInfo]
	declarations *orderedmap.OrderedMap[common.DeclarationID, *DeclarationInfo]
}

// TypeInfo is a type declaration and its declarations, by member name.
type TypeInfo struct {
	Declaration *ast.TypeDeclaration
	Index       int
	// members are the declarations of the type, by member name;
	// overloaded methods share one name
	members *orderedmap.OrderedMap[string, []*DeclarationInfo]
}

// MemberNames returns the names of the declared members, in declaration order.
func (t *TypeInfo) MemberNames() []string {
	names := make([]string, 0, t.members.Len())
	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// HasMember returns true if the type declares a member with the given name.
func (t *TypeInfo) HasMember(name string) bool {
	_, ok := t.members.Get(name)
	return ok
}

// DeclarationInfo is one declaration of a type.
// Fields and field-like events declare one declaration per variable.
type DeclarationInfo struct {
	ID     common.DeclarationID
	Type   *TypeInfo
	Member ast.MemberDeclaration
	// Variable is the variable of a field or field-like event declaration, if any
	Variable *ast.VariableDeclarator
	// MemberIndex is the index of the member in its type
	MemberIndex int
	// VariableIndex is the index of the variable in its member declaration
	VariableIndex int
}

func (d *DeclarationInfo) Kind() common.MemberKind {
	return d.Member.MemberKind()
}

func (d *DeclarationInfo) Name() string {
	return d.ID.Member
}

func (d *DeclarationInfo) IsStatic() bool {
	return d.Member.MemberModifiers().IsStatic()
}

// MemberType returns the return type of a method,
// or the type of a property, indexer, event or field.
func (d *DeclarationInfo) MemberType() *ast.TypeReference {
	return d.Member.MemberType()
}

// Parameters returns the parameters of a method or indexer.
func (d *DeclarationInfo) Parameters() []*ast.Parameter {
	return MemberParameters(d.Member)
}

// Accessors returns the accessor kinds the declaration can be invoked through.
// Methods have the single accessor kind AccessorKindNone.
func (d *DeclarationInfo) Accessors() []common.AccessorKind {
	return MemberAccessors(d.Member)
}

// HasAccessor returns true if the declaration can be invoked through the given accessor.
func (d *DeclarationInfo) HasAccessor(kind common.AccessorKind) bool {
	for _, accessor := range d.Accessors() {
		if accessor == kind {
			return true
		}
	}
	return false
}

// Compare orders declarations by their position in the compilation unit.
func (d *DeclarationInfo) Compare(other *DeclarationInfo) int {
	switch {
	case d.Type.Index != other.Type.Index:
		return compareInts(d.Type.Index, other.Type.Index)
	case d.MemberIndex != other.MemberIndex:
		return compareInts(d.MemberIndex, other.MemberIndex)
	default:
		return compareInts(d.VariableIndex, other.VariableIndex)
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MemberParameters returns the parameters of a method or indexer, and nil for other members.
func MemberParameters(member ast.MemberDeclaration) []*ast.Parameter {
	switch member := member.(type) {
	case *ast.MethodDeclaration:
		return member.Parameters
	case *ast.IndexerDeclaration:
		return member.Parameters
	}
	return nil
}

// MemberAccessors returns the accessor kinds of the given member.
// Fields can be read and written, field-like events added to and removed from.
func MemberAccessors(member ast.MemberDeclaration) []common.AccessorKind {
	switch member := member.(type) {
	case *ast.MethodDeclaration:
		return []common.AccessorKind{common.AccessorKindNone}

	case *ast.PropertyDeclaration:
		return accessorKinds(member.Accessors)

	case *ast.IndexerDeclaration:
		return accessorKinds(member.Accessors)

	case *ast.EventDeclaration:
		return accessorKinds(member.Accessors)

	case *ast.EventFieldDeclaration:
		return []common.AccessorKind{common.AccessorKindAdd, common.AccessorKindRemove}

	case *ast.FieldDeclaration:
		return []common.AccessorKind{common.AccessorKindGet, common.AccessorKindSet}
	}

	panic(errors.NewUnreachableError())
}

func accessorKinds(accessors ast.AccessorList) []common.AccessorKind {
	kinds := make([]common.AccessorKind, len(accessors))
	for i, accessor := range accessors {
		kinds[i] = accessor.Kind
	}
	return kinds
}

// DeclarationIDs returns the identities of the declarations of the given member of the given type.
// Methods are identified by their signature; fields and field-like events
// have one identity per variable.
func DeclarationIDs(typeName string, member ast.MemberDeclaration) []common.DeclarationID {
	switch member := member.(type) {
	case *ast.MethodDeclaration:
		return []common.DeclarationID{
			common.NewMethodDeclarationID(
				typeName,
				member.Name,
				NormalizedTypeNames(ast.ParameterTypeNames(member.Parameters)),
			),
		}
	}

	names := member.MemberNames()
	ids := make([]common.DeclarationID, len(names))
	for i, name := range names {
		ids[i] = common.NewDeclarationID(typeName, name)
	}
	return ids
}

// NewModel builds the declaration model of the given compilation unit.
func NewModel(unit *ast.CompilationUnit) (*Model, error) {
	model := &Model{
		unit:         unit,
		types:        orderedmap.New[string, *TypeInfo](),
		declarations: orderedmap.New[common.DeclarationID, *DeclarationInfo](),
	}

	var errs []error

	for typeIndex, typeDeclaration := range unit.Types {
		if previous, ok := model.types.Get(typeDeclaration.Name); ok {
			errs = append(errs, &RedeclarationError{
				Name:        typeDeclaration.Name,
				Pos:         typeDeclaration.StartPos,
				PreviousPos: previous.Declaration.StartPos,
			})
			continue
		}

		typeInfo := &TypeInfo{
			Declaration: typeDeclaration,
			Index:       typeIndex,
			members:     orderedmap.New[string, []*DeclarationInfo](),
		}
		model.types.Set(typeDeclaration.Name, typeInfo)

		for memberIndex, member := range typeDeclaration.Members {
			ids := DeclarationIDs(typeDeclaration.Name, member)

			for variableIndex, id := range ids {
				info := &DeclarationInfo{
					ID:            id,
					Type:          typeInfo,
					Member:        member,
					MemberIndex:   memberIndex,
					VariableIndex: variableIndex,
				}
				info.Variable = memberVariable(member, variableIndex)

				if previous, ok := model.declarations.Get(id); ok {
					errs = append(errs, &RedeclarationError{
						Name:        id.String(),
						Pos:         info.Position(),
						PreviousPos: previous.Position(),
					})
					continue
				}

				model.declarations.Set(id, info)

				overloads, _ := typeInfo.members.Get(id.Member)
				typeInfo.members.Set(id.Member, append(overloads, info))
			}
		}
	}

	if len(errs) > 0 {
		return nil, &ModelError{
			Path:   unit.Path,
			Errors: errs,
		}
	}

	return model, nil
}

func memberVariable(member ast.MemberDeclaration, index int) *ast.VariableDeclarator {
	switch member := member.(type) {
	case *ast.FieldDeclaration:
		return member.Variables[index]
	case *ast.EventFieldDeclaration:
		return member.Variables[index]
	}
	return nil
}

// Position returns the start position of the declaration's variable or member.
func (d *DeclarationInfo) Position() ast.Position {
	if d.Variable != nil {
		return d.Variable.StartPos
	}
	return d.Member.StartPosition()
}

func (m *Model) Unit() *ast.CompilationUnit {
	return m.unit
}

// LookupType returns the type with the given name.
func (m *Model) LookupType(name string) (*TypeInfo, bool) {
	return m.types.Get(name)
}

// Lookup returns the declaration with the given identity.
//
// A method can be identified without a signature if it is not overloaded.
// Parameter types of a signature are compared modulo type aliases,
// e.g. `C.M(Int32)` identifies `void M(int x)`.
func (m *Model) Lookup(id common.DeclarationID) (*DeclarationInfo, bool) {
	info, ok := m.declarations.Get(id)
	if ok {
		return info, true
	}

	typeInfo, ok := m.types.Get(id.Type)
	if !ok {
		return nil, false
	}

	overloads, ok := typeInfo.members.Get(id.Member)
	if !ok {
		return nil, false
	}

	if id.Signature == "" {
		if len(overloads) == 1 {
			return overloads[0], true
		}
		return nil, false
	}

	signature := common.FormatSignature(NormalizedTypeNames(id.ParameterTypes()))
	for _, overload := range overloads {
		if overload.ID.Signature == signature {
			return overload, true
		}
	}

	return nil, false
}

// Declarations returns all declarations, in tree order.
func (m *Model) Declarations() []*DeclarationInfo {
	result := make([]*DeclarationInfo, 0, m.declarations.Len())
	for pair := m.declarations.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// ClosestMember returns the member name of the given type that is closest to the member
// of the given identity, for a "did you mean" suggestion.
func (m *Model) ClosestMember(id common.DeclarationID) (string, bool) {
	typeInfo, ok := m.types.Get(id.Type)
	if !ok {
		return "", false
	}
	closest := closestName(id.Member, typeInfo.MemberNames())
	return closest, closest != ""
}

// ClosestType returns the type name closest to the given name.
func (m *Model) ClosestType(name string) (string, bool) {
	names := make([]string, 0, m.types.Len())
	for pair := m.types.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	closest := closestName(name, names)
	return closest, closest != ""
}
