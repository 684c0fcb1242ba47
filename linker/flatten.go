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
	"github.com/onflow/aspectlink/errors"
)

func backingFieldName(name string) string {
	return "__" + name + "__BackingField"
}

// flatten gives an overridden storage declaration explicit storage.
//
// It returns the member the first semantic of the declaration is linked through,
// and the backing field. Auto-properties keep their accessors, fields become
// properties with get and set accessors, field-like events become events
// with add and remove accessors. The backing field is nil if the member
// already has explicit accessors.
func flatten(declaration *Declaration, member ast.MemberDeclaration) (ast.MemberDeclaration, *ast.FieldDeclaration) {
	switch member := member.(type) {
	case *ast.PropertyDeclaration:
		if !member.IsAuto() {
			return member, nil
		}

		backingField := newBackingField(declaration, member.Initializer)

		accessors := make(ast.AccessorList, len(member.Accessors))
		for i, accessor := range member.Accessors {
			accessors[i] = &ast.Accessor{
				Kind:      accessor.Kind,
				Modifiers: accessor.Modifiers,
				Body:      backingFieldAccessorBody(declaration, accessor.Kind),
				Range:     accessor.Range,
			}
		}

		result := *member
		result.Accessors = accessors
		result.Initializer = nil
		return &result, backingField

	case *ast.FieldDeclaration:
		backingField := newBackingField(declaration, declaration.Variable.Initializer)

		return &ast.PropertyDeclaration{
			Modifiers: member.Modifiers.Without(ast.ModifierReadonly),
			Type:      member.Type,
			Name:      declaration.Name(),
			Accessors: backingFieldAccessors(
				declaration,
				common.AccessorKindGet,
				common.AccessorKindSet,
			),
			Range: ast.NewRangeFromPositioned(declaration.Variable),
		}, backingField

	case *ast.EventFieldDeclaration:
		backingField := newBackingField(declaration, declaration.Variable.Initializer)

		return &ast.EventDeclaration{
			Modifiers: member.Modifiers,
			Type:      member.Type,
			Name:      declaration.Name(),
			Accessors: backingFieldAccessors(
				declaration,
				common.AccessorKindAdd,
				common.AccessorKindRemove,
			),
			Range: ast.NewRangeFromPositioned(declaration.Variable),
		}, backingField
	}

	return member, nil
}

func newBackingField(declaration *Declaration, initializer ast.Expression) *ast.FieldDeclaration {
	modifiers := ast.ModifierPrivate
	if declaration.IsStatic() {
		modifiers |= ast.ModifierStatic
	}

	return &ast.FieldDeclaration{
		Modifiers: modifiers,
		Type:      declaration.MemberType(),
		Variables: []*ast.VariableDeclarator{
			ast.NewVariableDeclarator(
				backingFieldName(declaration.Name()),
				ast.CloneExpression(initializer),
			),
		},
	}
}

func backingFieldAccessors(declaration *Declaration, kinds ...common.AccessorKind) ast.AccessorList {
	accessors := make(ast.AccessorList, len(kinds))
	for i, kind := range kinds {
		accessors[i] = ast.NewAccessor(kind, backingFieldAccessorBody(declaration, kind))
	}
	return accessors
}

// backingFieldAccessorBody returns the body of the given accessor
// reading or writing the backing field of the declaration.
func backingFieldAccessorBody(declaration *Declaration, kind common.AccessorKind) *ast.Block {
	field := memberAccess(declaration, backingFieldName(declaration.Name()))
	value := ast.NewIdentifierExpression(valueParameterName)

	switch kind {
	case common.AccessorKindGet:
		return ast.NewBlock(ast.NewReturnStatement(field))

	case common.AccessorKindSet, common.AccessorKindInit:
		return ast.NewBlock(ast.NewExpressionStatement(
			ast.NewAssignmentExpression(ast.AssignmentOperationSimple, field, value),
		))

	case common.AccessorKindAdd:
		return ast.NewBlock(ast.NewExpressionStatement(
			ast.NewAssignmentExpression(ast.AssignmentOperationAdd, field, value),
		))

	case common.AccessorKindRemove:
		return ast.NewBlock(ast.NewExpressionStatement(
			ast.NewAssignmentExpression(ast.AssignmentOperationSubtract, field, value),
		))
	}

	panic(errors.NewUnreachableError())
}
