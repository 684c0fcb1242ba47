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

// valueParameterName is the implicit parameter of set, init, add and remove accessors
const valueParameterName = "value"

// receiver returns the expression members of the declaration are accessed through:
// `this`, or the name of the type for static members.
func receiver(declaration *Declaration) ast.Expression {
	if declaration.IsStatic() {
		return ast.NewIdentifierExpression(declaration.TypeName())
	}
	return &ast.ThisExpression{}
}

func memberAccess(declaration *Declaration, name string) *ast.MemberAccessExpression {
	return ast.NewMemberAccessExpression(receiver(declaration), name)
}

// publicAccess returns the expression invoking the given accessor
// of the declaration under its public name.
// Set, init, add and remove accessors take the value as the last argument.
func publicAccess(
	declaration *Declaration,
	accessor common.AccessorKind,
	arguments []ast.Expression,
) ast.Expression {
	if declaration.Kind() == common.MemberKindIndexer {
		switch accessor {
		case common.AccessorKindGet:
			return &ast.ElementAccessExpression{
				Target:    &ast.ThisExpression{},
				Arguments: arguments,
			}

		case common.AccessorKindSet, common.AccessorKindInit:
			last := len(arguments) - 1
			return ast.NewAssignmentExpression(
				ast.AssignmentOperationSimple,
				&ast.ElementAccessExpression{
					Target:    &ast.ThisExpression{},
					Arguments: arguments[:last],
				},
				arguments[last],
			)
		}

		panic(errors.NewUnreachableError())
	}

	return access(declaration, declaration.Name(), accessor, arguments)
}

// synthesizedAccess returns the expression invoking the given accessor
// of the synthesized member with the given name.
// Indexers are synthesized as methods.
func synthesizedAccess(
	declaration *Declaration,
	name string,
	accessor common.AccessorKind,
	arguments []ast.Expression,
) ast.Expression {
	if declaration.Kind() == common.MemberKindIndexer {
		return ast.NewInvocationExpression(
			memberAccess(declaration, indexerMethodName(name, accessor)),
			arguments...,
		)
	}

	return access(declaration, name, accessor, arguments)
}

func access(
	declaration *Declaration,
	name string,
	accessor common.AccessorKind,
	arguments []ast.Expression,
) ast.Expression {
	target := memberAccess(declaration, name)

	switch declaration.Kind() {
	case common.MemberKindMethod:
		return ast.NewInvocationExpression(target, arguments...)

	case common.MemberKindProperty,
		common.MemberKindField,
		common.MemberKindEvent,
		common.MemberKindEventField:

		switch accessor {
		case common.AccessorKindGet:
			return target
		case common.AccessorKindSet, common.AccessorKindInit:
			return ast.NewAssignmentExpression(ast.AssignmentOperationSimple, target, arguments[0])
		case common.AccessorKindAdd:
			return ast.NewAssignmentExpression(ast.AssignmentOperationAdd, target, arguments[0])
		case common.AccessorKindRemove:
			return ast.NewAssignmentExpression(ast.AssignmentOperationSubtract, target, arguments[0])
		}
	}

	panic(errors.NewUnreachableError())
}

func indexerMethodName(name string, accessor common.AccessorKind) string {
	switch accessor {
	case common.AccessorKindGet:
		return name + "_Get"
	case common.AccessorKindSet, common.AccessorKindInit:
		return name + "_Set"
	}

	panic(errors.NewUnreachableError())
}

// parameterNames returns the names of the values the given accessor
// of the member receives, in order.
func parameterNames(member ast.MemberDeclaration, accessor common.AccessorKind) []string {
	names := ast.ParameterNames(ast.MemberParameters(member))
	if accessor.HasValueParameter() {
		names = append(names, valueParameterName)
	}
	return names
}
