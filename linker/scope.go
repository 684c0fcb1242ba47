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
)

// bodyScope is the set of names declared by a body being linked.
// Copies spliced into the body are renamed so they never redeclare
// one of its locals, parameters or labels.
type bodyScope struct {
	locals map[string]bool
	labels map[string]bool
}

func newBodyScope(semantic *Semantic, accessor common.AccessorKind, body *ast.Block) *bodyScope {
	scope := &bodyScope{
		locals: map[string]bool{},
		labels: map[string]bool{},
	}

	for _, name := range ast.ParameterNames(ast.MemberParameters(semantic.Member)) {
		scope.locals[name] = true
	}
	if accessor.HasValueParameter() {
		scope.locals[valueParameterName] = true
	}

	if body != nil {
		declaredNames(body, scope.locals, scope.labels)
	}

	return scope
}

// declaredNames adds the locals and labels declared in the given element.
func declaredNames(element ast.Element, locals, labels map[string]bool) {
	ast.Inspect(element, func(element ast.Element) bool {
		switch element := element.(type) {
		case *ast.LocalDeclarationStatement:
			locals[element.Identifier] = true
		case *ast.ForEachStatement:
			locals[element.Identifier] = true
		case *ast.LabeledStatement:
			if element.Label.Name != "" {
				labels[element.Label.Name] = true
			}
		}
		return true
	})
}

// isolate renames the labels and locals of a spliced copy
// which clash with the names of the scope.
// Identifiers of the assigned expression are treated as declared,
// so the assignment still refers to the caller's variable.
// The copy is updated in place.
func (s *bodyScope) isolate(copied *ast.Block, target ast.Expression) {
	used := map[string]bool{}
	declaredNames(copied, used, used)
	ast.Inspect(copied, func(element ast.Element) bool {
		if identifier, ok := element.(*ast.IdentifierExpression); ok {
			used[identifier.Identifier] = true
		}
		return true
	})

	// labels are unique within a member body
	ast.Inspect(copied, func(element ast.Element) bool {
		labeled, ok := element.(*ast.LabeledStatement)
		if !ok || labeled.Label.Name == "" {
			return true
		}
		label := labeled.Label
		if s.labels[label.Name] {
			label.Name = freshName(label.Name, used, s.labels)
		}
		s.labels[label.Name] = true
		return true
	})

	taken := s.locals
	if target != nil {
		taken = make(map[string]bool, len(s.locals))
		for name := range s.locals {
			taken[name] = true
		}
		ast.Inspect(target, func(element ast.Element) bool {
			if identifier, ok := element.(*ast.IdentifierExpression); ok {
				taken[identifier.Identifier] = true
			}
			return true
		})
	}

	renamer := localRenamer{
		taken: taken,
		used:  used,
	}
	renamer.statements(copied.Statements)
}

// freshName returns the first of `name_1`, `name_2`, ...
// which is neither used nor taken, and marks it used.
func freshName(name string, used, taken map[string]bool) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if used[candidate] || taken[candidate] {
			continue
		}
		used[candidate] = true
		return candidate
	}
}

// localRenamer renames clashing locals within the statements they are scoped to.
type localRenamer struct {
	taken map[string]bool
	used  map[string]bool
}

func (r localRenamer) statements(statements []ast.Statement) {
	for _, statement := range statements {
		local := declaredLocal(statement)
		if local == nil || !r.taken[local.Identifier] {
			continue
		}

		name := local.Identifier
		fresh := freshName(name, r.used, r.taken)
		for _, scoped := range statements {
			renameLocal(scoped, name, fresh)
		}
	}

	for _, statement := range statements {
		r.statement(statement)
	}
}

func (r localRenamer) statement(statement ast.Statement) {
	switch statement := statement.(type) {
	case *ast.Block:
		r.statements(statement.Statements)

	case *ast.IfStatement:
		r.statement(statement.Then)
		if statement.Else != nil {
			r.statement(statement.Else)
		}

	case *ast.WhileStatement:
		r.statement(statement.Body)

	case *ast.DoStatement:
		r.statement(statement.Body)

	case *ast.ForEachStatement:
		if r.taken[statement.Identifier] {
			name := statement.Identifier
			renameLocal(statement, name, freshName(name, r.used, r.taken))
		}
		r.statement(statement.Body)

	case *ast.LabeledStatement:
		r.statement(statement.Statement)
	}
}

// declaredLocal returns the local declared directly by the given statement, if any.
func declaredLocal(statement ast.Statement) *ast.LocalDeclarationStatement {
	switch statement := statement.(type) {
	case *ast.LocalDeclarationStatement:
		return statement
	case *ast.LabeledStatement:
		local, _ := statement.Statement.(*ast.LocalDeclarationStatement)
		return local
	}
	return nil
}

func renameLocal(element ast.Element, name string, fresh string) {
	ast.Inspect(element, func(element ast.Element) bool {
		switch element := element.(type) {
		case *ast.IdentifierExpression:
			if element.Identifier == name {
				element.Identifier = fresh
			}
		case *ast.LocalDeclarationStatement:
			if element.Identifier == name {
				element.Identifier = fresh
			}
		case *ast.ForEachStatement:
			if element.Identifier == name {
				element.Identifier = fresh
			}
		}
		return true
	})
}
