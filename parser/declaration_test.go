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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	. "github.com/onflow/aspectlink/test_utils/common_utils"
)

func TestParseMethod(t *testing.T) {

	t.Parallel()

	member, err := ParseMember([]byte("static void M(int a, List<string> b) { }"))
	require.NoError(t, err)

	require.IsType(t, &ast.MethodDeclaration{}, member)
	method := member.(*ast.MethodDeclaration)

	assert.Equal(t, ast.ModifierStatic, method.Modifiers)
	assert.True(t, method.ReturnType.IsVoid())
	assert.Equal(t, "M", method.Name)
	assert.Equal(t, []string{"a", "b"}, ast.ParameterNames(method.Parameters))
	assert.Equal(t, []string{"int", "List<string>"}, ast.ParameterTypeNames(method.Parameters))
	assert.NotNil(t, method.Body)
	assert.Empty(t, method.Body.Statements)
	assert.Equal(t, rng(0, 39), method.Range)
}

func TestParseAbstractMethod(t *testing.T) {

	t.Parallel()

	member, err := ParseMember([]byte("public abstract int M();"))
	require.NoError(t, err)

	require.IsType(t, &ast.MethodDeclaration{}, member)
	method := member.(*ast.MethodDeclaration)

	assert.Equal(t, ast.ModifierPublic|ast.ModifierAbstract, method.Modifiers)
	assert.Nil(t, method.Body)
	assert.Nil(t, method.Parameters)
}

func TestParseProperty(t *testing.T) {

	t.Parallel()

	const code = `
      /// <summary>The value.</summary>
      public int P { get; private set; } = 1; // trailing
    `

	member, err := ParseMember([]byte(code))
	require.NoError(t, err)

	require.IsType(t, &ast.PropertyDeclaration{}, member)
	property := member.(*ast.PropertyDeclaration)

	assert.Equal(t, ast.ModifierPublic, property.Modifiers)
	assert.Equal(t, "int", property.Type.Name)
	assert.Equal(t, "P", property.Name)

	require.Len(t, property.Accessors, 2)
	assert.Equal(t, common.AccessorKindGet, property.Accessors[0].Kind)
	assert.Equal(t, common.AccessorKindSet, property.Accessors[1].Kind)
	assert.Equal(t, ast.ModifierPrivate, property.Accessors[1].Modifiers)
	assert.True(t, property.Accessors.IsAuto())

	require.IsType(t, &ast.LiteralExpression{}, property.Initializer)

	require.Len(t, property.Comments.Leading, 1)
	assert.True(t, property.Comments.Leading[0].IsDoc())
	require.Len(t, property.Comments.Trailing, 1)
	assert.Equal(t, "// trailing", property.Comments.Trailing[0].String())
}

func TestParsePropertyWithBodies(t *testing.T) {

	t.Parallel()

	member, err := ParseMember([]byte("int P { get { return this.p; } set { this.p = value; } }"))
	require.NoError(t, err)

	require.IsType(t, &ast.PropertyDeclaration{}, member)
	property := member.(*ast.PropertyDeclaration)

	assert.False(t, property.Accessors.IsAuto())
	assert.Nil(t, property.Initializer)

	setter := property.Accessors.Get(common.AccessorKindSet)
	require.NotNil(t, setter)
	require.Len(t, setter.Body.Statements, 1)
}

func TestParseIndexer(t *testing.T) {

	t.Parallel()

	member, err := ParseMember([]byte("public int this[int i, string key] { get { return i; } }"))
	require.NoError(t, err)

	require.IsType(t, &ast.IndexerDeclaration{}, member)
	indexer := member.(*ast.IndexerDeclaration)

	assert.Equal(t, []string{"i", "key"}, ast.ParameterNames(indexer.Parameters))
	require.Len(t, indexer.Accessors, 1)
	assert.Equal(t, common.AccessorKindGet, indexer.Accessors[0].Kind)
	assert.Equal(t, []string{common.IndexerMemberName}, indexer.MemberNames())
}

func TestParseEvents(t *testing.T) {

	t.Parallel()

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()

		member, err := ParseMember([]byte("public event Handler E { add { } remove { } }"))
		require.NoError(t, err)

		require.IsType(t, &ast.EventDeclaration{}, member)
		event := member.(*ast.EventDeclaration)
		assert.Equal(t, "E", event.Name)
		assert.Equal(t, "Handler", event.Type.Name)
		require.Len(t, event.Accessors, 2)
	})

	t.Run("field-like", func(t *testing.T) {
		t.Parallel()

		member, err := ParseMember([]byte("event Handler A, B = null;"))
		require.NoError(t, err)

		require.IsType(t, &ast.EventFieldDeclaration{}, member)
		event := member.(*ast.EventFieldDeclaration)
		assert.Equal(t, []string{"A", "B"}, event.MemberNames())
		assert.Nil(t, event.Variables[0].Initializer)
		assert.NotNil(t, event.Variables[1].Initializer)
		assert.Equal(t, rng(14, 14), event.Variables[0].Range)
		assert.Equal(t, rng(17, 24), event.Variables[1].Range)
	})

	t.Run("invalid accessor", func(t *testing.T) {
		t.Parallel()

		_, err := ParseMember([]byte("event Handler E { get; }"))
		require.Error(t, err)
	})
}

func TestParseField(t *testing.T) {

	t.Parallel()

	member, err := ParseMember([]byte("private static readonly int a = 1, b;"))
	require.NoError(t, err)

	require.IsType(t, &ast.FieldDeclaration{}, member)
	field := member.(*ast.FieldDeclaration)

	assert.Equal(t,
		ast.ModifierPrivate|ast.ModifierStatic|ast.ModifierReadonly,
		field.Modifiers,
	)
	assert.Equal(t, []string{"a", "b"}, field.MemberNames())
	assert.Equal(t, rng(0, 36), field.Range)
	require.Len(t, field.Variables, 2)
	assert.Equal(t, rng(28, 32), field.Variables[0].Range)
	assert.Equal(t, rng(35, 35), field.Variables[1].Range)
}

func TestParseMemberErrors(t *testing.T) {

	t.Parallel()

	for _, code := range []string{
		"int P { }",
		"int P { get; get; }",
		"int this[] { get; }",
		"public public int x;",
		"int M(int a b) { }",
		"int x",
	} {
		_, err := ParseMember([]byte(code))
		assert.Error(t, err, code)
	}
}

func TestParseCompilationUnit(t *testing.T) {

	t.Parallel()

	const code = `
      // File header.
      using System;
      using System.Collections.Generic; // generics

      // The type.
      public class C {
          // The field.
          int x; // trailing

          void M() {
              // not preserved
              x = 1;
          }
      }

      struct S { }
    `

	unit, err := ParseCompilationUnit(TestPath, []byte(code))
	require.NoError(t, err)

	assert.Equal(t, TestPath, unit.Path)
	assert.Equal(t, []string{"System", "System.Collections.Generic"}, unit.Usings)
	require.Len(t, unit.Types, 2)

	c := unit.Types[0]
	assert.Equal(t, "C", c.Name)
	assert.Equal(t, ast.TypeKindClass, c.Kind)
	assert.Equal(t, ast.ModifierPublic, c.Modifiers)
	require.Len(t, c.Comments.Leading, 1)
	assert.Equal(t, "// The type.", c.Comments.Leading[0].String())

	require.Len(t, c.Members, 2)

	field := c.Members[0].(*ast.FieldDeclaration)
	require.Len(t, field.Comments.Leading, 1)
	assert.Equal(t, "// The field.", field.Comments.Leading[0].String())
	require.Len(t, field.Comments.Trailing, 1)
	assert.Equal(t, "// trailing", field.Comments.Trailing[0].String())

	method := c.Members[1].(*ast.MethodDeclaration)
	assert.Empty(t, method.Comments.Leading)
	assert.Empty(t, method.Comments.Trailing)

	s := unit.Types[1]
	assert.Equal(t, ast.TypeKindStruct, s.Kind)
	assert.Empty(t, s.Members)
	assert.Empty(t, s.Comments.Leading)
}

func TestParseCompilationUnitRoundTrip(t *testing.T) {

	t.Parallel()

	const code = `
      using System;

      /// A type with all kinds of members.
      public class C {
          private int x = 1, y; // fields
          public event Handler Changed;
          public int P { get; set; } = 0;
          public int this[int i] {
              get { return i; }
              set { this.x = value; }
          }
          public event Handler E {
              add { this.Changed += value; }
              remove { this.Changed -= value; }
          }
          public virtual string M(int a, string b) {
              if (a > 0) {
                  return $"{b}: {a}";
              }
              return proceed<C.M(int,string)>.original(a, b);
          }
      }
    `

	unit, err := ParseCompilationUnit(TestPath, []byte(code))
	require.NoError(t, err)

	printed := unit.String()

	reparsed, err := ParseCompilationUnit(TestPath, []byte(printed))
	require.NoError(t, err)

	assert.Equal(t, printed, reparsed.String())
}
