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

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/parser"
	. "github.com/onflow/aspectlink/test_utils/common_utils"
)

func parseAndBuildModel(t *testing.T, code string) *Model {
	t.Helper()

	unit, err := parser.ParseCompilationUnit(TestPath, []byte(code))
	require.NoError(t, err)

	model, err := NewModel(unit)
	require.NoError(t, err)

	return model
}

const exampleCode = `
  class C {
      private int a = 1, b;
      public int P { get; set; }
      public static void M(int x) { }
      public void M(string s) { }
      public int this[int i] { get { return i; } }
      public event Handler Changed;
      public event Handler E { add { } remove { } }
      public string Name(System.Int32 id) { return ""; }
  }

  struct S {
      int Value;
  }
`

func TestModel_Declarations(t *testing.T) {

	t.Parallel()

	model := parseAndBuildModel(t, exampleCode)

	var ids []string
	for _, declaration := range model.Declarations() {
		ids = append(ids, declaration.ID.String())
	}

	assert.Equal(t,
		[]string{
			"C.a",
			"C.b",
			"C.P",
			"C.M(int)",
			"C.M(string)",
			"C.this[]",
			"C.Changed",
			"C.E",
			"C.Name(int)",
			"S.Value",
		},
		ids,
	)
}

func TestModel_Lookup(t *testing.T) {

	t.Parallel()

	model := parseAndBuildModel(t, exampleCode)

	t.Run("exact", func(t *testing.T) {
		t.Parallel()

		info, ok := model.Lookup(common.NewDeclarationID("C", "P"))
		require.True(t, ok)
		assert.Equal(t, common.MemberKindProperty, info.Kind())
		assert.Equal(t, "int", info.MemberType().Name)
		assert.False(t, info.IsStatic())
	})

	t.Run("signature with alias", func(t *testing.T) {
		t.Parallel()

		id, err := common.ParseDeclarationID("C.M(System.Int32)")
		require.NoError(t, err)

		info, ok := model.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, "C.M(int)", info.ID.String())
		assert.True(t, info.IsStatic())
		assert.Equal(t, []string{"x"}, ast.ParameterNames(info.Parameters()))
	})

	t.Run("overloaded without signature", func(t *testing.T) {
		t.Parallel()

		_, ok := model.Lookup(common.NewDeclarationID("C", "M"))
		assert.False(t, ok)
	})

	t.Run("not overloaded without signature", func(t *testing.T) {
		t.Parallel()

		info, ok := model.Lookup(common.NewDeclarationID("C", "Name"))
		require.True(t, ok)
		assert.Equal(t, "C.Name(int)", info.ID.String())
	})

	t.Run("field variable", func(t *testing.T) {
		t.Parallel()

		info, ok := model.Lookup(common.NewDeclarationID("C", "b"))
		require.True(t, ok)
		assert.Equal(t, common.MemberKindField, info.Kind())
		require.NotNil(t, info.Variable)
		assert.Equal(t, "b", info.Variable.Name)
		assert.Equal(t, 1, info.VariableIndex)
		assert.Equal(t,
			[]common.AccessorKind{common.AccessorKindGet, common.AccessorKindSet},
			info.Accessors(),
		)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, ok := model.Lookup(common.NewDeclarationID("C", "Q"))
		assert.False(t, ok)

		_, ok = model.Lookup(common.NewDeclarationID("D", "P"))
		assert.False(t, ok)
	})
}

func TestDeclarationInfo_Accessors(t *testing.T) {

	t.Parallel()

	model := parseAndBuildModel(t, exampleCode)

	test := func(id string, expected ...common.AccessorKind) {
		t.Run(id, func(t *testing.T) {
			t.Parallel()

			declarationID, err := common.ParseDeclarationID(id)
			require.NoError(t, err)

			info, ok := model.Lookup(declarationID)
			require.True(t, ok)
			assert.Equal(t, expected, info.Accessors())

			for _, kind := range expected {
				assert.True(t, info.HasAccessor(kind))
			}
		})
	}

	test("C.M(int)", common.AccessorKindNone)
	test("C.P", common.AccessorKindGet, common.AccessorKindSet)
	test("C.this[]", common.AccessorKindGet)
	test("C.Changed", common.AccessorKindAdd, common.AccessorKindRemove)
	test("C.E", common.AccessorKindAdd, common.AccessorKindRemove)
}

func TestDeclarationInfo_Compare(t *testing.T) {

	t.Parallel()

	model := parseAndBuildModel(t, exampleCode)
	declarations := model.Declarations()

	for i := 1; i < len(declarations); i++ {
		assert.Equal(t, -1, declarations[i-1].Compare(declarations[i]))
		assert.Equal(t, 1, declarations[i].Compare(declarations[i-1]))
	}
	assert.Equal(t, 0, declarations[0].Compare(declarations[0]))
}

func TestModel_ClosestMember(t *testing.T) {

	t.Parallel()

	model := parseAndBuildModel(t, exampleCode)

	closest, ok := model.ClosestMember(common.NewDeclarationID("C", "Nme"))
	require.True(t, ok)
	assert.Equal(t, "Name", closest)

	_, ok = model.ClosestMember(common.NewDeclarationID("C", "Zzzzzzzz"))
	assert.False(t, ok)
}

func TestClosestName(t *testing.T) {

	t.Parallel()

	assert.Equal(t, "Count", closestName("Cuont", []string{"x", "Count", "Amount"}))
	assert.Equal(t, "", closestName("Cuont", []string{"x", "y"}))
}

func TestNewModel_Redeclaration(t *testing.T) {

	t.Parallel()

	unit, err := parser.ParseCompilationUnit(
		TestPath,
		[]byte(`
          class C {
              int x;
              string x;
              void M(int a) { }
              void M(Int32 b) { }
          }
          class C { }
        `),
	)
	require.NoError(t, err)

	_, err = NewModel(unit)
	RequireError(t, err)

	require.IsType(t, &ModelError{}, err)
	modelErr := err.(*ModelError)
	require.Len(t, modelErr.Errors, 3)

	for _, childErr := range modelErr.Errors {
		require.IsType(t, &RedeclarationError{}, childErr)
		assert.NotEmpty(t, childErr.(*RedeclarationError).ErrorNotes())
	}

	fieldErr := modelErr.Errors[0].(*RedeclarationError)
	assert.Equal(t, "C.x", fieldErr.Name)
	assert.Equal(t, 4, fieldErr.Pos.Line)
	assert.Equal(t, 3, fieldErr.PreviousPos.Line)
	assert.Equal(t, "C.M(int)", modelErr.Errors[1].(*RedeclarationError).Name)
	assert.Equal(t, "C", modelErr.Errors[2].(*RedeclarationError).Name)
}

func TestIdenticalTypes(t *testing.T) {

	t.Parallel()

	test := func(a, b string, expected bool) {
		t.Run(a+" "+b, func(t *testing.T) {
			t.Parallel()

			var aType, bType *ast.TypeReference
			if a != "" {
				aType = ast.NewTypeReference(a)
			}
			if b != "" {
				bType = ast.NewTypeReference(b)
			}
			assert.Equal(t, expected, IdenticalTypes(aType, bType))
		})
	}

	test("int", "int", true)
	test("int", "System.Int32", true)
	test("Int32", "int", true)
	test("List<System.String>", "List<string>", true)
	test("Dictionary<string, int>", "Dictionary<String,Int32>", true)
	test("int?", "Int32?", true)
	test("int", "long", false)
	test("int", "int?", false)
	test("Int32Wrapper", "intWrapper", false)
	test("", "void", true)
	test("", "int", false)
}
