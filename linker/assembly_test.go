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
	"context"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
)

func TestLinkAutoProperty(t *testing.T) {

	t.Parallel()

	t.Run("instance", func(t *testing.T) {
		t.Parallel()

		unit := parseUnit(t, `
          class C {
              public int P { get; set; } = 1;
          }
        `)

		result := link(t, unit,
			override(t, "C.P", 1, "Logging", "int P { get { Log(); return proceed(); } }"),
		)

		assert.Equal(t,
			[]string{"__P__BackingField", "P"},
			typeMemberNames(result.Unit.Types[0]),
		)

		backingField := findMember(t, result.Unit, "C", "__P__BackingField")
		assert.Equal(t,
			"private int __P__BackingField = 1;",
			backingField.(*ast.FieldDeclaration).String(),
		)

		property := findMember(t, result.Unit, "C", "P").(*ast.PropertyDeclaration)
		assert.Nil(t, property.Initializer)
		assert.True(t, property.Modifiers.Has(ast.ModifierPublic))

		assert.Equal(t,
			"{\n    Log();\n    return this.__P__BackingField;\n}",
			accessorBody(t, result.Unit, "C", "P", common.AccessorKindGet),
		)
		assert.Equal(t,
			"{\n    this.__P__BackingField = value;\n}",
			accessorBody(t, result.Unit, "C", "P", common.AccessorKindSet),
		)

		assert.Equal(t,
			[]InjectedMember{
				{
					Declaration: declarationID(t, "C.P"),
					Semantic: SemanticKey{
						Declaration: declarationID(t, "C.P"),
						Ordinal:     OriginalOrdinal,
					},
					Name:   "__P__BackingField",
					Kind:   common.MemberKindField,
					Reason: InjectionReasonBackingField,
				},
			},
			result.InjectedMembers,
		)
	})

	t.Run("static", func(t *testing.T) {
		t.Parallel()

		unit := parseUnit(t, `
          class C {
              public static int S { get; }
          }
        `)

		result := link(t, unit,
			override(t, "C.S", 1, "Logging", "int S { get { return proceed(); } }"),
		)

		backingField := findMember(t, result.Unit, "C", "__S__BackingField")
		assert.Equal(t,
			"private static int __S__BackingField;",
			backingField.(*ast.FieldDeclaration).String(),
		)

		assert.Equal(t,
			"{\n    return C.__S__BackingField;\n}",
			accessorBody(t, result.Unit, "C", "S", common.AccessorKindGet),
		)
	})
}

func TestLinkFieldSplitting(t *testing.T) {

	t.Parallel()

	unit := parseUnit(t, `
      class C {
          /// Values.
          public int A, B = 2, D; // trailing
      }
    `)

	result := link(t, unit,
		override(t, "C.B", 1, "Logging", "int B { get { return proceed(); } }"),
	)

	members := result.Unit.Types[0].Members
	require.Len(t, members, 3)

	assert.Equal(t,
		[]string{"A", "D", "__B__BackingField", "B"},
		typeMemberNames(result.Unit.Types[0]),
	)

	// the untouched variables stay in place, with the leading comments

	remaining := members[0].(*ast.FieldDeclaration)
	assert.True(t, remaining.Modifiers.Has(ast.ModifierPublic))
	require.Len(t, remaining.Comments.Leading, 1)
	assert.Equal(t, "/// Values.", remaining.Comments.Leading[0].String())
	assert.Empty(t, remaining.Comments.Trailing)

	backingField := members[1].(*ast.FieldDeclaration)
	assert.Equal(t, "private int __B__BackingField = 2;", backingField.String())

	// the overridden variable becomes a property, with the trailing comments

	property := members[2].(*ast.PropertyDeclaration)
	assert.True(t, property.Modifiers.Has(ast.ModifierPublic))
	assert.Empty(t, property.Comments.Leading)
	require.Len(t, property.Comments.Trailing, 1)
	assert.Equal(t, "// trailing", property.Comments.Trailing[0].String())

	assert.Equal(t,
		"{\n    return this.__B__BackingField;\n}",
		accessorBody(t, result.Unit, "C", "B", common.AccessorKindGet),
	)
	assert.Equal(t,
		"{\n    this.__B__BackingField = value;\n}",
		accessorBody(t, result.Unit, "C", "B", common.AccessorKindSet),
	)

	// the input is unchanged

	assert.Equal(t,
		[]string{"A", "B", "D"},
		typeMemberNames(unit.Types[0]),
	)
}

func TestLinkFieldSplittingAll(t *testing.T) {

	t.Parallel()

	unit := parseUnit(t, `
      class C {
          /// Values.
          public int A, B;
      }
    `)

	result := link(t, unit,
		override(t, "C.A", 1, "Logging", "int A { get { return proceed(); } }"),
		override(t, "C.B", 1, "Logging", "int B { get { return proceed(); } }"),
	)

	assert.Equal(t,
		[]string{"__A__BackingField", "A", "__B__BackingField", "B"},
		typeMemberNames(result.Unit.Types[0]),
	)

	// the leading comments go to the first public member

	first := findMember(t, result.Unit, "C", "A")
	assert.Len(t, first.MemberComments().Leading, 1)

	for _, name := range []string{"__A__BackingField", "__B__BackingField", "B"} {
		assert.True(t,
			findMember(t, result.Unit, "C", name).MemberComments().IsEmpty(),
			name,
		)
	}
}

func TestLinkFieldLikeEvent(t *testing.T) {

	t.Parallel()

	unit := parseUnit(t, `
      class C {
          public event Handler Changed;
      }
    `)

	result := link(t, unit,
		override(t, "C.Changed", 1, "Logging", "event Handler Changed { add { Log(); proceed(); } }"),
	)

	assert.Equal(t,
		[]string{"__Changed__BackingField", "Changed"},
		typeMemberNames(result.Unit.Types[0]),
	)

	event := findMember(t, result.Unit, "C", "Changed")
	require.IsType(t, &ast.EventDeclaration{}, event)

	assert.Equal(t,
		"{\n    Log();\n    this.__Changed__BackingField += value;\n}",
		accessorBody(t, result.Unit, "C", "Changed", common.AccessorKindAdd),
	)
	assert.Equal(t,
		"{\n    this.__Changed__BackingField -= value;\n}",
		accessorBody(t, result.Unit, "C", "Changed", common.AccessorKindRemove),
	)
}

func TestLinkIndexer(t *testing.T) {

	t.Parallel()

	unit := parseUnit(t, `
      class C {
          int x;
          public int this[int i] { get { return i; } set { x = value; } }
      }
    `)

	result := link(t, unit,
		override(t, "C.this[]", 1, "Scaling", "int this[int i] { get { return proceed() * 2; } }"),
	)

	assert.Equal(t,
		[]string{"x", "this[]", "__Item__OriginalImpl_Get", "__Item__OriginalImpl_Set"},
		typeMemberNames(result.Unit.Types[0]),
	)

	assert.Equal(t,
		"{\n    return this.__Item__OriginalImpl_Get(i) * 2;\n}",
		accessorBody(t, result.Unit, "C", "this[]", common.AccessorKindGet),
	)
	assert.Equal(t,
		"{\n    x = value;\n}",
		accessorBody(t, result.Unit, "C", "this[]", common.AccessorKindSet),
	)

	getter := findMember(t, result.Unit, "C", "__Item__OriginalImpl_Get").(*ast.MethodDeclaration)
	assert.Equal(t, []string{"i"}, ast.ParameterNames(getter.Parameters))
	assert.Equal(t, "{\n    return i;\n}", getter.Body.String())

	setter := findMember(t, result.Unit, "C", "__Item__OriginalImpl_Set").(*ast.MethodDeclaration)
	assert.Equal(t, []string{"i", "value"}, ast.ParameterNames(setter.Parameters))
	assert.True(t, setter.ReturnType.IsVoid())

	require.Len(t, result.Diagnostics, 1)
	var diagnostic *NotInlineableContextError
	require.ErrorAs(t, result.Diagnostics[0], &diagnostic)
	assert.Equal(t, ContextKindOther, diagnostic.Context)
}

const independenceTestCode = `
  class A {
      public int Count;
      public void M() { Work(); }
      public int Get() { return Count; }
  }

  class B {
      public void N() { Rest(); }
  }

  class D {
      public int P { get; set; }
      public void O() { Other(); }
  }
`

func independenceTransformations(t *testing.T) []Transformation {
	return []Transformation{
		override(t, "A.M", 1, "Trace", "void M() { Enter(); proceed(); Exit(); }"),
		override(t, "A.M", 2, "Retry", "void M() { while (Retry()) { proceed(); } }"),
		override(t, "A.Get", 1, "Cache", "int Get() { if (Cached()) { return 0; } return proceed(); }"),
		override(t, "A.Get", 3, "Scale", "int Get() { return proceed() * 2; }"),
		override(t, "A.Count", 2, "Observe", "int Count { set { Notify(); proceed(); } }"),
		override(t, "D.P", 1, "Observe", "int P { set { Notify(); proceed(); } }"),
		override(t, "D.O", 1, "Trace", "void O() { Enter(); proceed<A.M()>(); proceed(); }"),
		introduction(t, "D.Added", 4, "Intro", "public int Added() { return 1; }"),
		override(t, "D.Added", 5, "Trace", "int Added() { int r = proceed(); return r; }"),
	}
}

func TestLinkIndependence(t *testing.T) {

	t.Parallel()

	t.Run("untouched type", func(t *testing.T) {
		t.Parallel()

		unit := parseUnit(t, independenceTestCode)

		result := link(t, unit,
			override(t, "A.M", 1, "Trace", "void M() { Enter(); proceed(); }"),
		)

		require.Len(t, result.Unit.Types, 3)
		assert.NotSame(t, unit.Types[0], result.Unit.Types[0])
		assert.Same(t, unit.Types[1], result.Unit.Types[1])
		assert.Same(t, unit.Types[2], result.Unit.Types[2])
	})

	t.Run("untouched member", func(t *testing.T) {
		t.Parallel()

		unit := parseUnit(t, independenceTestCode)

		result := link(t, unit,
			override(t, "A.M", 1, "Trace", "void M() { Enter(); proceed(); }"),
		)

		assert.Same(t,
			findMember(t, unit, "A", "Get"),
			findMember(t, result.Unit, "A", "Get"),
		)
	})

	t.Run("parallelism", func(t *testing.T) {
		t.Parallel()

		unit := parseUnit(t, independenceTestCode)
		transformations := independenceTransformations(t)

		sequential := linkWithConfig(t, DefaultConfig(), unit, transformations...)

		config := DefaultConfig()
		config.Parallelism = 8
		parallel := linkWithConfig(t, config, unit, transformations...)

		assert.Equal(t, sequential.Unit.String(), parallel.Unit.String())
		assert.Equal(t, sequential.InjectedMembers, parallel.InjectedMembers)
	})

	t.Run("repeated", func(t *testing.T) {
		t.Parallel()

		unit := parseUnit(t, independenceTestCode)
		transformations := independenceTransformations(t)

		first := link(t, unit, transformations...)
		second := link(t, unit, transformations...)

		assert.Equal(t, first.Unit.String(), second.Unit.String())
	})
}

func TestLinkPermutationProperty(t *testing.T) {

	t.Parallel()

	unit := parseUnit(t, independenceTestCode)
	transformations := independenceTransformations(t)
	expected := link(t, unit, transformations...).Unit.String()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25

	properties := gopter.NewProperties(parameters)

	properties.Property("output is independent of transformation order", prop.ForAll(
		func(seed int64, parallelism int) bool {
			permuted := make([]Transformation, len(transformations))
			copy(permuted, transformations)

			random := rand.New(rand.NewSource(seed))
			random.Shuffle(len(permuted), func(i, j int) {
				permuted[i], permuted[j] = permuted[j], permuted[i]
			})

			config := DefaultConfig()
			config.Parallelism = parallelism

			result, err := NewLinker(config).Link(context.Background(), unit, permuted)
			if err != nil {
				return false
			}
			return result.Unit.String() == expected
		},
		gen.Int64(),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

func TestLabelAllocatorProperty(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	properties.Property("labels are unique and counted", prop.ForAll(
		func(count int) bool {
			allocator := &LabelAllocator{}

			seen := map[string]bool{}
			for i := 0; i < count; i++ {
				label := allocator.Next()
				if seen[label] {
					return false
				}
				seen[label] = true
			}

			return allocator.Count() == uint64(count)
		},
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}

func TestLabelAllocatorNameLabels(t *testing.T) {

	t.Parallel()

	named := &ast.LabeledStatement{
		Label:     &ast.Label{Name: "Existing"},
		Statement: &ast.EmptyStatement{},
	}
	first := &ast.LabeledStatement{
		Label:     &ast.Label{},
		Statement: &ast.EmptyStatement{},
	}
	second := &ast.LabeledStatement{
		Label:     &ast.Label{},
		Statement: ast.NewBlock(ast.NewGotoStatement(first.Label)),
	}

	allocator := &LabelAllocator{}
	allocator.nameLabels(ast.NewBlock(named, first, second))

	assert.Equal(t, "Existing", named.Label.Name)
	assert.Equal(t, "__aspect_return_1", first.Label.Name)
	assert.Equal(t, "__aspect_return_2", second.Label.Name)
	assert.Equal(t, uint64(2), allocator.Count())
}
