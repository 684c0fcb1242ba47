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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/sema"
	. "github.com/onflow/aspectlink/test_utils/common_utils"
)

const chainTestCode = `
  class C {
      public int x, y;
      public event Handler Changed;
      public int P { get; set; }
      public int Q { get { return x; } }
      public int this[int i] { get { return i; } set { x = value; } }
      public void Foo() { Work(); }
      public void Foo(int a) { Work(a); }
      public abstract void Bar();
  }
`

func buildChains(t *testing.T, code string, transformations ...Transformation) (*ChainSet, error) {
	t.Helper()

	model, err := sema.NewModel(parseUnit(t, code))
	require.NoError(t, err)

	return BuildChains(model, transformations)
}

// requireLinkErrors asserts the given error is a link error,
// and returns its child errors.
func requireLinkErrors(t *testing.T, err error) []error {
	t.Helper()

	RequireError(t, err)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, TestPath, linkErr.Path)

	return linkErr.Errors
}

func requireInconsistency(t *testing.T, err error, kind InconsistencyKind) *ChainInconsistencyError {
	t.Helper()

	errs := requireLinkErrors(t, err)
	require.Len(t, errs, 1)

	var inconsistency *ChainInconsistencyError
	require.ErrorAs(t, errs[0], &inconsistency)
	assert.Equal(t, kind, inconsistency.Kind)

	return inconsistency
}

func TestBuildChains(t *testing.T) {

	t.Parallel()

	set, err := buildChains(t, chainTestCode,
		override(t, "C.Foo(int)", 3, "Third", "void Foo(int a) { proceed(); }"),
		override(t, "C.Foo(int)", 1, "First", "void Foo(int a) { proceed(); }"),
		override(t, "C.P", 2, "Second", "int P { get { return proceed(); } }"),
		introduction(t, "C.Added", 5, "Intro", "public void Added() { }"),
	)
	require.NoError(t, err)

	chains := set.Chains()
	require.Len(t, chains, 3)

	// ordered by position, introductions last

	property := chains[0]
	assert.Equal(t, common.NewDeclarationID("C", "P"), property.Declaration.ID)

	method := chains[1]
	assert.Equal(t,
		common.NewMethodDeclarationID("C", "Foo", []string{"int"}),
		method.Declaration.ID,
	)

	introduced := chains[2]
	assert.True(t, introduced.Declaration.Introduced)
	assert.Equal(t, common.NewMethodDeclarationID("C", "Added", nil), introduced.Declaration.ID)

	// semantics are ordered by ordinal

	var ordinals []int
	var kinds []SemanticKind
	for _, semantic := range method.Semantics {
		ordinals = append(ordinals, semantic.Key.Ordinal)
		kinds = append(kinds, semantic.Kind)
	}
	assert.Equal(t, []int{0, 1, 3}, ordinals)
	assert.Equal(t,
		[]SemanticKind{SemanticKindOriginal, SemanticKindOverride, SemanticKindOverride},
		kinds,
	)

	assert.Equal(t, 3, method.Final().Key.Ordinal)
	assert.Equal(t, "Third", method.Final().Aspect)
	assert.Equal(t, EmptyOrdinal, method.Empty.Key.Ordinal)
	assert.Equal(t, SemanticKindEmpty, method.Empty.Kind)

	assert.Equal(t, 1, method.Below(3).Key.Ordinal)
	assert.Equal(t, 1, method.Below(2).Key.Ordinal)
	assert.Equal(t, OriginalOrdinal, method.Below(1).Key.Ordinal)
	assert.Same(t, method.Empty, method.Below(OriginalOrdinal))

	first, ok := method.Semantic(1)
	require.True(t, ok)
	assert.Equal(t, "First", first.Aspect)

	_, ok = method.Semantic(2)
	assert.False(t, ok)

	// nothing precedes an introduction

	assert.Equal(t, SemanticKindIntroduction, introduced.First().Kind)
	assert.Same(t, introduced.Empty, introduced.Below(5))

	// the overridden auto-property is flattened

	require.NotNil(t, property.BackingField)
	assert.Equal(t,
		[]string{"__P__BackingField"},
		property.BackingField.MemberNames(),
	)

	// omitted accessors forward to the predecessor

	final := property.Final()
	setter := ast.MemberAccessors(final.Member).Get(common.AccessorKindSet)
	require.NotNil(t, setter)
	assert.Equal(t, "{\n    proceed();\n}", setter.Body.String())

	// lookups

	semantic, ok := set.Semantic(SemanticKey{
		Declaration: method.Declaration.ID,
		Ordinal:     EmptyOrdinal,
	})
	require.True(t, ok)
	assert.Same(t, method.Empty, semantic)

	declaration, ok := set.LookupDeclaration(declarationID(t, "C.Added"))
	require.True(t, ok)
	assert.Same(t, introduced.Declaration, declaration)

	declaration, ok = set.LookupDeclaration(declarationID(t, "C.Q"))
	require.True(t, ok)
	assert.Equal(t, common.MemberKindProperty, declaration.Kind())

	_, ok = set.LookupDeclaration(declarationID(t, "C.Foo"))
	assert.False(t, ok, "overloads are ambiguous without a signature")
}

func TestBuildChainsOrdinals(t *testing.T) {

	t.Parallel()

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 1, "A", "int Q { get { return 1; } }"),
			override(t, "C.Q", 1, "B", "int Q { get { return 2; } }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindDuplicateOrdinal)
		assert.Equal(t, 1, inconsistency.Ordinal)
		assert.Equal(t,
			"inconsistent chain for `C.Q` at ordinal 1: ordinal is claimed by more than one transformation",
			inconsistency.Error(),
		)
	})

	t.Run("original", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 0, "A", "int Q { get { return 1; } }"),
		)
		requireInconsistency(t, err, InconsistencyKindNonPositiveOrdinal)
	})

	t.Run("missing predecessor", func(t *testing.T) {
		t.Parallel()

		predecessor := 5
		transformation := override(t, "C.Q", 7, "A", "int Q { get { return 1; } }")
		transformation.Predecessor = &predecessor

		_, err := buildChains(t, chainTestCode, transformation)
		requireInconsistency(t, err, InconsistencyKindMissingPredecessor)
	})

	t.Run("predecessor not lower", func(t *testing.T) {
		t.Parallel()

		predecessor := 3
		cyclic := override(t, "C.Q", 2, "A", "int Q { get { return 1; } }")
		cyclic.Predecessor = &predecessor

		_, err := buildChains(t, chainTestCode,
			cyclic,
			override(t, "C.Q", 3, "B", "int Q { get { return 2; } }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindPredecessorNotLower)
		assert.Equal(t, 2, inconsistency.Ordinal)
	})
}

func TestBuildChainsFinal(t *testing.T) {

	t.Parallel()

	t.Run("ambiguous", func(t *testing.T) {
		t.Parallel()

		first := override(t, "C.Q", 1, "A", "int Q { get { return 1; } }")
		first.Final = true
		second := override(t, "C.Q", 2, "B", "int Q { get { return 2; } }")
		second.Final = true

		_, err := buildChains(t, chainTestCode, second, first)

		errs := requireLinkErrors(t, err)
		require.Len(t, errs, 1)

		var ambiguous *AmbiguousFinalSemanticError
		require.ErrorAs(t, errs[0], &ambiguous)
		assert.Equal(t, []int{1, 2}, ambiguous.Ordinals)
		assert.Equal(t,
			"ambiguous final semantic for `C.Q`: ordinals 1, 2 claim to be final",
			ambiguous.Error(),
		)
	})

	t.Run("not highest", func(t *testing.T) {
		t.Parallel()

		first := override(t, "C.Q", 1, "A", "int Q { get { return 1; } }")
		first.Final = true

		_, err := buildChains(t, chainTestCode,
			first,
			override(t, "C.Q", 2, "B", "int Q { get { return 2; } }"),
		)
		requireInconsistency(t, err, InconsistencyKindFinalNotHighest)
	})

	t.Run("highest", func(t *testing.T) {
		t.Parallel()

		second := override(t, "C.Q", 2, "B", "int Q { get { return 2; } }")
		second.Final = true

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 1, "A", "int Q { get { return 1; } }"),
			second,
		)
		require.NoError(t, err)
	})
}

func TestBuildChainsDeclarations(t *testing.T) {

	t.Parallel()

	t.Run("missing member", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Fooo", 1, "A", "void Fooo() { }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindMissingDeclaration)
		assert.Equal(t, "Foo", inconsistency.Suggestion)
		assert.Equal(t, "did you mean `Foo`?", inconsistency.SecondaryError())
	})

	t.Run("missing type", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "Missing.Q", 1, "A", "int Q { get { return 1; } }"),
		)
		requireInconsistency(t, err, InconsistencyKindMissingType)
	})

	t.Run("existing introduction", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			introduction(t, "C.Q", 1, "A", "public int Q { get { return 1; } }"),
		)
		requireInconsistency(t, err, InconsistencyKindExistingDeclaration)
	})

	t.Run("duplicate introduction", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			introduction(t, "C.R", 1, "A", "public int R { get { return 1; } }"),
			introduction(t, "C.R", 2, "B", "public int R { get { return 2; } }"),
		)
		requireInconsistency(t, err, InconsistencyKindDuplicateIntroduction)
	})

	t.Run("invalid introduction", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			introduction(t, "C.R", 1, "A", "public int S { get { return 1; } }"),
		)
		requireInconsistency(t, err, InconsistencyKindInvalidIntroduction)
	})

	t.Run("override before introduction", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			introduction(t, "C.R", 2, "A", "public int R { get { return 1; } }"),
			override(t, "C.R", 1, "B", "int R { get { return proceed(); } }"),
		)
		requireInconsistency(t, err, InconsistencyKindMissingDeclaration)
	})

	t.Run("abstract", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Bar", 1, "A", "void Bar() { }"),
		)
		requireInconsistency(t, err, InconsistencyKindAbstractMember)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 1, "A", "int Q() { return 1; }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindKindMismatch)
		assert.Equal(t, "method", inconsistency.Detail)
	})

	t.Run("field overridden by property", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.y", 1, "A", "int y { get { return proceed(); } }"),
			override(t, "C.Changed", 1, "A", "event Handler Changed { add { proceed(); } }"),
		)
		require.NoError(t, err)
	})

	t.Run("parameter mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Foo(int)", 1, "A", "void Foo(string a) { }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindParameterMismatch)
		assert.Equal(t, "(string)", inconsistency.Detail)
	})

	t.Run("unknown accessor", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 1, "A", "int Q { set { } }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindUnknownAccessor)
		assert.Equal(t, "set", inconsistency.Detail)
	})

	t.Run("unknown proceed target", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 1, "A", "int Q { get { return proceed<C.Fooo>(); } }"),
		)
		inconsistency := requireInconsistency(t, err, InconsistencyKindUnknownProceedTarget)
		assert.Equal(t, "C.Fooo", inconsistency.Detail)
		assert.Equal(t, "Foo", inconsistency.Suggestion)
	})

	t.Run("unknown proceed accessor", func(t *testing.T) {
		t.Parallel()

		_, err := buildChains(t, chainTestCode,
			override(t, "C.Q", 1, "A", "int Q { get { return proceed<C.Foo()>.get(); } }"),
		)
		requireInconsistency(t, err, InconsistencyKindUnknownAccessor)
	})
}

func TestLinkErrors(t *testing.T) {

	t.Parallel()

	unit := parseUnit(t, chainTestCode)

	result, err := NewLinker(nil).Link(
		context.Background(),
		unit,
		[]Transformation{
			override(t, "C.Fooo", 1, "A", "void Fooo() { }"),
			override(t, "C.Q", 0, "B", "int Q { get { return 1; } }"),
		},
	)
	assert.Nil(t, result)

	errs := requireLinkErrors(t, err)
	require.Len(t, errs, 2)

	assert.Equal(t,
		"Linking failed for Test.cs:\n"+
			"inconsistent chain for `C.Fooo` at ordinal 1: "+
			"declaration does not exist and is not introduced: `C.Fooo`\n"+
			"  did you mean `Foo`?\n"+
			"inconsistent chain for `C.Q` at ordinal 0: ordinal must be positive",
		err.Error(),
	)
}
