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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclarationID(t *testing.T) {

	t.Parallel()

	test := func(input string, expected DeclarationID) {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			actual, err := ParseDeclarationID(input)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}

	test("C.Foo", DeclarationID{Type: "C", Member: "Foo"})
	test("Outer.Inner.Foo", DeclarationID{Type: "Outer.Inner", Member: "Foo"})
	test("C.Foo()", DeclarationID{Type: "C", Member: "Foo", Signature: "()"})
	test("C.Foo(int, string)", DeclarationID{Type: "C", Member: "Foo", Signature: "(int,string)"})
	test("C.Foo(Dictionary<string, int>)", DeclarationID{Type: "C", Member: "Foo", Signature: "(Dictionary<string,int>)"})
	test("C.this[]", DeclarationID{Type: "C", Member: IndexerMemberName})
}

func TestParseDeclarationID_Invalid(t *testing.T) {

	t.Parallel()

	for _, input := range []string{
		"",
		"Foo",
		".Foo",
		"C.",
		"C.Foo(int",
	} {
		_, err := ParseDeclarationID(input)
		assert.Error(t, err, input)
	}
}

func TestDeclarationID_String(t *testing.T) {

	t.Parallel()

	assert.Equal(t,
		"C.Foo(int,string)",
		NewMethodDeclarationID("C", "Foo", []string{"int", "string"}).String(),
	)
	assert.Equal(t,
		"C.Foo(Dictionary<string,int>)",
		NewMethodDeclarationID("C", "Foo", []string{"Dictionary<string, int>"}).String(),
	)
	assert.Equal(t, "C.P", NewDeclarationID("C", "P").String())
	assert.Equal(t,
		NewDeclarationID("C", "Foo"),
		NewMethodDeclarationID("C", "Foo", nil).WithoutSignature(),
	)
}

func TestDeclarationID_ParameterTypes(t *testing.T) {

	t.Parallel()

	assert.Nil(t, NewDeclarationID("C", "P").ParameterTypes())
	assert.Nil(t, NewMethodDeclarationID("C", "M", nil).ParameterTypes())
	assert.Equal(t,
		[]string{"Dictionary<string,int>", "int[]"},
		NewMethodDeclarationID("C", "M", []string{"Dictionary<string, int>", "int[]"}).ParameterTypes(),
	)
}

func TestAccessorKindFromKeyword(t *testing.T) {

	t.Parallel()

	for _, kind := range []AccessorKind{
		AccessorKindGet,
		AccessorKindSet,
		AccessorKindInit,
		AccessorKindAdd,
		AccessorKindRemove,
	} {
		actual, ok := AccessorKindFromKeyword(kind.Keyword())
		require.True(t, ok)
		assert.Equal(t, kind, actual)
	}

	_, ok := AccessorKindFromKeyword("value")
	assert.False(t, ok)
}
