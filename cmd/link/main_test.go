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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/linker"
	"github.com/onflow/aspectlink/parser"
)

const testSource = `
  class C {
      public void M() { Work(); }
      public void Process() { }
  }
`

func writeJob(t *testing.T, job string) string {
	t.Helper()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "Test.cs"), []byte(testSource), 0o600)
	require.NoError(t, err)

	path := filepath.Join(dir, "job.yaml")
	err = os.WriteFile(path, []byte(job), 0o600)
	require.NoError(t, err)

	return path
}

func TestParseJob(t *testing.T) {

	t.Parallel()

	job, err := ParseJob([]byte(`
source: Test.cs
options:
  parallelism: 4
  inlining: requested-only
  tracing: true
transformations:
  - declaration: C.M(int)
    ordinal: 2
    aspect: Logging
    predecessor: 0
    final: true
    forcedNotInlineable: true
    member: |
      void M(int a) { proceed(); }
  - declaration: C.N
    ordinal: 1
    aspect: Intro
    kind: introduction
    forcedNotDiscardable: true
    member: public void N() { }
`))
	require.NoError(t, err)

	assert.Equal(t, "Test.cs", job.Source)
	assert.Equal(t,
		Options{
			Parallelism: 4,
			Inlining:    "requested-only",
			Tracing:     true,
		},
		job.Options,
	)

	transformations, err := job.LinkerTransformations()
	require.NoError(t, err)
	require.Len(t, transformations, 2)

	first := transformations[0]
	assert.Equal(t, "C.M(int)", first.Declaration.String())
	assert.Equal(t, 2, first.Ordinal)
	assert.Equal(t, "Logging", first.Aspect)
	assert.Equal(t, linker.TransformationKindOverride, first.Kind)
	require.NotNil(t, first.Predecessor)
	assert.Equal(t, 0, *first.Predecessor)
	assert.True(t, first.Final)
	assert.True(t, first.ForcedNotInlineable)
	assert.False(t, first.ForcedNotDiscardable)
	require.IsType(t, &ast.MethodDeclaration{}, first.Member)

	second := transformations[1]
	assert.Equal(t, linker.TransformationKindIntroduction, second.Kind)
	assert.Nil(t, second.Predecessor)
	assert.True(t, second.ForcedNotDiscardable)

	config := linker.DefaultConfig()
	require.NoError(t, job.Options.Apply(config))
	assert.Equal(t, 4, config.Parallelism)
	assert.Equal(t, linker.InlineRequestedOnly, config.InliningPolicy)
	assert.True(t, config.TracingEnabled)
}

func TestParseJobInvalid(t *testing.T) {

	t.Parallel()

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJob([]byte("source: Test.cs\nsorce: Other.cs\n"))
		require.Error(t, err)
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJob([]byte("transformations: []\n"))
		require.EqualError(t, err, "missing source")
		assert.True(t, errors.IsUser(err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		job, err := ParseJob([]byte(`
source: Test.cs
transformations:
  - declaration: C.M
    ordinal: 1
    kind: replacement
    member: void M() { }
`))
		require.NoError(t, err)

		_, err = job.LinkerTransformations()
		require.EqualError(t, err, "invalid transformation 0 (`C.M`): unknown kind `replacement`")
	})

	t.Run("invalid member", func(t *testing.T) {
		t.Parallel()

		job, err := ParseJob([]byte(`
source: Test.cs
transformations:
  - declaration: C.M
    ordinal: 1
    member: void M( {
`))
		require.NoError(t, err)

		_, err = job.LinkerTransformations()
		var parserErr parser.Error
		require.ErrorAs(t, err, &parserErr)
	})

	t.Run("unknown policy", func(t *testing.T) {
		t.Parallel()

		err := Options{Inlining: "always"}.Apply(linker.DefaultConfig())
		require.EqualError(t, err, "unknown inlining policy `always`")
		assert.True(t, errors.IsUser(err))
	})
}

func TestRun(t *testing.T) {

	t.Parallel()

	path := writeJob(t, `
source: Test.cs
options:
  parallelism: 2
  tracing: true
transformations:
  - declaration: C.M
    ordinal: 1
    aspect: Trace
    member: |
      void M() { A(); proceed(); B(); }
`)

	job, err := ReadJob(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "Test.cs"), job.SourcePath())

	var output, reported, logs bytes.Buffer
	ok := run(
		context.Background(),
		job,
		zerolog.New(&logs),
		newReporter(&reported, false),
		&output,
	)
	require.True(t, ok, reported.String())
	assert.Empty(t, reported.String())

	unit, err := parser.ParseCompilationUnit(path, output.Bytes())
	require.NoError(t, err)
	require.Len(t, unit.Types, 1)
	require.Len(t, unit.Types[0].Members, 2)

	method := unit.Types[0].Members[0].(*ast.MethodDeclaration)
	assert.Equal(t, "M", method.Name)
	assert.Equal(t, "{\n    A();\n    Work();\n    B();\n}", method.Body.String())

	assert.Contains(t, logs.String(), `"operation":"link.rewrite"`)
}

func TestRunLinkError(t *testing.T) {

	t.Parallel()

	path := writeJob(t, `
source: Test.cs
transformations:
  - declaration: C.Proces
    ordinal: 1
    member: void Proces() { }
  - declaration: C.M
    ordinal: 0
    member: void M() { }
`)

	job, err := ReadJob(path)
	require.NoError(t, err)

	var output, reported bytes.Buffer
	ok := run(
		context.Background(),
		job,
		zerolog.Nop(),
		newReporter(&reported, false),
		&output,
	)
	require.False(t, ok)
	assert.Empty(t, output.String())

	assert.Equal(t,
		"error: inconsistent chain for `C.Proces` at ordinal 1: "+
			"declaration does not exist and is not introduced: `C.Proces`\n"+
			"  did you mean `Process`?\n"+
			"error: inconsistent chain for `C.M` at ordinal 0: ordinal must be positive\n",
		reported.String(),
	)
}

func TestRunMissingSource(t *testing.T) {

	t.Parallel()

	job, err := ParseJob([]byte("source: Missing.cs\n"))
	require.NoError(t, err)
	job.dir = t.TempDir()

	var output, reported bytes.Buffer
	ok := run(
		context.Background(),
		job,
		zerolog.Nop(),
		newReporter(&reported, false),
		&output,
	)
	require.False(t, ok)
	assert.Contains(t, reported.String(), "error: open ")
}

func TestReportInternalError(t *testing.T) {

	t.Parallel()

	var out bytes.Buffer
	reporter := newReporter(&out, false)

	reporter.reportError(errors.NewUnexpectedError("broken"))
	reporter.reportError(errors.NewDefaultUserError("invalid"))

	assert.Equal(t,
		"internal error: broken\nerror: invalid\n",
		out.String(),
	)
}
