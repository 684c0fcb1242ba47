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
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/linker"
	"github.com/onflow/aspectlink/parser"
)

// Job describes one link run: the compilation unit,
// the transformations produced upstream, and the linker options.
type Job struct {
	// Source is the path of the compilation unit, relative to the job file
	Source          string                `yaml:"source"`
	Options         Options               `yaml:"options"`
	Transformations []TransformationEntry `yaml:"transformations"`

	dir string
}

type Options struct {
	Parallelism int    `yaml:"parallelism"`
	Inlining    string `yaml:"inlining"`
	Tracing     bool   `yaml:"tracing"`
}

type TransformationEntry struct {
	Declaration          string `yaml:"declaration"`
	Ordinal              int    `yaml:"ordinal"`
	Aspect               string `yaml:"aspect"`
	Kind                 string `yaml:"kind"`
	Predecessor          *int   `yaml:"predecessor"`
	Final                bool   `yaml:"final"`
	ForcedNotInlineable  bool   `yaml:"forcedNotInlineable"`
	ForcedNotDiscardable bool   `yaml:"forcedNotDiscardable"`
	Member               string `yaml:"member"`
}

// ReadJob reads and parses the job file at the given path.
func ReadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job %s: %w", path, err)
	}

	job, err := ParseJob(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job %s: %w", path, err)
	}
	job.dir = filepath.Dir(path)

	return job, nil
}

func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.UnmarshalWithOptions(data, &job, yaml.Strict()); err != nil {
		return nil, err
	}

	if job.Source == "" {
		return nil, errors.NewDefaultUserError("missing source")
	}

	return &job, nil
}

// SourcePath returns the path of the compilation unit.
func (j *Job) SourcePath() string {
	if filepath.IsAbs(j.Source) {
		return j.Source
	}
	return filepath.Join(j.dir, j.Source)
}

// LinkerTransformations parses the transformation entries.
func (j *Job) LinkerTransformations() ([]linker.Transformation, error) {
	transformations := make([]linker.Transformation, 0, len(j.Transformations))

	for i, entry := range j.Transformations {
		transformation, err := entry.transformation()
		if err != nil {
			return nil, errors.NewDefaultUserError("invalid transformation %d (`%s`): %w", i, entry.Declaration, err)
		}
		transformations = append(transformations, transformation)
	}

	return transformations, nil
}

func (e TransformationEntry) transformation() (linker.Transformation, error) {
	id, err := common.ParseDeclarationID(e.Declaration)
	if err != nil {
		return linker.Transformation{}, err
	}

	kind, ok := linker.TransformationKindFromString(e.Kind)
	if !ok {
		return linker.Transformation{}, errors.NewDefaultUserError("unknown kind `%s`", e.Kind)
	}

	member, err := parser.ParseMember([]byte(e.Member))
	if err != nil {
		return linker.Transformation{}, err
	}

	return linker.Transformation{
		Declaration:          id,
		Ordinal:              e.Ordinal,
		Aspect:               e.Aspect,
		Kind:                 kind,
		Predecessor:          e.Predecessor,
		Final:                e.Final,
		ForcedNotInlineable:  e.ForcedNotInlineable,
		ForcedNotDiscardable: e.ForcedNotDiscardable,
		Member:               member,
	}, nil
}

// Apply sets the options of the job on the given configuration.
func (o Options) Apply(config *linker.Config) error {
	policy, ok := linker.InliningPolicyFromString(o.Inlining)
	if !ok {
		return errors.NewDefaultUserError("unknown inlining policy `%s`", o.Inlining)
	}
	config.InliningPolicy = policy

	if o.Parallelism > 0 {
		config.Parallelism = o.Parallelism
	}
	config.TracingEnabled = o.Tracing

	return nil
}
