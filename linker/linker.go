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

// Package linker merges the transformation chains of aspect layers
// into the member declarations of a compilation unit.
//
// A link run builds one chain of semantics per transformed declaration,
// decides for each proceed reference whether the invoked body is inlined
// or called through a synthesized member, rewrites the bodies accordingly,
// and assembles a new compilation unit. The input is never modified.
package linker

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/sema"
)

// Result is the result of a link run.
type Result struct {
	Unit            *ast.CompilationUnit
	InjectedMembers []InjectedMember
	// Diagnostics are the NotInlineableContextError s of the run
	Diagnostics []error
}

type Linker struct {
	config *Config
}

func NewLinker(config *Config) *Linker {
	if config == nil {
		config = DefaultConfig()
	}
	return &Linker{
		config: config,
	}
}

// Link links the given transformations into the compilation unit.
//
// The unit is returned as is if there are no transformations.
// Inconsistent transformations fail the run with a *LinkError,
// and no unit is produced.
func (l *Linker) Link(
	ctx context.Context,
	unit *ast.CompilationUnit,
	transformations []Transformation,
) (result *Result, err error) {
	if len(transformations) == 0 {
		return &Result{Unit: unit}, nil
	}

	defer recoverErrors(func(recovered error) {
		result = nil
		err = recovered
	})

	logger := l.config.Logger.With().Str("path", unit.Path).Logger()

	model, err := sema.NewModel(unit)
	if err != nil {
		return nil, err
	}

	// chains

	start := l.startPhase()

	set, err := BuildChains(model, transformations)
	if err != nil {
		return nil, err
	}

	l.endPhase(
		tracingBuildChainsPostfix,
		unit.Path,
		start,
		attribute.Int("transformations", len(transformations)),
		attribute.Int("chains", set.Len()),
	)

	for _, chain := range set.Chains() {
		logger.Debug().
			Stringer("declaration", chain.Declaration.ID).
			Int("semantics", len(chain.Semantics)).
			Bool("introduced", chain.Declaration.Introduced).
			Bool("flattened", chain.BackingField != nil).
			Msg("built chain")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// analysis

	start = l.startPhase()

	analysis := Analyze(set, l.config.InliningPolicy)

	l.endPhase(
		tracingAnalyzePostfix,
		unit.Path,
		start,
		attribute.Int("bodies", len(analysis.Order)),
		attribute.Int("diagnostics", len(analysis.Diagnostics)),
	)

	for _, key := range analysis.Order {
		for _, reference := range analysis.References[key] {
			logger.Debug().
				Stringer("caller", reference.Caller).
				Stringer("target", reference.Target).
				Stringer("context", reference.Context.Kind).
				Stringer("decision", reference.Decision).
				Msg("decided proceed reference")
		}
	}

	for _, diagnostic := range analysis.Diagnostics {
		logger.Debug().Err(diagnostic).Msg("reference not inlined")
	}

	names := assignNames(set, analysis)

	// rewriting

	start = l.startPhase()

	components := rewriteComponents(set, analysis)

	bodies, err := l.rewrite(ctx, set, analysis, names, components)
	if err != nil {
		return nil, err
	}

	l.endPhase(
		tracingRewritePostfix,
		unit.Path,
		start,
		attribute.Int("components", len(components)),
		attribute.Int("parallelism", l.config.Parallelism),
	)

	// assembly

	start = l.startPhase()

	labels := &LabelAllocator{}
	assembler := newAssembler(set, analysis, names, bodies, labels)
	linked := assembler.assemble(unit)

	l.endPhase(
		tracingAssemblePostfix,
		unit.Path,
		start,
		attribute.Int("injected", len(assembler.injected)),
		attribute.Int64("labels", int64(labels.Count())),
	)

	for _, member := range assembler.injected {
		logger.Debug().
			Stringer("declaration", member.Declaration).
			Stringer("semantic", member.Semantic).
			Str("name", member.Name).
			Stringer("reason", member.Reason).
			Msg("injected member")
	}

	return &Result{
		Unit:            linked,
		InjectedMembers: assembler.injected,
		Diagnostics:     analysis.Diagnostics,
	}, nil
}

func (l *Linker) startPhase() time.Time {
	if !l.config.enabled() {
		return time.Time{}
	}
	return time.Now()
}

func (l *Linker) endPhase(phase string, path string, start time.Time, attrs ...attribute.KeyValue) {
	if !l.config.enabled() {
		return
	}
	l.config.reportPhaseTrace(phase, path, time.Since(start), attrs...)
}

// assignNames names the standalone members of all synthesized semantics,
// in chain order, so names do not depend on the order bodies are rewritten in.
func assignNames(set *ChainSet, analysis *Analysis) map[SemanticKey]string {
	names := newMemberNames(set)

	for _, chain := range set.Chains() {
		if analysis.IsSynthesized(chain.Empty) {
			names.assign(chain.Declaration, chain.Empty)
		}
		for _, semantic := range chain.Semantics {
			if analysis.IsSynthesized(semantic) {
				names.assign(chain.Declaration, semantic)
			}
		}
	}

	return names.names
}

// rewriteComponents partitions the bodies to rewrite into groups which can be
// rewritten independently: chains inlining each other's bodies are in one group.
// Each group keeps the rewrite order of the analysis.
func rewriteComponents(set *ChainSet, analysis *Analysis) [][]BodyKey {
	chains := set.Chains()

	indices := make(map[common.DeclarationID]int, len(chains))
	for i, chain := range chains {
		indices[chain.Declaration.ID] = i
	}

	parents := make([]int, len(chains))
	for i := range parents {
		parents[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		for parents[i] != i {
			parents[i] = parents[parents[i]]
			i = parents[i]
		}
		return i
	}

	for _, key := range analysis.Order {
		for _, reference := range analysis.References[key] {
			if reference.Decision != DecisionInline {
				continue
			}
			caller := find(indices[reference.Caller.Semantic.Declaration])
			target := find(indices[reference.Target.Semantic.Declaration])
			if caller == target {
				continue
			}
			if caller < target {
				parents[target] = caller
			} else {
				parents[caller] = target
			}
		}
	}

	componentIndices := map[int]int{}
	var components [][]BodyKey

	for _, key := range analysis.Order {
		root := find(indices[key.Semantic.Declaration])
		index, ok := componentIndices[root]
		if !ok {
			index = len(components)
			componentIndices[root] = index
			components = append(components, nil)
		}
		components[index] = append(components[index], key)
	}

	return components
}

// rewrite rewrites the bodies of all components,
// concurrently if the configured parallelism allows it.
func (l *Linker) rewrite(
	ctx context.Context,
	set *ChainSet,
	analysis *Analysis,
	names map[SemanticKey]string,
	components [][]BodyKey,
) (map[BodyKey]*ast.Block, error) {
	rewriters := make([]*rewriter, len(components))

	if l.config.Parallelism < 2 {
		for i, component := range components {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rewriters[i] = newRewriter(set, analysis, names)
			rewriters[i].rewrite(component)
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(l.config.Parallelism)

		for i, component := range components {
			group.Go(func() (err error) {
				defer recoverErrors(func(recovered error) {
					err = recovered
				})

				if err := groupCtx.Err(); err != nil {
					return err
				}
				rewriter := newRewriter(set, analysis, names)
				rewriter.rewrite(component)
				rewriters[i] = rewriter
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	bodies := map[BodyKey]*ast.Block{}
	for _, rewriter := range rewriters {
		for key, body := range rewriter.bodies {
			bodies[key] = body
		}
	}

	return bodies, nil
}
