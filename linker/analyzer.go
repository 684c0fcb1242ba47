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
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/sema"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Decision -trimprefix=Decision

// Decision is how a proceed reference is linked.
type Decision uint8

const (
	// DecisionInline splices the body of the target into the caller
	DecisionInline Decision = iota
	// DecisionCallSynthesized calls a member synthesized for the target semantic
	DecisionCallSynthesized
	// DecisionCallPublic accesses the member under its public name,
	// as the target is the top layer of its declaration
	DecisionCallPublic
)

// Reference is an analyzed proceed reference.
type Reference struct {
	Expression *ast.ProceedExpression
	// Caller is the body the reference occurs in
	Caller BodyKey
	// Target is the invoked body
	Target            BodyKey
	TargetDeclaration *Declaration
	// TargetSemantic is nil for references to declarations without a chain
	TargetSemantic *Semantic
	Context        Context
	Decision       Decision
}

// Analysis is the result of analyzing the proceed references of a chain set.
type Analysis struct {
	// References are all analyzed references, by caller body, in source order
	References map[BodyKey][]*Reference
	// Expressions are all analyzed references, by expression
	Expressions map[*ast.ProceedExpression]*Reference
	// Sites are the statements replaced by a spliced body, by statement
	Sites map[ast.Statement]*Reference
	// Order is the order in which bodies are rewritten:
	// every inlined body precedes the bodies it is inlined into
	Order []BodyKey
	// Diagnostics are the NotInlineableContextError s of the references
	Diagnostics []error

	set *ChainSet
	// reached are the semantics at least one body of which is analyzed, by index
	reached *bitset.BitSet
	// synthesized are the semantics emitted as a standalone member, by index
	synthesized *bitset.BitSet
	analyzed    map[BodyKey]bool
}

// IsSynthesized returns true if the semantic is emitted as a standalone member.
func (a *Analysis) IsSynthesized(semantic *Semantic) bool {
	return a.synthesized.Test(semantic.index)
}

// IsReached returns true if any body of the semantic is invoked
// from the public member of a chain, directly or indirectly.
func (a *Analysis) IsReached(semantic *Semantic) bool {
	return a.reached.Test(semantic.index)
}

type analyzer struct {
	*Analysis
	policy   InliningPolicy
	worklist []BodyKey
}

// Analyze decides how each proceed reference reachable from the public members
// of the given chains is linked. It never fails.
func Analyze(set *ChainSet, policy InliningPolicy) *Analysis {
	count := uint(len(set.semantics))

	a := &analyzer{
		Analysis: &Analysis{
			References:  map[BodyKey][]*Reference{},
			Expressions: map[*ast.ProceedExpression]*Reference{},
			Sites:       map[ast.Statement]*Reference{},
			set:         set,
			reached:     bitset.New(count),
			synthesized: bitset.New(count),
			analyzed:    map[BodyKey]bool{},
		},
		policy: policy,
	}

	for _, chain := range set.Chains() {
		a.enqueueSemantic(chain.Final())
		for _, semantic := range chain.Semantics {
			if semantic.ForcedNotDiscardable {
				a.enqueueSemantic(semantic)
			}
		}
	}

	for {
		a.drainWorklist()
		a.applyConsistency()
		a.breakInlineCycles()
		a.applyConsistency()

		// every body of a synthesized semantic is emitted, so it must be analyzed
		for _, semantic := range a.synthesizedSemantics() {
			a.enqueueSemantic(semantic)
		}

		if len(a.worklist) == 0 {
			break
		}
	}

	a.collectSites()

	return a.Analysis
}

func (a *analyzer) enqueueSemantic(semantic *Semantic) {
	for _, key := range semantic.BodyKeys() {
		a.enqueue(key)
	}
}

func (a *analyzer) enqueue(key BodyKey) {
	if a.analyzed[key] {
		return
	}
	a.analyzed[key] = true
	a.worklist = append(a.worklist, key)
}

func (a *analyzer) drainWorklist() {
	for len(a.worklist) > 0 {
		key := a.worklist[0]
		a.worklist = a.worklist[1:]

		semantic, ok := a.set.Semantic(key.Semantic)
		if !ok {
			continue
		}
		a.reached.Set(semantic.index)

		body := semantic.Body(key.Accessor)
		if body == nil {
			continue
		}

		a.analyzeBody(semantic, key, body)
	}
}

func (a *analyzer) analyzeBody(semantic *Semantic, key BodyKey, body *ast.Block) {
	chain, _ := a.set.Chain(key.Semantic.Declaration)

	ast.NewInspector(body).WithStack(
		nil,
		func(element ast.Element, push bool, stack []ast.Element) bool {
			if !push {
				return true
			}
			expression, ok := element.(*ast.ProceedExpression)
			if !ok {
				return true
			}

			reference := a.analyzeReference(chain, semantic, key, expression, stack)
			a.References[key] = append(a.References[key], reference)
			a.Expressions[expression] = reference

			if reference.TargetSemantic != nil &&
				reference.Decision != DecisionCallPublic {

				a.enqueue(reference.Target)
			}

			return true
		},
	)
}

func (a *analyzer) analyzeReference(
	chain *Chain,
	caller *Semantic,
	key BodyKey,
	expression *ast.ProceedExpression,
	stack []ast.Element,
) *Reference {
	targetDeclaration := chain.Declaration
	if !expression.Target.IsZero() {
		// proceed targets are checked when the chains are built
		targetDeclaration, _ = a.set.LookupDeclaration(expression.Target)
	}

	reference := &Reference{
		Expression:        expression,
		Caller:            key,
		TargetDeclaration: targetDeclaration,
		Context:           classifyContext(stack),
	}

	accessor := resolveAccessor(expression, targetDeclaration, key.Accessor)

	targetChain, ok := a.set.Chain(targetDeclaration.ID)
	if !ok {
		// declarations without a chain only have their public member
		reference.Target = BodyKey{
			Semantic: SemanticKey{
				Declaration: targetDeclaration.ID,
				Ordinal:     OriginalOrdinal,
			},
			Accessor: accessor,
		}
		reference.Decision = DecisionCallPublic
		return reference
	}

	target := a.resolveTarget(targetChain, caller, expression)
	reference.TargetSemantic = target
	reference.Target = BodyKey{
		Semantic: target.Key,
		Accessor: accessor,
	}

	reference.Decision = a.decide(caller, key, reference, targetChain)

	return reference
}

// resolveTarget returns the semantic of the target chain a reference invokes.
func (a *analyzer) resolveTarget(targetChain *Chain, caller *Semantic, expression *ast.ProceedExpression) *Semantic {
	switch expression.Order {
	case ast.ProceedOrderOriginal:
		return targetChain.First()

	case ast.ProceedOrderFinal:
		return targetChain.Final()
	}

	if caller.Predecessor != nil &&
		caller.Predecessor.Declaration == targetChain.Declaration.ID {

		if semantic, ok := targetChain.Semantic(caller.Predecessor.Ordinal); ok {
			return semantic
		}
	}

	return targetChain.Below(caller.Key.Ordinal)
}

func (a *analyzer) decide(
	caller *Semantic,
	key BodyKey,
	reference *Reference,
	targetChain *Chain,
) Decision {
	target := reference.TargetSemantic

	if targetChain.IsFinal(target) {
		return DecisionCallPublic
	}

	if !a.inlineableContext(reference) {
		a.Diagnostics = append(a.Diagnostics, &NotInlineableContextError{
			Caller:  key.Semantic,
			Target:  target.Key,
			Context: reference.Context.Kind,
			Range:   ast.NewRangeFromPositioned(reference.Expression),
		})
		return DecisionCallSynthesized
	}

	if target.ForcedNotInlineable {
		return DecisionCallSynthesized
	}

	if target.Body(reference.Target.Accessor) == nil {
		return DecisionCallSynthesized
	}

	if !forwardsParameters(caller, key.Accessor, reference) {
		return DecisionCallSynthesized
	}

	if a.policy == InlineRequestedOnly &&
		reference.Expression.Hint != ast.InlineHintInline {

		return DecisionCallSynthesized
	}

	return DecisionInline
}

func (a *analyzer) inlineableContext(reference *Reference) bool {
	context := reference.Context
	declaration := reference.TargetDeclaration

	switch context.Kind {
	case ContextKindOther:
		return false

	case ContextKindCastReturn:
		if !sema.IdenticalTypes(context.Cast.Type, declaration.MemberType()) {
			return false
		}
	}

	if context.Kind.ProducesValue() &&
		!declaration.ReturnsValue(reference.Target.Accessor) {

		return false
	}

	return true
}

// forwardsParameters returns true if the reference passes the parameters
// of the target body unchanged, so the target body can be spliced as is.
func forwardsParameters(caller *Semantic, callerAccessor common.AccessorKind, reference *Reference) bool {
	expected := parameterNames(reference.TargetSemantic.Member, reference.Target.Accessor)

	if len(reference.Expression.Arguments) > 0 {
		return reference.Expression.ForwardsParameters(expected)
	}

	forwarded := forwardedParameterNames(
		caller.Member,
		callerAccessor,
		reference.TargetDeclaration,
		reference.Target.Accessor,
	)
	if len(forwarded) != len(expected) {
		return false
	}
	for i, name := range forwarded {
		if expected[i] != name {
			return false
		}
	}
	return true
}

// forwardedParameterNames returns the names of the caller's values
// a reference without arguments passes to the target.
func forwardedParameterNames(
	callerMember ast.MemberDeclaration,
	callerAccessor common.AccessorKind,
	target *Declaration,
	targetAccessor common.AccessorKind,
) []string {
	var names []string

	switch target.Kind() {
	case common.MemberKindMethod, common.MemberKindIndexer:
		names = ast.ParameterNames(ast.MemberParameters(callerMember))
	}

	if targetAccessor.HasValueParameter() {
		names = append(names, valueParameterName)
	}

	return names
}

// applyConsistency makes every reference to a body CallSynthesized
// if any reference to the same body is CallSynthesized,
// and marks the semantics which are emitted as standalone members.
func (a *analyzer) applyConsistency() {
	synthesizedTargets := map[BodyKey]bool{}
	a.forEachReference(func(reference *Reference) {
		if reference.Decision == DecisionCallSynthesized {
			synthesizedTargets[reference.Target] = true
		}
	})

	a.forEachReference(func(reference *Reference) {
		if reference.Decision == DecisionInline &&
			synthesizedTargets[reference.Target] {

			reference.Decision = DecisionCallSynthesized
		}
		if reference.Decision == DecisionCallSynthesized {
			a.synthesized.Set(reference.TargetSemantic.index)
		}
	})

	for _, chain := range a.set.Chains() {
		for _, semantic := range chain.Semantics {
			if semantic.ForcedNotDiscardable && !chain.IsFinal(semantic) {
				a.synthesized.Set(semantic.index)
			}
		}
	}
}

// forEachReference calls f for every reference, in a deterministic order.
func (a *analyzer) forEachReference(f func(*Reference)) {
	for _, key := range a.sortedBodies() {
		for _, reference := range a.References[key] {
			f(reference)
		}
	}
}

// sortedBodies returns the analyzed bodies ordered by chain,
// then by ordinal, then by accessor.
func (a *analyzer) sortedBodies() []BodyKey {
	keys := make([]BodyKey, 0, len(a.analyzed))
	for key := range a.analyzed {
		keys = append(keys, key)
	}

	chainIndices := map[common.DeclarationID]int{}
	for i, chain := range a.set.Chains() {
		chainIndices[chain.Declaration.ID] = i
	}

	sort.Slice(keys, func(i, j int) bool {
		first, second := keys[i], keys[j]
		if first.Semantic.Ordinal != second.Semantic.Ordinal {
			return first.Semantic.Ordinal < second.Semantic.Ordinal
		}
		firstChain := chainIndices[first.Semantic.Declaration]
		secondChain := chainIndices[second.Semantic.Declaration]
		if firstChain != secondChain {
			return firstChain < secondChain
		}
		return first.Accessor < second.Accessor
	})

	return keys
}

const (
	unvisited = iota
	visiting
	visited
)

// breakInlineCycles orders the bodies so that inlined bodies precede their callers,
// using an explicit stack. Inline references closing a cycle are downgraded
// to CallSynthesized.
func (a *analyzer) breakInlineCycles() {
	type frame struct {
		body BodyKey
		next int
	}

	states := map[BodyKey]uint8{}
	var order []BodyKey

	for _, root := range a.sortedBodies() {
		if states[root] != unvisited {
			continue
		}

		states[root] = visiting
		stack := []frame{{body: root}}

		for len(stack) > 0 {
			top := len(stack) - 1
			references := a.References[stack[top].body]

			if stack[top].next == len(references) {
				states[stack[top].body] = visited
				order = append(order, stack[top].body)
				stack = stack[:top]
				continue
			}

			reference := references[stack[top].next]
			stack[top].next++

			if reference.Decision != DecisionInline {
				continue
			}

			switch states[reference.Target] {
			case visiting:
				reference.Decision = DecisionCallSynthesized
			case unvisited:
				states[reference.Target] = visiting
				stack = append(stack, frame{body: reference.Target})
			}
		}
	}

	a.Order = order
}

func (a *analyzer) synthesizedSemantics() []*Semantic {
	var result []*Semantic
	for index, ok := a.synthesized.NextSet(0); ok; index, ok = a.synthesized.NextSet(index + 1) {
		result = append(result, a.set.semantics[index])
	}
	return result
}

func (a *analyzer) collectSites() {
	a.forEachReference(func(reference *Reference) {
		if reference.Decision == DecisionInline {
			a.Sites[reference.Context.Statement] = reference
		}
	})
}
