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

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/sema"
)

// ChainSet is the set of chains of one link run.
//
// Chains of declarations of the tree are ordered by position,
// chains of introduced declarations follow, by type and ordinal.
// A chain set is immutable and safe for concurrent use.
type ChainSet struct {
	model         *sema.Model
	chains        *orderedmap.OrderedMap[common.DeclarationID, *Chain]
	introductions map[common.DeclarationID]*Declaration
	// semantics are all semantics, by index
	semantics []*Semantic
}

func (s *ChainSet) Model() *sema.Model {
	return s.model
}

func (s *ChainSet) Len() int {
	return s.chains.Len()
}

// Chains returns all chains, in order.
func (s *ChainSet) Chains() []*Chain {
	result := make([]*Chain, 0, s.chains.Len())
	for pair := s.chains.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// Chain returns the chain of the declaration with the given canonical identity.
func (s *ChainSet) Chain(id common.DeclarationID) (*Chain, bool) {
	return s.chains.Get(id)
}

// Semantic returns the semantic with the given key.
func (s *ChainSet) Semantic(key SemanticKey) (*Semantic, bool) {
	chain, ok := s.chains.Get(key.Declaration)
	if !ok {
		return nil, false
	}
	return chain.Semantic(key.Ordinal)
}

// LookupDeclaration returns the declaration of the tree or the introduced declaration
// with the given identity. See sema.Model.Lookup for the accepted identities.
func (s *ChainSet) LookupDeclaration(id common.DeclarationID) (*Declaration, bool) {
	if info, ok := s.model.Lookup(id); ok {
		if chain, ok := s.chains.Get(info.ID); ok {
			return chain.Declaration, true
		}
		return newTreeDeclaration(info), true
	}
	return lookupIntroduction(s.introductions, id)
}

func lookupIntroduction(
	introductions map[common.DeclarationID]*Declaration,
	id common.DeclarationID,
) (*Declaration, bool) {
	if declaration, ok := introductions[id]; ok {
		return declaration, true
	}

	if id.Signature != "" {
		id.Signature = common.FormatSignature(sema.NormalizedTypeNames(id.ParameterTypes()))
		declaration, ok := introductions[id]
		return declaration, ok
	}

	var result *Declaration
	for _, declaration := range introductions {
		if declaration.ID.Type != id.Type || declaration.ID.Member != id.Member {
			continue
		}
		if result != nil {
			// ambiguous overloads
			return nil, false
		}
		result = declaration
	}
	return result, result != nil
}

// chainBuilder assembles the chains of one link run.
type chainBuilder struct {
	model         *sema.Model
	introductions map[common.DeclarationID]*Declaration
	groups        map[common.DeclarationID][]*Transformation
	chains        *orderedmap.OrderedMap[common.DeclarationID, *Chain]
	semantics     []*Semantic
	errs          []error
}

// BuildChains assembles the chains of the given transformations.
// It fails with a *LinkError if the transformations are inconsistent.
func BuildChains(model *sema.Model, transformations []Transformation) (*ChainSet, error) {
	builder := &chainBuilder{
		model:         model,
		introductions: map[common.DeclarationID]*Declaration{},
		groups:        map[common.DeclarationID][]*Transformation{},
		chains:        orderedmap.New[common.DeclarationID, *Chain](),
	}

	introduced := builder.collectIntroductions(transformations)
	builder.collectOverrides(transformations)

	for _, info := range model.Declarations() {
		builder.buildChain(newTreeDeclaration(info))
	}
	for _, declaration := range introduced {
		builder.buildChain(declaration)
	}

	set := &ChainSet{
		model:         model,
		chains:        builder.chains,
		introductions: builder.introductions,
		semantics:     builder.semantics,
	}

	builder.checkProceedReferences(set)

	if len(builder.errs) > 0 {
		return nil, &LinkError{
			Path:   model.Unit().Path,
			Errors: builder.errs,
		}
	}

	return set, nil
}

func (b *chainBuilder) report(t *Transformation, kind InconsistencyKind, detail string, suggestion string) {
	err := &ChainInconsistencyError{
		Declaration: t.Declaration,
		Ordinal:     t.Ordinal,
		Kind:        kind,
		Detail:      detail,
		Suggestion:  suggestion,
	}
	if t.Member != nil {
		err.Range = ast.NewRangeFromPositioned(t.Member)
	}
	b.errs = append(b.errs, err)
}

// checkTransformation reports the problems all kinds of transformations share.
func (b *chainBuilder) checkTransformation(t *Transformation) bool {
	if t.Member == nil {
		b.report(t, InconsistencyKindMissingMember, "", "")
		return false
	}
	if t.Ordinal <= OriginalOrdinal {
		b.report(t, InconsistencyKindNonPositiveOrdinal, "", "")
		return false
	}
	return true
}

// collectIntroductions registers the introduced declarations,
// and returns them ordered by type and ordinal.
func (b *chainBuilder) collectIntroductions(transformations []Transformation) []*Declaration {
	var introduced []*Declaration
	ordinals := map[*Declaration]int{}

	for i := range transformations {
		t := &transformations[i]
		if t.Kind != TransformationKindIntroduction {
			continue
		}

		if !b.checkTransformation(t) {
			continue
		}

		typeInfo, ok := b.model.LookupType(t.Declaration.Type)
		if !ok {
			suggestion, _ := b.model.ClosestType(t.Declaration.Type)
			b.report(t, InconsistencyKindMissingType, t.Declaration.Type, suggestion)
			continue
		}

		ids := sema.DeclarationIDs(typeInfo.Declaration.Name, t.Member)
		if len(ids) != 1 ||
			ids[0].Member != t.Declaration.Member ||
			!signaturesMatch(t.Declaration, ids[0]) {

			b.report(t, InconsistencyKindInvalidIntroduction, "", "")
			continue
		}
		id := ids[0]

		if _, exists := b.model.Lookup(id); exists {
			b.report(t, InconsistencyKindExistingDeclaration, "", "")
			continue
		}

		if _, exists := b.introductions[id]; exists {
			b.report(t, InconsistencyKindDuplicateIntroduction, "", "")
			continue
		}

		declaration := &Declaration{
			ID:         id,
			Type:       typeInfo,
			Member:     t.Member,
			Introduced: true,
			Index:      len(typeInfo.Declaration.Members),
		}
		switch member := t.Member.(type) {
		case *ast.FieldDeclaration:
			declaration.Variable = member.Variables[0]
		case *ast.EventFieldDeclaration:
			declaration.Variable = member.Variables[0]
		}

		b.introductions[id] = declaration
		b.groups[id] = append(b.groups[id], t)
		ordinals[declaration] = t.Ordinal
		introduced = append(introduced, declaration)
	}

	sort.SliceStable(introduced, func(i, j int) bool {
		first, second := introduced[i], introduced[j]
		if first.Type.Index != second.Type.Index {
			return first.Type.Index < second.Type.Index
		}
		return ordinals[first] < ordinals[second]
	})

	for i, declaration := range introduced {
		declaration.Index += i
	}

	return introduced
}

func signaturesMatch(requested, declared common.DeclarationID) bool {
	if requested.Signature == "" {
		return true
	}
	normalized := common.FormatSignature(sema.NormalizedTypeNames(requested.ParameterTypes()))
	return normalized == declared.Signature
}

func (b *chainBuilder) collectOverrides(transformations []Transformation) {
	for i := range transformations {
		t := &transformations[i]
		if t.Kind != TransformationKindOverride {
			continue
		}

		if !b.checkTransformation(t) {
			continue
		}

		var id common.DeclarationID
		if info, ok := b.model.Lookup(t.Declaration); ok {
			id = info.ID
		} else if declaration, ok := lookupIntroduction(b.introductions, t.Declaration); ok {
			id = declaration.ID
		} else {
			b.reportMissingDeclaration(t, t.Declaration)
			continue
		}

		b.groups[id] = append(b.groups[id], t)
	}
}

func (b *chainBuilder) reportMissingDeclaration(t *Transformation, id common.DeclarationID) {
	if _, ok := b.model.LookupType(id.Type); !ok {
		suggestion, _ := b.model.ClosestType(id.Type)
		b.report(t, InconsistencyKindMissingType, id.Type, suggestion)
		return
	}

	suggestion, _ := b.model.ClosestMember(id)
	b.report(t, InconsistencyKindMissingDeclaration, id.String(), suggestion)
}

// buildChain builds the chain of the given declaration,
// if any transformation applies to it.
func (b *chainBuilder) buildChain(declaration *Declaration) {
	group := b.groups[declaration.ID]
	if len(group) == 0 {
		return
	}

	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Ordinal < group[j].Ordinal
	})

	errorCount := len(b.errs)

	b.checkOrdinals(declaration, group)
	b.checkFinal(declaration, group)
	for _, t := range group {
		if t.Kind == TransformationKindOverride {
			b.checkOverride(declaration, t)
		}
	}

	if len(b.errs) > errorCount {
		return
	}

	chain := &Chain{
		Declaration: declaration,
	}

	overrides := group
	if declaration.Introduced {
		introduction := group[0]
		overrides = group[1:]
		chain.Semantics = append(chain.Semantics, &Semantic{
			Key: SemanticKey{
				Declaration: declaration.ID,
				Ordinal:     introduction.Ordinal,
			},
			Kind:                 SemanticKindIntroduction,
			Aspect:               introduction.Aspect,
			Member:               introduction.Member,
			ForcedNotInlineable:  introduction.ForcedNotInlineable,
			ForcedNotDiscardable: introduction.ForcedNotDiscardable,
		})
	} else {
		chain.Semantics = append(chain.Semantics, &Semantic{
			Key: SemanticKey{
				Declaration: declaration.ID,
				Ordinal:     OriginalOrdinal,
			},
			Kind:   SemanticKindOriginal,
			Member: declaration.Member,
		})
	}

	if len(overrides) > 0 {
		first := chain.First()
		if member, backingField := flatten(declaration, first.Member); backingField != nil {
			first.Member = member
			chain.BackingField = backingField
		}
	}

	for _, t := range overrides {
		semantic := &Semantic{
			Key: SemanticKey{
				Declaration: declaration.ID,
				Ordinal:     t.Ordinal,
			},
			Kind:                 SemanticKindOverride,
			Aspect:               t.Aspect,
			Member:               completeOverride(chain.First().Member, t.Member),
			ForcedNotInlineable:  t.ForcedNotInlineable,
			ForcedNotDiscardable: t.ForcedNotDiscardable,
		}
		if t.Predecessor != nil {
			semantic.Predecessor = &SemanticKey{
				Declaration: declaration.ID,
				Ordinal:     *t.Predecessor,
			}
		}
		chain.Semantics = append(chain.Semantics, semantic)
	}

	chain.Empty = &Semantic{
		Key: SemanticKey{
			Declaration: declaration.ID,
			Ordinal:     EmptyOrdinal,
		},
		Kind:   SemanticKindEmpty,
		Member: emptyMember(chain.First().Member),
	}

	b.register(chain.Empty)
	for _, semantic := range chain.Semantics {
		b.register(semantic)
	}

	b.chains.Set(declaration.ID, chain)
}

func (b *chainBuilder) register(semantic *Semantic) {
	semantic.index = uint(len(b.semantics))
	b.semantics = append(b.semantics, semantic)
}

func (b *chainBuilder) checkOrdinals(declaration *Declaration, group []*Transformation) {
	ordinals := map[int]bool{}
	if !declaration.Introduced {
		ordinals[OriginalOrdinal] = true
	}

	for i, t := range group {
		if ordinals[t.Ordinal] {
			b.report(t, InconsistencyKindDuplicateOrdinal, "", "")
			continue
		}
		ordinals[t.Ordinal] = true

		// an introduction must be the first layer of its declaration
		if declaration.Introduced && i == 0 && t.Kind != TransformationKindIntroduction {
			b.report(t, InconsistencyKindMissingDeclaration, t.Declaration.String(), "")
		}
	}

	for _, t := range group {
		if t.Predecessor == nil {
			continue
		}
		predecessor := *t.Predecessor
		switch {
		case predecessor >= t.Ordinal:
			b.report(t, InconsistencyKindPredecessorNotLower, "", "")
		case !ordinals[predecessor]:
			b.report(t, InconsistencyKindMissingPredecessor, "", "")
		}
	}
}

func (b *chainBuilder) checkFinal(declaration *Declaration, group []*Transformation) {
	var finals []int
	for _, t := range group {
		if t.Final {
			finals = append(finals, t.Ordinal)
		}
	}

	switch {
	case len(finals) > 1:
		b.errs = append(b.errs, &AmbiguousFinalSemanticError{
			Declaration: declaration.ID,
			Ordinals:    finals,
		})

	case len(finals) == 1:
		highest := group[len(group)-1]
		if finals[0] != highest.Ordinal {
			for _, t := range group {
				if t.Final {
					b.report(t, InconsistencyKindFinalNotHighest, "", "")
				}
			}
		}
	}
}

func (b *chainBuilder) checkOverride(declaration *Declaration, t *Transformation) {
	modifiers := declaration.Member.MemberModifiers()
	if modifiers.Has(ast.ModifierAbstract) {
		b.report(t, InconsistencyKindAbstractMember, "", "")
		return
	}
	if method, ok := declaration.Member.(*ast.MethodDeclaration); ok && method.Body == nil {
		b.report(t, InconsistencyKindAbstractMember, "", "")
		return
	}

	if !overrideKindMatches(declaration.Kind(), t.Member.MemberKind()) {
		b.report(t, InconsistencyKindKindMismatch, t.Member.MemberKind().Name(), "")
		return
	}

	expected := sema.NormalizedTypeNames(ast.ParameterTypeNames(declaration.Parameters()))
	actual := sema.NormalizedTypeNames(ast.ParameterTypeNames(sema.MemberParameters(t.Member)))
	if common.FormatSignature(expected) != common.FormatSignature(actual) {
		b.report(t, InconsistencyKindParameterMismatch, common.FormatSignature(actual), "")
		return
	}

	for _, accessor := range ast.MemberAccessors(t.Member) {
		if !declaration.HasAccessor(accessor.Kind) {
			b.report(t, InconsistencyKindUnknownAccessor, accessor.Kind.Keyword(), "")
		}
	}
}

// overrideKindMatches returns true if a member of the given kind can override
// a declaration of the given kind: fields are overridden by properties,
// field-like events by events, all other kinds by their own kind.
func overrideKindMatches(declarationKind, overrideKind common.MemberKind) bool {
	switch declarationKind {
	case common.MemberKindField:
		return overrideKind == common.MemberKindProperty
	case common.MemberKindEventField:
		return overrideKind == common.MemberKindEvent
	default:
		return declarationKind == overrideKind
	}
}

// checkProceedReferences reports proceed references of the chains
// which target unknown declarations or accessors.
func (b *chainBuilder) checkProceedReferences(set *ChainSet) {
	for _, chain := range set.Chains() {
		for _, semantic := range chain.Semantics {
			if semantic.Kind == SemanticKindOriginal {
				continue
			}

			for _, key := range semantic.BodyKeys() {
				body := semantic.Body(key.Accessor)
				if body == nil {
					continue
				}

				ast.NewInspector(body).Preorder(
					[]ast.ElementType{ast.ElementTypeProceedExpression},
					func(element ast.Element) {
						reference := element.(*ast.ProceedExpression)
						b.checkProceedReference(set, chain, semantic, key.Accessor, reference)
					},
				)
			}
		}
	}
}

func (b *chainBuilder) checkProceedReference(
	set *ChainSet,
	chain *Chain,
	semantic *Semantic,
	enclosingAccessor common.AccessorKind,
	reference *ast.ProceedExpression,
) {
	report := func(kind InconsistencyKind, detail string, suggestion string) {
		b.errs = append(b.errs, &ChainInconsistencyError{
			Declaration: chain.Declaration.ID,
			Ordinal:     semantic.Key.Ordinal,
			Kind:        kind,
			Detail:      detail,
			Suggestion:  suggestion,
			Range:       ast.NewRangeFromPositioned(reference),
		})
	}

	target := chain.Declaration
	if !reference.Target.IsZero() {
		var ok bool
		target, ok = set.LookupDeclaration(reference.Target)
		if !ok {
			suggestion, _ := set.model.ClosestMember(reference.Target)
			report(InconsistencyKindUnknownProceedTarget, reference.Target.String(), suggestion)
			return
		}
	}

	accessor := resolveAccessor(reference, target, enclosingAccessor)
	if !target.HasAccessor(accessor) {
		detail := accessor.Keyword()
		if detail == "" {
			detail = target.Kind().Name()
		}
		report(InconsistencyKindUnknownAccessor, detail, "")
	}
}

// resolveAccessor returns the accessor of the target a proceed reference invokes:
// the explicit selector, else none for methods, else the enclosing accessor.
func resolveAccessor(
	reference *ast.ProceedExpression,
	target *Declaration,
	enclosingAccessor common.AccessorKind,
) common.AccessorKind {
	switch {
	case reference.Accessor != common.AccessorKindNone:
		return reference.Accessor
	case target.Kind() == common.MemberKindMethod:
		return common.AccessorKindNone
	default:
		return enclosingAccessor
	}
}

// completeOverride returns the override member with a body for every accessor
// of the declaration. Accessors the override omits, or declares without a body,
// forward to the predecessor.
func completeOverride(shape ast.MemberDeclaration, override ast.MemberDeclaration) ast.MemberDeclaration {
	switch override := override.(type) {
	case *ast.MethodDeclaration:
		if override.Body != nil {
			return override
		}
		result := *override
		result.Body = forwardingBody(!override.ReturnType.IsVoid())
		return &result

	case *ast.PropertyDeclaration:
		result := *override
		result.Accessors = completeAccessors(ast.MemberAccessors(shape), override.Accessors)
		result.Initializer = nil
		return &result

	case *ast.IndexerDeclaration:
		result := *override
		result.Accessors = completeAccessors(ast.MemberAccessors(shape), override.Accessors)
		return &result

	case *ast.EventDeclaration:
		result := *override
		result.Accessors = completeAccessors(ast.MemberAccessors(shape), override.Accessors)
		return &result
	}

	panic(errors.NewUnreachableError())
}

func completeAccessors(declared ast.AccessorList, overridden ast.AccessorList) ast.AccessorList {
	result := make(ast.AccessorList, 0, len(declared))
	for _, declaredAccessor := range declared {
		accessor := overridden.Get(declaredAccessor.Kind)
		if accessor != nil && accessor.Body != nil {
			result = append(result, accessor)
			continue
		}

		forwarding := ast.NewAccessor(
			declaredAccessor.Kind,
			forwardingBody(declaredAccessor.Kind.ReturnsValue()),
		)
		if accessor != nil {
			forwarding.Modifiers = accessor.Modifiers
		} else {
			forwarding.Modifiers = declaredAccessor.Modifiers
		}
		result = append(result, forwarding)
	}
	return result
}

// forwardingBody returns a body which only invokes the predecessor.
func forwardingBody(returnsValue bool) *ast.Block {
	reference := &ast.ProceedExpression{}
	if returnsValue {
		return ast.NewBlock(ast.NewReturnStatement(reference))
	}
	return ast.NewBlock(ast.NewExpressionStatement(reference))
}
