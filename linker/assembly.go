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
	"github.com/onflow/aspectlink/ast"
	"github.com/onflow/aspectlink/common"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=InjectionReason -trimprefix=InjectionReason

// InjectionReason is the reason a member not declared in the input is emitted.
type InjectionReason uint8

const (
	// InjectionReasonCallSynthesized: a proceed reference calls the semantic
	InjectionReasonCallSynthesized InjectionReason = iota
	// InjectionReasonForcedNotDiscardable: the semantic is kept on request
	InjectionReasonForcedNotDiscardable
	// InjectionReasonBackingField: the storage of a flattened declaration
	InjectionReasonBackingField
	// InjectionReasonIntroduction: a member introduced by an aspect
	InjectionReasonIntroduction
)

// InjectedMember describes a member of the output which is not declared in the input.
type InjectedMember struct {
	Declaration common.DeclarationID
	Semantic    SemanticKey
	Name        string
	Kind        common.MemberKind
	Reason      InjectionReason
}

// assembler builds the output compilation unit from the linked bodies.
type assembler struct {
	set      *ChainSet
	analysis *Analysis
	names    map[SemanticKey]string
	bodies   map[BodyKey]*ast.Block
	labels   *LabelAllocator
	// called are the semantics at least one reference calls through a synthesized member
	called   map[SemanticKey]bool
	injected []InjectedMember
}

func newAssembler(
	set *ChainSet,
	analysis *Analysis,
	names map[SemanticKey]string,
	bodies map[BodyKey]*ast.Block,
	labels *LabelAllocator,
) *assembler {
	called := map[SemanticKey]bool{}
	for _, references := range analysis.References {
		for _, reference := range references {
			if reference.Decision == DecisionCallSynthesized {
				called[reference.Target.Semantic] = true
			}
		}
	}

	return &assembler{
		set:      set,
		analysis: analysis,
		names:    names,
		bodies:   bodies,
		labels:   labels,
		called:   called,
	}
}

// body returns a copy of the linked body of the given key.
// Every emitted body is a fresh copy, so spliced labels are never shared.
func (a *assembler) body(key BodyKey) *ast.Block {
	body, ok := a.bodies[key]
	if !ok {
		semantic, ok := a.set.Semantic(key.Semantic)
		if !ok {
			return nil
		}
		body = semantic.Body(key.Accessor)
	}
	return ast.CloneBlock(body)
}

// typeChains are the chains of one type.
type typeChains struct {
	// members are the chains of the tree's declarations, by member index
	members map[int][]*Chain
	// introductions are the chains of introduced declarations, in order
	introductions []*Chain
}

func (a *assembler) assemble(unit *ast.CompilationUnit) *ast.CompilationUnit {
	chainsByType := map[string]*typeChains{}
	for _, chain := range a.set.Chains() {
		typeName := chain.Declaration.TypeName()
		chains, ok := chainsByType[typeName]
		if !ok {
			chains = &typeChains{
				members: map[int][]*Chain{},
			}
			chainsByType[typeName] = chains
		}

		if chain.Declaration.Introduced {
			chains.introductions = append(chains.introductions, chain)
		} else {
			index := chain.Declaration.Index
			chains.members[index] = append(chains.members[index], chain)
		}
	}

	result := &ast.CompilationUnit{
		Path:   unit.Path,
		Usings: unit.Usings,
		Types:  make([]*ast.TypeDeclaration, len(unit.Types)),
	}

	for i, typeDeclaration := range unit.Types {
		chains, ok := chainsByType[typeDeclaration.Name]
		if !ok {
			result.Types[i] = typeDeclaration
			continue
		}
		result.Types[i] = a.assembleType(typeDeclaration, chains)
	}

	return result
}

func (a *assembler) assembleType(declaration *ast.TypeDeclaration, chains *typeChains) *ast.TypeDeclaration {
	members := make([]ast.MemberDeclaration, 0, len(declaration.Members))

	for index, member := range declaration.Members {
		memberChains := chains.members[index]
		if len(memberChains) == 0 {
			members = append(members, member)
			continue
		}

		members = append(members, a.assembleMember(member, memberChains)...)
	}

	for _, chain := range chains.introductions {
		introduced, _ := a.chainMembers(chain)
		members = append(members, introduced...)
	}

	result := *declaration
	result.Members = members
	return &result
}

// assembleMember returns the members replacing a member of the tree.
//
// Variables of a field or field-like event declaration which are not overridden
// stay in the declaration, each overridden variable gets its own members.
// Leading comments go to the first public member, trailing comments to the last member.
func (a *assembler) assembleMember(member ast.MemberDeclaration, chains []*Chain) []ast.MemberDeclaration {
	var result []ast.MemberDeclaration
	publicIndex := -1

	switch declaration := member.(type) {
	case *ast.FieldDeclaration:
		variables := untouchedVariables(declaration.Variables, chains)
		if len(variables) > 0 {
			remaining := *declaration
			remaining.Variables = variables
			result = append(result, &remaining)
			publicIndex = 0
		}

	case *ast.EventFieldDeclaration:
		variables := untouchedVariables(declaration.Variables, chains)
		if len(variables) > 0 {
			remaining := *declaration
			remaining.Variables = variables
			result = append(result, &remaining)
			publicIndex = 0
		}
	}

	for _, chain := range chains {
		members, index := a.chainMembers(chain)
		if publicIndex < 0 {
			publicIndex = len(result) + index
		}
		result = append(result, members...)
	}

	for i := range result {
		result[i] = withComments(result[i], ast.Comments{})
	}

	comments := member.MemberComments()
	last := len(result) - 1
	if publicIndex == last {
		result[last] = withComments(result[last], comments)
	} else {
		result[publicIndex] = withComments(result[publicIndex], comments.LeadingOnly())
		result[last] = withComments(result[last], comments.TrailingOnly())
	}

	return result
}

func untouchedVariables(variables []*ast.VariableDeclarator, chains []*Chain) []*ast.VariableDeclarator {
	overridden := map[*ast.VariableDeclarator]bool{}
	for _, chain := range chains {
		overridden[chain.Declaration.Variable] = true
	}

	var result []*ast.VariableDeclarator
	for _, variable := range variables {
		if !overridden[variable] {
			result = append(result, variable)
		}
	}
	return result
}

// chainMembers returns the members of a chain: the backing field, if any,
// the public member, and the standalone members of the synthesized semantics.
// It also returns the index of the public member.
func (a *assembler) chainMembers(chain *Chain) ([]ast.MemberDeclaration, int) {
	declaration := chain.Declaration

	var result []ast.MemberDeclaration

	if chain.BackingField != nil {
		result = append(result, chain.BackingField)
		a.inject(chain, chain.First(), chain.BackingField, InjectionReasonBackingField)
	}

	publicIndex := len(result)
	public := publicMember(chain, a.body)
	a.labels.nameLabels(public)
	result = append(result, public)

	if declaration.Introduced {
		a.inject(chain, chain.First(), public, InjectionReasonIntroduction)
	}

	semantics := make([]*Semantic, 0, len(chain.Semantics)+1)
	semantics = append(semantics, chain.Empty)
	semantics = append(semantics, chain.Semantics...)

	for _, semantic := range semantics {
		if !a.analysis.IsSynthesized(semantic) {
			continue
		}

		reason := InjectionReasonCallSynthesized
		if !a.called[semantic.Key] && semantic.ForcedNotDiscardable {
			reason = InjectionReasonForcedNotDiscardable
		}

		name := a.names[semantic.Key]
		for _, member := range synthesizedMembers(declaration, semantic, name, a.body) {
			a.labels.nameLabels(member)
			result = append(result, member)
			a.inject(chain, semantic, member, reason)
		}
	}

	return result, publicIndex
}

func (a *assembler) inject(
	chain *Chain,
	semantic *Semantic,
	member ast.MemberDeclaration,
	reason InjectionReason,
) {
	a.injected = append(a.injected, InjectedMember{
		Declaration: chain.Declaration.ID,
		Semantic:    semantic.Key,
		Name:        memberName(member),
		Kind:        member.MemberKind(),
		Reason:      reason,
	})
}

func memberName(member ast.MemberDeclaration) string {
	names := member.MemberNames()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
