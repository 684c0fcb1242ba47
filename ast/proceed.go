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

package ast

import (
	"github.com/turbolent/prettier"

	"github.com/onflow/aspectlink/common"
)

const ProceedKeyword = "proceed"

// ProceedOrder is the static policy of a proceed reference.
type ProceedOrder uint8

const (
	// ProceedOrderDefault invokes the semantic immediately preceding the caller's layer.
	ProceedOrderDefault ProceedOrder = iota
	// ProceedOrderOriginal always invokes the first semantic of the chain.
	ProceedOrderOriginal
	// ProceedOrderFinal always invokes the semantic exposed under the declaration's name.
	ProceedOrderFinal
)

func (o ProceedOrder) Keyword() string {
	switch o {
	case ProceedOrderOriginal:
		return "original"
	case ProceedOrderFinal:
		return "final"
	}
	return ""
}

func (o ProceedOrder) String() string {
	switch o {
	case ProceedOrderOriginal:
		return "Original"
	case ProceedOrderFinal:
		return "Final"
	}
	return "Default"
}

// InlineHint tells whether inlining of a proceed reference was explicitly requested.
type InlineHint uint8

const (
	InlineHintAuto InlineHint = iota
	InlineHintInline
)

const InlineHintKeyword = "inline"

// ProceedExpression is the marker left by an aspect layer where the next layer,
// i.e. the predecessor semantic, has to be invoked.
//
// Target is the declaration whose chain is invoked; the zero value stands for
// the enclosing declaration. Accessor selects one accessor of the target;
// AccessorKindNone stands for the enclosing accessor.
// An empty argument list forwards the parameters of the enclosing member.
type ProceedExpression struct {
	Target    common.DeclarationID
	Accessor  common.AccessorKind
	Order     ProceedOrder
	Hint      InlineHint
	Arguments []Expression
	Range
}

var _ Expression = &ProceedExpression{}

func (*ProceedExpression) isExpression() {}

func (*ProceedExpression) ElementType() ElementType {
	return ElementTypeProceedExpression
}

func (e *ProceedExpression) Walk(walkChild func(Element)) {
	walkExpressions(walkChild, e.Arguments)
}

var proceedKeywordDoc prettier.Doc = prettier.Text(ProceedKeyword)

func (e *ProceedExpression) Doc() prettier.Doc {
	doc := prettier.Concat{
		proceedKeywordDoc,
	}

	if !e.Target.IsZero() {
		doc = append(
			doc,
			prettier.Text("<"),
			prettier.Text(e.Target.String()),
			prettier.Text(">"),
		)
	}

	if keyword := e.Order.Keyword(); keyword != "" {
		doc = append(doc, prettier.Text("."+keyword))
	}

	if e.Hint == InlineHintInline {
		doc = append(doc, prettier.Text("."+InlineHintKeyword))
	}

	if keyword := e.Accessor.Keyword(); keyword != "" {
		doc = append(doc, prettier.Text("."+keyword))
	}

	return append(doc, argumentsDoc("(", ")", e.Arguments))
}

func (*ProceedExpression) precedence() precedence {
	return precedencePrimary
}

// ForwardsParameters returns true if the reference passes the given parameters
// unchanged, i.e. has no arguments or exactly the parameter names in order.
func (e *ProceedExpression) ForwardsParameters(parameterNames []string) bool {
	if len(e.Arguments) == 0 {
		return true
	}

	if len(e.Arguments) != len(parameterNames) {
		return false
	}

	for i, argument := range e.Arguments {
		identifier, ok := Unparenthesized(argument).(*IdentifierExpression)
		if !ok || identifier.Identifier != parameterNames[i] {
			return false
		}
	}

	return true
}
