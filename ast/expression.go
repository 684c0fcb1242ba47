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
	"strconv"
	"strings"

	"github.com/turbolent/prettier"
)

type Expression interface {
	Element
	isExpression()
	precedence() precedence
}

// parenthesizedExpressionDoc returns the document of the given expression,
// wrapped in parentheses if its precedence is lower than the required one.
func parenthesizedExpressionDoc(expression Expression, required precedence) prettier.Doc {
	doc := expression.Doc()
	if expression.precedence() >= required {
		return doc
	}
	return prettier.Concat{
		prettier.Text("("),
		doc,
		prettier.Text(")"),
	}
}

func argumentsDoc(open, close string, arguments []Expression) prettier.Doc {
	argumentDocs := make([]prettier.Doc, len(arguments))
	for i, argument := range arguments {
		argumentDocs[i] = argument.Doc()
	}
	return prettier.Concat{
		prettier.Text(open),
		joinDocs(commaSeparatorDoc, argumentDocs),
		prettier.Text(close),
	}
}

func walkExpressions(walkChild func(Element), expressions []Expression) {
	for _, expression := range expressions {
		walkChild(expression)
	}
}

// IdentifierExpression

type IdentifierExpression struct {
	Identifier string
	Range
}

var _ Expression = &IdentifierExpression{}

func NewIdentifierExpression(identifier string) *IdentifierExpression {
	return &IdentifierExpression{
		Identifier: identifier,
	}
}

func (*IdentifierExpression) isExpression() {}

func (*IdentifierExpression) ElementType() ElementType {
	return ElementTypeIdentifierExpression
}

func (*IdentifierExpression) Walk(_ func(Element)) {
	// NO-OP
}

func (e *IdentifierExpression) Doc() prettier.Doc {
	return prettier.Text(e.Identifier)
}

func (*IdentifierExpression) precedence() precedence {
	return precedencePrimary
}

// ThisExpression

const ThisKeyword = "this"

type ThisExpression struct {
	Range
}

var _ Expression = &ThisExpression{}

func (*ThisExpression) isExpression() {}

func (*ThisExpression) ElementType() ElementType {
	return ElementTypeThisExpression
}

func (*ThisExpression) Walk(_ func(Element)) {
	// NO-OP
}

var thisExpressionDoc prettier.Doc = prettier.Text(ThisKeyword)

func (*ThisExpression) Doc() prettier.Doc {
	return thisExpressionDoc
}

func (*ThisExpression) precedence() precedence {
	return precedencePrimary
}

// DiscardExpression is the `_` designation on the left-hand side of an assignment.

const DiscardIdentifier = "_"

type DiscardExpression struct {
	Range
}

var _ Expression = &DiscardExpression{}

func (*DiscardExpression) isExpression() {}

func (*DiscardExpression) ElementType() ElementType {
	return ElementTypeDiscardExpression
}

func (*DiscardExpression) Walk(_ func(Element)) {
	// NO-OP
}

var discardExpressionDoc prettier.Doc = prettier.Text(DiscardIdentifier)

func (*DiscardExpression) Doc() prettier.Doc {
	return discardExpressionDoc
}

func (*DiscardExpression) precedence() precedence {
	return precedencePrimary
}

// LiteralExpression

type LiteralKind uint8

const (
	LiteralKindUnknown LiteralKind = iota
	LiteralKindInteger
	LiteralKindString
	LiteralKindBoolean
	LiteralKindNull
)

// LiteralExpression is an integer, string, boolean or null literal.
// Value holds the literal text, except for strings, where it holds the unquoted content.
type LiteralExpression struct {
	Kind  LiteralKind
	Value string
	Range
}

var _ Expression = &LiteralExpression{}

func (*LiteralExpression) isExpression() {}

func (*LiteralExpression) ElementType() ElementType {
	return ElementTypeLiteralExpression
}

func (*LiteralExpression) Walk(_ func(Element)) {
	// NO-OP
}

func (e *LiteralExpression) Doc() prettier.Doc {
	if e.Kind == LiteralKindString {
		return prettier.Text(QuoteString(e.Value))
	}
	return prettier.Text(e.Value)
}

func (*LiteralExpression) precedence() precedence {
	return precedencePrimary
}

func QuoteString(s string) string {
	return strconv.Quote(s)
}

// DefaultExpression is `default` or `default(T)`.

type DefaultExpression struct {
	Type *TypeReference
	Range
}

var _ Expression = &DefaultExpression{}

func NewDefaultExpression(typ *TypeReference) *DefaultExpression {
	return &DefaultExpression{
		Type: typ,
	}
}

func (*DefaultExpression) isExpression() {}

func (*DefaultExpression) ElementType() ElementType {
	return ElementTypeDefaultExpression
}

func (e *DefaultExpression) Walk(walkChild func(Element)) {
	if e.Type != nil {
		walkChild(e.Type)
	}
}

var defaultKeywordDoc prettier.Doc = prettier.Text("default")

func (e *DefaultExpression) Doc() prettier.Doc {
	if e.Type == nil {
		return defaultKeywordDoc
	}
	return prettier.Concat{
		defaultKeywordDoc,
		prettier.Text("("),
		e.Type.Doc(),
		prettier.Text(")"),
	}
}

func (*DefaultExpression) precedence() precedence {
	return precedencePrimary
}

// MemberAccessExpression

type MemberAccessExpression struct {
	Target Expression
	Name   string
	Range
}

var _ Expression = &MemberAccessExpression{}

func NewMemberAccessExpression(target Expression, name string) *MemberAccessExpression {
	return &MemberAccessExpression{
		Target: target,
		Name:   name,
	}
}

func (*MemberAccessExpression) isExpression() {}

func (*MemberAccessExpression) ElementType() ElementType {
	return ElementTypeMemberAccessExpression
}

func (e *MemberAccessExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
}

func (e *MemberAccessExpression) Doc() prettier.Doc {
	return prettier.Concat{
		parenthesizedExpressionDoc(e.Target, precedencePrimary),
		prettier.Text("."),
		prettier.Text(e.Name),
	}
}

func (*MemberAccessExpression) precedence() precedence {
	return precedencePrimary
}

// InvocationExpression

type InvocationExpression struct {
	Target    Expression
	Arguments []Expression
	Range
}

var _ Expression = &InvocationExpression{}

func NewInvocationExpression(target Expression, arguments ...Expression) *InvocationExpression {
	return &InvocationExpression{
		Target:    target,
		Arguments: arguments,
	}
}

func (*InvocationExpression) isExpression() {}

func (*InvocationExpression) ElementType() ElementType {
	return ElementTypeInvocationExpression
}

func (e *InvocationExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
	walkExpressions(walkChild, e.Arguments)
}

func (e *InvocationExpression) Doc() prettier.Doc {
	return prettier.Concat{
		parenthesizedExpressionDoc(e.Target, precedencePrimary),
		argumentsDoc("(", ")", e.Arguments),
	}
}

func (*InvocationExpression) precedence() precedence {
	return precedencePrimary
}

// ElementAccessExpression is an indexer access, e.g. `a[i]`.

type ElementAccessExpression struct {
	Target    Expression
	Arguments []Expression
	Range
}

var _ Expression = &ElementAccessExpression{}

func (*ElementAccessExpression) isExpression() {}

func (*ElementAccessExpression) ElementType() ElementType {
	return ElementTypeElementAccessExpression
}

func (e *ElementAccessExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
	walkExpressions(walkChild, e.Arguments)
}

func (e *ElementAccessExpression) Doc() prettier.Doc {
	return prettier.Concat{
		parenthesizedExpressionDoc(e.Target, precedencePrimary),
		argumentsDoc("[", "]", e.Arguments),
	}
}

func (*ElementAccessExpression) precedence() precedence {
	return precedencePrimary
}

// AssignmentExpression

type AssignmentExpression struct {
	Operation AssignmentOperation
	Target    Expression
	Value     Expression
	Range
}

var _ Expression = &AssignmentExpression{}

func NewAssignmentExpression(
	operation AssignmentOperation,
	target Expression,
	value Expression,
) *AssignmentExpression {
	return &AssignmentExpression{
		Operation: operation,
		Target:    target,
		Value:     value,
	}
}

func (*AssignmentExpression) isExpression() {}

func (*AssignmentExpression) ElementType() ElementType {
	return ElementTypeAssignmentExpression
}

func (e *AssignmentExpression) Walk(walkChild func(Element)) {
	walkChild(e.Target)
	walkChild(e.Value)
}

func (e *AssignmentExpression) Doc() prettier.Doc {
	return prettier.Concat{
		parenthesizedExpressionDoc(e.Target, precedenceUnary),
		prettier.Space,
		prettier.Text(e.Operation.Symbol()),
		prettier.Space,
		// right associative
		parenthesizedExpressionDoc(e.Value, precedenceAssignment),
	}
}

func (*AssignmentExpression) precedence() precedence {
	return precedenceAssignment
}

// IsDiscard returns true for `_ = value`.
func (e *AssignmentExpression) IsDiscard() bool {
	_, ok := e.Target.(*DiscardExpression)
	return ok && e.Operation.IsSimple()
}

// BinaryExpression

type BinaryExpression struct {
	Operation BinaryOperation
	Left      Expression
	Right     Expression
	Range
}

var _ Expression = &BinaryExpression{}

func (*BinaryExpression) isExpression() {}

func (*BinaryExpression) ElementType() ElementType {
	return ElementTypeBinaryExpression
}

func (e *BinaryExpression) Walk(walkChild func(Element)) {
	walkChild(e.Left)
	walkChild(e.Right)
}

func (e *BinaryExpression) Doc() prettier.Doc {
	own := e.precedence()

	leftRequired := own
	rightRequired := own + 1
	if e.Operation == BinaryOperationCoalesce {
		// right associative
		leftRequired = own + 1
		rightRequired = own
	}

	return prettier.Concat{
		parenthesizedExpressionDoc(e.Left, leftRequired),
		prettier.Space,
		prettier.Text(e.Operation.Symbol()),
		prettier.Space,
		parenthesizedExpressionDoc(e.Right, rightRequired),
	}
}

func (e *BinaryExpression) precedence() precedence {
	return e.Operation.precedence()
}

// UnaryExpression

type UnaryExpression struct {
	Operation  UnaryOperation
	Expression Expression
	Range
}

var _ Expression = &UnaryExpression{}

func (*UnaryExpression) isExpression() {}

func (*UnaryExpression) ElementType() ElementType {
	return ElementTypeUnaryExpression
}

func (e *UnaryExpression) Walk(walkChild func(Element)) {
	walkChild(e.Expression)
}

func (e *UnaryExpression) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text(e.Operation.Symbol()),
		parenthesizedExpressionDoc(e.Expression, precedenceUnary),
	}
}

func (*UnaryExpression) precedence() precedence {
	return precedenceUnary
}

// CastExpression

type CastExpression struct {
	Type       *TypeReference
	Expression Expression
	Range
}

var _ Expression = &CastExpression{}

func (*CastExpression) isExpression() {}

func (*CastExpression) ElementType() ElementType {
	return ElementTypeCastExpression
}

func (e *CastExpression) Walk(walkChild func(Element)) {
	walkChild(e.Type)
	walkChild(e.Expression)
}

func (e *CastExpression) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("("),
		e.Type.Doc(),
		prettier.Text(")"),
		parenthesizedExpressionDoc(e.Expression, precedenceUnary),
	}
}

func (*CastExpression) precedence() precedence {
	return precedenceUnary
}

// ParenthesizedExpression

type ParenthesizedExpression struct {
	Expression Expression
	Range
}

var _ Expression = &ParenthesizedExpression{}

func (*ParenthesizedExpression) isExpression() {}

func (*ParenthesizedExpression) ElementType() ElementType {
	return ElementTypeParenthesizedExpression
}

func (e *ParenthesizedExpression) Walk(walkChild func(Element)) {
	walkChild(e.Expression)
}

func (e *ParenthesizedExpression) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("("),
		e.Expression.Doc(),
		prettier.Text(")"),
	}
}

func (*ParenthesizedExpression) precedence() precedence {
	return precedencePrimary
}

// Unparenthesized returns the expression without any enclosing parentheses.
func Unparenthesized(expression Expression) Expression {
	for {
		parenthesized, ok := expression.(*ParenthesizedExpression)
		if !ok {
			return expression
		}
		expression = parenthesized.Expression
	}
}

// ConditionalExpression

type ConditionalExpression struct {
	Test Expression
	Then Expression
	Else Expression
	Range
}

var _ Expression = &ConditionalExpression{}

func (*ConditionalExpression) isExpression() {}

func (*ConditionalExpression) ElementType() ElementType {
	return ElementTypeConditionalExpression
}

func (e *ConditionalExpression) Walk(walkChild func(Element)) {
	walkChild(e.Test)
	walkChild(e.Then)
	walkChild(e.Else)
}

func (e *ConditionalExpression) Doc() prettier.Doc {
	return prettier.Concat{
		parenthesizedExpressionDoc(e.Test, precedenceConditional+1),
		prettier.Text(" ? "),
		parenthesizedExpressionDoc(e.Then, precedenceConditional),
		prettier.Text(" : "),
		// right associative
		parenthesizedExpressionDoc(e.Else, precedenceConditional),
	}
}

func (*ConditionalExpression) precedence() precedence {
	return precedenceConditional
}

// InterpolatedStringExpression is `$"text{expression}text"`.
// Texts always has one element more than Expressions:
// the text before, between and after the interpolated expressions.
type InterpolatedStringExpression struct {
	Texts       []string
	Expressions []Expression
	Range
}

var _ Expression = &InterpolatedStringExpression{}

func (*InterpolatedStringExpression) isExpression() {}

func (*InterpolatedStringExpression) ElementType() ElementType {
	return ElementTypeInterpolatedStringExpression
}

func (e *InterpolatedStringExpression) Walk(walkChild func(Element)) {
	walkExpressions(walkChild, e.Expressions)
}

func (e *InterpolatedStringExpression) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(`$"`),
	}
	for i, text := range e.Texts {
		doc = append(doc, prettier.Text(escapeInterpolatedText(text)))
		if i < len(e.Expressions) {
			doc = append(
				doc,
				prettier.Text("{"),
				e.Expressions[i].Doc(),
				prettier.Text("}"),
			)
		}
	}
	return append(doc, prettier.Text(`"`))
}

func escapeInterpolatedText(text string) string {
	quoted := strconv.Quote(text)
	quoted = quoted[1 : len(quoted)-1]
	quoted = strings.ReplaceAll(quoted, "{", "{{")
	return strings.ReplaceAll(quoted, "}", "}}")
}

func (*InterpolatedStringExpression) precedence() precedence {
	return precedencePrimary
}

// NewExpression

type NewExpression struct {
	Type      *TypeReference
	Arguments []Expression
	Range
}

var _ Expression = &NewExpression{}

func (*NewExpression) isExpression() {}

func (*NewExpression) ElementType() ElementType {
	return ElementTypeNewExpression
}

func (e *NewExpression) Walk(walkChild func(Element)) {
	walkChild(e.Type)
	walkExpressions(walkChild, e.Arguments)
}

var newKeywordSpaceDoc prettier.Doc = prettier.Text("new ")

func (e *NewExpression) Doc() prettier.Doc {
	return prettier.Concat{
		newKeywordSpaceDoc,
		e.Type.Doc(),
		argumentsDoc("(", ")", e.Arguments),
	}
}

func (*NewExpression) precedence() precedence {
	return precedencePrimary
}
