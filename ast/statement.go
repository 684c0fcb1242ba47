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
)

type Statement interface {
	Element
	isStatement()
}

// embeddedStatementDoc returns the document of a statement nested in a control statement,
// e.g. the body of a loop: blocks go on the next line at the same indentation,
// other statements are indented.
func embeddedStatementDoc(statement Statement) prettier.Doc {
	if _, ok := statement.(*Block); ok {
		return prettier.Concat{
			prettier.HardLine{},
			statement.Doc(),
		}
	}
	return prettier.Indent{
		Doc: prettier.Concat{
			prettier.HardLine{},
			statement.Doc(),
		},
	}
}

// Block

type Block struct {
	Statements []Statement
	Range
}

var _ Statement = &Block{}

func NewBlock(statements ...Statement) *Block {
	return &Block{
		Statements: statements,
	}
}

func (*Block) isStatement() {}

func (*Block) ElementType() ElementType {
	return ElementTypeBlock
}

func (b *Block) Walk(walkChild func(Element)) {
	for _, statement := range b.Statements {
		walkChild(statement)
	}
}

var blockStartDoc prettier.Doc = prettier.Text("{")
var blockEndDoc prettier.Doc = prettier.Text("}")
var emptyBlockDoc prettier.Doc = prettier.Text("{ }")

func (b *Block) Doc() prettier.Doc {
	if b.IsEmpty() {
		return emptyBlockDoc
	}

	statementsDoc := prettier.Concat{}
	for _, statement := range b.Statements {
		statementsDoc = append(
			statementsDoc,
			prettier.HardLine{},
			statement.Doc(),
		)
	}

	return prettier.Concat{
		blockStartDoc,
		prettier.Indent{
			Doc: statementsDoc,
		},
		prettier.HardLine{},
		blockEndDoc,
	}
}

func (b *Block) IsEmpty() bool {
	return b == nil || len(b.Statements) == 0
}

func (b *Block) String() string {
	return Prettier(b)
}

// ExpressionStatement

type ExpressionStatement struct {
	Expression Expression
}

var _ Statement = &ExpressionStatement{}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{
		Expression: expression,
	}
}

func (*ExpressionStatement) isStatement() {}

func (*ExpressionStatement) ElementType() ElementType {
	return ElementTypeExpressionStatement
}

func (s *ExpressionStatement) StartPosition() Position {
	return s.Expression.StartPosition()
}

func (s *ExpressionStatement) EndPosition() Position {
	return s.Expression.EndPosition()
}

func (s *ExpressionStatement) Walk(walkChild func(Element)) {
	walkChild(s.Expression)
}

var semicolonDoc prettier.Doc = prettier.Text(";")

func (s *ExpressionStatement) Doc() prettier.Doc {
	return prettier.Concat{
		s.Expression.Doc(),
		semicolonDoc,
	}
}

// ReturnStatement

type ReturnStatement struct {
	Expression Expression
	Range
}

var _ Statement = &ReturnStatement{}

func NewReturnStatement(expression Expression) *ReturnStatement {
	return &ReturnStatement{
		Expression: expression,
	}
}

func (*ReturnStatement) isStatement() {}

func (*ReturnStatement) ElementType() ElementType {
	return ElementTypeReturnStatement
}

func (s *ReturnStatement) Walk(walkChild func(Element)) {
	if s.Expression != nil {
		walkChild(s.Expression)
	}
}

var returnKeywordDoc prettier.Doc = prettier.Text("return")

func (s *ReturnStatement) Doc() prettier.Doc {
	if s.Expression == nil {
		return prettier.Concat{
			returnKeywordDoc,
			semicolonDoc,
		}
	}
	return prettier.Concat{
		returnKeywordDoc,
		prettier.Space,
		s.Expression.Doc(),
		semicolonDoc,
	}
}

// IfStatement

type IfStatement struct {
	Test Expression
	Then Statement
	Else Statement
	Range
}

var _ Statement = &IfStatement{}

func (*IfStatement) isStatement() {}

func (*IfStatement) ElementType() ElementType {
	return ElementTypeIfStatement
}

func (s *IfStatement) Walk(walkChild func(Element)) {
	walkChild(s.Test)
	walkChild(s.Then)
	if s.Else != nil {
		walkChild(s.Else)
	}
}

var ifKeywordDoc prettier.Doc = prettier.Text("if (")
var elseKeywordDoc prettier.Doc = prettier.Text("else")

func (s *IfStatement) Doc() prettier.Doc {
	doc := prettier.Concat{
		ifKeywordDoc,
		s.Test.Doc(),
		prettier.Text(")"),
		embeddedStatementDoc(s.Then),
	}

	if s.Else == nil {
		return doc
	}

	doc = append(
		doc,
		prettier.HardLine{},
		elseKeywordDoc,
	)

	if elseIf, ok := s.Else.(*IfStatement); ok {
		return append(
			doc,
			prettier.Space,
			elseIf.Doc(),
		)
	}

	return append(doc, embeddedStatementDoc(s.Else))
}

// WhileStatement

type WhileStatement struct {
	Test Expression
	Body Statement
	Range
}

var _ Statement = &WhileStatement{}

func (*WhileStatement) isStatement() {}

func (*WhileStatement) ElementType() ElementType {
	return ElementTypeWhileStatement
}

func (s *WhileStatement) Walk(walkChild func(Element)) {
	walkChild(s.Test)
	walkChild(s.Body)
}

var whileKeywordDoc prettier.Doc = prettier.Text("while (")

func (s *WhileStatement) Doc() prettier.Doc {
	return prettier.Concat{
		whileKeywordDoc,
		s.Test.Doc(),
		prettier.Text(")"),
		embeddedStatementDoc(s.Body),
	}
}

// DoStatement

type DoStatement struct {
	Body Statement
	Test Expression
	Range
}

var _ Statement = &DoStatement{}

func (*DoStatement) isStatement() {}

func (*DoStatement) ElementType() ElementType {
	return ElementTypeDoStatement
}

func (s *DoStatement) Walk(walkChild func(Element)) {
	walkChild(s.Body)
	walkChild(s.Test)
}

var doKeywordDoc prettier.Doc = prettier.Text("do")

func (s *DoStatement) Doc() prettier.Doc {
	return prettier.Concat{
		doKeywordDoc,
		embeddedStatementDoc(s.Body),
		prettier.HardLine{},
		whileKeywordDoc,
		s.Test.Doc(),
		prettier.Text(");"),
	}
}

// ForEachStatement

type ForEachStatement struct {
	Type       *TypeReference
	Identifier string
	Collection Expression
	Body       Statement
	Range
}

var _ Statement = &ForEachStatement{}

func (*ForEachStatement) isStatement() {}

func (*ForEachStatement) ElementType() ElementType {
	return ElementTypeForEachStatement
}

func (s *ForEachStatement) Walk(walkChild func(Element)) {
	walkChild(s.Type)
	walkChild(s.Collection)
	walkChild(s.Body)
}

var foreachKeywordDoc prettier.Doc = prettier.Text("foreach (")

func (s *ForEachStatement) Doc() prettier.Doc {
	return prettier.Concat{
		foreachKeywordDoc,
		s.Type.Doc(),
		prettier.Space,
		prettier.Text(s.Identifier),
		prettier.Text(" in "),
		s.Collection.Doc(),
		prettier.Text(")"),
		embeddedStatementDoc(s.Body),
	}
}

// Label is the target of goto statements.
// Labels are compared by identity; labels synthesized by the linker
// have no name until they are numbered.
type Label struct {
	Name string
}

func NewLabel(name string) *Label {
	return &Label{
		Name: name,
	}
}

// LabeledStatement

type LabeledStatement struct {
	Label     *Label
	Statement Statement
	Range
}

var _ Statement = &LabeledStatement{}

func NewLabeledStatement(label *Label, statement Statement) *LabeledStatement {
	return &LabeledStatement{
		Label:     label,
		Statement: statement,
	}
}

func (*LabeledStatement) isStatement() {}

func (*LabeledStatement) ElementType() ElementType {
	return ElementTypeLabeledStatement
}

func (s *LabeledStatement) Walk(walkChild func(Element)) {
	walkChild(s.Statement)
}

func (s *LabeledStatement) Doc() prettier.Doc {
	labelDoc := prettier.Text(s.Label.Name + ":")
	if _, ok := s.Statement.(*EmptyStatement); ok {
		return prettier.Concat{
			labelDoc,
			prettier.Space,
			semicolonDoc,
		}
	}
	return prettier.Concat{
		labelDoc,
		prettier.HardLine{},
		s.Statement.Doc(),
	}
}

// GotoStatement

type GotoStatement struct {
	Label *Label
	Range
}

var _ Statement = &GotoStatement{}

func NewGotoStatement(label *Label) *GotoStatement {
	return &GotoStatement{
		Label: label,
	}
}

func (*GotoStatement) isStatement() {}

func (*GotoStatement) ElementType() ElementType {
	return ElementTypeGotoStatement
}

func (*GotoStatement) Walk(_ func(Element)) {
	// NO-OP
}

func (s *GotoStatement) Doc() prettier.Doc {
	return prettier.Text("goto " + s.Label.Name + ";")
}

// BreakStatement

type BreakStatement struct {
	Range
}

var _ Statement = &BreakStatement{}

func (*BreakStatement) isStatement() {}

func (*BreakStatement) ElementType() ElementType {
	return ElementTypeBreakStatement
}

func (*BreakStatement) Walk(_ func(Element)) {
	// NO-OP
}

var breakStatementDoc prettier.Doc = prettier.Text("break;")

func (*BreakStatement) Doc() prettier.Doc {
	return breakStatementDoc
}

// ContinueStatement

type ContinueStatement struct {
	Range
}

var _ Statement = &ContinueStatement{}

func (*ContinueStatement) isStatement() {}

func (*ContinueStatement) ElementType() ElementType {
	return ElementTypeContinueStatement
}

func (*ContinueStatement) Walk(_ func(Element)) {
	// NO-OP
}

var continueStatementDoc prettier.Doc = prettier.Text("continue;")

func (*ContinueStatement) Doc() prettier.Doc {
	return continueStatementDoc
}

// EmptyStatement

type EmptyStatement struct {
	Range
}

var _ Statement = &EmptyStatement{}

func (*EmptyStatement) isStatement() {}

func (*EmptyStatement) ElementType() ElementType {
	return ElementTypeEmptyStatement
}

func (*EmptyStatement) Walk(_ func(Element)) {
	// NO-OP
}

func (*EmptyStatement) Doc() prettier.Doc {
	return semicolonDoc
}

// LocalDeclarationStatement

type LocalDeclarationStatement struct {
	Type       *TypeReference
	Identifier string
	Value      Expression
	Range
}

var _ Statement = &LocalDeclarationStatement{}

func (*LocalDeclarationStatement) isStatement() {}

func (*LocalDeclarationStatement) ElementType() ElementType {
	return ElementTypeLocalDeclarationStatement
}

func (s *LocalDeclarationStatement) Walk(walkChild func(Element)) {
	walkChild(s.Type)
	if s.Value != nil {
		walkChild(s.Value)
	}
}

func (s *LocalDeclarationStatement) Doc() prettier.Doc {
	doc := prettier.Concat{
		s.Type.Doc(),
		prettier.Space,
		prettier.Text(s.Identifier),
	}
	if s.Value != nil {
		doc = append(
			doc,
			prettier.Text(" = "),
			s.Value.Doc(),
		)
	}
	return append(doc, semicolonDoc)
}

// ThrowStatement

type ThrowStatement struct {
	Expression Expression
	Range
}

var _ Statement = &ThrowStatement{}

func (*ThrowStatement) isStatement() {}

func (*ThrowStatement) ElementType() ElementType {
	return ElementTypeThrowStatement
}

func (s *ThrowStatement) Walk(walkChild func(Element)) {
	if s.Expression != nil {
		walkChild(s.Expression)
	}
}

var throwKeywordDoc prettier.Doc = prettier.Text("throw")

func (s *ThrowStatement) Doc() prettier.Doc {
	if s.Expression == nil {
		return prettier.Concat{
			throwKeywordDoc,
			semicolonDoc,
		}
	}
	return prettier.Concat{
		throwKeywordDoc,
		prettier.Space,
		s.Expression.Doc(),
		semicolonDoc,
	}
}
