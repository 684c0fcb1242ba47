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

// MemberDeclaration is a member of a type declaration.
//
// The set of member declarations is closed:
// MethodDeclaration, PropertyDeclaration, IndexerDeclaration,
// EventDeclaration, EventFieldDeclaration and FieldDeclaration.
type MemberDeclaration interface {
	Element
	isMemberDeclaration()
	MemberKind() common.MemberKind
	// MemberNames returns the names of the declared members:
	// one name for all kinds, except fields and field-like events,
	// which may declare several variables.
	MemberNames() []string
	MemberModifiers() Modifiers
	MemberComments() Comments
	// MemberType returns the return type of a method,
	// or the type of a property, indexer, event or field.
	MemberType() *TypeReference
}

// CompilationUnit

type CompilationUnit struct {
	Path   string
	Usings []string
	Types  []*TypeDeclaration
}

var _ Element = &CompilationUnit{}

func (*CompilationUnit) ElementType() ElementType {
	return ElementTypeCompilationUnit
}

func (*CompilationUnit) StartPosition() Position {
	return EmptyPosition
}

func (*CompilationUnit) EndPosition() Position {
	return EmptyPosition
}

func (u *CompilationUnit) Walk(walkChild func(Element)) {
	for _, typ := range u.Types {
		walkChild(typ)
	}
}

func (u *CompilationUnit) Doc() prettier.Doc {
	doc := prettier.Concat{}

	for _, using := range u.Usings {
		doc = append(
			doc,
			prettier.Text("using "+using+";"),
			prettier.HardLine{},
		)
	}

	for i, typ := range u.Types {
		if i > 0 {
			doc = append(doc, prettier.HardLine{})
		}
		doc = append(doc, typ.Doc())
	}

	return doc
}

func (u *CompilationUnit) String() string {
	return Prettier(u)
}

// TypeDeclaration

type TypeKind uint8

const (
	TypeKindClass TypeKind = iota
	TypeKindStruct
)

func (k TypeKind) Keyword() string {
	if k == TypeKindStruct {
		return "struct"
	}
	return "class"
}

type TypeDeclaration struct {
	Comments  Comments
	Modifiers Modifiers
	Kind      TypeKind
	Name      string
	Members   []MemberDeclaration
	Range
}

var _ Element = &TypeDeclaration{}

func (*TypeDeclaration) ElementType() ElementType {
	return ElementTypeTypeDeclaration
}

func (d *TypeDeclaration) Walk(walkChild func(Element)) {
	for _, member := range d.Members {
		walkChild(member)
	}
}

func (d *TypeDeclaration) Doc() prettier.Doc {
	membersDoc := prettier.Concat{}
	for _, member := range d.Members {
		membersDoc = append(
			membersDoc,
			prettier.HardLine{},
			member.Doc(),
		)
	}

	doc := prettier.Concat{
		d.Modifiers.Doc(),
		prettier.Text(d.Kind.Keyword()),
		prettier.Space,
		prettier.Text(d.Name),
		prettier.HardLine{},
		blockStartDoc,
	}

	if len(d.Members) > 0 {
		doc = append(
			doc,
			prettier.Indent{
				Doc: membersDoc,
			},
			prettier.HardLine{},
		)
	}

	return d.Comments.WrapDoc(append(doc, blockEndDoc))
}

// Parameter

type Parameter struct {
	Type *TypeReference
	Name string
	Range
}

var _ Element = &Parameter{}

func NewParameter(typ *TypeReference, name string) *Parameter {
	return &Parameter{
		Type: typ,
		Name: name,
	}
}

func (*Parameter) ElementType() ElementType {
	return ElementTypeParameter
}

func (p *Parameter) Walk(walkChild func(Element)) {
	walkChild(p.Type)
}

func (p *Parameter) Doc() prettier.Doc {
	return prettier.Concat{
		p.Type.Doc(),
		prettier.Space,
		prettier.Text(p.Name),
	}
}

func parametersDoc(open, close string, parameters []*Parameter) prettier.Doc {
	parameterDocs := make([]prettier.Doc, len(parameters))
	for i, parameter := range parameters {
		parameterDocs[i] = parameter.Doc()
	}
	return prettier.Concat{
		prettier.Text(open),
		joinDocs(commaSeparatorDoc, parameterDocs),
		prettier.Text(close),
	}
}

// ParameterNames returns the names of the given parameters, in order.
func ParameterNames(parameters []*Parameter) []string {
	names := make([]string, len(parameters))
	for i, parameter := range parameters {
		names[i] = parameter.Name
	}
	return names
}

// ParameterTypeNames returns the type names of the given parameters, in order.
func ParameterTypeNames(parameters []*Parameter) []string {
	names := make([]string, len(parameters))
	for i, parameter := range parameters {
		names[i] = parameter.Type.Name
	}
	return names
}

// MethodDeclaration

type MethodDeclaration struct {
	Comments   Comments
	Modifiers  Modifiers
	ReturnType *TypeReference
	Name       string
	Parameters []*Parameter
	// Body is nil for abstract methods
	Body *Block
	Range
}

var _ MemberDeclaration = &MethodDeclaration{}

func (*MethodDeclaration) isMemberDeclaration() {}

func (*MethodDeclaration) ElementType() ElementType {
	return ElementTypeMethodDeclaration
}

func (*MethodDeclaration) MemberKind() common.MemberKind {
	return common.MemberKindMethod
}

func (d *MethodDeclaration) MemberNames() []string {
	return []string{d.Name}
}

func (d *MethodDeclaration) MemberModifiers() Modifiers {
	return d.Modifiers
}

func (d *MethodDeclaration) MemberComments() Comments {
	return d.Comments
}

func (d *MethodDeclaration) MemberType() *TypeReference {
	return d.ReturnType
}

func (d *MethodDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.ReturnType)
	for _, parameter := range d.Parameters {
		walkChild(parameter)
	}
	if d.Body != nil {
		walkChild(d.Body)
	}
}

func (d *MethodDeclaration) Doc() prettier.Doc {
	doc := prettier.Concat{
		d.Modifiers.Doc(),
		d.ReturnType.Doc(),
		prettier.Space,
		prettier.Text(d.Name),
		parametersDoc("(", ")", d.Parameters),
	}

	if d.Body == nil {
		doc = append(doc, semicolonDoc)
	} else {
		doc = append(
			doc,
			prettier.HardLine{},
			d.Body.Doc(),
		)
	}

	return d.Comments.WrapDoc(doc)
}

func (d *MethodDeclaration) String() string {
	return Prettier(d)
}

// Accessor

type Accessor struct {
	Kind      common.AccessorKind
	Modifiers Modifiers
	// Body is nil for accessors of auto-properties
	Body *Block
	Range
}

var _ Element = &Accessor{}

func NewAccessor(kind common.AccessorKind, body *Block) *Accessor {
	return &Accessor{
		Kind: kind,
		Body: body,
	}
}

func (*Accessor) ElementType() ElementType {
	return ElementTypeAccessor
}

func (a *Accessor) Walk(walkChild func(Element)) {
	if a.Body != nil {
		walkChild(a.Body)
	}
}

func (a *Accessor) Doc() prettier.Doc {
	doc := prettier.Concat{
		a.Modifiers.Doc(),
		prettier.Text(a.Kind.Keyword()),
	}
	if a.Body == nil {
		return append(doc, semicolonDoc)
	}
	return append(
		doc,
		prettier.HardLine{},
		a.Body.Doc(),
	)
}

func (a *Accessor) IsAuto() bool {
	return a.Body == nil
}

// AccessorList is the accessor list of a property, indexer or event.
type AccessorList []*Accessor

// Get returns the accessor of the given kind, or nil.
func (l AccessorList) Get(kind common.AccessorKind) *Accessor {
	for _, accessor := range l {
		if accessor.Kind == kind {
			return accessor
		}
	}
	return nil
}

// IsAuto returns true if no accessor has a body.
func (l AccessorList) IsAuto() bool {
	for _, accessor := range l {
		if !accessor.IsAuto() {
			return false
		}
	}
	return len(l) > 0
}

func (l AccessorList) Doc() prettier.Doc {
	if l.IsAuto() {
		doc := prettier.Concat{
			prettier.Text("{"),
		}
		for _, accessor := range l {
			doc = append(
				doc,
				prettier.Space,
				accessor.Doc(),
			)
		}
		return append(doc, prettier.Text(" }"))
	}

	accessorsDoc := prettier.Concat{}
	for _, accessor := range l {
		accessorsDoc = append(
			accessorsDoc,
			prettier.HardLine{},
			accessor.Doc(),
		)
	}

	return prettier.Concat{
		blockStartDoc,
		prettier.Indent{
			Doc: accessorsDoc,
		},
		prettier.HardLine{},
		blockEndDoc,
	}
}

func accessorListSeparatorDoc(accessors AccessorList) prettier.Doc {
	if accessors.IsAuto() {
		return prettier.Space
	}
	return prettier.HardLine{}
}

// PropertyDeclaration

type PropertyDeclaration struct {
	Comments    Comments
	Modifiers   Modifiers
	Type        *TypeReference
	Name        string
	Accessors   AccessorList
	Initializer Expression
	Range
}

var _ MemberDeclaration = &PropertyDeclaration{}

func (*PropertyDeclaration) isMemberDeclaration() {}

func (*PropertyDeclaration) ElementType() ElementType {
	return ElementTypePropertyDeclaration
}

func (*PropertyDeclaration) MemberKind() common.MemberKind {
	return common.MemberKindProperty
}

func (d *PropertyDeclaration) MemberNames() []string {
	return []string{d.Name}
}

func (d *PropertyDeclaration) MemberModifiers() Modifiers {
	return d.Modifiers
}

func (d *PropertyDeclaration) MemberComments() Comments {
	return d.Comments
}

func (d *PropertyDeclaration) MemberType() *TypeReference {
	return d.Type
}

func (d *PropertyDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.Type)
	for _, accessor := range d.Accessors {
		walkChild(accessor)
	}
	if d.Initializer != nil {
		walkChild(d.Initializer)
	}
}

// IsAuto returns true for auto-properties, i.e. properties without accessor bodies.
func (d *PropertyDeclaration) IsAuto() bool {
	return d.Accessors.IsAuto()
}

func (d *PropertyDeclaration) Doc() prettier.Doc {
	doc := prettier.Concat{
		d.Modifiers.Doc(),
		d.Type.Doc(),
		prettier.Space,
		prettier.Text(d.Name),
		accessorListSeparatorDoc(d.Accessors),
		d.Accessors.Doc(),
	}

	if d.Initializer != nil {
		doc = append(
			doc,
			prettier.Text(" = "),
			d.Initializer.Doc(),
			semicolonDoc,
		)
	}

	return d.Comments.WrapDoc(doc)
}

func (d *PropertyDeclaration) String() string {
	return Prettier(d)
}

// IndexerDeclaration

type IndexerDeclaration struct {
	Comments   Comments
	Modifiers  Modifiers
	Type       *TypeReference
	Parameters []*Parameter
	Accessors  AccessorList
	Range
}

var _ MemberDeclaration = &IndexerDeclaration{}

func (*IndexerDeclaration) isMemberDeclaration() {}

func (*IndexerDeclaration) ElementType() ElementType {
	return ElementTypeIndexerDeclaration
}

func (*IndexerDeclaration) MemberKind() common.MemberKind {
	return common.MemberKindIndexer
}

func (*IndexerDeclaration) MemberNames() []string {
	return []string{common.IndexerMemberName}
}

func (d *IndexerDeclaration) MemberModifiers() Modifiers {
	return d.Modifiers
}

func (d *IndexerDeclaration) MemberComments() Comments {
	return d.Comments
}

func (d *IndexerDeclaration) MemberType() *TypeReference {
	return d.Type
}

func (d *IndexerDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.Type)
	for _, parameter := range d.Parameters {
		walkChild(parameter)
	}
	for _, accessor := range d.Accessors {
		walkChild(accessor)
	}
}

func (d *IndexerDeclaration) Doc() prettier.Doc {
	return d.Comments.WrapDoc(prettier.Concat{
		d.Modifiers.Doc(),
		d.Type.Doc(),
		prettier.Space,
		prettier.Text(ThisKeyword),
		parametersDoc("[", "]", d.Parameters),
		accessorListSeparatorDoc(d.Accessors),
		d.Accessors.Doc(),
	})
}

// EventDeclaration is an event with explicit add and remove accessors.

type EventDeclaration struct {
	Comments  Comments
	Modifiers Modifiers
	Type      *TypeReference
	Name      string
	Accessors AccessorList
	Range
}

var _ MemberDeclaration = &EventDeclaration{}

func (*EventDeclaration) isMemberDeclaration() {}

func (*EventDeclaration) ElementType() ElementType {
	return ElementTypeEventDeclaration
}

func (*EventDeclaration) MemberKind() common.MemberKind {
	return common.MemberKindEvent
}

func (d *EventDeclaration) MemberNames() []string {
	return []string{d.Name}
}

func (d *EventDeclaration) MemberModifiers() Modifiers {
	return d.Modifiers
}

func (d *EventDeclaration) MemberComments() Comments {
	return d.Comments
}

func (d *EventDeclaration) MemberType() *TypeReference {
	return d.Type
}

func (d *EventDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.Type)
	for _, accessor := range d.Accessors {
		walkChild(accessor)
	}
}

var eventKeywordSpaceDoc prettier.Doc = prettier.Text("event ")

func (d *EventDeclaration) Doc() prettier.Doc {
	return d.Comments.WrapDoc(prettier.Concat{
		d.Modifiers.Doc(),
		eventKeywordSpaceDoc,
		d.Type.Doc(),
		prettier.Space,
		prettier.Text(d.Name),
		prettier.HardLine{},
		d.Accessors.Doc(),
	})
}

// VariableDeclarator is one variable of a field or field-like event declaration.
type VariableDeclarator struct {
	Name        string
	Initializer Expression
	Range
}

var _ Element = &VariableDeclarator{}

func NewVariableDeclarator(name string, initializer Expression) *VariableDeclarator {
	return &VariableDeclarator{
		Name:        name,
		Initializer: initializer,
	}
}

func (*VariableDeclarator) ElementType() ElementType {
	return ElementTypeVariableDeclarator
}

func (v *VariableDeclarator) Walk(walkChild func(Element)) {
	if v.Initializer != nil {
		walkChild(v.Initializer)
	}
}

func (v *VariableDeclarator) Doc() prettier.Doc {
	if v.Initializer == nil {
		return prettier.Text(v.Name)
	}
	return prettier.Concat{
		prettier.Text(v.Name),
		prettier.Text(" = "),
		v.Initializer.Doc(),
	}
}

func variablesDoc(variables []*VariableDeclarator) prettier.Doc {
	variableDocs := make([]prettier.Doc, len(variables))
	for i, variable := range variables {
		variableDocs[i] = variable.Doc()
	}
	return joinDocs(commaSeparatorDoc, variableDocs)
}

func variableNames(variables []*VariableDeclarator) []string {
	names := make([]string, len(variables))
	for i, variable := range variables {
		names[i] = variable.Name
	}
	return names
}

// Variable returns the variable with the given name, or nil.
func variable(variables []*VariableDeclarator, name string) *VariableDeclarator {
	for _, variable := range variables {
		if variable.Name == name {
			return variable
		}
	}
	return nil
}

// EventFieldDeclaration is a field-like event, e.g. `public event EventHandler Changed;`.

type EventFieldDeclaration struct {
	Comments  Comments
	Modifiers Modifiers
	Type      *TypeReference
	Variables []*VariableDeclarator
	Range
}

var _ MemberDeclaration = &EventFieldDeclaration{}

func (*EventFieldDeclaration) isMemberDeclaration() {}

func (*EventFieldDeclaration) ElementType() ElementType {
	return ElementTypeEventFieldDeclaration
}

func (*EventFieldDeclaration) MemberKind() common.MemberKind {
	return common.MemberKindEventField
}

func (d *EventFieldDeclaration) MemberNames() []string {
	return variableNames(d.Variables)
}

func (d *EventFieldDeclaration) MemberModifiers() Modifiers {
	return d.Modifiers
}

func (d *EventFieldDeclaration) MemberComments() Comments {
	return d.Comments
}

func (d *EventFieldDeclaration) MemberType() *TypeReference {
	return d.Type
}

func (d *EventFieldDeclaration) Variable(name string) *VariableDeclarator {
	return variable(d.Variables, name)
}

func (d *EventFieldDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.Type)
	for _, variable := range d.Variables {
		walkChild(variable)
	}
}

func (d *EventFieldDeclaration) Doc() prettier.Doc {
	return d.Comments.WrapDoc(prettier.Concat{
		d.Modifiers.Doc(),
		eventKeywordSpaceDoc,
		d.Type.Doc(),
		prettier.Space,
		variablesDoc(d.Variables),
		semicolonDoc,
	})
}

// FieldDeclaration

type FieldDeclaration struct {
	Comments  Comments
	Modifiers Modifiers
	Type      *TypeReference
	Variables []*VariableDeclarator
	Range
}

var _ MemberDeclaration = &FieldDeclaration{}

func (*FieldDeclaration) isMemberDeclaration() {}

func (*FieldDeclaration) ElementType() ElementType {
	return ElementTypeFieldDeclaration
}

func (*FieldDeclaration) MemberKind() common.MemberKind {
	return common.MemberKindField
}

func (d *FieldDeclaration) MemberNames() []string {
	return variableNames(d.Variables)
}

func (d *FieldDeclaration) MemberModifiers() Modifiers {
	return d.Modifiers
}

func (d *FieldDeclaration) MemberComments() Comments {
	return d.Comments
}

func (d *FieldDeclaration) MemberType() *TypeReference {
	return d.Type
}

func (d *FieldDeclaration) Variable(name string) *VariableDeclarator {
	return variable(d.Variables, name)
}

func (d *FieldDeclaration) Walk(walkChild func(Element)) {
	walkChild(d.Type)
	for _, variable := range d.Variables {
		walkChild(variable)
	}
}

func (d *FieldDeclaration) Doc() prettier.Doc {
	return d.Comments.WrapDoc(prettier.Concat{
		d.Modifiers.Doc(),
		d.Type.Doc(),
		prettier.Space,
		variablesDoc(d.Variables),
		semicolonDoc,
	})
}

func (d *FieldDeclaration) String() string {
	return Prettier(d)
}

// MemberParameters returns the parameters of methods and indexers, and nil otherwise.
func MemberParameters(member MemberDeclaration) []*Parameter {
	switch member := member.(type) {
	case *MethodDeclaration:
		return member.Parameters
	case *IndexerDeclaration:
		return member.Parameters
	}
	return nil
}

// MemberAccessors returns the accessor list of properties, indexers and events,
// and nil otherwise.
func MemberAccessors(member MemberDeclaration) AccessorList {
	switch member := member.(type) {
	case *PropertyDeclaration:
		return member.Accessors
	case *IndexerDeclaration:
		return member.Accessors
	case *EventDeclaration:
		return member.Accessors
	}
	return nil
}
