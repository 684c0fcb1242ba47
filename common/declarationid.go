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

package common

import (
	"fmt"
	"strings"
)

// IndexerMemberName is the member name under which indexers are identified.
const IndexerMemberName = "this[]"

// DeclarationID identifies a member declaration independently of its syntax,
// so the identity is stable across all aspect layers.
//
// Signature disambiguates overloaded methods, e.g. `(int,string)`,
// and is empty for all other members.
type DeclarationID struct {
	Type      string
	Member    string
	Signature string
}

func NewDeclarationID(typeName string, member string) DeclarationID {
	return DeclarationID{
		Type:   typeName,
		Member: member,
	}
}

func NewMethodDeclarationID(typeName string, member string, parameterTypes []string) DeclarationID {
	return DeclarationID{
		Type:      typeName,
		Member:    member,
		Signature: FormatSignature(parameterTypes),
	}
}

// FormatSignature returns the canonical signature for the given parameter types.
// Whitespace inside the type names is removed.
func FormatSignature(parameterTypes []string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, parameterType := range parameterTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		for _, field := range strings.Fields(parameterType) {
			b.WriteString(field)
		}
	}
	b.WriteByte(')')
	return b.String()
}

func (id DeclarationID) IsZero() bool {
	return id == DeclarationID{}
}

// WithoutSignature returns the identifier of the member group the declaration belongs to.
func (id DeclarationID) WithoutSignature() DeclarationID {
	id.Signature = ""
	return id
}

func (id DeclarationID) String() string {
	var b strings.Builder
	if id.Type != "" {
		b.WriteString(id.Type)
		b.WriteByte('.')
	}
	b.WriteString(id.Member)
	b.WriteString(id.Signature)
	return b.String()
}

// ParseDeclarationID parses the string form of a declaration identifier,
// e.g. `C.Foo`, `Outer.Inner.Foo(int,string)` or `C.this[]`.
func ParseDeclarationID(s string) (DeclarationID, error) {
	s = strings.TrimSpace(s)

	var signature string
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return DeclarationID{}, fmt.Errorf("invalid declaration identifier %q: unterminated signature", s)
		}
		signature = s[open:]
		s = s[:open]
	}

	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return DeclarationID{}, fmt.Errorf("invalid declaration identifier %q: expected `Type.Member`", s)
	}

	if signature != "" {
		parts := strings.Split(signature[1:len(signature)-1], ",")
		parameterTypes := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				continue
			}
			parameterTypes = append(parameterTypes, part)
		}
		signature = FormatSignature(parameterTypes)
	}

	return DeclarationID{
		Type:      s[:dot],
		Member:    s[dot+1:],
		Signature: signature,
	}, nil
}

// ParameterTypes returns the parameter types of the signature,
// or nil if the identifier has no signature.
func (id DeclarationID) ParameterTypes() []string {
	if len(id.Signature) <= 2 {
		return nil
	}

	inner := id.Signature[1 : len(id.Signature)-1]

	var types []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				types = append(types, inner[start:i])
				start = i + 1
			}
		}
	}
	return append(types, inner[start:])
}
