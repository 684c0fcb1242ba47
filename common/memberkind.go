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

//go:generate go run golang.org/x/tools/cmd/stringer -type=MemberKind -trimprefix=MemberKind

// MemberKind is the kind of a member declaration a chain of semantics is attached to.
type MemberKind uint8

const (
	MemberKindUnknown MemberKind = iota
	MemberKindMethod
	MemberKindProperty
	MemberKindIndexer
	MemberKindEvent
	MemberKindEventField
	MemberKindField
)

func (k MemberKind) Name() string {
	switch k {
	case MemberKindMethod:
		return "method"
	case MemberKindProperty:
		return "property"
	case MemberKindIndexer:
		return "indexer"
	case MemberKindEvent:
		return "event"
	case MemberKindEventField:
		return "field-like event"
	case MemberKindField:
		return "field"
	}

	return "unknown"
}

// HasAccessors returns true if members of this kind
// expose their bodies through an accessor list.
func (k MemberKind) HasAccessors() bool {
	switch k {
	case MemberKindProperty,
		MemberKindIndexer,
		MemberKindEvent:

		return true

	default:
		return false
	}
}

// IsStorage returns true if members of this kind declare storage,
// i.e. have to be flattened into a backing field and accessors
// before they can be overridden.
func (k MemberKind) IsStorage() bool {
	switch k {
	case MemberKindField,
		MemberKindEventField:

		return true

	default:
		return false
	}
}

// IsEventLike returns true for events, with or without explicit accessors.
func (k MemberKind) IsEventLike() bool {
	return k == MemberKindEvent || k == MemberKindEventField
}
