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

//go:generate go run golang.org/x/tools/cmd/stringer -type=AccessorKind -trimprefix=AccessorKind

// AccessorKind selects one body of a member that has several,
// e.g. the getter of a property.
type AccessorKind uint8

const (
	AccessorKindNone AccessorKind = iota
	AccessorKindGet
	AccessorKindSet
	AccessorKindInit
	AccessorKindAdd
	AccessorKindRemove
)

// AccessorKindFromKeyword returns the accessor kind for the given accessor keyword,
// and false if the keyword does not name an accessor.
func AccessorKindFromKeyword(keyword string) (AccessorKind, bool) {
	switch keyword {
	case "get":
		return AccessorKindGet, true
	case "set":
		return AccessorKindSet, true
	case "init":
		return AccessorKindInit, true
	case "add":
		return AccessorKindAdd, true
	case "remove":
		return AccessorKindRemove, true
	}

	return AccessorKindNone, false
}

func (k AccessorKind) Keyword() string {
	switch k {
	case AccessorKindGet:
		return "get"
	case AccessorKindSet:
		return "set"
	case AccessorKindInit:
		return "init"
	case AccessorKindAdd:
		return "add"
	case AccessorKindRemove:
		return "remove"
	}

	return ""
}

// HasValueParameter returns true if the accessor receives
// the implicit `value` parameter.
func (k AccessorKind) HasValueParameter() bool {
	switch k {
	case AccessorKindSet,
		AccessorKindInit,
		AccessorKindAdd,
		AccessorKindRemove:

		return true

	default:
		return false
	}
}

// ReturnsValue returns true if the accessor produces the member's value.
func (k AccessorKind) ReturnsValue() bool {
	return k == AccessorKindGet
}

func (k AccessorKind) IsEventAccessor() bool {
	return k == AccessorKindAdd || k == AccessorKindRemove
}
