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
	"bytes"
	"strings"

	"github.com/turbolent/prettier"
)

// Comments are the comments attached to a member or type declaration.
// Leading comments, including documentation, precede the declaration,
// trailing comments follow it on the same line.
type Comments struct {
	Leading  []*Comment `json:",omitempty"`
	Trailing []*Comment `json:",omitempty"`
}

// All combines Leading and Trailing comments in a single array.
func (c Comments) All() []*Comment {
	var comments []*Comment
	comments = append(comments, c.Leading...)
	comments = append(comments, c.Trailing...)
	return comments
}

func (c Comments) IsEmpty() bool {
	return len(c.Leading) == 0 && len(c.Trailing) == 0
}

// LeadingOnly returns a copy containing only the leading comments.
func (c Comments) LeadingOnly() Comments {
	return Comments{Leading: c.Leading}
}

// TrailingOnly returns a copy containing only the trailing comments.
func (c Comments) TrailingOnly() Comments {
	return Comments{Trailing: c.Trailing}
}

// LeadingDocString prints the leading doc comments to string
func (c Comments) LeadingDocString() string {
	var s strings.Builder
	for _, comment := range c.Leading {
		if comment.IsDoc() {
			if s.Len() > 0 {
				s.WriteRune('\n')
			}
			s.Write(bytes.TrimSpace(comment.Text()))
		}
	}
	return s.String()
}

// LeadingDoc returns the leading comments, each followed by a line break.
func (c Comments) LeadingDoc() prettier.Doc {
	if len(c.Leading) == 0 {
		return nil
	}

	doc := make(prettier.Concat, 0, len(c.Leading)*2)
	for _, comment := range c.Leading {
		doc = append(
			doc,
			prettier.Text(comment.String()),
			prettier.HardLine{},
		)
	}
	return doc
}

// TrailingDoc returns the trailing comments, separated from the declaration by a space.
func (c Comments) TrailingDoc() prettier.Doc {
	if len(c.Trailing) == 0 {
		return nil
	}

	doc := make(prettier.Concat, 0, len(c.Trailing)*2)
	for _, comment := range c.Trailing {
		doc = append(
			doc,
			prettier.Space,
			prettier.Text(comment.String()),
		)
	}
	return doc
}

// WrapDoc surrounds the given declaration document with the comments.
func (c Comments) WrapDoc(doc prettier.Doc) prettier.Doc {
	if c.IsEmpty() {
		return doc
	}

	result := prettier.Concat{}
	if leading := c.LeadingDoc(); leading != nil {
		result = append(result, leading)
	}
	result = append(result, doc)
	if trailing := c.TrailingDoc(); trailing != nil {
		result = append(result, trailing)
	}
	return result
}

type Comment struct {
	source []byte
}

func NewComment(source []byte) *Comment {
	return &Comment{
		source: source,
	}
}

var blockCommentDocStringPrefix = []byte("/**")
var blockCommentStringPrefix = []byte("/*")
var lineCommentDocStringPrefix = []byte("///")
var lineCommentStringPrefix = []byte("//")
var blockCommentStringSuffix = []byte("*/")

func (c Comment) Multiline() bool {
	return bytes.HasPrefix(c.source, blockCommentStringPrefix)
}

func (c Comment) IsDoc() bool {
	if c.Multiline() {
		return bytes.HasPrefix(c.source, blockCommentDocStringPrefix)
	} else {
		return bytes.HasPrefix(c.source, lineCommentDocStringPrefix)
	}
}

var commentPrefixes = [][]byte{
	blockCommentDocStringPrefix, // must be before blockCommentStringPrefix
	blockCommentStringPrefix,
	lineCommentDocStringPrefix, // must be before lineCommentStringPrefix
	lineCommentStringPrefix,
}

var commentSuffixes = [][]byte{
	blockCommentStringSuffix,
}

func (c Comment) String() string {
	return string(c.source)
}

// Text without opening/closing comment characters /*, /**, */, //
func (c Comment) Text() []byte {
	withoutPrefixes := cutOptionalPrefixes(c.source, commentPrefixes)
	return cutOptionalSuffixes(withoutPrefixes, commentSuffixes)
}

func (c Comment) MarshalText() ([]byte, error) {
	return c.source, nil
}

func cutOptionalPrefixes(input []byte, prefixes [][]byte) (output []byte) {
	output = input
	for _, prefix := range prefixes {
		cut, _ := bytes.CutPrefix(output, prefix)
		output = cut
	}
	return
}

func cutOptionalSuffixes(input []byte, suffixes [][]byte) (output []byte) {
	output = input
	for _, suffix := range suffixes {
		cut, _ := bytes.CutSuffix(output, suffix)
		output = cut
	}
	return
}
