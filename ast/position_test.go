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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Shifted(t *testing.T) {

	t.Parallel()

	assert.Equal(t,
		Position{Offset: 7, Line: 2, Column: 5},
		Position{Offset: 4, Line: 2, Column: 2}.Shifted(3),
	)
}

func TestPosition_Compare(t *testing.T) {

	t.Parallel()

	first := NewPosition(1, 1, 1)
	second := NewPosition(10, 2, 0)

	assert.Equal(t, -1, first.Compare(second))
	assert.Equal(t, 1, second.Compare(first))
	assert.Equal(t, 0, first.Compare(first))
}

func TestRange_IsSynthesized(t *testing.T) {

	t.Parallel()

	assert.True(t, EmptyRange.IsSynthesized())
	assert.True(t, NewIdentifierExpression("x").IsSynthesized())
	assert.False(t,
		NewRange(
			NewPosition(0, 1, 0),
			NewPosition(2, 1, 2),
		).IsSynthesized(),
	)
}
