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
	"fmt"

	"go.uber.org/atomic"

	"github.com/onflow/aspectlink/ast"
)

const returnLabelPrefix = "__aspect_return_"

// LabelAllocator names the labels spliced bodies jump to.
type LabelAllocator struct {
	count atomic.Uint64
}

func (a *LabelAllocator) Next() string {
	return fmt.Sprintf("%s%d", returnLabelPrefix, a.count.Inc())
}

// Count returns the number of labels named so far.
func (a *LabelAllocator) Count() uint64 {
	return a.count.Load()
}

// nameLabels names the unnamed labels defined in the given element, in tree order.
// Jumps share the label of their target, so they are named along with it.
func (a *LabelAllocator) nameLabels(element ast.Element) {
	ast.Inspect(element, func(element ast.Element) bool {
		labeled, ok := element.(*ast.LabeledStatement)
		if ok && labeled.Label.Name == "" {
			labeled.Label.Name = a.Next()
		}
		return true
	})
}
