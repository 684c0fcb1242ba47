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

package main

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora/v4"

	"github.com/onflow/aspectlink/errors"
	"github.com/onflow/aspectlink/linker"
)

// reporter prints errors and warnings, optionally colored.
type reporter struct {
	out    io.Writer
	colors *aurora.Aurora
}

func newReporter(out io.Writer, colors bool) *reporter {
	return &reporter{
		out:    out,
		colors: aurora.New(aurora.WithColors(colors)),
	}
}

// reportError prints the given error.
// The errors of a failed link run are printed one by one.
func (r *reporter) reportError(err error) {
	label := "error"
	if errors.IsInternal(err) {
		label = "internal error"
	}
	r.report(r.colors.Colorize(label, aurora.RedFg|aurora.BrightFg|aurora.BoldFm), err)
}

func (r *reporter) reportWarning(err error) {
	r.report(r.colors.Colorize("warning", aurora.YellowFg|aurora.BrightFg|aurora.BoldFm), err)
}

func (r *reporter) report(prefix aurora.Value, err error) {
	if linkErr, ok := err.(*linker.LinkError); ok {
		for _, child := range linkErr.ChildErrors() {
			r.report(prefix, child)
		}
		return
	}

	_, _ = fmt.Fprintf(r.out, "%s: %s\n", prefix, errors.Messages(err))
}
