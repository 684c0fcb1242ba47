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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/aspectlink/errors"
)

func TestRecoverErrors(t *testing.T) {

	t.Parallel()

	recovered := func(value any) (err error) {
		defer recoverErrors(func(recoveredErr error) {
			err = recoveredErr
		})
		panic(value)
	}

	t.Run("value", func(t *testing.T) {
		t.Parallel()

		err := recovered("broken")
		require.Error(t, err)
		assert.True(t, errors.IsInternal(err))
		assert.Equal(t, "broken", err.Error())
	})

	t.Run("other error", func(t *testing.T) {
		t.Parallel()

		cause := fmt.Errorf("index out of range")
		err := recovered(cause)
		assert.True(t, errors.IsInternal(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("user error", func(t *testing.T) {
		t.Parallel()

		linkErr := &LinkError{Path: "Test.cs"}
		err := recovered(linkErr)
		assert.Same(t, linkErr, err)
	})

	t.Run("internal error", func(t *testing.T) {
		t.Parallel()

		unreachable := errors.NewUnreachableError()
		err := recovered(unreachable)
		assert.Same(t, unreachable, err)
	})
}
