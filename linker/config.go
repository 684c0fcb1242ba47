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
	"github.com/rs/zerolog"
)

// InliningPolicy decides which proceed references are considered for inlining.
type InliningPolicy uint8

const (
	// InlineAuto inlines every reference that can be inlined
	InlineAuto InliningPolicy = iota
	// InlineRequestedOnly only inlines references with an explicit `.inline` hint
	InlineRequestedOnly
)

func (p InliningPolicy) String() string {
	switch p {
	case InlineAuto:
		return "auto"
	case InlineRequestedOnly:
		return "requested-only"
	}
	return "unknown"
}

// InliningPolicyFromString returns the policy with the given name.
func InliningPolicyFromString(s string) (InliningPolicy, bool) {
	switch s {
	case "", "auto":
		return InlineAuto, true
	case "requested-only":
		return InlineRequestedOnly, true
	}
	return InlineAuto, false
}

// Config is the configuration of a linker.
type Config struct {
	Tracer
	// Logger receives debug logs about chains, decisions and injected members
	Logger zerolog.Logger
	// Parallelism is the maximum number of chains rewritten concurrently.
	// Values below 2 rewrite sequentially
	Parallelism    int
	InliningPolicy InliningPolicy
}

// DefaultConfig returns a configuration which logs nothing
// and rewrites chains sequentially.
func DefaultConfig() *Config {
	return &Config{
		Logger:      zerolog.Nop(),
		Parallelism: 1,
	}
}
