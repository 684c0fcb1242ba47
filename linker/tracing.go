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
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const (
	tracingLinkPrefix = "link."

	tracingBuildChainsPostfix = "buildChains"
	tracingAnalyzePostfix     = "analyze"
	tracingRewritePostfix     = "rewrite"
	tracingAssemblePostfix    = "assemble"
)

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Tracer struct {
	// OnRecordTrace is triggered when a trace is recorded
	OnRecordTrace OnRecordTraceFunc
	// TracingEnabled determines if tracing is enabled.
	// Tracing reports the phases of a link run
	TracingEnabled bool
}

func (tracer Tracer) enabled() bool {
	return tracer.TracingEnabled && tracer.OnRecordTrace != nil
}

func (tracer Tracer) reportPhaseTrace(
	phase string,
	path string,
	duration time.Duration,
	attrs ...attribute.KeyValue,
) {
	tracer.OnRecordTrace(
		tracingLinkPrefix+phase,
		duration,
		append(
			[]attribute.KeyValue{
				attribute.String("path", path),
			},
			attrs...,
		),
	)
}
