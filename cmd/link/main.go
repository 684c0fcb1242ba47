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

// A utility program that links the transformations of a job file
// into its compilation unit, and prints the linked unit.
//
// Usage: link [-output <path>] [-parallelism <n>] [-debug] [-no-color] <job.yaml>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/aspectlink/linker"
	"github.com/onflow/aspectlink/parser"
)

var outputFlag = flag.String("output", "", "write the linked unit to this path instead of stdout")
var parallelismFlag = flag.Int("parallelism", 0, "override the parallelism of the job")
var debugFlag = flag.Bool("debug", false, "log chains, decisions and injected members")
var noColorFlag = flag.Bool("no-color", false, "disable colored output")

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *debugFlag {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
		NoColor:    *noColorFlag,
	}
	log := zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()

	args := flag.Args()
	if len(args) != 1 {
		log.Fatal().Msg("usage: link [flags] <job.yaml>")
	}

	job, err := ReadJob(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read job")
	}
	if *parallelismFlag > 0 {
		job.Options.Parallelism = *parallelismFlag
	}

	var output io.WriteCloser = os.Stdout
	if *outputFlag != "" {
		output, err = os.Create(*outputFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create output")
		}
	}

	reporter := newReporter(os.Stderr, !*noColorFlag)

	ok := run(context.Background(), job, log, reporter, output)

	if err := output.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close output")
	}
	if !ok {
		os.Exit(1)
	}
}

// run links the job, writes the linked unit to the output,
// and reports errors and diagnostics. It returns false if the run failed.
func run(
	ctx context.Context,
	job *Job,
	log zerolog.Logger,
	reporter *reporter,
	output io.Writer,
) bool {
	path := job.SourcePath()

	code, err := os.ReadFile(path)
	if err != nil {
		reporter.reportError(err)
		return false
	}

	unit, err := parser.ParseCompilationUnit(path, code)
	if err != nil {
		reporter.reportError(err)
		return false
	}

	transformations, err := job.LinkerTransformations()
	if err != nil {
		reporter.reportError(err)
		return false
	}

	config := linker.DefaultConfig()
	config.Logger = log
	config.OnRecordTrace = func(operation string, duration time.Duration, attrs []attribute.KeyValue) {
		event := log.Info().
			Str("operation", operation).
			Dur("duration", duration)
		for _, attr := range attrs {
			event = event.Str(string(attr.Key), attr.Value.Emit())
		}
		event.Msg("trace")
	}
	if err := job.Options.Apply(config); err != nil {
		reporter.reportError(err)
		return false
	}

	log.Info().
		Str("path", path).
		Int("transformations", len(transformations)).
		Int("parallelism", config.Parallelism).
		Stringer("inlining", config.InliningPolicy).
		Msg("linking")

	result, err := linker.NewLinker(config).Link(ctx, unit, transformations)
	if err != nil {
		reporter.reportError(err)
		return false
	}

	for _, diagnostic := range result.Diagnostics {
		reporter.reportWarning(diagnostic)
	}

	for _, member := range result.InjectedMembers {
		log.Info().
			Stringer("declaration", member.Declaration).
			Str("name", member.Name).
			Stringer("reason", member.Reason).
			Msg("injected member")
	}

	if _, err := fmt.Fprintln(output, result.Unit.String()); err != nil {
		reporter.reportError(err)
		return false
	}

	return true
}
