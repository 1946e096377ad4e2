// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/cfnhint/pkg/config"
	"github.com/walteh/cfnhint/pkg/diff"
	"github.com/walteh/cfnhint/pkg/document"
	"github.com/walteh/cfnhint/pkg/log"
	"github.com/walteh/cfnhint/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// stdinLabel labels the document read from standard input.
const stdinLabel = "stdin"

// 🔧 Options contains the collaborators for a run
type Options struct {
	// Config is the merged run configuration
	Config *config.Config
	// Stdin is the input stream for stdin mode
	Stdin io.Reader
	// Stdout receives document and diff output
	Stdout io.Writer
	// UI receives per-document user feedback
	UI *log.UserLogger
}

// 🏃 Runner orchestrates a whole run: input resolution, per-document
// processing, output emission, and outcome aggregation.
type Runner struct {
	opts     Options
	proc     *Processor
	renderer *diff.Renderer

	// outMu serializes stdout emission when documents are processed
	// concurrently.
	outMu sync.Mutex
}

// 🏭 NewRunner creates a runner with the given collaborators.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:     opts,
		proc:     NewProcessor(),
		renderer: diff.NewRenderer(),
	}
}

// 🎯 Run executes the run and returns the aggregate result. Documents
// are independent: recoverable per-document problems never abort the
// run, and each failure class is folded into the result's severity
// resolution.
func (r *Runner) Run(ctx context.Context) *status.RunResult {
	res := status.NewRunResult()

	if r.opts.Config.Stdin {
		r.runStdin(ctx, res)
		return res
	}

	logger := zerolog.Ctx(ctx)

	files, err := ResolveInputs(ctx, r.opts.Config.Inputs)
	if err != nil {
		logger.Error().Err(err).Msg("resolving input patterns")
		res.RecordGeneralError()
		return res
	}
	res.RecordFilesMatched(len(files))
	if len(files) == 0 {
		logger.Error().Msg("no input files were found matching the provided patterns")
		return res
	}

	if dir := r.opts.Config.OutputDir; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("could not create output directory")
			res.RecordWriteError()
			return res
		}
		logger.Info().Str("dir", dir).Msg("output directory ready")
	}

	if r.opts.Config.Async {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for _, file := range files {
			file := file
			g.Go(func() error {
				r.processFile(gctx, file, res)
				return nil
			})
		}
		// Workers report through res, never through errors.
		_ = g.Wait()
	} else {
		for _, file := range files {
			r.processFile(ctx, file, res)
		}
	}

	r.opts.UI.LogRunSummary(res.FilesMatched(), res.ChangedCount())
	return res
}

// 📄 processFile runs one file end to end. A panic while processing is
// contained here and classified as an internal fault, so one broken
// document cannot take down the rest of the run.
func (r *Runner) processFile(ctx context.Context, path string, res *status.RunResult) {
	logger := zerolog.Ctx(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			res.RecordInternalError()
			logger.Error().Interface("panic", rec).Str("file", path).Msg("internal error while processing file")
			r.opts.UI.LogFileChange(log.FileChange{
				Type:  log.FileError,
				Label: path,
				Error: errors.Errorf("internal error: %v", rec),
			})
		}
	}()

	logger.Info().Str("file", path).Msg("processing file")

	raw, err := os.ReadFile(path)
	if err != nil {
		res.RecordReadError()
		logger.Error().Err(err).Str("file", path).Msg("error reading file")
		r.opts.UI.LogFileChange(log.FileChange{
			Type:  log.FileError,
			Label: path,
			Error: errors.Errorf("reading file: %w", err),
		})
		return
	}

	mode := r.mode()
	out, outcome, err := r.proc.Process(ctx, path, document.Split(string(raw)), mode)
	if err != nil {
		res.RecordInternalError()
		logger.Error().Err(err).Str("file", path).Msg("error processing file")
		return
	}
	res.RecordOutcome(outcome)

	if !outcome.Changed {
		logger.Info().Str("file", path).Msg("no changes made")
		if mode == ModeDiff {
			r.opts.UI.LogFileChange(log.FileChange{
				Type:        log.FileUnchanged,
				Label:       path,
				Description: "no changes detected",
			})
		}
		return
	}

	switch {
	case mode == ModeDiff:
		r.outMu.Lock()
		err = r.renderer.Fprint(r.opts.Stdout, out)
		r.outMu.Unlock()
	case r.opts.Config.OutputDir != "":
		err = r.writeOutput(ctx, path, out)
	default:
		r.outMu.Lock()
		_, err = fmt.Fprintf(r.opts.Stdout, "--- # Modified content for %s\n%s\n", path, out)
		r.outMu.Unlock()
	}
	if err != nil {
		res.RecordWriteError()
		logger.Error().Err(err).Str("file", path).Msg("error emitting output")
		return
	}

	r.opts.UI.LogFileChange(log.FileChange{
		Type:        log.FileRewritten,
		Label:       path,
		Description: fmt.Sprintf("%d replacement(s)", outcome.Replacements),
	})
}

// 💾 writeOutput writes rewritten content into the output directory
// under the source file's base name.
func (r *Runner) writeOutput(ctx context.Context, srcPath, content string) error {
	outPath := filepath.Join(r.opts.Config.OutputDir, filepath.Base(srcPath))
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return errors.Errorf("writing file %s: %w", outPath, err)
	}
	zerolog.Ctx(ctx).Info().Str("file", outPath).Msg("wrote modified file")
	return nil
}

// 📥 runStdin processes a single document from the input stream. The
// rewritten content is always emitted in full mode, unchanged or not:
// stdin is a pipe, and swallowing the stream on no-op runs would lose
// the document.
func (r *Runner) runStdin(ctx context.Context, res *status.RunResult) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Msg("reading from stdin")

	raw, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		res.RecordReadError()
		logger.Error().Err(err).Msg("error reading stdin")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			res.RecordInternalError()
			logger.Error().Interface("panic", rec).Msg("internal error while processing stdin")
		}
	}()

	doc := document.Split(string(raw))
	mode := r.mode()
	out, outcome, err := r.proc.Process(ctx, stdinLabel, doc, mode)
	if err != nil {
		res.RecordInternalError()
		logger.Error().Err(err).Msg("error processing stdin")
		return
	}
	res.RecordOutcome(outcome)

	if mode == ModeDiff {
		if out == "" {
			r.opts.UI.LogFileChange(log.FileChange{
				Type:        log.FileUnchanged,
				Label:       stdinLabel,
				Description: "no changes detected",
			})
			return
		}
		if err := r.renderer.Fprint(r.opts.Stdout, out); err != nil {
			res.RecordWriteError()
			logger.Error().Err(err).Msg("error emitting diff")
		}
		return
	}

	if !outcome.Changed {
		out = doc.Content()
	}
	if _, err := fmt.Fprint(r.opts.Stdout, out); err != nil {
		res.RecordWriteError()
		logger.Error().Err(err).Msg("error emitting content")
	}
}

func (r *Runner) mode() Mode {
	if r.opts.Config.Diff {
		return ModeDiff
	}
	return ModeFull
}
