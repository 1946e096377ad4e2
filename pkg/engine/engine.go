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

package engine

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/cfnhint/pkg/document"
	"github.com/walteh/cfnhint/pkg/hint"
)

// ⚠️ DirectiveError records a marker line whose hint body could not be
// parsed, or a hint with no line left to rewrite.
type DirectiveError struct {
	Line   int    // zero-based index of the hint line
	Reason string
}

// ⚠️ RegexError records a hint whose pattern failed to compile.
type RegexError struct {
	Line    int    // zero-based index of the target line
	Pattern string
	Reason  string
}

// 📊 Outcome is the per-document result of one substitution pass.
// Error slices are ordered as encountered.
type Outcome struct {
	Label           string
	Changed         bool
	Replacements    int // changed text segments across all rewritten lines
	DirectiveErrors []DirectiveError
	RegexErrors     []RegexError
}

// HasRegexError reports whether any pattern failed to compile.
func (o *Outcome) HasRegexError() bool {
	return len(o.RegexErrors) > 0
}

// 🔧 Engine applies hint-driven substitutions to documents.
type Engine struct {
	parser *hint.Parser
}

// 🏭 New creates a new substitution engine.
func New(parser *hint.Parser) *Engine {
	if parser == nil {
		parser = hint.NewParser()
	}
	return &Engine{parser: parser}
}

// 🏃 Apply runs a single forward pass over the document. A hint on
// line i rewrites line i+1 only; the target line is consumed, so a
// hint line that is itself a target is rewritten as plain text and
// never interpreted as a hint. Hint lines themselves are preserved
// verbatim, line count and terminators are preserved, and recoverable
// problems (malformed hints, uncompilable patterns) are recorded on
// the Outcome rather than returned.
func (e *Engine) Apply(ctx context.Context, doc document.Document) (document.Document, *Outcome) {
	logger := zerolog.Ctx(ctx)
	outcome := &Outcome{}
	lines := doc.Lines()

	for i := 0; i < len(lines); i++ {
		d, err := e.parser.Parse(lines[i].Text, i)
		if err != nil {
			// Malformed hint: log and move on without consuming the
			// next line, it is processed normally.
			outcome.DirectiveErrors = append(outcome.DirectiveErrors, DirectiveError{
				Line:   i,
				Reason: err.Error(),
			})
			logger.Warn().Int("line", i).Err(err).Msg("skipping hint")
			continue
		}
		if d == nil {
			continue
		}

		if i+1 >= len(lines) {
			outcome.DirectiveErrors = append(outcome.DirectiveErrors, DirectiveError{
				Line:   i,
				Reason: "hint on final line has no line to rewrite",
			})
			logger.Warn().Int("line", i).Msg("hint at end of document with no subsequent line")
			continue
		}

		// The target is consumed whether or not the pattern compiles.
		target := i + 1
		i = target

		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			outcome.RegexErrors = append(outcome.RegexErrors, RegexError{
				Line:    target,
				Pattern: d.Pattern,
				Reason:  err.Error(),
			})
			logger.Error().Int("line", target).Str("pattern", d.Pattern).Err(err).Msg("invalid regex pattern, line left unmodified")
			continue
		}

		// The terminator stays out of the substitution input so a
		// rewritten line keeps its original ending.
		rewritten := re.ReplaceAllString(lines[target].Text, d.Replacement)
		if rewritten != lines[target].Text {
			outcome.Changed = true
			outcome.Replacements += countEdits(lines[target].Text, rewritten)
			logger.Debug().Int("line", target).Str("pattern", d.Pattern).Msg("line rewritten")
			lines[target].Text = rewritten
		}
	}

	return document.New(lines), outcome
}

// countEdits counts the non-equal segments between the original and
// rewritten line.
func countEdits(before, after string) int {
	dmp := diffmatchpatch.New()
	edits := 0
	for _, d := range dmp.DiffMain(before, after, false) {
		if d.Type != diffmatchpatch.DiffEqual {
			edits++
		}
	}
	return edits
}
