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

	"github.com/walteh/cfnhint/pkg/diff"
	"github.com/walteh/cfnhint/pkg/document"
	"github.com/walteh/cfnhint/pkg/engine"
	"github.com/walteh/cfnhint/pkg/hint"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ Mode selects what a processed document emits.
type Mode int

const (
	// ModeFull emits the full rewritten content of changed documents.
	ModeFull Mode = iota
	// ModeDiff emits a unified diff of the changes.
	ModeDiff
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	if m == ModeDiff {
		return "diff"
	}
	return "full"
}

// 🔧 Processor runs one document through the substitution engine and
// shapes its output.
type Processor struct {
	engine   *engine.Engine
	renderer *diff.Renderer
}

// 🏭 NewProcessor creates a processor with default collaborators.
func NewProcessor() *Processor {
	return &Processor{
		engine:   engine.New(hint.NewParser()),
		renderer: diff.NewRenderer(),
	}
}

// 📝 Process applies the engine to one document. The returned output
// is empty when the document is unchanged: full mode skips output for
// unchanged documents, diff mode renders an empty diff. Recoverable
// conditions (malformed hints, uncompilable patterns) live on the
// Outcome; the error return is reserved for internal faults.
func (p *Processor) Process(ctx context.Context, label string, doc document.Document, mode Mode) (string, *engine.Outcome, error) {
	rewritten, outcome := p.engine.Apply(ctx, doc)
	outcome.Label = label

	switch mode {
	case ModeDiff:
		rendered, err := p.renderer.Render(doc, rewritten, label)
		if err != nil {
			return "", outcome, errors.Errorf("rendering diff for %s: %w", label, err)
		}
		return rendered, outcome, nil
	default:
		if !outcome.Changed {
			return "", outcome, nil
		}
		return rewritten.Content(), outcome, nil
	}
}
