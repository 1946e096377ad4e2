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

// Package diff renders the difference between an original and a
// rewritten document as a unified diff.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/walteh/cfnhint/pkg/document"
	"gitlab.com/tozd/go/errors"
)

// defaultContext is the number of context lines around each hunk.
const defaultContext = 3

// 🎨 Renderer produces unified diffs between document versions.
type Renderer struct {
	Context int
}

// 🏭 NewRenderer creates a renderer with standard three-line context.
func NewRenderer() *Renderer {
	return &Renderer{Context: defaultContext}
}

// 📝 Render returns the unified diff between the two documents, or the
// empty string when they are line-for-line identical. The label, when
// non-empty, is folded into the file headers as "original (<label>)" /
// "modified (<label>)".
func (r *Renderer) Render(original, modified document.Document, label string) (string, error) {
	fromFile, toFile := "original", "modified"
	if label != "" {
		fromFile = fmt.Sprintf("original (%s)", label)
		toFile = fmt.Sprintf("modified (%s)", label)
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        original.Strings(),
		B:        modified.Strings(),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  r.Context,
	})
	if err != nil {
		return "", errors.Errorf("generating unified diff: %w", err)
	}
	return text, nil
}

// 🖨️ Fprint writes an already rendered diff to w with terminal
// coloring: file headers plain, hunk headers cyan, additions green,
// deletions red.
func (r *Renderer) Fprint(w io.Writer, rendered string) error {
	hunk := color.New(color.FgCyan)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, line := range splitKeepEnds(rendered) {
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = fmt.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = hunk.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = added.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = removed.Fprint(w, line)
		default:
			_, err = fmt.Fprint(w, line)
		}
		if err != nil {
			return errors.Errorf("writing diff: %w", err)
		}
	}
	return nil
}

func splitKeepEnds(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
