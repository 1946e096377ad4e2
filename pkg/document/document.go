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

// Package document models a processed input as an ordered line sequence
// where every line keeps its own terminator, so that re-serializing an
// untouched document reproduces the original bytes exactly.
package document

import "strings"

// 📄 Line is a single document line. Text never contains the
// terminator; Ending is "\n", "\r\n", "\r", or "" on a final line
// without one.
type Line struct {
	Text   string
	Ending string
}

// String returns the line as it appears in the document.
func (l Line) String() string {
	return l.Text + l.Ending
}

// 📚 Document is the full line sequence of one input.
type Document struct {
	lines []Line
}

// 🏭 New creates a document from pre-split lines.
func New(lines []Line) Document {
	return Document{lines: lines}
}

// ✂️ Split splits content into lines, keeping each line's terminator.
// Terminators recognized are "\n", "\r\n", and a lone "\r".
func Split(content string) Document {
	var lines []Line
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, Line{Text: content[start:i], Ending: "\n"})
			start = i + 1
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				lines = append(lines, Line{Text: content[start:i], Ending: "\r\n"})
				i++
			} else {
				lines = append(lines, Line{Text: content[start:i], Ending: "\r"})
			}
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, Line{Text: content[start:]})
	}
	return Document{lines: lines}
}

// Len returns the number of lines.
func (d Document) Len() int {
	return len(d.lines)
}

// Line returns the line at index i.
func (d Document) Line(i int) Line {
	return d.lines[i]
}

// Lines returns a copy of the line slice, safe to mutate.
func (d Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// 📝 Content re-serializes the document. For a document produced by
// Split this is byte-identical to the original input.
func (d Document) Content() string {
	var sb strings.Builder
	for _, l := range d.lines {
		sb.WriteString(l.Text)
		sb.WriteString(l.Ending)
	}
	return sb.String()
}

// Strings returns each line with its terminator attached, the shape
// diff generation wants.
func (d Document) Strings() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.String()
	}
	return out
}

// 🔍 Equal reports whether both documents have identical lines,
// terminators included.
func (d Document) Equal(other Document) bool {
	if len(d.lines) != len(other.lines) {
		return false
	}
	for i := range d.lines {
		if d.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}
