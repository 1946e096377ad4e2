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

// Package hint recognizes inline replacement hints of the form
//
//	# cfn-hint: replace: <pattern> with: <replacement>
//
// A hint applies to exactly the line that follows it.
package hint

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔖 Marker is the literal token that makes a line a hint candidate.
const Marker = "# cfn-hint:"

// directivePrefix introduces the pattern inside the hint body.
const directivePrefix = "replace:"

// withSeparator splits pattern from replacement on first occurrence.
const withSeparator = " with: "

// 🔄 Directive is one parsed hint: a regex pattern, its literal
// replacement text, and the index of the line it was written on. The
// pattern is carried uncompiled; compilation happens at the point of
// use so compile errors report the target line.
type Directive struct {
	Pattern     string
	Replacement string
	Line        int
}

// 🎯 Parser extracts directives from single lines.
type Parser struct{}

// 🏭 NewParser creates a new hint parser.
func NewParser() *Parser {
	return &Parser{}
}

// 📝 Parse inspects one line. It returns (nil, nil) for a line without
// the marker, an error for a marker line whose body does not match the
// replace/with shape, and a Directive otherwise. The index is the
// zero-based position of the line in its document.
func (p *Parser) Parse(line string, index int) (*Directive, error) {
	at := strings.Index(line, Marker)
	if at < 0 {
		return nil, nil
	}

	body := strings.TrimSpace(line[at+len(Marker):])
	body, ok := strings.CutPrefix(body, directivePrefix)
	if !ok {
		return nil, errors.Errorf("invalid hint format, expected %q", directivePrefix+" <pattern>"+withSeparator+"<replacement>")
	}

	pattern, replacement, ok := strings.Cut(body, withSeparator)
	if !ok {
		return nil, errors.Errorf("invalid hint format, missing %q separator", strings.TrimSpace(withSeparator))
	}

	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, errors.Errorf("invalid hint format, empty pattern")
	}

	return &Directive{
		Pattern:     pattern,
		Replacement: replacement,
		Line:        index,
	}, nil
}
