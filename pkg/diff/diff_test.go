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

package diff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cfnhint/pkg/document"
)

func TestRender_EmptyForIdenticalDocuments(t *testing.T) {
	doc := document.Split("a\nb\nc\n")
	r := NewRenderer()

	out, err := r.Render(doc, doc, "template.yml")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_SingleLineChange(t *testing.T) {
	original := document.Split("Resources:\n  BucketName: old-bucket\n  Type: AWS::S3::Bucket\n")
	modified := document.Split("Resources:\n  BucketName: new-bucket\n  Type: AWS::S3::Bucket\n")
	r := NewRenderer()

	out, err := r.Render(original, modified, "template.yml")
	require.NoError(t, err)

	assert.Contains(t, out, "--- original (template.yml)")
	assert.Contains(t, out, "+++ modified (template.yml)")
	assert.Contains(t, out, "@@")
	assert.Contains(t, out, "-  BucketName: old-bucket")
	assert.Contains(t, out, "+  BucketName: new-bucket")
	assert.Contains(t, out, " Resources:", "unchanged neighbors appear as context")
}

func TestRender_NoLabel(t *testing.T) {
	original := document.Split("x\n")
	modified := document.Split("y\n")
	r := NewRenderer()

	out, err := r.Render(original, modified, "")
	require.NoError(t, err)
	assert.Contains(t, out, "--- original\n")
	assert.Contains(t, out, "+++ modified\n")
}

func TestRender_Deterministic(t *testing.T) {
	original := document.Split("one\ntwo\nthree\nfour\nfive\n")
	modified := document.Split("one\n2\nthree\nfour\n5\n")
	r := NewRenderer()

	first, err := r.Render(original, modified, "f")
	require.NoError(t, err)
	second, err := r.Render(original, modified, "f")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFprint_ColorsDisabled(t *testing.T) {
	// With color disabled the rendering passes through unchanged.
	color.NoColor = true
	defer func() { color.NoColor = false }()

	rendered := strings.Join([]string{
		"--- original\n",
		"+++ modified\n",
		"@@ -1 +1 @@\n",
		"-x\n",
		"+y\n",
	}, "")

	var buf bytes.Buffer
	r := NewRenderer()
	require.NoError(t, r.Fprint(&buf, rendered))
	assert.Equal(t, rendered, buf.String())
}
