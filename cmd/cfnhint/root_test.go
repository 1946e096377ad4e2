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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cfnhint/pkg/status"
)

// resetFlags clears the package-level flag state between executions.
func resetFlags() {
	configFile = ""
	inputs = nil
	stdin = false
	outputDir = ""
	showDiff = false
	logFile = ""
	quiet = false
	debug = false
}

func execute(t *testing.T, stdin string, args ...string) (status.ExitCode, string, string) {
	t.Helper()
	resetFlags()

	var code status.ExitCode
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&code)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil && code == status.ExitSuccess {
		code = status.ExitGeneralFailure
	}
	return code, out.String(), errOut.String()
}

func TestExecute_StdinRewrite(t *testing.T) {
	code, out, _ := execute(t,
		"# cfn-hint: replace: old-bucket with: new-bucket\nBucketName: old-bucket\n",
		"--stdin", "--quiet")

	assert.Equal(t, status.ExitSuccess, code)
	assert.Equal(t,
		"# cfn-hint: replace: old-bucket with: new-bucket\nBucketName: new-bucket\n",
		out)
}

func TestExecute_NoFilesMatched(t *testing.T) {
	dir := t.TempDir()
	code, out, _ := execute(t, "",
		"--input", filepath.Join(dir, "*.yml"), "--quiet")

	assert.Equal(t, status.ExitNoFilesMatched, code)
	assert.Empty(t, out)
}

func TestExecute_InvalidRegex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path,
		[]byte("# cfn-hint: replace: [ with: x\nfoo\n"), 0644))

	code, _, _ := execute(t, "", "--input", path, "--quiet")
	assert.Equal(t, status.ExitRegexError, code)
}

func TestExecute_OutputDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yml")
	require.NoError(t, os.WriteFile(path,
		[]byte("# cfn-hint: replace: dev with: prod\nStage: dev\n"), 0644))
	outDir := filepath.Join(dir, "out")

	code, _, _ := execute(t, "",
		"--input", path, "--output-dir", outDir, "--quiet")
	require.Equal(t, status.ExitSuccess, code)

	content, err := os.ReadFile(filepath.Join(outDir, "stack.yml"))
	require.NoError(t, err)
	assert.Equal(t, "# cfn-hint: replace: dev with: prod\nStage: prod\n", string(content))
}

func TestExecute_MissingInputSelection(t *testing.T) {
	code, _, _ := execute(t, "", "--quiet")
	assert.Equal(t, status.ExitGeneralFailure, code)
}

func TestExecute_InputAndStdinExclusive(t *testing.T) {
	code, _, _ := execute(t, "", "--stdin", "--input", "a.yml")
	assert.Equal(t, status.ExitGeneralFailure, code)
}
