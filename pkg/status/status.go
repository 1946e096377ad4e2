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

// Package status aggregates per-document outcomes into the run-level
// result that selects the process exit code.
package status

import (
	"sync"

	"github.com/walteh/cfnhint/pkg/engine"
)

// 🎯 ExitCode is the process exit status of a run.
type ExitCode int

const (
	ExitSuccess        ExitCode = 0
	ExitGeneralFailure ExitCode = 1
	ExitNoFilesMatched ExitCode = 2
	ExitFileReadError  ExitCode = 3
	ExitFileWriteError ExitCode = 4
	ExitRegexError     ExitCode = 6
	ExitInternalError  ExitCode = 8
)

// String returns a string representation of the exit code.
func (c ExitCode) String() string {
	switch c {
	case ExitSuccess:
		return "success"
	case ExitGeneralFailure:
		return "general-failure"
	case ExitNoFilesMatched:
		return "no-files-matched"
	case ExitFileReadError:
		return "read-error"
	case ExitFileWriteError:
		return "write-error"
	case ExitRegexError:
		return "invalid-regex"
	case ExitInternalError:
		return "internal-exception"
	default:
		return "unknown"
	}
}

// 📊 RunResult aggregates outcomes across all documents of a run. It
// is safe for concurrent recording; document processing may fan out,
// aggregation is mutex-guarded.
type RunResult struct {
	mu sync.Mutex

	filesMatched  int
	changedCount  int
	anyChanged    bool
	noFiles       bool
	regexError    bool
	readError     bool
	writeError    bool
	internalError bool
	generalError  bool
}

// 🏭 NewRunResult creates an empty aggregate.
func NewRunResult() *RunResult {
	return &RunResult{}
}

// 📝 RecordOutcome folds one document outcome into the aggregate.
func (r *RunResult) RecordOutcome(outcome *engine.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if outcome.Changed {
		r.anyChanged = true
		r.changedCount++
	}
	if outcome.HasRegexError() {
		r.regexError = true
	}
}

// RecordFilesMatched records how many input files were resolved; zero
// marks the run as no-files-matched.
func (r *RunResult) RecordFilesMatched(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filesMatched = n
	if n == 0 {
		r.noFiles = true
	}
}

// RecordReadError marks the run as having failed to read a document.
func (r *RunResult) RecordReadError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readError = true
}

// RecordWriteError marks the run as having failed to write an output.
func (r *RunResult) RecordWriteError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeError = true
}

// RecordInternalError marks the run as having hit an unexpected fault.
func (r *RunResult) RecordInternalError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.internalError = true
}

// RecordGeneralError marks a recoverable failure with no more specific
// classification.
func (r *RunResult) RecordGeneralError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generalError = true
}

// FilesMatched returns how many input files were resolved.
func (r *RunResult) FilesMatched() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filesMatched
}

// ChangedCount returns how many documents were rewritten.
func (r *RunResult) ChangedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.changedCount
}

// AnyChanged reports whether any document was rewritten.
func (r *RunResult) AnyChanged() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.anyChanged
}

// 🎯 Code resolves the aggregate to one exit code using the fixed
// severity order: internal > write > read > no-files > invalid-regex >
// general > success. Severity order, not numeric order: a read error
// (3) outranks an invalid regex (6).
func (r *RunResult) Code() ExitCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.internalError:
		return ExitInternalError
	case r.writeError:
		return ExitFileWriteError
	case r.readError:
		return ExitFileReadError
	case r.noFiles:
		return ExitNoFilesMatched
	case r.regexError:
		return ExitRegexError
	case r.generalError:
		return ExitGeneralFailure
	}
	return ExitSuccess
}
