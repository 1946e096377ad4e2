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

package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/cfnhint/pkg/engine"
)

func TestRunResult_Code(t *testing.T) {
	tests := []struct {
		name   string
		record func(r *RunResult)
		want   ExitCode
	}{
		{
			name:   "empty_run_is_success",
			record: func(r *RunResult) {},
			want:   ExitSuccess,
		},
		{
			name: "clean_outcome_is_success",
			record: func(r *RunResult) {
				r.RecordFilesMatched(2)
				r.RecordOutcome(&engine.Outcome{Changed: true})
			},
			want: ExitSuccess,
		},
		{
			name: "no_files_matched",
			record: func(r *RunResult) {
				r.RecordFilesMatched(0)
			},
			want: ExitNoFilesMatched,
		},
		{
			name: "regex_error_escalates",
			record: func(r *RunResult) {
				r.RecordFilesMatched(1)
				r.RecordOutcome(&engine.Outcome{
					RegexErrors: []engine.RegexError{{Line: 1, Pattern: "["}},
				})
			},
			want: ExitRegexError,
		},
		{
			name: "directive_errors_stay_informational",
			record: func(r *RunResult) {
				r.RecordFilesMatched(1)
				r.RecordOutcome(&engine.Outcome{
					DirectiveErrors: []engine.DirectiveError{{Line: 0, Reason: "bad"}},
				})
			},
			want: ExitSuccess,
		},
		{
			name: "read_error_outranks_regex_error",
			record: func(r *RunResult) {
				r.RecordFilesMatched(2)
				r.RecordReadError()
				r.RecordOutcome(&engine.Outcome{
					RegexErrors: []engine.RegexError{{Line: 1, Pattern: "("}},
				})
			},
			want: ExitFileReadError,
		},
		{
			name: "write_error_outranks_read_error",
			record: func(r *RunResult) {
				r.RecordFilesMatched(2)
				r.RecordReadError()
				r.RecordWriteError()
			},
			want: ExitFileWriteError,
		},
		{
			name: "internal_error_outranks_everything",
			record: func(r *RunResult) {
				r.RecordFilesMatched(0)
				r.RecordReadError()
				r.RecordWriteError()
				r.RecordGeneralError()
				r.RecordInternalError()
			},
			want: ExitInternalError,
		},
		{
			name: "general_error_alone",
			record: func(r *RunResult) {
				r.RecordFilesMatched(1)
				r.RecordGeneralError()
			},
			want: ExitGeneralFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunResult()
			tt.record(r)
			assert.Equal(t, tt.want, r.Code())
		})
	}
}

func TestRunResult_Counters(t *testing.T) {
	r := NewRunResult()
	r.RecordFilesMatched(3)
	r.RecordOutcome(&engine.Outcome{Changed: true})
	r.RecordOutcome(&engine.Outcome{})
	r.RecordOutcome(&engine.Outcome{Changed: true})

	assert.Equal(t, 3, r.FilesMatched())
	assert.Equal(t, 2, r.ChangedCount())
	assert.True(t, r.AnyChanged())
}

func TestRunResult_ConcurrentRecording(t *testing.T) {
	r := NewRunResult()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RecordOutcome(&engine.Outcome{Changed: true})
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, r.ChangedCount())
}

func TestExitCode_String(t *testing.T) {
	assert.Equal(t, "success", ExitSuccess.String())
	assert.Equal(t, "no-files-matched", ExitNoFilesMatched.String())
	assert.Equal(t, "invalid-regex", ExitRegexError.String())
	assert.Equal(t, "internal-exception", ExitInternalError.String())
}
