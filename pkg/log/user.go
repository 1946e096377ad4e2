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

package log

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 FileChangeType represents what happened to one document
type FileChangeType int

const (
	FileRewritten FileChangeType = iota
	FileUnchanged
	FileSkipped
	FileError
)

// 🖼️ FileChange represents the processing result for one document
type FileChange struct {
	Type        FileChangeType
	Label       string
	Description string
	Error       error
}

// 📢 UserLogger provides user-friendly per-document feedback, mirrored
// into zerolog for debugging. A quiet UserLogger prints nothing.
type UserLogger struct {
	log   zerolog.Logger
	out   io.Writer
	quiet bool
}

// 🏭 NewUserLogger creates a user logger writing to out.
func NewUserLogger(logger zerolog.Logger, out io.Writer, quiet bool) *UserLogger {
	return &UserLogger{log: logger, out: out, quiet: quiet}
}

// 📝 LogFileChange logs a document result with appropriate prefix and
// formatting.
func (u *UserLogger) LogFileChange(change FileChange) {
	msg := change.Label
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileRewritten:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case FileUnchanged:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "•"})
	case FileSkipped:
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭"})
	case FileError:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	default:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "•"})
	}

	if !u.quiet {
		printer.WithWriter(u.out).Println(msg)
	}

	if change.Error != nil {
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		u.log.Info().Msg(msg)
	}
}

// 📊 LogRunSummary logs the end-of-run summary line.
func (u *UserLogger) LogRunSummary(files, changed int) {
	msg := fmt.Sprintf("%d file(s) processed, %d changed", files, changed)
	if !u.quiet {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(u.out).Println(msg)
	}
	u.log.Info().Int("files", files).Int("changed", changed).Msg("run complete")
}
